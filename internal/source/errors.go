package source

import (
	"errors"
	"fmt"
)

// Sentinels matched by ExtractionError.Is, one per ExtractionErrorKind.
var (
	// ErrUnsupportedType is returned when no extractor handles the declared media type.
	ErrUnsupportedType = errors.New("unsupported media type")

	// ErrInvalidReference is returned when a video reference is not recognized.
	ErrInvalidReference = errors.New("invalid video reference")

	// ErrExtractionFailed is returned when a recognized format could not be read.
	ErrExtractionFailed = errors.New("text extraction failed")
)

// Errors reported by a VideoPlatform when a video has no usable transcript.
// Both trigger the metadata fallback.
var (
	ErrTranscriptsDisabled = errors.New("transcripts are disabled for this video")
	ErrTranscriptNotFound  = errors.New("no transcript found for this video")
)

// ExtractionErrorKind classifies an ExtractionError.
type ExtractionErrorKind string

const (
	KindUnsupportedType  ExtractionErrorKind = "unsupported_type"
	KindInvalidReference ExtractionErrorKind = "invalid_reference"
	KindExtractionFailed ExtractionErrorKind = "extraction_failed"
)

func (k ExtractionErrorKind) sentinel() error {
	switch k {
	case KindUnsupportedType:
		return ErrUnsupportedType
	case KindInvalidReference:
		return ErrInvalidReference
	default:
		return ErrExtractionFailed
	}
}

// ExtractionError describes why an artifact produced no text.
type ExtractionError struct {
	Kind      ExtractionErrorKind
	MediaType string
	Detail    string
	Err       error
}

// Error implements the error interface.
func (e *ExtractionError) Error() string {
	msg := e.Kind.sentinel().Error()
	if e.MediaType != "" {
		msg = fmt.Sprintf("%s (%s)", msg, e.MediaType)
	}
	if e.Detail != "" {
		msg += ": " + e.Detail
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

// Unwrap returns the underlying cause, if any.
func (e *ExtractionError) Unwrap() error {
	return e.Err
}

// Is reports whether target is the sentinel for this error's kind.
func (e *ExtractionError) Is(target error) bool {
	return target == e.Kind.sentinel()
}

func unsupported(mediaType string) error {
	return &ExtractionError{Kind: KindUnsupportedType, MediaType: mediaType}
}

func failed(mediaType, detail string, err error) error {
	return &ExtractionError{Kind: KindExtractionFailed, MediaType: mediaType, Detail: detail, Err: err}
}
