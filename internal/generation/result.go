package generation

import (
	"fmt"
	"strings"
)

// ResultKind identifies which variant of Result is populated.
type ResultKind int

const (
	KindEmpty ResultKind = iota
	KindText
	KindImage
)

// String implements fmt.Stringer.
func (k ResultKind) String() string {
	switch k {
	case KindText:
		return "text"
	case KindImage:
		return "image"
	default:
		return "empty"
	}
}

// Result is the normalized outcome of one generation call. Only the fields
// of its Kind are meaningful; build values with TextResult, ImageResult or
// EmptyResult.
type Result struct {
	Kind       ResultKind
	Text       string
	ImageBytes []byte
	MIMEType   string
}

// TextResult returns a text result.
func TextResult(text string) Result {
	return Result{Kind: KindText, Text: text}
}

// ImageResult returns an image result.
func ImageResult(data []byte, mimeType string) Result {
	return Result{Kind: KindImage, ImageBytes: data, MIMEType: mimeType}
}

// EmptyResult returns the result for a response with no usable content.
func EmptyResult() Result {
	return Result{Kind: KindEmpty}
}

// IsEmpty reports whether the result carries no content.
func (r Result) IsEmpty() bool {
	return r.Kind == KindEmpty
}

// String summarizes the result without its payload.
func (r Result) String() string {
	switch r.Kind {
	case KindText:
		return fmt.Sprintf("text(%d chars)", len(r.Text))
	case KindImage:
		return fmt.Sprintf("image(%s, %d bytes)", r.MIMEType, len(r.ImageBytes))
	default:
		return "empty"
	}
}

// Response is the provider-neutral shape a Backend returns. Providers
// populate whichever parts they have: a top-level Text, a list of
// candidates made of parts, or neither.
type Response struct {
	Text       string
	Candidates []Candidate
	// BlockReason is set when the provider refused the prompt itself.
	BlockReason string
}

// Candidate is one alternative completion.
type Candidate struct {
	Parts        []Part
	FinishReason string
}

// Part is either a text fragment or inline binary data.
type Part struct {
	Text       string
	InlineData *Blob
}

// Blob is inline binary data with its declared media type.
type Blob struct {
	MIMEType string
	Data     []byte
}

// Normalize reduces a provider response to a Result.
//
// The first candidate is inspected first: its first non-empty inline part
// becomes an image result; otherwise its concatenated text fragments become a
// text result. Failing that, the top-level Text is used. A response with
// neither yields an empty result.
func Normalize(resp *Response) Result {
	if resp == nil {
		return EmptyResult()
	}

	if len(resp.Candidates) > 0 {
		var text strings.Builder
		for _, part := range resp.Candidates[0].Parts {
			if part.InlineData != nil && len(part.InlineData.Data) > 0 {
				return ImageResult(part.InlineData.Data, part.InlineData.MIMEType)
			}
			text.WriteString(part.Text)
		}
		if s := strings.TrimSpace(text.String()); s != "" {
			return TextResult(s)
		}
	}

	if s := strings.TrimSpace(resp.Text); s != "" {
		return TextResult(s)
	}

	return EmptyResult()
}
