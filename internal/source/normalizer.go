package source

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"mime"
	"os"
	"strings"

	"github.com/gabriel-vasile/mimetype"
)

// Media types accepted by NormalizeDocument.
const (
	MediaTypePDF      = "application/pdf"
	MediaTypeMSWord   = "application/msword"
	MediaTypeDOCX     = "application/vnd.openxmlformats-officedocument.wordprocessingml.document"
	MediaTypeMSExcel  = "application/vnd.ms-excel"
	MediaTypeXLSX     = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	MediaTypePlainTxt = "text/plain"
)

// extractor renders one document format as text. It may return warnings
// alongside the text.
type extractor func(data []byte) (string, []string, error)

// format groups the media types served by one extractor.
type format struct {
	name    string
	types   []string
	extract extractor
}

var formats = []format{
	{name: "pdf", types: []string{MediaTypePDF}, extract: extractPDF},
	{name: "word", types: []string{MediaTypeMSWord, MediaTypeDOCX}, extract: extractWord},
	{name: "spreadsheet", types: []string{MediaTypeMSExcel, MediaTypeXLSX}, extract: extractSpreadsheet},
	{name: "text", types: []string{MediaTypePlainTxt}, extract: extractPlainText},
}

func lookupFormat(mediaType string) (format, bool) {
	for _, f := range formats {
		for _, t := range f.types {
			if t == mediaType {
				return f, true
			}
		}
	}
	return format{}, false
}

// SupportedMediaTypes lists every declared media type NormalizeDocument accepts.
func SupportedMediaTypes() []string {
	var out []string
	for _, f := range formats {
		out = append(out, f.types...)
	}
	return out
}

// Normalizer converts artifacts to plain text.
// It holds no per-request state and is safe for concurrent use.
type Normalizer struct {
	platform         VideoPlatform
	maxDocumentBytes int64
	logger           *slog.Logger
}

// NewNormalizer creates a Normalizer.
//
// Parameters:
//   - platform: source of transcripts and metadata for video references; may
//     be nil when only documents are normalized
//   - maxDocumentBytes: upper bound on document size, zero for no limit
//   - logger: structured logger; nil uses slog.Default()
func NewNormalizer(platform VideoPlatform, maxDocumentBytes int64, logger *slog.Logger) *Normalizer {
	if logger == nil {
		logger = slog.Default()
	}
	return &Normalizer{
		platform:         platform,
		maxDocumentBytes: maxDocumentBytes,
		logger:           logger.With("component", "source_normalizer"),
	}
}

// Normalize dispatches on the artifact kind.
func (n *Normalizer) Normalize(ctx context.Context, a Artifact) (*ExtractedText, error) {
	switch a.Kind {
	case KindDocument:
		return n.NormalizeDocument(ctx, a.Document)
	case KindVideoReference:
		return n.NormalizeVideoReference(ctx, a.Video.URL)
	default:
		return nil, fmt.Errorf("%w: unknown artifact kind %d", ErrUnsupportedType, a.Kind)
	}
}

// NormalizeDocument extracts text from an uploaded document, choosing the
// extractor from the declared media type alone. Parameters on the declared
// type (for example a charset) are ignored.
//
// Returns an *ExtractionError of kind KindUnsupportedType for unknown types
// and KindExtractionFailed when the bytes cannot be read as the declared format.
func (n *Normalizer) NormalizeDocument(ctx context.Context, doc Document) (*ExtractedText, error) {
	mediaType := canonicalMediaType(doc.MediaType)
	log := n.logger.With("media_type", mediaType, "file_name", doc.FileName)

	f, ok := lookupFormat(mediaType)
	if !ok {
		log.WarnContext(ctx, "unsupported document type")
		return nil, unsupported(mediaType)
	}

	if n.maxDocumentBytes > 0 && int64(len(doc.Bytes)) > n.maxDocumentBytes {
		return nil, failed(mediaType, fmt.Sprintf("document is %d bytes, limit is %d", len(doc.Bytes), n.maxDocumentBytes), nil)
	}
	if len(doc.Bytes) == 0 {
		return nil, failed(mediaType, "document is empty", nil)
	}

	var warnings []string
	if w := sniffMismatch(doc.Bytes, mediaType, f); w != "" {
		warnings = append(warnings, w)
	}

	text, extraWarnings, err := runExtractor(f.extract, doc.Bytes)
	if err != nil {
		log.WarnContext(ctx, "document extraction failed", "format", f.name, "error", err)
		return nil, failed(mediaType, "could not read "+f.name+" document", err)
	}
	warnings = append(warnings, extraWarnings...)

	if strings.TrimSpace(text) == "" {
		warnings = append(warnings, "no extractable text found in document")
	}

	log.DebugContext(ctx, "document extracted",
		"format", f.name,
		"chars", len(text),
		"warnings", len(warnings))

	return &ExtractedText{Text: text, Warnings: warnings}, nil
}

// OpenDocument reads a document from disk. The file handle is released
// before returning on every path.
func OpenDocument(path, mediaType, fileName string) (Document, error) {
	f, err := os.Open(path)
	if err != nil {
		return Document{}, fmt.Errorf("open document: %w", err)
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		return Document{}, fmt.Errorf("read document: %w", err)
	}
	return Document{Bytes: data, MediaType: mediaType, FileName: fileName}, nil
}

// runExtractor converts a panic inside a third-party parser into an error.
func runExtractor(fn extractor, data []byte) (text string, warnings []string, err error) {
	defer func() {
		if r := recover(); r != nil {
			text, warnings = "", nil
			err = fmt.Errorf("parser panic: %v", r)
		}
	}()
	return fn(data)
}

func canonicalMediaType(declared string) string {
	declared = strings.TrimSpace(declared)
	if mt, _, err := mime.ParseMediaType(declared); err == nil {
		return mt
	}
	return strings.ToLower(declared)
}

// sniffMismatch returns a warning when the content does not look like any
// type served by the chosen format. Dispatch is never changed by the result.
func sniffMismatch(data []byte, declared string, f format) string {
	detected := mimetype.Detect(data)
	for m := detected; m != nil; m = m.Parent() {
		for _, t := range f.types {
			if m.Is(t) {
				return ""
			}
		}
	}
	return fmt.Sprintf("declared type %s does not match detected content type %s", declared, detected.String())
}
