package source

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/phrazzld/vyasa-api/internal/platform/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestNormalizer(t *testing.T, platform VideoPlatform) *Normalizer {
	t.Helper()
	log, _ := logger.NewTestLogger(t)
	return NewNormalizer(platform, 0, log)
}

func TestNormalizeDocumentSupportedTypes(t *testing.T) {
	t.Parallel()

	n := newTestNormalizer(t, nil)
	ctx := context.Background()

	tests := []struct {
		name      string
		mediaType string
		data      []byte
		check     func(t *testing.T, text string)
	}{
		{
			name:      "pdf pages joined by blank line",
			mediaType: MediaTypePDF,
			data:      buildPDF(t, "Hello PDF", "Second page"),
			check: func(t *testing.T, text string) {
				assert.Equal(t, "Hello PDF\n\nSecond page", text)
			},
		},
		{
			name:      "docx paragraphs joined by newline",
			mediaType: MediaTypeDOCX,
			data:      buildDOCX(t, "First paragraph here", "Second one"),
			check: func(t *testing.T, text string) {
				assert.Equal(t, "First paragraph here\nSecond one", text)
			},
		},
		{
			name:      "docx text box keeps surrounding runs",
			mediaType: MediaTypeDOCX,
			data: packageDOCX(t, `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>`+
				`<w:document xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main"><w:body>`+
				`<w:p><w:r><w:t>Before</w:t></w:r>`+
				`<w:r><w:pict><w:txbxContent><w:p><w:r><w:t>Box</w:t></w:r></w:p></w:txbxContent></w:pict></w:r>`+
				`<w:r><w:t xml:space="preserve"> After</w:t></w:r></w:p>`+
				`<w:p><w:r><w:t>Second</w:t></w:r></w:p>`+
				`</w:body></w:document>`),
			check: func(t *testing.T, text string) {
				assert.Equal(t, "Before After\nBox\nSecond", text)
			},
		},
		{
			name:      "msword declared openxml content",
			mediaType: MediaTypeMSWord,
			data:      buildDOCX(t, "Legacy label"),
			check: func(t *testing.T, text string) {
				assert.Equal(t, "Legacy label", text)
			},
		},
		{
			name:      "xlsx flattened to aligned columns",
			mediaType: MediaTypeXLSX,
			data:      buildXLSX(t, [][]string{{"Name", "Score"}, {"Ada", "95"}, {"Linus", "88"}}),
			check: func(t *testing.T, text string) {
				lines := strings.Split(text, "\n")
				require.Len(t, lines, 3)
				assert.Equal(t, []string{"Name", "Score"}, strings.Fields(lines[0]))
				assert.Equal(t, []string{"Ada", "95"}, strings.Fields(lines[1]))
				assert.Equal(t, []string{"Linus", "88"}, strings.Fields(lines[2]))
				assert.Equal(t, strings.Index(lines[0], "Score"), strings.Index(lines[1], "95"), "columns are aligned")
			},
		},
		{
			name:      "plain text utf-8",
			mediaType: "text/plain; charset=utf-8",
			data:      []byte("naïve café\nline two"),
			check: func(t *testing.T, text string) {
				assert.Equal(t, "naïve café\nline two", text)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := n.NormalizeDocument(ctx, Document{Bytes: tt.data, MediaType: tt.mediaType, FileName: "fixture"})
			require.NoError(t, err)
			require.NotNil(t, got)
			tt.check(t, got.Text)
			assert.False(t, got.TranscriptAvailable)
		})
	}
}

func TestNormalizeDocumentMultiSheetWorkbook(t *testing.T) {
	t.Parallel()

	n := newTestNormalizer(t, nil)
	data := buildXLSX(t, [][]string{{"a", "b"}}, "Extra")

	got, err := n.NormalizeDocument(context.Background(), Document{Bytes: data, MediaType: MediaTypeXLSX})

	require.NoError(t, err)
	assert.Contains(t, got.Text, "[Sheet1]")
	assert.Contains(t, got.Text, "[Extra]\nExtra value")
}

func TestNormalizeDocumentLatin1Fallback(t *testing.T) {
	t.Parallel()

	n := newTestNormalizer(t, nil)
	// "café" with é encoded as the single Latin-1 byte 0xE9.
	data := []byte{'c', 'a', 'f', 0xE9}

	got, err := n.NormalizeDocument(context.Background(), Document{Bytes: data, MediaType: MediaTypePlainTxt})

	require.NoError(t, err)
	assert.Equal(t, "café", got.Text)
	assert.Contains(t, strings.Join(got.Warnings, "|"), "ISO-8859-1")
}

func TestNormalizeDocumentUnsupportedType(t *testing.T) {
	t.Parallel()

	n := newTestNormalizer(t, nil)

	for _, mt := range []string{"image/png", "application/zip", "", "text/html"} {
		got, err := n.NormalizeDocument(context.Background(), Document{Bytes: []byte("whatever"), MediaType: mt})

		assert.Nil(t, got, "no text for %q", mt)
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrUnsupportedType)
		assert.NotErrorIs(t, err, ErrExtractionFailed)

		var extErr *ExtractionError
		require.True(t, errors.As(err, &extErr))
		assert.Equal(t, KindUnsupportedType, extErr.Kind)
	}
}

func TestNormalizeDocumentExtractionFailures(t *testing.T) {
	t.Parallel()

	n := newTestNormalizer(t, nil)

	tests := []struct {
		name      string
		mediaType string
		data      []byte
	}{
		{"corrupt pdf", MediaTypePDF, []byte("%PDF-1.4\nthis is not really a pdf")},
		{"short garbage pdf", MediaTypePDF, []byte("%PDF")},
		{"legacy binary doc", MediaTypeMSWord, []byte{0xD0, 0xCF, 0x11, 0xE0, 0xA1, 0xB1, 0x1A, 0xE1}},
		{"zip without word body", MediaTypeDOCX, buildXLSX(t, [][]string{{"x"}})},
		{"not a workbook", MediaTypeXLSX, []byte("plain words")},
		{"empty document", MediaTypePlainTxt, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := n.NormalizeDocument(context.Background(), Document{Bytes: tt.data, MediaType: tt.mediaType})

			assert.Nil(t, got)
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrExtractionFailed)
			assert.NotErrorIs(t, err, ErrUnsupportedType)
		})
	}
}

func TestNormalizeDocumentSizeLimit(t *testing.T) {
	t.Parallel()

	log, _ := logger.NewTestLogger(t)
	n := NewNormalizer(nil, 4, log)

	_, err := n.NormalizeDocument(context.Background(), Document{Bytes: []byte("too long"), MediaType: MediaTypePlainTxt})

	assert.ErrorIs(t, err, ErrExtractionFailed)
}

func TestNormalizeDocumentSniffWarning(t *testing.T) {
	t.Parallel()

	n := newTestNormalizer(t, nil)
	pdfBytes := buildPDF(t, "Looks like a pdf")

	got, err := n.NormalizeDocument(context.Background(), Document{Bytes: pdfBytes, MediaType: MediaTypePDF})
	require.NoError(t, err)
	assert.Empty(t, got.Warnings, "matching content produces no warnings")

	got, err = n.NormalizeDocument(context.Background(), Document{Bytes: pdfBytes, MediaType: MediaTypePlainTxt})
	require.NoError(t, err, "dispatch follows the declared type even when content disagrees")
	assert.Contains(t, strings.Join(got.Warnings, "|"), "does not match detected content type application/pdf")
}

func TestNormalizeDocumentIdempotent(t *testing.T) {
	t.Parallel()

	n := newTestNormalizer(t, nil)
	docs := []Document{
		{Bytes: buildPDF(t, "Same text"), MediaType: MediaTypePDF},
		{Bytes: buildDOCX(t, "Same paragraph"), MediaType: MediaTypeDOCX},
		{Bytes: buildXLSX(t, [][]string{{"k", "v"}}), MediaType: MediaTypeXLSX},
		{Bytes: []byte("same"), MediaType: MediaTypePlainTxt},
	}

	for _, doc := range docs {
		first, err := n.NormalizeDocument(context.Background(), doc)
		require.NoError(t, err)
		second, err := n.NormalizeDocument(context.Background(), doc)
		require.NoError(t, err)
		assert.Equal(t, first.Text, second.Text, "media type %s", doc.MediaType)
	}
}

func TestNormalizeDispatchesOnKind(t *testing.T) {
	t.Parallel()

	platform := &fakePlatform{transcript: "spoken words"}
	n := newTestNormalizer(t, platform)

	got, err := n.Normalize(context.Background(), NewDocument([]byte("doc text"), MediaTypePlainTxt, "a.txt"))
	require.NoError(t, err)
	assert.Equal(t, "doc text", got.Text)

	got, err = n.Normalize(context.Background(), NewVideoReference("https://youtu.be/dQw4w9WgXcQ"))
	require.NoError(t, err)
	assert.Equal(t, "spoken words", got.Text)

	_, err = n.Normalize(context.Background(), Artifact{})
	assert.ErrorIs(t, err, ErrUnsupportedType)
}

func TestOpenDocument(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := filepath.Join(dir, "notes.txt")
	require.NoError(t, os.WriteFile(path, []byte("from disk"), 0o600))

	doc, err := OpenDocument(path, MediaTypePlainTxt, "notes.txt")
	require.NoError(t, err)
	assert.Equal(t, []byte("from disk"), doc.Bytes)
	assert.Equal(t, "notes.txt", doc.FileName)

	require.NoError(t, os.Remove(path), "file is closed after reading")

	_, err = OpenDocument(path, MediaTypePlainTxt, "notes.txt")
	assert.Error(t, err)
}

func TestSupportedMediaTypes(t *testing.T) {
	t.Parallel()

	types := SupportedMediaTypes()
	assert.Len(t, types, 6)
	for _, mt := range types {
		_, ok := lookupFormat(mt)
		assert.True(t, ok, mt)
	}
}
