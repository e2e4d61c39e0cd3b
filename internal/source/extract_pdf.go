package source

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/ledongthuc/pdf"
)

// extractPDF returns the plain text of every page separated by a blank line.
// A page that cannot be decoded is skipped and reported as a warning; the
// document fails only when no page could be read at all.
func extractPDF(data []byte) (string, []string, error) {
	r, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", nil, fmt.Errorf("pdf reader: %w", err)
	}

	total := r.NumPage()
	if total == 0 {
		return "", nil, fmt.Errorf("pdf has no pages")
	}

	var (
		pages    []string
		warnings []string
		readable int
	)
	for i := 1; i <= total; i++ {
		p := r.Page(i)
		if p.V.IsNull() {
			warnings = append(warnings, fmt.Sprintf("page %d: missing page object", i))
			continue
		}
		text, err := p.GetPlainText(nil)
		if err != nil {
			warnings = append(warnings, fmt.Sprintf("page %d: %v", i, err))
			continue
		}
		readable++
		pages = append(pages, strings.TrimSpace(text))
	}

	if readable == 0 {
		return "", warnings, fmt.Errorf("none of %d pages could be read", total)
	}

	return strings.Join(pages, "\n\n"), warnings, nil
}
