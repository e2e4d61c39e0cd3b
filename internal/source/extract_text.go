package source

import (
	"bytes"
	"fmt"
	"unicode/utf8"

	"golang.org/x/text/encoding/charmap"
)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// extractPlainText decodes UTF-8, falling back to ISO-8859-1 (Latin-1) when
// the bytes are not valid UTF-8. Latin-1 maps every byte, so the fallback
// only fails on a decoder fault.
func extractPlainText(data []byte) (string, []string, error) {
	data = bytes.TrimPrefix(data, utf8BOM)
	if utf8.Valid(data) {
		return string(data), nil, nil
	}

	decoded, err := charmap.ISO8859_1.NewDecoder().Bytes(data)
	if err != nil {
		return "", nil, fmt.Errorf("decode as latin-1: %w", err)
	}
	return string(decoded), []string{"text is not valid UTF-8; decoded as ISO-8859-1"}, nil
}
