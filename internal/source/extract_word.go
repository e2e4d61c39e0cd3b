package source

import (
	"archive/zip"
	"bytes"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"strings"
)

const wordBodyPart = "word/document.xml"

// extractWord reads the main body part of an Office Open XML word-processing
// package and returns one line per paragraph. Legacy binary .doc files are
// not zip containers and fail here.
func extractWord(data []byte) (string, []string, error) {
	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		if errors.Is(err, zip.ErrFormat) {
			return "", nil, fmt.Errorf("not an Office Open XML package (legacy binary documents are not supported): %w", err)
		}
		return "", nil, fmt.Errorf("open package: %w", err)
	}

	var body *zip.File
	for _, f := range zr.File {
		if f.Name == wordBodyPart {
			body = f
			break
		}
	}
	if body == nil {
		return "", nil, fmt.Errorf("package has no %s part", wordBodyPart)
	}

	rc, err := body.Open()
	if err != nil {
		return "", nil, fmt.Errorf("open %s: %w", wordBodyPart, err)
	}
	defer rc.Close()

	paragraphs, err := wordParagraphs(rc)
	if err != nil {
		return "", nil, err
	}
	return strings.Join(paragraphs, "\n"), nil, nil
}

// wordParagraphs walks the document XML collecting the text runs of each
// <w:p>. Paragraphs nest inside text boxes and shapes, so open paragraphs are
// kept on a stack; each reserves its slot at its start tag and is filled at
// its own end tag, which keeps document order. Tabs and breaks inside a run
// are kept as whitespace.
func wordParagraphs(r io.Reader) ([]string, error) {
	dec := xml.NewDecoder(r)

	type openParagraph struct {
		slot int
		text *strings.Builder
	}

	var (
		paragraphs []string
		open       []openParagraph
		inText     bool
	)
	current := func() *strings.Builder {
		if len(open) == 0 {
			return nil
		}
		return open[len(open)-1].text
	}

	for {
		tok, err := dec.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("parse %s: %w", wordBodyPart, err)
		}

		switch t := tok.(type) {
		case xml.StartElement:
			switch t.Name.Local {
			case "p":
				open = append(open, openParagraph{slot: len(paragraphs), text: &strings.Builder{}})
				paragraphs = append(paragraphs, "")
			case "t":
				inText = true
			case "tab":
				if b := current(); b != nil {
					b.WriteByte('\t')
				}
			case "br", "cr":
				if b := current(); b != nil {
					b.WriteByte('\n')
				}
			}
		case xml.EndElement:
			switch t.Name.Local {
			case "t":
				inText = false
			case "p":
				if len(open) > 0 {
					top := open[len(open)-1]
					paragraphs[top.slot] = top.text.String()
					open = open[:len(open)-1]
				}
			}
		case xml.CharData:
			if b := current(); inText && b != nil {
				b.Write(t)
			}
		}
	}
	return paragraphs, nil
}
