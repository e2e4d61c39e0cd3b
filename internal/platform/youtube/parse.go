package youtube

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"html"
	"io"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/dyatlov/go-opengraph/opengraph"
	"github.com/phrazzld/vyasa-api/internal/source"
)

// parseTimedText returns the non-empty <text> segments of a timed-text
// document. Segment bodies are HTML-escaped a second time inside the XML, so
// they are unescaped after XML decoding.
func parseTimedText(body []byte) ([]string, error) {
	dec := xml.NewDecoder(bytes.NewReader(body))

	var segments []string
	for {
		tok, err := dec.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("parse timed text: %w", err)
		}

		start, ok := tok.(xml.StartElement)
		if !ok || start.Name.Local != "text" {
			continue
		}
		var content string
		if err := dec.DecodeElement(&content, &start); err != nil {
			return nil, fmt.Errorf("parse timed text segment: %w", err)
		}
		content = strings.Join(strings.Fields(html.UnescapeString(content)), " ")
		if content != "" {
			segments = append(segments, content)
		}
	}
	return segments, nil
}

// parseMetadata reads og:title and og:description, falling back to the
// plain meta tags and the document title.
func parseMetadata(page []byte) source.VideoMetadata {
	var meta source.VideoMetadata

	og := opengraph.NewOpenGraph()
	if err := og.ProcessHTML(bytes.NewReader(page)); err == nil {
		meta.Title = strings.TrimSpace(og.Title)
		meta.Description = strings.TrimSpace(og.Description)
	}

	if meta.Title != "" && meta.Description != "" {
		return meta
	}

	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(page))
	if err != nil {
		return meta
	}
	if meta.Title == "" {
		meta.Title = extractTitle(doc)
	}
	if meta.Description == "" {
		if desc, ok := doc.Find("meta[name='description']").First().Attr("content"); ok {
			meta.Description = strings.TrimSpace(desc)
		}
	}
	return meta
}

func extractTitle(doc *goquery.Document) string {
	if title, ok := doc.Find("meta[name='title']").First().Attr("content"); ok && strings.TrimSpace(title) != "" {
		return strings.TrimSpace(title)
	}
	title := strings.TrimSpace(doc.Find("title").First().Text())
	return strings.TrimSpace(strings.TrimSuffix(title, "- YouTube"))
}
