package scrape

import (
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/podfetch/podfetch/podcast"
)

// Document is a parsed landing page used for diagnostics and series naming.
type Document struct {
	doc *goquery.Document
}

// Parse builds a Document from page text. Malformed markup wraps podcast.ErrParse.
func Parse(page string) (*Document, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(page))
	if err != nil {
		return nil, fmt.Errorf("%w: html: %v", podcast.ErrParse, err)
	}
	return &Document{doc: doc}, nil
}

// Title returns the page's og:title, falling back to its <title>.
func (d *Document) Title() string {
	if og, ok := d.doc.Find(`meta[property="og:title"]`).Attr("content"); ok && strings.TrimSpace(og) != "" {
		return strings.TrimSpace(og)
	}
	return strings.TrimSpace(d.doc.Find("title").First().Text())
}

// StructuredData returns the raw contents of every ld+json block, in document order.
func (d *Document) StructuredData() []string {
	var blocks []string
	d.doc.Find(`script[type="application/ld+json"]`).Each(func(_ int, s *goquery.Selection) {
		blocks = append(blocks, strings.TrimSpace(s.Text()))
	})
	return blocks
}
