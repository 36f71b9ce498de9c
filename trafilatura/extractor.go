// Package trafilatura locates the main content of pages no rule covers,
// using go-trafilatura.
package trafilatura

import (
	"bytes"
	"fmt"

	"cloud.google.com/go/civil"
	"github.com/fwojciec/exegesis"
	"github.com/markusmobius/go-trafilatura"
	"golang.org/x/net/html"
)

// Ensure Extractor implements exegesis.WebsiteExtractor at compile time.
var _ exegesis.WebsiteExtractor = (*Extractor)(nil)

// Extractor finds the main content of a website with trafilatura and
// converts it with a content extractor, usually the generic one.
type Extractor struct {
	content exegesis.Extractor
}

// NewExtractor creates an Extractor that converts located content with
// content.
func NewExtractor(content exegesis.Extractor) *Extractor {
	return &Extractor{content: content}
}

// ExtractWebsite returns a single document built from the main content.
// Title and publication date come from page metadata when the content
// extractor found none.
func (e *Extractor) ExtractWebsite(w *exegesis.Website, sink exegesis.ErrorSink) ([]*exegesis.Document, error) {
	if w.Root == nil {
		return nil, exegesis.Errorf(exegesis.ENODOCUMENT, "website %s has no document", w.URL)
	}

	// trafilatura prunes the tree it works on, so it gets its own copy.
	var buf bytes.Buffer
	if err := html.Render(&buf, w.Root); err != nil {
		return nil, fmt.Errorf("rendering %s: %w", w.URL, err)
	}

	result, err := trafilatura.Extract(&buf, trafilatura.Options{
		EnableFallback: true,
	})
	if err != nil {
		return nil, exegesis.Errorf(exegesis.ENODOCUMENT, "no main content in %s: %v", w.URL, err)
	}
	if result.ContentNode == nil {
		return nil, exegesis.Errorf(exegesis.ENODOCUMENT, "no main content in %s", w.URL)
	}

	doc := &exegesis.Document{}
	if docs := e.content.Extract(result.ContentNode, sink); len(docs) > 0 {
		doc = docs[0]
	}

	if doc.Title == nil && result.Metadata.Title != "" {
		doc.Title = []exegesis.Part{exegesis.Text(result.Metadata.Title)}
	}
	if doc.PublicationDate == nil && !result.Metadata.Date.IsZero() {
		date := civil.DateOf(result.Metadata.Date)
		doc.PublicationDate = &date
	}

	return []*exegesis.Document{doc}, nil
}
