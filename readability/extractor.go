// Package readability locates the main content of pages no rule covers,
// using go-readability.
package readability

import (
	"bytes"
	"fmt"
	"net/url"
	"strings"

	"cloud.google.com/go/civil"
	"github.com/fwojciec/exegesis"
	"github.com/go-shiori/go-readability"
	"golang.org/x/net/html"
)

// Ensure Extractor implements exegesis.WebsiteExtractor at compile time.
var _ exegesis.WebsiteExtractor = (*Extractor)(nil)

// Extractor finds the main article of a website with readability and
// converts it with a content extractor, usually the generic one.
type Extractor struct {
	content exegesis.Extractor
}

// NewExtractor creates an Extractor that converts located content with
// content.
func NewExtractor(content exegesis.Extractor) *Extractor {
	return &Extractor{content: content}
}

// ExtractWebsite returns a single document built from the article.
// Title and publication date come from the article metadata when the
// content extractor found none.
func (e *Extractor) ExtractWebsite(w *exegesis.Website, sink exegesis.ErrorSink) ([]*exegesis.Document, error) {
	if w.Root == nil {
		return nil, exegesis.Errorf(exegesis.ENODOCUMENT, "website %s has no document", w.URL)
	}

	pageURL, err := url.Parse(w.URL)
	if err != nil {
		return nil, exegesis.Errorf(exegesis.EINVALID, "invalid URL %q: %v", w.URL, err)
	}

	// readability rewrites the tree it works on, so it gets its own copy.
	var buf bytes.Buffer
	if err := html.Render(&buf, w.Root); err != nil {
		return nil, fmt.Errorf("rendering %s: %w", w.URL, err)
	}

	article, err := readability.FromReader(&buf, pageURL)
	if err != nil {
		return nil, exegesis.Errorf(exegesis.ENODOCUMENT, "no article in %s: %v", w.URL, err)
	}
	if article.Node == nil {
		return nil, exegesis.Errorf(exegesis.ENODOCUMENT, "no article in %s", w.URL)
	}

	doc := &exegesis.Document{}
	if docs := e.content.Extract(article.Node, sink); len(docs) > 0 {
		doc = docs[0]
	}

	if title := strings.TrimSpace(article.Title); doc.Title == nil && title != "" {
		doc.Title = []exegesis.Part{exegesis.Text(title)}
	}
	if doc.PublicationDate == nil && article.PublishedTime != nil {
		date := civil.DateOf(*article.PublishedTime)
		doc.PublicationDate = &date
	}

	return []*exegesis.Document{doc}, nil
}
