package mock

import (
	"github.com/fwojciec/exegesis"
	"golang.org/x/net/html"
)

var _ exegesis.Extractor = (*Extractor)(nil)

// Extractor is a mock implementation of exegesis.Extractor.
type Extractor struct {
	ExtractFn func(root *html.Node, sink exegesis.ErrorSink) []*exegesis.Document
}

func (e *Extractor) Extract(root *html.Node, sink exegesis.ErrorSink) []*exegesis.Document {
	return e.ExtractFn(root, sink)
}

var _ exegesis.WebsiteExtractor = (*WebsiteExtractor)(nil)

// WebsiteExtractor is a mock implementation of exegesis.WebsiteExtractor.
type WebsiteExtractor struct {
	ExtractWebsiteFn func(w *exegesis.Website, sink exegesis.ErrorSink) ([]*exegesis.Document, error)
}

func (e *WebsiteExtractor) ExtractWebsite(w *exegesis.Website, sink exegesis.ErrorSink) ([]*exegesis.Document, error) {
	return e.ExtractWebsiteFn(w, sink)
}
