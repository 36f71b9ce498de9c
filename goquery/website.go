package goquery

import (
	"io"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/exegesis"
)

// ParseWebsite parses an HTML body fetched from url.
func ParseWebsite(url string, r io.Reader) (*exegesis.Website, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return nil, exegesis.Errorf(exegesis.EINVALID, "failed to parse HTML: %v", err)
	}
	return &exegesis.Website{URL: url, Root: doc.Get(0)}, nil
}

// NewWebsite parses markup as the body fetched from url.
func NewWebsite(url, markup string) (*exegesis.Website, error) {
	return ParseWebsite(url, strings.NewReader(markup))
}
