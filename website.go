package exegesis

import (
	"context"

	"golang.org/x/net/html"
)

// Website is a fetched page. Root is nil when the response carried no HTML
// that could be parsed into a tree.
type Website struct {
	URL  string
	Root *html.Node
}

// Fetcher retrieves websites.
type Fetcher interface {
	// Fetch requests url and parses the response. A response that is not
	// HTML yields a Website with a nil Root rather than an error.
	Fetch(ctx context.Context, url string) (*Website, error)

	// Close releases resources held by the fetcher.
	Close() error
}

// ErrorSink receives non-fatal part construction errors during extraction.
type ErrorSink interface {
	ReportError(err error)
}

// ErrorSinkFunc adapts a function to the ErrorSink interface.
type ErrorSinkFunc func(err error)

func (f ErrorSinkFunc) ReportError(err error) { f(err) }

// DiscardErrors is an ErrorSink that drops every error.
var DiscardErrors ErrorSink = ErrorSinkFunc(func(error) {})

// ErrorCollector is an ErrorSink that keeps every reported error.
// It is not safe for concurrent use.
type ErrorCollector struct {
	Errors []error
}

func (c *ErrorCollector) ReportError(err error) { c.Errors = append(c.Errors, err) }
