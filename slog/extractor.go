package slog

import (
	"log/slog"
	"time"

	"github.com/fwojciec/exegesis"
)

// Ensure LoggingExtractor implements exegesis.WebsiteExtractor.
var _ exegesis.WebsiteExtractor = (*LoggingExtractor)(nil)

// LoggingExtractor wraps a WebsiteExtractor with logging. Part errors are
// logged as warnings before being passed on to the caller's sink.
type LoggingExtractor struct {
	next   exegesis.WebsiteExtractor
	logger *slog.Logger
}

// NewLoggingExtractor creates a new LoggingExtractor.
func NewLoggingExtractor(next exegesis.WebsiteExtractor, logger *slog.Logger) *LoggingExtractor {
	return &LoggingExtractor{next: next, logger: logger}
}

// ExtractWebsite logs the extraction and delegates to the wrapped extractor.
func (e *LoggingExtractor) ExtractWebsite(w *exegesis.Website, sink exegesis.ErrorSink) (docs []*exegesis.Document, err error) {
	defer func(begin time.Time) {
		e.logger.Info("extract",
			"url", w.URL,
			"documents", len(docs),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return e.next.ExtractWebsite(w, NewErrorSink(e.logger.With("url", w.URL), sink))
}
