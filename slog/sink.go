package slog

import (
	"errors"
	"log/slog"

	"github.com/fwojciec/exegesis"
)

// Ensure ErrorSink implements exegesis.ErrorSink.
var _ exegesis.ErrorSink = (*ErrorSink)(nil)

// ErrorSink logs every reported part error as a warning. A non-nil next sink
// receives the error afterwards.
type ErrorSink struct {
	next   exegesis.ErrorSink
	logger *slog.Logger
}

// NewErrorSink creates a new ErrorSink.
func NewErrorSink(logger *slog.Logger, next exegesis.ErrorSink) *ErrorSink {
	return &ErrorSink{next: next, logger: logger}
}

// ReportError logs err and forwards it.
func (s *ErrorSink) ReportError(err error) {
	var partErr *exegesis.PartError
	if errors.As(err, &partErr) {
		s.logger.Warn("part error",
			"role", string(partErr.Role),
			"tag", partErr.Tag,
			"err", partErr.Err,
		)
	} else {
		s.logger.Warn("part error", "err", err)
	}
	if s.next != nil {
		s.next.ReportError(err)
	}
}
