package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/exegesis"
)

// Ensure LoggingExtractionService implements exegesis.ExtractionService.
var _ exegesis.ExtractionService = (*LoggingExtractionService)(nil)

// LoggingExtractionService wraps an ExtractionService with debug logging of
// writes.
type LoggingExtractionService struct {
	next   exegesis.ExtractionService
	logger *slog.Logger
}

// NewLoggingExtractionService creates a new LoggingExtractionService.
func NewLoggingExtractionService(next exegesis.ExtractionService, logger *slog.Logger) *LoggingExtractionService {
	return &LoggingExtractionService{next: next, logger: logger}
}

// CreateExtraction delegates to the wrapped service and logs the operation.
func (s *LoggingExtractionService) CreateExtraction(ctx context.Context, e *exegesis.Extraction) (err error) {
	defer func(begin time.Time) {
		s.logger.Debug("save extraction",
			"url", e.URL,
			"position", e.Position,
			"hash", e.ContentHash,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.CreateExtraction(ctx, e)
}

// FindExtractionByID delegates to the wrapped service.
func (s *LoggingExtractionService) FindExtractionByID(ctx context.Context, id string) (*exegesis.Extraction, error) {
	return s.next.FindExtractionByID(ctx, id)
}

// FindExtractions delegates to the wrapped service.
func (s *LoggingExtractionService) FindExtractions(ctx context.Context, filter exegesis.ExtractionFilter) ([]*exegesis.Extraction, error) {
	return s.next.FindExtractions(ctx, filter)
}

// DeleteExtractionsByURL delegates to the wrapped service and logs the operation.
func (s *LoggingExtractionService) DeleteExtractionsByURL(ctx context.Context, url string) (err error) {
	defer func(begin time.Time) {
		s.logger.Debug("delete extractions",
			"url", url,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.DeleteExtractionsByURL(ctx, url)
}
