package mock

import (
	"context"

	"github.com/fwojciec/exegesis"
)

var _ exegesis.ExtractionService = (*ExtractionService)(nil)

// ExtractionService is a mock implementation of exegesis.ExtractionService.
type ExtractionService struct {
	CreateExtractionFn       func(ctx context.Context, e *exegesis.Extraction) error
	FindExtractionByIDFn     func(ctx context.Context, id string) (*exegesis.Extraction, error)
	FindExtractionsFn        func(ctx context.Context, filter exegesis.ExtractionFilter) ([]*exegesis.Extraction, error)
	DeleteExtractionsByURLFn func(ctx context.Context, url string) error
}

func (s *ExtractionService) CreateExtraction(ctx context.Context, e *exegesis.Extraction) error {
	return s.CreateExtractionFn(ctx, e)
}

func (s *ExtractionService) FindExtractionByID(ctx context.Context, id string) (*exegesis.Extraction, error) {
	return s.FindExtractionByIDFn(ctx, id)
}

func (s *ExtractionService) FindExtractions(ctx context.Context, filter exegesis.ExtractionFilter) ([]*exegesis.Extraction, error) {
	return s.FindExtractionsFn(ctx, filter)
}

func (s *ExtractionService) DeleteExtractionsByURL(ctx context.Context, url string) error {
	return s.DeleteExtractionsByURLFn(ctx, url)
}
