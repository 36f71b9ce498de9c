package exegesis

import (
	"context"
	"time"
)

// Extraction is one stored document extracted from a URL.
type Extraction struct {
	ID          string    `json:"id"`
	URL         string    `json:"url"`
	Rule        string    `json:"rule"`
	Position    int       `json:"position"`
	Document    *Document `json:"document"`
	ContentHash string    `json:"contentHash"`
	ExtractedAt time.Time `json:"extractedAt"`
}

// Validate returns an error if the extraction contains invalid fields.
func (e *Extraction) Validate() error {
	if e.URL == "" {
		return Errorf(EINVALID, "extraction URL required")
	}
	if e.Document == nil {
		return Errorf(EINVALID, "extraction document required")
	}
	if e.Position < 0 {
		return Errorf(EINVALID, "extraction position must be non-negative")
	}
	return nil
}

// ExtractionService represents a service for storing extraction history.
type ExtractionService interface {
	// CreateExtraction stores an extraction, assigning its ID and content
	// hash. ExtractedAt is set to the current time when zero.
	CreateExtraction(ctx context.Context, e *Extraction) error

	// FindExtractionByID retrieves an extraction by ID.
	// Returns ENOTFOUND if the extraction does not exist.
	FindExtractionByID(ctx context.Context, id string) (*Extraction, error)

	// FindExtractions retrieves extractions matching the filter, newest
	// first and then by position.
	FindExtractions(ctx context.Context, filter ExtractionFilter) ([]*Extraction, error)

	// DeleteExtractionsByURL removes every extraction stored for url.
	DeleteExtractionsByURL(ctx context.Context, url string) error
}

// ExtractionFilter represents a filter for FindExtractions.
type ExtractionFilter struct {
	URL  *string `json:"url"`
	Rule *string `json:"rule"`

	Offset int `json:"offset"`
	Limit  int `json:"limit"`
}
