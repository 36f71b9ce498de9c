package sqlite

import (
	"context"
	"database/sql"
	"encoding/hex"
	"encoding/json"
	"strings"
	"time"

	"github.com/cespare/xxhash/v2"
	"github.com/fwojciec/exegesis"
	"github.com/google/uuid"
)

// Compile-time interface verification.
var _ exegesis.ExtractionService = (*ExtractionService)(nil)

// ExtractionService implements exegesis.ExtractionService using SQLite.
type ExtractionService struct {
	db *DB
}

// NewExtractionService creates a new ExtractionService.
func NewExtractionService(db *DB) *ExtractionService {
	return &ExtractionService{db: db}
}

// hashContent computes xxHash of content and returns hex string.
func hashContent(content []byte) string {
	h := xxhash.Sum64(content)
	b := make([]byte, 8)
	b[0] = byte(h >> 56)
	b[1] = byte(h >> 48)
	b[2] = byte(h >> 40)
	b[3] = byte(h >> 32)
	b[4] = byte(h >> 24)
	b[5] = byte(h >> 16)
	b[6] = byte(h >> 8)
	b[7] = byte(h)
	return hex.EncodeToString(b)
}

// CreateExtraction stores a new extraction.
func (s *ExtractionService) CreateExtraction(ctx context.Context, e *exegesis.Extraction) error {
	if err := e.Validate(); err != nil {
		return err
	}

	doc, err := json.Marshal(e.Document)
	if err != nil {
		return exegesis.Errorf(exegesis.EINVALID, "encode document: %s", err)
	}

	e.ID = uuid.New().String()
	e.ContentHash = hashContent(doc)
	if e.ExtractedAt.IsZero() {
		e.ExtractedAt = time.Now()
	}
	e.ExtractedAt = e.ExtractedAt.UTC()

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO extractions (id, url, rule, position, document, content_hash, extracted_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`, e.ID, e.URL, e.Rule, e.Position, string(doc), e.ContentHash, formatTimestamp(e.ExtractedAt))

	return err
}

// FindExtractionByID retrieves an extraction by ID.
func (s *ExtractionService) FindExtractionByID(ctx context.Context, id string) (*exegesis.Extraction, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, url, rule, position, document, content_hash, extracted_at
		FROM extractions
		WHERE id = ?
	`, id)

	e, err := scanExtraction(row)
	if err == sql.ErrNoRows {
		return nil, exegesis.Errorf(exegesis.ENOTFOUND, "extraction not found")
	}
	if err != nil {
		return nil, err
	}
	return e, nil
}

// FindExtractions retrieves extractions matching the filter, newest first.
// Extractions made at the same time are ordered by position.
func (s *ExtractionService) FindExtractions(ctx context.Context, filter exegesis.ExtractionFilter) ([]*exegesis.Extraction, error) {
	var query strings.Builder
	var args []any

	query.WriteString("SELECT id, url, rule, position, document, content_hash, extracted_at FROM extractions WHERE 1=1")

	if filter.URL != nil {
		query.WriteString(" AND url = ?")
		args = append(args, *filter.URL)
	}
	if filter.Rule != nil {
		query.WriteString(" AND rule = ?")
		args = append(args, *filter.Rule)
	}

	query.WriteString(" ORDER BY extracted_at DESC, position ASC")
	appendPagination(&query, &args, filter.Limit, filter.Offset)

	rows, err := s.db.QueryContext(ctx, query.String(), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var extractions []*exegesis.Extraction
	for rows.Next() {
		e, err := scanExtraction(rows)
		if err != nil {
			return nil, err
		}
		extractions = append(extractions, e)
	}

	return extractions, rows.Err()
}

// DeleteExtractionsByURL removes all extractions stored for url.
func (s *ExtractionService) DeleteExtractionsByURL(ctx context.Context, url string) error {
	_, err := s.db.ExecContext(ctx, "DELETE FROM extractions WHERE url = ?", url)
	return err
}

type scanner interface {
	Scan(dest ...any) error
}

func scanExtraction(row scanner) (*exegesis.Extraction, error) {
	var e exegesis.Extraction
	var doc, extractedAt string

	if err := row.Scan(&e.ID, &e.URL, &e.Rule, &e.Position, &doc, &e.ContentHash, &extractedAt); err != nil {
		return nil, err
	}

	e.Document = &exegesis.Document{}
	if err := json.Unmarshal([]byte(doc), e.Document); err != nil {
		return nil, exegesis.Errorf(exegesis.EINTERNAL, "decode document %s: %s", e.ID, err)
	}

	t, err := parseTimestamp(extractedAt, "extracted_at")
	if err != nil {
		return nil, err
	}
	e.ExtractedAt = t

	return &e, nil
}
