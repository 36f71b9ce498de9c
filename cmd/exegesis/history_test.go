package main_test

import (
	"bytes"
	"context"
	"errors"
	"testing"
	"time"

	"github.com/fwojciec/exegesis"
	main "github.com/fwojciec/exegesis/cmd/exegesis"
	"github.com/fwojciec/exegesis/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHistoryCmd_Run(t *testing.T) {
	t.Parallel()

	t.Run("lists extractions", func(t *testing.T) {
		t.Parallel()

		var gotFilter exegesis.ExtractionFilter
		extractions := &mock.ExtractionService{
			FindExtractionsFn: func(_ context.Context, filter exegesis.ExtractionFilter) ([]*exegesis.Extraction, error) {
				gotFilter = filter
				return []*exegesis.Extraction{
					{
						URL:         "https://example.com/a",
						Rule:        "blog",
						Position:    1,
						ContentHash: "0123456789abcdef",
						ExtractedAt: time.Now(),
						Document:    &exegesis.Document{Title: []exegesis.Part{exegesis.Text("  Post\ntitle ")}},
					},
					{
						URL:      "https://example.com/b",
						Document: &exegesis.Document{},
					},
				}, nil
			},
		}

		stdout := &bytes.Buffer{}
		deps := &main.Dependencies{
			Ctx:         context.Background(),
			Stdout:      stdout,
			Stderr:      &bytes.Buffer{},
			Extractions: extractions,
		}

		cmd := &main.HistoryCmd{URL: "https://example.com/a", Rule: "blog", Limit: 5}
		err := cmd.Run(deps)

		require.NoError(t, err)
		require.NotNil(t, gotFilter.URL)
		assert.Equal(t, "https://example.com/a", *gotFilter.URL)
		require.NotNil(t, gotFilter.Rule)
		assert.Equal(t, "blog", *gotFilter.Rule)
		assert.Equal(t, 5, gotFilter.Limit)
		assert.Contains(t, stdout.String(), "0123456789abcdef  https://example.com/a#1  blog  Post title\n")
		assert.Contains(t, stdout.String(), "https://example.com/b#0  -  (untitled)\n")
	})

	t.Run("shows hint when empty", func(t *testing.T) {
		t.Parallel()

		extractions := &mock.ExtractionService{
			FindExtractionsFn: func(_ context.Context, _ exegesis.ExtractionFilter) ([]*exegesis.Extraction, error) {
				return nil, nil
			},
		}

		stdout := &bytes.Buffer{}
		deps := &main.Dependencies{
			Ctx:         context.Background(),
			Stdout:      stdout,
			Stderr:      &bytes.Buffer{},
			Extractions: extractions,
		}

		err := (&main.HistoryCmd{}).Run(deps)

		require.NoError(t, err)
		assert.Contains(t, stdout.String(), "No extractions found")
	})

	t.Run("renders full documents", func(t *testing.T) {
		t.Parallel()

		extractions := &mock.ExtractionService{
			FindExtractionsFn: func(_ context.Context, _ exegesis.ExtractionFilter) ([]*exegesis.Extraction, error) {
				return []*exegesis.Extraction{
					{URL: "https://example.com/a", Document: &exegesis.Document{Content: []exegesis.Part{exegesis.Text("hi")}}},
				}, nil
			},
		}

		stdout := &bytes.Buffer{}
		deps := &main.Dependencies{
			Ctx:         context.Background(),
			Stdout:      stdout,
			Stderr:      &bytes.Buffer{},
			Extractions: extractions,
			Renderer:    &exegesis.JSONRenderer{},
		}

		err := (&main.HistoryCmd{Full: true}).Run(deps)

		require.NoError(t, err)
		assert.Equal(t, `[{"title":null,"publication_date":null,"content":[{"Text":"hi"}]}]`+"\n", stdout.String())
	})

	t.Run("clears history of a URL", func(t *testing.T) {
		t.Parallel()

		var deleted string
		extractions := &mock.ExtractionService{
			DeleteExtractionsByURLFn: func(_ context.Context, url string) error {
				deleted = url
				return nil
			},
		}

		stdout := &bytes.Buffer{}
		deps := &main.Dependencies{
			Ctx:         context.Background(),
			Stdout:      stdout,
			Stderr:      &bytes.Buffer{},
			Extractions: extractions,
		}

		err := (&main.HistoryCmd{URL: "https://example.com/a", Clear: true}).Run(deps)

		require.NoError(t, err)
		assert.Equal(t, "https://example.com/a", deleted)
		assert.Contains(t, stdout.String(), "Cleared history")
	})

	t.Run("clear requires a URL", func(t *testing.T) {
		t.Parallel()

		deps := &main.Dependencies{
			Ctx:         context.Background(),
			Stdout:      &bytes.Buffer{},
			Stderr:      &bytes.Buffer{},
			Extractions: &mock.ExtractionService{},
		}

		err := (&main.HistoryCmd{Clear: true}).Run(deps)

		assert.Equal(t, exegesis.EINVALID, exegesis.ErrorCode(err))
	})

	t.Run("returns service errors", func(t *testing.T) {
		t.Parallel()

		extractions := &mock.ExtractionService{
			FindExtractionsFn: func(_ context.Context, _ exegesis.ExtractionFilter) ([]*exegesis.Extraction, error) {
				return nil, errors.New("database locked")
			},
		}

		stderr := &bytes.Buffer{}
		deps := &main.Dependencies{
			Ctx:         context.Background(),
			Stdout:      &bytes.Buffer{},
			Stderr:      stderr,
			Extractions: extractions,
		}

		err := (&main.HistoryCmd{}).Run(deps)

		require.Error(t, err)
		assert.Contains(t, stderr.String(), "error:")
	})
}
