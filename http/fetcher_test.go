package http_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/fwojciec/exegesis"
	"github.com/fwojciec/exegesis/goquery"
	exegesishttp "github.com/fwojciec/exegesis/http"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFetcher_Fetch(t *testing.T) {
	t.Parallel()

	t.Run("parses HTML responses", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "text/html; charset=utf-8")
			_, _ = w.Write([]byte("<html><body><p>Hello World</p></body></html>"))
		}))
		defer server.Close()

		fetcher := exegesishttp.NewFetcher()
		defer fetcher.Close()

		website, err := fetcher.Fetch(context.Background(), server.URL)
		require.NoError(t, err)
		assert.Equal(t, server.URL, website.URL)
		require.NotNil(t, website.Root)

		docs := goquery.NewGenericExtractor().Extract(website.Root, exegesis.DiscardErrors)
		require.Len(t, docs, 1)
		assert.Equal(t, []exegesis.Part{exegesis.Paragraph{exegesis.Text("Hello World")}}, docs[0].Content)
	})

	t.Run("decodes the declared charset", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "text/html; charset=iso-8859-1")
			_, _ = w.Write([]byte("<html><body><p>caf\xe9</p></body></html>"))
		}))
		defer server.Close()

		fetcher := exegesishttp.NewFetcher()
		defer fetcher.Close()

		website, err := fetcher.Fetch(context.Background(), server.URL)
		require.NoError(t, err)

		docs := goquery.NewGenericExtractor().Extract(website.Root, exegesis.DiscardErrors)
		require.Len(t, docs, 1)
		assert.Equal(t, "café", exegesis.TextOf(docs[0].Content))
	})

	t.Run("returns a website without document for other content types", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(`{"a": 1}`))
		}))
		defer server.Close()

		fetcher := exegesishttp.NewFetcher()
		defer fetcher.Close()

		website, err := fetcher.Fetch(context.Background(), server.URL)
		require.NoError(t, err)
		assert.Nil(t, website.Root)

		_, err = exegesis.Extract(website, exegesis.NewRuleSet(), nil)
		assert.Equal(t, exegesis.ENODOCUMENT, exegesis.ErrorCode(err))
	})

	t.Run("sends the user agent", func(t *testing.T) {
		t.Parallel()

		got := make(chan string, 1)
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			got <- r.Header.Get("User-Agent")
			w.Header().Set("Content-Type", "text/html")
		}))
		defer server.Close()

		fetcher := exegesishttp.NewFetcher(exegesishttp.WithUserAgent("test-agent"))
		defer fetcher.Close()

		_, err := fetcher.Fetch(context.Background(), server.URL)
		require.NoError(t, err)
		assert.Equal(t, "test-agent", <-got)
	})

	t.Run("parses an empty html body", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "text/html; charset=utf-8")
		}))
		defer server.Close()

		fetcher := exegesishttp.NewFetcher()
		defer fetcher.Close()

		website, err := fetcher.Fetch(context.Background(), server.URL)
		require.NoError(t, err)
		require.NotNil(t, website.Root)

		docs := goquery.NewGenericExtractor().Extract(website.Root, exegesis.DiscardErrors)
		require.Len(t, docs, 1)
		assert.Empty(t, docs[0].Content)
		assert.Nil(t, docs[0].Title)
	})

	t.Run("spaces requests to the same host", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "text/html")
		}))
		defer server.Close()

		fetcher := exegesishttp.NewFetcher(exegesishttp.WithRateLimit(10))
		defer fetcher.Close()

		_, err := fetcher.Fetch(context.Background(), server.URL)
		require.NoError(t, err)

		start := time.Now()
		_, err = fetcher.Fetch(context.Background(), server.URL)
		require.NoError(t, err)
		assert.GreaterOrEqual(t, time.Since(start), 80*time.Millisecond)
	})

	t.Run("respects custom timeout option", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			time.Sleep(100 * time.Millisecond)
			_, _ = w.Write([]byte("response"))
		}))
		defer server.Close()

		fetcher := exegesishttp.NewFetcher(exegesishttp.WithTimeout(10 * time.Millisecond))
		defer fetcher.Close()

		_, err := fetcher.Fetch(context.Background(), server.URL)
		require.Error(t, err)
	})

	t.Run("respects context cancellation", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			time.Sleep(100 * time.Millisecond)
			_, _ = w.Write([]byte("response"))
		}))
		defer server.Close()

		fetcher := exegesishttp.NewFetcher()
		defer fetcher.Close()

		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		_, err := fetcher.Fetch(ctx, server.URL)
		require.Error(t, err)
	})

	t.Run("returns error for non-200 status codes", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusNotFound)
			_, _ = w.Write([]byte("404 Not Found"))
		}))
		defer server.Close()

		fetcher := exegesishttp.NewFetcher()
		defer fetcher.Close()

		_, err := fetcher.Fetch(context.Background(), server.URL)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "404")
	})

	t.Run("rejects invalid URLs", func(t *testing.T) {
		t.Parallel()

		fetcher := exegesishttp.NewFetcher()
		defer fetcher.Close()

		_, err := fetcher.Fetch(context.Background(), "http://[::1")
		assert.Equal(t, exegesis.EINVALID, exegesis.ErrorCode(err))
	})
}

// Compile-time verification that Fetcher implements exegesis.Fetcher
var _ exegesis.Fetcher = (*exegesishttp.Fetcher)(nil)
