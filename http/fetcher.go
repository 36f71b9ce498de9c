// Package http provides an HTTP-based implementation of exegesis.Fetcher
// for pages that don't require JavaScript rendering.
package http

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"mime"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/fwojciec/exegesis"
	"golang.org/x/net/html"
	"golang.org/x/net/html/charset"
)

// DefaultFetchTimeout is the default timeout for HTTP requests.
// Kept consistent with rod.DefaultFetchTimeout (10s).
const DefaultFetchTimeout = 10 * time.Second

// DefaultUserAgent identifies exegesis to the servers it fetches from.
const DefaultUserAgent = "exegesis/1.0"

// Ensure Fetcher implements exegesis.Fetcher at compile time.
var _ exegesis.Fetcher = (*Fetcher)(nil)

// Fetcher retrieves websites using plain HTTP requests.
// Unlike rod.Fetcher, this does not execute JavaScript.
type Fetcher struct {
	client    *http.Client
	timeout   time.Duration
	userAgent string
	limiter   *DomainLimiter
}

// Option configures a Fetcher.
type Option func(*Fetcher)

// WithTimeout sets the timeout for HTTP requests.
// Defaults to DefaultFetchTimeout (10s) if not specified.
func WithTimeout(d time.Duration) Option {
	return func(f *Fetcher) {
		f.timeout = d
	}
}

// WithRateLimit limits requests to rps per host. Zero or negative values
// disable limiting, which is the default.
func WithRateLimit(rps float64) Option {
	return func(f *Fetcher) {
		if rps > 0 {
			f.limiter = NewDomainLimiter(rps)
		} else {
			f.limiter = nil
		}
	}
}

// WithUserAgent sets the User-Agent header sent with every request.
func WithUserAgent(ua string) Option {
	return func(f *Fetcher) {
		f.userAgent = ua
	}
}

// NewFetcher creates a new HTTP-based Fetcher.
func NewFetcher(opts ...Option) *Fetcher {
	f := &Fetcher{
		timeout:   DefaultFetchTimeout,
		userAgent: DefaultUserAgent,
	}
	for _, opt := range opts {
		opt(f)
	}

	f.client = &http.Client{
		Timeout: f.timeout,
	}

	return f
}

// Fetch requests rawURL and parses the response body as HTML.
// Responses that are not text/html yield a Website with a nil Root.
func (f *Fetcher) Fetch(ctx context.Context, rawURL string) (*exegesis.Website, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return nil, exegesis.Errorf(exegesis.EINVALID, "invalid URL %q: %v", rawURL, err)
	}

	if f.limiter != nil {
		if err := f.limiter.Wait(ctx, u.Host); err != nil {
			return nil, err
		}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, err
	}
	if f.userAgent != "" {
		req.Header.Set("User-Agent", f.userAgent)
	}

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("HTTP %d for %s", resp.StatusCode, rawURL)
	}

	website := &exegesis.Website{URL: rawURL}

	contentType := resp.Header.Get("Content-Type")
	mediaType, _, err := mime.ParseMediaType(contentType)
	if err != nil || mediaType != "text/html" {
		return website, nil
	}

	// An empty body parses to an empty tree. charset.NewReader fails on it.
	buf := bufio.NewReader(resp.Body)
	if _, err := buf.Peek(1); errors.Is(err, io.EOF) {
		root, err := html.Parse(strings.NewReader(""))
		if err != nil {
			return nil, fmt.Errorf("failed to parse HTML of %s: %w", rawURL, err)
		}
		website.Root = root
		return website, nil
	}

	body, err := charset.NewReader(buf, contentType)
	if err != nil {
		return nil, fmt.Errorf("failed to decode body of %s: %w", rawURL, err)
	}
	root, err := html.Parse(body)
	if err != nil {
		return nil, fmt.Errorf("failed to parse HTML of %s: %w", rawURL, err)
	}
	website.Root = root

	return website, nil
}

// Close releases resources. For HTTP fetcher this is a no-op since
// http.Client doesn't require explicit cleanup.
func (f *Fetcher) Close() error {
	return nil
}
