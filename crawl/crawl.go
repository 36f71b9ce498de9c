// Package crawl fetches and extracts batches of URLs concurrently.
package crawl

import (
	"context"
	"sync/atomic"

	"github.com/fwojciec/exegesis"
	"golang.org/x/sync/errgroup"
)

// DefaultConcurrency is used when Crawler.Concurrency is not positive.
const DefaultConcurrency = 4

// Crawler orchestrates fetching, extraction and optional storage of URLs.
// The extractor is shared between workers and must be safe for concurrent
// use, which holds for a built RuleSet.
type Crawler struct {
	Fetcher   exegesis.Fetcher
	Extractor exegesis.WebsiteExtractor

	// Rules names the rule recorded with saved extractions. Optional.
	Rules *exegesis.RuleSet

	// Extractions stores results when set.
	Extractions exegesis.ExtractionService

	Concurrency int
}

// Result holds the outcome of one URL.
type Result struct {
	URL        string
	Rule       string
	Documents  []*exegesis.Document
	PartErrors []error
	Err        error
}

// ProgressEvent reports progress during a crawl.
type ProgressEvent struct {
	Type      ProgressType
	Completed int
	Total     int
	URL       string
	Error     error
}

// ProgressType indicates the type of progress event.
type ProgressType int

const (
	ProgressStarted ProgressType = iota
	ProgressCompleted
	ProgressFailed
	ProgressFinished
)

// ProgressFunc is a callback for reporting crawl progress. It is called from
// a single goroutine.
type ProgressFunc func(event ProgressEvent)

// Crawl processes urls and returns one result per URL in input order.
// Per-URL failures are recorded in the results; the returned error is only
// set when ctx is canceled.
func (c *Crawler) Crawl(ctx context.Context, urls []string, progress ProgressFunc) ([]*Result, error) {
	concurrency := c.Concurrency
	if concurrency <= 0 {
		concurrency = DefaultConcurrency
	}

	total := len(urls)
	resultCh := make(chan indexed, total)
	var completed atomic.Int64

	if progress != nil {
		progress(ProgressEvent{Type: ProgressStarted, Total: total})
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(concurrency)

	go func() {
		for i, url := range urls {
			g.Go(func() error {
				resultCh <- indexed{position: i, result: c.process(gctx, url)}
				return nil
			})
		}
		_ = g.Wait()
		close(resultCh)
	}()

	results := make([]*Result, total)
	for r := range resultCh {
		completed.Add(1)
		results[r.position] = r.result

		if progress != nil {
			event := ProgressEvent{
				Type:      ProgressCompleted,
				Completed: int(completed.Load()),
				Total:     total,
				URL:       r.result.URL,
			}
			if r.result.Err != nil {
				event.Type = ProgressFailed
				event.Error = r.result.Err
			}
			progress(event)
		}
	}

	if err := ctx.Err(); err != nil {
		return results, err
	}

	if c.Extractions != nil {
		for _, r := range results {
			if r.Err != nil {
				continue
			}
			if err := c.save(ctx, r); err != nil {
				r.Err = err
			}
		}
	}

	if progress != nil {
		progress(ProgressEvent{Type: ProgressFinished, Completed: total, Total: total})
	}

	return results, nil
}

type indexed struct {
	position int
	result   *Result
}

// process fetches and extracts a single URL.
func (c *Crawler) process(ctx context.Context, url string) *Result {
	result := &Result{URL: url}

	w, err := c.Fetcher.Fetch(ctx, url)
	if err != nil {
		result.Err = err
		return result
	}

	if c.Rules != nil {
		if r, err := c.Rules.Find(w); err == nil {
			result.Rule = r.Name
		}
	}

	var collector exegesis.ErrorCollector
	docs, err := c.Extractor.ExtractWebsite(w, &collector)
	result.PartErrors = collector.Errors
	if err != nil {
		result.Err = err
		return result
	}
	result.Documents = docs

	return result
}

// save stores the documents of r. Earlier extractions of the URL are kept.
func (c *Crawler) save(ctx context.Context, r *Result) error {
	for i, doc := range r.Documents {
		e := &exegesis.Extraction{
			URL:      r.URL,
			Rule:     r.Rule,
			Position: i,
			Document: doc,
		}
		if err := c.Extractions.CreateExtraction(ctx, e); err != nil {
			return err
		}
	}
	return nil
}
