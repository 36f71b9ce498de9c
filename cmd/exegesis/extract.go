package main

import (
	"fmt"

	"github.com/fwojciec/exegesis"
	"github.com/fwojciec/exegesis/crawl"
)

// Run executes the extract command.
func (c *ExtractCmd) Run(deps *Dependencies) error {
	crawler := &crawl.Crawler{
		Fetcher:     deps.Fetcher,
		Extractor:   deps.Extractor,
		Rules:       deps.Rules,
		Concurrency: c.Concurrency,
	}
	if c.Save {
		crawler.Extractions = deps.Extractions
	}

	results, err := crawler.Crawl(deps.Ctx, c.URLs, nil)
	if err != nil {
		return err
	}

	var docs []*exegesis.Document
	var failed int
	for _, r := range results {
		if n := len(r.PartErrors); n > 0 {
			fmt.Fprintf(deps.Stderr, "warning: %s: dropped %d element(s) that could not be extracted\n", r.URL, n)
		}
		if r.Err != nil {
			fmt.Fprintf(deps.Stderr, "error: %s: %s\n", r.URL, describe(r.Err))
			failed++
			continue
		}
		if deps.Writer != nil {
			path, err := deps.Writer.WriteDocuments(r.URL, r.Documents)
			if err != nil {
				fmt.Fprintf(deps.Stderr, "error: %s: %s\n", r.URL, describe(err))
				failed++
				continue
			}
			fmt.Fprintln(deps.Stdout, path)
			continue
		}
		docs = append(docs, r.Documents...)
	}

	if deps.Writer == nil {
		if err := deps.Renderer.Render(deps.Stdout, docs); err != nil {
			return fmt.Errorf("failed to render documents: %w", err)
		}
	}

	if failed > 0 {
		return fmt.Errorf("%d of %d URLs failed", failed, len(results))
	}
	return nil
}

// describe returns a user-facing message for err, hinting at the flags that
// help with common failures.
func describe(err error) string {
	switch exegesis.ErrorCode(err) {
	case exegesis.ENORULE:
		return exegesis.ErrorMessage(err) + " (use --fallback to extract anyway)"
	case exegesis.EINTERNAL:
		return err.Error()
	}
	return exegesis.ErrorMessage(err)
}
