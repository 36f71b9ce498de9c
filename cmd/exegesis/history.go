package main

import (
	"fmt"
	"time"

	"github.com/fwojciec/exegesis"
)

// Run executes the history command.
func (c *HistoryCmd) Run(deps *Dependencies) error {
	if c.Clear {
		if c.URL == "" {
			return exegesis.Errorf(exegesis.EINVALID, "--clear requires a URL")
		}
		if err := deps.Extractions.DeleteExtractionsByURL(deps.Ctx, c.URL); err != nil {
			fmt.Fprintf(deps.Stderr, "error: %s\n", exegesis.ErrorMessage(err))
			return err
		}
		fmt.Fprintf(deps.Stdout, "Cleared history for %s\n", c.URL)
		return nil
	}

	filter := exegesis.ExtractionFilter{Limit: c.Limit}
	if c.URL != "" {
		filter.URL = &c.URL
	}
	if c.Rule != "" {
		filter.Rule = &c.Rule
	}

	extractions, err := deps.Extractions.FindExtractions(deps.Ctx, filter)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", exegesis.ErrorMessage(err))
		return err
	}

	if c.Full {
		docs := make([]*exegesis.Document, len(extractions))
		for i, e := range extractions {
			docs[i] = e.Document
		}
		return deps.Renderer.Render(deps.Stdout, docs)
	}

	if len(extractions) == 0 {
		fmt.Fprintln(deps.Stdout, "No extractions found. Use 'exegesis extract --save' to record some.")
		return nil
	}

	for _, e := range extractions {
		title := exegesis.NormalizedText(e.Document.Title)
		if title == "" {
			title = "(untitled)"
		}
		rule := e.Rule
		if rule == "" {
			rule = "-"
		}
		fmt.Fprintf(deps.Stdout, "%s  %s  %s#%d  %s  %s\n",
			e.ExtractedAt.Local().Format(time.DateTime), e.ContentHash, e.URL, e.Position, rule, title)
	}

	return nil
}
