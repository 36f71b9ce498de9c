package main

import (
	"context"
	"io"
	"log/slog"
	"time"

	"github.com/fwojciec/exegesis"
	"github.com/fwojciec/exegesis/fs"
)

// Dependencies holds all services and configuration for command execution.
type Dependencies struct {
	Ctx     context.Context
	Stdout  io.Writer
	Stderr  io.Writer
	Logger  *slog.Logger
	Verbose bool

	Rules       *exegesis.RuleSet
	Fetcher     exegesis.Fetcher
	Extractor   exegesis.WebsiteExtractor
	Extractions exegesis.ExtractionService
	Renderer    exegesis.Renderer

	// Writer, when set, receives the documents of each URL instead of stdout.
	Writer *fs.Writer
}

// CLI defines the command-line interface structure for Kong.
type CLI struct {
	Verbose bool   `short:"v" help:"Log fetches and extractions to stderr"`
	Format  string `short:"f" enum:"json,html,markdown,xml" default:"json" help:"Output format (${enum})"`
	DB      string `name:"db" env:"EXEGESIS_DB" default:"${db_path}" help:"Extraction history database"`

	Extract ExtractCmd `cmd:"" help:"Fetch URLs and extract documents"`
	Match   MatchCmd   `cmd:"" help:"Show which rule applies to each URL"`
	History HistoryCmd `cmd:"" help:"List stored extractions"`
}

// ExtractCmd is the "extract" subcommand.
type ExtractCmd struct {
	URLs        []string      `arg:"" name:"url" help:"URLs to extract"`
	Rules       []string      `short:"r" name:"rules" env:"EXEGESIS_RULES" required:"" help:"Rules file, .toml or .yaml (repeatable, applied in order)"`
	JS          bool          `name:"js" help:"Render pages in a headless browser"`
	Fallback    string        `enum:"none,trafilatura,readability" default:"none" help:"Extractor for URLs no rule matches (${enum})"`
	Concurrency int           `short:"c" default:"4" help:"Concurrent fetch limit"`
	Rate        float64       `help:"Requests per second per host (0 for unlimited)"`
	Timeout     time.Duration `default:"30s" help:"Per-page fetch timeout"`
	Save        bool          `help:"Store extracted documents in the history database"`
	Out         string        `short:"o" type:"path" help:"Write one file per URL into this directory instead of stdout"`
}

// MatchCmd is the "match" subcommand.
type MatchCmd struct {
	URLs  []string `arg:"" name:"url" help:"URLs to match"`
	Rules []string `short:"r" name:"rules" env:"EXEGESIS_RULES" required:"" help:"Rules file, .toml or .yaml (repeatable, applied in order)"`
}

// HistoryCmd is the "history" subcommand.
type HistoryCmd struct {
	URL   string `arg:"" optional:"" help:"Only show extractions of this URL"`
	Rule  string `help:"Only show extractions made with this rule"`
	Limit int    `short:"n" default:"20" help:"Maximum number of extractions to show"`
	Full  bool   `help:"Render the stored documents instead of a summary"`
	Clear bool   `help:"Delete stored extractions of URL"`
}
