package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"strings"

	"github.com/alecthomas/kong"
	"github.com/fwojciec/exegesis"
	"github.com/fwojciec/exegesis/etree"
	"github.com/fwojciec/exegesis/fs"
	"github.com/fwojciec/exegesis/goquery"
	"github.com/fwojciec/exegesis/html"
	"github.com/fwojciec/exegesis/htmltomarkdown"
	exhttp "github.com/fwojciec/exegesis/http"
	"github.com/fwojciec/exegesis/readability"
	"github.com/fwojciec/exegesis/rod"
	exslog "github.com/fwojciec/exegesis/slog"
	"github.com/fwojciec/exegesis/sqlite"
	"github.com/fwojciec/exegesis/toml"
	"github.com/fwojciec/exegesis/trafilatura"
	"github.com/fwojciec/exegesis/yaml"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	m := NewMain()

	if err := m.Run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, err)
		stop()
		os.Exit(1)
	}
}

// Main represents the program.
type Main struct {
	// SQLite database used for extraction history. Opened on demand.
	DB *sqlite.DB

	// Fetcher overrides the fetcher built from flags. Set before calling Run().
	Fetcher exegesis.Fetcher

	closers []io.Closer
}

// NewMain returns a new instance of Main with defaults.
func NewMain() *Main {
	return &Main{}
}

// Close gracefully stops the program.
func (m *Main) Close() error {
	var firstErr error
	for i := len(m.closers) - 1; i >= 0; i-- {
		if err := m.closers[i].Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	m.closers = nil
	return firstErr
}

// Run executes the CLI with the given arguments.
func (m *Main) Run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	// Initialize dependencies struct for Kong binding
	deps := &Dependencies{
		Ctx:    ctx,
		Stdout: stdout,
		Stderr: stderr,
	}

	cli := &CLI{}
	parser, err := kong.New(cli,
		kong.Name("exegesis"),
		kong.Description("Extract structured documents from web pages with declarative rules"),
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}), // Don't exit on help
		kong.Vars{"db_path": defaultDBPath()},
		kong.Bind(deps),
	)
	if err != nil {
		return fmt.Errorf("failed to create parser: %w", err)
	}

	if len(args) == 0 {
		_, _ = parser.Parse([]string{"--help"})
		return fmt.Errorf("no command specified. Run 'exegesis --help' to see available commands")
	}

	if args[0] == "help" || args[0] == "--help" || args[0] == "-h" {
		_, _ = parser.Parse([]string{"--help"})
		return nil
	}

	kongCtx, err := parser.Parse(args)
	if err != nil {
		return err
	}
	defer m.Close()

	level := slog.LevelWarn
	if cli.Verbose {
		level = slog.LevelDebug
	}
	deps.Logger = slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level}))
	deps.Verbose = cli.Verbose

	deps.Renderer, err = newRenderer(cli.Format)
	if err != nil {
		return err
	}

	switch cmd := strings.Fields(kongCtx.Command())[0]; cmd {
	case "extract":
		if err := m.wireExtract(deps, cli); err != nil {
			return err
		}
	case "match":
		deps.Rules, err = loadRuleSet(cli.Match.Rules)
		if err != nil {
			return err
		}
	case "history":
		if err := m.openDB(deps, cli.DB); err != nil {
			return err
		}
	}

	return kongCtx.Run(deps)
}

// wireExtract builds the fetch and extraction pipeline from flags.
func (m *Main) wireExtract(deps *Dependencies, cli *CLI) error {
	rules, err := loadRuleSet(cli.Extract.Rules)
	if err != nil {
		return err
	}
	deps.Rules = rules

	var extractor exegesis.WebsiteExtractor = rules
	switch cli.Extract.Fallback {
	case "trafilatura":
		extractor = &exegesis.FallbackExtractor{Primary: rules, Fallback: trafilatura.NewExtractor(goquery.NewGenericExtractor())}
	case "readability":
		extractor = &exegesis.FallbackExtractor{Primary: rules, Fallback: readability.NewExtractor(goquery.NewGenericExtractor())}
	}

	fetcher := m.Fetcher
	if fetcher == nil {
		if cli.Extract.JS {
			f, err := rod.NewFetcher(rod.WithFetchTimeout(cli.Extract.Timeout))
			if err != nil {
				fmt.Fprintln(deps.Stderr, "Hint: Chrome or Chromium must be installed")
				return fmt.Errorf("failed to start browser: %w", err)
			}
			fetcher = f
		} else {
			opts := []exhttp.Option{exhttp.WithTimeout(cli.Extract.Timeout)}
			if cli.Extract.Rate > 0 {
				opts = append(opts, exhttp.WithRateLimit(cli.Extract.Rate))
			}
			fetcher = exhttp.NewFetcher(opts...)
		}
		m.closers = append(m.closers, fetcher)
	}

	if cli.Verbose {
		fetcher = exslog.NewLoggingFetcher(fetcher, deps.Logger)
		extractor = exslog.NewLoggingExtractor(extractor, deps.Logger)
	}
	deps.Fetcher = fetcher
	deps.Extractor = extractor

	if cli.Extract.Out != "" {
		deps.Writer = fs.NewWriter(cli.Extract.Out, extensions[cli.Format], deps.Renderer)
	}

	if cli.Extract.Save {
		if err := m.openDB(deps, cli.DB); err != nil {
			return err
		}
	}
	return nil
}

// openDB opens the history database and wires the extraction service.
func (m *Main) openDB(deps *Dependencies, path string) error {
	if path != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
			return fmt.Errorf("failed to create database directory: %w", err)
		}
	}

	m.DB = sqlite.NewDB(path)
	if err := m.DB.Open(); err != nil {
		fmt.Fprintf(deps.Stderr, "Hint: Set EXEGESIS_DB to use a different database path\n")
		return fmt.Errorf("failed to open database at %q: %w", path, err)
	}
	m.closers = append(m.closers, m.DB)

	var svc exegesis.ExtractionService = sqlite.NewExtractionService(m.DB)
	if deps.Verbose {
		svc = exslog.NewLoggingExtractionService(svc, deps.Logger)
	}
	deps.Extractions = svc
	return nil
}

// loadRuleSet compiles each rule file on its own and appends the results in
// order, so earlier files take precedence. The decoder is chosen by file
// extension.
func loadRuleSet(paths []string) (*exegesis.RuleSet, error) {
	rules := exegesis.NewRuleSet()
	for _, path := range paths {
		var configs []*exegesis.RuleConfig
		var err error
		switch strings.ToLower(filepath.Ext(path)) {
		case ".toml":
			configs, err = toml.LoadRules(path)
		case ".yaml", ".yml":
			configs, err = yaml.LoadRules(path)
		default:
			return nil, exegesis.Errorf(exegesis.EINVALID, "unsupported rules file %q: use .toml, .yaml or .yml", path)
		}
		if err != nil {
			return nil, err
		}
		fileRules, err := goquery.Compile(configs)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", path, err)
		}
		rules.Append(fileRules)
	}
	return rules, nil
}

// extensions maps output formats to file extensions.
var extensions = map[string]string{
	"json":     ".json",
	"html":     ".html",
	"markdown": ".md",
	"xml":      ".xml",
}

// newRenderer returns the renderer for an output format.
func newRenderer(format string) (exegesis.Renderer, error) {
	switch format {
	case "json":
		return &exegesis.JSONRenderer{Indent: "  "}, nil
	case "html":
		return html.NewRenderer(), nil
	case "markdown":
		return htmltomarkdown.NewRenderer(html.NewRenderer()), nil
	case "xml":
		return etree.NewRenderer(), nil
	}
	return nil, exegesis.Errorf(exegesis.EINVALID, "unknown format %q", format)
}

func defaultDBPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "exegesis.db"
	}
	return filepath.Join(home, ".exegesis", "history.db")
}
