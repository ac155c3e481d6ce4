package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/alecthomas/kong"
	"github.com/fwojciec/surflink"
	"github.com/fwojciec/surflink/etree"
	"github.com/fwojciec/surflink/fs"
	"github.com/fwojciec/surflink/goldmark"
	"github.com/fwojciec/surflink/goquery"
	surfprom "github.com/fwojciec/surflink/prometheus"
	surfslog "github.com/fwojciec/surflink/slog"
	"github.com/fwojciec/surflink/sqlite"
	"github.com/fwojciec/surflink/url"
	prom "github.com/prometheus/client_golang/prometheus"
)

func main() {
	ctx := context.Background()

	m := NewMain()

	if err := m.Run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// Main represents the program.
type Main struct {
	// Database path. Set before calling Run(). Overridden by --db.
	DBPath string

	// Standard input, read for the "-" source.
	Stdin io.Reader

	// SQLite database used by SQLite service implementations.
	DB *sqlite.DB

	// Services for end-to-end testing.
	ReportService surflink.ReportService
}

// NewMain returns a new instance of Main with defaults.
func NewMain() *Main {
	return &Main{
		DBPath: defaultDBPath(),
		Stdin:  os.Stdin,
	}
}

// Close gracefully stops the program.
func (m *Main) Close() error {
	if m.DB != nil {
		return m.DB.Close()
	}
	return nil
}

// Run executes the CLI with the given arguments.
func (m *Main) Run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	deps := &Dependencies{
		Ctx:    ctx,
		Stdout: stdout,
		Stderr: stderr,
	}

	cli := &CLI{}
	parser, err := kong.New(cli,
		kong.Name("surflink"),
		kong.Description("Extract and classify links from HTML, XML and Markdown."),
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}), // Don't exit on help
		kong.Bind(deps),
	)
	if err != nil {
		return fmt.Errorf("failed to create parser: %w", err)
	}

	if len(args) == 0 {
		_, _ = parser.Parse([]string{"--help"})
		return fmt.Errorf("no command specified. Run 'surflink --help' to see available commands")
	}

	switch args[0] {
	case "help", "--help", "-h":
		_, _ = parser.Parse([]string{"--help"})
		return nil
	}

	kongCtx, err := parser.Parse(args)
	if err != nil {
		return err
	}
	cmd := strings.Fields(kongCtx.Command())[0]

	deps.Logger = newLogger(stderr, cli.Verbose)

	if cli.Config != "" {
		cfg, err := LoadConfig(cli.Config)
		if err != nil {
			fmt.Fprintf(stderr, "error: %s\n", surflink.ErrorMessage(err))
			return err
		}
		deps.Config = cfg
	}

	if cli.DB != "" {
		m.DBPath = cli.DB
	}

	if cmd != "extract" || cli.Extract.Save {
		if err := m.openDB(); err != nil {
			fmt.Fprintf(stderr, "Hint: Set SURFLINK_DB or --db to use a different database path\n")
			return err
		}
		defer m.Close()
		deps.Reports = surfslog.NewLoggingReportService(m.ReportService, deps.Logger)
	}

	if cmd == "extract" {
		sources := fs.NewSourceService(m.Stdin)
		if cli.Extract.Input != "auto" {
			format, err := surflink.ParseFormat(cli.Extract.Input)
			if err != nil {
				fmt.Fprintf(stderr, "error: %s\n", surflink.ErrorMessage(err))
				return err
			}
			sources.Format = format
		}
		deps.Sources = sources

		var metrics *surfprom.Metrics
		if cli.Extract.MetricsFile != "" {
			reg := prom.NewRegistry()
			metrics = surfprom.NewMetrics(reg)
			deps.Metrics = reg
		}
		deps.Builders = newBuilders(deps.Logger, metrics)
	}

	return kongCtx.Run(deps)
}

func (m *Main) openDB() error {
	if m.ReportService != nil {
		return nil
	}
	if err := os.MkdirAll(filepath.Dir(m.DBPath), 0755); err != nil {
		return fmt.Errorf("failed to create database directory: %w", err)
	}
	m.DB = sqlite.NewDB(m.DBPath)
	if err := m.DB.Open(); err != nil {
		return fmt.Errorf("failed to open database at %q: %w", m.DBPath, err)
	}
	m.ReportService = sqlite.NewReportService(m.DB)
	return nil
}

// newBuilders returns a document builder for every supported format. When
// metrics is not nil each builder records build metrics.
func newBuilders(logger *slog.Logger, metrics *surfprom.Metrics) map[surflink.Format]surflink.DocumentBuilder {
	parsers := map[surflink.Format]surflink.Parser{
		surflink.FormatHTML:     goquery.NewParser(),
		surflink.FormatXML:      etree.NewParser(),
		surflink.FormatMarkdown: goldmark.NewParser(),
	}
	resolver := url.NewResolver()

	builders := make(map[surflink.Format]surflink.DocumentBuilder, len(parsers))
	for format, parser := range parsers {
		var b surflink.DocumentBuilder = surflink.NewBuilder(surfslog.NewLoggingParser(parser, format, logger), resolver)
		b = surfslog.NewLoggingBuilder(b, logger)
		if metrics != nil {
			b = metrics.Wrap(b, format)
		}
		builders[format] = b
	}
	return builders
}

func newLogger(w io.Writer, verbose bool) *slog.Logger {
	if !verbose {
		return slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: slog.LevelDebug}))
}

func defaultDBPath() string {
	if path := os.Getenv("SURFLINK_DB"); path != "" {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "surflink.db"
	}
	return filepath.Join(home, ".surflink", "surflink.db")
}
