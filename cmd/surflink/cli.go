package main

import (
	"context"
	"io"
	"log/slog"

	"github.com/fwojciec/surflink"
	prom "github.com/prometheus/client_golang/prometheus"
)

// Dependencies holds all services and configuration for command execution.
type Dependencies struct {
	Ctx    context.Context
	Stdout io.Writer
	Stderr io.Writer
	Logger *slog.Logger

	// Config holds extraction defaults loaded from --config.
	Config surflink.Config

	Sources  surflink.SourceService
	Builders map[surflink.Format]surflink.DocumentBuilder
	Reports  surflink.ReportService

	// Metrics is set when build metrics are collected.
	Metrics prom.Gatherer
}

// CLI defines the command-line interface structure for Kong.
type CLI struct {
	Verbose bool   `short:"v" help:"Log debug output to stderr"`
	Config  string `short:"c" type:"path" help:"YAML file with default extraction options"`
	DB      string `name:"db" type:"path" help:"Report database path (default SURFLINK_DB or ~/.surflink/surflink.db)"`

	Extract ExtractCmd `cmd:"" help:"Extract links from markup files, directories or standard input"`
	History HistoryCmd `cmd:"" help:"List stored reports"`
	Show    ShowCmd    `cmd:"" help:"Print a stored report"`
	Delete  DeleteCmd  `cmd:"" help:"Delete a stored report"`
}

// ExtractCmd is the "extract" subcommand.
type ExtractCmd struct {
	Paths       []string `arg:"" optional:"" help:"Files, directories or - for standard input (default -)"`
	Attrs       []string `short:"a" sep:"," help:"Attributes searched for links, highest priority first"`
	StartTag    string   `help:"Only extract links inside the first element with this tag"`
	Unique      bool     `short:"u" help:"Drop links whose raw value was already seen"`
	Absolute    bool     `short:"A" help:"Resolve links against the base URL"`
	RequireBase bool     `help:"With --absolute, fail when no base URL is found"`
	Strict      bool     `help:"Do not guess content types from file extensions"`
	Base        string   `short:"b" help:"Base URL overriding any <base href>"`
	Kind        string   `short:"k" default:"all" help:"Link kind to print (all, resource, hyperlink, linked, script, javascript, stylesheet, image, audio, video, weblink, html, webpage, valid)"`
	Format      string   `short:"f" default:"text" enum:"text,json" help:"Output format (text, json)"`
	Input       string   `short:"i" default:"auto" enum:"auto,html,xml,markdown" help:"Markup format (auto, html, xml, markdown)"`
	Concurrency int      `short:"j" default:"8" help:"Sources built in parallel"`
	Save        bool     `short:"s" help:"Store a report for each source in the database"`
	Out         string   `short:"o" type:"path" help:"Write one JSON report per source into this directory"`
	MetricsFile string   `type:"path" help:"Write build metrics in Prometheus text format to this file"`
}

// HistoryCmd is the "history" subcommand.
type HistoryCmd struct {
	Source string `help:"Only list reports for this source"`
	Limit  int    `short:"n" default:"20" help:"Maximum number of reports"`
}

// ShowCmd is the "show" subcommand.
type ShowCmd struct {
	ID     string `arg:"" help:"Report ID"`
	Format string `short:"f" default:"text" enum:"text,json" help:"Output format (text, json)"`
}

// DeleteCmd is the "delete" subcommand.
type DeleteCmd struct {
	ID    string `arg:"" help:"Report ID"`
	Force bool   `help:"Confirm deletion"`
}

// errorMessage returns the message of an application error, or the full
// text of any other error.
func errorMessage(err error) string {
	if surflink.ErrorCode(err) == surflink.EINTERNAL {
		return err.Error()
	}
	return surflink.ErrorMessage(err)
}
