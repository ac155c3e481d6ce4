package main

import (
	"context"
	"encoding/json"
	"fmt"
	"path/filepath"

	"github.com/fwojciec/surflink"
	"github.com/fwojciec/surflink/batch"
	"github.com/fwojciec/surflink/fs"
	surfprom "github.com/fwojciec/surflink/prometheus"
)

// Run executes the extract command.
func (c *ExtractCmd) Run(deps *Dependencies) error {
	kind, err := surflink.ParseKind(c.Kind)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", surflink.ErrorMessage(err))
		return err
	}

	cfg := c.config(deps.Config)
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", surflink.ErrorMessage(err))
		return err
	}

	paths := c.Paths
	if len(paths) == 0 {
		paths = []string{surflink.StdinName}
	}

	sources, err := deps.Sources.FindSources(deps.Ctx, paths)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", surflink.ErrorMessage(err))
		return err
	}
	if len(sources) == 0 {
		fmt.Fprintln(deps.Stderr, "No markup files found.")
		return nil
	}

	builder := &batch.Builder{
		Builders:    deps.Builders,
		Concurrency: c.Concurrency,
	}

	progress := func(event batch.ProgressEvent) {
		if event.Type == batch.ProgressFailed {
			fmt.Fprintf(deps.Stderr, "error: %s: %s\n", event.Source, errorMessage(event.Error))
		}
	}

	results, err := builder.BuildAll(deps.Ctx, sources, cfg, progress)
	if err != nil {
		return err
	}

	reports := []*surflink.Report{}
	failed := 0
	for _, result := range results {
		if result.Err != nil {
			failed++
			continue
		}
		report, err := surflink.NewReport(result.Source.Name, result.Document, kind)
		if err != nil {
			return err
		}
		if c.Save {
			if err := deps.Reports.CreateReport(deps.Ctx, report); err != nil {
				fmt.Fprintf(deps.Stderr, "error: saving %s: %s\n", report.Source, surflink.ErrorMessage(err))
				return err
			}
		}
		reports = append(reports, report)
	}

	if c.Out != "" {
		out := filepath.Clean(c.Out)
		store := fs.NewReportStore(filepath.Dir(out), filepath.Base(out))
		if err := writeReports(deps.Ctx, store, reports); err != nil {
			fmt.Fprintf(deps.Stderr, "error: writing reports: %v\n", err)
			return err
		}
	}

	if err := c.print(deps, reports, len(sources) > 1); err != nil {
		return err
	}

	if c.MetricsFile != "" && deps.Metrics != nil {
		if err := surfprom.WriteTextfile(c.MetricsFile, deps.Metrics); err != nil {
			fmt.Fprintf(deps.Stderr, "error: writing metrics: %v\n", err)
			return err
		}
	}

	if failed > 0 {
		return fmt.Errorf("%d of %d sources failed", failed, len(results))
	}
	return nil
}

func (c *ExtractCmd) print(deps *Dependencies, reports []*surflink.Report, prefix bool) error {
	if c.Format == "json" {
		enc := json.NewEncoder(deps.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(reports)
	}

	for _, report := range reports {
		for _, rec := range report.Links {
			if prefix {
				fmt.Fprintf(deps.Stdout, "%s\t%s\n", report.Source, rec.URL)
			} else {
				fmt.Fprintln(deps.Stdout, rec.URL)
			}
		}
	}
	return nil
}

// writeReports saves every report to store and commits. The output directory
// is left untouched if there are no reports or any report fails to save.
func writeReports(ctx context.Context, store *fs.ReportStore, reports []*surflink.Report) error {
	if len(reports) == 0 {
		return nil
	}
	for _, report := range reports {
		if err := store.Save(ctx, report); err != nil {
			_ = store.Abort()
			return err
		}
	}
	return store.Commit()
}
