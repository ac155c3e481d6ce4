package main

import (
	"fmt"
	"time"

	"github.com/fwojciec/surflink"
)

// Run executes the history command.
func (c *HistoryCmd) Run(deps *Dependencies) error {
	filter := surflink.ReportFilter{Limit: c.Limit}
	if c.Source != "" {
		filter.Source = &c.Source
	}

	reports, err := deps.Reports.FindReports(deps.Ctx, filter)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", surflink.ErrorMessage(err))
		return err
	}

	if len(reports) == 0 {
		fmt.Fprintln(deps.Stdout, "No reports found. Use 'surflink extract --save' to store one.")
		return nil
	}

	for _, r := range reports {
		fmt.Fprintf(deps.Stdout, "%s  %s  %s  %s\n", r.ID, r.CreatedAt.Format(time.RFC3339), r.ContentHash, r.Source)
	}

	return nil
}
