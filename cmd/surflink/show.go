package main

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/fwojciec/surflink"
)

// Run executes the show command.
func (c *ShowCmd) Run(deps *Dependencies) error {
	report, err := deps.Reports.FindReportByID(deps.Ctx, c.ID)
	if surflink.ErrorCode(err) == surflink.ENOTFOUND {
		fmt.Fprintf(deps.Stderr, "error: report %q not found. Use 'surflink history' to see stored reports.\n", c.ID)
		return err
	} else if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", surflink.ErrorMessage(err))
		return err
	}

	if c.Format == "json" {
		enc := json.NewEncoder(deps.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(report)
	}

	fmt.Fprintf(deps.Stdout, "Source:  %s\n", report.Source)
	if report.BaseLink != "" {
		fmt.Fprintf(deps.Stdout, "Base:    %s\n", report.BaseLink)
	}
	fmt.Fprintf(deps.Stdout, "Hash:    %s\n", report.ContentHash)
	fmt.Fprintf(deps.Stdout, "Created: %s\n", report.CreatedAt.Format("2006-01-02 15:04:05"))
	fmt.Fprintf(deps.Stdout, "Links:   %d\n", len(report.Links))

	for _, rec := range report.Links {
		fmt.Fprintf(deps.Stdout, "\n%d. %s\n", rec.Position, rec.URL)
		fmt.Fprintf(deps.Stdout, "   <%s %s>  %s\n", rec.Tag, rec.Attr, contentType(rec))
		if len(rec.Kinds) > 0 {
			fmt.Fprintf(deps.Stdout, "   %s\n", joinKinds(rec.Kinds))
		}
	}

	return nil
}

func contentType(rec surflink.LinkRecord) string {
	if rec.ContentType == "" {
		return "unknown"
	}
	return rec.ContentType
}

func joinKinds(kinds []surflink.Kind) string {
	names := make([]string, len(kinds))
	for i, k := range kinds {
		names[i] = string(k)
	}
	return strings.Join(names, ", ")
}
