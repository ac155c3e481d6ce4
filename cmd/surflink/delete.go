package main

import (
	"fmt"

	"github.com/fwojciec/surflink"
)

// Run executes the delete command.
func (c *DeleteCmd) Run(deps *Dependencies) error {
	if !c.Force {
		fmt.Fprintf(deps.Stderr, "error: use --force to confirm deletion\n")
		return surflink.Errorf(surflink.EINVALID, "use --force to confirm deletion")
	}

	if err := deps.Reports.DeleteReport(deps.Ctx, c.ID); surflink.ErrorCode(err) == surflink.ENOTFOUND {
		fmt.Fprintf(deps.Stderr, "error: report %q not found. Use 'surflink history' to see stored reports.\n", c.ID)
		return err
	} else if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", surflink.ErrorMessage(err))
		return err
	}

	fmt.Fprintf(deps.Stdout, "Deleted report %s\n", c.ID)
	return nil
}
