package main

import (
	"fmt"
	"time"

	"github.com/fwojciec/vanity"
)

// Run executes the history command.
func (c *HistoryCmd) Run(deps *Dependencies) error {
	if deps.Runs == nil {
		err := vanity.Errorf(vanity.EINVALID, "run history requires a database; pass --db or set VANITY_DB")
		fmt.Fprintf(deps.Stderr, "error: %s\n", vanity.ErrorMessage(err))
		return err
	}

	filter := vanity.RunFilter{Limit: c.Limit}
	if c.Mode != "" {
		mode, err := vanity.ParseMode(c.Mode)
		if err != nil {
			fmt.Fprintf(deps.Stderr, "error: %s\n", vanity.ErrorMessage(err))
			return err
		}
		filter.Mode = &mode
	}

	runs, err := deps.Runs.FindRuns(deps.Ctx, filter)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", vanity.ErrorMessage(err))
		return err
	}

	if len(runs) == 0 {
		fmt.Fprintln(deps.Stdout, "No runs recorded. Use 'vanity check --db' to record one.")
		return nil
	}

	for _, r := range runs {
		fmt.Fprintf(deps.Stdout, "%s  %s  %-7s  candidates=%d available=%d unavailable=%d  %s\n",
			r.ID,
			r.StartedAt.Format(time.RFC3339),
			r.Mode,
			r.Candidates,
			r.Available,
			r.Unavailable,
			r.FinishedAt.Sub(r.StartedAt).Round(time.Second),
		)
	}

	return nil
}
