package cmd

import (
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/kilianp07/auslib/core/schedule"
)

var (
	queryRuleset string
	queryAt      string
)

var queryCmd = &cobra.Command{
	Use:   "query",
	Short: "Print the value of a compiled ruleset at a point in time",
	RunE:  runQuery,
}

func init() {
	queryCmd.Flags().StringVarP(&queryRuleset, "ruleset", "r", "", "ruleset name, e.g. OfficeA-Occupancy")
	queryCmd.Flags().StringVar(&queryAt, "at", "", "RFC3339 timestamp (default now)")
	_ = queryCmd.MarkFlagRequired("ruleset")
	rootCmd.AddCommand(queryCmd)
}

func runQuery(cmd *cobra.Command, args []string) error {
	at := time.Now()
	if queryAt != "" {
		t, err := time.Parse(time.RFC3339, queryAt)
		if err != nil {
			return fmt.Errorf("--at: %w", err)
		}
		at = t
	}

	svc, err := newService()
	if err != nil {
		return err
	}
	defer closeService(svc)

	rulesets, err := svc.Compile()
	var batch *schedule.BatchError
	if err != nil && !errors.As(err, &batch) {
		return err
	}
	rs, ok := rulesets[queryRuleset]
	if !ok {
		if batch != nil {
			if cerr, failed := batch.Errors[queryRuleset]; failed {
				return cerr
			}
		}
		return fmt.Errorf("ruleset %q not found", queryRuleset)
	}
	p := rs.ProfileFor(at)
	v, ok := p.ValueAt(schedule.At(at))
	if !ok {
		return fmt.Errorf("profile %q has no value at %s", p.Name, schedule.At(at))
	}
	_, err = fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\t%g\n", rs.Name, p.Name, v)
	return err
}
