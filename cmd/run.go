package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"sort"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/kilianp07/auslib/core/library"
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Apply the workbook to the configured model store",
	RunE:  run,
}

func init() {
	rootCmd.AddCommand(runCmd)
}

func run(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	svc, err := newService()
	if err != nil {
		return err
	}
	defer closeService(svc)

	rep, err := svc.Run(ctx)
	if err != nil {
		return err
	}
	kinds := make([]string, 0, len(rep.Counts))
	for k := range rep.Counts {
		kinds = append(kinds, string(k))
	}
	sort.Strings(kinds)
	out := cmd.OutOrStdout()
	for _, k := range kinds {
		if _, err := fmt.Fprintf(out, "%-30s %d\n", k, rep.Counts[library.Kind(k)]); err != nil {
			return err
		}
	}
	if rep.Failed() {
		return fmt.Errorf("%d ruleset(s) and %d object(s) skipped", len(rep.CompileErrors), len(rep.Errors))
	}
	return nil
}
