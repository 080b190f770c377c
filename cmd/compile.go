package cmd

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/kilianp07/auslib/core/schedule"
	"github.com/kilianp07/auslib/pkg/export"
)

var (
	compileOut    string
	compileFormat string
)

var compileCmd = &cobra.Command{
	Use:   "compile",
	Short: "Compile the workbook schedules and export the rulesets",
	RunE:  runCompile,
}

func init() {
	compileCmd.Flags().StringVarP(&compileOut, "out", "o", "", "output file (default stdout)")
	compileCmd.Flags().StringVarP(&compileFormat, "format", "f", "json", "output format: json or csv")
	rootCmd.AddCommand(compileCmd)
}

func runCompile(cmd *cobra.Command, args []string) error {
	svc, err := newService()
	if err != nil {
		return err
	}
	defer closeService(svc)

	rulesets, cerr := svc.Compile()
	var batch *schedule.BatchError
	if cerr != nil && !errors.As(cerr, &batch) {
		return cerr
	}

	var w io.Writer = cmd.OutOrStdout()
	if compileOut != "" {
		f, err := os.Create(compileOut)
		if err != nil {
			return err
		}
		defer func() { _ = f.Close() }()
		w = f
	}
	if err := export.Write(w, compileFormat, rulesets); err != nil {
		return fmt.Errorf("export: %w", err)
	}
	return cerr
}
