package cli

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/natefinch/atomic"
	"github.com/spf13/cobra"

	"github.com/orayew2002/timetracker/domain"
	"github.com/orayew2002/timetracker/processor"
)

type mergeOptions struct {
	inputs  []string
	summary string
	output  string
}

func newMergeCmd() *cobra.Command {
	var opts mergeOptions

	cmd := &cobra.Command{
		Use:   "merge",
		Short: "Merge local timesheet files into a report",
		Long:  "Reads every --input timesheet, optionally extends the --summary report, and writes the merged workbook to --output.",
		Example: `  timetracker merge -i alpha.xlsx -i beta.xlsx
  timetracker merge -i gamma.xlsx --summary ES_20250704_104529.xlsx -o merged.xlsx`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runMerge(cmd, opts)
		},
	}

	cmd.Flags().StringSliceVarP(&opts.inputs, "input", "i", nil, "input timesheet (repeatable)")
	cmd.Flags().StringVarP(&opts.summary, "summary", "s", "", "existing report to extend")
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output path (default ES_<timestamp>.xlsx)")
	_ = cmd.MarkFlagRequired("input")

	return cmd
}

func runMerge(cmd *cobra.Command, opts mergeOptions) error {
	inputs := make([][]byte, len(opts.inputs))
	for i, path := range opts.inputs {
		data, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("read input: %w", err)
		}
		inputs[i] = data
	}

	var summary []byte
	if opts.summary != "" {
		data, err := os.ReadFile(opts.summary)
		if err != nil {
			return fmt.Errorf("read summary: %w", err)
		}
		summary = data
	}

	out, err := processor.Run(cmd.Context(), nil, inputs, summary)
	if err != nil {
		printValidation(cmd.ErrOrStderr(), err)
		return err
	}

	path := opts.output
	if path == "" {
		path = "ES_" + time.Now().Format("20060102_150405") + ".xlsx"
	}
	if err := atomic.WriteFile(path, bytes.NewReader(out.Report)); err != nil {
		return fmt.Errorf("save: %w", err)
	}

	w := cmd.OutOrStdout()
	fmt.Fprintf(w, "merged %d files into %s (%d rows, %d days)\n",
		len(inputs), path, len(out.Matrix.Rows), out.Matrix.Calendar.Len())
	for _, e := range out.Overwork {
		fmt.Fprintf(w, "overwork: %s on %s: %.2fh\n", e.Employee, e.Date, e.Hours)
	}

	return nil
}

func printValidation(w io.Writer, err error) {
	var verr *domain.ValidationError
	if !errors.As(err, &verr) {
		return
	}
	for _, msg := range verr.Messages {
		fmt.Fprintln(w, "  -", msg)
	}
}
