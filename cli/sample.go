package cli

import (
	"fmt"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/orayew2002/timetracker/domain"
	"github.com/orayew2002/timetracker/sample"
)

type sampleOptions struct {
	dir       string
	files     int
	employees int
	tasks     int
	from      string
}

func newSampleCmd() *cobra.Command {
	var opts sampleOptions

	cmd := &cobra.Command{
		Use:   "sample",
		Short: "Generate random timesheets for trying out merges",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runSample(cmd, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.dir, "dir", "d", ".", "directory to write the timesheets to")
	cmd.Flags().IntVarP(&opts.files, "files", "n", 2, "number of project timesheets")
	cmd.Flags().IntVar(&opts.employees, "employees", 5, "employees per timesheet")
	cmd.Flags().IntVar(&opts.tasks, "tasks", 12, "tasks per timesheet")
	cmd.Flags().StringVar(&opts.from, "from", "", "earliest task start, "+domain.DateLayout+" (default today)")

	return cmd
}

func runSample(cmd *cobra.Command, opts sampleOptions) error {
	if opts.files < 1 || opts.employees < 1 || opts.tasks < 1 {
		return fmt.Errorf("--files, --employees and --tasks must be positive")
	}

	from := time.Now()
	if opts.from != "" {
		t, err := time.Parse(domain.DateLayout, opts.from)
		if err != nil {
			return fmt.Errorf("--from: %w", err)
		}
		from = t
	}

	for i := range opts.files {
		code := sample.ProjectCode(i + 1)
		path := filepath.Join(opts.dir, code+".xlsx")
		if err := sample.WriteToFile(sample.Generate(code, opts.employees, opts.tasks, from), path); err != nil {
			return fmt.Errorf("write %s: %w", path, err)
		}
		fmt.Fprintln(cmd.OutOrStdout(), path)
	}

	return nil
}
