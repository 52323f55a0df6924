// Package cli implements the timetracker command line.
package cli

import (
	"github.com/spf13/cobra"
)

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:          "timetracker",
		Short:        "Merge project timesheets into one employee-by-day report",
		Long:         `Timetracker spreads each task's planned effort over its working days, merges timesheets from many projects onto one calendar and flags employees booked for more than a workday.`,
		Version:      "0.1.0",
		SilenceUsage: true,
	}

	root.AddCommand(newMergeCmd(), newJSONCmd(), newSampleCmd(), newServeCmd())
	return root
}

// Execute runs the root command.
func Execute() error {
	return newRootCmd().Execute()
}
