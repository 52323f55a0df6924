package cli

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/orayew2002/timetracker/excel"
)

func newJSONCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "json <file.xlsx>",
		Short: "Print the rows of a workbook as JSON records",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := os.ReadFile(args[0])
			if err != nil {
				return fmt.Errorf("read: %w", err)
			}

			records, err := excel.Records(data)
			if err != nil {
				return fmt.Errorf("%s: %w", args[0], err)
			}

			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(records)
		},
	}
}
