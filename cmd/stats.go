package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/abhisek/habla/internal/report"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show learning statistics",
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := openEnv(cmd)
		if err != nil {
			return err
		}
		defer e.Close()

		r := report.Build(e.catalog, e.progress.Record(), time.Now())
		if err := report.WriteText(cmd.OutOrStdout(), r); err != nil {
			return err
		}

		if path, _ := cmd.Flags().GetString("export"); path != "" {
			if err := report.WriteWorkbook(path, r); err != nil {
				return fmt.Errorf("export workbook: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "\nWorkbook written to %s\n", path)
		}
		return nil
	},
}

func init() {
	statsCmd.Flags().String("export", "", "Also write the report to an .xlsx workbook")
}
