package cmd

import (
	"fmt"
	"os"

	"github.com/dr-neptune/ado-cli/internal/ado"
	"github.com/dr-neptune/ado-cli/internal/report"
	"github.com/dr-neptune/ado-cli/internal/wiql"
	"github.com/spf13/cobra"
)

var (
	sprintDays   int
	sprintOutput string
)

// States that never belong in a sprint overview.
var excludedStates = []string{"Closed", "Removed"}

var sprintCmd = &cobra.Command{
	Use:   "sprint",
	Short: "Render your current work items as a sectioned markdown report",
	Long: `Queries work items assigned to the configured user, fetches their full
field sets in one batch, classifies them into the sprint buckets from the
config file, and renders a sectioned markdown report. The report is
read-only; use 'ado get' and 'ado push' to edit a single item.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := loadConfig(); err != nil {
			return err
		}
		if sprintDays < 0 {
			return fmt.Errorf("--days must be non-negative")
		}
		if len(appConfig.Buckets) == 0 {
			return fmt.Errorf("no sprint buckets configured; add a 'buckets' table to your config file")
		}

		client := newClient()
		ctx := cmd.Context()

		query := wiql.SearchQuery(appConfig.User, sprintDays, excludedStates,
			"System.CreatedDate", wiql.Desc)
		ids, err := client.RunQuery(ctx, query)
		if err != nil {
			return err
		}
		if len(ids) == 0 {
			fmt.Fprintln(os.Stderr, "No work items found")
			return nil
		}

		items, err := client.FetchBatch(ctx, ids, ado.DisplayFields)
		if err != nil {
			return err
		}

		rule := report.Rule{Buckets: appConfig.Buckets, CatchAll: appConfig.CatchAll}
		doc, dropped := report.Render(items, rule)
		if dropped > 0 {
			fmt.Fprintf(os.Stderr, "%d work item(s) matched no bucket and were omitted; set catch_all in the config to keep them\n", dropped)
		}

		if sprintOutput != "" {
			if err := os.WriteFile(sprintOutput, []byte(doc), 0644); err != nil {
				return fmt.Errorf("writing report: %w", err)
			}
			fmt.Fprintf(os.Stderr, "Written to %s\n", sprintOutput)
			return nil
		}
		fmt.Print(doc)
		return nil
	},
}

func init() {
	sprintCmd.Flags().IntVar(&sprintDays, "days", 30, "only include work items created in the last N days")
	sprintCmd.Flags().StringVarP(&sprintOutput, "output", "o", "", "write the report to a file instead of stdout")
	rootCmd.AddCommand(sprintCmd)
}
