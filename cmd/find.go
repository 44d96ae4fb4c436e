package cmd

import (
	"fmt"
	"os"

	"github.com/dr-neptune/ado-cli/internal/ado"
	"github.com/dr-neptune/ado-cli/internal/wiql"
	"github.com/spf13/cobra"
)

var findCmd = &cobra.Command{
	Use:   "find <substring>",
	Short: "Find work items by title substring",
	Long:  `Searches all work items whose title contains the given substring and lists them one per line.`,
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := loadConfig(); err != nil {
			return err
		}

		client := newClient()
		ctx := cmd.Context()

		ids, err := client.RunQuery(ctx, wiql.TitleQuery(args[0]))
		if err != nil {
			return err
		}
		if len(ids) == 0 {
			fmt.Fprintln(os.Stderr, "No work items found")
			return nil
		}

		items, err := client.FetchBatch(ctx, ids, []string{ado.FieldTitle, ado.FieldState})
		if err != nil {
			return err
		}

		for _, item := range items {
			fmt.Printf("#%d\t[%s]\t%s\n", item.ID, item.State(), item.Title())
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(findCmd)
}
