package cmd

import (
	"fmt"
	"os"

	"github.com/dr-neptune/ado-cli/internal/document"
	"github.com/spf13/cobra"
)

var (
	createType   string
	createTitle  string
	createPoints float64
	createFile   string
)

var createCmd = &cobra.Command{
	Use:   "create",
	Short: "Create a new work item",
	Long: `Creates a work item of the given type assigned to the configured user.
The description is taken from a markdown file (--file) and converted to
the field markup the service stores. Prints the id the service assigned.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if createTitle == "" {
			return fmt.Errorf("--title is required")
		}

		if err := loadConfig(); err != nil {
			return err
		}

		description := ""
		if createFile != "" {
			content, err := os.ReadFile(createFile)
			if err != nil {
				return fmt.Errorf("reading description file: %w", err)
			}
			description = string(content)
		}

		ops := document.CreateOps(createTitle, description, createPoints, appConfig.User)

		client := newClient()
		id, err := client.Create(cmd.Context(), createType, ops)
		if err != nil {
			return fmt.Errorf("creating %s: %w", createType, err)
		}

		fmt.Printf("Created %s #%d\n", createType, id)
		return nil
	},
}

func init() {
	createCmd.Flags().StringVar(&createType, "type", "User Story", "work item type (e.g. 'User Story', 'Bug')")
	createCmd.Flags().StringVar(&createTitle, "title", "", "work item title (required)")
	createCmd.Flags().Float64Var(&createPoints, "points", 0, "story point estimate")
	createCmd.Flags().StringVarP(&createFile, "file", "f", "", "markdown file with the description")
	rootCmd.AddCommand(createCmd)
}
