package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/dr-neptune/ado-cli/internal/document"
	"github.com/spf13/cobra"
)

var getOutputDir string

var getCmd = &cobra.Command{
	Use:   "get <id>",
	Short: "Fetch a work item as an editable markdown document",
	Long:  `Fetches a work item by id and converts it to markdown with YAML frontmatter. Writes to stdout by default, or to a file with --output-dir. Edit the file and push it back with 'ado push'.`,
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := strconv.Atoi(args[0])
		if err != nil || id <= 0 {
			return fmt.Errorf("invalid work item id %q", args[0])
		}

		if err := loadConfig(); err != nil {
			return err
		}

		client := newClient()
		item, err := client.GetWorkItem(cmd.Context(), id)
		if err != nil {
			return fmt.Errorf("fetching work item %d: %w", id, err)
		}

		md := document.Marshal(item, appConfig.URL, appConfig.Project)

		if getOutputDir != "" {
			if err := os.MkdirAll(getOutputDir, 0755); err != nil {
				return fmt.Errorf("creating output directory: %w", err)
			}
			filename := filepath.Join(getOutputDir, fmt.Sprintf("%d.md", id))
			if err := os.WriteFile(filename, []byte(md), 0644); err != nil {
				return fmt.Errorf("writing file: %w", err)
			}
			fmt.Fprintf(os.Stderr, "Written to %s\n", filename)
		} else {
			fmt.Print(md)
		}

		return nil
	},
}

func init() {
	getCmd.Flags().StringVar(&getOutputDir, "output-dir", "", "write output to <dir>/<id>.md instead of stdout")
	rootCmd.AddCommand(getCmd)
}
