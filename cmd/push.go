package cmd

import (
	"fmt"
	"os"

	"github.com/dr-neptune/ado-cli/internal/document"
	"github.com/spf13/cobra"
)

var (
	pushFile     string
	pushDryRun   bool
	pushCheckRev bool
)

var pushCmd = &cobra.Command{
	Use:   "push",
	Short: "Push an edited markdown document back to Azure DevOps",
	Long: `Reads an edited markdown file with YAML frontmatter, compares it to the
current remote state, and submits one patch operation per changed field.

The default policy is last-writer-wins: no revision check happens before
the update. Pass --check-revision to refuse the push when the work item
has been modified remotely since it was pulled. Use --dry-run to preview
the change list without applying.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if pushFile == "" {
			return fmt.Errorf("--file (-f) is required")
		}

		if err := loadConfig(); err != nil {
			return err
		}

		content, err := os.ReadFile(pushFile)
		if err != nil {
			return fmt.Errorf("reading file: %w", err)
		}

		doc, err := document.Unmarshal(string(content))
		if err != nil {
			return fmt.Errorf("parsing document: %w", err)
		}

		client := newClient()
		ctx := cmd.Context()

		current, err := client.GetWorkItem(ctx, doc.ID)
		if err != nil {
			return fmt.Errorf("fetching current state of %d: %w", doc.ID, err)
		}

		if pushCheckRev && doc.Rev != 0 && current.Rev != doc.Rev {
			return fmt.Errorf("conflict: work item %d is at revision %d remotely, but this document was pulled at revision %d.\nRe-pull with 'ado get %d' before pushing.",
				doc.ID, current.Rev, doc.Rev, doc.ID)
		}

		ops, changes := document.ChangedOps(doc, current)
		if len(ops) == 0 {
			fmt.Fprintln(os.Stderr, "No changes to push")
			return nil
		}

		if pushDryRun {
			fmt.Fprintf(os.Stderr, "Dry run: would push %d change(s) to #%d:\n", len(changes), doc.ID)
			for _, change := range changes {
				fmt.Fprintf(os.Stderr, "  %s\n", change)
			}
			return nil
		}

		updated, err := client.Update(ctx, doc.ID, ops)
		if err != nil {
			return fmt.Errorf("pushing changes to %d: %w", doc.ID, err)
		}

		fmt.Fprintf(os.Stderr, "Pushed %d change(s) to #%d (now at revision %d)\n", len(changes), doc.ID, updated.Rev)
		return nil
	},
}

func init() {
	pushCmd.Flags().StringVarP(&pushFile, "file", "f", "", "markdown file to push (required)")
	pushCmd.Flags().BoolVar(&pushDryRun, "dry-run", false, "preview the change list without pushing")
	pushCmd.Flags().BoolVar(&pushCheckRev, "check-revision", false, "refuse to push when the work item changed remotely since it was pulled")
	rootCmd.AddCommand(pushCmd)
}
