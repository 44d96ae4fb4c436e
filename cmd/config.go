package cmd

import (
	"bufio"
	"fmt"
	"os"
	"strings"
	"syscall"

	"github.com/dr-neptune/ado-cli/internal/config"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Configure Azure DevOps connection settings",
	Long:  `Interactively set up the organization URL, project, user identity, and personal access token. Settings are saved to ~/.ado-cli.yaml. Sprint buckets are edited directly in the config file.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		reader := bufio.NewReader(os.Stdin)

		// Load existing config for defaults
		existing, _ := config.Load(cfgFile)

		url := promptDefault(reader, "Organization URL (e.g., https://dev.azure.com/your-org)", existing.URL)
		project := promptDefault(reader, "Project", existing.Project)
		user := promptDefault(reader, "User (e.g., you@example.com)", existing.User)

		// Token (masked input)
		fmt.Print("Personal access token (input hidden): ")
		tokenBytes, err := term.ReadPassword(int(syscall.Stdin))
		fmt.Println() // newline after hidden input
		if err != nil {
			return fmt.Errorf("reading token: %w", err)
		}
		token := strings.TrimSpace(string(tokenBytes))
		if token == "" {
			token = existing.Token
		}

		cfg := config.Config{
			URL:      url,
			Project:  project,
			User:     user,
			Token:    token,
			Buckets:  existing.Buckets,
			CatchAll: existing.CatchAll,
		}

		if err := cfg.Validate(); err != nil {
			return fmt.Errorf("invalid config: %w", err)
		}

		path := cfgFile
		if path == "" {
			path = config.DefaultPath()
		}

		if err := config.Save(cfg, path); err != nil {
			return err
		}

		fmt.Printf("Configuration saved to %s\n", path)
		return nil
	},
}

func promptDefault(reader *bufio.Reader, label, current string) string {
	if current != "" {
		fmt.Printf("%s [%s]: ", label, current)
	} else {
		fmt.Printf("%s: ", label)
	}
	value, _ := reader.ReadString('\n')
	value = strings.TrimSpace(value)
	if value == "" {
		return current
	}
	return value
}

func init() {
	rootCmd.AddCommand(configCmd)
}
