package cmd

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/dr-neptune/ado-cli/internal/ado"
	"github.com/dr-neptune/ado-cli/internal/config"
	"github.com/spf13/cobra"
)

var (
	cfgFile   string
	verbose   bool
	appConfig config.Config
	version   = "0.1.0"
)

var rootCmd = &cobra.Command{
	Use:     "ado",
	Short:   "Azure DevOps <-> Markdown work item sync tool",
	Long:    `A CLI tool for pulling Azure DevOps work items into sectioned markdown sprint reports and editable documents, and pushing edits back as work item updates.`,
	Version: version,
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ~/.ado-cli.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "debug logging of requests on stderr")
}

// loadConfig loads and validates configuration. Commands that need the
// remote service call this.
func loadConfig() error {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid config: %w\nRun 'ado config' to set up credentials", err)
	}
	appConfig = cfg
	return nil
}

// newClient builds a client from the loaded config, with debug logging
// wired up when --verbose is set. The credential never appears in logs.
func newClient() *ado.Client {
	client := ado.New(appConfig)
	out := io.Writer(io.Discard)
	level := slog.LevelInfo
	if verbose {
		out = os.Stderr
		level = slog.LevelDebug
	}
	client.SetLogger(slog.New(slog.NewTextHandler(out, &slog.HandlerOptions{Level: level})))
	return client
}
