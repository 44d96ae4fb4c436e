package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

// Config holds Azure DevOps connection settings and the sprint
// classification table.
type Config struct {
	URL     string `yaml:"url"     mapstructure:"url"`
	Project string `yaml:"project" mapstructure:"project"`
	User    string `yaml:"user"    mapstructure:"user"`
	Token   string `yaml:"token"   mapstructure:"token"`

	// Buckets maps exact iteration paths to report sections, in the
	// order they should appear. CatchAll, when set, names a trailing
	// section that collects work items whose iteration path matches no
	// bucket; when empty, unmatched items are dropped (and counted).
	Buckets  []Bucket `yaml:"buckets,omitempty"  mapstructure:"buckets"`
	CatchAll string   `yaml:"catch_all,omitempty" mapstructure:"catch_all"`
}

// Bucket maps one exact iteration path to a named report section.
type Bucket struct {
	Name string `yaml:"name" mapstructure:"name"`
	Path string `yaml:"path" mapstructure:"path"`
}

// DefaultPath returns the default config file path (~/.ado-cli.yaml).
func DefaultPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".ado-cli.yaml"
	}
	return filepath.Join(home, ".ado-cli.yaml")
}

// Load reads config from the YAML file and applies env var overrides.
// configPath may be empty to use the default path.
func Load(configPath string) (Config, error) {
	v := viper.New()

	if configPath == "" {
		configPath = DefaultPath()
	}

	v.SetConfigFile(configPath)
	v.SetConfigType("yaml")

	// Env var overrides
	v.BindEnv("url", "ADO_URL")
	v.BindEnv("project", "ADO_PROJECT")
	v.BindEnv("user", "ADO_USER")
	v.BindEnv("token", "ADO_TOKEN")

	// Read the config file (ignore "not found" errors so env vars still work)
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			// Only ignore file-not-found; other errors (e.g. parse) are real
			if !os.IsNotExist(err) {
				return Config{}, fmt.Errorf("reading config: %w", err)
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("unmarshalling config: %w", err)
	}

	return cfg, nil
}

// Validate checks that required fields are present.
func (c Config) Validate() error {
	if c.URL == "" {
		return fmt.Errorf("organization URL is required (set in config file or ADO_URL env var)")
	}
	if c.Project == "" {
		return fmt.Errorf("project is required (set in config file or ADO_PROJECT env var)")
	}
	if c.User == "" {
		return fmt.Errorf("user identity is required (set in config file or ADO_USER env var)")
	}
	if c.Token == "" {
		return fmt.Errorf("personal access token is required (set in config file or ADO_TOKEN env var)")
	}
	return nil
}

// Save writes the config to the given path (or default path if empty).
func Save(cfg Config, configPath string) error {
	if configPath == "" {
		configPath = DefaultPath()
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshalling config: %w", err)
	}

	if err := os.WriteFile(configPath, data, 0600); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}

	return nil
}
