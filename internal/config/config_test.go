package config

import (
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestValidate(t *testing.T) {
	full := Config{URL: "https://dev.azure.com/org", Project: "Proj", User: "dev@example.com", Token: "pat"}
	if err := full.Validate(); err != nil {
		t.Errorf("complete config rejected: %v", err)
	}

	tests := []struct {
		name string
		mut  func(*Config)
	}{
		{"missing url", func(c *Config) { c.URL = "" }},
		{"missing project", func(c *Config) { c.Project = "" }},
		{"missing user", func(c *Config) { c.User = "" }},
		{"missing token", func(c *Config) { c.Token = "" }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := full
			tt.mut(&cfg)
			if err := cfg.Validate(); err == nil {
				t.Error("expected validation error")
			}
		})
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	want := Config{
		URL:     "https://dev.azure.com/fabrikam",
		Project: "Fabrikam",
		User:    "dev@example.com",
		Token:   "secret-pat",
		Buckets: []Bucket{
			{Name: "Current Sprint", Path: `Fabrikam\Sprint 1`},
			{Name: "Backlog", Path: `Fabrikam\Backlog`},
		},
		CatchAll: "Other",
	}

	if err := Save(want, path); err != nil {
		t.Fatalf("Save: %v", err)
	}

	got, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("round trip mismatch (-want +got):\n%s", diff)
	}
}

func TestLoadMissingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "does-not-exist.yaml")
	if _, err := Load(path); err != nil {
		t.Fatalf("Load of a missing file must fall back to env/defaults: %v", err)
	}
}
