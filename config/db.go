package config

import "path/filepath"

type DBConfig struct {
	// Path of the transaction journal store.
	Path string `yaml:"path"`
	// Disable the journal entirely; write invocations are then not
	// resumable.
	Disabled bool `yaml:"disabled"`

	// Test-only parameters, do not enable outside of tests
	InMemoryDONOTUSE bool
}

// WithDefaults returns a copy of the DBConfig with any missing fields set to
// their default values.
func (c DBConfig) WithDefaults(configPath string) DBConfig {
	cpy := c
	if cpy.Path == "" {
		cpy.Path = filepath.Join(configPath, "journal")
	}
	return cpy
}
