package config

import "path/filepath"

type KeyConfig struct {
	// KeyFile holds the base58 encoded ed448 seed of the signing key.
	KeyFile string `yaml:"keyFile"`
	// Confirm asks on the terminal before every signature.
	Confirm bool `yaml:"confirm"`
}

// WithDefaults returns a copy of the KeyConfig with any missing fields set
// to their default values.
func (c KeyConfig) WithDefaults(configPath string) KeyConfig {
	cpy := c
	if cpy.KeyFile == "" {
		cpy.KeyFile = filepath.Join(configPath, "signing.key")
	}
	return cpy
}
