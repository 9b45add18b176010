package config

import (
	"os"
	"path/filepath"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v2"
)

const configFileName = "config.yml"

type Config struct {
	Network *NetworkConfig `yaml:"network"`
	Key     *KeyConfig     `yaml:"key"`
	DB      *DBConfig      `yaml:"db"`
	Logger  *LogConfig     `yaml:"logger"`
	LogFile string         `yaml:"logfile"`
	Alias   *AliasConfig   `yaml:"alias"`
}

// WithDefaults returns a copy of the Config with every section present and
// populated with defaults relative to configPath.
func (c Config) WithDefaults(configPath string) Config {
	cpy := c

	network := NetworkConfig{}
	if c.Network != nil {
		network = *c.Network
	}
	network = network.WithDefaults()
	cpy.Network = &network

	key := KeyConfig{}
	if c.Key != nil {
		key = *c.Key
	}
	key = key.WithDefaults(configPath)
	cpy.Key = &key

	db := DBConfig{}
	if c.DB != nil {
		db = *c.DB
	}
	db = db.WithDefaults(configPath)
	cpy.DB = &db

	alias := AliasConfig{}
	if c.Alias != nil {
		alias = *c.Alias
	}
	alias = alias.WithDefaults(configPath)
	cpy.Alias = &alias

	return cpy
}

// LoadConfig reads config.yml from configPath. A missing file yields the
// defaults.
func LoadConfig(configPath string) (*Config, error) {
	cfg := Config{}

	data, err := os.ReadFile(filepath.Join(configPath, configFileName))
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, errors.Wrap(err, "load config")
		}
	case os.IsNotExist(err):
	default:
		return nil, errors.Wrap(err, "load config")
	}

	cfg = cfg.WithDefaults(configPath)
	return &cfg, nil
}

// SaveConfig writes config.yml into configPath, creating the directory.
func SaveConfig(configPath string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return errors.Wrap(err, "save config")
	}

	if err := os.MkdirAll(configPath, 0o700); err != nil {
		return errors.Wrap(err, "save config")
	}

	return errors.Wrap(
		os.WriteFile(filepath.Join(configPath, configFileName), data, 0o600),
		"save config",
	)
}
