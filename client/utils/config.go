package utils

import (
	"io"
	"os"
	"path/filepath"

	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/OFFER-HUB/protocol-offer-hub/config"
)

var ClientConfigDir = filepath.Join(os.Getenv("HOME"), ".offerhub")

// Values bound to the root command's persistent flags.
var (
	ConfigDirectory string
	NetworkName     string
	ContractID      string
	Debug           bool
	AutoApprove     bool
	MetricsAddr     string
)

var (
	Config    *config.Config
	Logger    *zap.Logger
	logCloser io.Closer
)

// LoadClientConfig reads the configuration directory, applies the flag
// overrides and creates the logger.
func LoadClientConfig() error {
	cfg, err := config.LoadConfig(ConfigDirectory)
	if err != nil {
		return err
	}

	if err := applyOverrides(cfg); err != nil {
		return err
	}

	logger, closer, err := cfg.CreateLogger(Debug)
	if err != nil {
		return err
	}

	Config = cfg
	Logger = logger
	logCloser = closer
	return nil
}

func applyOverrides(cfg *config.Config) error {
	if NetworkName != "" && NetworkName != cfg.Network.Name {
		if _, ok := config.Preset(NetworkName); !ok {
			return errors.Errorf(
				"unknown network %q, known networks: %v",
				NetworkName,
				config.PresetNames(),
			)
		}
		network := config.NetworkConfig{
			Name:       NetworkName,
			ContractID: cfg.Network.ContractID,
		}.WithDefaults()
		cfg.Network = &network
	}
	if ContractID != "" {
		cfg.Network.ContractID = ContractID
	}
	if AutoApprove {
		cfg.Key.Confirm = false
	}
	return nil
}

// CloseLogger flushes and releases the logger created by LoadClientConfig.
func CloseLogger() {
	if Logger != nil {
		_ = Logger.Sync()
	}
	if logCloser != nil {
		_ = logCloser.Close()
	}
}
