package config

import (
	"io"

	"github.com/pkg/errors"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/OFFER-HUB/protocol-offer-hub/utils/logging"
)

type LogConfig struct {
	Path       string `yaml:"path"`
	MaxSize    int    `yaml:"maxSize"`
	MaxBackups int    `yaml:"maxBackups"`
	MaxAge     int    `yaml:"maxAge"`
	Compress   bool   `yaml:"compress"`
}

func (c *Config) CreateLogger(debug bool) (
	*zap.Logger,
	io.Closer,
	error,
) {
	filename := c.LogFile
	if filename != "" || c.Logger != nil {
		opts := logging.RotationOptions{}
		if c.Logger != nil {
			opts = logging.RotationOptions{
				Dir:        c.Logger.Path,
				MaxSize:    c.Logger.MaxSize,
				MaxBackups: c.Logger.MaxBackups,
				MaxAge:     c.Logger.MaxAge,
				Compress:   c.Logger.Compress,
			}
		}

		logger, closer, err := logging.NewRotatingFileLogger(
			debug,
			filename,
			opts,
		)
		return logger, closer, errors.Wrap(err, "create logger")
	}

	if debug {
		logger, err := zap.NewDevelopment()
		return logger, io.NopCloser(nil), errors.Wrap(err, "create logger")
	}

	// Without a log file only warnings and errors reach stderr.
	cfg := zap.NewProductionConfig()
	cfg.Level = zap.NewAtomicLevelAt(zap.WarnLevel)
	cfg.Encoding = "console"
	cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	cfg.Sampling = nil

	logger, err := cfg.Build()
	return logger, io.NopCloser(nil), errors.Wrap(err, "create logger")
}
