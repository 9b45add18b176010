package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestCreateLogger_Stderr(t *testing.T) {
	cfg := &Config{}

	logger, closer, err := cfg.CreateLogger(false)
	require.NoError(t, err)
	defer closer.Close()
	assert.False(t, logger.Core().Enabled(zap.InfoLevel))
	assert.True(t, logger.Core().Enabled(zap.WarnLevel))

	logger, closer, err = cfg.CreateLogger(true)
	require.NoError(t, err)
	defer closer.Close()
	assert.True(t, logger.Core().Enabled(zap.DebugLevel))
}

func TestCreateLogger_File(t *testing.T) {
	dir := t.TempDir()
	cfg := &Config{
		LogFile: "client.log",
		Logger:  &LogConfig{Path: dir},
	}

	logger, closer, err := cfg.CreateLogger(false)
	require.NoError(t, err)
	logger.Info("invocation finalized", zap.String("method", "add_claim"))
	require.NoError(t, closer.Close())

	data, err := os.ReadFile(filepath.Join(dir, "client.log"))
	require.NoError(t, err)
	assert.Contains(t, string(data), "invocation finalized")
	assert.Contains(t, string(data), "add_claim")
}

func TestGetVersionString(t *testing.T) {
	assert.Equal(t, "0.3.1", GetVersionString())
	assert.Equal(t, "unknown", FormatVersion([]byte{1}))
}
