package app

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/OFFER-HUB/protocol-offer-hub/config"
	"github.com/OFFER-HUB/protocol-offer-hub/signer"
	"github.com/OFFER-HUB/protocol-offer-hub/types/mocks"
)

func testConfig(t *testing.T) *config.Config {
	dir := t.TempDir()
	cfg := config.Config{
		Network: &config.NetworkConfig{
			Name:         "standalone",
			RPCMultiaddr: "/ip4/127.0.0.1/tcp/8000",
		},
		DB: &config.DBConfig{InMemoryDONOTUSE: true},
	}.WithDefaults(dir)
	cfg.DB.Path = filepath.Join(dir, "journal")
	return &cfg
}

func TestNewSession_ReadOnlyWithoutKey(t *testing.T) {
	cfg := testConfig(t)

	session, cleanup, err := NewSession(zap.NewNop(), cfg, TerminalPrompt())
	require.NoError(t, err)
	defer cleanup()

	assert.Nil(t, session.Key)
	assert.NotNil(t, session.Client)
	assert.NotNil(t, session.Journal)
	assert.NotNil(t, session.Book)
	assert.Empty(t, session.Book.List())
}

func TestNewSession_LoadsKey(t *testing.T) {
	cfg := testConfig(t)
	key, err := signer.GenerateKey()
	require.NoError(t, err)
	require.NoError(t, signer.SaveKey(cfg.Key.KeyFile, key))

	session, cleanup, err := NewSession(zap.NewNop(), cfg, TerminalPrompt())
	require.NoError(t, err)
	defer cleanup()

	require.NotNil(t, session.Key)
	assert.Equal(t, key.Address(), session.Key.Address())
}

func TestNewSession_JournalDisabled(t *testing.T) {
	cfg := testConfig(t)
	cfg.DB.Disabled = true

	session, cleanup, err := NewSession(zap.NewNop(), cfg, TerminalPrompt())
	require.NoError(t, err)
	defer cleanup()

	assert.Nil(t, session.Journal)
}

func TestNewSession_BadEndpoint(t *testing.T) {
	cfg := testConfig(t)
	cfg.Network.RPCMultiaddr = "not a multiaddr"

	_, _, err := NewSession(zap.NewNop(), cfg, TerminalPrompt())
	require.Error(t, err)
}

func TestRelay_StopsOnCancel(t *testing.T) {
	relay := newRelay(&mocks.MockTransport{}, zap.NewNop())

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		done <- relay.Serve(ctx, "/ip4/127.0.0.1/tcp/0")
	}()
	cancel()

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("relay did not stop")
	}
}

func TestRelay_BadListenAddress(t *testing.T) {
	relay := newRelay(&mocks.MockTransport{}, zap.NewNop())
	err := relay.Serve(context.Background(), "/ip4/127.0.0.1")
	require.Error(t, err)
}
