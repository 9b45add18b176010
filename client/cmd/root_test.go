package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/OFFER-HUB/protocol-offer-hub/config"
)

const accountA = "GAAACAQDAQCQMBYIBEFAWDANBYHRAEISCMKBKFQXDAMRUGY4DUPB7JZX"

func run(t *testing.T, dir string, args ...string) (string, error) {
	t.Helper()
	buf := &bytes.Buffer{}
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs(append([]string{"--config", dir, "--json=false"}, args...))
	err := rootCmd.Execute()
	return buf.String(), err
}

func TestVersion(t *testing.T) {
	out, err := run(t, t.TempDir(), "version")
	require.NoError(t, err)
	assert.Equal(t, config.GetVersionString()+"\n", out)
}

func TestAliasCommands(t *testing.T) {
	dir := t.TempDir()

	_, err := run(t, dir, "alias", "add", "bob", accountA, "--note", "designer")
	require.NoError(t, err)
	assert.FileExists(t, filepath.Join(dir, "addresses.yml"))

	out, err := run(t, dir, "alias", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "bob")
	assert.Contains(t, out, accountA)
	assert.Contains(t, out, "designer")

	_, err = run(t, dir, "alias", "add", "bad", "not-an-address")
	require.Error(t, err)

	_, err = run(t, dir, "alias", "remove", "bob")
	require.NoError(t, err)
	_, err = run(t, dir, "alias", "remove", "bob")
	require.Error(t, err)
}

func TestKeyCommands(t *testing.T) {
	dir := t.TempDir()

	out, err := run(t, dir, "key", "generate")
	require.NoError(t, err)
	require.True(t, strings.HasPrefix(out, "Account:  G"))
	address := strings.Fields(strings.SplitN(out, "\n", 2)[0])[1]

	_, err = run(t, dir, "key", "generate")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "already exists")

	out, err = run(t, dir, "key", "show")
	require.NoError(t, err)
	assert.Equal(t, address+"\n", out)
}

func TestConfigCreateDefault(t *testing.T) {
	dir := t.TempDir()

	_, err := run(t, dir, "--network", "testnet", "config", "create-default")
	require.NoError(t, err)

	data, err := os.ReadFile(filepath.Join(dir, "config.yml"))
	require.NoError(t, err)
	assert.Contains(t, string(data), "name: testnet")

	_, err = run(t, dir, "--network", "testnet", "config", "create-default")
	require.Error(t, err)

	out, err := run(t, dir, "--network", "", "config", "print")
	require.NoError(t, err)
	assert.Contains(t, out, "name: testnet")
}

func TestTxList_JournalDisabled(t *testing.T) {
	dir := t.TempDir()
	cfg := config.Config{
		Network: &config.NetworkConfig{
			Name:       "standalone",
			ContractID: "CAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAABSC4",
		},
		DB: &config.DBConfig{Disabled: true},
	}.WithDefaults(dir)
	require.NoError(t, config.SaveConfig(dir, &cfg))

	_, err := run(t, dir, "--network", "", "tx", "list")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "journal is disabled")
}

func TestTxPrune(t *testing.T) {
	dir := t.TempDir()
	cfg := config.Config{
		Network: &config.NetworkConfig{
			Name:       "standalone",
			ContractID: "CAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAABSC4",
		},
	}.WithDefaults(dir)
	require.NoError(t, config.SaveConfig(dir, &cfg))

	out, err := run(t, dir, "--network", "", "tx", "prune", "--older-than", "1h")
	require.NoError(t, err)
	assert.Equal(t, "Pruned 0 transactions\n", out)

	out, err = run(t, dir, "--network", "", "tx", "prune", "--all")
	require.NoError(t, err)
	assert.Equal(t, "Journal cleared\n", out)
}
