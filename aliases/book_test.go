package aliases

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/OFFER-HUB/protocol-offer-hub/config"
)

const (
	accountA   = "GAAACAQDAQCQMBYIBEFAWDANBYHRAEISCMKBKFQXDAMRUGY4DUPB7JZX"
	contractID = "CAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAABSC4"
)

func TestOpen_CreatesAndPersists(t *testing.T) {
	path := filepath.Join(t.TempDir(), "book", "addresses.yml")
	cfg := &config.AddressBookConfig{Path: path, CreateIfMissing: true}

	b, err := Open(cfg)
	require.NoError(t, err)
	require.NoError(t, b.Put("alice", accountA, "freelancer"))
	require.NoError(t, b.Put("hub", contractID, ""))

	reopened, err := Open(cfg)
	require.NoError(t, err)
	assert.Equal(t, []string{"alice", "hub"}, reopened.List())

	e, ok := reopened.Get("alice")
	require.True(t, ok)
	assert.Equal(t, Address(accountA), e.Address)
	assert.Equal(t, "freelancer", e.Note)

	deleted, err := reopened.Delete("hub")
	require.NoError(t, err)
	assert.True(t, deleted)
	deleted, err = reopened.Delete("hub")
	require.NoError(t, err)
	assert.False(t, deleted)

	_, err = os.Stat(path + ".tmp")
	assert.True(t, os.IsNotExist(err))
}

func TestOpen_MissingWithoutCreate(t *testing.T) {
	_, err := Open(&config.AddressBookConfig{
		Path: filepath.Join(t.TempDir(), "absent.yml"),
	})
	assert.Error(t, err)
}

func TestLoadFromReader(t *testing.T) {
	b, err := LoadFromReader("", strings.NewReader(
		"aliases:\n"+
			"  alice: "+accountA+"\n"+
			"  hub:\n"+
			"    address: "+contractID+"\n"+
			"    note: contract\n",
	))
	require.NoError(t, err)

	addr, err := b.Resolve("alice")
	require.NoError(t, err)
	assert.Equal(t, accountA, addr)

	addr, err = b.Resolve(contractID)
	require.NoError(t, err)
	assert.Equal(t, contractID, addr)

	_, err = b.Resolve("bob")
	assert.ErrorIs(t, err, ErrUnknownAlias)

	name, ok := b.NameOf(contractID)
	assert.True(t, ok)
	assert.Equal(t, "hub", name)
}

func TestLoadFromReader_Rejects(t *testing.T) {
	_, err := LoadFromReader("", strings.NewReader("aliases:\n  bad: GABC\n"))
	assert.Error(t, err)

	_, err = LoadFromReader("", strings.NewReader("other: 1\n"))
	assert.Error(t, err)

	b := NewInMemory()
	assert.Error(t, b.Put("x", "nope", ""))
	assert.Error(t, b.Put(" ", accountA, ""))
	assert.NoError(t, b.Put("x", accountA, ""))
}
