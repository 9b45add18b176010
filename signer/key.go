package signer

import (
	"crypto/rand"
	"os"
	"path/filepath"
	"strings"

	"github.com/cloudflare/circl/sign/ed448"
	"github.com/mr-tron/base58"
	"github.com/pkg/errors"
	"golang.org/x/crypto/sha3"

	"github.com/OFFER-HUB/protocol-offer-hub/wire"
)

var ErrInvalidKeyFile = errors.New("invalid key file")

// Key is an ed448 signing key. Its account address is the hash of the
// public key.
type Key struct {
	seed       []byte
	privateKey ed448.PrivateKey
	publicKey  ed448.PublicKey
}

func GenerateKey() (*Key, error) {
	seed := make([]byte, ed448.SeedSize)
	if _, err := rand.Read(seed); err != nil {
		return nil, errors.Wrap(err, "generate key")
	}
	return KeyFromSeed(seed)
}

func KeyFromSeed(seed []byte) (*Key, error) {
	if len(seed) != ed448.SeedSize {
		return nil, errors.Wrapf(
			ErrInvalidKeyFile,
			"seed is %d bytes, want %d",
			len(seed),
			ed448.SeedSize,
		)
	}
	privateKey := ed448.NewKeyFromSeed(seed)
	return &Key{
		seed:       append([]byte(nil), seed...),
		privateKey: privateKey,
		publicKey:  privateKey.Public().(ed448.PublicKey),
	}, nil
}

func (k *Key) PublicKey() []byte {
	return append([]byte(nil), k.publicKey...)
}

func (k *Key) Address() string {
	return AddressOf(k.publicKey)
}

func (k *Key) Sign(payload []byte) []byte {
	return ed448.Sign(k.privateKey, payload, "")
}

// AddressOf returns the account address controlled by an ed448 public key.
func AddressOf(publicKey []byte) string {
	return wire.NewAddress(wire.AccountAddress, sha3.Sum256(publicKey)).String()
}

func Verify(publicKey, payload, signature []byte) bool {
	if len(publicKey) != ed448.PublicKeySize {
		return false
	}
	return ed448.Verify(ed448.PublicKey(publicKey), payload, signature, "")
}

// LoadKey reads a key file holding the base58 encoded seed.
func LoadKey(path string) (*Key, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, "load key")
	}

	seed, err := base58.Decode(strings.TrimSpace(string(data)))
	if err != nil {
		return nil, errors.Wrap(ErrInvalidKeyFile, err.Error())
	}

	key, err := KeyFromSeed(seed)
	return key, errors.Wrap(err, "load key")
}

// SaveKey writes the key file, refusing to overwrite an existing one.
func SaveKey(path string, key *Key) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return errors.Wrap(err, "save key")
	}

	file, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o600)
	if err != nil {
		return errors.Wrap(err, "save key")
	}
	defer file.Close()

	if _, err := file.WriteString(base58.Encode(key.seed) + "\n"); err != nil {
		return errors.Wrap(err, "save key")
	}
	return nil
}
