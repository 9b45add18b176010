package signer

import (
	"bytes"
	"context"
	"io"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/OFFER-HUB/protocol-offer-hub/txn"
	"github.com/OFFER-HUB/protocol-offer-hub/types/ledger"
	"github.com/OFFER-HUB/protocol-offer-hub/types/mocks"
	"github.com/OFFER-HUB/protocol-offer-hub/wire"
)

const passphrase = "Standalone Network ; February 2017"

func unsignedEnvelope(t *testing.T, source string) []byte {
	env := &txn.Envelope{
		Source:           source,
		Sequence:         11,
		Fee:              1234567,
		ExpirationLedger: 130,
		Invocation: txn.Invocation{
			Contract: "CAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAABSC4",
			Method:   "get_total_claims",
			Args:     []wire.Value{},
		},
	}
	data, err := env.UnsignedBytes()
	require.NoError(t, err)
	return data
}

func TestKey_SaveLoad(t *testing.T) {
	key, err := GenerateKey()
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "keys", "signing.key")
	require.NoError(t, SaveKey(path, key))

	loaded, err := LoadKey(path)
	require.NoError(t, err)
	assert.Equal(t, key.Address(), loaded.Address())
	assert.Equal(t, key.PublicKey(), loaded.PublicKey())

	// never overwrite
	assert.Error(t, SaveKey(path, key))

	_, err = wire.ParseAddress(key.Address())
	assert.NoError(t, err)
	assert.True(t, strings.HasPrefix(key.Address(), "G"))
}

func TestKeyFromSeed_WrongLength(t *testing.T) {
	_, err := KeyFromSeed(make([]byte, 32))
	assert.ErrorIs(t, err, ErrInvalidKeyFile)
}

func TestLocalSigner_Sign(t *testing.T) {
	key, err := KeyFromSeed(bytes.Repeat([]byte{0x07}, 57))
	require.NoError(t, err)
	s := NewLocalSigner(key, zap.NewNop())

	unsigned := unsignedEnvelope(t, key.Address())
	signed, err := s.Sign(context.Background(), unsigned, ledger.SignOptions{
		NetworkPassphrase: passphrase,
		AccountToSign:     key.Address(),
	})
	require.NoError(t, err)

	env, err := txn.ParseEnvelope(signed)
	require.NoError(t, err)
	require.Len(t, env.Signatures, 1)

	again, err := env.UnsignedBytes()
	require.NoError(t, err)
	assert.Equal(t, unsigned, again)

	payload := txn.SigningPayload(passphrase, unsigned)
	assert.True(t, Verify(env.Signatures[0].PublicKey, payload, env.Signatures[0].Signature))
	assert.False(t, Verify(
		env.Signatures[0].PublicKey,
		txn.SigningPayload("Test SDF Network ; September 2015", unsigned),
		env.Signatures[0].Signature,
	))
	assert.Equal(t, key.Address(), AddressOf(env.Signatures[0].PublicKey))
}

func TestLocalSigner_WrongAccount(t *testing.T) {
	key, err := GenerateKey()
	require.NoError(t, err)
	s := NewLocalSigner(key, zap.NewNop())

	other := "GAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAWHF"
	_, err = s.Sign(context.Background(), unsignedEnvelope(t, other), ledger.SignOptions{
		AccountToSign: other,
	})
	assert.ErrorIs(t, err, ErrWrongAccount)
}

func TestConfirmingSigner(t *testing.T) {
	unsigned := unsignedEnvelope(t, "GAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAWHF")
	opts := ledger.SignOptions{Network: "standalone"}

	t.Run("yes signs", func(t *testing.T) {
		next := &mocks.MockSigner{}
		next.On("Sign", mock.Anything, unsigned, opts).Return([]byte{0x01}, nil)

		out := &bytes.Buffer{}
		s := NewConfirmingSigner(next, strings.NewReader("y\n"), out)
		signed, err := s.Sign(context.Background(), unsigned, opts)
		require.NoError(t, err)
		assert.Equal(t, []byte{0x01}, signed)
		assert.Contains(t, out.String(), "get_total_claims")
		assert.Contains(t, out.String(), "0.1234567")
		next.AssertExpectations(t)
	})

	t.Run("anything else cancels", func(t *testing.T) {
		for _, answer := range []string{"n\n", "\n", "maybe\n", ""} {
			next := &mocks.MockSigner{}
			s := NewConfirmingSigner(next, strings.NewReader(answer), &bytes.Buffer{})
			_, err := s.Sign(context.Background(), unsigned, opts)
			assert.ErrorIs(t, err, ledger.ErrSignCancelled, "answer %q", answer)
			next.AssertNotCalled(t, "Sign", mock.Anything, mock.Anything, mock.Anything)
		}
	})
}

func TestConfirmingSigner_CancelledPromptKeepsNextAnswer(t *testing.T) {
	unsigned := unsignedEnvelope(t, "GAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAWHF")
	opts := ledger.SignOptions{Network: "standalone"}

	next := &mocks.MockSigner{}
	next.On("Sign", mock.Anything, unsigned, opts).Return([]byte{0x02}, nil)

	r, w := io.Pipe()
	defer w.Close()
	s := NewConfirmingSigner(next, r, &bytes.Buffer{})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := s.Sign(ctx, unsigned, opts)
	assert.ErrorIs(t, err, context.Canceled)

	go func() {
		w.Write([]byte("yes\n"))
	}()
	signed, err := s.Sign(context.Background(), unsigned, opts)
	require.NoError(t, err)
	assert.Equal(t, []byte{0x02}, signed)
	next.AssertExpectations(t)
}

func TestFormatFee(t *testing.T) {
	assert.Equal(t, "0.0000100", FormatFee(100))
	assert.Equal(t, "12.5000000", FormatFee(125000000))
}
