package txn

import (
	"bytes"
	"context"

	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/OFFER-HUB/protocol-offer-hub/config"
	"github.com/OFFER-HUB/protocol-offer-hub/types/ledger"
)

// SignerAdapter hands prepared envelopes to an external signer and
// normalises whatever it returns into a signed envelope or a SigningError.
type SignerAdapter struct {
	signer  ledger.Signer
	network *config.NetworkConfig
	logger  *zap.Logger
}

func NewSignerAdapter(
	signer ledger.Signer,
	network *config.NetworkConfig,
	logger *zap.Logger,
) *SignerAdapter {
	return &SignerAdapter{
		signer:  signer,
		network: network,
		logger:  logger.Named("signer_adapter"),
	}
}

func (a *SignerAdapter) Sign(ctx context.Context, tx *Tx) error {
	if c := cancelled(ctx, tx.State(), ""); c != nil {
		return c
	}

	unsigned, err := tx.Envelope.UnsignedBytes()
	if err != nil {
		return errors.Wrap(err, "sign")
	}

	signed, err := a.signer.Sign(ctx, unsigned, ledger.SignOptions{
		Network:           a.network.Name,
		NetworkPassphrase: a.network.Passphrase,
		AccountToSign:     tx.Envelope.Source,
	})
	if err != nil {
		var signingErr *SigningError
		switch {
		case errors.As(err, &signingErr):
			return signingErr
		case errors.Is(err, ledger.ErrSignCancelled):
			return &SigningError{Cancelled: true, Err: err}
		}
		if c := cancelled(ctx, tx.State(), ""); c != nil {
			return c
		}
		return &SigningError{Err: err}
	}

	env, err := ParseEnvelope(signed)
	if err != nil {
		return &SigningError{
			Err: errors.Wrap(err, "signer returned a malformed envelope"),
		}
	}
	resigned, err := env.UnsignedBytes()
	if err != nil || !bytes.Equal(resigned, unsigned) {
		return &SigningError{
			Err: errors.New("signer returned a different envelope"),
		}
	}
	if len(env.Signatures) == 0 {
		return &SigningError{
			Err: errors.New("signer returned an unsigned envelope"),
		}
	}

	hash, err := env.Hash(a.network.Passphrase)
	if err != nil {
		return errors.Wrap(err, "sign")
	}

	tx.Envelope = env
	tx.Signed = signed
	tx.Hash = hash

	a.logger.Debug(
		"envelope signed",
		zap.String("call_id", CallID(ctx)),
		zap.String("hash", hash),
		zap.Int("signatures", len(env.Signatures)),
	)
	return errors.Wrap(tx.advance(StateSigned), "sign")
}
