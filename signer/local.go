// Package signer holds the signing providers the client can be configured
// with: a local ed448 key, optionally behind an interactive confirmation.
package signer

import (
	"context"

	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/OFFER-HUB/protocol-offer-hub/txn"
	"github.com/OFFER-HUB/protocol-offer-hub/types/ledger"
)

var ErrWrongAccount = errors.New("key does not control the requested account")

type LocalSigner struct {
	key    *Key
	logger *zap.Logger
}

var _ ledger.Signer = (*LocalSigner)(nil)

func NewLocalSigner(key *Key, logger *zap.Logger) *LocalSigner {
	return &LocalSigner{
		key:    key,
		logger: logger.Named("local_signer"),
	}
}

func (s *LocalSigner) Address() string { return s.key.Address() }

// Sign implements ledger.Signer.
func (s *LocalSigner) Sign(
	ctx context.Context,
	unsigned []byte,
	opts ledger.SignOptions,
) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	address := s.key.Address()
	if opts.AccountToSign != "" && opts.AccountToSign != address {
		return nil, errors.Wrapf(
			ErrWrongAccount,
			"asked for %s, holding %s",
			opts.AccountToSign,
			address,
		)
	}

	env, err := txn.ParseEnvelope(unsigned)
	if err != nil {
		return nil, errors.Wrap(err, "sign")
	}

	payload := txn.SigningPayload(opts.NetworkPassphrase, unsigned)
	env.Signatures = append(env.Signatures, txn.Signature{
		PublicKey: s.key.PublicKey(),
		Signature: s.key.Sign(payload),
	})

	s.logger.Debug(
		"signed envelope",
		zap.String("account", address),
		zap.String("network", opts.Network),
	)

	signed, err := env.ToCanonicalBytes()
	return signed, errors.Wrap(err, "sign")
}
