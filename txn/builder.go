package txn

import (
	"context"

	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/OFFER-HUB/protocol-offer-hub/config"
	"github.com/OFFER-HUB/protocol-offer-hub/types/ledger"
	"github.com/OFFER-HUB/protocol-offer-hub/wire"
)

type Builder struct {
	transport ledger.Transport
	network   *config.NetworkConfig
	logger    *zap.Logger
}

func NewBuilder(
	transport ledger.Transport,
	network *config.NetworkConfig,
	logger *zap.Logger,
) *Builder {
	return &Builder{
		transport: transport,
		network:   network,
		logger:    logger.Named("builder"),
	}
}

// Build assembles an unsigned envelope invoking method on the configured
// contract. The read-only source account is never looked up; any other
// source must resolve on the transport or an AccountError is returned
// before anything else happens.
func (b *Builder) Build(
	ctx context.Context,
	source string,
	method string,
	args []wire.Value,
) (*Tx, error) {
	var sequence uint64
	if source != b.network.ReadOnlySource {
		account, err := b.transport.GetAccount(ctx, source)
		if err != nil {
			if c := cancelled(ctx, StateBuilt, ""); c != nil {
				return nil, c
			}
			return nil, &AccountError{Address: source, Err: err}
		}
		if account == nil {
			return nil, &AccountError{
				Address: source,
				Err:     ledger.ErrAccountNotFound,
			}
		}
		sequence = account.Sequence + 1
	}

	latest, err := b.transport.GetLatestLedger(ctx)
	if err != nil {
		if c := cancelled(ctx, StateBuilt, ""); c != nil {
			return nil, c
		}
		return nil, errors.Wrap(err, "build")
	}

	env := &Envelope{
		Source:           source,
		Sequence:         sequence,
		Fee:              b.network.BaseFee,
		ExpirationLedger: latest + b.network.ExpirationLedgers,
		Invocation: Invocation{
			Contract: b.network.ContractID,
			Method:   method,
			Args:     args,
		},
	}

	b.logger.Debug(
		"built envelope",
		zap.String("call_id", CallID(ctx)),
		zap.String("method", method),
		zap.String("source", source),
		zap.Uint64("sequence", sequence),
		zap.Uint64("expiration_ledger", env.ExpirationLedger),
	)

	return newTx(env), nil
}
