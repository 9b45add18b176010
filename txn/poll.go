package txn

import (
	"context"
	"time"

	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/OFFER-HUB/protocol-offer-hub/config"
	"github.com/OFFER-HUB/protocol-offer-hub/types/ledger"
)

type Poller struct {
	transport   ledger.Transport
	interval    time.Duration
	maxAttempts int
	logger      *zap.Logger
}

func NewPoller(
	transport ledger.Transport,
	network *config.NetworkConfig,
	logger *zap.Logger,
) *Poller {
	return &Poller{
		transport:   transport,
		interval:    network.PollInterval,
		maxAttempts: network.MaxPollAttempts,
		logger:      logger.Named("poller"),
	}
}

// Poll queries the transaction status until it is final. The first query
// is issued immediately and each following one after the configured
// interval. The wait honours ctx and the attempt bound; exhausting the
// bound yields a FinalityTimeoutError, a done ctx a CancelledError.
func (p *Poller) Poll(ctx context.Context, tx *Tx) error {
	if err := tx.advance(StatePending); err != nil {
		return errors.Wrap(err, "poll")
	}

	inFlightGauge.Inc()
	defer inFlightGauge.Dec()

	logger := p.logger.With(
		zap.String("call_id", CallID(ctx)),
		zap.String("hash", tx.Hash),
	)
	start := time.Now()

	for attempt := 1; ; attempt++ {
		tx.Attempts++
		status, err := p.transport.GetTransaction(ctx, tx.Hash)
		if err != nil {
			if c := cancelled(ctx, tx.State(), tx.Hash); c != nil {
				return c
			}
			return errors.Wrap(err, "poll")
		}
		if status == nil {
			status = &ledger.TransactionStatus{Status: ledger.TxNotFound}
		}

		switch status.Status {
		case ledger.TxSuccess:
			tx.Status = status
			pollAttempts.Observe(float64(tx.Attempts))
			logger.Debug(
				"transaction final",
				zap.Uint64("ledger", status.Ledger),
				zap.Int("attempts", tx.Attempts),
			)
			return errors.Wrap(tx.advance(StateFinalizedSuccess), "poll")
		case ledger.TxFailed:
			tx.Status = status
			pollAttempts.Observe(float64(tx.Attempts))
			if err := tx.advance(StateFinalizedFailed); err != nil {
				return errors.Wrap(err, "poll")
			}
			if err := tx.advance(StateRejected); err != nil {
				return errors.Wrap(err, "poll")
			}
			return &FinalizedFailureError{
				Hash:       tx.Hash,
				Ledger:     status.Ledger,
				Diagnostic: status.Diagnostic,
			}
		}

		if err := tx.advance(StatePending); err != nil {
			return errors.Wrap(err, "poll")
		}
		if attempt >= p.maxAttempts {
			return &FinalityTimeoutError{
				Hash:     tx.Hash,
				Attempts: attempt,
				Elapsed:  time.Since(start),
			}
		}

		logger.Debug(
			"transaction not final",
			zap.Stringer("status", status.Status),
			zap.Int("attempt", attempt),
		)

		timer := time.NewTimer(p.interval)
		select {
		case <-ctx.Done():
			timer.Stop()
			return &CancelledError{
				Stage: tx.State(),
				Hash:  tx.Hash,
				Err:   ctx.Err(),
			}
		case <-timer.C:
		}
	}
}
