package txn

import (
	"context"

	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/OFFER-HUB/protocol-offer-hub/types/ledger"
)

type Submitter struct {
	transport ledger.Transport
	logger    *zap.Logger
}

func NewSubmitter(transport ledger.Transport, logger *zap.Logger) *Submitter {
	return &Submitter{transport: transport, logger: logger.Named("submitter")}
}

// Submit sends the signed envelope once. A refusal reported with the
// submission response ends the lifecycle as rejected without polling.
func (s *Submitter) Submit(ctx context.Context, tx *Tx) error {
	if c := cancelled(ctx, tx.State(), tx.Hash); c != nil {
		return c
	}
	if len(tx.Signed) == 0 {
		return errors.Wrap(errors.New("not signed"), "submit")
	}

	res, err := s.transport.Submit(ctx, tx.Signed)
	if err != nil {
		if c := cancelled(ctx, tx.State(), tx.Hash); c != nil {
			return c
		}
		return &SubmissionError{Hash: tx.Hash, Status: ledger.SubmitError, Err: err}
	}
	if res == nil {
		return &SubmissionError{
			Hash:       tx.Hash,
			Status:     ledger.SubmitError,
			Diagnostic: "empty submission response",
		}
	}

	if res.Hash != "" && res.Hash != tx.Hash {
		s.logger.Warn(
			"ledger reported a different hash",
			zap.String("call_id", CallID(ctx)),
			zap.String("local", tx.Hash),
			zap.String("remote", res.Hash),
		)
		tx.Hash = res.Hash
	}

	if err := tx.advance(StateSubmitted); err != nil {
		return errors.Wrap(err, "submit")
	}

	switch res.Status {
	case ledger.SubmitPending, ledger.SubmitDuplicate:
		s.logger.Debug(
			"submitted",
			zap.String("call_id", CallID(ctx)),
			zap.String("hash", tx.Hash),
			zap.Stringer("status", res.Status),
		)
		return nil
	default:
		if err := tx.advance(StateRejected); err != nil {
			return errors.Wrap(err, "submit")
		}
		return &SubmissionError{
			Hash:       tx.Hash,
			Status:     res.Status,
			Diagnostic: res.ErrorResult,
		}
	}
}
