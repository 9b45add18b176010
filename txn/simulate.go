package txn

import (
	"context"

	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/OFFER-HUB/protocol-offer-hub/types/ledger"
	"github.com/OFFER-HUB/protocol-offer-hub/wire"
)

type Simulator struct {
	transport ledger.Transport
	logger    *zap.Logger
}

func NewSimulator(transport ledger.Transport, logger *zap.Logger) *Simulator {
	return &Simulator{transport: transport, logger: logger.Named("simulator")}
}

// Simulate dry-runs the unsigned envelope. A transport failure or a remote
// rejection both surface as a SimulationError carrying the diagnostic
// unchanged.
func (s *Simulator) Simulate(ctx context.Context, tx *Tx) error {
	if c := cancelled(ctx, tx.State(), ""); c != nil {
		return c
	}

	unsigned, err := tx.Envelope.UnsignedBytes()
	if err != nil {
		return errors.Wrap(err, "simulate")
	}

	res, err := s.transport.Simulate(ctx, unsigned)
	if err != nil {
		if c := cancelled(ctx, tx.State(), ""); c != nil {
			return c
		}
		return &SimulationError{
			Method:     tx.Method(),
			Diagnostic: err.Error(),
			Err:        err,
		}
	}
	if res == nil {
		return &SimulationError{
			Method:     tx.Method(),
			Diagnostic: "empty simulation response",
		}
	}
	if res.Error != "" {
		s.logger.Debug(
			"simulation rejected",
			zap.String("call_id", CallID(ctx)),
			zap.String("method", tx.Method()),
			zap.String("diagnostic", res.Error),
		)
		return &SimulationError{Method: tx.Method(), Diagnostic: res.Error}
	}

	tx.Simulation = res
	simulatedResourceFee.Observe(float64(res.MinResourceFee))
	return errors.Wrap(tx.advance(StateSimulated), "simulate")
}

// Prepare merges the simulated footprint and resource fee into the
// envelope.
func (s *Simulator) Prepare(tx *Tx) error {
	if tx.Simulation == nil {
		return errors.Wrap(errors.New("not simulated"), "prepare")
	}
	if err := tx.advance(StatePrepared); err != nil {
		return errors.Wrap(err, "prepare")
	}

	env := tx.Envelope
	env.Resources = tx.Simulation.Resources
	env.ResourceFee = tx.Simulation.MinResourceFee
	env.Fee += tx.Simulation.MinResourceFee
	return nil
}

// ReadResult turns the simulation of a read-only invocation into its
// result.
func (s *Simulator) ReadResult(tx *Tx) (wire.Value, error) {
	if tx.Simulation == nil {
		return nil, errors.Wrap(errors.New("not simulated"), "read result")
	}
	v, err := returnValue(tx.Simulation.ReturnValue)
	if err != nil {
		return nil, err
	}
	if err := tx.advance(StateResultExtracted); err != nil {
		return nil, errors.Wrap(err, "read result")
	}
	tx.Result = v
	return v, nil
}
