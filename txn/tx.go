package txn

import (
	"context"

	"github.com/OFFER-HUB/protocol-offer-hub/types/ledger"
	"github.com/OFFER-HUB/protocol-offer-hub/wire"
)

// Tx tracks one invocation through its lifecycle. It is not safe for
// concurrent use; each facade call owns its own Tx.
type Tx struct {
	Envelope   *Envelope
	Lifecycle  *Lifecycle
	Hash       string
	Signed     []byte
	Simulation *ledger.SimulationResult
	Status     *ledger.TransactionStatus
	// Attempts counts the status queries issued while polling.
	Attempts int
	Result   wire.Value
}

func newTx(env *Envelope) *Tx {
	stateTransitionsTotal.WithLabelValues(StateBuilt.String()).Inc()
	return &Tx{Envelope: env, Lifecycle: NewLifecycle()}
}

func (t *Tx) State() State { return t.Lifecycle.State() }

func (t *Tx) Method() string {
	if t.Envelope == nil {
		return ""
	}
	return t.Envelope.Invocation.Method
}

func (t *Tx) advance(to State) error {
	if err := t.Lifecycle.Advance(to); err != nil {
		return err
	}
	stateTransitionsTotal.WithLabelValues(to.String()).Inc()
	return nil
}

type callIDKey struct{}

// WithCallID attaches a correlation id to ctx. It is logged with every step
// of the invocation and stored in the journal.
func WithCallID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, callIDKey{}, id)
}

func CallID(ctx context.Context) string {
	id, _ := ctx.Value(callIDKey{}).(string)
	return id
}

func cancelled(ctx context.Context, stage State, hash string) error {
	if ctx.Err() == nil {
		return nil
	}
	return &CancelledError{Stage: stage, Hash: hash, Err: ctx.Err()}
}
