package txn

import (
	"context"
	"time"

	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/OFFER-HUB/protocol-offer-hub/config"
	"github.com/OFFER-HUB/protocol-offer-hub/types/ledger"
	"github.com/OFFER-HUB/protocol-offer-hub/types/store"
	"github.com/OFFER-HUB/protocol-offer-hub/wire"
)

// ErrNoSigner is returned by Invoke when no signer was configured.
var ErrNoSigner = errors.New("no signer configured")

// ErrNoJournal is returned by Resume when no journal was configured.
var ErrNoJournal = errors.New("no journal configured")

// Invoker drives invocations through the lifecycle: writes through every
// step to an extracted result, reads through simulation only.
type Invoker struct {
	network   *config.NetworkConfig
	builder   *Builder
	simulator *Simulator
	signer    *SignerAdapter
	submitter *Submitter
	poller    *Poller
	journal   store.JournalStore
	logger    *zap.Logger
}

type Option func(*Invoker)

func WithSigner(signer ledger.Signer) Option {
	return func(i *Invoker) {
		if signer != nil {
			i.signer = NewSignerAdapter(signer, i.network, i.logger)
		}
	}
}

// WithJournal records every submitted write so it can be listed and
// resumed later.
func WithJournal(journal store.JournalStore) Option {
	return func(i *Invoker) {
		i.journal = journal
	}
}

func NewInvoker(
	transport ledger.Transport,
	network *config.NetworkConfig,
	logger *zap.Logger,
	opts ...Option,
) *Invoker {
	logger = logger.Named("txn")
	i := &Invoker{
		network:   network,
		builder:   NewBuilder(transport, network, logger),
		simulator: NewSimulator(transport, logger),
		submitter: NewSubmitter(transport, logger),
		poller:    NewPoller(transport, network, logger),
		logger:    logger,
	}
	for _, opt := range opts {
		opt(i)
	}
	return i
}

func (i *Invoker) HasSigner() bool { return i.signer != nil }

func (i *Invoker) Network() *config.NetworkConfig { return i.network }

// Invoke runs a state-changing invocation from source to its extracted
// result.
func (i *Invoker) Invoke(
	ctx context.Context,
	source string,
	method string,
	args ...wire.Value,
) (tx *Tx, err error) {
	start := time.Now()
	defer func() { observe(method, "write", start, err) }()

	if i.signer == nil {
		return nil, ErrNoSigner
	}

	tx, err = i.builder.Build(ctx, source, method, args)
	if err != nil {
		return nil, err
	}
	if err = i.simulator.Simulate(ctx, tx); err != nil {
		return tx, err
	}
	if err = i.simulator.Prepare(tx); err != nil {
		return tx, err
	}
	if err = i.signer.Sign(ctx, tx); err != nil {
		return tx, err
	}

	i.record(ctx, tx, "")
	err = i.submitter.Submit(ctx, tx)
	if err != nil {
		i.record(ctx, tx, diagnosticOf(err))
		return tx, err
	}
	i.record(ctx, tx, "")

	return tx, i.finish(ctx, tx)
}

// Query runs a read-only invocation and returns the simulated result. An
// empty source selects the configured read-only account.
func (i *Invoker) Query(
	ctx context.Context,
	source string,
	method string,
	args ...wire.Value,
) (v wire.Value, err error) {
	start := time.Now()
	defer func() { observe(method, "read", start, err) }()

	if source == "" {
		source = i.network.ReadOnlySource
	}

	tx, err := i.builder.Build(ctx, source, method, args)
	if err != nil {
		return nil, err
	}
	if err = i.simulator.Simulate(ctx, tx); err != nil {
		return nil, err
	}
	return i.simulator.ReadResult(tx)
}

// Resume continues polling a journaled transaction that was submitted but
// never reached finality, and extracts its result.
func (i *Invoker) Resume(ctx context.Context, hash string) (tx *Tx, err error) {
	if i.journal == nil {
		return nil, ErrNoJournal
	}

	entry, err := i.journal.GetEntry(hash)
	if err != nil {
		return nil, errors.Wrap(err, "resume")
	}

	start := time.Now()
	defer func() { observe(entry.Method, "resume", start, err) }()

	state, ok := ParseState(entry.State)
	if !ok {
		return nil, errors.Wrap(
			errors.Errorf("unknown state %q", entry.State),
			"resume",
		)
	}
	// a crash between signing and recording the submission leaves the
	// entry at signed although the envelope may have reached the ledger
	if state == StateSigned {
		state = StateSubmitted
	}
	if state != StateSubmitted && state != StatePending {
		return nil, errors.Wrapf(
			ErrInvalidTransition,
			"resume from %s",
			state,
		)
	}

	env, err := ParseEnvelope(entry.Envelope)
	if err != nil {
		return nil, errors.Wrap(err, "resume")
	}

	if entry.CallID != "" && CallID(ctx) == "" {
		ctx = WithCallID(ctx, entry.CallID)
	}

	tx = &Tx{
		Envelope:  env,
		Lifecycle: RestoreLifecycle(state),
		Hash:      entry.Hash,
		Signed:    entry.Envelope,
		Attempts:  int(entry.Attempts),
	}
	return tx, i.finish(ctx, tx)
}

func (i *Invoker) finish(ctx context.Context, tx *Tx) error {
	if err := i.poller.Poll(ctx, tx); err != nil {
		i.record(ctx, tx, diagnosticOf(err))
		return err
	}

	_, err := Extract(tx)
	i.record(ctx, tx, diagnosticOf(err))
	if err != nil {
		return err
	}

	i.logger.Info(
		"invocation final",
		zap.String("call_id", CallID(ctx)),
		zap.String("method", tx.Method()),
		zap.String("hash", tx.Hash),
		zap.Uint64("ledger", tx.Status.Ledger),
		zap.Int("attempts", tx.Attempts),
	)
	return nil
}

// record writes the transaction's progress to the journal. Journal failures
// are logged and never fail the invocation.
func (i *Invoker) record(ctx context.Context, tx *Tx, diagnostic string) {
	if i.journal == nil || tx.Hash == "" {
		return
	}

	now := time.Now().UnixMilli()
	entry, err := i.journal.GetEntry(tx.Hash)
	if err != nil || entry == nil {
		entry = &store.JournalEntry{
			Hash:      tx.Hash,
			CallID:    CallID(ctx),
			Method:    tx.Method(),
			Source:    tx.Envelope.Source,
			Envelope:  tx.Signed,
			CreatedAt: now,
		}
	}
	entry.State = tx.State().String()
	entry.Final = tx.State().Final()
	entry.Attempts = uint32(tx.Attempts)
	entry.UpdatedAt = now
	if diagnostic != "" {
		entry.Diagnostic = diagnostic
	}
	if tx.Status != nil {
		entry.Ledger = tx.Status.Ledger
	}
	if tx.Result != nil {
		if data, err := wire.Marshal(tx.Result); err == nil {
			entry.Result = data
		}
	}

	txn, err := i.journal.NewTransaction(false)
	if err != nil {
		i.logger.Warn("could not open journal transaction", zap.Error(err))
		return
	}
	if err := i.journal.PutEntry(txn, entry); err != nil {
		txn.Abort()
		i.logger.Warn(
			"could not record transaction",
			zap.String("hash", tx.Hash),
			zap.Error(err),
		)
		return
	}
	if err := txn.Commit(); err != nil {
		i.logger.Warn(
			"could not commit journal entry",
			zap.String("hash", tx.Hash),
			zap.Error(err),
		)
	}
}

func diagnosticOf(err error) string {
	if err == nil {
		return ""
	}
	return err.Error()
}

func observe(method, kind string, start time.Time, err error) {
	outcome := "success"
	if err != nil {
		outcome = "error"
		errorsTotal.WithLabelValues(ErrorKind(err)).Inc()
	}
	invocationsTotal.WithLabelValues(method, kind, outcome).Inc()
	invocationDuration.WithLabelValues(method, kind).Observe(
		time.Since(start).Seconds(),
	)
}

// ErrorKind classifies an invocation error for metrics and display.
func ErrorKind(err error) string {
	var (
		encodingErr   *wire.EncodingError
		decodingErr   *wire.DecodingError
		accountErr    *AccountError
		simulationErr *SimulationError
		signingErr    *SigningError
		submissionErr *SubmissionError
		timeoutErr    *FinalityTimeoutError
		failureErr    *FinalizedFailureError
		cancelledErr  *CancelledError
	)
	switch {
	case errors.As(err, &cancelledErr):
		return "cancelled"
	case errors.As(err, &encodingErr):
		return "encoding"
	case errors.As(err, &decodingErr):
		return "decoding"
	case errors.As(err, &accountErr):
		return "account"
	case errors.As(err, &simulationErr):
		return "simulation"
	case errors.As(err, &signingErr):
		if signingErr.Cancelled {
			return "signing_cancelled"
		}
		return "signing"
	case errors.As(err, &submissionErr):
		return "submission"
	case errors.As(err, &timeoutErr):
		return "finality_timeout"
	case errors.As(err, &failureErr):
		return "finalized_failure"
	}
	return "other"
}
