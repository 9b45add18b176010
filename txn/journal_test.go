package txn

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/OFFER-HUB/protocol-offer-hub/config"
	"github.com/OFFER-HUB/protocol-offer-hub/store"
	"github.com/OFFER-HUB/protocol-offer-hub/types/ledger"
	"github.com/OFFER-HUB/protocol-offer-hub/wire"
)

func setupJournal(t *testing.T) *store.PebbleJournalStore {
	db, err := store.NewPebbleDB(
		zap.NewNop(),
		&config.DBConfig{InMemoryDONOTUSE: true, Path: ".test/journal"},
	)
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return store.NewPebbleJournalStore(db, zap.NewNop())
}

func TestInvoke_TimeoutThenResume(t *testing.T) {
	journal := setupJournal(t)

	transport := writeTransport(t)
	transport.On("Submit", mock.Anything, mock.Anything).
		Return(&ledger.SubmitResult{Status: ledger.SubmitPending}, nil)
	transport.On("GetTransaction", mock.Anything, mock.Anything).
		Return(&ledger.TransactionStatus{Status: ledger.TxNotFound}, nil).
		Times(2)

	invoker := NewInvoker(
		transport,
		testNetwork(2),
		zap.NewNop(),
		WithSigner(fakeSigner()),
		WithJournal(journal),
	)

	ctx := WithCallID(context.Background(), "call-1")
	tx, err := invoker.Invoke(ctx, accountA, "add_claim", claimArgs()...)
	var timeoutErr *FinalityTimeoutError
	require.ErrorAs(t, err, &timeoutErr)

	entry, err := journal.GetEntry(tx.Hash)
	require.NoError(t, err)
	assert.Equal(t, "pending", entry.State)
	assert.False(t, entry.Final)
	assert.Equal(t, "call-1", entry.CallID)
	assert.Equal(t, "add_claim", entry.Method)
	assert.Equal(t, accountA, entry.Source)
	assert.Equal(t, uint32(2), entry.Attempts)
	assert.NotEmpty(t, entry.Diagnostic)

	inFlight, err := journal.RangeInFlight()
	require.NoError(t, err)
	require.Len(t, inFlight, 1)

	transport.On("GetTransaction", mock.Anything, tx.Hash).
		Return(&ledger.TransactionStatus{
			Status:     ledger.TxSuccess,
			Ledger:     104,
			ResultMeta: resultMeta(t, wire.U64(9)),
		}, nil).
		Once()

	resumed, err := invoker.Resume(context.Background(), tx.Hash)
	require.NoError(t, err)
	assert.Equal(t, wire.U64(9), resumed.Result)
	assert.Equal(t, StateResultExtracted, resumed.State())
	assert.Equal(t, 3, resumed.Attempts)
	assert.Equal(t, "add_claim", resumed.Method())

	entry, err = journal.GetEntry(tx.Hash)
	require.NoError(t, err)
	assert.True(t, entry.Final)
	assert.Equal(t, "result_extracted", entry.State)
	assert.Equal(t, uint64(104), entry.Ledger)

	result, err := wire.Unmarshal(entry.Result)
	require.NoError(t, err)
	assert.Equal(t, wire.U64(9), result)

	inFlight, err = journal.RangeInFlight()
	require.NoError(t, err)
	assert.Empty(t, inFlight)
}

func TestResume_FinalEntryRejected(t *testing.T) {
	journal := setupJournal(t)

	transport := writeTransport(t)
	transport.On("Submit", mock.Anything, mock.Anything).
		Return(&ledger.SubmitResult{
			Status:      ledger.SubmitError,
			ErrorResult: "txBadSeq",
		}, nil)

	invoker := NewInvoker(
		transport,
		testNetwork(2),
		zap.NewNop(),
		WithSigner(fakeSigner()),
		WithJournal(journal),
	)

	tx, err := invoker.Invoke(context.Background(), accountA, "add_claim", claimArgs()...)
	require.Error(t, err)

	entry, err := journal.GetEntry(tx.Hash)
	require.NoError(t, err)
	assert.Equal(t, "rejected", entry.State)
	assert.True(t, entry.Final)
	assert.Contains(t, entry.Diagnostic, "txBadSeq")

	_, err = invoker.Resume(context.Background(), tx.Hash)
	assert.ErrorIs(t, err, ErrInvalidTransition)
}

func TestResume_Unknown(t *testing.T) {
	invoker := NewInvoker(
		&ledgerless{},
		testNetwork(2),
		zap.NewNop(),
		WithJournal(setupJournal(t)),
	)
	_, err := invoker.Resume(context.Background(), "ffff")
	assert.ErrorIs(t, err, store.ErrNotFound)

	invoker = NewInvoker(&ledgerless{}, testNetwork(2), zap.NewNop())
	_, err = invoker.Resume(context.Background(), "ffff")
	assert.ErrorIs(t, err, ErrNoJournal)
}

// ledgerless fails every call; the tests using it never reach the ledger.
type ledgerless struct{ ledger.Transport }
