package txn

import (
	"context"
	"testing"
	"time"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/OFFER-HUB/protocol-offer-hub/config"
	"github.com/OFFER-HUB/protocol-offer-hub/types/ledger"
	"github.com/OFFER-HUB/protocol-offer-hub/types/mocks"
	"github.com/OFFER-HUB/protocol-offer-hub/wire"
)

const (
	accountA   = "GAAACAQDAQCQMBYIBEFAWDANBYHRAEISCMKBKFQXDAMRUGY4DUPB7JZX"
	accountB   = "GAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAWHF"
	contractID = "CAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAABSC4"
)

func testNetwork(maxAttempts int) *config.NetworkConfig {
	n := config.NetworkConfig{
		Name:            "standalone",
		ContractID:      contractID,
		PollInterval:    time.Millisecond,
		MaxPollAttempts: maxAttempts,
		// a sentinel, so the zero account is looked up like any other
		ReadOnlySource: "GREADONLY",
	}.WithDefaults()
	return &n
}

func resultMeta(t *testing.T, v wire.Value) []byte {
	t.Helper()
	raw, err := wire.Marshal(v)
	require.NoError(t, err)
	meta, err := (&ledger.ResultMeta{
		FeeCharged: 150,
		Results: []ledger.OperationResult{
			{Code: ledger.OperationSuccess, ReturnValue: raw},
		},
	}).ToCanonicalBytes()
	require.NoError(t, err)
	return meta
}

func fakeSigner() ledger.Signer {
	return ledger.SignerFunc(func(
		ctx context.Context,
		unsigned []byte,
		opts ledger.SignOptions,
	) ([]byte, error) {
		env, err := ParseEnvelope(unsigned)
		if err != nil {
			return nil, err
		}
		env.Signatures = []Signature{{
			PublicKey: []byte(opts.AccountToSign),
			Signature: []byte{0x01},
		}}
		return env.ToCanonicalBytes()
	})
}

func writeTransport(t *testing.T) *mocks.MockTransport {
	t.Helper()
	transport := &mocks.MockTransport{}
	transport.On("GetAccount", mock.Anything, accountA).
		Return(&ledger.AccountInfo{Address: accountA, Sequence: 10}, nil)
	transport.On("GetLatestLedger", mock.Anything).Return(uint64(100), nil)
	transport.On("Simulate", mock.Anything, mock.Anything).
		Return(&ledger.SimulationResult{
			MinResourceFee: 50,
			Resources:      ledger.Resources{Instructions: 1000},
			LatestLedger:   100,
		}, nil)
	return transport
}

func claimArgs() []wire.Value {
	return []wire.Value{
		wire.MustParseAddress(accountA),
		wire.MustParseAddress(accountB),
		wire.String("job_completed"),
		wire.Bytes(make([]byte, 32)),
	}
}

func TestInvoke_FinalizesAfterThreePolls(t *testing.T) {
	transport := writeTransport(t)
	transport.On("Submit", mock.Anything, mock.Anything).
		Return(&ledger.SubmitResult{Status: ledger.SubmitPending}, nil)
	transport.On("GetTransaction", mock.Anything, mock.Anything).
		Return(&ledger.TransactionStatus{Status: ledger.TxNotFound}, nil).
		Twice()
	transport.On("GetTransaction", mock.Anything, mock.Anything).
		Return(&ledger.TransactionStatus{
			Status:     ledger.TxSuccess,
			Ledger:     102,
			ResultMeta: resultMeta(t, wire.U64(7)),
		}, nil).
		Once()

	invoker := NewInvoker(
		transport,
		testNetwork(10),
		zap.NewNop(),
		WithSigner(fakeSigner()),
	)

	tx, err := invoker.Invoke(
		context.Background(),
		accountA,
		"add_claim",
		claimArgs()...,
	)
	require.NoError(t, err)

	assert.Equal(t, wire.U64(7), tx.Result)
	assert.Equal(t, 3, tx.Attempts)
	assert.Equal(t, StateResultExtracted, tx.State())
	assert.Equal(t, uint64(11), tx.Envelope.Sequence)
	assert.Equal(t, uint64(130), tx.Envelope.ExpirationLedger)
	assert.Equal(t, uint64(150), tx.Envelope.Fee)
	assert.Equal(t, uint64(50), tx.Envelope.ResourceFee)
	assert.Len(t, tx.Hash, 64)
	assert.Equal(t, []State{
		StateBuilt,
		StateSimulated,
		StatePrepared,
		StateSigned,
		StateSubmitted,
		StatePending,
		StateFinalizedSuccess,
		StateResultExtracted,
	}, tx.Lifecycle.History())

	transport.AssertNumberOfCalls(t, "GetTransaction", 3)
	transport.AssertCalled(t, "GetTransaction", mock.Anything, tx.Hash)
}

func TestInvoke_SubmissionRefused(t *testing.T) {
	transport := writeTransport(t)
	transport.On("Submit", mock.Anything, mock.Anything).
		Return(&ledger.SubmitResult{
			Status:      ledger.SubmitError,
			ErrorResult: "txBadSeq",
		}, nil)

	invoker := NewInvoker(
		transport,
		testNetwork(10),
		zap.NewNop(),
		WithSigner(fakeSigner()),
	)

	tx, err := invoker.Invoke(context.Background(), accountA, "add_claim", claimArgs()...)

	var subErr *SubmissionError
	require.ErrorAs(t, err, &subErr)
	assert.Equal(t, "txBadSeq", subErr.Diagnostic)
	assert.Equal(t, ledger.SubmitError, subErr.Status)
	assert.Equal(t, StateRejected, tx.State())
	transport.AssertNotCalled(t, "GetTransaction", mock.Anything, mock.Anything)
}

func TestInvoke_SubmitTransportFailure(t *testing.T) {
	transport := writeTransport(t)
	transport.On("Submit", mock.Anything, mock.Anything).
		Return(nil, errors.New("connection reset by peer"))

	invoker := NewInvoker(
		transport,
		testNetwork(10),
		zap.NewNop(),
		WithSigner(fakeSigner()),
	)

	_, err := invoker.Invoke(context.Background(), accountA, "add_claim", claimArgs()...)

	var subErr *SubmissionError
	require.ErrorAs(t, err, &subErr)
	assert.Contains(t, err.Error(), "connection reset by peer")
	transport.AssertNotCalled(t, "GetTransaction", mock.Anything, mock.Anything)
}

func TestInvoke_FinalityTimeout(t *testing.T) {
	transport := writeTransport(t)
	transport.On("Submit", mock.Anything, mock.Anything).
		Return(&ledger.SubmitResult{Status: ledger.SubmitPending}, nil)
	transport.On("GetTransaction", mock.Anything, mock.Anything).
		Return(&ledger.TransactionStatus{Status: ledger.TxNotFound}, nil)

	invoker := NewInvoker(
		transport,
		testNetwork(4),
		zap.NewNop(),
		WithSigner(fakeSigner()),
	)

	tx, err := invoker.Invoke(context.Background(), accountA, "add_claim", claimArgs()...)

	var timeoutErr *FinalityTimeoutError
	require.ErrorAs(t, err, &timeoutErr)
	assert.Equal(t, 4, timeoutErr.Attempts)
	assert.Equal(t, tx.Hash, timeoutErr.Hash)
	assert.Equal(t, StatePending, tx.State())
	transport.AssertNumberOfCalls(t, "GetTransaction", 4)
}

func TestInvoke_CancelledWhilePolling(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	transport := writeTransport(t)
	transport.On("Submit", mock.Anything, mock.Anything).
		Return(&ledger.SubmitResult{Status: ledger.SubmitPending}, nil)
	transport.On("GetTransaction", mock.Anything, mock.Anything).
		Run(func(args mock.Arguments) { cancel() }).
		Return(&ledger.TransactionStatus{Status: ledger.TxPending}, nil)

	network := testNetwork(100)
	network.PollInterval = time.Hour
	invoker := NewInvoker(transport, network, zap.NewNop(), WithSigner(fakeSigner()))

	done := make(chan error, 1)
	go func() {
		_, err := invoker.Invoke(ctx, accountA, "add_claim", claimArgs()...)
		done <- err
	}()

	select {
	case err := <-done:
		var cancelErr *CancelledError
		require.ErrorAs(t, err, &cancelErr)
		assert.Equal(t, StatePending, cancelErr.Stage)
		assert.ErrorIs(t, err, context.Canceled)
	case <-time.After(5 * time.Second):
		t.Fatal("poll loop did not observe cancellation")
	}
	transport.AssertNumberOfCalls(t, "GetTransaction", 1)
}

func TestInvoke_FinalizedFailure(t *testing.T) {
	transport := writeTransport(t)
	transport.On("Submit", mock.Anything, mock.Anything).
		Return(&ledger.SubmitResult{Status: ledger.SubmitPending}, nil)
	transport.On("GetTransaction", mock.Anything, mock.Anything).
		Return(&ledger.TransactionStatus{
			Status:     ledger.TxFailed,
			Ledger:     101,
			Diagnostic: "InvokeHostFunctionTrapped",
		}, nil)

	invoker := NewInvoker(transport, testNetwork(10), zap.NewNop(), WithSigner(fakeSigner()))
	tx, err := invoker.Invoke(context.Background(), accountA, "add_claim", claimArgs()...)

	var failErr *FinalizedFailureError
	require.ErrorAs(t, err, &failErr)
	assert.Equal(t, "InvokeHostFunctionTrapped", failErr.Diagnostic)
	assert.Equal(t, uint64(101), failErr.Ledger)
	assert.Equal(t, StateRejected, tx.State())
}

func TestInvoke_SimulationRejected(t *testing.T) {
	diagnostic := "HostError: Error(Contract, #1)"

	transport := &mocks.MockTransport{}
	transport.On("GetAccount", mock.Anything, accountA).
		Return(&ledger.AccountInfo{Address: accountA, Sequence: 1}, nil)
	transport.On("GetLatestLedger", mock.Anything).Return(uint64(5), nil)
	transport.On("Simulate", mock.Anything, mock.Anything).
		Return(&ledger.SimulationResult{Error: diagnostic}, nil)

	signer := &mocks.MockSigner{}
	invoker := NewInvoker(transport, testNetwork(10), zap.NewNop(), WithSigner(signer))

	_, err := invoker.Invoke(context.Background(), accountA, "register_profile")

	var simErr *SimulationError
	require.ErrorAs(t, err, &simErr)
	assert.Equal(t, diagnostic, simErr.Diagnostic)
	code, ok := simErr.ContractCode()
	assert.True(t, ok)
	assert.Equal(t, uint32(1), code)
	signer.AssertNotCalled(t, "Sign", mock.Anything, mock.Anything, mock.Anything)
	transport.AssertNotCalled(t, "Submit", mock.Anything, mock.Anything)
}

func TestInvoke_SignCancelled(t *testing.T) {
	transport := writeTransport(t)

	signer := &mocks.MockSigner{}
	signer.On("Sign", mock.Anything, mock.Anything, mock.MatchedBy(
		func(opts ledger.SignOptions) bool {
			return opts.AccountToSign == accountA &&
				opts.NetworkPassphrase == "Standalone Network ; February 2017"
		},
	)).Return(nil, errors.Wrap(ledger.ErrSignCancelled, "user closed the prompt"))

	invoker := NewInvoker(transport, testNetwork(10), zap.NewNop(), WithSigner(signer))
	tx, err := invoker.Invoke(context.Background(), accountA, "add_claim", claimArgs()...)

	var signErr *SigningError
	require.ErrorAs(t, err, &signErr)
	assert.True(t, signErr.Cancelled)
	assert.Equal(t, StatePrepared, tx.State())
	transport.AssertNotCalled(t, "Submit", mock.Anything, mock.Anything)
	signer.AssertExpectations(t)
}

func TestInvoke_SignProviderFailure(t *testing.T) {
	transport := writeTransport(t)

	signer := &mocks.MockSigner{}
	signer.On("Sign", mock.Anything, mock.Anything, mock.Anything).
		Return(nil, errors.New("wallet unreachable"))

	invoker := NewInvoker(transport, testNetwork(10), zap.NewNop(), WithSigner(signer))
	_, err := invoker.Invoke(context.Background(), accountA, "add_claim", claimArgs()...)

	var signErr *SigningError
	require.ErrorAs(t, err, &signErr)
	assert.False(t, signErr.Cancelled)
	assert.Contains(t, err.Error(), "wallet unreachable")
	transport.AssertNotCalled(t, "Submit", mock.Anything, mock.Anything)
}

func TestInvoke_SignerAlteredEnvelope(t *testing.T) {
	transport := writeTransport(t)
	altering := ledger.SignerFunc(func(
		ctx context.Context,
		unsigned []byte,
		opts ledger.SignOptions,
	) ([]byte, error) {
		env, err := ParseEnvelope(unsigned)
		if err != nil {
			return nil, err
		}
		env.Fee = 1
		env.Signatures = []Signature{{PublicKey: []byte{1}, Signature: []byte{1}}}
		return env.ToCanonicalBytes()
	})

	invoker := NewInvoker(transport, testNetwork(10), zap.NewNop(), WithSigner(altering))
	_, err := invoker.Invoke(context.Background(), accountA, "add_claim", claimArgs()...)

	var signErr *SigningError
	require.ErrorAs(t, err, &signErr)
	assert.False(t, signErr.Cancelled)
}

func TestInvoke_AccountError(t *testing.T) {
	transport := &mocks.MockTransport{}
	transport.On("GetAccount", mock.Anything, accountA).
		Return(nil, ledger.ErrAccountNotFound)

	invoker := NewInvoker(transport, testNetwork(10), zap.NewNop(), WithSigner(fakeSigner()))
	tx, err := invoker.Invoke(context.Background(), accountA, "register_profile")

	var accErr *AccountError
	require.ErrorAs(t, err, &accErr)
	assert.Equal(t, accountA, accErr.Address)
	assert.ErrorIs(t, err, ledger.ErrAccountNotFound)
	assert.Nil(t, tx)
	transport.AssertNotCalled(t, "GetLatestLedger", mock.Anything)
	transport.AssertNotCalled(t, "Simulate", mock.Anything, mock.Anything)
}

func TestInvoke_WithoutSigner(t *testing.T) {
	transport := &mocks.MockTransport{}
	invoker := NewInvoker(transport, testNetwork(10), zap.NewNop())

	_, err := invoker.Invoke(context.Background(), accountA, "register_profile")
	assert.ErrorIs(t, err, ErrNoSigner)
	transport.AssertNotCalled(t, "GetAccount", mock.Anything, mock.Anything)
}

func TestQuery_ReadOnlySourceSkipsAccountLookup(t *testing.T) {
	raw, err := wire.Marshal(wire.U32(42))
	require.NoError(t, err)

	transport := &mocks.MockTransport{}
	transport.On("GetLatestLedger", mock.Anything).Return(uint64(9), nil)
	transport.On("Simulate", mock.Anything, mock.Anything).
		Return(&ledger.SimulationResult{ReturnValue: raw}, nil)

	invoker := NewInvoker(transport, testNetwork(10), zap.NewNop())
	v, err := invoker.Query(context.Background(), "", "get_reputation_score")
	require.NoError(t, err)
	assert.Equal(t, wire.U32(42), v)

	transport.AssertNotCalled(t, "GetAccount", mock.Anything, mock.Anything)
	transport.AssertNotCalled(t, "Submit", mock.Anything, mock.Anything)
}

func TestQuery_VoidResult(t *testing.T) {
	transport := &mocks.MockTransport{}
	transport.On("GetLatestLedger", mock.Anything).Return(uint64(9), nil)
	transport.On("Simulate", mock.Anything, mock.Anything).
		Return(&ledger.SimulationResult{}, nil)

	invoker := NewInvoker(transport, testNetwork(10), zap.NewNop())
	v, err := invoker.Query(context.Background(), "", "get_did")
	require.NoError(t, err)
	assert.True(t, wire.IsAbsent(v))
}

func TestQuery_TransportFailureIsSimulationError(t *testing.T) {
	transport := &mocks.MockTransport{}
	transport.On("GetLatestLedger", mock.Anything).Return(uint64(9), nil)
	transport.On("Simulate", mock.Anything, mock.Anything).
		Return(nil, errors.New("rpc: 503 service unavailable"))

	invoker := NewInvoker(transport, testNetwork(10), zap.NewNop())
	_, err := invoker.Query(context.Background(), "", "get_total_claims")

	var simErr *SimulationError
	require.ErrorAs(t, err, &simErr)
	assert.Equal(t, "rpc: 503 service unavailable", simErr.Diagnostic)
}

func TestErrorKind(t *testing.T) {
	assert.Equal(t, "signing_cancelled", ErrorKind(&SigningError{Cancelled: true}))
	assert.Equal(t, "signing", ErrorKind(&SigningError{}))
	assert.Equal(t, "finality_timeout", ErrorKind(&FinalityTimeoutError{}))
	assert.Equal(t, "encoding", ErrorKind(errors.Wrap(&wire.EncodingError{}, "x")))
	assert.Equal(t, "other", ErrorKind(errors.New("boom")))
}
