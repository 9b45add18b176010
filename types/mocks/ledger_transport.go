package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/OFFER-HUB/protocol-offer-hub/types/ledger"
)

// MockTransport is a mock implementation of ledger.Transport
type MockTransport struct {
	mock.Mock
}

var _ ledger.Transport = (*MockTransport)(nil)

func (m *MockTransport) GetAccount(
	ctx context.Context,
	address string,
) (*ledger.AccountInfo, error) {
	args := m.Called(ctx, address)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*ledger.AccountInfo), args.Error(1)
}

func (m *MockTransport) GetLatestLedger(ctx context.Context) (uint64, error) {
	args := m.Called(ctx)
	return args.Get(0).(uint64), args.Error(1)
}

func (m *MockTransport) Simulate(
	ctx context.Context,
	envelope []byte,
) (*ledger.SimulationResult, error) {
	args := m.Called(ctx, envelope)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	if fn, ok := args.Get(0).(func(
		context.Context,
		[]byte,
	) *ledger.SimulationResult); ok {
		return fn(ctx, envelope), args.Error(1)
	}
	return args.Get(0).(*ledger.SimulationResult), args.Error(1)
}

func (m *MockTransport) Submit(
	ctx context.Context,
	envelope []byte,
) (*ledger.SubmitResult, error) {
	args := m.Called(ctx, envelope)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*ledger.SubmitResult), args.Error(1)
}

func (m *MockTransport) GetTransaction(
	ctx context.Context,
	hash string,
) (*ledger.TransactionStatus, error) {
	args := m.Called(ctx, hash)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*ledger.TransactionStatus), args.Error(1)
}
