package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/OFFER-HUB/protocol-offer-hub/types/ledger"
)

// MockSigner is a mock implementation of ledger.Signer
type MockSigner struct {
	mock.Mock
}

var _ ledger.Signer = (*MockSigner)(nil)

func (m *MockSigner) Sign(
	ctx context.Context,
	unsigned []byte,
	opts ledger.SignOptions,
) ([]byte, error) {
	args := m.Called(ctx, unsigned, opts)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]byte), args.Error(1)
}
