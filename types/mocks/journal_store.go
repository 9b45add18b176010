package mocks

import (
	"github.com/stretchr/testify/mock"

	"github.com/OFFER-HUB/protocol-offer-hub/types/store"
)

// MockJournalStore is a mock implementation of store.JournalStore
type MockJournalStore struct {
	mock.Mock
}

var _ store.JournalStore = (*MockJournalStore)(nil)

func (m *MockJournalStore) NewTransaction(indexed bool) (
	store.Transaction,
	error,
) {
	args := m.Called(indexed)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(store.Transaction), args.Error(1)
}

func (m *MockJournalStore) GetEntry(hash string) (*store.JournalEntry, error) {
	args := m.Called(hash)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*store.JournalEntry), args.Error(1)
}

func (m *MockJournalStore) PutEntry(
	txn store.Transaction,
	entry *store.JournalEntry,
) error {
	args := m.Called(txn, entry)
	return args.Error(0)
}

func (m *MockJournalStore) DeleteEntry(
	txn store.Transaction,
	hash string,
) error {
	args := m.Called(txn, hash)
	return args.Error(0)
}

func (m *MockJournalStore) RangeEntries() ([]*store.JournalEntry, error) {
	args := m.Called()
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*store.JournalEntry), args.Error(1)
}

func (m *MockJournalStore) RangeInFlight() ([]*store.JournalEntry, error) {
	args := m.Called()
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*store.JournalEntry), args.Error(1)
}

func (m *MockJournalStore) Prune(before int64) (int, error) {
	args := m.Called(before)
	return args.Int(0), args.Error(1)
}

func (m *MockJournalStore) Clear() error {
	args := m.Called()
	return args.Error(0)
}
