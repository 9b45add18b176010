package store

// JournalEntry records the progress of one write invocation so that a
// submitted transaction can be inspected or resumed after the process that
// sent it has gone away.
type JournalEntry struct {
	Hash   string
	CallID string
	Method string
	Source string
	// State is the lifecycle state name last reached by the transaction.
	State string
	// Final is set once the transaction reached a state it cannot leave.
	Final bool
	// Envelope is the signed envelope as submitted.
	Envelope   []byte
	Attempts   uint32
	Ledger     uint64
	Diagnostic string
	// Result is the canonical wire encoding of the extracted return value.
	Result    []byte
	CreatedAt int64
	UpdatedAt int64
}

type JournalStore interface {
	NewTransaction(indexed bool) (Transaction, error)
	GetEntry(hash string) (*JournalEntry, error)
	PutEntry(txn Transaction, entry *JournalEntry) error
	DeleteEntry(txn Transaction, hash string) error
	// RangeEntries returns every entry ordered by hash.
	RangeEntries() ([]*JournalEntry, error)
	// RangeInFlight returns the entries that were submitted but have not yet
	// reached a terminal state.
	RangeInFlight() ([]*JournalEntry, error)
	// Prune deletes final entries last updated before the given unix
	// millisecond time, compacts the store and returns the number removed.
	Prune(before int64) (int, error)
	// Clear deletes every entry, including those still in flight.
	Clear() error
}
