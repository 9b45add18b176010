package store

import (
	"slices"

	"github.com/cockroachdb/pebble"
	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/OFFER-HUB/protocol-offer-hub/types/canonical"
	"github.com/OFFER-HUB/protocol-offer-hub/types/ledger"
	"github.com/OFFER-HUB/protocol-offer-hub/types/store"
)

var ErrNotFound = errors.New("journal entry not found")

const (
	JOURNAL           = 0x20
	JOURNAL_BY_HASH   = 0x00
	JOURNAL_IN_FLIGHT = 0x01
)

var _ store.JournalStore = (*PebbleJournalStore)(nil)

type PebbleJournalStore struct {
	db     store.KVDB
	logger *zap.Logger
}

func NewPebbleJournalStore(
	db store.KVDB,
	logger *zap.Logger,
) *PebbleJournalStore {
	return &PebbleJournalStore{
		db,
		logger.Named("journal"),
	}
}

func journalKey(hash string) []byte {
	key := []byte{JOURNAL, JOURNAL_BY_HASH}
	return append(key, hash...)
}

func inFlightKey(hash string) []byte {
	key := []byte{JOURNAL, JOURNAL_IN_FLIGHT}
	return append(key, hash...)
}

func (p *PebbleJournalStore) NewTransaction(indexed bool) (
	store.Transaction,
	error,
) {
	return p.db.NewBatch(indexed), nil
}

func (p *PebbleJournalStore) GetEntry(hash string) (*store.JournalEntry, error) {
	if hash == "" {
		return nil, errors.Wrap(errors.New("empty hash"), "get entry")
	}

	data, closer, err := p.db.Get(journalKey(hash))
	if err != nil {
		if errors.Is(err, pebble.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, errors.Wrap(err, "get entry")
	}
	copied := slices.Clone(data)
	closer.Close()

	entry, err := decodeJournalEntry(copied)
	return entry, errors.Wrap(err, "get entry")
}

func (p *PebbleJournalStore) PutEntry(
	txn store.Transaction,
	entry *store.JournalEntry,
) error {
	if entry.Hash == "" {
		return errors.Wrap(errors.New("empty hash"), "put entry")
	}

	data, err := encodeJournalEntry(entry)
	if err != nil {
		return errors.Wrap(err, "put entry")
	}

	if err := txn.Set(journalKey(entry.Hash), data); err != nil {
		return errors.Wrap(err, "put entry")
	}

	if entry.Final {
		if err := txn.Delete(inFlightKey(entry.Hash)); err != nil {
			return errors.Wrap(err, "put entry")
		}
	} else {
		if err := txn.Set(inFlightKey(entry.Hash), []byte{0x01}); err != nil {
			return errors.Wrap(err, "put entry")
		}
	}

	p.logger.Debug(
		"recorded entry",
		zap.String("hash", entry.Hash),
		zap.String("state", entry.State),
	)
	return nil
}

func (p *PebbleJournalStore) DeleteEntry(
	txn store.Transaction,
	hash string,
) error {
	if err := txn.Delete(journalKey(hash)); err != nil {
		return errors.Wrap(err, "delete entry")
	}
	if err := txn.Delete(inFlightKey(hash)); err != nil {
		return errors.Wrap(err, "delete entry")
	}
	return nil
}

func (p *PebbleJournalStore) RangeEntries() ([]*store.JournalEntry, error) {
	iter, err := p.db.NewIter(
		[]byte{JOURNAL, JOURNAL_BY_HASH},
		[]byte{JOURNAL, JOURNAL_BY_HASH + 1},
	)
	if err != nil {
		return nil, errors.Wrap(err, "range entries")
	}
	defer iter.Close()

	var entries []*store.JournalEntry
	for iter.First(); iter.Valid(); iter.Next() {
		entry, err := decodeJournalEntry(slices.Clone(iter.Value()))
		if err != nil {
			return nil, errors.Wrap(err, "range entries")
		}
		entries = append(entries, entry)
	}

	return entries, nil
}

func (p *PebbleJournalStore) RangeInFlight() ([]*store.JournalEntry, error) {
	iter, err := p.db.NewIter(
		[]byte{JOURNAL, JOURNAL_IN_FLIGHT},
		[]byte{JOURNAL, JOURNAL_IN_FLIGHT + 1},
	)
	if err != nil {
		return nil, errors.Wrap(err, "range in flight")
	}
	defer iter.Close()

	var entries []*store.JournalEntry
	for iter.First(); iter.Valid(); iter.Next() {
		hash := string(iter.Key()[2:])
		entry, err := p.GetEntry(hash)
		if err != nil {
			if errors.Is(err, ErrNotFound) {
				p.logger.Warn("dangling in-flight index", zap.String("hash", hash))
				continue
			}
			return nil, errors.Wrap(err, "range in flight")
		}
		entries = append(entries, entry)
	}

	return entries, nil
}

func (p *PebbleJournalStore) Prune(before int64) (int, error) {
	entries, err := p.RangeEntries()
	if err != nil {
		return 0, errors.Wrap(err, "prune")
	}

	txn, err := p.NewTransaction(false)
	if err != nil {
		return 0, errors.Wrap(err, "prune")
	}

	pruned := 0
	for _, e := range entries {
		if !e.Final || e.UpdatedAt >= before {
			continue
		}
		if err := p.DeleteEntry(txn, e.Hash); err != nil {
			txn.Abort()
			return 0, errors.Wrap(err, "prune")
		}
		pruned++
	}
	if err := txn.Commit(); err != nil {
		return 0, errors.Wrap(err, "prune")
	}

	if pruned > 0 {
		if err := p.db.CompactAll(); err != nil {
			return pruned, errors.Wrap(err, "prune")
		}
	}
	p.logger.Info("pruned journal", zap.Int("entries", pruned))
	return pruned, nil
}

func (p *PebbleJournalStore) Clear() error {
	if err := p.db.DeleteRange(
		[]byte{JOURNAL, JOURNAL_BY_HASH},
		[]byte{JOURNAL, JOURNAL_IN_FLIGHT + 1},
	); err != nil {
		return errors.Wrap(err, "clear")
	}
	if err := p.db.CompactAll(); err != nil {
		return errors.Wrap(err, "clear")
	}
	p.logger.Info("cleared journal")
	return nil
}

func encodeJournalEntry(e *store.JournalEntry) ([]byte, error) {
	w := canonical.NewWriter(ledger.JournalEntryType)
	w.Text(e.Hash)
	w.Text(e.CallID)
	w.Text(e.Method)
	w.Text(e.Source)
	w.Text(e.State)
	w.Bool(e.Final)
	w.Bytes(e.Envelope)
	w.Uint32(e.Attempts)
	w.Uint64(e.Ledger)
	w.Text(e.Diagnostic)
	w.Bytes(e.Result)
	w.Uint64(uint64(e.CreatedAt))
	w.Uint64(uint64(e.UpdatedAt))
	return w.Finish("encode journal entry")
}

func decodeJournalEntry(data []byte) (*store.JournalEntry, error) {
	rd := canonical.NewReader(data, ledger.JournalEntryType)
	e := &store.JournalEntry{
		Hash:       rd.Text(),
		CallID:     rd.Text(),
		Method:     rd.Text(),
		Source:     rd.Text(),
		State:      rd.Text(),
		Final:      rd.Bool(),
		Envelope:   rd.Bytes(),
		Attempts:   rd.Uint32(),
		Ledger:     rd.Uint64(),
		Diagnostic: rd.Text(),
		Result:     rd.Bytes(),
		CreatedAt:  int64(rd.Uint64()),
		UpdatedAt:  int64(rd.Uint64()),
	}
	if err := rd.Finish("decode journal entry"); err != nil {
		return nil, err
	}
	return e, nil
}
