package store

import (
	"io"
	"os"

	"github.com/cockroachdb/pebble"
	"github.com/cockroachdb/pebble/vfs"
	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/OFFER-HUB/protocol-offer-hub/config"
	"github.com/OFFER-HUB/protocol-offer-hub/types/store"
)

type PebbleDB struct {
	config *config.DBConfig
	db     *pebble.DB
}

var _ store.KVDB = (*PebbleDB)(nil)

func NewPebbleDB(logger *zap.Logger, config *config.DBConfig) (*PebbleDB, error) {
	opts := &pebble.Options{}
	if config.InMemoryDONOTUSE {
		opts.FS = vfs.NewMem()
	} else {
		if _, err := os.Stat(config.Path); err == nil {
			logger.Info("store found", zap.String("path", config.Path))
		} else if os.IsNotExist(err) {
			logger.Warn("store not found, creating", zap.String("path", config.Path))
			if err := os.MkdirAll(config.Path, 0o755); err != nil {
				return nil, errors.Wrap(err, "new pebble db")
			}
		} else {
			return nil, errors.Wrap(err, "new pebble db")
		}
	}

	db, err := pebble.Open(config.Path, opts)
	if err != nil {
		return nil, errors.Wrap(err, "new pebble db")
	}

	return &PebbleDB{config, db}, nil
}

func (p *PebbleDB) Get(key []byte) ([]byte, io.Closer, error) {
	return p.db.Get(key)
}

func (p *PebbleDB) Set(key, value []byte) error {
	return p.db.Set(key, value, &pebble.WriteOptions{Sync: true})
}

func (p *PebbleDB) Delete(key []byte) error {
	return p.db.Delete(key, &pebble.WriteOptions{Sync: true})
}

func (p *PebbleDB) NewBatch(indexed bool) store.Transaction {
	if indexed {
		return &PebbleTransaction{
			b: p.db.NewIndexedBatch(),
		}
	}
	return &PebbleTransaction{
		b: p.db.NewBatch(),
	}
}

func (p *PebbleDB) NewIter(lowerBound []byte, upperBound []byte) (
	store.Iterator,
	error,
) {
	return p.db.NewIter(&pebble.IterOptions{
		LowerBound: lowerBound,
		UpperBound: upperBound,
	})
}

func (p *PebbleDB) Close() error {
	return p.db.Close()
}

func (p *PebbleDB) DeleteRange(start, end []byte) error {
	return p.db.DeleteRange(start, end, &pebble.WriteOptions{Sync: true})
}

func (p *PebbleDB) CompactAll() error {
	iter, err := p.db.NewIter(nil)
	if err != nil {
		return errors.Wrap(err, "compact all")
	}

	var first, last []byte
	if iter.First() {
		first = append(first, iter.Key()...)
	}
	if iter.Last() {
		last = append(last, iter.Key()...)
	}
	if err := iter.Close(); err != nil {
		return errors.Wrap(err, "compact all")
	}
	if first == nil {
		return nil
	}

	// the end bound is exclusive
	last = append(last, 0xff)
	if err := p.db.Compact(first, last, false); err != nil {
		return errors.Wrap(err, "compact all")
	}

	return nil
}

type PebbleTransaction struct {
	b *pebble.Batch
}

var _ store.Transaction = (*PebbleTransaction)(nil)

func (t *PebbleTransaction) Get(key []byte) ([]byte, io.Closer, error) {
	return t.b.Get(key)
}

func (t *PebbleTransaction) Set(key []byte, value []byte) error {
	return t.b.Set(key, value, &pebble.WriteOptions{Sync: true})
}

func (t *PebbleTransaction) Commit() error {
	return t.b.Commit(&pebble.WriteOptions{Sync: true})
}

func (t *PebbleTransaction) Delete(key []byte) error {
	return t.b.Delete(key, &pebble.WriteOptions{Sync: true})
}

func (t *PebbleTransaction) Abort() error {
	return t.b.Close()
}

func (t *PebbleTransaction) NewIter(lowerBound []byte, upperBound []byte) (
	store.Iterator,
	error,
) {
	return t.b.NewIter(&pebble.IterOptions{
		LowerBound: lowerBound,
		UpperBound: upperBound,
	})
}

func (t *PebbleTransaction) DeleteRange(
	lowerBound []byte,
	upperBound []byte,
) error {
	return t.b.DeleteRange(
		lowerBound,
		upperBound,
		&pebble.WriteOptions{Sync: true},
	)
}
