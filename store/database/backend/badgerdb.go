package backend

import (
	"github.com/dgraph-io/badger"
	"github.com/pkg/errors"

	"github.com/clawnch/ledger/store"
	"github.com/clawnch/ledger/store/database"
)

var _ database.Database = (*BadgerDatabase)(nil)

// BadgerDatabase a BadgerDB wrapped object.
type BadgerDatabase struct {
	db *badger.DB
}

// NewBadgerDatabase returns a BadgerDB wrapped object.
func NewBadgerDatabase(dirname string) (*BadgerDatabase, error) {
	opts := badger.DefaultOptions(dirname)
	opts.Dir = dirname
	opts.ValueDir = dirname
	opts.Logger = nil
	db, err := badger.Open(opts)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to open badger database at %v", dirname)
	}

	return &BadgerDatabase{
		db: db,
	}, nil
}

// Put puts the given key / value to the database
func (db *BadgerDatabase) Put(key []byte, value []byte) error {
	return db.db.Update(func(txn *badger.Txn) error {
		return txn.Set(key, value)
	})
}

// Has checks if the given key is present in the database
func (db *BadgerDatabase) Has(key []byte) (bool, error) {
	err := db.db.View(func(txn *badger.Txn) error {
		_, err := txn.Get(key)
		return err
	})
	if err != nil {
		if err == badger.ErrKeyNotFound || err == badger.ErrEmptyKey {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

// Get returns the given key if it's present.
func (db *BadgerDatabase) Get(key []byte) ([]byte, error) {
	var value []byte
	err := db.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(key)
		if err != nil {
			if err == badger.ErrKeyNotFound || err == badger.ErrEmptyKey {
				return store.ErrKeyNotFound
			}
			return err
		}
		value, err = item.ValueCopy(nil)
		return err
	})
	return value, err
}

// Delete deletes the key from the database
func (db *BadgerDatabase) Delete(key []byte) error {
	return db.db.Update(func(txn *badger.Txn) error {
		return txn.Delete(key)
	})
}

// Iterate walks over the keys with the given prefix in ascending order.
func (db *BadgerDatabase) Iterate(prefix []byte, fn func(key, value []byte) bool) error {
	return db.db.View(func(txn *badger.Txn) error {
		it := txn.NewIterator(badger.DefaultIteratorOptions)
		defer it.Close()

		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			item := it.Item()
			value, err := item.ValueCopy(nil)
			if err != nil {
				return err
			}
			if !fn(item.KeyCopy(nil), value) {
				break
			}
		}
		return nil
	})
}

func (db *BadgerDatabase) Close() {
	if err := db.db.Close(); err != nil {
		logger.Errorf("Failed to close database, err: %v", err)
	}
}

func (db *BadgerDatabase) NewBatch() database.Batch {
	return &badgerdbBatch{db: db.db}
}

type badgerdbBatch struct {
	db     *badger.DB
	writes []kv
	size   int
}

func (b *badgerdbBatch) Put(key, value []byte) error {
	b.writes = append(b.writes, kv{k: key, v: value})
	b.size += len(value)
	return nil
}

func (b *badgerdbBatch) Delete(key []byte) error {
	b.writes = append(b.writes, kv{k: key, del: true})
	b.size++
	return nil
}

// Write applies the batch in a single transaction. A batch too big for one
// transaction fails as a whole rather than being split across commits.
func (b *badgerdbBatch) Write() error {
	txn := b.db.NewTransaction(true)
	defer txn.Discard()

	for _, w := range b.writes {
		var err error
		if w.del {
			err = txn.Delete(w.k)
		} else {
			err = txn.Set(w.k, w.v)
		}
		if err != nil {
			return errors.Wrapf(err, "failed to stage batch of %v writes", len(b.writes))
		}
	}

	if err := txn.Commit(); err != nil {
		return err
	}

	b.Reset()
	return nil
}

func (b *badgerdbBatch) ValueSize() int {
	return b.size
}

func (b *badgerdbBatch) Reset() {
	b.writes = nil
	b.size = 0
}
