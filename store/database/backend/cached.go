package backend

import (
	lru "github.com/hashicorp/golang-lru"

	"github.com/clawnch/ledger/store"
	"github.com/clawnch/ledger/store/database"
)

var _ database.Database = (*CachedDatabase)(nil)

// CachedDatabase puts an LRU read cache in front of another database. Cache
// entries are only touched after the underlying write succeeded, so a failed
// batch never leaves cached values the database does not hold.
type CachedDatabase struct {
	db    database.Database
	cache *lru.Cache
}

// NewCachedDatabase wraps db with a cache of up to size entries.
func NewCachedDatabase(db database.Database, size int) (*CachedDatabase, error) {
	cache, err := lru.New(size)
	if err != nil {
		return nil, err
	}
	return &CachedDatabase{db: db, cache: cache}, nil
}

func (db *CachedDatabase) Put(key []byte, value []byte) error {
	if err := db.db.Put(key, value); err != nil {
		db.cache.Remove(string(key))
		return err
	}
	db.cache.Add(string(key), append([]byte{}, value...))
	return nil
}

func (db *CachedDatabase) Get(key []byte) ([]byte, error) {
	if v, ok := db.cache.Get(string(key)); ok {
		return append([]byte{}, v.([]byte)...), nil
	}
	value, err := db.db.Get(key)
	if err != nil {
		return nil, err
	}
	db.cache.Add(string(key), append([]byte{}, value...))
	return value, nil
}

func (db *CachedDatabase) Has(key []byte) (bool, error) {
	if db.cache.Contains(string(key)) {
		return true, nil
	}
	return db.db.Has(key)
}

func (db *CachedDatabase) Delete(key []byte) error {
	db.cache.Remove(string(key))
	err := db.db.Delete(key)
	if err == store.ErrKeyNotFound {
		return nil
	}
	return err
}

// Iterate bypasses the cache.
func (db *CachedDatabase) Iterate(prefix []byte, fn func(key, value []byte) bool) error {
	return db.db.Iterate(prefix, fn)
}

func (db *CachedDatabase) Close() {
	db.cache.Purge()
	db.db.Close()
}

func (db *CachedDatabase) NewBatch() database.Batch {
	return &cachedBatch{db: db, batch: db.db.NewBatch()}
}

type cachedBatch struct {
	db     *CachedDatabase
	batch  database.Batch
	writes []kv
}

func (b *cachedBatch) Put(key, value []byte) error {
	b.writes = append(b.writes, kv{k: append([]byte{}, key...), v: append([]byte{}, value...)})
	return b.batch.Put(key, value)
}

func (b *cachedBatch) Delete(key []byte) error {
	b.writes = append(b.writes, kv{k: append([]byte{}, key...), del: true})
	return b.batch.Delete(key)
}

func (b *cachedBatch) Write() error {
	if err := b.batch.Write(); err != nil {
		// The cache never held the staged values, nothing to undo.
		return err
	}
	for _, w := range b.writes {
		if w.del {
			b.db.cache.Remove(string(w.k))
		} else {
			b.db.cache.Add(string(w.k), w.v)
		}
	}
	b.writes = nil
	return nil
}

func (b *cachedBatch) ValueSize() int {
	return b.batch.ValueSize()
}

func (b *cachedBatch) Reset() {
	b.batch.Reset()
	b.writes = nil
}
