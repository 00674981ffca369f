package database

// Database wraps all database operations. All methods are safe for concurrent use.
type Database interface {
	Put(key []byte, value []byte) error
	Get(key []byte) ([]byte, error)
	Has(key []byte) (bool, error)
	Delete(key []byte) error

	// Iterate calls fn for every key with the given prefix in ascending key
	// order until fn returns false.
	Iterate(prefix []byte, fn func(key, value []byte) bool) error

	NewBatch() Batch
	Close()
}

// Batch is a write-only database that commits changes to its host database
// when Write is called. Write applies either every staged change or none.
type Batch interface {
	Put(key, value []byte) error
	Delete(key []byte) error
	ValueSize() int // amount of data in the batch
	Write() error
	// Reset resets the batch for reuse
	Reset()
}
