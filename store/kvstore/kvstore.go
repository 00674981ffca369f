package kvstore

import (
	"github.com/ethereum/go-ethereum/rlp"

	"github.com/clawnch/ledger/store"
	"github.com/clawnch/ledger/store/database"
)

var _ store.Store = (*KVStore)(nil)

// NewKVStore create a new instance of KVStore.
func NewKVStore(db database.Database) *KVStore {
	return &KVStore{db}
}

// KVStore a Database wrapped object that rlp-encodes values.
type KVStore struct {
	db database.Database
}

// Put upserts key/value into DB
func (store *KVStore) Put(key []byte, value interface{}) error {
	encodedValue, err := Encode(value)
	if err != nil {
		return err
	}
	return store.db.Put(key, encodedValue)
}

// Delete deletes key entry from DB
func (store *KVStore) Delete(key []byte) error {
	return store.db.Delete(key)
}

// Get looks up DB with key and returns result into value (passed by reference)
func (store *KVStore) Get(key []byte, value interface{}) error {
	encodedValue, err := store.db.Get(key)
	if err != nil {
		return err
	}
	return Decode(encodedValue, value)
}

// Encode is the record encoding used by every ledger key.
func Encode(value interface{}) ([]byte, error) {
	return rlp.EncodeToBytes(value)
}

// Decode reverses Encode into value (passed by reference).
func Decode(raw []byte, value interface{}) error {
	return rlp.DecodeBytes(raw, value)
}
