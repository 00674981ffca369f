package store

import "errors"

// ErrKeyNotFound for missing key.
var ErrKeyNotFound = errors.New("KeyNotFound")

// Store is the interface for key/value storages that encode values.
type Store interface {
	Put(key []byte, value interface{}) error
	Delete(key []byte) error
	Get(key []byte, value interface{}) error
}
