package state

import (
	"sync"

	"github.com/clawnch/ledger/store/database"
)

//
// ------------------------- LedgerState -------------------------
//

// LedgerState is the single-writer transaction boundary of the ledger. Every
// mutation runs inside Update, so all mutations to any account are serialized
// and each operation commits all of its writes or none of them.
type LedgerState struct {
	mu sync.RWMutex
	db database.Database
}

// NewLedgerState creates a new instance of the LedgerState
func NewLedgerState(db database.Database) *LedgerState {
	return &LedgerState{db: db}
}

// DB returns the underlying database
func (s *LedgerState) DB() database.Database {
	return s.db
}

// Update runs fn on a fresh StoreView while holding the write lock. The staged
// writes are committed as one batch when fn returns nil and discarded otherwise.
func (s *LedgerState) Update(fn func(view *StoreView) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	view := NewStoreView(s.db)
	if err := fn(view); err != nil {
		return err
	}
	return view.Save()
}

// View runs fn on a StoreView under the read lock. Writes staged by fn are dropped.
func (s *LedgerState) View(fn func(view *StoreView) error) error {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return fn(NewStoreView(s.db))
}
