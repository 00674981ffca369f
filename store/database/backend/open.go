package backend

import (
	"path"

	"github.com/pkg/errors"

	"github.com/clawnch/ledger/store/database"
)

const (
	BackendLevelDB = "leveldb"
	BackendBadger  = "badger"
	BackendMemory  = "memory"
)

// Options selects and tunes a database backend.
type Options struct {
	Backend   string
	DataDir   string
	CacheSize int // entries in the read cache, 0 disables it
	LDBCache  int // leveldb block cache in MiB
	LDBFiles  int // leveldb open file handles
}

// OpenDatabase opens the backend named in opts under opts.DataDir.
func OpenDatabase(opts Options) (database.Database, error) {
	var db database.Database
	switch opts.Backend {
	case BackendLevelDB, "":
		ldb, err := NewLDBDatabase(path.Join(opts.DataDir, "ledger"), opts.LDBCache, opts.LDBFiles)
		if err != nil {
			return nil, errors.Wrap(err, "failed to open leveldb")
		}
		db = ldb
	case BackendBadger:
		bdb, err := NewBadgerDatabase(path.Join(opts.DataDir, "ledger_badger"))
		if err != nil {
			return nil, err
		}
		db = bdb
	case BackendMemory:
		db = NewMemDatabase()
	default:
		return nil, errors.Errorf("unknown storage backend: %v", opts.Backend)
	}

	logger.Infof("Opened %v database, data dir: %v", opts.Backend, opts.DataDir)

	if opts.CacheSize <= 0 {
		return db, nil
	}
	cached, err := NewCachedDatabase(db, opts.CacheSize)
	if err != nil {
		db.Close()
		return nil, err
	}
	return cached, nil
}
