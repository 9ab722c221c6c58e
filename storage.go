package funcbox

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	_ "github.com/glebarez/sqlite"
)

// Store is the durable key/value store backing one function. Values are
// stored as the JSON text the sandbox produced for them. A Store is safe
// for concurrent use; writes are serialized on a single connection.
type Store struct {
	mu   sync.Mutex
	db   *sql.DB
	name string
}

// OpenStore opens (creating if needed) the store file for the named
// function under dataDir. Opening an existing file keeps its contents.
func OpenStore(dataDir, name string) (*Store, error) {
	if err := os.MkdirAll(dataDir, 0o755); err != nil {
		return nil, fmt.Errorf("%w: creating data dir: %v", ErrStorage, err)
	}
	path := filepath.Join(dataDir, name+".db")
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("%w: opening %s: %v", ErrStorage, path, err)
	}
	db.SetMaxOpenConns(1)
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("%w: setting journal mode: %v", ErrStorage, err)
	}
	if _, err := db.Exec("create table if not exists kv (key unique, value)"); err != nil {
		db.Close()
		return nil, fmt.Errorf("%w: creating kv table: %v", ErrStorage, err)
	}
	return &Store{db: db, name: name}, nil
}

// Get returns the stored text for key, or nil if the key is absent.
func (s *Store) Get(key string) (*string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var value string
	err := s.db.QueryRow("select value from kv where key = ?", key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("%w: get %q: %v", ErrStorage, key, err)
	}
	return &value, nil
}

// Set stores text under key, replacing any previous value.
func (s *Store) Set(key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, err := s.db.Exec("replace into kv (key, value) values (?, ?)", key, value); err != nil {
		return fmt.Errorf("%w: set %q: %v", ErrStorage, key, err)
	}
	return nil
}

// Close releases the underlying database handle.
func (s *Store) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.db.Close()
}
