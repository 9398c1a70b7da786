package store

import (
	"database/sql"

	"github.com/pkg/errors"
	_ "modernc.org/sqlite"
)

// Medium is a persistent key-value blob store.
type Medium interface {
	// Get returns the value under key, and whether it was present.
	Get(key string) ([]byte, bool, error)
	// Set writes the value under key, replacing any previous value.
	Set(key string, value []byte) error
	Close() error
}

// SQLiteMedium implements a Medium over a single-table SQLite database.
type SQLiteMedium struct {
	db *sql.DB
}

// OpenSQLite opens (and initializes if needed) a SQLite-backed medium.
func OpenSQLite(path string) (*SQLiteMedium, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, errors.Wrap(err, "opening database")
	}

	_, err = db.Exec(`
		CREATE TABLE IF NOT EXISTS kv (
			key TEXT PRIMARY KEY,
			value TEXT NOT NULL
		)
	`)
	if err != nil {
		return nil, errors.Wrap(err, "creating kv table")
	}

	return &SQLiteMedium{db: db}, nil
}

// Get implements Medium.
func (m *SQLiteMedium) Get(key string) ([]byte, bool, error) {
	var value string
	err := m.db.QueryRow(`SELECT value FROM kv WHERE key = ?`, key).Scan(&value)
	if err == sql.ErrNoRows {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, errors.Wrap(err, "querying kv")
	}
	return []byte(value), true, nil
}

// Set implements Medium.
func (m *SQLiteMedium) Set(key string, value []byte) error {
	// REPLACE INTO handles both insert and update cases.
	_, err := m.db.Exec(`REPLACE INTO kv (key, value) VALUES (?, ?)`, key, string(value))
	return errors.Wrap(err, "writing kv")
}

// Close implements Medium.
func (m *SQLiteMedium) Close() error {
	return m.db.Close()
}

// MemoryMedium implements a Medium in process memory. Used in tests and as a
// stand-in when no durable medium is wanted.
type MemoryMedium struct {
	values map[string][]byte
}

// NewMemoryMedium instantiates an empty in-memory medium.
func NewMemoryMedium() *MemoryMedium {
	return &MemoryMedium{values: map[string][]byte{}}
}

// Get implements Medium.
func (m *MemoryMedium) Get(key string) ([]byte, bool, error) {
	value, ok := m.values[key]
	return value, ok, nil
}

// Set implements Medium.
func (m *MemoryMedium) Set(key string, value []byte) error {
	copied := make([]byte, len(value))
	copy(copied, value)
	m.values[key] = copied
	return nil
}

// Close implements Medium.
func (m *MemoryMedium) Close() error { return nil }
