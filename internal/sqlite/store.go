package sqlite

import (
	"database/sql"
	"fmt"

	_ "modernc.org/sqlite"

	"github.com/jokebox/jokebox/pkg/types"
)

// timeLayout is the storage format for timestamps: RFC3339 UTC with
// fixed-width nanoseconds. Variable-width fractions (RFC3339Nano trims
// trailing zeros) would make lexicographic TEXT ordering disagree with
// chronological order inside the same second.
const timeLayout = "2006-01-02T15:04:05.000000000Z07:00"

// Compile-time interface check: Store must implement types.Store.
var _ types.Store = (*Store)(nil)

// Store is the SQLite-backed joke store. The embedded engine serializes
// writers internally; no additional locking layer is added here.
type Store struct {
	db   *sql.DB
	path string
}

// Open opens (creating if necessary) the database file at path, ensures the
// schema exists, and seeds the sample set when the jokes table is empty.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening database %s: %w", path, err)
	}

	if _, err := db.Exec("PRAGMA foreign_keys = ON;"); err != nil {
		db.Close()
		return nil, fmt.Errorf("enabling foreign keys: %w", err)
	}

	if err := initSchema(db); err != nil {
		db.Close()
		return nil, err
	}

	if err := seedSampleJokes(db); err != nil {
		db.Close()
		return nil, err
	}

	return &Store{db: db, path: path}, nil
}

// Close releases the database handle.
func (s *Store) Close() error {
	return s.db.Close()
}

// Path returns the database file location.
func (s *Store) Path() string {
	return s.path
}

// initSchema creates all tables and indexes that do not yet exist.
func initSchema(db *sql.DB) error {
	for _, ddl := range schemaDDL {
		if _, err := db.Exec(ddl); err != nil {
			return fmt.Errorf("creating schema: %w", err)
		}
	}
	for _, ddl := range indexDDL {
		if _, err := db.Exec(ddl); err != nil {
			return fmt.Errorf("creating indexes: %w", err)
		}
	}
	return nil
}
