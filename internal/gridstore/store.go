package gridstore

import (
	"database/sql"
	"fmt"

	_ "modernc.org/sqlite"

	"github.com/banshee-data/voxelgrid/internal/monitoring"
)

var logf = monitoring.Component("gridstore")

// Store is a SQLite-backed snapshot store.
type Store struct {
	*sql.DB
	path string
}

// Open opens (creating if needed) the snapshot database at path and applies
// any pending migrations.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open snapshot database: %w", err)
	}
	// One writer; sqlite serialises anyway and this keeps :memory: coherent.
	db.SetMaxOpenConns(1)

	s := &Store{DB: db, path: path}
	if err := s.MigrateUp(); err != nil {
		db.Close()
		return nil, err
	}
	logf("opened snapshot database %s", path)
	return s, nil
}

// Path returns the path the store was opened with.
func (s *Store) Path() string { return s.path }
