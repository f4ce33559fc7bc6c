package gridstore

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
)

// ErrNotFound is returned when no snapshot matches a lookup.
var ErrNotFound = errors.New("snapshot not found")

// Snapshot matches the grid_snapshots table.
type Snapshot struct {
	SnapshotID     string // uuid; generated on insert when empty
	GridName       string
	TakenUnixNanos int64
	SizeX          int
	SizeY          int
	SizeZ          int
	GridBlob       []byte // grid.Serialize output; empty in List results
	SnapshotReason string // "manual", "benchmark", ...
}

// InsertSnapshot stores s and returns its snapshot ID.
func (s *Store) InsertSnapshot(snap *Snapshot) (string, error) {
	if snap == nil {
		return "", fmt.Errorf("nil snapshot")
	}
	if len(snap.GridBlob) == 0 {
		return "", fmt.Errorf("snapshot %q has an empty grid blob", snap.GridName)
	}
	if snap.SnapshotID == "" {
		snap.SnapshotID = uuid.New().String()
	}
	_, err := s.Exec(`
		INSERT INTO grid_snapshots (
			snapshot_id, grid_name, taken_unix_nanos, size_x, size_y, size_z, grid_blob, snapshot_reason
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		snap.SnapshotID, snap.GridName, snap.TakenUnixNanos,
		snap.SizeX, snap.SizeY, snap.SizeZ, snap.GridBlob, snap.SnapshotReason,
	)
	if err != nil {
		return "", fmt.Errorf("failed to insert snapshot: %w", err)
	}
	return snap.SnapshotID, nil
}

// GetSnapshot returns the snapshot with the given ID.
func (s *Store) GetSnapshot(id string) (*Snapshot, error) {
	row := s.QueryRow(`
		SELECT snapshot_id, grid_name, taken_unix_nanos, size_x, size_y, size_z, grid_blob, snapshot_reason
		FROM grid_snapshots WHERE snapshot_id = ?`, id)
	return scanSnapshot(row, fmt.Sprintf("id %s", id))
}

// LatestSnapshot returns the most recent snapshot for gridName.
func (s *Store) LatestSnapshot(gridName string) (*Snapshot, error) {
	row := s.QueryRow(`
		SELECT snapshot_id, grid_name, taken_unix_nanos, size_x, size_y, size_z, grid_blob, snapshot_reason
		FROM grid_snapshots WHERE grid_name = ?
		ORDER BY taken_unix_nanos DESC LIMIT 1`, gridName)
	return scanSnapshot(row, fmt.Sprintf("grid %q", gridName))
}

// ListSnapshots returns snapshot metadata for gridName, newest first. Blobs
// are not loaded.
func (s *Store) ListSnapshots(gridName string) ([]Snapshot, error) {
	rows, err := s.Query(`
		SELECT snapshot_id, grid_name, taken_unix_nanos, size_x, size_y, size_z, snapshot_reason
		FROM grid_snapshots WHERE grid_name = ?
		ORDER BY taken_unix_nanos DESC`, gridName)
	if err != nil {
		return nil, fmt.Errorf("failed to list snapshots: %w", err)
	}
	defer rows.Close()

	var out []Snapshot
	for rows.Next() {
		var snap Snapshot
		if err := rows.Scan(&snap.SnapshotID, &snap.GridName, &snap.TakenUnixNanos,
			&snap.SizeX, &snap.SizeY, &snap.SizeZ, &snap.SnapshotReason); err != nil {
			return nil, fmt.Errorf("failed to scan snapshot: %w", err)
		}
		out = append(out, snap)
	}
	return out, rows.Err()
}

// DeleteSnapshot removes the snapshot with the given ID.
func (s *Store) DeleteSnapshot(id string) error {
	res, err := s.Exec(`DELETE FROM grid_snapshots WHERE snapshot_id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete snapshot: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return fmt.Errorf("id %s: %w", id, ErrNotFound)
	}
	return nil
}

func scanSnapshot(row *sql.Row, what string) (*Snapshot, error) {
	var snap Snapshot
	err := row.Scan(&snap.SnapshotID, &snap.GridName, &snap.TakenUnixNanos,
		&snap.SizeX, &snap.SizeY, &snap.SizeZ, &snap.GridBlob, &snap.SnapshotReason)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%s: %w", what, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read snapshot %s: %w", what, err)
	}
	return &snap, nil
}
