package gridstore

import (
	"fmt"
	"time"

	"github.com/banshee-data/voxelgrid/internal/grid"
)

// SnapshotInserter is the write side of Store, split out so callers can
// persist into a fake in tests.
type SnapshotInserter interface {
	InsertSnapshot(s *Snapshot) (string, error)
}

// SnapshotGetter is the read side of Store.
type SnapshotGetter interface {
	GetSnapshot(id string) (*Snapshot, error)
}

// Persist serializes g and writes it as a snapshot named name, stamped now.
func Persist[T any](store SnapshotInserter, name string, g *grid.Grid[T], reason string) (string, error) {
	return PersistAt(store, name, g, reason, time.Now())
}

// PersistAt is Persist with an explicit snapshot time.
func PersistAt[T any](store SnapshotInserter, name string, g *grid.Grid[T], reason string, at time.Time) (string, error) {
	if store == nil || g == nil {
		return "", fmt.Errorf("persist %q: nil store or grid", name)
	}
	blob, err := g.Serialize()
	if err != nil {
		return "", fmt.Errorf("persist %q: %w", name, err)
	}
	dims := g.Size()
	snap := &Snapshot{
		GridName:       name,
		TakenUnixNanos: at.UnixNano(),
		SizeX:          dims.X,
		SizeY:          dims.Y,
		SizeZ:          dims.Z,
		GridBlob:       blob,
		SnapshotReason: reason,
	}
	id, err := store.InsertSnapshot(snap)
	if err != nil {
		return "", err
	}
	logf("persisted snapshot: grid=%s, id=%s, reason=%s, dims=%v, grid_blob_size=%d bytes",
		name, id, reason, dims, len(blob))
	return id, nil
}

// Restore loads snapshot id and rebuilds the grid it holds. The stored
// dimensions must agree with the blob.
func Restore[T any](store SnapshotGetter, id string) (*grid.Grid[T], error) {
	snap, err := store.GetSnapshot(id)
	if err != nil {
		return nil, err
	}
	g, err := grid.Deserialize[T](snap.GridBlob)
	if err != nil {
		return nil, fmt.Errorf("restore %s: %w", id, err)
	}
	dims := g.Size()
	if dims.X != snap.SizeX || dims.Y != snap.SizeY || dims.Z != snap.SizeZ {
		return nil, fmt.Errorf("restore %s: blob is %v but row says %dx%dx%d",
			id, dims, snap.SizeX, snap.SizeY, snap.SizeZ)
	}
	return g, nil
}
