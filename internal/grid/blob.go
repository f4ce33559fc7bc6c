package grid

import (
	"bytes"
	"compress/gzip"
	"encoding/gob"
	"fmt"

	"github.com/banshee-data/voxelgrid/internal/coord"
)

// blobHeader precedes the cells in a serialized grid.
type blobHeader struct {
	X, Y, Z int
}

// Serialize compresses the grid dimensions and cells using gob encoding and
// gzip compression. T must be encodable by encoding/gob.
func (g *Grid[T]) Serialize() ([]byte, error) {
	var buf bytes.Buffer
	gz := gzip.NewWriter(&buf)
	enc := gob.NewEncoder(gz)
	if err := enc.Encode(blobHeader{X: g.dims.X, Y: g.dims.Y, Z: g.dims.Z}); err != nil {
		gz.Close()
		return nil, fmt.Errorf("failed to encode grid header: %w", err)
	}
	if err := enc.Encode(g.cubes); err != nil {
		gz.Close()
		return nil, fmt.Errorf("failed to encode grid cells: %w", err)
	}
	if err := gz.Close(); err != nil {
		return nil, err
	}
	diagf("serialized %v grid: %d bytes", g.dims, buf.Len())
	return buf.Bytes(), nil
}

// Deserialize rebuilds a grid from a blob produced by Serialize.
func Deserialize[T any](blob []byte) (*Grid[T], error) {
	if len(blob) == 0 {
		return nil, fmt.Errorf("empty grid blob")
	}
	gz, err := gzip.NewReader(bytes.NewReader(blob))
	if err != nil {
		return nil, fmt.Errorf("failed to create gzip reader: %w", err)
	}
	defer gz.Close()

	dec := gob.NewDecoder(gz)
	var hdr blobHeader
	if err := dec.Decode(&hdr); err != nil {
		return nil, fmt.Errorf("failed to decode grid header: %w", err)
	}
	dims := coord.Dims{X: hdr.X, Y: hdr.Y, Z: hdr.Z}
	if err := dims.Validate(); err != nil {
		opsf("rejected snapshot blob: %v", err)
		return nil, fmt.Errorf("grid blob header: %w", err)
	}

	var cells []T
	if err := dec.Decode(&cells); err != nil {
		return nil, fmt.Errorf("failed to decode grid cells: %w", err)
	}
	if len(cells) != dims.Len() {
		opsf("snapshot blob for %v holds %d cells, want %d", dims, len(cells), dims.Len())
		return nil, fmt.Errorf("grid blob holds %d cells, want %d for %v", len(cells), dims.Len(), dims)
	}
	return &Grid[T]{dims: dims, cubes: cells}, nil
}
