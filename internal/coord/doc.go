// Package coord owns the addressing layer of the voxel grid.
//
// Responsibilities: converting a 3D cell coordinate to a flat buffer offset
// and back, and describing inclusive bounding boxes over a grid.
// Key types: Coord, Dims, Box.
//
// Dependency rule: coord is pure and depends on nothing else in the module.
// Every bounds check in the module routes through PosToIndex.
package coord
