package world

import (
	"fmt"
	"math/bits"
)

// World owns the sparse chunk map. Chunks are created lazily on the first
// write inside their bounds and never created for reads; a read through a
// missing chunk yields Empty. World space is unbounded in all directions.
//
// World is not safe for concurrent mutation. Concurrent reads are fine, and
// mesh workers rely on the caller not writing while jobs that reference the
// touched chunks are in flight.
type World struct {
	size int
	bs   int // log2(size)
	mask int // size-1
	// colors selects the visual payload the world carries: block ids only,
	// or block ids plus a raw color per voxel.
	colors bool

	chunks map[ChunkCoord]*Chunk
}

// NewWorld creates an empty world with the given chunk side length, which
// must be a power of two. withColors enables per-voxel color storage.
func NewWorld(size int, withColors bool) (*World, error) {
	if size <= 0 || bits.OnesCount(uint(size)) != 1 {
		return nil, fmt.Errorf("world: chunk size %d is not a power of two", size)
	}
	return &World{
		size:   size,
		bs:     bits.TrailingZeros(uint(size)),
		mask:   size - 1,
		colors: withColors,
		chunks: make(map[ChunkCoord]*Chunk),
	}, nil
}

// Size returns the chunk side length.
func (w *World) Size() int {
	return w.size
}

// HasColors reports whether voxels carry a raw color payload.
func (w *World) HasColors() bool {
	return w.colors
}

// ChunkCoordAt returns the coordinate of the chunk containing the world
// position. Arithmetic right shift keeps this a floor division for negative
// coordinates, which plain integer division would get wrong.
func (w *World) ChunkCoordAt(x, y, z int) ChunkCoord {
	return ChunkCoord{X: x >> w.bs, Y: y >> w.bs, Z: z >> w.bs}
}

// Local returns chunk-local coordinates for a world position. The bitmask is
// a branch-free mod that stays correct for negative inputs.
func (w *World) Local(x, y, z int) (lx, ly, lz int) {
	return x & w.mask, y & w.mask, z & w.mask
}

// GetChunk returns the chunk at the given chunk coordinate, or nil. It never
// creates.
func (w *World) GetChunk(coord ChunkCoord) *Chunk {
	return w.chunks[coord]
}

func (w *World) getOrCreateChunk(coord ChunkCoord) *Chunk {
	if c, ok := w.chunks[coord]; ok {
		return c
	}
	c := newChunk(coord, w.size, w.colors)
	w.chunks[coord] = c
	return c
}

// Get returns the voxel at a world position; Empty if the owning chunk does
// not exist.
func (w *World) Get(x, y, z int) Voxel {
	c := w.chunks[w.ChunkCoordAt(x, y, z)]
	if c == nil {
		return Empty
	}
	return c.At(x&w.mask, y&w.mask, z&w.mask)
}

// IsSolid reports whether the voxel at a world position is solid.
func (w *World) IsSolid(x, y, z int) bool {
	return w.Get(x, y, z).Solid()
}

// Set writes the voxel at a world position, creating the owning chunk if
// needed, and returns that chunk.
func (w *World) Set(x, y, z int, v Voxel) *Chunk {
	c := w.getOrCreateChunk(w.ChunkCoordAt(x, y, z))
	c.SetAt(x&w.mask, y&w.mask, z&w.mask, v)
	return c
}

// Sample reads a chunk-local coordinate that may lie outside the chunk. The
// in-bounds case is the hot path: a bounds check and an array index. Anything
// else translates to world space and goes through the chunk map, which only
// happens at chunk boundaries during a mesh sweep.
func (w *World) Sample(c *Chunk, lx, ly, lz int) Voxel {
	if lx >= 0 && lx < w.size && ly >= 0 && ly < w.size && lz >= 0 && lz < w.size {
		return c.At(lx, ly, lz)
	}
	ox, oy, oz := c.Origin()
	return w.Get(ox+lx, oy+ly, oz+lz)
}

// InstallChunk places a pre-built chunk (e.g. restored from a snapshot) into
// the map, replacing any existing chunk at the coordinate.
func (w *World) InstallChunk(c *Chunk) {
	w.chunks[c.Coord] = c
}

// RestoreChunk rebuilds a chunk from persisted voxel data and installs it.
// types must hold size³ entries; colors must be nil for colorless worlds and
// size³ entries otherwise. The solid count is recomputed from the data.
func (w *World) RestoreChunk(coord ChunkCoord, types []BlockType, colors []RGB) (*Chunk, error) {
	n := w.size * w.size * w.size
	if len(types) != n {
		return nil, fmt.Errorf("restore chunk %v: %d type entries, want %d", coord, len(types), n)
	}
	if w.colors {
		if len(colors) != n {
			return nil, fmt.Errorf("restore chunk %v: %d color entries, want %d", coord, len(colors), n)
		}
	} else if colors != nil {
		return nil, fmt.Errorf("restore chunk %v: color data in a colorless world", coord)
	}
	c := &Chunk{Coord: coord, size: w.size, types: types, colors: colors}
	for _, t := range types {
		if t != BlockTypeAir {
			c.solid++
		}
	}
	w.chunks[coord] = c
	return c, nil
}

// Remove deletes the chunk at the coordinate, reporting whether it existed.
// Callers that hand meshes to a renderer are responsible for the matching
// removal notification.
func (w *World) Remove(coord ChunkCoord) bool {
	if _, ok := w.chunks[coord]; !ok {
		return false
	}
	delete(w.chunks, coord)
	return true
}

// ChunkCount returns the number of live chunks.
func (w *World) ChunkCount() int {
	return len(w.chunks)
}

// Chunks returns all live chunks in map order.
func (w *World) Chunks() []*Chunk {
	out := make([]*Chunk, 0, len(w.chunks))
	for _, c := range w.chunks {
		out = append(out, c)
	}
	return out
}
