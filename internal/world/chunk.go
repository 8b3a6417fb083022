package world

// ChunkCoord addresses a chunk in chunk space. Used directly as a map key;
// struct equality makes string ids unnecessary.
type ChunkCoord struct {
	X, Y, Z int
}

// Chunk is a size³ cube of voxel values stored flat. The linear order is
// x + z*size + y*size², and must match the order the mesher assumes.
type Chunk struct {
	Coord ChunkCoord

	// Priority is the scheduling weight recomputed each update tick from
	// the distance to the actor. Smaller is remeshed sooner.
	Priority float32

	size   int
	types  []BlockType
	colors []RGB // nil unless the world stores per-voxel colors
	solid  int
}

func newChunk(coord ChunkCoord, size int, withColors bool) *Chunk {
	c := &Chunk{
		Coord: coord,
		size:  size,
		types: make([]BlockType, size*size*size),
	}
	if withColors {
		c.colors = make([]RGB, size*size*size)
	}
	return c
}

// Size returns the chunk side length.
func (c *Chunk) Size() int {
	return c.size
}

// Origin returns the world-space coordinate of the chunk's minimum corner.
func (c *Chunk) Origin() (x, y, z int) {
	return c.Coord.X * c.size, c.Coord.Y * c.size, c.Coord.Z * c.size
}

// Index converts in-bounds local coordinates to the flat array index.
func (c *Chunk) Index(x, y, z int) int {
	return x + z*c.size + y*c.size*c.size
}

// At returns the voxel at in-bounds local coordinates.
func (c *Chunk) At(x, y, z int) Voxel {
	i := c.Index(x, y, z)
	v := Voxel{Block: c.types[i]}
	if c.colors != nil {
		v.Color = c.colors[i]
	}
	return v
}

// SetAt writes the voxel at in-bounds local coordinates and keeps the
// solid-voxel count current.
func (c *Chunk) SetAt(x, y, z int, v Voxel) {
	i := c.Index(x, y, z)
	was := c.types[i] != BlockTypeAir
	now := v.Block != BlockTypeAir
	if was != now {
		if now {
			c.solid++
		} else {
			c.solid--
		}
	}
	c.types[i] = v.Block
	if c.colors != nil {
		c.colors[i] = v.Color
	}
}

// SolidCount returns the number of solid voxels in the chunk. An all-empty
// chunk can never contribute faces, so callers use this to skip work.
func (c *Chunk) SolidCount() int {
	return c.solid
}

// CopyTypes returns a copy of the flat block-type array.
func (c *Chunk) CopyTypes() []BlockType {
	out := make([]BlockType, len(c.types))
	copy(out, c.types)
	return out
}

// CopyColors returns a copy of the flat color array, or nil for worlds that
// do not store colors.
func (c *Chunk) CopyColors() []RGB {
	if c.colors == nil {
		return nil
	}
	out := make([]RGB, len(c.colors))
	copy(out, c.colors)
	return out
}
