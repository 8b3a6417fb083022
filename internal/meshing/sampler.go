package meshing

import "voxelmesh/internal/world"

// ChunkSampler answers voxel queries in the local coordinate frame of one
// chunk, including out-of-bounds probes that land in neighboring chunks. The
// six face-adjacent neighbors are resolved once at construction so the hot
// path of the sweep never touches the world's chunk map; probes that leave
// the chunk on more than one axis fall back to a world lookup.
type ChunkSampler struct {
	w    *world.World
	c    *world.Chunk
	size int
	// +X -X +Y -Y +Z -Z
	neighbors [6]*world.Chunk
}

// NewChunkSampler binds a sampler to one chunk of w.
func NewChunkSampler(w *world.World, c *world.Chunk) *ChunkSampler {
	s := &ChunkSampler{w: w, c: c, size: c.Size()}
	cc := c.Coord
	s.neighbors[0] = w.GetChunk(world.ChunkCoord{X: cc.X + 1, Y: cc.Y, Z: cc.Z})
	s.neighbors[1] = w.GetChunk(world.ChunkCoord{X: cc.X - 1, Y: cc.Y, Z: cc.Z})
	s.neighbors[2] = w.GetChunk(world.ChunkCoord{X: cc.X, Y: cc.Y + 1, Z: cc.Z})
	s.neighbors[3] = w.GetChunk(world.ChunkCoord{X: cc.X, Y: cc.Y - 1, Z: cc.Z})
	s.neighbors[4] = w.GetChunk(world.ChunkCoord{X: cc.X, Y: cc.Y, Z: cc.Z + 1})
	s.neighbors[5] = w.GetChunk(world.ChunkCoord{X: cc.X, Y: cc.Y, Z: cc.Z - 1})
	return s
}

// Chunk returns the bound chunk.
func (s *ChunkSampler) Chunk() *world.Chunk { return s.c }

// At returns the voxel at local coordinates, resolving out-of-bounds probes
// through neighboring chunks. Missing chunks read as empty.
func (s *ChunkSampler) At(x, y, z int) world.Voxel {
	n := s.size
	xin := x >= 0 && x < n
	yin := y >= 0 && y < n
	zin := z >= 0 && z < n
	if xin && yin && zin {
		return s.c.At(x, y, z)
	}
	if yin && zin {
		if x < 0 {
			return neighborAt(s.neighbors[1], x+n, y, z)
		}
		return neighborAt(s.neighbors[0], x-n, y, z)
	}
	if xin && zin {
		if y < 0 {
			return neighborAt(s.neighbors[3], x, y+n, z)
		}
		return neighborAt(s.neighbors[2], x, y-n, z)
	}
	if xin && yin {
		if z < 0 {
			return neighborAt(s.neighbors[5], x, y, z+n)
		}
		return neighborAt(s.neighbors[4], x, y, z-n)
	}
	// Out on two or more axes, as diagonal occlusion probes can be.
	return s.w.Sample(s.c, x, y, z)
}

// Solid reports whether the voxel at local coordinates is solid.
func (s *ChunkSampler) Solid(x, y, z int) bool {
	return s.At(x, y, z).Solid()
}

func neighborAt(c *world.Chunk, x, y, z int) world.Voxel {
	if c == nil {
		return world.Empty
	}
	return c.At(x, y, z)
}
