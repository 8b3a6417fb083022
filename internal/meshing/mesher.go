package meshing

// Mesher converts one chunk's voxels into a culled quad mesh with baked
// per-vertex ambient occlusion. A Mesher owns reusable scratch buffers and is
// therefore not safe for concurrent use; the worker pool gives each worker
// its own instance. Mesh output is copied out of the scratch space, so
// meshing the same chunk twice yields bit-identical, independently owned
// buffers.
type Mesher struct {
	size    int
	mode    AttrMode
	app     Appearance
	scratch Buffers
}

// NewMesher builds a mesher for chunks of the given edge size.
func NewMesher(size int, mode AttrMode, app Appearance) *Mesher {
	m := &Mesher{size: size, mode: mode, app: app}
	// Worst case over a checkerboard fill: every interior lattice plane cell
	// separates a solid from an empty voxel.
	faces := 3 * size * size * (size + 1)
	m.scratch.Positions = make([]float32, 0, faces*12)
	m.scratch.Normals = make([]float32, 0, faces*12)
	if mode == AttrTexture {
		m.scratch.UVs = make([]float32, 0, faces*8)
	} else {
		m.scratch.Colors = make([]float32, 0, faces*12)
	}
	m.scratch.AO = make([]float32, 0, faces*4)
	m.scratch.Indices = make([]uint32, 0, faces*6)
	return m
}

// Mesh sweeps the sampler's chunk and returns its boundary faces. Each face
// sits between a solid voxel owned by this chunk and an empty voxel; faces
// whose solid voxel lies in a neighboring chunk are that chunk's to emit.
func (m *Mesher) Mesh(s *ChunkSampler) *Buffers {
	m.reset()
	n := m.size
	if s.Chunk().SolidCount() > 0 {
		// The -1 layer is swept so that faces on the chunk's minimum
		// boundary, exposed by an empty neighbor voxel, still get emitted.
		for y := -1; y < n; y++ {
			for z := -1; z < n; z++ {
				for x := -1; x < n; x++ {
					here := s.Solid(x, y, z)
					for axis := 0; axis < 3; axis++ {
						d := axisDir[axis]
						nx, ny, nz := x+d[0], y+d[1], z+d[2]
						if here == s.Solid(nx, ny, nz) {
							continue
						}
						if here {
							if x < 0 || y < 0 || z < 0 {
								continue
							}
							m.emit(s, axis, 0, x, y, z)
						} else {
							if nx < 0 || ny < 0 || nz < 0 || nx >= n || ny >= n || nz >= n {
								continue
							}
							m.emit(s, axis, 1, x, y, z)
						}
					}
				}
			}
		}
	}
	return m.snapshot()
}

// emit appends one quad for the boundary between the sweep cell (x,y,z) and
// its positive neighbor along axis. side 0 means the sweep cell is the solid
// one (outward normal +axis), side 1 means the neighbor is (normal -axis).
func (m *Mesher) emit(s *ChunkSampler, axis, side, x, y, z int) {
	d := axisDir[axis]
	face := faceForAxis[axis][side]
	u := spanU[face]
	v := spanV[face]

	// The quad lies on the lattice plane between the two cells regardless of
	// which side is solid.
	bx, by, bz := x+d[0], y+d[1], z+d[2]

	// Occlusion samples live in the 3x3 plane of cells centered on the empty
	// cell of the pair.
	cx, cy, cz := x, y, z
	solid := s.At(x, y, z)
	if side == 0 {
		cx, cy, cz = x+d[0], y+d[1], z+d[2]
	} else {
		solid = s.At(x+d[0], y+d[1], z+d[2])
	}

	var ao [4]float32
	for i, c := range quadCorners {
		su := 2*c[0] - 1
		sv := 2*c[1] - 1
		s1 := s.Solid(cx+su*u[0], cy+su*u[1], cz+su*u[2])
		s2 := s.Solid(cx+sv*v[0], cy+sv*v[1], cz+sv*v[2])
		diag := s.Solid(cx+su*u[0]+sv*v[0], cy+su*u[1]+sv*v[1], cz+su*u[2]+sv*v[2])
		ao[i] = occlusion(s1, s2, diag)
	}

	ap := m.app.FaceAppearance(solid, face)
	nxf, nyf, nzf := face.Normal()

	b := &m.scratch
	vi := uint32(len(b.Positions) / 3)
	for i, c := range quadCorners {
		b.Positions = append(b.Positions,
			float32(bx+c[0]*u[0]+c[1]*v[0]),
			float32(by+c[0]*u[1]+c[1]*v[1]),
			float32(bz+c[0]*u[2]+c[1]*v[2]))
		b.Normals = append(b.Normals, float32(nxf), float32(nyf), float32(nzf))
		b.AO = append(b.AO, ao[i])
		if m.mode == AttrTexture {
			uv := faceUVs[face][i]
			b.UVs = append(b.UVs,
				ap.Region.U0+uv[0]*(ap.Region.U1-ap.Region.U0),
				ap.Region.V0+uv[1]*(ap.Region.V1-ap.Region.V0))
		} else {
			b.Colors = append(b.Colors, ap.Color[0], ap.Color[1], ap.Color[2])
		}
	}

	// Split the quad along whichever diagonal keeps occlusion gradients from
	// bleeding across a bright corner pair.
	if ao[0]+ao[2] > ao[1]+ao[3] {
		b.Indices = append(b.Indices, vi, vi+1, vi+2, vi, vi+2, vi+3)
	} else {
		b.Indices = append(b.Indices, vi+1, vi+2, vi+3, vi+1, vi+3, vi)
	}
}

// occlusion maps the three neighbor samples of a quad corner to a brightness
// factor. Two solid side samples fully darken the corner even when the
// diagonal is hidden behind them.
func occlusion(side1, side2, diag bool) float32 {
	if side1 && side2 {
		return 0
	}
	n := 0
	if side1 {
		n++
	}
	if side2 {
		n++
	}
	if diag {
		n++
	}
	return float32(3-n) / 3
}

func (m *Mesher) reset() {
	m.scratch.Positions = m.scratch.Positions[:0]
	m.scratch.Normals = m.scratch.Normals[:0]
	m.scratch.Colors = m.scratch.Colors[:0]
	m.scratch.UVs = m.scratch.UVs[:0]
	m.scratch.AO = m.scratch.AO[:0]
	m.scratch.Indices = m.scratch.Indices[:0]
}

// snapshot copies the scratch streams into right-sized slices the caller may
// keep.
func (m *Mesher) snapshot() *Buffers {
	out := &Buffers{
		Positions: append([]float32(nil), m.scratch.Positions...),
		Normals:   append([]float32(nil), m.scratch.Normals...),
		AO:        append([]float32(nil), m.scratch.AO...),
		Indices:   append([]uint32(nil), m.scratch.Indices...),
	}
	if m.mode == AttrTexture {
		out.UVs = append([]float32(nil), m.scratch.UVs...)
	} else {
		out.Colors = append([]float32(nil), m.scratch.Colors...)
	}
	return out
}
