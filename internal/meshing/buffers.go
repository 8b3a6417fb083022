package meshing

import "voxelmesh/internal/world"

// AttrMode selects which visual attribute stream the mesher fills.
type AttrMode int

const (
	// AttrColor emits a flat color triple per vertex.
	AttrColor AttrMode = iota
	// AttrTexture emits a texture coordinate pair per vertex, taken from the
	// face's atlas region.
	AttrTexture
)

// Region is a normalized rectangle in a texture atlas.
type Region struct {
	U0, V0, U1, V1 float32
}

// FaceAppearance is the resolved visual attribute for one emitted face.
// Color is used in AttrColor mode, Region in AttrTexture mode.
type FaceAppearance struct {
	Color  [3]float32
	Region Region
}

// Appearance resolves a solid voxel's payload into per-face attributes.
// Implementations must tolerate unregistered payloads by returning the zero
// FaceAppearance, which renders as black / the atlas origin.
type Appearance interface {
	FaceAppearance(v world.Voxel, f world.Face) FaceAppearance
}

// ColorAppearance reads the voxel's raw color payload. It is the Appearance
// for color-mode worlds.
type ColorAppearance struct{}

func (ColorAppearance) FaceAppearance(v world.Voxel, _ world.Face) FaceAppearance {
	return FaceAppearance{Color: [3]float32{
		float32(v.Color.R) / 255,
		float32(v.Color.G) / 255,
		float32(v.Color.B) / 255,
	}}
}

// Buffers is one chunk's mesh: same-length-indexed flat vertex streams plus a
// triangle index list. Positions are in voxel-grid units relative to the
// chunk origin. Exactly one of Colors/UVs is populated, matching the mesher's
// AttrMode. A Buffers value returned by the mesher is immutable; ownership
// passes to the renderer.
type Buffers struct {
	Positions []float32 // 3 per vertex
	Normals   []float32 // 3 per vertex, axis-aligned unit
	Colors    []float32 // 3 per vertex (AttrColor)
	UVs       []float32 // 2 per vertex (AttrTexture)
	AO        []float32 // 1 per vertex, in [0,1]
	Indices   []uint32  // 3 per triangle, 2 triangles per face
}

// VertexCount returns the number of vertices.
func (b *Buffers) VertexCount() int {
	return len(b.Positions) / 3
}

// FaceCount returns the number of emitted quads.
func (b *Buffers) FaceCount() int {
	return len(b.Indices) / 6
}
