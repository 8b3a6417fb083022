package gen

import (
	"voxelmesh/internal/registry"
	"voxelmesh/internal/world"
)

// Palette names the block layers a generated column is built from, top down.
type Palette struct {
	Surface world.BlockType
	Soil    world.BlockType
	Rock    world.BlockType

	// Colors used when populating a color-mode world.
	SurfaceColor world.RGB
	SoilColor    world.RGB
	RockColor    world.RGB
}

// DefaultPalette matches the built-in registry blocks.
func DefaultPalette() Palette {
	return Palette{
		Surface:      registry.Grass,
		Soil:         registry.Dirt,
		Rock:         registry.Stone,
		SurfaceColor: world.RGB{R: 96, G: 160, B: 72},
		SoilColor:    world.RGB{R: 134, G: 96, B: 67},
		RockColor:    world.RGB{R: 128, G: 128, B: 128},
	}
}

// Generator produces deterministic heightmap terrain with optional 3D-noise
// cave carving. Two generators with equal fields fill identical voxels.
type Generator struct {
	Seed        int64
	BaseHeight  int
	Amplitude   int
	Scale       float64
	Octaves     int
	Persistence float64
	Lacunarity  float64

	// CaveThreshold carves a voxel when 3D noise exceeds it; zero disables
	// carving.
	CaveThreshold float64
	CaveScale     float64

	SoilDepth int
	Palette   Palette
}

// NewGenerator returns a generator with sensible rolling-hills defaults.
func NewGenerator(seed int64) *Generator {
	return &Generator{
		Seed:          seed,
		BaseHeight:    12,
		Amplitude:     20,
		Scale:         1.0 / 48.0,
		Octaves:       4,
		Persistence:   0.5,
		Lacunarity:    2.0,
		CaveThreshold: 0.72,
		CaveScale:     1.0 / 24.0,
		SoilDepth:     3,
		Palette:       DefaultPalette(),
	}
}

// HeightAt returns the terrain surface height of a column, the y of its
// topmost solid voxel.
func (g *Generator) HeightAt(x, z int) int {
	n := octaveNoise2D(float64(x)*g.Scale, float64(z)*g.Scale, g.Seed, g.Octaves, g.Persistence, g.Lacunarity)
	return g.BaseHeight + int(n*float64(g.Amplitude))
}

// Populate fills every column with x in [x0,x1) and z in [z0,z1). Voxels are
// written straight into w; the caller decides what to mark dirty afterwards.
func (g *Generator) Populate(w *world.World, x0, z0, x1, z1 int) {
	for z := z0; z < z1; z++ {
		for x := x0; x < x1; x++ {
			h := g.HeightAt(x, z)
			for y := 0; y <= h; y++ {
				if g.carved(x, y, z) {
					continue
				}
				w.Set(x, y, z, g.voxelAt(y, h))
			}
		}
	}
}

func (g *Generator) carved(x, y, z int) bool {
	if g.CaveThreshold <= 0 {
		return false
	}
	// Keep the topmost band intact so caves do not open the surface skin.
	if y <= 1 {
		return false
	}
	n := octaveNoise3D(float64(x)*g.CaveScale, float64(y)*g.CaveScale, float64(z)*g.CaveScale,
		g.Seed+7919, 3, g.Persistence, g.Lacunarity)
	return n > g.CaveThreshold
}

func (g *Generator) voxelAt(y, surface int) world.Voxel {
	p := g.Palette
	switch {
	case y == surface:
		return world.Voxel{Block: p.Surface, Color: p.SurfaceColor}
	case y >= surface-g.SoilDepth:
		return world.Voxel{Block: p.Soil, Color: p.SoilColor}
	default:
		return world.Voxel{Block: p.Rock, Color: p.RockColor}
	}
}
