package gen

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"voxelmesh/internal/world"
)

func TestHeightWithinBand(t *testing.T) {
	g := NewGenerator(42)
	for x := -100; x <= 100; x += 7 {
		for z := -100; z <= 100; z += 13 {
			h := g.HeightAt(x, z)
			assert.GreaterOrEqual(t, h, g.BaseHeight)
			assert.LessOrEqual(t, h, g.BaseHeight+g.Amplitude)
		}
	}
}

func TestPopulateIsDeterministic(t *testing.T) {
	w1, err := world.NewWorld(16, false)
	require.NoError(t, err)
	w2, err := world.NewWorld(16, false)
	require.NoError(t, err)

	NewGenerator(7).Populate(w1, -16, -16, 16, 16)
	NewGenerator(7).Populate(w2, -16, -16, 16, 16)

	require.Equal(t, w1.ChunkCount(), w2.ChunkCount())
	for x := -16; x < 16; x += 3 {
		for z := -16; z < 16; z += 5 {
			for y := 0; y < 40; y += 4 {
				assert.Equal(t, w1.Get(x, y, z), w2.Get(x, y, z), "voxel (%d,%d,%d)", x, y, z)
			}
		}
	}
}

func TestSeedChangesTerrain(t *testing.T) {
	a := NewGenerator(1)
	b := NewGenerator(2)
	differs := false
	for x := 0; x < 64 && !differs; x++ {
		if a.HeightAt(x, 0) != b.HeightAt(x, 0) {
			differs = true
		}
	}
	assert.True(t, differs, "different seeds should produce different heightmaps")
}

func TestColumnLayering(t *testing.T) {
	g := NewGenerator(11)
	g.CaveThreshold = 0 // keep columns solid

	w, err := world.NewWorld(16, false)
	require.NoError(t, err)
	g.Populate(w, 0, 0, 8, 8)

	for x := 0; x < 8; x++ {
		for z := 0; z < 8; z++ {
			h := g.HeightAt(x, z)
			assert.Equal(t, g.Palette.Surface, w.Get(x, h, z).Block, "surface of column (%d,%d)", x, z)
			assert.Equal(t, g.Palette.Soil, w.Get(x, h-1, z).Block)
			assert.Equal(t, g.Palette.Rock, w.Get(x, 0, z).Block)
			assert.False(t, w.IsSolid(x, h+1, z), "air above the surface")
		}
	}
}

func TestCaveCarvingRemovesVoxels(t *testing.T) {
	full, err := world.NewWorld(16, false)
	require.NoError(t, err)
	carved, err := world.NewWorld(16, false)
	require.NoError(t, err)

	g := NewGenerator(3)
	g.CaveThreshold = 0
	g.Populate(full, 0, 0, 48, 48)

	g2 := NewGenerator(3)
	g2.CaveThreshold = 0.55
	g2.Populate(carved, 0, 0, 48, 48)

	count := func(w *world.World) int {
		n := 0
		for _, ch := range w.Chunks() {
			n += ch.SolidCount()
		}
		return n
	}
	assert.Less(t, count(carved), count(full), "an aggressive threshold should carve something")
}

func TestNoiseRange(t *testing.T) {
	for i := 0; i < 500; i++ {
		x := float64(i) * 0.37
		v := octaveNoise2D(x, -x*1.7, 99, 4, 0.5, 2.0)
		assert.GreaterOrEqual(t, v, 0.0)
		assert.LessOrEqual(t, v, 1.0)
		v3 := octaveNoise3D(x, x*0.3, -x, 99, 3, 0.5, 2.0)
		assert.GreaterOrEqual(t, v3, 0.0)
		assert.LessOrEqual(t, v3, 1.0)
	}
}
