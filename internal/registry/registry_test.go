package registry

import (
	"image"
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"voxelmesh/internal/world"
)

func TestRegisterRejectsConflicts(t *testing.T) {
	r := New()
	require.NoError(t, r.Register(&BlockDefinition{ID: 1, Name: "stone"}))

	assert.Error(t, r.Register(&BlockDefinition{ID: 1, Name: "other"}), "duplicate id")
	assert.Error(t, r.Register(&BlockDefinition{ID: 2, Name: "stone"}), "duplicate name")
	assert.Error(t, r.Register(&BlockDefinition{ID: 0, Name: "air"}), "reserved id")
}

func TestLookupAndByName(t *testing.T) {
	r := New()
	require.NoError(t, r.RegisterDefaults())

	def, ok := r.Lookup(Grass)
	require.True(t, ok)
	assert.Equal(t, "grass", def.Name)

	id, ok := r.ByName("stone")
	require.True(t, ok)
	assert.Equal(t, Stone, id)

	_, ok = r.Lookup(999)
	assert.False(t, ok)
}

func TestFaceAppearanceColors(t *testing.T) {
	r := New()
	require.NoError(t, r.Register(&BlockDefinition{
		ID: 1, Name: "brick", Color: world.RGB{R: 255, G: 0, B: 127},
	}))

	ap := r.FaceAppearance(world.Voxel{Block: 1}, world.FaceTop)
	assert.InDelta(t, 1.0, float64(ap.Color[0]), 1e-6)
	assert.InDelta(t, 0.0, float64(ap.Color[1]), 1e-6)
	assert.InDelta(t, 127.0/255, float64(ap.Color[2]), 1e-6)
}

func TestUnregisteredBlockDegradesToZero(t *testing.T) {
	r := New()
	require.NoError(t, r.RegisterDefaults())

	ap := r.FaceAppearance(world.Voxel{Block: 4242}, world.FaceNorth)
	assert.Zero(t, ap)
}

func TestFaceAppearancePicksPerFaceTexture(t *testing.T) {
	r := New()
	require.NoError(t, r.RegisterDefaults())
	_, err := r.BuildSolidColorAtlas(8)
	require.NoError(t, err)

	top := r.FaceAppearance(world.Voxel{Block: Grass}, world.FaceTop)
	side := r.FaceAppearance(world.Voxel{Block: Grass}, world.FaceEast)
	bottom := r.FaceAppearance(world.Voxel{Block: Grass}, world.FaceBottom)

	assert.NotEqual(t, top.Region, side.Region, "grass top and side use different tiles")
	assert.NotEqual(t, side.Region, bottom.Region)
}

func TestBuildAtlasLayout(t *testing.T) {
	tiles := map[string]image.Image{}
	for _, name := range []string{"a", "b", "c", "d", "e"} {
		px := image.NewRGBA(image.Rect(0, 0, 2, 2))
		px.Set(0, 0, color.NRGBA{R: 255, A: 255})
		tiles[name] = px
	}

	a, err := BuildAtlas(16, tiles)
	require.NoError(t, err)

	// 5 tiles pack into a 3x2 grid.
	assert.Equal(t, 48, a.Image().Bounds().Dx())
	assert.Equal(t, 32, a.Image().Bounds().Dy())
	assert.Equal(t, 16, a.TileSize())

	type originKey struct{ u, v float32 }
	seen := map[originKey]bool{}
	for _, name := range []string{"a", "b", "c", "d", "e"} {
		reg, ok := a.Region(name)
		require.True(t, ok, "tile %s", name)
		assert.GreaterOrEqual(t, reg.U0, float32(0))
		assert.LessOrEqual(t, reg.U1, float32(1))
		assert.Less(t, reg.U0, reg.U1)
		assert.Less(t, reg.V0, reg.V1)
		key := originKey{reg.U0, reg.V0}
		assert.False(t, seen[key], "tiles must not overlap")
		seen[key] = true
	}

	_, ok := a.Region("missing")
	assert.False(t, ok)
}

func TestBuildAtlasIsDeterministic(t *testing.T) {
	r1 := New()
	require.NoError(t, r1.RegisterDefaults())
	a1, err := r1.BuildSolidColorAtlas(8)
	require.NoError(t, err)

	r2 := New()
	require.NoError(t, r2.RegisterDefaults())
	a2, err := r2.BuildSolidColorAtlas(8)
	require.NoError(t, err)

	for _, name := range []string{"grass_top", "grass_side", "dirt", "stone", "sand"} {
		reg1, ok := a1.Region(name)
		require.True(t, ok, name)
		reg2, ok := a2.Region(name)
		require.True(t, ok, name)
		assert.Equal(t, reg1, reg2, name)
	}
}

func TestBuildAtlasRejectsBadInput(t *testing.T) {
	_, err := BuildAtlas(0, map[string]image.Image{"a": image.NewRGBA(image.Rect(0, 0, 1, 1))})
	assert.Error(t, err)
	_, err = BuildAtlas(16, nil)
	assert.Error(t, err)
}
