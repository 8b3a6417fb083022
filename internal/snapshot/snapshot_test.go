package snapshot

import (
	"bytes"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"voxelmesh/internal/world"
)

func buildWorld(t *testing.T, withColors bool) *world.World {
	t.Helper()
	w, err := world.NewWorld(8, withColors)
	require.NoError(t, err)
	for i := 0; i < 20; i++ {
		v := world.Voxel{
			Block: world.BlockType(1 + i%3),
			Color: world.RGB{R: uint8(i * 10), G: uint8(255 - i*5), B: uint8(i)},
		}
		w.Set(i, i%8, -i, v)
	}
	return w
}

func TestRoundTrip(t *testing.T) {
	for _, withColors := range []bool{false, true} {
		src := buildWorld(t, withColors)

		snap := Export(src, "test-world")
		assert.Equal(t, Version, snap.Header.Version)
		assert.Equal(t, "test-world", snap.Header.WorldID)
		assert.Equal(t, 8, snap.Header.ChunkSize)
		assert.Equal(t, withColors, snap.Header.Colors)
		assert.Len(t, snap.Chunks, src.ChunkCount())

		var buf bytes.Buffer
		require.NoError(t, Write(&buf, snap))

		decoded, err := Read(&buf)
		require.NoError(t, err)
		restored, err := Restore(decoded)
		require.NoError(t, err)

		assert.Equal(t, src.ChunkCount(), restored.ChunkCount())
		for i := 0; i < 20; i++ {
			assert.Equal(t, src.Get(i, i%8, -i), restored.Get(i, i%8, -i),
				"colors=%v voxel %d", withColors, i)
		}
	}
}

func TestExportAssignsWorldID(t *testing.T) {
	w := buildWorld(t, false)
	a := Export(w, "")
	b := Export(w, "")
	assert.NotEmpty(t, a.Header.WorldID)
	assert.NotEqual(t, a.Header.WorldID, b.Header.WorldID)
}

func TestReadRejectsWrongVersion(t *testing.T) {
	snap := &Snapshot{Header: Header{Version: 99, ChunkSize: 8}}
	var buf bytes.Buffer
	require.NoError(t, Write(&buf, snap))

	_, err := Read(&buf)
	assert.ErrorContains(t, err, "version")
}

func TestRestoreRejectsBadColorData(t *testing.T) {
	snap := &Snapshot{
		Header: Header{Version: Version, ChunkSize: 4, Colors: true},
		Chunks: []ChunkRecord{{Types: make([]uint16, 64), Colors: make([]uint8, 5)}},
	}
	_, err := Restore(snap)
	assert.Error(t, err)
}

func TestFileRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "world.snap")
	src := buildWorld(t, true)

	require.NoError(t, WriteFile(path, Export(src, "disk")))
	snap, err := ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "disk", snap.Header.WorldID)

	restored, err := Restore(snap)
	require.NoError(t, err)
	assert.Equal(t, src.ChunkCount(), restored.ChunkCount())
}

func TestReadGarbageFails(t *testing.T) {
	_, err := Read(bytes.NewReader([]byte("not a snapshot")))
	assert.Error(t, err)
}
