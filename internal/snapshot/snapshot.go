// Package snapshot persists a world's chunks as a zstd-compressed gob
// stream. The format carries a versioned header so old files keep loading
// after the chunk record evolves.
package snapshot

import (
	"encoding/gob"
	"fmt"
	"io"
	"os"

	"github.com/google/uuid"
	"github.com/klauspost/compress/zstd"

	"voxelmesh/internal/world"
)

// Version is the current snapshot format version.
const Version = 1

// Header identifies a snapshot and the world shape it was taken from.
type Header struct {
	Version   int
	WorldID   string
	ChunkSize int
	Colors    bool
}

// ChunkRecord is one chunk's voxel data in the flat storage order. Colors is
// r,g,b triples, empty for colorless worlds.
type ChunkRecord struct {
	X, Y, Z int
	Types   []uint16
	Colors  []uint8
}

// Snapshot is a fully decoded snapshot file.
type Snapshot struct {
	Header Header
	Chunks []ChunkRecord
}

// Export captures every chunk of w. An empty worldID gets a fresh random id,
// so each exported world is independently identifiable.
func Export(w *world.World, worldID string) *Snapshot {
	if worldID == "" {
		worldID = uuid.NewString()
	}
	s := &Snapshot{Header: Header{
		Version:   Version,
		WorldID:   worldID,
		ChunkSize: w.Size(),
		Colors:    w.HasColors(),
	}}
	for _, ch := range w.Chunks() {
		rec := ChunkRecord{X: ch.Coord.X, Y: ch.Coord.Y, Z: ch.Coord.Z}
		types := ch.CopyTypes()
		rec.Types = make([]uint16, len(types))
		for i, t := range types {
			rec.Types[i] = uint16(t)
		}
		if w.HasColors() {
			colors := ch.CopyColors()
			rec.Colors = make([]uint8, 0, len(colors)*3)
			for _, c := range colors {
				rec.Colors = append(rec.Colors, c.R, c.G, c.B)
			}
		}
		s.Chunks = append(s.Chunks, rec)
	}
	return s
}

// Write encodes s onto dst.
func Write(dst io.Writer, s *Snapshot) error {
	zw, err := zstd.NewWriter(dst)
	if err != nil {
		return fmt.Errorf("snapshot write: %w", err)
	}
	if err := gob.NewEncoder(zw).Encode(s); err != nil {
		zw.Close()
		return fmt.Errorf("snapshot encode: %w", err)
	}
	if err := zw.Close(); err != nil {
		return fmt.Errorf("snapshot flush: %w", err)
	}
	return nil
}

// Read decodes a snapshot from src and checks its version.
func Read(src io.Reader) (*Snapshot, error) {
	zr, err := zstd.NewReader(src)
	if err != nil {
		return nil, fmt.Errorf("snapshot read: %w", err)
	}
	defer zr.Close()
	var s Snapshot
	if err := gob.NewDecoder(zr).Decode(&s); err != nil {
		return nil, fmt.Errorf("snapshot decode: %w", err)
	}
	if s.Header.Version != Version {
		return nil, fmt.Errorf("snapshot version %d, want %d", s.Header.Version, Version)
	}
	return &s, nil
}

// Restore builds a world from a decoded snapshot. The caller typically marks
// every chunk dirty afterwards, since no meshes exist yet.
func Restore(s *Snapshot) (*world.World, error) {
	w, err := world.NewWorld(s.Header.ChunkSize, s.Header.Colors)
	if err != nil {
		return nil, fmt.Errorf("snapshot restore: %w", err)
	}
	for _, rec := range s.Chunks {
		types := make([]world.BlockType, len(rec.Types))
		for i, t := range rec.Types {
			types[i] = world.BlockType(t)
		}
		var colors []world.RGB
		if s.Header.Colors {
			if len(rec.Colors) != len(rec.Types)*3 {
				return nil, fmt.Errorf("snapshot restore: chunk (%d,%d,%d) has %d color bytes, want %d",
					rec.X, rec.Y, rec.Z, len(rec.Colors), len(rec.Types)*3)
			}
			colors = make([]world.RGB, len(rec.Types))
			for i := range colors {
				colors[i] = world.RGB{R: rec.Colors[i*3], G: rec.Colors[i*3+1], B: rec.Colors[i*3+2]}
			}
		}
		coord := world.ChunkCoord{X: rec.X, Y: rec.Y, Z: rec.Z}
		if _, err := w.RestoreChunk(coord, types, colors); err != nil {
			return nil, err
		}
	}
	return w, nil
}

// WriteFile writes a snapshot to a file path.
func WriteFile(path string, s *Snapshot) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("snapshot write %s: %w", path, err)
	}
	if err := Write(f, s); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// ReadFile reads a snapshot from a file path.
func ReadFile(path string) (*Snapshot, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("snapshot read %s: %w", path, err)
	}
	defer f.Close()
	return Read(f)
}
