package config

import (
	"fmt"
	"math/bits"
	"os"
	"runtime"

	"gopkg.in/yaml.v3"
)

// Config holds the tunables of a meshing run. Zero or missing fields fall
// back to Default values when loaded from a file.
type Config struct {
	// ChunkSize is the chunk side length in voxels, power of two.
	ChunkSize int `yaml:"chunk_size"`
	// Colors stores a raw color per voxel and meshes with per-vertex colors
	// instead of atlas texture coordinates.
	Colors bool `yaml:"colors"`

	Workers   int `yaml:"workers"`
	QueueSize int `yaml:"queue_size"`
	// BatchSize caps how many chunks one update tick may dispatch.
	BatchSize int `yaml:"batch_size"`

	Seed int64 `yaml:"seed"`
	// RadiusChunks is the generated (and retained) extent around the actor.
	RadiusChunks int `yaml:"radius_chunks"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		ChunkSize:    16,
		Colors:       false,
		Workers:      runtime.NumCPU(),
		QueueSize:    256,
		BatchSize:    8,
		Seed:         1337,
		RadiusChunks: 4,
	}
}

// Load reads a yaml config file over the defaults. An empty path returns the
// defaults unchanged.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("config: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

// Validate rejects values the engine cannot run with.
func (c Config) Validate() error {
	if c.ChunkSize <= 0 || bits.OnesCount(uint(c.ChunkSize)) != 1 {
		return fmt.Errorf("chunk_size %d is not a power of two", c.ChunkSize)
	}
	if c.Workers < 1 {
		return fmt.Errorf("workers %d, need at least 1", c.Workers)
	}
	if c.QueueSize < 1 {
		return fmt.Errorf("queue_size %d, need at least 1", c.QueueSize)
	}
	if c.BatchSize < 1 {
		return fmt.Errorf("batch_size %d, need at least 1", c.BatchSize)
	}
	if c.RadiusChunks < 0 {
		return fmt.Errorf("radius_chunks %d is negative", c.RadiusChunks)
	}
	return nil
}
