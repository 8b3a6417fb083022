package main

import (
	"flag"
	"log"
	"os"
	"time"

	"github.com/go-gl/mathgl/mgl32"

	"voxelmesh/internal/config"
	"voxelmesh/internal/gen"
	"voxelmesh/internal/meshing"
	"voxelmesh/internal/profiling"
	"voxelmesh/internal/registry"
	"voxelmesh/internal/snapshot"
	"voxelmesh/internal/world"
)

// statsSink counts meshes instead of uploading them, which is all a headless
// run needs.
type statsSink struct {
	chunks   int
	faces    int
	vertices int
	removed  int
}

func (s *statsSink) ApplyMesh(_ world.ChunkCoord, _ mgl32.Vec3, b *meshing.Buffers) {
	s.chunks++
	s.faces += b.FaceCount()
	s.vertices += b.VertexCount()
}

func (s *statsSink) RemoveChunk(_ world.ChunkCoord) {
	s.removed++
}

func main() {
	configPath := flag.String("config", "", "path to yaml config")
	seed := flag.Int64("seed", 0, "override terrain seed")
	radius := flag.Int("radius", 0, "override generated radius in chunks")
	workers := flag.Int("workers", 0, "override mesh worker count")
	colors := flag.Bool("colors", false, "per-voxel colors instead of block textures")
	snapshotOut := flag.String("snapshot-out", "", "write the generated world to this file")
	snapshotIn := flag.String("snapshot-in", "", "restore the world from this file instead of generating")
	flag.Parse()

	logger := log.New(os.Stdout, "[voxelmesh] ", log.LstdFlags|log.Lmicroseconds)

	cfg, err := config.Load(*configPath)
	if err != nil {
		logger.Fatalf("load config: %v", err)
	}
	if *seed != 0 {
		cfg.Seed = *seed
	}
	if *radius > 0 {
		cfg.RadiusChunks = *radius
	}
	if *workers > 0 {
		cfg.Workers = *workers
	}
	if *colors {
		cfg.Colors = true
	}
	if err := cfg.Validate(); err != nil {
		logger.Fatalf("config: %v", err)
	}

	reg := registry.New()
	if err := reg.RegisterDefaults(); err != nil {
		logger.Fatalf("registry: %v", err)
	}

	var (
		mode meshing.AttrMode
		app  meshing.Appearance
	)
	if cfg.Colors {
		mode = meshing.AttrColor
		app = meshing.ColorAppearance{}
	} else {
		mode = meshing.AttrTexture
		atlas, err := reg.BuildSolidColorAtlas(16)
		if err != nil {
			logger.Fatalf("atlas: %v", err)
		}
		bounds := atlas.Image().Bounds()
		logger.Printf("atlas %dx%d, %d block types", bounds.Dx(), bounds.Dy(), len(reg.Definitions()))
		app = reg
	}

	var w *world.World
	if *snapshotIn != "" {
		snap, err := snapshot.ReadFile(*snapshotIn)
		if err != nil {
			logger.Fatalf("%v", err)
		}
		w, err = snapshot.Restore(snap)
		if err != nil {
			logger.Fatalf("%v", err)
		}
		logger.Printf("restored world %s: %d chunks", snap.Header.WorldID, w.ChunkCount())
	} else {
		w, err = world.NewWorld(cfg.ChunkSize, cfg.Colors)
		if err != nil {
			logger.Fatalf("world: %v", err)
		}
		g := gen.NewGenerator(cfg.Seed)
		extent := cfg.RadiusChunks * cfg.ChunkSize
		start := time.Now()
		g.Populate(w, -extent, -extent, extent, extent)
		logger.Printf("generated %d chunks in %s (seed %d, radius %d)",
			w.ChunkCount(), time.Since(start).Round(time.Millisecond), cfg.Seed, cfg.RadiusChunks)
	}

	sink := &statsSink{}
	mesher := meshing.NewMesher(cfg.ChunkSize, mode, app)
	pool := meshing.NewWorkerPool(cfg.Workers, cfg.QueueSize, func() *meshing.Mesher {
		return meshing.NewMesher(cfg.ChunkSize, mode, app)
	})
	defer pool.Shutdown()

	rm := meshing.NewRemesher(w, mesher, sink)
	rm.AttachPool(pool, cfg.QueueSize)
	rm.MarkAllDirty()

	actor := mgl32.Vec3{0, float32(cfg.ChunkSize), 0}
	profiling.ResetTick()
	start := time.Now()
	for rm.DirtyCount() > 0 || rm.Pending() > 0 {
		if rm.Update(cfg.BatchSize, actor) == 0 && rm.Pending() > 0 {
			time.Sleep(time.Millisecond)
		}
	}
	logger.Printf("meshed %d chunks in %s: %d faces, %d vertices",
		sink.chunks, time.Since(start).Round(time.Millisecond), sink.faces, sink.vertices)
	logger.Printf("timings: %s", profiling.TopN(3))

	// A pick through the world center, the same query an editor would run
	// before placing a block.
	if hit := world.Raycast(w, actor, mgl32.Vec3{0.3, -1, 0.2}.Normalize(),
		world.MinReachDistance, world.MaxReachDistance); hit.Hit {
		logger.Printf("raycast hit %v at distance %.2f", hit.HitPosition, hit.Distance)
	}

	if *snapshotOut != "" {
		snap := snapshot.Export(w, "")
		if err := snapshot.WriteFile(*snapshotOut, snap); err != nil {
			logger.Fatalf("%v", err)
		}
		logger.Printf("wrote snapshot %s (world %s, %d chunks)", *snapshotOut, snap.Header.WorldID, len(snap.Chunks))
	}
}
