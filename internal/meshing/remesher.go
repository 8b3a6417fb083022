package meshing

import (
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"

	"voxelmesh/internal/profiling"
	"voxelmesh/internal/world"
)

// Sink receives finished chunk meshes and chunk removals, in the order the
// remesher applies them. A renderer uploads ApplyMesh payloads and frees GPU
// state on RemoveChunk.
type Sink interface {
	ApplyMesh(coord world.ChunkCoord, origin mgl32.Vec3, b *Buffers)
	RemoveChunk(coord world.ChunkCoord)
}

// Remesher tracks which chunks have stale meshes and rebuilds them, nearest
// chunks first, in bounded batches. Writes go through SetBlock so that edits
// on a chunk boundary also dirty the face-adjacent neighbor whose exposed
// faces the edit may have changed.
//
// Without an attached pool every rebuild runs synchronously on the calling
// goroutine. With a pool, Update submits jobs and later ticks drain the
// results; a chunk re-dirtied while a job is in flight simply gets a newer
// job, and sequence numbers make the older result a no-op.
//
// Remesher is not safe for concurrent use; it is driven from one update
// goroutine, which is also the only place Sink methods are called.
type Remesher struct {
	world  *world.World
	mesher *Mesher
	sink   Sink

	dirty map[world.ChunkCoord]struct{}

	pool    *WorkerPool
	results chan Result
	nextSeq uint64
	applied map[world.ChunkCoord]uint64
	pending int
}

// NewRemesher builds a synchronous remesher. mesher is used for all direct
// rebuilds, including MeshAll.
func NewRemesher(w *world.World, mesher *Mesher, sink Sink) *Remesher {
	return &Remesher{
		world:   w,
		mesher:  mesher,
		sink:    sink,
		dirty:   make(map[world.ChunkCoord]struct{}),
		applied: make(map[world.ChunkCoord]uint64),
	}
}

// AttachPool switches Update to asynchronous meshing through p. resultBuffer
// bounds how many finished meshes can wait between ticks.
func (r *Remesher) AttachPool(p *WorkerPool, resultBuffer int) {
	r.pool = p
	r.results = make(chan Result, resultBuffer)
}

// SetBlock writes one voxel and marks the owning chunk dirty. When the edit
// sits on a chunk boundary the face-adjacent neighbor on that side is marked
// too, but only if it already exists; absent chunks have no mesh to refresh.
//
// TODO: an edit on a chunk edge or corner also moves occlusion samples seen
// by the edge- and corner-diagonal neighbors, which are not marked here and
// keep slightly stale shading until something else dirties them.
func (r *Remesher) SetBlock(x, y, z int, v world.Voxel) {
	r.world.Set(x, y, z, v)
	coord := r.world.ChunkCoordAt(x, y, z)
	r.dirty[coord] = struct{}{}

	n := r.world.Size()
	lx, ly, lz := r.world.Local(x, y, z)
	if lx == 0 {
		r.markExisting(world.ChunkCoord{X: coord.X - 1, Y: coord.Y, Z: coord.Z})
	} else if lx == n-1 {
		r.markExisting(world.ChunkCoord{X: coord.X + 1, Y: coord.Y, Z: coord.Z})
	}
	if ly == 0 {
		r.markExisting(world.ChunkCoord{X: coord.X, Y: coord.Y - 1, Z: coord.Z})
	} else if ly == n-1 {
		r.markExisting(world.ChunkCoord{X: coord.X, Y: coord.Y + 1, Z: coord.Z})
	}
	if lz == 0 {
		r.markExisting(world.ChunkCoord{X: coord.X, Y: coord.Y, Z: coord.Z - 1})
	} else if lz == n-1 {
		r.markExisting(world.ChunkCoord{X: coord.X, Y: coord.Y, Z: coord.Z + 1})
	}
}

func (r *Remesher) markExisting(coord world.ChunkCoord) {
	if r.world.GetChunk(coord) != nil {
		r.dirty[coord] = struct{}{}
	}
}

// MarkDirty queues one existing chunk for remeshing.
func (r *Remesher) MarkDirty(coord world.ChunkCoord) {
	r.markExisting(coord)
}

// MarkAllDirty queues every chunk in the world, typically after bulk
// generation or a snapshot restore.
func (r *Remesher) MarkAllDirty() {
	for _, ch := range r.world.Chunks() {
		r.dirty[ch.Coord] = struct{}{}
	}
}

// DirtyCount returns the number of chunks waiting for a rebuild.
func (r *Remesher) DirtyCount() int { return len(r.dirty) }

// Pending returns the number of submitted jobs whose results have not been
// applied yet. Always zero without a pool.
func (r *Remesher) Pending() int { return r.pending }

// IsDirty reports whether the chunk is queued for a rebuild.
func (r *Remesher) IsDirty(coord world.ChunkCoord) bool {
	_, ok := r.dirty[coord]
	return ok
}

// Update remeshes up to batchSize dirty chunks, closest to actor first.
// Distance is measured between chunk coordinates, so the world's voxel-level
// layout never enters the ordering. Finished pool results are applied before
// new work is selected. Returns how many chunks were dispatched.
func (r *Remesher) Update(batchSize int, actor mgl32.Vec3) int {
	defer profiling.Track("remesher.Update")()
	r.Drain()
	if batchSize <= 0 || len(r.dirty) == 0 {
		return 0
	}

	ac := r.world.ChunkCoordAt(
		int(math32.Floor(actor.X())),
		int(math32.Floor(actor.Y())),
		int(math32.Floor(actor.Z())))

	type entry struct {
		coord world.ChunkCoord
		chunk *world.Chunk
		pri   float32
	}
	entries := make([]entry, 0, len(r.dirty))
	for coord := range r.dirty {
		ch := r.world.GetChunk(coord)
		if ch == nil {
			delete(r.dirty, coord)
			continue
		}
		dx := float32(coord.X - ac.X)
		dy := float32(coord.Y - ac.Y)
		dz := float32(coord.Z - ac.Z)
		pri := math32.Sqrt(dx*dx + dy*dy + dz*dz)
		ch.Priority = pri
		entries = append(entries, entry{coord, ch, pri})
	}

	k := batchSize
	if k > len(entries) {
		k = len(entries)
	}
	// Partial selection sort: only the k nearest need ordering, the rest of
	// the dirty set stays untouched for later ticks.
	dispatched := 0
	for i := 0; i < k; i++ {
		best := i
		for j := i + 1; j < len(entries); j++ {
			if entries[j].pri < entries[best].pri {
				best = j
			}
		}
		entries[i], entries[best] = entries[best], entries[i]
		if r.remesh(entries[i].coord, entries[i].chunk) {
			delete(r.dirty, entries[i].coord)
			dispatched++
		}
	}
	return dispatched
}

// MeshAll rebuilds every dirty chunk synchronously, ignoring batching,
// priority, and any attached pool. Used for startup and tests.
func (r *Remesher) MeshAll() int {
	n := 0
	for coord := range r.dirty {
		ch := r.world.GetChunk(coord)
		delete(r.dirty, coord)
		if ch == nil {
			continue
		}
		r.applyDirect(coord, ch)
		n++
	}
	return n
}

func (r *Remesher) remesh(coord world.ChunkCoord, ch *world.Chunk) bool {
	if r.pool == nil {
		r.applyDirect(coord, ch)
		return true
	}
	r.nextSeq++
	ok := r.pool.Submit(Job{
		World:   r.world,
		Chunk:   ch,
		Seq:     r.nextSeq,
		Results: r.results,
	})
	if ok {
		r.pending++
	}
	return ok
}

func (r *Remesher) applyDirect(coord world.ChunkCoord, ch *world.Chunk) {
	stop := profiling.Track("meshing.Mesh")
	buf := r.mesher.Mesh(NewChunkSampler(r.world, ch))
	stop()
	profiling.Count("meshing.faces", int64(buf.FaceCount()))
	r.nextSeq++
	r.applied[coord] = r.nextSeq
	ox, oy, oz := ch.Origin()
	r.sink.ApplyMesh(coord, mgl32.Vec3{float32(ox), float32(oy), float32(oz)}, buf)
}

// Drain applies all finished pool results without blocking. Results overtaken
// by a newer mesh of the same chunk are dropped. Returns how many meshes
// reached the sink.
func (r *Remesher) Drain() int {
	if r.results == nil {
		return 0
	}
	applied := 0
	for {
		select {
		case res := <-r.results:
			r.pending--
			if res.Seq <= r.applied[res.Coord] {
				continue
			}
			r.applied[res.Coord] = res.Seq
			r.sink.ApplyMesh(res.Coord, res.Origin, res.Buffers)
			applied++
		default:
			return applied
		}
	}
}

// EvictFarChunks removes chunks whose chunk-space distance from actor exceeds
// radius, notifying the sink for each. Returns the number removed.
func (r *Remesher) EvictFarChunks(actor mgl32.Vec3, radius int) int {
	ac := r.world.ChunkCoordAt(
		int(math32.Floor(actor.X())),
		int(math32.Floor(actor.Y())),
		int(math32.Floor(actor.Z())))
	limit := float32(radius)
	removed := 0
	for _, ch := range r.world.Chunks() {
		coord := ch.Coord
		dx := float32(coord.X - ac.X)
		dy := float32(coord.Y - ac.Y)
		dz := float32(coord.Z - ac.Z)
		if math32.Sqrt(dx*dx+dy*dy+dz*dz) <= limit {
			continue
		}
		r.world.Remove(coord)
		delete(r.dirty, coord)
		delete(r.applied, coord)
		r.sink.RemoveChunk(coord)
		removed++
	}
	return removed
}

// Teardown removes every chunk from the world and tells the sink to release
// each mesh.
func (r *Remesher) Teardown() {
	for _, ch := range r.world.Chunks() {
		r.world.Remove(ch.Coord)
		r.sink.RemoveChunk(ch.Coord)
	}
	r.dirty = make(map[world.ChunkCoord]struct{})
	r.applied = make(map[world.ChunkCoord]uint64)
}
