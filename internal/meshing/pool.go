package meshing

import (
	"context"
	"sync"

	"github.com/go-gl/mathgl/mgl32"

	"voxelmesh/internal/profiling"
	"voxelmesh/internal/world"
)

// Job asks a pool worker to mesh one chunk. Seq is a monotonically increasing
// ticket assigned by the submitter; receivers use it to discard results that
// were overtaken by a newer mesh of the same chunk.
type Job struct {
	World   *world.World
	Chunk   *world.Chunk
	Seq     uint64
	Results chan<- Result
}

// Result is a finished chunk mesh. Origin is the chunk's world-space anchor,
// so the renderer can place the chunk-local positions without knowing the
// chunk size.
type Result struct {
	Coord   world.ChunkCoord
	Origin  mgl32.Vec3
	Buffers *Buffers
	Seq     uint64
}

// WorkerPool meshes chunks on background goroutines. Each worker owns a
// private Mesher so scratch buffers are never shared.
type WorkerPool struct {
	jobs   chan Job
	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// NewWorkerPool starts workers goroutines sharing a queue of queueSize
// pending jobs. newMesher is called once per worker.
func NewWorkerPool(workers, queueSize int, newMesher func() *Mesher) *WorkerPool {
	ctx, cancel := context.WithCancel(context.Background())
	p := &WorkerPool{
		jobs:   make(chan Job, queueSize),
		ctx:    ctx,
		cancel: cancel,
	}
	for i := 0; i < workers; i++ {
		p.wg.Add(1)
		go p.run(newMesher())
	}
	return p
}

func (p *WorkerPool) run(m *Mesher) {
	defer p.wg.Done()
	for {
		select {
		case <-p.ctx.Done():
			return
		case job := <-p.jobs:
			stop := profiling.Track("meshing.Mesh")
			s := NewChunkSampler(job.World, job.Chunk)
			buf := m.Mesh(s)
			stop()
			profiling.Count("meshing.faces", int64(buf.FaceCount()))
			ox, oy, oz := job.Chunk.Origin()
			res := Result{
				Coord:   job.Chunk.Coord,
				Origin:  mgl32.Vec3{float32(ox), float32(oy), float32(oz)},
				Buffers: buf,
				Seq:     job.Seq,
			}
			select {
			case job.Results <- res:
			case <-p.ctx.Done():
				return
			}
		}
	}
}

// Submit enqueues a job without blocking. It reports false when the queue is
// full or the pool is shutting down; the caller keeps the chunk dirty and
// retries on a later tick.
func (p *WorkerPool) Submit(job Job) bool {
	select {
	case p.jobs <- job:
		return true
	case <-p.ctx.Done():
		return false
	default:
		return false
	}
}

// QueueLength returns the number of jobs waiting for a worker.
func (p *WorkerPool) QueueLength() int { return len(p.jobs) }

// Shutdown stops the workers and waits for them to exit. Queued jobs are
// dropped.
func (p *WorkerPool) Shutdown() {
	p.cancel()
	p.wg.Wait()
}
