package renderer

import (
	"runtime"
	"sync"

	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/integrator"
	"github.com/df07/go-whitted-raytracer/pkg/scene"
)

// PixelTask asks a worker to shade one pixel
type PixelTask struct {
	X, Y int
}

// PixelResult contains the shaded color of one pixel
type PixelResult struct {
	X, Y  int
	Color core.Vec3
}

// WorkerPool shades pixels in parallel. Workers share the scene and projection read-only.
type WorkerPool struct {
	taskQueue   chan PixelTask
	resultQueue chan PixelResult
	workers     []*Worker
	numWorkers  int
	wg          sync.WaitGroup
}

// Worker handles individual pixel tasks
type Worker struct {
	ID          int
	scene       *scene.Scene
	projection  *Projection
	integrator  integrator.Integrator
	taskQueue   chan PixelTask
	resultQueue chan PixelResult
}

// NewWorkerPool creates a worker pool with the specified number of workers.
// queueSize should cover the tasks submitted before results are collected, normally one row.
func NewWorkerPool(s *scene.Scene, projection *Projection, integ integrator.Integrator, numWorkers, queueSize int) *WorkerPool {
	if numWorkers <= 0 {
		numWorkers = runtime.NumCPU()
	}

	wp := &WorkerPool{
		taskQueue:   make(chan PixelTask, queueSize),
		resultQueue: make(chan PixelResult, queueSize),
		numWorkers:  numWorkers,
	}

	for i := 0; i < numWorkers; i++ {
		worker := &Worker{
			ID:          i,
			scene:       s,
			projection:  projection,
			integrator:  integ,
			taskQueue:   wp.taskQueue,
			resultQueue: wp.resultQueue,
		}
		wp.workers = append(wp.workers, worker)
	}

	return wp
}

// Start begins all workers
func (wp *WorkerPool) Start() {
	for _, worker := range wp.workers {
		wp.wg.Add(1)
		go worker.run(&wp.wg)
	}
}

// Stop gracefully shuts down all workers
func (wp *WorkerPool) Stop() {
	close(wp.taskQueue) // No more tasks
	wp.wg.Wait()        // Wait for workers to finish
	close(wp.resultQueue)
}

// SubmitTask submits a pixel task to the worker pool
func (wp *WorkerPool) SubmitTask(task PixelTask) {
	wp.taskQueue <- task
}

// GetResult retrieves a completed pixel result
func (wp *WorkerPool) GetResult() (PixelResult, bool) {
	result, ok := <-wp.resultQueue
	return result, ok
}

// GetNumWorkers returns the number of workers in the pool
func (wp *WorkerPool) GetNumWorkers() int {
	return wp.numWorkers
}

// run is the main worker loop
func (w *Worker) run(wg *sync.WaitGroup) {
	defer wg.Done()

	for task := range w.taskQueue {
		ray := w.projection.RayForPixel(task.X, task.Y)
		w.resultQueue <- PixelResult{
			X:     task.X,
			Y:     task.Y,
			Color: w.integrator.RayColor(ray, w.scene),
		}
	}
}
