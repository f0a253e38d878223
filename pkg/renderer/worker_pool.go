package renderer

import (
	"runtime"
	"sync"

	"github.com/aukilabs/go-tooling/pkg/errors"
	"github.com/aukilabs/go-tooling/pkg/logs"
	"github.com/shirou/gopsutil/v3/cpu"
)

// RowTask is one unit of render work: every pixel of a single image row
type RowTask struct {
	Y   int // Row index counted from the bottom, as the camera expects
	Row int // Destination row in the image, counted from the top
}

// RowResult reports a finished row
type RowResult struct {
	Task    RowTask
	Samples int
}

// WorkerPool manages parallel row rendering
type WorkerPool struct {
	taskQueue   chan RowTask
	resultQueue chan RowResult
	workers     []*Worker
	numWorkers  int
	wg          sync.WaitGroup
}

// Worker renders rows taken from the shared task queue
type Worker struct {
	ID          int
	raytracer   *Raytracer
	image       *Image
	taskQueue   chan RowTask
	resultQueue chan RowResult
}

// DefaultWorkerCount returns the number of logical CPUs
func DefaultWorkerCount() int {
	count, err := cpu.Counts(true)
	if err != nil {
		logs.Debug(errors.New("counting logical cpus failed").Wrap(err))
		return runtime.NumCPU()
	}
	if count <= 0 {
		return runtime.NumCPU()
	}
	return count
}

// NewWorkerPool creates a worker pool that renders rows of img with rt.
// A non-positive numWorkers uses one worker per logical CPU.
func NewWorkerPool(rt *Raytracer, img *Image, numWorkers int) *WorkerPool {
	if numWorkers <= 0 {
		numWorkers = DefaultWorkerCount()
	}

	wp := &WorkerPool{
		taskQueue:   make(chan RowTask, img.Height), // Buffer for every row
		resultQueue: make(chan RowResult, img.Height),
		numWorkers:  numWorkers,
	}

	for i := 0; i < numWorkers; i++ {
		wp.workers = append(wp.workers, &Worker{
			ID:          i,
			raytracer:   rt,
			image:       img,
			taskQueue:   wp.taskQueue,
			resultQueue: wp.resultQueue,
		})
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

// Stop waits for queued tasks to finish and shuts down all workers
func (wp *WorkerPool) Stop() {
	close(wp.taskQueue)
	wp.wg.Wait()
	close(wp.resultQueue)
}

// SubmitTask submits a row task to the worker pool
func (wp *WorkerPool) SubmitTask(task RowTask) {
	wp.taskQueue <- task
}

// GetResult retrieves a completed row result
func (wp *WorkerPool) GetResult() (RowResult, bool) {
	result, ok := <-wp.resultQueue
	return result, ok
}

// GetNumWorkers returns the number of workers in the pool
func (wp *WorkerPool) GetNumWorkers() int {
	return wp.numWorkers
}

func (w *Worker) run(wg *sync.WaitGroup) {
	defer wg.Done()

	for task := range w.taskQueue {
		// Rows are disjoint, so writing straight into the shared image is safe
		samples := w.raytracer.RenderRow(task, w.image.Row(task.Row))
		w.resultQueue <- RowResult{Task: task, Samples: samples}
	}
}
