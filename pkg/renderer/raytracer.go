package renderer

import (
	"time"

	"github.com/aukilabs/go-tooling/pkg/logs"
	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/geometry"
	"github.com/df07/go-pathtracer/pkg/integrator"
	"github.com/google/uuid"
)

// Config contains render scheduling configuration
type Config struct {
	Integrator       integrator.Integrator // Defaults to the iterative integrator
	Parallel         bool                  // Render rows on a worker pool instead of inline
	NumWorkers       int                   // Pool size, 0 means one per logical CPU
	Seed             int64                 // Base seed, row y samples from Seed + y
	ProgressInterval int                   // Rows between progress logs, 0 means every tenth of the image
	SceneName        string                // Used in logs and metric labels
}

// DefaultConfig returns sensible default values
func DefaultConfig() Config {
	return Config{
		Integrator: integrator.NewIterativeIntegrator(50),
		Parallel:   true,
		Seed:       1,
	}
}

// Raytracer turns a world and a camera into an image.
// It holds no mutable state and may render from several goroutines at once.
type Raytracer struct {
	world  geometry.Hitable
	camera *Camera
	config Config
}

// NewRaytracer creates a new raytracer
func NewRaytracer(world geometry.Hitable, camera *Camera, config Config) *Raytracer {
	if config.Integrator == nil {
		config.Integrator = DefaultConfig().Integrator
	}
	return &Raytracer{
		world:  world,
		camera: camera,
		config: config,
	}
}

// PixelColor averages the integrator's estimate over the camera's sample rays
func (rt *Raytracer) PixelColor(x, y int, sampler core.Sampler) core.Vec3 {
	samples := rt.camera.config.Samples
	colorAccum := core.Vec3{}
	for sample := 0; sample < samples; sample++ {
		ray := rt.camera.GetRay(x, y, sampler)
		colorAccum = colorAccum.Add(rt.config.Integrator.RayColor(ray, rt.world, sampler))
	}
	return colorAccum.Multiply(1.0 / float64(samples))
}

// RenderRow renders every pixel of task into row and returns the number of
// samples traced. The row owns its sampler, so the result depends only on
// the seed and the row index.
func (rt *Raytracer) RenderRow(task RowTask, row []core.Vec3) int {
	sampler := core.NewSeededSampler(rt.config.Seed + int64(task.Y))
	for x := range row {
		row[x] = rt.PixelColor(x, task.Y, sampler)
	}
	return len(row) * rt.camera.config.Samples
}

// rowTasks lists one task per image row, top row first
func (rt *Raytracer) rowTasks() []RowTask {
	height := rt.camera.config.Height
	tasks := make([]RowTask, height)
	for row := range tasks {
		tasks[row] = RowTask{Y: height - 1 - row, Row: row}
	}
	return tasks
}

// Render renders the complete image. It returns once every row is done.
func (rt *Raytracer) Render() (*Image, RenderStats) {
	cameraConfig := rt.camera.config
	img := NewImage(cameraConfig.Width, cameraConfig.Height)
	renderID := uuid.NewString()
	progress := newProgress(cameraConfig.Height, rt.config.ProgressInterval, renderID, rt.config.SceneName)

	workers := 1
	mode := "sequential"
	if rt.config.Parallel {
		workers = rt.config.NumWorkers
		if workers <= 0 {
			workers = DefaultWorkerCount()
		}
		mode = "parallel"
	}

	logs.WithTag("render_id", renderID).
		WithTag("scene", rt.config.SceneName).
		WithTag("width", cameraConfig.Width).
		WithTag("height", cameraConfig.Height).
		WithTag("samples", cameraConfig.Samples).
		WithTag("workers", workers).
		WithTag("mode", mode).
		Info("starting render")

	renderWorkers.Set(float64(workers))
	startTime := time.Now()

	totalSamples := 0
	if rt.config.Parallel {
		totalSamples = rt.renderParallel(img, workers, progress)
	} else {
		totalSamples = rt.renderSequential(img, progress)
	}

	stats := RenderStats{
		Rows:         cameraConfig.Height,
		TotalPixels:  cameraConfig.Width * cameraConfig.Height,
		TotalSamples: totalSamples,
		Workers:      workers,
		Duration:     time.Since(startTime),
	}
	renderDuration.WithLabelValues(rt.config.SceneName, mode).Observe(stats.Duration.Seconds())

	logs.WithTag("render_id", renderID).
		WithTag("scene", rt.config.SceneName).
		WithTag("duration", stats.Duration.String()).
		WithTag("samples_total", stats.TotalSamples).
		WithTag("samples_per_second", int(stats.SamplesPerSecond())).
		Info("render finished")

	return img, stats
}

func (rt *Raytracer) renderSequential(img *Image, progress *progress) int {
	totalSamples := 0
	for _, task := range rt.rowTasks() {
		samples := rt.RenderRow(task, img.Row(task.Row))
		totalSamples += samples
		rt.rowFinished(samples, progress)
	}
	return totalSamples
}

func (rt *Raytracer) renderParallel(img *Image, workers int, progress *progress) int {
	pool := NewWorkerPool(rt, img, workers)
	pool.Start()

	tasks := rt.rowTasks()
	for _, task := range tasks {
		pool.SubmitTask(task)
	}

	// Every row must report back before the image is complete
	totalSamples := 0
	for range tasks {
		result, ok := pool.GetResult()
		if !ok {
			break
		}
		totalSamples += result.Samples
		rt.rowFinished(result.Samples, progress)
	}

	pool.Stop()
	return totalSamples
}

func (rt *Raytracer) rowFinished(samples int, progress *progress) {
	rowsRendered.WithLabelValues(rt.config.SceneName).Inc()
	samplesTraced.WithLabelValues(rt.config.SceneName).Add(float64(samples))
	progress.rowDone()
}
