package renderer

import (
	"sync"
	"time"

	"github.com/aukilabs/go-tooling/pkg/logs"
)

// RenderStats contains statistics about the rendering process
type RenderStats struct {
	Rows         int           // Number of rows rendered
	TotalPixels  int           // Total number of pixels rendered
	TotalSamples int           // Total number of camera rays traced
	Workers      int           // Number of goroutines that rendered rows, 1 when sequential
	Duration     time.Duration // Wall time of the render
}

// SamplesPerSecond returns the traced camera ray rate
func (s RenderStats) SamplesPerSecond() float64 {
	if s.Duration <= 0 {
		return 0
	}
	return float64(s.TotalSamples) / s.Duration.Seconds()
}

// progress counts finished rows and logs every interval rows.
// It only reports; the image does not depend on it.
type progress struct {
	mutex    sync.Mutex
	total    int
	done     int
	interval int
	renderID string
	scene    string
}

func newProgress(total, interval int, renderID, scene string) *progress {
	if interval <= 0 {
		interval = max(total/10, 1)
	}
	return &progress{total: total, interval: interval, renderID: renderID, scene: scene}
}

// rowDone records one finished row and returns how many are done
func (p *progress) rowDone() int {
	p.mutex.Lock()
	defer p.mutex.Unlock()

	p.done++
	if p.done%p.interval == 0 || p.done == p.total {
		logs.WithTag("render_id", p.renderID).
			WithTag("scene", p.scene).
			WithTag("rows_done", p.done).
			WithTag("rows_total", p.total).
			WithTag("percent", 100*p.done/p.total).
			Info("render progress")
	}
	return p.done
}
