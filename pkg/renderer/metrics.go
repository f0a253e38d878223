package renderer

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	sceneLabel = "scene"
	modeLabel  = "mode"
)

var (
	rowsRendered = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "pathtracer_rows_rendered_total",
		Help: "The number of image rows rendered.",
	}, []string{
		sceneLabel,
	})

	samplesTraced = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "pathtracer_samples_total",
		Help: "The number of camera rays traced.",
	}, []string{
		sceneLabel,
	})

	renderDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "pathtracer_render_duration_seconds",
		Help:    "The wall time of complete renders.",
		Buckets: prometheus.ExponentialBuckets(0.01, 4, 10),
	}, []string{
		sceneLabel,
		modeLabel,
	})

	renderWorkers = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "pathtracer_workers",
		Help: "The number of workers used by the current render.",
	})
)
