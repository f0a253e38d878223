package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"reflect"

	"github.com/aukilabs/go-tooling/pkg/cli"
	"github.com/aukilabs/go-tooling/pkg/errors"
	"github.com/aukilabs/go-tooling/pkg/logs"
	"github.com/df07/go-pathtracer/pkg/integrator"
	"github.com/df07/go-pathtracer/pkg/loaders"
	"github.com/df07/go-pathtracer/pkg/output"
	"github.com/df07/go-pathtracer/pkg/renderer"
	"github.com/df07/go-pathtracer/pkg/scene"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/segmentio/encoding/json"
	"github.com/shirou/gopsutil/v3/cpu"
)

// The path tracer version number. Set at build.
var version = "v0.1.0"

// Keeps the config field names intact for the cli package under obfuscation.
var _ = reflect.TypeOf(config{})

type config struct {
	Scene       string  `cli:""        env:"PATHTRACER_SCENE"        help:"Built-in scene to render."`
	SceneFile   string  `cli:""        env:"PATHTRACER_SCENE_FILE"   help:"JSON scene file to render instead of a built-in scene."`
	ListScenes  bool    `cli:""        env:"-"                       help:"List the built-in scenes and exit."`
	ExportScene bool    `cli:""        env:"-"                       help:"Print the selected scene as JSON and exit."`
	Samples     int     `cli:""        env:"PATHTRACER_SAMPLES"      help:"Rays per pixel."`
	Width       int     `cli:""        env:"PATHTRACER_WIDTH"        help:"Image width in pixels (0 keeps the scene default)."`
	Height      int     `cli:""        env:"PATHTRACER_HEIGHT"       help:"Image height in pixels (0 keeps the scene default)."`
	VFov        float64 `cli:""        env:"PATHTRACER_VFOV"         help:"Vertical field of view in degrees (0 keeps the scene default)."`
	Aperture    float64 `cli:""        env:"PATHTRACER_APERTURE"     help:"Lens aperture (negative keeps the scene default)."`
	MaxDepth    int     `cli:""        env:"PATHTRACER_MAX_DEPTH"    help:"Maximum bounces per path."`
	Integrator  string  `cli:""        env:"PATHTRACER_INTEGRATOR"   help:"Path integrator (iterative|recursive)."`
	Output      string  `cli:""        env:"PATHTRACER_OUTPUT"       help:"Output file (.ppm, .ppm.gz or .png)."`
	Parallel    bool    `cli:""        env:"PATHTRACER_PARALLEL"     help:"Render rows on a worker pool."`
	Workers     int     `cli:""        env:"PATHTRACER_WORKERS"      help:"Number of workers (0 uses one per logical CPU)."`
	Seed        int64   `cli:""        env:"PATHTRACER_SEED"         help:"Random seed for sampling and procedural scenes."`
	Time        float64 `cli:""        env:"PATHTRACER_TIME"         help:"Animation time in seconds for the animated scene."`
	ShowBounds  bool    `cli:",hidden" env:"PATHTRACER_SHOW_BOUNDS"  help:"Render the spatial index leaf boxes."`
	Progress    int     `cli:",hidden" env:"PATHTRACER_PROGRESS"     help:"Rows between progress logs (0 logs every tenth of the image)."`
	LogLevel    string  `cli:""        env:"PATHTRACER_LOG_LEVEL"    help:"Log level (debug|info|warning|error)."`
	LogIndent   bool    `cli:""        env:"PATHTRACER_LOG_INDENT"   help:"Indent logs."`
	MetricsAddr string  `cli:""        env:"PATHTRACER_METRICS_ADDR" help:"Listening address for Prometheus metrics (empty disables)."`
	Version     bool    `cli:""        env:"-"                       help:"Show version."`
	Help        bool    `cli:""        env:"-"                       help:"Show help."`
}

func defaultConfig() config {
	return config{
		Scene:      "random",
		Samples:    50,
		Aperture:   -1,
		MaxDepth:   50,
		Integrator: "iterative",
		Output:     "out.ppm",
		Parallel:   true,
		Seed:       1,
		LogLevel:   logs.InfoLevel.String(),
	}
}

func main() {
	conf := defaultConfig()

	cli.Register().
		Help("Renders a scene with a Monte Carlo path tracer.").
		Options(&conf)
	cli.Load()

	if conf.Version {
		fmt.Println(version)
		os.Exit(0)
	}

	logs.SetLevel(logs.ParseLevel(conf.LogLevel))
	logs.Encoder = json.Marshal
	if conf.LogIndent {
		logs.Encoder = func(v any) ([]byte, error) {
			return json.MarshalIndent(v, "", "  ")
		}
	}

	errors.Encoder = json.Marshal

	if conf.ListScenes {
		for _, info := range scene.List() {
			fmt.Printf("%-18s %s\n", info.Name, info.Description)
		}
		return
	}

	if err := validateConfig(conf); err != nil {
		logs.Fatal(err)
	}

	s, err := loadScene(conf)
	if err != nil {
		logs.Fatal(err)
	}

	if conf.ExportScene {
		if err := loaders.Write(os.Stdout, s); err != nil {
			logs.Fatal(err)
		}
		return
	}

	if conf.MetricsAddr != "" {
		server := startMetricsServer(conf.MetricsAddr)
		defer server.Shutdown(context.Background())
	}

	logCPU()

	if err := render(conf, s); err != nil {
		logs.Fatal(err)
	}
}

func validateConfig(conf config) error {
	switch {
	case conf.Samples <= 0:
		return errors.New("samples must be positive").
			WithType(renderer.ErrTypeConfigInvalid).
			WithTag("samples", conf.Samples)

	case conf.MaxDepth < 0:
		return errors.New("max depth must not be negative").
			WithType(renderer.ErrTypeConfigInvalid).
			WithTag("max_depth", conf.MaxDepth)

	case conf.Width < 0 || conf.Height < 0:
		return errors.New("image size must not be negative").
			WithType(renderer.ErrTypeConfigInvalid).
			WithTag("width", conf.Width).
			WithTag("height", conf.Height)

	case conf.Workers < 0:
		return errors.New("workers must not be negative").
			WithType(renderer.ErrTypeConfigInvalid).
			WithTag("workers", conf.Workers)

	case conf.Output == "":
		return errors.New("output file is required").
			WithType(renderer.ErrTypeConfigInvalid)
	}

	if _, ok := integrator.New(conf.Integrator, conf.MaxDepth); !ok {
		return errors.New("unknown integrator").
			WithType(renderer.ErrTypeConfigInvalid).
			WithTag("integrator", conf.Integrator)
	}
	if _, err := output.FormatFromPath(conf.Output); err != nil {
		return err
	}
	return nil
}

// loadScene builds the selected scene and applies the command line camera overrides
func loadScene(conf config) (*scene.Scene, error) {
	var s *scene.Scene
	var err error
	if conf.SceneFile != "" {
		s, err = loaders.LoadFile(conf.SceneFile)
	} else {
		s, err = scene.Build(conf.Scene, scene.Options{Time: conf.Time, Seed: conf.Seed})
	}
	if err != nil {
		return nil, err
	}

	s.CameraConfig = cameraConfig(conf, s.CameraConfig)
	return s, nil
}

func cameraConfig(conf config, base renderer.CameraConfig) renderer.CameraConfig {
	merged := renderer.MergeCameraConfig(base, renderer.CameraConfig{
		Width:   conf.Width,
		Height:  conf.Height,
		VFov:    conf.VFov,
		Samples: conf.Samples,
	})
	if conf.Aperture >= 0 {
		merged.Aperture = conf.Aperture
	}
	return merged
}

func render(conf config, s *scene.Scene) error {
	camera, err := renderer.NewCamera(s.CameraConfig)
	if err != nil {
		return err
	}

	pathIntegrator, _ := integrator.New(conf.Integrator, conf.MaxDepth)
	world := s.World(conf.ShowBounds)

	stats := world.Bounded.Stats()
	logs.WithTag("scene", s.Name).
		WithTag("primitives", s.PrimitiveCount()).
		WithTag("nodes", stats.TotalNodes).
		WithTag("leaves", stats.LeafNodes).
		WithTag("max_depth", stats.MaxDepth).
		WithTag("shape_references", stats.ShapeReferences).
		Debug("spatial index built")

	rt := renderer.NewRaytracer(world, camera, renderer.Config{
		Integrator:       pathIntegrator,
		Parallel:         conf.Parallel,
		NumWorkers:       conf.Workers,
		Seed:             conf.Seed,
		ProgressInterval: conf.Progress,
		SceneName:        s.Name,
	})

	img, _ := rt.Render()

	if err := output.Save(conf.Output, img); err != nil {
		return err
	}

	logs.WithTag("output", conf.Output).
		WithTag("width", img.Width).
		WithTag("height", img.Height).
		Info("image saved")
	return nil
}

func startMetricsServer(addr string) *http.Server {
	var mux http.ServeMux
	mux.Handle("/metrics", promhttp.Handler())
	server := &http.Server{Addr: addr, Handler: &mux}

	go func() {
		logs.WithTag("addr", addr).Info("starting metrics server")

		switch err := server.ListenAndServe(); err {
		case nil, http.ErrServerClosed:
			logs.WithTag("addr", addr).Info("stopping metrics server")

		default:
			logs.Warn(errors.Newf("metrics server stopped").
				WithTag("addr", addr).
				Wrap(err))
		}
	}()

	return server
}

func logCPU() {
	infos, err := cpu.Info()
	if err != nil {
		logs.Debug(errors.New("reading cpu info failed").Wrap(err))
		return
	}
	if len(infos) == 0 {
		return
	}

	logs.WithTag("model", infos[0].ModelName).
		WithTag("logical_cpus", renderer.DefaultWorkerCount()).
		Debug("cpu detected")
}
