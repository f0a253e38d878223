package scene

import (
	"sort"

	"github.com/aukilabs/go-tooling/pkg/errors"
)

// ErrTypeSceneUnknown is the error type returned for unregistered scene names
const ErrTypeSceneUnknown = "scene_unknown"

// Options parameterize the built-in scene generators
type Options struct {
	Time float64 // Animation time in seconds, used by the animated scene
	Seed int64   // Seed for procedurally placed objects
}

// Info describes a built-in scene
type Info struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

type builder struct {
	info  Info
	build func(Options) *Scene
}

var builtins = map[string]builder{}

func register(name, description string, build func(Options) *Scene) {
	builtins[name] = builder{
		info:  Info{Name: name, Description: description},
		build: build,
	}
}

func init() {
	register("one-sphere", "A single polished metal sphere against the sky.", func(Options) *Scene { return NewOneSphereScene() })
	register("two-spheres", "A metal sphere resting on a large diffuse sphere.", func(Options) *Scene { return NewTwoSpheresScene() })
	register("flanking-mirrors", "A glass sphere between two metal spheres on a yellow ground.", func(Options) *Scene { return NewFlankingMirrorsScene() })
	register("random", "The classic field of small random spheres around three large ones.", func(o Options) *Scene { return NewRandomScene(o.Seed) })
	register("mirrors", "Two perfect mirrors facing each other, bouncing rays until the depth limit.", func(Options) *Scene { return NewMirrorsScene() })
	register("animated", "Three large spheres and a sun whose positions depend on time.", func(o Options) *Scene { return NewAnimatedScene(o.Time) })
	register("empty", "No objects; only the background gradient.", func(Options) *Scene { return NewEmptyScene() })
}

// List returns the built-in scenes sorted by name
func List() []Info {
	scenes := make([]Info, 0, len(builtins))
	for _, b := range builtins {
		scenes = append(scenes, b.info)
	}
	sort.Slice(scenes, func(i, j int) bool {
		return scenes[i].Name < scenes[j].Name
	})
	return scenes
}

// Build creates the built-in scene with the given name
func Build(name string, options Options) (*Scene, error) {
	b, ok := builtins[name]
	if !ok {
		return nil, errors.New("unknown scene").
			WithType(ErrTypeSceneUnknown).
			WithTag("scene", name)
	}
	return b.build(options), nil
}
