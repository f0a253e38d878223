package scene

import (
	"math/rand"

	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/material"
	"github.com/df07/go-pathtracer/pkg/renderer"
)

const defaultSamples = 50

// closeUpCamera frames the small scenes built around (0, 0, -1)
func closeUpCamera() renderer.CameraConfig {
	return renderer.CameraConfig{
		LookFrom: core.NewVec3(0, 0, 0),
		LookAt:   core.NewVec3(0, 0, -1),
		Up:       core.NewVec3(0, 1, 0),
		Width:    400,
		Height:   200,
		VFov:     90,
		Samples:  defaultSamples,
	}
}

// wideCamera frames the large sphere field from a low angle
func wideCamera() renderer.CameraConfig {
	return renderer.CameraConfig{
		LookFrom:      core.NewVec3(13, 2, 3),
		LookAt:        core.NewVec3(0, 0, 0),
		Up:            core.NewVec3(0, 1, 0),
		Width:         1200,
		Height:        800,
		VFov:          20,
		Aperture:      0.1,
		FocusDistance: 10,
		Samples:       defaultSamples,
	}
}

// NewOneSphereScene creates a single near-mirror sphere
func NewOneSphereScene() *Scene {
	s := New("one-sphere", closeUpCamera())
	s.AddSphere(core.NewVec3(0, 0, -1), 0.5, material.NewMetal(core.NewVec3(0.75, 0.75, 0.75), 0.001))
	return s
}

// NewTwoSpheresScene adds a huge diffuse ground sphere below the one-sphere scene
func NewTwoSpheresScene() *Scene {
	s := NewOneSphereScene()
	s.Name = "two-spheres"
	s.AddSphere(core.NewVec3(0, -100.5, -1), 100, material.NewLambertian(core.NewVec3(0.5, 0.5, 0.5)))
	return s
}

// NewFlankingMirrorsScene creates a glass sphere between a fuzzy and a rough metal sphere
func NewFlankingMirrorsScene() *Scene {
	s := New("flanking-mirrors", closeUpCamera())

	s.AddSphere(core.NewVec3(0, -100.5, -1), 100, material.NewLambertian(core.NewVec3(0.8, 0.8, 0.0)))
	s.AddSphere(core.NewVec3(0, 0, -1), 0.5, material.NewDielectric(1.5))
	s.AddSphere(core.NewVec3(-1, 0, -1), 0.5, material.NewMetal(core.NewVec3(0.8, 0.8, 0.8), 0.1))
	s.AddSphere(core.NewVec3(1, 0, -1), 0.5, material.NewMetal(core.NewVec3(0.8, 0.6, 0.2), 0.5))

	return s
}

// randomColor returns a color with each channel uniform in [0, 1)
func randomColor(random *rand.Rand) core.Vec3 {
	return core.NewVec3(random.Float64(), random.Float64(), random.Float64())
}

// NewRandomScene creates a ground sphere covered by a 22x22 grid of small
// spheres with randomly chosen materials, plus three large feature spheres
func NewRandomScene(seed int64) *Scene {
	random := rand.New(rand.NewSource(seed))
	s := New("random", wideCamera())

	s.AddSphere(core.NewVec3(0, -1000, 0), 1000, material.NewLambertian(core.NewVec3(0.5, 0.5, 0.5)))

	for a := -11; a < 11; a++ {
		for b := -11; b < 11; b++ {
			chooseMat := random.Float64()
			center := core.NewVec3(
				float64(a)+0.9*random.Float64(),
				0.2,
				float64(b)+0.9*random.Float64(),
			)

			var mat *material.Material
			switch {
			case chooseMat < 0.8:
				mat = material.NewLambertian(randomColor(random).MultiplyVec(randomColor(random)))
			case chooseMat < 0.95:
				albedo := randomColor(random).Multiply(0.5).Add(core.NewVec3(0.5, 0.5, 0.5))
				mat = material.NewMetal(albedo, random.Float64()*0.5)
			default:
				mat = material.NewDielectric(1.5)
			}
			s.AddSphere(center, 0.2, mat)
		}
	}

	s.AddSphere(core.NewVec3(0, 1, 0), 1, material.NewDielectric(1.5))
	s.AddSphere(core.NewVec3(-4, 1, 0), 1, material.NewLambertian(core.NewVec3(0.4, 0.2, 0.1)))
	s.AddSphere(core.NewVec3(4, 1, 0), 1, material.NewMetal(core.NewVec3(0.7, 0.6, 0.5), 0))

	return s
}

// NewMirrorsScene places a diffuse sphere between two perfect mirror planes.
// Most paths keep bouncing until the depth limit cuts them off.
func NewMirrorsScene() *Scene {
	s := New("mirrors", renderer.CameraConfig{
		LookFrom: core.NewVec3(0, 0.5, 0),
		LookAt:   core.NewVec3(0, 0, -1),
		Up:       core.NewVec3(0, 1, 0),
		Width:    400,
		Height:   200,
		VFov:     70,
		Samples:  defaultSamples,
	})

	mirror := material.NewMetal(core.NewVec3(1, 1, 1), 0)
	s.AddPlane(core.NewVec3(0, 0, -3), core.NewVec3(0, 0, 1), mirror)
	s.AddPlane(core.NewVec3(0, 0, 3), core.NewVec3(0, 0, -1), mirror)
	s.AddPlane(core.NewVec3(0, -0.5, 0), core.NewVec3(0, 1, 0), material.NewBiasedLambertian(core.NewVec3(0.5, 0.5, 0.5)))
	s.AddSphere(core.NewVec3(0, 0, -1), 0.5, material.NewLambertian(core.NewVec3(0.1, 0.2, 0.5)))

	return s
}

// NewEmptyScene creates a scene with nothing but the sky
func NewEmptyScene() *Scene {
	return New("empty", closeUpCamera())
}
