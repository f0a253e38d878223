package scene

import (
	"math"

	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/material"
	"github.com/df07/go-pathtracer/pkg/renderer"
)

const (
	// orbitPeriod is the time in seconds of one full camera orbit
	orbitPeriod = 3600.0
	// sunPeriod is the time in seconds of one full sun revolution
	sunPeriod = 900.0
)

// NewAnimatedScene creates the frame at time t of a short animation: the
// camera circles three large spheres on a diffuse ground plane while a sun
// sphere and a glowing sphere orbit them.
func NewAnimatedScene(t float64) *Scene {
	cameraAngle := 2 * math.Pi * t / orbitPeriod
	sunAngle := 2 * math.Pi * t / sunPeriod

	s := New("animated", renderer.CameraConfig{
		LookFrom: core.NewVec3(13*math.Cos(cameraAngle), 2, 13*math.Sin(cameraAngle)),
		LookAt:   core.NewVec3(0, 0.5, 0),
		Up:       core.NewVec3(0, 1, 0),
		Width:    600,
		Height:   400,
		VFov:     25,
		Samples:  defaultSamples,
	})

	s.AddPlane(core.NewVec3(0, 0, 0), core.NewVec3(0, 1, 0), material.NewLambertian(core.NewVec3(0.5, 0.5, 0.5)))

	s.AddSphere(core.NewVec3(0, 1, 0), 1, material.NewDielectric(1.5))
	s.AddSphere(core.NewVec3(0, 1, 0), -0.95, material.NewDielectric(1.5))
	s.AddSphere(core.NewVec3(-4, 1, 0), 1, material.NewBiasedLambertian(core.NewVec3(0.4, 0.2, 0.1)))
	s.AddSphere(core.NewVec3(4, 1, 0), 1, material.NewMetal(core.NewVec3(0.7, 0.6, 0.5), 0))

	s.AddSphere(core.NewVec3(20*math.Cos(sunAngle), 6+4*math.Sin(sunAngle), 20*math.Sin(sunAngle)), 3, material.NewSun())
	s.AddSphere(core.NewVec3(2*math.Cos(-sunAngle), 0.3, 2*math.Sin(-sunAngle)), 0.3, material.NewEmissive(core.NewVec3(4, 2, 1)))

	return s
}
