package scene

import (
	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/geometry"
	"github.com/df07/go-pathtracer/pkg/material"
	"github.com/df07/go-pathtracer/pkg/renderer"
)

// Scene contains all the elements needed for rendering
type Scene struct {
	Name         string
	CameraConfig renderer.CameraConfig
	Shapes       []geometry.Shape   // Bounded objects, indexed by the KD-tree
	Planes       []geometry.Hitable // Unbounded objects, tested linearly
}

// New creates an empty scene with the given camera
func New(name string, cameraConfig renderer.CameraConfig) *Scene {
	return &Scene{Name: name, CameraConfig: cameraConfig}
}

// AddSphere adds a sphere to the scene
func (s *Scene) AddSphere(center core.Vec3, radius float64, mat *material.Material) {
	s.Shapes = append(s.Shapes, geometry.NewSphere(center, radius, mat))
}

// AddPlane adds an infinite plane to the scene
func (s *Scene) AddPlane(point, normal core.Vec3, mat *material.Material) {
	s.Planes = append(s.Planes, geometry.NewPlane(point, normal, mat))
}

// PrimitiveCount returns the number of spheres and planes in the scene
func (s *Scene) PrimitiveCount() int {
	return len(s.Shapes) + len(s.Planes)
}

// World builds the spatial index over the scene. With showBounds every
// leaf box of the index is added as an invisible proxy so it shows up
// in the render.
func (s *Scene) World(showBounds bool) *geometry.World {
	world := geometry.NewWorld(s.Shapes, s.Planes)
	if !showBounds {
		return world
	}

	shapes := make([]geometry.Shape, 0, len(s.Shapes))
	shapes = append(shapes, s.Shapes...)
	for _, box := range world.Bounded.LeafBounds() {
		shapes = append(shapes, geometry.NewBoundsProxy(box))
	}
	return geometry.NewWorld(shapes, s.Planes)
}
