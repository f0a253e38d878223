package integrator

import (
	"math"

	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/geometry"
)

// RecursiveIntegrator traces a path by recursing once per bounce
type RecursiveIntegrator struct {
	MaxDepth int
}

// NewRecursiveIntegrator creates a recursive path tracer
func NewRecursiveIntegrator(maxDepth int) *RecursiveIntegrator {
	return &RecursiveIntegrator{MaxDepth: maxDepth}
}

// RayColor computes the color for a single ray
func (ri *RecursiveIntegrator) RayColor(ray core.Ray, world geometry.Hitable, sampler core.Sampler) core.Vec3 {
	return ri.rayColor(ray, world, sampler, ri.MaxDepth)
}

func (ri *RecursiveIntegrator) rayColor(ray core.Ray, world geometry.Hitable, sampler core.Sampler, depth int) core.Vec3 {
	// If we've exceeded the ray bounce limit, no more light is gathered
	if depth <= 0 {
		return core.Vec3{}
	}

	hit, isHit := world.Hit(ray, ShadowEpsilon, math.Inf(1))
	if !isHit {
		return Background(ray)
	}

	scatter := hit.Material.Scatter(ray, hit, sampler)
	if !scatter.Continues {
		// Absorbed or emitted: the attenuation is the final contribution
		return scatter.Attenuation
	}

	return scatter.Attenuation.MultiplyVec(ri.rayColor(scatter.Scattered, world, sampler, depth-1))
}
