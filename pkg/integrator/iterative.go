package integrator

import (
	"math"

	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/geometry"
)

// IterativeIntegrator traces a path in a loop, carrying the running
// attenuation product. Paths whose product has dimmed below Cutoff stop early.
type IterativeIntegrator struct {
	MaxDepth int
	Cutoff   float64
}

// NewIterativeIntegrator creates an iterative path tracer with the default cutoff
func NewIterativeIntegrator(maxDepth int) *IterativeIntegrator {
	return &IterativeIntegrator{MaxDepth: maxDepth, Cutoff: DefaultCutoff}
}

// RayColor computes the color for a single ray
func (ii *IterativeIntegrator) RayColor(ray core.Ray, world geometry.Hitable, sampler core.Sampler) core.Vec3 {
	color := white
	current := ray

	for bounce := 0; bounce < ii.MaxDepth; bounce++ {
		if color.Length() <= ii.Cutoff {
			return color
		}

		hit, isHit := world.Hit(current, ShadowEpsilon, math.Inf(1))
		if !isHit {
			return color.MultiplyVec(Background(current))
		}

		scatter := hit.Material.Scatter(current, hit, sampler)
		color = color.MultiplyVec(scatter.Attenuation)
		if !scatter.Continues {
			return color
		}
		current = scatter.Scattered
	}

	// Bounce budget spent with the path still open
	return core.Vec3{}
}
