package integrator

import (
	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/geometry"
)

// ShadowEpsilon is the minimum hit distance for continuation rays.
// It keeps a bounced ray from re-hitting the surface it left.
const ShadowEpsilon = 0.001

// DefaultCutoff is the accumulated color magnitude below which the
// iterative integrator stops tracing
const DefaultCutoff = 0.02

// Integrator defines the interface for light transport algorithms
type Integrator interface {
	// RayColor estimates the radiance arriving along ray
	RayColor(ray core.Ray, world geometry.Hitable, sampler core.Sampler) core.Vec3
}

var (
	white   = core.NewVec3(1, 1, 1)
	skyBlue = core.NewVec3(0.5, 0.7, 1.0)
)

// Background returns the sky gradient seen by rays that escape the scene:
// white at the horizon blending to sky blue at the zenith
func Background(ray core.Ray) core.Vec3 {
	t := 0.5 * (ray.Direction.Normalize().Y + 1.0)
	return white.Multiply(1.0 - t).Add(skyBlue.Multiply(t))
}

// New returns the integrator with the given name ("iterative" or "recursive")
func New(name string, maxDepth int) (Integrator, bool) {
	switch name {
	case "iterative", "":
		return NewIterativeIntegrator(maxDepth), true
	case "recursive":
		return NewRecursiveIntegrator(maxDepth), true
	default:
		return nil, false
	}
}
