package integrator

import (
	"testing"

	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/geometry"
	"github.com/df07/go-pathtracer/pkg/material"
	"github.com/stretchr/testify/require"
)

func requireVecNear(t *testing.T, expected, got core.Vec3) {
	t.Helper()
	require.InDelta(t, expected.X, got.X, 1e-9)
	require.InDelta(t, expected.Y, got.Y, 1e-9)
	require.InDelta(t, expected.Z, got.Z, 1e-9)
}

func bothIntegrators(maxDepth int) map[string]Integrator {
	return map[string]Integrator{
		"recursive": NewRecursiveIntegrator(maxDepth),
		"iterative": NewIterativeIntegrator(maxDepth),
	}
}

// facingMirrors builds two perfect mirrors facing each other with nothing else
// around, so a ray between them bounces until the depth limit.
func facingMirrors() geometry.Hitable {
	mirror := material.NewMetal(core.NewVec3(1, 1, 1), 0)
	return geometry.NewWorld(nil, []geometry.Hitable{
		geometry.NewPlane(core.NewVec3(0, 0, -1), core.NewVec3(0, 0, 1), mirror),
		geometry.NewPlane(core.NewVec3(0, 0, 1), core.NewVec3(0, 0, -1), mirror),
	})
}

func TestBackground(t *testing.T) {
	tests := []struct {
		name      string
		direction core.Vec3
		expected  core.Vec3
	}{
		{"zenith", core.NewVec3(0, 1, 0), core.NewVec3(0.5, 0.7, 1.0)},
		{"nadir", core.NewVec3(0, -1, 0), core.NewVec3(1, 1, 1)},
		{"horizon", core.NewVec3(1, 0, 0), core.NewVec3(0.75, 0.85, 1.0)},
		{"unnormalized zenith", core.NewVec3(0, 10, 0), core.NewVec3(0.5, 0.7, 1.0)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Background(core.NewRay(core.NewVec3(0, 0, 0), tt.direction))
			requireVecNear(t, tt.expected, got)
		})
	}
}

func TestRayColor_DepthZeroIsBlack(t *testing.T) {
	world := geometry.NewWorld(nil, nil)
	ray := core.NewRay(core.NewVec3(0, 0, 0), core.NewVec3(0, 1, 0))

	for name, integrator := range bothIntegrators(0) {
		t.Run(name, func(t *testing.T) {
			require.Equal(t, core.Vec3{}, integrator.RayColor(ray, world, core.NewSeededSampler(42)))
		})
	}
}

func TestRayColor_MissReturnsBackground(t *testing.T) {
	world := geometry.NewWorld(nil, nil)
	ray := core.NewRay(core.NewVec3(0, 0, 0), core.NewVec3(0, 1, 0))

	for name, integrator := range bothIntegrators(5) {
		t.Run(name, func(t *testing.T) {
			requireVecNear(t, Background(ray), integrator.RayColor(ray, world, core.NewSeededSampler(42)))
		})
	}
}

func TestRayColor_EmissiveEndsPath(t *testing.T) {
	glow := core.NewVec3(4, 3, 2)
	world := geometry.NewWorld([]geometry.Shape{
		geometry.NewSphere(core.NewVec3(0, 0, -3), 1, material.NewEmissive(glow)),
	}, nil)
	ray := core.NewRay(core.NewVec3(0, 0, 0), core.NewVec3(0, 0, -1))

	for name, integrator := range bothIntegrators(5) {
		t.Run(name, func(t *testing.T) {
			requireVecNear(t, glow, integrator.RayColor(ray, world, core.NewSeededSampler(42)))
		})
	}
}

func TestRayColor_MirrorThenSky(t *testing.T) {
	albedo := core.NewVec3(0.8, 0.6, 0.4)
	world := geometry.NewWorld(nil, []geometry.Hitable{
		geometry.NewPlane(core.NewVec3(0, 0, 0), core.NewVec3(0, 1, 0), material.NewMetal(albedo, 0)),
	})

	// Straight down onto the mirror bounces straight up into the zenith
	ray := core.NewRay(core.NewVec3(0, 1, 0), core.NewVec3(0, -1, 0))
	expected := albedo.MultiplyVec(core.NewVec3(0.5, 0.7, 1.0))

	for name, integrator := range bothIntegrators(5) {
		t.Run(name, func(t *testing.T) {
			requireVecNear(t, expected, integrator.RayColor(ray, world, core.NewSeededSampler(42)))
		})
	}
}

func TestRayColor_BoundsProxyIsColorless(t *testing.T) {
	proxy := geometry.NewBoundsProxy(core.NewAABB(core.NewVec3(-1, -1, -4), core.NewVec3(1, 1, -2)))
	world := geometry.NewWorld([]geometry.Shape{proxy}, nil)
	ray := core.NewRay(core.NewVec3(0, 0, 0), core.NewVec3(0, 0, -1))

	for name, integrator := range bothIntegrators(5) {
		t.Run(name, func(t *testing.T) {
			requireVecNear(t, core.NewVec3(1, 1, 1), integrator.RayColor(ray, world, core.NewSeededSampler(42)))
		})
	}
}

func TestRayColor_FacingMirrorsExhaustDepth(t *testing.T) {
	world := facingMirrors()
	ray := core.NewRay(core.NewVec3(0, 0, 0), core.NewVec3(0, 0, -1))

	for name, integrator := range bothIntegrators(5) {
		t.Run(name, func(t *testing.T) {
			color := integrator.RayColor(ray, world, core.NewSeededSampler(42))
			require.True(t, color.IsFinite())
			require.Equal(t, core.Vec3{}, color)
		})
	}
}

func TestRayColor_FiniteAndNonNegative(t *testing.T) {
	world := geometry.NewWorld([]geometry.Shape{
		geometry.NewSphere(core.NewVec3(0, 1, 0), 1, material.NewDielectric(1.5)),
		geometry.NewSphere(core.NewVec3(0, 1, 0), -0.9, material.NewDielectric(1.5)),
		geometry.NewSphere(core.NewVec3(-2.5, 1, 0), 1, material.NewLambertian(core.NewVec3(0.4, 0.2, 0.1))),
		geometry.NewSphere(core.NewVec3(2.5, 1, 0), 1, material.NewMetal(core.NewVec3(0.7, 0.6, 0.5), 0.3)),
		geometry.NewSphere(core.NewVec3(0, 4, 0), 0.5, material.NewSun()),
	}, []geometry.Hitable{
		geometry.NewPlane(core.NewVec3(0, 0, 0), core.NewVec3(0, 1, 0), material.NewBiasedLambertian(core.NewVec3(0.5, 0.5, 0.5))),
	})

	for name, integrator := range bothIntegrators(10) {
		t.Run(name, func(t *testing.T) {
			sampler := core.NewSeededSampler(42)
			for i := 0; i < 2000; i++ {
				direction := core.SampleUnitVector(sampler)
				color := integrator.RayColor(core.NewRay(core.NewVec3(0, 2, 6), direction), world, sampler)
				require.True(t, color.IsFinite(), "color %v", color)
				require.GreaterOrEqual(t, color.X, 0.0)
				require.GreaterOrEqual(t, color.Y, 0.0)
				require.GreaterOrEqual(t, color.Z, 0.0)
			}
		})
	}
}

// countingWorld records how many intersection queries a path makes
type countingWorld struct {
	inner   geometry.Hitable
	queries int
}

func (c *countingWorld) Hit(ray core.Ray, tMin, tMax float64) (material.HitRecord, bool) {
	c.queries++
	return c.inner.Hit(ray, tMin, tMax)
}

func TestRayColor_NeverExceedsMaxDepth(t *testing.T) {
	for _, depth := range []int{1, 3, 7} {
		for name, integrator := range bothIntegrators(depth) {
			world := &countingWorld{inner: facingMirrors()}
			integrator.RayColor(core.NewRay(core.NewVec3(0, 0, 0), core.NewVec3(0, 0, -1)), world, core.NewSeededSampler(1))
			require.Equal(t, depth, world.queries, "%s depth %d", name, depth)
		}
	}
}

func TestIterative_CutoffStopsDimPaths(t *testing.T) {
	dark := material.NewMetal(core.NewVec3(0.01, 0.01, 0.01), 0)
	world := &countingWorld{inner: geometry.NewWorld(nil, []geometry.Hitable{
		geometry.NewPlane(core.NewVec3(0, 0, -1), core.NewVec3(0, 0, 1), dark),
		geometry.NewPlane(core.NewVec3(0, 0, 1), core.NewVec3(0, 0, -1), dark),
	})}

	integrator := NewIterativeIntegrator(50)
	color := integrator.RayColor(core.NewRay(core.NewVec3(0, 0, 0), core.NewVec3(0, 0, -1)), world, core.NewSeededSampler(1))

	// One bounce leaves |color| = 0.01*sqrt(3) < 0.02
	require.Equal(t, 1, world.queries)
	require.InDelta(t, 0.01, color.X, 1e-12)
	require.LessOrEqual(t, color.Length(), DefaultCutoff)
}

func TestNew(t *testing.T) {
	for _, name := range []string{"iterative", "recursive", ""} {
		integrator, ok := New(name, 10)
		require.True(t, ok, name)
		require.NotNil(t, integrator)
	}

	_, ok := New("bdpt", 10)
	require.False(t, ok)
}
