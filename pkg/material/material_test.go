package material

import (
	"math"
	"math/rand"
	"testing"

	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/stretchr/testify/require"
)

func newTestSampler() core.Sampler {
	return core.NewRandomSampler(rand.New(rand.NewSource(42)))
}

// constSampler always returns the same value, which lets tests force the
// dielectric reflect/refract choice.
type constSampler float64

func (c constSampler) Get1D() float64            { return float64(c) }
func (c constSampler) Get2D() (float64, float64) { return float64(c), float64(c) }
func (c constSampler) Get3D() core.Vec3 {
	return core.NewVec3(float64(c), float64(c), float64(c))
}

func upHit(m *Material) HitRecord {
	return HitRecord{
		Point:     core.NewVec3(0, 0, 0),
		Normal:    core.NewVec3(0, 1, 0),
		HasNormal: true,
		T:         1,
		Material:  m,
	}
}

func TestNewMetal_FuzzClamp(t *testing.T) {
	tests := []struct {
		name     string
		input    float64
		expected float64
	}{
		{"Valid fuzz 0.0", 0.0, 0.0},
		{"Valid fuzz 0.5", 0.5, 0.5},
		{"Valid fuzz 1.0", 1.0, 1.0},
		{"Clamp above 1.0", 1.5, 1.0},
		{"Clamp below 0.0", -0.5, 0.0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			metal := NewMetal(core.NewVec3(0.8, 0.8, 0.8), tt.input)
			require.Equal(t, tt.expected, metal.Fuzz)
		})
	}
}

func TestScatter_NoNormalIsColorless(t *testing.T) {
	materials := []*Material{
		NewLambertian(core.NewVec3(0.5, 0.1, 0.1)),
		NewMetal(core.NewVec3(0.5, 0.5, 0.5), 0.2),
		NewDielectric(1.5),
		NewEmissive(core.NewVec3(4, 4, 4)),
		Invisible,
	}

	for _, m := range materials {
		t.Run(m.Kind.String(), func(t *testing.T) {
			hit := upHit(m)
			hit.HasNormal = false

			result := m.Scatter(core.NewRay(core.NewVec3(0, 1, 0), core.NewVec3(0, -1, 0)), hit, newTestSampler())
			require.False(t, result.Continues)
			require.Equal(t, core.NewVec3(1, 1, 1), result.Attenuation)
		})
	}
}

func TestLambertian_ScatterAboveSurface(t *testing.T) {
	albedo := core.NewVec3(0.7, 0.3, 0.2)
	m := NewLambertian(albedo)
	sampler := newTestSampler()
	rayIn := core.NewRay(core.NewVec3(0, 1, 0), core.NewVec3(0, -1, 0))

	for i := 0; i < 1000; i++ {
		result := m.Scatter(rayIn, upHit(m), sampler)
		require.True(t, result.Continues)
		require.Equal(t, albedo, result.Attenuation)
		require.Equal(t, core.NewVec3(0, 0, 0), result.Scattered.Origin)
		// normal + point in the unit sphere never points below the surface
		require.GreaterOrEqual(t, result.Scattered.Direction.Y, 0.0)
	}
}

func TestBiasedLambertian_StaysNearNormal(t *testing.T) {
	m := NewBiasedLambertian(core.NewVec3(0.5, 0.5, 0.5))
	sampler := newTestSampler()
	rayIn := core.NewRay(core.NewVec3(0, 1, 0), core.NewVec3(0, -1, 0))

	for i := 0; i < 200; i++ {
		result := m.Scatter(rayIn, upHit(m), sampler)
		require.True(t, result.Continues)
		require.InDelta(t, 0, result.Scattered.Direction.Subtract(core.NewVec3(0, 1, 0)).Length(), 0.1+1e-9)
	}
}

func TestMetal_PerfectReflection(t *testing.T) {
	albedo := core.NewVec3(0.9, 0.9, 0.9)
	m := NewMetal(albedo, 0.0)

	rayIn := core.NewRay(core.NewVec3(-1, 1, 0), core.NewVec3(1, -1, 0))
	result := m.Scatter(rayIn, upHit(m), newTestSampler())

	require.True(t, result.Continues)
	require.Equal(t, albedo, result.Attenuation)

	expected := core.NewVec3(1, 1, 0).Normalize()
	require.InDelta(t, expected.X, result.Scattered.Direction.X, 1e-9)
	require.InDelta(t, expected.Y, result.Scattered.Direction.Y, 1e-9)
	require.InDelta(t, expected.Z, result.Scattered.Direction.Z, 1e-9)
}

func TestMetal_PerturbedBelowSurfaceIsAbsorbed(t *testing.T) {
	albedo := core.NewVec3(0.8, 0.6, 0.2)
	m := NewMetal(albedo, 1.0)

	// grazing ray: reflection is almost tangent so heavy fuzz often pushes it below
	rayIn := core.NewRay(core.NewVec3(-1, 0.01, 0), core.NewVec3(1, -0.01, 0))
	sampler := newTestSampler()

	absorbed := 0
	for i := 0; i < 1000; i++ {
		result := m.Scatter(rayIn, upHit(m), sampler)
		require.Equal(t, albedo, result.Attenuation)
		if !result.Continues {
			absorbed++
			continue
		}
		require.Greater(t, result.Scattered.Direction.Dot(core.NewVec3(0, 1, 0)), 0.0)
	}
	require.Greater(t, absorbed, 0)
}

func TestDielectric_ReflectOrRefract(t *testing.T) {
	m := NewDielectric(1.5)
	rayIn := core.NewRay(core.NewVec3(0, 1, 0), core.NewVec3(0.3, -1, 0))

	// a high draw always beats the Schlick reflectance, so the ray refracts
	refracted := m.Scatter(rayIn, upHit(m), constSampler(0.99))
	require.True(t, refracted.Continues)
	require.Equal(t, core.NewVec3(1, 1, 1), refracted.Attenuation)
	require.Less(t, refracted.Scattered.Direction.Y, 0.0)

	// entering glass bends the ray towards the normal
	inSin := math.Abs(rayIn.Direction.Normalize().X)
	outSin := math.Abs(refracted.Scattered.Direction.Normalize().X)
	require.InDelta(t, inSin/1.5, outSin, 1e-9)

	// a zero draw is always below the reflectance, so the ray reflects
	reflected := m.Scatter(rayIn, upHit(m), constSampler(0))
	require.Greater(t, reflected.Scattered.Direction.Y, 0.0)
}

func TestDielectric_TotalInternalReflection(t *testing.T) {
	m := NewTintedDielectric(core.NewVec3(0.9, 1, 0.9), 1.5)

	// leaving the glass at a steep angle: sin(theta) * 1.5 > 1
	rayIn := core.NewRay(core.NewVec3(0, -1, 0), core.NewVec3(1, 0.2, 0))
	result := m.Scatter(rayIn, upHit(m), constSampler(0.99))

	require.True(t, result.Continues)
	require.Equal(t, core.NewVec3(0.9, 1, 0.9), result.Attenuation)
	require.Less(t, result.Scattered.Direction.Y, 0.0)
}

func TestTerminalMaterials(t *testing.T) {
	tests := []struct {
		name        string
		material    *Material
		attenuation core.Vec3
	}{
		{"emissive", NewEmissive(core.NewVec3(4, 3, 2)), core.NewVec3(4, 3, 2)},
		{"invisible", Invisible, core.NewVec3(1, 1, 1)},
		{"sun", NewSun(), SunColor},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rayIn := core.NewRay(core.NewVec3(0, 1, 0), core.NewVec3(0, -1, 0))
			result := tt.material.Scatter(rayIn, upHit(tt.material), newTestSampler())
			require.False(t, result.Continues)
			require.Equal(t, tt.attenuation, result.Attenuation)
		})
	}
}

func TestParseKind(t *testing.T) {
	for kind, name := range kindNames {
		parsed, ok := ParseKind(name)
		require.True(t, ok)
		require.Equal(t, kind, parsed)
	}

	_, ok := ParseKind("velvet")
	require.False(t, ok)
}
