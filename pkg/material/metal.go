package material

import (
	"github.com/df07/go-pathtracer/pkg/core"
)

// NewMetal creates a new metal material
func NewMetal(albedo core.Vec3, fuzz float64) *Material {
	// Clamp fuzz to valid range
	if fuzz > 1.0 {
		fuzz = 1.0
	}
	if fuzz < 0.0 {
		fuzz = 0.0
	}
	return &Material{Kind: KindMetal, Albedo: albedo, Fuzz: fuzz}
}

// scatterMetal mirrors the incoming direction and perturbs it by the fuzz.
// Rays perturbed below the surface are absorbed.
func (m *Material) scatterMetal(rayIn core.Ray, hit HitRecord, sampler core.Sampler) ScatterResult {
	reflected := core.Reflect(rayIn.Direction.Normalize(), hit.Normal)
	if m.Fuzz > 0 {
		reflected = reflected.Add(core.SampleInUnitSphere(sampler).Multiply(m.Fuzz))
	}

	return ScatterResult{
		Attenuation: m.Albedo,
		Scattered:   core.NewRay(hit.Point, reflected),
		Continues:   reflected.Dot(hit.Normal) > 0,
	}
}
