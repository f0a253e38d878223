package material

import (
	"github.com/df07/go-pathtracer/pkg/core"
)

// NewDielectric creates a clear dielectric material (e.g. 1.5 for glass)
func NewDielectric(refractiveIndex float64) *Material {
	return NewTintedDielectric(core.NewVec3(1, 1, 1), refractiveIndex)
}

// NewTintedDielectric creates a dielectric with a transmission color
func NewTintedDielectric(transmission core.Vec3, refractiveIndex float64) *Material {
	return &Material{Kind: KindDielectric, Albedo: transmission, RefractiveIndex: refractiveIndex}
}

// scatterDielectric chooses between reflection and refraction.
// The Schlick draw stands in for Fresnel energy splitting, so the
// attenuation is always the transmission color.
func (m *Material) scatterDielectric(rayIn core.Ray, hit HitRecord, sampler core.Sampler) ScatterResult {
	direction := rayIn.Direction
	reflected := core.Reflect(direction, hit.Normal)
	dotDir := direction.Dot(hit.Normal)

	// Determine if we're entering or exiting the material
	var outwardNormal core.Vec3
	var etaRatio, cosine float64
	if dotDir > 0 {
		outwardNormal = hit.Normal.Negate()
		etaRatio = m.RefractiveIndex
		cosine = m.RefractiveIndex * dotDir / direction.Length()
	} else {
		outwardNormal = hit.Normal
		etaRatio = 1.0 / m.RefractiveIndex
		cosine = -dotDir / direction.Length()
	}

	scattered := reflected
	if refracted, ok := core.Refract(direction, outwardNormal, etaRatio); ok {
		if sampler.Get1D() >= core.Schlick(cosine, m.RefractiveIndex) {
			scattered = refracted
		}
	}

	return ScatterResult{
		Attenuation: m.Albedo,
		Scattered:   core.NewRay(hit.Point, scattered),
		Continues:   true,
	}
}
