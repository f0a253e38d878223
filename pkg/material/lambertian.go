package material

import (
	"github.com/df07/go-pathtracer/pkg/core"
)

// biasedSpread shrinks the random offset of the biased diffuse material,
// concentrating bounces around the normal.
const biasedSpread = 0.1

// NewLambertian creates a diffuse material
func NewLambertian(albedo core.Vec3) *Material {
	return &Material{Kind: KindDiffuse, Albedo: albedo}
}

// NewBiasedLambertian creates a diffuse material whose bounces stay close to the normal
func NewBiasedLambertian(albedo core.Vec3) *Material {
	return &Material{Kind: KindBiasedDiffuse, Albedo: albedo}
}

// scatterLambertian bounces towards normal + a point in the unit sphere,
// approximating a cosine-weighted hemisphere.
func (m *Material) scatterLambertian(hit HitRecord, sampler core.Sampler, spread float64) ScatterResult {
	target := hit.Normal.Add(core.SampleInUnitSphere(sampler).Multiply(spread))
	return ScatterResult{
		Attenuation: m.Albedo,
		Scattered:   core.NewRay(hit.Point, target),
		Continues:   true,
	}
}
