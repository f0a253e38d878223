package material

import (
	"github.com/df07/go-pathtracer/pkg/core"
)

// Kind enumerates the closed set of scattering behaviors
type Kind int

const (
	KindDiffuse Kind = iota
	KindBiasedDiffuse
	KindMetal
	KindDielectric
	KindEmissive
	KindInvisible
	KindSun
)

var kindNames = map[Kind]string{
	KindDiffuse:       "diffuse",
	KindBiasedDiffuse: "biased-diffuse",
	KindMetal:         "metal",
	KindDielectric:    "dielectric",
	KindEmissive:      "emissive",
	KindInvisible:     "invisible",
	KindSun:           "sun",
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return "unknown"
}

// ParseKind returns the kind with the given name
func ParseKind(name string) (Kind, bool) {
	for k, n := range kindNames {
		if n == name {
			return k, true
		}
	}
	return 0, false
}

// Material is a tagged union over the scattering behaviors.
// Only the fields relevant to Kind are meaningful. Materials are read-only
// once constructed and shared by every hit that references them.
type Material struct {
	Kind            Kind
	Albedo          core.Vec3 // diffuse/metal albedo, dielectric transmission or emitted glow
	Fuzz            float64   // metal roughness in [0, 1]
	RefractiveIndex float64   // dielectric index of refraction
}

// ScatterResult contains the result of material scattering.
// Continues is false when the path ends here, by absorption or emission.
type ScatterResult struct {
	Attenuation core.Vec3 // Color attenuation, or emitted color when the path ends
	Scattered   core.Ray  // The continuation ray, valid only when Continues is set
	Continues   bool
}

// HitRecord contains information about a ray-object intersection
type HitRecord struct {
	Point     core.Vec3 // Point of intersection
	Normal    core.Vec3 // Surface normal at intersection
	HasNormal bool      // False for bounding proxies that are not real geometry
	T         float64   // Parameter t along the ray
	Material  *Material // Material of the hit object
}

var (
	white = core.NewVec3(1, 1, 1)

	// SunColor is the attenuation returned by the sun material
	SunColor = core.NewVec3(1.0, 0.9, 0.95)

	// Invisible is shared by bounding proxies; it ends the path without tinting it
	Invisible = &Material{Kind: KindInvisible}

	noScatter = ScatterResult{Attenuation: white}
)

// Scatter computes the material's stochastic response to rayIn at hit.
func (m *Material) Scatter(rayIn core.Ray, hit HitRecord, sampler core.Sampler) ScatterResult {
	if !hit.HasNormal {
		return noScatter
	}

	var result ScatterResult
	switch m.Kind {
	case KindDiffuse:
		result = m.scatterLambertian(hit, sampler, 1.0)
	case KindBiasedDiffuse:
		result = m.scatterLambertian(hit, sampler, biasedSpread)
	case KindMetal:
		result = m.scatterMetal(rayIn, hit, sampler)
	case KindDielectric:
		result = m.scatterDielectric(rayIn, hit, sampler)
	case KindEmissive:
		return ScatterResult{Attenuation: m.Albedo}
	case KindSun:
		return ScatterResult{Attenuation: SunColor}
	default:
		return noScatter
	}

	// Degenerate directions fall back to the surface normal
	if result.Continues && result.Scattered.Direction.NearZero() {
		result.Scattered.Direction = hit.Normal
	}
	return result
}
