package core

import (
	"math/rand"
)

// Sampler provides random sampling for rendering algorithms.
// Each unit of render work owns one; samplers are never shared between goroutines.
type Sampler interface {
	Get1D() float64
	Get2D() (float64, float64)
	Get3D() Vec3
}

// RandomSampler wraps a standard Go random generator
type RandomSampler struct {
	random *rand.Rand
}

// NewRandomSampler creates a sampler from a Go random generator
func NewRandomSampler(random *rand.Rand) *RandomSampler {
	return &RandomSampler{random: random}
}

// NewSeededSampler creates a sampler with its own deterministic source
func NewSeededSampler(seed int64) *RandomSampler {
	return NewRandomSampler(rand.New(rand.NewSource(seed)))
}

// Get1D returns a random float64 in [0, 1)
func (r *RandomSampler) Get1D() float64 {
	return r.random.Float64()
}

// Get2D returns two random float64 values in [0, 1)
func (r *RandomSampler) Get2D() (float64, float64) {
	return r.random.Float64(), r.random.Float64()
}

// Get3D returns three random float64 values in [0, 1)
func (r *RandomSampler) Get3D() Vec3 {
	return NewVec3(r.random.Float64(), r.random.Float64(), r.random.Float64())
}

// SampleInUnitSphere generates a random point inside or on the unit sphere by rejection
func SampleInUnitSphere(sampler Sampler) Vec3 {
	for {
		p := sampler.Get3D().Multiply(2).Subtract(NewVec3(1, 1, 1))
		if p.LengthSquared() <= 1.0 {
			return p
		}
	}
}

// SampleUnitVector generates a random direction on the unit sphere
func SampleUnitVector(sampler Sampler) Vec3 {
	for {
		p := SampleInUnitSphere(sampler)
		if !p.NearZero() {
			return p.Normalize()
		}
	}
}

// SampleInUnitDisk generates a random point in the unit disk on the z=0 plane (for depth of field)
func SampleInUnitDisk(sampler Sampler) Vec3 {
	for {
		x, y := sampler.Get2D()
		p := NewVec3(2*x-1, 2*y-1, 0)
		if p.Dot(p) < 1.0 {
			return p
		}
	}
}
