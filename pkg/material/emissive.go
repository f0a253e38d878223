package material

import (
	"github.com/df07/go-pathtracer/pkg/core"
)

// NewEmissive creates a material that ends paths with its glow color
func NewEmissive(glow core.Vec3) *Material {
	return &Material{Kind: KindEmissive, Albedo: glow}
}

// NewSun creates the warm white sun material
func NewSun() *Material {
	return &Material{Kind: KindSun}
}
