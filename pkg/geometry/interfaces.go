package geometry

import (
	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/material"
)

// Hitable is anything a ray can be tested against
type Hitable interface {
	Hit(ray core.Ray, tMin, tMax float64) (material.HitRecord, bool)
}

// Boxable is anything with a finite axis-aligned bounding box
type Boxable interface {
	BoundingBox() core.AABB
}

// Shape is a bounded primitive that can live in a KDTree
type Shape interface {
	Hitable
	Boxable
}
