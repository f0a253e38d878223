package geometry

import (
	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/material"
)

// Plane represents an infinite plane defined by a point and normal.
// Planes have no finite bounds, so they live outside the KDTree.
type Plane struct {
	Point    core.Vec3 // A point on the plane
	Normal   core.Vec3 // Normal vector
	Material *material.Material
}

// NewPlane creates a new plane
func NewPlane(point, normal core.Vec3, mat *material.Material) *Plane {
	return &Plane{
		Point:    point,
		Normal:   normal.Normalize(),
		Material: mat,
	}
}

// Hit tests if a ray intersects with the plane
func (p *Plane) Hit(ray core.Ray, tMin, tMax float64) (material.HitRecord, bool) {
	denominator := ray.Direction.Dot(p.Normal)

	// Ray is parallel to the plane
	if denominator == 0 {
		return material.HitRecord{}, false
	}

	// t = (point_on_plane - ray_origin) · normal / (ray_direction · normal)
	t := p.Point.Subtract(ray.Origin).Dot(p.Normal) / denominator
	if t < tMin || t > tMax {
		return material.HitRecord{}, false
	}

	return material.HitRecord{
		Point:     ray.At(t),
		Normal:    p.Normal,
		HasNormal: true,
		T:         t,
		Material:  p.Material,
	}, true
}
