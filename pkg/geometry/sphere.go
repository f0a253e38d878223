package geometry

import (
	"math"

	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/material"
)

// Sphere represents a sphere shape.
// A negative radius flips the normals inward, which makes hollow glass shells.
type Sphere struct {
	Center   core.Vec3
	Radius   float64
	Material *material.Material
}

// NewSphere creates a new sphere
func NewSphere(center core.Vec3, radius float64, mat *material.Material) *Sphere {
	return &Sphere{
		Center:   center,
		Radius:   radius,
		Material: mat,
	}
}

// Hit tests if a ray intersects with the sphere
func (s *Sphere) Hit(ray core.Ray, tMin, tMax float64) (material.HitRecord, bool) {
	// Vector from sphere center to ray origin
	oc := ray.Origin.Subtract(s.Center)

	// Quadratic equation coefficients: at² + 2bt + c = 0
	a := ray.Direction.Dot(ray.Direction)
	halfB := oc.Dot(ray.Direction)
	c := oc.Dot(oc) - s.Radius*s.Radius

	discriminant := halfB*halfB - a*c
	if discriminant < 0 || a == 0 {
		return material.HitRecord{}, false
	}

	sqrtD := math.Sqrt(discriminant)

	// Try the closer intersection point first, the far one covers rays starting inside
	root := (-halfB - sqrtD) / a
	if root < tMin || root > tMax {
		root = (-halfB + sqrtD) / a
		if root < tMin || root > tMax {
			return material.HitRecord{}, false
		}
	}

	point := ray.At(root)
	return material.HitRecord{
		Point:     point,
		Normal:    point.Subtract(s.Center).Divide(s.Radius),
		HasNormal: true,
		T:         root,
		Material:  s.Material,
	}, true
}

// BoundingBox returns the axis-aligned bounding box for this sphere
func (s *Sphere) BoundingBox() core.AABB {
	r := math.Abs(s.Radius)
	radius := core.NewVec3(r, r, r)
	return core.NewAABB(
		s.Center.Subtract(radius),
		s.Center.Add(radius),
	)
}
