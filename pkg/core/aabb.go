package core

import "math"

// AABB represents an axis-aligned bounding box
type AABB struct {
	Min Vec3 // Minimum corner
	Max Vec3 // Maximum corner
}

// NewAABB creates a new AABB from min and max points
func NewAABB(min, max Vec3) AABB {
	return AABB{Min: min, Max: max}
}

// NewAABBFromPoints creates an AABB that bounds all given points
func NewAABBFromPoints(points ...Vec3) AABB {
	if len(points) == 0 {
		return AABB{}
	}

	box := AABB{Min: points[0], Max: points[0]}
	for _, point := range points[1:] {
		box.Min = box.Min.Min(point)
		box.Max = box.Max.Max(point)
	}
	return box
}

// Absorb returns the smallest AABB enclosing both this box and other
func (aabb AABB) Absorb(other AABB) AABB {
	return AABB{
		Min: aabb.Min.Min(other.Min),
		Max: aabb.Max.Max(other.Max),
	}
}

// Hit tests if a ray intersects with this AABB using the slab method.
// The box is hit when the entry distance is strictly before the exit distance.
func (aabb AABB) Hit(ray Ray, tMin, tMax float64) bool {
	for _, axis := range Axes {
		min := aabb.Min.Get(axis)
		max := aabb.Max.Get(axis)
		origin := ray.Origin.Get(axis)
		direction := ray.Direction.Get(axis)

		// Ray parallel to this slab: only the origin decides
		if direction == 0 {
			if origin < min || origin > max {
				return false
			}
			continue
		}

		invDirection := 1.0 / direction
		t1 := (min - origin) * invDirection
		t2 := (max - origin) * invDirection
		if t1 > t2 {
			t1, t2 = t2, t1
		}

		tMin = math.Max(tMin, t1)
		tMax = math.Min(tMax, t2)
		if tMin >= tMax {
			return false
		}
	}

	return true
}

// Center returns the center point of the AABB
func (aabb AABB) Center() Vec3 {
	return aabb.Min.Add(aabb.Max).Multiply(0.5)
}

// Size returns the size (extent) of the AABB along each axis
func (aabb AABB) Size() Vec3 {
	return aabb.Max.Subtract(aabb.Min)
}

// LongestAxis returns the axis with the longest extent
func (aabb AABB) LongestAxis() Axis {
	return aabb.Size().LongestAxis()
}

// IsValid returns true if min <= max for all axes
func (aabb AABB) IsValid() bool {
	return aabb.Min.X <= aabb.Max.X &&
		aabb.Min.Y <= aabb.Max.Y &&
		aabb.Min.Z <= aabb.Max.Z
}

// Contains reports whether other lies entirely inside this box
func (aabb AABB) Contains(other AABB) bool {
	return aabb.Min.X <= other.Min.X && aabb.Min.Y <= other.Min.Y && aabb.Min.Z <= other.Min.Z &&
		aabb.Max.X >= other.Max.X && aabb.Max.Y >= other.Max.Y && aabb.Max.Z >= other.Max.Z
}
