package geometry

import (
	"math"

	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/material"
)

// BoundsProxy exposes a bounding box as renderable geometry.
// Its hits carry no normal, so materials treat them as invisible helpers.
type BoundsProxy struct {
	Box core.AABB
}

// NewBoundsProxy wraps box as a shape
func NewBoundsProxy(box core.AABB) *BoundsProxy {
	return &BoundsProxy{Box: box}
}

// Hit returns the entry point of the ray into the box
func (b *BoundsProxy) Hit(ray core.Ray, tMin, tMax float64) (material.HitRecord, bool) {
	enter, ok := slabEntry(b.Box, ray, tMin, tMax)
	if !ok {
		return material.HitRecord{}, false
	}
	return material.HitRecord{
		Point:    ray.At(enter),
		T:        enter,
		Material: material.Invisible,
	}, true
}

// BoundingBox returns the wrapped box
func (b *BoundsProxy) BoundingBox() core.AABB {
	return b.Box
}

// slabEntry returns the parametric entry distance of the ray into box
func slabEntry(box core.AABB, ray core.Ray, tMin, tMax float64) (float64, bool) {
	if !box.Hit(ray, tMin, tMax) {
		return 0, false
	}

	enter := tMin
	for _, axis := range core.Axes {
		direction := ray.Direction.Get(axis)
		if direction == 0 {
			continue
		}
		origin := ray.Origin.Get(axis)
		t1 := (box.Min.Get(axis) - origin) / direction
		t2 := (box.Max.Get(axis) - origin) / direction
		enter = math.Max(enter, math.Min(t1, t2))
	}
	return enter, true
}
