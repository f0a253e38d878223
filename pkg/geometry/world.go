package geometry

import (
	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/material"
)

// World aggregates the bounded shapes in a KDTree with the unbounded
// planes, which are tested linearly.
type World struct {
	Bounded   *KDTree
	Unbounded []Hitable
}

// NewWorld builds the spatial index over bounded and keeps unbounded as a flat list
func NewWorld(bounded []Shape, unbounded []Hitable) *World {
	return &World{
		Bounded:   NewKDTree(bounded),
		Unbounded: unbounded,
	}
}

// Hit returns the nearest intersection across the index and the planes
func (w *World) Hit(ray core.Ray, tMin, tMax float64) (material.HitRecord, bool) {
	closest, hitAnything := w.Bounded.Hit(ray, tMin, tMax)
	closestSoFar := tMax
	if hitAnything {
		closestSoFar = closest.T
	}

	for _, item := range w.Unbounded {
		if hit, ok := item.Hit(ray, tMin, closestSoFar); ok {
			hitAnything = true
			closestSoFar = hit.T
			closest = hit
		}
	}

	return closest, hitAnything
}
