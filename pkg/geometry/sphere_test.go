package geometry

import (
	"math"
	"testing"

	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/material"
)

var testMaterial = material.NewLambertian(core.NewVec3(0.5, 0.5, 0.5))

func vecNear(a, b core.Vec3, tolerance float64) bool {
	return math.Abs(a.X-b.X) <= tolerance &&
		math.Abs(a.Y-b.Y) <= tolerance &&
		math.Abs(a.Z-b.Z) <= tolerance
}

func TestSphere_Hit_Miss(t *testing.T) {
	sphere := NewSphere(core.NewVec3(0, 0, 0), 1.0, testMaterial)
	ray := core.NewRay(core.NewVec3(2, 0, 0), core.NewVec3(0, 1, 0))

	hit, isHit := sphere.Hit(ray, 0.001, 1000.0)
	if isHit {
		t.Errorf("Expected miss, but got hit at t=%f", hit.T)
	}
}

func TestSphere_Hit_UnitExample(t *testing.T) {
	sphere := NewSphere(core.NewVec3(0, 0, -1), 0.5, testMaterial)
	ray := core.NewRay(core.NewVec3(0, 0, 0), core.NewVec3(0, 0, -1))

	hit, isHit := sphere.Hit(ray, 0.001, math.Inf(1))
	if !isHit {
		t.Fatal("Expected hit, but got miss")
	}
	if math.Abs(hit.T-0.5) > 1e-12 {
		t.Errorf("Expected t=0.5, got t=%f", hit.T)
	}
	if !hit.HasNormal || !vecNear(hit.Normal, core.NewVec3(0, 0, 1), 1e-12) {
		t.Errorf("Expected normal (0,0,1), got %v", hit.Normal)
	}
	if hit.Material != testMaterial {
		t.Error("Expected hit record to reference the sphere material")
	}
}

func TestSphere_Hit_NearAndFarRoot(t *testing.T) {
	sphere := NewSphere(core.NewVec3(0, 0, 0), 1.0, testMaterial)

	tests := []struct {
		name           string
		rayOrigin      core.Vec3
		rayDirection   core.Vec3
		expectedT      float64
		expectedNormal core.Vec3
	}{
		{
			name:           "outside uses near root",
			rayOrigin:      core.NewVec3(0, 0, 2),
			rayDirection:   core.NewVec3(0, 0, -1),
			expectedT:      1.0,
			expectedNormal: core.NewVec3(0, 0, 1),
		},
		{
			name:           "inside falls back to far root",
			rayOrigin:      core.NewVec3(0, 0, 0),
			rayDirection:   core.NewVec3(0, 0, 1),
			expectedT:      1.0,
			expectedNormal: core.NewVec3(0, 0, 1),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ray := core.NewRay(tt.rayOrigin, tt.rayDirection)
			hit, isHit := sphere.Hit(ray, 0.001, 1000.0)

			if !isHit {
				t.Fatal("Expected hit, but got miss")
			}
			if math.Abs(hit.T-tt.expectedT) > 1e-9 {
				t.Errorf("Expected t=%f, got t=%f", tt.expectedT, hit.T)
			}
			if !vecNear(hit.Normal, tt.expectedNormal, 1e-9) {
				t.Errorf("Expected normal %v, got %v", tt.expectedNormal, hit.Normal)
			}
		})
	}
}

func TestSphere_Hit_NegativeRadiusFlipsNormal(t *testing.T) {
	sphere := NewSphere(core.NewVec3(0, 0, 0), -1.0, testMaterial)
	ray := core.NewRay(core.NewVec3(0, 0, 2), core.NewVec3(0, 0, -1))

	hit, isHit := sphere.Hit(ray, 0.001, 1000.0)
	if !isHit {
		t.Fatal("Expected hit, but got miss")
	}
	if !vecNear(hit.Normal, core.NewVec3(0, 0, -1), 1e-9) {
		t.Errorf("Expected inward normal, got %v", hit.Normal)
	}

	box := sphere.BoundingBox()
	if !vecNear(box.Min, core.NewVec3(-1, -1, -1), 0) || !vecNear(box.Max, core.NewVec3(1, 1, 1), 0) {
		t.Errorf("Expected bounding box from |radius|, got %v", box)
	}
}

func TestSphere_Hit_GlancingHit(t *testing.T) {
	sphere := NewSphere(core.NewVec3(0, 0, 0), 1.0, testMaterial)
	ray := core.NewRay(core.NewVec3(1, 0, 2), core.NewVec3(0, 0, -1))

	hit, isHit := sphere.Hit(ray, 0.001, 1000.0)
	if !isHit {
		t.Fatal("Expected glancing hit, but got miss")
	}
	if !vecNear(hit.Point, core.NewVec3(1, 0, 0), 1e-9) {
		t.Errorf("Expected hit point (1,0,0), got %v", hit.Point)
	}
}

func TestSphere_Hit_Bounds(t *testing.T) {
	sphere := NewSphere(core.NewVec3(0, 0, 0), 1.0, testMaterial)
	ray := core.NewRay(core.NewVec3(0, 0, 2), core.NewVec3(0, 0, -1))

	hit, isHit := sphere.Hit(ray, 0.001, 0.5)
	if isHit {
		t.Errorf("Expected miss due to tMax bound, but got hit at t=%f", hit.T)
	}

	hit, isHit = sphere.Hit(ray, 3.5, 1000.0)
	if isHit {
		t.Errorf("Expected miss due to tMin bound, but got hit at t=%f", hit.T)
	}
}

func TestSphere_BoundingBox(t *testing.T) {
	sphere := NewSphere(core.NewVec3(1, 2, 3), 0.5, testMaterial)
	box := sphere.BoundingBox()

	if !vecNear(box.Min, core.NewVec3(0.5, 1.5, 2.5), 1e-12) {
		t.Errorf("Unexpected min corner %v", box.Min)
	}
	if !vecNear(box.Max, core.NewVec3(1.5, 2.5, 3.5), 1e-12) {
		t.Errorf("Unexpected max corner %v", box.Max)
	}
}
