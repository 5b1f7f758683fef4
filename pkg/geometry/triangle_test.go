package geometry

import (
	"math"
	"testing"

	"github.com/df07/go-whitted-raytracer/pkg/core"
)

func TestTriangle_Hit(t *testing.T) {
	// Counter-clockwise seen from +Z
	v1 := core.NewVec3(0, 0, 0)
	v2 := core.NewVec3(1, 0, 0)
	v3 := core.NewVec3(0, 1, 0)
	triangle := NewTriangle(v1, v2, v3, testMaterial())

	tests := []struct {
		name      string
		ray       core.Ray
		shouldHit bool
		expectedT float64
	}{
		{
			name:      "Ray hits triangle centroid",
			ray:       core.NewRay(core.NewVec3(1.0/3, 1.0/3, 1), core.NewVec3(0, 0, -1)),
			shouldHit: true,
			expectedT: 1.0,
		},
		{
			name:      "Ray hits centroid from behind",
			ray:       core.NewRay(core.NewVec3(1.0/3, 1.0/3, -2), core.NewVec3(0, 0, 1)),
			shouldHit: true,
			expectedT: 2.0,
		},
		{
			name:      "Oblique ray hits centroid",
			ray:       core.NewRay(core.NewVec3(1.0/3+1, 1.0/3, 1), core.NewVec3(-1, 0, -1)),
			shouldHit: true,
			expectedT: math.Sqrt2,
		},
		{
			name:      "Ray misses past the hypotenuse",
			ray:       core.NewRay(core.NewVec3(0.75, 0.75, 1), core.NewVec3(0, 0, -1)),
			shouldHit: false,
		},
		{
			name:      "Ray misses left of v1-v3 edge",
			ray:       core.NewRay(core.NewVec3(-0.1, 0.5, 1), core.NewVec3(0, 0, -1)),
			shouldHit: false,
		},
		{
			name:      "Ray misses below v1-v2 edge",
			ray:       core.NewRay(core.NewVec3(0.5, -0.1, 1), core.NewVec3(0, 0, -1)),
			shouldHit: false,
		},
		{
			name:      "Ray parallel to triangle",
			ray:       core.NewRay(core.NewVec3(0.25, 0.25, 1), core.NewVec3(1, 0, 0)),
			shouldHit: false,
		},
		{
			name:      "Triangle behind the ray",
			ray:       core.NewRay(core.NewVec3(0.25, 0.25, -1), core.NewVec3(0, 0, -1)),
			shouldHit: false,
		},
		{
			name:      "Ray starting on the triangle",
			ray:       core.NewRay(core.NewVec3(0.25, 0.25, 0), core.NewVec3(0, 0, 1)),
			shouldHit: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			hitT, isHit := triangle.Hit(tt.ray)

			if isHit != tt.shouldHit {
				t.Fatalf("Expected hit=%v, got hit=%v (t=%f)", tt.shouldHit, isHit, hitT)
			}
			if tt.shouldHit && math.Abs(hitT-tt.expectedT) > 1e-9 {
				t.Errorf("Expected t=%f, got t=%f", tt.expectedT, hitT)
			}
		})
	}
}

func TestTriangle_ReversedWinding(t *testing.T) {
	v1 := core.NewVec3(0, 0, 0)
	v2 := core.NewVec3(2, 0, 0)
	v3 := core.NewVec3(0, 2, 0)
	ccw := NewTriangle(v1, v2, v3, testMaterial())
	cw := NewTriangle(v1, v3, v2, testMaterial())

	if ccw.NormalAt(v1) != core.NewVec3(0, 0, 1) {
		t.Errorf("Expected +Z normal, got %v", ccw.NormalAt(v1))
	}
	if cw.NormalAt(v1) != core.NewVec3(0, 0, -1) {
		t.Errorf("Expected -Z normal for reversed winding, got %v", cw.NormalAt(v1))
	}

	rays := []core.Ray{
		core.NewRay(core.NewVec3(0.5, 0.5, 3), core.NewVec3(0, 0, -1)),
		core.NewRay(core.NewVec3(1.5, 1.5, 3), core.NewVec3(0, 0, -1)),
		core.NewRay(core.NewVec3(0.2, 1.2, -3), core.NewVec3(0, 0, 1)),
		core.NewRay(core.NewVec3(-1, -1, 3), core.NewVec3(0, 0, -1)),
		core.NewRay(core.NewVec3(3, 3, 3), core.NewVec3(-1, -1, -1)),
	}

	for i, ray := range rays {
		tA, hitA := ccw.Hit(ray)
		tB, hitB := cw.Hit(ray)
		if hitA != hitB {
			t.Errorf("Ray %d: winding changed the outcome (ccw=%v, cw=%v)", i, hitA, hitB)
		}
		if hitA && math.Abs(tA-tB) > 1e-12 {
			t.Errorf("Ray %d: winding changed the hit time (%f vs %f)", i, tA, tB)
		}
	}
}

func TestTriangle_Degenerate(t *testing.T) {
	collinear := NewTriangle(
		core.NewVec3(0, 0, 0),
		core.NewVec3(1, 1, 1),
		core.NewVec3(2, 2, 2),
		testMaterial(),
	)

	if !collinear.IsDegenerate() {
		t.Error("Expected collinear vertices to be degenerate")
	}

	ray := core.NewRay(core.NewVec3(1, 1, 5), core.NewVec3(0, 0, -1))
	if _, isHit := collinear.Hit(ray); isHit {
		t.Error("Expected a degenerate triangle never to be hit")
	}

	valid := NewTriangle(core.NewVec3(0, 0, 0), core.NewVec3(1, 0, 0), core.NewVec3(0, 1, 0), testMaterial())
	if valid.IsDegenerate() {
		t.Error("Expected a proper triangle not to be degenerate")
	}
}

func TestTriangle_NormalIsConstant(t *testing.T) {
	triangle := NewTriangle(core.NewVec3(0, 0, 0), core.NewVec3(0, 0, 1), core.NewVec3(0, 1, 0), testMaterial())

	a := triangle.NormalAt(core.NewVec3(0, 0.1, 0.1))
	b := triangle.NormalAt(core.NewVec3(100, -3, 7))
	if a != b {
		t.Errorf("Expected the same normal everywhere, got %v and %v", a, b)
	}
	if math.Abs(a.Length()-1) > 1e-12 {
		t.Errorf("Expected unit normal, got length %f", a.Length())
	}
}
