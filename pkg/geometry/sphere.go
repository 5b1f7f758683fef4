package geometry

import (
	"fmt"
	"math"

	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/material"
)

// Sphere represents a sphere shape
type Sphere struct {
	Center   core.Vec3
	Radius   float64
	Material material.Phong
}

// NewSphere creates a new sphere
func NewSphere(center core.Vec3, radius float64, mat material.Phong) *Sphere {
	return &Sphere{
		Center:   center,
		Radius:   radius,
		Material: mat,
	}
}

func (s *Sphere) shape() {}

// Hit tests if a ray intersects with the sphere using the geometric construction:
// project the center onto the ray, then step back (outside) or forward (inside) by the half chord.
func (s *Sphere) Hit(ray core.Ray) (float64, bool) {
	oc := s.Center.Subtract(ray.Origin)
	ocLength := oc.Length()
	inside := ocLength < s.Radius

	// Distance along the ray to the point closest to the center
	tCa := ray.Direction.Dot(oc)
	if tCa < 0 && !inside {
		return 0, false
	}

	// Squared half chord length
	tHc2 := s.Radius*s.Radius - ocLength*ocLength + tCa*tCa
	if tHc2 < 0 {
		return 0, false
	}
	tHc := math.Sqrt(tHc2)

	var t float64
	if inside {
		t = tCa + tHc
	} else {
		t = tCa - tHc
	}

	// Rays leaving the surface would otherwise hit it again at t≈0
	if core.NearZero(t) {
		return 0, false
	}
	return t, true
}

// NormalAt returns the outward normal for a point on the sphere surface
func (s *Sphere) NormalAt(point core.Vec3) core.Vec3 {
	return point.Subtract(s.Center).Multiply(1.0 / s.Radius)
}

// Surface returns the sphere's material
func (s *Sphere) Surface() material.Phong {
	return s.Material
}

// Validate reports a non-positive or non-finite radius
func (s *Sphere) Validate() error {
	if !s.Center.IsFinite() {
		return &core.GeometryError{Op: "sphere", Reason: fmt.Sprintf("center %v is not finite", s.Center)}
	}
	if !(s.Radius > 0) || math.IsInf(s.Radius, 0) {
		return &core.GeometryError{Op: "sphere", Reason: fmt.Sprintf("radius %g must be positive and finite", s.Radius)}
	}
	return nil
}
