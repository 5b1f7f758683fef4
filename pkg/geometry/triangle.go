package geometry

import (
	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/material"
)

// Triangle represents a single triangle defined by three vertices in counter-clockwise order
type Triangle struct {
	V1, V2, V3 core.Vec3      // The three vertices
	Material   material.Phong // Material of the triangle

	e1, e2, e3 core.Vec3 // Cached edges v1→v2, v2→v3, v3→v1
	normal     core.Vec3 // Cached unit face normal
	d          float64   // Plane offset: normal·v1
}

// NewTriangle creates a new triangle from three vertices.
// Collinear vertices produce a zero normal, and such a triangle is never hit.
func NewTriangle(v1, v2, v3 core.Vec3, mat material.Phong) *Triangle {
	t := &Triangle{
		V1:       v1,
		V2:       v2,
		V3:       v3,
		Material: mat,
	}

	// Precompute edges and the plane for the intersection test
	t.e1 = v2.Subtract(v1)
	t.e2 = v3.Subtract(v2)
	t.e3 = v1.Subtract(v3)
	t.normal = t.e1.Cross(t.e3.Negate()).Normalize()
	t.d = t.normal.Dot(v1)

	return t
}

func (t *Triangle) shape() {}

// Hit intersects the ray with the triangle's plane, then checks the hit point lies inside all three edges
func (t *Triangle) Hit(ray core.Ray) (float64, bool) {
	denom := t.normal.Dot(ray.Direction)
	if denom == 0 {
		return 0, false
	}

	tHit := (t.d - t.normal.Dot(ray.Origin)) / denom
	if tHit < 0 || core.NearZero(tHit) {
		return 0, false
	}
	p := ray.At(tHit)

	if t.e1.Cross(p.Subtract(t.V1)).Dot(t.normal) < 0 ||
		t.e2.Cross(p.Subtract(t.V2)).Dot(t.normal) < 0 ||
		t.e3.Cross(p.Subtract(t.V3)).Dot(t.normal) < 0 {
		return 0, false
	}
	return tHit, true
}

// NormalAt returns the face normal; it does not depend on the point
func (t *Triangle) NormalAt(point core.Vec3) core.Vec3 {
	return t.normal
}

// Surface returns the triangle's material
func (t *Triangle) Surface() material.Phong {
	return t.Material
}

// IsDegenerate reports whether the vertices are collinear
func (t *Triangle) IsDegenerate() bool {
	return t.normal.IsZero() || !t.normal.IsFinite()
}
