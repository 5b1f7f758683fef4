package geometry

import (
	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/material"
)

// Shape is the closed set of renderable primitives: *Sphere and *Triangle
type Shape interface {
	// Hit returns the nearest valid positive intersection time along the ray
	Hit(ray core.Ray) (float64, bool)
	// NormalAt returns the unit surface normal at point
	NormalAt(point core.Vec3) core.Vec3
	// Surface returns the shape's material coefficients
	Surface() material.Phong

	shape()
}

// Intersection is a ray hit: the time along the ray and the shape that was hit
type Intersection struct {
	T     float64
	Shape Shape
}
