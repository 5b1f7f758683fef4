package core

// Epsilon is the absolute tolerance below which an intersection time counts as zero
const Epsilon = 1e-8

// NearZero reports whether x is within Epsilon of zero
func NearZero(x float64) bool {
	return x >= -Epsilon && x <= Epsilon
}

// Ray represents a ray with an origin and a unit-length direction
type Ray struct {
	Origin    Vec3
	Direction Vec3
}

// NewRay creates a new ray, normalizing the direction
func NewRay(origin, direction Vec3) Ray {
	return Ray{Origin: origin, Direction: direction.Normalize()}
}

// At returns the point at parameter t along the ray
func (r Ray) At(t float64) Vec3 {
	return r.Origin.Add(r.Direction.Multiply(t))
}
