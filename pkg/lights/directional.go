package lights

import (
	"fmt"

	"github.com/df07/go-whitted-raytracer/pkg/core"
)

// DirectionalLight is a light infinitely far away: every ray toward it is parallel
type DirectionalLight struct {
	Direction core.Vec3 // Direction FROM a shading point TOWARD the light; not required to be unit length
	Color     core.Vec3 // Emitted color, multiplied into the direct lighting term
}

// NewDirectionalLight creates a new directional light
func NewDirectionalLight(direction, color core.Vec3) DirectionalLight {
	return DirectionalLight{Direction: direction, Color: color}
}

// ShadowRay returns the occlusion test ray from point toward the light
func (l DirectionalLight) ShadowRay(point core.Vec3) core.Ray {
	return core.NewRay(point, l.Direction)
}

// Validate reports a light with no direction
func (l DirectionalLight) Validate() error {
	if l.Direction.IsZero() || !l.Direction.IsFinite() {
		return &core.GeometryError{Op: "light", Reason: fmt.Sprintf("direction %v has no usable orientation", l.Direction)}
	}
	return nil
}
