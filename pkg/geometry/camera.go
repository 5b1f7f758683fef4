package geometry

import (
	"fmt"
	"math"

	"github.com/df07/go-whitted-raytracer/pkg/core"
)

// Camera is a pinhole camera with an orthonormal basis derived from look-at/look-from/look-up
type Camera struct {
	LookAt   core.Vec3
	LookFrom core.Vec3
	LookUp   core.Vec3
	FOV      float64 // Field of view in degrees

	N core.Vec3 // Unit vector from the target back toward the eye
	U core.Vec3 // Unit right vector
	V core.Vec3 // Unit up vector
}

// NewCamera builds the camera basis. It fails when the eye and target coincide,
// when look up is parallel to the view direction, or when the field of view is outside (0, 90).
func NewCamera(lookAt, lookFrom, lookUp core.Vec3, fov float64) (*Camera, error) {
	if math.IsNaN(fov) || fov <= 0 || fov >= 90 {
		return nil, &core.GeometryError{Op: "camera", Reason: fmt.Sprintf("field of view %g must be in (0, 90) degrees", fov)}
	}

	n := lookFrom.Subtract(lookAt)
	if n.IsZero() {
		return nil, &core.GeometryError{Op: "camera", Reason: "look from and look at are the same point"}
	}
	n = n.Normalize()

	u := lookUp.Cross(n)
	if u.IsZero() {
		return nil, &core.GeometryError{Op: "camera", Reason: "look up is parallel to the view direction"}
	}
	u = u.Normalize()
	v := n.Cross(u).Normalize()

	return &Camera{
		LookAt:   lookAt,
		LookFrom: lookFrom,
		LookUp:   lookUp,
		FOV:      fov,
		N:        n,
		U:        u,
		V:        v,
	}, nil
}

// Forward returns the unit viewing direction
func (c *Camera) Forward() core.Vec3 {
	return c.N.Negate()
}
