package renderer

import (
	"math"

	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/geometry"
)

// Projection generates one primary ray per pixel for a camera and resolution
type Projection struct {
	origin   core.Vec3
	scaleX   core.Vec3 // World-space step per pixel along u
	scaleY   core.Vec3 // World-space step per pixel along v
	constant core.Vec3 // Offset that centers the window and pushes it one unit along -n
	width    int
	height   int
}

// NewProjection precomputes the per-pixel ray coefficients.
// The window half height is sqrt(2)*tan(fov) and the half width follows the aspect ratio.
func NewProjection(camera *geometry.Camera, width, height int) *Projection {
	windowY := math.Sqrt2 * math.Tan(camera.FOV*math.Pi/180)
	windowX := float64(width) / float64(height) * windowY

	scaledU := camera.U.Multiply(windowX)
	scaledV := camera.V.Multiply(windowY)

	return &Projection{
		origin:   camera.LookFrom,
		scaleX:   scaledU.Multiply(2 / float64(width)),
		scaleY:   scaledV.Multiply(2 / float64(height)),
		constant: scaledU.Add(scaledV).Add(camera.N),
		width:    width,
		height:   height,
	}
}

// GetRay returns the ray through window coordinates (px, py), where (0, 0) is the
// bottom-left corner of the window and (width, height) the top-right
func (p *Projection) GetRay(px, py float64) core.Ray {
	direction := p.scaleX.Multiply(px).Add(p.scaleY.Multiply(py)).Subtract(p.constant)
	return core.NewRay(p.origin, direction)
}

// RayForPixel returns the ray for buffer pixel (x, y), with row 0 at the top of the image
func (p *Projection) RayForPixel(x, y int) core.Ray {
	return p.GetRay(float64(x), float64(p.height-1-y))
}
