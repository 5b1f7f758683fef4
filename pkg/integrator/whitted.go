package integrator

import (
	"math"

	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/geometry"
	"github.com/df07/go-whitted-raytracer/pkg/scene"
)

// Config bounds the mirror reflection recursion
type Config struct {
	MaxDepth        int     // Maximum number of mirror bounces after the primary hit
	MinContribution float64 // Stop reflecting once the product of Ks along the path drops below this
}

// DefaultConfig returns the default recursion bounds
func DefaultConfig() Config {
	return Config{
		MaxDepth:        10,
		MinContribution: 1e-4,
	}
}

// WhittedIntegrator implements recursive Whitted ray tracing: ambient, shadowed
// Phong direct lighting from a single directional light, and mirror reflection
type WhittedIntegrator struct {
	config Config
}

// NewWhittedIntegrator creates a new Whitted integrator. Out of range settings fall back to the defaults.
func NewWhittedIntegrator(config Config) *WhittedIntegrator {
	defaults := DefaultConfig()
	if config.MaxDepth <= 0 {
		config.MaxDepth = defaults.MaxDepth
	}
	if config.MinContribution < 0 || math.IsNaN(config.MinContribution) {
		config.MinContribution = defaults.MinContribution
	}
	return &WhittedIntegrator{config: config}
}

// Config returns the effective recursion bounds
func (w *WhittedIntegrator) Config() Config {
	return w.config
}

// RayColor computes the color for a primary ray
func (w *WhittedIntegrator) RayColor(ray core.Ray, s *scene.Scene) core.Vec3 {
	return w.rayColor(ray, s, 0, 1.0)
}

// rayColor shades one ray. depth is the number of mirror bounces so far and
// contribution is the product of Ks of every surface already bounced off.
func (w *WhittedIntegrator) rayColor(ray core.Ray, s *scene.Scene, depth int, contribution float64) core.Vec3 {
	hit, isHit := NearestHit(ray, s.Shapes)
	if !isHit {
		return s.BackgroundColor
	}

	point := ray.At(hit.T)
	normal := hit.Shape.NormalAt(point)
	mat := hit.Shape.Surface()

	color := mat.Ambient(s.AmbientColor)

	if ReachesLight(s.Light.ShadowRay(point), s.Shapes) {
		toViewer := ray.Direction.Negate()
		color = color.Add(mat.Direct(normal, s.Light.Direction, toViewer, s.Light.Color))
	}

	if !mat.IsReflective() || depth >= w.config.MaxDepth {
		return color
	}

	next := contribution * math.Abs(mat.Ks)
	if next < w.config.MinContribution {
		return color
	}

	bounced := core.NewRay(point, ray.Direction.Mirror(normal))
	reflected := w.rayColor(bounced, s, depth+1, next)
	return color.Add(reflected.Multiply(mat.Ks))
}

// NearestHit scans every shape and returns the closest intersection
func NearestHit(ray core.Ray, shapes []geometry.Shape) (geometry.Intersection, bool) {
	nearest := geometry.Intersection{T: math.Inf(1)}
	for _, shape := range shapes {
		if t, ok := shape.Hit(ray); ok && t < nearest.T {
			nearest = geometry.Intersection{T: t, Shape: shape}
		}
	}
	return nearest, nearest.Shape != nil
}

// ReachesLight reports whether a shadow ray escapes the scene. Any hit at any
// distance blocks a directional light.
func ReachesLight(shadowRay core.Ray, shapes []geometry.Shape) bool {
	for _, shape := range shapes {
		if _, ok := shape.Hit(shadowRay); ok {
			return false
		}
	}
	return true
}
