package material

import (
	"math"

	"github.com/df07/go-whitted-raytracer/pkg/core"
)

// Phong holds the Phong reflection coefficients attached to every shape
type Phong struct {
	Kd   float64   // Diffuse strength
	Ks   float64   // Specular strength, also the mirror reflectivity
	Ka   float64   // Ambient strength
	Od   core.Vec3 // Diffuse color
	Os   core.Vec3 // Specular color
	Kgls float64   // Specular exponent (shininess)
}

// NewPhong creates a new Phong material
func NewPhong(kd, ks, ka float64, od, os core.Vec3, kgls float64) Phong {
	return Phong{Kd: kd, Ks: ks, Ka: ka, Od: od, Os: os, Kgls: kgls}
}

// Ambient returns ka * ambient * od
func (p Phong) Ambient(ambientColor core.Vec3) core.Vec3 {
	return ambientColor.MultiplyVec(p.Od).Multiply(p.Ka)
}

// Direct returns the diffuse plus specular response to a directional light.
// toLight points from the surface toward the light and toViewer points back along the incoming ray.
func (p Phong) Direct(normal, toLight, toViewer, lightColor core.Vec3) core.Vec3 {
	diffuse := p.Od.Multiply(p.Kd * math.Max(0, normal.Dot(toLight)))

	highlight := toLight.Reflect(normal)
	specular := p.Os.Multiply(p.Ks * math.Pow(math.Max(0, highlight.Dot(toViewer)), p.Kgls))

	return lightColor.MultiplyVec(diffuse.Add(specular))
}

// IsReflective reports whether the surface spawns mirror reflection rays
func (p Phong) IsReflective() bool {
	return p.Ks != 0
}
