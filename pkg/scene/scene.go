package scene

import (
	"errors"
	"fmt"

	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/geometry"
	"github.com/df07/go-whitted-raytracer/pkg/lights"
	"github.com/df07/go-whitted-raytracer/pkg/material"
)

// Scene contains all the elements needed for rendering.
// It is read-only once built and is shared by every render worker.
type Scene struct {
	Camera          *geometry.Camera
	Light           lights.DirectionalLight
	AmbientColor    core.Vec3
	BackgroundColor core.Vec3
	Shapes          []geometry.Shape // Objects in the scene, in load order
}

// Validate checks that the scene can be rendered
func (s *Scene) Validate() error {
	if s.Camera == nil {
		return errors.New("scene has no camera")
	}
	if err := s.Light.Validate(); err != nil {
		return err
	}

	for i, shape := range s.Shapes {
		if sphere, ok := shape.(*geometry.Sphere); ok {
			if err := sphere.Validate(); err != nil {
				return fmt.Errorf("shape %d: %w", i, err)
			}
		}
	}
	return nil
}

// GetPrimitiveCount returns the total number of primitive objects in the scene
func (s *Scene) GetPrimitiveCount() int {
	return len(s.Shapes)
}

// ShapeCounts returns the number of spheres and triangles, and how many of the triangles are degenerate
func (s *Scene) ShapeCounts() (spheres, triangles, degenerate int) {
	for _, shape := range s.Shapes {
		switch obj := shape.(type) {
		case *geometry.Sphere:
			spheres++
		case *geometry.Triangle:
			triangles++
			if obj.IsDegenerate() {
				degenerate++
			}
		}
	}
	return spheres, triangles, degenerate
}

// mustCamera builds a camera for the hard-coded scenes, whose parameters are known to be valid
func mustCamera(lookAt, lookFrom, lookUp core.Vec3, fov float64) *geometry.Camera {
	camera, err := geometry.NewCamera(lookAt, lookFrom, lookUp, fov)
	if err != nil {
		panic(err)
	}
	return camera
}

// addQuad adds two triangles covering the quad a-b-c-d, wound counter-clockwise around its front face
func (s *Scene) addQuad(a, b, c, d core.Vec3, mat material.Phong) {
	s.Shapes = append(s.Shapes,
		geometry.NewTriangle(a, b, c, mat),
		geometry.NewTriangle(a, c, d, mat),
	)
}
