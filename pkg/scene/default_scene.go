package scene

import (
	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/geometry"
	"github.com/df07/go-whitted-raytracer/pkg/lights"
	"github.com/df07/go-whitted-raytracer/pkg/material"
)

// NewDefaultScene creates a default scene with three spheres resting on a floor
func NewDefaultScene() *Scene {
	s := &Scene{
		Camera: mustCamera(
			core.NewVec3(0, 0, -1),    // look at
			core.NewVec3(0, 0.6, 2.5), // look from
			core.NewVec3(0, 1, 0),     // look up
			28,
		),
		Light:           lights.NewDirectionalLight(core.NewVec3(1, 1, 1), core.NewVec3(1, 1, 1)),
		AmbientColor:    core.NewVec3(0.1, 0.1, 0.1),
		BackgroundColor: core.NewVec3(0.2, 0.2, 0.2),
		Shapes:          make([]geometry.Shape, 0),
	}

	white := core.NewVec3(1, 1, 1)

	// Create materials
	shinyRed := material.NewPhong(0.7, 0.3, 0.1, core.NewVec3(1, 0, 0), white, 32)
	matteBlue := material.NewPhong(0.8, 0.1, 0.1, core.NewVec3(0.1, 0.2, 0.9), white, 4)
	glossyGreen := material.NewPhong(0.6, 0.2, 0.1, core.NewVec3(0, 0.5, 0), white, 16)
	floor := material.NewPhong(0.8, 0.1, 0.1, core.NewVec3(0.8, 0.8, 0.6), white, 4)

	s.Shapes = append(s.Shapes,
		geometry.NewSphere(core.NewVec3(0, 0.15, -1), 0.5, shinyRed),
		geometry.NewSphere(core.NewVec3(-0.9, 0, -1.5), 0.35, matteBlue),
		geometry.NewSphere(core.NewVec3(0.9, -0.05, -0.6), 0.3, glossyGreen),
	)

	// Floor facing +Y, just under the lowest sphere
	y := -0.35
	s.addQuad(
		core.NewVec3(-3, y, 1.5),
		core.NewVec3(3, y, 1.5),
		core.NewVec3(3, y, -5),
		core.NewVec3(-3, y, -5),
		floor,
	)

	return s
}

// NewMirrorScene creates a sphere between two facing mirrors, so reflection rays
// bounce back and forth until the recursion bound stops them
func NewMirrorScene() *Scene {
	s := &Scene{
		Camera: mustCamera(
			core.NewVec3(0, 0, -1),
			core.NewVec3(0.3, 0.2, 1.5),
			core.NewVec3(0, 1, 0),
			35,
		),
		Light:           lights.NewDirectionalLight(core.NewVec3(0, 1, 1), core.NewVec3(1, 1, 1)),
		AmbientColor:    core.NewVec3(0.1, 0.1, 0.1),
		BackgroundColor: core.NewVec3(0.05, 0.05, 0.15),
		Shapes:          make([]geometry.Shape, 0),
	}

	white := core.NewVec3(1, 1, 1)
	mirror := material.NewPhong(0.05, 0.9, 0.05, core.NewVec3(0.9, 0.9, 0.9), white, 64)
	gold := material.NewPhong(0.7, 0.3, 0.1, core.NewVec3(1, 0.8, 0.2), white, 32)

	s.Shapes = append(s.Shapes, geometry.NewSphere(core.NewVec3(0, 0, -1), 0.4, gold))

	// Left mirror at x=-1 facing +X
	s.addQuad(
		core.NewVec3(-1, -1, 1),
		core.NewVec3(-1, -1, -3),
		core.NewVec3(-1, 1, -3),
		core.NewVec3(-1, 1, 1),
		mirror,
	)
	// Right mirror at x=1 facing -X
	s.addQuad(
		core.NewVec3(1, -1, -3),
		core.NewVec3(1, -1, 1),
		core.NewVec3(1, 1, 1),
		core.NewVec3(1, 1, -3),
		mirror,
	)

	return s
}

// NewAmbientScene places the camera inside one large ambient-only sphere, so every
// primary ray hits it and every pixel is exactly AmbientColor * Od
func NewAmbientScene() *Scene {
	s := &Scene{
		Camera: mustCamera(
			core.NewVec3(0, 0, 0),
			core.NewVec3(0, 0, 1),
			core.NewVec3(0, 1, 0),
			30,
		),
		Light:           lights.NewDirectionalLight(core.NewVec3(0, 1, 0), core.NewVec3(1, 1, 1)),
		AmbientColor:    core.NewVec3(0.5, 0.5, 0.5),
		BackgroundColor: core.NewVec3(1, 0, 1),
	}

	ambientOnly := material.NewPhong(0, 0, 1, core.NewVec3(0.2, 0.4, 0.6), core.NewVec3(1, 1, 1), 1)
	s.Shapes = []geometry.Shape{geometry.NewSphere(core.NewVec3(0, 0, 0), 10, ambientOnly)}

	return s
}
