package scene

import (
	"errors"
	"strings"
	"testing"

	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/geometry"
	"github.com/df07/go-whitted-raytracer/pkg/lights"
	"github.com/df07/go-whitted-raytracer/pkg/material"
)

func TestBuiltinScenesAreValid(t *testing.T) {
	for _, name := range BuiltinScenes() {
		t.Run(name, func(t *testing.T) {
			s, err := NewBuiltinScene(name)
			if err != nil {
				t.Fatalf("NewBuiltinScene(%q) error: %v", name, err)
			}
			if err := s.Validate(); err != nil {
				t.Errorf("Expected valid scene, got %v", err)
			}
			if _, _, degenerate := s.ShapeCounts(); degenerate != 0 {
				t.Errorf("Expected no degenerate triangles, got %d", degenerate)
			}
		})
	}
}

func TestNewBuiltinScene_Unknown(t *testing.T) {
	_, err := NewBuiltinScene("nonexistent")
	if err == nil {
		t.Fatal("Expected error for unknown scene")
	}
	if !strings.Contains(err.Error(), "default") {
		t.Errorf("Expected the error to list available scenes, got %v", err)
	}
}

func TestMirrorScene_MirrorsFaceEachOther(t *testing.T) {
	s := NewMirrorScene()

	spheres, triangles, _ := s.ShapeCounts()
	if spheres != 1 || triangles != 4 {
		t.Fatalf("Expected 1 sphere and 4 triangles, got %d and %d", spheres, triangles)
	}

	// Both walls face the sphere between them
	left := s.Shapes[1].NormalAt(core.Vec3{})
	right := s.Shapes[3].NormalAt(core.Vec3{})
	if left != core.NewVec3(1, 0, 0) || right != core.NewVec3(-1, 0, 0) {
		t.Errorf("Expected inward normals, got %v and %v", left, right)
	}
}

func TestScene_Validate(t *testing.T) {
	camera, err := geometry.NewCamera(core.NewVec3(0, 0, 0), core.NewVec3(0, 0, 1), core.NewVec3(0, 1, 0), 30)
	if err != nil {
		t.Fatalf("NewCamera error: %v", err)
	}
	light := lights.NewDirectionalLight(core.NewVec3(0, 1, 0), core.NewVec3(1, 1, 1))
	mat := material.NewPhong(1, 0, 0, core.NewVec3(1, 1, 1), core.NewVec3(1, 1, 1), 1)

	tests := []struct {
		name    string
		scene   *Scene
		wantErr bool
	}{
		{
			name:  "empty scene",
			scene: &Scene{Camera: camera, Light: light},
		},
		{
			name:    "missing camera",
			scene:   &Scene{Light: light},
			wantErr: true,
		},
		{
			name:    "zero light direction",
			scene:   &Scene{Camera: camera, Light: lights.NewDirectionalLight(core.Vec3{}, core.NewVec3(1, 1, 1))},
			wantErr: true,
		},
		{
			name: "negative radius",
			scene: &Scene{Camera: camera, Light: light, Shapes: []geometry.Shape{
				geometry.NewSphere(core.NewVec3(0, 0, -1), -0.5, mat),
			}},
			wantErr: true,
		},
		{
			name: "degenerate triangle is tolerated",
			scene: &Scene{Camera: camera, Light: light, Shapes: []geometry.Shape{
				geometry.NewTriangle(core.NewVec3(0, 0, 0), core.NewVec3(1, 0, 0), core.NewVec3(2, 0, 0), mat),
			}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.scene.Validate()
			if (err != nil) != tt.wantErr {
				t.Fatalf("Expected error=%v, got %v", tt.wantErr, err)
			}
		})
	}
}

func TestScene_ValidateWrapsGeometryError(t *testing.T) {
	camera, _ := geometry.NewCamera(core.NewVec3(0, 0, 0), core.NewVec3(0, 0, 1), core.NewVec3(0, 1, 0), 30)
	mat := material.NewPhong(1, 0, 0, core.NewVec3(1, 1, 1), core.NewVec3(1, 1, 1), 1)
	s := &Scene{
		Camera: camera,
		Light:  lights.NewDirectionalLight(core.NewVec3(0, 1, 0), core.NewVec3(1, 1, 1)),
		Shapes: []geometry.Shape{
			geometry.NewSphere(core.NewVec3(0, 0, -1), 1, mat),
			geometry.NewSphere(core.NewVec3(0, 0, -1), 0, mat),
		},
	}

	err := s.Validate()
	var geomErr *core.GeometryError
	if !errors.As(err, &geomErr) {
		t.Fatalf("Expected wrapped *core.GeometryError, got %v", err)
	}
	if !strings.HasPrefix(err.Error(), "shape 1:") {
		t.Errorf("Expected the shape index in the message, got %q", err.Error())
	}
}
