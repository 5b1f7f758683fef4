package geometry

import (
	"errors"
	"math"
	"testing"

	"github.com/df07/go-whitted-raytracer/pkg/core"
)

func TestNewCamera_Basis(t *testing.T) {
	camera, err := NewCamera(core.NewVec3(0, 0, 0), core.NewVec3(0, 0, 1), core.NewVec3(0, 1, 0), 28)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	if camera.N != core.NewVec3(0, 0, 1) {
		t.Errorf("Expected n=(0,0,1), got %v", camera.N)
	}
	if camera.U != core.NewVec3(1, 0, 0) {
		t.Errorf("Expected u=(1,0,0), got %v", camera.U)
	}
	if camera.V != core.NewVec3(0, 1, 0) {
		t.Errorf("Expected v=(0,1,0), got %v", camera.V)
	}
	if camera.Forward() != core.NewVec3(0, 0, -1) {
		t.Errorf("Expected forward=(0,0,-1), got %v", camera.Forward())
	}
}

func TestNewCamera_OrthonormalForTiltedUp(t *testing.T) {
	camera, err := NewCamera(core.NewVec3(1, 2, 3), core.NewVec3(-4, 6, 10), core.NewVec3(0.3, 1, 0.2), 45)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	for name, v := range map[string]core.Vec3{"n": camera.N, "u": camera.U, "v": camera.V} {
		if math.Abs(v.Length()-1) > 1e-12 {
			t.Errorf("Expected %s to be unit length, got %f", name, v.Length())
		}
	}
	if math.Abs(camera.N.Dot(camera.U)) > 1e-12 ||
		math.Abs(camera.N.Dot(camera.V)) > 1e-12 ||
		math.Abs(camera.U.Dot(camera.V)) > 1e-12 {
		t.Errorf("Expected orthogonal basis, got n=%v u=%v v=%v", camera.N, camera.U, camera.V)
	}

	// Right-handed: u × v = n
	if camera.U.Cross(camera.V).Subtract(camera.N).Length() > 1e-12 {
		t.Errorf("Expected u × v = n, got %v", camera.U.Cross(camera.V))
	}
}

func TestNewCamera_Degenerate(t *testing.T) {
	tests := []struct {
		name     string
		lookAt   core.Vec3
		lookFrom core.Vec3
		lookUp   core.Vec3
		fov      float64
	}{
		{"look up parallel to view", core.NewVec3(0, 0, 0), core.NewVec3(0, 5, 0), core.NewVec3(0, 2, 0), 30},
		{"look up antiparallel to view", core.NewVec3(0, 0, 0), core.NewVec3(0, 5, 0), core.NewVec3(0, -1, 0), 30},
		{"eye on the target", core.NewVec3(1, 1, 1), core.NewVec3(1, 1, 1), core.NewVec3(0, 1, 0), 30},
		{"zero field of view", core.NewVec3(0, 0, 0), core.NewVec3(0, 0, 1), core.NewVec3(0, 1, 0), 0},
		{"field of view too wide", core.NewVec3(0, 0, 0), core.NewVec3(0, 0, 1), core.NewVec3(0, 1, 0), 90},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			camera, err := NewCamera(tt.lookAt, tt.lookFrom, tt.lookUp, tt.fov)
			if err == nil {
				t.Fatalf("Expected error, got camera %+v", camera)
			}

			var geomErr *core.GeometryError
			if !errors.As(err, &geomErr) {
				t.Errorf("Expected *core.GeometryError, got %T", err)
			}
		})
	}
}
