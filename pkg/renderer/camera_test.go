package renderer

import (
	"math"
	"testing"

	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/geometry"
)

func newTestCamera(t *testing.T, fov float64) *geometry.Camera {
	t.Helper()
	camera, err := geometry.NewCamera(core.NewVec3(0, 0, 0), core.NewVec3(0, 0, 1), core.NewVec3(0, 1, 0), fov)
	if err != nil {
		t.Fatalf("NewCamera error: %v", err)
	}
	return camera
}

func assertDirection(t *testing.T, expected, actual core.Vec3) {
	t.Helper()
	if expected.Normalize().Subtract(actual).Length() > 1e-12 {
		t.Errorf("Expected direction %v, got %v", expected.Normalize(), actual)
	}
}

func TestProjection_CenterPixelLooksForward(t *testing.T) {
	camera := newTestCamera(t, 28)
	projection := NewProjection(camera, 4, 4)

	// Window coordinates (2, 2) are the exact center of a 4x4 image
	ray := projection.GetRay(2, 2)
	assertDirection(t, camera.Forward(), ray.Direction)

	if ray.Origin != camera.LookFrom {
		t.Errorf("Expected origin %v, got %v", camera.LookFrom, ray.Origin)
	}

	// Buffer row 1 is window row 4-1-1 = 2
	assertDirection(t, camera.Forward(), projection.RayForPixel(2, 1).Direction)
}

func TestProjection_WindowCorners(t *testing.T) {
	fov := 30.0
	camera := newTestCamera(t, fov)
	width, height := 200, 100
	projection := NewProjection(camera, width, height)

	windowY := math.Sqrt2 * math.Tan(fov*math.Pi/180)
	windowX := 2 * windowY

	tests := []struct {
		name     string
		px, py   float64
		expected core.Vec3
	}{
		{"bottom left", 0, 0, core.NewVec3(-windowX, -windowY, -1)},
		{"top right", float64(width), float64(height), core.NewVec3(windowX, windowY, -1)},
		{"top left", 0, float64(height), core.NewVec3(-windowX, windowY, -1)},
		{"right edge center", float64(width), float64(height) / 2, core.NewVec3(windowX, 0, -1)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assertDirection(t, tt.expected, projection.GetRay(tt.px, tt.py).Direction)
		})
	}
}

func TestProjection_RowZeroIsTop(t *testing.T) {
	projection := NewProjection(newTestCamera(t, 28), 10, 10)

	top := projection.RayForPixel(5, 0)
	bottom := projection.RayForPixel(5, 9)
	if top.Direction.Y <= 0 || bottom.Direction.Y >= 0 {
		t.Errorf("Expected row 0 to look up and row 9 to look down, got %v and %v", top.Direction, bottom.Direction)
	}

	left := projection.RayForPixel(0, 5)
	if left.Direction.X >= 0 {
		t.Errorf("Expected column 0 to look left, got %v", left.Direction)
	}
}
