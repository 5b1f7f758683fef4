package loaders

import (
	"bufio"
	"fmt"
	"io"

	"github.com/fogleman/pt/pt"

	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/geometry"
	"github.com/df07/go-whitted-raytracer/pkg/material"
)

// DefaultPalette cycles red, orange, yellow, green, blue, indigo and violet
var DefaultPalette = []core.Vec3{
	core.NewVec3(1, 0, 0),
	core.NewVec3(1, 0.647, 0),
	core.NewVec3(1, 1, 0),
	core.NewVec3(0, 0.5, 0),
	core.NewVec3(0, 0, 1),
	core.NewVec3(0.294, 0, 0.51),
	core.NewVec3(0.933, 0.51, 0.933),
}

// Material coefficients given to every converted mesh triangle
const (
	meshKd   = 0.8
	meshKs   = 0.1
	meshKa   = 0.1
	meshKgls = 4
)

// LoadMesh reads the triangles of a Wavefront OBJ file. Polygon faces are split into
// a fan of triangles. With fitUnitCube the mesh is scaled uniformly into the unit cube
// centered on the origin.
func LoadMesh(path string, fitUnitCube bool) (triangles [][3]core.Vec3, err error) {
	// The OBJ reader indexes vertices without bounds checks
	defer func() {
		if r := recover(); r != nil {
			triangles, err = nil, fmt.Errorf("malformed OBJ file %s: %v", path, r)
		}
	}()

	mesh, err := pt.LoadOBJ(path, pt.Material{})
	if err != nil {
		return nil, fmt.Errorf("failed to load OBJ file: %w", err)
	}
	if len(mesh.Triangles) == 0 {
		return nil, fmt.Errorf("OBJ file %s has no faces", path)
	}

	if fitUnitCube {
		mesh.UnitCube()
	}

	triangles = make([][3]core.Vec3, len(mesh.Triangles))
	for i, t := range mesh.Triangles {
		triangles[i] = [3]core.Vec3{toVec3(t.V1), toVec3(t.V2), toVec3(t.V3)}
	}
	return triangles, nil
}

func toVec3(v pt.Vector) core.Vec3 {
	return core.NewVec3(v.X, v.Y, v.Z)
}

// WriteTriangles writes one Triangle record per triangle. Triangle i gets
// Od = Os = palette[i % len(palette)].
func WriteTriangles(w io.Writer, triangles [][3]core.Vec3, palette []core.Vec3) (int, error) {
	if len(palette) == 0 {
		palette = DefaultPalette
	}

	bw := bufio.NewWriter(w)
	for i, t := range triangles {
		color := palette[i%len(palette)]
		mat := material.NewPhong(meshKd, meshKs, meshKa, color, color, meshKgls)
		if _, err := fmt.Fprintln(bw, FormatTriangle(geometry.NewTriangle(t[0], t[1], t[2], mat))); err != nil {
			return i, err
		}
	}
	if err := bw.Flush(); err != nil {
		return 0, err
	}
	return len(triangles), nil
}

// ConvertOBJ converts every face of an OBJ mesh into a colored Triangle record and returns the count
func ConvertOBJ(path string, w io.Writer, palette []core.Vec3) (int, error) {
	triangles, err := LoadMesh(path, false)
	if err != nil {
		return 0, err
	}
	return WriteTriangles(w, triangles, palette)
}
