package loaders

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/geometry"
	"github.com/df07/go-whitted-raytracer/pkg/lights"
	"github.com/df07/go-whitted-raytracer/pkg/material"
	"github.com/df07/go-whitted-raytracer/pkg/scene"
)

// ErrUnrecognizedShape is returned for an object line whose leading tag is not Sphere or Triangle
var ErrUnrecognizedShape = errors.New("unrecognized shape")

const (
	headerLines    = 7  // look at, look from, look up, fov, light, ambient, background
	sphereTokens   = 23 // Sphere Center x y z Radius r + material
	triangleTokens = 26 // Triangle x y z x y z x y z + material
	sphereMatAt    = 7  // index of the Kd label in a sphere line
	triangleMatAt  = 10 // index of the Kd label in a triangle line
)

// materialLabels are the labels expected before each material value, relative to the Kd label
var materialLabels = []struct {
	offset int
	label  string
}{
	{0, "Kd"}, {2, "Ks"}, {4, "Ka"}, {6, "Od"}, {10, "Os"}, {14, "Kgls"},
}

// SceneParser holds the state for parsing a scene file line by line
type SceneParser struct {
	header  [][]string // Tokens of the header lines read so far
	lineNum int        // 1-based number of the line being parsed
	scene   *scene.Scene
}

// ParseScene parses a scene description from an io.Reader.
// It never returns a partial scene: any malformed line fails the whole load.
func ParseScene(reader io.Reader) (*scene.Scene, error) {
	parser := &SceneParser{}

	scanner := bufio.NewScanner(reader)
	for scanner.Scan() {
		parser.lineNum++
		if err := parser.processLine(scanner.Text()); err != nil {
			return nil, fmt.Errorf("line %d: %w", parser.lineNum, err)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("error reading input: %w", err)
	}

	if parser.scene == nil {
		return nil, fmt.Errorf("incomplete header: expected %d lines, got %d", headerLines, len(parser.header))
	}
	return parser.scene, nil
}

// LoadScene loads and parses a scene file
func LoadScene(filename string) (*scene.Scene, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to open scene file: %w", err)
	}
	defer file.Close()

	s, err := ParseScene(file)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", filename, err)
	}
	return s, nil
}

// processLine processes a single line of scene input
func (p *SceneParser) processLine(line string) error {
	line = strings.TrimSpace(line)
	if line == "" || strings.HasPrefix(line, "#") {
		return nil
	}
	tokens := strings.Fields(line)

	if p.scene == nil {
		p.header = append(p.header, tokens)
		if len(p.header) == headerLines {
			return p.buildHeader()
		}
		return nil
	}

	var shape geometry.Shape
	var err error
	switch tokens[0] {
	case "Sphere":
		shape, err = parseSphere(tokens)
	case "Triangle":
		shape, err = parseTriangle(tokens)
	default:
		return fmt.Errorf("%w %q", ErrUnrecognizedShape, tokens[0])
	}
	if err != nil {
		return err
	}

	p.scene.Shapes = append(p.scene.Shapes, shape)
	return nil
}

// buildHeader creates the scene from the seven header lines. Leading keywords are not checked.
func (p *SceneParser) buildHeader() error {
	lookAt, err := parseVec3At(p.header[0], 1, "camera look at")
	if err != nil {
		return err
	}
	lookFrom, err := parseVec3At(p.header[1], 1, "camera look from")
	if err != nil {
		return err
	}
	lookUp, err := parseVec3At(p.header[2], 1, "camera look up")
	if err != nil {
		return err
	}
	fov, err := parseFloatAt(p.header[3], 1, "field of view")
	if err != nil {
		return err
	}
	camera, err := geometry.NewCamera(lookAt, lookFrom, lookUp, fov)
	if err != nil {
		return err
	}

	lightDirection, err := parseVec3At(p.header[4], 1, "light direction")
	if err != nil {
		return err
	}
	lightColor, err := parseVec3At(p.header[4], 5, "light color")
	if err != nil {
		return err
	}
	light := lights.NewDirectionalLight(lightDirection, lightColor)
	if err := light.Validate(); err != nil {
		return err
	}

	ambient, err := parseVec3At(p.header[5], 1, "ambient color")
	if err != nil {
		return err
	}
	background, err := parseVec3At(p.header[6], 1, "background color")
	if err != nil {
		return err
	}

	p.scene = &scene.Scene{
		Camera:          camera,
		Light:           light,
		AmbientColor:    ambient,
		BackgroundColor: background,
		Shapes:          make([]geometry.Shape, 0),
	}
	return nil
}

func parseSphere(tokens []string) (*geometry.Sphere, error) {
	if len(tokens) < sphereTokens {
		return nil, fmt.Errorf("sphere needs %d fields, got %d", sphereTokens, len(tokens))
	}

	center, err := parseVec3At(tokens, 2, "sphere center")
	if err != nil {
		return nil, err
	}
	radius, err := parseFloatAt(tokens, 6, "sphere radius")
	if err != nil {
		return nil, err
	}
	mat, err := parseMaterial(tokens, sphereMatAt)
	if err != nil {
		return nil, err
	}

	sphere := geometry.NewSphere(center, radius, mat)
	if err := sphere.Validate(); err != nil {
		return nil, err
	}
	return sphere, nil
}

func parseTriangle(tokens []string) (*geometry.Triangle, error) {
	if len(tokens) < triangleTokens {
		return nil, fmt.Errorf("triangle needs %d fields, got %d", triangleTokens, len(tokens))
	}

	var vertices [3]core.Vec3
	for i := range vertices {
		v, err := parseVec3At(tokens, 1+3*i, fmt.Sprintf("triangle vertex %d", i+1))
		if err != nil {
			return nil, err
		}
		vertices[i] = v
	}

	mat, err := parseMaterial(tokens, triangleMatAt)
	if err != nil {
		return nil, err
	}
	return geometry.NewTriangle(vertices[0], vertices[1], vertices[2], mat), nil
}

// parseMaterial reads "Kd f Ks f Ka f Od r g b Os r g b Kgls f" starting at index at
func parseMaterial(tokens []string, at int) (material.Phong, error) {
	for _, l := range materialLabels {
		if !strings.EqualFold(tokens[at+l.offset], l.label) {
			return material.Phong{}, fmt.Errorf("expected %s at field %d, got %q", l.label, at+l.offset+1, tokens[at+l.offset])
		}
	}

	kd, err := parseFloatAt(tokens, at+1, "Kd")
	if err != nil {
		return material.Phong{}, err
	}
	ks, err := parseFloatAt(tokens, at+3, "Ks")
	if err != nil {
		return material.Phong{}, err
	}
	ka, err := parseFloatAt(tokens, at+5, "Ka")
	if err != nil {
		return material.Phong{}, err
	}
	od, err := parseVec3At(tokens, at+7, "Od")
	if err != nil {
		return material.Phong{}, err
	}
	specular, err := parseVec3At(tokens, at+11, "Os")
	if err != nil {
		return material.Phong{}, err
	}
	kgls, err := parseFloatAt(tokens, at+15, "Kgls")
	if err != nil {
		return material.Phong{}, err
	}

	return material.NewPhong(kd, ks, ka, od, specular, kgls), nil
}

// parseFloatAt parses tokens[i] as a float
func parseFloatAt(tokens []string, i int, name string) (float64, error) {
	if i >= len(tokens) {
		return 0, fmt.Errorf("missing %s", name)
	}
	v, err := strconv.ParseFloat(tokens[i], 64)
	if err != nil {
		return 0, fmt.Errorf("invalid %s '%s': %w", name, tokens[i], err)
	}
	return v, nil
}

// parseVec3At parses tokens[i:i+3] as a vector
func parseVec3At(tokens []string, i int, name string) (core.Vec3, error) {
	if i+3 > len(tokens) {
		return core.Vec3{}, fmt.Errorf("%s needs 3 values", name)
	}
	var xyz [3]float64
	for j := range xyz {
		v, err := strconv.ParseFloat(tokens[i+j], 64)
		if err != nil {
			return core.Vec3{}, fmt.Errorf("invalid %s '%s': %w", name, tokens[i+j], err)
		}
		xyz[j] = v
	}
	return core.NewVec3(xyz[0], xyz[1], xyz[2]), nil
}

// FormatSphere returns the scene file record for a sphere
func FormatSphere(s *geometry.Sphere) string {
	return fmt.Sprintf("Sphere Center %v Radius %g %s", s.Center, s.Radius, formatMaterial(s.Material))
}

// FormatTriangle returns the scene file record for a triangle
func FormatTriangle(t *geometry.Triangle) string {
	return fmt.Sprintf("Triangle %v %v %v %s", t.V1, t.V2, t.V3, formatMaterial(t.Material))
}

func formatMaterial(m material.Phong) string {
	return fmt.Sprintf("Kd %g Ks %g Ka %g Od %v Os %v Kgls %g", m.Kd, m.Ks, m.Ka, m.Od, m.Os, m.Kgls)
}

// WriteSceneHeader writes the seven header lines describing the camera, light and colors
func WriteSceneHeader(w io.Writer, s *scene.Scene) error {
	c := s.Camera
	_, err := fmt.Fprintf(w,
		"CameraLookAt %v\nCameraLookFrom %v\nCameraLookUp %v\nFieldOfView %g\nDirectionToLight %v LightColor %v\nAmbientLight %v\nBackgroundColor %v\n",
		c.LookAt, c.LookFrom, c.LookUp, c.FOV, s.Light.Direction, s.Light.Color, s.AmbientColor, s.BackgroundColor)
	return err
}

// WriteScene writes a complete scene file that ParseScene reads back to an equivalent scene
func WriteScene(w io.Writer, s *scene.Scene) error {
	if err := WriteSceneHeader(w, s); err != nil {
		return err
	}

	bw := bufio.NewWriter(w)
	for _, shape := range s.Shapes {
		var record string
		switch obj := shape.(type) {
		case *geometry.Sphere:
			record = FormatSphere(obj)
		case *geometry.Triangle:
			record = FormatTriangle(obj)
		}
		if _, err := fmt.Fprintln(bw, record); err != nil {
			return err
		}
	}
	return bw.Flush()
}
