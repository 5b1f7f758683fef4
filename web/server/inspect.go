package server

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/geometry"
	"github.com/df07/go-whitted-raytracer/pkg/integrator"
	"github.com/df07/go-whitted-raytracer/pkg/material"
	"github.com/df07/go-whitted-raytracer/pkg/renderer"
	"github.com/df07/go-whitted-raytracer/pkg/scene"
)

// InspectResponse represents the JSON response for object inspection
type InspectResponse struct {
	Hit          bool                   `json:"hit"`
	GeometryType string                 `json:"geometryType,omitempty"`
	ShapeIndex   int                    `json:"shapeIndex"`
	Point        [3]float64             `json:"point"`
	Normal       [3]float64             `json:"normal"`
	Distance     float64                `json:"distance"`
	InShadow     bool                   `json:"inShadow"`
	Color        [3]float64             `json:"color"` // Shaded color of the pixel, before 8-bit conversion
	Properties   map[string]interface{} `json:"properties,omitempty"`
}

// InspectResult describes the first shape hit through a pixel
type InspectResult struct {
	Hit        bool
	Ray        core.Ray
	T          float64
	Shape      geometry.Shape
	ShapeIndex int
}

// inspectPixel casts the primary ray through the given pixel and reports the nearest shape
func inspectPixel(sceneObj *scene.Scene, width, height, pixelX, pixelY int) InspectResult {
	projection := renderer.NewProjection(sceneObj.Camera, width, height)
	ray := projection.RayForPixel(pixelX, pixelY)

	hit, ok := integrator.NearestHit(ray, sceneObj.Shapes)
	if !ok {
		return InspectResult{Hit: false, Ray: ray, ShapeIndex: -1}
	}

	index := -1
	for i, shape := range sceneObj.Shapes {
		if shape == hit.Shape {
			index = i
			break
		}
	}
	return InspectResult{Hit: true, Ray: ray, T: hit.T, Shape: hit.Shape, ShapeIndex: index}
}

// extractMaterialInfo lists the Phong coefficients of a surface
func extractMaterialInfo(mat material.Phong) map[string]interface{} {
	return map[string]interface{}{
		"kd":         mat.Kd,
		"ks":         mat.Ks,
		"ka":         mat.Ka,
		"od":         vecToArray(mat.Od),
		"os":         vecToArray(mat.Os),
		"kgls":       mat.Kgls,
		"reflective": mat.IsReflective(),
	}
}

// extractGeometryInfo extracts detailed geometry information
func extractGeometryInfo(shape geometry.Shape) (string, map[string]interface{}) {
	properties := make(map[string]interface{})

	switch geom := shape.(type) {
	case *geometry.Sphere:
		properties["center"] = vecToArray(geom.Center)
		properties["radius"] = geom.Radius
		return "sphere", properties

	case *geometry.Triangle:
		properties["vertices"] = [3][3]float64{vecToArray(geom.V1), vecToArray(geom.V2), vecToArray(geom.V3)}
		return "triangle", properties

	default:
		return "unknown", properties
	}
}

func vecToArray(v core.Vec3) [3]float64 {
	return [3]float64{v.X, v.Y, v.Z}
}

// handleInspect handles ray casting inspection requests
func (s *Server) handleInspect(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Access-Control-Allow-Origin", "*")

	writeError := func(message string) {
		w.WriteHeader(http.StatusBadRequest)
		json.NewEncoder(w).Encode(map[string]string{"error": message})
	}

	inspectReq, err := s.parseRenderRequest(r)
	if err != nil {
		writeError("Invalid scene parameters: " + err.Error())
		return
	}

	// Parse pixel coordinates
	pixelX, err := strconv.Atoi(r.URL.Query().Get("x"))
	if err != nil {
		writeError("Invalid x coordinate")
		return
	}
	pixelY, err := strconv.Atoi(r.URL.Query().Get("y"))
	if err != nil {
		writeError("Invalid y coordinate")
		return
	}
	if pixelX < 0 || pixelX >= inspectReq.Width || pixelY < 0 || pixelY >= inspectReq.Height {
		writeError("Pixel coordinates out of bounds")
		return
	}

	sceneObj, err := s.createScene(r, inspectReq)
	if err != nil {
		writeError(err.Error())
		return
	}
	if err := sceneObj.Validate(); err != nil {
		writeError(err.Error())
		return
	}

	result := inspectPixel(sceneObj, inspectReq.Width, inspectReq.Height, pixelX, pixelY)

	integ := integrator.NewWhittedIntegrator(integrator.Config{
		MaxDepth:        inspectReq.MaxDepth,
		MinContribution: inspectReq.MinContribution,
	})
	color := vecToArray(integ.RayColor(result.Ray, sceneObj))

	if !result.Hit {
		w.WriteHeader(http.StatusOK)
		json.NewEncoder(w).Encode(InspectResponse{Hit: false, ShapeIndex: -1, Color: color})
		return
	}

	point := result.Ray.At(result.T)
	geometryType, geometryProps := extractGeometryInfo(result.Shape)
	shadowRay := sceneObj.Light.ShadowRay(point)

	response := InspectResponse{
		Hit:          true,
		GeometryType: geometryType,
		ShapeIndex:   result.ShapeIndex,
		Point:        vecToArray(point),
		Normal:       vecToArray(result.Shape.NormalAt(point)),
		Distance:     result.T,
		InShadow:     !integrator.ReachesLight(shadowRay, sceneObj.Shapes),
		Color:        color,
		Properties: map[string]interface{}{
			"material": extractMaterialInfo(result.Shape.Surface()),
			"geometry": geometryProps,
		},
	}

	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(response)
}
