package core

import "fmt"

// Logger interface for raytracer logging
type Logger interface {
	Printf(format string, args ...interface{})
}

// GeometryError reports geometry that cannot be rendered, such as a camera whose
// up vector is parallel to its view direction
type GeometryError struct {
	Op     string // Operation that rejected the geometry
	Reason string
}

func (e *GeometryError) Error() string {
	return fmt.Sprintf("%s: degenerate geometry: %s", e.Op, e.Reason)
}
