package server

import (
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/df07/go-whitted-raytracer/pkg/integrator"
	"github.com/df07/go-whitted-raytracer/pkg/loaders"
	"github.com/df07/go-whitted-raytracer/pkg/scene"
)

// maxSceneBytes limits the size of an uploaded scene file
const maxSceneBytes = 8 << 20

// Server handles web requests for the raytracer
type Server struct {
	port     int
	sceneDir string // Directory searched for scene files
}

// NewServer creates a new web server
func NewServer(port int) *Server {
	return &Server{port: port, sceneDir: "scenes"}
}

// RenderRequest represents a render request from the client
type RenderRequest struct {
	Scene           string  `json:"scene"`           // Built-in name or "file:<name>"
	Width           int     `json:"width"`           // Image width
	Height          int     `json:"height"`          // Image height
	MaxDepth        int     `json:"maxDepth"`        // Maximum mirror bounces
	MinContribution float64 `json:"minContribution"` // Reflection cutoff
	Workers         int     `json:"workers"`         // Parallel workers, 0 = CPU count
}

// Handler returns the routes served by the server
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()

	// Serve static files
	mux.Handle("/", http.FileServer(http.Dir("static/")))

	// API endpoints
	mux.HandleFunc("/api/health", s.handleHealth)
	mux.HandleFunc("/api/scenes", s.handleScenes)
	mux.HandleFunc("/api/render", s.handleRender)
	mux.HandleFunc("/api/inspect", s.handleInspect)
	return mux
}

// Start starts the web server
func (s *Server) Start() error {
	addr := fmt.Sprintf(":%d", s.port)
	log.Printf("Starting web server on http://localhost%s", addr)
	return http.ListenAndServe(addr, s.Handler())
}

// handleHealth provides a simple health check endpoint
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
}

// handleScenes lists the built-in scenes and the scene files, grouped
func (s *Server) handleScenes(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Access-Control-Allow-Origin", "*")

	response, err := scene.ListAllScenes(s.sceneDir)
	if err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		json.NewEncoder(w).Encode(map[string]string{"error": err.Error()})
		return
	}

	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(response)
}

// parseRenderRequest parses request parameters
func (s *Server) parseRenderRequest(r *http.Request) (*RenderRequest, error) {
	req := &RenderRequest{}
	query := r.URL.Query()

	if name := query.Get("scene"); name != "" {
		req.Scene = name
	} else {
		req.Scene = "default"
	}

	defaults := integrator.DefaultConfig()

	var err error
	if req.Width, err = parseIntParam(query, "width", 400, 10, 2000); err != nil {
		return nil, err
	}
	if req.Height, err = parseIntParam(query, "height", 400, 10, 2000); err != nil {
		return nil, err
	}
	if req.MaxDepth, err = parseIntParam(query, "maxDepth", defaults.MaxDepth, 1, 100); err != nil {
		return nil, err
	}
	if req.MinContribution, err = parseFloatParam(query, "minContribution", defaults.MinContribution, 0, 1); err != nil {
		return nil, err
	}
	if req.Workers, err = parseIntParam(query, "workers", 0, 0, 256); err != nil {
		return nil, err
	}

	return req, nil
}

// parseIntParam parses an integer parameter from URL query with validation
func parseIntParam(values url.Values, key string, defaultValue, min, max int) (int, error) {
	if value := values.Get(key); value != "" {
		parsed, err := strconv.Atoi(value)
		if err != nil {
			return 0, fmt.Errorf("invalid %s: %s", key, value)
		}
		if parsed < min || parsed > max {
			return 0, fmt.Errorf("%s must be between %d and %d, got: %d", key, min, max, parsed)
		}
		return parsed, nil
	}
	return defaultValue, nil
}

// parseFloatParam parses a float parameter from URL query with validation
func parseFloatParam(values url.Values, key string, defaultValue, min, max float64) (float64, error) {
	if value := values.Get(key); value != "" {
		parsed, err := strconv.ParseFloat(value, 64)
		if err != nil {
			return 0, fmt.Errorf("invalid %s: %s", key, value)
		}
		if parsed < min || parsed > max {
			return 0, fmt.Errorf("%s must be between %g and %g, got: %g", key, min, max, parsed)
		}
		return parsed, nil
	}
	return defaultValue, nil
}

// createScene builds the scene for a request. A POST body is parsed as a scene file;
// otherwise the scene parameter names a built-in scene or "file:<name>" in the scene directory.
func (s *Server) createScene(r *http.Request, req *RenderRequest) (*scene.Scene, error) {
	if r.Method == http.MethodPost {
		sceneObj, err := loaders.ParseScene(io.LimitReader(r.Body, maxSceneBytes))
		if err != nil {
			return nil, fmt.Errorf("invalid scene file: %w", err)
		}
		req.Scene = "upload"
		return sceneObj, nil
	}

	if name, ok := strings.CutPrefix(req.Scene, "file:"); ok {
		// Only plain names, never paths outside the scene directory
		if name == "" || name != filepath.Base(name) {
			return nil, fmt.Errorf("invalid scene file name: %q", name)
		}
		return loaders.LoadScene(filepath.Join(s.sceneDir, name+".txt"))
	}

	return scene.NewBuiltinScene(req.Scene)
}
