package server

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"image"
	"log"
	"net/http"
	"time"

	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/integrator"
	"github.com/df07/go-whitted-raytracer/pkg/loaders"
	"github.com/df07/go-whitted-raytracer/pkg/renderer"
	"github.com/df07/go-whitted-raytracer/pkg/scene"
)

// ProgressUpdate is sent after every completed row
type ProgressUpdate struct {
	Percent       float64 `json:"percent"`
	RowsCompleted int     `json:"rowsCompleted"`
	TotalRows     int     `json:"totalRows"`
	RemainingMs   int64   `json:"remainingMs"`
}

// CompleteUpdate carries the finished image
type CompleteUpdate struct {
	ImageData      string `json:"imageData"` // Base64 encoded PNG
	Width          int    `json:"width"`
	Height         int    `json:"height"`
	ElapsedMs      int64  `json:"elapsedMs"`
	NumWorkers     int    `json:"numWorkers"`
	PrimitiveCount int    `json:"primitiveCount"`
}

// SSEEvent is a single server-sent event
type SSEEvent struct {
	Type string // "console", "progress", "complete", "error"
	Data string // JSON-encoded data or a plain message
}

// RenderingPipeline contains the configured scene and raytracer
type RenderingPipeline struct {
	Scene     *scene.Scene
	Raytracer *renderer.Raytracer
}

// handleRender renders a scene and streams console output, progress and the final image via SSE
func (s *Server) handleRender(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet && r.Method != http.MethodPost {
		w.Header().Set("Allow", "GET, POST")
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	flusher, ok := w.(http.Flusher)
	if !ok {
		http.Error(w, "streaming not supported", http.StatusInternalServerError)
		return
	}

	s.setSSEHeaders(w)
	ctx := r.Context()

	req, err := s.parseRenderRequest(r)
	if err != nil {
		s.writeSSEEvent(w, flusher, SSEEvent{Type: "error", Data: fmt.Sprintf("Invalid request: %v", err)})
		return
	}

	consoleChan, renderLogger := s.setupConsoleLogging()

	pipeline, err := s.setupRenderingPipeline(r, req, renderLogger)
	if err != nil {
		s.writeSSEEvent(w, flusher, SSEEvent{Type: "error", Data: err.Error()})
		return
	}

	// The render goroutine produces events; this goroutine is the only writer
	events := make(chan SSEEvent, 16)
	go s.runRender(ctx, pipeline, req, events)

	for {
		select {
		case msg := <-consoleChan:
			s.writeConsoleMessage(w, flusher, msg)

		case event, ok := <-events:
			// Flush console output logged before this event so the stream stays in order
			s.drainConsole(w, flusher, consoleChan)
			if !ok {
				if dropped := renderLogger.Dropped(); dropped > 0 {
					log.Printf("[%s] dropped %d console messages", renderLogger.renderID, dropped)
				}
				return
			}
			if err := s.writeSSEEvent(w, flusher, event); err != nil {
				return
			}

		case <-ctx.Done():
			// Client disconnected; the render goroutine sees the same cancellation
			return
		}
	}
}

// setSSEHeaders sets the required headers for Server-Sent Events
func (s *Server) setSSEHeaders(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.Header().Set("Access-Control-Allow-Origin", "*")
}

// setupConsoleLogging creates console channel and web logger for a render
func (s *Server) setupConsoleLogging() (chan ConsoleMessage, *RenderLogger) {
	consoleChan := make(chan ConsoleMessage, 50)
	renderID := fmt.Sprintf("render-%d", time.Now().UnixNano())
	return consoleChan, NewRenderLogger(renderID, consoleChan)
}

// setupRenderingPipeline creates and configures the scene and raytracer
func (s *Server) setupRenderingPipeline(r *http.Request, req *RenderRequest, logger core.Logger) (*RenderingPipeline, error) {
	sceneObj, err := s.createScene(r, req)
	if err != nil {
		return nil, err
	}
	if err := sceneObj.Validate(); err != nil {
		return nil, fmt.Errorf("invalid scene: %w", err)
	}

	_, _, degenerate := sceneObj.ShapeCounts()
	if degenerate > 0 {
		logger.Printf("Warning: %d degenerate triangles will never be hit\n", degenerate)
	}

	integ := integrator.NewWhittedIntegrator(integrator.Config{
		MaxDepth:        req.MaxDepth,
		MinContribution: req.MinContribution,
	})
	config := renderer.DefaultConfig()
	config.NumWorkers = req.Workers

	return &RenderingPipeline{
		Scene:     sceneObj,
		Raytracer: renderer.NewRaytracer(sceneObj, req.Width, req.Height, integ, config, logger),
	}, nil
}

// runRender renders the scene and sends progress, then complete or error. It closes events when done.
func (s *Server) runRender(ctx context.Context, pipeline *RenderingPipeline, req *RenderRequest, events chan<- SSEEvent) {
	defer close(events)

	onProgress := func(p renderer.Progress) {
		update := ProgressUpdate{
			Percent:       p.Percent,
			RowsCompleted: p.RowsCompleted,
			TotalRows:     p.TotalRows,
			RemainingMs:   p.Remaining.Milliseconds(),
		}
		data, err := json.Marshal(update)
		if err != nil {
			log.Printf("Error marshaling progress update: %v", err)
			return
		}
		sendEvent(ctx, events, SSEEvent{Type: "progress", Data: string(data)})
	}

	buffer, stats, err := pipeline.Raytracer.Render(ctx, onProgress)
	if err != nil {
		sendEvent(ctx, events, SSEEvent{Type: "error", Data: fmt.Sprintf("Rendering failed: %v", err)})
		return
	}

	imageData, err := imageToBase64PNG(buffer.ToImage())
	if err != nil {
		sendEvent(ctx, events, SSEEvent{Type: "error", Data: fmt.Sprintf("failed to encode image: %v", err)})
		return
	}

	data, err := json.Marshal(CompleteUpdate{
		ImageData:      imageData,
		Width:          req.Width,
		Height:         req.Height,
		ElapsedMs:      stats.Elapsed.Milliseconds(),
		NumWorkers:     stats.NumWorkers,
		PrimitiveCount: pipeline.Scene.GetPrimitiveCount(),
	})
	if err != nil {
		sendEvent(ctx, events, SSEEvent{Type: "error", Data: fmt.Sprintf("failed to encode result: %v", err)})
		return
	}
	sendEvent(ctx, events, SSEEvent{Type: "complete", Data: string(data)})
}

// sendEvent delivers an event unless the client has gone away
func sendEvent(ctx context.Context, events chan<- SSEEvent, event SSEEvent) {
	select {
	case events <- event:
	case <-ctx.Done():
	}
}

// drainConsole writes every console message already queued
func (s *Server) drainConsole(w http.ResponseWriter, flusher http.Flusher, consoleChan chan ConsoleMessage) {
	for {
		select {
		case msg := <-consoleChan:
			s.writeConsoleMessage(w, flusher, msg)
		default:
			return
		}
	}
}

func (s *Server) writeConsoleMessage(w http.ResponseWriter, flusher http.Flusher, msg ConsoleMessage) {
	data, err := json.Marshal(msg)
	if err != nil {
		log.Printf("Error marshaling console message: %v", err)
		return
	}
	s.writeSSEEvent(w, flusher, SSEEvent{Type: "console", Data: string(data)})
}

// writeSSEEvent writes one event and flushes it to the client
func (s *Server) writeSSEEvent(w http.ResponseWriter, flusher http.Flusher, event SSEEvent) error {
	if _, err := fmt.Fprintf(w, "event: %s\ndata: %s\n\n", event.Type, event.Data); err != nil {
		return err
	}
	flusher.Flush()
	return nil
}

// imageToBase64PNG converts an image to base64-encoded PNG
func imageToBase64PNG(img image.Image) (string, error) {
	var buf bytes.Buffer
	if err := loaders.EncodePNG(&buf, img); err != nil {
		return "", err
	}
	return base64.StdEncoding.EncodeToString(buf.Bytes()), nil
}
