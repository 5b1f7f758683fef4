package server

import (
	"fmt"
	"log"
	"strings"
	"sync/atomic"
	"time"

	"github.com/df07/go-whitted-raytracer/pkg/core"
)

// Console message levels
const (
	LevelInfo    = "info"
	LevelWarning = "warning"
	LevelError   = "error"
)

// ConsoleMessage is one line of render output shown in the browser console
type ConsoleMessage struct {
	Message   string    `json:"message"`
	Timestamp time.Time `json:"timestamp"`
	Level     string    `json:"level"`
}

// RenderLogger forwards a single render's log output to its SSE stream and to the server log
type RenderLogger struct {
	renderID string
	console  chan<- ConsoleMessage
	dropped  atomic.Int64
}

// NewRenderLogger creates a logger for the render identified by renderID
func NewRenderLogger(renderID string, console chan<- ConsoleMessage) *RenderLogger {
	return &RenderLogger{renderID: renderID, console: console}
}

var _ core.Logger = (*RenderLogger)(nil)

// Printf implements core.Logger. Messages starting with "Warning:" or "Error:" get that level.
func (rl *RenderLogger) Printf(format string, args ...interface{}) {
	message := fmt.Sprintf(format, args...)
	log.Printf("[%s] %s", rl.renderID, strings.TrimRight(message, "\n"))

	if rl.console == nil {
		return
	}
	select {
	case rl.console <- ConsoleMessage{Message: message, Timestamp: time.Now(), Level: messageLevel(message)}:
	default:
		// The stream is behind; never stall the render for console output
		rl.dropped.Add(1)
	}
}

// Dropped returns how many messages were discarded because the console was full
func (rl *RenderLogger) Dropped() int64 {
	return rl.dropped.Load()
}

func messageLevel(message string) string {
	switch {
	case strings.HasPrefix(message, "Warning:"):
		return LevelWarning
	case strings.HasPrefix(message, "Error:"):
		return LevelError
	default:
		return LevelInfo
	}
}
