package server

import (
	"encoding/json"
	"testing"
	"time"
)

func TestRenderLogger_Levels(t *testing.T) {
	tests := []struct {
		name    string
		message string
		level   string
	}{
		{"progress line", "Row 3/10 done\n", LevelInfo},
		{"degenerate triangle warning", "Warning: 2 degenerate triangles will never be hit\n", LevelWarning},
		{"error line", "Error: render cancelled\n", LevelError},
		{"warning mid-message stays info", "Loaded scene. Warning: none\n", LevelInfo},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			console := make(chan ConsoleMessage, 1)
			NewRenderLogger("render-levels", console).Printf("%s", tt.message)

			msg := <-console
			if msg.Message != tt.message {
				t.Errorf("Expected message %q, got %q", tt.message, msg.Message)
			}
			if msg.Level != tt.level {
				t.Errorf("Expected level %q, got %q", tt.level, msg.Level)
			}
			if time.Since(msg.Timestamp) > time.Second {
				t.Errorf("Timestamp seems too old: %v", msg.Timestamp)
			}
		})
	}
}

func TestRenderLogger_KeepsOrder(t *testing.T) {
	console := make(chan ConsoleMessage, 4)
	logger := NewRenderLogger("render-order", console)

	logger.Printf("Loading %s with %d triangles...\n", "teapot.txt", 6320)
	logger.Printf("Rendering %dx%d\n", 400, 300)

	for _, want := range []string{"Loading teapot.txt with 6320 triangles...\n", "Rendering 400x300\n"} {
		if got := (<-console).Message; got != want {
			t.Errorf("Expected %q, got %q", want, got)
		}
	}
}

func TestRenderLogger_FullConsoleDrops(t *testing.T) {
	console := make(chan ConsoleMessage, 1)
	logger := NewRenderLogger("render-full", console)

	// Neither call may block once the console is full
	logger.Printf("first\n")
	logger.Printf("second\n")
	logger.Printf("third\n")

	if got := (<-console).Message; got != "first\n" {
		t.Errorf("Expected the first message to be kept, got %q", got)
	}
	if logger.Dropped() != 2 {
		t.Errorf("Expected 2 dropped messages, got %d", logger.Dropped())
	}
}

func TestRenderLogger_NilConsole(t *testing.T) {
	logger := NewRenderLogger("render-nil", nil)
	logger.Printf("Warning: nowhere to go\n")
	if logger.Dropped() != 0 {
		t.Errorf("Expected nothing counted as dropped, got %d", logger.Dropped())
	}
}

func TestConsoleMessage_JSONSerialization(t *testing.T) {
	msg := ConsoleMessage{
		Message:   "Warning: 1 degenerate triangles will never be hit\n",
		Timestamp: time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC),
		Level:     LevelWarning,
	}

	data, err := json.Marshal(msg)
	if err != nil {
		t.Fatalf("Failed to marshal: %v", err)
	}

	expected := `{"message":"Warning: 1 degenerate triangles will never be hit\n","timestamp":"2024-01-02T03:04:05Z","level":"warning"}`
	if string(data) != expected {
		t.Errorf("Expected %s, got %s", expected, data)
	}
}
