package renderer

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/integrator"
	"github.com/df07/go-whitted-raytracer/pkg/scene"
)

// Config contains configuration for the render scheduler
type Config struct {
	NumWorkers int   // Number of parallel workers (0 = use CPU count)
	Seed       int64 // Seed for the row order shuffle
}

// DefaultConfig returns sensible default values
func DefaultConfig() Config {
	return Config{
		NumWorkers: 0, // Auto-detect CPU count
		Seed:       1,
	}
}

// Raytracer renders a scene one row at a time, shading the pixels of each row in parallel
type Raytracer struct {
	scene      *scene.Scene
	width      int
	height     int
	config     Config
	integrator integrator.Integrator
	logger     core.Logger
}

// NewRaytracer creates a new raytracer
func NewRaytracer(s *scene.Scene, width, height int, integ integrator.Integrator, config Config, logger core.Logger) *Raytracer {
	if logger == nil {
		logger = NewDefaultLogger()
	}
	return &Raytracer{
		scene:      s,
		width:      width,
		height:     height,
		config:     config,
		integrator: integ,
		logger:     logger,
	}
}

// Render shades every pixel and returns the assembled buffer. Rows are visited in a
// shuffled order so the remaining time estimate is representative of the whole image.
// onProgress may be nil. Cancelling ctx stops the render after the current row and
// returns ctx.Err() with no buffer.
func (rt *Raytracer) Render(ctx context.Context, onProgress ProgressFunc) (*Buffer, RenderStats, error) {
	if rt.width <= 0 || rt.height <= 0 {
		return nil, RenderStats{}, fmt.Errorf("invalid resolution %dx%d", rt.width, rt.height)
	}
	if rt.scene == nil || rt.scene.Camera == nil {
		return nil, RenderStats{}, fmt.Errorf("scene has no camera")
	}
	if err := ctx.Err(); err != nil {
		return nil, RenderStats{}, err
	}

	start := time.Now()

	projection := NewProjection(rt.scene.Camera, rt.width, rt.height)
	pool := NewWorkerPool(rt.scene, projection, rt.integrator, rt.config.NumWorkers, rt.width)
	pool.Start()
	defer pool.Stop()

	buffer := NewBuffer(rt.width, rt.height)
	rows := rand.New(rand.NewSource(rt.config.Seed)).Perm(rt.height)

	for count, y := range rows {
		select {
		case <-ctx.Done():
			rt.logger.Printf("Rendering cancelled after %d of %d rows\n", count, rt.height)
			return nil, RenderStats{}, ctx.Err()
		default:
		}

		for x := 0; x < rt.width; x++ {
			pool.SubmitTask(PixelTask{X: x, Y: y})
		}
		for i := 0; i < rt.width; i++ {
			result, ok := pool.GetResult()
			if !ok {
				return nil, RenderStats{}, fmt.Errorf("worker pool closed unexpectedly")
			}
			buffer.Set(result.X, result.Y, result.Color)
		}

		progress := newProgress(count+1, rt.height, time.Since(start))
		rt.logger.Printf("%.2f%% -- Estimated time remaining: %v\n", progress.Percent, progress.Remaining)
		if onProgress != nil {
			onProgress(progress)
		}
	}

	elapsed := time.Since(start)
	rt.logger.Printf("Render time: %v\n", elapsed)

	stats := RenderStats{
		TotalPixels: rt.width * rt.height,
		TotalRows:   rt.height,
		NumWorkers:  pool.GetNumWorkers(),
		Elapsed:     elapsed,
	}
	return buffer, stats, nil
}
