package main

import (
	"context"
	"flag"
	"fmt"
	"image"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"time"

	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/integrator"
	"github.com/df07/go-whitted-raytracer/pkg/loaders"
	"github.com/df07/go-whitted-raytracer/pkg/renderer"
	"github.com/df07/go-whitted-raytracer/pkg/scene"
)

// sceneDir is where scene files are looked up by name
const sceneDir = "scenes"

// options holds the parsed command line
type options struct {
	scene           string
	width           int
	height          int
	workers         int
	seed            int64
	maxDepth        int
	minContribution float64
	output          string
	compare         string
	annotate        bool
}

func main() {
	// Parse command line flags
	opts := options{}
	flag.StringVar(&opts.scene, "scene", "default", "Built-in scene name, scene file name in scenes/, or path to a scene file")
	flag.IntVar(&opts.width, "width", 500, "Image width in pixels")
	flag.IntVar(&opts.height, "height", 500, "Image height in pixels")
	flag.IntVar(&opts.workers, "workers", 0, "Number of parallel workers (0 = auto-detect CPU count)")
	flag.Int64Var(&opts.seed, "seed", renderer.DefaultConfig().Seed, "Seed for the row order shuffle")
	flag.IntVar(&opts.maxDepth, "max-depth", integrator.DefaultConfig().MaxDepth, "Maximum number of mirror bounces")
	flag.Float64Var(&opts.minContribution, "min-contribution", integrator.DefaultConfig().MinContribution, "Stop reflecting once the path reflectivity drops below this")
	flag.StringVar(&opts.output, "output", "", "Output image (.png or .jpg), default output/<scene>/render_<timestamp>.png")
	flag.StringVar(&opts.compare, "compare", "", "Reference image to compare the render against")
	flag.BoolVar(&opts.annotate, "annotate", false, "Draw render statistics onto the saved image")
	list := flag.Bool("list", false, "List available scenes and exit")
	help := flag.Bool("help", false, "Show help information")
	flag.Parse()

	// Show help if requested
	if *help {
		showHelp()
		return
	}

	if *list {
		if err := listScenes(os.Stdout, sceneDir); err != nil {
			fmt.Fprintf(os.Stderr, "Error listing scenes: %v\n", err)
			os.Exit(1)
		}
		return
	}

	// Ctrl-C cancels the render
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	fmt.Println("Starting Whitted Raytracer...")
	if _, err := run(ctx, opts, renderer.NewDefaultLogger()); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		stop()
		os.Exit(1)
	}
}

func showHelp() {
	fmt.Println("Whitted Raytracer")
	fmt.Println("Usage: raytracer [options]")
	fmt.Println()
	fmt.Println("Options:")
	flag.PrintDefaults()
	fmt.Println()
	fmt.Println("Built-in scenes:")
	for _, name := range scene.BuiltinScenes() {
		fmt.Printf("  %s\n", name)
	}
	fmt.Println()
	fmt.Println("Use -list to include the scene files found in scenes/")
}

// run renders the selected scene and saves the image, returning the file name
func run(ctx context.Context, opts options, logger core.Logger) (string, error) {
	sceneObj, err := createScene(opts.scene)
	if err != nil {
		return "", err
	}
	if err := sceneObj.Validate(); err != nil {
		return "", fmt.Errorf("invalid scene %s: %w", opts.scene, err)
	}

	spheres, triangles, degenerate := sceneObj.ShapeCounts()
	logger.Printf("Scene %s: %d spheres, %d triangles\n", opts.scene, spheres, triangles)
	if degenerate > 0 {
		logger.Printf("Warning: %d degenerate triangles will never be hit\n", degenerate)
	}

	integ := integrator.NewWhittedIntegrator(integrator.Config{
		MaxDepth:        opts.maxDepth,
		MinContribution: opts.minContribution,
	})
	raytracer := renderer.NewRaytracer(sceneObj, opts.width, opts.height, integ, renderer.Config{
		NumWorkers: opts.workers,
		Seed:       opts.seed,
	}, logger)

	buffer, stats, err := raytracer.Render(ctx, nil)
	if err != nil {
		return "", fmt.Errorf("render failed: %w", err)
	}
	logger.Printf("Rendered %d pixels with %d workers\n", stats.TotalPixels, stats.NumWorkers)

	var img image.Image = buffer.ToImage()
	logger.Printf("Average luminance: %.4f\n", renderer.CalculateAverageLuminance(img))

	if opts.compare != "" {
		reference, err := loaders.LoadImage(opts.compare)
		if err != nil {
			return "", err
		}
		diff, err := renderer.MeanAbsoluteDifference(img, reference.Image)
		if err != nil {
			return "", fmt.Errorf("cannot compare with %s: %w", opts.compare, err)
		}
		logger.Printf("Mean absolute difference from %s: %.3f\n", opts.compare, diff)
	}

	if opts.annotate {
		img = loaders.Annotate(img,
			fmt.Sprintf("%s %dx%d", opts.scene, opts.width, opts.height),
			fmt.Sprintf("%d workers, %v", stats.NumWorkers, stats.Elapsed.Round(time.Millisecond)))
	}

	filename := opts.output
	if filename == "" {
		timestamp := time.Now().Format("20060102_150405")
		filename = filepath.Join(createOutputDir(opts.scene), fmt.Sprintf("render_%s.png", timestamp))
	}
	if err := os.MkdirAll(filepath.Dir(filename), 0755); err != nil {
		return "", fmt.Errorf("error creating output directory: %w", err)
	}

	if err := loaders.SaveImage(filename, img); err != nil {
		return "", err
	}

	logger.Printf("Render saved as %s\n", filename)
	return filename, nil
}

// createScene resolves a built-in scene name first, then a scene file: "file:<name>"
// or a bare name refers to scenes/<name>.txt, anything else is treated as a path.
func createScene(name string) (*scene.Scene, error) {
	if name == "" {
		return nil, fmt.Errorf("no scene given")
	}

	for _, builtin := range scene.BuiltinScenes() {
		if builtin == name {
			return scene.NewBuiltinScene(name)
		}
	}

	if fileName, ok := strings.CutPrefix(name, "file:"); ok {
		return loaders.LoadScene(filepath.Join(sceneDir, fileName+".txt"))
	}

	if _, err := os.Stat(name); err == nil {
		return loaders.LoadScene(name)
	}

	byName := filepath.Join(sceneDir, name+".txt")
	if _, err := os.Stat(byName); err == nil {
		return loaders.LoadScene(byName)
	}

	return nil, fmt.Errorf("unknown scene %q: not a built-in scene (%s) or a scene file",
		name, strings.Join(scene.BuiltinScenes(), ", "))
}

// createOutputDir returns output/<scene>, using the file's base name for scene files
func createOutputDir(name string) string {
	name = strings.TrimPrefix(name, "file:")
	base := strings.TrimSuffix(filepath.Base(name), filepath.Ext(name))
	return filepath.Join("output", base)
}

// listScenes prints every scene group and its scenes
func listScenes(w io.Writer, dir string) error {
	response, err := scene.ListAllScenes(dir)
	if err != nil {
		return err
	}

	for _, group := range response.Groups {
		fmt.Fprintf(w, "%s:\n", group.Name)
		for _, info := range group.Scenes {
			id := info.ID
			if info.Type == "file" {
				id = info.FilePath
			}
			if info.Description != "" {
				fmt.Fprintf(w, "  %-28s %s - %s\n", id, info.DisplayName, info.Description)
			} else {
				fmt.Fprintf(w, "  %-28s %s\n", id, info.DisplayName)
			}
		}
	}
	return nil
}
