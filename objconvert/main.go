package main

import (
	"bufio"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/df07/go-whitted-raytracer/pkg/loaders"
)

func main() {
	output := flag.String("o", "", "Output file (default <mesh>.txt)")
	unit := flag.Bool("unit", false, "Scale and center the mesh into the unit cube")
	header := flag.String("header", "", "Scene file whose camera, light and colors are written before the triangles")
	flag.Usage = func() {
		fmt.Fprintln(flag.CommandLine.Output(), "Usage: objconvert [options] mesh.obj")
		fmt.Fprintln(flag.CommandLine.Output())
		fmt.Fprintln(flag.CommandLine.Output(), "Converts every face of a Wavefront OBJ mesh into a colored Triangle record.")
		fmt.Fprintln(flag.CommandLine.Output())
		fmt.Fprintln(flag.CommandLine.Output(), "Options:")
		flag.PrintDefaults()
	}
	flag.Parse()

	if flag.NArg() != 1 {
		flag.Usage()
		os.Exit(2)
	}

	meshPath := flag.Arg(0)
	outPath := *output
	if outPath == "" {
		outPath = defaultOutputPath(meshPath)
	}

	count, err := convert(meshPath, outPath, *header, *unit)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Wrote %d triangles to %s\n", count, outPath)
}

// defaultOutputPath replaces the mesh file's extension with .txt
func defaultOutputPath(meshPath string) string {
	return strings.TrimSuffix(meshPath, filepath.Ext(meshPath)) + ".txt"
}

// convert writes the triangle records of meshPath to outPath, preceded by the
// header of headerScene when one is given
func convert(meshPath, outPath, headerScene string, fitUnitCube bool) (int, error) {
	triangles, err := loaders.LoadMesh(meshPath, fitUnitCube)
	if err != nil {
		return 0, err
	}

	file, err := os.Create(outPath)
	if err != nil {
		return 0, fmt.Errorf("failed to create output file: %w", err)
	}
	defer file.Close()

	w := bufio.NewWriter(file)
	if headerScene != "" {
		s, err := loaders.LoadScene(headerScene)
		if err != nil {
			return 0, err
		}
		if err := loaders.WriteSceneHeader(w, s); err != nil {
			return 0, err
		}
	}

	count, err := loaders.WriteTriangles(w, triangles, nil)
	if err != nil {
		return 0, err
	}
	if err := w.Flush(); err != nil {
		return 0, err
	}
	return count, file.Close()
}
