package renderer

import (
	"fmt"
	"image"
	"math"
	"time"
)

// RenderStats contains statistics about the rendering process
type RenderStats struct {
	TotalPixels int           // Total number of pixels rendered
	TotalRows   int           // Number of image rows
	NumWorkers  int           // Number of parallel workers used
	Elapsed     time.Duration // Wall clock render time
}

// Progress is reported after every completed row
type Progress struct {
	RowsCompleted int
	TotalRows     int
	Percent       float64
	Elapsed       time.Duration
	Remaining     time.Duration // Estimated time until the last row completes
}

// ProgressFunc receives progress updates. It is called from the rendering goroutine, one row at a time.
type ProgressFunc func(Progress)

// newProgress computes the completion percentage and remaining time after rowsCompleted rows
func newProgress(rowsCompleted, totalRows int, elapsed time.Duration) Progress {
	return Progress{
		RowsCompleted: rowsCompleted,
		TotalRows:     totalRows,
		Percent:       float64(rowsCompleted) / float64(totalRows) * 100,
		Elapsed:       elapsed,
		Remaining:     estimateRemaining(elapsed, rowsCompleted, totalRows),
	}
}

// estimateRemaining scales the elapsed time by total/completed - 1.
// Rows are rendered in random order, so elapsed time per row is a fair sample of the whole image.
func estimateRemaining(elapsed time.Duration, rowsCompleted, totalRows int) time.Duration {
	if rowsCompleted <= 0 {
		return 0
	}
	return time.Duration(float64(elapsed)*float64(totalRows)/float64(rowsCompleted)) - elapsed
}

// CalculateAverageLuminance returns the mean Rec. 709 luminance of an 8-bit image in [0, 1]
func CalculateAverageLuminance(img image.Image) float64 {
	bounds := img.Bounds()
	pixels := bounds.Dx() * bounds.Dy()
	if pixels == 0 {
		return 0
	}

	total := 0.0
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			r, g, b, _ := img.At(x, y).RGBA()
			total += 0.2126*float64(r)/0xffff + 0.7152*float64(g)/0xffff + 0.0722*float64(b)/0xffff
		}
	}
	return total / float64(pixels)
}

// MeanAbsoluteDifference compares two images of the same size channel by channel.
// The result is in 8-bit units: 0 for identical images, 255 for black against white.
func MeanAbsoluteDifference(a, b image.Image) (float64, error) {
	boundsA, boundsB := a.Bounds(), b.Bounds()
	if boundsA.Dx() != boundsB.Dx() || boundsA.Dy() != boundsB.Dy() {
		return 0, fmt.Errorf("image sizes differ: %dx%d vs %dx%d",
			boundsA.Dx(), boundsA.Dy(), boundsB.Dx(), boundsB.Dy())
	}

	pixels := boundsA.Dx() * boundsA.Dy()
	if pixels == 0 {
		return 0, nil
	}

	total := 0.0
	for y := 0; y < boundsA.Dy(); y++ {
		for x := 0; x < boundsA.Dx(); x++ {
			r1, g1, b1, _ := a.At(boundsA.Min.X+x, boundsA.Min.Y+y).RGBA()
			r2, g2, b2, _ := b.At(boundsB.Min.X+x, boundsB.Min.Y+y).RGBA()
			total += math.Abs(float64(r1>>8)-float64(r2>>8)) +
				math.Abs(float64(g1>>8)-float64(g2>>8)) +
				math.Abs(float64(b1>>8)-float64(b2>>8))
		}
	}
	return total / float64(pixels*3), nil
}
