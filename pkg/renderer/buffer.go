package renderer

import (
	"image"
	"image/color"

	"github.com/df07/go-whitted-raytracer/pkg/core"
)

// Buffer is the rendered image as unclamped linear colors, row-major with row 0 at the top
type Buffer struct {
	Width  int
	Height int
	Pixels []core.Vec3
}

// NewBuffer creates a black buffer of the given size
func NewBuffer(width, height int) *Buffer {
	return &Buffer{
		Width:  width,
		Height: height,
		Pixels: make([]core.Vec3, width*height),
	}
}

// At returns the color of pixel (x, y)
func (b *Buffer) At(x, y int) core.Vec3 {
	return b.Pixels[y*b.Width+x]
}

// Set stores the color of pixel (x, y)
func (b *Buffer) Set(x, y int, c core.Vec3) {
	b.Pixels[y*b.Width+x] = c
}

// ToImage scales every channel by 255, clamps to [0, 255] and truncates to 8 bits
func (b *Buffer) ToImage() *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, b.Width, b.Height))
	for y := 0; y < b.Height; y++ {
		for x := 0; x < b.Width; x++ {
			img.SetRGBA(x, y, vec3ToColor(b.At(x, y)))
		}
	}
	return img
}

// vec3ToColor converts a linear color to RGBA without gamma correction
func vec3ToColor(c core.Vec3) color.RGBA {
	return color.RGBA{
		R: toByte(c.X),
		G: toByte(c.Y),
		B: toByte(c.Z),
		A: 255,
	}
}

func toByte(v float64) uint8 {
	v *= 255
	switch {
	case !(v > 0): // also catches NaN
		return 0
	case v >= 255:
		return 255
	default:
		return uint8(v)
	}
}
