package loaders

import (
	"fmt"
	"image"
	_ "image/jpeg" // JPEG decoder
	_ "image/png"  // PNG decoder
	"io"
	"path/filepath"
	"strings"

	"github.com/fogleman/gg"

	"github.com/df07/go-whitted-raytracer/pkg/core"
)

// jpegQuality is used when a render is saved with a .jpg extension
const jpegQuality = 95

// ImageData contains loaded image data as Vec3 color array
type ImageData struct {
	Width  int
	Height int
	Pixels []core.Vec3
	Image  image.Image // The decoded image
}

// LoadImage loads a PNG or JPEG image and converts it to Vec3 color array
func LoadImage(filename string) (*ImageData, error) {
	img, err := gg.LoadImage(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to load image: %w", err)
	}

	// Convert to Vec3 array
	bounds := img.Bounds()
	width := bounds.Dx()
	height := bounds.Dy()
	pixels := make([]core.Vec3, width*height)

	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			r, g, b, _ := img.At(x+bounds.Min.X, y+bounds.Min.Y).RGBA()
			// RGBA returns uint32 in [0, 65535], convert to [0, 1]
			pixels[y*width+x] = core.NewVec3(
				float64(r)/65535.0,
				float64(g)/65535.0,
				float64(b)/65535.0,
			)
		}
	}

	return &ImageData{
		Width:  width,
		Height: height,
		Pixels: pixels,
		Image:  img,
	}, nil
}

// SaveImage writes img as PNG, or as JPEG when the file name ends in .jpg or .jpeg
func SaveImage(filename string, img image.Image) error {
	var err error
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".jpg", ".jpeg":
		err = gg.SaveJPG(filename, img, jpegQuality)
	default:
		err = gg.SavePNG(filename, img)
	}
	if err != nil {
		return fmt.Errorf("failed to save image: %w", err)
	}
	return nil
}

// EncodePNG writes img to w in PNG format
func EncodePNG(w io.Writer, img image.Image) error {
	return gg.NewContextForImage(img).EncodePNG(w)
}

// Annotate returns a copy of img with the given lines of text drawn in the top-left corner
func Annotate(img image.Image, lines ...string) image.Image {
	dc := gg.NewContextForImage(img)
	if len(lines) == 0 {
		return dc.Image()
	}

	const padding, lineHeight = 4.0, 14.0

	width := 0.0
	for _, line := range lines {
		if w, _ := dc.MeasureString(line); w > width {
			width = w
		}
	}

	// Translucent backing box so the text is readable on any render
	dc.SetRGBA(0, 0, 0, 0.6)
	dc.DrawRectangle(0, 0, width+2*padding, float64(len(lines))*lineHeight+2*padding)
	dc.Fill()

	dc.SetRGB(1, 1, 1)
	for i, line := range lines {
		dc.DrawStringAnchored(line, padding, padding+float64(i)*lineHeight, 0, 1)
	}
	return dc.Image()
}
