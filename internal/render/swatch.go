// Package render rasterises palettes into swatch images that show how a ramp
// will look when stretched across a raster's value range.
package render

import (
	"fmt"
	"image"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/image/bmp"

	"github.com/jmylchreest/gisramp/internal/colour"
)

const (
	// DefaultWidth is the default swatch width in pixels.
	DefaultWidth = 512
	// DefaultHeight is the default swatch height in pixels.
	DefaultHeight = 48
)

// Style selects how the palette is laid out horizontally.
type Style string

const (
	// StyleGradient blends linearly between neighbouring stops.
	StyleGradient Style = "gradient"
	// StyleBlocks draws one flat block per colour.
	StyleBlocks Style = "blocks"
)

// Swatch renders p as a width x height image. Stops are spaced evenly with
// the first colour at x=0 and the last at x=width-1.
func Swatch(p colour.Palette, width, height int, style Style) (*image.NRGBA, error) {
	if p.Len() == 0 {
		return nil, fmt.Errorf("cannot render an empty palette")
	}
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("invalid swatch size %dx%d", width, height)
	}

	colours := p.Colours()
	img := image.NewNRGBA(image.Rect(0, 0, width, height))

	for x := range width {
		var c colour.RGB
		switch style {
		case StyleBlocks:
			c = colours[x*len(colours)/width]
		default:
			c = stopAt(colours, x, width)
		}
		for y := range height {
			img.Set(x, y, c)
		}
	}

	return img, nil
}

// stopAt interpolates the colour at column x.
func stopAt(colours []colour.RGB, x, width int) colour.RGB {
	if len(colours) == 1 || width == 1 {
		return colours[0]
	}

	pos := float64(x) / float64(width-1) * float64(len(colours)-1)
	i := int(pos)
	if i >= len(colours)-1 {
		return colours[len(colours)-1]
	}
	return colour.Blend(colours[i], colours[i+1], pos-float64(i))
}

// Encode writes img in the format implied by filename's extension.
func Encode(w io.Writer, img image.Image, filename string) error {
	switch ext := strings.ToLower(filepath.Ext(filename)); ext {
	case ".png", "":
		return png.Encode(w, img)
	case ".bmp":
		return bmp.Encode(w, img)
	default:
		return fmt.Errorf("unsupported swatch format %q (supported: .png, .bmp)", ext)
	}
}

// WriteFile renders p and saves it to path.
func WriteFile(path string, p colour.Palette, width, height int, style Style) error {
	img, err := Swatch(p, width, height, style)
	if err != nil {
		return err
	}

	f, err := os.Create(path) // #nosec G304 - user-specified output path
	if err != nil {
		return fmt.Errorf("failed to create swatch file: %w", err)
	}

	if err := Encode(f, img, path); err != nil {
		_ = f.Close()
		return fmt.Errorf("failed to encode swatch: %w", err)
	}
	return f.Close()
}
