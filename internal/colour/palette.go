// Package colour provides colour extraction, ordering and export of GIS colour ramps.
package colour

import (
	"encoding/json"
	"fmt"
	"image/color"
	"strings"
)

// RGB represents a colour in RGB format.
type RGB struct {
	R uint8 `json:"r"`
	G uint8 `json:"g"`
	B uint8 `json:"b"`
}

// String returns the RGB colour as a string in the format "rgb(r, g, b)".
func (rgb RGB) String() string {
	return fmt.Sprintf("rgb(%d, %d, %d)", rgb.R, rgb.G, rgb.B)
}

// Hex returns the RGB colour as a lowercase hex string (e.g., "#1a2b3c").
func (rgb RGB) Hex() string {
	return fmt.Sprintf("#%02x%02x%02x", rgb.R, rgb.G, rgb.B)
}

// RGBA implements color.Color so an RGB can be drawn directly.
func (rgb RGB) RGBA() (r, g, b, a uint32) {
	return color.RGBA{R: rgb.R, G: rgb.G, B: rgb.B, A: 255}.RGBA()
}

// ToRGB converts a color.Color to RGB, discarding alpha.
func ToRGB(c color.Color) RGB {
	nc := color.NRGBAModel.Convert(c).(color.NRGBA)
	return RGB{R: nc.R, G: nc.G, B: nc.B}
}

// Palette is an ordered sequence of colours. Order defines the left-to-right
// rendering of the ramp.
//
// A Palette never shares its backing array with callers: constructors copy
// their input and every edit returns a new Palette.
type Palette struct {
	colours []RGB
}

// NewPalette creates a new Palette holding a copy of colours.
func NewPalette(colours ...RGB) Palette {
	return Palette{colours: append([]RGB(nil), colours...)}
}

// Len returns the number of colours in the palette.
func (p Palette) Len() int {
	return len(p.colours)
}

// Colours returns a copy of the palette colours in order.
func (p Palette) Colours() []RGB {
	return append([]RGB(nil), p.colours...)
}

// At returns the colour at index i.
func (p Palette) At(i int) (RGB, error) {
	if err := p.checkIndex("index", i); err != nil {
		return RGB{}, err
	}
	return p.colours[i], nil
}

// Equal reports whether two palettes hold the same colours in the same order.
func (p Palette) Equal(other Palette) bool {
	if len(p.colours) != len(other.colours) {
		return false
	}
	for i := range p.colours {
		if p.colours[i] != other.colours[i] {
			return false
		}
	}
	return true
}

// ToHex converts the palette colours to hex strings.
// Returns a slice of hex colour codes (e.g., ["#1a2b3c", "#4d5e6f"]).
func (p Palette) ToHex() []string {
	hexColours := make([]string, len(p.colours))
	for i, c := range p.colours {
		hexColours[i] = c.Hex()
	}
	return hexColours
}

// All returns an iterator over all colours in the palette.
func (p Palette) All() func(func(int, RGB) bool) {
	return func(yield func(int, RGB) bool) {
		for i, c := range p.colours {
			if !yield(i, c) {
				return
			}
		}
	}
}

// String returns a human-readable string representation of the palette.
func (p Palette) String() string {
	if len(p.colours) == 0 {
		return "Empty palette"
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "Palette with %d colours:\n", len(p.colours))
	for i, c := range p.colours {
		fmt.Fprintf(&sb, "  %2d: %s (%s)\n", i+1, c.Hex(), c.String())
	}
	return sb.String()
}

// MarshalJSON encodes the palette as an array of hex strings.
func (p Palette) MarshalJSON() ([]byte, error) {
	return json.Marshal(p.ToHex())
}

// UnmarshalJSON decodes an array of hex strings.
func (p *Palette) UnmarshalJSON(data []byte) error {
	var hexColours []string
	if err := json.Unmarshal(data, &hexColours); err != nil {
		return err
	}
	colours := make([]RGB, len(hexColours))
	for i, h := range hexColours {
		c, err := ParseHex(h)
		if err != nil {
			return fmt.Errorf("colour %d: %w", i+1, err)
		}
		colours[i] = c
	}
	p.colours = colours
	return nil
}

func (p Palette) checkIndex(field string, i int) error {
	if i < 0 || i >= len(p.colours) {
		return &InvalidParamsError{
			Field:  field,
			Reason: fmt.Sprintf("index %d out of bounds (palette has %d colours)", i, len(p.colours)),
		}
	}
	return nil
}
