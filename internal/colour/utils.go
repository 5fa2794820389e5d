package colour

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
	"golang.org/x/image/colornames"

	"github.com/jmylchreest/gisramp/internal/security"
)

// Luma returns the perceptual brightness of a colour using the Rec. 601
// weights: 0.299*R + 0.587*G + 0.114*B. The result is in [0, 255].
func Luma(c RGB) float64 {
	return 0.299*float64(c.R) + 0.587*float64(c.G) + 0.114*float64(c.B)
}

// HSV converts a colour to hue (degrees, [0, 360)), saturation and value ([0, 1]).
// Achromatic colours (R == G == B) report a hue of 0.
func HSV(c RGB) (h, s, v float64) {
	return toColorful(c).Hsv()
}

// Hue returns the HSV hue of a colour in degrees.
func Hue(c RGB) float64 {
	h, _, _ := HSV(c)
	return h
}

// Saturation returns the HSV saturation of a colour.
func Saturation(c RGB) float64 {
	_, s, _ := HSV(c)
	return s
}

func toColorful(c RGB) colorful.Color {
	return colorful.Color{
		R: float64(c.R) / 255.0,
		G: float64(c.G) / 255.0,
		B: float64(c.B) / 255.0,
	}
}

// fromColorful converts back to RGB, clamping out-of-gamut channels.
func fromColorful(c colorful.Color) RGB {
	r, g, b := c.Clamped().RGB255()
	return RGB{R: r, G: g, B: b}
}

// Blend linearly interpolates between two colours in RGB space.
// t is clamped to [0, 1].
func Blend(a, b RGB, t float64) RGB {
	t = math.Max(0, math.Min(1, t))
	return fromColorful(toColorful(a).BlendRgb(toColorful(b), t))
}

// clampChannel truncates a floating point channel toward zero and clamps it
// into [0, 255]. NaN maps to 0.
func clampChannel(v float64) uint8 {
	if math.IsNaN(v) {
		return 0
	}
	if v > 255 {
		return 255
	}
	return security.SafeUint8(int(v))
}

// ParseHex parses a hex colour string (#RRGGBB, RRGGBB, #RGB or RGB).
func ParseHex(hex string) (RGB, error) {
	s := strings.TrimPrefix(strings.TrimSpace(hex), "#")
	if len(s) == 3 {
		s = string([]byte{s[0], s[0], s[1], s[1], s[2], s[2]})
	}
	if len(s) != 6 {
		return RGB{}, fmt.Errorf("invalid hex colour %q: expected 6 hex digits", hex)
	}

	v, err := strconv.ParseUint(s, 16, 32)
	if err != nil {
		return RGB{}, fmt.Errorf("invalid hex colour %q: %w", hex, err)
	}

	return RGB{
		R: uint8(v >> 16),
		G: uint8(v >> 8),
		B: uint8(v),
	}, nil
}

// ParseColour parses a hex colour or an SVG/CSS colour name such as "teal".
func ParseColour(s string) (RGB, error) {
	if named, ok := colornames.Map[strings.ToLower(strings.TrimSpace(s))]; ok {
		return RGB{R: named.R, G: named.G, B: named.B}, nil
	}
	return ParseHex(s)
}
