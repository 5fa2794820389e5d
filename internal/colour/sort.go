package colour

import (
	"cmp"
	"fmt"
	"slices"
	"strings"
)

// SortMode selects how Reorder arranges a palette.
type SortMode string

const (
	// SortBrightnessAscending orders by perceptual luma, dark to light.
	SortBrightnessAscending SortMode = "brightness-ascending"
	// SortBrightnessDescending orders by perceptual luma, light to dark.
	SortBrightnessDescending SortMode = "brightness-descending"
	// SortHueAscending orders by HSV hue (rainbow order).
	SortHueAscending SortMode = "hue-ascending"
	// SortSaturationAscending orders by HSV saturation, grey to vivid.
	SortSaturationAscending SortMode = "saturation-ascending"
	// SortReverse reverses the existing order.
	SortReverse SortMode = "reverse-existing-order"
	// SortNone keeps the existing order.
	SortNone SortMode = "none"
)

var sortAliases = map[string]SortMode{
	"dark-to-light": SortBrightnessAscending,
	"light-to-dark": SortBrightnessDescending,
	"hue":           SortHueAscending,
	"rainbow":       SortHueAscending,
	"saturation":    SortSaturationAscending,
	"reverse":       SortReverse,
	"original":      SortNone,
}

// ValidSortModes returns all sort modes in display order.
func ValidSortModes() []SortMode {
	return []SortMode{
		SortBrightnessAscending,
		SortBrightnessDescending,
		SortHueAscending,
		SortSaturationAscending,
		SortReverse,
		SortNone,
	}
}

// ParseSortMode converts a string to a SortMode, accepting the short aliases
// dark-to-light, light-to-dark, hue, rainbow, saturation, reverse and original.
func ParseSortMode(s string) (SortMode, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	if slices.Contains(ValidSortModes(), SortMode(name)) {
		return SortMode(name), nil
	}
	if mode, ok := sortAliases[name]; ok {
		return mode, nil
	}
	return "", &InvalidParamsError{
		Field:  "sort mode",
		Reason: fmt.Sprintf("unknown mode %q (valid: %v)", s, ValidSortModes()),
	}
}

// Reorder returns a new palette holding the same colours arranged by mode.
// All sorts are stable, so equal keys keep their input order and repeated
// application is idempotent. The input palette is not modified.
// Unrecognised modes behave like SortNone.
func Reorder(p Palette, mode SortMode) Palette {
	colours := p.Colours()

	switch mode {
	case SortBrightnessAscending:
		sortStableBy(colours, Luma, false)
	case SortBrightnessDescending:
		sortStableBy(colours, Luma, true)
	case SortHueAscending:
		sortStableBy(colours, Hue, false)
	case SortSaturationAscending:
		sortStableBy(colours, Saturation, false)
	case SortReverse:
		slices.Reverse(colours)
	}

	return Palette{colours: colours}
}

// sortStableBy sorts colours by a float key. Keys are computed once per colour.
func sortStableBy(colours []RGB, key func(RGB) float64, descending bool) {
	type keyed struct {
		c RGB
		k float64
	}
	items := make([]keyed, len(colours))
	for i, c := range colours {
		items[i] = keyed{c: c, k: key(c)}
	}

	slices.SortStableFunc(items, func(a, b keyed) int {
		if descending {
			return cmp.Compare(b.k, a.k)
		}
		return cmp.Compare(a.k, b.k)
	})

	for i, it := range items {
		colours[i] = it.c
	}
}
