package colour

import (
	"fmt"
	"slices"
)

// Remove returns a new palette without the colour at index i.
// A palette cannot be emptied: removing the last colour is an error.
func (p Palette) Remove(i int) (Palette, error) {
	if err := p.checkIndex("index", i); err != nil {
		return Palette{}, err
	}
	if len(p.colours) == 1 {
		return Palette{}, &InvalidParamsError{Field: "index", Reason: "cannot remove the only colour"}
	}
	return Palette{colours: slices.Delete(p.Colours(), i, i+1)}, nil
}

// Replace returns a new palette with the colour at index i set to c.
func (p Palette) Replace(i int, c RGB) (Palette, error) {
	if err := p.checkIndex("index", i); err != nil {
		return Palette{}, err
	}
	colours := p.Colours()
	colours[i] = c
	return Palette{colours: colours}, nil
}

// Move returns a new palette with the colour at index from moved to index to,
// shifting the colours in between.
func (p Palette) Move(from, to int) (Palette, error) {
	if err := p.checkIndex("from", from); err != nil {
		return Palette{}, err
	}
	if err := p.checkIndex("to", to); err != nil {
		return Palette{}, err
	}
	colours := p.Colours()
	c := colours[from]
	colours = slices.Delete(colours, from, from+1)
	colours = slices.Insert(colours, to, c)
	return Palette{colours: colours}, nil
}

// MoveLeft swaps the colour at index i with its left neighbour.
// Moving the first colour left returns the palette unchanged.
func (p Palette) MoveLeft(i int) (Palette, error) {
	if err := p.checkIndex("index", i); err != nil {
		return Palette{}, err
	}
	if i == 0 {
		return NewPalette(p.colours...), nil
	}
	return p.Move(i, i-1)
}

// MoveRight swaps the colour at index i with its right neighbour.
// Moving the last colour right returns the palette unchanged.
func (p Palette) MoveRight(i int) (Palette, error) {
	if err := p.checkIndex("index", i); err != nil {
		return Palette{}, err
	}
	if i == len(p.colours)-1 {
		return NewPalette(p.colours...), nil
	}
	return p.Move(i, i+1)
}

// Permute returns a new palette where position j holds the colour previously
// at order[j]. order must be a permutation of 0..Len()-1.
func (p Palette) Permute(order []int) (Palette, error) {
	if len(order) != len(p.colours) {
		return Palette{}, &InvalidParamsError{
			Field:  "order",
			Reason: fmt.Sprintf("expected %d indices, got %d", len(p.colours), len(order)),
		}
	}

	seen := make([]bool, len(order))
	colours := make([]RGB, len(order))
	for j, i := range order {
		if err := p.checkIndex("order", i); err != nil {
			return Palette{}, err
		}
		if seen[i] {
			return Palette{}, &InvalidParamsError{
				Field:  "order",
				Reason: fmt.Sprintf("index %d appears more than once", i),
			}
		}
		seen[i] = true
		colours[j] = p.colours[i]
	}
	return Palette{colours: colours}, nil
}

// Arrange returns a palette with the caller-supplied order of colours.
// colours must hold exactly the same colours as p (same multiset), so a
// drag-and-drop style rearrangement can be applied without index bookkeeping.
func (p Palette) Arrange(colours []RGB) (Palette, error) {
	if !sameMultiset(p.colours, colours) {
		return Palette{}, &InvalidParamsError{
			Field:  "colours",
			Reason: "arrangement must contain exactly the palette's colours",
		}
	}
	return NewPalette(colours...), nil
}

func sameMultiset(a, b []RGB) bool {
	if len(a) != len(b) {
		return false
	}
	counts := make(map[RGB]int, len(a))
	for _, c := range a {
		counts[c]++
	}
	for _, c := range b {
		counts[c]--
		if counts[c] < 0 {
			return false
		}
	}
	return true
}
