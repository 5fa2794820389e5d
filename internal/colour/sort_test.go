package colour

import (
	"errors"
	"math/rand"
	"slices"
	"testing"
)

func randomPalette(n int, seed int64) Palette {
	rng := rand.New(rand.NewSource(seed))
	colours := make([]RGB, n)
	for i := range colours {
		colours[i] = RGB{R: uint8(rng.Intn(256)), G: uint8(rng.Intn(256)), B: uint8(rng.Intn(256))}
	}
	// Force some ties and achromatic entries.
	colours[0] = RGB{R: 50, G: 50, B: 50}
	colours[1] = RGB{R: 200, G: 200, B: 200}
	colours[2] = colours[3]
	return NewPalette(colours...)
}

func sortedHex(p Palette) []string {
	hex := p.ToHex()
	slices.Sort(hex)
	return hex
}

func TestReorderKeysAreMonotonic(t *testing.T) {
	tests := []struct {
		mode       SortMode
		key        func(RGB) float64
		descending bool
	}{
		{mode: SortBrightnessAscending, key: Luma},
		{mode: SortBrightnessDescending, key: Luma, descending: true},
		{mode: SortHueAscending, key: Hue},
		{mode: SortSaturationAscending, key: Saturation},
	}

	for _, tt := range tests {
		t.Run(string(tt.mode), func(t *testing.T) {
			for seed := int64(0); seed < 20; seed++ {
				sorted := Reorder(randomPalette(12, seed), tt.mode).Colours()
				for i := 1; i < len(sorted); i++ {
					prev, cur := tt.key(sorted[i-1]), tt.key(sorted[i])
					if tt.descending && prev < cur || !tt.descending && prev > cur {
						t.Fatalf("seed %d: keys out of order at %d: %v then %v", seed, i, prev, cur)
					}
				}
			}
		})
	}
}

func TestReorderPreservesMultiset(t *testing.T) {
	for _, mode := range ValidSortModes() {
		t.Run(string(mode), func(t *testing.T) {
			palette := randomPalette(10, 99)
			reordered := Reorder(palette, mode)
			if !slices.Equal(sortedHex(palette), sortedHex(reordered)) {
				t.Errorf("Reorder changed colours: %v -> %v", palette.ToHex(), reordered.ToHex())
			}
		})
	}
}

func TestReorderNoneAndReverse(t *testing.T) {
	palette := randomPalette(9, 5)

	if got := Reorder(palette, SortNone); !got.Equal(palette) {
		t.Errorf("SortNone changed order: %v", got.ToHex())
	}

	reversed := Reorder(palette, SortReverse)
	first, _ := reversed.At(0)
	last, _ := palette.At(palette.Len() - 1)
	if first != last {
		t.Errorf("Reverse first = %s, want %s", first.Hex(), last.Hex())
	}
	if got := Reorder(reversed, SortReverse); !got.Equal(palette) {
		t.Errorf("Reversing twice = %v, want %v", got.ToHex(), palette.ToHex())
	}
}

func TestReorderDoesNotMutateInput(t *testing.T) {
	palette := randomPalette(8, 11)
	before := palette.Colours()

	_ = Reorder(palette, SortBrightnessAscending)
	_ = Reorder(palette, SortReverse)

	if !slices.Equal(before, palette.Colours()) {
		t.Error("Reorder mutated its input palette")
	}
}

func TestReorderIsStable(t *testing.T) {
	// Same luma, different colours: order must be kept in both directions.
	a := RGB{R: 100, G: 100, B: 100}
	b := RGB{R: 100, G: 100, B: 100}
	c := RGB{R: 0, G: 0, B: 0}
	red := RGB{R: 255}
	grey := RGB{R: 128, G: 128, B: 128}
	white := RGB{R: 255, G: 255, B: 255}

	got := Reorder(NewPalette(a, c, b), SortBrightnessDescending).Colours()
	if got[0] != a || got[1] != b || got[2] != c {
		t.Errorf("Descending sort not stable: %v", got)
	}

	// Achromatic colours share hue 0 with pure red.
	got = Reorder(NewPalette(white, red, grey), SortHueAscending).Colours()
	if !slices.Equal(got, []RGB{white, red, grey}) {
		t.Errorf("Hue sort not stable for hue ties: %v", got)
	}

	once := Reorder(randomPalette(12, 3), SortHueAscending)
	if twice := Reorder(once, SortHueAscending); !twice.Equal(once) {
		t.Error("Sorting twice changed the order")
	}
}

func TestReorderBrightnessExample(t *testing.T) {
	palette := NewPalette(RGB{R: 255, G: 255, B: 255}, RGB{}, RGB{R: 255})

	got := Reorder(palette, SortBrightnessAscending).ToHex()
	want := []string{"#000000", "#ff0000", "#ffffff"}
	if !slices.Equal(got, want) {
		t.Errorf("Ascending = %v, want %v", got, want)
	}

	got = Reorder(palette, SortBrightnessDescending).ToHex()
	slices.Reverse(want)
	if !slices.Equal(got, want) {
		t.Errorf("Descending = %v, want %v", got, want)
	}
}

func TestParseSortMode(t *testing.T) {
	tests := []struct {
		input   string
		want    SortMode
		wantErr bool
	}{
		{input: "brightness-ascending", want: SortBrightnessAscending},
		{input: "Hue-Ascending", want: SortHueAscending},
		{input: "dark-to-light", want: SortBrightnessAscending},
		{input: "light-to-dark", want: SortBrightnessDescending},
		{input: "reverse", want: SortReverse},
		{input: "original", want: SortNone},
		{input: "none", want: SortNone},
		{input: "random", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseSortMode(tt.input)
			if tt.wantErr {
				var paramsErr *InvalidParamsError
				if !errors.As(err, &paramsErr) {
					t.Errorf("Expected InvalidParamsError, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("Unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("ParseSortMode(%q) = %s, want %s", tt.input, got, tt.want)
			}
		})
	}
}
