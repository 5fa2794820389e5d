package seed

import (
	"image"
	"image/color"
	"testing"
)

func solid(c color.Color, w, h int) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, c)
		}
	}
	return img
}

func TestContentSeed(t *testing.T) {
	red := solid(color.RGBA{R: 255, A: 255}, 300, 200)
	redAgain := solid(color.RGBA{R: 255, A: 255}, 300, 200)
	blue := solid(color.RGBA{B: 255, A: 255}, 300, 200)
	redSmaller := solid(color.RGBA{R: 255, A: 255}, 200, 300)

	if ContentSeed(red) != ContentSeed(redAgain) {
		t.Error("Identical images produced different seeds")
	}
	if ContentSeed(red) == ContentSeed(blue) {
		t.Error("Different colours produced the same seed")
	}
	if ContentSeed(red) == ContentSeed(redSmaller) {
		t.Error("Different dimensions produced the same seed")
	}
}

func TestFilepathSeed(t *testing.T) {
	if FilepathSeed("a/b.png") != FilepathSeed("a/b.png") {
		t.Error("Same path produced different seeds")
	}
	if FilepathSeed("a/b.png") == FilepathSeed("a/c.png") {
		t.Error("Different paths produced the same seed")
	}
	if FilepathSeed("https://example.com/x.png") == FilepathSeed("https://example.com/y.png") {
		t.Error("Different URLs produced the same seed")
	}
}

func TestCalculate(t *testing.T) {
	img := solid(color.Gray{Y: 80}, 10, 10)
	value := int64(1234)

	tests := []struct {
		name    string
		img     image.Image
		path    string
		config  Config
		want    *int64
		wantErr bool
	}{
		{name: "manual", config: Config{Mode: ModeManual, Value: &value}, want: &value},
		{name: "manual without value", config: Config{Mode: ModeManual}, wantErr: true},
		{name: "content", img: img, config: Config{Mode: ModeContent}},
		{name: "content without image", config: Config{Mode: ModeContent}, wantErr: true},
		{name: "filepath", path: "x.png", config: Config{Mode: ModeFilepath}},
		{name: "filepath without path", config: Config{Mode: ModeFilepath}, wantErr: true},
		{name: "random", config: Config{Mode: ModeRandom}},
		{name: "unknown", config: Config{Mode: "lunar"}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Calculate(tt.img, tt.path, tt.config)
			if (err != nil) != tt.wantErr {
				t.Fatalf("Calculate() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.want != nil && got != *tt.want {
				t.Errorf("Calculate() = %d, want %d", got, *tt.want)
			}
		})
	}
}

func TestParseMode(t *testing.T) {
	for _, s := range []string{"content", "FILEPATH", " manual ", "random"} {
		if _, err := ParseMode(s); err != nil {
			t.Errorf("ParseMode(%q) failed: %v", s, err)
		}
	}
	if _, err := ParseMode("sometimes"); err == nil {
		t.Error("Expected error for invalid mode")
	}
}
