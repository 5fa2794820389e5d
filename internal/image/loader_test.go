package image

import (
	"bytes"
	"compress/gzip"
	"context"
	"errors"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"golang.org/x/image/bmp"

	"github.com/jmylchreest/gisramp/internal/colour"
	httputil "github.com/jmylchreest/gisramp/internal/util/http"
)

func testImage() *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, 8, 4))
	for y := 0; y < 4; y++ {
		for x := 0; x < 8; x++ {
			img.Set(x, y, color.RGBA{R: uint8(x * 30), G: uint8(y * 60), B: 100, A: 255})
		}
	}
	return img
}

func pngBytes(t *testing.T) []byte {
	t.Helper()
	var buf bytes.Buffer
	if err := png.Encode(&buf, testImage()); err != nil {
		t.Fatalf("Failed to encode png: %v", err)
	}
	return buf.Bytes()
}

func writeFile(t *testing.T, dir, name string, data []byte) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("Failed to write %s: %v", name, err)
	}
	return path
}

func TestFileLoaderLoad(t *testing.T) {
	dir := t.TempDir()

	var gz bytes.Buffer
	w := gzip.NewWriter(&gz)
	w.Write(pngBytes(t))
	w.Close()

	var bmpBuf bytes.Buffer
	if err := bmp.Encode(&bmpBuf, testImage()); err != nil {
		t.Fatalf("Failed to encode bmp: %v", err)
	}

	tests := []struct {
		name string
		file string
		data []byte
	}{
		{name: "png", file: "plain.png", data: pngBytes(t)},
		{name: "gzipped png", file: "packed.png.gz", data: gz.Bytes()},
		{name: "bmp", file: "plain.bmp", data: bmpBuf.Bytes()},
	}

	loader := NewFileLoader()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeFile(t, dir, tt.file, tt.data)
			img, err := loader.Load(context.Background(), path)
			if err != nil {
				t.Fatalf("Load failed: %v", err)
			}
			if img.Bounds().Dx() != 8 || img.Bounds().Dy() != 4 {
				t.Errorf("Unexpected bounds %v", img.Bounds())
			}
		})
	}
}

func TestFileLoaderErrors(t *testing.T) {
	dir := t.TempDir()
	loader := NewFileLoader()

	if _, err := loader.Load(context.Background(), ""); err == nil {
		t.Error("Expected error for empty path")
	}
	if _, err := loader.Load(context.Background(), filepath.Join(dir, "missing.png")); err == nil {
		t.Error("Expected error for missing file")
	}
	if _, err := loader.Load(context.Background(), dir); err == nil {
		t.Error("Expected error for directory")
	}

	garbage := writeFile(t, dir, "garbage.png", []byte("this is not a png"))
	_, err := loader.Load(context.Background(), garbage)
	var imageErr *colour.InvalidImageError
	if !errors.As(err, &imageErr) {
		t.Errorf("Expected InvalidImageError for undecodable file, got %v", err)
	}
}

func TestSmartLoaderURL(t *testing.T) {
	data := pngBytes(t)
	loader := NewSmartLoader()
	loader.fetch = func(_ context.Context, url string, opts httputil.FetchOptions) ([]byte, error) {
		if url != "https://example.com/tiles/dem.png?v=2" {
			t.Errorf("Unexpected URL %q", url)
		}
		if opts.MaxBytes == 0 {
			t.Error("Expected a response size limit")
		}
		return data, nil
	}

	img, err := loader.Load(context.Background(), "https://example.com/tiles/dem.png?v=2")
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if img.Bounds().Dx() != 8 {
		t.Errorf("Unexpected bounds %v", img.Bounds())
	}

	loader.fetch = func(context.Context, string, httputil.FetchOptions) ([]byte, error) {
		return nil, errors.New("connection refused")
	}
	if _, err := loader.Load(context.Background(), "https://example.com/a.png"); err == nil {
		t.Error("Expected fetch error to propagate")
	}
}

func TestValidateImagePath(t *testing.T) {
	dir := t.TempDir()
	pngPath := writeFile(t, dir, "a.png", pngBytes(t))
	packed := writeFile(t, dir, "b.tif.xz", []byte("x"))
	text := writeFile(t, dir, "notes.txt", []byte("x"))

	tests := []struct {
		name    string
		path    string
		wantErr bool
	}{
		{name: "png", path: pngPath},
		{name: "compressed tiff", path: packed},
		{name: "directory", path: dir},
		{name: "url", path: "https://example.com/a.png"},
		{name: "text file", path: text, wantErr: true},
		{name: "missing", path: filepath.Join(dir, "nope.png"), wantErr: true},
		{name: "empty", path: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateImagePath(tt.path)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateImagePath(%q) error = %v, wantErr %v", tt.path, err, tt.wantErr)
			}
		})
	}
}

func TestResolveImagePaths(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "b.png", pngBytes(t))
	writeFile(t, dir, "a.jpg", []byte("x"))
	writeFile(t, dir, "readme.md", []byte("x"))
	if err := os.Mkdir(filepath.Join(dir, "sub.png"), 0o755); err != nil {
		t.Fatal(err)
	}

	paths, err := ResolveImagePaths(dir)
	if err != nil {
		t.Fatalf("ResolveImagePaths failed: %v", err)
	}
	want := []string{filepath.Join(dir, "a.jpg"), filepath.Join(dir, "b.png")}
	if len(paths) != len(want) || paths[0] != want[0] || paths[1] != want[1] {
		t.Errorf("ResolveImagePaths = %v, want %v", paths, want)
	}

	single, err := ResolveImagePaths(want[1])
	if err != nil || len(single) != 1 || single[0] != want[1] {
		t.Errorf("ResolveImagePaths(file) = %v, %v", single, err)
	}

	if _, err := ResolveImagePaths(t.TempDir()); err == nil {
		t.Error("Expected error for directory without images")
	}
}
