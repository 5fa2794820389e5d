package compression

import (
	"bytes"
	"compress/gzip"
	"testing"

	"github.com/ulikunitz/xz"
)

func gzipBytes(t *testing.T, data []byte) []byte {
	t.Helper()
	var buf bytes.Buffer
	w := gzip.NewWriter(&buf)
	if _, err := w.Write(data); err != nil {
		t.Fatalf("gzip write: %v", err)
	}
	if err := w.Close(); err != nil {
		t.Fatalf("gzip close: %v", err)
	}
	return buf.Bytes()
}

func xzBytes(t *testing.T, data []byte) []byte {
	t.Helper()
	var buf bytes.Buffer
	w, err := xz.NewWriter(&buf)
	if err != nil {
		t.Fatalf("xz writer: %v", err)
	}
	if _, err := w.Write(data); err != nil {
		t.Fatalf("xz write: %v", err)
	}
	if err := w.Close(); err != nil {
		t.Fatalf("xz close: %v", err)
	}
	return buf.Bytes()
}

func TestDecompress(t *testing.T) {
	payload := []byte("not really a raster, but bytes are bytes")

	tests := []struct {
		name       string
		data       []byte
		filename   string
		wantFormat Format
	}{
		{name: "plain", data: payload, filename: "image.png", wantFormat: FormatNone},
		{name: "gzip", data: gzipBytes(t, payload), filename: "image.png.gz", wantFormat: FormatGzip},
		{name: "gzip without extension", data: gzipBytes(t, payload), filename: "image.png", wantFormat: FormatGzip},
		{name: "xz", data: xzBytes(t, payload), filename: "image.tif.xz", wantFormat: FormatXz},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, format, err := Decompress(tt.data, tt.filename)
			if err != nil {
				t.Fatalf("Decompress failed: %v", err)
			}
			if format != tt.wantFormat {
				t.Errorf("format = %q, want %q", format, tt.wantFormat)
			}
			if !bytes.Equal(got, payload) {
				t.Errorf("Decompress returned %q", got)
			}
		})
	}
}

func TestDecompressCorrupt(t *testing.T) {
	if _, _, err := Decompress([]byte("garbage"), "image.png.xz"); err == nil {
		t.Error("Expected error for corrupt xz data")
	}
}

func TestTrimExtension(t *testing.T) {
	tests := map[string]string{
		"dem.tif.xz":   "dem.tif",
		"photo.JPG.GZ": "photo.JPG",
		"ramp.png":     "ramp.png",
		"map.bz2":      "map",
	}
	for in, want := range tests {
		if got := TrimExtension(in); got != want {
			t.Errorf("TrimExtension(%q) = %q, want %q", in, got, want)
		}
	}
}
