// Package compression provides transparent decompression of single-stream
// compressed rasters (.gz, .xz, .bz2).
package compression

import (
	"bytes"
	"compress/bzip2"
	"compress/gzip"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/ulikunitz/xz"

	"github.com/jmylchreest/gisramp/internal/security"
)

// Format identifies a compression format.
type Format string

const (
	FormatNone  Format = ""
	FormatGzip  Format = "gzip"
	FormatXz    Format = "xz"
	FormatBzip2 Format = "bzip2"
)

var (
	gzipMagic  = []byte{0x1f, 0x8b}
	xzMagic    = []byte{0xfd, '7', 'z', 'X', 'Z', 0x00}
	bzip2Magic = []byte("BZh")
)

// Detect identifies the compression format of data. Magic bytes win over the
// file name; the extension is only consulted when the header is inconclusive.
func Detect(data []byte, filename string) Format {
	switch {
	case bytes.HasPrefix(data, xzMagic):
		return FormatXz
	case bytes.HasPrefix(data, gzipMagic):
		return FormatGzip
	case bytes.HasPrefix(data, bzip2Magic):
		return FormatBzip2
	}

	switch strings.ToLower(filepath.Ext(filename)) {
	case ".gz", ".gzip":
		return FormatGzip
	case ".xz":
		return FormatXz
	case ".bz2", ".bzip2":
		return FormatBzip2
	}
	return FormatNone
}

// Decompress returns the decompressed contents of data along with the
// detected format. Uncompressed data is returned unchanged with FormatNone.
// Output is capped at security.MaxImageBytes.
func Decompress(data []byte, filename string) ([]byte, Format, error) {
	format := Detect(data, filename)

	var r io.Reader
	switch format {
	case FormatNone:
		return data, FormatNone, nil
	case FormatGzip:
		gzr, err := gzip.NewReader(bytes.NewReader(data))
		if err != nil {
			return nil, format, fmt.Errorf("failed to create gzip reader: %w", err)
		}
		defer gzr.Close()
		r = gzr
	case FormatXz:
		xzr, err := xz.NewReader(bytes.NewReader(data))
		if err != nil {
			return nil, format, fmt.Errorf("failed to create xz reader: %w", err)
		}
		r = xzr
	case FormatBzip2:
		r = bzip2.NewReader(bytes.NewReader(data))
	}

	out, err := io.ReadAll(security.NewLimitedReader(r, security.MaxImageBytes))
	if err != nil {
		return nil, format, fmt.Errorf("failed to decompress %s data: %w", format, err)
	}
	return out, format, nil
}

// TrimExtension strips a trailing compression extension from a file name,
// so "dem.tif.xz" becomes "dem.tif".
func TrimExtension(filename string) string {
	ext := filepath.Ext(filename)
	switch strings.ToLower(ext) {
	case ".gz", ".gzip", ".xz", ".bz2", ".bzip2":
		return strings.TrimSuffix(filename, ext)
	}
	return filename
}
