// Package security provides input validation and resource limits for gisramp.
package security

import (
	"fmt"
	"io"
	"net/url"
	"path/filepath"
	"strings"
)

// MaxImageBytes bounds how much data is read for a single image, whether it
// is downloaded or decompressed.
const MaxImageBytes = 256 * 1024 * 1024

// ValidateRemoteURL validates an HTTP(S) image URL.
func ValidateRemoteURL(urlStr string) error {
	if urlStr == "" {
		return fmt.Errorf("empty URL")
	}

	parsed, err := url.Parse(urlStr)
	if err != nil {
		return fmt.Errorf("invalid URL: %w", err)
	}

	scheme := strings.ToLower(parsed.Scheme)
	if scheme != "https" && scheme != "http" {
		return fmt.Errorf("invalid URL protocol (only http:// and https:// allowed): %s", scheme)
	}

	if parsed.Host == "" {
		return fmt.Errorf("URL must have a hostname")
	}

	return nil
}

// ValidateOutputPath checks that a generated file name stays inside baseDir.
// Used when output names are derived from input file names.
func ValidateOutputPath(fileName, baseDir string) error {
	if fileName == "" {
		return fmt.Errorf("empty file name")
	}

	if strings.Contains(fileName, "..") {
		return fmt.Errorf("file name contains directory traversal (..) - not allowed")
	}

	if filepath.IsAbs(fileName) {
		return fmt.Errorf("absolute output file names are not allowed")
	}

	finalPath := filepath.Join(baseDir, fileName)
	cleanFinal := filepath.Clean(finalPath)
	cleanBase := filepath.Clean(baseDir)

	if !strings.HasPrefix(cleanFinal, cleanBase+string(filepath.Separator)) &&
		cleanFinal != cleanBase {
		return fmt.Errorf("file name would escape output directory")
	}

	return nil
}

// SafeUint8 safely converts an integer to uint8 with bounds checking.
// Values outside 0-255 are clamped to the valid range.
func SafeUint8(val int) uint8 {
	if val < 0 {
		return 0
	}
	if val > 255 {
		return 255
	}
	return uint8(val)
}

// LimitedReader wraps an io.Reader and limits the total bytes that can be read.
// Unlike io.LimitReader it fails loudly instead of silently truncating, so a
// decompression bomb or oversized download is reported as an error.
type LimitedReader struct {
	R         io.Reader
	Remaining int64
}

func (l *LimitedReader) Read(p []byte) (int, error) {
	if l.Remaining <= 0 {
		// Input that ends exactly at the limit is fine.
		var probe [1]byte
		if n, err := l.R.Read(probe[:]); n == 0 {
			return 0, err
		}
		return 0, fmt.Errorf("size limit exceeded")
	}
	if int64(len(p)) > l.Remaining {
		p = p[:l.Remaining]
	}
	n, err := l.R.Read(p)
	l.Remaining -= int64(n)
	return n, err
}

// NewLimitedReader creates a new LimitedReader with the specified size limit.
func NewLimitedReader(r io.Reader, maxBytes int64) *LimitedReader {
	return &LimitedReader{
		R:         r,
		Remaining: maxBytes,
	}
}
