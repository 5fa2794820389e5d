// Package image provides utilities for loading and decoding source rasters.
package image

import (
	"bytes"
	"context"
	"fmt"
	"image"
	_ "image/gif"  // Register GIF format
	_ "image/jpeg" // Register JPEG format
	_ "image/png"  // Register PNG format
	"io"
	"os"
	"path/filepath"
	"slices"
	"strings"

	_ "golang.org/x/image/bmp"  // Register BMP format
	_ "golang.org/x/image/tiff" // Register TIFF format (GeoTIFF rasters decode as plain TIFF)
	_ "golang.org/x/image/webp" // Register WebP format

	"github.com/jmylchreest/gisramp/internal/colour"
	"github.com/jmylchreest/gisramp/internal/compression"
	"github.com/jmylchreest/gisramp/internal/security"
	httputil "github.com/jmylchreest/gisramp/internal/util/http"
)

// Loader handles loading images from various sources.
type Loader interface {
	// Load loads an image from the given path.
	Load(ctx context.Context, path string) (image.Image, error)
}

// FileLoader loads images from the local filesystem.
type FileLoader struct{}

// NewFileLoader creates a new FileLoader instance.
func NewFileLoader() *FileLoader {
	return &FileLoader{}
}

// Load loads an image from a file path.
// Supported formats: JPEG, PNG, GIF, WebP, TIFF, BMP, optionally wrapped in
// gzip, xz or bzip2 compression.
func (l *FileLoader) Load(_ context.Context, path string) (image.Image, error) {
	if path == "" {
		return nil, fmt.Errorf("image path cannot be empty")
	}

	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("image file not found: %s", path)
		}
		return nil, fmt.Errorf("failed to stat image file: %w", err)
	}

	if info.IsDir() {
		return nil, fmt.Errorf("path is a directory, not a file: %s", path)
	}

	file, err := os.Open(path) // #nosec G304 - User-specified image path, intended to be read
	if err != nil {
		return nil, fmt.Errorf("failed to open image file: %w", err)
	}
	defer file.Close()

	data, err := io.ReadAll(security.NewLimitedReader(file, security.MaxImageBytes))
	if err != nil {
		return nil, fmt.Errorf("failed to read image file: %w", err)
	}

	return Decode(data, filepath.Base(path))
}

// Decode decompresses (if needed) and decodes raw image bytes.
// Failures are reported as *colour.InvalidImageError.
func Decode(data []byte, filename string) (image.Image, error) {
	raw, _, err := compression.Decompress(data, filename)
	if err != nil {
		return nil, &colour.InvalidImageError{Reason: "failed to decompress " + filename, Err: err}
	}

	img, format, err := image.Decode(bytes.NewReader(raw))
	if err != nil {
		return nil, &colour.InvalidImageError{Reason: fmt.Sprintf("failed to decode %s (format: %s)", filename, format), Err: err}
	}

	if img.Bounds().Empty() {
		return nil, &colour.InvalidImageError{Reason: filename + " has zero width or height"}
	}

	return img, nil
}

// SmartLoader loads images from both local files and HTTP(S) URLs.
type SmartLoader struct {
	fileLoader *FileLoader
	fetch      func(ctx context.Context, url string, opts httputil.FetchOptions) ([]byte, error)
}

// NewSmartLoader creates a new SmartLoader instance.
func NewSmartLoader() *SmartLoader {
	return &SmartLoader{
		fileLoader: NewFileLoader(),
		fetch:      httputil.Fetch,
	}
}

// Load loads an image from either a local file path or HTTP(S) URL.
func (l *SmartLoader) Load(ctx context.Context, path string) (image.Image, error) {
	if IsURL(path) {
		return l.loadFromURL(ctx, path)
	}
	return l.fileLoader.Load(ctx, path)
}

// loadFromURL fetches and decodes an image from an HTTP(S) URL.
func (l *SmartLoader) loadFromURL(ctx context.Context, url string) (image.Image, error) {
	if err := security.ValidateRemoteURL(url); err != nil {
		return nil, err
	}

	data, err := l.fetch(ctx, url, httputil.FetchOptions{MaxBytes: security.MaxImageBytes})
	if err != nil {
		return nil, fmt.Errorf("failed to fetch image from URL: %w", err)
	}

	return Decode(data, urlFilename(url))
}

// IsURL reports whether path is an HTTP(S) URL.
func IsURL(path string) bool {
	return strings.HasPrefix(path, "http://") || strings.HasPrefix(path, "https://")
}

// urlFilename returns the last path element of a URL without its query.
func urlFilename(url string) string {
	if i := strings.IndexAny(url, "?#"); i >= 0 {
		url = url[:i]
	}
	return filepath.Base(url)
}

// SupportedImageExtensions returns a list of supported image file extensions.
func SupportedImageExtensions() []string {
	return []string{".jpg", ".jpeg", ".png", ".gif", ".webp", ".tif", ".tiff", ".bmp"}
}

// isImageFile checks if a file has a supported image extension, looking
// through a trailing compression extension.
func isImageFile(path string) bool {
	ext := strings.ToLower(filepath.Ext(compression.TrimExtension(path)))
	return slices.Contains(SupportedImageExtensions(), ext)
}

// ValidateImagePath checks if the given path is a supported image file, a
// directory, or an HTTP(S) URL. Local files must carry a supported extension.
func ValidateImagePath(path string) error {
	if path == "" {
		return fmt.Errorf("image path cannot be empty")
	}

	if IsURL(path) {
		return security.ValidateRemoteURL(path)
	}

	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("image file or directory not found: %s", path)
		}
		return fmt.Errorf("failed to access image path: %w", err)
	}

	if info.IsDir() {
		return nil
	}

	if !isImageFile(path) {
		return fmt.Errorf("unsupported image extension: %s (supported: %s)",
			filepath.Ext(path), strings.Join(SupportedImageExtensions(), ", "))
	}

	return nil
}

// ScanDirectoryForImages scans a directory and returns all image files in
// lexical order. It does not recurse into subdirectories, but follows symlinks.
func ScanDirectoryForImages(dirPath string) ([]string, error) {
	entries, err := os.ReadDir(dirPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read directory: %w", err)
	}

	var imageFiles []string
	for _, entry := range entries {
		fullPath := filepath.Join(dirPath, entry.Name())

		// For symlinks, stat the target to determine if it's a file.
		info, err := os.Stat(fullPath)
		if err != nil {
			// Skip entries we can't stat (broken symlinks, permission issues).
			continue
		}

		if info.IsDir() {
			continue
		}

		if isImageFile(entry.Name()) {
			imageFiles = append(imageFiles, fullPath)
		}
	}

	if len(imageFiles) == 0 {
		return nil, fmt.Errorf("no supported image files found in directory: %s", dirPath)
	}

	slices.Sort(imageFiles)
	return imageFiles, nil
}

// ResolveImagePaths expands a path into the images it refers to: a directory
// yields every image inside it, anything else yields itself.
func ResolveImagePaths(path string) ([]string, error) {
	if IsURL(path) {
		return []string{path}, nil
	}

	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("failed to access path: %w", err)
	}

	if !info.IsDir() {
		return []string{path}, nil
	}

	return ScanDirectoryForImages(path)
}
