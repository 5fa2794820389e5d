package colour

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"path/filepath"
	"strconv"
	"strings"
)

const (
	// RecordCategory is the category written to every JSON palette record.
	RecordCategory = "Extracted"

	// RampExtension is the file extension of ramp files.
	RampExtension = ".clr"
)

// DefaultRecordTags returns the tags written to a JSON palette record.
func DefaultRecordTags() []string {
	return []string{"Image"}
}

// ToRampText serialises a palette as an indexed colour ramp: one
// "<index> <R> <G> <B>" line per colour, 1-based, newline terminated, no header.
// This is the .clr format read by desktop GIS stretch renderers.
func ToRampText(p Palette) string {
	var sb strings.Builder
	_ = WriteRamp(&sb, p)
	return sb.String()
}

// WriteRamp writes the ramp text form of p to w.
func WriteRamp(w io.Writer, p Palette) error {
	for i, c := range p.colours {
		if _, err := fmt.Fprintf(w, "%d %d %d %d\n", i+1, c.R, c.G, c.B); err != nil {
			return fmt.Errorf("failed to write ramp line %d: %w", i+1, err)
		}
	}
	return nil
}

// ParseRamp reads a ramp file. Blank lines and lines starting with '#' are
// skipped. Each remaining line must hold an index followed by three channel
// values in [0, 255]; colours are taken in file order.
func ParseRamp(r io.Reader) (Palette, error) {
	var colours []RGB
	scanner := bufio.NewScanner(r)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		fields := strings.Fields(line)
		if len(fields) < 4 {
			return Palette{}, fmt.Errorf("line %d: expected \"<index> <R> <G> <B>\", got %q", lineNo, line)
		}
		if _, err := strconv.Atoi(fields[0]); err != nil {
			return Palette{}, fmt.Errorf("line %d: invalid index %q", lineNo, fields[0])
		}

		var channels [3]uint8
		for i, f := range fields[1:4] {
			v, err := strconv.Atoi(f)
			if err != nil || v < 0 || v > 255 {
				return Palette{}, fmt.Errorf("line %d: channel value %q must be an integer in 0-255", lineNo, f)
			}
			channels[i] = uint8(v)
		}
		colours = append(colours, RGB{R: channels[0], G: channels[1], B: channels[2]})
	}
	if err := scanner.Err(); err != nil {
		return Palette{}, fmt.Errorf("failed to read ramp: %w", err)
	}
	if len(colours) == 0 {
		return Palette{}, fmt.Errorf("ramp contains no colours")
	}
	return Palette{colours: colours}, nil
}

// Record is a portable JSON palette entry.
type Record struct {
	Name     string   `json:"name"`
	Category string   `json:"category"`
	Tags     []string `json:"tags"`
	Colors   Palette  `json:"colors"`
}

// NewRecord builds a palette record with the fixed category and default tags.
func NewRecord(p Palette, name string) Record {
	return Record{
		Name:     name,
		Category: RecordCategory,
		Tags:     DefaultRecordTags(),
		Colors:   NewPalette(p.colours...),
	}
}

// ToJSON serialises a palette as a JSON array holding a single record.
// Colours are lowercase "#rrggbb" strings in palette order.
func ToJSON(p Palette, name string) (string, error) {
	data, err := json.MarshalIndent([]Record{NewRecord(p, name)}, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to convert to JSON: %w", err)
	}
	return string(data), nil
}

// ParseJSON reads an array of palette records as produced by ToJSON.
func ParseJSON(data []byte) ([]Record, error) {
	var records []Record
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("failed to parse palette JSON: %w", err)
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("palette JSON contains no records")
	}
	return records, nil
}

// ToCSSGradient returns a left-to-right CSS linear-gradient for the palette.
func ToCSSGradient(p Palette) string {
	return fmt.Sprintf("linear-gradient(to right, %s)", strings.Join(p.ToHex(), ", "))
}

// DefaultRampFilename returns "<image base name>_<n>c.clr" for an image path.
func DefaultRampFilename(imagePath string, colours int) string {
	base := filepath.Base(imagePath)
	if i := strings.Index(base, "."); i > 0 {
		base = base[:i]
	}
	return fmt.Sprintf("%s_%dc%s", base, colours, RampExtension)
}
