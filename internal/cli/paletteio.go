package cli

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/jmylchreest/gisramp/internal/colour"
)

// outputFormat is one of the textual palette encodings the CLI can emit.
type outputFormat string

const (
	formatCLR  outputFormat = "clr"
	formatJSON outputFormat = "json"
	formatHex  outputFormat = "hex"
	formatRGB  outputFormat = "rgb"
	formatCSS  outputFormat = "css"
)

func validFormats() []outputFormat {
	return []outputFormat{formatCLR, formatJSON, formatHex, formatRGB, formatCSS}
}

func parseFormat(s string) (outputFormat, error) {
	f := outputFormat(strings.ToLower(strings.TrimSpace(s)))
	for _, v := range validFormats() {
		if f == v {
			return f, nil
		}
	}
	return "", fmt.Errorf("unsupported format: %s (supported: clr, json, hex, rgb, css)", s)
}

// extension returns the file extension used when writing this format in batch mode.
func (f outputFormat) extension() string {
	switch f {
	case formatJSON:
		return ".json"
	case formatCSS:
		return ".css"
	case formatHex, formatRGB:
		return ".txt"
	default:
		return colour.RampExtension
	}
}

// formatPalette renders p in the requested format. preview adds ANSI swatches
// to the hex and rgb listings.
func formatPalette(p colour.Palette, format outputFormat, name string, preview bool) (string, error) {
	switch format {
	case formatCLR:
		return colour.ToRampText(p), nil
	case formatJSON:
		out, err := colour.ToJSON(p, name)
		if err != nil {
			return "", err
		}
		return out + "\n", nil
	case formatHex:
		var sb strings.Builder
		for _, c := range p.All() {
			if preview {
				sb.WriteString(colour.FormatColourWithPreview(c, 8))
			} else {
				sb.WriteString(c.Hex())
			}
			sb.WriteString("\n")
		}
		return sb.String(), nil
	case formatRGB:
		return formatRGBTable(p, preview), nil
	case formatCSS:
		return colour.ToCSSGradient(p) + "\n", nil
	default:
		return "", fmt.Errorf("unsupported format: %s", format)
	}
}

// formatRGBTable lists every colour with its 1-based ramp index.
func formatRGBTable(p colour.Palette, preview bool) string {
	headers := []string{"Index", "Hex", "RGB"}
	if preview {
		headers = append(headers, "Preview")
	}

	table := NewTable(headers)
	for i, c := range p.All() {
		row := []string{fmt.Sprint(i + 1), c.Hex(), c.String()}
		if preview {
			row = append(row, colour.ColourPreview(c, 8))
		}
		table.AddRow(row)
	}
	return table.Render()
}

// paletteFile is a palette read from disk together with what is needed to
// write it back in the same shape.
type paletteFile struct {
	palette colour.Palette
	name    string
	format  outputFormat
}

// readPaletteFile loads a .clr ramp or a JSON palette record. JSON is chosen
// by extension or by a leading '['.
func readPaletteFile(path string) (paletteFile, error) {
	data, err := os.ReadFile(path) // #nosec G304 - user-specified palette file
	if err != nil {
		return paletteFile{}, fmt.Errorf("failed to read palette file: %w", err)
	}

	if strings.EqualFold(filepath.Ext(path), ".json") || bytes.HasPrefix(bytes.TrimSpace(data), []byte("[")) {
		records, err := colour.ParseJSON(data)
		if err != nil {
			return paletteFile{}, err
		}
		return paletteFile{palette: records[0].Colors, name: records[0].Name, format: formatJSON}, nil
	}

	p, err := colour.ParseRamp(bytes.NewReader(data))
	if err != nil {
		return paletteFile{}, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	return paletteFile{palette: p, name: paletteName(path), format: formatCLR}, nil
}

// writeOutput writes content to path, or to w when path is empty.
func writeOutput(w io.Writer, path, content string) error {
	if path == "" {
		_, err := io.WriteString(w, content)
		return err
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil { // #nosec G306 - ramps are not secret
		return fmt.Errorf("failed to write output file: %w", err)
	}
	return nil
}

// paletteName derives a record name from a file path or URL.
func paletteName(path string) string {
	if i := strings.IndexAny(path, "?#"); i >= 0 && strings.Contains(path, "://") {
		path = path[:i]
	}
	base := filepath.Base(path)
	if i := strings.Index(base, "."); i > 0 {
		base = base[:i]
	}
	return base
}
