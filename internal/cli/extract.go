package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/hashicorp/go-hclog"
	"github.com/spf13/cobra"

	"github.com/jmylchreest/gisramp/internal/colour"
	"github.com/jmylchreest/gisramp/internal/image"
	"github.com/jmylchreest/gisramp/internal/render"
	"github.com/jmylchreest/gisramp/internal/security"
	"github.com/jmylchreest/gisramp/internal/seed"
)

// maxCLIColours bounds --colours; the extractor itself has no upper limit.
const maxCLIColours = 256

type extractOptions struct {
	colours       int
	sort          string
	minSaturation float64
	minValue      float64
	seedMode      string
	seedValue     int64
	format        string
	output        string
	name          string
	preview       bool
	swatch        string
}

func newExtractCmd(global *globalOptions) *cobra.Command {
	opts := &extractOptions{}

	cmd := &cobra.Command{
		Use:   "extract <image|directory|url>",
		Short: "Extract a colour ramp from an image",
		Long: `Extract a colour ramp from an image using k-means clustering.

The image is downscaled to 150x150, up to 5000 pixels are sampled, optionally
filtered by HSV saturation and value, and clustered into the requested number
of colours. The result is ordered by the chosen sort mode and written as a
.clr ramp (default) or another format.

Supported image formats: JPEG, PNG, GIF, WebP, TIFF, BMP, optionally gzip, xz
or bzip2 compressed. Directories are processed file by file; each ramp is
written to the output directory as <image>_<n>c.clr.

Examples:
  # Extract a 7 colour ramp, dark to light
  gisramp extract dem_hillshade.png

  # 12 colours, ordered by hue, saved to a file
  gisramp extract -c 12 -s hue-ascending -o terrain.clr satellite.tif

  # Ignore washed out and very dark pixels
  gisramp extract --min-saturation 0.25 --min-value 0.2 landsat.jpg

  # Process a directory of images into ./ramps
  gisramp extract -o ramps/ scenes/

  # JSON record with terminal preview and a swatch image
  gisramp extract -f json --preview --swatch ramp.png sunset.jpg`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := opts.applyConfig(cmd, global); err != nil {
				return err
			}
			return runExtract(cmd, global.logger, opts, args[0])
		},
	}

	cmd.Flags().IntVarP(&opts.colours, "colours", "c", colour.DefaultColours, "number of colours to extract (2-256)")
	cmd.Flags().StringVarP(&opts.sort, "sort", "s", string(colour.SortBrightnessAscending), "ramp order ("+sortModeList()+")")
	cmd.Flags().Float64Var(&opts.minSaturation, "min-saturation", 0, "ignore pixels with HSV saturation below this (0-1)")
	cmd.Flags().Float64Var(&opts.minValue, "min-value", 0, "ignore pixels with HSV value below this (0-1)")
	cmd.Flags().StringVar(&opts.seedMode, "seed-mode", string(seed.ModeContent), "seed mode: content, filepath, manual, random")
	cmd.Flags().Int64Var(&opts.seedValue, "seed-value", 0, "seed value (implies --seed-mode=manual)")
	cmd.Flags().StringVarP(&opts.format, "format", "f", string(formatCLR), "output format (clr, json, hex, rgb, css)")
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file, or output directory for directory input (default: stdout)")
	cmd.Flags().StringVar(&opts.name, "name", "", "palette name for JSON output (default: image name)")
	cmd.Flags().BoolVar(&opts.preview, "preview", false, "show colour previews in the terminal")
	cmd.Flags().StringVar(&opts.swatch, "swatch", "", "also write a gradient swatch image (.png or .bmp)")

	return cmd
}

// applyConfig fills flags the user left unset from the loaded config, then
// validates the combined result.
func (o *extractOptions) applyConfig(cmd *cobra.Command, global *globalOptions) error {
	cfg := global.cfg
	defaults := map[string]string{
		"colours":        strconv.Itoa(cfg.Colours),
		"sort":           cfg.Sort,
		"min-saturation": strconv.FormatFloat(cfg.MinSaturation, 'g', -1, 64),
		"min-value":      strconv.FormatFloat(cfg.MinValue, 'g', -1, 64),
		"seed-mode":      string(cfg.Seed.Mode),
		"format":         cfg.Format,
	}
	if cfg.Seed.Value != nil {
		defaults["seed-value"] = strconv.FormatInt(*cfg.Seed.Value, 10)
	}
	if err := applyDefaults(cmd.Flags(), defaults); err != nil {
		return err
	}

	if cmd.Flags().Changed("seed-value") && !cmd.Flags().Changed("seed-mode") {
		o.seedMode = string(seed.ModeManual)
	}

	if o.colours < 2 || o.colours > maxCLIColours {
		return fmt.Errorf("colours must be between 2 and %d, got %d", maxCLIColours, o.colours)
	}
	return nil
}

func (o *extractOptions) params() colour.ExtractionParams {
	return colour.ExtractionParams{
		Colours:       o.colours,
		MinSaturation: o.minSaturation,
		MinValue:      o.minValue,
	}
}

func runExtract(cmd *cobra.Command, logger hclog.Logger, opts *extractOptions, input string) error {
	if err := image.ValidateImagePath(input); err != nil {
		return fmt.Errorf("invalid image path: %w", err)
	}
	if err := opts.params().Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	format, err := parseFormat(opts.format)
	if err != nil {
		return err
	}
	sortMode, err := colour.ParseSortMode(opts.sort)
	if err != nil {
		return err
	}
	seedMode, err := seed.ParseMode(opts.seedMode)
	if err != nil {
		return err
	}

	paths, err := image.ResolveImagePaths(input)
	if err != nil {
		return err
	}

	job := &extraction{
		logger:    logger,
		loader:    image.NewSmartLoader(),
		extractor: colour.NewKMeansExtractor(colour.WithLogger(logger.Named("kmeans"))),
		params:    opts.params(),
		sortMode:  sortMode,
		seed:      seed.Config{Mode: seedMode, Value: &opts.seedValue},
	}

	if info, err := os.Stat(input); err == nil && info.IsDir() {
		return runExtractBatch(cmd, job, opts, format, paths)
	}

	palette, err := job.run(cmd.Context(), paths[0])
	if err != nil {
		return err
	}

	name := opts.name
	if name == "" {
		name = paletteName(paths[0])
	}
	out, err := formatPalette(palette, format, name, opts.preview && opts.output == "" && colour.SupportsANSIColours(os.Stdout))
	if err != nil {
		return err
	}
	if err := writeOutput(cmd.OutOrStdout(), opts.output, out); err != nil {
		return err
	}
	if opts.output != "" {
		logger.Info("wrote ramp", "path", opts.output, "colours", palette.Len())
	}

	if opts.preview && opts.output != "" && colour.SupportsANSIColours(os.Stderr) {
		fmt.Fprintln(cmd.ErrOrStderr(), colour.GradientPreview(palette, 4))
	}

	if opts.swatch != "" {
		if err := render.WriteFile(opts.swatch, palette, render.DefaultWidth, render.DefaultHeight, render.StyleGradient); err != nil {
			return err
		}
		logger.Info("wrote swatch", "path", opts.swatch)
	}

	return nil
}

// runExtractBatch processes every image in a directory, writing one ramp per
// image into the output directory. Images are processed in lexical order and
// the first failure stops the batch.
func runExtractBatch(cmd *cobra.Command, job *extraction, opts *extractOptions, format outputFormat, paths []string) error {
	outDir := opts.output
	if outDir == "" {
		outDir = "."
	}
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}
	if opts.swatch != "" {
		job.logger.Warn("--swatch is ignored for directory input")
	}

	for _, path := range paths {
		palette, err := job.run(cmd.Context(), path)
		if err != nil {
			return fmt.Errorf("%s: %w", path, err)
		}

		fileName := strings.TrimSuffix(colour.DefaultRampFilename(path, opts.colours), colour.RampExtension) + format.extension()
		if err := security.ValidateOutputPath(fileName, outDir); err != nil {
			return fmt.Errorf("invalid output file name for %s: %w", path, err)
		}

		out, err := formatPalette(palette, format, paletteName(path), false)
		if err != nil {
			return err
		}

		target := filepath.Join(outDir, fileName)
		if err := writeOutput(cmd.OutOrStdout(), target, out); err != nil {
			return err
		}
		job.logger.Info("wrote ramp", "image", path, "path", target, "colours", palette.Len())
	}

	return nil
}

// extraction holds everything needed to turn one image into an ordered ramp.
type extraction struct {
	logger    hclog.Logger
	loader    image.Loader
	extractor colour.Extractor
	params    colour.ExtractionParams
	sortMode  colour.SortMode
	seed      seed.Config
}

func (job *extraction) run(ctx context.Context, path string) (colour.Palette, error) {
	job.logger.Debug("loading image", "path", path)
	img, err := job.loader.Load(ctx, path)
	if err != nil {
		return colour.Palette{}, fmt.Errorf("failed to load image: %w", err)
	}
	bounds := img.Bounds()
	job.logger.Debug("image loaded", "width", bounds.Dx(), "height", bounds.Dy())

	params := job.params
	if job.seed.Mode != seed.ModeRandom {
		s, err := seed.Calculate(img, path, job.seed)
		if err != nil {
			return colour.Palette{}, fmt.Errorf("failed to calculate seed: %w", err)
		}
		params = params.WithSeed(s)
		job.logger.Debug("using seed", "mode", job.seed.Mode, "seed", s)
	} else {
		job.logger.Debug("using seed", "mode", job.seed.Mode)
	}

	palette, err := job.extractor.Extract(img, params)
	if err != nil {
		return colour.Palette{}, fmt.Errorf("failed to extract colours: %w", err)
	}

	return colour.Reorder(palette, job.sortMode), nil
}

func sortModeList() string {
	modes := colour.ValidSortModes()
	names := make([]string, len(modes))
	for i, m := range modes {
		names[i] = string(m)
	}
	return strings.Join(names, ", ")
}
