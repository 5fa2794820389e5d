// Package cli provides the command-line interface for gisramp.
package cli

import (
	"encoding/json"
	"fmt"

	"github.com/hashicorp/go-hclog"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/jmylchreest/gisramp/internal/config"
	"github.com/jmylchreest/gisramp/internal/logging"
	"github.com/jmylchreest/gisramp/internal/version"
)

// globalOptions carries the persistent flags and what is built from them
// before any subcommand runs.
type globalOptions struct {
	verbose    bool
	quiet      bool
	configPath string

	cfg    config.Config
	logger hclog.Logger
}

// NewRootCmd builds a fresh command tree. Each call returns independent flag
// state, so tests can execute several trees in one process.
func NewRootCmd() *cobra.Command {
	opts := &globalOptions{
		cfg:    config.Default(),
		logger: logging.Discard(),
	}

	rootCmd := &cobra.Command{
		Use:   "gisramp",
		Short: "Extract GIS colour ramps from images",
		Long: `gisramp extracts a representative set of colours from an image and exports
them as a colour ramp for GIS rendering.

Ramps are written as QGIS/GDAL style .clr text ("index R G B" per line) or as
a JSON palette record, and can be reordered, edited and previewed as a swatch.`,
		Version:      version.Short(),
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return opts.setup(cmd)
		},
	}

	rootCmd.PersistentFlags().BoolVarP(&opts.verbose, "verbose", "v", false, "enable verbose output")
	rootCmd.PersistentFlags().BoolVarP(&opts.quiet, "quiet", "q", false, "suppress non-error output")
	rootCmd.PersistentFlags().StringVar(&opts.configPath, "config", "", "config file (default: $XDG_CONFIG_HOME/gisramp/config.yaml)")

	rootCmd.SetVersionTemplate(version.String() + "\n")

	rootCmd.AddCommand(newVersionCmd())
	rootCmd.AddCommand(newExtractCmd(opts))
	rootCmd.AddCommand(newSortCmd(opts))
	rootCmd.AddCommand(newEditCmd(opts))
	rootCmd.AddCommand(newSwatchCmd(opts))

	return rootCmd
}

// setup builds the logger and loads the config for the command about to run.
func (o *globalOptions) setup(cmd *cobra.Command) error {
	o.logger = logging.New(logging.Options{
		Verbose: o.verbose,
		Quiet:   o.quiet,
		Output:  cmd.ErrOrStderr(),
	})

	cfg, err := config.Load(o.configPath)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	o.cfg = cfg
	o.logger.Debug("loaded config", "colours", cfg.Colours, "sort", cfg.Sort, "seed_mode", cfg.Seed.Mode)

	return nil
}

// applyDefaults copies config values onto flags the user did not set, which
// gives flag > env > file > built-in precedence.
func applyDefaults(flags *pflag.FlagSet, values map[string]string) error {
	for name, value := range values {
		f := flags.Lookup(name)
		if f == nil || f.Changed {
			continue
		}
		if err := f.Value.Set(value); err != nil {
			return fmt.Errorf("invalid configured value for --%s: %w", name, err)
		}
	}
	return nil
}

func newVersionCmd() *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Long:  `Print detailed version information including build date, commit hash, and Go version.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if !asJSON {
				fmt.Fprintln(cmd.OutOrStdout(), version.String())
				return nil
			}
			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(version.GetInfo())
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "print version information as JSON")

	return cmd
}
