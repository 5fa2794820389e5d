// Package logging builds the hclog logger shared by the CLI and the extractor.
package logging

import (
	"io"
	"os"

	"github.com/hashicorp/go-hclog"
)

// Name is the root logger name.
const Name = "gisramp"

// Options controls logger construction.
type Options struct {
	Verbose bool
	Quiet   bool
	Output  io.Writer // defaults to os.Stderr
}

// Level maps the verbosity flags onto an hclog level. Quiet wins over verbose.
func (o Options) Level() hclog.Level {
	switch {
	case o.Quiet:
		return hclog.Error
	case o.Verbose:
		return hclog.Debug
	default:
		return hclog.Info
	}
}

// New returns a logger writing to stderr. Ramp output goes to stdout, so logs
// never mix with it.
func New(opts Options) hclog.Logger {
	out := opts.Output
	if out == nil {
		out = os.Stderr
	}

	return hclog.New(&hclog.LoggerOptions{
		Name:   Name,
		Output: out,
		Level:  opts.Level(),
		Color:  hclog.AutoColor,
	})
}

// Discard returns a logger that drops everything.
func Discard() hclog.Logger {
	return hclog.New(&hclog.LoggerOptions{
		Name:   Name,
		Output: io.Discard,
		Level:  hclog.Off,
	})
}
