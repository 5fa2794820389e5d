// gisramp extracts colour ramps from images for GIS rendering.
package main

import (
	"os"

	"github.com/jmylchreest/gisramp/internal/cli"
)

func main() {
	if err := cli.NewRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
