package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/jmylchreest/gisramp/internal/colour"
)

// editFunc applies one edit to a palette. Arguments after the palette path
// are passed through.
type editFunc func(p colour.Palette, args []string) (colour.Palette, error)

func newEditCmd(global *globalOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "edit",
		Short: "Edit a ramp in place",
		Long: `Edit the colours of a .clr ramp or JSON palette record.

Indices are 1-based, matching the index column of a .clr file. The file is
rewritten in its own format unless --output is given.`,
	}

	cmd.AddCommand(newEditSubCmd(global, "remove <palette> <index>", "Remove a colour", 2,
		func(p colour.Palette, args []string) (colour.Palette, error) {
			i, err := parseIndex(args[0])
			if err != nil {
				return colour.Palette{}, err
			}
			return p.Remove(i)
		}))

	cmd.AddCommand(newEditSubCmd(global, "set <palette> <index> <colour>", "Replace a colour (hex or CSS name)", 3,
		func(p colour.Palette, args []string) (colour.Palette, error) {
			i, err := parseIndex(args[0])
			if err != nil {
				return colour.Palette{}, err
			}
			c, err := colour.ParseColour(args[1])
			if err != nil {
				return colour.Palette{}, err
			}
			return p.Replace(i, c)
		}))

	cmd.AddCommand(newEditSubCmd(global, "move <palette> <from> <to|left|right>", "Move a colour to another position", 3,
		func(p colour.Palette, args []string) (colour.Palette, error) {
			from, err := parseIndex(args[0])
			if err != nil {
				return colour.Palette{}, err
			}
			switch args[1] {
			case "left":
				return p.MoveLeft(from)
			case "right":
				return p.MoveRight(from)
			}
			to, err := parseIndex(args[1])
			if err != nil {
				return colour.Palette{}, err
			}
			return p.Move(from, to)
		}))

	cmd.AddCommand(newEditSubCmd(global, "order <palette> <index>...", "Rearrange colours by listing their indices in the new order", -1,
		func(p colour.Palette, args []string) (colour.Palette, error) {
			order := make([]int, len(args))
			for n, a := range args {
				i, err := parseIndex(a)
				if err != nil {
					return colour.Palette{}, err
				}
				order[n] = i
			}
			return p.Permute(order)
		}))

	return cmd
}

// newEditSubCmd wires an editFunc into a command that reads, edits and writes
// back a palette file. nargs of -1 means "palette plus at least one more".
func newEditSubCmd(global *globalOptions, use, short string, nargs int, edit editFunc) *cobra.Command {
	var output string

	argCheck := cobra.ExactArgs(nargs)
	if nargs < 0 {
		argCheck = cobra.MinimumNArgs(2)
	}

	cmd := &cobra.Command{
		Use:   use,
		Short: short,
		Args:  argCheck,
		RunE: func(cmd *cobra.Command, args []string) error {
			path := args[0]
			in, err := readPaletteFile(path)
			if err != nil {
				return err
			}

			edited, err := edit(in.palette, args[1:])
			if err != nil {
				return err
			}

			out, err := formatPalette(edited, in.format, in.name, false)
			if err != nil {
				return err
			}

			target := output
			if target == "" {
				target = path
			}
			if err := writeOutput(cmd.OutOrStdout(), target, out); err != nil {
				return err
			}
			global.logger.Info("updated ramp", "path", target, "colours", edited.Len())
			return nil
		},
	}
	cmd.Flags().StringVarP(&output, "output", "o", "", "write the result here instead of editing in place")

	return cmd
}

// parseIndex converts a 1-based CLI index to a 0-based palette index.
func parseIndex(s string) (int, error) {
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("invalid index %q: %w", s, err)
	}
	return n - 1, nil
}
