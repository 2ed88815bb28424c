package cli

import (
	"bytes"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/matzehuels/mosaic/pkg/errors"
	"github.com/matzehuels/mosaic/pkg/source"
)

func (c *CLI) scrambleCommand() *cobra.Command {
	var (
		seed   uint64
		output string
	)

	cmd := &cobra.Command{
		Use:   "scramble [tiles.txt]",
		Short: "Write a shuffled, randomly oriented copy of a puzzle",
		Long: `Put every tile of a puzzle into a random orientation and shuffle the
list. The result has the same solution up to orientation of the whole
grid, which makes it useful for exercising the solver.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if !cmd.Flags().Changed("seed") {
				seed = uint64(time.Now().UnixNano())
			}
			return c.runScramble(args[0], seed, output)
		},
	}

	cmd.Flags().Uint64Var(&seed, "seed", 0, "random seed (default: current time)")
	cmd.Flags().StringVarP(&output, "output", "o", "-", "output file")

	return cmd
}

func (c *CLI) runScramble(input string, seed uint64, output string) error {
	text, err := readInput(input)
	if err != nil {
		return err
	}
	tiles, err := source.ParseString(text)
	if err != nil {
		return err
	}
	c.Logger.Debug("scrambling", "tiles", len(tiles), "seed", seed)

	var buf bytes.Buffer
	if err := source.FormatTiles(&buf, source.Scramble(tiles, seed)); err != nil {
		return err
	}
	if output == "-" {
		_, err := stdout.Write(buf.Bytes())
		return err
	}
	if err := errors.ValidatePath(output); err != nil {
		return err
	}
	if err := os.WriteFile(output, buf.Bytes(), 0o644); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidPath, err, "write %s", output)
	}
	printSuccess("Scrambled %d tiles (seed %d)", len(tiles), seed)
	printFile(output)
	return nil
}
