package cli

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/mosaic/pkg/errors"
	"github.com/matzehuels/mosaic/pkg/grid"
	"github.com/matzehuels/mosaic/pkg/render"
)

type renderFlags struct {
	output    string
	format    string
	motif     string
	highlight bool
	scale     int
	noCache   bool
}

func (c *CLI) renderCommand() *cobra.Command {
	f := renderFlags{scale: 4}

	cmd := &cobra.Command{
		Use:   "render [tiles.txt]",
		Short: "Write the stitched image or the tile adjacency graph",
		Long: `Solve the puzzle and write the result to a file.

The format follows the output extension unless --format is given:
  png, bmp, tiff, txt   the stitched image (one pixel per scale×scale block)
  svg, dot              the placement as a grid graph of tile ids

Use -o - to write text formats to stdout.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runRender(cmd.Context(), args[0], f)
		},
	}

	cmd.Flags().StringVarP(&f.output, "output", "o", "", "output file (default: <input>.png)")
	cmd.Flags().StringVarP(&f.format, "format", "f", "", "output format: "+strings.Join(render.Formats, ", "))
	cmd.Flags().StringVar(&f.motif, "motif", "", "motif file for --highlight (default: sea monster)")
	cmd.Flags().BoolVar(&f.highlight, "highlight", false, "mark motif pixels")
	cmd.Flags().IntVar(&f.scale, "scale", f.scale, "pixel magnification for raster formats")
	cmd.Flags().BoolVar(&f.noCache, "no-cache", false, "disable the placement cache")

	return cmd
}

func (c *CLI) runRender(ctx context.Context, input string, f renderFlags) error {
	format, output, err := resolveOutput(input, f.output, f.format)
	if err != nil {
		return err
	}
	if output != "-" {
		if err := errors.ValidatePath(output); err != nil {
			return err
		}
	}

	opts, err := c.solveOptions(input, f.motif, -1)
	if err != nil {
		return err
	}
	runner, err := c.newRunner(ctx, f.noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	spinner := newSpinnerWithContext(ctx, "Solving "+input+"...")
	spinner.Start()
	res, err := runner.Execute(ctx, opts)
	if err != nil {
		spinner.StopWithError("Solve failed")
		return err
	}
	spinner.Stop()

	var buf bytes.Buffer
	switch {
	case render.IsImage(format):
		var mask grid.Bitmap
		if f.highlight {
			mask = res.Scan.Mask(res.Image)
		}
		scale := f.scale
		if format == render.FormatText {
			scale = 1
		}
		err = render.Encode(&buf, format, res.Image, mask, scale)
	case format == render.FormatDOT:
		buf.WriteString(render.AdjacencyDOT(res.Placement))
	case format == render.FormatSVG:
		var svg []byte
		svg, err = render.RenderSVG(render.AdjacencyDOT(res.Placement))
		buf.Write(svg)
	}
	if err != nil {
		return err
	}

	if output == "-" {
		_, err := stdout.Write(buf.Bytes())
		return err
	}
	if err := os.WriteFile(output, buf.Bytes(), 0o644); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidPath, err, "write %s", output)
	}
	printSuccess("Rendered %s", format)
	printFile(output)
	return nil
}

// resolveOutput picks the output path and format from the flags. An
// explicit format wins; otherwise the output extension decides, and with
// neither the image is written as PNG next to the input.
func resolveOutput(input, output, format string) (string, string, error) {
	if format != "" {
		if err := render.ValidateFormat(format); err != nil {
			return "", "", err
		}
	}
	if output == "" {
		if format == "" {
			format = render.FormatPNG
		}
		base := "mosaic"
		if input != "-" {
			base = strings.TrimSuffix(filepath.Base(input), filepath.Ext(input))
		}
		return format, base + "." + format, nil
	}
	if format == "" {
		if output == "-" {
			return render.FormatText, output, nil
		}
		f, err := render.FormatFromPath(output)
		if err != nil {
			return "", "", err
		}
		format = f
	}
	return format, output, nil
}
