package cli

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/matzehuels/mosaic/pkg/assemble"
	"github.com/matzehuels/mosaic/pkg/errors"
	"github.com/matzehuels/mosaic/pkg/grid"
	"github.com/matzehuels/mosaic/pkg/motif"
	"github.com/matzehuels/mosaic/pkg/source"
	"github.com/matzehuels/mosaic/pkg/stitch"
	"github.com/matzehuels/mosaic/pkg/store"
)

func (c *CLI) runsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "runs",
		Short: "List, show and delete saved runs",
	}
	cmd.AddCommand(c.runsListCommand())
	cmd.AddCommand(c.runsShowCommand())
	cmd.AddCommand(c.runsDeleteCommand())
	return cmd
}

func (c *CLI) runsListCommand() *cobra.Command {
	var limit int
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List saved runs, newest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.withStore(cmd.Context(), func(st store.Store) error {
				runs, err := st.List(cmd.Context(), limit)
				if err != nil {
					return err
				}
				if len(runs) == 0 {
					printInfo("No saved runs")
					printNextStep("Save one", "mosaic solve tiles.txt --save")
					return nil
				}
				fmt.Fprintln(stdout, runsTable(runs, time.Now()))
				return nil
			})
		},
	}
	cmd.Flags().IntVarP(&limit, "limit", "n", store.DefaultListLimit, "maximum runs to list")
	return cmd
}

func (c *CLI) runsShowCommand() *cobra.Command {
	var image bool
	cmd := &cobra.Command{
		Use:   "show ID",
		Short: "Show a saved run",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := store.ValidateID(args[0]); err != nil {
				return err
			}
			return c.withStore(cmd.Context(), func(st store.Store) error {
				run, err := st.Get(cmd.Context(), args[0])
				if err != nil {
					return err
				}
				printRun(run)
				if !image {
					return nil
				}
				img, mask, err := rebuildImage(run)
				if err != nil {
					return err
				}
				fmt.Fprintln(stdout)
				fmt.Fprint(stdout, preview(img, mask))
				return nil
			})
		},
	}
	cmd.Flags().BoolVar(&image, "image", false, "also draw the stitched image")
	return cmd
}

func (c *CLI) runsDeleteCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "delete ID",
		Short: "Delete a saved run",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := store.ValidateID(args[0]); err != nil {
				return err
			}
			return c.withStore(cmd.Context(), func(st store.Store) error {
				if err := st.Delete(cmd.Context(), args[0]); err != nil {
					return err
				}
				printSuccess("Deleted run %s", args[0])
				return nil
			})
		},
	}
}

func (c *CLI) withStore(ctx context.Context, fn func(store.Store) error) error {
	st, err := c.newStore(ctx)
	if err != nil {
		return err
	}
	defer st.Close()
	return fn(st)
}

func runsTable(runs []store.Run, now time.Time) string {
	rows := make([][]string, len(runs))
	for i, r := range runs {
		rows[i] = []string{
			r.ID[:min(8, len(r.ID))],
			r.Source,
			fmt.Sprintf("%dx%d", r.Width, r.Width),
			strconv.FormatUint(r.Checksum, 10),
			strconv.Itoa(r.Roughness),
			formatRelativeTime(r.CreatedAt, now),
		}
	}
	headerStyle := lipgloss.NewStyle().Foreground(colorGray).Bold(true)
	return table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("ID", "Source", "Grid", "Checksum", "Roughness", "Saved").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			switch {
			case row == -1:
				return headerStyle
			case col == 3 || col == 4:
				return StyleNumber
			case col == 5:
				return StyleDim
			}
			return StyleValue
		}).
		String()
}

func printRun(r *store.Run) {
	printKeyValue("id", r.ID)
	printKeyValue("saved", r.CreatedAt.Local().Format(time.DateTime))
	printKeyValue("source", r.Source)
	printKeyValue("tiles", fmt.Sprintf("%d (%dx%d)", r.TileCount, r.Width, r.Width))
	printKeyValue("checksum", StyleNumber.Render(strconv.FormatUint(r.Checksum, 10)))
	printKeyValue("motif", r.Motif)
	printKeyValue("matches", fmt.Sprintf("%d (%s)", r.Matches, r.Orientation))
	printKeyValue("roughness", StyleNumber.Render(strconv.Itoa(r.Roughness)))
}

// rebuildImage restores the stitched image and motif mask of a saved run
// from its input and cell references, without searching again.
func rebuildImage(r *store.Run) (grid.Bitmap, grid.Bitmap, error) {
	tiles, err := source.ParseString(r.Input)
	if err != nil {
		return grid.Bitmap{}, grid.Bitmap{}, errors.Wrap(errors.ErrCodeInternal, err, "stored input for run %s", r.ID)
	}
	p, err := assemble.FromRefs(tiles, r.Width, r.Cells)
	if err != nil {
		return grid.Bitmap{}, grid.Bitmap{}, err
	}
	m := motif.SeaMonster
	if r.MotifText != "" {
		if m, err = motif.Parse(r.Motif, r.MotifText); err != nil {
			return grid.Bitmap{}, grid.Bitmap{}, err
		}
	}
	img := stitch.Stitch(p)
	return img, motif.Scan(img, m).Mask(img), nil
}

func formatRelativeTime(t, now time.Time) string {
	d := now.Sub(t)
	switch {
	case d < time.Minute:
		return "just now"
	case d < time.Hour:
		return fmt.Sprintf("%dm ago", int(d.Minutes()))
	case d < 24*time.Hour:
		return fmt.Sprintf("%dh ago", int(d.Hours()))
	case d < 30*24*time.Hour:
		return fmt.Sprintf("%dd ago", int(d.Hours()/24))
	}
	return t.Format("2006-01-02")
}
