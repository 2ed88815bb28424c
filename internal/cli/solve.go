package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/matzehuels/mosaic/pkg/pipeline"
	"github.com/matzehuels/mosaic/pkg/store"
)

type solveFlags struct {
	motif    string
	parallel int
	noCache  bool
	refresh  bool
	save     bool
	json     bool
}

// solveSummary is the --json output of solve.
type solveSummary struct {
	RunID       string         `json:"run_id,omitempty"`
	Tiles       int            `json:"tiles"`
	Width       int            `json:"width"`
	Checksum    uint64         `json:"checksum"`
	Motif       string         `json:"motif"`
	Orientation string         `json:"orientation"`
	Matches     int            `json:"matches"`
	Roughness   int            `json:"roughness"`
	Cached      bool           `json:"cached"`
	Stats       pipeline.Stats `json:"stats"`
}

func (c *CLI) solveCommand() *cobra.Command {
	var f solveFlags

	cmd := &cobra.Command{
		Use:   "solve [tiles.txt]",
		Short: "Assemble tiles and report the corner checksum and roughness",
		Long: `Assemble the tiles in a file (or "-" for stdin) into a square grid whose
touching borders agree, then stitch the interiors and scan for the motif.

Prints the product of the four corner tile ids and the number of active
pixels not covered by any motif match. Placements are cached, so repeated
runs over the same tiles skip the search.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runSolve(cmd.Context(), args[0], f)
		},
	}

	cmd.Flags().StringVar(&f.motif, "motif", "", "motif file ('#' marks required pixels; default: sea monster)")
	cmd.Flags().IntVarP(&f.parallel, "parallel", "p", -1, "seed branches searched concurrently (default from config)")
	cmd.Flags().BoolVar(&f.noCache, "no-cache", false, "disable the placement cache")
	cmd.Flags().BoolVar(&f.refresh, "refresh", false, "ignore cached placements but store the new one")
	cmd.Flags().BoolVar(&f.save, "save", false, "persist the run to the run store")
	cmd.Flags().BoolVar(&f.json, "json", false, "print a JSON summary instead of text")

	return cmd
}

func (c *CLI) runSolve(ctx context.Context, input string, f solveFlags) error {
	opts, err := c.solveOptions(input, f.motif, f.parallel)
	if err != nil {
		return err
	}
	opts.Refresh = f.refresh

	runner, err := c.newRunner(ctx, f.noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	spinner := newSpinnerWithContext(ctx, "Assembling "+input+"...")
	if !f.json {
		spinner.Start()
	}
	res, err := runner.Execute(ctx, opts)
	spinner.Stop()
	if err != nil {
		if !f.json {
			printError("Solve failed")
		}
		return err
	}

	var runID string
	if f.save {
		st, err := c.newStore(ctx)
		if err != nil {
			return err
		}
		defer st.Close()
		prog := newProgress(c.Logger)
		run := store.NewRun(res, opts)
		if err := st.Save(ctx, run); err != nil {
			return fmt.Errorf("save run: %w", err)
		}
		prog.done("saved run", "id", run.ID, "store", c.config.Store.Backend)
		runID = run.ID
	}

	if f.json {
		enc := json.NewEncoder(stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(solveSummary{
			RunID:       runID,
			Tiles:       res.Stats.TileCount,
			Width:       res.Stats.Width,
			Checksum:    res.Checksum,
			Motif:       res.Scan.Motif.Name,
			Orientation: res.Orientation.String(),
			Matches:     res.Matches,
			Roughness:   res.Roughness,
			Cached:      res.CacheInfo.PlacementHit,
			Stats:       res.Stats,
		})
	}

	printSuccess("Solved %s", input)
	printStats(res.Stats, res.CacheInfo.PlacementHit)
	printKeyValue("checksum", StyleNumber.Render(strconv.FormatUint(res.Checksum, 10)))
	printKeyValue("motif", res.Scan.Motif.Name)
	printKeyValue("matches", fmt.Sprintf("%d (%s)", res.Matches, res.Orientation))
	printKeyValue("roughness", StyleNumber.Render(strconv.Itoa(res.Roughness)))
	if runID != "" {
		printKeyValue("run", runID)
	}
	if res.Matches == 0 {
		printWarning("no %s found in any orientation", res.Scan.Motif.Name)
	}
	printNextStep("Render it", "mosaic render "+input+" --highlight -o image.png")
	return nil
}
