package pipeline

import (
	"bytes"
	"context"
	"encoding/json"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/mosaic/pkg/assemble"
	"github.com/matzehuels/mosaic/pkg/cache"
	"github.com/matzehuels/mosaic/pkg/grid"
	"github.com/matzehuels/mosaic/pkg/motif"
	"github.com/matzehuels/mosaic/pkg/observability"
	"github.com/matzehuels/mosaic/pkg/source"
	"github.com/matzehuels/mosaic/pkg/stitch"
	"github.com/matzehuels/mosaic/pkg/tile"
)

// Runner executes the pipeline with caching. It holds no per-run state and
// is safe for concurrent use.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger
	TTL    time.Duration
}

// NewRunner creates a runner. A nil cache disables caching and a nil keyer
// means DefaultKeyer.
func NewRunner(c cache.Cache, keyer cache.Keyer, logger *log.Logger) *Runner {
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{Cache: c, Keyer: keyer, Logger: logger, TTL: cache.TTLPlacement}
}

// Execute runs parse → assemble → stitch → scan.
func (r *Runner) Execute(ctx context.Context, opts Options) (*Result, error) {
	r.applyLogger(&opts)
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, err
	}
	res := &Result{}

	start := time.Now()
	tiles, err := r.Parse(ctx, opts)
	if err != nil {
		return nil, err
	}
	res.Tiles = tiles
	res.InputHash = InputHash(tiles)
	res.Stats.ParseTime = time.Since(start)
	res.Stats.TileCount = len(tiles)
	r.Logger.Info("parsed tiles", "tiles", len(tiles), "edge", tiles[0].Size, "duration", res.Stats.ParseTime)

	start = time.Now()
	p, search, hit, err := r.AssembleWithCacheInfo(ctx, tiles, opts)
	if err != nil {
		return nil, err
	}
	res.Placement = p
	res.Stats.Search = search
	res.Stats.Width = p.Width
	res.Stats.AssembleTime = time.Since(start)
	res.CacheInfo.PlacementHit = hit
	r.Logger.Info("assembled grid", "width", p.Width, "cached", hit, "duration", res.Stats.AssembleTime)

	start = time.Now()
	res.Image = stitch.Stitch(p)
	res.Checksum = stitch.CornerChecksum(p)
	res.Stats.StitchTime = time.Since(start)

	start = time.Now()
	res.Scan = r.Scan(ctx, res.Image, opts.ResolvedMotif())
	res.Orientation, res.Matches = res.Scan.Best()
	res.Roughness = res.Scan.Roughness()
	res.Stats.ScanTime = time.Since(start)
	r.Logger.Info("scanned image",
		"motif", res.Scan.Motif.Name,
		"matches", res.Matches,
		"orientation", res.Orientation,
		"roughness", res.Roughness)

	return res, nil
}

// Parse reads tiles from opts.Input.
func (r *Runner) Parse(ctx context.Context, opts Options) ([]tile.Tile, error) {
	r.applyLogger(&opts)
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, err
	}
	hooks := observability.Pipeline()
	hooks.OnParseStart(ctx, opts.Source)
	start := time.Now()
	tiles, err := source.ParseTiles(strings.NewReader(opts.Input))
	hooks.OnParseComplete(ctx, opts.Source, len(tiles), time.Since(start), err)
	return tiles, err
}

// cachedPlacement is the cache payload for a solved grid.
type cachedPlacement struct {
	Width int                `json:"width"`
	Cells []assemble.CellRef `json:"cells"`
}

// AssembleWithCacheInfo finds a placement for tiles, consulting the cache
// first unless opts.Refresh is set. Cached placements are rebuilt from the
// tiles and verified; anything that fails verification is recomputed.
func (r *Runner) AssembleWithCacheInfo(ctx context.Context, tiles []tile.Tile, opts Options) (*assemble.Placement, assemble.Stats, bool, error) {
	r.applyLogger(&opts)
	key := r.Keyer.PlacementKey(InputHash(tiles), opts.PlacementKeyOpts(len(tiles)))
	ch := observability.Cache()

	if !opts.Refresh {
		if data, hit, err := r.Cache.Get(ctx, key); err == nil && hit {
			var cp cachedPlacement
			if err := json.Unmarshal(data, &cp); err == nil {
				if p, err := assemble.FromRefs(tiles, cp.Width, cp.Cells); err == nil {
					ch.OnCacheHit(ctx, "placement")
					return p, assemble.Stats{}, true, nil
				}
			}
			r.Logger.Warn("discarding invalid cached placement", "key", key)
		} else if err != nil {
			r.Logger.Warn("cache read failed", "err", err)
		}
		ch.OnCacheMiss(ctx, "placement")
	}

	a, err := assemble.New(tile.ExpandAll(tiles), len(tiles),
		assemble.WithLogger(opts.Logger),
		assemble.WithParallelSeeds(opts.Parallel))
	if err != nil {
		return nil, assemble.Stats{}, false, err
	}
	hooks := observability.Pipeline()
	hooks.OnAssembleStart(ctx, len(tiles), a.Width())
	p, err := a.Solve(ctx)
	stats := a.Stats()
	hooks.OnAssembleComplete(ctx, observability.AssembleStats{
		Seeds:      stats.Seeds,
		Calls:      stats.Calls,
		Backtracks: stats.Backtracks,
		Duration:   stats.Duration,
	}, err)
	if err != nil {
		return nil, stats, false, err
	}

	if data, err := json.Marshal(cachedPlacement{Width: p.Width, Cells: p.Refs()}); err == nil {
		if err := r.Cache.Set(ctx, key, data, r.TTL); err != nil {
			r.Logger.Warn("cache write failed", "err", err)
		} else {
			ch.OnCacheSet(ctx, "placement", len(data))
		}
	}
	return p, stats, false, nil
}

// Assemble is AssembleWithCacheInfo without the cache details.
func (r *Runner) Assemble(ctx context.Context, tiles []tile.Tile, opts Options) (*assemble.Placement, error) {
	p, _, _, err := r.AssembleWithCacheInfo(ctx, tiles, opts)
	return p, err
}

// Scan counts motif matches in every orientation of image.
func (r *Runner) Scan(ctx context.Context, image grid.Bitmap, m motif.Motif) motif.ScanResult {
	start := time.Now()
	res := motif.Scan(image, m)
	_, n := res.Best()
	observability.Pipeline().OnScanComplete(ctx, m.Name, n, res.Roughness(), time.Since(start))
	return res
}

// Close releases the cache.
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}

func (r *Runner) applyLogger(opts *Options) {
	if opts.Logger == nil {
		opts.Logger = r.Logger
	}
}

// InputHash identifies a tile set independent of whitespace in its text.
// Tile order is part of the identity because it fixes the search order.
func InputHash(tiles []tile.Tile) string {
	var buf bytes.Buffer
	_ = source.FormatTiles(&buf, tiles)
	return cache.Hash(buf.Bytes())
}
