package assemble

import (
	"context"
	"io"
	"sync"
	"sync/atomic"
	"time"

	"github.com/charmbracelet/log"
	"golang.org/x/sync/errgroup"

	"github.com/matzehuels/mosaic/pkg/errors"
	"github.com/matzehuels/mosaic/pkg/tile"
)

// cancelCheckInterval is how many search steps pass between context checks.
// The first step of every branch is always checked.
const cancelCheckInterval = 1024

// Stats describes the work done by one search.
type Stats struct {
	Seeds      int           `json:"seeds"`      // seed variants tried
	Calls      int           `json:"calls"`      // extension steps, including the accepting one
	Backtracks int           `json:"backtracks"` // candidates pushed and later undone
	MaxDepth   int           `json:"max_depth"`  // most cells placed at once
	Duration   time.Duration `json:"duration"`
}

func (s *Stats) add(o Stats) {
	s.Seeds += o.Seeds
	s.Calls += o.Calls
	s.Backtracks += o.Backtracks
	s.MaxDepth = max(s.MaxDepth, o.MaxDepth)
}

// Option configures an Assembler.
type Option func(*Assembler)

// WithLogger sets the logger used for search progress (debug level).
func WithLogger(l *log.Logger) Option {
	return func(a *Assembler) {
		if l != nil {
			a.logger = l
		}
	}
}

// WithParallelSeeds runs up to n seed branches concurrently. Values below 2
// keep the search sequential.
func WithParallelSeeds(n int) Option {
	return func(a *Assembler) { a.workers = n }
}

// Assembler searches for one valid placement of a variant set.
type Assembler struct {
	variants []tile.Variant
	index    *Index
	physical int
	width    int
	workers  int
	logger   *log.Logger

	mu    sync.Mutex
	stats Stats
}

// New prepares a search over variants for physical distinct tiles. It
// returns a SHAPE_MISMATCH error when physical is not a positive perfect
// square.
func New(variants []tile.Variant, physical int, opts ...Option) (*Assembler, error) {
	width, ok := isqrt(physical)
	if !ok {
		return nil, errors.New(errors.ErrCodeShape,
			"cannot arrange %d tiles into a square", physical)
	}
	a := &Assembler{
		variants: variants,
		index:    BuildIndex(variants),
		physical: physical,
		width:    width,
		logger:   log.NewWithOptions(io.Discard, log.Options{}),
	}
	for _, opt := range opts {
		opt(a)
	}
	return a, nil
}

// Assemble is a convenience wrapper around New and Solve.
func Assemble(variants []tile.Variant, physical int, opts ...Option) (*Placement, error) {
	a, err := New(variants, physical, opts...)
	if err != nil {
		return nil, err
	}
	return a.Solve(context.Background())
}

// Width returns the side length of the grid being assembled.
func (a *Assembler) Width() int { return a.width }

// Index returns the border index built over the variants.
func (a *Assembler) Index() *Index { return a.index }

// Stats returns the counters of the last Solve.
func (a *Assembler) Stats() Stats {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.stats
}

// Solve runs the search. It returns an UNSATISFIABLE error when every seed
// has been exhausted and ctx.Err() when the context ends first.
func (a *Assembler) Solve(ctx context.Context) (*Placement, error) {
	start := time.Now()
	a.logger.Debug("assembling",
		"variants", len(a.variants),
		"tiles", a.physical,
		"width", a.width,
		"workers", max(a.workers, 1))

	var (
		cells []int
		stats Stats
		err   error
	)
	if a.workers > 1 {
		cells, stats, err = a.solveParallel(ctx)
	} else {
		cells, stats, err = a.solveSequential(ctx)
	}
	stats.Duration = time.Since(start)

	a.mu.Lock()
	a.stats = stats
	a.mu.Unlock()

	if err != nil {
		return nil, err
	}
	if cells == nil {
		a.logger.Debug("search exhausted", "calls", stats.Calls, "backtracks", stats.Backtracks)
		return nil, errors.New(errors.ErrCodeUnsatisfiable,
			"no border-consistent arrangement of %d tiles (%d steps searched)", a.physical, stats.Calls)
	}

	p := &Placement{Width: a.width, Cells: make([]tile.Variant, len(cells))}
	for i, c := range cells {
		p.Cells[i] = a.variants[c]
	}
	a.logger.Debug("placement found",
		"seeds", stats.Seeds,
		"calls", stats.Calls,
		"backtracks", stats.Backtracks,
		"duration", stats.Duration)
	return p, nil
}

func (a *Assembler) solveSequential(ctx context.Context) ([]int, Stats, error) {
	s := a.newSearch(ctx, nil)
	for seed := range a.variants {
		ok, err := s.seed(seed)
		if err != nil {
			return nil, s.stats, err
		}
		if ok {
			return s.result(), s.stats, nil
		}
	}
	return nil, s.stats, nil
}

// solveParallel tries seeds concurrently. A branch is abandoned once a lower
// seed has succeeded, so the winner is always the lowest successful seed.
func (a *Assembler) solveParallel(ctx context.Context) ([]int, Stats, error) {
	var (
		best    atomic.Int64
		mu      sync.Mutex
		total   Stats
		results = make(map[int][]int)
	)
	best.Store(int64(len(a.variants)))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(a.workers)
	for seed := range a.variants {
		if int64(seed) > best.Load() {
			break
		}
		g.Go(func() error {
			if int64(seed) > best.Load() {
				return nil
			}
			s := a.newSearch(gctx, func() bool { return best.Load() < int64(seed) })
			ok, err := s.seed(seed)

			mu.Lock()
			defer mu.Unlock()
			total.add(s.stats)
			if err != nil {
				return err
			}
			if ok {
				results[seed] = s.result()
				for {
					cur := best.Load()
					if int64(seed) >= cur || best.CompareAndSwap(cur, int64(seed)) {
						break
					}
				}
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, total, err
	}
	win := best.Load()
	if win == int64(len(a.variants)) {
		return nil, total, nil
	}
	return results[int(win)], total, nil
}

func (a *Assembler) newSearch(ctx context.Context, abandoned func() bool) *search {
	return &search{
		a:         a,
		ctx:       ctx,
		abandoned: abandoned,
		placed:    make([]int, 0, a.width*a.width),
		used:      make(map[uint64]bool, a.physical),
	}
}

// isqrt returns the integer square root of n when n is a positive perfect
// square.
func isqrt(n int) (int, bool) {
	if n <= 0 {
		return 0, false
	}
	r := 0
	for (r+1)*(r+1) <= n {
		r++
	}
	return r, r*r == n
}
