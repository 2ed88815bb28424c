// Package cli implements the mosaic command-line interface.
//
// Commands:
//   - solve: assemble a tile file and report the checksum and roughness
//   - render: write the stitched image or adjacency graph to a file
//   - view: browse the stitched image interactively
//   - scramble: write a randomly oriented, shuffled copy of a puzzle
//   - runs: list and show saved runs
//   - serve: run the HTTP API
//   - cache: manage the placement cache
//
// All commands accept --verbose (-v) for debug logging and --config to
// point at a mosaic.toml other than the default.
package cli

import (
	"context"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/mosaic/pkg/buildinfo"
	"github.com/matzehuels/mosaic/pkg/cache"
	"github.com/matzehuels/mosaic/pkg/config"
	"github.com/matzehuels/mosaic/pkg/errors"
	"github.com/matzehuels/mosaic/pkg/motif"
	"github.com/matzehuels/mosaic/pkg/observability"
	"github.com/matzehuels/mosaic/pkg/pipeline"
	"github.com/matzehuels/mosaic/pkg/store"
)

const appName = "mosaic"

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger

	configPath string
	config     config.Config
}

// New creates a CLI that logs to w.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{
		Logger: newLogger(w, level),
		config: config.Default(),
	}
}

// SetLogLevel updates the logger's level. Debug output includes callers.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
	c.Logger.SetReportCaller(level <= log.DebugLevel)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:   appName,
		Short: "Mosaic reassembles scrambled image tiles and hunts for sea monsters",
		Long: `Mosaic reads a set of square image tiles, finds the rotation, flip and
position of every tile so that touching borders agree, stitches the interior
pixels into one image and counts occurrences of a motif in it.`,
		Version:           buildinfo.Version,
		SilenceUsage:      true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error { return c.loadConfig() },
	}
	root.SetVersionTemplate(buildinfo.Template())
	root.PersistentFlags().StringVar(&c.configPath, "config", "", "config file (default: user config dir/mosaic/mosaic.toml)")

	root.AddCommand(c.solveCommand())
	root.AddCommand(c.renderCommand())
	root.AddCommand(c.viewCommand())
	root.AddCommand(c.scrambleCommand())
	root.AddCommand(c.runsCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// loadConfig reads the config file and installs logging hooks when debug
// output is enabled.
func (c *CLI) loadConfig() error {
	cfg, err := config.Load(c.configPath)
	if err != nil {
		return err
	}
	c.config = cfg
	if c.Logger.GetLevel() <= log.DebugLevel {
		hooks := observability.NewLogHooks(c.Logger)
		observability.SetPipelineHooks(hooks)
		observability.SetCacheHooks(hooks)
	}
	return nil
}

// newCache opens the configured cache backend.
func (c *CLI) newCache(ctx context.Context, noCache bool) (cache.Cache, error) {
	if noCache {
		return cache.NewNullCache(), nil
	}
	switch c.config.Cache.Backend {
	case config.CacheNone:
		return cache.NewNullCache(), nil
	case config.CacheRedis:
		return cache.NewRedisCache(ctx, cache.RedisOptions{Addr: c.config.Cache.RedisAddr})
	default:
		dir, err := c.config.CacheDir()
		if err != nil {
			c.Logger.Warn("no cache directory, caching disabled", "err", err)
			return cache.NewNullCache(), nil
		}
		return cache.NewFileCache(dir)
	}
}

// newRunner creates a pipeline runner over the configured cache.
func (c *CLI) newRunner(ctx context.Context, noCache bool) (*pipeline.Runner, error) {
	cc, err := c.newCache(ctx, noCache)
	if err != nil {
		return nil, err
	}
	var keyer cache.Keyer
	if c.config.Cache.Prefix != "" {
		keyer = cache.NewScopedKeyer(nil, c.config.Cache.Prefix)
	}
	r := pipeline.NewRunner(cc, keyer, c.Logger)
	if ttl := c.config.Cache.TTL.Duration; ttl > 0 {
		r.TTL = ttl
	}
	return r, nil
}

// newStore opens the configured run store.
func (c *CLI) newStore(ctx context.Context) (store.Store, error) {
	switch c.config.Store.Backend {
	case config.StoreNone:
		return store.NullStore{}, nil
	case config.StoreMongo:
		return store.NewMongoStore(ctx, store.MongoOptions{
			URI:      c.config.Store.MongoURI,
			Database: c.config.Store.MongoDatabase,
		})
	default:
		dir, err := c.config.StoreDir()
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidConfig, err, "resolve run directory")
		}
		return store.NewFileStore(dir)
	}
}

// readInput returns the contents of path, or stdin when path is "-".
func readInput(path string) (string, error) {
	if path == "-" {
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			return "", errors.Wrap(errors.ErrCodeInvalidInput, err, "read stdin")
		}
		return string(data), nil
	}
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return "", errors.Wrap(errors.ErrCodeNotFound, err, "input %s", path)
	}
	if err != nil {
		return "", errors.Wrap(errors.ErrCodeInvalidInput, err, "read %s", path)
	}
	return string(data), nil
}

// solveOptions builds pipeline options for input, resolving the motif flag
// against the config default.
func (c *CLI) solveOptions(input, motifPath string, parallel int) (pipeline.Options, error) {
	text, err := readInput(input)
	if err != nil {
		return pipeline.Options{}, err
	}
	opts := pipeline.Options{
		Input:    text,
		Source:   input,
		Parallel: parallel,
		Logger:   c.Logger,
	}
	if opts.Parallel < 0 {
		opts.Parallel = c.config.Solve.Parallel
	}
	if motifPath == "" {
		motifPath = c.config.Solve.Motif
	}
	if motifPath != "" {
		m, err := motif.Load(motifPath)
		if err != nil {
			return opts, err
		}
		opts.Motif = m.Pattern.String()
		opts.MotifName = m.Name
	}
	return opts, nil
}
