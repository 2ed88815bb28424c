// Package config loads mosaic.toml.
//
// Every field has a default, so a missing file yields a usable [Config].
// Values from the file override defaults; [Config.Validate] rejects
// unknown backends and negative worker counts.
package config

import (
	"os"
	"path/filepath"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/mosaic/pkg/errors"
)

// FileName is the config file looked up in the user config directory.
const FileName = "mosaic.toml"

// Cache backends.
const (
	CacheFile  = "file"
	CacheRedis = "redis"
	CacheNone  = "none"
)

// Store backends.
const (
	StoreFile  = "file"
	StoreMongo = "mongo"
	StoreNone  = "none"
)

// Config is the decoded mosaic.toml.
type Config struct {
	Solve  Solve  `toml:"solve"`
	Cache  Cache  `toml:"cache"`
	Store  Store  `toml:"store"`
	Server Server `toml:"server"`
}

// Solve holds defaults for the solve pipeline.
type Solve struct {
	Parallel int    `toml:"parallel"`
	Motif    string `toml:"motif"`
}

// Cache selects and configures the placement cache.
type Cache struct {
	Backend   string   `toml:"backend"`
	Dir       string   `toml:"dir"`
	TTL       Duration `toml:"ttl"`
	RedisAddr string   `toml:"redis_addr"`
	Prefix    string   `toml:"prefix"`
}

// Store selects and configures run storage.
type Store struct {
	Backend       string `toml:"backend"`
	Dir           string `toml:"dir"`
	MongoURI      string `toml:"mongo_uri"`
	MongoDatabase string `toml:"mongo_database"`
}

// Server configures the HTTP API.
type Server struct {
	Addr string `toml:"addr"`
}

// Duration decodes TOML strings such as "720h".
type Duration struct {
	time.Duration
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (d *Duration) UnmarshalText(text []byte) error {
	v, err := time.ParseDuration(string(text))
	if err != nil {
		return err
	}
	d.Duration = v
	return nil
}

// MarshalText implements encoding.TextMarshaler.
func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.Duration.String()), nil
}

// Default returns the configuration used when no file is present.
func Default() Config {
	return Config{
		Cache: Cache{
			Backend:   CacheFile,
			TTL:       Duration{30 * 24 * time.Hour},
			RedisAddr: "localhost:6379",
		},
		Store: Store{
			Backend:       StoreFile,
			MongoURI:      "mongodb://localhost:27017",
			MongoDatabase: "mosaic",
		},
		Server: Server{Addr: ":8080"},
	}
}

// DefaultPath returns the config path under the user config directory.
func DefaultPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "mosaic", FileName), nil
}

// Load reads the config at path. An empty path means [DefaultPath], and a
// missing default file is not an error. An explicitly named file must exist.
func Load(path string) (Config, error) {
	cfg := Default()

	explicit := path != ""
	if !explicit {
		p, err := DefaultPath()
		if err != nil {
			return cfg, nil
		}
		path = p
	}

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) && !explicit {
		return cfg, cfg.Validate()
	}
	if err != nil {
		return cfg, errors.Wrap(errors.ErrCodeInvalidConfig, err, "read config")
	}
	return Parse(data, cfg)
}

// Parse decodes TOML over base and validates the result.
func Parse(data []byte, base Config) (Config, error) {
	cfg := base
	md, err := toml.Decode(string(data), &cfg)
	if err != nil {
		return base, errors.Wrap(errors.ErrCodeInvalidConfig, err, "parse config")
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return base, errors.New(errors.ErrCodeInvalidConfig, "unknown config key %q", undecoded[0].String())
	}
	return cfg, cfg.Validate()
}

// Validate checks backend names and numeric ranges.
func (c Config) Validate() error {
	if c.Solve.Parallel < 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "solve.parallel must be >= 0, got %d", c.Solve.Parallel)
	}
	switch c.Cache.Backend {
	case CacheFile, CacheNone:
	case CacheRedis:
		if c.Cache.RedisAddr == "" {
			return errors.New(errors.ErrCodeInvalidConfig, "cache.redis_addr is required for the redis backend")
		}
	default:
		return errors.New(errors.ErrCodeInvalidConfig, "unknown cache.backend %q", c.Cache.Backend)
	}
	if c.Cache.TTL.Duration < 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "cache.ttl must not be negative")
	}
	switch c.Store.Backend {
	case StoreFile, StoreNone:
	case StoreMongo:
		if c.Store.MongoURI == "" || c.Store.MongoDatabase == "" {
			return errors.New(errors.ErrCodeInvalidConfig, "store.mongo_uri and store.mongo_database are required for the mongo backend")
		}
	default:
		return errors.New(errors.ErrCodeInvalidConfig, "unknown store.backend %q", c.Store.Backend)
	}
	if c.Server.Addr == "" {
		return errors.New(errors.ErrCodeInvalidConfig, "server.addr must not be empty")
	}
	return nil
}

// CacheDir returns the configured cache directory or the user default.
func (c Config) CacheDir() (string, error) {
	if c.Cache.Dir != "" {
		return c.Cache.Dir, nil
	}
	base, err := os.UserCacheDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(base, "mosaic", "cache"), nil
}

// StoreDir returns the configured run directory or the user default.
func (c Config) StoreDir() (string, error) {
	if c.Store.Dir != "" {
		return c.Store.Dir, nil
	}
	base, err := os.UserCacheDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(base, "mosaic", "runs"), nil
}
