// Package config loads deckgen configuration from TOML files.
//
// Configuration is optional: every key has a default, and a missing file
// (when no explicit path was given) is not an error. Files set only the
// keys they care about; flags override file values at the call sites.
//
// A full file:
//
//	[server]
//	addr = ":8080"
//	store = "redis"
//	redis_addr = "localhost:6379"
//	artifact_ttl = "45m"
//
//	[deck]
//	row_budget = 8
//	background = "#101628"
//	text_color = "#F4F4F4"
//	accent = "#FF9800"
//
//	[cache]
//	dir = "/var/cache/deckgen"
//	disabled = false
package config

import (
	"os"
	"path/filepath"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/deckgen/pkg/chart"
	"github.com/matzehuels/deckgen/pkg/errors"
	"github.com/matzehuels/deckgen/pkg/store"
	"github.com/matzehuels/deckgen/pkg/tablegrid"
)

// DefaultFilename is looked up in the working directory when no explicit
// config path is given.
const DefaultFilename = "deckgen.toml"

// Store backend names accepted in [server].store.
const (
	StoreMemory = "memory"
	StoreRedis  = "redis"
)

// Duration wraps time.Duration so TOML files can say "45m" or "2h".
type Duration time.Duration

// UnmarshalText implements encoding.TextUnmarshaler for TOML decoding.
func (d *Duration) UnmarshalText(text []byte) error {
	v, err := time.ParseDuration(string(text))
	if err != nil {
		return err
	}
	*d = Duration(v)
	return nil
}

// Std returns the wrapped time.Duration.
func (d Duration) Std() time.Duration {
	return time.Duration(d)
}

// Config is the full deckgen configuration.
type Config struct {
	Server ServerConfig `toml:"server"`
	Deck   DeckConfig   `toml:"deck"`
	Cache  CacheConfig  `toml:"cache"`
}

// ServerConfig configures the HTTP surface.
type ServerConfig struct {
	// Addr is the listen address.
	Addr string `toml:"addr"`

	// Store picks the artifact backend: "memory" or "redis".
	Store string `toml:"store"`

	// RedisAddr is the Redis address for the redis backend.
	RedisAddr string `toml:"redis_addr"`

	// ArtifactTTL is how long built decks stay downloadable.
	ArtifactTTL Duration `toml:"artifact_ttl"`
}

// DeckConfig configures deck assembly defaults.
type DeckConfig struct {
	// RowBudget caps table body rows per slide before pagination.
	RowBudget int `toml:"row_budget"`

	// Background, TextColor and Accent override the default theme.
	// Empty strings keep the theme's colors.
	Background string `toml:"background"`
	TextColor  string `toml:"text_color"`
	Accent     string `toml:"accent"`
}

// CacheConfig configures the chart cache.
type CacheConfig struct {
	// Dir is the cache directory. Empty resolves to the user cache dir.
	Dir string `toml:"dir"`

	// Disabled turns caching off entirely.
	Disabled bool `toml:"disabled"`
}

// Default returns the configuration used when no file is present.
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Addr:        ":8080",
			Store:       StoreMemory,
			RedisAddr:   "localhost:6379",
			ArtifactTTL: Duration(store.DefaultTTL),
		},
		Deck: DeckConfig{
			RowBudget: tablegrid.DefaultRowBudget,
		},
		Cache: CacheConfig{
			Dir: DefaultCacheDir(),
		},
	}
}

// DefaultCacheDir resolves the chart cache location under the user cache
// directory, falling back to a relative directory when none is known.
func DefaultCacheDir() string {
	base, err := os.UserCacheDir()
	if err != nil {
		return ".deckgen-cache"
	}
	return filepath.Join(base, "deckgen")
}

// Load reads configuration from path, layered over the defaults.
//
// An empty path tries DefaultFilename in the working directory and
// falls back to pure defaults when it doesn't exist. An explicit path
// that can't be read is an error.
func Load(path string) (*Config, error) {
	cfg := Default()

	explicit := path != ""
	if !explicit {
		path = DefaultFilename
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) && !explicit {
			return cfg, nil
		}
		return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "read config %s", path)
	}

	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidConfig, err, "parse config %s", path)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks the configuration and fills zero values with defaults.
func (c *Config) Validate() error {
	if c.Server.Addr == "" {
		c.Server.Addr = ":8080"
	}
	if c.Server.Store == "" {
		c.Server.Store = StoreMemory
	}
	if c.Server.Store != StoreMemory && c.Server.Store != StoreRedis {
		return errors.New(errors.ErrCodeInvalidConfig,
			"unknown store backend %q (must be %q or %q)", c.Server.Store, StoreMemory, StoreRedis)
	}
	if c.Server.Store == StoreRedis && c.Server.RedisAddr == "" {
		return errors.New(errors.ErrCodeInvalidConfig, "redis store requires redis_addr")
	}
	if c.Server.ArtifactTTL <= 0 {
		c.Server.ArtifactTTL = Duration(store.DefaultTTL)
	}

	if c.Deck.RowBudget < 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "row_budget must not be negative")
	}
	if c.Deck.RowBudget == 0 {
		c.Deck.RowBudget = tablegrid.DefaultRowBudget
	}
	for _, color := range []string{c.Deck.Background, c.Deck.TextColor, c.Deck.Accent} {
		if color == "" {
			continue
		}
		if _, ok := chart.ParseHex(color); !ok {
			return errors.New(errors.ErrCodeInvalidConfig,
				"invalid color %q (must be #RRGGBB or #RGB)", color)
		}
	}

	if c.Cache.Dir == "" {
		c.Cache.Dir = DefaultCacheDir()
	}
	return nil
}
