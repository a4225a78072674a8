// Package config loads jigsaw settings from TOML.
//
// Every field has a default (see [Default]); a config file only needs the
// keys it changes:
//
//	[shape]
//	family = "cloud"
//	seed = 7
//
//	[adapt]
//	strategy = "maxEdge"
//	safety_margin = 12
//
//	[cache]
//	backend = "redis"
//	redis_addr = "localhost:6379"
//	ttl = "12h"
package config

import (
	"os"
	"path/filepath"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/jigsaw/pkg/adapt"
	"github.com/matzehuels/jigsaw/pkg/errors"
	"github.com/matzehuels/jigsaw/pkg/geometry"
	"github.com/matzehuels/jigsaw/pkg/pieces"
	"github.com/matzehuels/jigsaw/pkg/projection"
	"github.com/matzehuels/jigsaw/pkg/scatter"
	"github.com/matzehuels/jigsaw/pkg/shape"
)

// AppName names the config and cache directories.
const AppName = "jigsaw"

// Cache backends.
const (
	BackendFile  = "file"
	BackendRedis = "redis"
	BackendNone  = "none"
)

// Config is the root of the TOML document.
type Config struct {
	Shape   Shape   `toml:"shape"`
	Cut     Cut     `toml:"cut"`
	Scatter Scatter `toml:"scatter"`
	Adapt   Adapt   `toml:"adapt"`
	Cache   Cache   `toml:"cache"`
	Server  Server  `toml:"server"`
}

// Shape configures outline generation.
type Shape struct {
	Family        string  `toml:"family"`
	Seed          uint64  `toml:"seed"`
	MinDiameter   float64 `toml:"min_diameter"`
	MaxDiameter   float64 `toml:"max_diameter"`
	MinArea       float64 `toml:"min_area"`
	CacheCapacity int     `toml:"cache_capacity"`
}

// Cut configures the grid cutter.
type Cut struct {
	Rows int `toml:"rows"`
	Cols int `toml:"cols"`
}

// Scatter configures the scatter canvas and margins.
type Scatter struct {
	Width   float64         `toml:"width"`
	Height  float64         `toml:"height"`
	Margins scatter.Margins `toml:"margins"`
}

// Adapt configures the adaptation engine.
type Adapt struct {
	Strategy     string  `toml:"strategy"`
	SafetyMargin float64 `toml:"safety_margin"`
	Debug        bool    `toml:"debug"`
}

// Cache selects and configures the byte cache backend.
type Cache struct {
	Backend       string   `toml:"backend"`
	Dir           string   `toml:"dir"`
	RedisAddr     string   `toml:"redis_addr"`
	RedisPassword string   `toml:"redis_password"`
	RedisDB       int      `toml:"redis_db"`
	Prefix        string   `toml:"prefix"`
	// TTL applies to every entry. Zero keeps the per-kind defaults
	// (cache.TTLShape, cache.TTLPuzzle).
	TTL Duration `toml:"ttl"`
}

// Server configures the HTTP API.
type Server struct {
	Addr         string   `toml:"addr"`
	ReadTimeout  Duration `toml:"read_timeout"`
	WriteTimeout Duration `toml:"write_timeout"`
}

// Duration is a time.Duration written as a Go duration string ("90s").
type Duration struct {
	time.Duration
}

// UnmarshalText parses a duration string.
func (d *Duration) UnmarshalText(text []byte) error {
	v, err := time.ParseDuration(string(text))
	if err != nil {
		return errors.Wrap(errors.ErrCodeInvalidInput, err, "invalid duration %q", text)
	}
	d.Duration = v
	return nil
}

// MarshalText formats the duration.
func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

// Default returns the built-in configuration.
func Default() Config {
	so := shape.DefaultOptions()
	return Config{
		Shape: Shape{
			Family:        string(shape.Polygon),
			Seed:          42,
			MinDiameter:   so.MinDiameter,
			MaxDiameter:   so.MaxDiameter,
			MinArea:       so.MinArea,
			CacheCapacity: shape.DefaultCacheCapacity,
		},
		Cut: Cut{Rows: 3, Cols: 3},
		Scatter: Scatter{
			Width:   800,
			Height:  600,
			Margins: scatter.DefaultMargins(),
		},
		Adapt: Adapt{
			Strategy:     string(projection.MinEdge),
			SafetyMargin: pieces.DefaultSafetyMargin,
		},
		Cache: Cache{
			Backend: BackendFile,
			Prefix:  AppName + ":",
		},
		Server: Server{
			Addr:         ":8080",
			ReadTimeout:  Duration{10 * time.Second},
			WriteTimeout: Duration{30 * time.Second},
		},
	}
}

// Decode parses a TOML document on top of the defaults.
func Decode(data string) (Config, error) {
	cfg := Default()
	md, err := toml.Decode(data, &cfg)
	if err != nil {
		return Config{}, errors.Wrap(errors.ErrCodeInvalidInput, err, "parse config")
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return Config{}, errors.New(errors.ErrCodeInvalidInput, "unknown config key %q", undecoded[0].String())
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Load reads the config file at path. An empty path, or a missing file at
// the default location, yields the defaults.
func Load(path string) (Config, error) {
	explicit := path != ""
	if !explicit {
		p, err := DefaultPath()
		if err != nil {
			return Default(), nil
		}
		path = p
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) && !explicit {
			return Default(), nil
		}
		if os.IsNotExist(err) {
			return Config{}, errors.Wrap(errors.ErrCodeNotFound, err, "config file %s", path)
		}
		return Config{}, errors.Wrap(errors.ErrCodeInternal, err, "read config %s", path)
	}
	return Decode(string(data))
}

// DefaultPath returns $XDG_CONFIG_HOME/jigsaw/config.toml (or the platform
// equivalent).
func DefaultPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, AppName, "config.toml"), nil
}

// Validate checks enumerations and ranges.
func (c Config) Validate() error {
	if _, err := shape.ParseFamily(c.Shape.Family); err != nil {
		return err
	}
	if err := c.ShapeOptions().Options.Validate(); err != nil {
		return err
	}
	if err := errors.ValidateGrid(c.Cut.Rows, c.Cut.Cols); err != nil {
		return err
	}
	if err := errors.ValidateCanvas("scatter canvas", c.Scatter.Width, c.Scatter.Height); err != nil {
		return err
	}
	if _, err := projection.ParseStrategy(c.Adapt.Strategy); err != nil {
		return err
	}
	if c.Adapt.SafetyMargin < 0 {
		return errors.New(errors.ErrCodeInvalidInput, "adapt safety_margin must not be negative")
	}
	switch c.Cache.Backend {
	case BackendFile, BackendRedis, BackendNone:
	default:
		return errors.New(errors.ErrCodeInvalidInput, "unknown cache backend %q (want file, redis or none)", c.Cache.Backend)
	}
	if c.Cache.TTL.Duration < 0 {
		return errors.New(errors.ErrCodeInvalidInput, "cache ttl must not be negative, got %v", c.Cache.TTL)
	}
	if c.Cache.Backend == BackendRedis && c.Cache.RedisAddr == "" {
		return errors.New(errors.ErrCodeMissingData, "cache backend redis needs redis_addr")
	}
	return nil
}

// Canvas is the default scatter canvas.
func (c Config) Canvas() geometry.CanvasSize {
	return geometry.Size(c.Scatter.Width, c.Scatter.Height)
}

// ShapeOptions converts the [shape] section for the optimized generator.
func (c Config) ShapeOptions() *shape.OptimizedOptions {
	return &shape.OptimizedOptions{
		Options: shape.Options{
			MinDiameter: c.Shape.MinDiameter,
			MaxDiameter: c.Shape.MaxDiameter,
			MinArea:     c.Shape.MinArea,
		},
		CacheCapacity: c.Shape.CacheCapacity,
	}
}

// AdaptOptions converts the [adapt] section.
func (c Config) AdaptOptions() adapt.Options {
	return adapt.Options{
		Strategy:     projection.Strategy(c.Adapt.Strategy),
		SafetyMargin: c.Adapt.SafetyMargin,
		Debug:        c.Adapt.Debug,
	}
}

// ScatterOptions converts the [scatter] section.
func (c Config) ScatterOptions() *scatter.Options {
	m := c.Scatter.Margins
	return &scatter.Options{Margins: &m}
}
