// Package config loads hierletters settings from TOML files.
//
// # File Format
//
// Every key is optional; missing keys keep their [Default] value:
//
//	random_segments = 4
//	seed = 42
//	diagonal_offset = 1.0
//	background = "#ffffff"
//	foreground = "#000000"
//
//	[large]
//	width = 190
//	height = 250
//
//	[small]
//	width = 28
//	height = 36
//
//	[layout]
//	columns = 5
//	rows = 5
//
//	[thickness]
//	horizontal = 6
//	vertical = 6
//
//	[output]
//	dir = "out"
//	format = "png"
//	suffix = ""
//	scale = 1
//	workers = 4
//
//	[cache]
//	backend = "file"        # file, redis or none
//	dir = ""                # defaults to the user cache directory
//	redis_url = "redis://localhost:6379/0"
//	ttl = "24h"
//
//	[server]
//	addr = ":8080"
//
// Unknown keys are rejected so typos do not silently fall back to defaults.
//
// # Discovery
//
// [Load] reads an explicit path. [LoadDefault] reads the file named by the
// HIERLETTERS_CONFIG environment variable, or returns the defaults when it is
// unset.
package config

import (
	"fmt"
	"image"
	"image/color"
	"os"
	"runtime"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/lucasb-eyer/go-colorful"

	"github.com/matzehuels/hierletters/pkg/core/compose"
	"github.com/matzehuels/hierletters/pkg/core/letter"
	"github.com/matzehuels/hierletters/pkg/core/render/raster"
	"github.com/matzehuels/hierletters/pkg/errors"
	hio "github.com/matzehuels/hierletters/pkg/io"
)

// EnvConfig names the environment variable holding the config file path.
const EnvConfig = "HIERLETTERS_CONFIG"

// Cache backends.
const (
	CacheFile  = "file"
	CacheRedis = "redis"
	CacheNone  = "none"
)

// Size is a width and height in pixels.
type Size struct {
	Width  int `toml:"width"`
	Height int `toml:"height"`
}

// Point converts s to an image.Point.
func (s Size) Point() image.Point { return image.Pt(s.Width, s.Height) }

// Layout is the number of tile columns and rows.
type Layout struct {
	Columns int `toml:"columns"`
	Rows    int `toml:"rows"`
}

// Point converts l to an image.Point.
func (l Layout) Point() image.Point { return image.Pt(l.Columns, l.Rows) }

// Output configures written files.
type Output struct {
	Dir     string `toml:"dir"`
	Format  string `toml:"format"`
	Suffix  string `toml:"suffix"`
	Scale   int    `toml:"scale"`
	Workers int    `toml:"workers"`
}

// Cache configures the artifact cache.
type Cache struct {
	Backend  string        `toml:"backend"`
	Dir      string        `toml:"dir"`
	RedisURL string        `toml:"redis_url"`
	TTL      time.Duration `toml:"ttl"`
}

// Server configures the HTTP renderer.
type Server struct {
	Addr string `toml:"addr"`
}

// Config is the complete hierletters configuration.
type Config struct {
	Large          Size             `toml:"large"`
	Small          Size             `toml:"small"`
	Layout         Layout           `toml:"layout"`
	Thickness      raster.Thickness `toml:"thickness"`
	DiagonalOffset float64          `toml:"diagonal_offset"`
	Background     string           `toml:"background"`
	Foreground     string           `toml:"foreground"`
	RandomSegments int              `toml:"random_segments"`
	Seed           uint64           `toml:"seed"`
	Output         Output           `toml:"output"`
	Cache          Cache            `toml:"cache"`
	Server         Server           `toml:"server"`
}

// Default returns the reference configuration: a 190×250 composite of 5×5
// tiles of 28×36 pixels.
func Default() Config {
	return Config{
		Large:          Size{Width: 190, Height: 250},
		Small:          Size{Width: 28, Height: 36},
		Layout:         Layout{Columns: 5, Rows: 5},
		Thickness:      raster.Thickness{Horizontal: 6, Vertical: 6},
		DiagonalOffset: 1,
		Background:     "#ffffff",
		Foreground:     "#000000",
		RandomSegments: 4,
		Seed:           compose.DefaultSeed,
		Output: Output{
			Dir:     "out",
			Format:  string(hio.PNG),
			Scale:   1,
			Workers: runtime.NumCPU(),
		},
		Cache: Cache{
			Backend: CacheFile,
			TTL:     24 * time.Hour,
		},
		Server: Server{Addr: ":8080"},
	}
}

// Load reads path over the defaults and validates the result.
func Load(path string) (Config, error) {
	cfg := Default()
	md, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		if os.IsNotExist(err) {
			return Config{}, errors.Wrap(errors.ErrCodeFileNotFound, err, "config file %s", path)
		}
		return Config{}, errors.Wrap(errors.ErrCodeInvalidConfig, err, "decode %s", path)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return Config{}, errors.New(errors.ErrCodeInvalidConfig, "unknown keys in %s: %s", path, strings.Join(keys, ", "))
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// LoadDefault loads the file named by HIERLETTERS_CONFIG, or returns
// Default when the variable is unset.
func LoadDefault() (Config, error) {
	if path := os.Getenv(EnvConfig); path != "" {
		return Load(path)
	}
	return Default(), nil
}

// Validate checks value ranges. Layout fit is checked by compose.New, which
// names the offending axis.
func (c Config) Validate() error {
	switch {
	case c.Large.Width < 1 || c.Large.Height < 1:
		return invalid("large size must be positive, got %dx%d", c.Large.Width, c.Large.Height)
	case c.Small.Width < 1 || c.Small.Height < 1:
		return invalid("small size must be positive, got %dx%d", c.Small.Width, c.Small.Height)
	case c.Layout.Columns < 1 || c.Layout.Rows < 1:
		return invalid("layout must have at least one column and row, got %dx%d", c.Layout.Columns, c.Layout.Rows)
	case c.Thickness.Horizontal < 0 || c.Thickness.Vertical < 0:
		return invalid("stroke thickness cannot be negative")
	case c.DiagonalOffset < 0:
		return invalid("diagonal offset cannot be negative")
	case c.RandomSegments < 0 || c.RandomSegments > letter.MaxRandomSegments:
		return invalid("random_segments must be in [0, %d], got %d", letter.MaxRandomSegments, c.RandomSegments)
	case c.Output.Scale < 1:
		return invalid("output scale must be at least 1, got %d", c.Output.Scale)
	case c.Output.Workers < 1:
		return invalid("output workers must be at least 1, got %d", c.Output.Workers)
	}
	if _, err := ParseColor(c.Background); err != nil {
		return err
	}
	if _, err := ParseColor(c.Foreground); err != nil {
		return err
	}
	if _, err := hio.ParseFormat(c.Output.Format); err != nil {
		return err
	}
	if err := errors.ValidateSuffix(c.Output.Suffix); err != nil {
		return err
	}
	switch c.Cache.Backend {
	case CacheFile, CacheNone:
	case CacheRedis:
		if c.Cache.RedisURL == "" {
			return invalid("cache backend redis needs redis_url")
		}
	default:
		return invalid("unknown cache backend %q (want file, redis or none)", c.Cache.Backend)
	}
	return nil
}

func invalid(format string, args ...any) error {
	return errors.New(errors.ErrCodeInvalidConfig, format, args...)
}

// ParseColor parses a hex color such as "#fff" or "#1e90ff".
func ParseColor(s string) (color.RGBA, error) {
	c, err := colorful.Hex(strings.TrimSpace(s))
	if err != nil {
		return color.RGBA{}, errors.Wrap(errors.ErrCodeInvalidConfig, err, "invalid color %q", s)
	}
	r, g, b := c.RGB255()
	return color.RGBA{R: r, G: g, B: b, A: 255}, nil
}

// Params converts c into compositor parameters.
func (c Config) Params() (compose.Params, error) {
	bg, err := ParseColor(c.Background)
	if err != nil {
		return compose.Params{}, err
	}
	fg, err := ParseColor(c.Foreground)
	if err != nil {
		return compose.Params{}, err
	}
	return compose.Params{
		LargeSize:      c.Large.Point(),
		SmallSize:      c.Small.Point(),
		Layout:         c.Layout.Point(),
		Thickness:      c.Thickness,
		DiagonalOffset: c.DiagonalOffset,
		Background:     bg,
		Foreground:     fg,
		RandomSegments: c.RandomSegments,
	}, nil
}

// Format returns the parsed output format.
func (c Config) Format() (hio.Format, error) {
	return hio.ParseFormat(c.Output.Format)
}

// String renders c as TOML.
func (c Config) String() string {
	var b strings.Builder
	if err := toml.NewEncoder(&b).Encode(c); err != nil {
		return fmt.Sprintf("config: %v", err)
	}
	return b.String()
}
