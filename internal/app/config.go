package app

import (
	"bytes"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"epigrid/internal/sims/epidemic"
)

// Views understood by the -view flag.
const (
	ViewWindow = "window"
	ViewTerm   = "term"
)

var (
	// ErrInvalidConfig is returned for settings that no run mode can use.
	ErrInvalidConfig = errors.New("app: invalid config")
	// ErrNoWindow is returned by window functions in builds without the
	// ebiten tag.
	ErrNoWindow = errors.New("app: built without window support (rebuild with -tags ebiten, or use -view term or -file)")
)

// Config holds every command-line setting of an epigrid run. The same fields
// can be loaded from a YAML file.
type Config struct {
	Size      int     `yaml:"size"`
	Width     int     `yaml:"width"`
	Height    int     `yaml:"height"`
	Duration  int     `yaml:"duration"`
	Recovery  float64 `yaml:"recovery"`
	Infection float64 `yaml:"infection"`
	Death     float64 `yaml:"death"`
	Cases     int     `yaml:"cases"`
	Seed      int64   `yaml:"seed"`

	Plot  bool   `yaml:"plot"`
	File  string `yaml:"file"`
	CSV   string `yaml:"csv"`
	Chart string `yaml:"chart"`
	View  string `yaml:"view"`
	Scale int    `yaml:"scale"`
	TPS   int    `yaml:"tps"`

	ConfigPath string `yaml:"-"`
}

// NewConfig returns a Config populated with the default run settings.
func NewConfig() *Config {
	def := epidemic.DefaultConfig()
	return &Config{
		Size:      50,
		Duration:  100,
		Recovery:  def.Params.Recovery,
		Infection: def.Params.Infection,
		Death:     def.Params.Death,
		Cases:     2,
		Seed:      -1,
		View:      ViewWindow,
		Scale:     8,
		TPS:       5,
	}
}

// Bind attaches the configuration to the provided FlagSet.
func (c *Config) Bind(fs *flag.FlagSet) {
	fs.IntVar(&c.Size, "size", c.Size, "grid width and height")
	fs.IntVar(&c.Width, "width", c.Width, "grid width, overrides -size when positive")
	fs.IntVar(&c.Height, "height", c.Height, "grid height, overrides -size when positive")
	fs.IntVar(&c.Duration, "duration", c.Duration, "number of days to simulate")
	fs.Float64Var(&c.Recovery, "recovery", c.Recovery, "daily probability an infected cell recovers")
	fs.Float64Var(&c.Infection, "infection", c.Infection, "daily infection probability per infected neighbor")
	fs.Float64Var(&c.Death, "death", c.Death, "daily probability an infected cell dies")
	fs.IntVar(&c.Cases, "cases", c.Cases, "number of initial infections")
	fs.Int64Var(&c.Seed, "seed", c.Seed, "random seed, negative for time based")
	fs.BoolVar(&c.Plot, "plot", c.Plot, "render a static panel report instead of an animation")
	fs.StringVar(&c.File, "file", c.File, "write the report (.png) or animation (.avi) to this file")
	fs.StringVar(&c.CSV, "csv", c.CSV, "write the daily status percentages to this CSV file")
	fs.StringVar(&c.Chart, "chart", c.Chart, "write a status line chart PNG to this file")
	fs.StringVar(&c.View, "view", c.View, "live view: window or term")
	fs.IntVar(&c.Scale, "scale", c.Scale, "pixel scale multiplier")
	fs.IntVar(&c.TPS, "tps", c.TPS, "days per second in the live view")
	fs.StringVar(&c.ConfigPath, "config", c.ConfigPath, "YAML file with default settings")
}

// LoadFile overlays the settings found in a YAML file. Keys that do not name
// a setting are rejected.
func (c *Config) LoadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read %s: %w", path, err)
	}
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(c); err != nil && !errors.Is(err, io.EOF) {
		return fmt.Errorf("yaml decode %s: %w", path, err)
	}
	return nil
}

// Resolve parses args into a Config. When -config names a file, its values
// replace the defaults and flags given explicitly on the command line win
// over the file.
func Resolve(fs *flag.FlagSet, args []string) (*Config, error) {
	cfg := NewConfig()
	cfg.Bind(fs)
	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	if cfg.ConfigPath != "" {
		file := NewConfig()
		if err := file.LoadFile(cfg.ConfigPath); err != nil {
			return nil, err
		}
		file.ConfigPath = cfg.ConfigPath
		over := flag.NewFlagSet(fs.Name(), flag.ContinueOnError)
		file.Bind(over)
		var setErr error
		fs.Visit(func(f *flag.Flag) {
			if setErr == nil {
				setErr = over.Set(f.Name, f.Value.String())
			}
		})
		if setErr != nil {
			return nil, setErr
		}
		cfg = file
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks the run settings and the engine settings they imply.
func (c *Config) Validate() error {
	switch {
	case c.Duration < 0:
		return fmt.Errorf("%w: duration=%d", ErrInvalidConfig, c.Duration)
	case c.Cases < 0:
		return fmt.Errorf("%w: cases=%d", ErrInvalidConfig, c.Cases)
	case c.Scale <= 0:
		return fmt.Errorf("%w: scale=%d", ErrInvalidConfig, c.Scale)
	case c.TPS <= 0:
		return fmt.Errorf("%w: tps=%d", ErrInvalidConfig, c.TPS)
	case c.View != ViewWindow && c.View != ViewTerm:
		return fmt.Errorf("%w: view=%q", ErrInvalidConfig, c.View)
	}
	return c.EngineConfig().Validate()
}

// EngineConfig returns the engine settings. Width and height fall back to
// Size when not positive.
func (c *Config) EngineConfig() epidemic.Config {
	w, h := c.Width, c.Height
	if w <= 0 {
		w = c.Size
	}
	if h <= 0 {
		h = c.Size
	}
	return epidemic.Config{
		Width:  w,
		Height: h,
		Seed:   c.Seed,
		Params: epidemic.Params{Recovery: c.Recovery, Infection: c.Infection, Death: c.Death},
	}
}

// ResolveSeed replaces a negative seed with one derived from the clock and
// returns the seed in use.
func (c *Config) ResolveSeed(now time.Time) int64 {
	if c.Seed < 0 {
		c.Seed = now.UnixNano() & (1<<62 - 1)
	}
	return c.Seed
}
