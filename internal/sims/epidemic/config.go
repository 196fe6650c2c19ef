package epidemic

import (
	"errors"
	"fmt"
	"math"
	"strconv"
)

var (
	// ErrInvalidSize is returned for grids with a non-positive dimension.
	ErrInvalidSize = errors.New("epidemic: grid dimensions must be positive")
	// ErrProbabilityRange is returned for probabilities outside [0, 1].
	ErrProbabilityRange = errors.New("epidemic: probability outside [0, 1]")
	// ErrUnknownKey is returned by FromMap for keys it does not recognise.
	ErrUnknownKey = errors.New("epidemic: unknown config key")
)

// Params holds the per-day transition probabilities.
type Params struct {
	Recovery  float64 `yaml:"recovery"`
	Infection float64 `yaml:"infection"`
	Death     float64 `yaml:"death"`
}

// Config controls the engine dimensions, probabilities and seed.
type Config struct {
	Width  int `yaml:"width"`
	Height int `yaml:"height"`

	Seed int64 `yaml:"seed"`

	Params Params `yaml:"params"`
}

// DefaultConfig returns the standard configuration.
func DefaultConfig() Config {
	return Config{
		Width:  50,
		Height: 50,
		Seed:   1,
		Params: Params{
			Recovery:  0.1,
			Infection: 0.1,
			Death:     0.005,
		},
	}
}

// Validate checks the grid size and that every probability lies in [0, 1].
func (c Config) Validate() error {
	if c.Width <= 0 || c.Height <= 0 {
		return fmt.Errorf("%w: %dx%d", ErrInvalidSize, c.Width, c.Height)
	}
	return c.Params.Validate()
}

// Validate checks that every probability lies in [0, 1].
func (p Params) Validate() error {
	checks := []struct {
		name  string
		value float64
	}{
		{"recovery", p.Recovery},
		{"infection", p.Infection},
		{"death", p.Death},
	}
	for _, c := range checks {
		if math.IsNaN(c.value) || c.value < 0 || c.value > 1 {
			return fmt.Errorf("%w: %s=%v", ErrProbabilityRange, c.name, c.value)
		}
	}
	return nil
}

// FromMap applies flag-style key/value overrides on top of base. Values are
// parsed but not range checked; call Validate on the result.
func FromMap(base Config, kv map[string]string) (Config, error) {
	c := base
	for k, v := range kv {
		var err error
		switch k {
		case "w", "width":
			c.Width, err = strconv.Atoi(v)
		case "h", "height":
			c.Height, err = strconv.Atoi(v)
		case "size":
			c.Width, err = strconv.Atoi(v)
			c.Height = c.Width
		case "seed":
			c.Seed, err = strconv.ParseInt(v, 10, 64)
		case "recovery":
			c.Params.Recovery, err = strconv.ParseFloat(v, 64)
		case "infection":
			c.Params.Infection, err = strconv.ParseFloat(v, 64)
		case "death":
			c.Params.Death, err = strconv.ParseFloat(v, 64)
		default:
			return base, fmt.Errorf("%w: %q", ErrUnknownKey, k)
		}
		if err != nil {
			return base, fmt.Errorf("epidemic: parse %s=%q: %w", k, v, err)
		}
	}
	return c, nil
}
