package solve

import (
	"math"

	"github.com/matzehuels/venn/pkg/errors"
)

// Default solver settings.
const (
	DefaultScale         = 1.0
	DefaultMinRadius     = 0.01
	DefaultMaxIterations = 2000
	DefaultTolerance     = 1e-14
)

// Config controls the size mapping and the optimizer budget.
type Config struct {
	// Scale is the radius of the circle of the largest set.
	Scale float64 `json:"scale" toml:"scale"`

	// MinRadius is the smallest radius, as a fraction of Scale.
	MinRadius float64 `json:"min_radius" toml:"min_radius"`

	// MaxIterations bounds the 3-set optimizer.
	MaxIterations int `json:"max_iterations" toml:"max_iterations"`

	// Tolerance stops the 3-set optimizer once the simplex objective spread
	// falls below it.
	Tolerance float64 `json:"tolerance" toml:"tolerance"`
}

// DefaultConfig returns the default solver settings.
func DefaultConfig() Config {
	return Config{
		Scale:         DefaultScale,
		MinRadius:     DefaultMinRadius,
		MaxIterations: DefaultMaxIterations,
		Tolerance:     DefaultTolerance,
	}
}

// Validate checks that every setting is usable.
func (c Config) Validate() error {
	switch {
	case !(c.Scale > 0) || math.IsInf(c.Scale, 0):
		return errors.New(errors.ErrCodeInvalidConfig, "scale must be positive, got %v", c.Scale)
	case !(c.MinRadius >= 0) || c.MinRadius > 1:
		return errors.New(errors.ErrCodeInvalidConfig, "min_radius must be in [0, 1], got %v", c.MinRadius)
	case c.MaxIterations < 0:
		return errors.New(errors.ErrCodeInvalidConfig, "max_iterations cannot be negative")
	case !(c.Tolerance >= 0):
		return errors.New(errors.ErrCodeInvalidConfig, "tolerance cannot be negative")
	}
	return nil
}
