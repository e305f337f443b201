package label

import (
	"math"

	"github.com/matzehuels/venn/pkg/errors"
)

// Default placement settings.
const (
	DefaultGrid           = 48
	DefaultSetLabelOffset = 0.1
)

// Config controls label placement.
type Config struct {
	// Grid is the number of candidate points per axis of a region's
	// bounding box.
	Grid int `json:"grid" toml:"grid"`

	// SetLabelOffset is the gap between a circle and its set label, as a
	// fraction of the largest radius.
	SetLabelOffset float64 `json:"set_label_offset" toml:"set_label_offset"`
}

// DefaultConfig returns the default placement settings.
func DefaultConfig() Config {
	return Config{Grid: DefaultGrid, SetLabelOffset: DefaultSetLabelOffset}
}

// Validate checks that every setting is usable.
func (c Config) Validate() error {
	if c.Grid < 2 || c.Grid > 1024 {
		return errors.New(errors.ErrCodeInvalidConfig, "grid must be in [2, 1024], got %d", c.Grid)
	}
	if !(c.SetLabelOffset >= 0) || math.IsInf(c.SetLabelOffset, 0) {
		return errors.New(errors.ErrCodeInvalidConfig, "set_label_offset must be a non-negative number")
	}
	return nil
}
