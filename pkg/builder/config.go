package builder

import (
	"fmt"
)

const (
	// DefaultMaxBuildAttempts bounds graph re-selection.
	DefaultMaxBuildAttempts = 10

	// DefaultMaxRebuildAttempts bounds clear-and-retry passes per graph.
	DefaultMaxRebuildAttempts = 1000

	// DefaultMaxChildCorridors caps corridor fan-out when authoring graphs.
	DefaultMaxChildCorridors = 3
)

// Config holds the retry bounds.
type Config struct {
	MaxBuildAttempts   int `toml:"max_build_attempts" json:"max_build_attempts"`
	MaxRebuildAttempts int `toml:"max_rebuild_attempts" json:"max_rebuild_attempts"`
	MaxChildCorridors  int `toml:"max_child_corridors" json:"max_child_corridors"`
}

// DefaultConfig returns the stock retry bounds.
func DefaultConfig() Config {
	return Config{
		MaxBuildAttempts:   DefaultMaxBuildAttempts,
		MaxRebuildAttempts: DefaultMaxRebuildAttempts,
		MaxChildCorridors:  DefaultMaxChildCorridors,
	}
}

// Validate rejects negative bounds.
func (c Config) Validate() error {
	if c.MaxBuildAttempts < 0 {
		return fmt.Errorf("max build attempts must be >= 0, got %d", c.MaxBuildAttempts)
	}
	if c.MaxRebuildAttempts < 0 {
		return fmt.Errorf("max rebuild attempts must be >= 0, got %d", c.MaxRebuildAttempts)
	}
	if c.MaxChildCorridors < 0 {
		return fmt.Errorf("max child corridors must be >= 0, got %d", c.MaxChildCorridors)
	}
	return nil
}

// Overrides replaces selected retry bounds. A nil field keeps the base
// value, so an explicit zero is honoured.
type Overrides struct {
	MaxBuildAttempts   *int `toml:"max_build_attempts,omitempty" json:"max_build_attempts,omitempty"`
	MaxRebuildAttempts *int `toml:"max_rebuild_attempts,omitempty" json:"max_rebuild_attempts,omitempty"`
	MaxChildCorridors  *int `toml:"max_child_corridors,omitempty" json:"max_child_corridors,omitempty"`
}

// Apply returns base with every set field of o written over it.
func (o Overrides) Apply(base Config) Config {
	if o.MaxBuildAttempts != nil {
		base.MaxBuildAttempts = *o.MaxBuildAttempts
	}
	if o.MaxRebuildAttempts != nil {
		base.MaxRebuildAttempts = *o.MaxRebuildAttempts
	}
	if o.MaxChildCorridors != nil {
		base.MaxChildCorridors = *o.MaxChildCorridors
	}
	return base
}

// Validate rejects negative overrides.
func (o Overrides) Validate() error {
	return o.Apply(Config{}).Validate()
}

// MaxPlacements is the upper bound on room placements a Generate call can
// attempt for graphs of at most nodes nodes.
func (c Config) MaxPlacements(nodes int) int {
	return c.MaxBuildAttempts * (c.MaxRebuildAttempts + 1) * nodes
}
