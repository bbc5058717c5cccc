// Package pipeline provides the load → generate → render pipeline shared by
// the CLI and the HTTP server.
//
// By centralizing this logic, both entry points resolve defaults, cache
// layouts and report statistics the same way.
//
// # Architecture
//
// The pipeline consists of three stages:
//
//  1. Load: Decode a level file and hash its contents
//  2. Generate: Build a layout from the level's graphs, cached by
//     (level hash, graph, seed, retry bounds)
//  3. Render: Produce hand-off JSON and an ASCII map
//
// # Usage
//
// Create a Runner and execute the pipeline:
//
//	runner := pipeline.NewRunner(cache, nil, logger)
//	result, err := runner.Execute(ctx, pipeline.Options{
//	    LevelPath: "examples/levels/crypt.toml",
//	    Seed:      42,
//	    Formats:   []string{"json", "txt"},
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	manifest := result.Artifacts["json"]
//
// Generation is deterministic for a fixed seed, so repeated runs with the
// same level and seed are served from the cache.
package pipeline

import (
	"fmt"
	"io"
	"math/rand/v2"
	"slices"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/dungeonforge/pkg/builder"
	"github.com/matzehuels/dungeonforge/pkg/cache"
	"github.com/matzehuels/dungeonforge/pkg/layout"
	"github.com/matzehuels/dungeonforge/pkg/level"
)

// Format constants for output formats.
const (
	FormatJSON = "json" // hand-off manifest
	FormatText = "txt"  // ASCII map
)

// ValidFormats is the set of supported output formats.
var ValidFormats = map[string]bool{
	FormatJSON: true,
	FormatText: true,
}

// =============================================================================
// Options - Pipeline Configuration
// =============================================================================

// Options contains all configuration for a pipeline run.
// This struct supports JSON serialization for API requests.
type Options struct {
	// Load options
	LevelPath string `json:"-"`
	LevelData []byte `json:"-"` // takes precedence over LevelPath

	// Generate options
	Graph   string            `json:"graph,omitempty"`  // restrict generation to one graph
	Seed    uint64            `json:"seed,omitempty"`   // zero draws a random seed
	Config  builder.Overrides `json:"config,omitempty"` // nil fields keep the level settings
	Refresh bool              `json:"refresh,omitempty"`

	// Render options
	Formats []string `json:"formats,omitempty"`

	// Runtime options (not serialized)
	Logger *log.Logger `json:"-"`

	// validated tracks whether the options have already been checked.
	validated bool
}

// Result contains the outputs of a pipeline run.
type Result struct {
	// Level is the decoded level.
	Level *level.Level

	// LevelHash is the content hash of the level file.
	LevelHash string

	// Layout is the generated dungeon.
	Layout *layout.Layout

	// Artifacts contains rendered outputs keyed by format.
	Artifacts map[string][]byte

	// Stats contains timing and size information.
	Stats Stats

	// CacheInfo tracks which stages hit the cache.
	CacheInfo CacheInfo
}

// Stats contains pipeline execution statistics.
type Stats struct {
	Rooms        int
	Graphs       int
	LoadTime     time.Duration
	GenerateTime time.Duration
	RenderTime   time.Duration
}

// CacheInfo tracks cache hits for each pipeline stage.
type CacheInfo struct {
	LayoutHit bool // Whether the layout came from cache
}

// =============================================================================
// Validation Functions
// =============================================================================

// ValidateFormat checks that a format is valid.
func ValidateFormat(format string) error {
	if !ValidFormats[format] {
		return fmt.Errorf("invalid format: %q (must be one of: json, txt)", format)
	}
	return nil
}

// ValidateFormats checks that all formats are valid.
func ValidateFormats(formats []string) error {
	for _, f := range formats {
		if err := ValidateFormat(f); err != nil {
			return err
		}
	}
	return nil
}

// =============================================================================
// Options Methods
// =============================================================================

// ValidateAndSetDefaults checks required fields and applies defaults.
// This method is idempotent - calling it multiple times has the same effect as calling it once.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	if err := o.ValidateForLoad(); err != nil {
		return err
	}
	return o.ValidateForGenerate()
}

// ValidateForGenerate checks the generate and render options and applies
// defaults. Unlike ValidateAndSetDefaults it does not require a level source,
// so it serves callers that already hold a decoded level.
func (o *Options) ValidateForGenerate() error {
	if o.validated {
		return nil
	}
	if err := o.Config.Validate(); err != nil {
		return err
	}
	if err := ValidateFormats(o.Formats); err != nil {
		return err
	}
	o.SetDefaults()
	o.validated = true
	return nil
}

// ValidateForLoad checks that a level source is set.
func (o *Options) ValidateForLoad() error {
	if o.LevelPath == "" && len(o.LevelData) == 0 {
		return fmt.Errorf("level path or data is required")
	}
	return nil
}

// SetDefaults fills in the seed, formats and logger.
func (o *Options) SetDefaults() {
	if o.Seed == 0 {
		o.Seed = rand.Uint64()
	}
	if len(o.Formats) == 0 {
		o.Formats = []string{FormatJSON}
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
}

// BuilderConfig applies the option overrides over the level settings.
func (o *Options) BuilderConfig(l *level.Level) builder.Config {
	return o.Config.Apply(l.Config())
}

// LayoutKeyOpts returns cache key options for layout generation.
func (o *Options) LayoutKeyOpts(cfg builder.Config) cache.LayoutKeyOpts {
	return cache.LayoutKeyOpts{
		Graph:              o.Graph,
		Seed:               o.Seed,
		MaxBuildAttempts:   cfg.MaxBuildAttempts,
		MaxRebuildAttempts: cfg.MaxRebuildAttempts,
	}
}

// WantsFormat reports whether format was requested.
func (o *Options) WantsFormat(format string) bool {
	return slices.Contains(o.Formats, format)
}
