package pipeline

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/dungeonforge/pkg/builder"
	"github.com/matzehuels/dungeonforge/pkg/cache"
	"github.com/matzehuels/dungeonforge/pkg/layout"
	"github.com/matzehuels/dungeonforge/pkg/level"
	"github.com/matzehuels/dungeonforge/pkg/observability"
	"github.com/matzehuels/dungeonforge/pkg/roomgraph"
)

// Runner encapsulates pipeline execution with caching.
// Both CLI and API can use this to avoid duplicating caching logic.
//
// The Runner is stateless except for the cache and logger - it doesn't
// store pipeline results. Multiple goroutines can safely use the same
// Runner with different options.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger
}

// NewRunner creates a runner with the given cache and keyer.
// If keyer is nil, a DefaultKeyer is used.
// If cache is nil, a NullCache is used (caching disabled).
func NewRunner(c cache.Cache, keyer cache.Keyer, logger *log.Logger) *Runner {
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.NewWithOptions(os.Stderr, log.Options{})
	}
	return &Runner{
		Cache:  c,
		Keyer:  keyer,
		Logger: logger,
	}
}

// Execute runs the complete load → generate → render pipeline with caching.
func (r *Runner) Execute(ctx context.Context, opts Options) (*Result, error) {
	r.applyLogger(&opts)
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, fmt.Errorf("invalid options: %w", err)
	}

	result := &Result{}

	// Stage 1: Load
	loadStart := time.Now()
	lvl, hash, err := r.Load(opts)
	if err != nil {
		return nil, fmt.Errorf("load: %w", err)
	}
	result.Level = lvl
	result.LevelHash = hash
	result.Stats.LoadTime = time.Since(loadStart)
	result.Stats.Graphs = len(lvl.Graphs)

	r.Logger.Info("loaded level",
		"level", lvl.Name,
		"templates", len(lvl.Templates),
		"graphs", len(lvl.Graphs),
		"duration", result.Stats.LoadTime)

	// Stage 2: Generate
	genStart := time.Now()
	l, hit, err := r.GenerateWithCacheInfo(ctx, lvl, hash, opts)
	if err != nil {
		return nil, fmt.Errorf("generate: %w", err)
	}
	result.Layout = l
	result.Stats.GenerateTime = time.Since(genStart)
	result.Stats.Rooms = l.Len()
	result.CacheInfo.LayoutHit = hit

	r.Logger.Info("generated dungeon",
		"graph", l.Graph,
		"seed", l.Seed,
		"rooms", l.Len(),
		"cached", hit,
		"duration", result.Stats.GenerateTime)

	// Stage 3: Render
	renderStart := time.Now()
	artifacts, err := Render(l, opts.Formats)
	if err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	result.Artifacts = artifacts
	result.Stats.RenderTime = time.Since(renderStart)

	r.Logger.Debug("rendered outputs",
		"formats", opts.Formats,
		"duration", result.Stats.RenderTime)

	return result, nil
}

// Load decodes the level named by opts and returns it with its content hash.
func (r *Runner) Load(opts Options) (*level.Level, string, error) {
	if err := opts.ValidateForLoad(); err != nil {
		return nil, "", err
	}
	data := opts.LevelData
	if len(data) == 0 {
		lvl, err := level.Load(opts.LevelPath)
		if err != nil {
			return nil, "", err
		}
		raw, err := os.ReadFile(opts.LevelPath)
		if err != nil {
			return nil, "", err
		}
		return lvl, cache.Hash(raw), nil
	}
	lvl, err := level.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, "", err
	}
	return lvl, cache.Hash(data), nil
}

// GenerateWithCacheInfo builds a layout for lvl and reports whether it came
// from the cache. hash identifies the level contents in cache keys.
func (r *Runner) GenerateWithCacheInfo(ctx context.Context, lvl *level.Level, hash string, opts Options) (*layout.Layout, bool, error) {
	r.applyLogger(&opts)
	if err := opts.ValidateForGenerate(); err != nil {
		return nil, false, err
	}

	cfg := opts.BuilderConfig(lvl)
	cacheKey := r.Keyer.LayoutKey(hash, opts.LayoutKeyOpts(cfg))
	hooks := observability.Cache()

	// Try cache first (unless refresh requested)
	if !opts.Refresh {
		if data, hit, err := r.Cache.Get(ctx, cacheKey); err == nil && hit {
			cached, err := layout.ReadJSON(bytes.NewReader(data))
			if err == nil {
				hooks.OnCacheHit(ctx, "layout")
				return cached, true, nil
			}
			// If deserialization fails, fall through to regenerate
		}
		hooks.OnCacheMiss(ctx, "layout")
	}

	graphs, err := selectGraphs(lvl, opts.Graph)
	if err != nil {
		return nil, false, err
	}
	b := lvl.Builder(opts.Logger, builder.WithConfig(cfg), builder.WithSeed(opts.Seed))
	l, err := b.Generate(ctx, graphs)
	if err != nil {
		return nil, false, err
	}

	var buf bytes.Buffer
	if err := layout.WriteJSON(l, &buf); err == nil {
		if err := r.Cache.Set(ctx, cacheKey, buf.Bytes(), cache.TTLLayout); err == nil {
			hooks.OnCacheSet(ctx, "layout", buf.Len())
		}
	}

	return l, false, nil
}

// Generate is a convenience wrapper that calls GenerateWithCacheInfo and discards the cache hit info.
func (r *Runner) Generate(ctx context.Context, lvl *level.Level, hash string, opts Options) (*layout.Layout, error) {
	l, _, err := r.GenerateWithCacheInfo(ctx, lvl, hash, opts)
	return l, err
}

// GraphSVGWithCacheInfo renders the named graph of lvl to SVG with caching.
func (r *Runner) GraphSVGWithCacheInfo(ctx context.Context, lvl *level.Level, hash, graphName string) ([]byte, bool, error) {
	g, err := lvl.RoomGraph(graphName)
	if err != nil {
		return nil, false, err
	}

	cacheKey := r.Keyer.ArtifactKey(hash, cache.ArtifactKeyOpts{Graph: graphName, Format: "svg"})
	hooks := observability.Cache()
	if data, hit, err := r.Cache.Get(ctx, cacheKey); err == nil && hit {
		hooks.OnCacheHit(ctx, "artifact")
		return data, true, nil
	}
	hooks.OnCacheMiss(ctx, "artifact")

	svg, err := roomgraph.RenderSVG(ctx, roomgraph.ToDOT(g, roomgraph.DOTOptions{Types: lvl.TypeList()}))
	if err != nil {
		return nil, false, err
	}
	if err := r.Cache.Set(ctx, cacheKey, svg, cache.TTLArtifact); err == nil {
		hooks.OnCacheSet(ctx, "artifact", len(svg))
	}
	return svg, false, nil
}

// Render produces the requested formats for l.
func Render(l *layout.Layout, formats []string) (map[string][]byte, error) {
	artifacts := make(map[string][]byte, len(formats))
	for _, format := range formats {
		switch format {
		case FormatJSON:
			var buf bytes.Buffer
			if err := layout.WriteJSON(l, &buf); err != nil {
				return nil, err
			}
			artifacts[format] = buf.Bytes()
		case FormatText:
			artifacts[format] = []byte(layout.RenderASCII(l))
		default:
			return nil, ValidateFormat(format)
		}
	}
	return artifacts, nil
}

// Close releases resources held by the runner (primarily the cache).
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}

// applyLogger sets the runner's logger on options if not already set.
func (r *Runner) applyLogger(opts *Options) {
	if opts.Logger == nil {
		opts.Logger = r.Logger
	}
}

func selectGraphs(lvl *level.Level, name string) ([]*roomgraph.Graph, error) {
	if name == "" {
		return lvl.RoomGraphs()
	}
	g, err := lvl.RoomGraph(name)
	if err != nil {
		return nil, err
	}
	return []*roomgraph.Graph{g}, nil
}
