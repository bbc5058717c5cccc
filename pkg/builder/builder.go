package builder

import (
	"context"
	"io"
	"math/rand/v2"
	"time"

	"github.com/charmbracelet/log"
	"github.com/zyedidia/generic/mapset"

	"github.com/matzehuels/dungeonforge/pkg/catalog"
	derrors "github.com/matzehuels/dungeonforge/pkg/errors"
	"github.com/matzehuels/dungeonforge/pkg/geom"
	"github.com/matzehuels/dungeonforge/pkg/layout"
	"github.com/matzehuels/dungeonforge/pkg/observability"
	"github.com/matzehuels/dungeonforge/pkg/room"
	"github.com/matzehuels/dungeonforge/pkg/roomgraph"
	"github.com/matzehuels/dungeonforge/pkg/roomtype"
)

// Builder generates layouts from a fixed catalog and type list.
type Builder struct {
	catalog *catalog.Catalog
	types   *roomtype.List
	cfg     Config
	rng     *rand.Rand
	seed    uint64
	level   string
	logger  *log.Logger
}

// Option configures a Builder.
type Option func(*Builder)

// WithConfig overrides the retry bounds.
func WithConfig(cfg Config) Option {
	return func(b *Builder) { b.cfg = cfg }
}

// WithSeed seeds the random source. The seed is recorded on the layout.
func WithSeed(seed uint64) Option {
	return func(b *Builder) {
		b.seed = seed
		b.rng = newRand(seed)
	}
}

// WithRand uses rng for every random choice. The recorded seed is zero.
func WithRand(rng *rand.Rand) Option {
	return func(b *Builder) {
		b.seed = 0
		b.rng = rng
	}
}

// WithLogger sets the logger used for diagnostics.
func WithLogger(logger *log.Logger) Option {
	return func(b *Builder) {
		if logger != nil {
			b.logger = logger
		}
	}
}

// WithLevel names the level recorded on generated layouts.
func WithLevel(name string) Option {
	return func(b *Builder) { b.level = name }
}

func newRand(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, seed^0xdeadbeef))
}

// New returns a builder over cat. A nil types list uses roomtype.Default().
// Without WithSeed or WithRand the builder draws a fresh seed.
func New(cat *catalog.Catalog, types *roomtype.List, opts ...Option) *Builder {
	if types == nil {
		types = roomtype.Default()
	}
	seed := rand.Uint64()
	b := &Builder{
		catalog: cat,
		types:   types,
		cfg:     DefaultConfig(),
		seed:    seed,
		rng:     newRand(seed),
		logger:  log.New(io.Discard),
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Seed returns the seed recorded on generated layouts.
func (b *Builder) Seed() uint64 { return b.seed }

// Config returns the retry bounds in use.
func (b *Builder) Config() Config { return b.cfg }

type passResult int

const (
	passOK passResult = iota
	passFailed
	passUnusable // the graph can never succeed
)

// Generate builds a layout from one of graphs. It returns a NO_GRAPHS error
// for an empty list and an EXHAUSTED error when every attempt fails. No
// partial layout is ever returned. ctx is only passed to observability
// hooks; generation is not cancellable.
func (b *Builder) Generate(ctx context.Context, graphs []*roomgraph.Graph) (*layout.Layout, error) {
	hooks := observability.Generation()
	start := time.Now()
	hooks.OnGenerateStart(ctx, len(graphs))

	if len(graphs) == 0 {
		b.logger.Warn("no room node graphs to build from")
		err := derrors.New(derrors.ErrCodeNoGraphs, "no room node graphs supplied")
		hooks.OnGenerateComplete(ctx, "", 0, time.Since(start), err)
		return nil, err
	}

	rebuilds := 0
	for attempt := 0; attempt < b.cfg.MaxBuildAttempts; attempt++ {
		g := graphs[b.rng.IntN(len(graphs))]
		hooks.OnBuildAttempt(ctx, attempt, g.Name())

	rebuild:
		for pass := 0; pass <= b.cfg.MaxRebuildAttempts; pass++ {
			rebuilds++
			hooks.OnRebuildAttempt(ctx, g.Name(), pass)

			l, res := b.buildPass(ctx, g)
			switch res {
			case passOK:
				b.logger.Debug("dungeon built",
					"graph", g.Name(),
					"rooms", l.Len(),
					"attempt", attempt+1,
					"rebuilds", rebuilds)
				hooks.OnGenerateComplete(ctx, g.Name(), l.Len(), time.Since(start), nil)
				return l, nil
			case passUnusable:
				break rebuild
			}
		}
	}

	exhausted := &derrors.ExhaustedError{BuildAttempts: b.cfg.MaxBuildAttempts, RebuildAttempts: rebuilds}
	err := derrors.Wrap(derrors.ErrCodeExhausted, exhausted, "could not build a dungeon for level %q", b.level)
	b.logger.Warn("dungeon generation exhausted",
		"level", b.level,
		"attempts", b.cfg.MaxBuildAttempts,
		"rebuilds", rebuilds)
	hooks.OnGenerateComplete(ctx, "", 0, time.Since(start), err)
	return nil, err
}

// buildPass runs one breadth-first placement over g from an empty map.
func (b *Builder) buildPass(ctx context.Context, g *roomgraph.Graph) (*layout.Layout, passResult) {
	et, ok := b.types.Entrance()
	if !ok {
		b.logger.Debug("type list has no entrance type", "graph", g.Name())
		return nil, passUnusable
	}
	entrance, ok := g.NodeOfType(et.Name)
	if !ok {
		b.logger.Debug("graph has no entrance node", "graph", g.Name(), "type", et.Name)
		return nil, passUnusable
	}

	accepted := layout.New(b.level, g.Name(), b.seed)
	visited := mapset.New[string]()
	queue := []roomgraph.Node{entrance}

	for len(queue) > 0 {
		n := queue[0]
		queue = queue[1:]
		if visited.Has(n.ID) {
			continue
		}
		visited.Put(n.ID)
		queue = append(queue, g.Children(n)...)

		if n.ID == entrance.ID {
			tmpl, ok := b.catalog.Random(b.rng, n.Type)
			if !ok {
				b.logger.Debug("no template for room type", "type", n.Type)
				return nil, passFailed
			}
			r := room.New(tmpl, n)
			r.Positioned = true
			accepted.Add(r)
			continue
		}

		parent, ok := accepted.Room(n.Parent())
		if !ok {
			b.logger.Debug("parent room not placed", "node", n.ID, "parent", n.Parent())
			return nil, passFailed
		}
		if !b.place(ctx, accepted, parent, n) {
			return nil, passFailed
		}
	}
	return accepted, passOK
}

// place realises node through one of parent's free doorways, retiring
// doorways that fail until one works or none remain.
func (b *Builder) place(ctx context.Context, accepted *layout.Layout, parent *room.Room, node roomgraph.Node) bool {
	for {
		free := parent.AvailableDoorways()
		if len(free) == 0 {
			return false
		}
		di := free[b.rng.IntN(len(free))]

		tmpl, ok := b.templateFor(node, parent.Doorways[di].Orientation)
		if !ok {
			b.logger.Debug("no template for room type", "type", node.Type,
				"doorway", parent.Doorways[di].Orientation)
			return false
		}

		r := room.New(tmpl, node)
		if b.fit(ctx, accepted, parent, di, r) {
			r.Positioned = true
			accepted.Add(r)
			return true
		}
	}
}

// templateFor picks a template for node that can hang off a doorway facing o.
func (b *Builder) templateFor(node roomgraph.Node, o geom.Orientation) (catalog.Template, bool) {
	if !b.typeOf(node.Type).Corridor {
		return b.catalog.Random(b.rng, node.Type)
	}

	var (
		marker roomtype.Type
		ok     bool
	)
	switch {
	case o.Vertical():
		marker, ok = b.types.CorridorNS()
	case o.Horizontal():
		marker, ok = b.types.CorridorEW()
	}
	if !ok {
		return catalog.Template{}, false
	}
	return b.catalog.Random(b.rng, marker.Name)
}

// fit positions r against parent doorway di and reports whether it was
// accepted. On failure the parent doorway is retired.
func (b *Builder) fit(ctx context.Context, accepted *layout.Layout, parent *room.Room, di int, r *room.Room) bool {
	pd := &parent.Doorways[di]

	ci := r.DoorwayFacing(pd.Orientation.Opposite())
	if ci < 0 {
		pd.Unavailable = true
		observability.Generation().OnPlacementRejected(ctx, r.ID, "orientation")
		return false
	}
	cd := &r.Doorways[ci]

	lower := parent.DoorwayWorld(di).
		Add(cd.Orientation.Inward()).
		Add(r.TemplateLower).
		Sub(cd.Position)
	r.MoveTo(lower)

	if other, hit := b.overlapping(accepted, r); hit {
		pd.Unavailable = true
		b.logger.Debug("room overlaps", "room", r.ID, "other", other.ID)
		observability.Generation().OnPlacementRejected(ctx, r.ID, "overlap")
		return false
	}

	pd.Connected, pd.Unavailable = true, true
	cd.Connected, cd.Unavailable = true, true
	return true
}

// overlapping returns the first positioned accepted room r collides with.
func (b *Builder) overlapping(accepted *layout.Layout, r *room.Room) (*room.Room, bool) {
	for _, other := range accepted.InOrder() {
		if other.ID == r.ID || !other.Positioned {
			continue
		}
		if r.Overlaps(other) {
			return other, true
		}
	}
	return nil, false
}

func (b *Builder) typeOf(name string) roomtype.Type {
	t, _ := b.types.Get(name)
	return t
}
