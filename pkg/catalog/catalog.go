package catalog

import (
	"io"
	"math/rand/v2"
	"slices"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/dungeonforge/pkg/geom"
)

// CopyRegion is the block of tiles the materializer copies to open or close a
// doorway. The builder carries it through untouched.
type CopyRegion struct {
	Start  geom.Point `toml:"start" json:"start"`
	Width  int        `toml:"width" json:"width"`
	Height int        `toml:"height" json:"height"`
}

// Doorway is a connection point on a room boundary.
type Doorway struct {
	Position    geom.Point       `toml:"position" json:"position"` // middle tile of the opening, template-local
	Orientation geom.Orientation `toml:"orientation" json:"orientation"`
	Copy        CopyRegion       `toml:"copy" json:"copy"`

	// Connected is set once the doorway is matched to a neighbour.
	Connected bool `toml:"-" json:"connected"`
	// Unavailable retires the doorway for the rest of a rebuild pass, either
	// because it is connected or because placement through it failed.
	Unavailable bool `toml:"-" json:"unavailable"`
}

// Template is an immutable room prototype.
type Template struct {
	ID             string       `toml:"id" json:"id"`
	Type           string       `toml:"type" json:"type"`
	Lower          geom.Point   `toml:"lower" json:"lower"`
	Upper          geom.Point   `toml:"upper" json:"upper"`
	Doorways       []Doorway    `toml:"doorways" json:"doorways"`
	SpawnPositions []geom.Point `toml:"spawn_positions" json:"spawn_positions,omitempty"`
	Prefab         string       `toml:"prefab" json:"prefab,omitempty"`
}

// Bounds returns the template-local bounding rectangle.
func (t Template) Bounds() geom.Rect { return geom.R(t.Lower, t.Upper) }

// CloneDoorways returns an independent copy of the doorway list, flags
// included.
func (t Template) CloneDoorways() []Doorway { return slices.Clone(t.Doorways) }

// Clone returns a copy of t that shares no slices with it.
func (t Template) Clone() Template {
	t.Doorways = slices.Clone(t.Doorways)
	t.SpawnPositions = slices.Clone(t.SpawnPositions)
	return t
}

// HasDoorway reports whether the template has a doorway facing o.
func (t Template) HasDoorway(o geom.Orientation) bool {
	return slices.ContainsFunc(t.Doorways, func(d Doorway) bool { return d.Orientation == o })
}

// Catalog is a read-only index of templates by identifier and by room type.
// It is safe for concurrent use once built. Templates are copied on the way
// in and on the way out, so callers cannot alter the indexed prototypes.
type Catalog struct {
	templates []Template
	byID      map[string]int
	byType    map[string][]int
}

// New indexes templates. When two templates share an identifier the first is
// kept and the duplicate is dropped with a warning on logger; a nil logger
// discards the warning.
func New(templates []Template, logger *log.Logger) *Catalog {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	c := &Catalog{
		byID:   make(map[string]int, len(templates)),
		byType: make(map[string][]int),
	}
	for _, t := range templates {
		if _, dup := c.byID[t.ID]; dup {
			logger.Warn("duplicate room template key", "id", t.ID, "type", t.Type)
			continue
		}
		idx := len(c.templates)
		c.templates = append(c.templates, t.Clone())
		c.byID[t.ID] = idx
		c.byType[t.Type] = append(c.byType[t.Type], idx)
	}
	return c
}

// Len returns the number of indexed templates.
func (c *Catalog) Len() int { return len(c.templates) }

// Templates returns all indexed templates in insertion order.
func (c *Catalog) Templates() []Template {
	out := make([]Template, len(c.templates))
	for i, t := range c.templates {
		out[i] = t.Clone()
	}
	return out
}

// ByID returns the template with the given identifier.
func (c *Catalog) ByID(id string) (Template, bool) {
	idx, ok := c.byID[id]
	if !ok {
		return Template{}, false
	}
	return c.templates[idx].Clone(), true
}

// IndexByID returns a fresh map from identifier to template.
func (c *Catalog) IndexByID() map[string]Template {
	out := make(map[string]Template, len(c.templates))
	for _, t := range c.templates {
		out[t.ID] = t.Clone()
	}
	return out
}

// Lookup returns every template tagged with typeTag, in insertion order.
// The result may be empty.
func (c *Catalog) Lookup(typeTag string) []Template {
	idxs := c.byType[typeTag]
	out := make([]Template, len(idxs))
	for i, idx := range idxs {
		out[i] = c.templates[idx].Clone()
	}
	return out
}

// Has reports whether at least one template is tagged with typeTag.
func (c *Catalog) Has(typeTag string) bool { return len(c.byType[typeTag]) > 0 }

// Types returns the distinct type tags present, sorted.
func (c *Catalog) Types() []string {
	types := make([]string, 0, len(c.byType))
	for t := range c.byType {
		types = append(types, t)
	}
	slices.Sort(types)
	return types
}

// Random returns a uniformly chosen template tagged with typeTag. The second
// result is false when no template matches; callers must treat that as fatal
// for the current attempt.
func (c *Catalog) Random(rng *rand.Rand, typeTag string) (Template, bool) {
	idxs := c.byType[typeTag]
	if len(idxs) == 0 {
		return Template{}, false
	}
	return c.templates[idxs[rng.IntN(len(idxs))]].Clone(), true
}
