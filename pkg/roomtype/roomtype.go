// Package roomtype defines the room-type tags shared by room-node graphs and
// room templates.
//
// A graph node names the kind of room it needs ("Entrance", "Corridor",
// "Small Room", ...) and a template declares which kind it realizes. A few
// types carry behavioural flags the builder relies on:
//
//   - Entrance: the root of every graph; placed first without a parent doorway.
//   - Corridor: the generic corridor used in graphs. Templates never use it
//     directly; they are tagged CorridorNS or CorridorEW instead and the
//     builder picks one from the parent doorway orientation.
//   - BossRoom: at most one may be linked into a graph.
//   - None: the placeholder type of an unassigned node; it cannot be linked.
package roomtype

import "slices"

// Well-known type names used by [Default].
const (
	NameNone       = "None"
	NameEntrance   = "Entrance"
	NameCorridor   = "Corridor"
	NameCorridorNS = "CorridorNS"
	NameCorridorEW = "CorridorEW"
	NameSmallRoom  = "Small Room"
	NameMediumRoom = "Medium Room"
	NameLargeRoom  = "Large Room"
	NameChestRoom  = "Chest Room"
	NameBossRoom   = "Boss Room"
)

// Type describes one room-type tag.
type Type struct {
	Name       string `toml:"name" json:"name"`
	Display    bool   `toml:"display" json:"display,omitempty"` // offered when authoring graphs
	Entrance   bool   `toml:"entrance" json:"entrance,omitempty"`
	Corridor   bool   `toml:"corridor" json:"corridor,omitempty"`
	CorridorNS bool   `toml:"corridor_ns" json:"corridor_ns,omitempty"`
	CorridorEW bool   `toml:"corridor_ew" json:"corridor_ew,omitempty"`
	BossRoom   bool   `toml:"boss_room" json:"boss_room,omitempty"`
	None       bool   `toml:"none" json:"none,omitempty"`
}

// List is an ordered registry of room types. Lookups return the first match,
// so when two types share a flag the earlier one wins.
type List struct {
	types []Type
}

// NewList returns a list holding types in the given order.
func NewList(types []Type) *List {
	return &List{types: slices.Clone(types)}
}

// Default returns the stock type list: an entrance, one generic corridor and
// its two oriented variants, four room sizes, a boss room and the none type.
func Default() *List {
	return NewList([]Type{
		{Name: NameSmallRoom, Display: true},
		{Name: NameMediumRoom, Display: true},
		{Name: NameLargeRoom, Display: true},
		{Name: NameChestRoom, Display: true},
		{Name: NameEntrance, Display: true, Entrance: true},
		{Name: NameBossRoom, Display: true, BossRoom: true},
		{Name: NameCorridor, Display: true, Corridor: true},
		{Name: NameCorridorNS, CorridorNS: true},
		{Name: NameCorridorEW, CorridorEW: true},
		{Name: NameNone, None: true},
	})
}

// Find returns the first type satisfying pred.
func (l *List) Find(pred func(Type) bool) (Type, bool) {
	for _, t := range l.types {
		if pred(t) {
			return t, true
		}
	}
	return Type{}, false
}

// Get returns the type called name.
func (l *List) Get(name string) (Type, bool) {
	return l.Find(func(t Type) bool { return t.Name == name })
}

// Has reports whether a type called name is registered.
func (l *List) Has(name string) bool {
	_, ok := l.Get(name)
	return ok
}

// Types returns a copy of the registered types in order.
func (l *List) Types() []Type { return slices.Clone(l.types) }

// Displayed returns the names of the types offered when authoring graphs.
func (l *List) Displayed() []string {
	var names []string
	for _, t := range l.types {
		if t.Display {
			names = append(names, t.Name)
		}
	}
	return names
}

// Entrance returns the first entrance type.
func (l *List) Entrance() (Type, bool) { return l.Find(IsEntrance) }

// CorridorNS returns the first north/south corridor type.
func (l *List) CorridorNS() (Type, bool) { return l.Find(IsCorridorNS) }

// CorridorEW returns the first east/west corridor type.
func (l *List) CorridorEW() (Type, bool) { return l.Find(IsCorridorEW) }

// Predicates for use with [List.Find].
func IsEntrance(t Type) bool   { return t.Entrance }
func IsCorridor(t Type) bool   { return t.Corridor }
func IsCorridorNS(t Type) bool { return t.CorridorNS }
func IsCorridorEW(t Type) bool { return t.CorridorEW }
func IsBossRoom(t Type) bool   { return t.BossRoom }
func IsNone(t Type) bool       { return t.None }
