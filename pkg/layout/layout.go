package layout

import (
	"github.com/matzehuels/dungeonforge/pkg/geom"
	"github.com/matzehuels/dungeonforge/pkg/room"
)

// Layout is a generated dungeon.
type Layout struct {
	// Level and Graph name the inputs the layout was built from.
	Level string
	Graph string
	// Seed is the random seed used, zero when the caller supplied its own
	// source.
	Seed uint64
	// Rooms maps room ID to room.
	Rooms map[string]*room.Room
	// Order lists room IDs in placement order.
	Order []string
}

// New returns an empty layout for the named graph.
func New(level, graph string, seed uint64) *Layout {
	return &Layout{
		Level: level,
		Graph: graph,
		Seed:  seed,
		Rooms: make(map[string]*room.Room),
	}
}

// Add appends r to the layout.
func (l *Layout) Add(r *room.Room) {
	if _, ok := l.Rooms[r.ID]; !ok {
		l.Order = append(l.Order, r.ID)
	}
	l.Rooms[r.ID] = r
}

// Len returns the number of rooms.
func (l *Layout) Len() int { return len(l.Order) }

// Room returns the room with the given ID.
func (l *Layout) Room(id string) (*room.Room, bool) {
	r, ok := l.Rooms[id]
	return r, ok
}

// InOrder returns the rooms in placement order.
func (l *Layout) InOrder() []*room.Room {
	out := make([]*room.Room, 0, len(l.Order))
	for _, id := range l.Order {
		if r, ok := l.Rooms[id]; ok {
			out = append(out, r)
		}
	}
	return out
}

// Entrance returns the first room without a parent.
func (l *Layout) Entrance() (*room.Room, bool) {
	for _, r := range l.InOrder() {
		if r.IsEntrance() {
			return r, true
		}
	}
	return nil, false
}

// Bounds returns the smallest rectangle covering every room. An empty layout
// yields the zero rectangle.
func (l *Layout) Bounds() geom.Rect {
	var b geom.Rect
	for i, r := range l.InOrder() {
		if i == 0 {
			b = r.Bounds()
			continue
		}
		b = b.Union(r.Bounds())
	}
	return b
}
