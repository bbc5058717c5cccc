// Package room holds the mutable, positioned instance of a room template.
//
// A [Room] is created when the builder dequeues a graph node. It stays
// provisional until placement succeeds, at which point the builder marks it
// Positioned and adds it to the accepted set. After generation finishes the
// rooms are handed off read-only.
package room

import (
	"slices"

	"github.com/matzehuels/dungeonforge/pkg/catalog"
	"github.com/matzehuels/dungeonforge/pkg/geom"
	"github.com/matzehuels/dungeonforge/pkg/roomgraph"
)

// Room is a template realised for one graph node.
type Room struct {
	ID         string `json:"id"`
	TemplateID string `json:"template"`
	Type       string `json:"type"`
	Prefab     string `json:"prefab,omitempty"`

	// TemplateLower and TemplateUpper are the template-local bounds.
	TemplateLower geom.Point `json:"template_lower"`
	TemplateUpper geom.Point `json:"template_upper"`

	// Lower and Upper are inclusive world bounds, valid once Positioned.
	Lower geom.Point `json:"lower"`
	Upper geom.Point `json:"upper"`

	Children []string `json:"children,omitempty"`
	ParentID string   `json:"parent"`

	Doorways       []catalog.Doorway `json:"doorways"`
	SpawnPositions []geom.Point      `json:"spawn_positions,omitempty"`

	Positioned        bool `json:"positioned"`
	PreviouslyVisited bool `json:"previously_visited"`
}

// New builds a room for node from tmpl. The room takes its type from the
// template, so a generic corridor node becomes a CorridorNS or CorridorEW
// room. Doorways, spawn points and children
// are copied so the room never shares a slice with the template or the
// graph. A node without parents becomes an entrance-style room with an empty
// ParentID and PreviouslyVisited set.
func New(tmpl catalog.Template, node roomgraph.Node) *Room {
	r := &Room{
		ID:             node.ID,
		TemplateID:     tmpl.ID,
		Type:           tmpl.Type,
		Prefab:         tmpl.Prefab,
		TemplateLower:  tmpl.Lower,
		TemplateUpper:  tmpl.Upper,
		Lower:          tmpl.Lower,
		Upper:          tmpl.Upper,
		Children:       slices.Clone(node.Children),
		Doorways:       tmpl.CloneDoorways(),
		SpawnPositions: slices.Clone(tmpl.SpawnPositions),
	}
	if node.IsRoot() {
		r.PreviouslyVisited = true
	} else {
		r.ParentID = node.Parent()
	}
	return r
}

// IsEntrance reports whether the room has no parent.
func (r *Room) IsEntrance() bool { return r.ParentID == "" }

// Bounds returns the world rectangle.
func (r *Room) Bounds() geom.Rect { return geom.R(r.Lower, r.Upper) }

// Size returns the template extent, Upper minus Lower.
func (r *Room) Size() geom.Point { return r.TemplateUpper.Sub(r.TemplateLower) }

// MoveTo positions the room so its world lower bound is lower, keeping its
// template extent.
func (r *Room) MoveTo(lower geom.Point) {
	r.Lower = lower
	r.Upper = lower.Add(r.Size())
}

// Overlaps reports whether r and other share at least one tile.
func (r *Room) Overlaps(other *Room) bool {
	return r.Bounds().Overlaps(other.Bounds())
}

// DoorwayWorld converts the local position of doorway i to world
// coordinates.
func (r *Room) DoorwayWorld(i int) geom.Point {
	return r.Lower.Add(r.Doorways[i].Position).Sub(r.TemplateLower)
}

// AvailableDoorways returns the indexes of doorways that are neither
// connected nor retired, in list order.
func (r *Room) AvailableDoorways() []int {
	var idxs []int
	for i, d := range r.Doorways {
		if !d.Connected && !d.Unavailable {
			idxs = append(idxs, i)
		}
	}
	return idxs
}

// DoorwayFacing returns the index of the first doorway oriented o, or -1.
func (r *Room) DoorwayFacing(o geom.Orientation) int {
	return slices.IndexFunc(r.Doorways, func(d catalog.Doorway) bool { return d.Orientation == o })
}

// ConnectedDoorways returns the indexes of connected doorways.
func (r *Room) ConnectedDoorways() []int {
	var idxs []int
	for i, d := range r.Doorways {
		if d.Connected {
			idxs = append(idxs, i)
		}
	}
	return idxs
}

// WorldSpawnPositions translates the spawn points to world coordinates.
func (r *Room) WorldSpawnPositions() []geom.Point {
	out := make([]geom.Point, len(r.SpawnPositions))
	for i, p := range r.SpawnPositions {
		out[i] = r.Lower.Add(p).Sub(r.TemplateLower)
	}
	return out
}

// Clone returns a deep copy.
func (r *Room) Clone() *Room {
	c := *r
	c.Children = slices.Clone(r.Children)
	c.Doorways = slices.Clone(r.Doorways)
	c.SpawnPositions = slices.Clone(r.SpawnPositions)
	return &c
}
