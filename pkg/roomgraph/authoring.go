package roomgraph

import (
	"errors"
	"fmt"
	"slices"

	"github.com/google/uuid"

	"github.com/matzehuels/dungeonforge/pkg/roomtype"
)

// DefaultMaxChildCorridors caps how many corridors may leave one room. More
// than three makes it likely the rooms will not fit together.
const DefaultMaxChildCorridors = 3

// LinkError explains why [Builder.Link] refused an edge.
type LinkError struct {
	Parent, Child string
	Reason        string
}

func (e *LinkError) Error() string {
	return fmt.Sprintf("cannot link %s -> %s: %s", e.Parent, e.Child, e.Reason)
}

// Builder assembles a graph node by node under the editor linking rules.
// It is not safe for concurrent use.
type Builder struct {
	name              string
	types             *roomtype.List
	maxChildCorridors int
	nodes             []*Node
	index             map[string]*Node
}

// NewBuilder starts an empty graph. A negative maxChildCorridors uses
// DefaultMaxChildCorridors; zero forbids corridors off any room.
func NewBuilder(name string, types *roomtype.List, maxChildCorridors int) *Builder {
	if types == nil {
		types = roomtype.Default()
	}
	if maxChildCorridors < 0 {
		maxChildCorridors = DefaultMaxChildCorridors
	}
	return &Builder{
		name:              name,
		types:             types,
		maxChildCorridors: maxChildCorridors,
		index:             make(map[string]*Node),
	}
}

// AddNode adds a node of the given type with a fresh UUID and returns its
// identifier.
func (b *Builder) AddNode(typeTag string) string {
	id := uuid.NewString()
	b.addNode(Node{ID: id, Type: typeTag})
	return id
}

// AddNodeWithID adds a node with a caller-chosen identifier.
func (b *Builder) AddNodeWithID(id, typeTag string) error {
	if id == "" {
		return ErrInvalidNodeID
	}
	if _, dup := b.index[id]; dup {
		return ErrDuplicateNodeID
	}
	b.addNode(Node{ID: id, Type: typeTag})
	return nil
}

func (b *Builder) addNode(n Node) {
	node := &n
	b.nodes = append(b.nodes, node)
	b.index[n.ID] = node
}

// SetType changes a node's type. When the change flips the node between
// room and corridor, or turns it into a boss room, every child link is
// removed because those links may no longer be valid.
func (b *Builder) SetType(id, typeTag string) error {
	n, ok := b.index[id]
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownNode, id)
	}
	oldT, newT := b.typeOf(n.Type), b.typeOf(typeTag)
	if oldT.Corridor != newT.Corridor || (!oldT.BossRoom && newT.BossRoom) {
		for _, child := range slices.Clone(n.Children) {
			b.Unlink(id, child)
		}
	}
	n.Type = typeTag
	return nil
}

// Link adds the edge parent -> child, returning a *LinkError when the edge
// breaks a linking rule.
func (b *Builder) Link(parentID, childID string) error {
	parent, ok := b.index[parentID]
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownNode, parentID)
	}
	child, ok := b.index[childID]
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownNode, childID)
	}
	if reason := b.checkLink(parent, child); reason != "" {
		return &LinkError{Parent: parentID, Child: childID, Reason: reason}
	}
	parent.Children = append(parent.Children, childID)
	child.Parents = append(child.Parents, parentID)
	return nil
}

// CanLink reports whether Link(parentID, childID) would succeed.
func (b *Builder) CanLink(parentID, childID string) bool {
	parent, ok1 := b.index[parentID]
	child, ok2 := b.index[childID]
	return ok1 && ok2 && b.checkLink(parent, child) == ""
}

func (b *Builder) checkLink(parent, child *Node) string {
	pt, ct := b.typeOf(parent.Type), b.typeOf(child.Type)

	switch {
	case ct.BossRoom && b.hasLinkedBossRoom():
		return "a boss room is already connected"
	case ct.None:
		return "child has no room type"
	case slices.Contains(parent.Children, child.ID):
		return "already linked"
	case parent.ID == child.ID:
		return "cannot link a node to itself"
	case slices.Contains(parent.Parents, child.ID):
		return "child is already a parent of this node"
	case len(child.Parents) > 0:
		return "child already has a parent"
	case ct.Corridor && pt.Corridor:
		return "corridors cannot connect to corridors"
	case !ct.Corridor && !pt.Corridor:
		return "rooms must be joined by a corridor"
	case ct.Corridor && len(parent.Children) >= b.maxChildCorridors:
		return fmt.Sprintf("room already has %d child corridors", b.maxChildCorridors)
	case ct.Entrance:
		return "the entrance must be the root node"
	case !ct.Corridor && len(parent.Children) > 0:
		return "corridor already leads to a room"
	}
	return ""
}

func (b *Builder) hasLinkedBossRoom() bool {
	for _, n := range b.nodes {
		if b.typeOf(n.Type).BossRoom && len(n.Parents) > 0 {
			return true
		}
	}
	return false
}

func (b *Builder) typeOf(name string) roomtype.Type {
	t, _ := b.types.Get(name)
	return t
}

// Unlink removes the edge parent -> child if present.
func (b *Builder) Unlink(parentID, childID string) {
	if p, ok := b.index[parentID]; ok {
		p.Children = slices.DeleteFunc(p.Children, func(s string) bool { return s == childID })
	}
	if c, ok := b.index[childID]; ok {
		c.Parents = slices.DeleteFunc(c.Parents, func(s string) bool { return s == parentID })
	}
}

// RemoveNode deletes a node and every edge touching it.
func (b *Builder) RemoveNode(id string) {
	n, ok := b.index[id]
	if !ok {
		return
	}
	for _, c := range slices.Clone(n.Children) {
		b.Unlink(id, c)
	}
	for _, p := range slices.Clone(n.Parents) {
		b.Unlink(p, id)
	}
	delete(b.index, id)
	b.nodes = slices.DeleteFunc(b.nodes, func(x *Node) bool { return x.ID == id })
}

// Build freezes the current nodes into a Graph.
func (b *Builder) Build() (*Graph, error) {
	nodes := make([]Node, len(b.nodes))
	for i, n := range b.nodes {
		nodes[i] = *n
	}
	return New(b.name, nodes)
}

// CheckLinks replays every edge of g through a Builder, parents in node
// order and children in list order, and returns a *LinkError for each edge
// the linking rules refuse. Dangling references are left to Validate.
func CheckLinks(g *Graph, types *roomtype.List, maxChildCorridors int) []error {
	b := NewBuilder(g.Name(), types, maxChildCorridors)
	for _, n := range g.nodes {
		if err := b.AddNodeWithID(n.ID, n.Type); err != nil {
			return []error{err}
		}
	}
	var errs []error
	for _, n := range g.nodes {
		for _, child := range n.Children {
			var le *LinkError
			if err := b.Link(n.ID, child); errors.As(err, &le) {
				errs = append(errs, le)
			}
		}
	}
	return errs
}
