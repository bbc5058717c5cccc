package roomgraph

import (
	"errors"
	"fmt"
	"slices"

	"github.com/zyedidia/generic/mapset"

	"github.com/matzehuels/dungeonforge/pkg/roomtype"
)

var (
	// ErrNoEntrance is reported when a graph has no entrance node.
	ErrNoEntrance = errors.New("graph has no entrance node")

	// ErrMultipleEntrances is reported when more than one entrance node is
	// reachable.
	ErrMultipleEntrances = errors.New("graph has more than one entrance node")

	// ErrUnreachable is reported for nodes the builder would never visit.
	ErrUnreachable = errors.New("node is not reachable from the entrance")

	// ErrUnknownType is reported for nodes whose type is not registered.
	ErrUnknownType = errors.New("unknown room type")

	// ErrMultipleParents is reported for nodes with more than one parent.
	ErrMultipleParents = errors.New("node has more than one parent")

	// ErrDanglingEdge is reported when a parent or child identifier does not
	// resolve to a node.
	ErrDanglingEdge = errors.New("edge references an unknown node")

	// ErrInconsistentEdge is reported when a child does not list its parent
	// back, or the other way round.
	ErrInconsistentEdge = errors.New("parent and child lists disagree")
)

// Validate checks g against types and returns every problem found, joined
// with errors.Join. A nil result means the graph is structurally sound; it may
// still be impossible to lay out.
func Validate(g *Graph, types *roomtype.List) error {
	if types == nil {
		types = roomtype.Default()
	}
	var errs []error

	for _, n := range g.nodes {
		if !types.Has(n.Type) {
			errs = append(errs, fmt.Errorf("node %s: %w %q", n.ID, ErrUnknownType, n.Type))
		}
		if len(n.Parents) > 1 {
			errs = append(errs, fmt.Errorf("node %s: %w", n.ID, ErrMultipleParents))
		}
		for _, c := range n.Children {
			child, ok := g.Node(c)
			if !ok {
				errs = append(errs, fmt.Errorf("node %s child %s: %w", n.ID, c, ErrDanglingEdge))
				continue
			}
			if !slices.Contains(child.Parents, n.ID) {
				errs = append(errs, fmt.Errorf("node %s child %s: %w", n.ID, c, ErrInconsistentEdge))
			}
		}
		for _, p := range n.Parents {
			parent, ok := g.Node(p)
			if !ok {
				errs = append(errs, fmt.Errorf("node %s parent %s: %w", n.ID, p, ErrDanglingEdge))
				continue
			}
			if !slices.Contains(parent.Children, n.ID) {
				errs = append(errs, fmt.Errorf("node %s parent %s: %w", n.ID, p, ErrInconsistentEdge))
			}
		}
	}

	entranceType, ok := types.Entrance()
	if !ok {
		return errors.Join(append(errs, ErrNoEntrance)...)
	}
	entrance, ok := g.NodeOfType(entranceType.Name)
	if !ok {
		return errors.Join(append(errs, ErrNoEntrance)...)
	}

	reached := Reachable(g, entrance.ID)
	entrances := 0
	for _, n := range g.nodes {
		if !reached.Has(n.ID) {
			errs = append(errs, fmt.Errorf("node %s: %w", n.ID, ErrUnreachable))
			continue
		}
		if n.Type == entranceType.Name {
			entrances++
		}
	}
	if entrances > 1 {
		errs = append(errs, ErrMultipleEntrances)
	}

	return errors.Join(errs...)
}

// Reachable returns the identifiers of every node reachable from start by
// following child links, start included.
func Reachable(g *Graph, start string) mapset.Set[string] {
	visited := mapset.New[string]()
	queue := []string{start}

	for len(queue) > 0 {
		id := queue[0]
		queue = queue[1:]

		n, ok := g.Node(id)
		if !ok || visited.Has(id) {
			continue
		}
		visited.Put(id)

		for _, c := range n.Children {
			if !visited.Has(c) {
				queue = append(queue, c)
			}
		}
	}
	return visited
}
