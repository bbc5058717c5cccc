package roomgraph

import (
	"errors"
	"slices"
)

var (
	// ErrInvalidNodeID is returned when a node has an empty identifier.
	ErrInvalidNodeID = errors.New("node ID must not be empty")

	// ErrDuplicateNodeID is returned when two nodes share an identifier.
	ErrDuplicateNodeID = errors.New("duplicate node ID")

	// ErrUnknownNode is returned when an operation names a node that is not
	// in the graph.
	ErrUnknownNode = errors.New("unknown node")
)

// Node is one vertex of the room-node graph.
type Node struct {
	ID       string   `toml:"id" json:"id"`
	Type     string   `toml:"type" json:"type"`
	Parents  []string `toml:"parents" json:"parents,omitempty"`
	Children []string `toml:"children" json:"children,omitempty"`
}

// IsRoot reports whether the node has no parent.
func (n Node) IsRoot() bool { return len(n.Parents) == 0 }

// Parent returns the first parent identifier, or "" for a root node.
func (n Node) Parent() string {
	if len(n.Parents) == 0 {
		return ""
	}
	return n.Parents[0]
}

func (n Node) clone() Node {
	n.Parents = slices.Clone(n.Parents)
	n.Children = slices.Clone(n.Children)
	return n
}

// Graph is an immutable room-node graph. The zero value is not usable; build
// graphs with [New] or [Builder].
type Graph struct {
	name  string
	nodes []Node
	index map[string]int
}

// New builds a graph from nodes, keeping their order. It returns
// ErrInvalidNodeID or ErrDuplicateNodeID when identifiers are empty or
// repeated. Parent and child lists are not checked here; see [Validate].
func New(name string, nodes []Node) (*Graph, error) {
	g := &Graph{
		name:  name,
		nodes: make([]Node, 0, len(nodes)),
		index: make(map[string]int, len(nodes)),
	}
	for _, n := range nodes {
		if n.ID == "" {
			return nil, ErrInvalidNodeID
		}
		if _, dup := g.index[n.ID]; dup {
			return nil, ErrDuplicateNodeID
		}
		g.index[n.ID] = len(g.nodes)
		g.nodes = append(g.nodes, n.clone())
	}
	return g, nil
}

// Name returns the graph name.
func (g *Graph) Name() string { return g.name }

// Len returns the number of nodes.
func (g *Graph) Len() int { return len(g.nodes) }

// Nodes returns a copy of every node in authored order.
func (g *Graph) Nodes() []Node {
	out := make([]Node, len(g.nodes))
	for i, n := range g.nodes {
		out[i] = n.clone()
	}
	return out
}

// Node returns the node with the given identifier.
func (g *Graph) Node(id string) (Node, bool) {
	idx, ok := g.index[id]
	if !ok {
		return Node{}, false
	}
	return g.nodes[idx].clone(), true
}

// Find returns the first node, in authored order, satisfying pred.
func (g *Graph) Find(pred func(Node) bool) (Node, bool) {
	for _, n := range g.nodes {
		if pred(n) {
			return n.clone(), true
		}
	}
	return Node{}, false
}

// NodeOfType returns the first node tagged typeTag.
func (g *Graph) NodeOfType(typeTag string) (Node, bool) {
	return g.Find(func(n Node) bool { return n.Type == typeTag })
}

// Children resolves n's child identifiers against the graph. Identifiers
// with no matching node are skipped.
func (g *Graph) Children(n Node) []Node {
	out := make([]Node, 0, len(n.Children))
	for _, id := range n.Children {
		if child, ok := g.Node(id); ok {
			out = append(out, child)
		}
	}
	return out
}

// Parents resolves n's parent identifiers against the graph, skipping unknown
// identifiers.
func (g *Graph) Parents(n Node) []Node {
	out := make([]Node, 0, len(n.Parents))
	for _, id := range n.Parents {
		if p, ok := g.Node(id); ok {
			out = append(out, p)
		}
	}
	return out
}
