// Package roomgraph models the abstract room-node graph a dungeon is built
// from.
//
// # Overview
//
// A [Graph] is an arena of [Node] records addressed exclusively by string
// identifier. Each node names the room type it needs and lists the
// identifiers of its parents and children. There are no object references
// between nodes, so copying a graph is a pure data operation.
//
// The dungeon builder walks the graph breadth-first from the single entrance
// node. Lookups follow the authored order: [Graph.NodeOfType] and
// [Graph.Find] return the first matching node, and when a graph defines more
// than one node of a marker type the first one wins.
//
// # Authoring
//
// [Builder] assembles graphs under the same linking rules as the original
// level editor: rooms and corridors alternate, the entrance is always the
// root, a node has at most one parent, a room fans out to at most
// MaxChildCorridors corridors and a corridor leads to exactly one room.
//
//	b := roomgraph.NewBuilder("crypt", roomtype.Default(), 3)
//	entrance := b.AddNode(roomtype.NameEntrance)
//	hall := b.AddNode(roomtype.NameCorridor)
//	boss := b.AddNode(roomtype.NameBossRoom)
//	_ = b.Link(entrance, hall)
//	_ = b.Link(hall, boss)
//	g, err := b.Build()
//
// # Validation
//
// [Validate] checks the structural assumptions the builder relies on. Graphs
// that pass may still be impossible to lay out; that is only discovered by
// attempting placement.
//
// # Visualization
//
// [ToDOT] renders the graph in Graphviz DOT and [RenderSVG] turns that into
// SVG for debugging level definitions.
package roomgraph
