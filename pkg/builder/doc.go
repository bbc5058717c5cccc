// Package builder places rooms on a grid to realise a room node graph.
//
// # Overview
//
// A [Builder] is constructed from a template [catalog.Catalog] and the room
// type registry. [Builder.Generate] picks one of the candidate graphs, walks
// it breadth-first from the entrance and realises every node as a room whose
// doorway lines up with a free doorway of its parent. The result is a
// [layout.Layout] in which no two rooms overlap.
//
// # Retry scopes
//
// Generation retries at three granularities:
//
//  1. Build attempts: up to Config.MaxBuildAttempts, each picking a graph
//     uniformly at random.
//  2. Rebuild attempts: up to Config.MaxRebuildAttempts+1 passes over the
//     same graph, each starting from an empty map.
//  3. Doorway retries: inside a pass, a parent doorway that cannot host the
//     child (no opposite doorway on the chosen template, or the child would
//     overlap a placed room) is retired and another free doorway is tried.
//     When the parent runs out of doorways the pass fails.
//
// Accepted rooms are never moved. The only escape from a bad early choice is
// a full rebuild.
//
// # Placement arithmetic
//
// For a parent doorway P and the first child doorway C facing the opposite
// way, the child's world lower bound is
//
//	world(P) + inward(C) + child.TemplateLower - C.Position
//
// where inward(C) is one tile into the child from the parent: north (0,-1),
// east (-1,0), south (0,1), west (1,0). The upper bound keeps the template
// extent.
//
// # Corridors
//
// Graph nodes of the generic corridor type are realised with a template of
// the corridor-NS marker type when the parent doorway faces north or south,
// and of the corridor-EW marker type when it faces east or west. The marker
// types are looked up in the [roomtype.List]; if several types carry the
// same marker the first one wins.
//
// # Failure
//
// Generation never returns a partial layout. When every attempt is spent,
// Generate returns an EXHAUSTED error wrapping
// [github.com/matzehuels/dungeonforge/pkg/errors.ExhaustedError]. A graph
// without an entrance node is skipped for the rest of its build attempt, and
// a missing template fails only the current pass.
//
// # Determinism
//
// All random choices come from one math/rand/v2 source. Two builders created
// with the same seed, catalog and graphs produce identical layouts. A
// Builder is not safe for concurrent use; create one per goroutine.
package builder
