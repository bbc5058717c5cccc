// Package pkg provides the libraries behind dungeonforge, a procedural
// dungeon layout engine.
//
// # Overview
//
// A level file authors room templates (footprints with doorways) and one or
// more room node graphs (which rooms connect to which). The engine picks a
// graph, places its entrance at the template origin and then walks the graph
// breadth-first, snapping each child room's doorway onto a free doorway of
// its parent. Placements that face the wrong way or overlap are retried; a
// pass that cannot place every node is discarded and rebuilt.
//
//	level.toml
//	    ↓
//	[level] (decode, validate)
//	    ↓
//	[catalog] + [roomgraph]
//	    ↓
//	[builder] (three nested retry loops)
//	    ↓
//	[layout] (check, hand-off JSON, ASCII map)
//
// # Packages
//
//   - [geom]: integer grid points, rectangles and doorway orientations
//   - [roomtype]: the room type list and its marker flags
//   - [catalog]: room templates indexed by type
//   - [roomgraph]: room node graphs, authoring rules, validation and DOT output
//   - [room]: a template instantiated for one graph node
//   - [builder]: the placement engine
//   - [layout]: a finished dungeon and its renderings
//   - [level]: the TOML level file format
//   - [pipeline]: load → generate → render with caching
//   - [cache]: file, Redis and null caches
//   - [observability]: generation, cache and HTTP hooks
//   - [errors]: coded errors shared by the CLI and the HTTP API
//
// # Quick Start
//
//	lvl, _ := level.Load("crypt.toml")
//	graphs, _ := lvl.RoomGraphs()
//	l, err := lvl.Builder(nil, builder.WithSeed(42)).Generate(ctx, graphs)
//	if err != nil {
//	    return err
//	}
//	fmt.Print(layout.RenderASCII(l))
package pkg
