// Package level loads dungeon level definitions from TOML.
//
// A level bundles everything the builder needs to produce a dungeon: retry
// settings, an optional room type list, the room templates and one or more
// candidate room node graphs.
//
// # File format
//
//	name = "crypt"
//
//	[settings]
//	max_build_attempts = 10
//	max_rebuild_attempts = 1000
//
//	[[templates]]
//	id = "hall"
//	type = "Entrance"
//	lower = { x = 0, y = 0 }
//	upper = { x = 8, y = 8 }
//	spawn_positions = [{ x = 4, y = 4 }]
//
//	  [[templates.doorways]]
//	  position = { x = 8, y = 4 }
//	  orientation = "east"
//	  copy = { start = { x = 8, y = 3 }, width = 1, height = 3 }
//
//	[[graphs]]
//	name = "main"
//
//	  [[graphs.nodes]]
//	  id = "entrance"
//	  type = "Entrance"
//	  children = ["c1"]
//
// Omitted settings fall back to builder.DefaultConfig. Omitting [[types]]
// uses roomtype.Default. Templates and graphs without a name or ID get a
// generated one when decoded.
//
// # Validation
//
// [Validate] reports problems that make generation impossible or unlikely:
// missing entrance or corridor templates, node types without templates,
// malformed templates and structural graph errors. Warnings do not stop
// generation; errors mean the level cannot be built.
package level
