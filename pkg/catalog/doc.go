// Package catalog indexes the room templates available to a dungeon level.
//
// # Templates
//
// A [Template] is an immutable room prototype: local bounds, doorways and
// spawn points in template-local tile coordinates, plus an opaque Prefab
// reference that only the scene materializer interprets. Templates are tagged
// with a room type; the builder asks the catalog for "any template of type X"
// and picks one uniformly at random.
//
// # Doorways
//
// A [Doorway] marks the middle tile of an opening on the template boundary
// and the compass direction it faces. Its Connected and Unavailable flags are
// only meaningful on per-room copies: the catalog hands out templates by
// value and [Template.CloneDoorways] gives every room its own slice, so the
// prototype doorways are never mutated.
//
// # Duplicates
//
// [New] keeps the first template for each identifier and logs a warning for
// later duplicates. Generation proceeds with the remaining templates.
package catalog
