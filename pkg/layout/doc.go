// Package layout holds the result of a successful dungeon generation and
// hands it off to whatever turns rooms into scenery.
//
// # Layout
//
// A [Layout] maps room identifiers to positioned [room.Room] values and
// remembers the order in which the builder accepted them. Once returned from
// the builder it is treated as read-only; consumers iterate [Layout.Rooms] in
// placement order and read world bounds, doorways with their final
// connection state, and spawn positions.
//
// # Checks
//
// [Check] verifies the structural guarantees of a generated dungeon:
//
//   - No two rooms share a tile
//   - Exactly one room has no parent, and it is positioned and visited
//   - Every other room is joined to its parent through exactly one pair of
//     connected, opposite-facing, adjacent doorways
//
// # Hand-off format
//
// [WriteJSON] and [ReadJSON] encode a layout as a JSON manifest:
//
//	{
//	  "level": "crypt",
//	  "graph": "main",
//	  "seed": 42,
//	  "rooms": [
//	    {"id": "...", "template": "...", "lower": {"x": 0, "y": 0}, ...}
//	  ]
//	}
//
// Rooms appear in placement order so a consumer can materialise parents
// before children.
//
// # ASCII maps
//
// [Rasterize] converts a layout to a [TileMap] and [RenderASCII] prints it
// with north at the top. Walls are '#', floors '.', connected doorways '+'
// and the entrance centre '@'.
package layout
