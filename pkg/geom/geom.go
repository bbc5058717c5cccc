// Package geom provides the integer grid primitives used by the dungeon
// builder: compass orientations, grid points, inclusive rectangles and the
// interval overlap test.
//
// All coordinates are integer tile positions. Rectangles are inclusive on both
// ends, so a room whose lower and upper bounds are equal still occupies one
// tile.
package geom

import (
	"fmt"
	"strings"
)

// Orientation is the compass direction a doorway faces.
type Orientation int

const (
	North Orientation = iota
	East
	South
	West
	None
)

var orientationNames = map[Orientation]string{
	North: "north",
	East:  "east",
	South: "south",
	West:  "west",
	None:  "none",
}

// String returns the lowercase name of the orientation.
func (o Orientation) String() string {
	if s, ok := orientationNames[o]; ok {
		return s
	}
	return fmt.Sprintf("orientation(%d)", int(o))
}

// ParseOrientation converts a name such as "north" or "N" into an Orientation.
// Matching is case-insensitive. An empty string parses as None.
func ParseOrientation(s string) (Orientation, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "north", "n":
		return North, nil
	case "east", "e":
		return East, nil
	case "south", "s":
		return South, nil
	case "west", "w":
		return West, nil
	case "none", "":
		return None, nil
	}
	return None, fmt.Errorf("unknown orientation %q", s)
}

// MarshalText implements encoding.TextMarshaler.
func (o Orientation) MarshalText() ([]byte, error) {
	return []byte(o.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (o *Orientation) UnmarshalText(b []byte) error {
	v, err := ParseOrientation(string(b))
	if err != nil {
		return err
	}
	*o = v
	return nil
}

// Opposite returns the orientation facing o. Opposite(None) is None.
func (o Orientation) Opposite() Orientation {
	switch o {
	case North:
		return South
	case South:
		return North
	case East:
		return West
	case West:
		return East
	}
	return None
}

// Vertical reports whether o is North or South.
func (o Orientation) Vertical() bool { return o == North || o == South }

// Horizontal reports whether o is East or West.
func (o Orientation) Horizontal() bool { return o == East || o == West }

// Inward returns the unit step that moves from a doorway cell facing o one
// tile into the room it belongs to. A north doorway sits on the top edge, so
// the step is (0,-1). None yields the zero point.
func (o Orientation) Inward() Point {
	switch o {
	case North:
		return Point{0, -1}
	case East:
		return Point{-1, 0}
	case South:
		return Point{0, 1}
	case West:
		return Point{1, 0}
	}
	return Point{}
}

// Point is an integer grid position.
type Point struct {
	X int `json:"x" toml:"x"`
	Y int `json:"y" toml:"y"`
}

// Pt is shorthand for Point{x, y}.
func Pt(x, y int) Point { return Point{X: x, Y: y} }

// Add returns p+q.
func (p Point) Add(q Point) Point { return Point{p.X + q.X, p.Y + q.Y} }

// Sub returns p-q.
func (p Point) Sub(q Point) Point { return Point{p.X - q.X, p.Y - q.Y} }

func (p Point) String() string { return fmt.Sprintf("(%d,%d)", p.X, p.Y) }

// Rect is an axis-aligned rectangle with inclusive bounds.
type Rect struct {
	Min Point `json:"min"`
	Max Point `json:"max"`
}

// R builds a Rect from two corners.
func R(min, max Point) Rect { return Rect{Min: min, Max: max} }

// Size returns the extent of r as Max-Min. A single-tile rect has size (0,0).
func (r Rect) Size() Point { return r.Max.Sub(r.Min) }

// Width returns the number of tiles r spans horizontally.
func (r Rect) Width() int { return r.Max.X - r.Min.X + 1 }

// Height returns the number of tiles r spans vertically.
func (r Rect) Height() int { return r.Max.Y - r.Min.Y + 1 }

// Contains reports whether p lies inside r.
func (r Rect) Contains(p Point) bool {
	return p.X >= r.Min.X && p.X <= r.Max.X && p.Y >= r.Min.Y && p.Y <= r.Max.Y
}

// Overlaps reports whether r and s share at least one tile. Both axes are
// tested independently with [IntervalsOverlap].
func (r Rect) Overlaps(s Rect) bool {
	return IntervalsOverlap(r.Min.X, r.Max.X, s.Min.X, s.Max.X) &&
		IntervalsOverlap(r.Min.Y, r.Max.Y, s.Min.Y, s.Max.Y)
}

// Union returns the smallest rect containing both r and s.
func (r Rect) Union(s Rect) Rect {
	return Rect{
		Min: Point{min(r.Min.X, s.Min.X), min(r.Min.Y, s.Min.Y)},
		Max: Point{max(r.Max.X, s.Max.X), max(r.Max.Y, s.Max.Y)},
	}
}

func (r Rect) String() string { return fmt.Sprintf("[%s-%s]", r.Min, r.Max) }

// IntervalsOverlap reports whether the closed intervals [min1,max1] and
// [min2,max2] intersect. Touching endpoints count as overlap.
func IntervalsOverlap(min1, max1, min2, max2 int) bool {
	return max(min1, min2) <= min(max1, max2)
}
