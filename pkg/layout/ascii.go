package layout

import (
	"slices"
	"strings"

	"github.com/matzehuels/dungeonforge/pkg/geom"
)

// Tile is one cell of a rasterized layout.
type Tile byte

const (
	TileEmpty    Tile = ' '
	TileWall     Tile = '#'
	TileFloor    Tile = '.'
	TileDoor     Tile = '+'
	TileEntrance Tile = '@'
)

// TileMap is a rasterized layout. Rows[0] is the northernmost row.
type TileMap struct {
	Origin geom.Point // world coordinate of the south-west corner
	Rows   [][]Tile
}

// Width returns the number of columns.
func (m *TileMap) Width() int {
	if len(m.Rows) == 0 {
		return 0
	}
	return len(m.Rows[0])
}

// Height returns the number of rows.
func (m *TileMap) Height() int { return len(m.Rows) }

// At returns the tile at world position p, or TileEmpty outside the map.
func (m *TileMap) At(p geom.Point) Tile {
	row, col, ok := m.cell(p)
	if !ok {
		return TileEmpty
	}
	return m.Rows[row][col]
}

func (m *TileMap) set(p geom.Point, t Tile) {
	if row, col, ok := m.cell(p); ok {
		m.Rows[row][col] = t
	}
}

func (m *TileMap) cell(p geom.Point) (row, col int, ok bool) {
	col = p.X - m.Origin.X
	row = m.Height() - 1 - (p.Y - m.Origin.Y)
	if row < 0 || row >= m.Height() || col < 0 || col >= m.Width() {
		return 0, 0, false
	}
	return row, col, true
}

// Rasterize draws every room of l: the outer ring of each room is wall, the
// interior floor, and connected doorways are cut into the wall.
func Rasterize(l *Layout) *TileMap {
	if l.Len() == 0 {
		return &TileMap{}
	}
	b := l.Bounds()
	m := &TileMap{Origin: b.Min, Rows: make([][]Tile, b.Height())}
	for i := range m.Rows {
		m.Rows[i] = slices.Repeat([]Tile{TileEmpty}, b.Width())
	}

	for _, r := range l.InOrder() {
		rb := r.Bounds()
		for y := rb.Min.Y; y <= rb.Max.Y; y++ {
			for x := rb.Min.X; x <= rb.Max.X; x++ {
				t := TileFloor
				if x == rb.Min.X || x == rb.Max.X || y == rb.Min.Y || y == rb.Max.Y {
					t = TileWall
				}
				m.set(geom.Pt(x, y), t)
			}
		}
		for _, i := range r.ConnectedDoorways() {
			m.set(r.DoorwayWorld(i), TileDoor)
		}
	}

	if e, ok := l.Entrance(); ok {
		eb := e.Bounds()
		m.set(geom.Pt((eb.Min.X+eb.Max.X)/2, (eb.Min.Y+eb.Max.Y)/2), TileEntrance)
	}
	return m
}

// String renders the map one row per line.
func (m *TileMap) String() string {
	var sb strings.Builder
	for _, row := range m.Rows {
		sb.WriteString(strings.TrimRight(string(row), " "))
		sb.WriteByte('\n')
	}
	return sb.String()
}

// RenderASCII rasterizes l and returns it as text with north at the top.
func RenderASCII(l *Layout) string {
	return Rasterize(l).String()
}
