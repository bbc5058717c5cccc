package layout

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/matzehuels/dungeonforge/pkg/catalog"
	"github.com/matzehuels/dungeonforge/pkg/geom"
	"github.com/matzehuels/dungeonforge/pkg/room"
	"github.com/matzehuels/dungeonforge/pkg/roomgraph"
)

// sample builds entrance -> corridor with the corridor east of the entrance.
func sample() *Layout {
	entrance := room.New(catalog.Template{
		ID: "hall", Type: "Entrance",
		Lower: geom.Pt(0, 0), Upper: geom.Pt(4, 4),
		Doorways: []catalog.Doorway{
			{Position: geom.Pt(4, 2), Orientation: geom.East},
			{Position: geom.Pt(2, 4), Orientation: geom.North},
		},
	}, roomgraph.Node{ID: "e", Type: "Entrance", Children: []string{"c"}})
	entrance.Positioned = true

	corridor := room.New(catalog.Template{
		ID: "ew", Type: "CorridorEW",
		Lower: geom.Pt(0, 0), Upper: geom.Pt(2, 2),
		Doorways: []catalog.Doorway{
			{Position: geom.Pt(0, 1), Orientation: geom.West},
			{Position: geom.Pt(2, 1), Orientation: geom.East},
		},
	}, roomgraph.Node{ID: "c", Type: "Corridor", Parents: []string{"e"}})
	corridor.MoveTo(geom.Pt(5, 1))
	corridor.Positioned = true

	for _, d := range []*catalog.Doorway{&entrance.Doorways[0], &corridor.Doorways[0]} {
		d.Connected = true
		d.Unavailable = true
	}

	l := New("crypt", "main", 7)
	l.Add(entrance)
	l.Add(corridor)
	return l
}

func TestLayoutAccessors(t *testing.T) {
	l := sample()
	if l.Len() != 2 {
		t.Fatalf("Len() = %d", l.Len())
	}
	if e, ok := l.Entrance(); !ok || e.ID != "e" {
		t.Errorf("Entrance() = %v", e)
	}
	if got := l.Bounds(); got != geom.R(geom.Pt(0, 0), geom.Pt(7, 4)) {
		t.Errorf("Bounds() = %s", got)
	}
	order := l.InOrder()
	if order[0].ID != "e" || order[1].ID != "c" {
		t.Error("InOrder should follow placement order")
	}
}

func TestCheckOK(t *testing.T) {
	if err := Check(sample()); err != nil {
		t.Errorf("Check() = %v", err)
	}
}

func TestCheckOverlap(t *testing.T) {
	l := sample()
	c, _ := l.Room("c")
	c.MoveTo(geom.Pt(4, 1))
	if err := Check(l); !errors.Is(err, ErrOverlap) {
		t.Errorf("Check() = %v, want ErrOverlap", err)
	}
}

func TestCheckDisconnected(t *testing.T) {
	l := sample()
	c, _ := l.Room("c")
	c.Doorways[0].Connected = false
	if err := Check(l); !errors.Is(err, ErrDisconnected) {
		t.Errorf("Check() = %v, want ErrDisconnected", err)
	}
}

func TestCheckEntrance(t *testing.T) {
	l := sample()
	c, _ := l.Room("c")
	c.ParentID = ""
	if err := Check(l); !errors.Is(err, ErrEntrance) {
		t.Errorf("Check() = %v, want ErrEntrance", err)
	}
}

func TestJSONRoundTrip(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteJSON(sample(), &buf); err != nil {
		t.Fatalf("WriteJSON() error: %v", err)
	}
	if !strings.Contains(buf.String(), `"level": "crypt"`) {
		t.Errorf("manifest missing level:\n%s", buf.String())
	}

	got, err := ReadJSON(&buf)
	if err != nil {
		t.Fatalf("ReadJSON() error: %v", err)
	}
	if got.Seed != 7 || got.Graph != "main" || got.Len() != 2 {
		t.Errorf("ReadJSON() = %+v", got)
	}
	c, _ := got.Room("c")
	if !c.Doorways[0].Connected || c.Doorways[0].Orientation != geom.West {
		t.Errorf("doorway state lost: %+v", c.Doorways[0])
	}
	if err := Check(got); err != nil {
		t.Errorf("Check() after round trip = %v", err)
	}
}

func TestReadJSONErrors(t *testing.T) {
	tests := []struct {
		name, in string
	}{
		{"malformed", `{`},
		{"missing id", `{"rooms":[{"type":"Entrance"}]}`},
		{"duplicate", `{"rooms":[{"id":"a"},{"id":"a"}]}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := ReadJSON(strings.NewReader(tt.in)); err == nil {
				t.Error("ReadJSON() should fail")
			}
		})
	}
}

func TestRenderASCII(t *testing.T) {
	m := Rasterize(sample())
	if m.Width() != 8 || m.Height() != 5 {
		t.Fatalf("size = %dx%d, want 8x5", m.Width(), m.Height())
	}
	if m.At(geom.Pt(4, 2)) != TileDoor || m.At(geom.Pt(5, 2)) != TileDoor {
		t.Error("connected doorways should be drawn as doors")
	}
	if m.At(geom.Pt(2, 4)) != TileWall {
		t.Error("unconnected doorway should stay wall")
	}
	if m.At(geom.Pt(2, 2)) != TileEntrance {
		t.Error("entrance centre missing")
	}
	if m.At(geom.Pt(6, 2)) != TileFloor {
		t.Error("corridor interior should be floor")
	}
	if m.At(geom.Pt(6, 4)) != TileEmpty || m.At(geom.Pt(99, 99)) != TileEmpty {
		t.Error("outside rooms should be empty")
	}

	lines := strings.Split(strings.TrimSuffix(RenderASCII(sample()), "\n"), "\n")
	if len(lines) != 5 || lines[0] != "#####" || lines[2] != "#.@.++.#" {
		t.Errorf("RenderASCII() =\n%s", strings.Join(lines, "\n"))
	}
}

func TestRenderASCIIEmpty(t *testing.T) {
	if got := RenderASCII(New("x", "y", 0)); got != "" {
		t.Errorf("RenderASCII(empty) = %q", got)
	}
}
