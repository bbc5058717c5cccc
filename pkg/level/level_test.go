package level

import (
	"bytes"
	"context"
	"path/filepath"
	"strings"
	"testing"

	"github.com/matzehuels/dungeonforge/pkg/builder"
	derrors "github.com/matzehuels/dungeonforge/pkg/errors"
	"github.com/matzehuels/dungeonforge/pkg/geom"
	"github.com/matzehuels/dungeonforge/pkg/layout"
)

var cryptPath = filepath.Join("..", "..", "examples", "levels", "crypt.toml")

func TestLoadCrypt(t *testing.T) {
	l, err := Load(cryptPath)
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if l.Name != "crypt" {
		t.Errorf("Name = %q", l.Name)
	}
	if len(l.Templates) != 8 || len(l.Graphs) != 2 {
		t.Errorf("templates=%d graphs=%d", len(l.Templates), len(l.Graphs))
	}
	hall := l.Templates[0]
	if hall.Doorways[1].Orientation != geom.East || hall.Doorways[1].Copy.Height != 3 {
		t.Errorf("hall east doorway = %+v", hall.Doorways[1])
	}
	if got := l.GraphNames(); got[0] != "main" || got[1] != "gauntlet" {
		t.Errorf("GraphNames() = %v", got)
	}
	if issues := Validate(l); len(issues) != 0 {
		t.Errorf("Validate() = %v", issues)
	}
}

func TestLoadMissing(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.toml"))
	if !derrors.Is(err, derrors.ErrCodeFileNotFound) {
		t.Errorf("Load() error = %v, want FILE_NOT_FOUND", err)
	}
}

func TestDecodeErrors(t *testing.T) {
	tests := []struct {
		name, in string
	}{
		{"syntax", `name = `},
		{"unknown key", "name = \"x\"\ncolour = \"red\"\n"},
		{"bad orientation", "[[templates]]\nid = \"a\"\n[[templates.doorways]]\norientation = \"up\"\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Decode(strings.NewReader(tt.in))
			if !derrors.Is(err, derrors.ErrCodeInvalidLevel) {
				t.Errorf("Decode() error = %v, want INVALID_LEVEL", err)
			}
		})
	}
}

func TestDecodeFillsIDs(t *testing.T) {
	in := `
[[templates]]
type = "Entrance"

[[graphs]]
  [[graphs.nodes]]
  type = "Entrance"
`
	l, err := Decode(strings.NewReader(in))
	if err != nil {
		t.Fatal(err)
	}
	if len(l.Templates[0].ID) != 36 || len(l.Graphs[0].Nodes[0].ID) != 36 {
		t.Error("missing IDs should be filled with UUIDs")
	}
	if l.Graphs[0].Name != "graph-1" {
		t.Errorf("graph name = %q", l.Graphs[0].Name)
	}
}

func TestConfigKeepsExplicitZero(t *testing.T) {
	in := "[settings]\nmax_build_attempts = 1\nmax_rebuild_attempts = 0\n"
	l, err := Decode(strings.NewReader(in))
	if err != nil {
		t.Fatal(err)
	}
	want := builder.Config{MaxBuildAttempts: 1, MaxRebuildAttempts: 0, MaxChildCorridors: 3}
	if got := l.Config(); got != want {
		t.Errorf("Config() = %+v, want %+v", got, want)
	}

	var buf bytes.Buffer
	if err := Encode(&buf, l); err != nil {
		t.Fatal(err)
	}
	again, err := Decode(&buf)
	if err != nil {
		t.Fatalf("Decode(Encode()) error: %v\n%s", err, buf.String())
	}
	if got := again.Config(); got != want {
		t.Errorf("round-tripped Config() = %+v, want %+v", got, want)
	}
}

func TestConfigDefaults(t *testing.T) {
	l, err := Decode(strings.NewReader("[settings]\nmax_rebuild_attempts = 50\n"))
	if err != nil {
		t.Fatal(err)
	}
	want := builder.Config{MaxBuildAttempts: 10, MaxRebuildAttempts: 50, MaxChildCorridors: 3}
	if got := l.Config(); got != want {
		t.Errorf("Config() = %+v, want %+v", got, want)
	}
	if !l.TypeList().Has("Boss Room") {
		t.Error("TypeList() should default to the stock types")
	}
}

func TestEncodeRoundTrip(t *testing.T) {
	l, err := Load(cryptPath)
	if err != nil {
		t.Fatal(err)
	}
	var buf bytes.Buffer
	if err := Encode(&buf, l); err != nil {
		t.Fatalf("Encode() error: %v", err)
	}
	again, err := Decode(&buf)
	if err != nil {
		t.Fatalf("Decode(Encode()) error: %v\n%s", err, buf.String())
	}
	if again.Name != l.Name || len(again.Templates) != len(l.Templates) {
		t.Error("round trip lost data")
	}
	if again.Templates[2].Doorways[0].Orientation != l.Templates[2].Doorways[0].Orientation {
		t.Error("round trip changed doorway orientation")
	}
}

func TestRoomGraph(t *testing.T) {
	l, _ := Load(cryptPath)
	g, err := l.RoomGraph("gauntlet")
	if err != nil {
		t.Fatal(err)
	}
	if g.Len() != 7 {
		t.Errorf("gauntlet has %d nodes", g.Len())
	}
	if _, err := l.RoomGraph("missing"); !derrors.Is(err, derrors.ErrCodeNotFound) {
		t.Errorf("RoomGraph(missing) error = %v", err)
	}
	graphs, err := l.RoomGraphs()
	if err != nil || len(graphs) != 2 {
		t.Errorf("RoomGraphs() = %d, %v", len(graphs), err)
	}
}

func TestBuilderGeneratesCrypt(t *testing.T) {
	l, err := Load(cryptPath)
	if err != nil {
		t.Fatal(err)
	}
	graphs, err := l.RoomGraphs()
	if err != nil {
		t.Fatal(err)
	}
	for seed := uint64(1); seed <= 5; seed++ {
		out, err := l.Builder(nil, builder.WithSeed(seed)).Generate(context.Background(), graphs)
		if err != nil {
			t.Fatalf("seed %d: %v", seed, err)
		}
		if out.Level != "crypt" {
			t.Errorf("Level = %q", out.Level)
		}
		if err := layout.Check(out); err != nil {
			t.Errorf("seed %d: %v", seed, err)
		}
	}
}
