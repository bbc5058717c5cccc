package builder

import (
	"context"
	"testing"
	"time"

	"github.com/matzehuels/dungeonforge/pkg/catalog"
	"github.com/matzehuels/dungeonforge/pkg/geom"
	"github.com/matzehuels/dungeonforge/pkg/roomgraph"
)

func door(x, y int, o geom.Orientation) catalog.Doorway {
	return catalog.Doorway{Position: geom.Pt(x, y), Orientation: o}
}

// square returns a template spanning (0,0)-(size,size) with a doorway in the
// middle of each side.
func square(id, typ string, size int) catalog.Template {
	m := size / 2
	return catalog.Template{
		ID: id, Type: typ,
		Lower: geom.Pt(0, 0), Upper: geom.Pt(size, size),
		Doorways: []catalog.Doorway{
			door(m, size, geom.North),
			door(size, m, geom.East),
			door(m, 0, geom.South),
			door(0, m, geom.West),
		},
		SpawnPositions: []geom.Point{geom.Pt(m, m)},
	}
}

func corridorNS() catalog.Template {
	return catalog.Template{
		ID: "corridor-ns", Type: "CorridorNS",
		Lower: geom.Pt(0, 0), Upper: geom.Pt(2, 5),
		Doorways: []catalog.Doorway{door(1, 5, geom.North), door(1, 0, geom.South)},
	}
}

func corridorEW() catalog.Template {
	return catalog.Template{
		ID: "corridor-ew", Type: "CorridorEW",
		Lower: geom.Pt(0, 0), Upper: geom.Pt(5, 2),
		Doorways: []catalog.Doorway{door(0, 1, geom.West), door(5, 1, geom.East)},
	}
}

// fullCatalog has templates for every default type used by branchingGraph.
func fullCatalog() *catalog.Catalog {
	return catalog.New([]catalog.Template{
		square("hall", "Entrance", 8),
		square("cell", "Small Room", 6),
		square("vault", "Medium Room", 8),
		square("throne", "Boss Room", 10),
		corridorNS(),
		corridorEW(),
	}, nil)
}

func mustGraph(t *testing.T, name string, nodes []roomgraph.Node) *roomgraph.Graph {
	t.Helper()
	g, err := roomgraph.New(name, nodes)
	if err != nil {
		t.Fatalf("roomgraph.New(%s): %v", name, err)
	}
	return g
}

// branchingGraph is an entrance with three corridors, one of which leads
// further to a boss room.
func branchingGraph(t *testing.T) *roomgraph.Graph {
	return mustGraph(t, "branching", []roomgraph.Node{
		{ID: "e", Type: "Entrance", Children: []string{"c1", "c2", "c3"}},
		{ID: "c1", Type: "Corridor", Parents: []string{"e"}, Children: []string{"r1"}},
		{ID: "c2", Type: "Corridor", Parents: []string{"e"}, Children: []string{"r2"}},
		{ID: "c3", Type: "Corridor", Parents: []string{"e"}, Children: []string{"r3"}},
		{ID: "r1", Type: "Small Room", Parents: []string{"c1"}},
		{ID: "r2", Type: "Medium Room", Parents: []string{"c2"}},
		{ID: "r3", Type: "Small Room", Parents: []string{"c3"}, Children: []string{"c4"}},
		{ID: "c4", Type: "Corridor", Parents: []string{"r3"}, Children: []string{"boss"}},
		{ID: "boss", Type: "Boss Room", Parents: []string{"c4"}},
	})
}

// countingHooks records generation events.
type countingHooks struct {
	builds, rebuilds int
	rejected         map[string]int
	completed        int
	lastErr          error
}

func newCountingHooks() *countingHooks {
	return &countingHooks{rejected: make(map[string]int)}
}

func (h *countingHooks) OnGenerateStart(context.Context, int)          {}
func (h *countingHooks) OnBuildAttempt(context.Context, int, string)   { h.builds++ }
func (h *countingHooks) OnRebuildAttempt(context.Context, string, int) { h.rebuilds++ }
func (h *countingHooks) OnPlacementRejected(_ context.Context, _ string, reason string) {
	h.rejected[reason]++
}
func (h *countingHooks) OnGenerateComplete(_ context.Context, _ string, _ int, _ time.Duration, err error) {
	h.completed++
	h.lastErr = err
}
