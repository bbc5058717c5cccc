package level

import (
	"strings"
	"testing"

	"github.com/matzehuels/dungeonforge/pkg/builder"
	"github.com/matzehuels/dungeonforge/pkg/catalog"
	"github.com/matzehuels/dungeonforge/pkg/geom"
	"github.com/matzehuels/dungeonforge/pkg/roomgraph"
)

func hasIssue(issues []Issue, sev Severity, substr string) bool {
	for _, i := range issues {
		if i.Severity == sev && strings.Contains(i.Message, substr) {
			return true
		}
	}
	return false
}

func TestValidateMissingTemplates(t *testing.T) {
	l := &Level{
		Name: "bare",
		Graphs: []Graph{{
			Name: "g",
			Nodes: []roomgraph.Node{
				{ID: "e", Type: "Entrance", Children: []string{"c"}},
				{ID: "c", Type: "Corridor", Parents: []string{"e"}, Children: []string{"r"}},
				{ID: "r", Type: "Chest Room", Parents: []string{"c"}},
			},
		}},
	}
	issues := Validate(l)

	for _, want := range []string{
		"no entrance template",
		"no north-south corridor template",
		"no east-west corridor template",
		`no template for room type "Chest Room"`,
	} {
		if !hasIssue(issues, Warning, want) {
			t.Errorf("missing warning %q in %v", want, issues)
		}
	}
	if HasErrors(issues) {
		t.Errorf("missing templates should only warn: %v", issues)
	}
}

func TestValidateErrors(t *testing.T) {
	l := &Level{
		Name: "broken",
		Templates: []catalog.Template{
			{ID: "inverted", Type: "Small Room", Lower: geom.Pt(5, 5), Upper: geom.Pt(0, 0)},
			{
				ID: "leaky", Type: "Small Room", Upper: geom.Pt(4, 4),
				Doorways: []catalog.Doorway{{Position: geom.Pt(9, 2), Orientation: geom.East}},
			},
		},
		Graphs: []Graph{{
			Name:  "orphans",
			Nodes: []roomgraph.Node{{ID: "r", Type: "Small Room"}},
		}},
	}
	issues := Validate(l)

	for _, want := range []string{"exceeds upper bound", "lies outside", "no entrance node"} {
		if !hasIssue(issues, Error, want) {
			t.Errorf("missing error %q in %v", want, issues)
		}
	}
	if !HasErrors(issues) {
		t.Error("HasErrors() = false")
	}
}

func TestValidateNoGraphs(t *testing.T) {
	issues := Validate(&Level{Name: "empty"})
	if !hasIssue(issues, Error, "no room node graphs") {
		t.Errorf("Validate() = %v", issues)
	}
}

func TestIssueString(t *testing.T) {
	i := Issue{Severity: Error, Graph: "main", Message: "boom"}
	if got := i.String(); got != "error: graph main: boom" {
		t.Errorf("String() = %q", got)
	}
	w := Issue{Severity: Warning, Template: "hall", Message: "hm"}
	if got := w.String(); got != "warning: template hall: hm" {
		t.Errorf("String() = %q", got)
	}
}

func TestValidateIdentifiers(t *testing.T) {
	l := &Level{
		Name: "../escape",
		Templates: []catalog.Template{
			{ID: "rooms/hall", Type: "Entrance", Upper: geom.Pt(4, 4),
				Doorways: []catalog.Doorway{{Position: geom.Pt(2, 4), Orientation: geom.North}}},
		},
		Graphs: []Graph{{
			Name:  "g",
			Nodes: []roomgraph.Node{{ID: "a\\b", Type: "Entrance"}},
		}},
	}
	issues := Validate(l)
	for _, want := range []string{"level name:", "invalid characters", `node "a\\b"`} {
		if !hasIssue(issues, Error, want) {
			t.Errorf("missing error %q in %v", want, issues)
		}
	}
}

func TestValidateLinkRules(t *testing.T) {
	fanOut := []roomgraph.Node{
		{ID: "e", Type: "Entrance", Children: []string{"c1", "c2", "c3", "c4"}},
		{ID: "c1", Type: "Corridor", Parents: []string{"e"}},
		{ID: "c2", Type: "Corridor", Parents: []string{"e"}},
		{ID: "c3", Type: "Corridor", Parents: []string{"e"}},
		{ID: "c4", Type: "Corridor", Parents: []string{"e"}},
	}
	chained := []roomgraph.Node{
		{ID: "e", Type: "Entrance", Children: []string{"c1"}},
		{ID: "c1", Type: "Corridor", Parents: []string{"e"}, Children: []string{"c2"}},
		{ID: "c2", Type: "Corridor", Parents: []string{"c1"}},
	}
	one := 1
	tests := []struct {
		name     string
		settings builder.Overrides
		nodes    []roomgraph.Node
		want     string
	}{
		{"fan-out over default cap", builder.Overrides{}, fanOut, "cannot link e -> c4: room already has 3 child corridors"},
		{"fan-out over level cap", builder.Overrides{MaxChildCorridors: &one}, fanOut, "cannot link e -> c2: room already has 1 child corridors"},
		{"corridor to corridor", builder.Overrides{}, chained, "cannot link c1 -> c2: corridors cannot connect to corridors"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l := &Level{
				Name:     "links",
				Settings: tt.settings,
				Graphs:   []Graph{{Name: "g", Nodes: tt.nodes}},
			}
			issues := Validate(l)
			if !hasIssue(issues, Error, tt.want) {
				t.Errorf("missing error %q in %v", tt.want, issues)
			}
			if !HasErrors(issues) {
				t.Error("HasErrors() = false")
			}
		})
	}
}
