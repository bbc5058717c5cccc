package level

import (
	"fmt"

	"github.com/matzehuels/dungeonforge/pkg/catalog"
	derrors "github.com/matzehuels/dungeonforge/pkg/errors"
	"github.com/matzehuels/dungeonforge/pkg/roomgraph"
	"github.com/matzehuels/dungeonforge/pkg/roomtype"
)

// Severity grades an Issue.
type Severity int

const (
	// Warning marks a level that may still generate.
	Warning Severity = iota
	// Error marks a level that cannot generate.
	Error
)

func (s Severity) String() string {
	if s == Error {
		return "error"
	}
	return "warning"
}

// MarshalText encodes the severity as "warning" or "error".
func (s Severity) MarshalText() ([]byte, error) { return []byte(s.String()), nil }

// Issue is one validation finding.
type Issue struct {
	Severity Severity `json:"severity"`
	Graph    string   `json:"graph,omitempty"`
	Template string   `json:"template,omitempty"`
	Message  string   `json:"message"`
}

func (i Issue) String() string {
	var where string
	switch {
	case i.Graph != "":
		where = "graph " + i.Graph + ": "
	case i.Template != "":
		where = "template " + i.Template + ": "
	}
	return fmt.Sprintf("%s: %s%s", i.Severity, where, i.Message)
}

// HasErrors reports whether any issue is an Error.
func HasErrors(issues []Issue) bool {
	for _, i := range issues {
		if i.Severity == Error {
			return true
		}
	}
	return false
}

type collector []Issue

func (c *collector) add(sev Severity, graph, tmpl, format string, args ...any) {
	*c = append(*c, Issue{
		Severity: sev,
		Graph:    graph,
		Template: tmpl,
		Message:  fmt.Sprintf(format, args...),
	})
}

// Validate checks l and returns every issue found, templates first, then
// graphs in file order.
func Validate(l *Level) []Issue {
	var c collector
	types := l.TypeList()
	cfg := l.Config()

	if l.Name == "" {
		c.add(Warning, "", "", "level has no name")
	} else if err := derrors.ValidateID(l.Name); err != nil {
		c.add(Error, "", "", "level name: %s", derrors.UserMessage(err))
	}

	seen := make(map[string]bool)
	for _, t := range l.Templates {
		if seen[t.ID] {
			c.add(Warning, "", t.ID, "duplicate template id, later copy ignored")
		}
		seen[t.ID] = true
		validateTemplate(&c, t, types)
	}

	cat := catalog.New(l.Templates, nil)
	requireMarker(&c, cat, types, "entrance", roomtype.IsEntrance)
	requireMarker(&c, cat, types, "north-south corridor", roomtype.IsCorridorNS)
	requireMarker(&c, cat, types, "east-west corridor", roomtype.IsCorridorEW)

	if len(l.Graphs) == 0 {
		c.add(Error, "", "", "level has no room node graphs")
	}
	for _, def := range l.Graphs {
		g, err := roomgraph.New(def.Name, def.Nodes)
		if err != nil {
			c.add(Error, def.Name, "", "%v", err)
			continue
		}
		validateGraph(&c, g, cat, types, cfg.MaxChildCorridors)
	}
	return c
}

func validateTemplate(c *collector, t catalog.Template, types *roomtype.List) {
	if err := derrors.ValidateID(t.ID); err != nil {
		c.add(Error, "", t.ID, "%s", derrors.UserMessage(err))
	}
	if !types.Has(t.Type) {
		c.add(Warning, "", t.ID, "unknown room type %q", t.Type)
	}
	b := t.Bounds()
	if b.Min.X > b.Max.X || b.Min.Y > b.Max.Y {
		c.add(Error, "", t.ID, "lower bound %s exceeds upper bound %s", t.Lower, t.Upper)
		return
	}
	if len(t.Doorways) == 0 {
		c.add(Warning, "", t.ID, "template has no doorways")
	}
	for i, d := range t.Doorways {
		if !b.Contains(d.Position) {
			c.add(Error, "", t.ID, "doorway %d at %s lies outside %s", i, d.Position, b)
		}
	}
}

func requireMarker(c *collector, cat *catalog.Catalog, types *roomtype.List, what string, pred func(roomtype.Type) bool) {
	t, ok := types.Find(pred)
	if !ok {
		c.add(Warning, "", "", "no %s room type defined", what)
		return
	}
	if !cat.Has(t.Name) {
		c.add(Warning, "", "", "no %s template (type %q)", what, t.Name)
	}
}

func validateGraph(c *collector, g *roomgraph.Graph, cat *catalog.Catalog, types *roomtype.List, maxChildCorridors int) {
	if err := roomgraph.Validate(g, types); err != nil {
		for _, e := range unjoin(err) {
			c.add(Error, g.Name(), "", "%v", e)
		}
	}
	for _, e := range roomgraph.CheckLinks(g, types, maxChildCorridors) {
		c.add(Error, g.Name(), "", "%v", e)
	}

	reported := make(map[string]bool)
	for _, n := range g.Nodes() {
		if err := derrors.ValidateID(n.ID); err != nil {
			c.add(Error, g.Name(), "", "node %q: %s", n.ID, derrors.UserMessage(err))
		}
		t, ok := types.Get(n.Type)
		if !ok || t.Corridor || reported[n.Type] {
			continue
		}
		if !cat.Has(n.Type) {
			reported[n.Type] = true
			c.add(Warning, g.Name(), "", "no template for room type %q", n.Type)
		}
	}
}

func unjoin(err error) []error {
	if j, ok := err.(interface{ Unwrap() []error }); ok {
		return j.Unwrap()
	}
	return []error{err}
}
