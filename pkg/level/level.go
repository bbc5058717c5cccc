package level

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/matzehuels/dungeonforge/pkg/builder"
	"github.com/matzehuels/dungeonforge/pkg/catalog"
	derrors "github.com/matzehuels/dungeonforge/pkg/errors"
	"github.com/matzehuels/dungeonforge/pkg/roomgraph"
	"github.com/matzehuels/dungeonforge/pkg/roomtype"
)

// Level is a decoded level file.
type Level struct {
	Name      string             `toml:"name"`
	Settings  builder.Overrides  `toml:"settings"`
	Types     []roomtype.Type    `toml:"types,omitempty"`
	Templates []catalog.Template `toml:"templates"`
	Graphs    []Graph            `toml:"graphs"`
}

// Graph is one candidate room node graph.
type Graph struct {
	Name  string           `toml:"name"`
	Nodes []roomgraph.Node `toml:"nodes"`
}

// Load reads and decodes the level file at path.
func Load(path string) (*Level, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, derrors.Wrap(derrors.ErrCodeFileNotFound, err, "level file %s not found", path)
		}
		return nil, derrors.Wrap(derrors.ErrCodeInvalidLevel, err, "read %s", path)
	}
	return Decode(bytes.NewReader(data))
}

// Decode parses a level from r. Unknown keys are rejected. Templates and
// nodes without an ID and graphs without a name are given one.
func Decode(r io.Reader) (*Level, error) {
	var l Level
	md, err := toml.NewDecoder(r).Decode(&l)
	if err != nil {
		return nil, derrors.Wrap(derrors.ErrCodeInvalidLevel, err, "decode level")
	}
	if und := md.Undecoded(); len(und) > 0 {
		keys := make([]string, len(und))
		for i, k := range und {
			keys[i] = k.String()
		}
		return nil, derrors.New(derrors.ErrCodeInvalidLevel, "unknown keys: %s", strings.Join(keys, ", "))
	}
	l.fillIDs()
	return &l, nil
}

// Encode writes l as TOML.
func Encode(w io.Writer, l *Level) error {
	if err := toml.NewEncoder(w).Encode(l); err != nil {
		return fmt.Errorf("encode level: %w", err)
	}
	return nil
}

func (l *Level) fillIDs() {
	for i := range l.Templates {
		if l.Templates[i].ID == "" {
			l.Templates[i].ID = uuid.NewString()
		}
	}
	for i := range l.Graphs {
		g := &l.Graphs[i]
		if g.Name == "" {
			g.Name = fmt.Sprintf("graph-%d", i+1)
		}
		for j := range g.Nodes {
			if g.Nodes[j].ID == "" {
				g.Nodes[j].ID = uuid.NewString()
			}
		}
	}
}

// Config returns the level settings over the stock bounds. Only keys present
// in the file override a default, so an explicit zero is kept.
func (l *Level) Config() builder.Config {
	return l.Settings.Apply(builder.DefaultConfig())
}

// TypeList returns the level's room types, or the default list when the
// level does not define any.
func (l *Level) TypeList() *roomtype.List {
	if len(l.Types) == 0 {
		return roomtype.Default()
	}
	return roomtype.NewList(l.Types)
}

// Catalog indexes the level's templates. Duplicate IDs are logged to logger
// and dropped.
func (l *Level) Catalog(logger *log.Logger) *catalog.Catalog {
	return catalog.New(l.Templates, logger)
}

// RoomGraphs builds every candidate graph.
func (l *Level) RoomGraphs() ([]*roomgraph.Graph, error) {
	out := make([]*roomgraph.Graph, 0, len(l.Graphs))
	for _, def := range l.Graphs {
		g, err := roomgraph.New(def.Name, def.Nodes)
		if err != nil {
			return nil, derrors.Wrap(derrors.ErrCodeInvalidGraph, err, "graph %s", def.Name)
		}
		out = append(out, g)
	}
	return out, nil
}

// RoomGraph builds the graph called name.
func (l *Level) RoomGraph(name string) (*roomgraph.Graph, error) {
	for _, def := range l.Graphs {
		if def.Name == name {
			g, err := roomgraph.New(def.Name, def.Nodes)
			if err != nil {
				return nil, derrors.Wrap(derrors.ErrCodeInvalidGraph, err, "graph %s", def.Name)
			}
			return g, nil
		}
	}
	return nil, derrors.New(derrors.ErrCodeNotFound, "level %q has no graph %q", l.Name, name)
}

// GraphNames lists graph names in file order.
func (l *Level) GraphNames() []string {
	names := make([]string, len(l.Graphs))
	for i, g := range l.Graphs {
		names[i] = g.Name
	}
	return names
}

// Builder returns a builder for the level with its catalog, types and
// settings. opts are applied after the level settings.
func (l *Level) Builder(logger *log.Logger, opts ...builder.Option) *builder.Builder {
	base := []builder.Option{
		builder.WithConfig(l.Config()),
		builder.WithLevel(l.Name),
		builder.WithLogger(logger),
	}
	return builder.New(l.Catalog(logger), l.TypeList(), append(base, opts...)...)
}
