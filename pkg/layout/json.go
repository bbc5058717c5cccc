package layout

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/matzehuels/dungeonforge/pkg/room"
)

type manifest struct {
	Level string       `json:"level"`
	Graph string       `json:"graph"`
	Seed  uint64       `json:"seed"`
	Rooms []*room.Room `json:"rooms"`
}

// WriteJSON encodes l as a hand-off manifest and writes it to w. Rooms are
// written in placement order.
func WriteJSON(l *Layout, w io.Writer) error {
	out := manifest{
		Level: l.Level,
		Graph: l.Graph,
		Seed:  l.Seed,
		Rooms: l.InOrder(),
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(out); err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	return nil
}

// ReadJSON decodes a manifest written by [WriteJSON]. It returns an error for
// malformed JSON, rooms without an ID and duplicate room IDs. ReadJSON does
// not close r.
func ReadJSON(r io.Reader) (*Layout, error) {
	var data manifest
	if err := json.NewDecoder(r).Decode(&data); err != nil {
		return nil, fmt.Errorf("decode: %w", err)
	}

	l := New(data.Level, data.Graph, data.Seed)
	for i, rm := range data.Rooms {
		if rm == nil || rm.ID == "" {
			return nil, fmt.Errorf("room %d: missing id", i)
		}
		if _, dup := l.Rooms[rm.ID]; dup {
			return nil, fmt.Errorf("room %s: duplicate id", rm.ID)
		}
		l.Add(rm)
	}
	return l, nil
}

// ExportJSON writes l to a JSON file at path.
func ExportJSON(l *Layout, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()
	return WriteJSON(l, f)
}

// ImportJSON reads a manifest from the file at path.
func ImportJSON(path string) (*Layout, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()
	return ReadJSON(f)
}
