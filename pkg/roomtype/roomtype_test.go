package roomtype

import (
	"slices"
	"testing"
)

func TestDefaultMarkers(t *testing.T) {
	l := Default()

	tests := []struct {
		name string
		find func() (Type, bool)
		want string
	}{
		{"entrance", l.Entrance, NameEntrance},
		{"corridor ns", l.CorridorNS, NameCorridorNS},
		{"corridor ew", l.CorridorEW, NameCorridorEW},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := tt.find()
			if !ok {
				t.Fatal("marker type not found")
			}
			if got.Name != tt.want {
				t.Errorf("got %q, want %q", got.Name, tt.want)
			}
		})
	}
}

func TestFindFirstMatchWins(t *testing.T) {
	l := NewList([]Type{
		{Name: "first", CorridorNS: true},
		{Name: "second", CorridorNS: true},
	})
	got, ok := l.CorridorNS()
	if !ok || got.Name != "first" {
		t.Errorf("CorridorNS() = %q, %v; want first", got.Name, ok)
	}
}

func TestGetAndHas(t *testing.T) {
	l := Default()
	if !l.Has(NameBossRoom) {
		t.Error("Default should contain the boss room")
	}
	if l.Has("Kitchen") {
		t.Error("unexpected type Kitchen")
	}
	boss, _ := l.Get(NameBossRoom)
	if !IsBossRoom(boss) {
		t.Error("boss room flag not set")
	}
}

func TestDisplayed(t *testing.T) {
	names := Default().Displayed()
	if slices.Contains(names, NameCorridorNS) || slices.Contains(names, NameNone) {
		t.Errorf("Displayed() leaked internal types: %v", names)
	}
	if !slices.Contains(names, NameCorridor) {
		t.Errorf("Displayed() missing generic corridor: %v", names)
	}
}

func TestTypesIsCopy(t *testing.T) {
	l := Default()
	types := l.Types()
	types[0].Name = "mutated"
	if l.Types()[0].Name == "mutated" {
		t.Error("Types() exposed internal slice")
	}
}
