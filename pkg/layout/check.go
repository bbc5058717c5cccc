package layout

import (
	"errors"
	"fmt"

	"github.com/matzehuels/dungeonforge/pkg/room"
)

var (
	// ErrOverlap is reported when two rooms share a tile.
	ErrOverlap = errors.New("rooms overlap")

	// ErrEntrance is reported when the layout does not have exactly one
	// positioned, visited entrance.
	ErrEntrance = errors.New("layout must have exactly one entrance")

	// ErrDisconnected is reported when a room is not joined to its parent
	// through exactly one doorway pair.
	ErrDisconnected = errors.New("room is not connected to its parent")
)

// Check verifies the structural guarantees of l and returns every violation
// joined with errors.Join.
func Check(l *Layout) error {
	var errs []error
	rooms := l.InOrder()

	for i, a := range rooms {
		if !a.Positioned {
			errs = append(errs, fmt.Errorf("room %s is not positioned", a.ID))
		}
		for _, b := range rooms[i+1:] {
			if a.Overlaps(b) {
				errs = append(errs, fmt.Errorf("%w: %s %s and %s %s", ErrOverlap, a.ID, a.Bounds(), b.ID, b.Bounds()))
			}
		}
	}

	entrances := 0
	for _, r := range rooms {
		if !r.IsEntrance() {
			continue
		}
		entrances++
		if !r.PreviouslyVisited {
			errs = append(errs, fmt.Errorf("%w: %s not marked visited", ErrEntrance, r.ID))
		}
	}
	if entrances != 1 {
		errs = append(errs, fmt.Errorf("%w: found %d", ErrEntrance, entrances))
	}

	for _, r := range rooms {
		if r.IsEntrance() {
			continue
		}
		parent, ok := l.Rooms[r.ParentID]
		if !ok {
			errs = append(errs, fmt.Errorf("%w: %s parent %s missing", ErrDisconnected, r.ID, r.ParentID))
			continue
		}
		if n := links(parent, r); n != 1 {
			errs = append(errs, fmt.Errorf("%w: %s has %d doorway links to %s", ErrDisconnected, r.ID, n, parent.ID))
		}
	}

	return errors.Join(errs...)
}

// links counts connected doorway pairs joining parent and child. A pair
// counts when the doorways face each other and the child doorway sits one
// tile inward from the parent doorway.
func links(parent, child *room.Room) int {
	n := 0
	for _, ci := range child.ConnectedDoorways() {
		cd := child.Doorways[ci]
		cw := child.DoorwayWorld(ci)
		for _, pi := range parent.ConnectedDoorways() {
			pd := parent.Doorways[pi]
			if pd.Orientation.Opposite() != cd.Orientation {
				continue
			}
			if parent.DoorwayWorld(pi).Add(cd.Orientation.Inward()) == cw {
				n++
			}
		}
	}
	return n
}
