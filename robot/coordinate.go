package robot

import "fmt"

// Key is the ledger lookup key derived from a Coordinate.
type Key uint64

// Coordinate is a position in the robot's own frame of reference.
// Up decreases Y, Down increases Y, Left decreases X and Right increases X.
type Coordinate struct {
	X int32 // Column offset
	Y int32 // Row offset
}

// KeyOf packs the low 32 bits of x into the high half of the key and the low
// 32 bits of y into the low half. Neither axis is sign-extended, so the
// mapping is injective over the whole int32 range of both axes.
func KeyOf(c Coordinate) Key {
	return Key(uint64(uint32(c.X))<<32 | uint64(uint32(c.Y)))
}

// Key returns KeyOf(c).
func (c Coordinate) Key() Key {
	return KeyOf(c)
}

// Neighbor returns the coordinate one step away in direction d.
// An invalid direction returns c unchanged.
func (c Coordinate) Neighbor(d Direction) Coordinate {
	switch d {
	case Up:
		return Coordinate{X: c.X, Y: c.Y - 1}
	case Down:
		return Coordinate{X: c.X, Y: c.Y + 1}
	case Left:
		return Coordinate{X: c.X - 1, Y: c.Y}
	case Right:
		return Coordinate{X: c.X + 1, Y: c.Y}
	default:
		return c
	}
}

func (c Coordinate) String() string {
	return fmt.Sprintf("(%d,%d)", c.X, c.Y)
}
