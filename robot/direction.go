package robot

// Direction is one of the four cardinal directions the robot can scan or move in.
type Direction int

const (
	Up Direction = iota
	Down
	Left
	Right

	// None is the arrival direction of the root node. Nothing is skipped
	// during its discovery pass and no backtrack move is issued for it.
	None Direction = -1
)

// Directions lists the cardinal directions in canonical order.
// Discovery and descent both iterate in this order.
var Directions = [4]Direction{Up, Down, Left, Right}

// Opposite returns the direction that undoes a step in d.
func (d Direction) Opposite() Direction {
	switch d {
	case Up:
		return Down
	case Down:
		return Up
	case Left:
		return Right
	case Right:
		return Left
	default:
		return None
	}
}

// Valid reports whether d is one of the four cardinal directions.
func (d Direction) Valid() bool {
	return d >= Up && d <= Right
}

func (d Direction) String() string {
	switch d {
	case Up:
		return "Up"
	case Down:
		return "Down"
	case Left:
		return "Left"
	case Right:
		return "Right"
	default:
		return "None"
	}
}

// CellState is the result of scanning a neighbouring cell.
type CellState int

const (
	Blocked CellState = iota
	Unblocked
)

func (s CellState) String() string {
	if s == Unblocked {
		return "Unblocked"
	}
	return "Blocked"
}
