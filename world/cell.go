package world

// Cell is a single square of the world grid.
type Cell struct {
	Occupied bool // Occupied indicates the cell blocks movement.
	Visits   uint // Visits counts how many times the robot entered the cell.
}

// IsOccupied returns true if the cell blocks movement.
func (c *Cell) IsOccupied() bool {
	return c.Occupied
}

// IsVisited returns true if the robot has entered the cell at least once.
func (c *Cell) IsVisited() bool {
	return c.Visits > 0
}

// NumVisits returns how many times the robot entered the cell.
func (c *Cell) NumVisits() uint {
	return c.Visits
}

// CellPosition represents the position of a cell in the world grid.
type CellPosition struct {
	Row int // Row index of the cell
	Col int // Column index of the cell
}
