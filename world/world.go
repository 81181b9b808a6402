/*
Package world provides the bounded grid the robot explores.

A World is a rectangle of cells, each either occupied or free, surrounded by
a ring of occupied border cells. Worlds are generated randomly from an
ObstacleModel or parsed from a textual layout. Every cell counts the visits
the robot pays it, and String renders the grid together with those counts.
*/
package world

import (
	"errors"
	"fmt"
	"math/rand"
	"strings"
)

const (
	maxWorldDimension = 512

	blockedGlyph = '#'
	manyGlyph    = '+'
)

var (
	ErrInvalidDimensions = errors.New("invalid world dimensions")
	ErrOutOfBounds       = errors.New("position out of the world")
	ErrOccupied          = errors.New("cell is occupied")
	ErrInvalidLayout     = errors.New("invalid world layout")
)

// World is a rectangular grid of cells. Width and Height include the border ring.
type World struct {
	Width    int       // Width of the grid (number of columns)
	Height   int       // Height of the grid (number of rows)
	Grid     [][]*Cell // 2D grid of cells, indexed [row][col]
	Bordered bool      // Bordered is set when the outer ring is always occupied
}

// New generates a world with a width x height interior surrounded by an
// occupied border, populating the interior with obstacles from model.
func New(width, height int, model ObstacleModel, rng *rand.Rand) (*World, error) {
	if min(width, height) <= 0 || max(width, height) > maxWorldDimension {
		return nil, fmt.Errorf("%w: %dx%d", ErrInvalidDimensions, width, height)
	}

	w := blank(width+2, height+2)
	w.Bordered = true
	if err := PopulateObstacles(model, w, rng); err != nil {
		return nil, err
	}
	return w, nil
}

// FromLayout builds a world from rows of text. '#' marks an occupied cell,
// any other character a free one. No border is added: positions outside
// the rows are simply out of bounds.
func FromLayout(rows []string) (*World, error) {
	if len(rows) == 0 || len(rows[0]) == 0 {
		return nil, fmt.Errorf("%w: empty layout", ErrInvalidLayout)
	}

	w := blank(len(rows[0]), len(rows))
	for row, line := range rows {
		if len(line) != w.Width {
			return nil, fmt.Errorf("%w: row %d has %d columns, want %d", ErrInvalidLayout, row, len(line), w.Width)
		}
		for col, ch := range []byte(line) {
			w.Grid[row][col].Occupied = ch == blockedGlyph
		}
	}
	return w, nil
}

// blank allocates a grid of free cells.
func blank(width, height int) *World {
	grid := make([][]*Cell, height)
	for i := range grid {
		grid[i] = make([]*Cell, width)
		for j := range grid[i] {
			grid[i][j] = &Cell{}
		}
	}

	return &World{
		Width:  width,
		Height: height,
		Grid:   grid,
	}
}

// InBound reports whether the position lies inside the grid.
func (w *World) InBound(row, col int) bool {
	return row >= 0 && row < w.Height && col >= 0 && col < w.Width
}

// IsBorder reports whether pos lies on the occupied ring of a generated world.
// Layout worlds have no ring.
func (w *World) IsBorder(pos CellPosition) bool {
	return w.Bordered && w.InBound(pos.Row, pos.Col) && isBorder(pos.Row, pos.Col, w.Width, w.Height)
}

// Center returns the position in the middle of the grid.
func (w *World) Center() CellPosition {
	return CellPosition{Row: w.Height / 2, Col: w.Width / 2}
}

// cell returns the cell at pos or ErrOutOfBounds.
func (w *World) cell(pos CellPosition) (*Cell, error) {
	if !w.InBound(pos.Row, pos.Col) {
		return nil, fmt.Errorf("%w: row %d col %d", ErrOutOfBounds, pos.Row, pos.Col)
	}
	return w.Grid[pos.Row][pos.Col], nil
}

// IsOccupied reports whether pos blocks movement. Positions outside the
// grid are treated as occupied.
func (w *World) IsOccupied(pos CellPosition) bool {
	c, err := w.cell(pos)
	if err != nil {
		return true
	}
	return c.IsOccupied()
}

// IsVisited reports whether the robot has entered pos.
func (w *World) IsVisited(pos CellPosition) bool {
	c, err := w.cell(pos)
	if err != nil {
		return false
	}
	return c.IsVisited()
}

// NumVisits returns the number of times the robot entered pos.
func (w *World) NumVisits(pos CellPosition) uint {
	c, err := w.cell(pos)
	if err != nil {
		return 0
	}
	return c.NumVisits()
}

// Visit records the robot entering pos.
func (w *World) Visit(pos CellPosition) error {
	c, err := w.cell(pos)
	if err != nil {
		return err
	}
	if c.IsOccupied() {
		return fmt.Errorf("%w: row %d col %d", ErrOccupied, pos.Row, pos.Col)
	}
	c.Visits++
	return nil
}

// Clear frees the cell at pos.
func (w *World) Clear(pos CellPosition) error {
	c, err := w.cell(pos)
	if err != nil {
		return err
	}
	c.Occupied = false
	return nil
}

// Reachable counts the free cells connected to start, start included.
// It returns 0 if start itself is occupied or out of bounds.
func (w *World) Reachable(start CellPosition) int {
	if w.IsOccupied(start) {
		return 0
	}

	deltas := []CellPosition{{-1, 0}, {1, 0}, {0, -1}, {0, 1}}
	visited := map[CellPosition]struct{}{start: {}}
	stack := []CellPosition{start}

	for len(stack) > 0 {
		cell := pop(&stack)
		for _, d := range deltas {
			nbr := CellPosition{Row: cell.Row + d.Row, Col: cell.Col + d.Col}
			if _, seen := visited[nbr]; seen || w.IsOccupied(nbr) {
				continue
			}
			visited[nbr] = struct{}{}
			stack = append(stack, nbr)
		}
	}

	return len(visited)
}

// VisitedCount returns the number of cells entered at least once.
func (w *World) VisitedCount() int {
	n := 0
	for _, row := range w.Grid {
		for _, c := range row {
			if c.IsVisited() {
				n++
			}
		}
	}
	return n
}

// pop removes and returns the last element of a stack of CellPositions.
func pop(s *[]CellPosition) CellPosition {
	lastIndex := len(*s) - 1
	popped := (*s)[lastIndex]
	*s = (*s)[:lastIndex]
	return popped
}

// String renders the grid: occupied cells as '#', visited cells as their
// visit count ('+' above nine) and untouched free cells as blanks.
func (w *World) String() string {
	var b strings.Builder
	b.Grow(w.Height * (w.Width + 1))

	for _, row := range w.Grid {
		for _, c := range row {
			b.WriteByte(glyph(c))
		}
		b.WriteByte('\n')
	}

	return b.String()
}

// Layout renders only the occupancy of the grid, ignoring visits.
func (w *World) Layout() string {
	var b strings.Builder
	for _, row := range w.Grid {
		for _, c := range row {
			if c.IsOccupied() {
				b.WriteByte(blockedGlyph)
			} else {
				b.WriteByte(' ')
			}
		}
		b.WriteByte('\n')
	}
	return b.String()
}

func glyph(c *Cell) byte {
	switch {
	case c.IsOccupied():
		return blockedGlyph
	case c.NumVisits() > 9:
		return manyGlyph
	case c.IsVisited():
		return byte('0' + c.NumVisits())
	default:
		return ' '
	}
}
