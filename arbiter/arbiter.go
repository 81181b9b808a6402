// Package arbiter mediates between the robot and the world: it knows the
// robot's true position and answers scan and move requests against the grid.
package arbiter

import (
	"errors"
	"fmt"
	"io"

	"github.com/dpersh/robot/robot"
	"github.com/dpersh/robot/world"
	"github.com/sirupsen/logrus"
)

var (
	ErrInvalidMove      = errors.New("invalid move request")
	ErrInvalidDirection = errors.New("invalid direction")
)

var deltas = map[robot.Direction]world.CellPosition{
	robot.Up:    {Row: -1, Col: 0},
	robot.Down:  {Row: 1, Col: 0},
	robot.Left:  {Row: 0, Col: -1},
	robot.Right: {Row: 0, Col: 1},
}

var (
	_ robot.Scanner = &Arbiter{}
	_ robot.Mover   = &Arbiter{}
)

// Arbiter implements robot.Scanner and robot.Mover over a world.World.
type Arbiter struct {
	world   *world.World
	pos     world.CellPosition
	cleared map[world.CellPosition]struct{} // Cells confirmed passable by a scan or a visit
	logger  logrus.FieldLogger
}

// New lands the robot on pos and records the landing as a visit.
// A nil logger discards output.
func New(w *world.World, pos world.CellPosition, logger logrus.FieldLogger) (*Arbiter, error) {
	if err := w.Visit(pos); err != nil {
		return nil, fmt.Errorf("landing robot: %w", err)
	}

	if logger == nil {
		l := logrus.New()
		l.SetOutput(io.Discard)
		logger = l
	}

	return &Arbiter{
		world:   w,
		pos:     pos,
		cleared: map[world.CellPosition]struct{}{pos: {}},
		logger:  logger,
	}, nil
}

// Position returns the robot's true position.
func (a *Arbiter) Position() world.CellPosition {
	return a.pos
}

// Scan reports whether the cell next to the robot in direction d is free.
// The grid boundary counts as blocked.
func (a *Arbiter) Scan(d robot.Direction) (robot.CellState, error) {
	target, err := a.target(d)
	if err != nil {
		return robot.Blocked, err
	}

	if a.world.IsOccupied(target) {
		return robot.Blocked, nil
	}

	a.cleared[target] = struct{}{}
	return robot.Unblocked, nil
}

// Move steps the robot one cell in direction d. The destination must have
// been scanned Unblocked before or already be known from an earlier visit.
func (a *Arbiter) Move(d robot.Direction) error {
	target, err := a.target(d)
	if err != nil {
		return err
	}

	if _, ok := a.cleared[target]; !ok {
		a.logger.WithFields(logrus.Fields{
			"row":       a.pos.Row,
			"col":       a.pos.Col,
			"direction": d,
		}).Error("move without clearing scan")
		return fmt.Errorf("%w: %s from row %d col %d was not scanned clear", ErrInvalidMove, d, a.pos.Row, a.pos.Col)
	}

	if err := a.world.Visit(target); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidMove, err)
	}

	a.pos = target
	return nil
}

func (a *Arbiter) target(d robot.Direction) (world.CellPosition, error) {
	delta, ok := deltas[d]
	if !ok {
		return world.CellPosition{}, fmt.Errorf("%w: %d", ErrInvalidDirection, d)
	}
	return world.CellPosition{Row: a.pos.Row + delta.Row, Col: a.pos.Col + delta.Col}, nil
}
