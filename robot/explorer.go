package robot

import (
	"errors"
	"fmt"
	"io"

	"github.com/sirupsen/logrus"
)

var (
	// ErrCapability wraps any scan or move failure reported by the
	// sensing/actuation capability. The run cannot continue after it.
	ErrCapability = errors.New("capability failure")

	// ErrAlreadyExplored is returned when Explore is called twice on the same Explorer.
	ErrAlreadyExplored = errors.New("explorer already ran")
)

// Scanner reports the occupancy of the cell adjacent to the robot's true position.
type Scanner interface {
	Scan(d Direction) (CellState, error)
}

// Mover steps the robot one cell in a direction.
// It is only valid right after a scan in that direction reported Unblocked.
type Mover interface {
	Move(d Direction) error
}

// Options configures an Explorer.
type Options struct {
	Start  Coordinate         // Coordinate assigned to the robot's landing cell
	Logger logrus.FieldLogger // Receives a debug trace of the traversal
}

// Stats summarises a finished run.
type Stats struct {
	Scans    int // Scan requests issued
	Moves    int // Move requests issued, backtracking included
	Visited  int // Distinct coordinates visited
	MaxDepth int // Deepest travel tree level reached
}

// Result is the outcome of a completed exploration.
type Result struct {
	Root   *Node   // Depth-first spanning tree of the reachable region
	Ledger *Ledger // Every coordinate discovered during the run
	Stats  Stats
}

// Explorer runs a single depth-first exploration against a capability.
type Explorer struct {
	scanner Scanner
	mover   Mover
	start   Coordinate
	logger  logrus.FieldLogger

	ledger *Ledger
	root   *Node
	stats  Stats
	done   bool
}

// NewExplorer creates an Explorer driving the given scanner and mover.
// opts may be nil.
func NewExplorer(scanner Scanner, mover Mover, opts *Options) *Explorer {
	e := &Explorer{
		scanner: scanner,
		mover:   mover,
	}

	if opts != nil {
		e.start = opts.Start
		e.logger = opts.Logger
	}

	if e.logger == nil {
		l := logrus.New()
		l.SetOutput(io.Discard)
		e.logger = l
	}

	return e
}

// Explore traverses everything reachable from the start cell and brings the
// robot back to it. The returned Result owns the ledger and tree of the run.
func (e *Explorer) Explore() (*Result, error) {
	if e.done {
		return nil, ErrAlreadyExplored
	}
	e.done = true

	e.ledger = NewLedger()
	e.root = NewNode(e.start)
	e.stats = Stats{}

	e.logger.WithField("start", e.start).Debug("exploration started")
	if err := e.step(e.root, None, 0); err != nil {
		return nil, err
	}

	e.stats.Visited = e.ledger.Visited()
	e.logger.WithFields(logrus.Fields{
		"visited": e.stats.Visited,
		"moves":   e.stats.Moves,
		"scans":   e.stats.Scans,
	}).Debug("exploration finished")

	return &Result{Root: e.root, Ledger: e.ledger, Stats: e.stats}, nil
}

// step explores node, which the robot has just entered by moving in arrival.
func (e *Explorer) step(node *Node, arrival Direction, depth int) error {
	e.stats.MaxDepth = max(e.stats.MaxDepth, depth)
	e.ledger.MarkVisited(node.Coordinate())

	cameFrom := arrival.Opposite()

	for _, d := range Directions {
		if d == cameFrom {
			continue
		}

		state, err := e.scan(d)
		if err != nil {
			return err
		}

		neighbor := node.Coordinate().Neighbor(d)
		if state == Blocked || e.ledger.IsKnown(neighbor) {
			continue
		}

		node.SetChild(d, NewNode(neighbor))
		e.ledger.MarkDiscovered(neighbor)
	}

	for _, d := range Directions {
		child := node.Child(d)
		if child == nil || e.ledger.IsVisited(child.Coordinate()) {
			continue
		}

		e.logger.WithFields(logrus.Fields{
			"from":      node.Coordinate(),
			"to":        child.Coordinate(),
			"direction": d,
		}).Debug("descending")

		if err := e.move(d); err != nil {
			return err
		}
		if err := e.step(child, d, depth+1); err != nil {
			return err
		}
	}

	if arrival == None {
		return nil
	}

	e.logger.WithFields(logrus.Fields{
		"from":      node.Coordinate(),
		"direction": cameFrom,
	}).Debug("backtracking")

	return e.move(cameFrom)
}

func (e *Explorer) scan(d Direction) (CellState, error) {
	e.stats.Scans++
	state, err := e.scanner.Scan(d)
	if err != nil {
		return Blocked, fmt.Errorf("%w: scan %s: %w", ErrCapability, d, err)
	}
	return state, nil
}

func (e *Explorer) move(d Direction) error {
	e.stats.Moves++
	if err := e.mover.Move(d); err != nil {
		return fmt.Errorf("%w: move %s: %w", ErrCapability, d, err)
	}
	return nil
}
