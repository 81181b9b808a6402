package robot

// Ledger records every coordinate the robot has learned about and whether it
// has physically stood on it. It only grows during a run.
type Ledger struct {
	entries map[Key]bool
	visited int
}

// NewLedger returns an empty ledger.
func NewLedger() *Ledger {
	return &Ledger{entries: make(map[Key]bool)}
}

// IsKnown reports whether c was discovered or visited before.
func (l *Ledger) IsKnown(c Coordinate) bool {
	_, ok := l.entries[KeyOf(c)]
	return ok
}

// IsVisited reports whether the robot has stood on c.
func (l *Ledger) IsVisited(c Coordinate) bool {
	return l.entries[KeyOf(c)]
}

// MarkDiscovered records c as known but not yet visited.
// It is a no-op when c is already known, so a visited cell is never demoted.
func (l *Ledger) MarkDiscovered(c Coordinate) {
	k := KeyOf(c)
	if _, ok := l.entries[k]; ok {
		return
	}
	l.entries[k] = false
}

// MarkVisited records c as visited. Marking twice is a no-op.
func (l *Ledger) MarkVisited(c Coordinate) {
	k := KeyOf(c)
	if l.entries[k] {
		return
	}
	l.entries[k] = true
	l.visited++
}

// Len returns the number of known coordinates.
func (l *Ledger) Len() int {
	return len(l.entries)
}

// Visited returns the number of visited coordinates.
func (l *Ledger) Visited() int {
	return l.visited
}
