package robot

import "fmt"

// Node is a travel tree node. Each child is reached from its parent by a
// single step in the direction it is stored under.
type Node struct {
	coordinate Coordinate
	children   [4]*Node
}

// NewNode creates a childless node at c.
func NewNode(c Coordinate) *Node {
	return &Node{coordinate: c}
}

// Coordinate returns the node's position.
func (n *Node) Coordinate() Coordinate {
	return n.coordinate
}

// Child returns the child reached by moving in d, or nil.
func (n *Node) Child(d Direction) *Node {
	if !d.Valid() {
		return nil
	}
	return n.children[d]
}

// SetChild attaches child under direction d.
// It panics if d is not a cardinal direction, if child is nil or if a child
// is already attached under d.
func (n *Node) SetChild(d Direction, child *Node) {
	if !d.Valid() {
		panic(fmt.Sprintf("robot: invalid child direction %d", d))
	}
	if child == nil {
		panic("robot: nil child")
	}
	if n.children[d] != nil {
		panic(fmt.Sprintf("robot: child %s of %s already set", d, n.coordinate))
	}
	n.children[d] = child
}

// Walk visits n and its descendants depth first in canonical direction order.
// depth is 0 for n.
func (n *Node) Walk(fn func(node *Node, depth int)) {
	n.walk(fn, 0)
}

func (n *Node) walk(fn func(*Node, int), depth int) {
	fn(n, depth)
	for _, d := range Directions {
		if c := n.children[d]; c != nil {
			c.walk(fn, depth+1)
		}
	}
}

// Size returns the number of nodes in the subtree rooted at n.
func (n *Node) Size() int {
	size := 0
	n.Walk(func(*Node, int) { size++ })
	return size
}
