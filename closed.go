package astar

// ClosedSet records expanded positions. Membership is permanent for a run.
type ClosedSet struct {
	nodes map[Position]*SearchNode
	order []Position
}

func NewClosedSet() *ClosedSet {
	return &ClosedSet{nodes: make(map[Position]*SearchNode)}
}

func (c *ClosedSet) Contains(p Position) bool {
	_, ok := c.nodes[p]
	return ok
}

// Add closes the node's position. Adding an already closed position keeps the
// first node.
func (c *ClosedSet) Add(node *SearchNode) {
	if c.Contains(node.position) {
		return
	}
	c.nodes[node.position] = node
	c.order = append(c.order, node.position)
}

func (c *ClosedSet) Len() int { return len(c.order) }

// Positions returns closed positions in expansion order.
func (c *ClosedSet) Positions() []Position {
	return append([]Position(nil), c.order...)
}
