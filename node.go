package astar

import "fmt"

// Position is an immutable pair of grid coordinates. It is the identity key of
// a SearchNode.
type Position struct {
	X int `json:"x" yaml:"x"`
	Y int `json:"y" yaml:"y"`
}

// Pos is shorthand for Position{X: x, Y: y}.
func Pos(x, y int) Position { return Position{X: x, Y: y} }

// Add returns the position translated by d.
func (p Position) Add(d Position) Position { return Position{X: p.X + d.X, Y: p.Y + d.Y} }

func (p Position) String() string { return fmt.Sprintf("(%d, %d)", p.X, p.Y) }

// Manhattan returns |a.x-b.x| + |a.y-b.y|.
func Manhattan(a, b Position) int {
	return abs(a.X-b.X) + abs(a.Y-b.Y)
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

// Role is the visual role of a cell, carried on dirty node notifications.
type Role uint8

const (
	RoleNone Role = iota
	RoleFrontier
	RoleExpanded
	RolePath
)

func (r Role) String() string {
	switch r {
	case RoleFrontier:
		return "frontier"
	case RoleExpanded:
		return "expanded"
	case RolePath:
		return "path"
	}
	return "none"
}

// MarshalText lets roles travel as strings in JSON snapshots.
func (r Role) MarshalText() ([]byte, error) { return []byte(r.String()), nil }

// SearchNode is the per-cell search state. Two nodes with the same position are
// the same node for membership tests, whatever their costs.
type SearchNode struct {
	position    Position
	parent      *SearchNode
	g, h, f     int
	traversable bool
	role        Role
}

// NewSearchNode returns a traversable node at pos with the given parent.
func NewSearchNode(pos Position, parent *SearchNode) *SearchNode {
	return &SearchNode{position: pos, parent: parent, traversable: true}
}

func (n *SearchNode) Position() Position { return n.position }
func (n *SearchNode) Parent() *SearchNode { return n.parent }
func (n *SearchNode) G() int { return n.g }
func (n *SearchNode) H() int { return n.h }
func (n *SearchNode) F() int { return n.f }
func (n *SearchNode) Traversable() bool { return n.traversable }
func (n *SearchNode) Role() Role { return n.role }
func (n *SearchNode) SetParent(p *SearchNode) { n.parent = p }
func (n *SearchNode) SetG(g int) { n.g = g }
func (n *SearchNode) SetH(h int) { n.h = h }
func (n *SearchNode) SetF(f int) { n.f = f }
func (n *SearchNode) SetTraversable(t bool) { n.traversable = t }
func (n *SearchNode) SetRole(r Role) { n.role = r }

// Equal reports whether both nodes sit on the same position.
func (n *SearchNode) Equal(other *SearchNode) bool {
	return other != nil && n.position == other.position
}

// Less orders nodes by total estimated cost.
func (n *SearchNode) Less(other *SearchNode) bool { return n.f < other.f }

func (n *SearchNode) String() string { return "Node: " + n.position.String() }

// DirtyNode notifies a renderer that the cell at Position took a new Role.
type DirtyNode struct {
	Position Position `json:"position"`
	Role     Role     `json:"role"`
}
