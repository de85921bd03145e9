package astar

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSearchNode_EqualityIsByPosition(t *testing.T) {
	a := NewSearchNode(Pos(3, 4), nil)
	b := NewSearchNode(Pos(3, 4), a)
	b.SetG(7)
	b.SetH(2)
	b.SetF(9)

	assert.True(t, a.Equal(b))
	assert.False(t, a.Equal(NewSearchNode(Pos(4, 3), nil)))
	assert.False(t, a.Equal(nil))
}

func TestSearchNode_LessComparesF(t *testing.T) {
	cheap := NewSearchNode(Pos(0, 0), nil)
	cheap.SetF(3)
	dear := NewSearchNode(Pos(0, 0), nil)
	dear.SetF(4)

	assert.True(t, cheap.Less(dear))
	assert.False(t, dear.Less(cheap))
	assert.False(t, cheap.Less(cheap))
}

func TestSearchNode_Setters(t *testing.T) {
	parent := NewSearchNode(Pos(1, 1), nil)
	n := NewSearchNode(Pos(1, 2), nil)
	assert.True(t, n.Traversable())

	n.SetParent(parent)
	n.SetTraversable(false)
	n.SetRole(RoleExpanded)

	assert.Same(t, parent, n.Parent())
	assert.False(t, n.Traversable())
	assert.Equal(t, RoleExpanded, n.Role())
	assert.Equal(t, "Node: (1, 2)", n.String())
}

func TestManhattan(t *testing.T) {
	assert.Equal(t, 0, Manhattan(Pos(2, 2), Pos(2, 2)))
	assert.Equal(t, 19, Manhattan(Pos(10, 10), Pos(23, 16)))
	assert.Equal(t, 19, Manhattan(Pos(23, 16), Pos(10, 10)))
}

func TestRole_String(t *testing.T) {
	assert.Equal(t, "frontier", RoleFrontier.String())
	assert.Equal(t, "expanded", RoleExpanded.String())
	assert.Equal(t, "path", RolePath.String())
	assert.Equal(t, "none", RoleNone.String())
}
