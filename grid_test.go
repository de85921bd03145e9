package astar

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewGrid_RejectsBadDimensions(t *testing.T) {
	for _, dims := range [][2]int{{0, 5}, {5, 0}, {-1, 3}} {
		_, err := NewGrid(dims[0], dims[1])
		assert.ErrorIs(t, err, ErrInvalidDimensions)
	}
}

func TestGrid_Traversability(t *testing.T) {
	g, err := NewGrid(4, 3)
	require.NoError(t, err)

	assert.True(t, g.InBounds(Pos(3, 2)))
	assert.False(t, g.InBounds(Pos(4, 2)))
	assert.False(t, g.InBounds(Pos(0, -1)))
	assert.True(t, g.Traversable(Pos(1, 1)))

	g.SetBlocked(Pos(1, 1), true)
	assert.False(t, g.Traversable(Pos(1, 1)))
	assert.False(t, g.Traversable(Pos(9, 9)))

	g.SetBlocked(Pos(9, 9), true) // ignored
	g.SetBlocked(Pos(1, 1), false)
	assert.True(t, g.Traversable(Pos(1, 1)))
	assert.Empty(t, g.Blocked())
}

func TestGrid_Walls(t *testing.T) {
	g, err := NewGrid(3, 3)
	require.NoError(t, err)

	g.WallColumn(1, 0, 2)
	assert.Equal(t, []Position{{1, 0}, {1, 1}, {1, 2}}, g.Blocked())

	g.WallRow(0, 0, 2)
	assert.Len(t, g.Blocked(), 5)
}
