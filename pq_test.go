package astar

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func scored(p Position, f int) *SearchNode {
	n := NewSearchNode(p, nil)
	n.SetG(f)
	n.SetF(f)
	return n
}

func TestOpenFrontier_ExtractMinIsStable(t *testing.T) {
	f := NewOpenFrontier()
	f.Insert(scored(Pos(0, 0), 5))
	f.Insert(scored(Pos(1, 0), 3))
	f.Insert(scored(Pos(2, 0), 3))
	f.Insert(scored(Pos(3, 0), 1))
	f.Insert(scored(Pos(4, 0), 3))

	var order []Position
	for f.Len() > 0 {
		n, err := f.ExtractMin()
		require.NoError(t, err)
		order = append(order, n.Position())
	}
	assert.Equal(t, []Position{{3, 0}, {1, 0}, {2, 0}, {4, 0}, {0, 0}}, order)
}

func TestOpenFrontier_ExtractMinEmpty(t *testing.T) {
	f := NewOpenFrontier()
	_, err := f.ExtractMin()
	assert.ErrorIs(t, err, ErrEmptyFrontier)
}

func TestOpenFrontier_Accepts(t *testing.T) {
	f := NewOpenFrontier()
	f.Insert(scored(Pos(2, 2), 5))

	assert.False(t, f.Accepts(scored(Pos(2, 2), 5)), "equal f is dominated")
	assert.False(t, f.Accepts(scored(Pos(2, 2), 6)), "worse f is dominated")
	assert.True(t, f.Accepts(scored(Pos(2, 2), 4)), "cheaper f relaxes")
	assert.True(t, f.Accepts(scored(Pos(2, 3), 9)), "other positions are independent")
}

func TestOpenFrontier_DuplicatesTrackedPerPosition(t *testing.T) {
	f := NewOpenFrontier()
	f.Insert(scored(Pos(1, 1), 7))
	f.Insert(scored(Pos(1, 1), 4))
	assert.Equal(t, 2, f.Len())
	assert.Len(t, f.Positions(), 1)

	n, err := f.ExtractMin()
	require.NoError(t, err)
	assert.Equal(t, 4, n.F())
	assert.True(t, f.Contains(Pos(1, 1)))
	assert.True(t, f.Accepts(scored(Pos(1, 1), 6)))

	_, err = f.ExtractMin()
	require.NoError(t, err)
	assert.False(t, f.Contains(Pos(1, 1)))
	assert.Empty(t, f.Positions())
}

func TestClosedSet(t *testing.T) {
	c := NewClosedSet()
	assert.False(t, c.Contains(Pos(0, 0)))

	c.Add(NewSearchNode(Pos(0, 0), nil))
	c.Add(NewSearchNode(Pos(1, 0), nil))
	c.Add(NewSearchNode(Pos(0, 0), nil))

	assert.True(t, c.Contains(Pos(0, 0)))
	assert.Equal(t, 2, c.Len())
	assert.Equal(t, []Position{{0, 0}, {1, 0}}, c.Positions())
}
