package astar

import "fmt"

// Terrain is the traversability source a Stepper searches over.
type Terrain interface {
	// Size returns the grid width and height.
	Size() (width, height int)
	// Traversable reports whether p may be entered. Only called for
	// positions inside the bounds.
	Traversable(p Position) bool
}

// Grid is a rectangular boolean traversability map. The zero value is not
// usable; build one with NewGrid.
type Grid struct {
	width, height int
	blocked       []bool
}

// NewGrid returns an all-traversable grid.
func NewGrid(width, height int) (*Grid, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("%w: %dx%d", ErrInvalidDimensions, width, height)
	}
	return &Grid{width: width, height: height, blocked: make([]bool, width*height)}, nil
}

func (g *Grid) Size() (int, int) { return g.width, g.height }
func (g *Grid) Width() int { return g.width }
func (g *Grid) Height() int { return g.height }

// InBounds reports whether p lies inside the grid.
func (g *Grid) InBounds(p Position) bool {
	return inBounds(g, p)
}

func (g *Grid) Traversable(p Position) bool {
	return g.InBounds(p) && !g.blocked[p.Y*g.width+p.X]
}

// SetBlocked marks p as an obstacle (or clears it). Out of range positions
// are ignored.
func (g *Grid) SetBlocked(p Position, blocked bool) {
	if g.InBounds(p) {
		g.blocked[p.Y*g.width+p.X] = blocked
	}
}

// Blocked returns every obstacle in row-major order.
func (g *Grid) Blocked() []Position {
	var res []Position
	for i, b := range g.blocked {
		if b {
			res = append(res, Position{X: i % g.width, Y: i / g.width})
		}
	}
	return res
}

// WallColumn blocks x for every row in [fromY, toY].
func (g *Grid) WallColumn(x, fromY, toY int) {
	for y := fromY; y <= toY; y++ {
		g.SetBlocked(Position{X: x, Y: y}, true)
	}
}

// WallRow blocks y for every column in [fromX, toX].
func (g *Grid) WallRow(y, fromX, toX int) {
	for x := fromX; x <= toX; x++ {
		g.SetBlocked(Position{X: x, Y: y}, true)
	}
}

func inBounds(t Terrain, p Position) bool {
	w, h := t.Size()
	return p.X >= 0 && p.X < w && p.Y >= 0 && p.Y < h
}
