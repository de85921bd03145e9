// Package render draws search progress as text or PNG. It only consumes the
// dirty node buffer and never influences the search.
package render

import (
	"fmt"
	"image/color"

	astar "github.com/pdrpinto/gridastar"
)

// Canvas keeps the last known role of every cell.
type Canvas struct {
	width, height int
	terrain       astar.Terrain
	start, end    astar.Position
	roles         []astar.Role
}

// NewCanvas returns a canvas for a run over terrain.
func NewCanvas(terrain astar.Terrain, start, end astar.Position) *Canvas {
	w, h := terrain.Size()
	return &Canvas{
		width:   w,
		height:  h,
		terrain: terrain,
		start:   start,
		end:     end,
		roles:   make([]astar.Role, w*h),
	}
}

// Apply records dirty notifications. A path cell keeps its role.
func (c *Canvas) Apply(dirty []astar.DirtyNode) {
	for _, d := range dirty {
		i, ok := c.index(d.Position)
		if !ok || c.roles[i] == astar.RolePath {
			continue
		}
		c.roles[i] = d.Role
	}
}

// Role returns the recorded role at p.
func (c *Canvas) Role(p astar.Position) astar.Role {
	if i, ok := c.index(p); ok {
		return c.roles[i]
	}
	return astar.RoleNone
}

func (c *Canvas) Size() (int, int) { return c.width, c.height }

func (c *Canvas) index(p astar.Position) (int, bool) {
	if p.X < 0 || p.X >= c.width || p.Y < 0 || p.Y >= c.height {
		return 0, false
	}
	return p.Y*c.width + p.X, true
}

type cellKind int

const (
	cellFree cellKind = iota
	cellWall
	cellStart
	cellEnd
	cellFrontier
	cellExpanded
	cellPath
)

func (c *Canvas) kind(p astar.Position) cellKind {
	switch {
	case p == c.start:
		return cellStart
	case p == c.end:
		return cellEnd
	case !c.terrain.Traversable(p):
		return cellWall
	}
	switch c.Role(p) {
	case astar.RoleFrontier:
		return cellFrontier
	case astar.RoleExpanded:
		return cellExpanded
	case astar.RolePath:
		return cellPath
	}
	return cellFree
}

var palette = map[cellKind]color.RGBA{
	cellFree:     {0, 0, 0, 255},
	cellWall:     {255, 255, 255, 255},
	cellStart:    {0, 200, 0, 255},
	cellEnd:      {150, 0, 0, 255},
	cellFrontier: {0, 255, 0, 255},
	cellExpanded: {255, 0, 0, 255},
	cellPath:     {0, 0, 255, 255},
}

func hex(c color.RGBA) string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}
