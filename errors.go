package astar

import (
	"errors"
	"fmt"
)

var (
	// ErrOutOfBounds is returned when a start or end position lies outside the grid.
	ErrOutOfBounds = errors.New("position out of bounds")
	// ErrInvalidDimensions is returned for grids with a non-positive width or height.
	ErrInvalidDimensions = errors.New("invalid grid dimensions")
	// ErrEmptyFrontier is returned when extracting from an empty frontier.
	ErrEmptyFrontier = errors.New("frontier is empty")
	// ErrDisconnectedPath means a parent chain did not lead back to the start
	// node. It is a broken invariant, not a search outcome.
	ErrDisconnectedPath = errors.New("parent chain does not reach the start node")
	// ErrNoPath is returned by Search when the frontier is exhausted.
	ErrNoPath = errors.New("no path found")
)

// OutOfBoundsError carries the offending endpoint.
type OutOfBoundsError struct {
	Role     string // "start" or "end"
	Position Position
	Width    int
	Height   int
}

func (e *OutOfBoundsError) Error() string {
	return fmt.Sprintf("%s %s outside %dx%d grid", e.Role, e.Position, e.Width, e.Height)
}

func (e *OutOfBoundsError) Unwrap() error { return ErrOutOfBounds }
