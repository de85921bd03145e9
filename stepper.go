package astar

import (
	"fmt"
	"log/slog"

	"github.com/pdrpinto/gridastar/internal"
)

// Outcome is the state of a Stepper.
type Outcome int

const (
	OutcomeRunning Outcome = iota
	OutcomeSucceeded
	OutcomeFailed
)

func (o Outcome) String() string {
	switch o {
	case OutcomeSucceeded:
		return "succeeded"
	case OutcomeFailed:
		return "failed"
	}
	return "running"
}

// MarshalText lets outcomes travel as strings in JSON snapshots.
func (o Outcome) MarshalText() ([]byte, error) { return []byte(o.String()), nil }

// StepOutcome is what a single Step reports. Path is only set on success.
type StepOutcome struct {
	Outcome Outcome
	Path    []Position
}

// StepSnapshot exposes the per-iteration state of the search
type StepSnapshot struct {
	Current   Position   `json:"current"`
	Start     Position   `json:"start"`
	End       Position   `json:"end"`
	Open      []Position `json:"open,omitempty"`
	Closed    []Position `json:"closed,omitempty"`
	Outcome   Outcome    `json:"outcome"`
	Done      bool       `json:"done"`
	Found     bool       `json:"found"`
	Path      []Position `json:"path,omitempty"`
	StepIndex int        `json:"step"`
}

var (
	orthogonalOffsets = []Position{{-1, 0}, {1, 0}, {0, -1}, {0, 1}}
	diagonalOffsets   = []Position{{-1, -1}, {1, -1}, {-1, 1}, {1, 1}}
)

// Stepper is the search engine. It advances one expansion per Step call and
// never loops on its own. A Stepper is not safe for concurrent use.
type Stepper struct {
	terrain Terrain
	start   *SearchNode
	end     *SearchNode
	options Options
	logger  *slog.Logger
	offsets []Position

	frontier *OpenFrontier
	closed   *ClosedSet

	current    *SearchNode
	outcome    Outcome
	path       []Position
	dirty      []DirtyNode
	stepCount  int
	discovered int
}

// NewStepper validates the endpoints and seeds the frontier with the start
// node.
func NewStepper(terrain Terrain, startPosition, endPosition Position, options ...Option) (*Stepper, error) {
	opts := buildOptions(options)

	width, height := terrain.Size()
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("%w: %dx%d", ErrInvalidDimensions, width, height)
	}
	if !inBounds(terrain, startPosition) {
		return nil, &OutOfBoundsError{Role: "start", Position: startPosition, Width: width, Height: height}
	}
	if !inBounds(terrain, endPosition) {
		return nil, &OutOfBoundsError{Role: "end", Position: endPosition, Width: width, Height: height}
	}

	offsets := append([]Position(nil), orthogonalOffsets...)
	if opts.Diagonal {
		offsets = append(offsets, diagonalOffsets...)
	}

	s := &Stepper{
		terrain:  terrain,
		start:    NewSearchNode(startPosition, nil),
		end:      NewSearchNode(endPosition, nil),
		options:  opts,
		logger:   opts.Logger.With("start", startPosition.String(), "end", endPosition.String()),
		offsets:  offsets,
		frontier: NewOpenFrontier(),
		closed:   NewClosedSet(),
	}
	s.open(s.start)

	return s, nil
}

// Step advances the search by one node expansion. It is a no-op once the
// search is done. The error is only set when an internal invariant breaks.
func (s *Stepper) Step() (StepOutcome, error) {
	if s.outcome != OutcomeRunning {
		return s.stepOutcome(), nil
	}
	s.stepCount++

	current, ok, err := s.nextOpen()
	if err != nil {
		s.outcome = OutcomeFailed
		return s.stepOutcome(), fmt.Errorf("step %d: %w", s.stepCount, err)
	}
	if !ok {
		s.outcome = OutcomeFailed
		s.logger.Info("search failed", "steps", s.stepCount, "expanded", s.closed.Len())
		return s.stepOutcome(), nil
	}

	s.current = current
	s.closed.Add(current)
	current.SetRole(RoleExpanded)
	s.markDirty(current.position, RoleExpanded)

	if n := s.options.ProgressInterval; n > 0 && s.closed.Len()%n == 0 {
		s.logger.Debug("search progress",
			"iteration", s.closed.Len(),
			"open", s.frontier.Len(),
			"closed", s.closed.Len(),
			"current", current.position.String())
	}

	if current.position == s.end.position {
		return s.finalize(current)
	}

	for _, offset := range s.offsets {
		position := current.position.Add(offset)
		if !inBounds(s.terrain, position) {
			continue
		}
		candidate := NewSearchNode(position, current)
		if s.closed.Contains(position) {
			continue
		}
		if !s.terrain.Traversable(position) {
			candidate.SetTraversable(false)
			continue
		}
		s.score(candidate)
		if s.frontier.Accepts(candidate) {
			s.open(candidate)
		}
	}

	return StepOutcome{Outcome: OutcomeRunning}, nil
}

// nextOpen pops the cheapest entry whose position is not closed yet. ok is
// false when the frontier runs dry.
func (s *Stepper) nextOpen() (*SearchNode, bool, error) {
	for s.frontier.Len() > 0 {
		node, err := s.frontier.ExtractMin()
		if err != nil {
			return nil, false, err
		}
		if s.closed.Contains(node.position) {
			continue
		}
		return node, true, nil
	}
	return nil, false, nil
}

func (s *Stepper) score(candidate *SearchNode) {
	switch s.options.CostModel {
	case CostAccumulated:
		candidate.SetG(candidate.parent.g + 1)
	default:
		candidate.SetG(Manhattan(s.start.position, candidate.position))
	}
	candidate.SetH(Manhattan(candidate.position, s.end.position))
	candidate.SetF(candidate.g + candidate.h)
}

func (s *Stepper) open(node *SearchNode) {
	s.frontier.Insert(node)
	s.discovered++
	node.SetRole(RoleFrontier)
	s.markDirty(node.position, RoleFrontier)
}

func (s *Stepper) finalize(goal *SearchNode) (StepOutcome, error) {
	path, ok := internal.ReconstructPath(
		goal,
		s.start.position,
		func(n *SearchNode) Position { return n.position },
		func(n *SearchNode) (*SearchNode, bool) { return n.parent, n.parent != nil },
		s.discovered,
	)
	if !ok {
		s.outcome = OutcomeFailed
		return s.stepOutcome(), fmt.Errorf("reconstruct path to %s: %w", goal.position, ErrDisconnectedPath)
	}

	s.path = path
	s.outcome = OutcomeSucceeded
	for node := goal; node != nil; node = node.parent {
		node.SetRole(RolePath)
	}
	for _, p := range path {
		s.markDirty(p, RolePath)
	}
	s.logger.Info("search succeeded",
		"steps", s.stepCount,
		"expanded", s.closed.Len(),
		"length", len(path))

	return s.stepOutcome(), nil
}

func (s *Stepper) markDirty(p Position, role Role) {
	s.dirty = append(s.dirty, DirtyNode{Position: p, Role: role})
}

func (s *Stepper) stepOutcome() StepOutcome {
	out := StepOutcome{Outcome: s.outcome}
	if s.outcome == OutcomeSucceeded {
		out.Path = append([]Position(nil), s.path...)
	}
	return out
}

// Run steps until the search is done.
func (s *Stepper) Run() (StepOutcome, error) {
	return s.RunLimit(0)
}

// RunLimit steps until the search is done or maxSteps more Step calls have
// been made, in which case it returns ErrStepLimit. Zero means no limit.
func (s *Stepper) RunLimit(maxSteps int) (StepOutcome, error) {
	for i := 0; !s.IsDone(); i++ {
		if maxSteps > 0 && i >= maxSteps {
			return s.stepOutcome(), fmt.Errorf("%w after %d steps", ErrStepLimit, maxSteps)
		}
		if _, err := s.Step(); err != nil {
			return s.stepOutcome(), err
		}
	}
	return s.stepOutcome(), nil
}

// IsDone reports whether the search reached a terminal outcome.
func (s *Stepper) IsDone() bool { return s.outcome != OutcomeRunning }

// Outcome returns the current state of the search.
func (s *Stepper) Outcome() Outcome { return s.outcome }

// ResultPath returns the start to end path, or nil unless the search
// succeeded.
func (s *Stepper) ResultPath() []Position {
	if s.outcome != OutcomeSucceeded {
		return nil
	}
	return append([]Position(nil), s.path...)
}

// DrainDirty returns the cells whose role changed since the previous call and
// clears the buffer.
func (s *Stepper) DrainDirty() []DirtyNode {
	dirty := s.dirty
	s.dirty = nil
	return dirty
}

// Start and End return the fixed endpoints of the run.
func (s *Stepper) Start() Position { return s.start.position }
func (s *Stepper) End() Position { return s.end.position }

// Terrain returns the traversability source being searched.
func (s *Stepper) Terrain() Terrain { return s.terrain }

// Result summarises the search so far.
func (s *Stepper) Result() Result {
	res := Result{
		ExpandedNodes: s.closed.Len(),
		Steps:         s.stepCount,
		Found:         s.outcome == OutcomeSucceeded,
	}
	if res.Found {
		res.Path = s.ResultPath()
		res.Cost = len(res.Path) - 1
	}
	return res
}

// Snapshot copies the current open and closed sets for a driver.
func (s *Stepper) Snapshot() StepSnapshot {
	snap := StepSnapshot{
		Start:     s.start.position,
		End:       s.end.position,
		Open:      s.frontier.Positions(),
		Closed:    s.closed.Positions(),
		Outcome:   s.outcome,
		Done:      s.IsDone(),
		Found:     s.outcome == OutcomeSucceeded,
		Path:      s.ResultPath(),
		StepIndex: s.stepCount,
	}
	if s.current != nil {
		snap.Current = s.current.position
	}
	return snap
}
