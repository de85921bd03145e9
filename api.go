package astar

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"runtime"
)

// CostModel selects how g is computed for a candidate node.
type CostModel int

const (
	// CostManhattan sets g to the Manhattan distance from the start. It does
	// not account for detours around obstacles already taken.
	CostManhattan CostModel = iota
	// CostAccumulated sets g to parent.g + 1, the true path length.
	CostAccumulated
)

func (c CostModel) String() string {
	if c == CostAccumulated {
		return "accumulated"
	}
	return "manhattan"
}

// ParseCostModel maps "manhattan" or "accumulated" to a CostModel.
func ParseCostModel(s string) (CostModel, error) {
	switch s {
	case "", "manhattan":
		return CostManhattan, nil
	case "accumulated":
		return CostAccumulated, nil
	}
	return CostManhattan, fmt.Errorf("unknown cost model %q", s)
}

// Result contains the outcome of a search
type Result struct {
	Path          []Position `json:"path,omitempty"`
	Cost          int        `json:"cost"`
	ExpandedNodes int        `json:"expandedNodes"`
	Steps         int        `json:"steps"`
	Found         bool       `json:"found"`
}

// Options defines parameters for the search.
type Options struct {
	Diagonal         bool
	CostModel        CostModel
	Logger           *slog.Logger
	ProgressInterval int
	MaxSteps         int
	NumberOfWorkers  int
	OnJobDone        func(JobResult)
}

// Option is a function that modifies Options.
type Option func(*Options)

// WithDiagonal enables 8-directional expansion.
func WithDiagonal(enabled bool) Option {
	return func(options *Options) { options.Diagonal = enabled }
}

// WithCostModel picks how g is computed. The default is CostManhattan.
func WithCostModel(model CostModel) Option {
	return func(options *Options) { options.CostModel = model }
}

// WithLogger sets the structured logger used for progress and outcome lines.
func WithLogger(logger *slog.Logger) Option {
	return func(options *Options) { options.Logger = logger }
}

// WithProgressInterval logs a progress line every n expansions. Zero disables it.
func WithProgressInterval(n int) Option {
	return func(options *Options) { options.ProgressInterval = n }
}

// WithMaxSteps caps the number of Step calls Search and SearchAll make.
// Zero means no cap.
func WithMaxSteps(n int) Option {
	return func(options *Options) { options.MaxSteps = n }
}

// WithWorkers specifies how many searches SearchAll runs at once.
func WithWorkers(numberOfWorkers int) Option {
	return func(options *Options) { options.NumberOfWorkers = numberOfWorkers }
}

// WithJobDone registers a callback SearchAll invokes after each job. It may be
// called from several goroutines at once.
func WithJobDone(fn func(JobResult)) Option {
	return func(options *Options) { options.OnJobDone = fn }
}

// ErrStepLimit is returned when MaxSteps runs out before the search ends.
var ErrStepLimit = errors.New("step limit reached")

func buildOptions(options []Option) Options {
	searchOptions := Options{
		ProgressInterval: 100,
		NumberOfWorkers:  runtime.NumCPU(),
	}
	for _, option := range options {
		option(&searchOptions)
	}
	if searchOptions.Logger == nil {
		searchOptions.Logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	if searchOptions.NumberOfWorkers < 1 {
		searchOptions.NumberOfWorkers = 1
	}
	return searchOptions
}

// Search runs a Stepper to completion.
func Search(terrain Terrain, start, end Position, options ...Option) (Result, error) {
	stepper, err := NewStepper(terrain, start, end, options...)
	if err != nil {
		return Result{}, err
	}
	if _, err := stepper.RunLimit(stepper.options.MaxSteps); err != nil {
		return stepper.Result(), err
	}
	result := stepper.Result()
	if !result.Found {
		return result, ErrNoPath
	}
	return result, nil
}
