// Package scenario builds search problems from YAML files, text maps and
// random obstacle clusters.
package scenario

import (
	"bytes"
	"errors"
	"fmt"
	"math/rand"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	astar "github.com/pdrpinto/gridastar"
)

// Map cell symbols.
const (
	Wall    = '#'
	Free    = '.'
	StartCh = 'S'
	EndCh   = 'E'
)

var (
	ErrRaggedMap     = errors.New("map rows have different widths")
	ErrMissingAnchor = errors.New("start or end not set")
	ErrDuplicate     = errors.New("start or end given twice")
	ErrUnknownCell   = errors.New("unknown map cell")
)

// Problem is a grid with its endpoints, ready for a Stepper.
type Problem struct {
	Name     string
	Grid     *astar.Grid
	Start    astar.Position
	End      astar.Position
	Diagonal bool
}

// Segment is a straight run of obstacles from From to To, inclusive. Only
// horizontal and vertical segments are accepted.
type Segment struct {
	From astar.Position `yaml:"from"`
	To   astar.Position `yaml:"to"`
}

// File is the YAML scenario format. Either Map or Width/Height must be set;
// Walls and Blocked are applied on top of either.
type File struct {
	Name     string           `yaml:"name"`
	Width    int              `yaml:"width"`
	Height   int              `yaml:"height"`
	Start    *astar.Position  `yaml:"start"`
	End      *astar.Position  `yaml:"end"`
	Diagonal bool             `yaml:"diagonal"`
	Walls    []Segment        `yaml:"walls"`
	Blocked  []astar.Position `yaml:"blocked"`
	Map      string           `yaml:"map"`
}

// Load reads a .yaml/.yml scenario or, for any other extension, a text map.
func Load(path string) (Problem, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Problem{}, err
	}
	name := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	switch filepath.Ext(path) {
	case ".yaml", ".yml":
		p, err := Decode(data)
		if err != nil {
			return Problem{}, fmt.Errorf("%s: %w", path, err)
		}
		if p.Name == "" {
			p.Name = name
		}
		return p, nil
	}
	p, err := ParseText(string(data))
	if err != nil {
		return Problem{}, fmt.Errorf("%s: %w", path, err)
	}
	p.Name = name
	return p, nil
}

// Decode builds a Problem from YAML.
func Decode(data []byte) (Problem, error) {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	var f File
	if err := dec.Decode(&f); err != nil {
		return Problem{}, fmt.Errorf("decode scenario: %w", err)
	}
	return f.Build()
}

// Build validates the file and lays out the grid.
func (f File) Build() (Problem, error) {
	var p Problem
	var err error
	if strings.TrimSpace(f.Map) != "" {
		if p, err = ParseText(f.Map); err != nil {
			return Problem{}, err
		}
		if f.Start != nil {
			p.Start = *f.Start
		}
		if f.End != nil {
			p.End = *f.End
		}
	} else {
		if f.Start == nil || f.End == nil {
			return Problem{}, ErrMissingAnchor
		}
		if p.Grid, err = astar.NewGrid(f.Width, f.Height); err != nil {
			return Problem{}, err
		}
		p.Start, p.End = *f.Start, *f.End
	}

	for _, s := range f.Walls {
		switch {
		case s.From.X == s.To.X:
			p.Grid.WallColumn(s.From.X, min(s.From.Y, s.To.Y), max(s.From.Y, s.To.Y))
		case s.From.Y == s.To.Y:
			p.Grid.WallRow(s.From.Y, min(s.From.X, s.To.X), max(s.From.X, s.To.X))
		default:
			return Problem{}, fmt.Errorf("wall %v-%v is not straight", s.From, s.To)
		}
	}
	for _, b := range f.Blocked {
		p.Grid.SetBlocked(b, true)
	}
	p.Name = f.Name
	p.Diagonal = f.Diagonal
	return p, nil
}

// ParseText is ParseMap over a newline separated map. Blank lines and
// surrounding spaces are ignored.
func ParseText(s string) (Problem, error) {
	return ParseMap(splitRows(s))
}

func splitRows(s string) []string {
	var rows []string
	for _, line := range strings.Split(strings.ReplaceAll(s, "\r\n", "\n"), "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		rows = append(rows, line)
	}
	return rows
}

// ParseMap reads rows of '#', '.', 'S' and 'E'. Row 0 is y == 0.
func ParseMap(rows []string) (Problem, error) {
	if len(rows) == 0 {
		return Problem{}, fmt.Errorf("%w: empty map", astar.ErrInvalidDimensions)
	}
	width := len(rows[0])
	grid, err := astar.NewGrid(width, len(rows))
	if err != nil {
		return Problem{}, err
	}

	p := Problem{Grid: grid}
	var haveStart, haveEnd bool
	for y, row := range rows {
		if len(row) != width {
			return Problem{}, fmt.Errorf("%w: row %d has %d cells, want %d", ErrRaggedMap, y, len(row), width)
		}
		for x, c := range row {
			pos := astar.Pos(x, y)
			switch c {
			case Wall:
				grid.SetBlocked(pos, true)
			case Free:
			case StartCh:
				if haveStart {
					return Problem{}, fmt.Errorf("%w: second start at %s", ErrDuplicate, pos)
				}
				p.Start, haveStart = pos, true
			case EndCh:
				if haveEnd {
					return Problem{}, fmt.Errorf("%w: second end at %s", ErrDuplicate, pos)
				}
				p.End, haveEnd = pos, true
			default:
				return Problem{}, fmt.Errorf("%w %q at %s", ErrUnknownCell, c, pos)
			}
		}
	}
	if !haveStart || !haveEnd {
		return Problem{}, ErrMissingAnchor
	}
	return p, nil
}

// RandomOptions shapes Random's obstacle clusters.
type RandomOptions struct {
	Width, Height int
	Clusters      int
	Steps         int
	Density       float64
	Seed          int64
}

// Random places start and end at distinct cells and grows obstacle clusters by
// random walks around them. The same options always give the same problem.
func Random(opts RandomOptions) (Problem, error) {
	grid, err := astar.NewGrid(opts.Width, opts.Height)
	if err != nil {
		return Problem{}, err
	}
	if opts.Width*opts.Height < 2 {
		return Problem{}, fmt.Errorf("%w: need at least two cells", astar.ErrInvalidDimensions)
	}
	r := rand.New(rand.NewSource(opts.Seed))

	var start, end astar.Position
	for {
		start = astar.Pos(r.Intn(opts.Width), r.Intn(opts.Height))
		end = astar.Pos(r.Intn(opts.Width), r.Intn(opts.Height))
		if start != end {
			break
		}
	}

	dirs := []astar.Position{{X: 1, Y: 0}, {X: -1, Y: 0}, {X: 0, Y: 1}, {X: 0, Y: -1}}
	for c := 0; c < opts.Clusters; c++ {
		p := astar.Pos(r.Intn(opts.Width), r.Intn(opts.Height))
		for s := 0; s < opts.Steps; s++ {
			if r.Float64() < opts.Density && p != start && p != end {
				grid.SetBlocked(p, true)
			}
			if np := p.Add(dirs[r.Intn(len(dirs))]); grid.InBounds(np) {
				p = np
			}
		}
	}

	return Problem{
		Name:  fmt.Sprintf("random-%d", opts.Seed),
		Grid:  grid,
		Start: start,
		End:   end,
	}, nil
}
