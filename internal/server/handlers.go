package server

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/render"

	astar "github.com/pdrpinto/gridastar"
	rnd "github.com/pdrpinto/gridastar/internal/render"
	"github.com/pdrpinto/gridastar/internal/scenario"
)

// InitRequest starts a new session. Map, when set, is a text map and the
// random generation fields are ignored.
type InitRequest struct {
	Width     int     `json:"w" validate:"omitempty,min=5,max=200"`
	Height    int     `json:"h" validate:"omitempty,min=5,max=200"`
	Clusters  int     `json:"clusters" validate:"omitempty,min=0,max=100"`
	Steps     int     `json:"steps" validate:"omitempty,min=0,max=5000"`
	Density   float64 `json:"density" validate:"omitempty,min=0,max=1"`
	Seed      int64   `json:"seed"`
	Diagonal  *bool   `json:"diagonal"`
	CostModel string  `json:"costModel" validate:"omitempty,oneof=manhattan accumulated"`
	Map       string  `json:"map"`
}

// InitResponse describes the new grid.
type InitResponse struct {
	Width  int              `json:"w"`
	Height int              `json:"h"`
	Start  astar.Position   `json:"start"`
	End    astar.Position   `json:"goal"`
	Walls  []astar.Position `json:"walls"`
}

// NextRequest asks for Count steps; zero means one.
type NextRequest struct {
	Count int `json:"count" validate:"omitempty,min=1,max=100000"`
}

// StepResponse is what changed during a batch of steps.
type StepResponse struct {
	Step    int               `json:"step"`
	Current astar.Position    `json:"current"`
	Outcome astar.Outcome     `json:"outcome"`
	Done    bool              `json:"done"`
	Dirty   []astar.DirtyNode `json:"dirty"`
	Path    []astar.Position  `json:"path,omitempty"`
}

type errorResponse struct {
	Error string `json:"error"`
}

func (s *Server) fail(w http.ResponseWriter, r *http.Request, status int, err error) {
	if status >= http.StatusInternalServerError {
		s.logger.Error("request failed", "path", r.URL.Path, "error", err)
	}
	render.Status(r, status)
	render.JSON(w, r, errorResponse{Error: err.Error()})
}

func (s *Server) handleInit(w http.ResponseWriter, r *http.Request) {
	var req InitRequest
	if r.ContentLength != 0 {
		if err := render.DecodeJSON(r.Body, &req); err != nil {
			s.fail(w, r, http.StatusBadRequest, err)
			return
		}
	}
	if err := s.validate.Struct(req); err != nil {
		s.fail(w, r, http.StatusBadRequest, err)
		return
	}

	problem, err := buildProblem(req)
	if err != nil {
		s.fail(w, r, http.StatusBadRequest, err)
		return
	}

	opts := s.cfg.SearchOptions(s.logger)
	if req.Diagonal != nil {
		opts = append(opts, astar.WithDiagonal(*req.Diagonal))
	} else if problem.Diagonal {
		opts = append(opts, astar.WithDiagonal(true))
	}
	if req.CostModel != "" {
		model, _ := astar.ParseCostModel(req.CostModel)
		opts = append(opts, astar.WithCostModel(model))
	}

	if _, err := s.start(problem, opts); err != nil {
		s.fail(w, r, http.StatusBadRequest, err)
		return
	}
	s.logger.Info("session started", "start", problem.Start.String(), "end", problem.End.String())

	width, height := problem.Grid.Size()
	render.JSON(w, r, InitResponse{
		Width:  width,
		Height: height,
		Start:  problem.Start,
		End:    problem.End,
		Walls:  problem.Grid.Blocked(),
	})
}

func buildProblem(req InitRequest) (scenario.Problem, error) {
	if strings.TrimSpace(req.Map) != "" {
		return scenario.ParseText(req.Map)
	}
	opts := scenario.RandomOptions{
		Width:    40,
		Height:   24,
		Clusters: 8,
		Steps:    200,
		Density:  0.25,
		Seed:     req.Seed,
	}
	if req.Width > 0 {
		opts.Width = req.Width
	}
	if req.Height > 0 {
		opts.Height = req.Height
	}
	if req.Clusters > 0 {
		opts.Clusters = req.Clusters
	}
	if req.Steps > 0 {
		opts.Steps = req.Steps
	}
	if req.Density > 0 {
		opts.Density = req.Density
	}
	if opts.Seed == 0 {
		opts.Seed = time.Now().UnixNano()
	}
	return scenario.Random(opts)
}

func (s *Server) handleNext(w http.ResponseWriter, r *http.Request) {
	req := NextRequest{Count: 1}
	if r.ContentLength != 0 {
		if err := render.DecodeJSON(r.Body, &req); err != nil {
			s.fail(w, r, http.StatusBadRequest, err)
			return
		}
	}
	if err := s.validate.Struct(req); err != nil {
		s.fail(w, r, http.StatusBadRequest, err)
		return
	}
	if req.Count == 0 {
		req.Count = 1
	}

	resp, err := s.advance(req.Count)
	switch {
	case errors.Is(err, ErrNoSession):
		s.fail(w, r, http.StatusBadRequest, err)
		return
	case err != nil:
		s.fail(w, r, http.StatusInternalServerError, err)
		return
	}
	render.JSON(w, r, resp)
}

func (s *Server) handleSnapshot(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	sess := s.session
	var snap astar.StepSnapshot
	if sess != nil {
		snap = sess.stepper.Snapshot()
	}
	s.mu.Unlock()

	if sess == nil {
		s.fail(w, r, http.StatusBadRequest, ErrNoSession)
		return
	}
	render.JSON(w, r, snap)
}

func (s *Server) handleFrame(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.session == nil {
		s.fail(w, r, http.StatusBadRequest, ErrNoSession)
		return
	}
	w.Header().Set("Content-Type", "image/png")
	if err := rnd.EncodePNG(w, s.session.canvas, s.cfg.Render.CellSize); err != nil {
		s.logger.Error("encode frame", "error", err)
	}
}
