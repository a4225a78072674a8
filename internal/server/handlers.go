package server

import (
	"net/http"

	"github.com/matzehuels/jigsaw/pkg/adapt"
	"github.com/matzehuels/jigsaw/pkg/errors"
	"github.com/matzehuels/jigsaw/pkg/geometry"
	"github.com/matzehuels/jigsaw/pkg/pipeline"
	"github.com/matzehuels/jigsaw/pkg/scatter"
	"github.com/matzehuels/jigsaw/pkg/shape"
)

type shapeRequest struct {
	Family string  `json:"family"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
	// Seed makes the outline reproducible and cacheable. Without it the
	// server's shared generator is used.
	Seed uint64 `json:"seed,omitempty"`
}

type shapeResponse struct {
	Family string           `json:"family"`
	Shape  []geometry.Point `json:"shape"`
	Area   float64          `json:"area"`
	Cached bool             `json:"cached"`
}

func (s *Server) handleShapes(w http.ResponseWriter, r *http.Request) {
	var req shapeRequest
	if err := decode(w, r, &req); err != nil {
		writeError(w, err)
		return
	}
	if req.Family == "" {
		req.Family = s.cfg.Shape.Family
	}
	family, err := shape.ParseFamily(req.Family)
	if err != nil {
		writeError(w, err)
		return
	}
	canvas := geometry.Size(req.Width, req.Height)
	if err := errors.ValidateCanvas("canvas", canvas.Width, canvas.Height); err != nil {
		writeError(w, err)
		return
	}

	resp := shapeResponse{Family: string(family)}
	if req.Seed != 0 {
		resp.Shape, resp.Cached, err = s.runner.ShapeWithCacheInfo(r.Context(), pipeline.Options{
			Family: string(family),
			Width:  canvas.Width,
			Height: canvas.Height,
			Seed:   req.Seed,
		})
	} else {
		resp.Shape, err = s.shapes.Generate(r.Context(), family, canvas)
	}
	if err != nil {
		writeError(w, err)
		return
	}
	resp.Area = geometry.PolygonArea(resp.Shape)
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handlePuzzles(w http.ResponseWriter, r *http.Request) {
	opts := pipeline.Options{
		Family: s.cfg.Shape.Family,
		Seed:   s.cfg.Shape.Seed,
		Rows:   s.cfg.Cut.Rows,
		Cols:   s.cfg.Cut.Cols,
		Width:  s.cfg.Scatter.Width,
		Height: s.cfg.Scatter.Height,
	}
	if err := decode(w, r, &opts); err != nil {
		writeError(w, err)
		return
	}
	if opts.Margins == nil {
		m := s.cfg.Scatter.Margins
		if m != scatter.DefaultMargins() {
			opts.Margins = &m
		}
	}
	res, err := s.runner.Execute(r.Context(), opts)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, res.Puzzle.Document())
}

type scatterRequest struct {
	Pieces []geometry.Piece     `json:"pieces"`
	Canvas *geometry.CanvasSize `json:"canvas"`
	Device *scatter.Device      `json:"device,omitempty"`
}

type pieceFailure struct {
	Index int    `json:"index"`
	Error string `json:"error"`
}

type scatterResponse struct {
	Pieces   []geometry.Piece `json:"pieces"`
	Device   scatter.Device   `json:"device"`
	Margin   float64          `json:"margin"`
	GridSize int              `json:"gridSize"`
	Failures []pieceFailure   `json:"failures,omitempty"`
	Skipped  bool             `json:"skipped,omitempty"`
}

func (s *Server) handleScatter(w http.ResponseWriter, r *http.Request) {
	var req scatterRequest
	if err := decode(w, r, &req); err != nil {
		writeError(w, err)
		return
	}
	if req.Pieces == nil {
		writeError(w, errors.New(errors.ErrCodeMissingData, "pieces are required"))
		return
	}
	canvas := s.cfg.Canvas()
	if req.Canvas != nil {
		canvas = *req.Canvas
	}
	opts := s.cfg.ScatterOptions()
	opts.Device = req.Device

	res, err := scatter.Scatter(r.Context(), req.Pieces, canvas, opts)
	if err != nil {
		writeError(w, err)
		return
	}
	resp := scatterResponse{
		Pieces:   res.Pieces,
		Device:   res.Device,
		Margin:   res.Margin,
		GridSize: res.GridSize,
		Skipped:  res.Skipped,
	}
	for _, f := range res.Failures {
		resp.Failures = append(resp.Failures, pieceFailure{Index: f.Index, Error: errors.UserMessage(f.Err)})
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleAdapt(w http.ResponseWriter, r *http.Request) {
	cfg := adapt.Config{Options: s.cfg.AdaptOptions()}
	if err := decode(w, r, &cfg); err != nil {
		writeError(w, err)
		return
	}
	res := s.engine.Adapt(r.Context(), cfg)
	writeJSON(w, http.StatusOK, res)
}
