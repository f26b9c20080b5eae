package models

import (
	"il-surface/internal/analysis"
	"il-surface/internal/model"
	"il-surface/internal/surface"
)

type QuoteResponse struct {
	Quote *model.Quote `json:"quote"`
}

// SimulateResponse is the outcome of one analysis.
type SimulateResponse struct {
	Pair     model.Pair     `json:"pair"`
	Quote    *model.Quote   `json:"quote"`
	Position model.Position `json:"position"`
	Outcome  model.Outcome  `json:"outcome"`
	Stats    analysis.Stats `json:"stats"`
	Surface  *SurfaceData   `json:"surface,omitempty"`
	Grid     []GridPoint    `json:"grid,omitempty"`
}

// SurfaceData is the interpolated mesh; Z[j][i] is the IL at (X[i], Y[j]).
type SurfaceData struct {
	X      []float64   `json:"x"`
	Y      []float64   `json:"y"`
	Z      [][]float64 `json:"z"`
	Filled int         `json:"filled"`
	MinZ   float64     `json:"min_z"`
	MaxZ   float64     `json:"max_z"`
	MeanZ  float64     `json:"mean_z"`
}

func NewSurfaceData(s *surface.Surface) *SurfaceData {
	return &SurfaceData{X: s.Xs, Y: s.Ys, Z: s.Z, Filled: s.Filled, MinZ: s.MinZ, MaxZ: s.MaxZ, MeanZ: s.MeanZ}
}

// GridPoint represents one row of the IL grid
type GridPoint struct {
	Index           int     `json:"index"`
	BasePrice       float64 `json:"base_price"`
	QuotePrice      float64 `json:"quote_price"`
	Ratio           float64 `json:"ratio"`
	ImpermanentLoss float64 `json:"impermanent_loss"`
}

func NewGridPoints(g *surface.Grid) []GridPoint {
	out := make([]GridPoint, len(g.Points))
	for i, p := range g.Points {
		out[i] = GridPoint(p)
	}
	return out
}

type TokensResponse struct {
	Tokens []model.Token `json:"tokens"`
}

// AxisInfo represents information about a grid axis kind
type AxisInfo struct {
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Parameters  []ParameterInfo `json:"parameters"`
}

// ParameterInfo describes an axis parameter
type ParameterInfo struct {
	Name        string      `json:"name"`
	Type        string      `json:"type"` // "float", "int"
	Description string      `json:"description"`
	Default     interface{} `json:"default,omitempty"`
}

// ErrorResponse represents an error response
type ErrorResponse struct {
	Error ErrorDetail `json:"error"`
}

// ErrorDetail contains error information
type ErrorDetail struct {
	Code    string                 `json:"code"`
	Message string                 `json:"message"`
	Details map[string]interface{} `json:"details,omitempty"`
}
