package models

// SimulateRequest is the body of POST /api/v1/simulate. Omitted fields fall back to the
// server configuration.
type SimulateRequest struct {
	// Base and Quote are registry symbols or token addresses.
	Base           string   `json:"base,omitempty"`
	Quote          string   `json:"quote,omitempty"`
	Value          float64  `json:"value,omitempty"`
	BasePctChange  *float64 `json:"base_pct_change,omitempty"`
	QuotePctChange *float64 `json:"quote_pct_change,omitempty"`
	// Price skips the oracle and uses this quote price (in base tokens).
	Price          float64     `json:"price,omitempty"`
	Grid           *GridConfig `json:"grid,omitempty"`
	IncludeSurface bool        `json:"include_surface,omitempty"`
	IncludeGrid    bool        `json:"include_grid,omitempty"`
}

// GridConfig overrides the axes used to build the surface.
type GridConfig struct {
	Base  *AxisConfig `json:"base,omitempty"`
	Quote *AxisConfig `json:"quote,omitempty"`
}

type AxisConfig struct {
	Name   string                 `json:"name" binding:"required"`
	Params map[string]interface{} `json:"params,omitempty"`
}

// QuoteRequest is the query of GET /api/v1/quote.
type QuoteRequest struct {
	Base  string `form:"base"`
	Quote string `form:"quote"`
}

// SurfaceRequest is the query of GET /api/v1/surface.html and /api/v1/surface.png.
type SurfaceRequest struct {
	Base           string   `form:"base"`
	Quote          string   `form:"quote"`
	Value          float64  `form:"value"`
	BasePctChange  *float64 `form:"base_pct_change"`
	QuotePctChange *float64 `form:"quote_pct_change"`
	Price          float64  `form:"price"`
}

// Simulate converts the query into the equivalent simulate body.
func (r SurfaceRequest) Simulate() SimulateRequest {
	return SimulateRequest{
		Base:           r.Base,
		Quote:          r.Quote,
		Value:          r.Value,
		BasePctChange:  r.BasePctChange,
		QuotePctChange: r.QuotePctChange,
		Price:          r.Price,
	}
}
