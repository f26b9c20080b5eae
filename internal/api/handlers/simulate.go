package handlers

import (
	"fmt"
	"net/http"

	"il-surface/internal/api/models"
	"il-surface/internal/config"
	"il-surface/internal/data"
	"il-surface/internal/pipeline"
	"il-surface/internal/render"

	"github.com/gin-gonic/gin"
)

// maxAxisSteps bounds request-supplied grids; 1000x1000 cells is already a large surface.
const maxAxisSteps = 1000

// Simulate handles POST /api/v1/simulate
func (h *Handler) Simulate(c *gin.Context) {
	var req models.SimulateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "INVALID_REQUEST", err.Error())
		return
	}
	res, ok := h.run(c, req)
	if !ok {
		return
	}

	resp := models.SimulateResponse{
		Pair:     res.Pair,
		Quote:    res.Quote,
		Position: res.Position,
		Outcome:  res.Outcome,
		Stats:    res.Stats,
	}
	if req.IncludeSurface {
		resp.Surface = models.NewSurfaceData(res.Surface)
	}
	if req.IncludeGrid {
		resp.Grid = models.NewGridPoints(res.Grid)
	}
	c.JSON(http.StatusOK, resp)
}

// SurfaceHTML handles GET /api/v1/surface.html
func (h *Handler) SurfaceHTML(c *gin.Context) {
	var req models.SurfaceRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		badRequest(c, "INVALID_REQUEST", err.Error())
		return
	}
	res, ok := h.run(c, req.Simulate())
	if !ok {
		return
	}
	c.Header("Content-Type", "text/html; charset=utf-8")
	c.Status(http.StatusOK)
	opts := pipeline.RenderOptions(h.cfg.Render)
	opts.BaseLabel, opts.QuoteLabel = "Price "+res.Pair.Base.Label(), "Price "+res.Pair.Quote.Label()
	if err := render.WriteHTML(c.Writer, res.Surface, render.StartMarker(res.Position), opts); err != nil {
		h.log.Errorw("render html failed", "error", err)
	}
}

// SurfacePNG handles GET /api/v1/surface.png
func (h *Handler) SurfacePNG(c *gin.Context) {
	var req models.SurfaceRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		badRequest(c, "INVALID_REQUEST", err.Error())
		return
	}
	res, ok := h.run(c, req.Simulate())
	if !ok {
		return
	}
	c.Header("Content-Type", "image/png")
	c.Status(http.StatusOK)
	opts := pipeline.RenderOptions(h.cfg.Render)
	opts.BaseLabel, opts.QuoteLabel = "Price "+res.Pair.Base.Label(), "Price "+res.Pair.Quote.Label()
	if err := render.WritePNGTo(c.Writer, res.Surface, render.StartMarker(res.Position), opts); err != nil {
		h.log.Errorw("render png failed", "error", err)
	}
}

// run analyses one request against a copy of the server config. On failure it has
// already written the error response.
func (h *Handler) run(c *gin.Context, req models.SimulateRequest) (*pipeline.Result, bool) {
	cfg, err := h.requestConfig(req)
	if err != nil {
		badRequest(c, "INVALID_CONFIG", err.Error())
		return nil, false
	}
	pair, err := h.pair(req.Base, req.Quote)
	if err != nil {
		h.respondError(c, err)
		return nil, false
	}

	src := h.source
	if req.Price > 0 {
		src = data.StaticSource{Price: req.Price, Source: "request"}
	}
	if src == nil {
		h.noSource(c)
		return nil, false
	}

	res, err := pipeline.Run(c.Request.Context(), src, cfg, pair)
	if err != nil {
		h.respondError(c, err)
		return nil, false
	}
	h.log.Infow("simulated",
		"pair", pair.String(),
		"price", res.Quote.Price,
		"value", cfg.Position.Value,
		"final_value", res.Outcome.FinalValue,
		"iloss", res.Outcome.ImpermanentLoss,
	)
	return res, true
}

func (h *Handler) requestConfig(req models.SimulateRequest) (*config.Config, error) {
	cfg := *h.cfg
	cfg.Position = config.MergePosition(cfg.Position, config.PositionConfig{Value: req.Value})
	if req.BasePctChange != nil {
		cfg.Position.BasePctChange = *req.BasePctChange
	}
	if req.QuotePctChange != nil {
		cfg.Position.QuotePctChange = *req.QuotePctChange
	}
	if req.Grid != nil {
		if req.Grid.Base != nil {
			cfg.Grid.Base = config.AxisConfig{Name: req.Grid.Base.Name, Params: req.Grid.Base.Params}
		}
		if req.Grid.Quote != nil {
			cfg.Grid.Quote = config.AxisConfig{Name: req.Grid.Quote.Name, Params: req.Grid.Quote.Params}
		}
	}
	if req.Base != "" {
		cfg.Pair.Base = req.Base
	}
	if req.Quote != "" {
		cfg.Pair.Quote = req.Quote
	}
	for _, ax := range []config.AxisConfig{cfg.Grid.Base, cfg.Grid.Quote} {
		if n, ok := ax.Params["steps"].(float64); ok && n > maxAxisSteps {
			return nil, fmt.Errorf("%s axis: steps must be <= %d", ax.Name, maxAxisSteps)
		}
	}
	if req.Price < 0 {
		return nil, fmt.Errorf("price must be > 0")
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}
