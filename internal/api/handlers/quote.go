package handlers

import (
	"net/http"

	"il-surface/internal/api/models"
	"il-surface/internal/model"

	"github.com/gin-gonic/gin"
)

// GetQuote handles GET /api/v1/quote
func (h *Handler) GetQuote(c *gin.Context) {
	var req models.QuoteRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		badRequest(c, "INVALID_REQUEST", err.Error())
		return
	}
	if h.source == nil {
		h.noSource(c)
		return
	}
	pair, err := h.pair(req.Base, req.Quote)
	if err != nil {
		h.respondError(c, err)
		return
	}
	q, err := h.source.SpotPrice(c.Request.Context(), pair)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, models.QuoteResponse{Quote: q})
}

func (h *Handler) pair(base, quote string) (model.Pair, error) {
	if base == "" {
		base = h.cfg.Pair.Base
	}
	if quote == "" {
		quote = h.cfg.Pair.Quote
	}
	return h.registry.Pair(base, quote)
}

func (h *Handler) noSource(c *gin.Context) {
	c.JSON(http.StatusServiceUnavailable, models.ErrorResponse{
		Error: models.ErrorDetail{
			Code:    "NO_PRICE_SOURCE",
			Message: "no provider configured; pass a price or set WEB3",
		},
	})
}
