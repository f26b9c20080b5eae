package handlers

import (
	"net/http"

	"il-surface/internal/api/models"

	"github.com/gin-gonic/gin"
)

// ListTokens handles GET /api/v1/tokens
func (h *Handler) ListTokens(c *gin.Context) {
	c.JSON(http.StatusOK, models.TokensResponse{Tokens: h.registry.Tokens()})
}
