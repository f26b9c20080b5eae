package handlers

import (
	"errors"
	"net/http"

	"il-surface/internal/api/models"
	"il-surface/internal/config"
	"il-surface/internal/data"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Handler serves the analysis endpoints. Every request is analysed from scratch;
// nothing is kept between requests.
type Handler struct {
	cfg      *config.Config
	source   data.PriceSource
	registry *data.Registry
	log      *zap.SugaredLogger
}

// NewHandler creates a handler. source may be nil, in which case requests must carry a price.
func NewHandler(cfg *config.Config, source data.PriceSource, registry *data.Registry, logger *zap.Logger) *Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	if registry == nil {
		registry = data.NewRegistry(nil)
	}
	return &Handler{
		cfg:      cfg,
		source:   source,
		registry: registry,
		log:      logger.Named("api").Sugar(),
	}
}

// Health handles GET /health
func (h *Handler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":       "ok",
		"price_source": h.source != nil,
	})
}

func badRequest(c *gin.Context, code, msg string) {
	c.JSON(http.StatusBadRequest, models.ErrorResponse{
		Error: models.ErrorDetail{Code: code, Message: msg},
	})
}

// respondError maps oracle failures onto HTTP statuses; everything else is a bad request.
func (h *Handler) respondError(c *gin.Context, err error) {
	var oe *data.OracleError
	if !errors.As(err, &oe) {
		badRequest(c, "ANALYSIS_ERROR", err.Error())
		return
	}

	status := http.StatusBadGateway
	switch oe.Code {
	case data.CodeUnknownToken, data.CodeUnsupported:
		status = http.StatusBadRequest
	case data.CodeMissingProvider:
		status = http.StatusServiceUnavailable
	}
	h.log.Warnw("oracle error", "code", oe.Code, "error", err)
	c.JSON(status, models.ErrorResponse{
		Error: models.ErrorDetail{
			Code:    oe.Code,
			Message: err.Error(),
			Details: map[string]interface{}{"status_code": status},
		},
	})
}
