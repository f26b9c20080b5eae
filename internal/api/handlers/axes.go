package handlers

import (
	"net/http"

	"il-surface/internal/api/models"

	"github.com/gin-gonic/gin"
)

var axisKinds = []models.AxisInfo{
	{
		Name:        "offset",
		Description: "Start price plus a fixed step per point. With a tiny step it keeps a stablecoin effectively pinned.",
		Parameters: []models.ParameterInfo{
			{Name: "steps", Type: "int", Description: "Number of prices on the axis", Default: 300},
			{Name: "step", Type: "float", Description: "Absolute price increment per point", Default: 0.00001},
		},
	},
	{
		Name:        "percent",
		Description: "Multiples of the start price: step_pct%, 2*step_pct%, ... of it.",
		Parameters: []models.ParameterInfo{
			{Name: "steps", Type: "int", Description: "Number of prices on the axis", Default: 300},
			{Name: "step_pct", Type: "float", Description: "Percent of the start price per point", Default: 1.0},
		},
	},
	{
		Name:        "linear",
		Description: "Evenly spaced prices between min_factor and max_factor times the start price.",
		Parameters: []models.ParameterInfo{
			{Name: "steps", Type: "int", Description: "Number of prices on the axis", Default: 300},
			{Name: "min_factor", Type: "float", Description: "Lowest price as a multiple of the start price", Default: 0.01},
			{Name: "max_factor", Type: "float", Description: "Highest price as a multiple of the start price", Default: 3.0},
		},
	},
}

// ListAxes handles GET /api/v1/axes
func (h *Handler) ListAxes(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"axes": axisKinds})
}
