package main

import (
	"testing"

	"il-surface/internal/model"
	"il-surface/internal/surface"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func demoGrid(t *testing.T) *surface.Grid {
	t.Helper()
	pos, err := model.NewPosition(1000, 1, 2000)
	require.NoError(t, err)
	g, err := surface.Build(pos,
		surface.OffsetAxis{Steps: 3, Step: 0.00001},
		surface.PercentAxis{Steps: 10, StepPct: 10},
	)
	require.NoError(t, err)
	return g
}

func TestSampleRows(t *testing.T) {
	g := demoGrid(t)
	rows := sampleRows(g, 5)
	require.Len(t, rows, 5)
	for _, p := range rows {
		assert.Equal(t, g.BasePrices[0], p.BasePrice)
	}
	assert.Equal(t, g.QuotePrices[0], rows[0].QuotePrice)
	assert.Equal(t, g.QuotePrices[2], rows[1].QuotePrice)
}

func TestSampleRowsNonPositive(t *testing.T) {
	g := demoGrid(t)
	assert.Empty(t, sampleRows(g, 0))
	assert.Empty(t, sampleRows(g, -3))
	assert.Len(t, sampleRows(g, 50), len(g.QuotePrices))
}
