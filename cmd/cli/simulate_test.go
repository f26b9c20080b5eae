package main

import (
	"testing"

	"il-surface/internal/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestApplySimulateFlags(t *testing.T) {
	f := simulateCmd.Flags()
	t.Cleanup(func() {
		for _, name := range []string{"quote-pct", "value", "base", "html"} {
			f.Lookup(name).Changed = false
		}
		simulateFlags.quotePct, simulateFlags.value = 0, 0
		simulateFlags.base, simulateFlags.htmlOut = "", ""
	})

	cfg := config.Default()
	cfg.Position = config.PositionConfig{Value: 5000, BasePctChange: 10, QuotePctChange: 40}
	cfg.Render.CSVOut = "results/grid.csv"

	require.NoError(t, f.Set("quote-pct", "0"))
	require.NoError(t, f.Set("value", "2500"))
	require.NoError(t, f.Set("base", "DAI"))
	require.NoError(t, f.Set("html", "out/surface.html"))

	applySimulateFlags(simulateCmd, cfg)

	assert.Equal(t, 2500.0, cfg.Position.Value)
	assert.Equal(t, 0.0, cfg.Position.QuotePctChange)
	assert.Equal(t, "DAI", cfg.Pair.Base)
	assert.Equal(t, "Price DAI", cfg.Render.BaseLabel)
	assert.Equal(t, "out/surface.html", cfg.Render.HTMLOut)

	// Flags that were not set leave the config alone.
	assert.Equal(t, 10.0, cfg.Position.BasePctChange)
	assert.Equal(t, "ETH", cfg.Pair.Quote)
	assert.Equal(t, "Price ETH", cfg.Render.QuoteLabel)
	assert.Equal(t, "results/grid.csv", cfg.Render.CSVOut)
	assert.Empty(t, cfg.Render.PNGOut)
	require.NoError(t, cfg.Validate())
}
