package analysis

import (
	"bytes"
	"math"
	"testing"

	"il-surface/internal/model"
	"il-surface/internal/surface"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func usdcEth() model.Pair {
	return model.Pair{
		Base:  model.Token{Symbol: "USDC", Decimals: 6},
		Quote: model.Token{Symbol: "ETH", Decimals: 18},
	}
}

func TestSimulateReferenceScenario(t *testing.T) {
	pos, err := model.NewPosition(1000, 1, 2000)
	require.NoError(t, err)

	o := Simulate(*pos, model.Scenario{BasePctChange: 0, QuotePctChange: 25})
	assert.InDelta(t, 1.0, o.FinalBasePrice, 1e-12)
	assert.InDelta(t, 2500.0, o.FinalQuotePrice, 1e-9)
	assert.InDelta(t, 0.8, o.Ratio, 1e-12)
	assert.InDelta(t, 1125.0, o.HoldValue, 1e-9)
	assert.InDelta(t, -0.0061920, o.ImpermanentLoss, 1e-6)
	assert.InDelta(t, 1118.034, o.FinalValue, 1e-3)
}

func TestSimulateNoMove(t *testing.T) {
	pos, err := model.NewPosition(500, 1, 3000)
	require.NoError(t, err)
	o := Simulate(*pos, model.Scenario{})
	assert.Equal(t, 0.0, o.ImpermanentLoss)
	assert.InDelta(t, 500.0, o.FinalValue, 1e-9)
}

func TestReport(t *testing.T) {
	pos, err := model.NewPosition(1000, 1, 2000)
	require.NoError(t, err)
	o := Simulate(*pos, model.Scenario{QuotePctChange: 25})

	var buf bytes.Buffer
	require.NoError(t, Report(&buf, usdcEth(), o))
	assert.Equal(t,
		"\nStart value USD 1000, USDC USD 1.00, ETH USD 2000.00\n"+
			"\nResults assuming USDC 0%, and ETH 25%\n"+
			"End value estimate USD 1118, iloss: -0.62%\n",
		buf.String())
}

func TestReportUndefinedLoss(t *testing.T) {
	pos, err := model.NewPosition(1000, 1, 2000)
	require.NoError(t, err)
	o := Simulate(*pos, model.Scenario{QuotePctChange: -100})
	require.True(t, math.IsNaN(o.ImpermanentLoss))

	var buf bytes.Buffer
	require.NoError(t, Report(&buf, usdcEth(), o))
	assert.Contains(t, buf.String(), "iloss: n/a%")
}

func TestRankScenarios(t *testing.T) {
	pos, err := model.NewPosition(1000, 1, 2000)
	require.NoError(t, err)
	ranked := RankScenarios(*pos, []model.Scenario{
		{QuotePctChange: 10},
		{QuotePctChange: -100},
		{QuotePctChange: 300},
		{QuotePctChange: 0},
	})
	require.Len(t, ranked, 4)
	assert.Equal(t, 300.0, ranked[0].Scenario.QuotePctChange)
	assert.Equal(t, 10.0, ranked[1].Scenario.QuotePctChange)
	assert.Equal(t, 0.0, ranked[2].Scenario.QuotePctChange)
	assert.True(t, math.IsNaN(ranked[3].ImpermanentLoss))
	for i, r := range ranked {
		assert.Equal(t, i+1, r.Rank)
	}
}

func TestSummarize(t *testing.T) {
	pos, err := model.NewPosition(1000, 1, 2000)
	require.NoError(t, err)
	g, err := surface.Build(pos, surface.OffsetAxis{Steps: 10, Step: 0.001}, surface.PercentAxis{Steps: 40, StepPct: 10})
	require.NoError(t, err)

	s := Summarize(g)
	assert.Equal(t, 400, s.Count)
	assert.Equal(t, 0, s.Dropped)
	assert.LessOrEqual(t, s.MaxIL, 0.0)
	assert.InDelta(t, s.MinIL, s.Worst.ImpermanentLoss, 0)
	assert.InDelta(t, 200.0, s.Worst.QuotePrice, 1e-9)
	assert.LessOrEqual(t, s.P05IL, s.P50IL)
	assert.LessOrEqual(t, s.P50IL, s.P95IL)
	assert.LessOrEqual(t, s.MinIL, s.MeanIL)
	assert.Greater(t, s.StdIL, 0.0)

	assert.Equal(t, Stats{}, Summarize(nil))
}

func TestPercentileSorted(t *testing.T) {
	vals := []float64{1, 2, 3, 4, 5}
	assert.Equal(t, 1.0, percentileSorted(vals, 0))
	assert.Equal(t, 5.0, percentileSorted(vals, 1))
	assert.Equal(t, 3.0, percentileSorted(vals, 0.5))
	assert.InDelta(t, 1.2, percentileSorted(vals, 0.05), 1e-12)
	assert.Equal(t, 0.0, percentileSorted(nil, 0.5))
}
