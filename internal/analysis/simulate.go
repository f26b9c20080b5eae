package analysis

import (
	"il-surface/internal/metrics"
	"il-surface/internal/model"
)

// Simulate moves both prices by the scenario and values the position at the end state:
// what holding the deposit would be worth, scaled by the IL of the move.
func Simulate(pos model.Position, sc model.Scenario) model.Outcome {
	pxB, pxQ := sc.Apply(pos.BasePrice, pos.QuotePrice)
	ratio := model.PriceRatio(pos.BasePrice, pxB, pos.QuotePrice, pxQ)
	il := model.ImpermanentLoss(ratio)
	hold := pos.HoldValue(pxB, pxQ)

	metrics.SimulationsTotal.Inc()
	return model.Outcome{
		Position:        pos,
		Scenario:        sc,
		FinalBasePrice:  pxB,
		FinalQuotePrice: pxQ,
		Ratio:           ratio,
		HoldValue:       hold,
		FinalValue:      hold * (1 + il),
		ImpermanentLoss: il,
	}
}
