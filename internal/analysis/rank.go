package analysis

import (
	"math"
	"sort"

	"il-surface/internal/model"
)

type RankedOutcome struct {
	Rank int `json:"rank"`
	model.Outcome
}

// RankScenarios simulates every scenario and sorts worst IL first.
// Scenarios whose IL is undefined (a price moved to zero or below) sort last.
func RankScenarios(pos model.Position, scenarios []model.Scenario) []RankedOutcome {
	out := make([]RankedOutcome, 0, len(scenarios))
	for _, sc := range scenarios {
		out = append(out, RankedOutcome{Outcome: Simulate(pos, sc)})
	}
	sort.SliceStable(out, func(i, j int) bool {
		a, b := out[i].ImpermanentLoss, out[j].ImpermanentLoss
		if math.IsNaN(a) || math.IsNaN(b) {
			return math.IsNaN(b) && !math.IsNaN(a)
		}
		return a < b
	})
	for i := range out {
		out[i].Rank = i + 1
	}
	return out
}
