package model

// Scenario is a hypothetical move of both prices, in percent (25 = +25%).
type Scenario struct {
	BasePctChange  float64 `json:"base_pct_change" yaml:"base_pct_change"`
	QuotePctChange float64 `json:"quote_pct_change" yaml:"quote_pct_change"`
}

// Apply returns the prices after the move.
func (s Scenario) Apply(pxBase, pxQuote float64) (float64, float64) {
	return pxBase * (1 + s.BasePctChange/100), pxQuote * (1 + s.QuotePctChange/100)
}

// Outcome is the end state of a position under a scenario.
type Outcome struct {
	Position        Position `json:"position"`
	Scenario        Scenario `json:"scenario"`
	FinalBasePrice  float64  `json:"final_base_price"`
	FinalQuotePrice float64  `json:"final_quote_price"`
	Ratio           float64  `json:"ratio"`
	HoldValue       float64  `json:"hold_value"`
	FinalValue      float64  `json:"final_value"`
	ImpermanentLoss float64  `json:"impermanent_loss"`
}
