package model

import "math"

// PriceRatio is the relative move of base against quote between two price states.
func PriceRatio(pxBase0, pxBase1, pxQuote0, pxQuote1 float64) float64 {
	return (pxBase1 / pxBase0) / (pxQuote1 / pxQuote0)
}

// ImpermanentLoss returns the constant-product IL for a price ratio r:
//
//	IL(r) = 2*sqrt(r)/(1+r) - 1
//
// The result lies in [-1, 0]. Ratios that are not positive and finite yield NaN.
func ImpermanentLoss(ratio float64) float64 {
	if !positiveFinite(ratio) {
		return math.NaN()
	}
	return 2*(math.Sqrt(ratio)/(1+ratio)) - 1
}

// ImpermanentLossAt evaluates IL for the position if prices moved to (pxBase, pxQuote).
func (p *Position) ImpermanentLossAt(pxBase, pxQuote float64) float64 {
	return ImpermanentLoss(PriceRatio(p.BasePrice, pxBase, p.QuotePrice, pxQuote))
}
