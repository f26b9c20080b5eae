package model

import (
	"errors"
	"math"
)

// Position is a liquidity position split 50/50 by value between the two assets.
// Units:
// - Value: base-currency units (USD when the base is a stablecoin)
// - BasePrice/QuotePrice: price of one token in base-currency units
// - BaseQty/QuoteQty: token amounts deposited
type Position struct {
	Value      float64 `json:"value"`
	BasePrice  float64 `json:"base_price"`
	QuotePrice float64 `json:"quote_price"`
	BaseQty    float64 `json:"base_qty"`
	QuoteQty   float64 `json:"quote_qty"`
}

func NewPosition(value, pxBase, pxQuote float64) (*Position, error) {
	p := &Position{
		Value:      value,
		BasePrice:  pxBase,
		QuotePrice: pxQuote,
	}
	if err := p.Validate(); err != nil {
		return nil, err
	}
	p.BaseQty = (value / 2) / pxBase
	p.QuoteQty = (value / 2) / pxQuote
	return p, nil
}

func (p *Position) Validate() error {
	if !positiveFinite(p.Value) {
		return errors.New("value must be > 0")
	}
	if !positiveFinite(p.BasePrice) {
		return errors.New("base price must be > 0")
	}
	if !positiveFinite(p.QuotePrice) {
		return errors.New("quote price must be > 0")
	}
	return nil
}

// HoldValue is what the deposited quantities would be worth at the given prices
// had they never entered the pool.
func (p *Position) HoldValue(pxBase, pxQuote float64) float64 {
	return pxBase*p.BaseQty + pxQuote*p.QuoteQty
}

func positiveFinite(x float64) bool {
	return x > 0 && !math.IsInf(x, 0) && !math.IsNaN(x)
}
