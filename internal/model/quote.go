package model

import (
	"strings"
	"time"
)

// Token identifies an ERC-20 token (or native ETH via the zero address).
type Token struct {
	Symbol   string `json:"symbol" yaml:"symbol"`
	Address  string `json:"address" yaml:"address"`
	Decimals int    `json:"decimals" yaml:"decimals"`
}

// NativeETH is the sentinel address used for ether in the price oracle.
const NativeETH = "0x0000000000000000000000000000000000000000"

func (t Token) IsNative() bool {
	return strings.EqualFold(t.Address, NativeETH)
}

// Label is the symbol when known, otherwise the address.
func (t Token) Label() string {
	if t.Symbol != "" {
		return t.Symbol
	}
	return t.Address
}

// Pair is the two-asset pool being analysed.
// Base is the pricing unit (e.g. USDC); Quote is the token being priced (e.g. ETH).
type Pair struct {
	Base  Token `json:"base" yaml:"base"`
	Quote Token `json:"quote" yaml:"quote"`
}

func (p Pair) String() string {
	return p.Quote.Label() + "/" + p.Base.Label()
}

// Quote is a spot price of one whole Quote token expressed in Base tokens.
//
// Example (as persisted by data.SaveQuoteJSON):
//
//	{
//	  "pair": {...},
//	  "price": 2000.12,
//	  "amount_in": "1000000000000000000",
//	  "amount_out": "2000120000",
//	  "source": "uniswap-v3",
//	  "fetched_at": "2024-01-01T00:00:00Z"
//	}
type Quote struct {
	Pair      Pair      `json:"pair"`
	Price     float64   `json:"price"`
	AmountIn  string    `json:"amount_in,omitempty"`
	AmountOut string    `json:"amount_out,omitempty"`
	Source    string    `json:"source"`
	FetchedAt time.Time `json:"fetched_at"`
}
