package main

import (
	"testing"

	"il-surface/internal/model"

	"github.com/stretchr/testify/assert"
)

func TestMergeTokens(t *testing.T) {
	base := []model.Token{
		{Symbol: "USDC", Address: "0xA0b86991c6218b36c1d19D4a2e9Eb0cE3606eB48", Decimals: 6},
	}
	out := mergeTokens(base, []model.Token{
		{Address: "0xa0b86991c6218b36c1d19d4a2e9eb0ce3606eb48", Symbol: "USDC.e"},
		{Address: "0x1f9840a85d5aF5bf1D1762F925BDADdC4201F984"},
	})
	assert.Len(t, out, 2)
	assert.Equal(t, "USDC.e", out[0].Symbol)
	assert.Equal(t, 6, out[0].Decimals)
	assert.Equal(t, "0x1f9840a85d5aF5bf1D1762F925BDADdC4201F984", out[1].Address)
	assert.Equal(t, "USDC", base[0].Symbol, "base is not modified")
}
