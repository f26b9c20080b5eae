package data

import (
	"path/filepath"
	"testing"
	"time"

	"il-surface/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegistryResolve(t *testing.T) {
	r := NewRegistry(nil)

	usdc, err := r.Resolve("usdc")
	require.NoError(t, err)
	assert.Equal(t, 6, usdc.Decimals)

	byAddr, err := r.Resolve("0xa0b86991c6218b36c1d19d4a2e9eb0ce3606eb48")
	require.NoError(t, err)
	assert.Equal(t, "USDC", byAddr.Symbol)

	eth, err := r.Resolve("ETH")
	require.NoError(t, err)
	assert.True(t, eth.IsNative())

	_, err = r.Resolve("NOPE")
	assert.Error(t, err)
	_, err = r.Resolve("0x1111111111111111111111111111111111111111")
	assert.Error(t, err)
}

func TestRegistryOverrides(t *testing.T) {
	r := NewRegistry([]model.Token{
		{Symbol: "UNI", Address: "0x1f9840a85d5aF5bf1D1762F925BDADdC4201F984", Decimals: 18},
	})
	uni, err := r.Resolve("UNI")
	require.NoError(t, err)
	assert.Equal(t, 18, uni.Decimals)

	p, err := r.Pair("USDC", "UNI")
	require.NoError(t, err)
	assert.Equal(t, "UNI/USDC", p.String())

	syms := []string{}
	for _, tok := range r.Tokens() {
		syms = append(syms, tok.Symbol)
	}
	assert.IsIncreasing(t, syms)
	assert.Contains(t, syms, "UNI")
}

func TestTokensRoundTripAndLoadRegistry(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "nested", "tokens.json")
	list := &TokenList{
		UpdatedAt: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC).Format(time.RFC3339),
		Tokens:    []model.Token{{Symbol: "LINK", Address: "0x514910771AF9Ca656af840dff83E8264EcF986CA", Decimals: 18}},
	}
	require.NoError(t, SaveTokens(list, path))

	loaded, err := LoadTokens(path)
	require.NoError(t, err)
	assert.Equal(t, list, loaded)

	r, err := LoadRegistry(path)
	require.NoError(t, err)
	_, err = r.Resolve("LINK")
	assert.NoError(t, err)

	r, err = LoadRegistry(filepath.Join(dir, "missing.json"))
	require.NoError(t, err)
	_, err = r.Resolve("LINK")
	assert.Error(t, err)
}

func TestGetDefaultTokensPath(t *testing.T) {
	t.Setenv("TOKENS_FILE", "")
	assert.Equal(t, "./data/tokens.json", GetDefaultTokensPath())
	t.Setenv("TOKENS_FILE", "/tmp/t.json")
	assert.Equal(t, "/tmp/t.json", GetDefaultTokensPath())
}

func TestQuoteJSONRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "quote.json")
	q := &model.Quote{
		Pair:      model.Pair{Base: model.Token{Symbol: "USDC", Decimals: 6}, Quote: model.Token{Symbol: "ETH", Decimals: 18}},
		Price:     2001.5,
		Source:    "uniswap-v3",
		FetchedAt: time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC),
	}
	require.NoError(t, SaveQuoteJSON(path, q))
	got, err := LoadQuoteJSON(path)
	require.NoError(t, err)
	assert.Equal(t, q.Price, got.Price)
	assert.True(t, q.FetchedAt.Equal(got.FetchedAt))
	assert.Equal(t, "ETH/USDC", got.Pair.String())
}
