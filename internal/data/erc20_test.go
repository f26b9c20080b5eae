package data

import (
	"bytes"
	"context"
	"errors"
	"math/big"
	"testing"

	"il-surface/internal/model"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// erc20Caller answers symbol() and decimals() by selector.
type erc20Caller struct {
	symbol   []byte
	decimals []byte
	err      error
}

func (f *erc20Caller) CodeAt(context.Context, common.Address, *big.Int) ([]byte, error) {
	return []byte{0x60}, nil
}

func (f *erc20Caller) CallContract(_ context.Context, msg ethereum.CallMsg, _ *big.Int) ([]byte, error) {
	if f.err != nil {
		return nil, f.err
	}
	if bytes.Equal(msg.Data[:4], parsedERC20.Methods["symbol"].ID) {
		return f.symbol, nil
	}
	return f.decimals, nil
}

func TestFetchTokenMetadata(t *testing.T) {
	sym, err := parsedERC20.Methods["symbol"].Outputs.Pack("USDC")
	require.NoError(t, err)
	dec, err := parsedERC20.Methods["decimals"].Outputs.Pack(uint8(6))
	require.NoError(t, err)

	tok, err := FetchTokenMetadata(context.Background(), &erc20Caller{symbol: sym, decimals: dec},
		model.Token{Address: "0xa0b86991c6218b36c1d19d4a2e9eb0ce3606eb48"})
	require.NoError(t, err)
	assert.Equal(t, "USDC", tok.Symbol)
	assert.Equal(t, 6, tok.Decimals)
	assert.Equal(t, "0xA0b86991c6218b36c1d19D4a2e9Eb0cE3606eB48", tok.Address)
}

func TestFetchTokenMetadataBytes32Symbol(t *testing.T) {
	dec, err := parsedERC20.Methods["decimals"].Outputs.Pack(uint8(18))
	require.NoError(t, err)
	// A bytes32 symbol does not decode as a string; the existing symbol is kept.
	raw := make([]byte, 32)
	copy(raw, "MKR")

	tok, err := FetchTokenMetadata(context.Background(), &erc20Caller{symbol: raw, decimals: dec},
		model.Token{Symbol: "MKR", Address: "0x9f8F72aA9304c8B593d555F12eF6589cC3A579A2"})
	require.NoError(t, err)
	assert.Equal(t, "MKR", tok.Symbol)
	assert.Equal(t, 18, tok.Decimals)
}

func TestFetchTokenMetadataErrors(t *testing.T) {
	tok, err := FetchTokenMetadata(context.Background(), &erc20Caller{}, model.Token{Address: model.NativeETH})
	require.NoError(t, err)
	assert.Equal(t, "ETH", tok.Symbol)
	assert.Equal(t, 18, tok.Decimals)

	_, err = FetchTokenMetadata(context.Background(), &erc20Caller{}, model.Token{Address: "nope"})
	var oe *OracleError
	require.ErrorAs(t, err, &oe)
	assert.Equal(t, CodeUnknownToken, oe.Code)

	_, err = FetchTokenMetadata(context.Background(), &erc20Caller{err: errors.New("boom")},
		model.Token{Address: "0xa0b86991c6218b36c1d19d4a2e9eb0ce3606eb48"})
	require.ErrorAs(t, err, &oe)
	assert.Equal(t, CodeQuoteFailed, oe.Code)
}
