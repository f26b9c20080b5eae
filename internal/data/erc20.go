package data

import (
	"context"
	"fmt"

	"il-surface/internal/model"

	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/ethereum/go-ethereum/common"
)

const erc20ABI = `[
	{"inputs": [], "name": "symbol", "outputs": [{"name": "", "type": "string"}], "stateMutability": "view", "type": "function"},
	{"inputs": [], "name": "decimals", "outputs": [{"name": "", "type": "uint8"}], "stateMutability": "view", "type": "function"}
]`

var parsedERC20 = mustParseABI(erc20ABI)

// FetchTokenMetadata reads symbol() and decimals() from an ERC-20 contract.
// Native ETH has no contract and is returned as-is with 18 decimals.
func FetchTokenMetadata(ctx context.Context, caller bind.ContractCaller, t model.Token) (model.Token, error) {
	if t.IsNative() {
		if t.Symbol == "" {
			t.Symbol = "ETH"
		}
		t.Decimals = 18
		return t, nil
	}
	if !common.IsHexAddress(t.Address) {
		return t, &OracleError{Code: CodeUnknownToken, Message: fmt.Sprintf("invalid token address %q", t.Address)}
	}

	c := bind.NewBoundContract(common.HexToAddress(t.Address), parsedERC20, caller, nil, nil)
	opts := &bind.CallOpts{Context: ctx}

	var out []interface{}
	if err := c.Call(opts, &out, "decimals"); err != nil {
		return t, &OracleError{Code: CodeQuoteFailed, Message: fmt.Sprintf("decimals() failed for %s", t.Label()), Err: err}
	}
	dec, ok := out[0].(uint8)
	if !ok {
		return t, &OracleError{Code: CodeEmptyQuote, Message: fmt.Sprintf("decimals() returned %T for %s", out[0], t.Label())}
	}
	t.Decimals = int(dec)

	// Some older tokens return bytes32 from symbol(); keep the known symbol then.
	out = nil
	if err := c.Call(opts, &out, "symbol"); err == nil && len(out) > 0 {
		if s, ok := out[0].(string); ok && s != "" {
			t.Symbol = s
		}
	}
	t.Address = common.HexToAddress(t.Address).Hex()
	return t, nil
}
