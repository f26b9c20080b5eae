package data

import (
	"context"
	"fmt"
	"math/big"
	"strings"
	"time"

	"il-surface/internal/metrics"
	"il-surface/internal/model"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/ethclient"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// Mainnet deployments used when the config leaves addresses empty.
const (
	DefaultQuoterV3Address = "0xb27308f9F90D607463bb33eA1BeBb41C27CE5AB6"
	DefaultRouterV2Address = "0x7a250d5630B4cF539739dF2C5dAcb4c659F2488D"
	DefaultWETHAddress     = "0xC02aaA39b223FE8D0A0e5C4F27eAD9083C756Cc2"
)

// Uniswap V3 Quoter (v1) ABI, quoteExactInputSingle only.
const quoterV3ABI = `[
	{
		"inputs": [
			{"internalType": "address", "name": "tokenIn", "type": "address"},
			{"internalType": "address", "name": "tokenOut", "type": "address"},
			{"internalType": "uint24", "name": "fee", "type": "uint24"},
			{"internalType": "uint256", "name": "amountIn", "type": "uint256"},
			{"internalType": "uint160", "name": "sqrtPriceLimitX96", "type": "uint160"}
		],
		"name": "quoteExactInputSingle",
		"outputs": [
			{"internalType": "uint256", "name": "amountOut", "type": "uint256"}
		],
		"stateMutability": "nonpayable",
		"type": "function"
	}
]`

// Uniswap V2 Router02 ABI, getAmountsOut only.
const routerV2ABI = `[
	{
		"inputs": [
			{"internalType": "uint256", "name": "amountIn", "type": "uint256"},
			{"internalType": "address[]", "name": "path", "type": "address[]"}
		],
		"name": "getAmountsOut",
		"outputs": [
			{"internalType": "uint256[]", "name": "amounts", "type": "uint256[]"}
		],
		"stateMutability": "view",
		"type": "function"
	}
]`

var (
	parsedQuoterV3 = mustParseABI(quoterV3ABI)
	parsedRouterV2 = mustParseABI(routerV2ABI)
)

func mustParseABI(s string) abi.ABI {
	parsed, err := abi.JSON(strings.NewReader(s))
	if err != nil {
		panic(fmt.Errorf("parse ABI: %w", err))
	}
	return parsed
}

// PriceSource returns the spot price of pair.Quote in pair.Base units.
type PriceSource interface {
	SpotPrice(ctx context.Context, pair model.Pair) (*model.Quote, error)
}

// OracleParams configures the Uniswap quote contracts.
type OracleParams struct {
	Version       int    // 2 or 3
	FeeTier       uint32 // v3 pool fee in hundredths of a bip (3000 = 0.3%)
	QuoterAddress string // v3 quoter; default DefaultQuoterV3Address
	RouterAddress string // v2 router; default DefaultRouterV2Address
	WETHAddress   string // substituted for the native ETH sentinel
	Timeout       time.Duration
}

// UniswapOracle prices a token by quoting an exact-input swap of one whole token
// against the pool, so the price includes the pool fee and the price impact of that size.
type UniswapOracle struct {
	params OracleParams
	quoter *bind.BoundContract
	router *bind.BoundContract
	weth   common.Address
	cache  *QuoteCache
	log    *zap.SugaredLogger
}

// NewUniswapOracle binds the quote contracts to caller (an *ethclient.Client in production).
func NewUniswapOracle(caller bind.ContractCaller, params OracleParams, logger *zap.Logger) (*UniswapOracle, error) {
	if caller == nil {
		return nil, fmt.Errorf("contract caller is nil")
	}
	if params.Version == 0 {
		params.Version = 3
	}
	if params.Version != 2 && params.Version != 3 {
		return nil, &OracleError{Code: CodeUnsupported, Message: fmt.Sprintf("unsupported uniswap version %d", params.Version)}
	}
	if params.FeeTier == 0 {
		params.FeeTier = 3000
	}
	if params.QuoterAddress == "" {
		params.QuoterAddress = DefaultQuoterV3Address
	}
	if params.RouterAddress == "" {
		params.RouterAddress = DefaultRouterV2Address
	}
	if params.WETHAddress == "" {
		params.WETHAddress = DefaultWETHAddress
	}
	for _, a := range []string{params.QuoterAddress, params.RouterAddress, params.WETHAddress} {
		if !common.IsHexAddress(a) {
			return nil, fmt.Errorf("invalid contract address %q", a)
		}
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	return &UniswapOracle{
		params: params,
		quoter: bind.NewBoundContract(common.HexToAddress(params.QuoterAddress), parsedQuoterV3, caller, nil, nil),
		router: bind.NewBoundContract(common.HexToAddress(params.RouterAddress), parsedRouterV2, caller, nil, nil),
		weth:   common.HexToAddress(params.WETHAddress),
		cache:  GetCache(),
		log:    logger.Named("oracle").Sugar(),
	}, nil
}

// DialUniswap connects to a JSON-RPC provider and returns an oracle plus a closer for the connection.
func DialUniswap(ctx context.Context, provider string, params OracleParams, logger *zap.Logger) (*UniswapOracle, func(), error) {
	if strings.TrimSpace(provider) == "" {
		return nil, nil, &OracleError{
			Code:    CodeMissingProvider,
			Message: "provider URL is required (set oracle.provider or WEB3 in .env)",
		}
	}
	client, err := ethclient.DialContext(ctx, provider)
	if err != nil {
		return nil, nil, &OracleError{Code: CodeDialFailed, Message: "failed to connect to provider", Err: err}
	}
	o, err := NewUniswapOracle(client, params, logger)
	if err != nil {
		client.Close()
		return nil, nil, err
	}
	return o, client.Close, nil
}

// SetCache replaces the quote cache (nil disables caching).
func (o *UniswapOracle) SetCache(c *QuoteCache) { o.cache = c }

func (o *UniswapOracle) sourceName() string {
	return fmt.Sprintf("uniswap-v%d", o.params.Version)
}

// SpotPrice quotes one whole pair.Quote token into pair.Base.
func (o *UniswapOracle) SpotPrice(ctx context.Context, pair model.Pair) (*model.Quote, error) {
	if pair.Quote.Decimals < 0 || pair.Base.Decimals < 0 {
		return nil, &OracleError{Code: CodeUnknownToken, Message: fmt.Sprintf("token decimals unknown for %s", pair)}
	}
	amountIn := new(big.Int).Exp(big.NewInt(10), big.NewInt(int64(pair.Quote.Decimals)), nil)

	cacheKey := GenerateCacheKey(o.params.Version, o.params.FeeTier, pair.Quote.Address, pair.Base.Address, amountIn)
	if cached, ok := o.cache.Get(cacheKey); ok {
		metrics.QuotesTotal.WithLabelValues(o.sourceName(), "cache_hit").Inc()
		o.log.Debugw("cache hit", "pair", pair.String(), "price", cached.Price)
		return cached, nil
	}

	if o.params.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, o.params.Timeout)
		defer cancel()
	}

	start := time.Now()
	amountOut, err := o.PriceInput(ctx, pair.Quote, pair.Base, amountIn)
	duration := time.Since(start)
	metrics.QuoteDuration.WithLabelValues(o.sourceName()).Observe(duration.Seconds())
	if err != nil {
		metrics.QuotesTotal.WithLabelValues(o.sourceName(), "error").Inc()
		o.log.Warnw("quote failed", "pair", pair.String(), "duration", duration, "error", err)
		return nil, err
	}

	price := decimal.NewFromBigInt(amountOut, -int32(pair.Base.Decimals))
	q := &model.Quote{
		Pair:      pair,
		Price:     price.InexactFloat64(),
		AmountIn:  amountIn.String(),
		AmountOut: amountOut.String(),
		Source:    o.sourceName(),
		FetchedAt: time.Now().UTC(),
	}
	metrics.QuotesTotal.WithLabelValues(o.sourceName(), "ok").Inc()
	o.log.Infow("fetched spot price",
		"pair", pair.String(),
		"price", price.StringFixed(6),
		"amount_in", q.AmountIn,
		"amount_out", q.AmountOut,
		"duration", duration,
	)
	o.cache.Set(cacheKey, q)
	return q, nil
}

// PriceInput returns how many raw units of tokenOut a swap of amountIn raw units of tokenIn yields.
func (o *UniswapOracle) PriceInput(ctx context.Context, tokenIn, tokenOut model.Token, amountIn *big.Int) (*big.Int, error) {
	in, err := o.resolveAddress(tokenIn)
	if err != nil {
		return nil, err
	}
	out, err := o.resolveAddress(tokenOut)
	if err != nil {
		return nil, err
	}
	if in == out {
		return nil, &OracleError{Code: CodeUnknownToken, Message: "tokenIn and tokenOut resolve to the same address"}
	}

	opts := &bind.CallOpts{Context: ctx}
	var result []interface{}

	switch o.params.Version {
	case 3:
		fee := new(big.Int).SetUint64(uint64(o.params.FeeTier))
		if err := o.quoter.Call(opts, &result, "quoteExactInputSingle", in, out, fee, amountIn, big.NewInt(0)); err != nil {
			return nil, &OracleError{Code: CodeQuoteFailed, Message: "quoteExactInputSingle failed", Err: err}
		}
		if len(result) == 0 {
			return nil, &OracleError{Code: CodeEmptyQuote, Message: "quoter returned no amount"}
		}
		amountOut, ok := result[0].(*big.Int)
		if !ok || amountOut.Sign() <= 0 {
			return nil, &OracleError{Code: CodeEmptyQuote, Message: "quoter returned zero amount"}
		}
		return amountOut, nil
	case 2:
		if err := o.router.Call(opts, &result, "getAmountsOut", amountIn, []common.Address{in, out}); err != nil {
			return nil, &OracleError{Code: CodeQuoteFailed, Message: "getAmountsOut failed", Err: err}
		}
		if len(result) == 0 {
			return nil, &OracleError{Code: CodeEmptyQuote, Message: "router returned no amounts"}
		}
		amounts, ok := result[0].([]*big.Int)
		if !ok || len(amounts) < 2 || amounts[len(amounts)-1].Sign() <= 0 {
			return nil, &OracleError{Code: CodeEmptyQuote, Message: "router returned zero amount"}
		}
		return amounts[len(amounts)-1], nil
	default:
		return nil, &OracleError{Code: CodeUnsupported, Message: fmt.Sprintf("unsupported uniswap version %d", o.params.Version)}
	}
}

// resolveAddress maps native ETH onto WETH, since pools only hold ERC-20s.
func (o *UniswapOracle) resolveAddress(t model.Token) (common.Address, error) {
	if t.IsNative() {
		return o.weth, nil
	}
	if !common.IsHexAddress(t.Address) {
		return common.Address{}, &OracleError{Code: CodeUnknownToken, Message: fmt.Sprintf("invalid token address %q for %s", t.Address, t.Label())}
	}
	return common.HexToAddress(t.Address), nil
}

// StaticSource always returns the same price. Used for offline runs and --price overrides.
type StaticSource struct {
	Price  float64
	Source string
}

func (s StaticSource) SpotPrice(_ context.Context, pair model.Pair) (*model.Quote, error) {
	if !(s.Price > 0) {
		return nil, &OracleError{Code: CodeEmptyQuote, Message: "static price must be > 0"}
	}
	src := s.Source
	if src == "" {
		src = "static"
	}
	metrics.QuotesTotal.WithLabelValues(src, "ok").Inc()
	return &model.Quote{
		Pair:      pair,
		Price:     s.Price,
		Source:    src,
		FetchedAt: time.Now().UTC(),
	}, nil
}
