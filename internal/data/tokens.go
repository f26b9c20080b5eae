package data

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"il-surface/internal/model"

	"github.com/ethereum/go-ethereum/common"
)

// TokenList is the on-disk token registry.
type TokenList struct {
	UpdatedAt string        `json:"updated_at"` // ISO 8601 timestamp
	Tokens    []model.Token `json:"tokens"`
}

// DefaultTokens are the mainnet tokens known without a registry file.
func DefaultTokens() []model.Token {
	return []model.Token{
		{Symbol: "ETH", Address: model.NativeETH, Decimals: 18},
		{Symbol: "WETH", Address: DefaultWETHAddress, Decimals: 18},
		{Symbol: "USDC", Address: "0xA0b86991c6218b36c1d19D4a2e9Eb0cE3606eB48", Decimals: 6},
		{Symbol: "USDT", Address: "0xdAC17F958D2ee523a2206206994597C13D831ec7", Decimals: 6},
		{Symbol: "DAI", Address: "0x6B175474E89094C44Da98b954EedeAC495271d0F", Decimals: 18},
		{Symbol: "WBTC", Address: "0x2260FAC5E5542a773Aa44fBCfeDf7C193bc2C599", Decimals: 8},
	}
}

// LoadTokens loads a token list from a JSON file
func LoadTokens(filePath string) (*TokenList, error) {
	raw, err := os.ReadFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to read tokens file: %w", err)
	}

	var list TokenList
	if err := json.Unmarshal(raw, &list); err != nil {
		return nil, fmt.Errorf("failed to parse tokens file: %w", err)
	}
	return &list, nil
}

// SaveTokens saves a token list to a JSON file
func SaveTokens(list *TokenList, filePath string) error {
	if err := os.MkdirAll(filepath.Dir(filePath), 0o755); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}

	raw, err := json.MarshalIndent(list, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal tokens: %w", err)
	}

	if err := os.WriteFile(filePath, raw, 0o644); err != nil {
		return fmt.Errorf("failed to write tokens file: %w", err)
	}
	return nil
}

// GetDefaultTokensPath returns the default path for the tokens file
func GetDefaultTokensPath() string {
	if path := os.Getenv("TOKENS_FILE"); path != "" {
		return path
	}
	return "./data/tokens.json"
}

// Registry resolves symbols and addresses to token metadata.
type Registry struct {
	bySymbol  map[string]model.Token
	byAddress map[string]model.Token
}

// NewRegistry builds a registry from the defaults overlaid with tokens.
func NewRegistry(tokens []model.Token) *Registry {
	r := &Registry{
		bySymbol:  map[string]model.Token{},
		byAddress: map[string]model.Token{},
	}
	for _, t := range DefaultTokens() {
		r.add(t)
	}
	for _, t := range tokens {
		r.add(t)
	}
	return r
}

// LoadRegistry reads path when it exists; a missing file yields the defaults.
func LoadRegistry(path string) (*Registry, error) {
	if path == "" {
		return NewRegistry(nil), nil
	}
	list, err := LoadTokens(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return NewRegistry(nil), nil
		}
		return nil, err
	}
	return NewRegistry(list.Tokens), nil
}

func (r *Registry) add(t model.Token) {
	if t.Symbol != "" {
		r.bySymbol[strings.ToUpper(t.Symbol)] = t
	}
	if t.Address != "" {
		r.byAddress[strings.ToLower(t.Address)] = t
	}
}

// Resolve looks a token up by symbol (case-insensitive) or by address.
func (r *Registry) Resolve(s string) (model.Token, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return model.Token{}, &OracleError{Code: CodeUnknownToken, Message: "empty token reference"}
	}
	if common.IsHexAddress(s) {
		if t, ok := r.byAddress[strings.ToLower(s)]; ok {
			return t, nil
		}
		return model.Token{}, &OracleError{
			Code:    CodeUnknownToken,
			Message: fmt.Sprintf("token %s is not in the registry; add it to the tokens file", s),
		}
	}
	if t, ok := r.bySymbol[strings.ToUpper(s)]; ok {
		return t, nil
	}
	return model.Token{}, &OracleError{Code: CodeUnknownToken, Message: fmt.Sprintf("unknown token symbol %q", s)}
}

// Pair resolves both sides of a pool.
func (r *Registry) Pair(base, quote string) (model.Pair, error) {
	b, err := r.Resolve(base)
	if err != nil {
		return model.Pair{}, err
	}
	q, err := r.Resolve(quote)
	if err != nil {
		return model.Pair{}, err
	}
	return model.Pair{Base: b, Quote: q}, nil
}

// Tokens returns every registered token sorted by symbol.
func (r *Registry) Tokens() []model.Token {
	out := make([]model.Token, 0, len(r.bySymbol))
	for _, t := range r.bySymbol {
		out = append(out, t)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Symbol < out[j].Symbol })
	return out
}
