package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"il-surface/internal/config"
	"il-surface/internal/data"
	"il-surface/internal/logging"
	"il-surface/internal/model"

	"github.com/ethereum/go-ethereum/ethclient"
)

func main() {
	var (
		outputPath = flag.String("output", "", "Output file path (default: $TOKENS_FILE or ./data/tokens.json)")
		seedFile   = flag.String("seed", "", "Path to existing tokens file to use as seed")
		add        = flag.String("add", "", "Comma-separated token addresses to add")
		envFile    = flag.String("env-file", ".env", "dotenv file providing WEB3")
		timeout    = flag.Duration("timeout", 30*time.Second, "Timeout for the whole refresh")
	)
	flag.Parse()

	if err := config.LoadEnv(*envFile); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	logger, err := logging.FromEnv(false)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	defer func() { _ = logger.Sync() }()
	log := logger.Sugar()

	provider := os.Getenv("WEB3")
	if provider == "" {
		log.Fatal("WEB3 environment variable is required")
	}
	if *outputPath == "" {
		*outputPath = data.GetDefaultTokensPath()
	}

	seed := data.DefaultTokens()
	seedPath := *seedFile
	if seedPath == "" {
		seedPath = data.GetDefaultTokensPath()
	}
	if list, err := data.LoadTokens(seedPath); err == nil {
		seed = mergeTokens(seed, list.Tokens)
		fmt.Printf("Loaded %d existing tokens from %s\n", len(list.Tokens), seedPath)
	}
	for _, a := range strings.Split(*add, ",") {
		if a = strings.TrimSpace(a); a != "" {
			seed = mergeTokens(seed, []model.Token{{Address: a}})
		}
	}

	ctx, cancel := context.WithTimeout(context.Background(), *timeout)
	defer cancel()
	client, err := ethclient.DialContext(ctx, provider)
	if err != nil {
		log.Fatalw("failed to connect to provider", "error", err)
	}
	defer client.Close()

	fmt.Printf("Querying %d tokens...\n", len(seed))
	tokens := make([]model.Token, 0, len(seed))
	ok := 0
	for _, t := range seed {
		updated, err := data.FetchTokenMetadata(ctx, client, t)
		if err != nil {
			// Keep the existing entry even if the query fails
			log.Warnw("token refresh failed", "token", t.Label(), "error", err)
			if t.Decimals > 0 {
				tokens = append(tokens, t)
			}
			continue
		}
		tokens = append(tokens, updated)
		ok++
		fmt.Printf("  updated: %-6s %s decimals=%d\n", updated.Symbol, updated.Address, updated.Decimals)
	}
	fmt.Printf("Successfully updated %d/%d tokens\n", ok, len(seed))

	list := &data.TokenList{
		UpdatedAt: time.Now().UTC().Format(time.RFC3339),
		Tokens:    tokens,
	}
	if err := data.SaveTokens(list, *outputPath); err != nil {
		log.Fatalw("failed to save tokens", "error", err)
	}
	fmt.Printf("Saved %d tokens to %s\n", len(tokens), *outputPath)
}

// mergeTokens overlays extra onto base by address, keeping base order.
func mergeTokens(base, extra []model.Token) []model.Token {
	idx := make(map[string]int, len(base))
	out := append([]model.Token(nil), base...)
	for i, t := range out {
		idx[strings.ToLower(t.Address)] = i
	}
	for _, t := range extra {
		key := strings.ToLower(t.Address)
		if i, ok := idx[key]; ok {
			if t.Symbol != "" {
				out[i].Symbol = t.Symbol
			}
			if t.Decimals > 0 {
				out[i].Decimals = t.Decimals
			}
			continue
		}
		idx[key] = len(out)
		out = append(out, t)
	}
	return out
}
