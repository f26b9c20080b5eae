package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"il-surface/internal/model"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config is the on-disk configuration shape (YAML).
type Config struct {
	// Optional: token registry JSON used to resolve pair symbols (see data.LoadTokens).
	// Relative paths are resolved against the config file directory first.
	TokenFile string         `yaml:"token_file"`
	Oracle    OracleConfig   `yaml:"oracle"`
	Pair      PairConfig     `yaml:"pair"`
	Position  PositionConfig `yaml:"position"`
	Grid      GridConfig     `yaml:"grid"`
	Render    RenderConfig   `yaml:"render"`

	// positionSet records whether the YAML carried a position block.
	positionSet bool
}

type OracleConfig struct {
	// Provider is the JSON-RPC endpoint. Falls back to $WEB3 (or $PROVIDER) when empty.
	Provider      string        `yaml:"provider"`
	Version       int           `yaml:"version"`
	FeeTier       uint32        `yaml:"fee_tier"`
	QuoterAddress string        `yaml:"quoter_address"`
	RouterAddress string        `yaml:"router_address"`
	WETHAddress   string        `yaml:"weth_address"`
	Timeout       time.Duration `yaml:"timeout"`
}

type PairConfig struct {
	// Base and Quote accept a registry symbol ("USDC") or a token address.
	Base  string `yaml:"base"`
	Quote string `yaml:"quote"`
	// BasePrice is the base token's price in the reporting currency (1 for a USD stablecoin).
	BasePrice float64 `yaml:"base_price"`
}

type PositionConfig struct {
	Value          float64 `yaml:"value"`
	BasePctChange  float64 `yaml:"base_pct_change"`
	QuotePctChange float64 `yaml:"quote_pct_change"`
}

type GridConfig struct {
	Base  AxisConfig `yaml:"base"`
	Quote AxisConfig `yaml:"quote"`
}

type AxisConfig struct {
	Name   string         `yaml:"name"`
	Params map[string]any `yaml:"params"`
}

type RenderConfig struct {
	Title      string `yaml:"title"`
	BaseLabel  string `yaml:"base_label"`
	QuoteLabel string `yaml:"quote_label"`
	ZLabel     string `yaml:"z_label"`
	// Elevation and Azimuth are pointers so that a 0° view can be configured.
	Elevation *float64 `yaml:"elevation"`
	Azimuth   *float64 `yaml:"azimuth"`
	HTMLOut   string   `yaml:"html_out"`
	PNGOut    string   `yaml:"png_out"`
	CSVOut    string   `yaml:"csv_out"`
}

// Default returns the configuration of the reference run: a 1000 USD USDC/ETH position
// on Uniswap v3, ETH up 25%.
func Default() *Config {
	c := &Config{}
	c.ApplyDefaults()
	return c
}

func Load(path string) (*Config, error) {
	c, err := LoadUnchecked(path)
	if err != nil {
		return nil, err
	}
	c.ApplyDefaults()
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}

// LoadUnchecked reads the YAML file without defaults or validation.
func LoadUnchecked(path string) (*Config, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var c Config
	if err := yaml.Unmarshal(raw, &c); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	var sections map[string]any
	if err := yaml.Unmarshal(raw, &sections); err == nil {
		_, c.positionSet = sections["position"]
	}
	if c.TokenFile != "" && !filepath.IsAbs(c.TokenFile) {
		cand := filepath.Join(filepath.Dir(path), c.TokenFile)
		if _, err := os.Stat(cand); err == nil {
			c.TokenFile = cand
		}
	}
	return &c, nil
}

// LoadEnv loads .env files into the process environment. Missing files are ignored.
func LoadEnv(paths ...string) error {
	if len(paths) == 0 {
		paths = []string{".env"}
	}
	for _, p := range paths {
		if _, err := os.Stat(p); err != nil {
			continue
		}
		if err := godotenv.Load(p); err != nil {
			return fmt.Errorf("load %s: %w", p, err)
		}
	}
	return nil
}

// ApplyDefaults fills zero-valued fields. Percent changes are left alone since 0 is meaningful.
func (c *Config) ApplyDefaults() {
	if c.Oracle.Provider == "" {
		c.Oracle.Provider = os.Getenv("WEB3")
	}
	if c.Oracle.Provider == "" {
		c.Oracle.Provider = os.Getenv("PROVIDER")
	}
	if c.Oracle.Version == 0 {
		c.Oracle.Version = 3
	}
	if c.Oracle.FeeTier == 0 {
		c.Oracle.FeeTier = 3000
	}
	if c.Oracle.Timeout == 0 {
		c.Oracle.Timeout = 30 * time.Second
	}
	if c.Pair.Base == "" {
		c.Pair.Base = "USDC"
	}
	if c.Pair.Quote == "" {
		c.Pair.Quote = "ETH"
	}
	if c.Pair.BasePrice == 0 {
		c.Pair.BasePrice = 1
	}
	// The +25% quote move is the reference scenario, used only when no position was given.
	if !c.positionSet && c.Position == (PositionConfig{}) {
		c.Position.QuotePctChange = 25
	}
	if c.Position.Value == 0 {
		c.Position.Value = 1000
	}
	if c.Grid.Base.Name == "" {
		c.Grid.Base = AxisConfig{Name: "offset", Params: map[string]any{"steps": 300, "step": 0.00001}}
	}
	if c.Grid.Quote.Name == "" {
		c.Grid.Quote = AxisConfig{Name: "percent", Params: map[string]any{"steps": 300, "step_pct": 1}}
	}
	if c.Render.Title == "" {
		c.Render.Title = "Impermanent Loss Surface"
	}
	if c.Render.BaseLabel == "" {
		c.Render.BaseLabel = "Price " + c.Pair.Base
	}
	if c.Render.QuoteLabel == "" {
		c.Render.QuoteLabel = "Price " + c.Pair.Quote
	}
	if c.Render.ZLabel == "" {
		c.Render.ZLabel = "Impermanent loss"
	}
	if c.Render.Elevation == nil {
		elev := 25.0
		c.Render.Elevation = &elev
	}
	if c.Render.Azimuth == nil {
		azim := -165.0
		c.Render.Azimuth = &azim
	}
}

func (c *Config) Validate() error {
	if c == nil {
		return errors.New("config is nil")
	}
	if c.Oracle.Version != 2 && c.Oracle.Version != 3 {
		return fmt.Errorf("oracle.version must be 2 or 3, got %d", c.Oracle.Version)
	}
	if c.Pair.Base == "" || c.Pair.Quote == "" {
		return errors.New("pair.base and pair.quote are required")
	}
	if c.Pair.Base == c.Pair.Quote {
		return errors.New("pair.base and pair.quote must differ")
	}
	if c.Position.BasePctChange <= -100 || c.Position.QuotePctChange <= -100 {
		return errors.New("pct changes must be > -100")
	}
	// Validate position numbers by constructing a model.Position with the base price
	// standing in for the (not yet fetched) quote price.
	if _, err := model.NewPosition(c.Position.Value, c.Pair.BasePrice, c.Pair.BasePrice); err != nil {
		return fmt.Errorf("position config invalid: %w", err)
	}
	if c.Grid.Base.Name == "" || c.Grid.Quote.Name == "" {
		return errors.New("grid.base.name and grid.quote.name are required")
	}
	return nil
}

// Scenario is the configured price move.
func (p PositionConfig) Scenario() model.Scenario {
	return model.Scenario{BasePctChange: p.BasePctChange, QuotePctChange: p.QuotePctChange}
}

// MergePosition overlays non-zero fields from override onto base.
// Used by the API to apply request fields over the file config.
func MergePosition(base, override PositionConfig) PositionConfig {
	out := base
	if override.Value != 0 {
		out.Value = override.Value
	}
	if override.BasePctChange != 0 {
		out.BasePctChange = override.BasePctChange
	}
	if override.QuotePctChange != 0 {
		out.QuotePctChange = override.QuotePctChange
	}
	return out
}
