// Package pipeline runs one impermanent-loss analysis end to end: price the pair,
// build and interpolate the grid, simulate the configured scenario and write outputs.
package pipeline

import (
	"context"
	"fmt"
	"os"

	"il-surface/internal/analysis"
	"il-surface/internal/config"
	"il-surface/internal/data"
	"il-surface/internal/model"
	"il-surface/internal/render"
	"il-surface/internal/surface"

	"go.uber.org/zap"
)

// Result is everything one run produces.
type Result struct {
	Pair     model.Pair       `json:"pair"`
	Quote    *model.Quote     `json:"quote"`
	Position model.Position   `json:"position"`
	Outcome  model.Outcome    `json:"outcome"`
	Stats    analysis.Stats   `json:"stats"`
	Grid     *surface.Grid    `json:"-"`
	Surface  *surface.Surface `json:"-"`
}

func OracleParams(c config.OracleConfig) data.OracleParams {
	return data.OracleParams{
		Version:       c.Version,
		FeeTier:       c.FeeTier,
		QuoterAddress: c.QuoterAddress,
		RouterAddress: c.RouterAddress,
		WETHAddress:   c.WETHAddress,
		Timeout:       c.Timeout,
	}
}

func RenderOptions(c config.RenderConfig) render.Options {
	return render.Options{
		Title:      c.Title,
		BaseLabel:  c.BaseLabel,
		QuoteLabel: c.QuoteLabel,
		ZLabel:     c.ZLabel,
		Elevation:  c.Elevation,
		Azimuth:    c.Azimuth,
	}
}

// Registry loads the token registry named by the config, falling back to TOKENS_FILE.
func Registry(cfg *config.Config) (*data.Registry, error) {
	path := cfg.TokenFile
	if path == "" {
		path = data.GetDefaultTokensPath()
	}
	return data.LoadRegistry(path)
}

func ResolvePair(cfg *config.Config) (model.Pair, error) {
	reg, err := Registry(cfg)
	if err != nil {
		return model.Pair{}, err
	}
	return reg.Pair(cfg.Pair.Base, cfg.Pair.Quote)
}

// NewSource returns a fixed-price source when price > 0, otherwise dials the configured
// Uniswap deployment. The returned closer is never nil.
func NewSource(ctx context.Context, cfg *config.Config, price float64, logger *zap.Logger) (data.PriceSource, func(), error) {
	if price > 0 {
		return data.StaticSource{Price: price}, func() {}, nil
	}
	o, closer, err := data.DialUniswap(ctx, cfg.Oracle.Provider, OracleParams(cfg.Oracle), logger)
	if err != nil {
		return nil, func() {}, err
	}
	return o, closer, nil
}

// Run prices the pair once and analyses the configured position around that price.
func Run(ctx context.Context, src data.PriceSource, cfg *config.Config, pair model.Pair) (*Result, error) {
	q, err := src.SpotPrice(ctx, pair)
	if err != nil {
		return nil, err
	}
	return Analyze(cfg, pair, q)
}

// Analyze runs everything after the price lookup.
func Analyze(cfg *config.Config, pair model.Pair, q *model.Quote) (*Result, error) {
	// The quote is in base tokens; BasePrice converts it to the reporting currency.
	pos, err := model.NewPosition(cfg.Position.Value, cfg.Pair.BasePrice, q.Price*cfg.Pair.BasePrice)
	if err != nil {
		return nil, fmt.Errorf("position: %w", err)
	}
	baseAxis, err := surface.BuildAxis(cfg.Grid.Base.Name, cfg.Grid.Base.Params)
	if err != nil {
		return nil, fmt.Errorf("grid.base: %w", err)
	}
	quoteAxis, err := surface.BuildAxis(cfg.Grid.Quote.Name, cfg.Grid.Quote.Params)
	if err != nil {
		return nil, fmt.Errorf("grid.quote: %w", err)
	}
	g, s, err := surface.Compute(pos, baseAxis, quoteAxis)
	if err != nil {
		return nil, err
	}
	return &Result{
		Pair:     pair,
		Quote:    q,
		Position: *pos,
		Outcome:  analysis.Simulate(*pos, cfg.Position.Scenario()),
		Stats:    analysis.Summarize(g),
		Grid:     g,
		Surface:  s,
	}, nil
}

// WriteOutputs writes whichever of the CSV, HTML and PNG outputs are configured.
func WriteOutputs(res *Result, rc config.RenderConfig, logger *zap.Logger) error {
	log := logger.Sugar()
	marker := render.StartMarker(res.Position)
	opts := RenderOptions(rc)

	if rc.CSVOut != "" {
		if err := surface.WriteGridCSV(rc.CSVOut, res.Grid); err != nil {
			return fmt.Errorf("write csv: %w", err)
		}
		log.Infow("wrote grid", "path", rc.CSVOut, "points", len(res.Grid.Points))
	}
	if rc.HTMLOut != "" {
		if err := writeHTMLFile(rc.HTMLOut, res, marker, opts); err != nil {
			return fmt.Errorf("write html: %w", err)
		}
		log.Infow("wrote surface", "path", rc.HTMLOut)
	}
	if rc.PNGOut != "" {
		if err := render.WritePNG(rc.PNGOut, res.Surface, marker, opts); err != nil {
			return fmt.Errorf("write png: %w", err)
		}
		log.Infow("wrote plot", "path", rc.PNGOut)
	}
	return nil
}

func writeHTMLFile(path string, res *Result, m render.Marker, o render.Options) error {
	if err := ensureDir(path); err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return render.WriteHTML(f, res.Surface, m, o)
}
