package api

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"il-surface/internal/api/handlers"
	"il-surface/internal/api/models"
	"il-surface/internal/config"
	"il-surface/internal/data"
	"il-surface/internal/model"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type failingSource struct{ err error }

func (f failingSource) SpotPrice(context.Context, model.Pair) (*model.Quote, error) {
	return nil, f.err
}

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	t.Setenv("TOKENS_FILE", filepath.Join(t.TempDir(), "none.json"))
	t.Setenv("WEB3", "")
	cfg := config.Default()
	cfg.Grid.Base = config.AxisConfig{Name: "offset", Params: map[string]any{"steps": 10, "step": 0.00001}}
	cfg.Grid.Quote = config.AxisConfig{Name: "percent", Params: map[string]any{"steps": 20, "step_pct": 15}}
	return cfg
}

func newTestRouter(t *testing.T, src data.PriceSource, opts RouterOptions) *gin.Engine {
	t.Helper()
	h := handlers.NewHandler(testConfig(t), src, nil, nil)
	return NewRouter(h, nil, opts)
}

func do(r http.Handler, method, path string, body []byte) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, bytes.NewReader(body))
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestHealthAndMetrics(t *testing.T) {
	r := newTestRouter(t, data.StaticSource{Price: 2000}, RouterOptions{})

	w := do(r, http.MethodGet, "/health", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"ok","price_source":true}`, w.Body.String())

	w = do(r, http.MethodGet, "/metrics", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "ilsurface_http_requests_total")
}

func TestQuote(t *testing.T) {
	r := newTestRouter(t, data.StaticSource{Price: 2000}, RouterOptions{})

	w := do(r, http.MethodGet, "/api/v1/quote", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var resp models.QuoteResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, 2000.0, resp.Quote.Price)
	assert.Equal(t, "USDC", resp.Quote.Pair.Base.Symbol)
	assert.Equal(t, "ETH", resp.Quote.Pair.Quote.Symbol)

	w = do(r, http.MethodGet, "/api/v1/quote?quote=NOPE", nil)
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), data.CodeUnknownToken)
}

func TestQuoteErrors(t *testing.T) {
	r := newTestRouter(t, nil, RouterOptions{})
	w := do(r, http.MethodGet, "/api/v1/quote", nil)
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	assert.Contains(t, w.Body.String(), "NO_PRICE_SOURCE")

	r = newTestRouter(t, failingSource{err: &data.OracleError{Code: data.CodeQuoteFailed, Message: "reverted"}}, RouterOptions{})
	w = do(r, http.MethodGet, "/api/v1/quote", nil)
	assert.Equal(t, http.StatusBadGateway, w.Code)
	var resp models.ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, data.CodeQuoteFailed, resp.Error.Code)
}

func TestSimulate(t *testing.T) {
	r := newTestRouter(t, data.StaticSource{Price: 2000}, RouterOptions{})

	w := do(r, http.MethodPost, "/api/v1/simulate", []byte(`{"value": 1000, "base_pct_change": 0, "quote_pct_change": 25, "include_surface": true}`))
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var resp models.SimulateResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.InDelta(t, 1118.034, resp.Outcome.FinalValue, 1e-3)
	assert.InDelta(t, -0.006192, resp.Outcome.ImpermanentLoss, 1e-6)
	assert.Equal(t, 200, resp.Stats.Count)
	require.NotNil(t, resp.Surface)
	assert.Len(t, resp.Surface.X, 10)
	assert.Len(t, resp.Surface.Z, 20)
	assert.Empty(t, resp.Grid)
}

func TestSimulatePriceOverrideAndGrid(t *testing.T) {
	r := newTestRouter(t, nil, RouterOptions{})

	body := `{"price": 3000, "quote_pct_change": -50, "include_grid": true,
		"grid": {"quote": {"name": "linear", "params": {"steps": 5, "min_factor": 0.5, "max_factor": 1.5}}}}`
	w := do(r, http.MethodPost, "/api/v1/simulate", []byte(body))
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var resp models.SimulateResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "request", resp.Quote.Source)
	assert.InDelta(t, 3000.0, resp.Position.QuotePrice, 1e-9)
	assert.InDelta(t, 1500.0, resp.Outcome.FinalQuotePrice, 1e-9)
	assert.Len(t, resp.Grid, 50)
	assert.Nil(t, resp.Surface)
}

func TestSimulateValidation(t *testing.T) {
	r := newTestRouter(t, data.StaticSource{Price: 2000}, RouterOptions{})

	cases := map[string]string{
		"malformed":      `{"value": `,
		"pct too low":    `{"quote_pct_change": -100}`,
		"bad value":      `{"value": -5}`,
		"huge grid":      `{"grid": {"base": {"name": "offset", "params": {"steps": 5000}}}}`,
		"unknown axis":   `{"grid": {"base": {"name": "spiral"}}}`,
		"same token":     `{"base": "ETH", "quote": "ETH"}`,
		"negative price": `{"price": -1}`,
	}
	for name, body := range cases {
		t.Run(name, func(t *testing.T) {
			w := do(r, http.MethodPost, "/api/v1/simulate", []byte(body))
			assert.Equal(t, http.StatusBadRequest, w.Code, w.Body.String())
			var resp models.ErrorResponse
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
			assert.NotEmpty(t, resp.Error.Code)
		})
	}
}

func TestSurfaceHTMLAndPNG(t *testing.T) {
	r := newTestRouter(t, data.StaticSource{Price: 2000}, RouterOptions{})

	w := do(r, http.MethodGet, "/api/v1/surface.html?quote_pct_change=10", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.True(t, strings.HasPrefix(w.Header().Get("Content-Type"), "text/html"))
	assert.Contains(t, w.Body.String(), "Impermanent Loss Surface")
	assert.Contains(t, w.Body.String(), "Price ETH")

	w = do(r, http.MethodGet, "/api/v1/surface.png?price=1800", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "image/png", w.Header().Get("Content-Type"))
	assert.True(t, bytes.HasPrefix(w.Body.Bytes(), []byte("\x89PNG")))
}

func TestTokensAndAxes(t *testing.T) {
	r := newTestRouter(t, nil, RouterOptions{})

	w := do(r, http.MethodGet, "/api/v1/tokens", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var tokens models.TokensResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &tokens))
	assert.NotEmpty(t, tokens.Tokens)

	w = do(r, http.MethodGet, "/api/v1/axes", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var axes struct {
		Axes []models.AxisInfo `json:"axes"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &axes))
	require.Len(t, axes.Axes, 3)
	assert.Equal(t, "offset", axes.Axes[0].Name)
}

func TestCORSAndNotFound(t *testing.T) {
	r := newTestRouter(t, nil, RouterOptions{CORSOrigins: []string{"https://example.org"}})

	req := httptest.NewRequest(http.MethodOptions, "/api/v1/axes", nil)
	req.Header.Set("Origin", "https://example.org")
	req.Header.Set("Access-Control-Request-Method", "GET")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, "https://example.org", w.Header().Get("Access-Control-Allow-Origin"))

	w = do(r, http.MethodGet, "/nowhere", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestRateLimit(t *testing.T) {
	r := newTestRouter(t, nil, RouterOptions{RateLimit: 1})
	codes := map[int]int{}
	for i := 0; i < 5; i++ {
		codes[do(r, http.MethodGet, "/api/v1/axes", nil).Code]++
	}
	assert.Equal(t, 2, codes[http.StatusOK])
	assert.Equal(t, 3, codes[http.StatusTooManyRequests])
}
