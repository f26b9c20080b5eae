package surface

import (
	"fmt"
	"strings"
)

// Axis generates the hypothetical prices for one asset, starting from its current price.
// Values must be positive and strictly increasing.
type Axis interface {
	Name() string
	Values(start float64) ([]float64, error)
}

// OffsetAxis: start + i*Step for i in 1..Steps.
// With a tiny step this keeps the asset effectively pinned (a stablecoin) while still
// giving the axis a non-zero extent.
type OffsetAxis struct {
	Steps int
	Step  float64
}

func (a OffsetAxis) Name() string { return "offset" }

func (a OffsetAxis) Values(start float64) ([]float64, error) {
	if a.Steps < 2 {
		return nil, fmt.Errorf("offset axis: steps must be >= 2")
	}
	if !(a.Step > 0) {
		return nil, fmt.Errorf("offset axis: step must be > 0")
	}
	out := make([]float64, a.Steps)
	for i := range out {
		out[i] = start + float64(i+1)*a.Step
	}
	return out, nil
}

// PercentAxis: start * i*StepPct/100 for i in 1..Steps (1%, 2%, ... of the start price).
type PercentAxis struct {
	Steps   int
	StepPct float64
}

func (a PercentAxis) Name() string { return "percent" }

func (a PercentAxis) Values(start float64) ([]float64, error) {
	if a.Steps < 2 {
		return nil, fmt.Errorf("percent axis: steps must be >= 2")
	}
	if !(a.StepPct > 0) {
		return nil, fmt.Errorf("percent axis: step_pct must be > 0")
	}
	out := make([]float64, a.Steps)
	for i := range out {
		out[i] = start * float64(i+1) * a.StepPct / 100
	}
	return out, nil
}

// LinearAxis: Steps evenly spaced prices from start*MinFactor to start*MaxFactor inclusive.
type LinearAxis struct {
	Steps     int
	MinFactor float64
	MaxFactor float64
}

func (a LinearAxis) Name() string { return "linear" }

func (a LinearAxis) Values(start float64) ([]float64, error) {
	if a.Steps < 2 {
		return nil, fmt.Errorf("linear axis: steps must be >= 2")
	}
	if !(a.MinFactor > 0) || a.MaxFactor <= a.MinFactor {
		return nil, fmt.Errorf("linear axis: need 0 < min_factor < max_factor")
	}
	lo, hi := start*a.MinFactor, start*a.MaxFactor
	out := make([]float64, a.Steps)
	for i := range out {
		out[i] = lo + (hi-lo)*float64(i)/float64(a.Steps-1)
	}
	return out, nil
}

// BuildAxis selects an axis by name, reading its parameters from a loosely typed map
// (YAML or JSON decoded).
func BuildAxis(name string, params map[string]any) (Axis, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "offset":
		return OffsetAxis{
			Steps: int(mustNum(params, "steps", 300)),
			Step:  mustNum(params, "step", 0.00001),
		}, nil
	case "percent":
		return PercentAxis{
			Steps:   int(mustNum(params, "steps", 300)),
			StepPct: mustNum(params, "step_pct", 1),
		}, nil
	case "linear":
		return LinearAxis{
			Steps:     int(mustNum(params, "steps", 300)),
			MinFactor: mustNum(params, "min_factor", 0.01),
			MaxFactor: mustNum(params, "max_factor", 3),
		}, nil
	default:
		return nil, fmt.Errorf("unsupported axis: %q", name)
	}
}

func mustNum(m map[string]any, key string, def float64) float64 {
	if v, ok := m[key]; ok && v != nil {
		switch x := v.(type) {
		case float64:
			return x
		case float32:
			return float64(x)
		case int:
			return float64(x)
		case int64:
			return float64(x)
		case uint64:
			return float64(x)
		}
	}
	return def
}
