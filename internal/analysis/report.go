package analysis

import (
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"il-surface/internal/model"

	"github.com/shopspring/decimal"
)

// Report prints the start state, the assumed scenario and the estimated end value:
//
//	Start value USD 1000, USDC USD 1.00, ETH USD 2000.00
//
//	Results assuming USDC 0%, and ETH 25%
//	End value estimate USD 1118, iloss: -0.62%
func Report(w io.Writer, pair model.Pair, o model.Outcome) error {
	base, quote := pair.Base.Label(), pair.Quote.Label()
	pos := o.Position

	_, err := fmt.Fprintf(w, "\nStart value USD %s, %s USD %s, %s USD %s\n",
		money(pos.Value, 0), base, money(pos.BasePrice, 2), quote, money(pos.QuotePrice, 2))
	if err != nil {
		return err
	}
	_, err = fmt.Fprintf(w, "\nResults assuming %s %s%%, and %s %s%%\n",
		strings.ToUpper(base), pct(o.Scenario.BasePctChange), strings.ToUpper(quote), pct(o.Scenario.QuotePctChange))
	if err != nil {
		return err
	}
	_, err = fmt.Fprintf(w, "End value estimate USD %s, iloss: %s%%\n",
		money(o.FinalValue, 0), money(o.ImpermanentLoss*100, 2))
	return err
}

func money(v float64, places int32) string {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return "n/a"
	}
	return decimal.NewFromFloat(v).StringFixed(places)
}

func pct(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
