package surface

import (
	"encoding/csv"
	"io"
	"os"
	"path/filepath"
	"strconv"
)

// WriteGridCSV writes one row per finite grid point, creating parent directories.
func WriteGridCSV(path string, g *Grid) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return WriteGrid(f, g)
}

func WriteGrid(out io.Writer, g *Grid) error {
	w := csv.NewWriter(out)
	defer w.Flush()

	header := []string{
		"index",
		"base_price",
		"quote_price",
		"ratio",
		"impermanent_loss",
	}
	if err := w.Write(header); err != nil {
		return err
	}

	for _, p := range g.Points {
		row := []string{
			strconv.Itoa(p.Index),
			fmtFloat(p.BasePrice),
			fmtFloat(p.QuotePrice),
			fmtFloat(p.Ratio),
			fmtFloat(p.ImpermanentLoss),
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}

	w.Flush()
	return w.Error()
}

func fmtFloat(x float64) string {
	return strconv.FormatFloat(x, 'f', 8, 64)
}
