package scan

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/str04/stock-scanner/internal/model"
	"github.com/str04/stock-scanner/internal/provider"
	"github.com/str04/stock-scanner/internal/universe"
)

// Engine runs scans over a ticker universe using a price fetcher.
// It holds no state between invocations; every run produces a fresh
// result set.
type Engine struct {
	Fetcher  provider.Fetcher
	Universe universe.Source
	Now      func() time.Time
}

// NewEngine creates a scan engine over the given fetcher and universe.
func NewEngine(fetcher provider.Fetcher, src universe.Source) *Engine {
	return &Engine{Fetcher: fetcher, Universe: src, Now: time.Now}
}

// ReturnParams configures a return scan.
type ReturnParams struct {
	Tickers   []string // explicit list; when empty the universe is resolved
	MinReturn float64  // percent; tickers at or below are kept
	Years     int      // lookback window length
}

// PatternParams configures a lifetime-high pattern scan.
type PatternParams struct {
	Tickers          []string
	Threshold        float64 // appreciation threshold, percent
	SuccessThreshold float64 // percent, for the aggregate success rate
	Years            int     // history depth
}

// NormalizeTickers trims whitespace, uppercases, and drops empty entries.
func NormalizeTickers(tickers []string) []string {
	out := make([]string, 0, len(tickers))
	for _, t := range tickers {
		if s := strings.ToUpper(strings.TrimSpace(t)); s != "" {
			out = append(out, s)
		}
	}
	return out
}

// resolveTickers returns the explicit list when given, otherwise asks the
// universe source. A universe failure is fatal to the invocation.
func (e *Engine) resolveTickers(explicit []string) ([]string, error) {
	if list := NormalizeTickers(explicit); len(list) > 0 {
		return list, nil
	}
	if e.Universe == nil {
		return nil, fmt.Errorf("no tickers given and no universe configured")
	}
	raw, err := e.Universe.Tickers()
	if err != nil {
		return nil, fmt.Errorf("resolve ticker universe: %w", err)
	}
	return NormalizeTickers(raw), nil
}

func (e *Engine) newResultSet(kind model.ScanKind) *model.ScanResultSet {
	return &model.ScanResultSet{
		ID:    uuid.NewString(),
		Kind:  kind,
		RanAt: e.Now(),
	}
}
