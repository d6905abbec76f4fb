package scan

import (
	"log"
	"math"

	"github.com/str04/stock-scanner/internal/calculator"
	"github.com/str04/stock-scanner/internal/model"
)

// RunReturnScan computes each ticker's total adjusted-close return over
// the lookback window and keeps those at or below MinReturn. The at-or-
// below comparison is intentional: the scan flags underperformers.
//
// Per-ticker failures (no data, too few bars, degenerate prices) become
// Skip records and never abort the scan.
func (e *Engine) RunReturnScan(p ReturnParams) (*model.ScanResultSet, error) {
	tickers, err := e.resolveTickers(p.Tickers)
	if err != nil {
		return nil, err
	}

	set := e.newResultSet(model.ScanReturn)
	end := e.Now()
	start := end.AddDate(0, 0, -p.Years*365)
	log.Printf("[INFO] scan %s: %d tickers, %s to %s, min_return=%.2f",
		set.ID, len(tickers), start.Format("2006-01-02"), end.Format("2006-01-02"), p.MinReturn)

	for _, ticker := range tickers {
		bars, err := e.Fetcher.FetchDailyBars(ticker, start, end)
		if err != nil {
			log.Printf("[WARN] %s: fetch failed, skipping: %v", ticker, err)
			set.Skips = append(set.Skips, model.Skip{Ticker: ticker, Reason: "fetch failed"})
			continue
		}

		usable := usableBars(bars)
		if len(usable) < 2 {
			set.Skips = append(set.Skips, model.Skip{Ticker: ticker, Reason: "not enough data points"})
			continue
		}

		startPrice := usable[0].AdjClose
		endPrice := usable[len(usable)-1].AdjClose
		ret, err := calculator.PercentReturn(startPrice, endPrice)
		if err != nil {
			set.Skips = append(set.Skips, model.Skip{Ticker: ticker, Reason: "degenerate start price"})
			continue
		}

		if ret <= p.MinReturn {
			set.Returns = append(set.Returns, model.ReturnResult{
				Ticker:    ticker,
				ReturnPct: calculator.Round2(ret),
			})
		}
	}

	log.Printf("[INFO] scan %s: %d matching tickers, %d skipped", set.ID, len(set.Returns), len(set.Skips))
	return set, nil
}

// usableBars drops bars with a missing adjusted close.
func usableBars(bars []model.PriceBar) []model.PriceBar {
	out := make([]model.PriceBar, 0, len(bars))
	for _, b := range bars {
		if b.AdjClose <= 0 || math.IsNaN(b.AdjClose) {
			continue
		}
		out = append(out, b)
	}
	return out
}
