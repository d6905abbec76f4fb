package scan

import (
	"log"

	"github.com/str04/stock-scanner/internal/calculator"
	"github.com/str04/stock-scanner/internal/model"
)

const (
	// supportWindow is how many bars after a lifetime high the price must
	// hold within supportTolerance of it.
	supportWindow = 10
	// appreciationWindow is how many further bars the price has to
	// appreciate beyond the threshold.
	appreciationWindow = 20
	// supportTolerance allows up to a 2% undercut of the high.
	supportTolerance = 0.98
)

// Detect scans one series for bars where the previous bar set a lifetime
// high, the high held as support over the next supportWindow bars, and
// price appreciated beyond threshold (a fraction, 0.10 = 10%) within the
// following appreciationWindow bars. Each qualifying high index is
// evaluated independently; nearby occurrences are not deduplicated.
//
// Detect is a pure function of its inputs. A series shorter than the
// combined lookahead yields no occurrences.
func Detect(ticker string, bars []model.PriceBar, threshold float64) []model.PatternOccurrence {
	var out []model.PatternOccurrence
	highs, isHigh := calculator.LifetimeHighs(bars)

	for i := 1; i < len(bars); i++ {
		if !isHigh[i-1] {
			continue
		}
		high := highs[i-1]
		if high <= 0 {
			continue
		}

		support, err := calculator.MinLow(bars, i, i+supportWindow)
		if err != nil || support < high*supportTolerance {
			continue
		}

		future, err := calculator.MaxClose(bars, i+supportWindow, i+supportWindow+appreciationWindow)
		if err != nil {
			// Appreciation window is past the series end; no verdict
			// is possible for this high.
			continue
		}

		appreciation := (future - high) / high
		if appreciation >= threshold {
			out = append(out, model.PatternOccurrence{
				Ticker:          ticker,
				Date:            bars[i].Date,
				LifetimeHigh:    high,
				AppreciationPct: calculator.Round2(appreciation * 100),
			})
		}
	}
	return out
}

// RunPatternScan runs Detect over each ticker's history and aggregates
// the occurrences. Tickers without data are skipped, not fatal.
func (e *Engine) RunPatternScan(p PatternParams) (*model.ScanResultSet, error) {
	tickers, err := e.resolveTickers(p.Tickers)
	if err != nil {
		return nil, err
	}

	set := e.newResultSet(model.ScanPattern)
	end := e.Now()
	start := end.AddDate(-p.Years, 0, 0)
	log.Printf("[INFO] scan %s: %d tickers, threshold=%.1f%%", set.ID, len(tickers), p.Threshold)

	for _, ticker := range tickers {
		bars, err := e.Fetcher.FetchDailyBars(ticker, start, end)
		if err != nil {
			log.Printf("[WARN] %s: fetch failed, skipping: %v", ticker, err)
			set.Skips = append(set.Skips, model.Skip{Ticker: ticker, Reason: "fetch failed"})
			continue
		}
		if len(bars) == 0 {
			set.Skips = append(set.Skips, model.Skip{Ticker: ticker, Reason: "no data"})
			continue
		}
		set.Occurrences = append(set.Occurrences, Detect(ticker, bars, p.Threshold/100)...)
	}

	summary := Summarize(set.Occurrences, p.SuccessThreshold)
	set.Summary = &summary

	log.Printf("[INFO] scan %s: %d occurrences, success rate %.2f%%",
		set.ID, summary.TotalInstances, summary.SuccessRate)
	return set, nil
}
