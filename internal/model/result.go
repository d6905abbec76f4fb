package model

import (
	"strconv"
	"time"
)

// ScanKind identifies which scan produced a result set.
type ScanKind string

const (
	ScanReturn  ScanKind = "return"
	ScanPattern ScanKind = "pattern"
)

// ReturnResult is one qualifying ticker from a return scan.
type ReturnResult struct {
	Ticker    string  `json:"ticker"`
	ReturnPct float64 `json:"return"`
}

// PatternOccurrence is one qualifying lifetime-high support event:
// a new lifetime high that held as support and was followed by
// appreciation beyond the scan threshold.
type PatternOccurrence struct {
	Ticker          string    `json:"ticker"`
	Date            time.Time `json:"date"`
	LifetimeHigh    float64   `json:"lifetime_high"`
	AppreciationPct float64   `json:"appreciation"`
}

// Skip records a ticker dropped from a scan and the reason.
// Skipped tickers are never an error: the scan continues without them.
type Skip struct {
	Ticker string `json:"ticker"`
	Reason string `json:"reason"`
}

// YearCount is the number of occurrences dated within one calendar year.
type YearCount struct {
	Year  int `json:"year"`
	Count int `json:"count"`
}

// PatternSummary aggregates pattern occurrences across a whole scan.
type PatternSummary struct {
	TotalInstances      int         `json:"total_instances"`
	SuccessfulInstances int         `json:"successful_instances"`
	SuccessRate         float64     `json:"success_rate"`
	ByYear              []YearCount `json:"by_year"`
}

// ScanResultSet is the complete output of one scan invocation. It is
// built fresh per invocation; the engine keeps no state between runs.
type ScanResultSet struct {
	ID          string              `json:"scan_id"`
	Kind        ScanKind            `json:"kind"`
	RanAt       time.Time           `json:"ran_at"`
	Returns     []ReturnResult      `json:"returns,omitempty"`
	Occurrences []PatternOccurrence `json:"occurrences,omitempty"`
	Summary     *PatternSummary     `json:"summary,omitempty"`
	Skips       []Skip              `json:"skips,omitempty"`
}

// Table renders the result set as a flat header + rows table for
// CSV sinks and other tabular consumers.
func (s *ScanResultSet) Table() ([]string, [][]string) {
	if s.Kind == ScanPattern {
		rows := make([][]string, 0, len(s.Occurrences))
		for _, o := range s.Occurrences {
			rows = append(rows, []string{
				o.Ticker,
				o.Date.Format("2006-01-02"),
				strconv.FormatFloat(o.LifetimeHigh, 'f', 2, 64),
				strconv.FormatFloat(o.AppreciationPct, 'f', 2, 64),
			})
		}
		return []string{"Ticker", "Date", "Lifetime_High", "Appreciation"}, rows
	}

	rows := make([][]string, 0, len(s.Returns))
	for _, r := range s.Returns {
		rows = append(rows, []string{
			r.Ticker,
			strconv.FormatFloat(r.ReturnPct, 'f', 2, 64),
		})
	}
	return []string{"Ticker", "Return"}, rows
}
