package provider

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

// chartPayload mimics the chart API shape with explicit array contents
// so tests can exercise ragged payloads.
func chartPayload(timestamps, opens, highs, lows, closes, adjCloses string) string {
	return fmt.Sprintf(`{"chart":{"result":[{"timestamp":%s,
		"indicators":{"quote":[{"open":%s,"high":%s,"low":%s,"close":%s}],
		"adjclose":[{"adjclose":%s}]}}],"error":null}}`,
		timestamps, opens, highs, lows, closes, adjCloses)
}

func yahooTestFetcher(t *testing.T, body string) *YahooFetcher {
	t.Helper()
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, body)
	}))
	t.Cleanup(ts.Close)
	f := NewYahooFetcher("")
	f.BaseURL = ts.URL
	return f
}

func TestYahooFetcher_ParsesBars(t *testing.T) {
	f := yahooTestFetcher(t, chartPayload(
		"[1717286400,1717372800]",
		"[100,101]", "[102,103]", "[99,100]", "[101,102]", "[100.5,101.5]"))

	bars, err := f.FetchDailyBars("AAPL", time.Unix(1717200000, 0), time.Unix(1717400000, 0))
	if err != nil {
		t.Fatalf("fetch: %v", err)
	}
	if len(bars) != 2 {
		t.Fatalf("expected 2 bars, got %d", len(bars))
	}
	if bars[0].Close != 101 || bars[0].AdjClose != 100.5 {
		t.Errorf("first bar = %+v", bars[0])
	}
	if !bars[0].Date.Before(bars[1].Date) {
		t.Errorf("bars not ascending: %v, %v", bars[0].Date, bars[1].Date)
	}
}

func TestYahooFetcher_TruncatedQuoteArrays(t *testing.T) {
	// Three timestamps but only two entries in each quote array. The
	// missing position must read as null, not index out of range.
	f := yahooTestFetcher(t, chartPayload(
		"[1717286400,1717372800,1717459200]",
		"[100,101]", "[102,103]", "[99,100]", "[101,102]", "[100.5]"))

	bars, err := f.FetchDailyBars("AAPL", time.Unix(1717200000, 0), time.Unix(1717500000, 0))
	if err != nil {
		t.Fatalf("fetch: %v", err)
	}
	if len(bars) != 2 {
		t.Fatalf("expected truncated position dropped, got %d bars", len(bars))
	}
	// Missing adjclose falls back to close; downstream filters on it.
	if bars[1].AdjClose != bars[1].Close {
		t.Errorf("second bar adjclose = %v, want close %v", bars[1].AdjClose, bars[1].Close)
	}
}

func TestYahooFetcher_NoDataOnEmptyResult(t *testing.T) {
	f := yahooTestFetcher(t, `{"chart":{"result":[],"error":null}}`)

	_, err := f.FetchDailyBars("NOPE", time.Unix(0, 0), time.Unix(1, 0))
	if !errors.Is(err, ErrNoData) {
		t.Fatalf("err = %v, want ErrNoData", err)
	}
}
