package provider

import (
	"errors"
	"time"

	"github.com/str04/stock-scanner/internal/model"
)

// ErrNoData marks a ticker with no usable price history. Callers treat it
// as "skip this ticker", never as a fatal scan failure.
var ErrNoData = errors.New("no price data")

// Fetcher defines the interface for retrieving daily price history.
type Fetcher interface {
	FetchDailyBars(ticker string, start, end time.Time) ([]model.PriceBar, error)
	Name() string
}
