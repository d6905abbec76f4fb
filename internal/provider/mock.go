package provider

import (
	"time"

	"github.com/str04/stock-scanner/internal/model"
)

// MockFetcher returns controllable fixed data for development and testing.
type MockFetcher struct {
	Series map[string][]model.PriceBar
	Errs   map[string]error
}

func (m *MockFetcher) Name() string { return "mock" }

func (m *MockFetcher) FetchDailyBars(ticker string, _, _ time.Time) ([]model.PriceBar, error) {
	if err, ok := m.Errs[ticker]; ok {
		return nil, err
	}
	return m.Series[ticker], nil
}
