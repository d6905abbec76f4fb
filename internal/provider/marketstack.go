package provider

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"sort"
	"time"

	"github.com/str04/stock-scanner/internal/model"
)

// MarketStackFetcher implements Fetcher using the MarketStack EOD REST API.
type MarketStackFetcher struct {
	BaseURL string
	APIKey  string
	Client  *http.Client
}

// NewMarketStackFetcher creates a new fetcher with optional proxy support.
func NewMarketStackFetcher(baseURL, apiKey, proxyURL string) *MarketStackFetcher {
	if baseURL == "" {
		baseURL = "https://api.marketstack.com/v2"
	}
	transport := &http.Transport{}
	if proxyURL != "" {
		if u, err := url.Parse(proxyURL); err == nil {
			transport.Proxy = http.ProxyURL(u)
		}
	}
	return &MarketStackFetcher{
		BaseURL: baseURL,
		APIKey:  apiKey,
		Client: &http.Client{
			Timeout:   30 * time.Second,
			Transport: transport,
		},
	}
}

func (f *MarketStackFetcher) Name() string { return "marketstack" }

// msBar is the expected JSON shape of one EOD record.
type msBar struct {
	Date     string  `json:"date"`
	Open     float64 `json:"open"`
	High     float64 `json:"high"`
	Low      float64 `json:"low"`
	Close    float64 `json:"close"`
	AdjClose float64 `json:"adj_close"`
}

type msResponse struct {
	Data       []msBar `json:"data"`
	Pagination struct {
		Limit  int `json:"limit"`
		Offset int `json:"offset"`
		Count  int `json:"count"`
		Total  int `json:"total"`
	} `json:"pagination"`
}

func (f *MarketStackFetcher) FetchDailyBars(ticker string, start, end time.Time) ([]model.PriceBar, error) {
	const limit = 1000
	var bars []model.PriceBar

	for offset := 0; ; offset += limit {
		endpoint := fmt.Sprintf("%s/eod?access_key=%s&symbols=%s&date_from=%s&date_to=%s&limit=%d&offset=%d",
			f.BaseURL, url.QueryEscape(f.APIKey), url.QueryEscape(ticker),
			start.Format("2006-01-02"), end.Format("2006-01-02"), limit, offset)

		page, total, err := f.fetchPage(endpoint)
		if err != nil {
			return nil, err
		}
		bars = append(bars, page...)
		if offset+limit >= total || len(page) == 0 {
			break
		}
	}

	if len(bars) == 0 {
		return nil, fmt.Errorf("marketstack %s: %w", ticker, ErrNoData)
	}
	// The API returns newest first.
	sort.Slice(bars, func(i, j int) bool { return bars[i].Date.Before(bars[j].Date) })
	return bars, nil
}

func (f *MarketStackFetcher) fetchPage(endpoint string) ([]model.PriceBar, int, error) {
	resp, err := f.Client.Get(endpoint)
	if err != nil {
		return nil, 0, fmt.Errorf("marketstack fetch: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, 0, fmt.Errorf("marketstack read body: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, 0, fmt.Errorf("marketstack: status %d, body: %s", resp.StatusCode, string(body))
	}

	var decoded msResponse
	if err := json.Unmarshal(body, &decoded); err != nil {
		return nil, 0, fmt.Errorf("marketstack decode: %w", err)
	}

	bars := make([]model.PriceBar, 0, len(decoded.Data))
	for _, d := range decoded.Data {
		date, err := time.Parse("2006-01-02", firstN(d.Date, 10))
		if err != nil {
			continue
		}
		ac := d.AdjClose
		if ac == 0 {
			ac = d.Close
		}
		bars = append(bars, model.PriceBar{
			Date:     date,
			Open:     d.Open,
			High:     d.High,
			Low:      d.Low,
			Close:    d.Close,
			AdjClose: ac,
		})
	}
	return bars, decoded.Pagination.Total, nil
}

func firstN(s string, n int) string {
	if len(s) < n {
		return s
	}
	return s[:n]
}
