package universe

import (
	"fmt"
	"log"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
)

// indexSpec describes where an index's constituent table lives on
// Wikipedia and how to read it.
type indexSpec struct {
	URL        string
	TableIndex int    // n-th wikitable on the page
	Column     string // header of the symbol column
	Suffix     string // exchange suffix appended when missing
}

var indexSpecs = map[string]indexSpec{
	"sp500": {
		URL:    "https://en.wikipedia.org/wiki/List_of_S%26P_500_companies",
		Column: "Symbol",
	},
	"nifty50": {
		URL:        "https://en.wikipedia.org/wiki/NIFTY_50",
		TableIndex: 1,
		Column:     "Symbol",
		Suffix:     ".NS",
	},
	"sensex": {
		URL:    "https://en.wikipedia.org/wiki/List_of_BSE_SENSEX_companies",
		Column: "Symbol",
		Suffix: ".BO",
	},
}

// WikipediaSource resolves index membership by scraping constituent
// tables from Wikipedia.
type WikipediaSource struct {
	Client  *http.Client
	Indices []string
}

// NewWikipediaSource creates a source for the given index names
// (sp500, nifty50, sensex) with optional proxy support.
func NewWikipediaSource(indices []string, proxyURL string) *WikipediaSource {
	transport := &http.Transport{}
	if proxyURL != "" {
		if u, err := url.Parse(proxyURL); err == nil {
			transport.Proxy = http.ProxyURL(u)
		}
	}
	return &WikipediaSource{
		Client: &http.Client{
			Timeout:   30 * time.Second,
			Transport: transport,
		},
		Indices: indices,
	}
}

func (s *WikipediaSource) Name() string { return "wikipedia" }

// Tickers fetches and merges the constituents of all configured indices.
// Any single index failing aborts resolution.
func (s *WikipediaSource) Tickers() ([]string, error) {
	var all []string
	for _, name := range s.Indices {
		spec, ok := indexSpecs[name]
		if !ok {
			return nil, fmt.Errorf("unknown index %q", name)
		}

		doc, err := s.fetch(spec.URL)
		if err != nil {
			return nil, fmt.Errorf("fetch %s: %w", name, err)
		}
		symbols, err := constituents(doc, spec.TableIndex, spec.Column)
		if err != nil {
			return nil, fmt.Errorf("parse %s constituents: %w", name, err)
		}
		for _, sym := range symbols {
			if spec.Suffix != "" && !strings.HasSuffix(sym, spec.Suffix) {
				sym += spec.Suffix
			}
			all = append(all, sym)
		}
		log.Printf("[INFO] fetched %d %s tickers", len(symbols), name)
	}
	if len(all) == 0 {
		return nil, fmt.Errorf("no tickers resolved for indices %v", s.Indices)
	}
	return all, nil
}

func (s *WikipediaSource) fetch(pageURL string) (*goquery.Document, error) {
	req, err := http.NewRequest("GET", pageURL, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", "Mozilla/5.0")

	resp, err := s.Client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("status %d", resp.StatusCode)
	}
	return goquery.NewDocumentFromReader(resp.Body)
}

// constituents extracts the symbol column from the n-th wikitable of the
// document.
func constituents(doc *goquery.Document, tableIndex int, column string) ([]string, error) {
	table := doc.Find("table.wikitable").Eq(tableIndex)
	if table.Length() == 0 {
		return nil, fmt.Errorf("wikitable %d not found", tableIndex)
	}

	// Locate the symbol column from the header row.
	col := -1
	table.Find("tr").First().Find("th").Each(func(i int, th *goquery.Selection) {
		if strings.EqualFold(strings.TrimSpace(th.Text()), column) {
			col = i
		}
	})
	if col < 0 {
		return nil, fmt.Errorf("column %q not found", column)
	}

	var symbols []string
	table.Find("tr").Each(func(i int, row *goquery.Selection) {
		cells := row.Find("td")
		if cells.Length() <= col {
			return
		}
		if sym := strings.TrimSpace(cells.Eq(col).Text()); sym != "" {
			symbols = append(symbols, sym)
		}
	})
	if len(symbols) == 0 {
		return nil, fmt.Errorf("no symbols in column %q", column)
	}
	return symbols, nil
}
