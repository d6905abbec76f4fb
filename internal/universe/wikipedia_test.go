package universe

import (
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
)

const constituentsHTML = `
<html><body>
<table class="wikitable">
<tr><th>Symbol</th><th>Security</th><th>Sector</th></tr>
<tr><td>AAPL</td><td>Apple Inc.</td><td>Technology</td></tr>
<tr><td> MSFT </td><td>Microsoft</td><td>Technology</td></tr>
<tr><td>BRK.B</td><td>Berkshire Hathaway</td><td>Financials</td></tr>
</table>
<table class="wikitable">
<tr><th>Company</th><th>Symbol</th></tr>
<tr><td>Reliance Industries</td><td>RELIANCE</td></tr>
<tr><td>Tata Consultancy</td><td>TCS</td></tr>
</table>
</body></html>`

func docFromHTML(t *testing.T, html string) *goquery.Document {
	t.Helper()
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		t.Fatalf("parse html: %v", err)
	}
	return doc
}

func TestConstituents_FirstTable(t *testing.T) {
	doc := docFromHTML(t, constituentsHTML)
	symbols, err := constituents(doc, 0, "Symbol")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := []string{"AAPL", "MSFT", "BRK.B"}
	if len(symbols) != len(want) {
		t.Fatalf("got %d symbols, want %d: %v", len(symbols), len(want), symbols)
	}
	for i := range want {
		if symbols[i] != want[i] {
			t.Errorf("symbols[%d] = %q, want %q", i, symbols[i], want[i])
		}
	}
}

func TestConstituents_SecondTableDifferentColumnOrder(t *testing.T) {
	doc := docFromHTML(t, constituentsHTML)
	symbols, err := constituents(doc, 1, "Symbol")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := []string{"RELIANCE", "TCS"}
	if len(symbols) != len(want) || symbols[0] != want[0] || symbols[1] != want[1] {
		t.Errorf("got %v, want %v", symbols, want)
	}
}

func TestConstituents_MissingTable(t *testing.T) {
	doc := docFromHTML(t, constituentsHTML)
	if _, err := constituents(doc, 5, "Symbol"); err == nil {
		t.Error("expected error for missing table index")
	}
}

func TestConstituents_MissingColumn(t *testing.T) {
	doc := docFromHTML(t, constituentsHTML)
	if _, err := constituents(doc, 0, "Ticker"); err == nil {
		t.Error("expected error for missing column")
	}
}

func TestStaticSource(t *testing.T) {
	src := NewStaticSource([]string{" AAPL ", "", "tcs.ns"})
	got, err := src.Tickers()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 2 || got[0] != "AAPL" || got[1] != "tcs.ns" {
		t.Errorf("got %v", got)
	}
}

func TestStaticSource_Empty(t *testing.T) {
	src := NewStaticSource([]string{"", "  "})
	if _, err := src.Tickers(); err == nil {
		t.Error("expected error for empty universe")
	}
}
