package recorder

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/str04/stock-scanner/internal/model"
)

func resultSet(id string, ranAt time.Time) *model.ScanResultSet {
	return &model.ScanResultSet{
		ID:    id,
		Kind:  model.ScanReturn,
		RanAt: ranAt,
		Returns: []model.ReturnResult{
			{Ticker: "AAPL", ReturnPct: -3.0},
		},
	}
}

func TestCSVRecorder_WritesDailyFile(t *testing.T) {
	dir := t.TempDir()
	rec, err := NewCSVRecorder(filepath.Join(dir, "history"))
	if err != nil {
		t.Fatalf("new recorder: %v", err)
	}

	ranAt := time.Date(2025, 6, 2, 16, 30, 0, 0, time.UTC) // a Monday
	if err := rec.Record(resultSet("run-1", ranAt)); err != nil {
		t.Fatalf("record: %v", err)
	}

	data, err := os.ReadFile(filepath.Join(rec.Dir, "2025-06-02_Monday_return.csv"))
	if err != nil {
		t.Fatalf("read history file: %v", err)
	}
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	if len(lines) != 2 {
		t.Fatalf("expected header + 1 row, got %d lines: %q", len(lines), lines)
	}
	if lines[0] != "Ticker,Return" {
		t.Errorf("header = %q", lines[0])
	}
	if lines[1] != "AAPL,-3.00" {
		t.Errorf("row = %q", lines[1])
	}
}

func TestCSVRecorder_AppendsWithinSameDay(t *testing.T) {
	rec, err := NewCSVRecorder(t.TempDir())
	if err != nil {
		t.Fatalf("new recorder: %v", err)
	}

	ranAt := time.Date(2025, 6, 2, 9, 0, 0, 0, time.UTC)
	if err := rec.Record(resultSet("run-1", ranAt)); err != nil {
		t.Fatalf("first record: %v", err)
	}
	if err := rec.Record(resultSet("run-2", ranAt.Add(2*time.Hour))); err != nil {
		t.Fatalf("second record: %v", err)
	}

	data, err := os.ReadFile(filepath.Join(rec.Dir, "2025-06-02_Monday_return.csv"))
	if err != nil {
		t.Fatalf("read history file: %v", err)
	}
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	// One header, then a row per run: the first write is never clobbered.
	if len(lines) != 3 {
		t.Fatalf("expected header + 2 rows after same-day append, got %q", lines)
	}
}

func TestCSVRecorder_SeparatesKindsWithinSameDay(t *testing.T) {
	rec, err := NewCSVRecorder(t.TempDir())
	if err != nil {
		t.Fatalf("new recorder: %v", err)
	}

	ranAt := time.Date(2025, 6, 2, 16, 30, 0, 0, time.UTC)
	if err := rec.Record(resultSet("run-1", ranAt)); err != nil {
		t.Fatalf("record return set: %v", err)
	}
	patternSet := &model.ScanResultSet{
		ID:    "run-2",
		Kind:  model.ScanPattern,
		RanAt: ranAt,
		Occurrences: []model.PatternOccurrence{
			{Ticker: "ACME", Date: time.Date(2024, 2, 7, 0, 0, 0, 0, time.UTC), LifetimeHigh: 100, AppreciationPct: 15},
		},
	}
	if err := rec.Record(patternSet); err != nil {
		t.Fatalf("record pattern set: %v", err)
	}

	// Each kind lands in its own file, and each file stays a valid
	// uniform-width CSV table.
	for name, wantHeader := range map[string]string{
		"2025-06-02_Monday_return.csv":  "Ticker,Return",
		"2025-06-02_Monday_pattern.csv": "Ticker,Date,Lifetime_High,Appreciation",
	} {
		f, err := os.Open(filepath.Join(rec.Dir, name))
		if err != nil {
			t.Fatalf("open %s: %v", name, err)
		}
		records, err := csv.NewReader(f).ReadAll()
		f.Close()
		if err != nil {
			t.Fatalf("parse %s: %v", name, err)
		}
		if len(records) != 2 {
			t.Fatalf("%s: expected header + 1 row, got %v", name, records)
		}
		if got := strings.Join(records[0], ","); got != wantHeader {
			t.Errorf("%s header = %q, want %q", name, got, wantHeader)
		}
	}
}

func TestCSVRecorder_History(t *testing.T) {
	rec, err := NewCSVRecorder(t.TempDir())
	if err != nil {
		t.Fatalf("new recorder: %v", err)
	}

	days := []time.Time{
		time.Date(2025, 6, 3, 16, 30, 0, 0, time.UTC),
		time.Date(2025, 6, 2, 16, 30, 0, 0, time.UTC),
	}
	for i, d := range days {
		if err := rec.Record(resultSet("run", d)); err != nil {
			t.Fatalf("record %d: %v", i, err)
		}
	}

	names, err := rec.History()
	if err != nil {
		t.Fatalf("history: %v", err)
	}
	if len(names) != 2 || names[0] != "2025-06-02_Monday_return.csv" || names[1] != "2025-06-03_Tuesday_return.csv" {
		t.Errorf("history = %v", names)
	}
}

func TestCSVRecorder_FilePathRejectsTraversal(t *testing.T) {
	rec, err := NewCSVRecorder(t.TempDir())
	if err != nil {
		t.Fatalf("new recorder: %v", err)
	}

	for _, name := range []string{"../etc/passwd", "a/b.csv", "", "results.txt"} {
		if _, err := rec.FilePath(name); err == nil {
			t.Errorf("FilePath(%q) should be rejected", name)
		}
	}
}
