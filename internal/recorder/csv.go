package recorder

import (
	"encoding/csv"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/str04/stock-scanner/internal/model"
)

// CSVRecorder writes scan results to one CSV file per calendar day and
// scan kind in a history directory. Files are created with a header on
// first write and appended to afterwards; an existing file is never
// truncated.
type CSVRecorder struct {
	Dir string
}

// NewCSVRecorder creates the history directory if needed.
func NewCSVRecorder(dir string) (*CSVRecorder, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create history dir: %w", err)
	}
	return &CSVRecorder{Dir: dir}, nil
}

// fileName keys the history by scan date and kind, e.g.
// "2025-06-02_Monday_return.csv". The two scan kinds have different
// row widths, so they never share a file.
func fileName(set *model.ScanResultSet) string {
	return fmt.Sprintf("%s_%s.csv", set.RanAt.Format("2006-01-02_Monday"), set.Kind)
}

func (r *CSVRecorder) Record(set *model.ScanResultSet) error {
	headers, rows := set.Table()
	path := filepath.Join(r.Dir, fileName(set))

	_, statErr := os.Stat(path)
	isNew := os.IsNotExist(statErr)

	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return fmt.Errorf("open history file: %w", err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if isNew {
		if err := w.Write(headers); err != nil {
			return fmt.Errorf("write header: %w", err)
		}
	}
	for _, row := range rows {
		if err := w.Write(row); err != nil {
			return fmt.Errorf("write row: %w", err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("flush csv: %w", err)
	}

	log.Printf("[INFO] results saved to %s (%d rows)", path, len(rows))
	return nil
}

func (r *CSVRecorder) Close() error { return nil }

// History lists the saved scan files, newest name last.
func (r *CSVRecorder) History() ([]string, error) {
	entries, err := os.ReadDir(r.Dir)
	if err != nil {
		return nil, fmt.Errorf("read history dir: %w", err)
	}
	var names []string
	for _, e := range entries {
		if !e.IsDir() && strings.HasSuffix(e.Name(), ".csv") {
			names = append(names, e.Name())
		}
	}
	sort.Strings(names)
	return names, nil
}

// FilePath resolves a history file name to its path, rejecting names
// that would escape the history directory.
func (r *CSVRecorder) FilePath(name string) (string, error) {
	if name == "" || name != filepath.Base(name) || !strings.HasSuffix(name, ".csv") {
		return "", fmt.Errorf("invalid history file name %q", name)
	}
	path := filepath.Join(r.Dir, name)
	if _, err := os.Stat(path); err != nil {
		return "", fmt.Errorf("history file %q: %w", name, err)
	}
	return path, nil
}
