package universe

import (
	"errors"
	"strings"
)

// Source resolves the ticker universe for a scan invocation. Unlike
// per-ticker price fetches, a Source failure aborts the whole scan.
type Source interface {
	Tickers() ([]string, error)
	Name() string
}

// StaticSource serves a fixed, configured ticker list.
type StaticSource struct {
	Symbols []string
}

func NewStaticSource(symbols []string) *StaticSource {
	return &StaticSource{Symbols: symbols}
}

func (s *StaticSource) Name() string { return "static" }

func (s *StaticSource) Tickers() ([]string, error) {
	out := make([]string, 0, len(s.Symbols))
	for _, sym := range s.Symbols {
		if t := strings.TrimSpace(sym); t != "" {
			out = append(out, t)
		}
	}
	if len(out) == 0 {
		return nil, errors.New("static universe is empty")
	}
	return out, nil
}
