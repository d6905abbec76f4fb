package scan

import (
	"sort"

	"github.com/str04/stock-scanner/internal/calculator"
	"github.com/str04/stock-scanner/internal/model"
)

// Summarize computes aggregate statistics over pattern occurrences:
// totals, the share at or above successThreshold (percent), and
// per-year occurrence counts in ascending year order. Occurrences
// without a date are excluded from the year buckets only.
func Summarize(occurrences []model.PatternOccurrence, successThreshold float64) model.PatternSummary {
	s := model.PatternSummary{
		TotalInstances: len(occurrences),
	}

	byYear := make(map[int]int)
	for _, o := range occurrences {
		if o.AppreciationPct >= successThreshold {
			s.SuccessfulInstances++
		}
		if o.Date.IsZero() {
			continue
		}
		byYear[o.Date.Year()]++
	}

	if s.TotalInstances > 0 {
		s.SuccessRate = calculator.Round2(float64(s.SuccessfulInstances) / float64(s.TotalInstances) * 100)
	}

	years := make([]int, 0, len(byYear))
	for y := range byYear {
		years = append(years, y)
	}
	sort.Ints(years)
	for _, y := range years {
		s.ByYear = append(s.ByYear, model.YearCount{Year: y, Count: byYear[y]})
	}
	return s
}
