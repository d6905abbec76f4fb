package model

import "time"

// PriceBar represents a single daily price record. Fetchers return
// bars ascending by date; a series may be empty or shorter than the
// requested range, and both are valid states.
type PriceBar struct {
	Date     time.Time
	Open     float64
	High     float64
	Low      float64
	Close    float64
	AdjClose float64
}
