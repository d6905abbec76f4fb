package recorder

import "github.com/str04/stock-scanner/internal/model"

// Recorder persists scan result sets for later inspection.
type Recorder interface {
	Record(set *model.ScanResultSet) error
	Close() error
}

// Multi fans a result set out to several recorders. A failing sink does
// not stop the others; the first error is reported.
type Multi []Recorder

func (m Multi) Record(set *model.ScanResultSet) error {
	var firstErr error
	for _, r := range m {
		if err := r.Record(set); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}

func (m Multi) Close() error {
	var firstErr error
	for _, r := range m {
		if err := r.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}
