package recorder

import "github.com/str04/stock-scanner/internal/model"

// NoopRecorder is a no-op implementation used when a sink is not configured.
type NoopRecorder struct{}

func NewNoopRecorder() *NoopRecorder { return &NoopRecorder{} }

func (n *NoopRecorder) Record(_ *model.ScanResultSet) error { return nil }
func (n *NoopRecorder) Close() error                        { return nil }
