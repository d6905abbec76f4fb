package scheduler

import (
	"fmt"
	"log"

	"github.com/robfig/cron/v3"

	"github.com/str04/stock-scanner/internal/recorder"
	"github.com/str04/stock-scanner/internal/scan"
)

// Scheduler runs the daily scan on a cron timer. The engine itself is
// stateless and trigger-agnostic; all wall-clock scheduling lives here.
type Scheduler struct {
	Cron     *cron.Cron
	Engine   *scan.Engine
	Recorder recorder.Recorder
	Params   scan.ReturnParams
}

// NewScheduler creates a new Scheduler.
func NewScheduler(engine *scan.Engine, rec recorder.Recorder, params scan.ReturnParams) *Scheduler {
	return &Scheduler{
		Cron:     cron.New(cron.WithSeconds()),
		Engine:   engine,
		Recorder: rec,
		Params:   params,
	}
}

// RegisterDaily registers the daily scan task.
func (s *Scheduler) RegisterDaily(spec string) error {
	if _, err := s.Cron.AddFunc(spec, s.dailyScan); err != nil {
		return fmt.Errorf("register daily scan: %w", err)
	}
	return nil
}

// Start starts the cron scheduler.
func (s *Scheduler) Start() {
	s.Cron.Start()
	log.Println("[INFO] scheduler started")
}

// Stop stops the cron scheduler gracefully.
func (s *Scheduler) Stop() {
	s.Cron.Stop()
	log.Println("[INFO] scheduler stopped")
}

// RunNow executes the daily scan immediately (manual trigger / RUN_ON_START).
func (s *Scheduler) RunNow() {
	s.dailyScan()
}

func (s *Scheduler) dailyScan() {
	log.Println("[INFO] running daily scan")
	set, err := s.Engine.RunReturnScan(s.Params)
	if err != nil {
		log.Printf("[ERROR] daily scan: %v", err)
		return
	}
	if err := s.Recorder.Record(set); err != nil {
		log.Printf("[ERROR] record daily scan %s: %v", set.ID, err)
	}
	log.Printf("[INFO] daily scan %s complete: %d matching tickers", set.ID, len(set.Returns))
}
