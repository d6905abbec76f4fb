package recorder

import (
	"database/sql"
	"fmt"
	"log"
	"sync"

	_ "modernc.org/sqlite"

	"github.com/str04/stock-scanner/internal/model"
)

// SQLiteRecorder persists scan history to a SQLite database.
type SQLiteRecorder struct {
	db *sql.DB
	mu sync.Mutex
}

// NewSQLiteRecorder opens (or creates) the SQLite database and runs migrations.
func NewSQLiteRecorder(dbPath string) (*SQLiteRecorder, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}

	// WAL mode for better concurrent read performance while scans write.
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("set WAL mode: %w", err)
	}

	r := &SQLiteRecorder{db: db}
	if err := r.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}

	log.Printf("[INFO] sqlite recorder opened: %s", dbPath)
	return r, nil
}

func (r *SQLiteRecorder) migrate() error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS scan_runs (
			id            TEXT PRIMARY KEY,
			kind          TEXT NOT NULL,
			ran_at        INTEGER NOT NULL,
			row_count     INTEGER,
			skip_count    INTEGER
		)`,
		`CREATE INDEX IF NOT EXISTS idx_runs_ran_at ON scan_runs(ran_at)`,

		`CREATE TABLE IF NOT EXISTS return_results (
			id         INTEGER PRIMARY KEY AUTOINCREMENT,
			run_id     TEXT NOT NULL,
			ticker     TEXT NOT NULL,
			return_pct REAL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_returns_run ON return_results(run_id)`,

		`CREATE TABLE IF NOT EXISTS pattern_occurrences (
			id               INTEGER PRIMARY KEY AUTOINCREMENT,
			run_id           TEXT NOT NULL,
			ticker           TEXT NOT NULL,
			date             TEXT,
			lifetime_high    REAL,
			appreciation_pct REAL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_occurrences_run ON pattern_occurrences(run_id)`,
	}

	for _, s := range stmts {
		if _, err := r.db.Exec(s); err != nil {
			return fmt.Errorf("exec %q: %w", s[:40], err)
		}
	}
	return nil
}

func (r *SQLiteRecorder) Record(set *model.ScanResultSet) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	tx, err := r.db.Begin()
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback()

	rowCount := len(set.Returns) + len(set.Occurrences)
	if _, err := tx.Exec(`INSERT INTO scan_runs (id, kind, ran_at, row_count, skip_count)
		VALUES (?,?,?,?,?)`,
		set.ID, string(set.Kind), set.RanAt.Unix(), rowCount, len(set.Skips),
	); err != nil {
		return fmt.Errorf("insert run: %w", err)
	}

	for _, row := range set.Returns {
		if _, err := tx.Exec(`INSERT INTO return_results (run_id, ticker, return_pct)
			VALUES (?,?,?)`,
			set.ID, row.Ticker, row.ReturnPct,
		); err != nil {
			return fmt.Errorf("insert return result: %w", err)
		}
	}

	for _, occ := range set.Occurrences {
		if _, err := tx.Exec(`INSERT INTO pattern_occurrences
			(run_id, ticker, date, lifetime_high, appreciation_pct)
			VALUES (?,?,?,?,?)`,
			set.ID, occ.Ticker, occ.Date.Format("2006-01-02"), occ.LifetimeHigh, occ.AppreciationPct,
		); err != nil {
			return fmt.Errorf("insert occurrence: %w", err)
		}
	}

	return tx.Commit()
}

func (r *SQLiteRecorder) Close() error {
	log.Println("[INFO] closing sqlite recorder")
	return r.db.Close()
}
