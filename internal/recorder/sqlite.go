package recorder

import (
	"database/sql"
	"fmt"
	"log"

	_ "modernc.org/sqlite"
)

// SQLiteRecorder persists per-tick metrics to a SQLite database.
type SQLiteRecorder struct {
	sqlStore
}

// NewSQLiteRecorder opens (or creates) the SQLite database and runs migrations.
func NewSQLiteRecorder(dbPath string) (*SQLiteRecorder, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}

	// WAL so dashboards can read while a run is writing.
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("set WAL mode: %w", err)
	}

	r := &SQLiteRecorder{sqlStore{db: db}}
	if err := r.migrate(sqliteSchema); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}

	log.Printf("[INFO] sqlite recorder opened: %s", dbPath)
	return r, nil
}

var sqliteSchema = []string{
	`CREATE TABLE IF NOT EXISTS runs (
		run_id          TEXT PRIMARY KEY,
		started_at      INTEGER NOT NULL,
		population      INTEGER,
		rich_threshold  REAL,
		reserve_percent REAL,
		interest_rate   REAL,
		seed            TEXT
	)`,

	`CREATE TABLE IF NOT EXISTS ticks (
		id               INTEGER PRIMARY KEY AUTOINCREMENT,
		run_id           TEXT NOT NULL,
		tick             INTEGER NOT NULL,
		total_loans      REAL,
		total_savings    REAL,
		interest_accrued REAL,
		rich             INTEGER,
		middle           INTEGER,
		poor             INTEGER,
		bank_loans       REAL,
		bank_deposits    REAL,
		bank_reserves    REAL,
		bank_to_loan     REAL
	)`,
	`CREATE INDEX IF NOT EXISTS idx_ticks_run ON ticks(run_id, tick)`,

	`CREATE TABLE IF NOT EXISTS agent_ticks (
		id        INTEGER PRIMARY KEY AUTOINCREMENT,
		run_id    TEXT NOT NULL,
		tick      INTEGER NOT NULL,
		person_id INTEGER NOT NULL,
		wealth    REAL,
		loans     REAL
	)`,
	`CREATE INDEX IF NOT EXISTS idx_agent_ticks_run ON agent_ticks(run_id, tick)`,
}

func (r *SQLiteRecorder) Close() error {
	log.Println("[INFO] closing sqlite recorder")
	return r.db.Close()
}
