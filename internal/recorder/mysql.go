package recorder

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"strings"
	"time"

	_ "github.com/go-sql-driver/mysql"
)

// MySQLRecorder persists per-tick metrics to MySQL using the same tables as
// the SQLite recorder.
type MySQLRecorder struct {
	sqlStore
}

// NewMySQLRecorder connects to dsn and creates the tables if needed.
func NewMySQLRecorder(dsn string) (*MySQLRecorder, error) {
	if strings.TrimSpace(dsn) == "" {
		return nil, fmt.Errorf("mysql dsn is required")
	}
	db, err := sql.Open("mysql", dsn)
	if err != nil {
		return nil, fmt.Errorf("open mysql: %w", err)
	}
	db.SetMaxOpenConns(4)
	db.SetMaxIdleConns(2)
	db.SetConnMaxLifetime(30 * time.Minute)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping mysql: %w", err)
	}

	r := &MySQLRecorder{sqlStore{db: db}}
	if err := r.migrate(mysqlSchema); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}
	log.Println("[INFO] mysql recorder connected")
	return r, nil
}

var mysqlSchema = []string{
	`CREATE TABLE IF NOT EXISTS runs (
		run_id          VARCHAR(36) PRIMARY KEY,
		started_at      BIGINT NOT NULL,
		population      INT,
		rich_threshold  DOUBLE,
		reserve_percent DOUBLE,
		interest_rate   DOUBLE,
		seed            VARCHAR(20)
	)`,
	`CREATE TABLE IF NOT EXISTS ticks (
		id               BIGINT AUTO_INCREMENT PRIMARY KEY,
		run_id           VARCHAR(36) NOT NULL,
		tick             INT NOT NULL,
		total_loans      DOUBLE,
		total_savings    DOUBLE,
		interest_accrued DOUBLE,
		rich             INT,
		middle           INT,
		poor             INT,
		bank_loans       DOUBLE,
		bank_deposits    DOUBLE,
		bank_reserves    DOUBLE,
		bank_to_loan     DOUBLE,
		INDEX idx_ticks_run (run_id, tick)
	)`,
	`CREATE TABLE IF NOT EXISTS agent_ticks (
		id        BIGINT AUTO_INCREMENT PRIMARY KEY,
		run_id    VARCHAR(36) NOT NULL,
		tick      INT NOT NULL,
		person_id INT NOT NULL,
		wealth    DOUBLE,
		loans     DOUBLE,
		INDEX idx_agent_ticks_run (run_id, tick)
	)`,
}

func (r *MySQLRecorder) Close() error {
	log.Println("[INFO] closing mysql recorder")
	return r.db.Close()
}
