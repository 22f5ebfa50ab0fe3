package recorder

import (
	"database/sql"
	"fmt"
	"strconv"
	"sync"

	"BankReserves/internal/model"
)

// sqlStore holds the insert logic shared by the SQLite and MySQL recorders.
// Both drivers accept "?" placeholders.
type sqlStore struct {
	db *sql.DB
	mu sync.Mutex
}

func (s *sqlStore) migrate(stmts []string) error {
	for _, st := range stmts {
		if _, err := s.db.Exec(st); err != nil {
			return fmt.Errorf("exec %q: %w", st[:min(40, len(st))], err)
		}
	}
	return nil
}

func (s *sqlStore) RecordRun(evt *RunEvent) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.Exec(`INSERT INTO runs
		(run_id, started_at, population, rich_threshold, reserve_percent, interest_rate, seed)
		VALUES (?,?,?,?,?,?,?)`,
		evt.RunID, evt.StartedAt.Unix(), evt.Population, evt.RichThreshold,
		evt.ReservePercent, evt.InterestRate, strconv.FormatUint(evt.Seed, 10),
	)
	return err
}

func (s *sqlStore) RecordTick(rep *model.TickReport) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.Exec(`INSERT INTO ticks
		(run_id, tick, total_loans, total_savings, interest_accrued,
		 rich, middle, poor,
		 bank_loans, bank_deposits, bank_reserves, bank_to_loan)
		VALUES (?,?,?,?,?,?,?,?,?,?,?,?)`,
		rep.RunID, rep.Tick, rep.TotalLoans, rep.TotalSavings, rep.InterestAccrued,
		rep.Census.Rich, rep.Census.Middle, rep.Census.Poor,
		rep.Bank.BankLoans, rep.Bank.Deposits, rep.Bank.Reserves, rep.Bank.BankToLoan,
	)
	return err
}

func (s *sqlStore) RecordAgents(reps []model.AgentReport) error {
	if len(reps) == 0 {
		return nil
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	stmt, err := tx.Prepare(`INSERT INTO agent_ticks (run_id, tick, person_id, wealth, loans) VALUES (?,?,?,?,?)`)
	if err != nil {
		tx.Rollback()
		return fmt.Errorf("prepare: %w", err)
	}
	defer stmt.Close()

	for _, r := range reps {
		if _, err := stmt.Exec(r.RunID, r.Tick, r.PersonID, r.Wealth, r.Loans); err != nil {
			tx.Rollback()
			return fmt.Errorf("insert agent %d: %w", r.PersonID, err)
		}
	}
	return tx.Commit()
}
