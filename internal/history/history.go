// Package history records finished swarm runs in sqlite. Writes are
// best-effort: the orchestrator logs failures and never lets them affect a
// swarm result.
package history

import (
	"database/sql"
	"fmt"
	"time"

	_ "modernc.org/sqlite"
)

const schema = `
CREATE TABLE IF NOT EXISTS swarm_runs (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	swarm_id TEXT UNIQUE NOT NULL,
	tenant_id TEXT NOT NULL,
	session_id TEXT,
	user_id TEXT,
	mode TEXT NOT NULL,
	status TEXT NOT NULL,
	agent_count INTEGER NOT NULL DEFAULT 0,
	success_count INTEGER NOT NULL DEFAULT 0,
	failure_count INTEGER NOT NULL DEFAULT 0,
	total_latency_ms INTEGER NOT NULL DEFAULT 0,
	total_tokens INTEGER NOT NULL DEFAULT 0,
	estimated_cost_usd REAL NOT NULL DEFAULT 0,
	confidence REAL,
	flyte_execution_id TEXT,
	created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
);
CREATE INDEX IF NOT EXISTS idx_swarm_runs_tenant ON swarm_runs(tenant_id);
CREATE INDEX IF NOT EXISTS idx_swarm_runs_status ON swarm_runs(status);
`

// Run is one recorded swarm run.
type Run struct {
	SwarmID          string    `json:"swarm_id"`
	TenantID         string    `json:"tenant_id"`
	SessionID        string    `json:"session_id,omitempty"`
	UserID           string    `json:"user_id,omitempty"`
	Mode             string    `json:"mode"`
	Status           string    `json:"status"`
	AgentCount       int       `json:"agent_count"`
	SuccessCount     int       `json:"success_count"`
	FailureCount     int       `json:"failure_count"`
	TotalLatencyMs   int64     `json:"total_latency_ms"`
	TotalTokens      int       `json:"total_tokens"`
	EstimatedCostUsd float64   `json:"estimated_cost_usd"`
	Confidence       *float64  `json:"confidence,omitempty"`
	FlyteExecutionID string    `json:"flyte_execution_id,omitempty"`
	CreatedAt        time.Time `json:"created_at"`
}

// Service wraps the sqlite-backed run store.
type Service struct {
	db *sql.DB
}

// NewService opens (or creates) the run store at dbPath.
func NewService(dbPath string) (*Service, error) {
	db, err := sql.Open("sqlite", "file:"+dbPath+"?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("open history db: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("apply history schema: %w", err)
	}
	return &Service{db: db}, nil
}

// RecordRun inserts one finished run.
func (s *Service) RecordRun(run Run) error {
	_, err := s.db.Exec(`INSERT INTO swarm_runs
		(swarm_id, tenant_id, session_id, user_id, mode, status,
		 agent_count, success_count, failure_count,
		 total_latency_ms, total_tokens, estimated_cost_usd,
		 confidence, flyte_execution_id)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		run.SwarmID, run.TenantID, run.SessionID, run.UserID, run.Mode, run.Status,
		run.AgentCount, run.SuccessCount, run.FailureCount,
		run.TotalLatencyMs, run.TotalTokens, run.EstimatedCostUsd,
		run.Confidence, run.FlyteExecutionID)
	if err != nil {
		return fmt.Errorf("record run %s: %w", run.SwarmID, err)
	}
	return nil
}

// GetRun returns a run by swarm ID, or nil when unknown.
func (s *Service) GetRun(swarmID string) (*Run, error) {
	row := s.db.QueryRow(`SELECT swarm_id, tenant_id, session_id, user_id, mode, status,
		agent_count, success_count, failure_count,
		total_latency_ms, total_tokens, estimated_cost_usd,
		confidence, flyte_execution_id, created_at
		FROM swarm_runs WHERE swarm_id = ?`, swarmID)

	run, err := scanRun(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get run %s: %w", swarmID, err)
	}
	return run, nil
}

// RecentRuns returns the newest runs for a tenant, most recent first.
func (s *Service) RecentRuns(tenantID string, limit int) ([]Run, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := s.db.Query(`SELECT swarm_id, tenant_id, session_id, user_id, mode, status,
		agent_count, success_count, failure_count,
		total_latency_ms, total_tokens, estimated_cost_usd,
		confidence, flyte_execution_id, created_at
		FROM swarm_runs WHERE tenant_id = ?
		ORDER BY id DESC LIMIT ?`, tenantID, limit)
	if err != nil {
		return nil, fmt.Errorf("recent runs for %s: %w", tenantID, err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		run, err := scanRun(rows)
		if err != nil {
			return nil, fmt.Errorf("scan run: %w", err)
		}
		runs = append(runs, *run)
	}
	return runs, rows.Err()
}

// Close closes the underlying database.
func (s *Service) Close() error {
	return s.db.Close()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanRun(row rowScanner) (*Run, error) {
	var run Run
	var sessionID, userID, flyteID sql.NullString
	var confidence sql.NullFloat64
	err := row.Scan(&run.SwarmID, &run.TenantID, &sessionID, &userID, &run.Mode, &run.Status,
		&run.AgentCount, &run.SuccessCount, &run.FailureCount,
		&run.TotalLatencyMs, &run.TotalTokens, &run.EstimatedCostUsd,
		&confidence, &flyteID, &run.CreatedAt)
	if err != nil {
		return nil, err
	}
	run.SessionID = sessionID.String
	run.UserID = userID.String
	run.FlyteExecutionID = flyteID.String
	if confidence.Valid {
		run.Confidence = &confidence.Float64
	}
	return &run, nil
}
