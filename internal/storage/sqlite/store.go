// Package sqlite persists completed pipeline runs so past assessments and
// decisions can be reviewed from the CLI.
package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	_ "github.com/mattn/go-sqlite3"

	"github.com/redreef/alphaflow/internal/models"
)

type Store struct {
	db *sql.DB
}

// RunRecord is one persisted pipeline run.
type RunRecord struct {
	ID                 string
	Ticker             string
	StartDate          string
	EndDate            string
	RiskScore          int
	TradingAction      string
	MaxPositionSize    float64
	DecisionAction     string
	DecisionQuantity   int64
	DecisionConfidence float64
	AssessmentJSON     string
	DecisionJSON       string
	CreatedAt          string
}

func Open(dbPath string) (*Store, error) {
	if strings.TrimSpace(dbPath) == "" {
		return nil, fmt.Errorf("db path is required")
	}
	if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
		return nil, fmt.Errorf("create db dir: %w", err)
	}

	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}

	pragmas := []string{
		"PRAGMA journal_mode=WAL;",
		"PRAGMA busy_timeout=3000;",
		"PRAGMA synchronous=NORMAL;",
	}
	for _, p := range pragmas {
		if _, err := db.Exec(p); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("set pragma %s: %w", p, err)
		}
	}

	if err := initSchema(db); err != nil {
		_ = db.Close()
		return nil, err
	}
	return &Store{db: db}, nil
}

func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

func initSchema(db *sql.DB) error {
	schema := `
CREATE TABLE IF NOT EXISTS runs (
    id TEXT PRIMARY KEY,
    ticker TEXT NOT NULL,
    start_date TEXT NOT NULL,
    end_date TEXT NOT NULL,
    risk_score INTEGER NOT NULL,
    trading_action TEXT NOT NULL,
    max_position_size REAL NOT NULL,
    decision_action TEXT NOT NULL,
    decision_quantity INTEGER NOT NULL,
    decision_confidence REAL NOT NULL,
    assessment_json TEXT NOT NULL DEFAULT '',
    decision_json TEXT NOT NULL DEFAULT '',
    created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
);

CREATE INDEX IF NOT EXISTS idx_runs_ticker_created ON runs(ticker, created_at);
`
	if _, err := db.Exec(schema); err != nil {
		return fmt.Errorf("init schema: %w", err)
	}
	return nil
}

// SaveRun persists a completed pipeline state. The state must carry both
// the assessment and the decision.
func (s *Store) SaveRun(ctx context.Context, id string, state *models.PipelineState) error {
	if state.Assessment == nil || state.Decision == nil {
		return fmt.Errorf("run %s is incomplete", id)
	}

	assessmentJSON, err := json.Marshal(state.Assessment)
	if err != nil {
		return fmt.Errorf("serialize assessment: %w", err)
	}
	decisionJSON, err := json.Marshal(state.Decision)
	if err != nil {
		return fmt.Errorf("serialize decision: %w", err)
	}

	_, err = s.db.ExecContext(ctx, `
INSERT INTO runs (
    id, ticker, start_date, end_date,
    risk_score, trading_action, max_position_size,
    decision_action, decision_quantity, decision_confidence,
    assessment_json, decision_json
) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
`,
		id, state.Ticker, state.StartDate, state.EndDate,
		state.Assessment.RiskScore, state.Assessment.TradingAction, state.Assessment.MaxPositionSize,
		state.Decision.Action, state.Decision.Quantity, state.Decision.Confidence,
		string(assessmentJSON), string(decisionJSON))
	if err != nil {
		return fmt.Errorf("save run %s: %w", id, err)
	}
	return nil
}

// ListRuns returns the most recent runs, optionally filtered by ticker.
func (s *Store) ListRuns(ctx context.Context, ticker string, limit int) ([]RunRecord, error) {
	if limit <= 0 {
		limit = 20
	}

	query := `
SELECT id, ticker, start_date, end_date,
       risk_score, trading_action, max_position_size,
       decision_action, decision_quantity, decision_confidence,
       assessment_json, decision_json, created_at
FROM runs`
	args := []any{}
	if ticker != "" {
		query += " WHERE ticker = ?"
		args = append(args, strings.ToUpper(strings.TrimSpace(ticker)))
	}
	query += " ORDER BY created_at DESC, id DESC LIMIT ?"
	args = append(args, limit)

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list runs: %w", err)
	}
	defer rows.Close()

	var out []RunRecord
	for rows.Next() {
		var r RunRecord
		if err := rows.Scan(
			&r.ID, &r.Ticker, &r.StartDate, &r.EndDate,
			&r.RiskScore, &r.TradingAction, &r.MaxPositionSize,
			&r.DecisionAction, &r.DecisionQuantity, &r.DecisionConfidence,
			&r.AssessmentJSON, &r.DecisionJSON, &r.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan run: %w", err)
		}
		out = append(out, r)
	}
	return out, rows.Err()
}
