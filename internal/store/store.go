// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package store persists analysis reports to a SQLite run history. The
// full report is stored as JSON alongside relational per-analyzer and
// per-finding rows for querying.
package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "github.com/mattn/go-sqlite3"
	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/paper-analyzer/pkg/types"
)

const dbFile = "analyzer.db"

// Store manages the run-history SQLite database.
type Store struct {
	db  *sql.DB
	dir string
}

// NewStore opens or creates the database at dir/analyzer.db, creating
// the schema if it does not exist.
func NewStore(cfg types.StoreConfig) (*Store, error) {
	if err := os.MkdirAll(cfg.Dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating store directory: %w", err)
	}

	dbPath := filepath.Join(cfg.Dir, dbFile)
	db, err := sql.Open("sqlite3", dbPath+"?_journal_mode=WAL&_foreign_keys=on")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	s := &Store{db: db, dir: cfg.Dir}
	if err := s.createSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}
	return s, nil
}

// Close releases the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) createSchema() error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS runs (
			run_id TEXT PRIMARY KEY,
			title TEXT,
			authors TEXT,
			year INTEGER,
			success INTEGER NOT NULL,
			score INTEGER NOT NULL,
			total_time_seconds REAL,
			total_tokens INTEGER,
			estimated_cost REAL,
			created_at TEXT NOT NULL,
			report TEXT NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS results (
			run_id TEXT NOT NULL REFERENCES runs(run_id),
			analyzer TEXT NOT NULL,
			status TEXT NOT NULL,
			pass INTEGER NOT NULL,
			elapsed_seconds REAL,
			tokens INTEGER,
			degraded INTEGER NOT NULL,
			error TEXT,
			PRIMARY KEY (run_id, analyzer)
		)`,
		`CREATE TABLE IF NOT EXISTS findings (
			run_id TEXT NOT NULL REFERENCES runs(run_id),
			finding_id INTEGER NOT NULL,
			source TEXT NOT NULL,
			type TEXT NOT NULL,
			priority TEXT NOT NULL,
			content TEXT NOT NULL,
			relevant_to TEXT NOT NULL,
			created_at TEXT NOT NULL,
			PRIMARY KEY (run_id, finding_id)
		)`,
		`CREATE INDEX IF NOT EXISTS idx_results_status ON results(status)`,
		`CREATE INDEX IF NOT EXISTS idx_findings_type ON findings(type)`,
	}

	for _, stmt := range statements {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("executing schema statement: %w", err)
		}
	}
	return nil
}

// SaveReport persists one report transactionally.
func (s *Store) SaveReport(ctx context.Context, report *types.AnalysisReport) error {
	raw, err := json.Marshal(report)
	if err != nil {
		return fmt.Errorf("encoding report: %w", err)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx,
		`INSERT OR REPLACE INTO runs (run_id, title, authors, year, success, score,
			total_time_seconds, total_tokens, estimated_cost, created_at, report)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		report.RunID,
		report.Meta.Title,
		strings.Join(report.Meta.Authors, "; "),
		report.Meta.Year,
		boolInt(report.Success),
		report.Validation.Score,
		report.Metrics.TotalTime.Seconds(),
		report.Metrics.TotalTokens,
		report.Metrics.EstimatedCost,
		report.CreatedAt.UTC().Format(time.RFC3339Nano),
		string(raw),
	)
	if err != nil {
		return fmt.Errorf("inserting run: %w", err)
	}

	for name, res := range report.Results {
		_, err = tx.ExecContext(ctx,
			`INSERT OR REPLACE INTO results (run_id, analyzer, status, pass,
				elapsed_seconds, tokens, degraded, error)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
			report.RunID, string(name), string(res.Status), res.Pass,
			res.Elapsed.Seconds(), res.TokensUsed, boolInt(res.Degraded), res.Error,
		)
		if err != nil {
			return fmt.Errorf("inserting result %s: %w", name, err)
		}
	}

	for _, f := range report.Findings {
		content, err := json.Marshal(f.Content)
		if err != nil {
			return fmt.Errorf("encoding finding %d: %w", f.ID, err)
		}
		relevant := make([]string, len(f.RelevantTo))
		for i, n := range f.RelevantTo {
			relevant[i] = string(n)
		}
		_, err = tx.ExecContext(ctx,
			`INSERT OR REPLACE INTO findings (run_id, finding_id, source, type,
				priority, content, relevant_to, created_at)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
			report.RunID, f.ID, string(f.Source), string(f.Type),
			string(f.Priority), string(content), strings.Join(relevant, ","),
			f.CreatedAt.UTC().Format(time.RFC3339Nano),
		)
		if err != nil {
			return fmt.Errorf("inserting finding %d: %w", f.ID, err)
		}
	}

	return tx.Commit()
}

// RunSummary is one row of the run history listing.
type RunSummary struct {
	RunID     string    `json:"run_id" yaml:"run_id"`
	Title     string    `json:"title" yaml:"title"`
	Success   bool      `json:"success" yaml:"success"`
	Score     int       `json:"score" yaml:"score"`
	Tokens    int       `json:"tokens" yaml:"tokens"`
	CreatedAt time.Time `json:"created_at" yaml:"created_at"`
}

// ListRuns returns run summaries, newest first.
func (s *Store) ListRuns(ctx context.Context) ([]RunSummary, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT run_id, title, success, score, total_tokens, created_at
		FROM runs ORDER BY created_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("listing runs: %w", err)
	}
	defer rows.Close()

	var out []RunSummary
	for rows.Next() {
		var r RunSummary
		var success int
		var created string
		if err := rows.Scan(&r.RunID, &r.Title, &success, &r.Score, &r.Tokens, &created); err != nil {
			return nil, fmt.Errorf("scanning run row: %w", err)
		}
		r.Success = success != 0
		if t, err := time.Parse(time.RFC3339Nano, created); err == nil {
			r.CreatedAt = t
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

// LoadReport fetches a stored report by run id.
func (s *Store) LoadReport(ctx context.Context, runID string) (*types.AnalysisReport, error) {
	var raw string
	err := s.db.QueryRowContext(ctx,
		`SELECT report FROM runs WHERE run_id = ?`, runID).Scan(&raw)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("run %s not found", runID)
	}
	if err != nil {
		return nil, fmt.Errorf("loading run %s: %w", runID, err)
	}

	var report types.AnalysisReport
	if err := json.Unmarshal([]byte(raw), &report); err != nil {
		return nil, fmt.Errorf("decoding run %s: %w", runID, err)
	}
	return &report, nil
}

// ExportFindingsYAML writes a run's findings to dir/<runID>-findings.yaml
// and returns the file path.
func (s *Store) ExportFindingsYAML(ctx context.Context, runID string) (string, error) {
	report, err := s.LoadReport(ctx, runID)
	if err != nil {
		return "", err
	}

	raw, err := yaml.Marshal(struct {
		RunID    string          `yaml:"run_id"`
		Total    int             `yaml:"total_findings"`
		Findings []types.Finding `yaml:"findings"`
	}{RunID: runID, Total: len(report.Findings), Findings: report.Findings})
	if err != nil {
		return "", fmt.Errorf("encoding findings: %w", err)
	}

	path := filepath.Join(s.dir, runID+"-findings.yaml")
	if err := os.WriteFile(path, raw, 0o644); err != nil {
		return "", fmt.Errorf("writing findings export: %w", err)
	}
	return path, nil
}

func boolInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
