// Package store archives pipeline artifacts in SQLite so earlier runs
// survive a crash or an aborted pipeline. The pipelines themselves never
// touch it; only the drivers and the gateway persist results.
package store

import (
	"database/sql"
	"time"

	_ "github.com/glebarez/go-sqlite"
)

type ArchiveStore struct {
	DB *sql.DB
}

func NewArchiveStore(dbPath string) (*ArchiveStore, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, err
	}

	// Create tables if not exist
	queries := []string{
		`CREATE TABLE IF NOT EXISTS plans (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			run_id TEXT,
			user_input TEXT,
			intent_json TEXT,
			plan_json TEXT,
			system_prompt TEXT,
			created DATETIME DEFAULT CURRENT_TIMESTAMP
		);`,
		`CREATE TABLE IF NOT EXISTS summaries (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			transcript TEXT,
			summary_json TEXT,
			created DATETIME DEFAULT CURRENT_TIMESTAMP
		);`,
	}
	for _, q := range queries {
		_, err = db.Exec(q)
		if err != nil {
			return nil, err
		}
	}

	return &ArchiveStore{DB: db}, nil
}

func (s *ArchiveStore) Close() error {
	return s.DB.Close()
}

// PlanRecord is one archived planning run.
type PlanRecord struct {
	ID           int64
	RunID        string
	UserInput    string
	IntentJSON   string
	PlanJSON     string
	SystemPrompt string
	Created      time.Time
}

// SummaryRecord is one archived summarization run.
type SummaryRecord struct {
	ID          int64
	Transcript  string
	SummaryJSON string
	Created     time.Time
}

func (s *ArchiveStore) SavePlan(runID, userInput, intentJSON, planJSON, systemPrompt string) (int64, error) {
	query := `INSERT INTO plans (run_id, user_input, intent_json, plan_json, system_prompt) VALUES (?, ?, ?, ?, ?)`
	res, err := s.DB.Exec(query, runID, userInput, intentJSON, planJSON, systemPrompt)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

func (s *ArchiveStore) SaveSummary(transcript, summaryJSON string) (int64, error) {
	query := `INSERT INTO summaries (transcript, summary_json) VALUES (?, ?)`
	res, err := s.DB.Exec(query, transcript, summaryJSON)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

func (s *ArchiveStore) RecentPlans(limit int) ([]PlanRecord, error) {
	query := `SELECT id, run_id, user_input, intent_json, plan_json, system_prompt, created
		FROM plans ORDER BY created DESC, id DESC LIMIT ?`
	rows, err := s.DB.Query(query, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var records []PlanRecord
	for rows.Next() {
		var r PlanRecord
		if err := rows.Scan(&r.ID, &r.RunID, &r.UserInput, &r.IntentJSON, &r.PlanJSON, &r.SystemPrompt, &r.Created); err != nil {
			return nil, err
		}
		records = append(records, r)
	}
	return records, rows.Err()
}

func (s *ArchiveStore) RecentSummaries(limit int) ([]SummaryRecord, error) {
	query := `SELECT id, transcript, summary_json, created
		FROM summaries ORDER BY created DESC, id DESC LIMIT ?`
	rows, err := s.DB.Query(query, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var records []SummaryRecord
	for rows.Next() {
		var r SummaryRecord
		if err := rows.Scan(&r.ID, &r.Transcript, &r.SummaryJSON, &r.Created); err != nil {
			return nil, err
		}
		records = append(records, r)
	}
	return records, rows.Err()
}
