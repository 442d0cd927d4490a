package store

import (
	"database/sql"
	"fmt"

	"github.com/jwkim/corgicheck/internal/model"
)

type SummaryStore struct {
	db *sql.DB
}

func NewSummaryStore(db *sql.DB) *SummaryStore {
	return &SummaryStore{db: db}
}

const summaryCols = `id, week_label, summary_text, created_at`

// Upsert stores the rendered report for a week, replacing any earlier
// rendering from a previous settlement run.
func (s *SummaryStore) Upsert(weekLabel, summaryText string) error {
	_, err := s.db.Exec(
		`INSERT INTO weekly_summary (week_label, summary_text) VALUES (?, ?)
		 ON CONFLICT(week_label) DO UPDATE SET summary_text = excluded.summary_text`,
		weekLabel, summaryText,
	)
	if err != nil {
		return fmt.Errorf("upsert weekly summary: %w", err)
	}
	return nil
}

func (s *SummaryStore) Get(weekLabel string) (*model.WeeklySummary, error) {
	var ws model.WeeklySummary
	err := s.db.QueryRow(
		`SELECT `+summaryCols+` FROM weekly_summary WHERE week_label = ?`,
		weekLabel,
	).Scan(&ws.ID, &ws.WeekLabel, &ws.SummaryText, &ws.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get weekly summary: %w", err)
	}
	return &ws, nil
}

// ListWeeks returns the labels of all settled weeks, newest first.
func (s *SummaryStore) ListWeeks() ([]string, error) {
	rows, err := s.db.Query(`SELECT week_label FROM weekly_summary ORDER BY week_label DESC`)
	if err != nil {
		return nil, fmt.Errorf("list summary weeks: %w", err)
	}
	defer rows.Close()

	var weeks []string
	for rows.Next() {
		var label string
		if err := rows.Scan(&label); err != nil {
			return nil, fmt.Errorf("scan week label: %w", err)
		}
		weeks = append(weeks, label)
	}
	return weeks, rows.Err()
}
