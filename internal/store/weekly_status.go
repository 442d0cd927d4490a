package store

import (
	"database/sql"
	"fmt"

	"github.com/jwkim/corgicheck/internal/model"
)

type WeeklyStatusStore struct {
	db *sql.DB
}

func NewWeeklyStatusStore(db *sql.DB) *WeeklyStatusStore {
	return &WeeklyStatusStore{db: db}
}

func scanWeeklyStatus(scanner interface{ Scan(...any) error }) (*model.WeeklyStatus, error) {
	var ws model.WeeklyStatus
	var reason, detail sql.NullString

	err := scanner.Scan(&ws.ID, &ws.MemberID, &ws.WeekLabel, &ws.Status, &reason, &detail, &ws.CreatedAt)
	if err != nil {
		return nil, err
	}

	if reason.Valid {
		ws.ExcludeReason = &reason.String
	}
	if detail.Valid {
		ws.ExcludeReasonDetail = &detail.String
	}
	return &ws, nil
}

const weeklyStatusCols = `id, member_id, week_label, status, exclude_reason, exclude_reason_detail, created_at`

// Get returns the record for one (member, week) pair, or nil if none
// exists.
func (s *WeeklyStatusStore) Get(memberID int64, weekLabel string) (*model.WeeklyStatus, error) {
	row := s.db.QueryRow(
		`SELECT `+weeklyStatusCols+` FROM weekly_status WHERE member_id = ? AND week_label = ?`,
		memberID, weekLabel,
	)
	ws, err := scanWeeklyStatus(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get weekly status: %w", err)
	}
	return ws, nil
}

// Upsert writes the record for one (member, week) pair, overwriting
// any existing row for the same key.
func (s *WeeklyStatusStore) Upsert(memberID int64, weekLabel string, status string, reason, detail *string) error {
	var r, d sql.NullString
	if reason != nil {
		r = sql.NullString{String: *reason, Valid: true}
	}
	if detail != nil {
		d = sql.NullString{String: *detail, Valid: true}
	}

	_, err := s.db.Exec(
		`INSERT INTO weekly_status (member_id, week_label, status, exclude_reason, exclude_reason_detail)
		 VALUES (?, ?, ?, ?, ?)
		 ON CONFLICT(member_id, week_label) DO UPDATE SET
		   status = excluded.status,
		   exclude_reason = excluded.exclude_reason,
		   exclude_reason_detail = excluded.exclude_reason_detail`,
		memberID, weekLabel, status, r, d,
	)
	if err != nil {
		return fmt.Errorf("upsert weekly status: %w", err)
	}
	return nil
}

// ListByWeek returns all records for a week keyed by member id.
func (s *WeeklyStatusStore) ListByWeek(weekLabel string) (map[int64]model.WeeklyStatus, error) {
	rows, err := s.db.Query(
		`SELECT `+weeklyStatusCols+` FROM weekly_status WHERE week_label = ?`,
		weekLabel,
	)
	if err != nil {
		return nil, fmt.Errorf("list weekly statuses: %w", err)
	}
	defer rows.Close()

	statuses := make(map[int64]model.WeeklyStatus)
	for rows.Next() {
		ws, err := scanWeeklyStatus(rows)
		if err != nil {
			return nil, fmt.Errorf("scan weekly status: %w", err)
		}
		statuses[ws.MemberID] = *ws
	}
	return statuses, rows.Err()
}

func (s *WeeklyStatusStore) Delete(memberID int64, weekLabel string) error {
	_, err := s.db.Exec(
		`DELETE FROM weekly_status WHERE member_id = ? AND week_label = ?`,
		memberID, weekLabel,
	)
	if err != nil {
		return fmt.Errorf("delete weekly status: %w", err)
	}
	return nil
}
