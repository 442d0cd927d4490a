package store

import (
	"database/sql"
	"fmt"

	"github.com/jwkim/corgicheck/internal/model"
)

type MemberStore struct {
	db *sql.DB
}

func NewMemberStore(db *sql.DB) *MemberStore {
	return &MemberStore{db: db}
}

func scanMember(scanner interface{ Scan(...any) error }) (*model.Member, error) {
	var m model.Member
	var leftDate, leftReason sql.NullString

	err := scanner.Scan(&m.ID, &m.Name, &m.BirthDate, &m.IsActive, &leftDate, &leftReason, &m.CreatedAt)
	if err != nil {
		return nil, err
	}

	if leftDate.Valid {
		m.LeftDate = &leftDate.String
	}
	if leftReason.Valid {
		m.LeftReason = &leftReason.String
	}
	return &m, nil
}

const memberCols = `id, name, birth_date, is_active, left_date, left_reason, created_at`

func (s *MemberStore) Create(name, birthDate string) (*model.Member, error) {
	result, err := s.db.Exec(
		`INSERT INTO members (name, birth_date) VALUES (?, ?)`,
		name, birthDate,
	)
	if err != nil {
		return nil, fmt.Errorf("insert member: %w", err)
	}
	id, err := result.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("last insert id: %w", err)
	}
	return s.GetByID(id)
}

func (s *MemberStore) GetByID(id int64) (*model.Member, error) {
	row := s.db.QueryRow(`SELECT `+memberCols+` FROM members WHERE id = ?`, id)
	m, err := scanMember(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get member: %w", err)
	}
	return m, nil
}

// List returns members ordered by name. With includeLeft false, only
// active members are returned.
func (s *MemberStore) List(includeLeft bool) ([]model.Member, error) {
	query := `SELECT ` + memberCols + ` FROM members`
	if !includeLeft {
		query += ` WHERE is_active = 1`
	}
	query += ` ORDER BY name ASC, id ASC`

	rows, err := s.db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("list members: %w", err)
	}
	defer rows.Close()

	var members []model.Member
	for rows.Next() {
		m, err := scanMember(rows)
		if err != nil {
			return nil, fmt.Errorf("scan member: %w", err)
		}
		members = append(members, *m)
	}
	return members, rows.Err()
}

func (s *MemberStore) Update(id int64, name, birthDate string) (*model.Member, error) {
	_, err := s.db.Exec(
		`UPDATE members SET name = ?, birth_date = ? WHERE id = ?`,
		name, birthDate, id,
	)
	if err != nil {
		return nil, fmt.Errorf("update member: %w", err)
	}
	return s.GetByID(id)
}

// Leave deactivates a member, recording when and why. The member's
// weekly records are kept.
func (s *MemberStore) Leave(id int64, leftDate, leftReason string) error {
	_, err := s.db.Exec(
		`UPDATE members SET is_active = 0, left_date = ?, left_reason = ? WHERE id = ?`,
		leftDate, leftReason, id,
	)
	if err != nil {
		return fmt.Errorf("leave member: %w", err)
	}
	return nil
}

// Return reactivates a member. The departure history stays in place.
func (s *MemberStore) Return(id int64) error {
	_, err := s.db.Exec(`UPDATE members SET is_active = 1 WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("return member: %w", err)
	}
	return nil
}

// Delete hard-deletes a member together with all of their weekly
// records.
func (s *MemberStore) Delete(id int64) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec(`DELETE FROM weekly_status WHERE member_id = ?`, id); err != nil {
		return fmt.Errorf("delete member statuses: %w", err)
	}
	if _, err := tx.Exec(`DELETE FROM members WHERE id = ?`, id); err != nil {
		return fmt.Errorf("delete member: %w", err)
	}
	return tx.Commit()
}
