package model

import "time"

// WeeklyStatus is the recorded outcome for one member in one ISO week.
// At most one row exists per (member_id, week_label) pair.
type WeeklyStatus struct {
	ID                  int64     `json:"id"`
	MemberID            int64     `json:"member_id"`
	WeekLabel           string    `json:"week_label"`
	Status              string    `json:"status"`
	ExcludeReason       *string   `json:"exclude_reason"`
	ExcludeReasonDetail *string   `json:"exclude_reason_detail"`
	CreatedAt           time.Time `json:"created_at"`
}

// WeeklySummary is the cached report text for a settled week, keyed
// uniquely by week label and overwritten on re-settlement.
type WeeklySummary struct {
	ID          int64     `json:"id"`
	WeekLabel   string    `json:"week_label"`
	SummaryText string    `json:"summary_text"`
	CreatedAt   time.Time `json:"created_at"`
}
