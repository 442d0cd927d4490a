package settlement

import (
	"fmt"

	"github.com/jwkim/corgicheck/internal/model"
	"github.com/jwkim/corgicheck/internal/week"
)

const (
	// A manual status can be declared over 1–8 consecutive weeks.
	MinWindowWeeks = 1
	MaxWindowWeeks = 8

	// Safety bound on the forward scan when deriving where a recorded
	// exclusion run ends.
	exclusionScanCap = 16
)

// StatusStore is the slice of the record store the exclusion window
// manager needs. *store.WeeklyStatusStore satisfies it.
type StatusStore interface {
	Get(memberID int64, weekLabel string) (*model.WeeklyStatus, error)
	Upsert(memberID int64, weekLabel string, status string, reason, detail *string) error
}

// SetStatusRange upserts an identical status record for windowWeeks
// consecutive ISO weeks starting at startWeek. Each week is written
// independently; a failure mid-run leaves earlier weeks applied, and
// re-running is safe because every week-write is an idempotent upsert.
func SetStatusRange(s StatusStore, memberID int64, startWeek string, windowWeeks int, status Status, reason Reason, detail string) error {
	if windowWeeks < MinWindowWeeks || windowWeeks > MaxWindowWeeks {
		return fmt.Errorf("window length %d out of range [%d,%d]", windowWeeks, MinWindowWeeks, MaxWindowWeeks)
	}
	if _, _, err := week.Parse(startWeek); err != nil {
		return err
	}
	if !status.Valid() {
		return fmt.Errorf("invalid status %q", status)
	}
	if status == StatusExclude {
		if !reason.Valid() {
			return fmt.Errorf("invalid exclusion reason %q", reason)
		}
		if reason == ReasonCustom && detail == "" {
			return fmt.Errorf("custom exclusion reason requires detail text")
		}
	}

	var reasonPtr, detailPtr *string
	if status == StatusExclude {
		rs := string(reason)
		reasonPtr = &rs
		if detail != "" {
			detailPtr = &detail
		}
	}

	label := startWeek
	for i := 0; i < windowWeeks; i++ {
		if i > 0 {
			next, err := week.Next(label)
			if err != nil {
				return fmt.Errorf("advance week from %s: %w", label, err)
			}
			label = next
		}
		if err := s.Upsert(memberID, label, string(status), reasonPtr, detailPtr); err != nil {
			return fmt.Errorf("write status for %s: %w", label, err)
		}
	}
	return nil
}

// ExclusionEnd scans forward from startWeek while each visited week is
// recorded as excluded, and returns the last contiguous excluded week.
// ok is false when startWeek itself is not excluded. The end is always
// derived from stored rows, never persisted, so ad-hoc edits on
// individual weeks are reflected immediately.
func ExclusionEnd(s StatusStore, memberID int64, startWeek string) (end string, ok bool, err error) {
	label := startWeek
	for i := 0; i < exclusionScanCap; i++ {
		ws, err := s.Get(memberID, label)
		if err != nil {
			return "", false, fmt.Errorf("read status for %s: %w", label, err)
		}
		if ws == nil || Status(ws.Status) != StatusExclude {
			break
		}
		end, ok = label, true

		next, err := week.Next(label)
		if err != nil {
			return "", false, fmt.Errorf("advance week from %s: %w", label, err)
		}
		label = next
	}
	return end, ok, nil
}
