package store

import (
	"testing"

	"github.com/jwkim/corgicheck/internal/database"
	"github.com/jwkim/corgicheck/internal/settlement"
)

func setupStatusTestDB(t *testing.T) (*WeeklyStatusStore, *MemberStore) {
	t.Helper()
	db, err := database.Open(":memory:")
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return NewWeeklyStatusStore(db), NewMemberStore(db)
}

func strPtr(s string) *string { return &s }

func TestWeeklyStatusUpsertIsKeyedByMemberAndWeek(t *testing.T) {
	ss, ms := setupStatusTestDB(t)
	m, err := ms.Create("김용진", "94")
	if err != nil {
		t.Fatal(err)
	}

	if err := ss.Upsert(m.ID, "2026-W06", "exclude", strPtr("travel"), nil); err != nil {
		t.Fatalf("upsert: %v", err)
	}
	// Same key overwrites rather than duplicating.
	if err := ss.Upsert(m.ID, "2026-W06", "injeung", nil, nil); err != nil {
		t.Fatalf("upsert again: %v", err)
	}

	got, err := ss.Get(m.ID, "2026-W06")
	if err != nil {
		t.Fatal(err)
	}
	if got == nil || got.Status != "injeung" {
		t.Fatalf("got = %+v, want injeung", got)
	}
	if got.ExcludeReason != nil {
		t.Error("overwrite kept stale exclusion reason")
	}

	byWeek, err := ss.ListByWeek("2026-W06")
	if err != nil {
		t.Fatal(err)
	}
	if len(byWeek) != 1 {
		t.Errorf("week has %d records, want 1", len(byWeek))
	}
}

func TestWeeklyStatusGetMissing(t *testing.T) {
	ss, _ := setupStatusTestDB(t)

	got, err := ss.Get(42, "2026-W06")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got != nil {
		t.Error("expected nil for missing record")
	}
}

func TestWeeklyStatusCustomReasonDetail(t *testing.T) {
	ss, ms := setupStatusTestDB(t)
	m, _ := ms.Create("장영범", "96")

	if err := ss.Upsert(m.ID, "2026-W06", "exclude", strPtr("custom"), strPtr("해외 이사")); err != nil {
		t.Fatal(err)
	}
	got, err := ss.Get(m.ID, "2026-W06")
	if err != nil {
		t.Fatal(err)
	}
	if got.ExcludeReasonDetail == nil || *got.ExcludeReasonDetail != "해외 이사" {
		t.Errorf("detail = %v", got.ExcludeReasonDetail)
	}
}

// The store must satisfy the exclusion window manager's interface so
// window writes and end scans run against real records.
func TestWeeklyStatusStoreSatisfiesStatusStore(t *testing.T) {
	ss, ms := setupStatusTestDB(t)
	m, _ := ms.Create("김용진", "94")

	var s settlement.StatusStore = ss
	if err := settlement.SetStatusRange(s, m.ID, "2026-W06", 3, settlement.StatusExclude, settlement.ReasonTravel, ""); err != nil {
		t.Fatalf("set range: %v", err)
	}

	end, ok, err := settlement.ExclusionEnd(s, m.ID, "2026-W06")
	if err != nil {
		t.Fatalf("exclusion end: %v", err)
	}
	if !ok || end != "2026-W08" {
		t.Errorf("end = (%q, %v), want (2026-W08, true)", end, ok)
	}
}
