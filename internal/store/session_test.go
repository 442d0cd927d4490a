package store

import (
	"testing"

	"github.com/jwkim/corgicheck/internal/database"
)

func setupSessionTestDB(t *testing.T) *SessionStore {
	t.Helper()
	db, err := database.Open(":memory:")
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return NewSessionStore(db)
}

func TestSessionLifecycle(t *testing.T) {
	ss := setupSessionTestDB(t)

	sess, err := ss.Create()
	if err != nil {
		t.Fatalf("create session: %v", err)
	}
	if len(sess.Token) != 64 {
		t.Errorf("token length = %d, want 64 hex chars", len(sess.Token))
	}

	got, err := ss.GetByToken(sess.Token)
	if err != nil {
		t.Fatalf("get session: %v", err)
	}
	if got == nil || got.ID != sess.ID {
		t.Errorf("got = %+v", got)
	}

	if err := ss.Delete(sess.Token); err != nil {
		t.Fatalf("delete: %v", err)
	}
	got, err = ss.GetByToken(sess.Token)
	if err != nil {
		t.Fatal(err)
	}
	if got != nil {
		t.Error("session still valid after delete")
	}
}

func TestSessionUnknownToken(t *testing.T) {
	ss := setupSessionTestDB(t)

	got, err := ss.GetByToken("nope")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got != nil {
		t.Error("expected nil for unknown token")
	}
}

func TestSessionTokensUnique(t *testing.T) {
	ss := setupSessionTestDB(t)

	a, err := ss.Create()
	if err != nil {
		t.Fatal(err)
	}
	b, err := ss.Create()
	if err != nil {
		t.Fatal(err)
	}
	if a.Token == b.Token {
		t.Error("two sessions share a token")
	}
}
