package sqlite

import (
	"context"
	"testing"
	"time"
)

func TestSessionCreateDelete(t *testing.T) {
	db := newSeededDB(t)

	sid, err := db.CreateSession(context.Background(), `{"userId":1}`, time.Now().Add(time.Hour))
	if err != nil {
		t.Fatalf("CreateSession() error = %v", err)
	}
	if sid == "" {
		t.Fatal("CreateSession() returned empty sid")
	}

	if got := countRows(t, db, "session"); got != 1 {
		t.Errorf("session count = %d, want 1", got)
	}

	if err := db.DeleteSession(context.Background(), sid); err != nil {
		t.Fatalf("DeleteSession() error = %v", err)
	}
	if got := countRows(t, db, "session"); got != 0 {
		t.Errorf("session count after delete = %d, want 0", got)
	}

	// Idempotent: deleting again is not an error.
	if err := db.DeleteSession(context.Background(), sid); err != nil {
		t.Errorf("DeleteSession() second call error = %v", err)
	}
}

func TestSessionIDsAreUnique(t *testing.T) {
	db := newSeededDB(t)

	sid1, _ := db.CreateSession(context.Background(), "{}", time.Now().Add(time.Hour))
	sid2, _ := db.CreateSession(context.Background(), "{}", time.Now().Add(time.Hour))
	if sid1 == sid2 {
		t.Error("CreateSession() produced duplicate sids")
	}
}
