package sqlite

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/xid"

	"github.com/muaz-405/DevQuest/internal/repository"
)

var _ repository.SessionRepository = (*DB)(nil)

// CreateSession inserts an opaque session record and returns its id.
//
// The payload is whatever the session middleware serialized; this layer
// only guarantees the row exists and expires. Session ids are xids —
// random enough to be unguessable, sortable by creation time for cleanup.
func (db *DB) CreateSession(ctx context.Context, payload string, expire time.Time) (string, error) {
	sid := xid.New().String()

	_, err := db.conn.ExecContext(ctx,
		`INSERT INTO session (sid, sess, expire) VALUES (?, ?, ?)`,
		sid, payload, expire,
	)
	if err != nil {
		return "", fmt.Errorf("sqlite: inserting session: %w", err)
	}

	return sid, nil
}

// DeleteSession removes a session record. Deleting a missing sid is not an
// error — logout must be idempotent.
func (db *DB) DeleteSession(ctx context.Context, sid string) error {
	if _, err := db.conn.ExecContext(ctx, `DELETE FROM session WHERE sid = ?`, sid); err != nil {
		return fmt.Errorf("sqlite: deleting session %s: %w", sid, err)
	}
	return nil
}
