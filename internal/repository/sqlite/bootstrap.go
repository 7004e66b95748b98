package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/muaz-405/DevQuest/internal/model"
)

// PasswordHasher derives a storable credential from a plaintext password.
// Satisfied by auth.PasswordService; tests inject a cheap fake.
type PasswordHasher interface {
	Hash(plaintext string) (string, error)
}

// Seed constants. External tooling (admin scripts, the frontend's seeded
// category list) assumes these exist after the first successful bootstrap,
// so treat them as part of the storage contract.
const (
	adminName       = "Admin User"
	adminEmail      = "admin@devquest.com"
	adminPassword   = "admin123"
	adminBio        = "DevQuest administrator"
	adminReputation = 100
)

var defaultCategories = []model.Category{
	{Name: "JavaScript", Description: "Discussions about JavaScript language and ecosystem", Color: "#f7df1e"},
	{Name: "Python", Description: "Python programming language discussions", Color: "#306998"},
	{Name: "React", Description: "React.js framework discussions", Color: "#61dafb"},
	{Name: "DevOps", Description: "DevOps practices and tools", Color: "#6c5ce7"},
	{Name: "Database", Description: "Database systems and design", Color: "#e74c3c"},
	{Name: "Security", Description: "Security concepts and best practices", Color: "#f39c12"},
}

var defaultBadges = []model.Badge{
	{
		Name:             "Newcomer",
		Description:      "Welcome to the community!",
		Category:         "account",
		Level:            1,
		Icon:             "UserPlus",
		Color:            "#4CAF50",
		Criteria:         model.BadgeCriteria{Type: "join", Threshold: 1},
		ReputationPoints: 5,
	},
	{
		Name:             "First Post",
		Description:      "Share your first post",
		Category:         "participation",
		Level:            1,
		Icon:             "MessageSquare",
		Color:            "#2196F3",
		Criteria:         model.BadgeCriteria{Type: "posts", Threshold: 1},
		ReputationPoints: 5,
	},
}

// Bootstrap creates the schema and inserts the canonical seed data.
// It is idempotent: safe to run on every deployment, a no-op after the
// first success.
//
// THE PROCEDURE, in strict order:
//  1. Existence probe — a trivial read against the users table. If it
//     succeeds the schema is already in place and we return without
//     touching anything (seeding never re-runs on restart).
//  2. Create all four tables with IF NOT EXISTS semantics.
//  3. Seed: one admin account, the six-category catalog, the two-badge
//     starter catalog.
//
// FAILURE SEMANTICS:
// Any failure aborts the whole procedure and propagates to the caller; the
// initdb command exits non-zero. There is no partial-seed rollback — this
// is a one-shot deployment script, not a migration engine. Two first-run
// bootstraps racing each other are not transactionally isolated: the
// IF NOT EXISTS guards make table creation safe, and the UNIQUE constraints
// make the losing seeder fail loudly rather than duplicate rows.
func (db *DB) Bootstrap(ctx context.Context, passwords PasswordHasher) error {
	// Step 1: existence probe. Success (even with zero rows) means a
	// previous bootstrap completed table creation, so nothing to do.
	var probe int64
	err := db.conn.QueryRowContext(ctx, `SELECT id FROM users LIMIT 1`).Scan(&probe)
	if err == nil || errors.Is(err, sql.ErrNoRows) {
		return nil
	}

	// Step 2: schema.
	if err := db.createSchema(ctx); err != nil {
		return fmt.Errorf("sqlite: creating schema: %w", err)
	}

	// Step 3: seed.
	if err := db.seed(ctx, passwords); err != nil {
		return fmt.Errorf("sqlite: seeding initial data: %w", err)
	}

	return nil
}

func (db *DB) createSchema(ctx context.Context) error {
	// Tag columns hold JSON arrays (SQLite's stand-in for TEXT[]); the
	// criteria column holds a JSON {type, threshold} object.
	_, err := db.conn.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS users (
			id                    INTEGER PRIMARY KEY AUTOINCREMENT,
			name                  TEXT NOT NULL,
			email                 TEXT NOT NULL UNIQUE,
			password              TEXT NOT NULL,
			bio                   TEXT NOT NULL DEFAULT '',
			website_url           TEXT NOT NULL DEFAULT '',
			portfolio_url         TEXT NOT NULL DEFAULT '',
			programming_languages TEXT NOT NULL DEFAULT '[]',
			expertise             TEXT NOT NULL DEFAULT '[]',
			avatar                TEXT NOT NULL DEFAULT '',
			reputation            INTEGER NOT NULL DEFAULT 0 CHECK (reputation >= 0),
			created_at            DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
		);

		CREATE TABLE IF NOT EXISTS categories (
			id          INTEGER PRIMARY KEY AUTOINCREMENT,
			name        TEXT NOT NULL UNIQUE,
			description TEXT NOT NULL,
			color       TEXT NOT NULL,
			created_at  DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
		);

		CREATE TABLE IF NOT EXISTS badges (
			id                INTEGER PRIMARY KEY AUTOINCREMENT,
			name              TEXT NOT NULL UNIQUE,
			description       TEXT NOT NULL,
			color             TEXT NOT NULL,
			icon              TEXT NOT NULL,
			category          TEXT NOT NULL,
			level             INTEGER NOT NULL CHECK (level > 0),
			reputation_points INTEGER NOT NULL CHECK (reputation_points >= 0),
			criteria          TEXT NOT NULL,
			created_at        DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
		);

		CREATE TABLE IF NOT EXISTS session (
			sid    TEXT PRIMARY KEY,
			sess   TEXT NOT NULL,
			expire DATETIME NOT NULL
		);
	`)
	return err
}

func (db *DB) seed(ctx context.Context, passwords PasswordHasher) error {
	// Admin account: fixed email, freshly hashed password, non-zero
	// starting reputation.
	credential, err := passwords.Hash(adminPassword)
	if err != nil {
		return fmt.Errorf("hashing admin password: %w", err)
	}

	admin := &model.User{
		Name:       adminName,
		Email:      adminEmail,
		Password:   credential,
		Bio:        adminBio,
		Reputation: adminReputation,
		CreatedAt:  time.Now(),
	}
	if err := db.Create(ctx, admin); err != nil {
		return fmt.Errorf("inserting admin user: %w", err)
	}

	for i := range defaultCategories {
		category := defaultCategories[i]
		category.CreatedAt = time.Now()
		if err := db.CreateCategory(ctx, &category); err != nil {
			return fmt.Errorf("inserting category %q: %w", category.Name, err)
		}
	}

	for i := range defaultBadges {
		badge := defaultBadges[i]
		badge.CreatedAt = time.Now()

		// The criteria must serialize as a structured object; verify it
		// round-trips before it ever reaches storage.
		raw, err := json.Marshal(badge.Criteria)
		if err != nil {
			return fmt.Errorf("serializing criteria for badge %q: %w", badge.Name, err)
		}
		var parsed model.BadgeCriteria
		if err := json.Unmarshal(raw, &parsed); err != nil || parsed.Type == "" || parsed.Threshold < 0 {
			return fmt.Errorf("badge %q has invalid criteria %s", badge.Name, raw)
		}

		if err := db.CreateBadge(ctx, &badge); err != nil {
			return fmt.Errorf("inserting badge %q: %w", badge.Name, err)
		}
	}

	return nil
}
