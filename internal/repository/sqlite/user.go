package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/muaz-405/DevQuest/internal/apperror"
	"github.com/muaz-405/DevQuest/internal/model"
	"github.com/muaz-405/DevQuest/internal/repository"
)

// compile-time check that *DB implements repository.UserRepository
var _ repository.UserRepository = (*DB)(nil)

// marshalTags serializes a tag slice for a JSON text column.
// nil and empty both become "[]" so the column never holds JSON null.
func marshalTags(tags []string) (string, error) {
	if tags == nil {
		tags = []string{}
	}
	raw, err := json.Marshal(tags)
	if err != nil {
		return "", fmt.Errorf("encoding tags: %w", err)
	}
	return string(raw), nil
}

// unmarshalTags parses a JSON text column back into a tag slice.
func unmarshalTags(raw string) ([]string, error) {
	tags := []string{}
	if raw == "" {
		return tags, nil
	}
	if err := json.Unmarshal([]byte(raw), &tags); err != nil {
		return nil, fmt.Errorf("decoding tags %q: %w", raw, err)
	}
	return tags, nil
}

// Create inserts a new user and fills in the generated numeric ID.
//
// The email column is UNIQUE; a duplicate surfaces as apperror.ErrConflict
// so registration (and a racing bootstrap) can tell "taken" apart from a
// real storage failure.
func (db *DB) Create(ctx context.Context, user *model.User) error {
	languages, err := marshalTags(user.ProgrammingLanguages)
	if err != nil {
		return fmt.Errorf("sqlite: %w", err)
	}
	expertise, err := marshalTags(user.Expertise)
	if err != nil {
		return fmt.Errorf("sqlite: %w", err)
	}

	if user.CreatedAt.IsZero() {
		user.CreatedAt = time.Now()
	}

	res, err := db.conn.ExecContext(ctx,
		`INSERT INTO users (name, email, password, bio, website_url, portfolio_url,
		                    programming_languages, expertise, avatar, reputation, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		user.Name,
		user.Email,
		user.Password,
		user.Bio,
		user.WebsiteURL,
		user.PortfolioURL,
		languages,
		expertise,
		user.Avatar,
		user.Reputation,
		user.CreatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return apperror.Conflict("user", "email already registered")
		}
		return fmt.Errorf("sqlite: inserting user (email=%s): %w", user.Email, err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("sqlite: reading inserted user id: %w", err)
	}
	user.ID = id

	return nil
}

// GetByID retrieves a user by their numeric id.
// Returns apperror.ErrNotFound if no user exists with that id.
func (db *DB) GetByID(ctx context.Context, id int64) (*model.User, error) {
	return db.getUser(ctx, `WHERE id = ?`, id)
}

// GetByEmail retrieves a user by their login email.
func (db *DB) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	return db.getUser(ctx, `WHERE email = ?`, email)
}

func (db *DB) getUser(ctx context.Context, where string, arg any) (*model.User, error) {
	var (
		u         model.User
		languages string
		expertise string
	)

	err := db.conn.QueryRowContext(ctx,
		`SELECT id, name, email, password, bio, website_url, portfolio_url,
		        programming_languages, expertise, avatar, reputation, created_at
		 FROM users `+where,
		arg,
	).Scan(
		&u.ID,
		&u.Name,
		&u.Email,
		&u.Password,
		&u.Bio,
		&u.WebsiteURL,
		&u.PortfolioURL,
		&languages,
		&expertise,
		&u.Avatar,
		&u.Reputation,
		&u.CreatedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, apperror.NotFound("user", arg)
		}
		return nil, fmt.Errorf("sqlite: getting user %v: %w", arg, err)
	}

	if u.ProgrammingLanguages, err = unmarshalTags(languages); err != nil {
		return nil, fmt.Errorf("sqlite: user %v: %w", arg, err)
	}
	if u.Expertise, err = unmarshalTags(expertise); err != nil {
		return nil, fmt.Errorf("sqlite: user %v: %w", arg, err)
	}

	return &u, nil
}

// UpdateProfile overwrites the mutable profile fields of one user.
//
// Email, password, reputation, and created_at are intentionally not in the
// column list — this statement can never touch them, whatever the service
// layer passes in.
func (db *DB) UpdateProfile(ctx context.Context, id int64, update repository.ProfileUpdate) error {
	languages, err := marshalTags(update.ProgrammingLanguages)
	if err != nil {
		return fmt.Errorf("sqlite: %w", err)
	}
	expertise, err := marshalTags(update.Expertise)
	if err != nil {
		return fmt.Errorf("sqlite: %w", err)
	}

	res, err := db.conn.ExecContext(ctx,
		`UPDATE users
		 SET name = ?, bio = ?, website_url = ?, portfolio_url = ?,
		     programming_languages = ?, expertise = ?
		 WHERE id = ?`,
		update.Name,
		update.Bio,
		update.WebsiteURL,
		update.PortfolioURL,
		languages,
		expertise,
		id,
	)
	if err != nil {
		return fmt.Errorf("sqlite: updating profile for user %d: %w", id, err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("sqlite: checking profile update for user %d: %w", id, err)
	}
	if affected == 0 {
		return apperror.NotFound("user", id)
	}

	return nil
}
