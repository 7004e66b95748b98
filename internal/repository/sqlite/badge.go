package sqlite

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/muaz-405/DevQuest/internal/apperror"
	"github.com/muaz-405/DevQuest/internal/model"
	"github.com/muaz-405/DevQuest/internal/repository"
)

var _ repository.BadgeRepository = (*DB)(nil)

// CreateBadge inserts a badge, serializing its criteria as a JSON object.
//
// The criteria column must always deserialize back into a structured
// {type, threshold} pair — the awarding process other tooling builds on
// top of this table depends on that shape.
func (db *DB) CreateBadge(ctx context.Context, badge *model.Badge) error {
	criteria, err := json.Marshal(badge.Criteria)
	if err != nil {
		return fmt.Errorf("sqlite: encoding criteria for badge %q: %w", badge.Name, err)
	}

	if badge.CreatedAt.IsZero() {
		badge.CreatedAt = time.Now()
	}

	res, err := db.conn.ExecContext(ctx,
		`INSERT INTO badges (name, description, color, icon, category, level,
		                     reputation_points, criteria, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		badge.Name,
		badge.Description,
		badge.Color,
		badge.Icon,
		badge.Category,
		badge.Level,
		badge.ReputationPoints,
		string(criteria),
		badge.CreatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return apperror.Conflict("badge", fmt.Sprintf("name %q already exists", badge.Name))
		}
		return fmt.Errorf("sqlite: inserting badge %q: %w", badge.Name, err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("sqlite: reading inserted badge id: %w", err)
	}
	badge.ID = id

	return nil
}

// ListBadges returns the badge catalog with parsed criteria.
func (db *DB) ListBadges(ctx context.Context) ([]model.Badge, error) {
	rows, err := db.conn.QueryContext(ctx,
		`SELECT id, name, description, color, icon, category, level,
		        reputation_points, criteria, created_at
		 FROM badges ORDER BY id`,
	)
	if err != nil {
		return nil, fmt.Errorf("sqlite: listing badges: %w", err)
	}
	defer rows.Close()

	badges := []model.Badge{}
	for rows.Next() {
		var (
			b        model.Badge
			criteria string
		)
		if err := rows.Scan(
			&b.ID,
			&b.Name,
			&b.Description,
			&b.Color,
			&b.Icon,
			&b.Category,
			&b.Level,
			&b.ReputationPoints,
			&criteria,
			&b.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("sqlite: scanning badge: %w", err)
		}

		if err := json.Unmarshal([]byte(criteria), &b.Criteria); err != nil {
			return nil, fmt.Errorf("sqlite: badge %q has unparsable criteria %q: %w", b.Name, criteria, err)
		}

		badges = append(badges, b)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("sqlite: iterating badges: %w", err)
	}

	return badges, nil
}
