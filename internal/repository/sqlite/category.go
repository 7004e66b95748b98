package sqlite

import (
	"context"
	"fmt"
	"time"

	"github.com/muaz-405/DevQuest/internal/apperror"
	"github.com/muaz-405/DevQuest/internal/model"
	"github.com/muaz-405/DevQuest/internal/repository"
)

var _ repository.CategoryRepository = (*DB)(nil)

// CreateCategory inserts a category and fills in its generated ID.
// Only the bootstrap seeder calls this today; the API serves categories
// read-only.
func (db *DB) CreateCategory(ctx context.Context, category *model.Category) error {
	if category.CreatedAt.IsZero() {
		category.CreatedAt = time.Now()
	}

	res, err := db.conn.ExecContext(ctx,
		`INSERT INTO categories (name, description, color, created_at)
		 VALUES (?, ?, ?, ?)`,
		category.Name,
		category.Description,
		category.Color,
		category.CreatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return apperror.Conflict("category", fmt.Sprintf("name %q already exists", category.Name))
		}
		return fmt.Errorf("sqlite: inserting category %q: %w", category.Name, err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("sqlite: reading inserted category id: %w", err)
	}
	category.ID = id

	return nil
}

// ListCategories returns all categories in insertion order.
func (db *DB) ListCategories(ctx context.Context) ([]model.Category, error) {
	rows, err := db.conn.QueryContext(ctx,
		`SELECT id, name, description, color, created_at
		 FROM categories ORDER BY id`,
	)
	if err != nil {
		return nil, fmt.Errorf("sqlite: listing categories: %w", err)
	}
	defer rows.Close()

	categories := []model.Category{}
	for rows.Next() {
		var c model.Category
		if err := rows.Scan(&c.ID, &c.Name, &c.Description, &c.Color, &c.CreatedAt); err != nil {
			return nil, fmt.Errorf("sqlite: scanning category: %w", err)
		}
		categories = append(categories, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("sqlite: iterating categories: %w", err)
	}

	return categories, nil
}
