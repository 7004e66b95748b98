// Package repository defines the storage interfaces the service layer
// programs against. The sqlite subpackage provides the implementation.
package repository

import (
	"context"
	"time"

	"github.com/muaz-405/DevQuest/internal/model"
)

// ProfileUpdate carries the mutable profile fields for a single update.
//
// Tag slices are always present (empty means "clear the field"), matching
// the API contract: PUT /api/profile transmits empty arrays, never omits
// them. Immutable fields (id, email, password, reputation, createdAt) are
// deliberately absent — they cannot be changed through this path.
type ProfileUpdate struct {
	Name                 string
	Bio                  string
	WebsiteURL           string
	PortfolioURL         string
	ProgrammingLanguages []string
	Expertise            []string
}

type UserRepository interface {
	Create(ctx context.Context, user *model.User) error
	GetByID(ctx context.Context, id int64) (*model.User, error)
	GetByEmail(ctx context.Context, email string) (*model.User, error)
	UpdateProfile(ctx context.Context, id int64, update ProfileUpdate) error
}

type CategoryRepository interface {
	CreateCategory(ctx context.Context, category *model.Category) error
	ListCategories(ctx context.Context) ([]model.Category, error)
}

type BadgeRepository interface {
	CreateBadge(ctx context.Context, badge *model.Badge) error
	ListBadges(ctx context.Context) ([]model.Badge, error)
}

// SessionRepository covers the session table the bootstrap guarantees for
// the session middleware collaborator. This service only creates and
// removes rows; the payload format belongs to that middleware.
type SessionRepository interface {
	CreateSession(ctx context.Context, payload string, expire time.Time) (sid string, err error)
	DeleteSession(ctx context.Context, sid string) error
}
