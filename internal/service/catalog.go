package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/muaz-405/DevQuest/internal/model"
	"github.com/muaz-405/DevQuest/internal/repository"
)

// CatalogService serves the seeded category and badge catalogs.
//
// Both are created only by the bootstrap, so this service is read-only:
// no create/update/delete methods on purpose.
type CatalogService struct {
	categories repository.CategoryRepository
	badges     repository.BadgeRepository
	logger     *slog.Logger
}

// NewCatalogService creates a CatalogService.
func NewCatalogService(
	categories repository.CategoryRepository,
	badges repository.BadgeRepository,
	logger *slog.Logger,
) *CatalogService {
	return &CatalogService{categories: categories, badges: badges, logger: logger}
}

// ListCategories returns all discussion categories.
func (s *CatalogService) ListCategories(ctx context.Context) ([]model.Category, error) {
	categories, err := s.categories.ListCategories(ctx)
	if err != nil {
		s.logger.Error("failed to list categories", slog.String("error", err.Error()))
		return nil, fmt.Errorf("listing categories: %w", err)
	}
	return categories, nil
}

// ListBadges returns the badge catalog.
func (s *CatalogService) ListBadges(ctx context.Context) ([]model.Badge, error) {
	badges, err := s.badges.ListBadges(ctx)
	if err != nil {
		s.logger.Error("failed to list badges", slog.String("error", err.Error()))
		return nil, fmt.Errorf("listing badges: %w", err)
	}
	return badges, nil
}
