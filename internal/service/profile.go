// Package service contains the business logic layer of the application.
//
// THE THREE-LAYER SPLIT:
//
//	Handler (HTTP layer)     → parses requests, writes responses
//	Service (business layer) → validates, enforces rules, orchestrates
//	Repository (data layer)  → reads/writes the database
//
// Services accept primitives and domain structs, never *http.Request, and
// return domain errors (apperror), never status codes. That keeps every
// rule here callable from handlers, CLI tools, and tests alike.
package service

import (
	"context"
	"fmt"
	"log/slog"
	"net/url"
	"strings"

	"github.com/muaz-405/DevQuest/internal/apperror"
	"github.com/muaz-405/DevQuest/internal/model"
	"github.com/muaz-405/DevQuest/internal/repository"
)

// Validation constants, mirrored by the API client so both sides reject the
// same inputs.
const (
	MinNameLength = 2
	MaxNameLength = 100
	MaxBioLength  = 2000
	MaxTagLength  = 50
	MaxTagCount   = 20
)

// ProfileService handles reading and updating user profiles.
type ProfileService struct {
	users  repository.UserRepository
	logger *slog.Logger
}

// NewProfileService creates a ProfileService.
func NewProfileService(users repository.UserRepository, logger *slog.Logger) *ProfileService {
	return &ProfileService{users: users, logger: logger}
}

// Get returns the profile for the given user id.
// Returns apperror.ErrNotFound if the user doesn't exist.
func (s *ProfileService) Get(ctx context.Context, id int64) (*model.User, error) {
	if id <= 0 {
		return nil, apperror.ValidationFailed("id", "user id must be positive")
	}
	return s.users.GetByID(ctx, id)
}

// Update validates and persists a profile update, then returns the stored
// profile so the caller always responds with server truth, not its own echo
// of the request.
func (s *ProfileService) Update(ctx context.Context, userID int64, update repository.ProfileUpdate) (*model.User, error) {
	if userID <= 0 {
		return nil, apperror.ValidationFailed("id", "user id must be positive")
	}

	update.Name = strings.TrimSpace(update.Name)
	if len(update.Name) < MinNameLength {
		return nil, apperror.ValidationFailed("name", fmt.Sprintf("Name must be at least %d characters", MinNameLength))
	}
	if len(update.Name) > MaxNameLength {
		return nil, apperror.ValidationFailed("name", fmt.Sprintf("Name must be %d characters or less", MaxNameLength))
	}
	if len(update.Bio) > MaxBioLength {
		return nil, apperror.ValidationFailed("bio", fmt.Sprintf("Bio must be %d characters or less", MaxBioLength))
	}

	if err := validateOptionalURL("websiteUrl", update.WebsiteURL); err != nil {
		return nil, err
	}
	if err := validateOptionalURL("portfolioUrl", update.PortfolioURL); err != nil {
		return nil, err
	}
	if err := validateTags("programmingLanguages", update.ProgrammingLanguages); err != nil {
		return nil, err
	}
	if err := validateTags("expertise", update.Expertise); err != nil {
		return nil, err
	}

	// Empty tag lists stay empty arrays — the repository writes "[]",
	// never NULL, and reads return empty slices.
	if update.ProgrammingLanguages == nil {
		update.ProgrammingLanguages = []string{}
	}
	if update.Expertise == nil {
		update.Expertise = []string{}
	}

	if err := s.users.UpdateProfile(ctx, userID, update); err != nil {
		s.logger.Error("failed to update profile",
			slog.Int64("userID", userID),
			slog.String("error", err.Error()),
		)
		return nil, fmt.Errorf("updating profile: %w", err)
	}

	updated, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("reloading updated profile: %w", err)
	}

	s.logger.Info("profile updated",
		slog.Int64("userID", userID),
		slog.String("name", updated.Name),
	)

	return updated, nil
}

// validateOptionalURL accepts the empty string or a well-formed absolute
// http(s) URL. The profile form sends "" for untouched URL fields.
func validateOptionalURL(field, value string) error {
	if value == "" {
		return nil
	}
	u, err := url.ParseRequestURI(value)
	if err != nil || u.Host == "" || (u.Scheme != "http" && u.Scheme != "https") {
		return apperror.ValidationFailed(field, "Invalid URL")
	}
	return nil
}

func validateTags(field string, values []string) error {
	if len(values) > MaxTagCount {
		return apperror.ValidationFailed(field, fmt.Sprintf("at most %d tags allowed", MaxTagCount))
	}
	for _, v := range values {
		if strings.TrimSpace(v) == "" {
			return apperror.ValidationFailed(field, "tags must not be empty")
		}
		if len(v) > MaxTagLength {
			return apperror.ValidationFailed(field, fmt.Sprintf("each tag must be %d characters or less", MaxTagLength))
		}
	}
	return nil
}
