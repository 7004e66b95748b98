package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/muaz-405/DevQuest/internal/auth"
	"github.com/muaz-405/DevQuest/internal/repository"
	"github.com/muaz-405/DevQuest/internal/service"
)

// ProfileHandler serves public profile reads and authenticated profile
// updates.
type ProfileHandler struct {
	profileService *service.ProfileService
	logger         *slog.Logger
}

// NewProfileHandler creates a ProfileHandler.
func NewProfileHandler(profileService *service.ProfileService, logger *slog.Logger) *ProfileHandler {
	return &ProfileHandler{profileService: profileService, logger: logger}
}

// updateProfileRequest mirrors the profile form payload. Tag fields arrive
// as JSON arrays; the comma-splitting happens on the client side before
// submission.
type updateProfileRequest struct {
	Name                 string   `json:"name"`
	Bio                  string   `json:"bio"`
	WebsiteURL           string   `json:"websiteUrl"`
	PortfolioURL         string   `json:"portfolioUrl"`
	ProgrammingLanguages []string `json:"programmingLanguages"`
	Expertise            []string `json:"expertise"`
}

// HandleGetProfile returns a user's public profile.
//
// HTTP: GET /api/users/{id}/profile
//
// No auth required: profiles are public. A non-numeric id is a 400, an
// unknown one a 404.
func (h *ProfileHandler) HandleGetProfile(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, ErrorResponse{Error: "bad_request", Message: "Invalid user id"})
		return
	}

	user, err := h.profileService.Get(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, user)
}

// HandleUpdateProfile replaces the authenticated user's profile fields.
//
// HTTP: PUT /api/profile (behind RequireAuth)
// BODY: {"name": "...", "bio": "...", "websiteUrl": "...",
//        "portfolioUrl": "...", "programmingLanguages": [...],
//        "expertise": [...]}
//
// The response body is the reloaded record, so the client can replace its
// cached copy with server truth rather than its own optimistic guess.
func (h *ProfileHandler) HandleUpdateProfile(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.UserIDFromContext(r.Context())
	if !ok {
		writeJSON(w, http.StatusUnauthorized, ErrorResponse{Error: "unauthorized", Message: "valid authentication required"})
		return
	}

	var req updateProfileRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.Warn("invalid profile JSON", slog.String("error", err.Error()))
		writeJSON(w, http.StatusBadRequest, ErrorResponse{Error: "bad_request", Message: "Invalid JSON body"})
		return
	}

	updated, err := h.profileService.Update(r.Context(), userID, repository.ProfileUpdate{
		Name:                 req.Name,
		Bio:                  req.Bio,
		WebsiteURL:           req.WebsiteURL,
		PortfolioURL:         req.PortfolioURL,
		ProgrammingLanguages: req.ProgrammingLanguages,
		Expertise:            req.Expertise,
	})
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, updated)
}
