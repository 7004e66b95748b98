package client

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"
	"sync"

	"github.com/muaz-405/DevQuest/internal/apperror"
	"github.com/muaz-405/DevQuest/internal/model"
	"github.com/muaz-405/DevQuest/internal/service"
	"github.com/muaz-405/DevQuest/internal/tags"
)

// fallbackUpdateError is shown when an update fails without a usable
// server message (network failure, truncated response).
const fallbackUpdateError = "Failed to update profile"

// Notifier receives the outcome of a profile submission, typically
// rendered as a toast. Implementations must be safe for concurrent use.
type Notifier interface {
	Success(message string)
	Error(message string)
}

// ProfileForm is the raw state of the profile edit form. The tag fields
// hold the user's comma-separated input exactly as typed; Submit is where
// they become arrays.
type ProfileForm struct {
	Name                 string
	Bio                  string
	WebsiteURL           string
	PortfolioURL         string
	ProgrammingLanguages string // e.g. "JavaScript, Python, Go"
	Expertise            string // e.g. "Backend, DevOps"
}

// FormFromUser prefills the edit form from a fetched profile, joining the
// tag arrays back into the comma-separated text the form displays.
func FormFromUser(u *model.User) ProfileForm {
	return ProfileForm{
		Name:                 u.Name,
		Bio:                  u.Bio,
		WebsiteURL:           u.WebsiteURL,
		PortfolioURL:         u.PortfolioURL,
		ProgrammingLanguages: tags.Encode(u.ProgrammingLanguages),
		Expertise:            tags.Encode(u.Expertise),
	}
}

// FieldError is a client-side validation failure, keyed by form field so
// the UI can render it inline rather than as a toast.
type FieldError struct {
	Field   string
	Message string
}

func (e *FieldError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ProfileEditor orchestrates profile form submission:
//
//  1. Validate locally (same limits the server enforces), so obvious
//     mistakes never leave the machine.
//  2. Split the comma-separated tag inputs into arrays.
//  3. PUT the update.
//  4. On success: invalidate the cached profile and notify success.
//  5. On failure: leave the cache alone and surface the server's message
//     (or a generic fallback if there isn't one).
//
// Whatever happens, the submitting flag is cleared, so the form's save
// button never sticks in the disabled state.
type ProfileEditor struct {
	client   *Client
	notifier Notifier

	mu         sync.Mutex
	submitting bool
}

// NewProfileEditor creates a ProfileEditor. notifier must not be nil.
func NewProfileEditor(client *Client, notifier Notifier) *ProfileEditor {
	return &ProfileEditor{client: client, notifier: notifier}
}

// Submitting reports whether a submission is in flight.
func (e *ProfileEditor) Submitting() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.submitting
}

func (e *ProfileEditor) beginSubmit() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.submitting {
		return false
	}
	e.submitting = true
	return true
}

func (e *ProfileEditor) endSubmit() {
	e.mu.Lock()
	e.submitting = false
	e.mu.Unlock()
}

// Submit validates and sends the form for the signed-in user, returning
// the updated profile as stored by the server.
//
// Validation failures return a *FieldError and never touch the network.
// Server failures notify through the Notifier and return the error; the
// cached profile is left untouched so the UI keeps showing the last
// known-good data.
func (e *ProfileEditor) Submit(ctx context.Context, userID int64, form ProfileForm) (*model.User, error) {
	if !e.beginSubmit() {
		return nil, errors.New("a submission is already in progress")
	}
	defer e.endSubmit()

	if err := validateForm(form); err != nil {
		return nil, err
	}

	payload := struct {
		Name                 string   `json:"name"`
		Bio                  string   `json:"bio"`
		WebsiteURL           string   `json:"websiteUrl"`
		PortfolioURL         string   `json:"portfolioUrl"`
		ProgrammingLanguages []string `json:"programmingLanguages"`
		Expertise            []string `json:"expertise"`
	}{
		Name:                 strings.TrimSpace(form.Name),
		Bio:                  form.Bio,
		WebsiteURL:           form.WebsiteURL,
		PortfolioURL:         form.PortfolioURL,
		ProgrammingLanguages: tags.Decode(form.ProgrammingLanguages),
		Expertise:            tags.Decode(form.Expertise),
	}

	var updated model.User
	if err := e.client.do(ctx, "PUT", "/api/profile", payload, &updated); err != nil {
		e.notifier.Error(updateErrorMessage(err))
		return nil, err
	}

	// The next FetchProfile must see the new data, not a pre-update
	// cache entry.
	e.client.cache.invalidate(profileKey(userID))
	e.notifier.Success("Profile updated successfully")

	return &updated, nil
}

func updateErrorMessage(err error) string {
	var apiErr *APIError
	if errors.As(err, &apiErr) && apiErr.Message != "" {
		return apiErr.Message
	}
	var appErr *apperror.AppError
	if errors.As(err, &appErr) && appErr.Message != "" {
		return appErr.Message
	}
	return fallbackUpdateError
}

// validateForm mirrors the server's limits (service validation constants)
// so the form can reject bad input before a round trip. The server still
// re-validates; this is a UX shortcut, not the enforcement point.
func validateForm(form ProfileForm) error {
	name := strings.TrimSpace(form.Name)
	if len(name) < service.MinNameLength {
		return &FieldError{Field: "name", Message: fmt.Sprintf("Name must be at least %d characters", service.MinNameLength)}
	}
	if len(name) > service.MaxNameLength {
		return &FieldError{Field: "name", Message: fmt.Sprintf("Name must be %d characters or less", service.MaxNameLength)}
	}
	if len(form.Bio) > service.MaxBioLength {
		return &FieldError{Field: "bio", Message: fmt.Sprintf("Bio must be %d characters or less", service.MaxBioLength)}
	}
	if err := validateFormURL("websiteUrl", form.WebsiteURL); err != nil {
		return err
	}
	if err := validateFormURL("portfolioUrl", form.PortfolioURL); err != nil {
		return err
	}
	return nil
}

func validateFormURL(field, value string) error {
	if value == "" {
		return nil
	}
	u, err := url.ParseRequestURI(value)
	if err != nil || u.Host == "" || (u.Scheme != "http" && u.Scheme != "https") {
		return &FieldError{Field: field, Message: "Invalid URL"}
	}
	return nil
}
