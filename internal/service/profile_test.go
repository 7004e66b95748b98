package service

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"reflect"
	"testing"

	"github.com/muaz-405/DevQuest/internal/apperror"
	"github.com/muaz-405/DevQuest/internal/model"
	"github.com/muaz-405/DevQuest/internal/repository"
)

// mockUserRepo is an in-memory repository.UserRepository. A hand-written
// mock keeps the tests honest about what the service actually calls.
type mockUserRepo struct {
	users  map[int64]*model.User
	nextID int64

	failCreate error // when set, Create returns this
	failUpdate error // when set, UpdateProfile returns this
}

func newMockUserRepo() *mockUserRepo {
	return &mockUserRepo{users: make(map[int64]*model.User)}
}

func (m *mockUserRepo) Create(_ context.Context, user *model.User) error {
	if m.failCreate != nil {
		return m.failCreate
	}
	for _, u := range m.users {
		if u.Email == user.Email {
			return apperror.Conflict("user", "email already registered")
		}
	}
	m.nextID++
	user.ID = m.nextID
	stored := *user
	m.users[user.ID] = &stored
	return nil
}

func (m *mockUserRepo) GetByID(_ context.Context, id int64) (*model.User, error) {
	u, ok := m.users[id]
	if !ok {
		return nil, apperror.NotFound("user", id)
	}
	result := *u
	return &result, nil
}

func (m *mockUserRepo) GetByEmail(_ context.Context, email string) (*model.User, error) {
	for _, u := range m.users {
		if u.Email == email {
			result := *u
			return &result, nil
		}
	}
	return nil, apperror.NotFound("user", email)
}

func (m *mockUserRepo) UpdateProfile(_ context.Context, id int64, update repository.ProfileUpdate) error {
	if m.failUpdate != nil {
		return m.failUpdate
	}
	u, ok := m.users[id]
	if !ok {
		return apperror.NotFound("user", id)
	}
	u.Name = update.Name
	u.Bio = update.Bio
	u.WebsiteURL = update.WebsiteURL
	u.PortfolioURL = update.PortfolioURL
	u.ProgrammingLanguages = update.ProgrammingLanguages
	u.Expertise = update.Expertise
	return nil
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))
}

func newTestProfileService(t *testing.T) (*ProfileService, *mockUserRepo) {
	t.Helper()
	repo := newMockUserRepo()
	return NewProfileService(repo, testLogger()), repo
}

func seedUser(repo *mockUserRepo, name, email string) *model.User {
	u := &model.User{Name: name, Email: email, Password: "deadbeef.cafebabe"}
	_ = repo.Create(context.Background(), u)
	return u
}

// =========================================================================
// UPDATE TESTS
// =========================================================================

func TestProfileUpdate_Success(t *testing.T) {
	svc, repo := newTestProfileService(t)
	u := seedUser(repo, "Old Name", "user@example.com")

	updated, err := svc.Update(context.Background(), u.ID, repository.ProfileUpdate{
		Name:                 "New Name",
		Bio:                  "about me",
		WebsiteURL:           "https://example.com",
		ProgrammingLanguages: []string{"JavaScript", "Python"},
		Expertise:            []string{"Backend"},
	})
	if err != nil {
		t.Fatalf("Update() error = %v", err)
	}

	if updated.Name != "New Name" {
		t.Errorf("Name = %q, want %q", updated.Name, "New Name")
	}
	if !reflect.DeepEqual(updated.ProgrammingLanguages, []string{"JavaScript", "Python"}) {
		t.Errorf("ProgrammingLanguages = %v", updated.ProgrammingLanguages)
	}
}

func TestProfileUpdate_NameTooShort(t *testing.T) {
	svc, repo := newTestProfileService(t)
	u := seedUser(repo, "Valid Name", "user@example.com")

	_, err := svc.Update(context.Background(), u.ID, repository.ProfileUpdate{Name: "x"})
	if !errors.Is(err, apperror.ErrValidation) {
		t.Fatalf("Update() error = %v, want ErrValidation", err)
	}

	var appErr *apperror.AppError
	if errors.As(err, &appErr) && appErr.Field != "name" {
		t.Errorf("validation field = %q, want %q", appErr.Field, "name")
	}

	// The stored profile must be untouched by a validation failure.
	stored, _ := repo.GetByID(context.Background(), u.ID)
	if stored.Name != "Valid Name" {
		t.Errorf("validation failure mutated stored profile: %q", stored.Name)
	}
}

func TestProfileUpdate_InvalidURLs(t *testing.T) {
	svc, repo := newTestProfileService(t)
	u := seedUser(repo, "URL User", "url@example.com")

	cases := []struct {
		name  string
		url   string
		valid bool
	}{
		{"https url", "https://example.com", true},
		{"http url", "http://example.com/portfolio", true},
		{"empty is allowed", "", true},
		{"missing scheme", "example.com", false},
		{"bare word", "notaurl", false},
		{"unsupported scheme", "ftp://example.com", false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.Update(context.Background(), u.ID, repository.ProfileUpdate{
				Name:       "URL User",
				WebsiteURL: tc.url,
			})
			if tc.valid && err != nil {
				t.Errorf("Update() with url %q error = %v, want nil", tc.url, err)
			}
			if !tc.valid && !errors.Is(err, apperror.ErrValidation) {
				t.Errorf("Update() with url %q error = %v, want ErrValidation", tc.url, err)
			}
		})
	}
}

func TestProfileUpdate_NilTagsBecomeEmptyArrays(t *testing.T) {
	svc, repo := newTestProfileService(t)
	u := seedUser(repo, "Tag User", "tags@example.com")

	updated, err := svc.Update(context.Background(), u.ID, repository.ProfileUpdate{Name: "Tag User"})
	if err != nil {
		t.Fatalf("Update() error = %v", err)
	}
	if updated.ProgrammingLanguages == nil || updated.Expertise == nil {
		t.Error("nil tag fields should be normalized to empty slices")
	}
}

func TestProfileUpdate_UserNotFound(t *testing.T) {
	svc, _ := newTestProfileService(t)

	_, err := svc.Update(context.Background(), 999, repository.ProfileUpdate{Name: "Ghost"})
	if !errors.Is(err, apperror.ErrNotFound) {
		t.Fatalf("Update() error = %v, want ErrNotFound", err)
	}
}

// =========================================================================
// GET TESTS
// =========================================================================

func TestProfileGet(t *testing.T) {
	svc, repo := newTestProfileService(t)
	u := seedUser(repo, "Reader", "reader@example.com")

	got, err := svc.Get(context.Background(), u.ID)
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if got.Email != "reader@example.com" {
		t.Errorf("Email = %q", got.Email)
	}
}

func TestProfileGet_InvalidID(t *testing.T) {
	svc, _ := newTestProfileService(t)

	if _, err := svc.Get(context.Background(), 0); !errors.Is(err, apperror.ErrValidation) {
		t.Errorf("Get(0) error = %v, want ErrValidation", err)
	}
}
