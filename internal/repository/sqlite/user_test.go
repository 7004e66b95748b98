package sqlite

import (
	"context"
	"errors"
	"reflect"
	"testing"
	"time"

	"github.com/muaz-405/DevQuest/internal/apperror"
	"github.com/muaz-405/DevQuest/internal/model"
	"github.com/muaz-405/DevQuest/internal/repository"
)

// createTestUser creates a user and fails the test if it errors.
func createTestUser(t *testing.T, db *DB, name, email string) *model.User {
	t.Helper()
	user := &model.User{
		Name:     name,
		Email:    email,
		Password: "deadbeef.cafebabe", // stored credential shape, not a real hash
	}
	if err := db.Create(context.Background(), user); err != nil {
		t.Fatalf("failed to create test user: %v", err)
	}
	return user
}

// =========================================================================
// CREATE TESTS
// =========================================================================

func TestUserCreate(t *testing.T) {
	db := newSeededDB(t)

	user := &model.User{
		Name:                 "Test User",
		Email:                "test@example.com",
		Password:             "deadbeef.cafebabe",
		ProgrammingLanguages: []string{"Go", "Rust"},
	}

	if err := db.Create(context.Background(), user); err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	if user.ID == 0 {
		t.Error("Create() did not set user.ID")
	}
	if user.CreatedAt.IsZero() {
		t.Error("Create() did not set user.CreatedAt")
	}
}

func TestUserCreate_DuplicateEmail(t *testing.T) {
	db := newSeededDB(t)
	createTestUser(t, db, "first", "dup@example.com")

	duplicate := &model.User{
		Name:     "second",
		Email:    "dup@example.com",
		Password: "deadbeef.cafebabe",
	}
	err := db.Create(context.Background(), duplicate)
	if err == nil {
		t.Fatal("Create() should have returned an error for duplicate email")
	}
	if !errors.Is(err, apperror.ErrConflict) {
		t.Errorf("Create() error = %v, want ErrConflict", err)
	}
}

// =========================================================================
// GET TESTS
// =========================================================================

func TestUserGetByID(t *testing.T) {
	db := newSeededDB(t)
	created := createTestUser(t, db, "lookup_user", "lookup@example.com")

	found, err := db.GetByID(context.Background(), created.ID)
	if err != nil {
		t.Fatalf("GetByID() error = %v", err)
	}

	if found.ID != created.ID {
		t.Errorf("ID = %d, want %d", found.ID, created.ID)
	}
	if found.Name != "lookup_user" {
		t.Errorf("Name = %q, want %q", found.Name, "lookup_user")
	}
	if found.Reputation != 0 {
		t.Errorf("Reputation = %d, want 0 for a fresh user", found.Reputation)
	}
	// Tag fields come back as empty slices, never nil.
	if found.ProgrammingLanguages == nil || found.Expertise == nil {
		t.Error("tag fields should be non-nil empty slices for a fresh user")
	}
}

func TestUserGetByID_NotFound(t *testing.T) {
	db := newSeededDB(t)

	_, err := db.GetByID(context.Background(), 999999)
	if err == nil {
		t.Fatal("GetByID() should have returned an error for nonexistent id")
	}
	if !errors.Is(err, apperror.ErrNotFound) {
		t.Errorf("GetByID() error = %v, want ErrNotFound", err)
	}
}

func TestUserGetByEmail(t *testing.T) {
	db := newSeededDB(t)
	created := createTestUser(t, db, "email_user", "email@example.com")

	found, err := db.GetByEmail(context.Background(), "email@example.com")
	if err != nil {
		t.Fatalf("GetByEmail() error = %v", err)
	}
	if found.ID != created.ID {
		t.Errorf("ID = %d, want %d", found.ID, created.ID)
	}
}

// =========================================================================
// UPDATE PROFILE TESTS
// =========================================================================

func TestUpdateProfile_RoundTripsTagFields(t *testing.T) {
	db := newSeededDB(t)
	created := createTestUser(t, db, "tagged", "tags@example.com")

	update := repository.ProfileUpdate{
		Name:                 "Tagged User",
		Bio:                  "hello",
		WebsiteURL:           "https://example.com",
		PortfolioURL:         "https://portfolio.example.com",
		ProgrammingLanguages: []string{"JavaScript", "Python"},
		Expertise:            []string{"Frontend"},
	}
	if err := db.UpdateProfile(context.Background(), created.ID, update); err != nil {
		t.Fatalf("UpdateProfile() error = %v", err)
	}

	found, err := db.GetByID(context.Background(), created.ID)
	if err != nil {
		t.Fatalf("GetByID() error = %v", err)
	}

	if found.Name != "Tagged User" || found.Bio != "hello" {
		t.Errorf("profile fields not updated: %+v", found)
	}
	if !reflect.DeepEqual(found.ProgrammingLanguages, []string{"JavaScript", "Python"}) {
		t.Errorf("ProgrammingLanguages = %v, want [JavaScript Python]", found.ProgrammingLanguages)
	}
	if !reflect.DeepEqual(found.Expertise, []string{"Frontend"}) {
		t.Errorf("Expertise = %v, want [Frontend]", found.Expertise)
	}
}

func TestUpdateProfile_EmptyTagsClearField(t *testing.T) {
	db := newSeededDB(t)
	created := createTestUser(t, db, "cleared", "clear@example.com")

	full := repository.ProfileUpdate{Name: "cleared", ProgrammingLanguages: []string{"Go"}, Expertise: []string{"Backend"}}
	if err := db.UpdateProfile(context.Background(), created.ID, full); err != nil {
		t.Fatalf("UpdateProfile() error = %v", err)
	}

	empty := repository.ProfileUpdate{Name: "cleared", ProgrammingLanguages: []string{}, Expertise: []string{}}
	if err := db.UpdateProfile(context.Background(), created.ID, empty); err != nil {
		t.Fatalf("UpdateProfile() error = %v", err)
	}

	found, _ := db.GetByID(context.Background(), created.ID)
	if len(found.ProgrammingLanguages) != 0 || len(found.Expertise) != 0 {
		t.Errorf("empty update should clear tags, got %v / %v",
			found.ProgrammingLanguages, found.Expertise)
	}
}

// UpdateProfile must never touch credentials, email, or reputation.
func TestUpdateProfile_LeavesImmutableFieldsAlone(t *testing.T) {
	db := newSeededDB(t)
	created := createTestUser(t, db, "immutable", "immutable@example.com")

	update := repository.ProfileUpdate{Name: "renamed"}
	if err := db.UpdateProfile(context.Background(), created.ID, update); err != nil {
		t.Fatalf("UpdateProfile() error = %v", err)
	}

	found, _ := db.GetByID(context.Background(), created.ID)
	if found.Email != "immutable@example.com" {
		t.Errorf("email changed to %q", found.Email)
	}
	if found.Password != created.Password {
		t.Error("stored credential changed by profile update")
	}
	if d := found.CreatedAt.Sub(created.CreatedAt); d < -time.Second || d > time.Second {
		t.Errorf("createdAt changed: %v vs %v", created.CreatedAt, found.CreatedAt)
	}
}

func TestUpdateProfile_NotFound(t *testing.T) {
	db := newSeededDB(t)

	err := db.UpdateProfile(context.Background(), 424242, repository.ProfileUpdate{Name: "ghost"})
	if err == nil {
		t.Fatal("UpdateProfile() should fail for a nonexistent user")
	}
	if !errors.Is(err, apperror.ErrNotFound) {
		t.Errorf("UpdateProfile() error = %v, want ErrNotFound", err)
	}
}
