package server_test

// FULL-STACK INTEGRATION TESTS:
// These spin up the real router (all middleware, handlers, services) on an
// in-memory SQLite database, then drive it through the API client. They
// cover the HTTP contract the browser frontend relies on, so the handler
// layer has no separate unit tests.

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/cookiejar"
	"net/http/httptest"
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/muaz-405/DevQuest/internal/client"
	"github.com/muaz-405/DevQuest/internal/server"
)

type noopNotifier struct{}

func (noopNotifier) Success(string) {}
func (noopNotifier) Error(string)   {}

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))

	s, err := server.New(server.Config{
		Port:        0,
		DatabaseURL: ":memory:",
		JWTSecret:   "integration-test-secret-0123456789",
	}, logger)
	require.NoError(t, err)

	ts := httptest.NewServer(s.Handler())
	t.Cleanup(func() {
		ts.Close()
		s.Close()
	})
	return ts
}

func newAPIClient(t *testing.T, ts *httptest.Server) *client.Client {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))
	c, err := client.New(ts.URL, logger)
	require.NoError(t, err)
	return c
}

func TestCatalogEndpoints(t *testing.T) {
	ts := newTestServer(t)
	c := newAPIClient(t, ts)
	ctx := context.Background()

	categories, err := c.Categories(ctx)
	require.NoError(t, err)
	require.Len(t, categories, 6)

	names := make([]string, len(categories))
	for i, cat := range categories {
		names[i] = cat.Name
	}
	assert.Contains(t, names, "JavaScript")
	assert.Contains(t, names, "Security")

	badges, err := c.Badges(ctx)
	require.NoError(t, err)
	require.Len(t, badges, 2)

	// Criteria must arrive structured, not as raw JSON text.
	for _, b := range badges {
		assert.NotEmpty(t, b.Criteria.Type, "badge %q has no criteria type", b.Name)
		assert.Equal(t, 1, b.Criteria.Threshold, "badge %q", b.Name)
	}
}

func TestRegisterAndCurrentUser(t *testing.T) {
	ts := newTestServer(t)
	c := newAPIClient(t, ts)
	ctx := context.Background()

	user, err := c.Register(ctx, "Integration User", "it@example.com", "secret123")
	require.NoError(t, err)
	assert.Greater(t, user.ID, int64(0))
	assert.Equal(t, "it@example.com", user.Email)

	// The register response set the token cookie, so /api/user works.
	current, err := c.CurrentUser(ctx)
	require.NoError(t, err)
	assert.Equal(t, user.ID, current.ID)
}

func TestRegisterResponseOmitsCredential(t *testing.T) {
	ts := newTestServer(t)

	body := strings.NewReader(`{"name":"Leak Check","email":"leak@example.com","password":"secret123"}`)
	resp, err := http.Post(ts.URL+"/api/register", "application/json", body)
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var raw map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&raw))
	_, hasPassword := raw["password"]
	assert.False(t, hasPassword, "register response must not contain the credential")
}

func TestLoginFlow(t *testing.T) {
	ts := newTestServer(t)
	c := newAPIClient(t, ts)
	ctx := context.Background()

	_, err := c.Register(ctx, "Login User", "login@example.com", "secret123")
	require.NoError(t, err)
	require.NoError(t, c.Logout(ctx))

	// Logout cleared the cookie, so /api/user is unauthorized again.
	_, err = c.CurrentUser(ctx)
	var apiErr *client.APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusUnauthorized, apiErr.Status)

	_, err = c.Login(ctx, "login@example.com", "wrong-password")
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusUnauthorized, apiErr.Status)

	user, err := c.Login(ctx, "login@example.com", "secret123")
	require.NoError(t, err)
	assert.Equal(t, "login@example.com", user.Email)
}

// The bootstrap runs inside server.New, so the seeded admin account can
// sign in on a completely fresh database.
func TestSeededAdminCanLogin(t *testing.T) {
	ts := newTestServer(t)
	c := newAPIClient(t, ts)

	admin, err := c.Login(context.Background(), "admin@devquest.com", "admin123")
	require.NoError(t, err)
	assert.Equal(t, "Admin User", admin.Name)
	assert.Equal(t, 100, admin.Reputation)
}

func TestProfileUpdateEndToEnd(t *testing.T) {
	ts := newTestServer(t)
	c := newAPIClient(t, ts)
	ctx := context.Background()

	user, err := c.Register(ctx, "Edit User", "edit@example.com", "secret123")
	require.NoError(t, err)

	editor := client.NewProfileEditor(c, noopNotifier{})
	updated, err := editor.Submit(ctx, user.ID, client.ProfileForm{
		Name:                 "Edited Name",
		Bio:                  "hello",
		WebsiteURL:           "https://example.com",
		ProgrammingLanguages: "Go, TypeScript",
		Expertise:            "Backend, Databases",
	})
	require.NoError(t, err)

	assert.Equal(t, "Edited Name", updated.Name)
	assert.Equal(t, []string{"Go", "TypeScript"}, updated.ProgrammingLanguages)
	assert.Equal(t, []string{"Backend", "Databases"}, updated.Expertise)

	// A fresh fetch sees the stored update.
	fetched, err := c.FetchProfile(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, "Edited Name", fetched.Name)
	assert.Equal(t, []string{"Go", "TypeScript"}, fetched.ProgrammingLanguages)
}

func TestProfileUpdateRejectedByServer(t *testing.T) {
	ts := newTestServer(t)

	// Raw HTTP client with its own cookie jar, so we can bypass the
	// client-side URL check and prove the server enforces it too.
	jar, err := cookiejar.New(nil)
	require.NoError(t, err)
	httpc := &http.Client{Jar: jar}

	registerBody := strings.NewReader(`{"name":"Strict User","email":"strict@example.com","password":"secret123"}`)
	resp, err := httpc.Post(ts.URL+"/api/register", "application/json", registerBody)
	require.NoError(t, err)
	resp.Body.Close()
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	body := strings.NewReader(`{"name":"Strict User","websiteUrl":"notaurl"}`)
	req, err := http.NewRequest(http.MethodPut, ts.URL+"/api/profile", body)
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")

	resp, err = httpc.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	var envelope struct {
		Error   string `json:"error"`
		Message string `json:"message"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&envelope))
	assert.Equal(t, "validation_error", envelope.Error)
	assert.Equal(t, "Invalid URL", envelope.Message)

	// The rejected update must not have changed anything.
	profileResp, err := httpc.Get(ts.URL + "/api/user")
	require.NoError(t, err)
	defer profileResp.Body.Close()

	var profile struct {
		WebsiteURL string `json:"websiteUrl"`
	}
	require.NoError(t, json.NewDecoder(profileResp.Body).Decode(&profile))
	assert.Empty(t, profile.WebsiteURL)
}

func TestUpdateProfileRequiresAuth(t *testing.T) {
	ts := newTestServer(t)

	body := strings.NewReader(`{"name":"Anon"}`)
	req, err := http.NewRequest(http.MethodPut, ts.URL+"/api/profile", body)
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestGetProfileIsPublic(t *testing.T) {
	ts := newTestServer(t)

	// The admin account is user 1 (first row the bootstrap inserts).
	resp, err := http.Get(ts.URL + "/api/users/1/profile")
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var profile struct {
		Name                 string   `json:"name"`
		Reputation           int      `json:"reputation"`
		ProgrammingLanguages []string `json:"programmingLanguages"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&profile))
	assert.Equal(t, "Admin User", profile.Name)
	assert.Equal(t, 100, profile.Reputation)
	assert.NotNil(t, profile.ProgrammingLanguages, "tag fields serialize as [], never null")
}

func TestGetProfileUnknownUser(t *testing.T) {
	ts := newTestServer(t)

	resp, err := http.Get(ts.URL + "/api/users/99999/profile")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}
