// Package client is the Go consumer of the DevQuest API: a typed HTTP
// client with a read-through profile cache, plus the profile form
// orchestration used by frontend shells embedding this module.
//
// WHY A CLIENT PACKAGE IN THE SAME MODULE?
// The browser frontend talks to the same endpoints, but keeping a Go
// client next to the server means the integration tests exercise the real
// request/response contract end to end, and CLI tooling gets the API for
// free.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/cookiejar"
	"time"

	"github.com/muaz-405/DevQuest/internal/model"
)

// APIError is a non-2xx response decoded into its error envelope.
// Message carries the server's human-readable description and is what
// gets surfaced to the user.
type APIError struct {
	Status  int
	Type    string
	Message string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("api error (status %d): %s", e.Status, e.Message)
}

// Client talks to a DevQuest API server.
//
// The cookie jar holds the auth token cookie set by Login/Register, so
// authenticated calls work without manual header plumbing. Profile reads
// go through an in-memory TTL cache; a successful profile update
// invalidates the affected entry (see ProfileEditor).
type Client struct {
	baseURL    string
	httpClient *http.Client
	cache      *profileCache
	logger     *slog.Logger
}

// New creates a Client for the API at baseURL (no trailing slash).
func New(baseURL string, logger *slog.Logger) (*Client, error) {
	jar, err := cookiejar.New(nil)
	if err != nil {
		return nil, fmt.Errorf("creating cookie jar: %w", err)
	}
	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Jar:     jar,
			Timeout: 10 * time.Second,
		},
		cache:  newProfileCache(0, 0),
		logger: logger,
	}, nil
}

// do sends a JSON request and decodes a JSON response into out.
//
// Non-2xx responses are decoded into APIError. If the body isn't the
// standard error envelope (a proxy error page, say), the message falls
// back to the raw status so the caller still gets something actionable.
func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	var reqBody io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encoding request: %w", err)
		}
		reqBody = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Warn("request failed",
			slog.String("method", method),
			slog.String("path", path),
			slog.String("error", err.Error()),
		)
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		apiErr := &APIError{Status: resp.StatusCode}
		var envelope struct {
			Error   string `json:"error"`
			Message string `json:"message"`
		}
		if err := json.NewDecoder(resp.Body).Decode(&envelope); err == nil && envelope.Message != "" {
			apiErr.Type = envelope.Error
			apiErr.Message = envelope.Message
		} else {
			apiErr.Message = http.StatusText(resp.StatusCode)
		}
		return apiErr
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return fmt.Errorf("decoding response: %w", err)
		}
	}
	return nil
}

type credentialsRequest struct {
	Name     string `json:"name,omitempty"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Register creates an account. The returned token cookie lands in the
// jar, so the client is signed in afterwards.
func (c *Client) Register(ctx context.Context, name, email, password string) (*model.User, error) {
	var user model.User
	err := c.do(ctx, http.MethodPost, "/api/register",
		credentialsRequest{Name: name, Email: email, Password: password}, &user)
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// Login signs in with email and password.
func (c *Client) Login(ctx context.Context, email, password string) (*model.User, error) {
	var user model.User
	err := c.do(ctx, http.MethodPost, "/api/login",
		credentialsRequest{Email: email, Password: password}, &user)
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// Logout clears the session and drops all cached profiles, since they
// may include fields the anonymous view shouldn't reuse.
func (c *Client) Logout(ctx context.Context) error {
	if err := c.do(ctx, http.MethodPost, "/api/logout", nil, nil); err != nil {
		return err
	}
	c.cache.clear()
	return nil
}

// CurrentUser returns the signed-in user's record.
func (c *Client) CurrentUser(ctx context.Context) (*model.User, error) {
	var user model.User
	if err := c.do(ctx, http.MethodGet, "/api/user", nil, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

func profileKey(userID int64) string {
	return fmt.Sprintf("profile:%d", userID)
}

// FetchProfile returns a user's public profile, reading through the cache.
// A cached entry younger than the TTL is served without a network call.
func (c *Client) FetchProfile(ctx context.Context, userID int64) (*model.User, error) {
	key := profileKey(userID)
	if cached, ok := c.cache.get(key); ok {
		return cached.(*model.User), nil
	}

	var user model.User
	if err := c.do(ctx, http.MethodGet, fmt.Sprintf("/api/users/%d/profile", userID), nil, &user); err != nil {
		return nil, err
	}

	c.cache.set(key, &user)
	return &user, nil
}

// Categories returns the discussion category catalog.
func (c *Client) Categories(ctx context.Context) ([]model.Category, error) {
	var categories []model.Category
	if err := c.do(ctx, http.MethodGet, "/api/categories", nil, &categories); err != nil {
		return nil, err
	}
	return categories, nil
}

// Badges returns the badge catalog.
func (c *Client) Badges(ctx context.Context) ([]model.Badge, error) {
	var badges []model.Badge
	if err := c.do(ctx, http.MethodGet, "/api/badges", nil, &badges); err != nil {
		return nil, err
	}
	return badges, nil
}

// CacheStats reports profile cache counters for diagnostics.
func (c *Client) CacheStats() CacheStats {
	return c.cache.stats()
}
