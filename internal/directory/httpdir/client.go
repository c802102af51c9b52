// Package httpdir implements the UserDirectory contract against a remote
// deployment of the users REST API.
package httpdir

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"

	domain "user-admin-service/internal/domain/user"
)

// Client is an HTTP-based UserDirectory.
type Client struct {
	baseURL string
	http    *http.Client
	log     *zap.Logger
}

// NewClient creates a directory client for the API rooted at baseURL,
// e.g. "http://localhost:8080".
func NewClient(baseURL string, log *zap.Logger) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: 10 * time.Second},
		log:     log,
	}
}

type userPayload struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

type listPayload struct {
	Users []userPayload `json:"users"`
}

type errorPayload struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

func (p userPayload) toDomain() *domain.User {
	return &domain.User{ID: p.ID, Name: p.Name, Email: p.Email}
}

// listPageLimit bounds how many records are fetched per page when
// flattening the paginated list endpoint.
const listPageLimit = 100

// ListUsers fetches the full user list, walking API pages in order.
func (c *Client) ListUsers(ctx context.Context) ([]domain.User, error) {
	var all []domain.User
	for page := 1; ; page++ {
		var payload listPayload
		path := fmt.Sprintf("/v1/users?page=%d&limit=%d", page, listPageLimit)
		if err := c.do(ctx, http.MethodGet, path, nil, &payload); err != nil {
			return nil, err
		}

		for _, p := range payload.Users {
			all = append(all, *p.toDomain())
		}
		if len(payload.Users) < listPageLimit {
			return all, nil
		}
	}
}

// CreateUser creates a user and returns the created record.
func (c *Client) CreateUser(ctx context.Context, u domain.User) (*domain.User, error) {
	var payload userPayload
	body := userPayload{Name: u.Name, Email: u.Email}
	if err := c.do(ctx, http.MethodPost, "/v1/users", body, &payload); err != nil {
		return nil, err
	}
	return payload.toDomain(), nil
}

// UpdateUser updates a user and returns the updated record.
func (c *Client) UpdateUser(ctx context.Context, u domain.User) (*domain.User, error) {
	var payload userPayload
	body := userPayload{Name: u.Name, Email: u.Email}
	if err := c.do(ctx, http.MethodPut, "/v1/users/"+u.ID, body, &payload); err != nil {
		return nil, err
	}
	return payload.toDomain(), nil
}

// DeleteUser deletes a user and returns the removed record.
func (c *Client) DeleteUser(ctx context.Context, id string) (*domain.User, error) {
	var payload userPayload
	if err := c.do(ctx, http.MethodDelete, "/v1/users/"+id, nil, &payload); err != nil {
		return nil, err
	}
	return payload.toDomain(), nil
}

// do performs one API round trip, decoding the JSON response into out.
func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to encode request body: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		c.log.Error("directory request failed", zap.String("method", method), zap.String("path", path), zap.Error(err))
		return fmt.Errorf("directory request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusBadRequest {
		var apiErr errorPayload
		if err := json.NewDecoder(resp.Body).Decode(&apiErr); err == nil && apiErr.Message != "" {
			c.log.Warn("directory returned error",
				zap.String("method", method),
				zap.String("path", path),
				zap.Int("status", resp.StatusCode),
				zap.String("error", apiErr.Error),
			)
			return fmt.Errorf("directory error (%d): %s", resp.StatusCode, apiErr.Message)
		}
		return fmt.Errorf("directory error: unexpected status %d", resp.StatusCode)
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return fmt.Errorf("failed to decode response: %w", err)
		}
	}
	return nil
}
