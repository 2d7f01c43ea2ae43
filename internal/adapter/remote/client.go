// Package remote is the thin client for the external task REST API. Calls
// attach the bearer credential from the configured CredentialStore and fail
// with domain.ErrNotAuthenticated before any request when no token is held.
// The API is treated as eventually consistent; there are no retries.
package remote

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"tasktracker/internal/core/domain"
	"tasktracker/internal/core/ports"
)

const defaultTimeout = 15 * time.Second

// APIError is a non-2xx response decoded from the API's error body.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("remote api: %d %s", e.StatusCode, e.Message)
}

type Client struct {
	baseURL    string
	httpClient *http.Client
	creds      ports.CredentialStore
}

var _ ports.TaskPersistence = (*Client)(nil)

func NewClient(baseURL string, creds ports.CredentialStore) *Client {
	return &Client{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: defaultTimeout},
		creds:      creds,
	}
}

func (c *Client) List(ctx context.Context) ([]domain.Task, error) {
	var payloads []taskPayload
	if err := c.do(ctx, http.MethodGet, "/tasks", nil, &payloads); err != nil {
		return nil, err
	}
	tasks := make([]domain.Task, 0, len(payloads))
	for _, p := range payloads {
		tasks = append(tasks, toDomain(p))
	}
	return tasks, nil
}

func (c *Client) Create(ctx context.Context, task domain.Task) (domain.Task, error) {
	body := toPayload(task)
	body.ID = 0 // the server assigns identity
	var created taskPayload
	if err := c.do(ctx, http.MethodPost, "/tasks", body, &created); err != nil {
		return domain.Task{}, err
	}
	return toDomain(created), nil
}

func (c *Client) Replace(ctx context.Context, task domain.Task) error {
	path := fmt.Sprintf("/tasks/%d", task.ID)
	return c.do(ctx, http.MethodPut, path, toPayload(task), nil)
}

func (c *Client) Delete(ctx context.Context, id int64) error {
	path := fmt.Sprintf("/tasks/%d", id)
	return c.do(ctx, http.MethodDelete, path, nil, nil)
}

// SaveOrder is a no-op: the external API has no ordering endpoint, so the
// canonical order lives client-side only in remote mode.
func (c *Client) SaveOrder(ctx context.Context, ids []int64) error {
	_, _ = ctx, ids
	return nil
}

func (c *Client) Close() error {
	c.httpClient.CloseIdleConnections()
	return nil
}

func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	token, err := c.creds.Token()
	if err != nil {
		return err
	}
	if token == "" {
		return fmt.Errorf("%w: no token found, please log in", domain.ErrNotAuthenticated)
	}

	var reader io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reader = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("X-Request-ID", uuid.NewString())

	res, err := c.httpClient.Do(req)
	if err != nil {
		zap.L().Error("remote request failed",
			zap.String("method", method),
			zap.String("path", path),
			zap.Error(err),
		)
		return err
	}
	defer func() { _ = res.Body.Close() }()

	if res.StatusCode < 200 || res.StatusCode > 299 {
		return decodeError(res)
	}
	if out == nil {
		_, _ = io.Copy(io.Discard, res.Body)
		return nil
	}
	return json.NewDecoder(res.Body).Decode(out)
}

func decodeError(res *http.Response) error {
	apiErr := &APIError{StatusCode: res.StatusCode, Message: http.StatusText(res.StatusCode)}
	var payload errorPayload
	if err := json.NewDecoder(res.Body).Decode(&payload); err == nil && payload.Message != "" {
		apiErr.Message = payload.Message
	}
	if res.StatusCode == http.StatusUnauthorized || res.StatusCode == http.StatusForbidden {
		return fmt.Errorf("%w: %s", domain.ErrNotAuthenticated, apiErr.Message)
	}
	zap.L().Warn("remote api error",
		zap.Int("status", apiErr.StatusCode),
		zap.String("message", apiErr.Message),
	)
	return apiErr
}
