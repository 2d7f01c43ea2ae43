package remote

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/google/uuid"
)

// AuthClient drives the login/register flow against the same API host. Auth
// endpoints are the only ones called without a bearer credential.
type AuthClient struct {
	baseURL    string
	httpClient *http.Client
}

type Credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type Registration struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type tokenResponse struct {
	Token string `json:"token"`
}

func NewAuthClient(baseURL string) *AuthClient {
	return &AuthClient{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: defaultTimeout},
	}
}

// Login exchanges credentials for a bearer token.
func (a *AuthClient) Login(ctx context.Context, creds Credentials) (string, error) {
	return a.post(ctx, "/auth/login", creds)
}

// Register creates the account and returns a bearer token for it.
func (a *AuthClient) Register(ctx context.Context, reg Registration) (string, error) {
	return a.post(ctx, "/auth/register", reg)
}

func (a *AuthClient) post(ctx context.Context, path string, body any) (string, error) {
	encoded, err := json.Marshal(body)
	if err != nil {
		return "", err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, a.baseURL+path, bytes.NewReader(encoded))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Request-ID", uuid.NewString())

	res, err := a.httpClient.Do(req)
	if err != nil {
		return "", err
	}
	defer func() { _ = res.Body.Close() }()

	if res.StatusCode < 200 || res.StatusCode > 299 {
		apiErr := &APIError{StatusCode: res.StatusCode, Message: http.StatusText(res.StatusCode)}
		var payload errorPayload
		if err := json.NewDecoder(res.Body).Decode(&payload); err == nil && payload.Message != "" {
			apiErr.Message = payload.Message
		}
		return "", apiErr
	}

	var tr tokenResponse
	if err := json.NewDecoder(res.Body).Decode(&tr); err != nil {
		return "", err
	}
	if tr.Token == "" {
		return "", fmt.Errorf("auth response carried no token")
	}
	return tr.Token, nil
}
