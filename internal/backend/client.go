// Package backend provides client functionality for the report REST API.
package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"mediareport/internal/config"
	"mediareport/internal/logger"
)

// Backend errors.
var (
	ErrUnexpectedStatusCode = errors.New("unexpected status code")
	ErrNoTokenReceived      = errors.New("no token received from login")
	ErrReportIDRequired     = errors.New("report id is required")
	ErrNotFound             = errors.New("resource not found")
)

// maxResponseBytes caps every response body read.
const maxResponseBytes = 10 * 1024 * 1024

// Client defines the interface for fetching report records.
type Client interface {
	Login(ctx context.Context, email, password string) error
	FetchReport(ctx context.Context, id string) ([]byte, error)
	FetchModules(ctx context.Context, id string) ([]byte, error)
}

// Ensure HTTPClient implements Client.
var _ Client = (*HTTPClient)(nil)

// HTTPClient talks to the report backend over REST.
type HTTPClient struct {
	httpClient *http.Client
	baseURL    string
	apiKey     string
	authToken  string
	retry      config.RetryPolicy
	mu         sync.RWMutex
	logger     *logger.Logger
}

// NewHTTPClient creates a client for cfg.
func NewHTTPClient(cfg config.BackendConfig, log *logger.Logger) *HTTPClient {
	if log == nil {
		log = logger.Discard()
	}

	return &HTTPClient{
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		apiKey:  cfg.APIKey,
		retry:   cfg.Retry,
		httpClient: &http.Client{
			Timeout: cfg.Retry.GetTimeout(),
		},
		logger: log,
	}
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginResponse struct {
	Token string `json:"token"`
	User  struct {
		Email string `json:"email"`
	} `json:"user"`
}

// Login authenticates with email and password, storing the auth token.
func (c *HTTPClient) Login(ctx context.Context, email, password string) error {
	body, err := json.Marshal(loginRequest{Email: email, Password: password})
	if err != nil {
		return fmt.Errorf("failed to marshal login request: %w", err)
	}

	resp, err := c.do(ctx, http.MethodPost, "/users/login", body)
	if err != nil {
		return fmt.Errorf("login failed: %w", err)
	}

	var lr loginResponse
	if err := json.Unmarshal(resp, &lr); err != nil {
		return fmt.Errorf("failed to parse login response: %w", err)
	}

	if lr.Token == "" {
		return ErrNoTokenReceived
	}

	c.mu.Lock()
	c.authToken = lr.Token
	c.mu.Unlock()

	c.logger.Debug("logged in", "email", email)

	return nil
}

// FetchReport returns the raw report record.
func (c *HTTPClient) FetchReport(ctx context.Context, id string) ([]byte, error) {
	if id == "" {
		return nil, ErrReportIDRequired
	}

	return c.do(ctx, http.MethodGet, "/reports/"+url.PathEscape(id), nil)
}

// FetchModules returns the raw module map of a report.
func (c *HTTPClient) FetchModules(ctx context.Context, id string) ([]byte, error) {
	if id == "" {
		return nil, ErrReportIDRequired
	}

	return c.do(ctx, http.MethodGet, "/reports/"+url.PathEscape(id)+"/modules", nil)
}

// do sends a request, retrying transport errors and 5xx responses.
func (c *HTTPClient) do(ctx context.Context, method, path string, body []byte) ([]byte, error) {
	attempts := max(c.retry.MaxAttempts, 1)

	var lastErr error

	for attempt := 1; attempt <= attempts; attempt++ {
		if delay := c.retry.GetRetryDelay(attempt); delay > 0 {
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-time.After(delay):
			}
		}

		data, retry, err := c.send(ctx, method, path, body)
		if err == nil {
			return data, nil
		}

		lastErr = err
		if !retry {
			return nil, err
		}

		c.logger.Warn("backend request failed",
			"method", method,
			"path", path,
			"attempt", attempt,
			"error", err,
		)
	}

	return nil, fmt.Errorf("giving up after %d attempts: %w", attempts, lastErr)
}

// send performs one request; retry reports whether the failure is transient.
func (c *HTTPClient) send(ctx context.Context, method, path string, body []byte) (data []byte, retry bool, err error) {
	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return nil, false, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Accept", "application/json")

	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	c.mu.RLock()
	token := c.authToken
	key := c.apiKey
	c.mu.RUnlock()

	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	} else if key != "" {
		req.Header.Set("Authorization", key)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return nil, false, ctx.Err()
		}

		return nil, true, fmt.Errorf("request failed: %w", err)
	}
	defer func() {
		if closeErr := resp.Body.Close(); closeErr != nil {
			c.logger.Warn("failed to close response body", "path", path, "error", closeErr)
		}
	}()

	data, err = io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return nil, true, fmt.Errorf("failed to read response: %w", err)
	}

	switch {
	case resp.StatusCode == http.StatusOK:
		return data, false, nil
	case resp.StatusCode == http.StatusNotFound:
		return nil, false, fmt.Errorf("%w: %s", ErrNotFound, path)
	case resp.StatusCode >= http.StatusInternalServerError:
		return nil, true, fmt.Errorf("%w: %d: %s", ErrUnexpectedStatusCode, resp.StatusCode, string(data))
	default:
		return nil, false, fmt.Errorf("%w: %d: %s", ErrUnexpectedStatusCode, resp.StatusCode, string(data))
	}
}
