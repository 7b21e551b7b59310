package smoke

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
)

// requestIDHeader is honoured by the server's request id middleware.
const requestIDHeader = "X-Request-Id"

// StatusError reports an unexpected HTTP status.
type StatusError struct {
	Method string
	URL    string
	Status int
	Body   string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("%s %s: status %d: %s", e.Method, e.URL, e.Status, strings.TrimSpace(e.Body))
}

// Client talks to the tracker API.
type Client struct {
	baseURL string
	http    *http.Client
}

// NewClient creates a client with the given request timeout.
func NewClient(baseURL string, timeout time.Duration) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: timeout},
	}
}

// Health checks /healthz.
func (c *Client) Health(ctx context.Context) error {
	return c.do(ctx, http.MethodGet, "/healthz", nil, "", nil)
}

// CreateUser posts a username as a form, the way the landing page does.
func (c *Client) CreateUser(ctx context.Context, username string) (User, error) {
	var out User
	form := url.Values{"username": {username}}
	err := c.do(ctx, http.MethodPost, "/api/users",
		strings.NewReader(form.Encode()), "application/x-www-form-urlencoded", &out)
	return out, err
}

// AddExercise posts an exercise as JSON.
func (c *Client) AddExercise(ctx context.Context, userID string, ex PlannedExercise) (Exercise, error) {
	var out Exercise
	body, err := json.Marshal(ex)
	if err != nil {
		return out, fmt.Errorf("failed to marshal exercise: %w", err)
	}
	err = c.do(ctx, http.MethodPost, "/api/users/"+url.PathEscape(userID)+"/exercises",
		bytes.NewReader(body), "application/json", &out)
	return out, err
}

// GetLog fetches a user's log with optional from, to and limit parameters.
func (c *Client) GetLog(ctx context.Context, userID string, params url.Values) (Log, error) {
	var out Log
	path := "/api/users/" + url.PathEscape(userID) + "/logs"
	if len(params) > 0 {
		path += "?" + params.Encode()
	}
	err := c.do(ctx, http.MethodGet, path, nil, "", &out)
	return out, err
}

func (c *Client) do(ctx context.Context, method, path string, body io.Reader, contentType string, out any) error {
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	req.Header.Set(requestIDHeader, uuid.NewString())

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer func() { _ = resp.Body.Close() }()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return &StatusError{Method: method, URL: path, Status: resp.StatusCode, Body: string(data)}
	}
	if out == nil {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("failed to decode %s %s: %w", method, path, err)
	}
	return nil
}
