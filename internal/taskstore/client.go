// Package taskstore is the REST client for the task backend: it reads a
// project's task list and persists status/order updates.
package taskstore

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/bytedance/sonic"
	"github.com/google/uuid"
	"github.com/thenoetrevino/taskboard/internal/auth"
	"github.com/thenoetrevino/taskboard/internal/models"
)

// maxErrorBody caps how much of an error response is read for its message
const maxErrorBody = 64 << 10

// Client talks to the task REST API
type Client struct {
	baseURL *url.URL
	http    *http.Client
	tokens  auth.TokenProvider
	logger  *slog.Logger
}

// Option configures a Client
type Option func(*Client)

// WithHTTPClient replaces the default http.Client
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.http = hc
	}
}

// WithLogger sets the logger for request diagnostics
func WithLogger(logger *slog.Logger) Option {
	return func(c *Client) {
		c.logger = logger
	}
}

// NewClient creates a client for the API rooted at baseURL.
// tokens may be nil for unauthenticated backends.
func NewClient(baseURL string, tokens auth.TokenProvider, opts ...Option) (*Client, error) {
	u, err := url.Parse(strings.TrimRight(baseURL, "/"))
	if err != nil {
		return nil, fmt.Errorf("invalid api url: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("invalid api url %q: scheme must be http or https", baseURL)
	}

	c := &Client{
		baseURL: u,
		http:    &http.Client{Timeout: 15 * time.Second},
		tokens:  tokens,
		logger:  slog.Default(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// UpdateTask sends PATCH /tasks/{id} with the new status and order.
// An empty 2xx body is a success and returns a nil task.
func (c *Client) UpdateTask(ctx context.Context, id models.TaskID, patch models.TaskPatch) (*models.Task, error) {
	body, err := sonic.Marshal(patch)
	if err != nil {
		return nil, &PersistenceError{TaskID: id, Err: fmt.Errorf("failed to encode patch: %w", err)}
	}

	resp, err := c.do(ctx, http.MethodPatch, c.endpoint("tasks", string(id)), body)
	if err != nil {
		return nil, &PersistenceError{TaskID: id, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		msg := errorMessage(resp)
		return nil, &PersistenceError{TaskID: id, StatusCode: resp.StatusCode, Message: msg, Err: errors.New(msg)}
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &PersistenceError{TaskID: id, StatusCode: resp.StatusCode, Err: fmt.Errorf("failed to read response: %w", err)}
	}
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, nil
	}

	var task models.Task
	if err := sonic.Unmarshal(data, &task); err != nil {
		// The update went through; an unreadable echo is not worth failing the move over.
		c.logger.Warn("unreadable task update response", "task_id", id, "error", err)
		return nil, nil
	}
	return &task, nil
}

// ListTasks returns the full task list of a project.
// Both a bare JSON array and an object with a "tasks" field are accepted.
func (c *Client) ListTasks(ctx context.Context, projectID string) ([]models.Task, error) {
	resp, err := c.do(ctx, http.MethodGet, c.endpoint("projects", projectID, "tasks"), nil)
	if err != nil {
		return nil, &SourceError{ProjectID: projectID, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		msg := errorMessage(resp)
		return nil, &SourceError{ProjectID: projectID, StatusCode: resp.StatusCode, Message: msg, Err: errors.New(msg)}
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &SourceError{ProjectID: projectID, StatusCode: resp.StatusCode, Err: err}
	}

	tasks, err := decodeTaskList(data)
	if err != nil {
		return nil, &SourceError{ProjectID: projectID, StatusCode: resp.StatusCode, Err: err}
	}
	return tasks, nil
}

func (c *Client) endpoint(segments ...string) string {
	u := *c.baseURL
	escaped := make([]string, len(segments))
	for i, s := range segments {
		escaped[i] = url.PathEscape(s)
	}
	u.Path = c.baseURL.Path + "/" + strings.Join(segments, "/")
	u.RawPath = c.baseURL.EscapedPath() + "/" + strings.Join(escaped, "/")
	return u.String()
}

func (c *Client) do(ctx context.Context, method, target string, body []byte) (*http.Response, error) {
	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}

	req, err := http.NewRequestWithContext(ctx, method, target, reader)
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-ID", uuid.NewString())
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	if c.tokens != nil {
		tok, err := c.tokens.Token(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to get bearer token: %w", err)
		}
		req.Header.Set("Authorization", "Bearer "+tok)
	}

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		c.logger.Debug("api request failed", "method", method, "url", target, "error", err)
		return nil, err
	}
	c.logger.Debug("api request",
		"method", method,
		"url", target,
		"status", resp.StatusCode,
		"request_id", req.Header.Get("X-Request-ID"),
		"duration", time.Since(start))
	return resp, nil
}

func decodeTaskList(data []byte) ([]models.Task, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 {
		return []models.Task{}, nil
	}

	if trimmed[0] == '[' {
		var tasks []models.Task
		if err := sonic.Unmarshal(trimmed, &tasks); err != nil {
			return nil, fmt.Errorf("%w: failed to decode task list: %v", ErrMalformedResponse, err)
		}
		return tasks, nil
	}

	var wrapped struct {
		Tasks []models.Task `json:"tasks"`
	}
	if err := sonic.Unmarshal(trimmed, &wrapped); err != nil {
		return nil, fmt.Errorf("%w: failed to decode task list: %v", ErrMalformedResponse, err)
	}
	if wrapped.Tasks == nil {
		wrapped.Tasks = []models.Task{}
	}
	return wrapped.Tasks, nil
}

// errorMessage prefers the server's "message" (or "error") field and falls
// back to a generic status text.
func errorMessage(resp *http.Response) string {
	data, err := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
	if err != nil || len(bytes.TrimSpace(data)) == 0 {
		return statusMessage(resp.StatusCode)
	}

	var payload struct {
		Message string `json:"message"`
		Error   string `json:"error"`
	}
	if sonic.Unmarshal(data, &payload) == nil {
		if payload.Message != "" {
			return payload.Message
		}
		if payload.Error != "" {
			return payload.Error
		}
	}
	return statusMessage(resp.StatusCode)
}
