package supabase

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"shopsmith/internal/services"
)

// HTTPDoer describes the HTTP client used by the backend service.
type HTTPDoer interface {
	Do(req *http.Request) (*http.Response, error)
}

// User is the subset of the auth admin user record this toolkit reads.
type User struct {
	ID        string `json:"id"`
	Email     string `json:"email"`
	CreatedAt string `json:"created_at"`
}

// Option configures the client.
type Option func(*Client)

// WithHTTPClient injects a custom HTTP client (primarily for tests).
func WithHTTPClient(doer HTTPDoer) Option {
	return func(c *Client) {
		if doer != nil {
			c.client = doer
		}
	}
}

// Client wraps the backend's admin HTTP API.
type Client struct {
	baseURL    string
	serviceKey string
	client     HTTPDoer
}

// New constructs a backend admin client authenticated with the service key.
func New(baseURL, serviceKey string, timeoutSeconds int, opts ...Option) (*Client, error) {
	baseURL = strings.TrimRight(strings.TrimSpace(baseURL), "/")
	if baseURL == "" {
		return nil, errors.New("backend base URL required")
	}
	if strings.TrimSpace(serviceKey) == "" {
		return nil, errors.New("backend service key required")
	}
	timeout := time.Duration(timeoutSeconds) * time.Second
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	client := &Client{
		baseURL:    baseURL,
		serviceKey: strings.TrimSpace(serviceKey),
		client:     &http.Client{Timeout: timeout},
	}
	for _, opt := range opts {
		opt(client)
	}
	return client, nil
}

// FindUserByEmail looks a user up through the auth admin API. A nil user
// with a nil error means the user does not exist.
func (c *Client) FindUserByEmail(ctx context.Context, email string) (*User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" {
		return nil, services.Wrap(services.ErrValidation, "backend", "find user", "email required", nil)
	}

	endpoint := fmt.Sprintf("%s/auth/v1/admin/users?%s", c.baseURL, url.Values{"email": {email}}.Encode())
	var payload struct {
		Users []User `json:"users"`
	}
	if err := c.doJSON(ctx, http.MethodGet, endpoint, nil, &payload); err != nil {
		return nil, err
	}
	for i := range payload.Users {
		if strings.EqualFold(payload.Users[i].Email, email) {
			return &payload.Users[i], nil
		}
	}
	return nil, nil
}

// CreateUser provisions a confirmed user through the auth admin API.
func (c *Client) CreateUser(ctx context.Context, email, password string) (*User, error) {
	body := map[string]any{
		"email":         strings.ToLower(strings.TrimSpace(email)),
		"password":      password,
		"email_confirm": true,
	}
	endpoint := c.baseURL + "/auth/v1/admin/users"
	var created User
	if err := c.doJSON(ctx, http.MethodPost, endpoint, body, &created); err != nil {
		return nil, err
	}
	return &created, nil
}

// SendPasswordReset triggers the backend's password-recover email.
func (c *Client) SendPasswordReset(ctx context.Context, email, redirectTo string) error {
	body := map[string]any{"email": strings.ToLower(strings.TrimSpace(email))}
	endpoint := c.baseURL + "/auth/v1/recover"
	if redirectTo = strings.TrimSpace(redirectTo); redirectTo != "" {
		endpoint += "?redirect_to=" + url.QueryEscape(redirectTo)
	}
	return c.doJSON(ctx, http.MethodPost, endpoint, body, nil)
}

// ExecSQL runs one SQL statement through the exec_sql RPC. ErrNotFound marks
// a project without the RPC installed so callers can fall back to printing
// manual instructions.
func (c *Client) ExecSQL(ctx context.Context, statement string) error {
	if strings.TrimSpace(statement) == "" {
		return services.Wrap(services.ErrValidation, "backend", "exec sql", "empty statement", nil)
	}
	endpoint := c.baseURL + "/rest/v1/rpc/exec_sql"
	return c.doJSON(ctx, http.MethodPost, endpoint, map[string]any{"query": statement}, nil)
}

// SampleRows fetches up to limit rows from a table, newest first, as raw
// JSON objects.
func (c *Client) SampleRows(ctx context.Context, table string, limit int) ([]map[string]any, error) {
	table = strings.TrimSpace(table)
	if table == "" {
		return nil, services.Wrap(services.ErrValidation, "backend", "sample rows", "table required", nil)
	}
	if limit <= 0 {
		limit = 20
	}
	query := url.Values{
		"select": {"*"},
		"order":  {"created_at.desc"},
		"limit":  {strconv.Itoa(limit)},
	}
	endpoint := fmt.Sprintf("%s/rest/v1/%s?%s", c.baseURL, url.PathEscape(table), query.Encode())
	var rows []map[string]any
	if err := c.doJSON(ctx, http.MethodGet, endpoint, nil, &rows); err != nil {
		return nil, err
	}
	return rows, nil
}

func (c *Client) doJSON(ctx context.Context, method, endpoint string, body any, out any) error {
	var reader io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode backend request: %w", err)
		}
		reader = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, reader)
	if err != nil {
		return fmt.Errorf("build backend request: %w", err)
	}
	req.Header.Set("apikey", c.serviceKey)
	req.Header.Set("Authorization", "Bearer "+c.serviceKey)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.client.Do(req)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return services.Wrap(services.ErrTimeout, "backend", method, "backend did not answer in time", err)
		}
		return services.Wrap(services.ErrExternalTool, "backend", method, "request failed", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return services.Wrap(services.ErrNotFound, "backend", method,
			fmt.Sprintf("endpoint %s not available", endpoint), nil)
	}
	if resp.StatusCode >= http.StatusMultipleChoices {
		detail, _ := io.ReadAll(io.LimitReader(resp.Body, 2048))
		return services.Wrap(
			services.ErrExternalTool,
			"backend",
			method,
			fmt.Sprintf("backend returned %s: %s", resp.Status, strings.TrimSpace(string(detail))),
			nil,
		)
	}

	if out == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		if errors.Is(err, io.EOF) {
			return nil
		}
		return fmt.Errorf("decode backend response: %w", err)
	}
	return nil
}
