// Package api is the HTTP client of the recipe management backend. Every
// request re-reads the bearer token from the session store; there is no
// retry and no timeout beyond what the underlying http.Client defines.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"

	"github.com/google/uuid"

	"github.com/goliatone/go-recipebook/pkg/contract"
	"github.com/goliatone/go-recipebook/pkg/model"
	"github.com/goliatone/go-recipebook/pkg/session"
)

// RequestIDHeader carries the per-request correlation id.
const RequestIDHeader = "X-Request-Id"

// maxErrorBody bounds how much of a failed response body is kept.
const maxErrorBody = 4096

// Client talks to the backend.
type Client struct {
	baseURL   string
	http      *http.Client
	session   session.Store
	contract  *contract.Contract
	logger    *slog.Logger
	requestID func() string
}

// New constructs a Client with defaults plus any overrides.
func New(options ...Option) *Client {
	c := &Client{
		baseURL:   DefaultBaseURL,
		http:      http.DefaultClient,
		logger:    discardLogger(),
		requestID: func() string { return uuid.NewString() },
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(c)
	}
	return c
}

// BaseURL reports the configured backend origin.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// List fetches the whole collection.
func (c *Client) List(ctx context.Context, col model.Collection) ([]model.Item, error) {
	var items []model.Item
	if err := c.do(ctx, http.MethodGet, col.Path(), nil, true, &items); err != nil {
		return nil, err
	}
	if items == nil {
		items = []model.Item{}
	}
	return items, nil
}

// Create posts the collection's required fields.
func (c *Client) Create(ctx context.Context, col model.Collection, fields model.Fields) error {
	return c.do(ctx, http.MethodPost, col.Path(), fields.Pick(col.RequiredFields...), true, nil)
}

// Update puts the collection's mutable fields to the item.
func (c *Client) Update(ctx context.Context, col model.Collection, id model.ID, fields model.Fields) error {
	if id.IsZero() {
		return fmt.Errorf("api: update %s: id is required", col.Name)
	}
	return c.do(ctx, http.MethodPut, col.ItemPath(id), fields.Pick(col.MutableFields...), true, nil)
}

// Delete removes the item.
func (c *Client) Delete(ctx context.Context, col model.Collection, id model.ID) error {
	if id.IsZero() {
		return fmt.Errorf("api: delete %s: id is required", col.Name)
	}
	return c.do(ctx, http.MethodDelete, col.ItemPath(id), nil, true, nil)
}

// Register creates an account. It is sent without credentials.
func (c *Client) Register(ctx context.Context, req model.RegisterRequest) error {
	return c.do(ctx, http.MethodPost, "/register", req, false, nil)
}

// Logout ends the server side session of the stored token.
func (c *Client) Logout(ctx context.Context) error {
	return c.do(ctx, http.MethodPost, "/logout", nil, true, nil)
}

func (c *Client) do(ctx context.Context, method, path string, body any, auth bool, out any) error {
	var payload []byte
	if body != nil {
		var err error
		payload, err = json.Marshal(body)
		if err != nil {
			return fmt.Errorf("api: encode %s %s: %w", method, path, err)
		}
	}

	if c.contract != nil {
		if err := c.contract.ValidateRequest(ctx, method, path, payload); err != nil {
			return fmt.Errorf("%w: %v", ErrContract, err)
		}
	}

	var reader io.Reader
	if payload != nil {
		reader = bytes.NewReader(payload)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("api: build %s %s: %w", method, path, err)
	}
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")
	if auth {
		req.Header.Set("Authorization", "Bearer "+session.Token(c.session))
	}
	reqID := c.requestID()
	req.Header.Set(RequestIDHeader, reqID)

	logger := c.logger.With("method", method, "path", path, "request_id", reqID)

	resp, err := c.http.Do(req)
	if err != nil {
		logger.Error("request failed", "error", err)
		return fmt.Errorf("api: %s %s: %w", method, path, err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		data, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		logger.Warn("unexpected status", "status", resp.StatusCode)
		return &StatusError{
			Method: method,
			Path:   path,
			Code:   resp.StatusCode,
			Status: resp.Status,
			Body:   string(data),
		}
	}
	logger.Debug("request completed", "status", resp.StatusCode)

	if out == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("api: decode %s %s: %w", method, path, err)
	}
	return nil
}
