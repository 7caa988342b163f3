// Package remote persists entries to the lift HTTP API.
package remote

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
	"time"

	"github.com/foundersandcoders/lift/internal/models"
	"github.com/foundersandcoders/lift/internal/syncer"
)

var ErrNoBaseURL = errors.New("remote API URL is not configured")

// StatusError is a non-2xx response.
type StatusError struct {
	Method string
	Path   string
	Code   int
	Body   string
}

func (e *StatusError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("%s %s: status %d", e.Method, e.Path, e.Code)
	}
	return fmt.Sprintf("%s %s: status %d: %s", e.Method, e.Path, e.Code, e.Body)
}

// Client implements syncer.Backend and statements.Gratitude over HTTP.
type Client struct {
	baseURL    string
	token      string
	httpClient *http.Client
}

// New returns a client for baseURL. token, when set, is sent as a bearer
// token.
func New(baseURL, token string) (*Client, error) {
	baseURL = strings.TrimRight(strings.TrimSpace(baseURL), "/")
	if baseURL == "" {
		return nil, ErrNoBaseURL
	}
	u, err := url.Parse(baseURL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return nil, fmt.Errorf("invalid remote API URL %q", baseURL)
	}
	return &Client{
		baseURL: baseURL,
		token:   token,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}, nil
}

func (c *Client) CreateEntry(ctx context.Context, e models.Entry) error {
	return c.do(ctx, http.MethodPost, "/newEntry", e, nil)
}

func (c *Client) UpdateEntry(ctx context.Context, e models.Entry) error {
	return c.do(ctx, http.MethodPut, "/updateEntry", e, nil)
}

func (c *Client) DeleteEntry(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/entries/"+url.PathEscape(id), nil, nil)
}

// ListEntries fetches the statements the API holds for subject.
func (c *Client) ListEntries(ctx context.Context, subject string) ([]models.Entry, error) {
	var out []models.Entry
	if err := c.do(ctx, http.MethodGet, "/n/s/"+url.PathEscape(subject), nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Upsert returns a backend whose updates fall back to creating entries the
// API does not have yet.
func (c *Client) Upsert() syncer.Backend {
	return upsert{c}
}

type upsert struct{ *Client }

func (u upsert) UpdateEntry(ctx context.Context, e models.Entry) error {
	err := u.Client.UpdateEntry(ctx, e)
	var status *StatusError
	if errors.As(err, &status) && status.Code == http.StatusNotFound {
		return u.CreateEntry(ctx, e)
	}
	return err
}

type markRequest struct {
	Message string `json:"message"`
}

// MarkSent records that gratitude was sent for an action and returns the
// server's copy of it.
func (c *Client) MarkSent(ctx context.Context, entryID, actionID, message string) (models.Action, error) {
	path := "/gratitude/mark/" + url.PathEscape(entryID) + "/" + url.PathEscape(actionID)
	var out struct {
		Action models.Action `json:"action"`
	}
	if err := c.do(ctx, http.MethodPost, path, markRequest{Message: message}, &out); err != nil {
		return models.Action{}, err
	}
	return out.Action, nil
}

// do sends body as JSON and decodes the response into out when out is
// non-nil. Client errors other than 408 and 429 are wrapped with
// syncer.Permanent so they are not retried.
func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return syncer.Permanent(fmt.Errorf("failed to encode request: %w", err))
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return syncer.Permanent(fmt.Errorf("failed to create request: %w", err))
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	res, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer res.Body.Close()

	if res.StatusCode < 200 || res.StatusCode > 299 {
		msg, _ := io.ReadAll(io.LimitReader(res.Body, 1024))
		statusErr := &StatusError{Method: method, Path: path, Code: res.StatusCode, Body: strings.TrimSpace(string(msg))}
		if isPermanent(res.StatusCode) {
			return syncer.Permanent(statusErr)
		}
		return statusErr
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(res.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode %s %s response: %w", method, path, err)
	}
	return nil
}

func isPermanent(code int) bool {
	if code == http.StatusRequestTimeout || code == http.StatusTooManyRequests {
		return false
	}
	return code >= 400 && code < 500
}
