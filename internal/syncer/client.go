// Package syncer bridges the local draft slot store and the remote draft
// service: full backup (push), full restore (pull-and-merge) and single-slot
// sync/load flows.
package syncer

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/debemdeboas/palette-drafts/internal/config"
	"github.com/debemdeboas/palette-drafts/internal/model"
)

// Client is a typed HTTP client for the remote draft service API.
type Client struct {
	baseURL string
	http    *http.Client
}

// NewClient builds a client for baseURL (e.g. "http://localhost:3000/api").
func NewClient(baseURL string, timeout time.Duration) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: timeout},
	}
}

func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	var reqBody io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("error encoding request: %w", err)
		}
		reqBody = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return fmt.Errorf("error creating request: %w", err)
	}
	if body != nil {
		req.Header.Set(config.HCType, config.CTypeJSON)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("error calling draft service: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		var apiErr model.ErrorResponse
		if json.NewDecoder(resp.Body).Decode(&apiErr) == nil && apiErr.Error != "" {
			return fmt.Errorf("draft service error (%d): %s", resp.StatusCode, apiErr.Error)
		}
		return fmt.Errorf("draft service error: status %d", resp.StatusCode)
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return fmt.Errorf("error decoding response: %w", err)
		}
	}
	return nil
}

// GetDrafts fetches the complete remote draft list.
func (c *Client) GetDrafts(ctx context.Context) (model.DraftsEnvelope, error) {
	var env model.DraftsEnvelope
	err := c.do(ctx, http.MethodGet, "/drafts", nil, &env)
	return env, err
}

// PutDrafts replaces the entire remote list. The remote truncates to the
// first six entries and discards whatever it held before.
func (c *Client) PutDrafts(ctx context.Context, drafts []model.Draft) (model.SaveResponse, error) {
	var resp model.SaveResponse
	err := c.do(ctx, http.MethodPost, "/drafts", map[string][]model.Draft{"drafts": drafts}, &resp)
	return resp, err
}

// RestoreDrafts is PutDrafts under the restore verb.
func (c *Client) RestoreDrafts(ctx context.Context, drafts []model.Draft) (model.SaveResponse, error) {
	var resp model.SaveResponse
	err := c.do(ctx, http.MethodPost, "/drafts/restore", map[string][]model.Draft{"drafts": drafts}, &resp)
	return resp, err
}

// ClearDrafts empties the remote list.
func (c *Client) ClearDrafts(ctx context.Context) (model.SaveResponse, error) {
	var resp model.SaveResponse
	err := c.do(ctx, http.MethodDelete, "/drafts", nil, &resp)
	return resp, err
}

// Ping reports whether the service answers its health probe.
func (c *Client) Ping(ctx context.Context) bool {
	var health model.HealthResponse
	if err := c.do(ctx, http.MethodGet, "/health", nil, &health); err != nil {
		return false
	}
	return health.Status == "ok"
}

var syncLogger zerolog.Logger

func SetLogger(l zerolog.Logger) {
	syncLogger = l
}
