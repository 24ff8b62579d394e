// Package remote is the HTTP client for the remote deal store.
package remote

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	json "github.com/goccy/go-json"
	"github.com/thenoetrevino/dealboard/internal/models"
	"github.com/thenoetrevino/dealboard/internal/types"
)

// DefaultTimeout bounds a single request when no http.Client is supplied
const DefaultTimeout = 10 * time.Second

// maxErrorBody caps how much of an error response is read into a StatusError
const maxErrorBody = 4 << 10

// Client talks to the remote store over HTTP/JSON.
type Client struct {
	baseURL *url.URL
	http    *http.Client
	tokens  TokenSource
}

// Option configures a Client
type Option func(*Client)

// WithHTTPClient replaces the underlying http.Client
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.http = hc
	}
}

// WithTokenSource sets the bearer credential source
func WithTokenSource(ts TokenSource) Option {
	return func(c *Client) {
		c.tokens = ts
	}
}

// WithTimeout sets the per-request timeout of the default http.Client
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			c.http.Timeout = d
		}
	}
}

// NewClient creates a client for the store at baseURL.
func NewClient(baseURL string, opts ...Option) (*Client, error) {
	u, err := url.Parse(strings.TrimRight(baseURL, "/"))
	if err != nil {
		return nil, fmt.Errorf("invalid base url %q: %w", baseURL, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("invalid base url %q: scheme must be http or https", baseURL)
	}

	c := &Client{
		baseURL: u,
		http:    &http.Client{Timeout: DefaultTimeout},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// ListPipelines implements Store
func (c *Client) ListPipelines(ctx context.Context) ([]models.Pipeline, error) {
	var pipelines []models.Pipeline
	if err := c.do(ctx, http.MethodGet, "/pipelines", nil, nil, &pipelines); err != nil {
		return nil, fmt.Errorf("failed to list pipelines: %w", err)
	}
	return pipelines, nil
}

// GetPipeline implements Store. Stage order in the response is column order
// and is preserved as-is.
func (c *Client) GetPipeline(ctx context.Context, id types.PipelineID) (*models.PipelineDetail, error) {
	var detail models.PipelineDetail
	if err := c.do(ctx, http.MethodGet, "/pipelines/"+id.String(), nil, nil, &detail); err != nil {
		return nil, fmt.Errorf("failed to get pipeline %d: %w", id, err)
	}
	for i := range detail.Stages {
		// The stage list is nested under its pipeline and may omit the owner id
		if detail.Stages[i].PipelineID == 0 {
			detail.Stages[i].PipelineID = id
		}
	}
	return &detail, nil
}

// ListDeals implements Store
func (c *Client) ListDeals(ctx context.Context, pipelineID *types.PipelineID) ([]models.Deal, error) {
	query := url.Values{}
	if pipelineID != nil {
		query.Set("pipelineId", strconv.Itoa(pipelineID.ToInt()))
	}

	var deals []models.Deal
	if err := c.do(ctx, http.MethodGet, "/deals", query, nil, &deals); err != nil {
		return nil, fmt.Errorf("failed to list deals: %w", err)
	}
	return deals, nil
}

// MoveDeal implements Store
func (c *Client) MoveDeal(ctx context.Context, id types.DealID, move models.StageMove) (*models.Deal, error) {
	var deal models.Deal
	if err := c.do(ctx, http.MethodPut, "/deals/"+id.String(), nil, move, &deal); err != nil {
		return nil, fmt.Errorf("failed to move deal %d: %w", id, err)
	}
	return &deal, nil
}

// do sends one request and decodes a JSON response into out.
func (c *Client) do(ctx context.Context, method, path string, query url.Values, body, out any) error {
	u := *c.baseURL
	u.Path = c.baseURL.Path + path
	if query != nil {
		u.RawQuery = query.Encode()
	}

	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to encode request: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, u.String(), reader)
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if id := RequestIDFromContext(ctx); id != "" {
		req.Header.Set(RequestIDHeader, id)
	}
	if c.tokens != nil {
		token, err := c.tokens.Token(ctx)
		if err != nil {
			return fmt.Errorf("failed to obtain credential: %w", err)
		}
		if token != "" {
			req.Header.Set("Authorization", "Bearer "+token)
		}
	}

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer func() {
		if err := resp.Body.Close(); err != nil {
			slog.Debug("error closing response body", "error", err)
		}
	}()

	slog.Debug("remote request",
		"method", method,
		"path", path,
		"status", resp.StatusCode,
		"duration_ms", time.Since(start).Milliseconds())

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return readStatusError(resp)
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}

func readStatusError(resp *http.Response) error {
	data, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))

	var payload struct {
		Error string `json:"error"`
	}
	msg := strings.TrimSpace(string(data))
	if json.Unmarshal(data, &payload) == nil && payload.Error != "" {
		msg = payload.Error
	}
	return &StatusError{StatusCode: resp.StatusCode, Message: msg}
}
