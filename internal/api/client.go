// Package api is the HTTP client for the question evaluation service.
//
// The service owns upload parsing and persistence. This package only speaks the
// subset of its contract the review client relies on:
//
//	GET  /api/questions?page&per_page&filter
//	GET  /api/questions/{id}
//	PUT  /api/questions/{id}      {"score"} or {"category_ids"}
//	GET  /api/categories
//	POST /api/upload              multipart "file"
//	GET  /health
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/colonyops/qaeval/internal/core/question"
)

// PerPage is the fixed page size requested by this client.
const PerPage = 20

const (
	defaultTimeout = 30 * time.Second
	maxBodyBytes   = 32 << 20
)

// Client talks to the evaluation service.
type Client struct {
	base   *url.URL
	http   *http.Client
	logger zerolog.Logger
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.http = hc }
}

// WithTimeout sets the per-request timeout of the default HTTP client.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			c.http.Timeout = d
		}
	}
}

// WithLogger sets the logger used for request tracing.
func WithLogger(l zerolog.Logger) Option {
	return func(c *Client) { c.logger = l }
}

// New creates a client for the service at baseURL (e.g. "http://localhost:5001").
func New(baseURL string, opts ...Option) (*Client, error) {
	u, err := url.Parse(strings.TrimRight(baseURL, "/"))
	if err != nil {
		return nil, fmt.Errorf("parse server url: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("server url %q must use http or https", baseURL)
	}

	c := &Client{
		base:   u,
		http:   &http.Client{Timeout: defaultTimeout},
		logger: zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// BaseURL returns the service address.
func (c *Client) BaseURL() string {
	return c.base.String()
}

type pageBody struct {
	Questions   []question.Question `json:"questions"`
	CurrentPage int                 `json:"current_page"`
	TotalPages  int                 `json:"total_pages"`
	HasNext     bool                `json:"has_next"`
	HasPrev     bool                `json:"has_prev"`
}

// ListQuestions fetches one page of questions matching filter. The returned
// PageState is re-derived from current_page/total_pages so the navigation
// flags always agree with the page numbers.
func (c *Client) ListQuestions(ctx context.Context, page int, filter question.Filter) (question.Page, error) {
	if page < 1 {
		page = 1
	}
	if !filter.IsValid() {
		filter = question.FilterAll
	}

	q := url.Values{}
	q.Set("page", strconv.Itoa(page))
	q.Set("per_page", strconv.Itoa(PerPage))
	q.Set("filter", string(filter))

	var body pageBody
	if err := c.do(ctx, "list questions", http.MethodGet, "/api/questions", q, nil, "", &body); err != nil {
		return question.Page{}, err
	}

	if body.HasNext != (body.CurrentPage < body.TotalPages) || body.HasPrev != (body.CurrentPage > 1) {
		c.logger.Debug().
			Int("current_page", body.CurrentPage).
			Int("total_pages", body.TotalPages).
			Bool("has_next", body.HasNext).
			Bool("has_prev", body.HasPrev).
			Msg("server navigation flags disagree with page numbers, deriving")
	}

	questions := body.Questions
	if questions == nil {
		questions = []question.Question{}
	}

	return question.Page{
		Questions: questions,
		State:     question.NewPageState(body.CurrentPage, body.TotalPages, filter),
	}, nil
}

// GetQuestion fetches the full record of one question.
func (c *Client) GetQuestion(ctx context.Context, id int) (question.Detail, error) {
	var d question.Detail
	if err := c.do(ctx, "get question", http.MethodGet, "/api/questions/"+strconv.Itoa(id), nil, nil, "", &d); err != nil {
		return question.Detail{}, err
	}
	return d, nil
}

// ListCategories fetches the category directory.
func (c *Client) ListCategories(ctx context.Context) ([]question.Category, error) {
	var body struct {
		Categories []question.Category `json:"categories"`
	}
	if err := c.do(ctx, "list categories", http.MethodGet, "/api/categories", nil, nil, "", &body); err != nil {
		return nil, err
	}
	if body.Categories == nil {
		body.Categories = []question.Category{}
	}
	return body.Categories, nil
}

// UpdateQuestion applies a single-field patch. Any non-success status is
// returned as a *RejectedError.
func (c *Client) UpdateQuestion(ctx context.Context, id int, p question.Patch) (question.Update, error) {
	payload, err := json.Marshal(p)
	if err != nil {
		return question.Update{}, fmt.Errorf("encode patch: %w", err)
	}

	var u question.Update
	err = c.do(ctx, "update question", http.MethodPut, "/api/questions/"+strconv.Itoa(id), nil,
		bytes.NewReader(payload), "application/json", &u)
	if err != nil {
		return question.Update{}, err
	}
	return u, nil
}

// Health checks the service liveness endpoint.
func (c *Client) Health(ctx context.Context) error {
	return c.do(ctx, "health", http.MethodGet, "/health", nil, nil, "", nil)
}

func (c *Client) endpoint(path string, query url.Values) string {
	u := *c.base
	u.Path = strings.TrimRight(u.Path, "/") + path
	if query != nil {
		u.RawQuery = query.Encode()
	}
	return u.String()
}

// send executes the request and returns the status and body. Transport
// failures are wrapped in *NetworkError.
func (c *Client) send(ctx context.Context, op, method, path string, query url.Values, body io.Reader, contentType string) (int, []byte, error) {
	req, err := http.NewRequestWithContext(ctx, method, c.endpoint(path, query), body)
	if err != nil {
		return 0, nil, fmt.Errorf("%s: build request: %w", op, err)
	}
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	req.Header.Set("Accept", "application/json")

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		c.logger.Warn().Err(err).Str("op", op).Str("url", req.URL.String()).Msg("request failed")
		return 0, nil, &NetworkError{Op: op, Err: err}
	}
	defer func() { _ = resp.Body.Close() }()

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return resp.StatusCode, nil, &NetworkError{Op: op, Err: fmt.Errorf("read body: %w", err)}
	}

	c.logger.Debug().
		Str("op", op).
		Str("method", method).
		Str("url", req.URL.String()).
		Int("status", resp.StatusCode).
		Dur("took", time.Since(start)).
		Msg("request complete")

	return resp.StatusCode, data, nil
}

func (c *Client) do(ctx context.Context, op, method, path string, query url.Values, body io.Reader, contentType string, out any) error {
	status, data, err := c.send(ctx, op, method, path, query, body, contentType)
	if err != nil {
		return err
	}

	if status < 200 || status > 299 {
		eb := decodeErrorBody(data)
		return &RejectedError{Op: op, Status: status, Message: eb.Error}
	}

	if out == nil || len(bytes.TrimSpace(data)) == 0 {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("%s: decode response: %w", op, err)
	}
	return nil
}
