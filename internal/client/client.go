// Package client is a typed HTTP client for the portfolio API plus page
// loaders that turn responses into view state.
//
// Each call issues exactly one request. Nothing is retried or cached.
package client

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/dalemusser/stratafolio/internal/app/system/jsonutil"
	"github.com/dalemusser/stratafolio/internal/domain/models"
	"go.uber.org/zap"
)

// DefaultTimeout bounds a single request when no http.Client is supplied.
const DefaultTimeout = 10 * time.Second

// maxErrorBody limits how much of a non-JSON error body is read.
const maxErrorBody = 4 << 10

// Client talks to the portfolio API rooted at a base URL.
type Client struct {
	baseURL string
	http    *http.Client
	logger  *zap.Logger
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the default http.Client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.http = hc
		}
	}
}

// WithLogger sets the logger used by the page loaders.
func WithLogger(l *zap.Logger) Option {
	return func(c *Client) {
		if l != nil {
			c.logger = l
		}
	}
}

// New returns a Client for baseURL (for example "http://localhost:8080").
func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: DefaultTimeout},
		logger:  zap.NewNop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Response is a decoded success envelope.
type Response[T any] struct {
	Data       T
	Message    string
	Fallback   bool
	Pagination *jsonutil.Pagination
}

// ListOptions are the query parameters of the project listing. Zero values
// are omitted and the server applies its defaults.
type ListOptions struct {
	Status   string
	Featured *bool
	Page     int
	Limit    int
}

func (o ListOptions) values() url.Values {
	q := url.Values{}
	if o.Status != "" {
		q.Set("status", o.Status)
	}
	if o.Featured != nil {
		q.Set("featured", strconv.FormatBool(*o.Featured))
	}
	if o.Page > 0 {
		q.Set("page", strconv.Itoa(o.Page))
	}
	if o.Limit > 0 {
		q.Set("limit", strconv.Itoa(o.Limit))
	}
	return q
}

// Skills is the body of GET /api/about/skills.
type Skills struct {
	All        []models.Skill            `json:"all"`
	ByCategory map[string][]models.Skill `json:"byCategory"`
}

// Categories returns the categories in the order they first appear in All.
// JSON objects carry no order, so views use this to lay out the groups.
func (s Skills) Categories() []string {
	seen := make(map[string]bool, len(s.ByCategory))
	var out []string
	for _, sk := range s.All {
		if !seen[sk.Category] {
			seen[sk.Category] = true
			out = append(out, sk.Category)
		}
	}
	return out
}

// ContactInfo is the body of GET /api/about/contact.
type ContactInfo struct {
	Contact     models.Contact      `json:"contact"`
	SocialLinks []models.SocialLink `json:"socialLinks"`
}

// ListProjects fetches GET /api/projects.
func (c *Client) ListProjects(ctx context.Context, opts ListOptions) (Response[[]models.Project], error) {
	return get[[]models.Project](ctx, c, "/api/projects", opts.values())
}

// FeaturedProjects fetches GET /api/projects/featured.
func (c *Client) FeaturedProjects(ctx context.Context) (Response[[]models.Project], error) {
	return get[[]models.Project](ctx, c, "/api/projects/featured", nil)
}

// GetProject fetches GET /api/projects/{id}.
func (c *Client) GetProject(ctx context.Context, id string) (Response[models.Project], error) {
	return get[models.Project](ctx, c, "/api/projects/"+url.PathEscape(id), nil)
}

// GetAbout fetches the active profile.
func (c *Client) GetAbout(ctx context.Context) (Response[models.About], error) {
	return get[models.About](ctx, c, "/api/about", nil)
}

// GetSkills fetches the grouped skills of the active profile.
func (c *Client) GetSkills(ctx context.Context) (Response[Skills], error) {
	return get[Skills](ctx, c, "/api/about/skills", nil)
}

// GetContact fetches contact details and social links.
func (c *Client) GetContact(ctx context.Context) (Response[ContactInfo], error) {
	return get[ContactInfo](ctx, c, "/api/about/contact", nil)
}

// wireEnvelope is the envelope as it arrives, with data left raw.
type wireEnvelope struct {
	Success    bool                 `json:"success"`
	Data       json.RawMessage      `json:"data"`
	Message    string               `json:"message"`
	Error      string               `json:"error"`
	Pagination *jsonutil.Pagination `json:"pagination"`
	Fallback   bool                 `json:"fallback"`
	Fields     map[string]string    `json:"fields"`
}

func get[T any](ctx context.Context, c *Client, path string, q url.Values) (Response[T], error) {
	var out Response[T]

	target := c.baseURL + path
	if len(q) > 0 {
		target += "?" + q.Encode()
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return out, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return out, fmt.Errorf("GET %s: %w", path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return out, decodeError(resp)
	}

	var env wireEnvelope
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		return out, fmt.Errorf("decode %s: %w", path, err)
	}
	if !env.Success {
		return out, &APIError{Status: resp.StatusCode, Message: env.Message, Detail: env.Error, Fields: env.Fields}
	}
	if len(env.Data) > 0 {
		if err := json.Unmarshal(env.Data, &out.Data); err != nil {
			return out, fmt.Errorf("decode %s data: %w", path, err)
		}
	}
	out.Message = env.Message
	out.Fallback = env.Fallback
	out.Pagination = env.Pagination
	return out, nil
}

func decodeError(resp *http.Response) error {
	body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
	apiErr := &APIError{Status: resp.StatusCode}

	var env wireEnvelope
	if json.Unmarshal(body, &env) == nil && env.Message != "" {
		apiErr.Message = env.Message
		apiErr.Detail = env.Error
		apiErr.Fields = env.Fields
		return apiErr
	}
	apiErr.Message = http.StatusText(resp.StatusCode)
	return apiErr
}
