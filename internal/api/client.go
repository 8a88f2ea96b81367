// Package api is the client for the bird collaborator service.
//
// Every call is a single attempt: no retry, no caching and, unless
// WithTimeout is given, no timeout. Failures come back as *NetworkError or
// *ServerError.
package api

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"birdbook/internal/bird"
	"birdbook/internal/jsonutil"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
)

// DefaultBaseURL is the public collaborator origin.
const DefaultBaseURL = "https://birdbackendinterview.onrender.com"

// collectionPath is the REST collection for bird records.
const collectionPath = "/bird"

// maxBodySize bounds how much of a response is read. The list endpoint
// returns the whole collection, so the cap is generous.
const maxBodySize = 64 << 20

var (
	// ErrEmptyID is returned when an operation needs an id and none was given.
	ErrEmptyID = errors.New("bird id is required")
	// ErrResponseTooLarge is returned when a body exceeds the read limit.
	ErrResponseTooLarge = errors.New("response too large")
)

// Client talks to the bird REST service.
type Client struct {
	baseURL string
	http    *http.Client
	timeout time.Duration
	maxBody int64
	log     *zap.Logger
	tracer  trace.Tracer
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the underlying http.Client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.http = hc
		}
	}
}

// WithTimeout sets a per-request timeout. Zero keeps requests unbounded.
// It applies to a copy of the http.Client, whatever the option order.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		c.timeout = d
	}
}

// WithLogger sets the logger used for request tracing at debug level.
func WithLogger(l *zap.Logger) Option {
	return func(c *Client) {
		if l != nil {
			c.log = l
		}
	}
}

// WithTracerProvider sets where request spans are recorded.
func WithTracerProvider(tp trace.TracerProvider) Option {
	return func(c *Client) {
		if tp != nil {
			c.tracer = tp.Tracer("birdbook/api")
		}
	}
}

// New creates a client for the service at baseURL.
func New(baseURL string, opts ...Option) (*Client, error) {
	baseURL = strings.TrimSpace(baseURL)
	u, err := url.ParseRequestURI(baseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid base url: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("invalid base url %q: scheme must be http or https", baseURL)
	}
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{},
		maxBody: maxBodySize,
		log:     zap.NewNop(),
		tracer:  otel.GetTracerProvider().Tracer("birdbook/api"),
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.timeout > 0 {
		hc := *c.http
		hc.Timeout = c.timeout
		c.http = &hc
	}
	return c, nil
}

// BaseURL returns the origin the client sends requests to.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// ListBirds fetches the whole collection.
func (c *Client) ListBirds(ctx context.Context) ([]bird.Bird, error) {
	raw, err := c.do(ctx, "list", http.MethodGet, collectionPath, nil)
	if err != nil {
		return nil, err
	}
	birds, err := jsonutil.UnmarshalArrayAllowEmpty[bird.Bird](raw, "list: decode birds")
	if err != nil {
		return nil, err
	}
	for i := range birds {
		birds[i] = birds[i].Normalize()
	}
	return birds, nil
}

// GetBird fetches one record. A missing record yields a ServerError for
// which IsNotFound is true.
func (c *Client) GetBird(ctx context.Context, id string) (bird.Bird, error) {
	if id == "" {
		return bird.Bird{}, fmt.Errorf("get: %w", ErrEmptyID)
	}
	raw, err := c.do(ctx, "get", http.MethodGet, itemPath(id), nil)
	if err != nil {
		return bird.Bird{}, err
	}
	return decodeBird(raw, "get")
}

// CreateBird posts a new record; the server assigns the id.
func (c *Client) CreateBird(ctx context.Context, in bird.Input) (bird.Bird, error) {
	raw, err := c.do(ctx, "create", http.MethodPost, collectionPath, in.Normalize())
	if err != nil {
		return bird.Bird{}, err
	}
	return decodeBird(raw, "create")
}

// UpdateBird replaces the record with id by in. It is a full replace, not
// a patch.
func (c *Client) UpdateBird(ctx context.Context, id string, in bird.Input) (bird.Bird, error) {
	if id == "" {
		return bird.Bird{}, fmt.Errorf("update: %w", ErrEmptyID)
	}
	raw, err := c.do(ctx, "update", http.MethodPut, itemPath(id), in.Normalize())
	if err != nil {
		return bird.Bird{}, err
	}
	return decodeBird(raw, "update")
}

// DeleteBird removes the record with id. Any response body is ignored.
func (c *Client) DeleteBird(ctx context.Context, id string) error {
	if id == "" {
		return fmt.Errorf("delete: %w", ErrEmptyID)
	}
	_, err := c.do(ctx, "delete", http.MethodDelete, itemPath(id), nil)
	return err
}

func itemPath(id string) string {
	return collectionPath + "/" + url.PathEscape(id)
}

func decodeBird(raw []byte, op string) (bird.Bird, error) {
	if len(bytes.TrimSpace(raw)) == 0 {
		return bird.Bird{}, fmt.Errorf("%s: empty response body", op)
	}
	var b bird.Bird
	if err := jsonutil.UnmarshalWithContext(raw, &b, op+": decode bird"); err != nil {
		return bird.Bird{}, err
	}
	return b.Normalize(), nil
}

// do performs one request and returns the raw body of a 2xx response.
func (c *Client) do(ctx context.Context, op, method, path string, in any) ([]byte, error) {
	fullURL := c.baseURL + path
	ctx, span := c.tracer.Start(ctx, "bird."+op,
		trace.WithSpanKind(trace.SpanKindClient),
		trace.WithAttributes(
			attribute.String("http.request.method", method),
			attribute.String("url.full", fullURL),
		),
	)
	defer span.End()

	var body io.Reader
	if in != nil {
		data, err := jsonutil.MarshalWithContext(in, op+": encode body")
		if err != nil {
			span.SetStatus(codes.Error, err.Error())
			return nil, err
		}
		body = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, fullURL, body)
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		return nil, fmt.Errorf("%s: new request: %w", op, err)
	}
	req.Header.Set("Accept", "application/json")
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		nerr := &NetworkError{Op: op, Err: err}
		span.RecordError(err)
		span.SetStatus(codes.Error, "network failure")
		c.log.Debug("request failed",
			zap.String("op", op),
			zap.String("method", method),
			zap.String("url", fullURL),
			zap.Error(err),
		)
		return nil, nerr
	}
	defer resp.Body.Close()

	raw, readErr := io.ReadAll(io.LimitReader(resp.Body, c.maxBody+1))
	span.SetAttributes(attribute.Int("http.response.status_code", resp.StatusCode))
	c.log.Debug("request done",
		zap.String("op", op),
		zap.String("method", method),
		zap.String("url", fullURL),
		zap.Int("status", resp.StatusCode),
		zap.Duration("elapsed", time.Since(start)),
	)

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		detail := strings.TrimSpace(string(raw))
		if detail == "" {
			detail = http.StatusText(resp.StatusCode)
		}
		span.SetStatus(codes.Error, detail)
		return nil, &ServerError{Op: op, StatusCode: resp.StatusCode, Detail: detail}
	}
	if readErr != nil {
		nerr := &NetworkError{Op: op, Err: readErr}
		span.SetStatus(codes.Error, "read body")
		return nil, nerr
	}
	if int64(len(raw)) > c.maxBody {
		span.SetStatus(codes.Error, "response too large")
		return nil, fmt.Errorf("%s: %w (over %d bytes)", op, ErrResponseTooLarge, c.maxBody)
	}
	return raw, nil
}
