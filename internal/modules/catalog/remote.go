package catalog

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

	"github.com/georgemunganga/copydesk/internal/logger"
	"github.com/georgemunganga/copydesk/internal/modules/endpoint"
	"github.com/google/uuid"
)

const (
	genericFailure = "unexpected response from the product API"
	maxErrorBody   = 64 << 10
)

type remoteRepo struct {
	client    *http.Client
	endpoints endpoint.Resolver
	origin    *url.URL
	log       *logger.Logger
}

// RemoteOption configures the HTTP repository.
type RemoteOption func(*remoteRepo)

// WithHTTPClient replaces the default client. The default enforces no timeout.
func WithHTTPClient(c *http.Client) RemoteOption {
	return func(r *remoteRepo) { r.client = c }
}

// WithOrigin resolves origin-relative endpoints (empty base URL) against origin.
func WithOrigin(origin *url.URL) RemoteOption {
	return func(r *remoteRepo) { r.origin = origin }
}

// NewRemoteRepository returns a Repository backed by the remote product API.
func NewRemoteRepository(endpoints endpoint.Resolver, log *logger.Logger, opts ...RemoteOption) Repository {
	r := &remoteRepo{
		client:    &http.Client{},
		endpoints: endpoints,
		log:       log.With("component", "catalog.remote"),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

func (r *remoteRepo) List(ctx context.Context) ([]*Product, error) {
	var products []*Product
	if err := r.do(ctx, "list products", http.MethodGet, r.endpoints.Products(), nil, &products); err != nil {
		return nil, err
	}
	// A null array element carries no record.
	out := products[:0]
	for _, p := range products {
		if p == nil {
			continue
		}
		p.Normalize()
		out = append(out, p)
	}
	return out, nil
}

func (r *remoteRepo) Get(ctx context.Context, id string) (*Product, error) {
	p := &Product{}
	if err := r.do(ctx, "get product", http.MethodGet, r.endpoints.Product(id), nil, p); err != nil {
		return nil, err
	}
	p.Normalize()
	return p, nil
}

func (r *remoteRepo) Create(ctx context.Context, req CreateRequest) (*Product, error) {
	p := &Product{}
	if err := r.do(ctx, "create product", http.MethodPost, r.endpoints.Products(), req, p); err != nil {
		return nil, err
	}
	p.Normalize()
	return p, nil
}

func (r *remoteRepo) Update(ctx context.Context, id string, req UpdateRequest) (*Product, error) {
	p := &Product{}
	if err := r.do(ctx, "update product", http.MethodPut, r.endpoints.Product(id), req, p); err != nil {
		return nil, err
	}
	p.Normalize()
	return p, nil
}

func (r *remoteRepo) Delete(ctx context.Context, id string) error {
	return r.do(ctx, "delete product", http.MethodDelete, r.endpoints.Product(id), nil, nil)
}

func (r *remoteRepo) Generate(ctx context.Context, brief Brief) (string, error) {
	var out struct {
		Description string `json:"description"`
	}
	err := r.do(ctx, "generate description", http.MethodPost, r.endpoints.Generate(), brief, &out)
	if err != nil {
		var httpErr *HTTPError
		if errors.As(err, &httpErr) && httpErr.Status == http.StatusServiceUnavailable {
			return "", fmt.Errorf("%w: %w", ErrGenerationUnavailable, err)
		}
		return "", err
	}
	return out.Description, nil
}

func (r *remoteRepo) Health(ctx context.Context) (*HealthStatus, error) {
	h := &HealthStatus{}
	if err := r.do(ctx, "health", http.MethodGet, r.endpoints.Health(), nil, h); err != nil {
		return nil, err
	}
	return h, nil
}

// do issues exactly one request and waits for it. There is no retry and no
// deadline beyond what ctx and the transport impose.
func (r *remoteRepo) do(ctx context.Context, op, method, target string, body, out interface{}) error {
	target, err := r.resolve(target)
	if err != nil {
		return &NetworkError{Op: op, Err: err}
	}

	var reader io.Reader
	if body != nil {
		buf, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("%s: encode request: %w", op, err)
		}
		reader = bytes.NewReader(buf)
	}

	req, err := http.NewRequestWithContext(ctx, method, target, reader)
	if err != nil {
		return &NetworkError{Op: op, Err: err}
	}
	requestID := uuid.NewString()
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-ID", requestID)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	start := time.Now()
	resp, err := r.client.Do(req)
	if err != nil {
		r.log.Warn("request failed", "op", op, "method", method, "url", target, "request_id", requestID, "error", err)
		return &NetworkError{Op: op, Err: err}
	}
	defer resp.Body.Close()

	r.log.Debug("request completed", "op", op, "method", method, "url", target,
		"request_id", requestID, "status", resp.StatusCode, "elapsed", time.Since(start))

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return &HTTPError{Op: op, Status: resp.StatusCode, Detail: errorDetail(raw)}
	}

	if out == nil || resp.StatusCode == http.StatusNoContent {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("%s: decode response: %w", op, err)
	}
	return nil
}

func (r *remoteRepo) resolve(target string) (string, error) {
	u, err := url.Parse(target)
	if err != nil {
		return "", err
	}
	if u.IsAbs() {
		return target, nil
	}
	if r.origin == nil {
		return "", fmt.Errorf("endpoint %q is origin-relative and no origin is configured", target)
	}
	return r.origin.ResolveReference(u).String(), nil
}

// errorDetail extracts a string `detail` field from an error body. Validation
// errors carry a list there and fall back to the generic message.
func errorDetail(raw []byte) string {
	var body struct {
		Detail json.RawMessage `json:"detail"`
	}
	if err := json.Unmarshal(raw, &body); err != nil || len(body.Detail) == 0 {
		return genericFailure
	}
	var detail string
	if err := json.Unmarshal(body.Detail, &detail); err != nil || strings.TrimSpace(detail) == "" {
		return genericFailure
	}
	return detail
}
