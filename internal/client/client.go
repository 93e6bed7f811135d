package client

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"FraudGuard/internal/domain/models"
	xhttp "FraudGuard/pkg/http"
)

// DefaultTimeout bounds every call to the inference API.
const DefaultTimeout = 10 * time.Second

// ConnectionError means the API could not be reached or did not answer in time.
type ConnectionError struct {
	URL string
	Err error
}

func (e *ConnectionError) Error() string {
	return fmt.Sprintf("cannot reach fraud API at %s: %v", e.URL, e.Err)
}

func (e *ConnectionError) Unwrap() error { return e.Err }

// APIError is a structured rejection from the API.
type APIError struct {
	Status int
	Detail string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("fraud API returned %d: %s", e.Status, e.Detail)
}

// DecodeError means the API answered but the body could not be understood.
type DecodeError struct {
	Status int
	Body   []byte
	Err    error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("unexpected response from fraud API (status %d): %v", e.Status, e.Err)
}

func (e *DecodeError) Unwrap() error { return e.Err }

// Client talks to the inference API.
type Client struct {
	baseURL string
	http    *xhttp.Client
}

type Option func(*options)

type options struct {
	timeout   time.Duration
	transport http.RoundTripper
}

func WithTimeout(d time.Duration) Option {
	return func(o *options) { o.timeout = d }
}

func WithTransport(rt http.RoundTripper) Option {
	return func(o *options) { o.transport = rt }
}

func New(baseURL string, opts ...Option) *Client {
	o := options{timeout: DefaultTimeout}
	for _, opt := range opts {
		opt(&o)
	}
	if o.timeout <= 0 {
		o.timeout = DefaultTimeout
	}
	httpOpts := []xhttp.ClientOption{xhttp.WithBaseURL(baseURL), xhttp.WithTimeout(o.timeout)}
	if o.transport != nil {
		httpOpts = append(httpOpts, xhttp.WithTransport(o.transport))
	}
	return &Client{baseURL: baseURL, http: xhttp.NewClient(httpOpts...)}
}

func (c *Client) Timeout() time.Duration { return c.http.Timeout() }

// Predict scores one transaction.
func (c *Client) Predict(ctx context.Context, tx models.TransactionFeatures) (models.PredictionResult, error) {
	var res models.PredictionResult
	err := c.call(ctx, xhttp.MethodPost, "/predict", tx, &res)
	return res, err
}

func (c *Client) Health(ctx context.Context) (models.HealthStatus, error) {
	var res models.HealthStatus
	err := c.call(ctx, xhttp.MethodGet, "/health", nil, &res)
	return res, err
}

func (c *Client) Metrics(ctx context.Context) (models.MetricsResponse, error) {
	var res models.MetricsResponse
	err := c.call(ctx, xhttp.MethodGet, "/metrics", nil, &res)
	return res, err
}

func (c *Client) call(ctx context.Context, method, path string, body, dest interface{}) error {
	resp, err := c.http.Do(ctx, &xhttp.RequestOptions{Method: method, URL: path, Body: body})
	if err != nil {
		return &ConnectionError{URL: c.baseURL, Err: err}
	}

	if !resp.OK() {
		var payload xhttp.ErrorResponse
		if err := json.Unmarshal(resp.Body, &payload); err != nil {
			return &DecodeError{Status: resp.StatusCode, Body: resp.Body, Err: fmt.Errorf("error body is not JSON: %w", err)}
		}
		detail := payload.Detail
		if detail == "" {
			detail = payload.Message
		}
		if detail == "" {
			detail = http.StatusText(resp.StatusCode)
		}
		return &APIError{Status: resp.StatusCode, Detail: detail}
	}

	if err := json.Unmarshal(resp.Body, dest); err != nil {
		return &DecodeError{Status: resp.StatusCode, Body: resp.Body, Err: err}
	}
	return nil
}
