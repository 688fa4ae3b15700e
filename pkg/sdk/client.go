package sdk

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// Client wraps calls to the ephemeris backend
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

// NewClient creates a client for the backend at baseURL. apiKey is sent as the
// bearer token on calls to the generator entrypoint
func NewClient(baseURL, apiKey string) *Client {
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		apiKey:     apiKey,
		httpClient: &http.Client{Timeout: 120 * time.Second},
	}
}

// HTTPError is returned when the backend answers with a non 2xx status
type HTTPError struct {
	Method     string
	Path       string
	StatusCode int
	Body       []byte
}

func (e *HTTPError) Error() string {
	return fmt.Sprintf("[BACKEND]: backend '%s %s' failed: %d: %s", e.Method, e.Path, e.StatusCode, string(e.Body))
}

// Message extracts the "error" field of a JSON error body, falling back to the
// "message" field of an ApiResponse envelope
func (e *HTTPError) Message() string {
	var body struct {
		Error   any    `json:"error"`
		Message string `json:"message"`
	}
	if err := json.Unmarshal(e.Body, &body); err != nil {
		return ""
	}

	if s, ok := body.Error.(string); ok && s != "" {
		return s
	}
	return body.Message
}

// Request is a single call to the backend
type Request struct {
	client  *Client
	ctx     context.Context
	method  string
	path    string
	in      any
	out     any
	headers http.Header
}

// NewRequest prepares a JSON request. in and out may be nil
func (c *Client) NewRequest(ctx context.Context, method, path string, in any, out any) *Request {
	return &Request{
		client:  c,
		ctx:     ctx,
		method:  method,
		path:    path,
		in:      in,
		out:     out,
		headers: http.Header{},
	}
}

// WithBearer adds a bearer Authorization header
func (r *Request) WithBearer(token string) *Request {
	if token != "" {
		r.headers.Set("Authorization", "Bearer "+token)
	}
	return r
}

// doJSON performs the request and decodes the response body into out
func (r *Request) doJSON() error {
	raw, err := r.do()
	if err != nil {
		return err
	}

	// If no output expected, return early
	if r.out == nil || len(bytes.TrimSpace(raw)) == 0 {
		return nil
	}

	return json.Unmarshal(raw, r.out)
}

// do performs the request and returns the raw response body
func (r *Request) do() ([]byte, error) {
	// Create request body if input is provided
	var body io.Reader
	if r.in != nil {
		b, err := json.Marshal(r.in)
		if err != nil {
			return nil, err
		}
		body = bytes.NewBuffer(b)
	}

	// Create the request
	req, err := http.NewRequestWithContext(r.ctx, r.method, r.client.baseURL+r.path, body)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	for key, values := range r.headers {
		for _, v := range values {
			req.Header.Add(key, v)
		}
	}

	// Perform the request
	resp, err := r.client.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	b, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &HTTPError{Method: r.method, Path: r.path, StatusCode: resp.StatusCode, Body: b}
	}

	return b, nil
}
