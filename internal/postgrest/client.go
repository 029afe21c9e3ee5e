// Package postgrest is a small client for a PostgREST endpoint such as the
// Supabase REST API (/rest/v1).
package postgrest

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
)

var ErrBreakerOpen = errors.New("row store unavailable: circuit open")

// APIError is the error body PostgREST returns for non-2xx responses.
type APIError struct {
	Status  int    `json:"-"`
	Code    string `json:"code"`
	Message string `json:"message"`
	Details string `json:"details"`
	Hint    string `json:"hint"`
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return fmt.Sprintf("postgrest: unexpected status %d", e.Status)
}

type Request struct {
	Method string
	Table  string
	Query  url.Values
	Body   any
	Prefer string
}

type Response struct {
	Status int
	Header http.Header
	Body   []byte
}

type Client struct {
	baseURL string
	key     string
	client  *http.Client
	br      *Breaker
}

type Options struct {
	Timeout       time.Duration
	FailThreshold int
	OpenFor       time.Duration
	HTTPClient    *http.Client
}

// NewClient builds a client for a project URL. "/rest/v1" is appended unless
// the URL already ends with it.
func NewClient(projectURL, key string, opts Options) *Client {
	base := strings.TrimRight(projectURL, "/")
	if !strings.HasSuffix(base, "/rest/v1") {
		base += "/rest/v1"
	}

	hc := opts.HTTPClient
	if hc == nil {
		timeout := opts.Timeout
		if timeout <= 0 {
			timeout = 10 * time.Second
		}
		hc = &http.Client{Timeout: timeout}
	}

	return &Client{
		baseURL: base,
		key:     key,
		client:  hc,
		br:      NewBreaker(opts.FailThreshold, opts.OpenFor),
	}
}

func (c *Client) BaseURL() string { return c.baseURL }

func (c *Client) BreakerState() string { return c.br.State() }

// Do sends one request. It never retries. Transport errors and 5xx responses
// count against the breaker; any other non-2xx comes back as *APIError.
// A request abandoned by its caller says nothing about the endpoint.
func (c *Client) Do(ctx context.Context, r Request) (*Response, error) {
	if !c.br.TryAcquire() {
		return nil, ErrBreakerOpen
	}

	res, err := c.send(ctx, r)
	if err != nil {
		if ctx.Err() != nil {
			c.br.Release()
		} else {
			c.br.OnFailure()
		}
		return nil, err
	}
	if res.Status >= http.StatusInternalServerError {
		c.br.OnFailure()
	} else {
		c.br.OnSuccess()
	}

	if res.Status < 200 || res.Status > 299 {
		return nil, decodeError(res)
	}
	return res, nil
}

func (c *Client) send(ctx context.Context, r Request) (*Response, error) {
	var body io.Reader
	if r.Body != nil {
		b, err := json.Marshal(r.Body)
		if err != nil {
			return nil, err
		}
		body = bytes.NewReader(b)
	}

	u := c.baseURL + "/" + r.Table
	if len(r.Query) > 0 {
		u += "?" + r.Query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, r.Method, u, body)
	if err != nil {
		return nil, err
	}

	req.Header.Set("apikey", c.key)
	req.Header.Set("Authorization", "Bearer "+c.key)
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if r.Prefer != "" {
		req.Header.Set("Prefer", r.Prefer)
	}

	res, err := c.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer res.Body.Close()

	b, err := io.ReadAll(res.Body)
	if err != nil {
		return nil, err
	}

	return &Response{Status: res.StatusCode, Header: res.Header, Body: b}, nil
}

func decodeError(res *Response) error {
	apiErr := &APIError{Status: res.Status}
	if len(res.Body) > 0 {
		_ = json.Unmarshal(res.Body, apiErr)
	}
	return apiErr
}

// ContentRangeTotal extracts the total from a Content-Range header such as
// "0-24/3573" or "*/0".
func ContentRangeTotal(h string) (int64, error) {
	i := strings.LastIndexByte(h, '/')
	if i < 0 || i == len(h)-1 {
		return 0, fmt.Errorf("postgrest: malformed Content-Range %q", h)
	}
	total := h[i+1:]
	if total == "*" {
		return 0, fmt.Errorf("postgrest: Content-Range %q has no exact count", h)
	}
	n, err := strconv.ParseInt(total, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("postgrest: malformed Content-Range %q: %w", h, err)
	}
	return n, nil
}
