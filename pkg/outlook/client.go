package outlook

import (
	"bytes"
	"context"
	"crypto/tls"
	"fmt"
	"io"
	"net/http"
	"time"

	json "github.com/goccy/go-json"
	"github.com/google/uuid"
	"golang.org/x/time/rate"
)

// Options tunes the HTTP client.
type Options struct {
	VerifyTLS         bool
	Timeout           time.Duration
	RequestsPerSecond float64 // <= 0 disables throttling
	Burst             int
}

// Client is the HTTP transport for both API families.
type Client struct {
	conn       *Connection
	httpClient *http.Client
	limiter    *rate.Limiter
}

// NewClient creates a transport bound to conn.
func NewClient(conn *Connection, opt Options) *Client {
	tr := http.DefaultTransport.(*http.Transport).Clone()
	tr.TLSClientConfig = &tls.Config{InsecureSkipVerify: !opt.VerifyTLS}
	return NewClientFromHTTP(conn, &http.Client{Transport: tr, Timeout: opt.Timeout}, opt)
}

// NewClientFromHTTP creates a transport over a pre-configured HTTP client.
func NewClientFromHTTP(conn *Connection, httpClient *http.Client, opt Options) *Client {
	limiter := rate.NewLimiter(rate.Inf, 0)
	if opt.RequestsPerSecond > 0 {
		burst := opt.Burst
		if burst <= 0 {
			burst = 1
		}
		limiter = rate.NewLimiter(rate.Limit(opt.RequestsPerSecond), burst)
	}
	return &Client{
		conn:       conn,
		httpClient: httpClient,
		limiter:    limiter,
	}
}

// Connection returns the auth context the client authorizes with.
func (c *Client) Connection() *Connection { return c.conn }

func (c *Client) IsAuthValid() bool            { return c.conn.IsAuthValid() }
func (c *Client) ActiveMode() (AuthMode, bool) { return c.conn.ActiveMode() }
func (c *Client) HasCredential() bool          { return c.conn.HasCredential() }

// Get fetches a collection and returns its items. Both `{"value": [...]}`
// envelopes and bare arrays are accepted.
func (c *Client) Get(ctx context.Context, url string) ([]Payload, error) {
	resp, err := c.do(ctx, http.MethodGet, url, nil, nil)
	if err != nil {
		return nil, err
	}
	if resp.Failed() {
		return nil, &StatusError{StatusCode: resp.StatusCode, Body: resp.Text()}
	}

	trimmed := bytes.TrimSpace(resp.Body)
	if len(trimmed) > 0 && trimmed[0] == '[' {
		var items []Payload
		if err := json.Unmarshal(trimmed, &items); err != nil {
			return nil, fmt.Errorf("failed to decode list response: %w", err)
		}
		return items, nil
	}

	var envelope struct {
		Value []Payload `json:"value"`
	}
	if err := json.Unmarshal(trimmed, &envelope); err != nil {
		return nil, fmt.Errorf("failed to decode list response: %w", err)
	}
	return envelope.Value, nil
}

// GetOne fetches a single object.
func (c *Client) GetOne(ctx context.Context, url string) (Payload, error) {
	resp, err := c.do(ctx, http.MethodGet, url, nil, nil)
	if err != nil {
		return nil, err
	}
	if resp.Failed() {
		return nil, &StatusError{StatusCode: resp.StatusCode, Body: resp.Text()}
	}
	p, err := resp.JSON()
	if err != nil {
		return nil, fmt.Errorf("failed to decode object response: %w", err)
	}
	return p, nil
}

// Post sends body and returns the response whatever its status.
func (c *Client) Post(ctx context.Context, url string, body []byte, headers http.Header) (*Response, error) {
	return c.do(ctx, http.MethodPost, url, body, headers)
}

// Patch sends body and returns the response whatever its status.
func (c *Client) Patch(ctx context.Context, url string, body []byte, headers http.Header) (*Response, error) {
	return c.do(ctx, http.MethodPatch, url, body, headers)
}

// Delete returns the response whatever its status.
func (c *Client) Delete(ctx context.Context, url string, headers http.Header) (*Response, error) {
	return c.do(ctx, http.MethodDelete, url, nil, headers)
}

func (c *Client) do(ctx context.Context, method, url string, body []byte, headers http.Header) (*Response, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limiter: %w", err)
	}

	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}
	req, err := http.NewRequestWithContext(ctx, method, url, reader)
	if err != nil {
		return nil, fmt.Errorf("failed to build %s request: %w", method, err)
	}
	for k, vs := range headers {
		for _, v := range vs {
			req.Header.Add(k, v)
		}
	}
	if req.Header.Get("Accept") == "" {
		req.Header.Set("Accept", ContentTypeJSON)
	}
	req.Header.Set(headerClientRequestID, uuid.NewString())

	if err := c.conn.authorize(req); err != nil {
		return nil, err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to call %s %s: %w", method, url, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s response: %w", method, err)
	}
	return &Response{
		StatusCode: resp.StatusCode,
		Header:     resp.Header,
		Body:       raw,
	}, nil
}

// JSONHeaders are the headers for object writes.
func JSONHeaders() http.Header {
	h := http.Header{}
	h.Set("Content-Type", ContentTypeJSON)
	h.Set("Accept", ContentTypeJSON)
	return h
}

// DeleteHeaders are the headers for deletes.
func DeleteHeaders() http.Header {
	h := http.Header{}
	h.Set("Content-Type", ContentTypeJSON)
	h.Set("Accept", ContentTypeText)
	return h
}
