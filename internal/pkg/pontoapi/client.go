package pontoapi

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

	"golang.org/x/oauth2"

	"github.com/pontoeletronico/ponto-reports/internal/pkg/session"
)

const (
	apiPrefix   = "/api/v2"
	adminPrefix = "/api/admin"

	maxBodyBytes = 16 << 20
)

// Client talks to the remote ponto API on behalf of the session in the
// request context. It never retries.
type Client struct {
	baseURL          string
	base             *http.Client
	timeout          time.Duration
	staticToken      string
	onSessionExpired func(ctx context.Context)
}

type Option func(*Client)

func WithHTTPClient(c *http.Client) Option {
	return func(cl *Client) { cl.base = c }
}

// WithTimeout sets a client-side timeout. Zero leaves only the context deadline.
func WithTimeout(d time.Duration) Option {
	return func(cl *Client) { cl.timeout = d }
}

// WithStaticToken makes every call use token instead of the context session.
func WithStaticToken(token string) Option {
	return func(cl *Client) { cl.staticToken = token }
}

// WithSessionExpiredHook runs fn whenever the upstream answers 401.
func WithSessionExpiredHook(fn func(ctx context.Context)) Option {
	return func(cl *Client) { cl.onSessionExpired = fn }
}

func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		base:    http.DefaultClient,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *Client) token(ctx context.Context) (string, error) {
	if c.staticToken != "" {
		return c.staticToken, nil
	}
	if s, ok := session.FromContext(ctx); ok && s.Token != "" {
		return s.Token, nil
	}
	return "", ErrMissingToken
}

// httpClient returns a client that injects the bearer token.
func (c *Client) httpClient(token string) *http.Client {
	if token == "" {
		return &http.Client{Transport: c.base.Transport, Timeout: c.timeout}
	}
	src := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: token, TokenType: "Bearer"})
	return &http.Client{
		Transport: &oauth2.Transport{Source: src, Base: c.base.Transport},
		Timeout:   c.timeout,
	}
}

type request struct {
	method string
	path   string
	query  url.Values
	body   interface{}
	// anonymous requests carry no bearer token
	anonymous bool
}

// do executes req and decodes a 2xx body into out. out may be a
// *json.RawMessage to keep the body as sent.
func (c *Client) do(ctx context.Context, req request, out interface{}) error {
	var token string
	if !req.anonymous {
		t, err := c.token(ctx)
		if err != nil {
			return err
		}
		token = t
	}

	u := c.baseURL + req.path
	if len(req.query) > 0 {
		u += "?" + req.query.Encode()
	}

	var body io.Reader
	if req.body != nil {
		buf, err := json.Marshal(req.body)
		if err != nil {
			return fmt.Errorf("encoding request body: %w", err)
		}
		body = bytes.NewReader(buf)
	}

	httpReq, err := http.NewRequestWithContext(ctx, req.method, u, body)
	if err != nil {
		return fmt.Errorf("building request: %w", err)
	}
	httpReq.Header.Set("Accept", "application/json")
	if body != nil {
		httpReq.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient(token).Do(httpReq)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}
		return fmt.Errorf("%w: %v", ErrUpstreamUnavailable, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return fmt.Errorf("%w: reading body: %v", ErrUpstreamUnavailable, err)
	}

	if resp.StatusCode == http.StatusUnauthorized && !req.anonymous {
		if c.onSessionExpired != nil {
			c.onSessionExpired(ctx)
		}
		return fmt.Errorf("%w: %s", ErrSessionExpired, errorMessage(raw, resp.StatusCode))
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &APIError{StatusCode: resp.StatusCode, Message: errorMessage(raw, resp.StatusCode)}
	}

	if out == nil {
		return nil
	}
	if rm, ok := out.(*json.RawMessage); ok {
		*rm = append((*rm)[:0], raw...)
		return nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("%w: %v", ErrUnexpectedResponse, err)
	}
	return nil
}

// errorMessage extracts {"error": ...} (or "message") from an error body.
func errorMessage(raw []byte, status int) string {
	var payload struct {
		Error   interface{} `json:"error"`
		Message string      `json:"message"`
	}
	if err := json.Unmarshal(raw, &payload); err == nil {
		if s, ok := payload.Error.(string); ok && s != "" {
			return s
		}
		if payload.Message != "" {
			return payload.Message
		}
	}
	if text := strings.TrimSpace(string(raw)); text != "" && len(text) < 512 {
		return text
	}
	return http.StatusText(status)
}

func isStatus(err error, code int) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.StatusCode == code
}
