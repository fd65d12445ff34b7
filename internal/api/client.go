package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"strings"
	"time"
)

const DefaultTimeout = 15 * time.Second

// Client wraps *http.Client for calls against the pet-wellness backend.
// Every request except the auth endpoints carries a bearer token; the
// token is injected per call since each browser session owns its own.
type Client struct {
	HTTP    *http.Client
	BaseURL string
}

func New(baseURL string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Client{
		HTTP:    &http.Client{Timeout: timeout},
		BaseURL: strings.TrimRight(strings.TrimSpace(baseURL), "/"),
	}
}

// NewWithTransport allows injecting a RoundTripper (for tests).
func NewWithTransport(baseURL string, timeout time.Duration, tr http.RoundTripper) *Client {
	c := New(baseURL, timeout)
	if tr != nil {
		c.HTTP.Transport = tr
	}
	return c
}

// APIError is a non-2xx backend response. Message carries the backend's
// {"message": ...} body when present so pages can show it verbatim;
// Fields carries field-level validation messages when the backend
// returned a field map.
type APIError struct {
	StatusCode int
	Message    string
	Fields     map[string]string
	Body       string
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("api error: status=%d message=%s", e.StatusCode, e.Message)
	}
	return fmt.Sprintf("api error: status=%d", e.StatusCode)
}

// IsAuthFailure reports a 401; the session must be torn down.
func (e *APIError) IsAuthFailure() bool { return e.StatusCode == http.StatusUnauthorized }

func (e *APIError) IsForbidden() bool { return e.StatusCode == http.StatusForbidden }

func (e *APIError) IsNotFound() bool { return e.StatusCode == http.StatusNotFound }

// UserMessage is what a page should show the user for this failure.
func (e *APIError) UserMessage() string {
	if e.Message != "" {
		return e.Message
	}
	if e.Body != "" && len(e.Body) <= 200 && !strings.HasPrefix(e.Body, "{") {
		return e.Body
	}
	return "The request could not be completed. Please try again."
}

// AsAPIError unwraps err into *APIError; a false return means the
// request never produced a response (network failure).
func AsAPIError(err error) (*APIError, bool) {
	var ae *APIError
	ok := errors.As(err, &ae)
	return ae, ok
}

func newAPIError(status int, raw []byte) *APIError {
	ae := &APIError{StatusCode: status, Body: strings.TrimSpace(string(raw))}
	if len(raw) == 0 {
		return ae
	}
	var msg struct {
		Message string `json:"message"`
	}
	if err := json.Unmarshal(raw, &msg); err == nil && msg.Message != "" {
		ae.Message = msg.Message
		return ae
	}
	var fields map[string]string
	if err := json.Unmarshal(raw, &fields); err == nil && len(fields) > 0 {
		ae.Fields = fields
	}
	return ae
}

// DoJSON issues a JSON request. token may be empty for auth endpoints;
// query may be nil; in nil means no body; out nil ignores the response
// body. Non-2xx responses come back as *APIError.
func (c *Client) DoJSON(ctx context.Context, method, path, token string, query url.Values, in, out any) error {
	var body io.Reader
	if in != nil {
		b, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("api: marshal request: %w", err)
		}
		body = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.resolveURL(path, query), body)
	if err != nil {
		return fmt.Errorf("api: new request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	setBearer(req, token)

	return c.do(req, out)
}

// DoMultipart posts a multipart form (vaccination / medical-history
// uploads). file may be nil for a form without an attachment.
func (c *Client) DoMultipart(ctx context.Context, path, token string, fields map[string]string, fileName string, file io.Reader, out any) error {
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	for k, v := range fields {
		if err := mw.WriteField(k, v); err != nil {
			return fmt.Errorf("api: write field %s: %w", k, err)
		}
	}
	if file != nil {
		fw, err := mw.CreateFormFile("file", fileName)
		if err != nil {
			return fmt.Errorf("api: create form file: %w", err)
		}
		if _, err := io.Copy(fw, file); err != nil {
			return fmt.Errorf("api: copy attachment: %w", err)
		}
	}
	if err := mw.Close(); err != nil {
		return fmt.Errorf("api: close multipart: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.resolveURL(path, nil), &buf)
	if err != nil {
		return fmt.Errorf("api: new request: %w", err)
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())
	req.Header.Set("Accept", "application/json")
	setBearer(req, token)

	return c.do(req, out)
}

// DoRaw fetches a binary payload (PDF reports). Returns the bytes and
// the Content-Type the backend reported.
func (c *Client) DoRaw(ctx context.Context, path, token string) ([]byte, string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.resolveURL(path, nil), nil)
	if err != nil {
		return nil, "", fmt.Errorf("api: new request: %w", err)
	}
	setBearer(req, token)

	resp, err := c.HTTP.Do(req)
	if err != nil {
		return nil, "", fmt.Errorf("api: do request: %w", err)
	}
	defer resp.Body.Close()

	raw, err := readAtMost(resp.Body, 16<<20)
	if err != nil {
		return nil, "", fmt.Errorf("api: read response: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, "", newAPIError(resp.StatusCode, raw)
	}
	return raw, resp.Header.Get("Content-Type"), nil
}

func (c *Client) do(req *http.Request, out any) error {
	resp, err := c.HTTP.Do(req)
	if err != nil {
		return fmt.Errorf("api: do request: %w", err)
	}
	defer resp.Body.Close()

	raw, _ := readAtMost(resp.Body, 1<<20)

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return newAPIError(resp.StatusCode, raw)
	}
	if out == nil || len(raw) == 0 {
		return nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("api: unmarshal response: %w", err)
	}
	return nil
}

func (c *Client) resolveURL(path string, query url.Values) string {
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	u := c.BaseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}
	return u
}

func setBearer(req *http.Request, token string) {
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
}

func readAtMost(r io.Reader, max int64) ([]byte, error) {
	return io.ReadAll(io.LimitReader(r, max))
}
