package client

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
	"sync"
	"time"

	"github.com/dmitrijs2005/cloudstack/internal/common"
)

type HTTPClient struct {
	baseURL string
	http    *http.Client

	mu          sync.RWMutex
	accessToken string
}

// NewHTTPClient returns a client for the server at baseURL, including any
// root path (e.g. "http://127.0.0.1:8000/api").
func NewHTTPClient(baseURL string, timeout time.Duration) *HTTPClient {
	return &HTTPClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: timeout},
	}
}

type problemDetail struct {
	Title  string `json:"title"`
	Status int    `json:"status"`
	Detail string `json:"detail"`
}

type tokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

type itemRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

func (c *HTTPClient) token() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.accessToken
}

func (c *HTTPClient) setToken(t string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.accessToken = t
}

// Login authenticates and keeps the access token for later calls.
func (c *HTTPClient) Login(ctx context.Context, email, password string) error {
	form := url.Values{"username": {email}, "password": {password}}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/login", strings.NewReader(form.Encode()))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	var tok tokenResponse
	if err := c.do(req, &tok); err != nil {
		return err
	}
	if tok.AccessToken == "" {
		return fmt.Errorf("%w: empty access token", ErrUnauthorized)
	}

	c.setToken(tok.AccessToken)
	return nil
}

// Logout forgets the access token. The server keeps no session state.
func (c *HTTPClient) Logout() {
	c.setToken("")
}

func (c *HTTPClient) Me(ctx context.Context) (string, error) {
	var me struct {
		Email string `json:"email"`
	}
	if err := c.call(ctx, http.MethodGet, "/me", nil, &me); err != nil {
		return "", err
	}
	return me.Email, nil
}

func (c *HTTPClient) ListItems(ctx context.Context) ([]Item, error) {
	items := []Item{}
	if err := c.call(ctx, http.MethodGet, "/items", nil, &items); err != nil {
		return nil, err
	}
	return items, nil
}

func (c *HTTPClient) CreateItem(ctx context.Context, name, description string) (*Item, error) {
	var it Item
	if err := c.call(ctx, http.MethodPost, "/items", itemRequest{Name: name, Description: description}, &it); err != nil {
		return nil, err
	}
	return &it, nil
}

func (c *HTTPClient) UpdateItem(ctx context.Context, id int64, name, description string) (*Item, error) {
	var it Item
	path := "/items/" + strconv.FormatInt(id, 10)
	if err := c.call(ctx, http.MethodPut, path, itemRequest{Name: name, Description: description}, &it); err != nil {
		return nil, err
	}
	return &it, nil
}

func (c *HTTPClient) DeleteItem(ctx context.Context, id int64) error {
	return c.call(ctx, http.MethodDelete, "/items/"+strconv.FormatInt(id, 10), nil, nil)
}

// Ping reports whether the server answers its liveness endpoint.
func (c *HTTPClient) Ping(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/ping", nil)
	if err != nil {
		return err
	}
	return c.do(req, nil)
}

// call sends an authenticated JSON request.
func (c *HTTPClient) call(ctx context.Context, method, path string, in, out any) error {
	var body io.Reader
	if in != nil {
		b, err := json.Marshal(in)
		if err != nil {
			return err
		}
		body = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return err
	}
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if t := c.token(); t != "" {
		req.Header.Set(common.AuthorizationHeaderName, common.BearerScheme+" "+t)
	}

	return c.do(req, out)
}

func (c *HTTPClient) do(req *http.Request, out any) error {
	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		if out == nil {
			_, _ = io.Copy(io.Discard, resp.Body)
			return nil
		}
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return fmt.Errorf("decode response: %w", err)
		}
		return nil
	}

	return statusError(resp)
}

func statusError(resp *http.Response) error {
	var p problemDetail
	_ = json.NewDecoder(io.LimitReader(resp.Body, 64<<10)).Decode(&p)

	var base error
	switch {
	case resp.StatusCode == http.StatusUnauthorized:
		base = ErrUnauthorized
	case resp.StatusCode == http.StatusNotFound:
		base = ErrNotFound
	case resp.StatusCode == http.StatusBadRequest:
		base = ErrBadRequest
	case resp.StatusCode >= 500:
		base = ErrUnavailable
	default:
		base = fmt.Errorf("unexpected status %d", resp.StatusCode)
	}

	if p.Detail != "" {
		return fmt.Errorf("%w: %s", base, p.Detail)
	}
	return base
}
