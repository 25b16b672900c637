// Package client talks to the users API over HTTP. It is what the browser
// front end did, for scripts and the usersctl command.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"users-api/internal/domain"
	"users-api/internal/transport/http/handler"
	resp "users-api/internal/transport/http/response"
)

type Client struct {
	BaseURL string // e.g. http://localhost:5000/api
	HTTP    *http.Client
}

func New(baseURL string, timeout time.Duration) *Client {
	return &Client{
		BaseURL: strings.TrimRight(baseURL, "/"),
		HTTP:    &http.Client{Timeout: timeout},
	}
}

// APIError is a non-2xx answer; Message is the server's error text.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("api error %d: %s", e.Status, e.Message)
}

func (c *Client) ListUsers(ctx context.Context) ([]domain.User, error) {
	var out resp.ListEnvelope[domain.User]
	if err := c.do(ctx, http.MethodGet, "/users", nil, &out); err != nil {
		return nil, err
	}
	return out.Data, nil
}

func (c *Client) CreateUser(ctx context.Context, name, email string) (*domain.User, error) {
	in := map[string]string{"name": name, "email": email}
	var out resp.Envelope[domain.User]
	if err := c.do(ctx, http.MethodPost, "/users", in, &out); err != nil {
		return nil, err
	}
	return &out.Data, nil
}

func (c *Client) Health(ctx context.Context) (*handler.HealthResponse, error) {
	var out handler.HealthResponse
	if err := c.do(ctx, http.MethodGet, "/health", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) do(ctx context.Context, method, path string, in, out any) error {
	var body io.Reader
	if in != nil {
		b, err := json.Marshal(in)
		if err != nil {
			return err
		}
		body = bytes.NewReader(b)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.BaseURL+path, body)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	hc := c.HTTP
	if hc == nil {
		hc = http.DefaultClient
	}
	res, err := hc.Do(req)
	if err != nil {
		return err
	}
	defer res.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(res.Body, 4<<20))
	if err != nil {
		return err
	}
	if res.StatusCode < 200 || res.StatusCode > 299 {
		var eb resp.ErrorBody
		if json.Unmarshal(raw, &eb) != nil || eb.Error == "" {
			eb.Error = strings.TrimSpace(string(raw))
		}
		return &APIError{Status: res.StatusCode, Message: eb.Error}
	}
	if out == nil {
		return nil
	}
	return json.Unmarshal(raw, out)
}
