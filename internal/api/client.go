package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// Modifier modifies a request before it is sent, e.g. to attach credentials.
type Modifier interface {
	Modify(req *http.Request) error
}

// BearerAuthorizer is a modifier that adds an Authorization header carrying
// a bearer token.
type BearerAuthorizer struct {
	token string
}

// NewBearerAuthorizer returns a bearer token authorizer.
func NewBearerAuthorizer(token string) *BearerAuthorizer {
	return &BearerAuthorizer{token: token}
}

func (a *BearerAuthorizer) Modify(req *http.Request) error {
	req.Header.Set("Authorization", fmt.Sprintf("Bearer %s", a.token))
	return nil
}

// Client is a util for common HTTP operations against a single service base
// URL. Modifiers modify every request before sending it.
type Client struct {
	base      string
	client    *http.Client
	modifiers []Modifier
}

// NewClient creates an instance of Client.
// Use net/http.Client with a default timeout if c is nil.
func NewClient(base string, c *http.Client, modifiers ...Modifier) *Client {
	client := &Client{
		base:   strings.TrimRight(base, "/"),
		client: c,
	}
	if client.client == nil {
		client.client = &http.Client{Timeout: 5 * time.Minute}
	}
	if len(modifiers) > 0 {
		client.modifiers = modifiers
	}
	return client
}

// GetJSON issues a GET request and decodes the response into v.
// A nil v discards the response body.
func (c *Client) GetJSON(ctx context.Context, path string, query url.Values, v interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.endpoint(path, query), nil)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")
	data, err := c.do(req)
	if err != nil {
		return err
	}
	if v == nil {
		return nil
	}
	return json.Unmarshal(data, v)
}

// PostJSON issues a POST request with an optional JSON body and decodes the
// response into v when v is non-nil.
func (c *Client) PostJSON(ctx context.Context, path string, query url.Values, body, v interface{}) error {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reader = bytes.NewReader(data)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint(path, query), reader)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	data, err := c.do(req)
	if err != nil {
		return err
	}
	if v == nil {
		return nil
	}
	return json.Unmarshal(data, v)
}

// Stream issues a GET request and hands the raw response body to the caller.
// The caller owns the returned ReadCloser.
func (c *Client) Stream(ctx context.Context, path string, query url.Values, accept string) (io.ReadCloser, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.endpoint(path, query), nil)
	if err != nil {
		return nil, err
	}
	if accept != "" {
		req.Header.Set("Accept", accept)
	}
	resp, err := c.send(req)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		defer resp.Body.Close()
		return nil, newRemoteError(resp)
	}
	return resp.Body, nil
}

func (c *Client) endpoint(path string, query url.Values) string {
	u := c.base + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}
	return u
}

func (c *Client) send(req *http.Request) (*http.Response, error) {
	for _, m := range c.modifiers {
		if err := m.Modify(req); err != nil {
			return nil, err
		}
	}
	return c.client.Do(req)
}

func (c *Client) do(req *http.Request) ([]byte, error) {
	resp, err := c.send(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, newRemoteError(resp)
	}
	return io.ReadAll(resp.Body)
}
