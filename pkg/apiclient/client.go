// Package apiclient provides a REST API client for cauthctl.
package apiclient

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"
)

// Client is the cauth API client.
type Client struct {
	baseURL    string
	httpClient *http.Client
	token      string
}

// New creates a new API client.
func New(baseURL string) *Client {
	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// WithToken returns a new client authenticated with the given session token.
func (c *Client) WithToken(token string) *Client {
	return &Client{
		baseURL:    c.baseURL,
		httpClient: c.httpClient,
		token:      token,
	}
}

// SetToken sets the session token.
func (c *Client) SetToken(token string) {
	c.token = token
}

// do performs an HTTP request and decodes the response.
// The session token travels as the session_token query parameter.
func (c *Client) do(method, path string, query url.Values, body, result any) error {
	var bodyReader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to marshal request body: %w", err)
		}
		bodyReader = bytes.NewReader(data)
	}

	if query == nil {
		query = url.Values{}
	}
	if c.token != "" {
		query.Set("session_token", c.token)
	}

	fullURL := c.baseURL + path
	if encoded := query.Encode(); encoded != "" {
		fullURL += "?" + encoded
	}

	req, err := http.NewRequest(method, fullURL, bodyReader)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response body: %w", err)
	}

	if resp.StatusCode >= 400 {
		var apiErr APIError
		if json.Unmarshal(respBody, &apiErr) == nil && (apiErr.Detail != "" || apiErr.Title != "") {
			apiErr.StatusCode = resp.StatusCode
			return &apiErr
		}
		return &APIError{
			StatusCode: resp.StatusCode,
			Detail:     string(respBody),
		}
	}

	if result != nil && len(respBody) > 0 {
		if err := json.Unmarshal(respBody, result); err != nil {
			return fmt.Errorf("failed to decode response: %w", err)
		}
	}

	return nil
}

// get performs a GET request.
func (c *Client) get(path string, query url.Values, result any) error {
	return c.do(http.MethodGet, path, query, nil, result)
}

// post performs a POST request.
func (c *Client) post(path string, query url.Values, body, result any) error {
	return c.do(http.MethodPost, path, query, body, result)
}

// patch performs a PATCH request.
func (c *Client) patch(path string, query url.Values, body, result any) error {
	return c.do(http.MethodPatch, path, query, body, result)
}

// delete performs a DELETE request.
func (c *Client) delete(path string, query url.Values, result any) error {
	return c.do(http.MethodDelete, path, query, nil, result)
}

// stagedQuery returns the query values that request a staged event instead of
// a direct mutation.
func stagedQuery() url.Values {
	return url.Values{"auto_commit": []string{"false"}}
}

// listQuery builds pagination query values. A negative page means the first
// page; order may be "asc", "desc" or empty for the server default.
func listQuery(page int, order string) url.Values {
	q := url.Values{}
	if page > 0 {
		q.Set("page", fmt.Sprintf("%d", page))
	}
	if order != "" {
		q.Set("order_in", order)
	}
	return q
}

// eventResponse is the server response for staged mutations.
type eventResponse struct {
	EventID int64 `json:"event_id"`
}
