package apiclient

import "github.com/cauth-dev/cauth/internal/cli/health"

// Health calls the liveness endpoint and returns the server health response.
func (c *Client) Health() (*health.Response, error) {
	var resp health.Response
	if err := c.get("/health", nil, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// Ready calls the readiness endpoint. A nil error means the server's database
// answered a ping within the server-side timeout.
func (c *Client) Ready() error {
	return c.get("/health/ready", nil, nil)
}
