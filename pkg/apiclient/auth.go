package apiclient

import "encoding/json"

// loginRequest is the login request body.
type loginRequest struct {
	Login    string `json:"login"`
	Password string `json:"password"`
}

// loginResponse is the login response body. EventID is only set for staged
// logins.
type loginResponse struct {
	SessionToken string `json:"session_token"`
	EventID      int64  `json:"event_id"`
}

// Login authenticates against the server and returns an active session token.
func (c *Client) Login(login, password string) (string, error) {
	var resp loginResponse
	err := c.post("/users/login", nil, loginRequest{Login: login, Password: password}, &resp)
	if err != nil {
		return "", err
	}
	return resp.SessionToken, nil
}

// LoginStaged stages a login event. The returned token is issued on hold and
// conveys nothing until the event is committed.
func (c *Client) LoginStaged(login, password string) (eventID int64, token string, err error) {
	var resp loginResponse
	err = c.post("/users/login", stagedQuery(), loginRequest{Login: login, Password: password}, &resp)
	if err != nil {
		return 0, "", err
	}
	return resp.EventID, resp.SessionToken, nil
}

// Logout revokes the client's session token.
func (c *Client) Logout() error {
	return c.post("/users/logout", nil, nil, nil)
}

// Register creates a new user directly.
func (c *Client) Register(login, password string, details json.RawMessage) error {
	body := registerRequest{Login: login, Password: password, Details: details}
	return c.post("/users", nil, body, nil)
}

// RegisterStaged stages a user registration event and returns its ID.
func (c *Client) RegisterStaged(login, password string, details json.RawMessage) (int64, error) {
	body := registerRequest{Login: login, Password: password, Details: details}
	var resp eventResponse
	if err := c.post("/users", stagedQuery(), body, &resp); err != nil {
		return 0, err
	}
	return resp.EventID, nil
}

// registerRequest is the user registration request body.
type registerRequest struct {
	Login    string          `json:"login"`
	Password string          `json:"password"`
	Details  json.RawMessage `json:"details,omitempty"`
}
