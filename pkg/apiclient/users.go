package apiclient

import (
	"encoding/json"
	"fmt"
	"net/url"
)

// User represents a user in list responses.
type User struct {
	Login   string          `json:"login"`
	Details json.RawMessage `json:"details"`
}

// UserDetail represents a single user with group memberships.
type UserDetail struct {
	Login   string          `json:"login"`
	Details json.RawMessage `json:"details"`
	Groups  []string        `json:"groups"`
}

// PermissionProbe is the result of a permission probe.
type PermissionProbe struct {
	Login      string `json:"login"`
	Permission string `json:"permission"`
	Granted    bool   `json:"granted"`
}

// userGroupsRequest is the body for PATCH /users/{login}/groups.
type userGroupsRequest struct {
	Action string `json:"action"`
	Group  string `json:"group"`
}

// ListUsers returns a page of users ordered by login.
func (c *Client) ListUsers(page int, order string) ([]User, error) {
	var users []User
	if err := c.get("/users", listQuery(page, order), &users); err != nil {
		return nil, err
	}
	return users, nil
}

// GetUser returns a single user with its group memberships.
func (c *Client) GetUser(login string) (*UserDetail, error) {
	var user UserDetail
	if err := c.get("/users/"+url.PathEscape(login), nil, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// DeleteUser deletes a user directly. Requires the instance-scoped
// users:delete:{login} permission.
func (c *Client) DeleteUser(login string) error {
	return c.delete("/users/"+url.PathEscape(login), nil, nil)
}

// DeleteUserStaged stages a user deletion event and returns its ID.
func (c *Client) DeleteUserStaged(login string) (int64, error) {
	var resp eventResponse
	if err := c.delete("/users/"+url.PathEscape(login), stagedQuery(), &resp); err != nil {
		return 0, err
	}
	return resp.EventID, nil
}

// UpdateUserGroups grants or revokes a group membership directly.
// Action must be "grant" or "revoke".
func (c *Client) UpdateUserGroups(login, action, group string) error {
	body := userGroupsRequest{Action: action, Group: group}
	return c.patch("/users/"+url.PathEscape(login)+"/groups", nil, body, nil)
}

// UpdateUserGroupsStaged stages a group membership change and returns the
// event ID.
func (c *Client) UpdateUserGroupsStaged(login, action, group string) (int64, error) {
	body := userGroupsRequest{Action: action, Group: group}
	var resp eventResponse
	err := c.patch("/users/"+url.PathEscape(login)+"/groups", stagedQuery(), body, &resp)
	if err != nil {
		return 0, err
	}
	return resp.EventID, nil
}

// ProbePermission reports whether the user's effective permission set
// authorizes the named permission.
func (c *Client) ProbePermission(login, permission string) (bool, error) {
	path := fmt.Sprintf("/users/%s/permissions/%s",
		url.PathEscape(login), url.PathEscape(permission))

	var probe PermissionProbe
	if err := c.get(path, nil, &probe); err != nil {
		return false, err
	}
	return probe.Granted, nil
}
