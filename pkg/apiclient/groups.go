package apiclient

import "net/url"

// Group represents a group in list responses.
type Group struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

// GroupDetail represents a single group with its attached permissions.
type GroupDetail struct {
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Permissions []string `json:"permissions"`
}

// createGroupRequest is the body for POST /groups.
type createGroupRequest struct {
	Name        string   `json:"name"`
	Description string   `json:"description,omitempty"`
	Permissions []string `json:"permissions,omitempty"`
}

// groupPermissionsRequest is the body for PATCH /groups/{name}/permissions.
type groupPermissionsRequest struct {
	Action     string `json:"action"`
	Permission string `json:"permission"`
}

// ListGroups returns a page of groups ordered by name.
func (c *Client) ListGroups(page int, order string) ([]Group, error) {
	var groups []Group
	if err := c.get("/groups", listQuery(page, order), &groups); err != nil {
		return nil, err
	}
	return groups, nil
}

// GetGroup returns a single group with its attached permissions.
func (c *Client) GetGroup(name string) (*GroupDetail, error) {
	var group GroupDetail
	if err := c.get("/groups/"+url.PathEscape(name), nil, &group); err != nil {
		return nil, err
	}
	return &group, nil
}

// CreateGroup creates a group directly, optionally attaching permissions
// atomically.
func (c *Client) CreateGroup(name, description string, permissions []string) error {
	body := createGroupRequest{Name: name, Description: description, Permissions: permissions}
	return c.post("/groups", nil, body, nil)
}

// CreateGroupStaged stages a group creation event and returns its ID.
func (c *Client) CreateGroupStaged(name, description string, permissions []string) (int64, error) {
	body := createGroupRequest{Name: name, Description: description, Permissions: permissions}
	var resp eventResponse
	if err := c.post("/groups", stagedQuery(), body, &resp); err != nil {
		return 0, err
	}
	return resp.EventID, nil
}

// DeleteGroup deletes a group directly.
func (c *Client) DeleteGroup(name string) error {
	return c.delete("/groups/"+url.PathEscape(name), nil, nil)
}

// DeleteGroupStaged stages a group deletion event and returns its ID.
func (c *Client) DeleteGroupStaged(name string) (int64, error) {
	var resp eventResponse
	if err := c.delete("/groups/"+url.PathEscape(name), stagedQuery(), &resp); err != nil {
		return 0, err
	}
	return resp.EventID, nil
}

// UpdateGroupPermissions grants or revokes a permission on a group directly.
// Action must be "grant" or "revoke".
func (c *Client) UpdateGroupPermissions(name, action, permission string) error {
	body := groupPermissionsRequest{Action: action, Permission: permission}
	return c.patch("/groups/"+url.PathEscape(name)+"/permissions", nil, body, nil)
}

// UpdateGroupPermissionsStaged stages a permission change on a group and
// returns the event ID.
func (c *Client) UpdateGroupPermissionsStaged(name, action, permission string) (int64, error) {
	body := groupPermissionsRequest{Action: action, Permission: permission}
	var resp eventResponse
	err := c.patch("/groups/"+url.PathEscape(name)+"/permissions", stagedQuery(), body, &resp)
	if err != nil {
		return 0, err
	}
	return resp.EventID, nil
}
