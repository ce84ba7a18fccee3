package apiclient

import "net/url"

// Permission represents a permission resource.
type Permission struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

// createPermissionRequest is the body for POST /permissions.
type createPermissionRequest struct {
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
}

// ListPermissions returns a page of permissions ordered by name.
func (c *Client) ListPermissions(page int, order string) ([]Permission, error) {
	var permissions []Permission
	if err := c.get("/permissions", listQuery(page, order), &permissions); err != nil {
		return nil, err
	}
	return permissions, nil
}

// GetPermission returns a single permission.
func (c *Client) GetPermission(name string) (*Permission, error) {
	var permission Permission
	if err := c.get("/permissions/"+url.PathEscape(name), nil, &permission); err != nil {
		return nil, err
	}
	return &permission, nil
}

// CreatePermission creates a permission directly.
func (c *Client) CreatePermission(name, description string) error {
	body := createPermissionRequest{Name: name, Description: description}
	return c.post("/permissions", nil, body, nil)
}

// CreatePermissionStaged stages a permission creation event and returns its ID.
func (c *Client) CreatePermissionStaged(name, description string) (int64, error) {
	body := createPermissionRequest{Name: name, Description: description}
	var resp eventResponse
	if err := c.post("/permissions", stagedQuery(), body, &resp); err != nil {
		return 0, err
	}
	return resp.EventID, nil
}

// DeletePermission deletes a permission directly. Groups holding it lose it
// silently.
func (c *Client) DeletePermission(name string) error {
	return c.delete("/permissions/"+url.PathEscape(name), nil, nil)
}

// DeletePermissionStaged stages a permission deletion event and returns its ID.
func (c *Client) DeletePermissionStaged(name string) (int64, error) {
	var resp eventResponse
	if err := c.delete("/permissions/"+url.PathEscape(name), stagedQuery(), &resp); err != nil {
		return 0, err
	}
	return resp.EventID, nil
}
