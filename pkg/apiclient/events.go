package apiclient

import "fmt"

// CommitEvent commits a pending event, applying its staged change.
// Committing an already committed event succeeds without reapplying it.
func (c *Client) CommitEvent(id int64) error {
	return c.post(fmt.Sprintf("/events/%d/commit", id), nil, nil, nil)
}

// CancelEvent cancels a pending event, discarding its staged change.
// Cancelling an already cancelled event succeeds.
func (c *Client) CancelEvent(id int64) error {
	return c.post(fmt.Sprintf("/events/%d/cancel", id), nil, nil, nil)
}
