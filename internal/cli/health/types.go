// Package health provides shared types for health check responses.
package health

// Response represents the API health response structure.
type Response struct {
	Service   string `json:"service"`
	Status    string `json:"status"`
	StartedAt string `json:"started_at"`
	Uptime    string `json:"uptime"`
	Error     string `json:"error,omitempty"`
}

// Healthy returns true if the response reports a healthy service.
func (r *Response) Healthy() bool {
	return r.Status == "healthy"
}
