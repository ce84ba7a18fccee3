package apiclient

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSessionTokenQueryParam(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "test-token", r.URL.Query().Get("session_token"))
		w.WriteHeader(http.StatusOK)
		_ = json.NewEncoder(w).Encode([]Permission{})
	}))
	defer server.Close()

	client := New(server.URL).WithToken("test-token")
	_, err := client.ListPermissions(0, "")
	require.NoError(t, err)
}

func TestNoTokenOmitsQueryParam(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, present := r.URL.Query()["session_token"]
		assert.False(t, present)
		w.WriteHeader(http.StatusOK)
		_ = json.NewEncoder(w).Encode(map[string]string{"session_token": "abc"})
	}))
	defer server.Close()

	client := New(server.URL)
	token, err := client.Login("alice", "s3cret-password")
	require.NoError(t, err)
	assert.Equal(t, "abc", token)
}

func TestProblemErrorDecoding(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/problem+json")
		w.WriteHeader(http.StatusUnauthorized)
		_ = json.NewEncoder(w).Encode(map[string]any{
			"type":   "about:blank",
			"title":  "Unauthorized",
			"status": 401,
			"detail": "Session lacks the required permission",
		})
	}))
	defer server.Close()

	client := New(server.URL).WithToken("stale-token")
	err := client.DeleteUser("bob")
	require.Error(t, err)

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusUnauthorized, apiErr.StatusCode)
	assert.Equal(t, "Session lacks the required permission", apiErr.Detail)
	assert.True(t, IsUnauthorized(err))
	assert.False(t, IsNotFound(err))
}

func TestNonJSONErrorBody(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		_, _ = w.Write([]byte("upstream exploded"))
	}))
	defer server.Close()

	client := New(server.URL)
	err := client.CommitEvent(1)
	require.Error(t, err)

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusBadGateway, apiErr.StatusCode)
	assert.Contains(t, apiErr.Error(), "upstream exploded")
}

func TestListQueryPagination(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "2", r.URL.Query().Get("page"))
		assert.Equal(t, "desc", r.URL.Query().Get("order_in"))
		w.WriteHeader(http.StatusOK)
		_ = json.NewEncoder(w).Encode([]Group{})
	}))
	defer server.Close()

	client := New(server.URL).WithToken("test-token")
	_, err := client.ListGroups(2, "desc")
	require.NoError(t, err)
}

func TestHealth(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/health", r.URL.Path)
		w.WriteHeader(http.StatusOK)
		_ = json.NewEncoder(w).Encode(map[string]string{
			"service":    "cauth",
			"status":     "healthy",
			"started_at": "2026-01-02T15:04:05Z",
			"uptime":     "1h2m3s",
		})
	}))
	defer server.Close()

	client := New(server.URL)
	resp, err := client.Health()
	require.NoError(t, err)
	assert.Equal(t, "cauth", resp.Service)
	assert.True(t, resp.Healthy())
}
