//go:build integration

package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/cauth-dev/cauth/pkg/events"
	"github.com/cauth-dev/cauth/pkg/store"
)

// testServer wires an in-memory store, an event engine with the default
// policy and the full router behind an httptest server.
func testServer(t *testing.T) (*httptest.Server, *store.Store) {
	t.Helper()

	st, err := store.New(&store.Config{
		Type: store.DatabaseTypeSQLite,
		SQLite: store.SQLiteConfig{
			Path: ":memory:",
		},
	})
	if err != nil {
		t.Fatalf("failed to create store: %v", err)
	}
	t.Cleanup(func() { _ = st.Close() })

	if err := st.EnsureDefaults(context.Background()); err != nil {
		t.Fatalf("failed to seed defaults: %v", err)
	}

	cfg := APIConfig{}
	cfg.applyDefaults()

	engine := events.New(st, events.DefaultPolicy(), cfg.SessionTTL)
	srv := httptest.NewServer(NewRouter(cfg, st, engine, nil))
	t.Cleanup(srv.Close)

	return srv, st
}

// createRootUser registers a user, puts it in the root group and returns an
// active session token.
func createRootUser(t *testing.T, srv *httptest.Server, st *store.Store, login string) string {
	t.Helper()
	ctx := context.Background()

	if err := st.CreateUser(ctx, login, login+"-password", nil); err != nil {
		t.Fatalf("failed to create user: %v", err)
	}
	if err := st.GrantGroup(ctx, login, "root"); err != nil {
		t.Fatalf("failed to grant root: %v", err)
	}

	return loginAs(t, srv, login, login+"-password")
}

func loginAs(t *testing.T, srv *httptest.Server, login, password string) string {
	t.Helper()

	body, status := postJSON(t, srv.URL+"/users/login", map[string]string{
		"login":    login,
		"password": password,
	})
	if status != http.StatusOK {
		t.Fatalf("login failed with status %d: %s", status, body)
	}

	var resp struct {
		SessionToken string `json:"session_token"`
	}
	if err := json.Unmarshal(body, &resp); err != nil {
		t.Fatalf("failed to decode login response: %v", err)
	}
	if resp.SessionToken == "" {
		t.Fatal("login returned an empty session token")
	}
	return resp.SessionToken
}

func postJSON(t *testing.T, url string, payload any) ([]byte, int) {
	t.Helper()

	raw, err := json.Marshal(payload)
	if err != nil {
		t.Fatalf("failed to marshal payload: %v", err)
	}
	resp, err := http.Post(url, "application/json", bytes.NewReader(raw))
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("failed to read body: %v", err)
	}
	return body, resp.StatusCode
}

func get(t *testing.T, url string) ([]byte, int) {
	t.Helper()

	resp, err := http.Get(url)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("failed to read body: %v", err)
	}
	return body, resp.StatusCode
}

func doMethod(t *testing.T, method, url string, payload any) ([]byte, int) {
	t.Helper()

	var reader io.Reader
	if payload != nil {
		raw, err := json.Marshal(payload)
		if err != nil {
			t.Fatalf("failed to marshal payload: %v", err)
		}
		reader = bytes.NewReader(raw)
	}

	req, err := http.NewRequest(method, url, reader)
	if err != nil {
		t.Fatalf("failed to build request: %v", err)
	}
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("failed to read body: %v", err)
	}
	return body, resp.StatusCode
}

func TestHealthEndpoints(t *testing.T) {
	srv, _ := testServer(t)

	t.Run("liveness", func(t *testing.T) {
		body, status := get(t, srv.URL+"/health")
		if status != http.StatusOK {
			t.Fatalf("expected 200, got %d", status)
		}

		var health struct {
			Service string `json:"service"`
			Status  string `json:"status"`
		}
		if err := json.Unmarshal(body, &health); err != nil {
			t.Fatalf("failed to decode health response: %v", err)
		}
		if health.Service != "cauth" {
			t.Errorf("expected service cauth, got %q", health.Service)
		}
		if health.Status != "healthy" {
			t.Errorf("expected healthy, got %q", health.Status)
		}
	})

	t.Run("readiness", func(t *testing.T) {
		_, status := get(t, srv.URL+"/health/ready")
		if status != http.StatusOK {
			t.Fatalf("expected 200, got %d", status)
		}
	})
}

func TestLoginFailuresAreIndistinguishable(t *testing.T) {
	srv, st := testServer(t)

	if err := st.CreateUser(context.Background(), "alice", "correct-password", nil); err != nil {
		t.Fatalf("failed to create user: %v", err)
	}

	unknownBody, unknownStatus := postJSON(t, srv.URL+"/users/login", map[string]string{
		"login":    "nobody",
		"password": "whatever",
	})
	wrongBody, wrongStatus := postJSON(t, srv.URL+"/users/login", map[string]string{
		"login":    "alice",
		"password": "wrong-password",
	})

	if unknownStatus != http.StatusBadRequest || wrongStatus != http.StatusBadRequest {
		t.Fatalf("expected 400/400, got %d/%d", unknownStatus, wrongStatus)
	}
	if !bytes.Equal(unknownBody, wrongBody) {
		t.Errorf("unknown-user and wrong-password responses differ:\n%s\n%s", unknownBody, wrongBody)
	}
}

func TestAuthorization(t *testing.T) {
	srv, st := testServer(t)
	ctx := context.Background()

	t.Run("missing token yields problem response", func(t *testing.T) {
		resp, err := http.Get(srv.URL + "/users")
		if err != nil {
			t.Fatalf("request failed: %v", err)
		}
		defer func() { _ = resp.Body.Close() }()

		if resp.StatusCode != http.StatusUnauthorized {
			t.Fatalf("expected 401, got %d", resp.StatusCode)
		}
		if ct := resp.Header.Get("Content-Type"); ct != "application/problem+json" {
			t.Errorf("expected problem+json, got %q", ct)
		}
	})

	t.Run("unprivileged session is rejected", func(t *testing.T) {
		if err := st.CreateUser(ctx, "nobody-special", "some-password", nil); err != nil {
			t.Fatalf("failed to create user: %v", err)
		}
		token := loginAs(t, srv, "nobody-special", "some-password")

		_, status := get(t, srv.URL+"/users?session_token="+token)
		if status != http.StatusUnauthorized {
			t.Errorf("expected 401, got %d", status)
		}
	})

	t.Run("root session is accepted", func(t *testing.T) {
		token := createRootUser(t, srv, st, "admin")

		_, status := get(t, srv.URL+"/users?session_token="+token)
		if status != http.StatusOK {
			t.Errorf("expected 200, got %d", status)
		}
	})
}

func TestStagedGroupCreate(t *testing.T) {
	srv, st := testServer(t)
	token := createRootUser(t, srv, st, "admin")

	body, status := postJSON(t,
		srv.URL+"/groups?auto_commit=false&session_token="+token,
		map[string]any{"name": "auditors", "description": "Read-only reviewers"})
	if status != http.StatusOK {
		t.Fatalf("staging failed with status %d: %s", status, body)
	}

	var staged struct {
		EventID int64 `json:"event_id"`
	}
	if err := json.Unmarshal(body, &staged); err != nil {
		t.Fatalf("failed to decode staged response: %v", err)
	}
	if staged.EventID == 0 {
		t.Fatal("expected a non-zero event ID")
	}

	// The group must not exist until the event commits.
	if _, status := get(t, srv.URL+"/groups/auditors?session_token="+token); status != http.StatusNotFound {
		t.Fatalf("expected 404 before commit, got %d", status)
	}

	commitURL := fmt.Sprintf("%s/events/%d/commit?session_token=%s", srv.URL, staged.EventID, token)
	if body, status := doMethod(t, http.MethodPost, commitURL, nil); status != http.StatusOK {
		t.Fatalf("commit failed with status %d: %s", status, body)
	}

	if _, status := get(t, srv.URL+"/groups/auditors?session_token="+token); status != http.StatusOK {
		t.Fatalf("expected 200 after commit, got %d", status)
	}

	// Committing a committed event is a no-op.
	if _, status := doMethod(t, http.MethodPost, commitURL, nil); status != http.StatusOK {
		t.Errorf("expected idempotent commit to return 200, got %d", status)
	}
}

func TestStagedEventCancel(t *testing.T) {
	srv, st := testServer(t)
	token := createRootUser(t, srv, st, "admin")

	body, status := postJSON(t,
		srv.URL+"/permissions?auto_commit=false&session_token="+token,
		map[string]any{"name": "reports:read"})
	if status != http.StatusOK {
		t.Fatalf("staging failed with status %d: %s", status, body)
	}

	var staged struct {
		EventID int64 `json:"event_id"`
	}
	if err := json.Unmarshal(body, &staged); err != nil {
		t.Fatalf("failed to decode staged response: %v", err)
	}

	cancelURL := fmt.Sprintf("%s/events/%d/cancel?session_token=%s", srv.URL, staged.EventID, token)
	if body, status := doMethod(t, http.MethodPost, cancelURL, nil); status != http.StatusOK {
		t.Fatalf("cancel failed with status %d: %s", status, body)
	}

	// The staged permission must never materialize.
	if _, status := get(t, srv.URL+"/permissions/reports:read?session_token="+token); status != http.StatusNotFound {
		t.Errorf("expected 404 after cancel, got %d", status)
	}

	// A cancelled event cannot be committed anymore.
	commitURL := fmt.Sprintf("%s/events/%d/commit?session_token=%s", srv.URL, staged.EventID, token)
	if _, status := doMethod(t, http.MethodPost, commitURL, nil); status != http.StatusBadRequest {
		t.Errorf("expected 400 when committing a cancelled event, got %d", status)
	}
}

func TestTwoPhaseLogin(t *testing.T) {
	srv, st := testServer(t)
	adminToken := createRootUser(t, srv, st, "admin")

	if err := st.CreateUser(context.Background(), "bob", "bob-password", nil); err != nil {
		t.Fatalf("failed to create user: %v", err)
	}
	if err := st.GrantGroup(context.Background(), "bob", "root"); err != nil {
		t.Fatalf("failed to grant root: %v", err)
	}

	body, status := postJSON(t, srv.URL+"/users/login?auto_commit=false", map[string]string{
		"login":    "bob",
		"password": "bob-password",
	})
	if status != http.StatusOK {
		t.Fatalf("staged login failed with status %d: %s", status, body)
	}

	var staged struct {
		EventID      int64  `json:"event_id"`
		SessionToken string `json:"session_token"`
	}
	if err := json.Unmarshal(body, &staged); err != nil {
		t.Fatalf("failed to decode staged login response: %v", err)
	}
	if staged.SessionToken == "" {
		t.Fatal("staged login returned no token")
	}

	// The on-hold token conveys nothing yet.
	if _, status := get(t, srv.URL+"/users?session_token="+staged.SessionToken); status != http.StatusUnauthorized {
		t.Fatalf("expected 401 for on-hold token, got %d", status)
	}

	commitURL := fmt.Sprintf("%s/events/%d/commit?session_token=%s", srv.URL, staged.EventID, adminToken)
	if body, status := doMethod(t, http.MethodPost, commitURL, nil); status != http.StatusOK {
		t.Fatalf("commit failed with status %d: %s", status, body)
	}

	// Committed: the held token now carries bob's permissions.
	if _, status := get(t, srv.URL+"/users?session_token="+staged.SessionToken); status != http.StatusOK {
		t.Errorf("expected 200 after commit, got %d", status)
	}
}

func TestInstanceScopedDelete(t *testing.T) {
	srv, st := testServer(t)
	ctx := context.Background()

	// janitor may delete bob and nobody else.
	if err := st.CreatePermission(ctx, "users:delete:bob", ""); err != nil {
		t.Fatalf("failed to create permission: %v", err)
	}
	if err := st.CreateGroup(ctx, "bob-cleanup", "", []string{"users:delete:bob"}); err != nil {
		t.Fatalf("failed to create group: %v", err)
	}
	if err := st.CreateUser(ctx, "janitor", "janitor-password", nil); err != nil {
		t.Fatalf("failed to create user: %v", err)
	}
	if err := st.GrantGroup(ctx, "janitor", "bob-cleanup"); err != nil {
		t.Fatalf("failed to grant group: %v", err)
	}
	for _, login := range []string{"bob", "carol"} {
		if err := st.CreateUser(ctx, login, login+"-password", nil); err != nil {
			t.Fatalf("failed to create %s: %v", login, err)
		}
	}

	token := loginAs(t, srv, "janitor", "janitor-password")

	if _, status := doMethod(t, http.MethodDelete, srv.URL+"/users/carol?session_token="+token, nil); status != http.StatusUnauthorized {
		t.Errorf("expected 401 deleting carol, got %d", status)
	}
	if body, status := doMethod(t, http.MethodDelete, srv.URL+"/users/bob?session_token="+token, nil); status != http.StatusOK {
		t.Errorf("expected 200 deleting bob, got %d: %s", status, body)
	}

	// bob is gone, and his sessions with him.
	if _, err := st.GetUser(ctx, "bob"); err == nil {
		t.Error("expected bob to be deleted")
	}
}

func TestServerLifecycle(t *testing.T) {
	st, err := store.New(&store.Config{
		Type:   store.DatabaseTypeSQLite,
		SQLite: store.SQLiteConfig{Path: ":memory:"},
	})
	if err != nil {
		t.Fatalf("failed to create store: %v", err)
	}
	defer func() { _ = st.Close() }()

	cfg := APIConfig{Port: 18980}
	cfg.applyDefaults()
	engine := events.New(st, events.DefaultPolicy(), cfg.SessionTTL)
	server := NewServer(cfg, st, engine)

	ctx, cancel := context.WithCancel(context.Background())
	errChan := make(chan error, 1)
	go func() {
		errChan <- server.Start(ctx)
	}()

	time.Sleep(100 * time.Millisecond)

	resp, err := http.Get(fmt.Sprintf("http://localhost:%d/health", cfg.Port))
	if err != nil {
		t.Fatalf("failed to reach server: %v", err)
	}
	_ = resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Errorf("expected 200, got %d", resp.StatusCode)
	}

	cancel()
	select {
	case err := <-errChan:
		if err != nil {
			t.Errorf("server returned error on shutdown: %v", err)
		}
	case <-time.After(5 * time.Second):
		t.Error("server did not shut down in time")
	}
}
