package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/cauth-dev/cauth/pkg/events"
	"github.com/cauth-dev/cauth/pkg/metrics"
	"github.com/cauth-dev/cauth/pkg/models"
	"github.com/cauth-dev/cauth/pkg/store"
)

// UserHandler handles user management and authentication API endpoints.
type UserHandler struct {
	store      *store.Store
	engine     *events.Engine
	metrics    *metrics.ServiceMetrics
	sessionTTL time.Duration
}

// NewUserHandler creates a new UserHandler. sessionTTL bounds the lifetime of
// sessions issued by direct logins.
func NewUserHandler(s *store.Store, e *events.Engine, m *metrics.ServiceMetrics, sessionTTL time.Duration) *UserHandler {
	return &UserHandler{store: s, engine: e, metrics: m, sessionTTL: sessionTTL}
}

// RegisterUserRequest is the request body for POST /users.
type RegisterUserRequest struct {
	Login    string          `json:"login"`
	Password string          `json:"password"`
	Details  json.RawMessage `json:"details,omitempty"`
}

// LoginRequest is the request body for POST /users/login.
type LoginRequest struct {
	Login    string `json:"login"`
	Password string `json:"password"`
}

// PatchUserGroupsRequest is the request body for PATCH /users/{login}/groups.
type PatchUserGroupsRequest struct {
	Action string `json:"action"` // "grant" or "revoke"
	Group  string `json:"group"`
}

// UserResponse is the response body for user retrieval. The password hash is
// never serialized.
type UserResponse struct {
	Login   string          `json:"login"`
	Details json.RawMessage `json:"details"`
	Groups  []string        `json:"groups"`
}

// List handles GET /users.
// Requires users:get.
func (h *UserHandler) List(w http.ResponseWriter, r *http.Request) {
	if !authorize(w, r, h.store, "users:get") {
		return
	}

	users, err := h.store.ListUsers(r.Context(), listOptions(r))
	if err != nil {
		writeLookupError(w, err)
		return
	}
	WriteJSONOK(w, users)
}

// Get handles GET /users/{login}.
// Requires users:get.
func (h *UserHandler) Get(w http.ResponseWriter, r *http.Request) {
	if !authorize(w, r, h.store, "users:get") {
		return
	}
	login := chi.URLParam(r, "login")

	user, err := h.store.GetUser(r.Context(), login)
	if err != nil {
		writeLookupError(w, err)
		return
	}
	groups, err := h.store.UserGroups(r.Context(), login)
	if err != nil {
		writeLookupError(w, err)
		return
	}

	WriteJSONOK(w, UserResponse{
		Login:   user.Login,
		Details: user.Details,
		Groups:  groups,
	})
}

// Probe handles GET /users/{login}/permissions/{name}.
// Reports whether the user's effective permission set authorizes the named
// permission. Requires users:get.
func (h *UserHandler) Probe(w http.ResponseWriter, r *http.Request) {
	if !authorize(w, r, h.store, "users:get") {
		return
	}
	login := chi.URLParam(r, "login")
	name := chi.URLParam(r, "name")

	if _, err := h.store.GetUser(r.Context(), login); err != nil {
		writeLookupError(w, err)
		return
	}
	granted, err := h.store.UserHasPermission(r.Context(), login, name)
	if err != nil {
		writeLookupError(w, err)
		return
	}

	WriteJSONOK(w, map[string]any{
		"login":      login,
		"permission": name,
		"granted":    granted,
	})
}

// Register handles POST /users. Open endpoint: anyone may register or stage
// a registration; the staged variant still needs a privileged commit.
func (h *UserHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req RegisterUserRequest
	if !decodeJSONBody(w, r, &req) {
		return
	}
	if req.Login == "" {
		BadRequest(w, "Login is required")
		return
	}

	if !autoCommit(r) {
		event, err := h.engine.CreateUserRegister(r.Context(), sessionToken(r), req.Login, req.Password, req.Details)
		if err != nil {
			writeDomainError(w, err)
			return
		}
		h.metrics.RecordEventStaged(string(models.EventUserRegister))
		WriteJSONOK(w, stagedResponse(event.ID))
		return
	}

	if err := h.store.CreateUser(r.Context(), req.Login, req.Password, req.Details); err != nil {
		writeDomainError(w, err)
		return
	}
	WriteJSONOK(w, okResponse())
}

// Delete handles DELETE /users/{login}.
// Requires the instance-scoped users:delete:{login}; a blanket users:delete
// grant matches every instance.
func (h *UserHandler) Delete(w http.ResponseWriter, r *http.Request) {
	login := chi.URLParam(r, "login")
	if !authorize(w, r, h.store, fmt.Sprintf("users:delete:%s", login)) {
		return
	}

	if !autoCommit(r) {
		event, err := h.engine.CreateUserDelete(r.Context(), sessionToken(r), login)
		if err != nil {
			writeDomainError(w, err)
			return
		}
		h.metrics.RecordEventStaged(string(models.EventUserDelete))
		WriteJSONOK(w, stagedResponse(event.ID))
		return
	}

	if err := h.store.DeleteUser(r.Context(), login); err != nil {
		writeDomainError(w, err)
		return
	}
	WriteJSONOK(w, okResponse())
}

// PatchGroups handles PATCH /users/{login}/groups.
// Grants or revokes a single group membership. Requires users:update.
func (h *UserHandler) PatchGroups(w http.ResponseWriter, r *http.Request) {
	if !authorize(w, r, h.store, "users:update") {
		return
	}
	login := chi.URLParam(r, "login")

	var req PatchUserGroupsRequest
	if !decodeJSONBody(w, r, &req) {
		return
	}
	if req.Group == "" {
		BadRequest(w, "Group name is required")
		return
	}

	switch req.Action {
	case "grant":
		if !autoCommit(r) {
			event, err := h.engine.CreateUserGrantGroup(r.Context(), sessionToken(r), login, req.Group)
			if err != nil {
				writeDomainError(w, err)
				return
			}
			h.metrics.RecordEventStaged(string(models.EventUserGrantGroup))
			WriteJSONOK(w, stagedResponse(event.ID))
			return
		}
		if err := h.store.GrantGroup(r.Context(), login, req.Group); err != nil {
			writeDomainError(w, err)
			return
		}

	case "revoke":
		if !autoCommit(r) {
			event, err := h.engine.CreateUserRevokeGroup(r.Context(), sessionToken(r), login, req.Group)
			if err != nil {
				writeDomainError(w, err)
				return
			}
			h.metrics.RecordEventStaged(string(models.EventUserRevokeGroup))
			WriteJSONOK(w, stagedResponse(event.ID))
			return
		}
		if err := h.store.RevokeGroup(r.Context(), login, req.Group); err != nil {
			writeDomainError(w, err)
			return
		}

	default:
		BadRequest(w, "Action must be \"grant\" or \"revoke\"")
		return
	}

	WriteJSONOK(w, okResponse())
}

// Login handles POST /users/login. Open endpoint.
//
// With auto_commit a fresh active session token is returned directly. With
// auto_commit=false the credentials are still verified now, but the token is
// issued on hold and conveys nothing until the staged event is committed.
//
// An unknown login and a wrong password produce byte-identical responses so
// the endpoint cannot be used to enumerate users.
func (h *UserHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if !decodeJSONBody(w, r, &req) {
		return
	}

	if !autoCommit(r) {
		event, token, err := h.engine.CreateUserLogin(r.Context(), req.Login, req.Password)
		if err != nil {
			h.writeLoginError(w, err)
			return
		}
		h.metrics.RecordLogin(true)
		h.metrics.RecordEventStaged(string(models.EventUserLogin))
		WriteJSONOK(w, map[string]any{
			"event_id":      event.ID,
			"session_token": token,
		})
		return
	}

	if _, err := h.store.Authenticate(r.Context(), req.Login, req.Password); err != nil {
		h.writeLoginError(w, err)
		return
	}
	token, err := h.store.CreateSession(r.Context(), req.Login, models.SessionActive, h.sessionTTL)
	if err != nil {
		writeDomainError(w, err)
		return
	}

	h.metrics.RecordLogin(true)
	WriteJSONOK(w, map[string]string{"session_token": token})
}

// writeLoginError collapses authentication failures into one response.
func (h *UserHandler) writeLoginError(w http.ResponseWriter, err error) {
	if errors.Is(err, models.ErrNotFound) || errors.Is(err, models.ErrInvalidCredentials) {
		h.metrics.RecordLogin(false)
		BadRequest(w, "Invalid credentials")
		return
	}
	writeDomainError(w, err)
}

// Logout handles POST /users/logout.
// Revokes the caller's own session. Any live session qualifies.
func (h *UserHandler) Logout(w http.ResponseWriter, r *http.Request) {
	token := sessionToken(r)

	session, err := h.store.GetSession(r.Context(), token)
	if err != nil {
		Unauthorized(w, "Session lacks the required permission")
		return
	}
	if session.Status != models.SessionActive || session.Expired(time.Now()) {
		Unauthorized(w, "Session lacks the required permission")
		return
	}

	if err := h.store.RevokeSession(r.Context(), token); err != nil {
		writeDomainError(w, err)
		return
	}
	WriteJSONOK(w, okResponse())
}
