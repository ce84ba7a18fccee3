package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/cauth-dev/cauth/pkg/events"
	"github.com/cauth-dev/cauth/pkg/metrics"
	"github.com/cauth-dev/cauth/pkg/models"
	"github.com/cauth-dev/cauth/pkg/store"
)

// GroupHandler handles group management API endpoints.
type GroupHandler struct {
	store   *store.Store
	engine  *events.Engine
	metrics *metrics.ServiceMetrics
}

// NewGroupHandler creates a new GroupHandler.
func NewGroupHandler(s *store.Store, e *events.Engine, m *metrics.ServiceMetrics) *GroupHandler {
	return &GroupHandler{store: s, engine: e, metrics: m}
}

// CreateGroupRequest is the request body for POST /groups.
type CreateGroupRequest struct {
	Name        string   `json:"name"`
	Description string   `json:"description,omitempty"`
	Permissions []string `json:"permissions,omitempty"`
}

// PatchGroupPermissionsRequest is the request body for
// PATCH /groups/{name}/permissions.
type PatchGroupPermissionsRequest struct {
	Action     string `json:"action"` // "grant" or "revoke"
	Permission string `json:"permission"`
}

// GroupResponse is the response body for group retrieval, with the group's
// direct permission grants attached.
type GroupResponse struct {
	Name        string   `json:"name"`
	Description string   `json:"description,omitempty"`
	Permissions []string `json:"permissions"`
}

// List handles GET /groups.
// Requires groups:get.
func (h *GroupHandler) List(w http.ResponseWriter, r *http.Request) {
	if !authorize(w, r, h.store, "groups:get") {
		return
	}

	groups, err := h.store.ListGroups(r.Context(), listOptions(r))
	if err != nil {
		writeLookupError(w, err)
		return
	}
	WriteJSONOK(w, groups)
}

// Get handles GET /groups/{name}.
// Requires groups:get.
func (h *GroupHandler) Get(w http.ResponseWriter, r *http.Request) {
	if !authorize(w, r, h.store, "groups:get") {
		return
	}
	name := chi.URLParam(r, "name")

	group, err := h.store.GetGroup(r.Context(), name)
	if err != nil {
		writeLookupError(w, err)
		return
	}
	permissions, err := h.store.GroupPermissions(r.Context(), name)
	if err != nil {
		writeLookupError(w, err)
		return
	}

	WriteJSONOK(w, GroupResponse{
		Name:        group.Name,
		Description: group.Description,
		Permissions: permissions,
	})
}

// Create handles POST /groups.
// Requires groups:post.
func (h *GroupHandler) Create(w http.ResponseWriter, r *http.Request) {
	if !authorize(w, r, h.store, "groups:post") {
		return
	}

	var req CreateGroupRequest
	if !decodeJSONBody(w, r, &req) {
		return
	}
	if req.Name == "" {
		BadRequest(w, "Group name is required")
		return
	}

	if !autoCommit(r) {
		event, err := h.engine.CreateGroupInsert(r.Context(), sessionToken(r), req.Name, req.Description, req.Permissions)
		if err != nil {
			writeDomainError(w, err)
			return
		}
		h.metrics.RecordEventStaged(string(models.EventGroupInsert))
		WriteJSONOK(w, stagedResponse(event.ID))
		return
	}

	if err := h.store.CreateGroup(r.Context(), req.Name, req.Description, req.Permissions); err != nil {
		writeDomainError(w, err)
		return
	}
	WriteJSONOK(w, okResponse())
}

// Delete handles DELETE /groups/{name}.
// Requires groups:delete.
func (h *GroupHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if !authorize(w, r, h.store, "groups:delete") {
		return
	}
	name := chi.URLParam(r, "name")

	if !autoCommit(r) {
		event, err := h.engine.CreateGroupDelete(r.Context(), sessionToken(r), name)
		if err != nil {
			writeDomainError(w, err)
			return
		}
		h.metrics.RecordEventStaged(string(models.EventGroupDelete))
		WriteJSONOK(w, stagedResponse(event.ID))
		return
	}

	if err := h.store.DeleteGroup(r.Context(), name); err != nil {
		writeDomainError(w, err)
		return
	}
	WriteJSONOK(w, okResponse())
}

// PatchPermissions handles PATCH /groups/{name}/permissions.
// Grants or revokes a single permission. Requires groups:update.
func (h *GroupHandler) PatchPermissions(w http.ResponseWriter, r *http.Request) {
	if !authorize(w, r, h.store, "groups:update") {
		return
	}
	name := chi.URLParam(r, "name")

	var req PatchGroupPermissionsRequest
	if !decodeJSONBody(w, r, &req) {
		return
	}
	if req.Permission == "" {
		BadRequest(w, "Permission name is required")
		return
	}

	switch req.Action {
	case "grant":
		if !autoCommit(r) {
			event, err := h.engine.CreateGroupGrantPermission(r.Context(), sessionToken(r), name, req.Permission)
			if err != nil {
				writeDomainError(w, err)
				return
			}
			h.metrics.RecordEventStaged(string(models.EventGroupGrantPermission))
			WriteJSONOK(w, stagedResponse(event.ID))
			return
		}
		if err := h.store.GrantPermission(r.Context(), name, req.Permission); err != nil {
			writeDomainError(w, err)
			return
		}

	case "revoke":
		if !autoCommit(r) {
			event, err := h.engine.CreateGroupRevokePermission(r.Context(), sessionToken(r), name, req.Permission)
			if err != nil {
				writeDomainError(w, err)
				return
			}
			h.metrics.RecordEventStaged(string(models.EventGroupRevokePermission))
			WriteJSONOK(w, stagedResponse(event.ID))
			return
		}
		if err := h.store.RevokePermission(r.Context(), name, req.Permission); err != nil {
			writeDomainError(w, err)
			return
		}

	default:
		BadRequest(w, "Action must be \"grant\" or \"revoke\"")
		return
	}

	WriteJSONOK(w, okResponse())
}
