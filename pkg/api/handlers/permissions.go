package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/cauth-dev/cauth/pkg/events"
	"github.com/cauth-dev/cauth/pkg/metrics"
	"github.com/cauth-dev/cauth/pkg/models"
	"github.com/cauth-dev/cauth/pkg/store"
)

// PermissionHandler handles permission management API endpoints.
type PermissionHandler struct {
	store   *store.Store
	engine  *events.Engine
	metrics *metrics.ServiceMetrics
}

// NewPermissionHandler creates a new PermissionHandler.
func NewPermissionHandler(s *store.Store, e *events.Engine, m *metrics.ServiceMetrics) *PermissionHandler {
	return &PermissionHandler{store: s, engine: e, metrics: m}
}

// CreatePermissionRequest is the request body for POST /permissions.
type CreatePermissionRequest struct {
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
}

// List handles GET /permissions.
// Requires permissions:get.
func (h *PermissionHandler) List(w http.ResponseWriter, r *http.Request) {
	if !authorize(w, r, h.store, "permissions:get") {
		return
	}

	permissions, err := h.store.ListPermissions(r.Context(), listOptions(r))
	if err != nil {
		writeLookupError(w, err)
		return
	}
	WriteJSONOK(w, permissions)
}

// Get handles GET /permissions/{name}.
// Requires permissions:get.
func (h *PermissionHandler) Get(w http.ResponseWriter, r *http.Request) {
	if !authorize(w, r, h.store, "permissions:get") {
		return
	}

	permission, err := h.store.GetPermission(r.Context(), chi.URLParam(r, "name"))
	if err != nil {
		writeLookupError(w, err)
		return
	}
	WriteJSONOK(w, permission)
}

// Create handles POST /permissions.
// Requires permissions:post.
func (h *PermissionHandler) Create(w http.ResponseWriter, r *http.Request) {
	if !authorize(w, r, h.store, "permissions:post") {
		return
	}

	var req CreatePermissionRequest
	if !decodeJSONBody(w, r, &req) {
		return
	}
	if req.Name == "" {
		BadRequest(w, "Permission name is required")
		return
	}

	if !autoCommit(r) {
		event, err := h.engine.CreatePermissionInsert(r.Context(), sessionToken(r), req.Name, req.Description)
		if err != nil {
			writeDomainError(w, err)
			return
		}
		h.metrics.RecordEventStaged(string(models.EventPermissionInsert))
		WriteJSONOK(w, stagedResponse(event.ID))
		return
	}

	if err := h.store.CreatePermission(r.Context(), req.Name, req.Description); err != nil {
		writeDomainError(w, err)
		return
	}
	WriteJSONOK(w, okResponse())
}

// Delete handles DELETE /permissions/{name}.
// Requires permissions:delete.
func (h *PermissionHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if !authorize(w, r, h.store, "permissions:delete") {
		return
	}
	name := chi.URLParam(r, "name")

	if !autoCommit(r) {
		event, err := h.engine.CreatePermissionDelete(r.Context(), sessionToken(r), name)
		if err != nil {
			writeDomainError(w, err)
			return
		}
		h.metrics.RecordEventStaged(string(models.EventPermissionDelete))
		WriteJSONOK(w, stagedResponse(event.ID))
		return
	}

	if err := h.store.DeletePermission(r.Context(), name); err != nil {
		writeDomainError(w, err)
		return
	}
	WriteJSONOK(w, okResponse())
}
