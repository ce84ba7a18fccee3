package handlers

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/cauth-dev/cauth/pkg/events"
	"github.com/cauth-dev/cauth/pkg/metrics"
	"github.com/cauth-dev/cauth/pkg/models"
)

// EventHandler handles the commit/cancel endpoints of the event workflow.
// Authorization lives in the engine, which also needs the session for the
// creator-cancel rule.
type EventHandler struct {
	engine  *events.Engine
	metrics *metrics.ServiceMetrics
}

// NewEventHandler creates a new EventHandler.
func NewEventHandler(e *events.Engine, m *metrics.ServiceMetrics) *EventHandler {
	return &EventHandler{engine: e, metrics: m}
}

// eventID parses the {id} route parameter.
func eventID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		BadRequest(w, "Event id must be an integer")
		return 0, false
	}
	return id, true
}

// Commit handles POST /events/{id}/commit.
// Requires events:commit plus the staged action's own permission.
func (h *EventHandler) Commit(w http.ResponseWriter, r *http.Request) {
	id, ok := eventID(w, r)
	if !ok {
		return
	}

	if err := h.engine.Commit(r.Context(), sessionToken(r), id); err != nil {
		writeDomainError(w, err)
		return
	}
	h.metrics.RecordEventClosed(string(models.EventCommitted))
	WriteJSONOK(w, okResponse())
}

// Cancel handles POST /events/{id}/cancel.
// Allowed for the event's creator or any session holding events:cancel.
func (h *EventHandler) Cancel(w http.ResponseWriter, r *http.Request) {
	id, ok := eventID(w, r)
	if !ok {
		return
	}

	if err := h.engine.Cancel(r.Context(), sessionToken(r), id); err != nil {
		writeDomainError(w, err)
		return
	}
	h.metrics.RecordEventClosed(string(models.EventCancelled))
	WriteJSONOK(w, okResponse())
}
