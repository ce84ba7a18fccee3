package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/cauth-dev/cauth/pkg/identity"
	"github.com/cauth-dev/cauth/pkg/models"
	"github.com/cauth-dev/cauth/pkg/store"
)

// decodeJSONBody decodes a JSON request body into the provided pointer.
// Returns true if successful, false if decoding fails (error response is written automatically).
func decodeJSONBody(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		BadRequest(w, "Invalid request body")
		return false
	}
	return true
}

// sessionToken extracts the session_token query parameter.
func sessionToken(r *http.Request) string {
	return r.URL.Query().Get("session_token")
}

// autoCommit reports whether the mutation should apply immediately.
// Defaults to true; only an explicit "false" stages an event instead.
func autoCommit(r *http.Request) bool {
	return r.URL.Query().Get("auto_commit") != "false"
}

// listOptions parses the page and order_in query parameters into store
// pagination options. Pages are fixed-size windows of the default limit.
func listOptions(r *http.Request) store.ListOptions {
	page, err := strconv.Atoi(r.URL.Query().Get("page"))
	if err != nil || page < 0 {
		page = 0
	}
	return store.ListOptions{
		Order:  models.ParseOrder(r.URL.Query().Get("order_in")),
		Offset: page * store.DefaultListLimit,
		Limit:  store.DefaultListLimit,
	}
}

// authorize checks that the request's session carries the required permission.
// Writes a 401 response and returns false otherwise.
func authorize(w http.ResponseWriter, r *http.Request, s *store.Store, required string) bool {
	ok, err := s.SessionHasPermission(r.Context(), sessionToken(r), required)
	if err != nil {
		InternalServerError(w, "Failed to check session")
		return false
	}
	if !ok {
		Unauthorized(w, "Session lacks the required permission")
		return false
	}
	return true
}

// writeDomainError maps a domain error to a problem response on a mutation
// endpoint. Missing targets surface as 400 here; lookup endpoints use
// writeLookupError to produce 404 instead.
func writeDomainError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, models.ErrUnauthorized):
		Unauthorized(w, "Session lacks the required permission")
	case errors.Is(err, models.ErrNotFound):
		BadRequest(w, "Target does not exist")
	case errors.Is(err, models.ErrNameConflict):
		BadRequest(w, "Name already taken or exceeds length limits")
	case errors.Is(err, models.ErrNameError):
		BadRequest(w, "Referenced entity does not exist or association is invalid")
	case errors.Is(err, models.ErrInvalidState):
		BadRequest(w, "Event is no longer pending")
	case errors.Is(err, models.ErrInvalidPayload):
		BadRequest(w, "Invalid event payload")
	case errors.Is(err, identity.ErrHash):
		BadRequest(w, "Password was rejected")
	default:
		InternalServerError(w, "Storage failure")
	}
}

// writeLookupError maps a domain error on a retrieval endpoint, where an
// absent target is a 404.
func writeLookupError(w http.ResponseWriter, err error) {
	if errors.Is(err, models.ErrNotFound) {
		NotFound(w, "Target does not exist")
		return
	}
	writeDomainError(w, err)
}

// okResponse is the body of successful mutations that return no entity.
func okResponse() map[string]string {
	return map[string]string{"status": "ok"}
}

// stagedResponse is the body returned when auto_commit=false left a pending
// event behind.
func stagedResponse(eventID int64) map[string]int64 {
	return map[string]int64{"event_id": eventID}
}
