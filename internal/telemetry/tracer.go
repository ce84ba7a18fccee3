package telemetry

import (
	"context"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

// Common attribute keys for auth operations.
// These follow OpenTelemetry semantic conventions where applicable;
// service-specific keys use the "auth." prefix.
const (
	// ========================================================================
	// Client attributes
	// ========================================================================
	AttrClientIP   = "client.ip"
	AttrClientAddr = "client.address"

	// ========================================================================
	// HTTP attributes
	// ========================================================================
	AttrHTTPMethod = "http.request.method"
	AttrHTTPRoute  = "http.route"
	AttrHTTPStatus = "http.response.status_code"

	// ========================================================================
	// Identity attributes
	// ========================================================================
	AttrLogin      = "auth.login"
	AttrGroup      = "auth.group"
	AttrPermission = "auth.permission"
	AttrGranted    = "auth.granted"

	// ========================================================================
	// Event workflow attributes
	// ========================================================================
	AttrEventID     = "auth.event.id"
	AttrEventType   = "auth.event.type"
	AttrEventStatus = "auth.event.status"

	// ========================================================================
	// Store attributes
	// ========================================================================
	AttrDBSystem    = "db.system"
	AttrDBOperation = "db.operation"
)

// ----------------------------------------------------------------------------
// Attribute constructors
// ----------------------------------------------------------------------------

// ClientIP returns an attribute for the client IP address
func ClientIP(ip string) attribute.KeyValue {
	return attribute.String(AttrClientIP, ip)
}

// ClientAddr returns an attribute for the full client address (ip:port)
func ClientAddr(addr string) attribute.KeyValue {
	return attribute.String(AttrClientAddr, addr)
}

// HTTPMethod returns an attribute for the HTTP request method
func HTTPMethod(method string) attribute.KeyValue {
	return attribute.String(AttrHTTPMethod, method)
}

// HTTPRoute returns an attribute for the matched route pattern
func HTTPRoute(route string) attribute.KeyValue {
	return attribute.String(AttrHTTPRoute, route)
}

// HTTPStatus returns an attribute for the HTTP response status code
func HTTPStatus(code int) attribute.KeyValue {
	return attribute.Int(AttrHTTPStatus, code)
}

// Login returns an attribute for a user login
func Login(login string) attribute.KeyValue {
	return attribute.String(AttrLogin, login)
}

// Group returns an attribute for a group name
func Group(name string) attribute.KeyValue {
	return attribute.String(AttrGroup, name)
}

// Permission returns an attribute for a permission name
func Permission(name string) attribute.KeyValue {
	return attribute.String(AttrPermission, name)
}

// Granted returns an attribute for a permission check outcome
func Granted(granted bool) attribute.KeyValue {
	return attribute.Bool(AttrGranted, granted)
}

// EventID returns an attribute for a pending event identifier
func EventID(id int64) attribute.KeyValue {
	return attribute.Int64(AttrEventID, id)
}

// EventType returns an attribute for a pending event type
func EventType(t string) attribute.KeyValue {
	return attribute.String(AttrEventType, t)
}

// EventStatus returns an attribute for an event lifecycle status
func EventStatus(s string) attribute.KeyValue {
	return attribute.String(AttrEventStatus, s)
}

// DBOperation returns an attribute for a store operation name
func DBOperation(op string) attribute.KeyValue {
	return attribute.String(AttrDBOperation, op)
}

// ----------------------------------------------------------------------------
// Span starters
// ----------------------------------------------------------------------------

// StartStoreSpan starts a span for a store operation ("store.CreateUser" etc.)
func StartStoreSpan(ctx context.Context, operation string, attrs ...attribute.KeyValue) (context.Context, trace.Span) {
	spanAttrs := append([]attribute.KeyValue{DBOperation(operation)}, attrs...)
	return StartSpan(ctx, "store."+operation, trace.WithAttributes(spanAttrs...))
}

// StartEventSpan starts a span for an event workflow operation
// ("event.commit", "event.cancel", "event.stage").
func StartEventSpan(ctx context.Context, operation string, id int64, attrs ...attribute.KeyValue) (context.Context, trace.Span) {
	spanAttrs := append([]attribute.KeyValue{EventID(id)}, attrs...)
	return StartSpan(ctx, "event."+operation, trace.WithAttributes(spanAttrs...))
}
