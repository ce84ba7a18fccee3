package logger

import (
	"log/slog"
	"time"
)

// Standard field keys for structured logging.
// Use these keys consistently across all log statements for log aggregation
// and querying.
const (
	// ========================================================================
	// Distributed Tracing
	// ========================================================================
	KeyTraceID = "trace_id" // OpenTelemetry trace ID for request correlation
	KeySpanID  = "span_id"  // OpenTelemetry span ID for operation tracking

	// ========================================================================
	// HTTP Request
	// ========================================================================
	KeyRequestID = "request_id" // HTTP request ID
	KeyMethod    = "method"     // HTTP method
	KeyPath      = "path"       // Request path
	KeyStatus    = "status"     // HTTP status code
	KeyClientIP  = "client_ip"  // Client IP address

	// ========================================================================
	// Identity Domain
	// ========================================================================
	KeyLogin      = "login"      // User login
	KeyGroup      = "group"      // Group name
	KeyPermission = "permission" // Permission name
	KeyEventID    = "event_id"   // Pending event identifier
	KeyEventType  = "event_type" // Pending event type

	// ========================================================================
	// Operation Metadata
	// ========================================================================
	KeyDurationMs = "duration_ms" // Operation duration in milliseconds
	KeyError      = "error"       // Error message
)

// ============================================================================
// Field constructors for type safety
// These functions provide type-safe construction of slog.Attr values.
// ============================================================================

// TraceID returns a slog.Attr for OpenTelemetry trace ID
func TraceID(id string) slog.Attr {
	return slog.String(KeyTraceID, id)
}

// SpanID returns a slog.Attr for OpenTelemetry span ID
func SpanID(id string) slog.Attr {
	return slog.String(KeySpanID, id)
}

// RequestID returns a slog.Attr for the HTTP request ID
func RequestID(id string) slog.Attr {
	return slog.String(KeyRequestID, id)
}

// ClientIP returns a slog.Attr for the client IP address
func ClientIP(ip string) slog.Attr {
	return slog.String(KeyClientIP, ip)
}

// Login returns a slog.Attr for a user login
func Login(login string) slog.Attr {
	return slog.String(KeyLogin, login)
}

// Group returns a slog.Attr for a group name
func Group(name string) slog.Attr {
	return slog.String(KeyGroup, name)
}

// Permission returns a slog.Attr for a permission name
func Permission(name string) slog.Attr {
	return slog.String(KeyPermission, name)
}

// EventID returns a slog.Attr for a pending event identifier
func EventID(id int64) slog.Attr {
	return slog.Int64(KeyEventID, id)
}

// EventType returns a slog.Attr for a pending event type
func EventType(t string) slog.Attr {
	return slog.String(KeyEventType, t)
}

// Err returns a slog.Attr for an error message
func Err(err error) slog.Attr {
	if err == nil {
		return slog.String(KeyError, "")
	}
	return slog.String(KeyError, err.Error())
}

// DurationMs returns a slog.Attr for a duration in milliseconds
func DurationMs(d time.Duration) slog.Attr {
	return slog.Float64(KeyDurationMs, float64(d.Microseconds())/1000.0)
}
