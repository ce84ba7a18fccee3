package logger

import (
	"bytes"
	"context"
	"encoding/json"
	"strings"
	"testing"
)

func TestStructuredLogging(t *testing.T) {
	t.Run("text format includes fields", func(t *testing.T) {
		var buf bytes.Buffer
		InitWithWriter(&buf, "DEBUG", "text", false)

		Info("user created", "login", "alice", "group", "staff")

		out := buf.String()
		if !strings.Contains(out, "user created") {
			t.Errorf("expected message in output, got %q", out)
		}
		if !strings.Contains(out, "login=alice") || !strings.Contains(out, "group=staff") {
			t.Errorf("expected key=value fields in output, got %q", out)
		}
	})

	t.Run("json format produces valid json", func(t *testing.T) {
		var buf bytes.Buffer
		InitWithWriter(&buf, "INFO", "json", false)

		Info("session issued", "login", "bob")

		var record map[string]any
		if err := json.Unmarshal(buf.Bytes(), &record); err != nil {
			t.Fatalf("expected valid JSON output, got %q: %v", buf.String(), err)
		}
		if record["msg"] != "session issued" {
			t.Errorf("expected msg field, got %v", record["msg"])
		}
		if record["login"] != "bob" {
			t.Errorf("expected login field, got %v", record["login"])
		}
	})

	t.Run("level filtering", func(t *testing.T) {
		var buf bytes.Buffer
		InitWithWriter(&buf, "WARN", "text", false)

		Debug("hidden")
		Info("also hidden")
		Warn("visible")

		out := buf.String()
		if strings.Contains(out, "hidden") {
			t.Errorf("expected debug/info to be filtered, got %q", out)
		}
		if !strings.Contains(out, "visible") {
			t.Errorf("expected warn to pass, got %q", out)
		}
	})

	t.Run("invalid level and format are ignored", func(t *testing.T) {
		var buf bytes.Buffer
		InitWithWriter(&buf, "INFO", "text", false)

		SetLevel("LOUD")
		SetFormat("xml")

		Info("still works")
		if !strings.Contains(buf.String(), "still works") {
			t.Errorf("expected logger to keep previous settings, got %q", buf.String())
		}
	})
}

func TestContextFields(t *testing.T) {
	var buf bytes.Buffer
	InitWithWriter(&buf, "DEBUG", "text", false)

	lc := NewLogContext("192.0.2.7").WithLogin("alice").WithTrace("trace-1", "span-1")
	ctx := WithContext(context.Background(), lc)

	InfoCtx(ctx, "request handled", "status", 200)

	out := buf.String()
	for _, want := range []string{"trace_id=trace-1", "span_id=span-1", "client_ip=192.0.2.7", "login=alice", "status=200"} {
		if !strings.Contains(out, want) {
			t.Errorf("expected %q in output, got %q", want, out)
		}
	}
}

func TestFromContext(t *testing.T) {
	if FromContext(context.Background()) != nil {
		t.Error("expected nil LogContext for plain context")
	}

	var nilLC *LogContext
	if nilLC.Clone() != nil {
		t.Error("expected nil clone of nil LogContext")
	}
	if nilLC.DurationMs() != 0 {
		t.Error("expected zero duration for nil LogContext")
	}
}
