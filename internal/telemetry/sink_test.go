package telemetry_test

import (
	"encoding/json"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/petasbytes/wardrobe-agent/internal/telemetry"
)

func readLines(t *testing.T, path string) []string {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read %s: %v", path, err)
	}
	return strings.Split(strings.TrimSpace(string(data)), "\n")
}

func TestEmit_Disabled_NoFile(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "events")
	s := telemetry.NewSink(dir, false)
	s.Emit("test_event", map[string]any{"foo": "bar"})

	if _, err := os.Stat(dir); !os.IsNotExist(err) {
		t.Fatalf("expected no events dir when disabled, got err=%v", err)
	}
}

func TestEmit_NilSink_NoPanic(t *testing.T) {
	var s *telemetry.Sink
	if s.Enabled() {
		t.Fatal("nil sink must report disabled")
	}
	s.Emit("x", map[string]any{"a": 1})
	if s.Path() != "" {
		t.Fatalf("nil sink path = %q", s.Path())
	}
}

func TestEmit_HappyPath(t *testing.T) {
	dir := t.TempDir()
	s := telemetry.NewSink(dir, true)
	s.Emit("test_event", map[string]any{"foo": "bar", "num": 42})

	lines := readLines(t, s.Path())
	if len(lines) != 1 {
		t.Fatalf("expected 1 line, got %d", len(lines))
	}
	var event map[string]any
	if err := json.Unmarshal([]byte(lines[0]), &event); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if event["event"] != "test_event" || event["foo"] != "bar" || event["num"] != float64(42) {
		t.Fatalf("unexpected event: %#v", event)
	}
	ts, ok := event["time"].(string)
	if !ok {
		t.Fatal("expected time field as string")
	}
	if _, err := time.Parse(time.RFC3339Nano, ts); err != nil {
		t.Errorf("time field not valid RFC3339Nano: %v", err)
	}
}

func TestEmit_AppendsInOrder_CreatesNestedDir(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "dir with spaces", "nested")
	s := telemetry.NewSink(dir, true)
	for _, name := range []string{"event1", "event2", "event3"} {
		s.Emit(name, nil)
	}

	b, err := os.ReadFile(s.Path())
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if len(b) == 0 || b[len(b)-1] != '\n' {
		t.Fatal("expected newline-terminated JSONL file")
	}
	lines := readLines(t, s.Path())
	if len(lines) != 3 {
		t.Fatalf("expected 3 lines, got %d", len(lines))
	}
	for i, want := range []string{"event1", "event2", "event3"} {
		var m map[string]any
		if err := json.Unmarshal([]byte(lines[i]), &m); err != nil {
			t.Fatalf("line %d invalid JSON: %v", i+1, err)
		}
		if m["event"] != want {
			t.Errorf("line %d: event=%v want %s", i+1, m["event"], want)
		}
		// nil fields: only event and time
		if len(m) != 2 {
			t.Errorf("line %d: expected 2 keys, got %#v", i+1, m)
		}
	}
}

func TestEmit_MapIsolation(t *testing.T) {
	s := telemetry.NewSink(t.TempDir(), true)
	fields := map[string]any{"key": "value"}
	s.Emit("test", fields)

	if len(fields) != 1 || fields["key"] != "value" {
		t.Fatalf("caller map mutated: %#v", fields)
	}
}

func TestEmit_MarshalError_NoFile(t *testing.T) {
	s := telemetry.NewSink(t.TempDir(), true)
	s.Emit("bad", map[string]any{"x": math.NaN()})
	if _, err := os.Stat(s.Path()); !os.IsNotExist(err) {
		t.Fatalf("expected no events file on marshal error, got err=%v", err)
	}
}

func TestEmit_ReadOnlyFile_NoPanic(t *testing.T) {
	dir := t.TempDir()
	s := telemetry.NewSink(dir, true)
	if err := os.WriteFile(s.Path(), nil, 0o444); err != nil {
		t.Fatal(err)
	}
	if os.Geteuid() == 0 {
		t.Skip("root ignores file permissions")
	}
	s.Emit("x", map[string]any{"a": 1})

	fi, err := os.Stat(s.Path())
	if err != nil {
		t.Fatal(err)
	}
	if fi.Size() != 0 {
		t.Fatalf("expected read-only file to stay empty, got %d bytes", fi.Size())
	}
}
