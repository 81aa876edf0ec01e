package telemetry

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"
	"time"
)

const eventsFile = "events.jsonl"

// Sink appends events to a JSONL file. A nil *Sink is valid and discards
// everything.
type Sink struct {
	dir     string
	enabled bool
	errOut  io.Writer

	mu sync.Mutex
}

func NewSink(dir string, enabled bool) *Sink {
	return &Sink{dir: dir, enabled: enabled, errOut: os.Stderr}
}

func (s *Sink) Enabled() bool { return s != nil && s.enabled }

// Path is the file events are appended to.
func (s *Sink) Path() string {
	if s == nil {
		return ""
	}
	return filepath.Join(s.dir, eventsFile)
}

// Emit writes one line with fields plus "time" (RFC3339Nano, UTC) and "event".
// Failures are reported on stderr and otherwise ignored.
func (s *Sink) Emit(name string, fields map[string]any) {
	if !s.Enabled() {
		return
	}

	m := make(map[string]any, len(fields)+2)
	for k, v := range fields {
		m[k] = v
	}
	m["time"] = time.Now().UTC().Format(time.RFC3339Nano)
	m["event"] = name

	b, err := json.Marshal(m)
	if err != nil {
		s.warnf("telemetry: marshal: %v\n", err)
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		s.warnf("telemetry: mkdir %s: %v\n", s.dir, err)
		return
	}
	path := s.Path()
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		s.warnf("telemetry: open %s: %v\n", path, err)
		return
	}
	defer f.Close()

	if _, err := f.Write(append(b, '\n')); err != nil {
		s.warnf("telemetry: write %s: %v\n", path, err)
	}
}

func (s *Sink) warnf(format string, args ...any) {
	if s.errOut != nil {
		fmt.Fprintf(s.errOut, format, args...)
	}
}
