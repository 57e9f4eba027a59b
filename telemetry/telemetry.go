// Package telemetry appends and reads the skill-bus JSONL event log: one
// record per match/condition_skip/no_match/skill_complete event, rotated
// at a configurable size, with write failures always swallowed so
// dispatch can never fail because of it.
package telemetry

import (
	"bufio"
	"encoding/json"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"github.com/joeymnguyen/skill-bus/config"
)

const defaultLogName = "skill-bus-telemetry.jsonl"

// Event is one recorded telemetry entry. Fields beyond Ts/SessionID/Kind
// are event-specific and left empty when not applicable, mirroring the
// original JSONL's sparse per-event shape.
type Event struct {
	Ts        string `json:"ts"`
	SessionID string `json:"sessionId"`
	Kind      string `json:"event"`
	Skill     string `json:"skill,omitempty"`
	Insert    string `json:"insert,omitempty"`
	Pattern   string `json:"pattern,omitempty"`
	Timing    string `json:"timing,omitempty"`
	Source    string `json:"source,omitempty"`
}

// Logger writes telemetry events tagged with one session ID, stable for
// the lifetime of the process, so events can be grouped back to a
// single dispatch invocation.
type Logger struct {
	SessionID string
}

// NewLogger returns a Logger with a fresh 8-character session ID.
func NewLogger() *Logger {
	return &Logger{SessionID: uuid.New().String()[:8]}
}

// ResolvePath returns the telemetry file location for cwd, honoring
// settings.TelemetryPath when set.
func ResolvePath(cwd string, settings config.Settings) string {
	if settings.TelemetryPath != "" {
		if filepath.IsAbs(settings.TelemetryPath) {
			return settings.TelemetryPath
		}
		return filepath.Join(cwd, settings.TelemetryPath)
	}
	return filepath.Join(cwd, ".claude", defaultLogName)
}

// LogEvent appends one event to the telemetry log. Any I/O failure is
// swallowed: telemetry must never break skill dispatch.
func (l *Logger) LogEvent(cwd string, settings config.Settings, kind string, fields Event) {
	path := ResolvePath(cwd, settings)

	if parent := filepath.Dir(path); parent != "" {
		if err := os.MkdirAll(parent, 0o755); err != nil {
			return
		}
	}

	if settings.MaxLogSizeKB > 0 {
		rotate(path, settings.MaxLogSizeKB)
	}

	fields.Ts = time.Now().Format(time.RFC3339)
	fields.SessionID = l.SessionID
	fields.Kind = kind

	data, err := json.Marshal(fields)
	if err != nil {
		return
	}

	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return
	}
	defer f.Close()
	f.Write(append(data, '\n'))
}

// rotate discards the older half of the log once it exceeds maxSizeKB.
func rotate(path string, maxSizeKB int) {
	info, err := os.Stat(path)
	if err != nil {
		return
	}
	if info.Size() <= int64(maxSizeKB)*1024 {
		return
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return
	}
	lines := splitLines(data)
	keep := lines[len(lines)/2:]
	if len(keep) == len(lines) {
		return // single line exceeds the limit — can't halve, keep it
	}
	os.WriteFile(path, joinLines(keep), 0o644)
}

func splitLines(data []byte) [][]byte {
	var lines [][]byte
	start := 0
	for i, b := range data {
		if b == '\n' {
			lines = append(lines, data[start:i+1])
			start = i + 1
		}
	}
	if start < len(data) {
		lines = append(lines, data[start:])
	}
	return lines
}

func joinLines(lines [][]byte) []byte {
	var out []byte
	for _, l := range lines {
		out = append(out, l...)
	}
	return out
}

// ReadEvents reads and parses the telemetry log, optionally filtered by
// session ID and/or a days-back cutoff. Malformed lines are skipped.
func ReadEvents(cwd string, settings config.Settings, sessionFilter string, daysFilter int) ([]Event, error) {
	path := ResolvePath(cwd, settings)
	f, err := os.Open(path)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var cutoff time.Time
	if daysFilter > 0 {
		cutoff = time.Now().AddDate(0, 0, -daysFilter)
	}

	var events []Event
	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), 1<<20)
	for scanner.Scan() {
		line := scanner.Bytes()
		if len(line) == 0 {
			continue
		}
		var e Event
		if err := json.Unmarshal(line, &e); err != nil {
			continue
		}
		if sessionFilter != "" && e.SessionID != sessionFilter {
			continue
		}
		if !cutoff.IsZero() {
			if ts, err := time.Parse(time.RFC3339, e.Ts); err == nil && ts.Before(cutoff) {
				continue
			}
		}
		events = append(events, e)
	}
	return events, nil
}
