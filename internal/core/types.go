package core

import (
	"sync"
	"time"
)

const MaxLogEntries = 1000
const MaxLogMessageSize = 4096

// LogEntry is a single log line captured from a function's log binding.
type LogEntry struct {
	Level   string    `json:"level"`
	Message string    `json:"message"`
	Time    time.Time `json:"time"`
}

// Result wraps the outcome of one invocation inside an engine backend.
type Result struct {
	// Raw is the JSON text of the script's final value as produced inside
	// the sandbox. Empty when Err is set.
	Raw  string
	Logs []LogEntry
	Err  error
}

// LogBuffer collects log entries emitted by one invocation. The host log
// binding appends to it; the engine hands the entries back in the Result.
// Appends are serialized so a binding panic mid-append cannot corrupt the
// slice seen by the engine's recovery path.
type LogBuffer struct {
	mu      sync.Mutex
	entries []LogEntry
}

// Append records one entry, truncating oversized messages and dropping
// entries past the cap.
func (b *LogBuffer) Append(level, message string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if len(b.entries) >= MaxLogEntries {
		return
	}
	if len(message) > MaxLogMessageSize {
		message = message[:MaxLogMessageSize] + "...(truncated)"
	}
	b.entries = append(b.entries, LogEntry{
		Level:   level,
		Message: message,
		Time:    time.Now(),
	})
}

// Entries returns a copy of everything appended so far.
func (b *LogBuffer) Entries() []LogEntry {
	b.mu.Lock()
	defer b.mu.Unlock()
	out := make([]LogEntry, len(b.entries))
	copy(out, b.entries)
	return out
}
