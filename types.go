package funcbox

import (
	"time"

	"github.com/funcbox/funcbox/internal/core"
)

// LogEntry is a single log line captured from a function's log binding.
type LogEntry = core.LogEntry

// KV is the read/write surface a function's storage handle exposes to the
// host bindings. *Store implements it.
type KV = core.KV

// InvokeResult wraps one completed invocation.
type InvokeResult struct {
	// Value is the canonical-JSON text of the script's last top-level
	// expression.
	Value string

	// Logs are the entries the script emitted through its log binding.
	Logs []LogEntry

	// Duration covers runtime construction through teardown.
	Duration time.Duration
}
