package funcbox

import (
	"errors"

	"github.com/funcbox/funcbox/internal/core"
)

// Client-visible error kinds. Their messages carry no secrets and are safe
// to hand back verbatim.
var (
	// ErrInvalidFunctionName rejects names with anything but ASCII letters.
	ErrInvalidFunctionName = errors.New("invalid function name")

	// ErrUnknownFunction marks an invocation of a name never submitted.
	ErrUnknownFunction = errors.New("unknown function")

	// ErrInvalidSource rejects submitted source that does not parse.
	ErrInvalidSource = errors.New("invalid function source")
)

// ErrStorage marks an I/O fault in a function's durable store. It is
// reported to callers only as an opaque internal failure.
var ErrStorage = errors.New("storage error")

// Engine error kinds, re-exported from the engine-shared core package.
var (
	ErrRuntimeConstruction = core.ErrRuntimeConstruction
	ErrSerialization       = core.ErrSerialization
)

// ScriptError is an uncaught error raised by the executed script. Its
// message is passed through to the caller as author feedback.
type ScriptError = core.ScriptError
