package core

import "errors"

// ErrRuntimeConstruction marks a failure to build or wire a fresh runtime
// before any user code ran.
var ErrRuntimeConstruction = errors.New("runtime construction failed")

// ErrSerialization marks a script result that cannot be represented as a
// canonical value (functions, cyclic structures, opaque objects).
var ErrSerialization = errors.New("result is not serializable")

// ScriptError is an uncaught error raised by the executed script itself,
// including exceptions thrown out of a host binding. Its message is safe
// to pass through to the function author.
type ScriptError struct {
	Message string
	Stack   string // engine-provided stack trace, may be empty
}

func (e *ScriptError) Error() string {
	if e.Stack != "" {
		return e.Message + "\n" + e.Stack
	}
	return e.Message
}
