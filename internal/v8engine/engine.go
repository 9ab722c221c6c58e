//go:build v8

// Package v8engine executes function source inside per-invocation V8
// isolates. It mirrors the QuickJS backend: construct, bind, evaluate,
// serialize, dispose — a fresh isolate for every call, never pooled.
package v8engine

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/funcbox/funcbox/internal/core"
	"github.com/funcbox/funcbox/internal/hostbind"
	v8 "github.com/tommie/v8go"
)

// Engine is the V8 execution backend, selected with -tags v8.
type Engine struct {
	cfg    core.Config
	logger *slog.Logger
}

var _ core.EngineBackend = (*Engine)(nil)

// NewEngine creates an Engine with the given configuration. logger receives
// the operational copy of every script log call; it may be nil.
func NewEngine(cfg core.Config, logger *slog.Logger) *Engine {
	return &Engine{cfg: cfg, logger: logger}
}

// Execute runs source in a brand-new isolate wired to kv. The isolate and
// context are disposed on every exit path.
func (e *Engine) Execute(name, source string, kv core.KV) (res *core.Result) {
	res = &core.Result{}
	logs := &core.LogBuffer{}
	defer func() {
		if r := recover(); r != nil {
			res.Err = fmt.Errorf("v8 engine panic: %v", r)
		}
		res.Logs = logs.Entries()
	}()

	var iso *v8.Isolate
	if e.cfg.MemoryLimitMB > 0 {
		heapSize := uint64(e.cfg.MemoryLimitMB) * 1024 * 1024
		iso = v8.NewIsolate(v8.WithResourceConstraints(heapSize/2, heapSize))
	} else {
		iso = v8.NewIsolate()
	}
	defer iso.Dispose()

	ctx := v8.NewContext(iso)
	defer ctx.Close()

	rt := &v8Runtime{iso: iso, ctx: ctx}
	if err := hostbind.Setup(rt, name, kv, logs, e.logger); err != nil {
		res.Err = fmt.Errorf("%w: %v", core.ErrRuntimeConstruction, err)
		return res
	}

	// Evaluate the full source as one program. The value of the last
	// top-level expression is the invocation result.
	val, err := ctx.RunScript(source, name+".js")
	if err != nil {
		res.Err = scriptError(err)
		return res
	}

	if err := ctx.Global().Set("__fn_result", val); err != nil {
		res.Err = fmt.Errorf("%w: storing completion value: %v", core.ErrSerialization, err)
		return res
	}

	raw, err := rt.EvalString(core.SerializeResultJS)
	if err != nil {
		res.Err = fmt.Errorf("%w: %v", core.ErrSerialization, err)
		return res
	}
	res.Raw = raw
	return res
}

// scriptError converts a V8 evaluation error into a ScriptError, keeping
// the JS stack trace when V8 provides one.
func scriptError(err error) *core.ScriptError {
	var jsErr *v8.JSError
	if errors.As(err, &jsErr) {
		return &core.ScriptError{Message: jsErr.Message, Stack: jsErr.StackTrace}
	}
	return &core.ScriptError{Message: err.Error()}
}
