//go:build !v8

// Package quickjs executes function source inside per-invocation QuickJS
// VMs. Every call to Execute constructs a fresh VM, installs the host
// bindings, evaluates the whole program, serializes the completion value,
// and closes the VM — nothing is pooled or shared across invocations.
package quickjs

import (
	"fmt"
	"log/slog"

	"github.com/funcbox/funcbox/internal/core"
	"github.com/funcbox/funcbox/internal/hostbind"
	"modernc.org/quickjs"
)

// Engine is the QuickJS execution backend.
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

// Execute runs source in a brand-new VM wired to kv. The VM is torn down
// on every exit path, including script errors and panics out of the
// engine bindings.
func (e *Engine) Execute(name, source string, kv core.KV) (res *core.Result) {
	res = &core.Result{}
	logs := &core.LogBuffer{}
	defer func() {
		if r := recover(); r != nil {
			res.Err = fmt.Errorf("quickjs engine panic: %v", r)
		}
		res.Logs = logs.Entries()
	}()

	vm, err := quickjs.NewVM()
	if err != nil {
		res.Err = fmt.Errorf("%w: creating QuickJS VM: %v", core.ErrRuntimeConstruction, err)
		return res
	}
	defer vm.Close()

	if e.cfg.MemoryLimitMB > 0 {
		vm.SetMemoryLimit(uintptr(e.cfg.MemoryLimitMB) * 1024 * 1024)
	}

	rt := &qjsRuntime{vm: vm}
	if err := hostbind.Setup(rt, name, kv, logs, e.logger); err != nil {
		res.Err = fmt.Errorf("%w: %v", core.ErrRuntimeConstruction, err)
		return res
	}

	// Evaluate the full source as one program. The value of the last
	// top-level expression is the invocation result.
	val, err := vm.EvalValue(source, quickjs.EvalGlobal)
	if err != nil {
		res.Err = &core.ScriptError{Message: err.Error()}
		return res
	}
	if err := rt.setGlobal("__fn_result", val); err != nil {
		val.Free()
		res.Err = fmt.Errorf("%w: storing completion value: %v", core.ErrSerialization, err)
		return res
	}
	val.Free()

	raw, err := rt.EvalString(core.SerializeResultJS)
	if err != nil {
		res.Err = fmt.Errorf("%w: %v", core.ErrSerialization, err)
		return res
	}
	res.Raw = raw
	return res
}
