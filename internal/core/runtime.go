package core

// JSRuntime abstracts the JavaScript engine (QuickJS or V8) behind the
// small surface the host bindings and the execution path need. Each
// instance wraps exactly one sandboxed runtime; instances are built for
// a single invocation and never reused.
type JSRuntime interface {
	// Eval evaluates JavaScript source and discards the result.
	Eval(js string) error

	// EvalString evaluates JavaScript and returns the result as a Go string.
	EvalString(js string) (string, error)

	// RegisterFunc registers a Go function as a global JavaScript function.
	// The function's Go types are automatically marshaled to/from JS types.
	// On error return, the JS wrapper throws a TypeError instead of
	// returning an array.
	RegisterFunc(name string, fn any) error
}
