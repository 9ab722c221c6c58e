package core

// EngineBackend is the interface that engine implementations (QuickJS, V8)
// must satisfy. The funcbox.Service facade delegates to one of these based
// on build tags.
//
// Execute evaluates source as one whole program inside a freshly
// constructed runtime wired to the given function's KV store, and tears
// the runtime down before returning. Result.Raw holds the JSON text of
// the value of the last top-level expression.
type EngineBackend interface {
	Execute(name, source string, kv KV) *Result
}

// KV is the storage seam the host bindings read and write through.
// Implementations serialize all calls internally; one KV value is shared
// by every concurrent invocation of its function.
type KV interface {
	// Get returns the stored value for key, or nil if the key was never set.
	Get(key string) (*string, error)

	// Set upserts value under key, replacing any prior value.
	Set(key, value string) error
}
