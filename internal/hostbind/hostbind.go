// Package hostbind installs the host capabilities exposed into a sandboxed
// function runtime: log, get, and set. These are the sandbox's only I/O
// primitives; no network, filesystem, process, or timer access exists.
package hostbind

import (
	"fmt"
	"log/slog"

	"github.com/funcbox/funcbox/internal/core"
)

// bootstrapJS wires the raw registered Go functions into the script-visible
// surface. Values cross the KV boundary as JSON text: set encodes before
// writing, get decodes after reading. A missing key reads as the text
// "null", which decodes to the same null a stored null would.
const bootstrapJS = `
(function() {
	globalThis.log = function(message) {
		__host_log(String(message));
	};
	globalThis.console = {
		log: function() {
			var parts = [];
			for (var i = 0; i < arguments.length; i++) {
				parts.push(String(arguments[i]));
			}
			__host_log(parts.join(", "));
		}
	};
	globalThis.set = function(key, value) {
		var encoded = JSON.stringify(value === undefined ? null : value);
		if (encoded === undefined) {
			throw new TypeError("set: value is not serializable");
		}
		__host_kv_set(String(key), encoded);
		return value;
	};
	globalThis.get = function(key) {
		return JSON.parse(__host_kv_get(String(key)));
	};
})();
`

// Setup registers the three host bindings on a freshly constructed runtime.
// The function name, KV handle, log buffer, and operational logger are
// closure-captured; none of them is reachable as a script-visible global.
// Storage faults returned by kv surface in the sandbox as thrown TypeErrors.
func Setup(rt core.JSRuntime, fnName string, kv core.KV, logs *core.LogBuffer, logger *slog.Logger) error {
	if err := rt.RegisterFunc("__host_log", func(message string) (string, error) {
		logs.Append("log", message)
		if logger != nil {
			logger.Info(message, "function", fnName)
		}
		return "", nil
	}); err != nil {
		return fmt.Errorf("registering __host_log: %w", err)
	}

	if err := rt.RegisterFunc("__host_kv_get", func(key string) (string, error) {
		val, err := kv.Get(key)
		if err != nil {
			return "", fmt.Errorf("kv get %q: %w", key, err)
		}
		if val == nil {
			return "null", nil
		}
		return *val, nil
	}); err != nil {
		return fmt.Errorf("registering __host_kv_get: %w", err)
	}

	if err := rt.RegisterFunc("__host_kv_set", func(key, value string) (string, error) {
		if err := kv.Set(key, value); err != nil {
			return "", fmt.Errorf("kv set %q: %w", key, err)
		}
		return "", nil
	}); err != nil {
		return fmt.Errorf("registering __host_kv_set: %w", err)
	}

	return rt.Eval(bootstrapJS)
}
