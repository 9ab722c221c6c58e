package funcbox

import (
	"fmt"
	"sync"
)

type functionRecord struct {
	source string
	store  *Store
}

// Registry holds the set of submitted functions and the store handle for
// each. Resubmitting a function replaces its source but keeps its store,
// so one handle per function stays open for the registry's lifetime.
type Registry struct {
	mu      sync.Mutex
	fns     map[string]functionRecord
	dataDir string
}

func NewRegistry(dataDir string) *Registry {
	return &Registry{fns: make(map[string]functionRecord), dataDir: dataDir}
}

// ValidateFunctionName accepts only non-empty ASCII letter names.
func ValidateFunctionName(name string) error {
	if name == "" {
		return fmt.Errorf("%w: %q, only a-z and A-Z characters are allowed", ErrInvalidFunctionName, name)
	}
	for _, c := range name {
		if (c < 'a' || c > 'z') && (c < 'A' || c > 'Z') {
			return fmt.Errorf("%w: %q, only a-z and A-Z characters are allowed", ErrInvalidFunctionName, name)
		}
	}
	return nil
}

// Submit registers source under name, opening the function's store on
// first submission. Existing stored data survives resubmission.
func (r *Registry) Submit(name, source string) error {
	if err := ValidateFunctionName(name); err != nil {
		return err
	}

	r.mu.Lock()
	existing, ok := r.fns[name]
	r.mu.Unlock()
	if ok {
		r.mu.Lock()
		r.fns[name] = functionRecord{source: source, store: existing.store}
		r.mu.Unlock()
		return nil
	}

	store, err := OpenStore(r.dataDir, name)
	if err != nil {
		return err
	}

	r.mu.Lock()
	if raced, ok := r.fns[name]; ok {
		// Another submitter opened the store first; keep theirs.
		r.fns[name] = functionRecord{source: source, store: raced.store}
		r.mu.Unlock()
		store.Close()
		return nil
	}
	r.fns[name] = functionRecord{source: source, store: store}
	r.mu.Unlock()
	return nil
}

// Lookup returns the source and store for a registered function.
func (r *Registry) Lookup(name string) (string, *Store, error) {
	r.mu.Lock()
	rec, ok := r.fns[name]
	r.mu.Unlock()
	if !ok {
		return "", nil, fmt.Errorf("%w: %s", ErrUnknownFunction, name)
	}
	return rec.source, rec.store, nil
}

// Close releases every open store handle.
func (r *Registry) Close() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	var first error
	for _, rec := range r.fns {
		if err := rec.store.Close(); err != nil && first == nil {
			first = err
		}
	}
	r.fns = make(map[string]functionRecord)
	return first
}
