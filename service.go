package funcbox

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/funcbox/funcbox/internal/core"
)

// Options configures a Service.
type Options struct {
	// DataDir is where per-function store files live. Defaults to "./data".
	DataDir string

	// MemoryLimitMB caps each invocation's engine heap. Zero means the
	// engine default.
	MemoryLimitMB int

	// MaxConcurrent bounds in-flight invocations. Zero or negative means
	// unbounded.
	MaxConcurrent int

	// Logger receives service and script log output. Defaults to
	// slog.Default().
	Logger *slog.Logger
}

// Service ties the registry, the per-function stores, and the engine
// backend together. Each invocation runs in a freshly constructed engine
// that is torn down when the invocation finishes.
type Service struct {
	registry *Registry
	backend  core.EngineBackend
	logger   *slog.Logger
	slots    chan struct{}
}

func New(opts Options) *Service {
	if opts.DataDir == "" {
		opts.DataDir = "./data"
	}
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	var slots chan struct{}
	if opts.MaxConcurrent > 0 {
		slots = make(chan struct{}, opts.MaxConcurrent)
	}
	return &Service{
		registry: NewRegistry(opts.DataDir),
		backend:  newBackend(core.Config{MemoryLimitMB: opts.MemoryLimitMB}, opts.Logger),
		logger:   opts.Logger,
		slots:    slots,
	}
}

// Submit validates and registers a function. Resubmitting an existing
// name replaces its source and keeps its stored data.
func (s *Service) Submit(name, source string) error {
	checked, err := CheckSource(source)
	if err != nil {
		return err
	}
	if err := s.registry.Submit(name, checked); err != nil {
		return err
	}
	s.logger.Info("added new function", "function", name)
	return nil
}

// Invoke runs the named function and returns its canonical JSON result
// along with the logs it emitted. ctx is honored while waiting for a
// concurrency slot; a started invocation always runs to completion.
func (s *Service) Invoke(ctx context.Context, name string) (*InvokeResult, error) {
	source, store, err := s.registry.Lookup(name)
	if err != nil {
		return nil, err
	}

	if s.slots != nil {
		select {
		case s.slots <- struct{}{}:
			defer func() { <-s.slots }()
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}

	invocationID := uuid.NewString()
	start := time.Now()
	s.logger.Debug("invoking function", "function", name, "invocation", invocationID)

	done := make(chan *core.Result, 1)
	go func() {
		done <- s.backend.Execute(name, source, store)
	}()
	res := <-done
	elapsed := time.Since(start)

	if res.Err != nil {
		return nil, res.Err
	}

	value, err := DecodeCanonical(res.Raw)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSerialization, err)
	}

	s.logger.Debug("function returned", "function", name, "invocation", invocationID, "duration", elapsed)
	return &InvokeResult{
		Value:    value.EncodeJSON(),
		Logs:     res.Logs,
		Duration: elapsed,
	}, nil
}

// Close releases the store handles held by the registry.
func (s *Service) Close() error {
	return s.registry.Close()
}
