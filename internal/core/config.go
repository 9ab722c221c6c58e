package core

// Config holds runtime configuration for the execution engine.
type Config struct {
	MemoryLimitMB int // per-runtime memory limit, 0 = unlimited
}
