package envgate

import (
	"context"
)

// Environment is an immutable snapshot of environment variables, captured
// once at process start. Map presence distinguishes "unset" from "set to
// empty string"; nothing in the pipeline reads the live process environment.
type Environment map[string]string

// Lookup returns the raw value for name and whether it is present.
func (e Environment) Lookup(name string) (string, bool) {
	v, ok := e[name]
	return v, ok
}

// Clone returns an independent copy of the snapshot.
func (e Environment) Clone() Environment {
	out := make(Environment, len(e))
	for k, v := range e {
		out[k] = v
	}
	return out
}

// Source provides raw environment data from backends (process env, files).
// Keys are literal variable names; no normalization is applied.
type Source interface {
	// Name returns a human-readable identifier (e.g., "env", "file:dev.yaml").
	Name() string

	// Load returns a snapshot of the source's variables. Missing optional
	// sources should return an empty Environment.
	Load(ctx context.Context) (Environment, error)
}

// Check performs custom validation after rule-based validation.
// Use for cross-variable or semantic checks.
type Check interface {
	// Check inspects the validated configuration. Return *ValidationError
	// for per-variable errors so they aggregate with rule violations.
	Check(ctx context.Context, cfg *Config) error
}

// CheckFunc is a function adapter for the Check interface.
type CheckFunc func(ctx context.Context, cfg *Config) error

func (f CheckFunc) Check(ctx context.Context, cfg *Config) error {
	return f(ctx, cfg)
}
