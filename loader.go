package envgate

import (
	"context"
	"fmt"
)

// Loader runs the full startup pipeline: snapshot the environment from its
// sources, derive the activation mode, compose and partition the rule set,
// validate, and run custom checks. Sources are processed in order (later
// override earlier). The pipeline executes exactly once per Load call, is
// synchronous, and has no retry path: a configuration error is fatal to
// startup by design.
type Loader struct {
	registry Registry
	sources  []Source
	checks   []Check
}

// NewLoader creates a Loader for one registry with no sources or checks.
func NewLoader(reg Registry) *Loader {
	return &Loader{
		registry: reg,
		sources:  make([]Source, 0),
		checks:   make([]Check, 0),
	}
}

// WithSource adds a source. Sources are processed in order (later override
// earlier).
func (l *Loader) WithSource(src Source) *Loader {
	l.sources = append(l.sources, src)
	return l
}

// WithCheck adds a custom check (executed after rule-based validation).
func (l *Loader) WithCheck(c Check) *Loader {
	l.checks = append(l.checks, c)
	return l
}

// Load snapshots, composes, partitions, and validates the configuration.
// Returns the immutable Config or a *ValidationError carrying every
// violation found in this run.
func (l *Loader) Load(ctx context.Context) (*Config, error) {
	// A malformed registry would make composition resolve collisions
	// silently; refuse to run on one.
	if err := l.registry.Verify(); err != nil {
		return nil, err
	}

	// Step 1: snapshot all sources and merge. Later sources override
	// earlier ones; origins remember which source won each name.
	env := make(Environment)
	origins := make(map[string]string)

	for _, source := range l.sources {
		data, err := source.Load(ctx)
		if err != nil {
			return nil, fmt.Errorf("load source %s: %w", source.Name(), err)
		}
		for name, value := range data {
			env[name] = value
			origins[name] = source.Name()
		}
	}

	// Step 2: derive the activation mode and compose the rule set.
	mode := ModeFromEnv(l.registry, env)
	ruleSet := Compose(l.registry, mode)

	// Step 3: partition by visibility and validate.
	server, client := Partition(ruleSet)
	cfg, err := Validate(server, client, env)

	// Step 4: run custom checks, aggregating their variable errors with the
	// rule violations so one run reports everything.
	var allErrors []VarError
	if err != nil {
		valErr, ok := err.(*ValidationError)
		if !ok {
			return nil, err
		}
		allErrors = append(allErrors, valErr.VarErrors...)
	}

	if cfg != nil {
		for i, check := range l.checks {
			err := check.Check(ctx, cfg)
			if err == nil {
				continue
			}
			if valErr, ok := err.(*ValidationError); ok {
				allErrors = append(allErrors, valErr.VarErrors...)
			} else {
				return nil, fmt.Errorf("check %d failed: %w", i, err)
			}
		}
	}

	if len(allErrors) > 0 {
		return nil, &ValidationError{VarErrors: allErrors}
	}

	// Step 5: record provenance and return the frozen configuration.
	cfg.annotateSources(origins)
	return cfg, nil
}
