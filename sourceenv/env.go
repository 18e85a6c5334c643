package sourceenv

import (
	"context"
	"os"
	"strings"

	"github.com/envgate/envgate"
)

// Options configures environment source behavior.
type Options struct {
	// Prefix keeps only variables whose name starts with prefix.
	// Unlike a stripping filter, names are returned verbatim because rules
	// match on literal variable names. Empty = snapshot all variables.
	Prefix string
}

type envSource struct {
	opts Options
}

// New creates a process-environment source.
func New(opts Options) envgate.Source {
	return &envSource{opts: opts}
}

// Load snapshots the process environment once. The returned snapshot is
// never refreshed; the pipeline is pure with respect to it.
func (e *envSource) Load(ctx context.Context) (envgate.Environment, error) {
	result := make(envgate.Environment)

	for _, kv := range os.Environ() {
		parts := strings.SplitN(kv, "=", 2)
		if len(parts) != 2 {
			continue
		}

		name := parts[0]
		if name == "" {
			continue
		}
		if e.opts.Prefix != "" && !strings.HasPrefix(name, e.opts.Prefix) {
			continue
		}

		result[name] = parts[1]
	}

	return result, nil
}

// Name identifies this source in provenance and error messages.
func (e *envSource) Name() string {
	return "env"
}
