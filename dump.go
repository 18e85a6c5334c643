package envgate

import (
	"encoding/json"
	"fmt"
	"io"
)

// redactedPlaceholder replaces server-only values in dumps and snapshots.
const redactedPlaceholder = "***redacted***"

// DumpOption configures dump behavior using the functional options pattern.
type DumpOption func(*dumpConfig)

// dumpConfig holds options for DumpEffective.
type dumpConfig struct {
	withSources bool   // Include source attribution for each variable
	asJSON      bool   // Output as JSON instead of text format
	indent      string // Indentation for JSON output (default: "  ")
}

// WithSources includes source attribution for each variable in the output.
func WithSources() DumpOption {
	return func(cfg *dumpConfig) {
		cfg.withSources = true
	}
}

// AsJSON outputs configuration as JSON instead of text format.
func AsJSON() DumpOption {
	return func(cfg *dumpConfig) {
		cfg.asJSON = true
	}
}

// WithIndent sets the indentation for JSON output.
// Default is two spaces ("  ").
func WithIndent(indent string) DumpOption {
	return func(cfg *dumpConfig) {
		cfg.indent = indent
	}
}

// DumpEffective writes a human-readable representation of the configuration.
// Server-only values are redacted as "***redacted***"; only client-exposed
// values appear in clear text. Returns an error if writing fails.
func DumpEffective(w io.Writer, cfg *Config, opts ...DumpOption) error {
	if cfg == nil {
		return fmt.Errorf("config is nil")
	}

	options := dumpConfig{
		indent: "  ", // Default indent
	}
	for _, opt := range opts {
		opt(&options)
	}

	if options.asJSON {
		return dumpJSON(w, cfg, options)
	}
	return dumpText(w, cfg, options)
}

func dumpText(w io.Writer, cfg *Config, options dumpConfig) error {
	for _, name := range cfg.order {
		v := cfg.values[name]

		var rendered string
		switch {
		case !v.set:
			rendered = "[not set]"
		case v.visibility == VisibilityServer:
			rendered = redactedPlaceholder
		default:
			rendered = v.raw
		}

		line := fmt.Sprintf("%s = %s", name, rendered)
		if options.withSources && v.source != "" {
			line += fmt.Sprintf(" (from %s)", v.source)
		}

		if _, err := fmt.Fprintln(w, line); err != nil {
			return fmt.Errorf("write dump: %w", err)
		}
	}
	return nil
}

func dumpJSON(w io.Writer, cfg *Config, options dumpConfig) error {
	out := make(map[string]*string, len(cfg.order))
	for _, name := range cfg.order {
		v := cfg.values[name]
		if !v.set {
			out[name] = nil
			continue
		}
		rendered := v.raw
		if v.visibility == VisibilityServer {
			rendered = redactedPlaceholder
		}
		out[name] = &rendered
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", options.indent)
	if err := enc.Encode(out); err != nil {
		return fmt.Errorf("encode dump: %w", err)
	}
	return nil
}
