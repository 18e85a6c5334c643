package envgate

import "net/url"

// Value is one validated environment variable. The zero Value represents an
// optional variable that was not set.
type Value struct {
	name       string
	raw        string
	set        bool
	url        *url.URL
	visibility Visibility
	source     string
}

// Name returns the variable name.
func (v Value) Name() string { return v.name }

// IsSet reports whether the variable was present in the environment.
func (v Value) IsSet() bool { return v.set }

// Get returns the validated value and whether it was set. Absence and empty
// string are distinct: an unset optional reports ("", false).
func (v Value) Get() (string, bool) { return v.raw, v.set }

// String returns the validated value, or "" when unset.
func (v Value) String() string { return v.raw }

// OrDefault returns the validated value or the provided default when unset.
func (v Value) OrDefault(defaultVal string) string {
	if v.set {
		return v.raw
	}
	return defaultVal
}

// URL returns the parsed URL for rules with the url constraint, nil
// otherwise (including unset optionals).
func (v Value) URL() *url.URL {
	if v.url == nil {
		return nil
	}
	u := *v.url
	return &u
}

// Visibility returns the variable's derived visibility class.
func (v Value) Visibility() Visibility { return v.visibility }

// Source identifies the source that supplied the raw value (e.g., "env",
// "file:dev.yaml"). Empty for unset optionals and for configs built directly
// by Validate rather than a Loader.
func (v Value) Source() string { return v.source }

// Config is the validated configuration: every variable named by the
// composed rule set, mapped to its typed value or absence marker. It is
// constructed once at startup and immutable afterwards; downstream code
// reads Config, never the raw environment.
type Config struct {
	order  []string
	values map[string]Value
}

func newConfig() *Config {
	return &Config{values: make(map[string]Value)}
}

func (c *Config) put(v Value) {
	if _, ok := c.values[v.name]; !ok {
		c.order = append(c.order, v.name)
	}
	c.values[v.name] = v
}

// annotateSources records per-variable provenance after validation.
func (c *Config) annotateSources(origins map[string]string) {
	for name, v := range c.values {
		if !v.set {
			continue
		}
		if origin, ok := origins[name]; ok {
			v.source = origin
			c.values[name] = v
		}
	}
}

// Len returns the number of variables covered by the configuration,
// including unset optionals.
func (c *Config) Len() int { return len(c.order) }

// Names returns every covered variable name, server rules first, each group
// in rule-set order.
func (c *Config) Names() []string {
	out := make([]string, len(c.order))
	copy(out, c.order)
	return out
}

// Lookup returns the Value for name and whether the name is covered by the
// schema at all. A covered-but-unset optional returns (zero-ish Value, true).
func (c *Config) Lookup(name string) (Value, bool) {
	v, ok := c.values[name]
	return v, ok
}

// Get returns the validated value for name, or "" when the variable is not
// covered or not set.
func (c *Config) Get(name string) string {
	return c.values[name].raw
}

// IsSet reports whether name was present in the environment.
func (c *Config) IsSet(name string) bool {
	return c.values[name].set
}

// ClientValues returns the set client-exposed variables as a plain map —
// the only values safe to hand to a client runtime. Server-only variables
// never appear here regardless of their state.
func (c *Config) ClientValues() map[string]string {
	out := make(map[string]string)
	for _, name := range c.order {
		v := c.values[name]
		if v.set && v.visibility == VisibilityClient {
			out[name] = v.raw
		}
	}
	return out
}
