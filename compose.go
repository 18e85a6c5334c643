package envgate

import (
	"github.com/envgate/envgate/internal/flagname"
)

// GranularFlag is the variable that switches per-service opt-in on. Granular
// mode is enabled iff its raw value is exactly "true".
const GranularFlag = "ENABLE_SERVICES_FLAGS"

// flagTrue is the only value treated as truthy for activation flags.
// Exact string comparison: "1", "TRUE", "yes" all read as false.
const flagTrue = "true"

// ServiceFlag returns the activation flag name for a service identifier
// (e.g., "payments" → "ENABLE_PAYMENTS").
func ServiceFlag(service string) string {
	return flagname.ServiceFlag(service)
}

// Mode is the activation state derived from one environment snapshot. When
// Granular is false every service is active and the per-service flags are
// never consulted, even if present and "false".
type Mode struct {
	Granular bool

	// enabled is only populated (and only read) in granular mode.
	enabled map[string]bool
}

// ModeFromEnv derives the activation mode for a registry from an environment
// snapshot.
func ModeFromEnv(reg Registry, env Environment) Mode {
	mode := Mode{Granular: env[GranularFlag] == flagTrue}
	if !mode.Granular {
		return mode
	}

	mode.enabled = make(map[string]bool, len(reg.Services))
	for _, svc := range reg.Services {
		mode.enabled[svc.Name] = env[flagname.ServiceFlag(svc.Name)] == flagTrue
	}
	return mode
}

// Active reports whether a service's rules should be enforced.
func (m Mode) Active(service string) bool {
	return !m.Granular || m.enabled[service]
}

// RuleSet is an ordered, name-unique collection of rules. Iteration order is
// first-insertion order, which keeps error reporting reproducible.
type RuleSet struct {
	order []string
	rules map[string]Rule
}

func newRuleSet() *RuleSet {
	return &RuleSet{rules: make(map[string]Rule)}
}

// add merges one rule. On a name collision the later rule replaces the
// earlier one silently (last-write-wins) but keeps the original position.
// Registry.Verify is the guard against unintended collisions.
func (rs *RuleSet) add(r Rule) {
	if _, ok := rs.rules[r.Name]; !ok {
		rs.order = append(rs.order, r.Name)
	}
	rs.rules[r.Name] = r
}

// Len returns the number of rules.
func (rs *RuleSet) Len() int {
	return len(rs.order)
}

// Names returns the variable names in insertion order.
func (rs *RuleSet) Names() []string {
	out := make([]string, len(rs.order))
	copy(out, rs.order)
	return out
}

// Get returns the rule for name and whether it exists.
func (rs *RuleSet) Get(name string) (Rule, bool) {
	r, ok := rs.rules[name]
	return r, ok
}

// Compose folds the registry into the rule set to enforce for one activation
// mode. Merge order is fixed: the required set first, then each active
// service in registry order, then the optional set last. The result is a
// pure function of (registry, mode) — no hidden state, no randomness.
func Compose(reg Registry, mode Mode) *RuleSet {
	rs := newRuleSet()

	for _, r := range reg.Required {
		rs.add(r)
	}

	for _, svc := range reg.Services {
		if !mode.Active(svc.Name) {
			continue
		}
		for _, r := range svc.Rules {
			rs.add(r)
		}
	}

	for _, r := range reg.Optional {
		r.Optional = true
		rs.add(r)
	}

	return rs
}
