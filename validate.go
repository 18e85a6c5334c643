package envgate

import (
	"fmt"
	"net/url"
	"strings"
)

// Validate applies the partitioned rule sets to an environment snapshot.
// Every variable in either set is checked; violations are aggregated into a
// single *ValidationError rather than reported one at a time. On success the
// returned Config covers every rule name, with unset optionals marked absent.
//
// Validate is pure: the same rule sets and snapshot always yield the same
// Config or the same error.
func Validate(server, client *RuleSet, env Environment) (*Config, error) {
	cfg := newConfig()
	var varErrors []VarError

	apply := func(rs *RuleSet, visibility Visibility) {
		for _, name := range rs.order {
			rule := rs.rules[name]
			value, verr := checkRule(rule, env)
			if verr != nil {
				varErrors = append(varErrors, *verr)
				continue
			}
			value.visibility = visibility
			cfg.put(value)
		}
	}

	apply(server, VisibilityServer)
	apply(client, VisibilityClient)

	if len(varErrors) > 0 {
		return nil, &ValidationError{VarErrors: varErrors}
	}

	return cfg, nil
}

// checkRule validates one variable against its rule. It returns the typed
// value, or the first violated constraint as a VarError.
func checkRule(rule Rule, env Environment) (Value, *VarError) {
	raw, present := env.Lookup(rule.Name)

	if !present {
		if rule.Optional {
			return Value{name: rule.Name}, nil
		}
		return Value{}, &VarError{
			Name:    rule.Name,
			Code:    ErrCodeMissing,
			Message: "required variable is not set",
		}
	}

	// Present values are validated identically for required and optional
	// rules; only absence is forgiven for optionals.
	if raw == "" {
		return Value{}, &VarError{
			Name:    rule.Name,
			Code:    ErrCodeEmpty,
			Message: "value must not be empty",
		}
	}

	value := Value{name: rule.Name, raw: raw, set: true}

	if rule.URL {
		u, err := url.Parse(raw)
		if err != nil || !u.IsAbs() || u.Host == "" {
			return Value{}, &VarError{
				Name:    rule.Name,
				Code:    ErrCodeURL,
				Message: fmt.Sprintf("value %q is not a well-formed absolute URL", raw),
			}
		}
		value.url = u
	}

	if len(rule.Prefixes) > 0 && !hasAnyPrefix(raw, rule.Prefixes) {
		return Value{}, &VarError{
			Name:    rule.Name,
			Code:    ErrCodePrefix,
			Message: fmt.Sprintf("value must start with one of: %s", strings.Join(rule.Prefixes, ", ")),
		}
	}

	if rule.Suffix != "" && !strings.HasSuffix(raw, rule.Suffix) {
		return Value{}, &VarError{
			Name:    rule.Name,
			Code:    ErrCodeSuffix,
			Message: fmt.Sprintf("value must end with %q", rule.Suffix),
		}
	}

	if len(rule.Enum) > 0 && !contains(rule.Enum, raw) {
		return Value{}, &VarError{
			Name:    rule.Name,
			Code:    ErrCodeEnum,
			Message: fmt.Sprintf("value %q must be one of: %s", raw, strings.Join(rule.Enum, ", ")),
		}
	}

	return value, nil
}

func hasAnyPrefix(s string, prefixes []string) bool {
	for _, p := range prefixes {
		if strings.HasPrefix(s, p) {
			return true
		}
	}
	return false
}

func contains(set []string, s string) bool {
	for _, member := range set {
		if member == s {
			return true
		}
	}
	return false
}
