package envgate

import (
	"fmt"
	"strings"
)

// Rule is the validation constraint for a single environment variable.
// Every rule requires a non-empty value when one is present; the remaining
// constraints narrow the accepted shape.
type Rule struct {
	Name     string   // Environment variable name (e.g., "STRIPE_SECRET_KEY")
	Optional bool     // Absence is not an error
	Prefixes []string // Value must start with one of these literal prefixes
	Suffix   string   // Value must end with this literal suffix
	URL      bool     // Value must be a well-formed absolute URL
	Enum     []string // Value must be one of these literals
}

// ParseRule builds a Rule from a directive string.
// Directive format: "directive1,directive2:value,..."
// Alternatives within a directive are separated by "|" (e.g., "prefix:sk_|rk_").
//
// Directives:
//
//	required      absence or emptiness is a violation (the default)
//	optional      absence is allowed; a present value is still validated
//	url           well-formed absolute URL
//	prefix:a|b    literal prefix, one of the alternatives
//	suffix:x      literal suffix
//	enum:a|b|c    exact membership in the literal set
func ParseRule(name, directives string) (Rule, error) {
	if name == "" {
		return Rule{}, fmt.Errorf("envgate: rule name must not be empty")
	}

	rule := Rule{Name: name}

	for _, directive := range strings.Split(directives, ",") {
		directive = strings.TrimSpace(directive)
		if directive == "" {
			continue
		}

		parts := strings.SplitN(directive, ":", 2)
		key := strings.TrimSpace(parts[0])
		var value string
		if len(parts) > 1 {
			value = parts[1] // Don't trim: literal prefixes may be whitespace-significant
		}

		switch key {
		case "required":
			rule.Optional = false
		case "optional":
			rule.Optional = true
		case "url":
			rule.URL = true
		case "prefix":
			if value == "" {
				return Rule{}, fmt.Errorf("envgate: rule %s: prefix directive needs a value", name)
			}
			rule.Prefixes = splitAlternatives(value)
		case "suffix":
			if value == "" {
				return Rule{}, fmt.Errorf("envgate: rule %s: suffix directive needs a value", name)
			}
			rule.Suffix = value
		case "enum":
			if value == "" {
				return Rule{}, fmt.Errorf("envgate: rule %s: enum directive needs a value", name)
			}
			rule.Enum = splitAlternatives(value)
		default:
			return Rule{}, fmt.Errorf("envgate: rule %s: unknown directive %q", name, key)
		}
	}

	return rule, nil
}

// MustRule is ParseRule that panics on a malformed directive string.
// Intended for static registry literals.
func MustRule(name, directives string) Rule {
	rule, err := ParseRule(name, directives)
	if err != nil {
		panic(err)
	}
	return rule
}

func splitAlternatives(value string) []string {
	alts := strings.Split(value, "|")
	out := make([]string, 0, len(alts))
	for _, a := range alts {
		if a != "" {
			out = append(out, a)
		}
	}
	return out
}
