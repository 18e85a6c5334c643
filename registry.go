package envgate

import (
	"fmt"
	"strings"
)

// Service describes one optional integration: a stable identifier and the
// rules that apply when the service is active. Activation is computed from
// the environment, never stored on the descriptor.
type Service struct {
	Name  string
	Rules []Rule
}

// Registry is the static, ordered schema description. Required rules are
// enforced unconditionally; each service's rules are enforced only when the
// service is active; Optional rules always participate but never fail on
// absence. Adding an integration means appending one Service descriptor.
type Registry struct {
	Required []Rule
	Services []Service
	Optional []Rule
}

// Verify checks the registry invariants that composition does not enforce at
// runtime:
//
//   - no two owners (the required set, a service, or the optional set) claim
//     the same variable name; Compose resolves such collisions silently with
//     last-write-wins, so a collision is almost always a registry bug
//   - every service has a non-empty name, unique within the registry
//
// Call it from an init path or a test whenever the registry is extended.
func (r Registry) Verify() error {
	owners := make(map[string]string)
	services := make(map[string]bool)
	var problems []string

	claim := func(owner string, rules []Rule) {
		for _, rule := range rules {
			if prev, ok := owners[rule.Name]; ok {
				problems = append(problems, fmt.Sprintf("variable %s claimed by both %s and %s", rule.Name, prev, owner))
				continue
			}
			owners[rule.Name] = owner
		}
	}

	claim("required set", r.Required)
	for _, svc := range r.Services {
		if svc.Name == "" {
			problems = append(problems, "service with empty name")
			continue
		}
		if services[svc.Name] {
			problems = append(problems, fmt.Sprintf("duplicate service %s", svc.Name))
			continue
		}
		services[svc.Name] = true
		claim("service "+svc.Name, svc.Rules)
	}
	claim("optional set", r.Optional)

	if len(problems) > 0 {
		return fmt.Errorf("envgate: invalid registry: %s", strings.Join(problems, "; "))
	}
	return nil
}
