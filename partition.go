package envgate

import "strings"

// PublicPrefix marks a variable as safe to expose to a client runtime.
// Everything else is server-only and must never reach client-delivered
// artifacts.
const PublicPrefix = "PUBLIC_"

// Visibility classifies where a variable's value may appear.
type Visibility int

const (
	// VisibilityServer marks server-only values (secrets, signing keys).
	VisibilityServer Visibility = iota

	// VisibilityClient marks values safe to embed in client bundles
	// (base URLs, publishable keys).
	VisibilityClient
)

func (v Visibility) String() string {
	if v == VisibilityClient {
		return "client"
	}
	return "server"
}

// VisibilityOf derives a variable's visibility from its name. Pure function
// of the name; visibility is never stored independently.
func VisibilityOf(name string) Visibility {
	if strings.HasPrefix(name, PublicPrefix) {
		return VisibilityClient
	}
	return VisibilityServer
}

// Partition splits a rule set into server-only and client-exposed subsets.
// The split is total and disjoint: every rule lands in exactly one output,
// and both outputs preserve the input's order.
func Partition(rs *RuleSet) (server, client *RuleSet) {
	server = newRuleSet()
	client = newRuleSet()

	for _, name := range rs.order {
		rule := rs.rules[name]
		if VisibilityOf(name) == VisibilityClient {
			client.add(rule)
		} else {
			server.add(rule)
		}
	}

	return server, client
}
