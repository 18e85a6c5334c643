// Package envgate validates a process's environment variables against a
// service-conditional schema at startup.
//
// Quick Start:
//
//	reg := envgate.Registry{
//	    Required: []envgate.Rule{
//	        envgate.MustRule("DATABASE_URL", "required,url"),
//	    },
//	    Services: []envgate.Service{
//	        {Name: "payments", Rules: []envgate.Rule{
//	            envgate.MustRule("STRIPE_SECRET_KEY", "required,prefix:sk_"),
//	        }},
//	    },
//	}
//
//	cfg, err := envgate.NewLoader(reg).
//	    WithSource(sourceenv.New(sourceenv.Options{})).
//	    Load(context.Background())
//
// Rule directives: required, optional, url, prefix:a|b, suffix:x, enum:a|b|c
//
// Activation: ENABLE_SERVICES_FLAGS="true" switches to granular mode, where a
// service's rules apply only when ENABLE_<SERVICE>="true" (exact string
// comparison, not a general truthiness coercion). Names starting with PUBLIC_
// are client-exposed; everything else is server-only and redacted by
// DumpEffective and CreateSnapshot.
//
// See example_test.go and README.md for detailed usage.
package envgate
