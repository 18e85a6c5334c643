package envgate

import (
	"reflect"
	"testing"
)

func TestModeFromEnv_GranularOffByDefault(t *testing.T) {
	tests := []struct {
		name string
		env  Environment
	}{
		{"flag unset", Environment{}},
		{"flag empty", Environment{GranularFlag: ""}},
		{"flag 1", Environment{GranularFlag: "1"}},
		{"flag TRUE", Environment{GranularFlag: "TRUE"}},
		{"flag yes", Environment{GranularFlag: "yes"}},
		{"flag true with space", Environment{GranularFlag: "true "}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mode := ModeFromEnv(testRegistry(), tt.env)
			if mode.Granular {
				t.Errorf("ModeFromEnv(%v) granular = true, want false (exact-string comparison)", tt.env)
			}
		})
	}
}

func TestModeFromEnv_GranularOn(t *testing.T) {
	mode := ModeFromEnv(testRegistry(), Environment{GranularFlag: "true"})
	if !mode.Granular {
		t.Fatal("ModeFromEnv: ENABLE_SERVICES_FLAGS=\"true\" should enable granular mode")
	}
}

func TestMode_Active_GranularOffIgnoresServiceFlags(t *testing.T) {
	// The per-service flag must never be consulted when granular mode is
	// off, even when present and "false".
	env := Environment{
		"ENABLE_PAYMENTS": "false",
		"ENABLE_DATABASE": "false",
	}
	mode := ModeFromEnv(testRegistry(), env)

	for _, svc := range testRegistry().Services {
		if !mode.Active(svc.Name) {
			t.Errorf("service %s inactive in non-granular mode", svc.Name)
		}
	}
}

func TestMode_Active_GranularOnRequiresExactTrue(t *testing.T) {
	tests := []struct {
		name      string
		flagValue string
		present   bool
		want      bool
	}{
		{"exact true", "true", true, true},
		{"absent", "", false, false},
		{"empty string", "", true, false},
		{"numeric 1", "1", true, false},
		{"uppercase TRUE", "TRUE", true, false},
		{"false", "false", true, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := Environment{GranularFlag: "true"}
			if tt.present {
				env["ENABLE_PAYMENTS"] = tt.flagValue
			}

			mode := ModeFromEnv(testRegistry(), env)
			if got := mode.Active("payments"); got != tt.want {
				t.Errorf("Active(payments) with ENABLE_PAYMENTS=%q present=%v: got %v, want %v",
					tt.flagValue, tt.present, got, tt.want)
			}
		})
	}
}

func TestServiceFlag(t *testing.T) {
	if got := ServiceFlag("bot_protection"); got != "ENABLE_BOT_PROTECTION" {
		t.Errorf("ServiceFlag(bot_protection) = %q", got)
	}
}

func TestCompose_GranularOffIncludesEverything(t *testing.T) {
	reg := testRegistry()
	rs := Compose(reg, ModeFromEnv(reg, Environment{"ENABLE_PAYMENTS": "false"}))

	want := []string{
		"APP_URL", "APP_ENV",
		"DATABASE_URL",
		"STRIPE_SECRET_KEY", "STRIPE_WEBHOOK_SECRET", "PUBLIC_STRIPE_PUBLISHABLE_KEY",
		"AXIOM_TOKEN", "AXIOM_DATASET",
		"SENTRY_ORG", "SENTRY_PROJECT",
	}
	if got := rs.Names(); !reflect.DeepEqual(got, want) {
		t.Errorf("Compose names\ngot:  %v\nwant: %v", got, want)
	}
}

func TestCompose_MergeOrder(t *testing.T) {
	// Required first, active services in registry order, optional last.
	reg := testRegistry()
	env := Environment{
		GranularFlag:      "true",
		"ENABLE_DATABASE": "true",
		"ENABLE_LOGGING":  "true",
	}
	rs := Compose(reg, ModeFromEnv(reg, env))

	want := []string{
		"APP_URL", "APP_ENV",
		"DATABASE_URL",
		"AXIOM_TOKEN", "AXIOM_DATASET",
		"SENTRY_ORG", "SENTRY_PROJECT",
	}
	if got := rs.Names(); !reflect.DeepEqual(got, want) {
		t.Errorf("Compose names\ngot:  %v\nwant: %v", got, want)
	}
}

func TestCompose_GranularOnExcludesInactiveServices(t *testing.T) {
	reg := testRegistry()
	env := Environment{
		GranularFlag:      "true",
		"ENABLE_DATABASE": "true",
	}
	rs := Compose(reg, ModeFromEnv(reg, env))

	if _, ok := rs.Get("DATABASE_URL"); !ok {
		t.Error("DATABASE_URL should be composed for the enabled service")
	}
	if _, ok := rs.Get("STRIPE_SECRET_KEY"); ok {
		t.Error("STRIPE_SECRET_KEY should not be composed while payments is inactive")
	}
	if _, ok := rs.Get("AXIOM_TOKEN"); ok {
		t.Error("AXIOM_TOKEN should not be composed while logging is inactive")
	}
}

func TestCompose_Deterministic(t *testing.T) {
	reg := testRegistry()
	env := Environment{GranularFlag: "true", "ENABLE_PAYMENTS": "true"}

	first := Compose(reg, ModeFromEnv(reg, env))
	second := Compose(reg, ModeFromEnv(reg, env))

	if !reflect.DeepEqual(first.Names(), second.Names()) {
		t.Errorf("Compose order differs between identical calls:\n%v\n%v", first.Names(), second.Names())
	}
	for _, name := range first.Names() {
		a, _ := first.Get(name)
		b, _ := second.Get(name)
		if !reflect.DeepEqual(a, b) {
			t.Errorf("rule %s differs between identical calls:\n%+v\n%+v", name, a, b)
		}
	}
}

func TestCompose_OptionalBucketForcesOptional(t *testing.T) {
	reg := Registry{
		Optional: []Rule{{Name: "SENTRY_ORG"}}, // Optional bit left unset on purpose
	}
	rs := Compose(reg, Mode{})

	rule, ok := rs.Get("SENTRY_ORG")
	if !ok {
		t.Fatal("SENTRY_ORG missing from composed set")
	}
	if !rule.Optional {
		t.Error("rules merged from the optional set must carry the optional bit")
	}
}

func TestCompose_CollisionLastWriteWins(t *testing.T) {
	// Verify() would reject this registry; Compose itself resolves the
	// collision silently with last-write-wins, keeping the first position.
	reg := Registry{
		Services: []Service{
			{Name: "a", Rules: []Rule{
				MustRule("FIRST", "required"),
				MustRule("SHARED", "required,prefix:a_"),
			}},
			{Name: "b", Rules: []Rule{MustRule("SHARED", "required,prefix:b_")}},
		},
	}
	rs := Compose(reg, Mode{})

	rule, ok := rs.Get("SHARED")
	if !ok {
		t.Fatal("SHARED missing from composed set")
	}
	if len(rule.Prefixes) != 1 || rule.Prefixes[0] != "b_" {
		t.Errorf("collision should resolve to the later rule, got prefixes %v", rule.Prefixes)
	}
	if want := []string{"FIRST", "SHARED"}; !reflect.DeepEqual(rs.Names(), want) {
		t.Errorf("collision should keep the first insertion position, got %v", rs.Names())
	}
}

func BenchmarkCompose(b *testing.B) {
	reg := testRegistry()
	mode := ModeFromEnv(reg, Environment{})

	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		Compose(reg, mode)
	}
}
