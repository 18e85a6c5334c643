// Package flagname derives activation flag names from service identifiers.
package flagname

import "strings"

// ServiceFlag derives the per-service activation flag name.
// Examples:
//   - "payments" → "ENABLE_PAYMENTS"
//   - "bot-protection" → "ENABLE_BOT_PROTECTION"
//   - "BOT_PROTECTION" → "ENABLE_BOT_PROTECTION"
func ServiceFlag(service string) string {
	return "ENABLE_" + Normalize(service)
}

// Normalize converts a service identifier to environment-variable form:
// uppercase, with every run of non-alphanumeric characters collapsed to a
// single underscore.
func Normalize(id string) string {
	var b strings.Builder
	b.Grow(len(id))

	pendingSep := false
	for _, r := range strings.ToUpper(id) {
		alnum := (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9')
		if !alnum {
			pendingSep = b.Len() > 0
			continue
		}
		if pendingSep {
			b.WriteByte('_')
			pendingSep = false
		}
		b.WriteRune(r)
	}

	return b.String()
}
