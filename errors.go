package envgate

import (
	"fmt"
	"strings"
)

// Error codes for validation failures.
const (
	ErrCodeMissing = "missing"
	ErrCodeEmpty   = "empty"
	ErrCodePrefix  = "prefix"
	ErrCodeSuffix  = "suffix"
	ErrCodeURL     = "url"
	ErrCodeEnum    = "enum"
)

// ValidationError aggregates per-variable validation failures. Validation
// never stops at the first violation; a single run reports every missing or
// malformed variable at once.
type ValidationError struct {
	VarErrors []VarError
}

// Error formats validation errors as a multi-line message.
func (e *ValidationError) Error() string {
	if len(e.VarErrors) == 0 {
		return "env validation failed: no errors"
	}

	var b strings.Builder
	if len(e.VarErrors) == 1 {
		b.WriteString("env validation failed: 1 error\n")
	} else {
		fmt.Fprintf(&b, "env validation failed: %d errors\n", len(e.VarErrors))
	}

	for _, ve := range e.VarErrors {
		fmt.Fprintf(&b, "  - %s: %s (%s)\n", ve.Name, ve.Code, ve.Message)
	}

	return strings.TrimRight(b.String(), "\n")
}

// VarError represents a single variable's validation failure.
type VarError struct {
	Name    string // Environment variable name (e.g., "STRIPE_SECRET_KEY")
	Code    string // Error code (e.g., "missing", "prefix")
	Message string // Human-readable description
}
