// Package sourcefile loads environment variables from YAML, JSON, or TOML
// files holding a flat name→value mapping. Intended for development and test
// overrides that merge under or over the real process environment.
//
// Format is auto-detected from extension (.yaml, .json, .toml).
//
// Example:
//
//	source := sourcefile.New("dev.env.yaml", sourcefile.Options{Required: true})
//	loader := envgate.NewLoader(reg).WithSource(source)
package sourcefile
