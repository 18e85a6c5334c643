// Package sourceenv snapshots the process's environment variables.
//
// Variable names are kept verbatim; an optional prefix filter narrows the
// snapshot without renaming anything.
//
// Example:
//
//	source := sourceenv.New(sourceenv.Options{})
//	loader := envgate.NewLoader(reg).WithSource(source)
package sourceenv
