// Package errors provides structured error types for the extension-host library.
//
// Errors are categorized by Phase (where the error occurred) and Kind (error category).
// The Error type includes rich context: the virtual path, the symbol name, and cause chain.
//
// Use the Builder for structured error construction:
//
//	err := errors.New(errors.PhaseAlias, errors.KindInvalidPath).
//		Path("synapse.data_types").
//		Detail("empty path segment").
//		Build()
//
// Or use convenience constructors for common patterns:
//
//	err := errors.HookInstall("hook set is sealed")
//	err := errors.MissingSymbol(errors.PhaseReexport, "Point")
//
// All errors implement the standard error interface and support errors.Is/As.
package errors
