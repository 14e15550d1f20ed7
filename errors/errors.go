package errors

import (
	"fmt"
	"strings"
)

// Phase indicates where in processing the error occurred
type Phase string

const (
	PhaseInstall  Phase = "install"  // hook installation
	PhaseAlias    Phase = "alias"    // registry aliasing
	PhaseResolve  Phase = "resolve"  // virtual path resolution
	PhaseReexport Phase = "reexport" // symbol re-export
	PhaseLoad     Phase = "load"     // extension loading
	PhaseManifest Phase = "manifest" // manifest parsing and validation
	PhaseCall     Phase = "call"     // calling an extension export
	PhaseConfig   Phase = "config"   // host configuration
)

// Kind categorizes the error
type Kind string

const (
	KindHookInstall    Kind = "hook_install"
	KindMissingSymbol  Kind = "missing_symbol"
	KindDuplicateAlias Kind = "duplicate_alias"
	KindInvalidPath    Kind = "invalid_path"
	KindNilModule      Kind = "nil_module"
	KindFrozen         Kind = "frozen"
	KindNotFound       Kind = "not_found"
	KindInvalidData    Kind = "invalid_data"
	KindInvalidInput   Kind = "invalid_input"
	KindInstantiation  Kind = "instantiation"
)

// Error is the structured error type used throughout the library
type Error struct {
	Cause  error
	Phase  Phase
	Kind   Kind
	Path   string
	Symbol string
	Detail string
}

// Error implements the error interface
func (e *Error) Error() string {
	var b strings.Builder

	b.WriteByte('[')
	b.WriteString(string(e.Phase))
	b.WriteString("] ")
	b.WriteString(string(e.Kind))

	if e.Path != "" {
		b.WriteString(" at ")
		b.WriteString(e.Path)
	}

	if e.Symbol != "" {
		fmt.Fprintf(&b, ": symbol %q", e.Symbol)
	}

	if e.Detail != "" {
		if e.Symbol != "" {
			b.WriteString(" - ")
		} else {
			b.WriteString(": ")
		}
		b.WriteString(e.Detail)
	}

	if e.Cause != nil {
		b.WriteString(" (caused by: ")
		b.WriteString(e.Cause.Error())
		b.WriteByte(')')
	}

	return b.String()
}

// Unwrap returns the underlying error
func (e *Error) Unwrap() error {
	return e.Cause
}

// Is reports whether target matches this error
func (e *Error) Is(target error) bool {
	if t, ok := target.(*Error); ok {
		return e.Phase == t.Phase && e.Kind == t.Kind
	}
	return false
}

// Builder provides structured error construction
type Builder struct {
	err Error
}

// New creates a new error builder
func New(phase Phase, kind Kind) *Builder {
	return &Builder{
		err: Error{
			Phase: phase,
			Kind:  kind,
		},
	}
}

// Path sets the virtual path
func (b *Builder) Path(path string) *Builder {
	b.err.Path = path
	return b
}

// Symbol sets the symbol name
func (b *Builder) Symbol(name string) *Builder {
	b.err.Symbol = name
	return b
}

// Cause sets the underlying error
func (b *Builder) Cause(err error) *Builder {
	b.err.Cause = err
	return b
}

// Detail sets the human-readable detail message
func (b *Builder) Detail(msg string, args ...any) *Builder {
	if len(args) > 0 {
		b.err.Detail = fmt.Sprintf(msg, args...)
	} else {
		b.err.Detail = msg
	}
	return b
}

// Build returns the constructed error
func (b *Builder) Build() *Error {
	return &b.err
}

// Convenience constructors for common error patterns

// HookInstall creates a hook installation error. Hook installation
// failures are fatal: initialization cannot proceed without the hook.
func HookInstall(detail string) *Error {
	return &Error{
		Phase:  PhaseInstall,
		Kind:   KindHookInstall,
		Detail: detail,
	}
}

// MissingSymbol creates a missing symbol error naming the absent symbol
func MissingSymbol(phase Phase, symbol string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindMissingSymbol,
		Symbol: symbol,
	}
}

// DuplicateAlias creates a duplicate alias error for the given path
func DuplicateAlias(path string) *Error {
	return &Error{
		Phase:  PhaseAlias,
		Kind:   KindDuplicateAlias,
		Path:   path,
		Detail: "path already aliased to a different module",
	}
}

// InvalidPath creates an invalid path error
func InvalidPath(path, detail string) *Error {
	return &Error{
		Phase:  PhaseAlias,
		Kind:   KindInvalidPath,
		Path:   path,
		Detail: detail,
	}
}

// NilModule creates an error for aliasing a nil module object
func NilModule(path string) *Error {
	return &Error{
		Phase:  PhaseAlias,
		Kind:   KindNilModule,
		Path:   path,
		Detail: "module object must be non-nil",
	}
}

// Frozen creates an error for binding into a frozen namespace
func Frozen(namespace string) *Error {
	return &Error{
		Phase:  PhaseReexport,
		Kind:   KindFrozen,
		Detail: fmt.Sprintf("namespace %q is frozen", namespace),
	}
}

// NotFound creates a not-found error
func NotFound(phase Phase, what, name string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindNotFound,
		Detail: fmt.Sprintf("%s %q not found", what, name),
	}
}

// InvalidInput creates an invalid input error
func InvalidInput(phase Phase, detail string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindInvalidInput,
		Detail: detail,
	}
}

// Instantiation creates an instantiation error
func Instantiation(cause error) *Error {
	return &Error{
		Phase:  PhaseLoad,
		Kind:   KindInstantiation,
		Detail: "instantiate extension",
		Cause:  cause,
	}
}

// Load creates an extension loading error
func Load(detail string, cause error) *Error {
	return &Error{
		Phase:  PhaseLoad,
		Kind:   KindInvalidData,
		Detail: detail,
		Cause:  cause,
	}
}

// Manifest creates a manifest parsing or validation error
func Manifest(detail string, cause error) *Error {
	return &Error{
		Phase:  PhaseManifest,
		Kind:   KindInvalidData,
		Detail: detail,
		Cause:  cause,
	}
}

// Config creates a host configuration error
func Config(detail string, cause error) *Error {
	return &Error{
		Phase:  PhaseConfig,
		Kind:   KindInvalidData,
		Detail: detail,
		Cause:  cause,
	}
}
