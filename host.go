package extensionhost

// Symbols is a named collection of exported bindings.
type Symbols interface {
	// Name returns the collection's name.
	Name() string
	// Lookup returns the binding for name. The returned value is the
	// bound object itself, never a copy.
	Lookup(name string) (any, bool)
	// Public returns the declared public names in declaration order.
	// The list is duplicate-free.
	Public() []string
}

// ResolveHook intercepts virtual path lookups before fallback resolution.
// Given a path, a hook either returns the module object serving it or
// defers by returning false.
type ResolveHook interface {
	// Name identifies the hook within a hook set. Installing two hooks
	// with the same name is a no-op for the second.
	Name() string
	// Resolve returns the Symbols registered for path, if any.
	Resolve(path string) (Symbols, bool)
}
