// Package namespace implements ordered public symbol sets.
//
// A Namespace holds named bindings and remembers the order in which
// names were first bound. Bindings are reference-semantic: binding a
// value copies nothing, and rebinding a name in one namespace never
// affects another namespace holding the same value.
//
// Freeze makes a namespace immutable. The loader freezes the public
// namespace after bootstrap so initialization failures can never leave
// a partially built namespace in use.
package namespace
