// Package registry maps dotted virtual paths to module namespaces.
//
// A Registry entry is identity-preserving: resolving a path returns
// exactly the object that was aliased, never a copy, for the life of
// the registry. Paths are dotted identifiers with an optional semantic
// version suffix on the final segment:
//
//	synapse.data_types
//	synapse.data_types@0.2.0
//
// # Duplicate Policy
//
// Re-aliasing a path to the same object is always a no-op. Re-aliasing
// to a different object is governed by Options.OnDuplicate:
//
//	DuplicateOverwrite  last writer wins, a warning is logged (default)
//	DuplicateReject     Alias fails, the registry is unchanged
//
// # Observers
//
// Register observers to track alias lifecycle events:
//
//	reg.Subscribe(obs)  // receives EventAliased, EventReplaced, EventRemoved
//
// # Version Matching
//
// When Options.SemverMatching is enabled, resolving a versioned path
// that has no exact entry falls back to the highest aliased version
// with the same major that satisfies the request.
package registry
