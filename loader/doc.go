// Package loader wires extensions into the host's resolution machinery.
//
// # Main Types
//
//   - HookSet: ordered chain of resolve hooks serving virtual path lookups
//   - Loader: installs the registry hook, aliases submodules, re-exports symbols
//   - Config: YAML host configuration for extension sets
//
// # Initialization Order
//
// Hook installation completes before any path is aliased or any symbol
// re-exported. Bootstrap enforces this: a lookup of a virtual path
// issued before Bootstrap fails, the identical lookup issued afterwards
// returns the same object on every call.
//
// # States
//
// A Loader moves from StateUninstalled to StateInstalled exactly once.
// There is no reverse transition. Install is idempotent: calling it N
// times leaves the hook set in the same state as calling it once.
//
// # Failure Behavior
//
// All failures surface synchronously and none are retried. A failed
// Bootstrap removes the aliases it added and discards the partially
// built namespace, so no inconsistent public surface is left resolvable.
package loader
