// Package extensionhost makes precompiled extension binaries available
// under stable, versioned virtual namespace paths.
//
// An extension is a WebAssembly binary carrying an explicit export
// manifest. The host loads the binary, binds the manifest's symbols into
// namespaces, registers those namespaces under dotted virtual paths, and
// re-exports selected symbols into a single public namespace. Callers
// never learn the extension's on-disk location or binary layout.
//
// # Architecture Overview
//
// The library is organized into several packages with distinct
// responsibilities:
//
//	extension-host/      Root package with the Symbols and ResolveHook contracts
//	├── registry/        Dotted-path registry mapping virtual paths to namespaces
//	├── namespace/       Ordered public symbol sets with identity-preserving bindings
//	├── loader/          Hook installation, aliasing, re-export, bootstrap
//	├── extension/       wazero-backed extension loading and manifest handling
//	├── errors/          Structured error types for debugging
//	└── cmd/inspect/     CLI for inspecting and calling extension exports
//
// # Quick Start
//
// Load an extension and publish its exports:
//
//	eng, _ := extension.NewEngine(ctx)
//	defer eng.Close(ctx)
//
//	ext, err := extension.Load(ctx, eng, wasmBytes, extension.Options{})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer ext.Close(ctx)
//
//	reg := registry.New(registry.DefaultOptions())
//	ld := loader.New(reg, loader.NewHookSet(), loader.DefaultOptions())
//
//	pub, err := ld.Bootstrap(ext)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	types, _ := reg.Resolve("synapse.data_types")
//	point, _ := pub.Lookup("point-new")
//
// # Resolution Model
//
// Virtual paths are served by a HookSet: an ordered chain of resolve
// hooks consulted before any fallback resolution. The loader installs a
// registry-backed hook exactly once; installing it again is a no-op. A
// path lookup issued before installation fails, the identical lookup
// issued after installation returns the same object on every call.
//
// # Thread Safety
//
// Registry, HookSet and Loader are safe for concurrent use. A Namespace
// is safe for concurrent reads; Bind calls from multiple goroutines are
// serialized internally, but bootstrap is expected to run once during
// program initialization.
package extensionhost
