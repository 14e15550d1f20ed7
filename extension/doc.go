// Package extension loads precompiled extension binaries with wazero.
//
// An extension binary is a WebAssembly module carrying an explicit
// export manifest: a JSON document naming every namespace and symbol
// the extension makes public. The manifest lives in the binary's
// "synapse-manifest" custom section or in a sidecar file. Nothing is
// discovered by introspection; the manifest is the contract.
//
// # Manifest
//
//	{
//	  "name": "synapse",
//	  "version": "0.2.0",
//	  "symbols": [
//	    {"name": "runtime", "kind": "const-string", "value": "synapse"}
//	  ],
//	  "namespaces": [
//	    {
//	      "name": "data_types",
//	      "reexport": true,
//	      "symbols": [
//	        {"name": "point-new", "kind": "func", "export": "point_new"}
//	      ]
//	    }
//	  ]
//	}
//
// Function symbols bind to the named wasm export; a manifest entry
// naming a missing export fails the load. Constant symbols carry their
// value in the manifest itself.
//
// # Lifecycle
//
// An Engine wraps a wazero runtime and may serve many extensions.
// Load compiles and instantiates one binary; Close releases the
// instance. Each loaded extension carries a unique instance ID.
package extension
