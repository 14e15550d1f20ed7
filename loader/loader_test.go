package loader

import (
	"testing"

	"github.com/synapsehq/extension-host/namespace"
	"github.com/synapsehq/extension-host/registry"
)

type fakeBundle struct {
	root      *namespace.Namespace
	name      string
	version   string
	spaces    []*namespace.Namespace
	reexports []*namespace.Namespace
}

func (b *fakeBundle) Name() string                       { return b.name }
func (b *fakeBundle) Version() string                    { return b.version }
func (b *fakeBundle) Root() *namespace.Namespace         { return b.root }
func (b *fakeBundle) Namespaces() []*namespace.Namespace { return b.spaces }
func (b *fakeBundle) Reexports() []*namespace.Namespace  { return b.reexports }

// synapseBundle builds the canonical mock extension: a root exposing
// runtime and Runtime, and a data_types namespace with Point and Vector
// flagged for re-export.
func synapseBundle(t *testing.T) (*fakeBundle, *namespace.Namespace) {
	t.Helper()

	root := namespace.New("synapse")
	newRuntime := func() string { return "runtime-instance" }
	if err := root.Bind("runtime", "R"); err != nil {
		t.Fatal(err)
	}
	if err := root.Bind("Runtime", newRuntime); err != nil {
		t.Fatal(err)
	}

	types := namespace.New("data_types")
	if err := types.Bind("Point", &struct{ x, y int }{}); err != nil {
		t.Fatal(err)
	}
	if err := types.Bind("Vector", &struct{ x, y, z int }{}); err != nil {
		t.Fatal(err)
	}

	return &fakeBundle{
		name:      "synapse",
		version:   "0.2.0",
		root:      root,
		spaces:    []*namespace.Namespace{types},
		reexports: []*namespace.Namespace{types},
	}, types
}

func TestLoader_InstallIdempotent(t *testing.T) {
	reg := registry.New(registry.DefaultOptions())
	hooks := NewHookSet()
	ld := New(reg, hooks, DefaultOptions())

	if ld.State() != StateUninstalled {
		t.Fatal("new loader must be uninstalled")
	}

	for i := 0; i < 3; i++ {
		if err := ld.Install(); err != nil {
			t.Fatalf("install %d failed: %v", i, err)
		}
	}
	if ld.State() != StateInstalled {
		t.Fatal("loader must be installed")
	}
	if hooks.Len() != 1 {
		t.Fatalf("hook set has %d hooks, want 1", hooks.Len())
	}
}

func TestLoader_InstallRejected(t *testing.T) {
	reg := registry.New(registry.DefaultOptions())
	hooks := NewHookSet()
	hooks.Seal()
	ld := New(reg, hooks, DefaultOptions())

	if err := ld.Install(); err == nil {
		t.Fatal("install on sealed hook set must fail")
	}
	// A failed install leaves the loader uninstalled.
	if ld.State() != StateUninstalled {
		t.Fatal("failed install must not transition state")
	}
}

func TestLoader_Bootstrap(t *testing.T) {
	reg := registry.New(registry.DefaultOptions())
	hooks := NewHookSet()
	ld := New(reg, hooks, DefaultOptions())
	bundle, types := synapseBundle(t)

	// Ordering: the virtual path is unresolved before bootstrap.
	if _, ok := hooks.Lookup("synapse.data_types"); ok {
		t.Fatal("path resolvable before bootstrap")
	}

	pub, err := ld.Bootstrap(bundle)
	if err != nil {
		t.Fatal(err)
	}

	// Public namespace carries the root symbols, the namespace object
	// and the re-exported names.
	for _, name := range []string{"runtime", "Runtime", "data_types", "Point", "Vector"} {
		if _, ok := pub.Lookup(name); !ok {
			t.Errorf("public namespace missing %q", name)
		}
	}
	if v, _ := pub.Lookup("runtime"); v != "R" {
		t.Error("runtime binding lost its value")
	}
	if v, _ := pub.Lookup("data_types"); v != any(types) {
		t.Error("data_types must be the namespace object itself")
	}

	// The virtual path resolves through the hook set to the same object.
	got, ok := hooks.Lookup("synapse.data_types")
	if !ok {
		t.Fatal("virtual path unresolved after bootstrap")
	}
	if got != types {
		t.Fatal("virtual path must resolve to the identical namespace")
	}

	// Stable across calls.
	again, _ := hooks.Lookup("synapse.data_types")
	if again != got {
		t.Fatal("resolution is not stable")
	}

	// Versioned path from the manifest version.
	if v, ok := hooks.Lookup("synapse.data_types@0.2.0"); !ok || v != types {
		t.Fatal("versioned path must resolve to the same namespace")
	}
	// Semver-compatible lookup.
	if v, ok := hooks.Lookup("synapse.data_types@0.2"); !ok || v != types {
		t.Fatal("compatible version must resolve")
	}

	// The public namespace is frozen after bootstrap.
	if !pub.Frozen() {
		t.Fatal("public namespace must be frozen")
	}
}

func TestLoader_BootstrapRollback(t *testing.T) {
	opts := registry.DefaultOptions()
	opts.OnDuplicate = registry.DuplicateReject
	reg := registry.New(opts)
	hooks := NewHookSet()
	ld := New(reg, hooks, DefaultOptions())

	first := namespace.New("alpha")
	second := namespace.New("beta")
	bundle := &fakeBundle{
		name:   "ext",
		root:   namespace.New("ext"),
		spaces: []*namespace.Namespace{first, second},
	}

	// Pre-claim the second path so bootstrap fails mid-way.
	if err := reg.Alias("ext.beta", namespace.New("squatter")); err != nil {
		t.Fatal(err)
	}

	if _, err := ld.Bootstrap(bundle); err == nil {
		t.Fatal("expected bootstrap to fail on duplicate alias")
	}

	// The alias added before the failure is rolled back.
	if _, ok := reg.Resolve("ext.alpha"); ok {
		t.Fatal("failed bootstrap left ext.alpha aliased")
	}
	// The pre-existing entry is untouched.
	if _, ok := reg.Resolve("ext.beta"); !ok {
		t.Fatal("rollback must not remove entries it did not add")
	}
}

func TestLoader_BootstrapRollbackRestoresOverwritten(t *testing.T) {
	reg := registry.New(registry.DefaultOptions())
	ld := New(reg, NewHookSet(), DefaultOptions())

	// An earlier extension already owns ext.alpha.
	occupant := namespace.New("occupant")
	if err := reg.Alias("ext.alpha", occupant); err != nil {
		t.Fatal(err)
	}

	// The second namespace's name yields an invalid path, so bootstrap
	// fails after overwriting ext.alpha.
	bundle := &fakeBundle{
		name: "ext",
		root: namespace.New("ext"),
		spaces: []*namespace.Namespace{
			namespace.New("alpha"),
			namespace.New("bad name"),
		},
	}

	if _, err := ld.Bootstrap(bundle); err == nil {
		t.Fatal("expected bootstrap to fail on invalid namespace name")
	}

	// The overwritten binding is restored, not deleted.
	got, ok := reg.Resolve("ext.alpha")
	if !ok {
		t.Fatal("rollback removed the pre-existing ext.alpha binding")
	}
	if got != occupant {
		t.Fatal("rollback must restore the original ext.alpha binding")
	}
}

func TestLoader_BootstrapUnversioned(t *testing.T) {
	reg := registry.New(registry.DefaultOptions())
	ld := New(reg, NewHookSet(), DefaultOptions())

	types := namespace.New("data_types")
	bundle := &fakeBundle{
		name:   "ext",
		root:   namespace.New("ext"),
		spaces: []*namespace.Namespace{types},
	}

	if _, err := ld.Bootstrap(bundle); err != nil {
		t.Fatal(err)
	}
	if _, ok := reg.Resolve("ext.data_types"); !ok {
		t.Fatal("unversioned path missing")
	}
	// No versioned alias without a manifest version.
	if reg.Len() != 1 {
		t.Fatalf("Len() = %d, want 1", reg.Len())
	}
}

func TestState_String(t *testing.T) {
	if StateUninstalled.String() != "uninstalled" || StateInstalled.String() != "installed" {
		t.Fatal("unexpected state strings")
	}
	if State(9).String() != "unknown" {
		t.Fatal("unexpected fallback string")
	}
}
