package loader

import (
	"sync"

	"go.uber.org/zap"

	extensionhost "github.com/synapsehq/extension-host"
	"github.com/synapsehq/extension-host/namespace"
	"github.com/synapsehq/extension-host/registry"
)

// State is the loader lifecycle state.
type State uint8

const (
	StateUninstalled State = iota
	StateInstalled
)

func (s State) String() string {
	switch s {
	case StateUninstalled:
		return "uninstalled"
	case StateInstalled:
		return "installed"
	default:
		return "unknown"
	}
}

// Options configures loader behavior.
type Options struct {
	// HookName identifies the registry-backed hook within the hook set.
	HookName string
}

// DefaultOptions returns default loader configuration.
func DefaultOptions() Options {
	return Options{
		HookName: "registry",
	}
}

// Loader installs the registry hook and publishes extension namespaces.
// Thread-safe.
type Loader struct {
	registry *registry.Registry
	hooks    *HookSet
	options  Options
	state    State
	mu       sync.Mutex
}

// New creates a loader over the given registry and hook set.
func New(reg *registry.Registry, hooks *HookSet, opts Options) *Loader {
	if opts.HookName == "" {
		opts.HookName = DefaultOptions().HookName
	}
	return &Loader{
		registry: reg,
		hooks:    hooks,
		options:  opts,
	}
}

// Registry returns the underlying registry.
func (l *Loader) Registry() *registry.Registry {
	return l.registry
}

// Hooks returns the underlying hook set.
func (l *Loader) Hooks() *HookSet {
	return l.hooks
}

// State returns the loader lifecycle state.
func (l *Loader) State() State {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.state
}

// registryHook serves virtual path lookups from a registry.
type registryHook struct {
	name     string
	registry *registry.Registry
}

func (h *registryHook) Name() string { return h.name }

func (h *registryHook) Resolve(path string) (extensionhost.Symbols, bool) {
	return h.registry.Resolve(path)
}

// Install registers the registry-backed hook with the hook set.
// Install is idempotent: calling it N times leaves the hook set in the
// same state as calling it once. A rejected installation is fatal and
// leaves the loader uninstalled.
func (l *Loader) Install() error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.state == StateInstalled {
		return nil
	}

	hook := &registryHook{name: l.options.HookName, registry: l.registry}
	if err := l.hooks.Install(hook); err != nil {
		return err
	}

	l.state = StateInstalled
	Logger().Info("loader installed", zap.String("hook", l.options.HookName))
	return nil
}

// Alias registers mod under the virtual path. Aliases may be staged
// before Install; Bootstrap always installs first so hook visibility
// precedes path resolution.
func (l *Loader) Alias(path string, mod extensionhost.Symbols) error {
	return l.registry.Alias(path, mod)
}

// Reexport copies the named bindings from src into dst. See the
// package-level Reexport.
func (l *Loader) Reexport(dst *namespace.Namespace, src extensionhost.Symbols, names ...string) error {
	return Reexport(dst, src, names...)
}

// Bundle is the extension surface Bootstrap consumes. A loaded
// extension.Extension satisfies it.
type Bundle interface {
	// Name returns the extension's package name.
	Name() string
	// Version returns the manifest version, or "".
	Version() string
	// Root returns the extension's top-level namespace.
	Root() *namespace.Namespace
	// Namespaces returns the extension's sub-namespaces in manifest order.
	Namespaces() []*namespace.Namespace
	// Reexports returns the sub-namespaces flagged for wildcard re-export.
	Reexports() []*namespace.Namespace
}

// Bootstrap publishes an extension: it installs the hook, aliases every
// sub-namespace under "<name>.<ns>" (and the versioned path when the
// manifest carries a version), binds the sub-namespace objects and the
// root's symbols into a fresh public namespace, wildcard-reexports the
// flagged sub-namespaces, and freezes the result.
//
// On failure the aliases added by this call are removed, bindings they
// overwrote are restored, and the partial namespace is discarded; the
// registry is left exactly as Bootstrap found it.
func (l *Loader) Bootstrap(b Bundle) (*namespace.Namespace, error) {
	if err := l.Install(); err != nil {
		return nil, err
	}

	pub := namespace.New(b.Name())

	// Each record remembers the binding the alias displaced, so rollback
	// restores overwritten entries instead of deleting them.
	type aliasRecord struct {
		prev extensionhost.Symbols
		path string
	}
	var aliased []aliasRecord

	alias := func(path string, ns *namespace.Namespace) error {
		prev, _ := l.registry.Get(path)
		if err := l.registry.Alias(path, ns); err != nil {
			return err
		}
		aliased = append(aliased, aliasRecord{prev: prev, path: path})
		return nil
	}

	fail := func(err error) (*namespace.Namespace, error) {
		for i := len(aliased) - 1; i >= 0; i-- {
			rec := aliased[i]
			if rec.prev != nil {
				_ = l.registry.Alias(rec.path, rec.prev)
			} else {
				l.registry.Remove(rec.path)
			}
		}
		Logger().Error("bootstrap failed",
			zap.String("extension", b.Name()),
			zap.Error(err),
		)
		return nil, err
	}

	// Top-level symbols first, mirroring declaration order.
	if err := Reexport(pub, b.Root()); err != nil {
		return fail(err)
	}

	version, hasVersion := registry.ParseVersion(b.Version())

	for _, ns := range b.Namespaces() {
		path := b.Name() + "." + ns.Name()
		if err := alias(path, ns); err != nil {
			return fail(err)
		}

		if hasVersion {
			if err := alias(path+"@"+version.String(), ns); err != nil {
				return fail(err)
			}
		}

		if err := pub.Bind(ns.Name(), ns); err != nil {
			return fail(err)
		}
	}

	for _, ns := range b.Reexports() {
		if err := Reexport(pub, ns); err != nil {
			return fail(err)
		}
	}

	pub.Freeze()
	Logger().Info("extension published",
		zap.String("extension", b.Name()),
		zap.String("version", b.Version()),
		zap.Int("paths", len(aliased)),
		zap.Int("symbols", pub.Len()),
	)
	return pub, nil
}
