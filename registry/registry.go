package registry

import (
	"strings"
	"sync"

	"go.uber.org/zap"

	extensionhost "github.com/synapsehq/extension-host"
	"github.com/synapsehq/extension-host/errors"
)

// DuplicatePolicy controls what happens when a path is re-aliased to a
// different object.
type DuplicatePolicy uint8

const (
	// DuplicateOverwrite replaces the existing entry and logs a warning.
	DuplicateOverwrite DuplicatePolicy = iota
	// DuplicateReject fails the Alias call and leaves the registry unchanged.
	DuplicateReject
)

// Options configures registry behavior.
type Options struct {
	OnDuplicate    DuplicatePolicy
	SemverMatching bool
}

// DefaultOptions returns default registry configuration.
func DefaultOptions() Options {
	return Options{
		OnDuplicate:    DuplicateOverwrite,
		SemverMatching: true,
	}
}

// Registry maps dotted virtual paths to module namespaces.
// Thread-safe.
type Registry struct {
	entries   map[string]extensionhost.Symbols
	observers []Observer
	options   Options
	mu        sync.RWMutex
	obsMu     sync.RWMutex
}

// New creates a registry with the given options.
func New(opts Options) *Registry {
	return &Registry{
		entries: make(map[string]extensionhost.Symbols),
		options: opts,
	}
}

// Options returns the configuration.
func (r *Registry) Options() Options {
	return r.options
}

// Alias inserts mod under path. Subsequent resolutions of path return
// exactly mod. Re-aliasing to the same object is a no-op; re-aliasing
// to a different object follows Options.OnDuplicate.
func (r *Registry) Alias(path string, mod extensionhost.Symbols) error {
	p, err := ParsePath(path)
	if err != nil {
		return err
	}
	if mod == nil {
		return errors.NilModule(path)
	}
	key := p.String()

	r.mu.Lock()
	prev, exists := r.entries[key]
	if exists && prev == mod {
		r.mu.Unlock()
		return nil
	}
	if exists && r.options.OnDuplicate == DuplicateReject {
		r.mu.Unlock()
		return errors.DuplicateAlias(key)
	}
	r.entries[key] = mod
	r.mu.Unlock()

	if exists {
		Logger().Warn("alias overwritten",
			zap.String("path", key),
			zap.String("previous", prev.Name()),
			zap.String("module", mod.Name()),
		)
		r.notify(Event{Type: EventReplaced, Path: key, Module: mod, Previous: prev})
		return nil
	}

	r.notify(Event{Type: EventAliased, Path: key, Module: mod})
	return nil
}

// Resolve returns the module aliased under path. An exact entry wins;
// for versioned paths with no exact entry and SemverMatching enabled,
// the highest compatible aliased version is returned.
func (r *Registry) Resolve(path string) (extensionhost.Symbols, bool) {
	p, err := ParsePath(path)
	if err != nil {
		return nil, false
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	if mod, ok := r.entries[p.String()]; ok {
		return mod, true
	}

	if p.Version() == nil || !r.options.SemverMatching {
		return nil, false
	}

	// Highest compatible version with the same base path.
	prefix := p.Base() + "@"
	want := *p.Version()
	var best extensionhost.Symbols
	var bestVersion Version
	for key, mod := range r.entries {
		if !strings.HasPrefix(key, prefix) {
			continue
		}
		v, ok := ParseVersion(key[len(prefix):])
		if !ok || !v.Compatible(want) {
			continue
		}
		if best == nil || v.Newer(bestVersion) {
			best = mod
			bestVersion = v
		}
	}
	if best == nil {
		return nil, false
	}
	return best, true
}

// Get returns the exact entry for path with no version fallback.
func (r *Registry) Get(path string) (extensionhost.Symbols, bool) {
	p, err := ParsePath(path)
	if err != nil {
		return nil, false
	}

	r.mu.RLock()
	defer r.mu.RUnlock()
	mod, ok := r.entries[p.String()]
	return mod, ok
}

// Remove deletes the entry for path. It returns true when an entry was
// removed.
func (r *Registry) Remove(path string) bool {
	p, err := ParsePath(path)
	if err != nil {
		return false
	}
	key := p.String()

	r.mu.Lock()
	mod, ok := r.entries[key]
	if ok {
		delete(r.entries, key)
	}
	r.mu.Unlock()

	if ok {
		r.notify(Event{Type: EventRemoved, Path: key, Module: mod})
	}
	return ok
}

// Paths returns all registered paths. Order is unspecified.
func (r *Registry) Paths() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]string, 0, len(r.entries))
	for key := range r.entries {
		out = append(out, key)
	}
	return out
}

// Len returns the number of registered paths.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.entries)
}

// Subscribe adds an observer for lifecycle events.
func (r *Registry) Subscribe(o Observer) {
	r.obsMu.Lock()
	defer r.obsMu.Unlock()
	r.observers = append(r.observers, o)
}

// Unsubscribe removes an observer.
func (r *Registry) Unsubscribe(o Observer) {
	r.obsMu.Lock()
	defer r.obsMu.Unlock()
	for i, obs := range r.observers {
		if obs == o {
			r.observers = append(r.observers[:i], r.observers[i+1:]...)
			return
		}
	}
}

func (r *Registry) notify(e Event) {
	r.obsMu.RLock()
	observers := make([]Observer, len(r.observers))
	copy(observers, r.observers)
	r.obsMu.RUnlock()

	for _, o := range observers {
		o.OnRegistryEvent(e)
	}
}
