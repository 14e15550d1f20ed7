package loader

import (
	"sync"

	"go.uber.org/zap"

	extensionhost "github.com/synapsehq/extension-host"
	"github.com/synapsehq/extension-host/errors"
)

// HookSet is an ordered chain of resolve hooks. Lookups walk the chain
// in install order; the first hook claiming a path wins.
// Thread-safe.
type HookSet struct {
	hooks  []extensionhost.ResolveHook
	sealed bool
	mu     sync.RWMutex
}

// NewHookSet creates an empty hook set.
func NewHookSet() *HookSet {
	return &HookSet{}
}

// Install registers h. Installing a hook whose name is already present
// is a no-op, even on a sealed set. Installing a new hook on a sealed
// set fails with a hook_install error.
func (hs *HookSet) Install(h extensionhost.ResolveHook) error {
	if h == nil {
		return errors.HookInstall("nil hook")
	}

	hs.mu.Lock()
	defer hs.mu.Unlock()

	for _, existing := range hs.hooks {
		if existing.Name() == h.Name() {
			return nil
		}
	}
	if hs.sealed {
		return errors.HookInstall("hook set is sealed")
	}

	hs.hooks = append(hs.hooks, h)
	Logger().Debug("hook installed", zap.String("hook", h.Name()))
	return nil
}

// Seal stops the set from accepting new hooks. Already installed hooks
// keep serving lookups. There is no unseal.
func (hs *HookSet) Seal() {
	hs.mu.Lock()
	defer hs.mu.Unlock()
	hs.sealed = true
}

// Sealed reports whether the set refuses new hooks.
func (hs *HookSet) Sealed() bool {
	hs.mu.RLock()
	defer hs.mu.RUnlock()
	return hs.sealed
}

// Installed reports whether a hook with the given name is present.
func (hs *HookSet) Installed(name string) bool {
	hs.mu.RLock()
	defer hs.mu.RUnlock()
	for _, h := range hs.hooks {
		if h.Name() == name {
			return true
		}
	}
	return false
}

// Len returns the number of installed hooks.
func (hs *HookSet) Len() int {
	hs.mu.RLock()
	defer hs.mu.RUnlock()
	return len(hs.hooks)
}

// Lookup resolves path through the hook chain.
func (hs *HookSet) Lookup(path string) (extensionhost.Symbols, bool) {
	hs.mu.RLock()
	hooks := make([]extensionhost.ResolveHook, len(hs.hooks))
	copy(hooks, hs.hooks)
	hs.mu.RUnlock()

	for _, h := range hooks {
		if mod, ok := h.Resolve(path); ok {
			return mod, true
		}
	}
	return nil, false
}
