package namespace

import (
	"sync"

	extensionhost "github.com/synapsehq/extension-host"
	"github.com/synapsehq/extension-host/errors"
)

// Namespace is an ordered, named collection of public bindings.
// It implements the extensionhost.Symbols contract.
type Namespace struct {
	name     string
	bindings map[string]any
	order    []string
	frozen   bool
	mu       sync.RWMutex
}

var _ extensionhost.Symbols = (*Namespace)(nil)

// New creates an empty namespace with the given name.
func New(name string) *Namespace {
	return &Namespace{
		name:     name,
		bindings: make(map[string]any),
	}
}

// Name returns the namespace name.
func (n *Namespace) Name() string {
	return n.name
}

// Bind associates name with value. The first bind of a name appends it
// to the public order; rebinding keeps the original position. Binding
// into a frozen namespace fails.
func (n *Namespace) Bind(name string, value any) error {
	if !validName(name) {
		return errors.New(errors.PhaseReexport, errors.KindInvalidInput).
			Symbol(name).
			Detail("invalid symbol name").
			Build()
	}

	n.mu.Lock()
	defer n.mu.Unlock()

	if n.frozen {
		return errors.Frozen(n.name)
	}
	if _, exists := n.bindings[name]; !exists {
		n.order = append(n.order, name)
	}
	n.bindings[name] = value
	return nil
}

// Lookup returns the binding for name. The returned value is the bound
// object itself, never a copy.
func (n *Namespace) Lookup(name string) (any, bool) {
	n.mu.RLock()
	defer n.mu.RUnlock()
	v, ok := n.bindings[name]
	return v, ok
}

// Public returns the bound names in declaration order.
func (n *Namespace) Public() []string {
	n.mu.RLock()
	defer n.mu.RUnlock()
	out := make([]string, len(n.order))
	copy(out, n.order)
	return out
}

// Len returns the number of bindings.
func (n *Namespace) Len() int {
	n.mu.RLock()
	defer n.mu.RUnlock()
	return len(n.bindings)
}

// Freeze makes the namespace immutable. There is no unfreeze.
func (n *Namespace) Freeze() {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.frozen = true
}

// Frozen reports whether the namespace is frozen.
func (n *Namespace) Frozen() bool {
	n.mu.RLock()
	defer n.mu.RUnlock()
	return n.frozen
}

// validName reports whether name is a valid symbol name: an identifier
// starting with a letter or underscore, followed by letters, digits,
// underscores or hyphens.
func validName(name string) bool {
	if name == "" {
		return false
	}
	for i, c := range name {
		switch {
		case c >= 'a' && c <= 'z':
		case c >= 'A' && c <= 'Z':
		case c == '_':
		case c >= '0' && c <= '9':
			if i == 0 {
				return false
			}
		case c == '-':
			if i == 0 {
				return false
			}
		default:
			return false
		}
	}
	return true
}
