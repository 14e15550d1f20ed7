package loader

import (
	extensionhost "github.com/synapsehq/extension-host"
	"github.com/synapsehq/extension-host/errors"
	"github.com/synapsehq/extension-host/namespace"
)

// Reexport copies bindings from src into dst. With no names the whole
// declared public list of src is copied. Bindings keep reference
// semantics: dst and src denote the same underlying objects until one
// side rebinds.
//
// Reexport is atomic: every requested name is resolved before anything
// is bound, and a missing name fails with a missing_symbol error naming
// the first absent symbol in request order, leaving dst untouched.
func Reexport(dst *namespace.Namespace, src extensionhost.Symbols, names ...string) error {
	if len(names) == 0 {
		names = src.Public()
	}

	values := make([]any, len(names))
	for i, name := range names {
		v, ok := src.Lookup(name)
		if !ok {
			return errors.MissingSymbol(errors.PhaseReexport, name)
		}
		values[i] = v
	}

	for i, name := range names {
		if err := dst.Bind(name, values[i]); err != nil {
			return err
		}
	}
	return nil
}
