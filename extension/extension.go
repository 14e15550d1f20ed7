package extension

import (
	"context"
	"strconv"

	"github.com/google/uuid"
	"github.com/tetratelabs/wazero"
	"github.com/tetratelabs/wazero/api"
	"go.uber.org/zap"

	"github.com/synapsehq/extension-host/errors"
	"github.com/synapsehq/extension-host/namespace"
)

// Func is a callable symbol backed by a wasm export.
type Func struct {
	fn   api.Function
	name string
}

// Name returns the symbol name.
func (f *Func) Name() string { return f.name }

// Arity returns the export's parameter and result counts.
func (f *Func) Arity() (params, results int) {
	def := f.fn.Definition()
	return len(def.ParamTypes()), len(def.ResultTypes())
}

// Call invokes the export. Params and results are raw wasm stack
// values per the core value convention.
func (f *Func) Call(ctx context.Context, params ...uint64) ([]uint64, error) {
	results, err := f.fn.Call(ctx, params...)
	if err != nil {
		return nil, errors.New(errors.PhaseCall, errors.KindInvalidData).
			Symbol(f.name).
			Detail("call failed").
			Cause(err).
			Build()
	}
	return results, nil
}

// Options configures extension loading.
type Options struct {
	// Manifest overrides the binary's embedded manifest.
	Manifest *Manifest
	// InstanceName names the wazero instance. Empty means anonymous,
	// allowing parallel instantiation of the same binary.
	InstanceName string
}

// Extension is a loaded, instantiated extension binary.
type Extension struct {
	manifest  *Manifest
	module    api.Module
	root      *namespace.Namespace
	id        string
	spaces    []*namespace.Namespace
	reexports []*namespace.Namespace
}

// Load compiles and instantiates an extension binary, then binds every
// manifest symbol. A manifest entry naming a missing wasm export fails
// the load; nothing of the partially bound extension survives.
func Load(ctx context.Context, eng *Engine, wasmBytes []byte, opts Options) (*Extension, error) {
	manifest := opts.Manifest
	if manifest == nil {
		var err error
		manifest, err = ExtractManifest(wasmBytes)
		if err != nil {
			return nil, err
		}
	} else if err := manifest.Validate(); err != nil {
		return nil, err
	}

	compiled, err := eng.Compile(ctx, wasmBytes)
	if err != nil {
		return nil, err
	}

	modConfig := wazero.NewModuleConfig().WithName(opts.InstanceName)
	instance, err := eng.Runtime().InstantiateModule(ctx, compiled, modConfig)
	if err != nil {
		return nil, errors.Instantiation(err)
	}

	ext := &Extension{
		id:       uuid.NewString(),
		manifest: manifest,
		module:   instance,
	}

	fail := func(err error) (*Extension, error) {
		_ = instance.Close(ctx)
		return nil, err
	}

	ext.root = namespace.New(manifest.Name)
	if err := bindSymbols(ext.root, instance, manifest.Symbols); err != nil {
		return fail(err)
	}
	ext.root.Freeze()

	for _, spec := range manifest.Namespaces {
		ns := namespace.New(spec.Name)
		if err := bindSymbols(ns, instance, spec.Symbols); err != nil {
			return fail(err)
		}
		ns.Freeze()
		ext.spaces = append(ext.spaces, ns)
		if spec.Reexport {
			ext.reexports = append(ext.reexports, ns)
		}
	}

	Logger().Info("extension loaded",
		zap.String("extension", manifest.Name),
		zap.String("version", manifest.Version),
		zap.String("id", ext.id),
		zap.Int("namespaces", len(ext.spaces)),
	)
	return ext, nil
}

// bindSymbols binds each manifest symbol into ns.
func bindSymbols(ns *namespace.Namespace, mod api.Module, symbols []SymbolSpec) error {
	for _, s := range symbols {
		value, err := symbolValue(mod, s)
		if err != nil {
			return err
		}
		if err := ns.Bind(s.Name, value); err != nil {
			return err
		}
	}
	return nil
}

func symbolValue(mod api.Module, s SymbolSpec) (any, error) {
	switch s.Kind {
	case SymbolFunc:
		export := s.Export
		if export == "" {
			export = s.Name
		}
		fn := mod.ExportedFunction(export)
		if fn == nil {
			return nil, errors.New(errors.PhaseLoad, errors.KindMissingSymbol).
				Symbol(s.Name).
				Detail("export %q not found", export).
				Build()
		}
		return &Func{name: s.Name, fn: fn}, nil

	case SymbolConstString:
		return s.Value, nil

	case SymbolConstI64:
		n, err := strconv.ParseInt(s.Value, 10, 64)
		if err != nil {
			return nil, errors.Manifest("parse const-i64 "+strconv.Quote(s.Name), err)
		}
		return n, nil

	case SymbolConstF64:
		f, err := strconv.ParseFloat(s.Value, 64)
		if err != nil {
			return nil, errors.Manifest("parse const-f64 "+strconv.Quote(s.Name), err)
		}
		return f, nil

	default:
		return nil, errors.Manifest("unknown symbol kind "+string(s.Kind), nil)
	}
}

// ID returns the unique instance ID.
func (e *Extension) ID() string { return e.id }

// Name returns the extension's package name.
func (e *Extension) Name() string { return e.manifest.Name }

// Version returns the manifest version, or "".
func (e *Extension) Version() string { return e.manifest.Version }

// Manifest returns the export contract.
func (e *Extension) Manifest() *Manifest { return e.manifest }

// Root returns the extension's top-level namespace.
func (e *Extension) Root() *namespace.Namespace { return e.root }

// Namespaces returns the sub-namespaces in manifest order.
func (e *Extension) Namespaces() []*namespace.Namespace { return e.spaces }

// Reexports returns the sub-namespaces flagged for wildcard re-export.
func (e *Extension) Reexports() []*namespace.Namespace { return e.reexports }

// Module returns the underlying wazero instance.
func (e *Extension) Module() api.Module { return e.module }

// Close releases the extension instance.
func (e *Extension) Close(ctx context.Context) error {
	return e.module.Close(ctx)
}
