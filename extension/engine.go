package extension

import (
	"context"

	"github.com/tetratelabs/wazero"

	"github.com/synapsehq/extension-host/errors"
)

// EngineConfig holds configuration for engine creation
type EngineConfig struct {
	// MemoryLimitPages sets the maximum memory per instance in pages
	// (64KB each). 0 means the wazero default.
	MemoryLimitPages uint32
}

// Engine wraps a wazero runtime. One engine may serve many extensions;
// all of them must be closed before the engine.
type Engine struct {
	runtime wazero.Runtime
}

// NewEngine creates an engine with default configuration
func NewEngine(ctx context.Context) (*Engine, error) {
	return NewEngineWithConfig(ctx, nil)
}

// NewEngineWithConfig creates an engine with custom configuration
func NewEngineWithConfig(ctx context.Context, cfg *EngineConfig) (*Engine, error) {
	runtimeCfg := wazero.NewRuntimeConfig()

	if cfg != nil && cfg.MemoryLimitPages > 0 {
		runtimeCfg = runtimeCfg.WithMemoryLimitPages(cfg.MemoryLimitPages)
	}

	return &Engine{runtime: wazero.NewRuntimeWithConfig(ctx, runtimeCfg)}, nil
}

// Runtime returns the underlying wazero runtime.
func (e *Engine) Runtime() wazero.Runtime {
	return e.runtime
}

// Compile compiles an extension binary without instantiating it.
func (e *Engine) Compile(ctx context.Context, wasmBytes []byte) (wazero.CompiledModule, error) {
	compiled, err := e.runtime.CompileModule(ctx, wasmBytes)
	if err != nil {
		return nil, errors.Load("compile extension", err)
	}
	return compiled, nil
}

// Close releases all engine resources.
// All extensions must be closed before calling this.
func (e *Engine) Close(ctx context.Context) error {
	return e.runtime.Close(ctx)
}
