package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"go.uber.org/zap"
	"golang.org/x/term"

	"github.com/synapsehq/extension-host/extension"
	"github.com/synapsehq/extension-host/loader"
	"github.com/synapsehq/extension-host/registry"
)

var (
	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4")).
			Padding(0, 1)

	nsStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("#87CEEB"))

	symStyle = lipgloss.NewStyle().
		Foreground(lipgloss.Color("#98FB98"))

	kindStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#666666"))
)

func main() {
	var (
		wasmFile     = flag.String("wasm", "", "Path to extension wasm file")
		manifestFile = flag.String("manifest", "", "Sidecar manifest (default: embedded section)")
		configFile   = flag.String("config", "", "YAML host config listing extensions")
		list         = flag.Bool("list", false, "List namespaces and symbols, then exit")
		call         = flag.String("call", "", "Symbol to call (name or namespace.name)")
		argsStr      = flag.String("args", "", "Call arguments (comma-separated u64 values)")
		interactive  = flag.Bool("i", false, "Interactive mode with TUI")
		verbose      = flag.Bool("v", false, "Verbose logging")
	)
	flag.Parse()

	if *wasmFile == "" && *configFile == "" {
		fmt.Fprintln(os.Stderr, "Usage: inspect -wasm <file.wasm> [-manifest m.json] [-list] [-call sym -args 1,2]")
		fmt.Fprintln(os.Stderr, "       inspect -wasm <file.wasm> -i  (interactive mode)")
		fmt.Fprintln(os.Stderr, "       inspect -config <host.yaml> -list")
		os.Exit(1)
	}

	if *verbose {
		log, err := zap.NewDevelopment()
		if err == nil {
			registry.SetLogger(log)
			loader.SetLogger(log)
			extension.SetLogger(log)
		}
	}

	if !term.IsTerminal(int(os.Stdout.Fd())) {
		plain := lipgloss.NewStyle()
		headerStyle, nsStyle, symStyle, kindStyle = plain, plain, plain, plain
	}

	if *interactive {
		if err := runInteractive(*wasmFile, *manifestFile); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		return
	}

	var err error
	if *configFile != "" {
		err = runConfig(*configFile, *list)
	} else {
		err = run(*wasmFile, *manifestFile, *call, *argsStr, *list)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// loadExtension loads one extension, preferring a sidecar manifest.
func loadExtension(ctx context.Context, eng *extension.Engine, wasmFile, manifestFile string) (*extension.Extension, error) {
	data, err := os.ReadFile(wasmFile)
	if err != nil {
		return nil, fmt.Errorf("read file: %w", err)
	}

	opts := extension.Options{}
	if manifestFile != "" {
		raw, err := os.ReadFile(manifestFile)
		if err != nil {
			return nil, fmt.Errorf("read manifest: %w", err)
		}
		opts.Manifest, err = extension.ParseManifest(raw)
		if err != nil {
			return nil, err
		}
	}

	return extension.Load(ctx, eng, data, opts)
}

func run(wasmFile, manifestFile, call, argsStr string, listOnly bool) error {
	ctx := context.Background()

	eng, err := extension.NewEngine(ctx)
	if err != nil {
		return err
	}
	defer eng.Close(ctx)

	ext, err := loadExtension(ctx, eng, wasmFile, manifestFile)
	if err != nil {
		return err
	}
	defer ext.Close(ctx)

	reg := registry.New(registry.DefaultOptions())
	ld := loader.New(reg, loader.NewHookSet(), loader.DefaultOptions())

	pub, err := ld.Bootstrap(ext)
	if err != nil {
		return err
	}

	fmt.Println(headerStyle.Render("Extension"), ext.Name(), ext.Version())
	fmt.Printf("Instance: %s\n", ext.ID())

	printNamespace(ext.Root(), "(root)")
	for _, ns := range ext.Namespaces() {
		printNamespace(ns, ns.Name())
	}

	fmt.Println()
	fmt.Println(headerStyle.Render("Virtual paths"))
	for _, path := range reg.Paths() {
		fmt.Printf("  %s\n", nsStyle.Render(path))
	}

	if listOnly || call == "" {
		return nil
	}

	return callSymbol(ctx, pub, ext, call, argsStr)
}

func printNamespace(ns interface {
	Public() []string
	Lookup(string) (any, bool)
}, label string) {
	fmt.Println()
	fmt.Println(nsStyle.Render(label))
	for _, name := range ns.Public() {
		v, _ := ns.Lookup(name)
		fmt.Printf("  %s %s\n", symStyle.Render(name), kindStyle.Render(describe(v)))
	}
}

func describe(v any) string {
	switch t := v.(type) {
	case *extension.Func:
		params, results := t.Arity()
		return fmt.Sprintf("func/%d -> %d", params, results)
	case string:
		return fmt.Sprintf("const %q", t)
	case int64:
		return fmt.Sprintf("const %d", t)
	case float64:
		return fmt.Sprintf("const %g", t)
	default:
		return fmt.Sprintf("%T", v)
	}
}

// callSymbol resolves "name" in the public namespace or
// "namespace.name" in the extension's sub-namespaces and calls it.
func callSymbol(ctx context.Context, pub interface {
	Lookup(string) (any, bool)
}, ext *extension.Extension, symbol, argsStr string) error {
	source := pub
	name := symbol
	if idx := strings.LastIndex(symbol, "."); idx >= 0 {
		nsName := symbol[:idx]
		name = symbol[idx+1:]
		found := false
		for _, ns := range ext.Namespaces() {
			if ns.Name() == nsName {
				source = ns
				found = true
				break
			}
		}
		if !found {
			return fmt.Errorf("namespace %q not found", nsName)
		}
	}

	v, ok := source.Lookup(name)
	if !ok {
		return fmt.Errorf("symbol %q not found", name)
	}
	fn, ok := v.(*extension.Func)
	if !ok {
		fmt.Printf("%s = %v\n", symbol, v)
		return nil
	}

	var params []uint64
	if argsStr != "" {
		for _, part := range strings.Split(argsStr, ",") {
			n, err := strconv.ParseUint(strings.TrimSpace(part), 10, 64)
			if err != nil {
				return fmt.Errorf("bad argument %q: %w", part, err)
			}
			params = append(params, n)
		}
	}

	results, err := fn.Call(ctx, params...)
	if err != nil {
		return err
	}
	fmt.Printf("%s(%s) = %v\n", symbol, argsStr, results)
	return nil
}

// runConfig loads every extension from a host config file.
func runConfig(configFile string, listOnly bool) error {
	ctx := context.Background()

	cfg, err := loader.LoadConfig(configFile)
	if err != nil {
		return err
	}

	eng, err := extension.NewEngine(ctx)
	if err != nil {
		return err
	}
	defer eng.Close(ctx)

	reg := registry.New(cfg.RegistryOptions())
	ld := loader.New(reg, loader.NewHookSet(), cfg.LoaderOptions())

	for _, entry := range cfg.Extensions {
		ext, err := loadExtension(ctx, eng, entry.Path, entry.Manifest)
		if err != nil {
			return fmt.Errorf("%s: %w", entry.Path, err)
		}
		defer ext.Close(ctx)

		pub, err := ld.Bootstrap(ext)
		if err != nil {
			return fmt.Errorf("%s: %w", entry.Path, err)
		}
		fmt.Println(headerStyle.Render(ext.Name()), ext.Version(),
			kindStyle.Render(fmt.Sprintf("%d symbols", pub.Len())))
	}

	if listOnly {
		fmt.Println()
		fmt.Println(headerStyle.Render("Virtual paths"))
		for _, path := range reg.Paths() {
			fmt.Printf("  %s\n", nsStyle.Render(path))
		}
	}
	return nil
}
