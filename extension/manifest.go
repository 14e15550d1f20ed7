package extension

import (
	"bytes"
	"encoding/json"
	"io"

	"github.com/synapsehq/extension-host/errors"
	"github.com/synapsehq/extension-host/registry"
)

// ManifestSection is the custom section holding the export manifest.
const ManifestSection = "synapse-manifest"

// SymbolKind classifies a manifest symbol.
type SymbolKind string

const (
	SymbolFunc        SymbolKind = "func"
	SymbolConstString SymbolKind = "const-string"
	SymbolConstI64    SymbolKind = "const-i64"
	SymbolConstF64    SymbolKind = "const-f64"
)

// SymbolSpec declares one public symbol.
type SymbolSpec struct {
	Name string `json:"name"`
	// Export is the wasm export backing a func symbol. Defaults to Name.
	Export string     `json:"export,omitempty"`
	Kind   SymbolKind `json:"kind"`
	// Value carries the literal for const symbols.
	Value string `json:"value,omitempty"`
	Doc   string `json:"doc,omitempty"`
}

// NamespaceSpec declares one sub-namespace and its symbols.
type NamespaceSpec struct {
	Name string `json:"name"`
	// Reexport marks the namespace for wildcard re-export into the
	// public namespace at bootstrap.
	Reexport bool         `json:"reexport,omitempty"`
	Symbols  []SymbolSpec `json:"symbols"`
}

// Manifest is the explicit export contract of an extension binary.
type Manifest struct {
	Name    string `json:"name"`
	Version string `json:"version,omitempty"`
	// Symbols are top-level bindings published directly into the
	// public namespace.
	Symbols    []SymbolSpec    `json:"symbols,omitempty"`
	Namespaces []NamespaceSpec `json:"namespaces,omitempty"`
}

// ParseManifest parses and validates a JSON manifest.
func ParseManifest(data []byte) (*Manifest, error) {
	var m Manifest
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, errors.Manifest("decode manifest", err)
	}
	if err := m.Validate(); err != nil {
		return nil, err
	}
	return &m, nil
}

// Validate checks the manifest for structural problems.
func (m *Manifest) Validate() error {
	if m.Name == "" {
		return errors.Manifest("extension name is required", nil)
	}
	if err := validIdent(m.Name); err != nil {
		return errors.Manifest("invalid extension name", err)
	}
	if m.Version != "" {
		if _, ok := registry.ParseVersion(m.Version); !ok {
			return errors.New(errors.PhaseManifest, errors.KindInvalidData).
				Detail("malformed version %q", m.Version).
				Build()
		}
	}

	if err := validateSymbols("", m.Symbols); err != nil {
		return err
	}

	seen := make(map[string]bool, len(m.Namespaces))
	for _, ns := range m.Namespaces {
		if err := validIdent(ns.Name); err != nil {
			return errors.Manifest("invalid namespace name", err)
		}
		if seen[ns.Name] {
			return errors.New(errors.PhaseManifest, errors.KindInvalidData).
				Detail("duplicate namespace %q", ns.Name).
				Build()
		}
		seen[ns.Name] = true
		if err := validateSymbols(ns.Name, ns.Symbols); err != nil {
			return err
		}
	}
	return nil
}

// validIdent requires a single unversioned path segment.
func validIdent(name string) error {
	p, err := registry.ParsePath(name)
	if err != nil {
		return err
	}
	if len(p.Segments()) != 1 || p.Version() != nil {
		return errors.InvalidPath(name, "must be a single identifier")
	}
	return nil
}

func validateSymbols(namespace string, symbols []SymbolSpec) error {
	seen := make(map[string]bool, len(symbols))
	for _, s := range symbols {
		if s.Name == "" {
			return errors.New(errors.PhaseManifest, errors.KindInvalidData).
				Path(namespace).
				Detail("symbol name is required").
				Build()
		}
		if seen[s.Name] {
			return errors.New(errors.PhaseManifest, errors.KindInvalidData).
				Path(namespace).
				Symbol(s.Name).
				Detail("duplicate symbol").
				Build()
		}
		seen[s.Name] = true

		switch s.Kind {
		case SymbolFunc:
		case SymbolConstString, SymbolConstI64, SymbolConstF64:
			if s.Value == "" {
				return errors.New(errors.PhaseManifest, errors.KindInvalidData).
					Path(namespace).
					Symbol(s.Name).
					Detail("const symbol requires a value").
					Build()
			}
		default:
			return errors.New(errors.PhaseManifest, errors.KindInvalidData).
				Path(namespace).
				Symbol(s.Name).
				Detail("unknown symbol kind %q", s.Kind).
				Build()
		}
	}
	return nil
}

// ExtractManifest reads the manifest from the binary's custom section.
func ExtractManifest(wasmBytes []byte) (*Manifest, error) {
	payload, found, err := customSection(wasmBytes, ManifestSection)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, errors.New(errors.PhaseManifest, errors.KindNotFound).
			Detail("no %q custom section", ManifestSection).
			Build()
	}
	return ParseManifest(payload)
}

var wasmMagic = []byte{0x00, 0x61, 0x73, 0x6d}

// customSection returns the payload of the first custom section named
// name. Non-custom sections are skipped without decoding.
func customSection(b []byte, name string) ([]byte, bool, error) {
	r := bytes.NewReader(b)

	var header [8]byte // magic + version
	if _, err := io.ReadFull(r, header[:]); err != nil {
		return nil, false, errors.Manifest("truncated wasm header", err)
	}
	if !bytes.Equal(header[:4], wasmMagic) {
		return nil, false, errors.Manifest("not a wasm binary", nil)
	}

	for {
		id, err := r.ReadByte()
		if err == io.EOF {
			return nil, false, nil
		}
		if err != nil {
			return nil, false, errors.Manifest("section id", err)
		}

		size, err := readLEB128u(r)
		if err != nil {
			return nil, false, errors.Manifest("section size", err)
		}
		// Bound the allocation by the input before trusting the
		// declared size.
		if int64(size) > int64(r.Len()) {
			return nil, false, errors.Manifest("section size exceeds input", nil)
		}
		payload := make([]byte, size)
		if _, err := io.ReadFull(r, payload); err != nil {
			return nil, false, errors.Manifest("section payload", err)
		}

		if id != 0 {
			continue
		}

		pr := bytes.NewReader(payload)
		nameLen, err := readLEB128u(pr)
		if err != nil {
			return nil, false, errors.Manifest("custom section name length", err)
		}
		if int64(nameLen) > int64(pr.Len()) {
			return nil, false, errors.Manifest("name length exceeds section", nil)
		}
		sectionName := make([]byte, nameLen)
		if _, err := io.ReadFull(pr, sectionName); err != nil {
			return nil, false, errors.Manifest("custom section name", err)
		}
		if string(sectionName) != name {
			continue
		}

		data, err := io.ReadAll(pr)
		if err != nil {
			return nil, false, errors.Manifest("custom section data", err)
		}
		return data, true, nil
	}
}

// readLEB128u reads an unsigned 32-bit LEB128 value
func readLEB128u(r io.ByteReader) (uint32, error) {
	var result uint32
	var shift uint
	for {
		b, err := r.ReadByte()
		if err != nil {
			return 0, err
		}
		result |= uint32(b&0x7f) << shift
		if b&0x80 == 0 {
			return result, nil
		}
		shift += 7
		if shift >= 35 {
			return 0, errors.Manifest("leb128 overflow", nil)
		}
	}
}
