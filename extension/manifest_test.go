package extension

import (
	"testing"
)

func TestParseManifest(t *testing.T) {
	data := []byte(`{
		"name": "synapse",
		"version": "0.2.0",
		"symbols": [
			{"name": "runtime", "kind": "const-string", "value": "synapse"}
		],
		"namespaces": [
			{
				"name": "data_types",
				"reexport": true,
				"symbols": [
					{"name": "point-new", "kind": "func", "export": "point_new"},
					{"name": "vector-new", "kind": "func"}
				]
			}
		]
	}`)

	m, err := ParseManifest(data)
	if err != nil {
		t.Fatal(err)
	}
	if m.Name != "synapse" || m.Version != "0.2.0" {
		t.Fatalf("unexpected header: %s %s", m.Name, m.Version)
	}
	if len(m.Symbols) != 1 || m.Symbols[0].Kind != SymbolConstString {
		t.Fatal("top-level symbols not parsed")
	}
	if len(m.Namespaces) != 1 || !m.Namespaces[0].Reexport {
		t.Fatal("namespaces not parsed")
	}
	if m.Namespaces[0].Symbols[0].Export != "point_new" {
		t.Fatal("export override not parsed")
	}
}

func TestManifestValidate(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{"not json", `{`},
		{"missing name", `{"version": "1.0.0"}`},
		{"dotted name", `{"name": "a.b"}`},
		{"bad version", `{"name": "x", "version": "abc"}`},
		{
			"duplicate namespace",
			`{"name": "x", "namespaces": [{"name": "a", "symbols": []}, {"name": "a", "symbols": []}]}`,
		},
		{
			"duplicate symbol",
			`{"name": "x", "symbols": [{"name": "a", "kind": "func"}, {"name": "a", "kind": "func"}]}`,
		},
		{
			"unnamed symbol",
			`{"name": "x", "symbols": [{"kind": "func"}]}`,
		},
		{
			"const without value",
			`{"name": "x", "symbols": [{"name": "a", "kind": "const-i64"}]}`,
		},
		{
			"unknown kind",
			`{"name": "x", "symbols": [{"name": "a", "kind": "global"}]}`,
		},
		{
			"invalid namespace name",
			`{"name": "x", "namespaces": [{"name": "1bad", "symbols": []}]}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := ParseManifest([]byte(tt.data)); err == nil {
				t.Error("expected error")
			}
		})
	}
}

func TestExtractManifest(t *testing.T) {
	manifest := []byte(`{"name": "demo", "symbols": [{"name": "answer", "kind": "func"}]}`)
	bin := append(answerModule(t), customSectionBytes(ManifestSection, manifest)...)

	m, err := ExtractManifest(bin)
	if err != nil {
		t.Fatal(err)
	}
	if m.Name != "demo" {
		t.Fatalf("name = %q", m.Name)
	}
}

func TestExtractManifest_Missing(t *testing.T) {
	if _, err := ExtractManifest(answerModule(t)); err == nil {
		t.Fatal("expected error when section is absent")
	}

	// Other custom sections are skipped, not mistaken for the manifest.
	bin := append(answerModule(t), customSectionBytes("name", []byte("whatever"))...)
	if _, err := ExtractManifest(bin); err == nil {
		t.Fatal("expected error when only unrelated sections exist")
	}
}

func TestExtractManifest_Corrupt(t *testing.T) {
	tests := []struct {
		name string
		data []byte
	}{
		{"empty", nil},
		{"short header", []byte{0x00, 0x61}},
		{"bad magic", []byte{1, 2, 3, 4, 1, 0, 0, 0}},
		{"truncated section", append([]byte{0x00, 0x61, 0x73, 0x6d, 0x01, 0x00, 0x00, 0x00}, 0x00, 0x10, 0x01)},
		// Declared sizes far beyond the input must fail before any
		// allocation, not after.
		{"huge section size", append([]byte{0x00, 0x61, 0x73, 0x6d, 0x01, 0x00, 0x00, 0x00}, 0x00, 0xff, 0xff, 0xff, 0xff, 0x0f)},
		{"huge name length", append([]byte{0x00, 0x61, 0x73, 0x6d, 0x01, 0x00, 0x00, 0x00}, 0x00, 0x05, 0xff, 0xff, 0xff, 0xff, 0x0f)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := ExtractManifest(tt.data); err == nil {
				t.Error("expected error")
			}
		})
	}
}

// uleb encodes n as unsigned LEB128.
func uleb(n uint32) []byte {
	var out []byte
	for {
		b := byte(n & 0x7f)
		n >>= 7
		if n != 0 {
			b |= 0x80
		}
		out = append(out, b)
		if n == 0 {
			return out
		}
	}
}

// customSectionBytes encodes a wasm custom section.
func customSectionBytes(name string, data []byte) []byte {
	payload := uleb(uint32(len(name)))
	payload = append(payload, name...)
	payload = append(payload, data...)

	out := []byte{0x00}
	out = append(out, uleb(uint32(len(payload)))...)
	return append(out, payload...)
}
