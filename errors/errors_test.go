package errors

import (
	"errors"
	"strings"
	"testing"
)

func TestError_Error(t *testing.T) {
	tests := []struct {
		name     string
		err      *Error
		contains []string
	}{
		{
			name: "full error",
			err: &Error{
				Phase:  PhaseAlias,
				Kind:   KindDuplicateAlias,
				Path:   "synapse.data_types",
				Detail: "already aliased",
			},
			contains: []string{"[alias]", "duplicate_alias", "synapse.data_types", "already aliased"},
		},
		{
			name: "minimal error",
			err: &Error{
				Phase: PhaseInstall,
				Kind:  KindHookInstall,
			},
			contains: []string{"[install]", "hook_install"},
		},
		{
			name: "symbol error",
			err: &Error{
				Phase:  PhaseReexport,
				Kind:   KindMissingSymbol,
				Symbol: "Point",
			},
			contains: []string{"[reexport]", "missing_symbol", `"Point"`},
		},
		{
			name: "error with cause",
			err: &Error{
				Phase:  PhaseLoad,
				Kind:   KindInvalidData,
				Detail: "decode manifest",
				Cause:  errors.New("unexpected end of JSON input"),
			},
			contains: []string{"[load]", "invalid_data", "decode manifest", "caused by", "unexpected end"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			msg := tt.err.Error()
			for _, s := range tt.contains {
				if !strings.Contains(msg, s) {
					t.Errorf("error message %q does not contain %q", msg, s)
				}
			}
		})
	}
}

func TestError_Unwrap(t *testing.T) {
	cause := errors.New("root cause")
	err := &Error{
		Phase: PhaseLoad,
		Kind:  KindInvalidData,
		Cause: cause,
	}

	if !errors.Is(err, cause) {
		t.Error("errors.Is did not match wrapped cause")
	}
	if errors.Unwrap(err) != cause {
		t.Error("Unwrap did not return cause")
	}
}

func TestError_Is(t *testing.T) {
	a := MissingSymbol(PhaseReexport, "Point")
	b := MissingSymbol(PhaseReexport, "Vector")
	c := MissingSymbol(PhaseLoad, "Point")

	if !errors.Is(a, b) {
		t.Error("same phase and kind should match regardless of symbol")
	}
	if errors.Is(a, c) {
		t.Error("different phase should not match")
	}
	if errors.Is(a, errors.New("plain")) {
		t.Error("plain error should not match")
	}
}

func TestBuilder(t *testing.T) {
	err := New(PhaseAlias, KindInvalidPath).
		Path("synapse..data_types").
		Detail("empty segment at position %d", 1).
		Build()

	if err.Phase != PhaseAlias || err.Kind != KindInvalidPath {
		t.Fatalf("unexpected phase/kind: %v/%v", err.Phase, err.Kind)
	}
	if err.Path != "synapse..data_types" {
		t.Errorf("unexpected path %q", err.Path)
	}
	if err.Detail != "empty segment at position 1" {
		t.Errorf("unexpected detail %q", err.Detail)
	}
}

func TestConvenienceConstructors(t *testing.T) {
	if err := HookInstall("sealed"); err.Kind != KindHookInstall || err.Phase != PhaseInstall {
		t.Error("HookInstall kind/phase mismatch")
	}
	if err := MissingSymbol(PhaseReexport, "x"); err.Symbol != "x" {
		t.Error("MissingSymbol must name the symbol")
	}
	if err := DuplicateAlias("a.b"); err.Path != "a.b" {
		t.Error("DuplicateAlias must carry the path")
	}
	if err := NilModule("a.b"); err.Kind != KindNilModule {
		t.Error("NilModule kind mismatch")
	}
	cause := errors.New("boom")
	if err := Instantiation(cause); err.Unwrap() != cause {
		t.Error("Instantiation must wrap cause")
	}
}
