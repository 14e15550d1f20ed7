package registry

import (
	"testing"
)

func TestParseVersion(t *testing.T) {
	tests := []struct {
		input  string
		want   Version
		wantOk bool
	}{
		{"0.2.0", Version{0, 2, 0}, true},
		{"1.0.0", Version{1, 0, 0}, true},
		{"0.2", Version{0, 2, 0}, true},
		{"1", Version{1, 0, 0}, true},
		{"10.20.30", Version{10, 20, 30}, true},
		{"", Version{}, false},
		{"abc", Version{}, false},
		{"1.2.3.4", Version{}, false},
		{"1.a.0", Version{}, false},
		{"4294967295", Version{4294967295, 0, 0}, true}, // max uint32
		{"4294967296", Version{}, false},                // overflow
		{"1..0", Version{}, false},                      // empty part
		{".1.0", Version{}, false},                      // leading dot
		{"1.0.", Version{}, false},                      // trailing dot
	}

	for _, tt := range tests {
		v, ok := ParseVersion(tt.input)
		if ok != tt.wantOk {
			t.Errorf("ParseVersion(%q) ok = %v, want %v", tt.input, ok, tt.wantOk)
		}
		if ok && v != tt.want {
			t.Errorf("ParseVersion(%q) = %v, want %v", tt.input, v, tt.want)
		}
	}
}

func TestVersionCompatible(t *testing.T) {
	tests := []struct {
		have   Version
		want   Version
		compat bool
	}{
		{Version{0, 2, 0}, Version{0, 2, 0}, true},  // exact match
		{Version{0, 2, 1}, Version{0, 2, 0}, true},  // patch higher
		{Version{0, 3, 0}, Version{0, 2, 0}, true},  // minor higher
		{Version{0, 1, 0}, Version{0, 2, 0}, false}, // minor lower
		{Version{1, 0, 0}, Version{0, 2, 0}, false}, // major different
		{Version{0, 2, 0}, Version{0, 2, 1}, false}, // patch lower
	}

	for _, tt := range tests {
		got := tt.have.Compatible(tt.want)
		if got != tt.compat {
			t.Errorf("%v.Compatible(%v) = %v, want %v", tt.have, tt.want, got, tt.compat)
		}
	}
}

func TestVersionNewer(t *testing.T) {
	tests := []struct {
		a, b  Version
		newer bool
	}{
		{Version{0, 2, 1}, Version{0, 2, 0}, true},
		{Version{0, 3, 0}, Version{0, 2, 9}, true},
		{Version{1, 0, 0}, Version{0, 9, 9}, true},
		{Version{0, 2, 0}, Version{0, 2, 0}, false},
		{Version{0, 2, 0}, Version{0, 2, 1}, false},
	}

	for _, tt := range tests {
		if got := tt.a.Newer(tt.b); got != tt.newer {
			t.Errorf("%v.Newer(%v) = %v, want %v", tt.a, tt.b, got, tt.newer)
		}
	}
}

func TestParsePath(t *testing.T) {
	tests := []struct {
		input    string
		wantOk   bool
		canon    string
		base     string
		segments int
	}{
		{"synapse", true, "synapse", "synapse", 1},
		{"synapse.data_types", true, "synapse.data_types", "synapse.data_types", 2},
		{"synapse.data_types@0.2.0", true, "synapse.data_types@0.2.0", "synapse.data_types", 2},
		{"synapse.data_types@0.2", true, "synapse.data_types@0.2.0", "synapse.data_types", 2},
		{"_internal.runtime", true, "_internal.runtime", "_internal.runtime", 2},
		{"a.b-c.d_e", true, "a.b-c.d_e", "a.b-c.d_e", 3},
		{"", false, "", "", 0},
		{".", false, "", "", 0},
		{"synapse.", false, "", "", 0},
		{".synapse", false, "", "", 0},
		{"synapse..data_types", false, "", "", 0},
		{"1synapse", false, "", "", 0},
		{"-synapse", false, "", "", 0},
		{"syn apse", false, "", "", 0},
		{"synapse.data_types@x.y", false, "", "", 0},
		{"synapse.data_types@", false, "", "", 0},
	}

	for _, tt := range tests {
		p, err := ParsePath(tt.input)
		if (err == nil) != tt.wantOk {
			t.Errorf("ParsePath(%q) err = %v, wantOk %v", tt.input, err, tt.wantOk)
			continue
		}
		if err != nil {
			continue
		}
		if p.String() != tt.canon {
			t.Errorf("ParsePath(%q).String() = %q, want %q", tt.input, p.String(), tt.canon)
		}
		if p.Base() != tt.base {
			t.Errorf("ParsePath(%q).Base() = %q, want %q", tt.input, p.Base(), tt.base)
		}
		if len(p.Segments()) != tt.segments {
			t.Errorf("ParsePath(%q) segments = %d, want %d", tt.input, len(p.Segments()), tt.segments)
		}
	}
}

func TestPathWithVersion(t *testing.T) {
	p, err := ParsePath("synapse.data_types")
	if err != nil {
		t.Fatal(err)
	}
	if p.Version() != nil {
		t.Fatal("unversioned path should have nil version")
	}

	v := p.WithVersion(Version{0, 2, 0})
	if v.String() != "synapse.data_types@0.2.0" {
		t.Errorf("WithVersion string = %q", v.String())
	}
	if p.Version() != nil {
		t.Error("WithVersion must not mutate the receiver")
	}
}
