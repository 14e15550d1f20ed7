package registry

import (
	"strconv"
	"strings"

	"github.com/synapsehq/extension-host/errors"
)

// Version is a parsed alias version suffix (major.minor.patch).
type Version struct {
	Major uint32
	Minor uint32
	Patch uint32
}

// ParseVersion reads "0.2.0" or the shorter forms "0.2" and "0".
// Omitted components are zero.
func ParseVersion(s string) (Version, bool) {
	parts := strings.Split(s, ".")
	if s == "" || len(parts) > 3 {
		return Version{}, false
	}

	var nums [3]uint32
	for i, p := range parts {
		n, ok := parseComponent(p)
		if !ok {
			return Version{}, false
		}
		nums[i] = n
	}
	return Version{Major: nums[0], Minor: nums[1], Patch: nums[2]}, true
}

// parseComponent reads a decimal component, rejecting empty strings,
// non-digits, and values that do not fit in uint32.
func parseComponent(p string) (uint32, bool) {
	if p == "" {
		return 0, false
	}
	var n uint32
	for _, c := range p {
		if c < '0' || c > '9' {
			return 0, false
		}
		if n > (1<<32-1)/10 || (n == (1<<32-1)/10 && c > '5') {
			return 0, false
		}
		n = n*10 + uint32(c-'0')
	}
	return n, true
}

// Compatible reports whether v satisfies a request for want: same
// major, at least as new within it.
func (v Version) Compatible(want Version) bool {
	if v.Major != want.Major {
		return false
	}
	if v.Minor != want.Minor {
		return v.Minor > want.Minor
	}
	return v.Patch >= want.Patch
}

// Newer reports whether v is strictly newer than other.
func (v Version) Newer(other Version) bool {
	if v.Major != other.Major {
		return v.Major > other.Major
	}
	if v.Minor != other.Minor {
		return v.Minor > other.Minor
	}
	return v.Patch > other.Patch
}

// String formats the version as "major.minor.patch".
func (v Version) String() string {
	return strconv.FormatUint(uint64(v.Major), 10) + "." +
		strconv.FormatUint(uint64(v.Minor), 10) + "." +
		strconv.FormatUint(uint64(v.Patch), 10)
}

// Path is a validated dotted virtual path with an optional version
// suffix on the final segment.
type Path struct {
	segments []string
	version  *Version
}

// ParsePath validates and parses a dotted path like
// "synapse.data_types" or "synapse.data_types@0.2.0".
func ParsePath(s string) (Path, error) {
	if s == "" {
		return Path{}, errors.InvalidPath(s, "empty path")
	}

	base := s
	var version *Version
	if idx := strings.LastIndex(s, "@"); idx >= 0 {
		v, ok := ParseVersion(s[idx+1:])
		if !ok {
			return Path{}, errors.InvalidPath(s, "malformed version suffix")
		}
		version = &v
		base = s[:idx]
	}

	segments := strings.Split(base, ".")
	for i, seg := range segments {
		if !validSegment(seg) {
			if seg == "" {
				return Path{}, errors.InvalidPath(s, "empty path segment")
			}
			return Path{}, errors.New(errors.PhaseAlias, errors.KindInvalidPath).
				Path(s).
				Detail("invalid segment %q at position %d", seg, i).
				Build()
		}
	}

	return Path{segments: segments, version: version}, nil
}

// validSegment reports whether seg is a valid path segment:
// an identifier starting with a letter or underscore, followed by
// letters, digits, underscores or hyphens.
func validSegment(seg string) bool {
	if seg == "" {
		return false
	}
	for i, c := range seg {
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

// String returns the canonical path form, including the version suffix
// when present.
func (p Path) String() string {
	base := strings.Join(p.segments, ".")
	if p.version != nil {
		return base + "@" + p.version.String()
	}
	return base
}

// Base returns the path without its version suffix.
func (p Path) Base() string {
	return strings.Join(p.segments, ".")
}

// Version returns the path's version, or nil if unversioned.
func (p Path) Version() *Version {
	return p.version
}

// Segments returns the path's identifier segments.
func (p Path) Segments() []string {
	out := make([]string, len(p.segments))
	copy(out, p.segments)
	return out
}

// WithVersion returns a copy of p carrying the given version.
func (p Path) WithVersion(v Version) Path {
	return Path{segments: p.segments, version: &v}
}
