// Package sifversion identifies SIF protocol revisions.
//
// A Version is an immutable, comparable value. Every version-conditional
// decision in the codec compares versions from this package.
package sifversion

import (
	"fmt"
	"strconv"
	"strings"

	siferrors "github.com/jacoelho/sif/errors"
)

// Version is a SIF protocol revision (major.minor, optional revision).
// The zero value is not a valid version; use IsZero to detect it.
type Version struct {
	major    uint8
	minor    uint8
	revision uint8
}

var (
	SIF10r1 = Version{1, 0, 1}
	SIF10r2 = Version{1, 0, 2}
	SIF11   = Version{1, 1, 0}
	SIF12   = Version{1, 2, 0}
	SIF15r1 = Version{1, 5, 1}
	SIF20   = Version{2, 0, 0}
	SIF20r1 = Version{2, 0, 1}
	SIF21   = Version{2, 1, 0}
	SIF22   = Version{2, 2, 0}
	SIF23   = Version{2, 3, 0}
	SIF24   = Version{2, 4, 0}
	SIF25   = Version{2, 5, 0}

	// Earliest is the oldest supported version.
	Earliest = SIF10r1
	// Latest is the newest supported version.
	Latest = SIF25
	// Default is used when neither the document nor the caller supply a version.
	Default = SIF20r1
)

// known is ordered oldest first.
var known = []Version{
	SIF10r1, SIF10r2, SIF11, SIF12, SIF15r1,
	SIF20, SIF20r1, SIF21, SIF22, SIF23, SIF24, SIF25,
}

// Known returns every supported version, oldest first.
func Known() []Version {
	out := make([]Version, len(known))
	copy(out, known)
	return out
}

// New returns the version major.minor with revision rev (0 for none).
func New(major, minor, rev int) Version {
	return Version{major: uint8(major), minor: uint8(minor), revision: uint8(rev)}
}

// Major returns the major number.
func (v Version) Major() int { return int(v.major) }

// Minor returns the minor number.
func (v Version) Minor() int { return int(v.minor) }

// Revision returns the revision number, 0 when the version has none.
func (v Version) Revision() int { return int(v.revision) }

// IsZero reports whether v is the zero value.
func (v Version) IsZero() bool { return v == Version{} }

// IsKnown reports whether v is a supported version.
func (v Version) IsKnown() bool {
	for _, k := range known {
		if k == v {
			return true
		}
	}
	return false
}

// Compare returns -1, 0 or +1 ordering v against o.
func (v Version) Compare(o Version) int {
	switch {
	case v.major != o.major:
		return cmpUint8(v.major, o.major)
	case v.minor != o.minor:
		return cmpUint8(v.minor, o.minor)
	default:
		return cmpUint8(v.revision, o.revision)
	}
}

func cmpUint8(a, b uint8) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}

// Less reports whether v precedes o.
func (v Version) Less(o Version) bool { return v.Compare(o) < 0 }

// AtLeast reports whether v is o or newer.
func (v Version) AtLeast(o Version) bool { return v.Compare(o) >= 0 }

// Between reports whether v lies in [lo, hi]. A zero bound is open.
func (v Version) Between(lo, hi Version) bool {
	if !lo.IsZero() && v.Less(lo) {
		return false
	}
	if !hi.IsZero() && hi.Less(v) {
		return false
	}
	return true
}

// String renders the version as carried by the Version attribute, e.g. "2.0r1".
func (v Version) String() string {
	if v.IsZero() {
		return ""
	}
	s := strconv.Itoa(int(v.major)) + "." + strconv.Itoa(int(v.minor))
	if v.revision > 0 {
		s += "r" + strconv.Itoa(int(v.revision))
	}
	return s
}

// Key renders the version as an identifier, e.g. "SIF20r1".
func (v Version) Key() string {
	if v.IsZero() {
		return ""
	}
	return "SIF" + strings.ReplaceAll(v.String(), ".", "")
}

// HasVersionAttribute reports whether SIF_Message carries a Version attribute.
// SIF 1.0rN encodes the version in the namespace instead.
func (v Version) HasVersionAttribute() bool {
	return v.AtLeast(SIF11)
}

// SupportsNil reports whether explicit nulls render as xsi:nil.
func (v Version) SupportsNil() bool {
	return v.AtLeast(SIF20)
}

// Parse parses a version string such as "2.0r1", "1.1" or "2.*".
// A wildcard minor resolves to the latest known version of that major.
func Parse(s string) (Version, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return Version{}, siferrors.New(siferrors.CodeVersionUnsupported, "empty version")
	}
	major, rest, ok := strings.Cut(s, ".")
	if !ok {
		return Version{}, unsupported(s)
	}
	maj, err := strconv.Atoi(major)
	if err != nil || maj < 0 || maj > 255 {
		return Version{}, unsupported(s)
	}
	if rest == "*" {
		v, ok := LatestOfMajor(maj)
		if !ok {
			return Version{}, unsupported(s)
		}
		return v, nil
	}
	minor, revision, hasRev := strings.Cut(rest, "r")
	mnr, err := strconv.Atoi(minor)
	if err != nil || mnr < 0 || mnr > 255 {
		return Version{}, unsupported(s)
	}
	rev := 0
	if hasRev {
		rev, err = strconv.Atoi(revision)
		if err != nil || rev <= 0 || rev > 255 {
			return Version{}, unsupported(s)
		}
	}
	v := New(maj, mnr, rev)
	if !v.IsKnown() {
		return Version{}, unsupported(s)
	}
	return v, nil
}

// MustParse is like Parse but panics on error. It is meant for package-level tables.
func MustParse(s string) Version {
	v, err := Parse(s)
	if err != nil {
		panic(fmt.Sprintf("sifversion: %v", err))
	}
	return v
}

// LatestOfMajor returns the newest known version with the given major number.
func LatestOfMajor(major int) (Version, bool) {
	for i := len(known) - 1; i >= 0; i-- {
		if int(known[i].major) == major {
			return known[i], true
		}
	}
	return Version{}, false
}

func unsupported(s string) error {
	return siferrors.Newf(siferrors.CodeVersionUnsupported, "unsupported version %q", s)
}
