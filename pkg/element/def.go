package element

import (
	"github.com/jacoelho/sif/pkg/sifversion"
	"github.com/jacoelho/sif/pkg/simpletype"
)

// VersionInfo describes a definition over a version range [Earliest, Latest].
// A zero Latest leaves the range open.
type VersionInfo struct {
	Surrogate Surrogate
	Tag       string
	Earliest  sifversion.Version
	Latest    sifversion.Version
	Sequence  int
	Kind      Kind
}

// Contains reports whether v lies in the range.
func (vi VersionInfo) Contains(v sifversion.Version) bool {
	return v.Between(vi.Earliest, vi.Latest)
}

// WithSurrogate returns a copy of vi rendered through s.
func (vi VersionInfo) WithSurrogate(s Surrogate) VersionInfo {
	vi.Surrogate = s
	return vi
}

// Always covers every version.
func Always(tag string, seq int, k Kind) VersionInfo {
	return VersionInfo{Tag: tag, Sequence: seq, Kind: k, Earliest: sifversion.Earliest}
}

// Since covers v and every later version.
func Since(v sifversion.Version, tag string, seq int, k Kind) VersionInfo {
	return VersionInfo{Tag: tag, Sequence: seq, Kind: k, Earliest: v}
}

// Until covers every version up to and including v.
func Until(v sifversion.Version, tag string, seq int, k Kind) VersionInfo {
	return VersionInfo{Tag: tag, Sequence: seq, Kind: k, Earliest: sifversion.Earliest, Latest: v}
}

// During covers [lo, hi].
func During(lo, hi sifversion.Version, tag string, seq int, k Kind) VersionInfo {
	return VersionInfo{Tag: tag, Sequence: seq, Kind: k, Earliest: lo, Latest: hi}
}

type role uint8

const (
	roleElement role = iota
	roleField
	roleObject
	rolePayload
)

// Factory constructs the graph node for a definition.
type Factory func(def *Def) *Element

// Def is the schema metadata of one element or attribute.
type Def struct {
	parent    *Def
	base      *Def
	factory   Factory
	context   map[*Def]*Def
	name      string
	infos     []VersionInfo
	keyNames  []string
	keys      []*Def
	children  []*Def
	ordinal   int
	valueKind simpletype.Kind
	role      role
	repeat    bool
	anyObject bool
	universal bool
	key       bool
}

// Name returns the version-independent internal name, e.g. "StudentPersonal_Name".
func (d *Def) Name() string { return d.name }

// String returns the internal name.
func (d *Def) String() string {
	if d == nil {
		return "<nil>"
	}
	return d.name
}

// Parent returns the enclosing definition, nil for roots and common types.
func (d *Def) Parent() *Def { return d.parent }

// Base returns the common definition a contextual definition specializes.
func (d *Def) Base() *Def { return d.base }

// IsObject reports whether d is a root data object type.
func (d *Def) IsObject() bool { return d.role == roleObject }

// IsPayload reports whether d is a root message payload type.
func (d *Def) IsPayload() bool { return d.role == rolePayload }

// IsRoot reports whether d may appear at the root of a document.
func (d *Def) IsRoot() bool { return d.role == roleObject || d.role == rolePayload }

// IsField reports whether d is a leaf carrying a simple value.
func (d *Def) IsField() bool { return d.role == roleField }

// IsRepeatable reports whether d may occur more than once under its parent.
func (d *Def) IsRepeatable() bool { return d.repeat }

// IsKey reports whether d is a key field of its parent.
func (d *Def) IsKey() bool { return d.key }

// IsUniversal reports whether d may be attached under any data object.
func (d *Def) IsUniversal() bool { return d.universal }

// AcceptsObjects reports whether data objects may be children of d.
func (d *Def) AcceptsObjects() bool { return d.anyObject }

// ValueKind returns the kind of a field value, or of an element's text content.
func (d *Def) ValueKind() simpletype.Kind { return d.valueKind }

// HasText reports whether an element carries simple content.
func (d *Def) HasText() bool { return d.role != roleField && d.valueKind != simpletype.KindInvalid }

// Keys returns the key field definitions of a repeatable element.
func (d *Def) Keys() []*Def {
	out := make([]*Def, len(d.keys))
	copy(out, d.keys)
	return out
}

// Children returns the child definitions declared under d.
func (d *Def) Children() []*Def {
	out := make([]*Def, len(d.children))
	copy(out, d.children)
	return out
}

// Versions returns the version ranges of d.
func (d *Def) Versions() []VersionInfo {
	out := make([]VersionInfo, len(d.infos))
	copy(out, d.infos)
	return out
}

// Info returns the version range containing v.
func (d *Def) Info(v sifversion.Version) (VersionInfo, bool) {
	for _, vi := range d.infos {
		if vi.Contains(v) {
			return vi, true
		}
	}
	return VersionInfo{}, false
}

// Classify returns how d is represented in v.
func (d *Def) Classify(v sifversion.Version) Kind {
	vi, ok := d.Info(v)
	if !ok {
		return KindUnsupported
	}
	return vi.Kind
}

// IsSupported reports whether d has a representation in v.
func (d *Def) IsSupported(v sifversion.Version) bool {
	return d.Classify(v) != KindUnsupported
}

// Tag returns the tag used in v, falling back to LocalName.
func (d *Def) Tag(v sifversion.Version) string {
	if vi, ok := d.Info(v); ok && vi.Tag != "" {
		return vi.Tag
	}
	return d.LocalName()
}

// LocalName returns the tag of the newest version range.
func (d *Def) LocalName() string {
	if len(d.infos) == 0 {
		return d.name
	}
	return d.infos[len(d.infos)-1].Tag
}

// Sequence returns the sibling position of d in v.
func (d *Def) Sequence(v sifversion.Version) int {
	vi, _ := d.Info(v)
	return vi.Sequence
}

// Surrogate returns the custom renderer of d in v, if any.
func (d *Def) Surrogate(v sifversion.Version) Surrogate {
	vi, _ := d.Info(v)
	return vi.Surrogate
}

// Is reports whether d is o or a contextual specialization of o.
func (d *Def) Is(o *Def) bool {
	if d == nil || o == nil {
		return false
	}
	return d == o || d.base == o || (d.base != nil && d.base == o.base)
}

// contentOwner reports whether fields or children declared under o belong to d.
func (d *Def) contentOwner(o *Def) bool {
	return o != nil && (o == d || o == d.base)
}

// Child returns the child definition with the given local name, looking
// through the base definition of a contextual definition.
func (d *Def) Child(localName string) *Def {
	for cur := d; cur != nil; cur = cur.base {
		for _, c := range cur.children {
			if c.LocalName() == localName {
				return c
			}
		}
	}
	return nil
}

// contextual returns the parent-specific definition of child under d.
func (d *Def) contextual(child *Def) *Def {
	key := child
	if child.base != nil {
		key = child.base
	}
	for cur := d; cur != nil; cur = cur.base {
		if c, ok := cur.context[key]; ok {
			return c
		}
	}
	return nil
}

// accepts reports whether an element of def child may be attached under d.
func (d *Def) accepts(child *Def) bool {
	switch {
	case d.contentOwner(child.parent):
		return true
	case child.universal:
		return d.IsObject()
	case child.IsObject():
		return d.anyObject
	default:
		return false
	}
}
