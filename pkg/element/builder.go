package element

import (
	"fmt"
	"sort"

	siferrors "github.com/jacoelho/sif/errors"
	"github.com/jacoelho/sif/pkg/sifversion"
	"github.com/jacoelho/sif/pkg/simpletype"
)

// Names of the universal extension container and its entries.
const (
	ExtendedElementsName = "SIF_ExtendedElements"
	ExtendedElementName  = "SIF_ExtendedElement"
)

// Builder assembles definitions into a Registry.
// It is not safe for concurrent use; the Registry it builds is.
type Builder struct {
	byName    map[string]*Def
	seq       map[*Def]int
	extended  *Def
	extendedE *Def
	errs      []error
	defs      []*Def
}

// NewBuilder returns a builder pre-populated with the SIF_ExtendedElements
// container that every data object accepts.
func NewBuilder() *Builder {
	b := &Builder{
		byName: make(map[string]*Def),
		seq:    make(map[*Def]int),
	}
	b.extended = b.Common(ExtendedElementsName, Since(sifversion.SIF11, ExtendedElementsName, 10000, KindElement))
	b.extended.universal = true
	b.extendedE = b.Element(b.extended, ExtendedElementName)
	b.Text(b.extendedE, simpletype.KindString)
	b.Field(b.extendedE, "Name", simpletype.KindString, Always("Name", 1, KindAttribute))
	b.Repeatable(b.extendedE, "Name")
	return b
}

// Object declares a root data object type.
func (b *Builder) Object(name string, infos ...VersionInfo) *Def {
	return b.add(&Def{name: name, role: roleObject}, name, infos)
}

// Payload declares a root message payload type.
func (b *Builder) Payload(name string, infos ...VersionInfo) *Def {
	return b.add(&Def{name: name, role: rolePayload}, name, infos)
}

// Common declares a parentless element type reused under several parents.
func (b *Builder) Common(name string, infos ...VersionInfo) *Def {
	return b.add(&Def{name: name, role: roleElement}, name, infos)
}

// Element declares a child element of parent.
func (b *Builder) Element(parent *Def, tag string, infos ...VersionInfo) *Def {
	d := &Def{name: childName(parent, tag), role: roleElement, parent: parent}
	return b.add(d, tag, infos)
}

// Field declares a simple-valued child of parent. Without infos the field
// is an element in every version.
func (b *Builder) Field(parent *Def, tag string, k simpletype.Kind, infos ...VersionInfo) *Def {
	d := &Def{name: childName(parent, tag), role: roleField, parent: parent, valueKind: k}
	return b.add(d, tag, infos)
}

// Contextual declares the parent-specific variant of a common type.
// Its tag defaults to the common type's tag.
func (b *Builder) Contextual(parent, base *Def, infos ...VersionInfo) *Def {
	tag := base.LocalName()
	d := &Def{name: childName(parent, tag), role: roleElement, parent: parent, base: base, valueKind: base.valueKind}
	return b.add(d, tag, infos)
}

// Repeatable marks d as repeatable, identified by the named key fields.
func (b *Builder) Repeatable(d *Def, keys ...string) *Def {
	d.repeat = true
	d.keyNames = append(d.keyNames, keys...)
	return d
}

// Text gives element d simple content of kind k.
func (b *Builder) Text(d *Def, k simpletype.Kind) *Def {
	d.valueKind = k
	return d
}

// AcceptObjects lets any data object be attached under d.
func (b *Builder) AcceptObjects(d *Def) *Def {
	d.anyObject = true
	return d
}

// Factory registers the constructor used by Registry.New for d.
func (b *Builder) Factory(d *Def, f Factory) *Def {
	d.factory = f
	return d
}

func (b *Builder) add(d *Def, tag string, infos []VersionInfo) *Def {
	if _, dup := b.byName[d.name]; dup {
		b.errs = append(b.errs, siferrors.Newf(siferrors.CodeRegistry, "duplicate definition %q", d.name))
	}
	if len(infos) == 0 {
		k := KindElement
		if d.parent != nil {
			b.seq[d.parent]++
		}
		infos = []VersionInfo{Always(tag, b.seq[d.parent], k)}
	}
	d.infos = append([]VersionInfo(nil), infos...)
	sort.SliceStable(d.infos, func(i, j int) bool {
		return d.infos[i].Earliest.Less(d.infos[j].Earliest)
	})
	for i := range d.infos {
		if d.infos[i].Tag == "" {
			d.infos[i].Tag = tag
		}
		if d.parent != nil && d.infos[i].Sequence > b.seq[d.parent] {
			b.seq[d.parent] = d.infos[i].Sequence
		}
	}
	d.ordinal = len(b.defs)
	b.defs = append(b.defs, d)
	b.byName[d.name] = d
	if d.parent != nil {
		d.parent.children = append(d.parent.children, d)
	}
	return d
}

func childName(parent *Def, tag string) string {
	if parent == nil {
		return tag
	}
	return parent.name + "_" + tag
}

// Build validates the definitions and returns the registry.
func (b *Builder) Build() (*Registry, error) {
	errs := append([]error(nil), b.errs...)
	for _, d := range b.defs {
		errs = append(errs, b.validate(d)...)
	}
	if len(errs) > 0 {
		return nil, joinRegistryErrors(errs)
	}
	return newRegistry(b.defs, b.extended, b.extendedE), nil
}

func (b *Builder) validate(d *Def) []error {
	var errs []error
	fail := func(format string, args ...any) {
		errs = append(errs, siferrors.Newf(siferrors.CodeRegistry, "%s: %s", d.name, fmt.Sprintf(format, args...)))
	}
	for i, vi := range d.infos {
		if !vi.Latest.IsZero() && vi.Latest.Less(vi.Earliest) {
			fail("range %s..%s is inverted", vi.Earliest, vi.Latest)
		}
		if i > 0 {
			prev := d.infos[i-1]
			if prev.Latest.IsZero() || !prev.Latest.Less(vi.Earliest) {
				fail("version ranges overlap at %s", vi.Earliest)
			}
		}
		switch {
		case vi.Kind == KindAttribute && d.role != roleField:
			fail("only fields may render as attributes")
		case vi.Kind == KindCollapsed && (d.role == roleField || d.parent == nil):
			fail("only child elements may collapse")
		case vi.Kind == KindCollapsed && d.repeat:
			fail("repeatable elements cannot collapse")
		}
	}
	if d.base != nil {
		if !d.repeat && d.base.repeat {
			d.repeat = true
			d.keyNames = append([]string(nil), d.base.keyNames...)
		}
		if d.base.parent != nil || d.base.IsRoot() {
			fail("base %s is not a common type", d.base.name)
		}
		if d.parent != nil {
			if d.parent.context == nil {
				d.parent.context = make(map[*Def]*Def)
			}
			d.parent.context[d.base] = d
		}
	}
	d.keys = d.keys[:0]
	for _, name := range d.keyNames {
		k := d.Child(name)
		if k == nil || !k.IsField() {
			fail("key %q is not a field", name)
			continue
		}
		k.key = true
		d.keys = append(d.keys, k)
	}
	return errs
}

func joinRegistryErrors(errs []error) error {
	var list siferrors.List
	for _, err := range errs {
		if e, ok := siferrors.As(err); ok {
			list = append(list, e)
			continue
		}
		list = append(list, siferrors.Wrap(siferrors.CodeRegistry, err, err.Error()))
	}
	return list.Err()
}
