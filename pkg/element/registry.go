package element

import (
	"reflect"
	"sort"

	lru "github.com/hashicorp/golang-lru/v2"

	siferrors "github.com/jacoelho/sif/errors"
	"github.com/jacoelho/sif/pkg/sifversion"
)

const resolveCacheSize = 4096

type tagKey struct {
	parent *Def
	tag    string
}

type resolveKey struct {
	parent *Def
	tag    string
	v      sifversion.Version
	attr   bool
}

// Resolution is the outcome of resolving a tag under a parent definition.
type Resolution struct {
	// Def is the resolved definition.
	Def *Def
	// Via lists the collapsed intermediates between the parent and Def,
	// outermost first.
	Via []*Def
}

// Registry indexes definitions for lookup by name and by (parent, tag, version).
// It is immutable and safe for concurrent use.
type Registry struct {
	byName    map[string]*Def
	byTag     map[tagKey][]*Def
	memo      *lru.Cache[resolveKey, Resolution]
	extended  *Def
	extendedE *Def
	defs      []*Def
	roots     []*Def
}

func newRegistry(defs []*Def, extended, extendedE *Def) *Registry {
	memo, err := lru.New[resolveKey, Resolution](resolveCacheSize)
	if err != nil {
		panic(err)
	}
	r := &Registry{
		byName:    make(map[string]*Def, len(defs)),
		byTag:     make(map[tagKey][]*Def),
		memo:      memo,
		extended:  extended,
		extendedE: extendedE,
		defs:      defs,
	}
	for _, d := range defs {
		r.byName[d.name] = d
		if d.IsRoot() {
			r.roots = append(r.roots, d)
		}
		seen := make(map[string]bool, len(d.infos))
		for _, vi := range d.infos {
			if seen[vi.Tag] {
				continue
			}
			seen[vi.Tag] = true
			k := tagKey{parent: d.parent, tag: vi.Tag}
			if d.IsRoot() {
				k.parent = nil
			}
			r.byTag[k] = append(r.byTag[k], d)
		}
	}
	return r
}

// Lookup returns the definition with the given internal name.
func (r *Registry) Lookup(name string) (*Def, bool) {
	d, ok := r.byName[name]
	return d, ok
}

// MustLookup is like Lookup but panics when name is unknown.
func (r *Registry) MustLookup(name string) *Def {
	d, ok := r.byName[name]
	if !ok {
		panic("element: unknown definition " + name)
	}
	return d
}

// Defs returns every definition in declaration order.
func (r *Registry) Defs() []*Def {
	out := make([]*Def, len(r.defs))
	copy(out, r.defs)
	return out
}

// Roots returns the object and payload definitions sorted by name.
func (r *Registry) Roots() []*Def {
	out := make([]*Def, len(r.roots))
	copy(out, r.roots)
	sort.Slice(out, func(i, j int) bool { return out[i].name < out[j].name })
	return out
}

// ExtendedElements returns the universal SIF_ExtendedElements definition.
func (r *Registry) ExtendedElements() *Def { return r.extended }

// ExtendedElement returns the SIF_ExtendedElement entry definition.
func (r *Registry) ExtendedElement() *Def { return r.extendedE }

// New constructs an element for d using its registered factory.
func (r *Registry) New(d *Def) *Element {
	if d.factory != nil {
		return d.factory(d)
	}
	return New(d)
}

// LookupRoot resolves a document root tag in version v.
func (r *Registry) LookupRoot(tag string, v sifversion.Version) (*Def, error) {
	for _, d := range r.byTag[tagKey{tag: tag}] {
		if !d.IsRoot() {
			continue
		}
		if vi, ok := d.Info(v); ok && vi.Kind == KindElement && vi.Tag == tag {
			return d, nil
		}
	}
	return nil, unknown(siferrors.CodeUnknownElement, "unknown root element", tag, v)
}

// LookupObject resolves a data object tag in version v.
func (r *Registry) LookupObject(tag string, v sifversion.Version) (*Def, error) {
	d, err := r.LookupRoot(tag, v)
	if err != nil {
		return nil, err
	}
	if !d.IsObject() {
		return nil, unknown(siferrors.CodeUnknownElement, "not a data object", tag, v)
	}
	return d, nil
}

// Resolve finds the definition of an element (or attribute, when attr is
// set) tagged tag under parent in version v. Tags may resolve through
// collapsed intermediates, which are reported in Resolution.Via.
func (r *Registry) Resolve(parent *Def, tag string, v sifversion.Version, attr bool) (Resolution, error) {
	key := resolveKey{parent: parent, tag: tag, v: v, attr: attr}
	if res, ok := r.memo.Get(key); ok {
		return res, nil
	}
	res, ok := r.resolve(parent, tag, v, attr)
	if !ok {
		code, msg := siferrors.CodeUnknownElement, "unknown element"
		if attr {
			code, msg = siferrors.CodeUnknownAttribute, "unknown attribute"
		}
		return Resolution{}, unknown(code, msg+" under "+parent.Tag(v), tag, v)
	}
	r.memo.Add(key, res)
	return res, nil
}

func (r *Registry) resolve(parent *Def, tag string, v sifversion.Version, attr bool) (Resolution, bool) {
	want := KindElement
	if attr {
		want = KindAttribute
	}
	for cur := parent; cur != nil; cur = cur.base {
		for _, d := range r.byTag[tagKey{parent: cur, tag: tag}] {
			if vi, ok := d.Info(v); ok && vi.Kind == want && vi.Tag == tag {
				if c := parent.contextual(d); c != nil && c != d {
					d = c
				}
				return Resolution{Def: d}, true
			}
		}
	}
	for cur := parent; cur != nil; cur = cur.base {
		for _, c := range cur.children {
			if c.Classify(v) != KindCollapsed {
				continue
			}
			if res, ok := r.resolve(c, tag, v, attr); ok {
				res.Via = append([]*Def{c}, res.Via...)
				return res, true
			}
		}
	}
	if attr {
		return Resolution{}, false
	}
	if parent.IsObject() && r.extended != nil && r.extended.Classify(v) == KindElement && r.extended.Tag(v) == tag {
		return Resolution{Def: r.extended}, true
	}
	if parent.anyObject {
		if d, err := r.LookupObject(tag, v); err == nil {
			return Resolution{Def: d}, true
		}
	}
	return Resolution{}, false
}

// Surrogates returns the distinct surrogates of parent's children in v,
// in declaration order. A surrogate bound to several children is listed
// once, with the first child that declares it.
func (r *Registry) Surrogates(parent *Def, v sifversion.Version) []SurrogateBinding {
	var out []SurrogateBinding
	for cur := parent; cur != nil; cur = cur.base {
		for _, c := range cur.children {
			s := c.Surrogate(v)
			if s == nil || bound(out, s) {
				continue
			}
			out = append(out, SurrogateBinding{Def: c, Surrogate: s})
		}
	}
	return out
}

func bound(bindings []SurrogateBinding, s Surrogate) bool {
	t := reflect.TypeOf(s)
	if !t.Comparable() {
		return false
	}
	for _, b := range bindings {
		if reflect.TypeOf(b.Surrogate) == t && b.Surrogate == s {
			return true
		}
	}
	return false
}

// SurrogateBinding pairs a definition with the surrogate that renders it.
type SurrogateBinding struct {
	Def       *Def
	Surrogate Surrogate
}

func unknown(code siferrors.Code, msg, tag string, v sifversion.Version) *siferrors.Error {
	return siferrors.New(code, msg).WithTag(tag, v.String())
}
