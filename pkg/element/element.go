package element

import (
	"sort"
	"strings"
	"sync"

	siferrors "github.com/jacoelho/sif/errors"
	"github.com/jacoelho/sif/pkg/sifversion"
	"github.com/jacoelho/sif/pkg/simpletype"
)

// Element is a node of the SIF object graph.
//
// Each node guards its own state with a read-write lock, so a graph may be
// read concurrently. Writers that touch several nodes at once (attaching a
// child, cloning) lock one node at a time; callers mutating the same
// subtree from several goroutines must coordinate themselves.
type Element struct {
	mu        sync.RWMutex
	def       *Def
	parent    *Element
	fields    map[*Def]*Field
	text      simpletype.Value
	version   sifversion.Version
	namespace string
	id        string
	raw       []byte
	children  []*Element
	hasNS     bool
	changed   bool
	empty     bool
}

// New returns a detached element of def, flagged as changed.
func New(def *Def) *Element {
	return &Element{def: def, changed: true}
}

// Def returns the element's definition.
func (e *Element) Def() *Def {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.def
}

// Parent returns the enclosing element, or nil.
func (e *Element) Parent() *Element {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.parent
}

// Root walks up to the outermost element.
func (e *Element) Root() *Element {
	cur := e
	for {
		p := cur.Parent()
		if p == nil {
			return cur
		}
		cur = p
	}
}

// Version returns the version explicitly assigned to e, or the zero version.
func (e *Element) Version() sifversion.Version {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.version
}

// SetVersion assigns the version used when e is rendered as a document root.
func (e *Element) SetVersion(v sifversion.Version) {
	e.mu.Lock()
	e.version = v
	e.mu.Unlock()
}

// EffectiveVersion returns the first explicit version found walking up
// from e, or sifversion.Default.
func (e *Element) EffectiveVersion() sifversion.Version {
	for cur := e; cur != nil; cur = cur.Parent() {
		if v := cur.Version(); !v.IsZero() {
			return v
		}
	}
	return sifversion.Default
}

// Namespace returns the namespace URI recorded when e was parsed.
func (e *Element) Namespace() (string, bool) {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.namespace, e.hasNS
}

// SetNamespace records the namespace URI of e.
func (e *Element) SetNamespace(ns string) {
	e.mu.Lock()
	e.namespace, e.hasNS = ns, true
	e.mu.Unlock()
}

// ID returns the element's identifier, typically its RefId or message id.
func (e *Element) ID() string {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.id
}

// SetID assigns the element's identifier.
func (e *Element) SetID(id string) {
	e.mu.Lock()
	e.id = id
	e.mu.Unlock()
}

// Raw returns the original XML retained for e, if any.
func (e *Element) Raw() []byte {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.raw
}

// SetRaw retains the original XML of e.
func (e *Element) SetRaw(b []byte) {
	e.mu.Lock()
	e.raw = b
	e.mu.Unlock()
}

// IsChanged reports whether e is flagged for rendering.
func (e *Element) IsChanged() bool {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.changed
}

// SetChanged sets the changed flag of e and of every descendant and field.
func (e *Element) SetChanged(changed bool) {
	e.mu.Lock()
	e.changed = changed
	for _, f := range e.fields {
		f.changed = changed
	}
	children := append([]*Element(nil), e.children...)
	e.mu.Unlock()
	for _, c := range children {
		c.SetChanged(changed)
	}
	if changed {
		e.markAncestors()
	}
}

// markChanged flags e and its ancestors as changed.
func (e *Element) markChanged() {
	e.mu.Lock()
	e.changed = true
	e.mu.Unlock()
	e.markAncestors()
}

func (e *Element) markAncestors() {
	for p := e.Parent(); p != nil; p = p.Parent() {
		p.mu.Lock()
		p.changed = true
		p.mu.Unlock()
	}
}

// IsEmpty reports whether e renders with its attributes but no content.
func (e *Element) IsEmpty() bool {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.empty
}

// SetEmpty sets the empty flag of e and of every descendant element.
func (e *Element) SetEmpty(empty bool) {
	e.mu.Lock()
	e.empty = empty
	children := append([]*Element(nil), e.children...)
	e.mu.Unlock()
	for _, c := range children {
		c.SetEmpty(empty)
	}
}

// Text returns the simple content of e.
func (e *Element) Text() (simpletype.Value, bool) {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.text, e.text.IsValid()
}

// SetText assigns the simple content of e.
func (e *Element) SetText(v simpletype.Value) error {
	def := e.Def()
	if !def.HasText() {
		return siferrors.New(siferrors.CodeUnexpectedText, "element has no simple content").WithTag(def.LocalName(), "")
	}
	if v.Kind() != def.ValueKind() {
		return mismatch(def, v)
	}
	e.mu.Lock()
	e.text = v
	e.mu.Unlock()
	e.markChanged()
	return nil
}

// ClearText removes the simple content of e.
func (e *Element) ClearText() {
	e.mu.Lock()
	e.text = simpletype.Value{}
	e.mu.Unlock()
}

// Key returns the identity of e among repeatable siblings: the key field
// values joined by "." or, without keys, the text content. It is empty when
// no key field is set.
func (e *Element) Key() string {
	def := e.Def()
	keys := def.keys
	if len(keys) == 0 && def.base != nil {
		keys = def.base.keys
	}
	if len(keys) == 0 {
		if t, ok := e.Text(); ok {
			return t.String()
		}
		return ""
	}
	parts := make([]string, 0, len(keys))
	set := false
	for _, k := range keys {
		if f := e.Field(k); f != nil {
			parts = append(parts, f.Value().String())
			set = set || parts[len(parts)-1] != ""
			continue
		}
		parts = append(parts, "")
	}
	if !set {
		return ""
	}
	return strings.Join(parts, ".")
}

// Path returns the slash-separated local names from the root to e.
func (e *Element) Path() string {
	var parts []string
	for cur := e; cur != nil; cur = cur.Parent() {
		parts = append(parts, cur.Def().LocalName())
	}
	var b strings.Builder
	for i := len(parts) - 1; i >= 0; i-- {
		b.WriteByte('/')
		b.WriteString(parts[i])
	}
	return b.String()
}

// Clone returns a detached deep copy of e.
func (e *Element) Clone() *Element {
	e.mu.RLock()
	c := &Element{
		def:       e.def,
		text:      e.text,
		version:   e.version,
		namespace: e.namespace,
		hasNS:     e.hasNS,
		id:        e.id,
		changed:   e.changed,
		empty:     e.empty,
	}
	if e.raw != nil {
		c.raw = append([]byte(nil), e.raw...)
	}
	if len(e.fields) > 0 {
		c.fields = make(map[*Def]*Field, len(e.fields))
		for d, f := range e.fields {
			c.fields[d] = &Field{def: f.def, owner: c, value: f.value, changed: f.changed}
		}
	}
	children := append([]*Element(nil), e.children...)
	e.mu.RUnlock()
	for _, child := range children {
		cc := child.Clone()
		cc.parent = c
		c.children = append(c.children, cc)
	}
	return c
}

func sortByOrdinal(defs []*Def) {
	sort.Slice(defs, func(i, j int) bool { return defs[i].ordinal < defs[j].ordinal })
}
