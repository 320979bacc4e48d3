package element

import (
	siferrors "github.com/jacoelho/sif/errors"
	"github.com/jacoelho/sif/pkg/simpletype"
)

// Field is a simple value attached to an element, rendered as an attribute
// or a simple element depending on the version.
type Field struct {
	def     *Def
	owner   *Element
	value   simpletype.Value
	changed bool
}

// Def returns the field's definition.
func (f *Field) Def() *Def { return f.def }

// Owner returns the element holding the field.
func (f *Field) Owner() *Element { return f.owner }

// Value returns the field's value.
func (f *Field) Value() simpletype.Value {
	f.owner.mu.RLock()
	defer f.owner.mu.RUnlock()
	return f.value
}

// IsChanged reports whether the field is flagged for rendering.
func (f *Field) IsChanged() bool {
	f.owner.mu.RLock()
	defer f.owner.mu.RUnlock()
	return f.changed
}

// SetChanged flags the field. Flagging it changed also flags the owner
// and every ancestor so the field stays reachable when rendering.
func (f *Field) SetChanged(changed bool) {
	f.owner.mu.Lock()
	f.changed = changed
	f.owner.mu.Unlock()
	if changed {
		f.owner.markChanged()
	}
}

// Path returns the owner's path followed by the field's local name.
func (f *Field) Path() string {
	return f.owner.Path() + "/" + f.def.LocalName()
}

// SetField assigns the value of the field def on e, replacing any previous
// value. The value kind must match the definition.
func (e *Element) SetField(def *Def, v simpletype.Value) (*Field, error) {
	owner := e.Def()
	if def == nil || !def.IsField() || !owner.contentOwner(def.parent) {
		name := "<nil>"
		if def != nil {
			name = def.name
		}
		return nil, siferrors.Newf(siferrors.CodeInvalidChild, "%s is not a field of %s", name, owner.name)
	}
	if v.Kind() != def.valueKind {
		return nil, mismatch(def, v)
	}
	e.mu.Lock()
	if e.fields == nil {
		e.fields = make(map[*Def]*Field)
	}
	f, ok := e.fields[def]
	if !ok {
		f = &Field{def: def, owner: e}
		e.fields[def] = f
	}
	f.value = v
	f.changed = true
	e.mu.Unlock()
	e.markChanged()
	return f, nil
}

// SetString is shorthand for SetField with a string value.
func (e *Element) SetString(def *Def, s string) error {
	_, err := e.SetField(def, simpletype.String(s))
	return err
}

// Field returns the field of def on e, or nil.
func (e *Element) Field(def *Def) *Field {
	e.mu.RLock()
	defer e.mu.RUnlock()
	if f, ok := e.fields[def]; ok {
		return f
	}
	return nil
}

// FieldValue returns the value of the field def on e.
func (e *Element) FieldValue(def *Def) (simpletype.Value, bool) {
	f := e.Field(def)
	if f == nil {
		return simpletype.Value{}, false
	}
	return f.Value(), true
}

// StringField returns the string value of the field def, or "".
func (e *Element) StringField(def *Def) string {
	v, _ := e.FieldValue(def)
	s, _ := v.AsString()
	return s
}

// RemoveField removes the field def from e and reports whether it was set.
func (e *Element) RemoveField(def *Def) bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	if _, ok := e.fields[def]; !ok {
		return false
	}
	delete(e.fields, def)
	return true
}

// Fields returns the fields of e in declaration order.
func (e *Element) Fields() []*Field {
	e.mu.RLock()
	defs := make([]*Def, 0, len(e.fields))
	for d := range e.fields {
		defs = append(defs, d)
	}
	sortByOrdinal(defs)
	out := make([]*Field, len(defs))
	for i, d := range defs {
		out[i] = e.fields[d]
	}
	e.mu.RUnlock()
	return out
}

func mismatch(def *Def, v simpletype.Value) *siferrors.Error {
	return siferrors.Newf(siferrors.CodeTypeMismatch, "%s expects %s, got %s", def.name, def.valueKind, v.Kind()).WithTag(def.LocalName(), "")
}
