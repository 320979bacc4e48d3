package element

import (
	siferrors "github.com/jacoelho/sif/errors"
)

// AddChild attaches child under e. A child built from a common or
// foreign contextual definition is re-bound to the definition specific
// to e's type.
func (e *Element) AddChild(child *Element) error {
	if child == nil {
		return siferrors.New(siferrors.CodeInvalidChild, "nil child")
	}
	if child == e {
		return siferrors.New(siferrors.CodeInvalidChild, "element cannot contain itself")
	}
	parentDef := e.Def()

	child.mu.Lock()
	if child.parent != nil {
		child.mu.Unlock()
		return siferrors.New(siferrors.CodeAlreadyParented, "element already has a parent").WithTag(child.def.LocalName(), "")
	}
	def := child.def
	if c := parentDef.contextual(def); c != nil {
		def = c
	}
	if def.IsField() || !parentDef.accepts(def) {
		child.mu.Unlock()
		return siferrors.Newf(siferrors.CodeInvalidChild, "%s is not a child of %s", def.name, parentDef.name).WithTag(def.LocalName(), "")
	}
	child.def = def
	child.parent = e
	changed := child.changed
	child.mu.Unlock()

	e.mu.Lock()
	e.children = append(e.children, child)
	e.mu.Unlock()
	if changed {
		e.markChanged()
	}
	return nil
}

// RemoveChild detaches child from e and reports whether it was present.
func (e *Element) RemoveChild(child *Element) bool {
	e.mu.Lock()
	idx := -1
	for i, c := range e.children {
		if c == child {
			idx = i
			break
		}
	}
	if idx < 0 {
		e.mu.Unlock()
		return false
	}
	e.children = append(e.children[:idx], e.children[idx+1:]...)
	e.mu.Unlock()

	child.mu.Lock()
	child.parent = nil
	child.mu.Unlock()
	return true
}

// Children returns the child elements in insertion order.
func (e *Element) Children() []*Element {
	e.mu.RLock()
	defer e.mu.RUnlock()
	out := make([]*Element, len(e.children))
	copy(out, e.children)
	return out
}

// ChildrenOf returns the children whose definition is def or specializes it.
func (e *Element) ChildrenOf(def *Def) []*Element {
	var out []*Element
	for _, c := range e.Children() {
		if c.Def().Is(def) {
			out = append(out, c)
		}
	}
	return out
}

// Child returns the first child of def, or nil.
func (e *Element) Child(def *Def) *Element {
	for _, c := range e.Children() {
		if c.Def().Is(def) {
			return c
		}
	}
	return nil
}

// ChildByKey returns the child of def whose Key equals key, or nil.
func (e *Element) ChildByKey(def *Def, key string) *Element {
	for _, c := range e.ChildrenOf(def) {
		if c.Key() == key {
			return c
		}
	}
	return nil
}

// EnsureChild returns the first child of def, creating it when absent.
func (e *Element) EnsureChild(def *Def) (*Element, error) {
	if c := e.Child(def); c != nil {
		return c, nil
	}
	c := New(def)
	if err := e.AddChild(c); err != nil {
		return nil, err
	}
	return c, nil
}
