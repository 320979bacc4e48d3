package element

import (
	"strings"

	siferrors "github.com/jacoelho/sif/errors"
	"github.com/jacoelho/sif/pkg/simpletype"
)

// Paths use a small XPath subset relative to an element:
//
//	Name/LastName
//	OtherIdList/OtherId[@Type='ZZ']
//	MostRecent/GradeLevel/Code
//	@RefId
//
// Steps match local names. "@x" and "x" both name a field x. A predicate
// selects the child whose field equals a literal.

type step struct {
	name      string
	predField string
	predValue string
	attr      bool
	hasPred   bool
}

func parsePath(path string) ([]step, error) {
	path = strings.Trim(path, "/")
	if path == "" {
		return nil, siferrors.New(siferrors.CodeInvalidChild, "empty path")
	}
	parts := strings.Split(path, "/")
	steps := make([]step, 0, len(parts))
	for _, p := range parts {
		var s step
		if open := strings.IndexByte(p, '['); open >= 0 {
			if !strings.HasSuffix(p, "]") {
				return nil, badPath(path)
			}
			pred := p[open+1 : len(p)-1]
			p = p[:open]
			field, value, ok := strings.Cut(pred, "=")
			if !ok {
				return nil, badPath(path)
			}
			field = strings.TrimPrefix(strings.TrimSpace(field), "@")
			value = strings.TrimSpace(value)
			if len(value) < 2 || (value[0] != '\'' && value[0] != '"') || value[len(value)-1] != value[0] {
				return nil, badPath(path)
			}
			s.predField, s.predValue, s.hasPred = field, value[1:len(value)-1], true
		}
		if strings.HasPrefix(p, "@") {
			s.attr = true
			p = p[1:]
		}
		if p == "" {
			return nil, badPath(path)
		}
		s.name = p
		steps = append(steps, s)
	}
	return steps, nil
}

func badPath(path string) error {
	return siferrors.Newf(siferrors.CodeInvalidChild, "malformed path %q", path)
}

func (s step) matches(c *Element) bool {
	if c.Def().LocalName() != s.name {
		return false
	}
	if !s.hasPred {
		return true
	}
	pd := c.Def().Child(s.predField)
	if pd == nil {
		return false
	}
	v, ok := c.FieldValue(pd)
	return ok && v.String() == s.predValue
}

// Find returns the element addressed by path, or nil.
func (e *Element) Find(path string) *Element {
	steps, err := parsePath(path)
	if err != nil {
		return nil
	}
	cur := e
	for _, s := range steps {
		cur = cur.findChild(s)
		if cur == nil {
			return nil
		}
	}
	return cur
}

func (e *Element) findChild(s step) *Element {
	if s.attr {
		return nil
	}
	for _, c := range e.Children() {
		if s.matches(c) {
			return c
		}
	}
	return nil
}

// FindField returns the field addressed by path, or nil.
func (e *Element) FindField(path string) *Field {
	steps, err := parsePath(path)
	if err != nil {
		return nil
	}
	owner := e
	for _, s := range steps[:len(steps)-1] {
		owner = owner.findChild(s)
		if owner == nil {
			return nil
		}
	}
	last := steps[len(steps)-1]
	def := owner.Def().Child(last.name)
	if def == nil || !def.IsField() {
		return nil
	}
	return owner.Field(def)
}

// FindValue returns the value addressed by path: a field value or the
// text content of an element.
func (e *Element) FindValue(path string) (simpletype.Value, bool) {
	if f := e.FindField(path); f != nil {
		return f.Value(), true
	}
	if el := e.Find(path); el != nil {
		return el.Text()
	}
	return simpletype.Value{}, false
}

// ResolvePath returns the definition addressed by path relative to e's type.
func (e *Element) ResolvePath(path string) (*Def, error) {
	steps, err := parsePath(path)
	if err != nil {
		return nil, err
	}
	def := e.Def()
	for _, s := range steps {
		next := def.Child(s.name)
		if next == nil {
			return nil, siferrors.Newf(siferrors.CodeUnknownElement, "%s has no child %s", def.name, s.name).WithTag(s.name, "")
		}
		def = next
	}
	return def, nil
}

// SetPath assigns v at path, creating intermediate elements as needed.
// A predicate on a created element sets the predicate field.
func (e *Element) SetPath(path string, v simpletype.Value) error {
	steps, err := parsePath(path)
	if err != nil {
		return err
	}
	owner := e
	for _, s := range steps[:len(steps)-1] {
		owner, err = owner.ensureStep(s)
		if err != nil {
			return err
		}
	}
	last := steps[len(steps)-1]
	def := owner.Def().Child(last.name)
	if def == nil {
		return siferrors.Newf(siferrors.CodeUnknownElement, "%s has no child %s", owner.Def().name, last.name).WithTag(last.name, "")
	}
	if def.IsField() {
		_, err = owner.SetField(def, v)
		return err
	}
	target, err := owner.ensureStep(last)
	if err != nil {
		return err
	}
	return target.SetText(v)
}

func (e *Element) ensureStep(s step) (*Element, error) {
	if c := e.findChild(s); c != nil {
		return c, nil
	}
	def := e.Def().Child(s.name)
	if def == nil || def.IsField() {
		return nil, siferrors.Newf(siferrors.CodeUnknownElement, "%s has no child element %s", e.Def().name, s.name).WithTag(s.name, "")
	}
	c := New(def)
	if s.hasPred {
		pd := def.Child(s.predField)
		if pd == nil || !pd.IsField() {
			return nil, siferrors.Newf(siferrors.CodeUnknownElement, "%s has no field %s", def.name, s.predField)
		}
		pv, err := simpletype.Parse(simpletype.Current, pd.ValueKind(), s.predValue)
		if err != nil {
			return nil, err
		}
		if _, err := c.SetField(pd, pv); err != nil {
			return nil, err
		}
	}
	if err := e.AddChild(c); err != nil {
		return nil, err
	}
	return c, nil
}
