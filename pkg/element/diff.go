package element

import (
	siferrors "github.com/jacoelho/sif/errors"
)

// Item is one side of a difference: a *Field or an *Element.
// A nil Item stands for the side where the node is absent.
type Item interface {
	Def() *Def
	Path() string
}

// CompareGraphTo compares the graph rooted at e with other and returns
// the differing nodes as parallel slices: src[i] differs from dst[i].
// Repeatable children are matched by key. Fields absent on one side pair
// with nil.
func (e *Element) CompareGraphTo(other *Element) (src, dst []Item, err error) {
	if other == nil {
		return nil, nil, siferrors.New(siferrors.CodeGraphMismatch, "nil comparison target")
	}
	if !e.Def().Is(other.Def()) && !other.Def().Is(e.Def()) {
		return nil, nil, siferrors.Newf(siferrors.CodeGraphMismatch, "cannot compare %s with %s", e.Def().name, other.Def().name)
	}
	var d differ
	d.compare(e, other)
	return d.src, d.dst, nil
}

type differ struct {
	src []Item
	dst []Item
}

func (d *differ) pair(a, b Item) {
	d.src = append(d.src, a)
	d.dst = append(d.dst, b)
}

func (d *differ) compare(a, b *Element) {
	d.compareFields(a, b)

	ta, okA := a.Text()
	tb, okB := b.Text()
	if (okA || okB) && !ta.Equal(tb) {
		d.pair(a, b)
	}

	bChildren := b.Children()
	matched := make([]bool, len(bChildren))
	occurrence := make(map[*Def]int)
	for _, ca := range a.Children() {
		n := 0
		if _, keyed := identity(ca); !keyed {
			n = occurrence[ca.Def()]
			occurrence[ca.Def()] = n + 1
		}
		idx := matchChild(ca, n, bChildren, matched)
		if idx < 0 {
			d.pair(ca, nil)
			continue
		}
		matched[idx] = true
		d.compare(ca, bChildren[idx])
	}
	for i, cb := range bChildren {
		if !matched[i] {
			d.pair(nil, cb)
		}
	}
}

func (d *differ) compareFields(a, b *Element) {
	fa, fb := a.Fields(), b.Fields()
	byDef := make(map[*Def]*Field, len(fb))
	for _, f := range fb {
		byDef[f.def] = f
	}
	seen := make(map[*Def]bool, len(fa))
	for _, f := range fa {
		seen[f.def] = true
		g, ok := byDef[f.def]
		if !ok {
			d.pair(f, nil)
			continue
		}
		if !f.Value().Equal(g.Value()) {
			d.pair(f, g)
		}
	}
	for _, g := range fb {
		if !seen[g.def] {
			d.pair(nil, g)
		}
	}
}

// identity returns the key of a repeatable child and whether it has one.
func identity(c *Element) (string, bool) {
	if !c.Def().IsRepeatable() {
		return "", false
	}
	key := c.Key()
	return key, key != ""
}

// matchChild finds the counterpart of c among candidates. Keyed children
// match the unmatched candidate with the same key. Unkeyed children match
// the n-th unkeyed candidate of their definition, where n is the position
// of c among its own unkeyed siblings.
func matchChild(c *Element, n int, candidates []*Element, matched []bool) int {
	def := c.Def()
	if key, keyed := identity(c); keyed {
		for i, o := range candidates {
			if matched[i] || o.Def() != def {
				continue
			}
			if k, ok := identity(o); ok && k == key {
				return i
			}
		}
		return -1
	}
	seen := 0
	for i, o := range candidates {
		if o.Def() != def {
			continue
		}
		if _, keyed := identity(o); keyed {
			continue
		}
		if seen == n {
			if matched[i] {
				return -1
			}
			return i
		}
		seen++
	}
	return -1
}
