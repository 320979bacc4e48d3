package element

import (
	"strings"

	"github.com/jacoelho/sif/pkg/sifversion"
	"github.com/jacoelho/sif/pkg/simpletype"
)

// PathMapping maps a value in the object model to its legacy wire path.
// Both paths are relative to the parent element, e.g.
// {Modern: "MostRecent/GradeLevel/Code", Legacy: "GradeLevel/@Code"}.
type PathMapping struct {
	Modern string
	Legacy string
}

// XPathSurrogate renders values found at modern paths under legacy paths,
// and reads them back.
type XPathSurrogate struct {
	mappings []PathMapping
}

// NewXPathSurrogate returns a surrogate for the given mappings.
func NewXPathSurrogate(mappings ...PathMapping) *XPathSurrogate {
	return &XPathSurrogate{mappings: append([]PathMapping(nil), mappings...)}
}

// Mappings returns the path mappings.
func (s *XPathSurrogate) Mappings() []PathMapping {
	return append([]PathMapping(nil), s.mappings...)
}

// Render writes every mapped value present under parent.
func (s *XPathSurrogate) Render(w TokenWriter, parent *Element, _ *Def, v sifversion.Version) error {
	f := simpletype.FormatterFor(v)
	var roots []*Node
	for _, m := range s.mappings {
		val, ok := parent.FindValue(m.Modern)
		if !ok {
			continue
		}
		text, ok := simpletype.Format(f, val)
		if !ok {
			continue
		}
		roots = placeLegacy(roots, strings.Split(strings.Trim(m.Legacy, "/"), "/"), text)
	}
	for _, n := range roots {
		if err := WriteNode(w, n); err != nil {
			return err
		}
	}
	return nil
}

// placeLegacy merges a value at the legacy path into the node forest.
func placeLegacy(roots []*Node, steps []string, text string) []*Node {
	if len(steps) == 0 || strings.HasPrefix(steps[0], "@") {
		return roots
	}
	var n *Node
	for _, r := range roots {
		if r.Name == steps[0] {
			n = r
			break
		}
	}
	if n == nil {
		n = &Node{Name: steps[0]}
		roots = append(roots, n)
	}
	rest := steps[1:]
	switch {
	case len(rest) == 0:
		n.Text = text
	case len(rest) == 1 && strings.HasPrefix(rest[0], "@"):
		n.Attrs = append(n.Attrs, Attr{Name: rest[0][1:], Value: text})
	default:
		n.Children = placeLegacy(n.Children, rest, text)
	}
	return roots
}

// Read claims n when a mapping's legacy path starts at n, assigning every
// mapped value it finds.
func (s *XPathSurrogate) Read(parent *Element, n *Node, v sifversion.Version) (bool, error) {
	f := simpletype.FormatterFor(v)
	claimed := false
	for _, m := range s.mappings {
		first, rest, _ := strings.Cut(strings.Trim(m.Legacy, "/"), "/")
		if first != n.Name {
			continue
		}
		claimed = true
		var (
			text string
			ok   bool
		)
		if rest == "" {
			text, ok = n.Text, true
		} else {
			text, ok = n.Select(rest)
		}
		if !ok {
			continue
		}
		def, err := parent.ResolvePath(m.Modern)
		if err != nil {
			return true, err
		}
		val, err := simpletype.Parse(f, def.ValueKind(), text)
		if err != nil {
			return true, err
		}
		if err := parent.SetPath(m.Modern, val); err != nil {
			return true, err
		}
	}
	return claimed, nil
}
