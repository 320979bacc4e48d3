package element

import "strings"

// Attr is an XML attribute.
type Attr struct {
	Name  string
	Value string
}

// Node is a raw XML subtree captured while parsing content that no
// definition claims directly.
type Node struct {
	Name     string
	Text     string
	Attrs    []Attr
	Children []*Node
	Line     int
	Column   int
}

// Attr returns the value of the named attribute.
func (n *Node) Attr(name string) (string, bool) {
	for _, a := range n.Attrs {
		if a.Name == name {
			return a.Value, true
		}
	}
	return "", false
}

// Child returns the first child element with the given name.
func (n *Node) Child(name string) *Node {
	for _, c := range n.Children {
		if c.Name == name {
			return c
		}
	}
	return nil
}

// Select returns the value at a path relative to n: "A/B" is the text of
// grandchild B, "A/@x" the attribute x of child A, "@x" an attribute of n.
func (n *Node) Select(path string) (string, bool) {
	cur := n
	parts := strings.Split(strings.Trim(path, "/"), "/")
	for i, p := range parts {
		if strings.HasPrefix(p, "@") {
			if i != len(parts)-1 {
				return "", false
			}
			return cur.Attr(p[1:])
		}
		if cur = cur.Child(p); cur == nil {
			return "", false
		}
	}
	return cur.Text, true
}

// TokenWriter receives rendered XML tokens. The codec's writer implements
// it; surrogates render through it.
type TokenWriter interface {
	StartElement(tag string, attrs []Attr) error
	Text(text string) error
	EndElement(tag string) error
}

// WriteNode renders n and its subtree to w.
func WriteNode(w TokenWriter, n *Node) error {
	if err := w.StartElement(n.Name, n.Attrs); err != nil {
		return err
	}
	if n.Text != "" {
		if err := w.Text(n.Text); err != nil {
			return err
		}
	}
	for _, c := range n.Children {
		if err := WriteNode(w, c); err != nil {
			return err
		}
	}
	return w.EndElement(n.Name)
}
