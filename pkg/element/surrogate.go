package element

import (
	"github.com/jacoelho/sif/pkg/sifversion"
)

// Surrogate renders and reads a definition whose wire form in some
// versions differs structurally from the object model.
//
// Render is called once per definition when parent is written. Read is
// offered raw content the parser could not resolve; it returns true when
// it consumed the node.
type Surrogate interface {
	Render(w TokenWriter, parent *Element, def *Def, v sifversion.Version) error
	Read(parent *Element, n *Node, v sifversion.Version) (bool, error)
}
