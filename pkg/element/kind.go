package element

// Kind classifies how a definition is represented in one SIF version.
type Kind uint8

const (
	// KindUnsupported means the definition has no representation.
	KindUnsupported Kind = iota
	// KindAttribute means the definition renders as an XML attribute.
	KindAttribute
	// KindElement means the definition renders as an XML element.
	KindElement
	// KindCollapsed means the element has no tag; its content attaches to the parent.
	KindCollapsed
)

// String returns the kind name.
func (k Kind) String() string {
	switch k {
	case KindAttribute:
		return "attribute"
	case KindElement:
		return "element"
	case KindCollapsed:
		return "collapsed"
	default:
		return "unsupported"
	}
}
