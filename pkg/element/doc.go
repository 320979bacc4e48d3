// Package element implements the SIF object model: schema metadata
// (Def, Registry) and the mutable object graph (Element, Field).
//
// A Def describes one element or attribute for every SIF version: its tag,
// sibling sequence, and whether it renders as an attribute, an element, is
// collapsed into its parent, or is absent. Defs are built once through a
// Builder and are immutable afterwards, so a Registry may be shared by any
// number of goroutines.
//
// The graph itself is version-agnostic. Only the codec consults the
// metadata to decide how a node is rendered for a given version.
package element
