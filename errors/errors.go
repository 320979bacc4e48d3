// Package errors defines the structured errors reported by the SIF codec.
//
// Every failure carries a Code that places it in one of the error classes
// (schema, type, version, structural, syntax). Callers inspect errors with
// As or the Is* helpers; the core never retries.
package errors

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// Code identifies a codec failure.
type Code string

const (
	// CodeUnknownElement indicates an element tag has no definition for the version.
	CodeUnknownElement Code = "sif-schema-unknown-element"
	// CodeUnknownAttribute indicates an attribute has no definition for the version.
	CodeUnknownAttribute Code = "sif-schema-unknown-attribute"
	// CodeUnexpectedText indicates character data in element-only content.
	CodeUnexpectedText Code = "sif-schema-unexpected-text"
	// CodeUnsupportedInVersion indicates a definition is not represented in the target version.
	CodeUnsupportedInVersion Code = "sif-schema-unsupported-in-version"

	// CodeTypeParse indicates leaf text does not match its declared type.
	CodeTypeParse Code = "sif-type-parse"
	// CodeTypeMismatch indicates a value kind differs from the kind declared by its definition.
	CodeTypeMismatch Code = "sif-type-mismatch"

	// CodeVersionUnsupported indicates a version string or namespace is not known.
	CodeVersionUnsupported Code = "sif-version-unsupported"
	// CodeVersionMismatch indicates strict versioning rejected the document version.
	CodeVersionMismatch Code = "sif-version-mismatch"

	// CodeAlreadyParented indicates an element was attached while owned by another parent.
	CodeAlreadyParented Code = "sif-structure-already-parented"
	// CodeInvalidChild indicates a definition is not a child of the target element.
	CodeInvalidChild Code = "sif-structure-invalid-child"
	// CodeGraphMismatch indicates two graphs with different root definitions were compared.
	CodeGraphMismatch Code = "sif-structure-graph-mismatch"
	// CodeRegistry indicates an inconsistent schema registry definition.
	CodeRegistry Code = "sif-structure-registry"

	// CodeXMLSyntax indicates the document is not well-formed.
	CodeXMLSyntax Code = "xml-syntax"
	// CodeEncoding indicates the document is not UTF-8.
	CodeEncoding Code = "xml-encoding"
	// CodeNoPayload indicates a SIF_Message without exactly one payload.
	CodeNoPayload Code = "sif-message-no-payload"
)

// Class groups codes by handling policy.
type Class uint8

const (
	ClassUnknown Class = iota
	ClassSchema
	ClassType
	ClassVersion
	ClassStructural
	ClassSyntax
)

// String returns the class name.
func (c Class) String() string {
	switch c {
	case ClassSchema:
		return "schema"
	case ClassType:
		return "type"
	case ClassVersion:
		return "version"
	case ClassStructural:
		return "structural"
	case ClassSyntax:
		return "syntax"
	default:
		return "unknown"
	}
}

// Class reports the class of the code.
func (c Code) Class() Class {
	switch c {
	case CodeUnknownElement, CodeUnknownAttribute, CodeUnexpectedText, CodeUnsupportedInVersion:
		return ClassSchema
	case CodeTypeParse, CodeTypeMismatch:
		return ClassType
	case CodeVersionUnsupported, CodeVersionMismatch:
		return ClassVersion
	case CodeAlreadyParented, CodeInvalidChild, CodeGraphMismatch, CodeRegistry:
		return ClassStructural
	case CodeXMLSyntax, CodeEncoding, CodeNoPayload:
		return ClassSyntax
	default:
		return ClassUnknown
	}
}

// Error describes a codec failure with the offending tag, version and
// optional document position.
//
//nolint:errname // public API name mirrors the protocol term.
type Error struct {
	Err     error
	Code    Code
	Message string
	Tag     string
	Version string
	Path    string
	Line    int
	Column  int
}

// Error formats the failure for display, including code, message, and context.
func (e *Error) Error() string {
	if e == nil {
		return "sif error <nil>"
	}

	var b strings.Builder
	fmt.Fprintf(&b, "[%s] %s", e.Code, e.Message)
	if e.Tag != "" {
		fmt.Fprintf(&b, " (tag: %s)", e.Tag)
	}
	if e.Version != "" {
		fmt.Fprintf(&b, " (version: %s)", e.Version)
	}
	if e.Path != "" {
		fmt.Fprintf(&b, " at %s", e.Path)
	}
	if e.Line > 0 {
		pos := "line " + strconv.Itoa(e.Line)
		if e.Column > 0 {
			pos += ", column " + strconv.Itoa(e.Column)
		}
		if e.Path == "" {
			b.WriteString(" at " + pos)
		} else {
			b.WriteString(" (" + pos + ")")
		}
	}
	if e.Err != nil {
		fmt.Fprintf(&b, ": %v", e.Err)
	}
	return b.String()
}

// Unwrap returns the underlying cause.
func (e *Error) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// Is matches another *Error by code so errors.Is works with sentinel values.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok || e == nil || t == nil {
		return false
	}
	return t.Code == e.Code && t.Message == ""
}

// WithTag returns a copy of e carrying the tag and version.
func (e *Error) WithTag(tag, version string) *Error {
	out := *e
	out.Tag = tag
	out.Version = version
	return &out
}

// WithPosition returns a copy of e carrying a document position.
func (e *Error) WithPosition(line, column int) *Error {
	out := *e
	out.Line = line
	out.Column = column
	return &out
}

// WithPath returns a copy of e carrying a graph path.
func (e *Error) WithPath(path string) *Error {
	out := *e
	out.Path = path
	return &out
}

// New builds an Error with a code and message.
func New(code Code, msg string) *Error {
	return &Error{Code: code, Message: msg}
}

// Newf formats a message and builds an Error.
func Newf(code Code, format string, args ...any) *Error {
	return New(code, fmt.Sprintf(format, args...))
}

// Wrap builds an Error with a code and message around cause.
func Wrap(code Code, cause error, msg string) *Error {
	return &Error{Code: code, Message: msg, Err: cause}
}

// Sentinel returns a code-only Error usable as an errors.Is target.
func Sentinel(code Code) *Error {
	return &Error{Code: code}
}

// As extracts the first *Error in err's chain.
func As(err error) (*Error, bool) {
	if err == nil {
		return nil, false
	}
	var e *Error
	if errors.As(err, &e) && e != nil {
		return e, true
	}
	return nil, false
}

// CodeOf returns the code of the first *Error in err's chain.
func CodeOf(err error) (Code, bool) {
	e, ok := As(err)
	if !ok {
		return "", false
	}
	return e.Code, true
}

// IsSchema reports whether err is a schema error.
func IsSchema(err error) bool { return classOf(err) == ClassSchema }

// IsTypeParse reports whether err is a type error.
func IsTypeParse(err error) bool { return classOf(err) == ClassType }

// IsVersion reports whether err is a version error.
func IsVersion(err error) bool { return classOf(err) == ClassVersion }

// IsStructural reports whether err is a structural (programmer) error.
func IsStructural(err error) bool { return classOf(err) == ClassStructural }

// IsSyntax reports whether err is an XML syntax or envelope error.
func IsSyntax(err error) bool { return classOf(err) == ClassSyntax }

func classOf(err error) Class {
	code, ok := CodeOf(err)
	if !ok {
		return ClassUnknown
	}
	return code.Class()
}

// List collects warnings recorded by lenient parsing.
type List []*Error //nolint:errname // public API name, keep for symmetry with Error.

// Error returns a compact summary of the list.
func (l List) Error() string {
	switch len(l) {
	case 0:
		return "no sif errors"
	case 1:
		return l[0].Error()
	default:
		return fmt.Sprintf("%s (and %d more)", l[0].Error(), len(l)-1)
	}
}

// Err returns l as an error, or nil when empty.
func (l List) Err() error {
	if len(l) == 0 {
		return nil
	}
	return l
}

// Unwrap exposes the collected errors to errors.Is and errors.As.
func (l List) Unwrap() []error {
	out := make([]error, len(l))
	for i, e := range l {
		out[i] = e
	}
	return out
}
