package sifxml

import (
	"bytes"
	"encoding/xml"
	"errors"
	"io"
	"strings"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"

	siferrors "github.com/jacoelho/sif/errors"
)

const (
	xsiNamespace   = "http://www.w3.org/2001/XMLSchema-instance"
	xmlnsNamespace = "xmlns"
)

type eventKind uint8

const (
	eventStart eventKind = iota + 1
	eventEnd
	eventText
)

// event is one pull-reader step. Name is the local name; Space the
// resolved namespace URI.
type event struct {
	Name   string
	Space  string
	Text   string
	Attrs  []xml.Attr
	Line   int
	Column int
	Kind   eventKind
}

// eventReader pulls start, end and character events from a UTF-8 document,
// dropping comments, processing instructions and directives.
type eventReader struct {
	dec        *xml.Decoder
	raw        *bytes.Buffer
	badCharset string
}

func newEventReader(r io.Reader, keep bool) *eventReader {
	er := &eventReader{}
	in := transform.NewReader(r, transform.Chain(encoding.UTF8Validator, unicode.UTF8BOM.NewDecoder()))
	var src io.Reader = in
	if keep {
		er.raw = &bytes.Buffer{}
		src = io.TeeReader(in, er.raw)
	}
	er.dec = xml.NewDecoder(src)
	er.dec.CharsetReader = func(label string, input io.Reader) (io.Reader, error) {
		if strings.EqualFold(label, "utf8") {
			return input, nil
		}
		er.badCharset = label
		return nil, errors.New("unsupported charset")
	}
	return er
}

// next returns the next event.
func (er *eventReader) next() (event, error) {
	for {
		line, col := er.dec.InputPos()
		tok, err := er.dec.Token()
		if err != nil {
			if err == io.EOF {
				return event{}, io.EOF
			}
			return event{}, er.wrap(err, line, col)
		}
		switch t := tok.(type) {
		case xml.StartElement:
			return event{Kind: eventStart, Name: t.Name.Local, Space: t.Name.Space, Attrs: t.Attr, Line: line, Column: col}, nil
		case xml.EndElement:
			return event{Kind: eventEnd, Name: t.Name.Local, Space: t.Name.Space, Line: line, Column: col}, nil
		case xml.CharData:
			return event{Kind: eventText, Text: string(t), Line: line, Column: col}, nil
		}
	}
}

// rawBytes returns the document bytes read so far when retention is on.
func (er *eventReader) rawBytes() []byte {
	if er.raw == nil {
		return nil
	}
	return append([]byte(nil), er.raw.Bytes()...)
}

func (er *eventReader) wrap(err error, line, col int) error {
	switch {
	case er.badCharset != "":
		return siferrors.Newf(siferrors.CodeEncoding, "unsupported encoding %q: documents must be UTF-8", er.badCharset).WithPosition(line, col)
	case errors.Is(err, encoding.ErrInvalidUTF8):
		return siferrors.Wrap(siferrors.CodeEncoding, err, "invalid UTF-8").WithPosition(line, col)
	}
	var syn *xml.SyntaxError
	if errors.As(err, &syn) {
		if l, c := er.dec.InputPos(); l == syn.Line {
			col = c
		} else {
			col = 0
		}
		return siferrors.Wrap(siferrors.CodeXMLSyntax, err, syn.Msg).WithPosition(syn.Line, col)
	}
	return siferrors.Wrap(siferrors.CodeXMLSyntax, err, "read xml").WithPosition(line, col)
}

// attrValue returns the value of an unqualified attribute.
func attrValue(attrs []xml.Attr, local string) (string, bool) {
	for _, a := range attrs {
		if a.Name.Space == "" && a.Name.Local == local {
			return a.Value, true
		}
	}
	return "", false
}

// isNil reports whether attrs carry xsi:nil="true".
func isNil(attrs []xml.Attr) bool {
	for _, a := range attrs {
		if isXSI(a.Name) && a.Name.Local == "nil" {
			v := strings.TrimSpace(a.Value)
			return v == "true" || v == "1"
		}
	}
	return false
}

func isXSI(n xml.Name) bool {
	return n.Space == xsiNamespace || n.Space == "xsi"
}

// isDeclaration reports whether a is a namespace declaration.
func isDeclaration(a xml.Attr) bool {
	return a.Name.Space == xmlnsNamespace || (a.Name.Space == "" && a.Name.Local == xmlnsNamespace)
}
