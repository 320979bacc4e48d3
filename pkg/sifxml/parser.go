package sifxml

import (
	"encoding/xml"
	"io"
	"strings"

	siferrors "github.com/jacoelho/sif/errors"
	"github.com/jacoelho/sif/pkg/element"
	"github.com/jacoelho/sif/pkg/sifversion"
	"github.com/jacoelho/sif/pkg/simpletype"
)

// MessageTag is the envelope element wrapping every SIF message payload.
const MessageTag = "SIF_Message"

// frame is one open element on the parse stack: a graph element, or a
// field whose text is being collected.
type frame struct {
	el     *element.Element
	def    *element.Def
	field  *element.Def
	owner  *element.Element
	tag    string
	text   strings.Builder
	line   int
	column int
	nilled bool
	// content is set once a child element starts inside the frame.
	content bool
}

// Parser reconstructs an object graph from one document per Parse call.
// It holds cursor state and is not safe for concurrent use.
type Parser struct {
	ctx      Context
	r        *eventReader
	f        simpletype.Formatter
	stack    []*frame
	warnings siferrors.List
	v        sifversion.Version
}

// NewParser returns a parser for ctx.
func NewParser(ctx Context) *Parser {
	return &Parser{ctx: ctx}
}

// Version returns the version detected by the last Parse.
func (p *Parser) Version() sifversion.Version { return p.v }

// Warnings returns the malformed values skipped by the last lenient Parse.
func (p *Parser) Warnings() siferrors.List { return p.warnings }

// Parse reads one document and returns its root element: the payload of a
// SIF_Message envelope, or a bare object or payload. On failure no graph
// is returned.
func (p *Parser) Parse(r io.Reader) (*element.Element, error) {
	p.r = newEventReader(r, p.ctx.KeepMessageContent)
	p.stack = p.stack[:0]
	p.warnings = nil
	p.v = sifversion.Version{}

	root, err := p.parseDocument()
	if err != nil {
		return nil, err
	}
	if p.ctx.KeepMessageContent {
		root.SetRaw(p.r.rawBytes())
	}
	return root, nil
}

func (p *Parser) parseDocument() (*element.Element, error) {
	start, err := p.nextStart()
	if err == io.EOF {
		return nil, siferrors.New(siferrors.CodeXMLSyntax, "empty document")
	}
	if err != nil {
		return nil, err
	}
	envelope := start.Name == MessageTag
	if err := p.detectVersion(start, envelope); err != nil {
		return nil, err
	}

	var root *element.Element
	if envelope {
		root, err = p.parseEnvelope(start)
	} else {
		root, err = p.parseRoot(start, start.Space)
	}
	if err != nil {
		return nil, err
	}
	if err := p.expectEOF(); err != nil {
		return nil, err
	}
	return root, nil
}

// detectVersion resolves the document version: the envelope Version
// attribute, then a namespace, then the configured version.
func (p *Parser) detectVersion(start event, envelope bool) error {
	v := p.ctx.Version
	if s, ok := attrValue(start.Attrs, "Version"); envelope && ok {
		parsed, err := sifversion.Parse(s)
		if err != nil {
			return located(err, start.Line, start.Column)
		}
		v = parsed
	} else if exact, ok := sifversion.ParseNamespace(start.Space); ok {
		v = exact
	} else if major, ok := sifversion.NamespaceMajor(start.Space); ok && major != v.Major() {
		v, _ = sifversion.LatestOfMajor(major)
	}
	if p.ctx.StrictVersioning && v != p.ctx.Version {
		return siferrors.Newf(siferrors.CodeVersionMismatch, "document version %s does not match %s", v, p.ctx.Version).
			WithTag(start.Name, v.String()).WithPosition(start.Line, start.Column)
	}
	p.v = v
	p.f = simpletype.FormatterFor(v)
	return nil
}

func (p *Parser) parseEnvelope(start event) (*element.Element, error) {
	for _, a := range start.Attrs {
		if isDeclaration(a) || isXSI(a.Name) || (a.Name.Space == "" && a.Name.Local == "Version") {
			continue
		}
		return nil, siferrors.New(siferrors.CodeUnknownAttribute, "unknown attribute").
			WithTag(a.Name.Local, p.v.String()).WithPosition(start.Line, start.Column)
	}
	var payload *element.Element
	for {
		ev, err := p.r.next()
		if err == io.EOF {
			return nil, siferrors.New(siferrors.CodeXMLSyntax, "unexpected end of document").WithTag(MessageTag, p.v.String())
		}
		if err != nil {
			return nil, err
		}
		switch ev.Kind {
		case eventText:
			if simpletype.TrimXMLWhitespace(ev.Text) != "" {
				return nil, siferrors.New(siferrors.CodeUnexpectedText, "unexpected text").
					WithTag(MessageTag, p.v.String()).WithPosition(ev.Line, ev.Column)
			}
		case eventStart:
			if payload != nil {
				return nil, siferrors.New(siferrors.CodeNoPayload, "SIF_Message must contain exactly one payload").
					WithTag(ev.Name, p.v.String()).WithPosition(ev.Line, ev.Column)
			}
			payload, err = p.parseRoot(ev, start.Space)
			if err != nil {
				return nil, err
			}
		case eventEnd:
			if payload == nil {
				return nil, siferrors.New(siferrors.CodeNoPayload, "SIF_Message has no payload").
					WithTag(MessageTag, p.v.String()).WithPosition(ev.Line, ev.Column)
			}
			return payload, nil
		}
	}
}

func (p *Parser) parseRoot(start event, namespace string) (*element.Element, error) {
	def, err := p.ctx.Registry.LookupRoot(start.Name, p.v)
	if err != nil {
		return nil, located(err, start.Line, start.Column)
	}
	root := p.ctx.Registry.New(def)
	root.SetVersion(p.v)
	root.SetNamespace(namespace)
	fr := &frame{el: root, def: def, tag: start.Name, line: start.Line, column: start.Column, nilled: isNil(start.Attrs)}
	if err := p.applyAttrs(fr, start.Attrs); err != nil {
		return nil, err
	}
	p.stack = append(p.stack[:0], fr)
	if err := p.walk(); err != nil {
		return nil, err
	}
	return root, nil
}

func (p *Parser) walk() error {
	for len(p.stack) > 0 {
		ev, err := p.r.next()
		if err == io.EOF {
			return siferrors.New(siferrors.CodeXMLSyntax, "unexpected end of document")
		}
		if err != nil {
			return err
		}
		top := p.stack[len(p.stack)-1]
		switch ev.Kind {
		case eventText:
			top.text.WriteString(ev.Text)
		case eventStart:
			if err := p.startChild(top, ev); err != nil {
				return err
			}
		case eventEnd:
			p.stack = p.stack[:len(p.stack)-1]
			if err := p.finish(top); err != nil {
				return err
			}
		}
	}
	return nil
}

func (p *Parser) startChild(top *frame, ev event) error {
	top.content = true
	if top.field != nil {
		return siferrors.New(siferrors.CodeUnknownElement, "element inside simple field "+top.tag).
			WithTag(ev.Name, p.v.String()).WithPosition(ev.Line, ev.Column)
	}
	res, err := p.ctx.Registry.Resolve(top.def, ev.Name, p.v, false)
	if err != nil {
		if p.v.Less(sifversion.SIF20) {
			claimed, serr := p.trySurrogates(top, ev)
			if serr != nil {
				return serr
			}
			if claimed {
				return nil
			}
		}
		return located(err, ev.Line, ev.Column)
	}
	owner, err := p.descend(top.el, res.Via)
	if err != nil {
		return located(err, ev.Line, ev.Column)
	}
	if res.Def.IsField() {
		for _, a := range ev.Attrs {
			if isDeclaration(a) || isXSI(a.Name) {
				continue
			}
			return siferrors.New(siferrors.CodeUnknownAttribute, "unknown attribute on "+ev.Name).
				WithTag(a.Name.Local, p.v.String()).WithPosition(ev.Line, ev.Column)
		}
		p.stack = append(p.stack, &frame{
			field: res.Def, owner: owner, tag: ev.Name,
			line: ev.Line, column: ev.Column, nilled: isNil(ev.Attrs),
		})
		return nil
	}
	child := p.ctx.Registry.New(res.Def)
	if err := owner.AddChild(child); err != nil {
		return located(err, ev.Line, ev.Column)
	}
	fr := &frame{el: child, def: child.Def(), tag: ev.Name, line: ev.Line, column: ev.Column, nilled: isNil(ev.Attrs)}
	if err := p.applyAttrs(fr, ev.Attrs); err != nil {
		return err
	}
	p.stack = append(p.stack, fr)
	return nil
}

// descend returns the element content attaches to after passing through
// collapsed intermediates, creating them on first use.
func (p *Parser) descend(el *element.Element, via []*element.Def) (*element.Element, error) {
	for _, d := range via {
		next := el.Child(d)
		if next == nil {
			next = p.ctx.Registry.New(d)
			if err := el.AddChild(next); err != nil {
				return nil, err
			}
		}
		el = next
	}
	return el, nil
}

func (p *Parser) applyAttrs(fr *frame, attrs []xml.Attr) error {
	for _, a := range attrs {
		if isDeclaration(a) || isXSI(a.Name) {
			continue
		}
		if a.Name.Space != "" {
			return siferrors.New(siferrors.CodeUnknownAttribute, "unknown qualified attribute "+a.Name.Space).
				WithTag(a.Name.Local, p.v.String()).WithPosition(fr.line, fr.column)
		}
		res, err := p.ctx.Registry.Resolve(fr.def, a.Name.Local, p.v, true)
		if err != nil {
			return located(err, fr.line, fr.column)
		}
		owner, err := p.descend(fr.el, res.Via)
		if err != nil {
			return located(err, fr.line, fr.column)
		}
		val, ok, err := p.convert(res.Def, a.Name.Local, a.Value, false, fr.line, fr.column)
		if err != nil {
			return err
		}
		if !ok {
			continue
		}
		if _, err := owner.SetField(res.Def, val); err != nil {
			return located(err, fr.line, fr.column)
		}
	}
	return nil
}

func (p *Parser) finish(fr *frame) error {
	text := fr.text.String()
	if fr.field != nil {
		val, ok, err := p.convert(fr.field, fr.tag, text, fr.nilled, fr.line, fr.column)
		if err != nil || !ok {
			return err
		}
		if _, err := fr.owner.SetField(fr.field, val); err != nil {
			return located(err, fr.line, fr.column)
		}
		return nil
	}
	if fr.def.HasText() {
		if fr.content && !fr.nilled && simpletype.TrimXMLWhitespace(text) == "" {
			return nil
		}
		val, ok, err := p.convert(fr.def, fr.tag, text, fr.nilled, fr.line, fr.column)
		if err != nil || !ok {
			return err
		}
		return located(fr.el.SetText(val), fr.line, fr.column)
	}
	if simpletype.TrimXMLWhitespace(text) != "" {
		return siferrors.New(siferrors.CodeUnexpectedText, "unexpected text content").
			WithTag(fr.tag, p.v.String()).WithPosition(fr.line, fr.column)
	}
	return nil
}

// convert parses leaf text for def. Under lenient parsing a malformed
// value is logged and reported as not ok.
func (p *Parser) convert(def *element.Def, tag, text string, nilled bool, line, column int) (simpletype.Value, bool, error) {
	k := def.ValueKind()
	if nilled || (k != simpletype.KindString && simpletype.TrimXMLWhitespace(text) == "") {
		return simpletype.Nil(k), true, nil
	}
	val, err := simpletype.Parse(p.f, k, text)
	if err == nil {
		return val, true, nil
	}
	e, ok := siferrors.As(err)
	if !ok {
		return simpletype.Value{}, false, err
	}
	e = e.WithTag(tag, p.v.String()).WithPosition(line, column)
	if p.ctx.StrictTypeParsing {
		return simpletype.Value{}, false, e
	}
	p.warn(e, text)
	return simpletype.Value{}, false, nil
}

func (p *Parser) warn(e *siferrors.Error, text string) {
	p.warnings = append(p.warnings, e)
	p.ctx.Logger.Warn().
		Str("tag", e.Tag).
		Str("version", p.v.String()).
		Str("text", text).
		Int("line", e.Line).
		Err(e.Err).
		Msg("skipping malformed value")
}

// trySurrogates captures the unresolved subtree and offers it to the
// surrogates registered under the current element. The first claim wins.
func (p *Parser) trySurrogates(top *frame, ev event) (bool, error) {
	node, err := p.capture(ev)
	if err != nil {
		return false, err
	}
	for _, b := range p.ctx.Registry.Surrogates(top.def, p.v) {
		claimed, err := b.Surrogate.Read(top.el, node, p.v)
		if err != nil {
			e, ok := siferrors.As(err)
			if ok && siferrors.IsTypeParse(err) && !p.ctx.StrictTypeParsing {
				p.warn(e.WithTag(node.Name, p.v.String()).WithPosition(node.Line, node.Column), node.Text)
				return true, nil
			}
			return false, located(err, node.Line, node.Column)
		}
		if claimed {
			return true, nil
		}
	}
	return false, nil
}

// capture consumes the subtree opened by ev into a raw node.
func (p *Parser) capture(ev event) (*element.Node, error) {
	root := newNode(ev)
	open := []*element.Node{root}
	for len(open) > 0 {
		next, err := p.r.next()
		if err == io.EOF {
			return nil, siferrors.New(siferrors.CodeXMLSyntax, "unexpected end of document")
		}
		if err != nil {
			return nil, err
		}
		top := open[len(open)-1]
		switch next.Kind {
		case eventText:
			top.Text += next.Text
		case eventStart:
			child := newNode(next)
			top.Children = append(top.Children, child)
			open = append(open, child)
		case eventEnd:
			open = open[:len(open)-1]
		}
	}
	return root, nil
}

func newNode(ev event) *element.Node {
	n := &element.Node{Name: ev.Name, Line: ev.Line, Column: ev.Column}
	for _, a := range ev.Attrs {
		if isDeclaration(a) {
			continue
		}
		n.Attrs = append(n.Attrs, element.Attr{Name: a.Name.Local, Value: a.Value})
	}
	return n
}

func (p *Parser) nextStart() (event, error) {
	for {
		ev, err := p.r.next()
		if err != nil {
			return event{}, err
		}
		switch ev.Kind {
		case eventStart:
			return ev, nil
		case eventText:
			if simpletype.TrimXMLWhitespace(ev.Text) != "" {
				return event{}, siferrors.New(siferrors.CodeXMLSyntax, "text outside the document element").WithPosition(ev.Line, ev.Column)
			}
		default:
			return event{}, siferrors.New(siferrors.CodeXMLSyntax, "unexpected end element").WithPosition(ev.Line, ev.Column)
		}
	}
}

func (p *Parser) expectEOF() error {
	_, err := p.nextStart()
	if err == io.EOF {
		return nil
	}
	if err != nil {
		return err
	}
	return siferrors.New(siferrors.CodeXMLSyntax, "content after the document element")
}

// located attaches a position to a sif error that has none.
func located(err error, line, column int) error {
	if err == nil {
		return nil
	}
	e, ok := siferrors.As(err)
	if !ok || e.Line > 0 {
		return err
	}
	return e.WithPosition(line, column)
}
