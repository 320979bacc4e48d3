package sifxml

import (
	"bufio"
	"encoding/xml"
	"fmt"
	"io"
	"sort"
	"strings"

	siferrors "github.com/jacoelho/sif/errors"
	"github.com/jacoelho/sif/pkg/element"
	"github.com/jacoelho/sif/pkg/sifversion"
	"github.com/jacoelho/sif/pkg/simpletype"
)

const declaration = `<?xml version="1.0" encoding="UTF-8"?>`

type level struct {
	tag      string
	children bool
	text     bool
}

// Writer renders object graphs to one output stream. It implements
// element.TokenWriter for surrogates and is not safe for concurrent use.
type Writer struct {
	ctx     Context
	out     *bufio.Writer
	err     error
	f       simpletype.Formatter
	levels  []level
	open    bool
	started bool
	xsi     bool
}

// NewWriter returns a writer emitting to w.
func NewWriter(w io.Writer, ctx Context) *Writer {
	return &Writer{ctx: ctx, out: bufio.NewWriter(w)}
}

// Write renders e as a document root for version v. A zero v uses the
// element's effective version. Unchanged descendants are skipped; the root
// and its attributes are always rendered.
func (w *Writer) Write(e *element.Element, v sifversion.Version) error {
	v, err := w.begin(e, v)
	if err != nil {
		return err
	}
	var attrs []element.Attr
	if ns, ok := e.Namespace(); ok && ns != "" && e.Version() == v {
		attrs = append(attrs, element.Attr{Name: "xmlns", Value: ns})
	}
	w.renderElement(e, v, attrs, true)
	return w.finish()
}

// WriteMessage renders payload e wrapped in a SIF_Message envelope for v.
// The envelope carries the namespace read from the source document when
// the versions agree, otherwise the namespace of v.
func (w *Writer) WriteMessage(e *element.Element, v sifversion.Version) error {
	if !e.Def().IsPayload() {
		return siferrors.Newf(siferrors.CodeNoPayload, "%s is not a message payload", e.Def().Name())
	}
	v, err := w.begin(e, v)
	if err != nil {
		return err
	}
	ns := v.Namespace()
	if stored, ok := e.Namespace(); ok && e.Version() == v {
		ns = stored
	}
	var attrs []element.Attr
	if ns != "" {
		attrs = append(attrs, element.Attr{Name: "xmlns", Value: ns})
	}
	if v.HasVersionAttribute() {
		attrs = append(attrs, element.Attr{Name: "Version", Value: v.String()})
	}
	w.record(w.StartElement(MessageTag, attrs))
	w.renderElement(e, v, nil, true)
	w.record(w.EndElement(MessageTag))
	return w.finish()
}

func (w *Writer) begin(e *element.Element, v sifversion.Version) (sifversion.Version, error) {
	if v.IsZero() {
		v = e.EffectiveVersion()
	}
	if !v.IsKnown() {
		return v, siferrors.Newf(siferrors.CodeVersionUnsupported, "unsupported version %s", v)
	}
	def := e.Def()
	if def.Classify(v) != element.KindElement {
		return v, siferrors.Newf(siferrors.CodeUnsupportedInVersion, "%s cannot be rendered", def.Name()).WithTag(def.LocalName(), v.String())
	}
	w.err = nil
	w.levels = w.levels[:0]
	w.open = false
	w.started = false
	w.f = simpletype.FormatterFor(v)
	w.xsi = v.SupportsNil() && containsNil(e, v)
	if w.ctx.Declaration {
		w.raw(declaration)
		w.started = true
	}
	return v, nil
}

func (w *Writer) finish() error {
	if w.err == nil && len(w.levels) > 0 {
		w.err = fmt.Errorf("unclosed element %s", w.levels[len(w.levels)-1].tag)
	}
	if w.err == nil && w.ctx.Indent != "" {
		w.raw("\n")
	}
	if w.err != nil {
		return w.err
	}
	return w.out.Flush()
}

func (w *Writer) record(err error) {
	if w.err == nil && err != nil {
		w.err = err
	}
}

func (w *Writer) renderElement(e *element.Element, v sifversion.Version, extra []element.Attr, root bool) {
	def := e.Def()
	tag := def.Tag(v)
	attrs := append(extra, w.attributes(e, v, root)...)
	if text, ok := e.Text(); ok && text.IsNil() && v.SupportsNil() {
		attrs = append(attrs, element.Attr{Name: "xsi:nil", Value: "true"})
	}
	w.record(w.StartElement(tag, attrs))
	if !e.IsEmpty() {
		w.content(e, v)
	}
	w.record(w.EndElement(tag))
}

type attrItem struct {
	attr element.Attr
	seq  int
}

// attributes returns the attribute fields of e, including those of
// collapsed children, in sequence order. Root attributes are mandatory.
func (w *Writer) attributes(e *element.Element, v sifversion.Version, root bool) []element.Attr {
	var items []attrItem
	w.collectAttrs(e, v, root, &items)
	sort.SliceStable(items, func(i, j int) bool { return items[i].seq < items[j].seq })
	out := make([]element.Attr, len(items))
	for i, it := range items {
		out[i] = it.attr
	}
	return out
}

func (w *Writer) collectAttrs(e *element.Element, v sifversion.Version, root bool, items *[]attrItem) {
	for _, f := range e.Fields() {
		d := f.Def()
		if d.Classify(v) != element.KindAttribute || !(root || d.IsKey() || f.IsChanged()) {
			continue
		}
		s, ok := simpletype.Format(w.f, f.Value())
		if !ok {
			continue
		}
		*items = append(*items, attrItem{attr: element.Attr{Name: d.Tag(v), Value: s}, seq: d.Sequence(v)})
	}
	for _, c := range e.Children() {
		if c.Def().Classify(v) == element.KindCollapsed && c.IsChanged() {
			w.collectAttrs(c, v, false, items)
		}
	}
}

type contentItem struct {
	field     *element.Field
	child     *element.Element
	surrogate element.Surrogate
	def       *element.Def
	seq       int
}

// content renders text, element fields, children and surrogates of e in
// the sequence order of v.
func (w *Writer) content(e *element.Element, v sifversion.Version) {
	if text, ok := e.Text(); ok {
		if s, ok := simpletype.Format(w.f, text); ok && s != "" {
			w.record(w.Text(s))
		}
	}

	var items []contentItem
	surrogates := make(map[*element.Def]bool)
	addSurrogate := func(d *element.Def, s element.Surrogate) {
		if surrogates[d] {
			return
		}
		surrogates[d] = true
		items = append(items, contentItem{surrogate: s, def: d, seq: d.Sequence(v)})
	}
	for _, f := range e.Fields() {
		d := f.Def()
		if !d.IsKey() && !f.IsChanged() {
			continue
		}
		if s := d.Surrogate(v); s != nil {
			addSurrogate(d, s)
			continue
		}
		if d.Classify(v) == element.KindElement {
			items = append(items, contentItem{field: f, seq: d.Sequence(v)})
		}
	}
	for _, c := range e.Children() {
		if !c.IsChanged() {
			continue
		}
		d := c.Def()
		if s := d.Surrogate(v); s != nil {
			addSurrogate(d, s)
			continue
		}
		if d.Classify(v) == element.KindUnsupported {
			continue
		}
		items = append(items, contentItem{child: c, seq: d.Sequence(v)})
	}
	sort.SliceStable(items, func(i, j int) bool { return items[i].seq < items[j].seq })

	for _, it := range items {
		switch {
		case it.surrogate != nil:
			w.record(it.surrogate.Render(w, e, it.def, v))
		case it.field != nil:
			w.fieldElement(it.field, v)
		case it.child.Def().Classify(v) == element.KindCollapsed:
			w.content(it.child, v)
		default:
			w.renderElement(it.child, v, nil, false)
		}
	}
}

func (w *Writer) fieldElement(f *element.Field, v sifversion.Version) {
	d := f.Def()
	tag := d.Tag(v)
	val := f.Value()
	if val.IsNil() {
		var attrs []element.Attr
		if v.SupportsNil() {
			attrs = []element.Attr{{Name: "xsi:nil", Value: "true"}}
		}
		w.record(w.StartElement(tag, attrs))
		w.record(w.EndElement(tag))
		return
	}
	s, _ := simpletype.Format(w.f, val)
	w.record(w.StartElement(tag, nil))
	if s != "" {
		w.record(w.Text(s))
	}
	w.record(w.EndElement(tag))
}

// containsNil reports whether rendering e for v needs the xsi namespace.
func containsNil(e *element.Element, v sifversion.Version) bool {
	if text, ok := e.Text(); ok && text.IsNil() {
		return true
	}
	for _, f := range e.Fields() {
		if f.Def().Classify(v) == element.KindElement && f.Value().IsNil() {
			return true
		}
	}
	for _, c := range e.Children() {
		if containsNil(c, v) {
			return true
		}
	}
	return false
}

// StartElement opens tag. The outermost element declares the xsi
// namespace when the document contains explicit nulls.
func (w *Writer) StartElement(tag string, attrs []element.Attr) error {
	if w.err != nil {
		return w.err
	}
	if w.open {
		w.raw(">")
		w.open = false
	}
	depth := len(w.levels)
	if depth > 0 {
		w.levels[depth-1].children = true
	}
	w.newline(depth)
	w.raw("<")
	w.raw(tag)
	for _, a := range attrs {
		w.attr(a)
	}
	if depth == 0 && w.xsi {
		w.attr(element.Attr{Name: "xmlns:xsi", Value: xsiNamespace})
	}
	w.levels = append(w.levels, level{tag: tag})
	w.open = true
	w.started = true
	return w.err
}

// Text writes escaped character data.
func (w *Writer) Text(text string) error {
	if w.err != nil {
		return w.err
	}
	if len(w.levels) == 0 {
		return fmt.Errorf("text outside an element")
	}
	if w.open {
		w.raw(">")
		w.open = false
	}
	w.levels[len(w.levels)-1].text = true
	w.escape(text)
	return w.err
}

// EndElement closes tag, which must be the innermost open element.
func (w *Writer) EndElement(tag string) error {
	if w.err != nil {
		return w.err
	}
	if len(w.levels) == 0 || w.levels[len(w.levels)-1].tag != tag {
		return fmt.Errorf("unbalanced end element %s", tag)
	}
	top := w.levels[len(w.levels)-1]
	w.levels = w.levels[:len(w.levels)-1]
	if w.open {
		w.raw("/>")
		w.open = false
		return w.err
	}
	if top.children && !top.text {
		w.newline(len(w.levels))
	}
	w.raw("</")
	w.raw(tag)
	w.raw(">")
	return w.err
}

func (w *Writer) attr(a element.Attr) {
	w.raw(" ")
	w.raw(a.Name)
	w.raw(`="`)
	w.escape(a.Value)
	w.raw(`"`)
}

func (w *Writer) newline(depth int) {
	if w.ctx.Indent == "" || !w.started {
		return
	}
	w.raw("\n")
	w.raw(strings.Repeat(w.ctx.Indent, depth))
}

func (w *Writer) raw(s string) {
	if w.err != nil {
		return
	}
	_, w.err = w.out.WriteString(s)
}

func (w *Writer) escape(s string) {
	if w.err != nil {
		return
	}
	w.err = xml.EscapeText(w.out, []byte(s))
}
