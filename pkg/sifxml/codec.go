package sifxml

import (
	"bytes"
	"errors"
	"io"

	"github.com/jacoelho/sif/pkg/element"
	"github.com/jacoelho/sif/pkg/sifversion"
)

// Codec parses and writes SIF documents against one registry.
// It is immutable and safe for concurrent use.
type Codec struct {
	ctx Context
}

// NewCodec returns a codec for reg configured by opts.
func NewCodec(reg *element.Registry, opts Options) (*Codec, error) {
	if reg == nil {
		return nil, errors.New("nil registry")
	}
	ctx, err := opts.context(reg)
	if err != nil {
		return nil, err
	}
	return &Codec{ctx: ctx}, nil
}

// Context returns the resolved configuration.
func (c *Codec) Context() Context { return c.ctx }

// Registry returns the schema registry.
func (c *Codec) Registry() *element.Registry { return c.ctx.Registry }

// NewParser returns a single-use parser bound to the codec configuration.
func (c *Codec) NewParser() *Parser { return NewParser(c.ctx) }

// NewWriter returns a writer bound to the codec configuration.
func (c *Codec) NewWriter(w io.Writer) *Writer { return NewWriter(w, c.ctx) }

// Parse reads one document from r.
func (c *Codec) Parse(r io.Reader) (*element.Element, error) {
	return c.NewParser().Parse(r)
}

// ParseBytes reads one document from b.
func (c *Codec) ParseBytes(b []byte) (*element.Element, error) {
	return c.Parse(bytes.NewReader(b))
}

// Write renders e to w for version v.
func (c *Codec) Write(w io.Writer, e *element.Element, v sifversion.Version) error {
	return c.NewWriter(w).Write(e, v)
}

// WriteMessage renders payload e inside a SIF_Message envelope for v.
func (c *Codec) WriteMessage(w io.Writer, e *element.Element, v sifversion.Version) error {
	return c.NewWriter(w).WriteMessage(e, v)
}

// Marshal renders e for version v.
func (c *Codec) Marshal(e *element.Element, v sifversion.Version) ([]byte, error) {
	var buf bytes.Buffer
	if err := c.Write(&buf, e, v); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// MarshalMessage renders payload e inside a SIF_Message envelope for v.
func (c *Codec) MarshalMessage(e *element.Element, v sifversion.Version) ([]byte, error) {
	var buf bytes.Buffer
	if err := c.WriteMessage(&buf, e, v); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Convert re-encodes the document read from r for version target.
// Payloads are written inside a SIF_Message envelope. It returns the
// parsed root.
func (c *Codec) Convert(r io.Reader, w io.Writer, target sifversion.Version) (*element.Element, error) {
	root, err := c.Parse(r)
	if err != nil {
		return nil, err
	}
	if root.Def().IsPayload() {
		err = c.WriteMessage(w, root, target)
	} else {
		err = c.Write(w, root, target)
	}
	if err != nil {
		return nil, err
	}
	return root, nil
}
