package metrics

import (
	"bytes"
	"io"

	"github.com/jacoelho/sif/pkg/element"
	"github.com/jacoelho/sif/pkg/sifversion"
	"github.com/jacoelho/sif/pkg/sifxml"
)

// Codec wraps a sifxml.Codec and records every call.
type Codec struct {
	*sifxml.Codec
	rec *Recorder
}

// Instrument returns c reporting to rec.
func Instrument(c *sifxml.Codec, rec *Recorder) *Codec {
	return &Codec{Codec: c, rec: rec}
}

// Recorder returns the recorder.
func (c *Codec) Recorder() *Recorder { return c.rec }

// Parse parses r and records the outcome.
func (c *Codec) Parse(r io.Reader) (*element.Element, error) {
	return c.ParseWith(c.NewParser(), r)
}

// ParseWith parses r with p, leaving its warnings to the caller, and
// records the outcome.
func (c *Codec) ParseWith(p *sifxml.Parser, r io.Reader) (*element.Element, error) {
	cr := &countingReader{r: r}
	root, err := p.Parse(cr)
	c.rec.ObserveParse(p.Version(), cr.n, err)
	return root, err
}

// ParseBytes parses b and records the outcome.
func (c *Codec) ParseBytes(b []byte) (*element.Element, error) {
	return c.Parse(bytes.NewReader(b))
}

// Marshal renders e and records the outcome.
func (c *Codec) Marshal(e *element.Element, v sifversion.Version) ([]byte, error) {
	out, err := c.Codec.Marshal(e, v)
	c.rec.ObserveWrite(target(e, v), len(out), err)
	return out, err
}

// MarshalMessage renders payload e in an envelope and records the outcome.
func (c *Codec) MarshalMessage(e *element.Element, v sifversion.Version) ([]byte, error) {
	out, err := c.Codec.MarshalMessage(e, v)
	c.rec.ObserveWrite(target(e, v), len(out), err)
	return out, err
}

// Convert re-encodes the document read from r into target and records
// both halves.
func (c *Codec) Convert(r io.Reader, w io.Writer, target sifversion.Version) (*element.Element, error) {
	root, err := c.Parse(r)
	if err != nil {
		return nil, err
	}
	var out []byte
	if root.Def().IsPayload() {
		out, err = c.MarshalMessage(root, target)
	} else {
		out, err = c.Marshal(root, target)
	}
	if err != nil {
		return nil, err
	}
	if _, err := w.Write(out); err != nil {
		return nil, err
	}
	return root, nil
}

func target(e *element.Element, v sifversion.Version) sifversion.Version {
	if v.IsZero() && e != nil {
		return e.EffectiveVersion()
	}
	return v
}

type countingReader struct {
	r io.Reader
	n int
}

func (c *countingReader) Read(p []byte) (int, error) {
	n, err := c.r.Read(p)
	c.n += n
	return n, err
}
