package sifxml

import (
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	siferrors "github.com/jacoelho/sif/errors"
	"github.com/jacoelho/sif/pkg/element"
	"github.com/jacoelho/sif/pkg/sifversion"
	"github.com/jacoelho/sif/pkg/simpletype"
)

// Options configures a Codec.
type Options struct {
	logger             *zerolog.Logger
	indent             string
	version            sifversion.Version
	strictTypeParsing  bool
	strictVersioning   bool
	keepMessageContent bool
	declaration        bool
}

// NewOptions returns a default, valid options value: SIF 2.0r1, lenient
// type parsing, no declaration and no indentation.
func NewOptions() Options {
	return Options{}
}

// WithVersion sets the version assumed when a document does not declare
// one, and the version enforced by strict versioning.
func (o Options) WithVersion(v sifversion.Version) Options {
	o.version = v
	return o
}

// WithStrictTypeParsing makes malformed leaf values fail the parse instead
// of being logged and skipped.
func (o Options) WithStrictTypeParsing(value bool) Options {
	o.strictTypeParsing = value
	return o
}

// WithStrictVersioning rejects documents whose version differs from the
// configured version.
func (o Options) WithStrictVersioning(value bool) Options {
	o.strictVersioning = value
	return o
}

// WithKeepMessageContent retains the raw document bytes on the parsed root.
func (o Options) WithKeepMessageContent(value bool) Options {
	o.keepMessageContent = value
	return o
}

// WithDeclaration controls whether written documents start with an XML declaration.
func (o Options) WithDeclaration(value bool) Options {
	o.declaration = value
	return o
}

// WithIndent sets the indentation unit for written documents ("" writes compact XML).
func (o Options) WithIndent(indent string) Options {
	o.indent = indent
	return o
}

// WithLogger sets the logger receiving lenient-parse warnings.
func (o Options) WithLogger(logger zerolog.Logger) Options {
	o.logger = &logger
	return o
}

// Validate validates option values.
func (o Options) Validate() error {
	_, err := o.context(nil)
	return err
}

// Context is the resolved per-call state threaded through a Parser or
// Writer. It replaces process-wide defaults.
type Context struct {
	Registry           *element.Registry
	Formatter          simpletype.Formatter
	Logger             zerolog.Logger
	Indent             string
	Version            sifversion.Version
	StrictTypeParsing  bool
	StrictVersioning   bool
	KeepMessageContent bool
	Declaration        bool
}

func (o Options) context(reg *element.Registry) (Context, error) {
	v := o.version
	if v.IsZero() {
		v = sifversion.Default
	}
	if !v.IsKnown() {
		return Context{}, siferrors.Newf(siferrors.CodeVersionUnsupported, "unsupported version %s", v)
	}
	if strings.Trim(o.indent, " \t") != "" {
		return Context{}, fmt.Errorf("indent %q: only spaces and tabs are allowed", o.indent)
	}
	logger := zerolog.Nop()
	if o.logger != nil {
		logger = *o.logger
	}
	return Context{
		Registry:           reg,
		Formatter:          simpletype.FormatterFor(v),
		Logger:             logger,
		Indent:             o.indent,
		Version:            v,
		StrictTypeParsing:  o.strictTypeParsing,
		StrictVersioning:   o.strictVersioning,
		KeepMessageContent: o.keepMessageContent,
		Declaration:        o.declaration,
	}, nil
}

// withVersion returns a copy of c targeting v.
func (c Context) withVersion(v sifversion.Version) Context {
	c.Version = v
	c.Formatter = simpletype.FormatterFor(v)
	return c
}
