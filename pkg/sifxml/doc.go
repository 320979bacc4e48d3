// Package sifxml reads and writes SIF object graphs as XML for a given
// SIF version.
//
// A Codec is built once from a registry and Options and is safe for
// concurrent use. Each Parse or Write call runs a fresh single-pass Parser
// or Writer that must not be shared between goroutines.
//
// Example:
//
//	codec, err := sifxml.NewCodec(schema.Default(), sifxml.NewOptions())
//	if err != nil {
//		return err
//	}
//	payload, err := codec.Parse(r)
//	if err != nil {
//		return err
//	}
//	return codec.WriteMessage(w, payload, sifversion.SIF15r1)
package sifxml
