// Package schema declares the SIF infrastructure messages and the student
// information objects shipped with the codec.
//
// Default returns a process-wide registry built on first use. Each area of
// the schema exposes its definitions through a Defs struct so callers can
// address fields without string lookups:
//
//	s := schema.Default()
//	sp, _ := s.NewStudentPersonal("")
//	_ = sp.SetName("Smith", "Ann")
//	out, err := codec.Marshal(sp.Element, sifversion.SIF15r1)
package schema
