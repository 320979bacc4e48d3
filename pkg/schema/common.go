package schema

import (
	"github.com/jacoelho/sif/pkg/element"
	"github.com/jacoelho/sif/pkg/simpletype"
)

// NameDefs is the common Name type.
type NameDefs struct {
	Def           *element.Def
	Type          *element.Def
	LastName      *element.Def
	FirstName     *element.Def
	MiddleName    *element.Def
	PreferredName *element.Def
}

// EmailDefs is the common Email type, keyed by Type.
type EmailDefs struct {
	Def  *element.Def
	Type *element.Def
}

// PhoneDefs is the common PhoneNumber type, keyed by Type.
type PhoneDefs struct {
	Def       *element.Def
	Type      *element.Def
	Number    *element.Def
	Extension *element.Def
}

func attr(tag string, seq int) element.VersionInfo {
	return element.Always(tag, seq, element.KindAttribute)
}

func elem(tag string, seq int) element.VersionInfo {
	return element.Always(tag, seq, element.KindElement)
}

func (s *Schema) declareCommon(b *element.Builder) {
	n := &s.Name
	n.Def = b.Common("Name")
	n.Type = b.Field(n.Def, "Type", simpletype.KindString, attr("Type", 1))
	n.LastName = b.Field(n.Def, "LastName", simpletype.KindString)
	n.FirstName = b.Field(n.Def, "FirstName", simpletype.KindString)
	n.MiddleName = b.Field(n.Def, "MiddleName", simpletype.KindString)
	n.PreferredName = b.Field(n.Def, "PreferredName", simpletype.KindString)

	e := &s.Email
	e.Def = b.Repeatable(b.Text(b.Common("Email"), simpletype.KindString), "Type")
	e.Type = b.Field(e.Def, "Type", simpletype.KindString, attr("Type", 1))

	p := &s.Phone
	p.Def = b.Repeatable(b.Common("PhoneNumber"), "Type")
	p.Type = b.Field(p.Def, "Type", simpletype.KindString, attr("Type", 1))
	p.Number = b.Field(p.Def, "Number", simpletype.KindString)
	p.Extension = b.Field(p.Def, "Extension", simpletype.KindString)
}
