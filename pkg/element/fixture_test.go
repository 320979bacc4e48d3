package element

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/jacoelho/sif/pkg/sifversion"
	"github.com/jacoelho/sif/pkg/simpletype"
)

type fixture struct {
	reg          *Registry
	name         *Def
	nameType     *Def
	lastName     *Def
	firstName    *Def
	preferred    *Def
	person       *Def
	refID        *Def
	localID      *Def
	personName   *Def
	otherIDList  *Def
	otherID      *Def
	otherIDType  *Def
	demographics *Def
	sex          *Def
	birthDate    *Def
	mostRecent   *Def
	gradeLevel   *Def
	gradeCode    *Def
	homeless     *Def
	staff        *Def
	staffRefID   *Def
	staffName    *Def
	event        *Def
	eventObject  *Def
	action       *Def
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	var f fixture
	b := NewBuilder()

	f.name = b.Common("Name")
	f.nameType = b.Field(f.name, "Type", simpletype.KindString, Always("Type", 1, KindAttribute))
	f.lastName = b.Field(f.name, "LastName", simpletype.KindString, Always("LastName", 2, KindElement))
	f.firstName = b.Field(f.name, "FirstName", simpletype.KindString, Always("FirstName", 3, KindElement))
	f.preferred = b.Field(f.name, "PreferredName", simpletype.KindString, Since(sifversion.SIF20, "PreferredName", 4, KindElement))

	f.person = b.Object("StudentPersonal")
	f.refID = b.Field(f.person, "RefId", simpletype.KindString, Always("RefId", 1, KindAttribute))
	f.localID = b.Field(f.person, "LocalId", simpletype.KindString, Since(sifversion.SIF20, "LocalId", 2, KindElement))
	f.personName = b.Contextual(f.person, f.name, Always("Name", 3, KindElement))
	f.otherIDList = b.Element(f.person, "OtherIdList",
		Until(sifversion.SIF15r1, "OtherIdList", 4, KindCollapsed),
		Since(sifversion.SIF20, "OtherIdList", 4, KindElement))
	f.otherID = b.Element(f.otherIDList, "OtherId")
	b.Text(f.otherID, simpletype.KindString)
	f.otherIDType = b.Field(f.otherID, "Type", simpletype.KindString, Always("Type", 1, KindAttribute))
	b.Repeatable(f.otherID, "Type")
	f.demographics = b.Element(f.person, "Demographics", Always("Demographics", 5, KindElement))
	f.sex = b.Field(f.demographics, "Sex", simpletype.KindString,
		Until(sifversion.SIF15r1, "Gender", 1, KindElement),
		Since(sifversion.SIF20, "Sex", 1, KindElement))
	f.birthDate = b.Field(f.demographics, "BirthDate", simpletype.KindDate, Always("BirthDate", 2, KindElement))
	f.mostRecent = b.Element(f.person, "MostRecent",
		Until(sifversion.SIF15r1, "MostRecent", 6, KindUnsupported).WithSurrogate(NewXPathSurrogate(
			PathMapping{Modern: "MostRecent/GradeLevel/Code", Legacy: "GradeLevel/@Code"},
		)),
		Since(sifversion.SIF20, "MostRecent", 6, KindElement))
	f.gradeLevel = b.Element(f.mostRecent, "GradeLevel")
	f.gradeCode = b.Field(f.gradeLevel, "Code", simpletype.KindString)
	f.homeless = b.Field(f.person, "Homeless", simpletype.KindBoolean, Always("Homeless", 7, KindElement))

	f.staff = b.Object("StaffPersonal")
	f.staffRefID = b.Field(f.staff, "RefId", simpletype.KindString, Always("RefId", 1, KindAttribute))
	f.staffName = b.Contextual(f.staff, f.name, Always("Name", 2, KindElement))

	f.event = b.Payload("SIF_Event")
	objectData := b.Element(f.event, "SIF_ObjectData")
	f.eventObject = b.AcceptObjects(b.Element(objectData, "SIF_EventObject"))
	f.action = b.Field(f.eventObject, "Action", simpletype.KindString, Always("Action", 1, KindAttribute))

	reg, err := b.Build()
	require.NoError(t, err)
	f.reg = reg
	return &f
}

// student builds a populated StudentPersonal.
func (f *fixture) student(t *testing.T) *Element {
	t.Helper()
	sp := New(f.person)
	require.NoError(t, sp.SetString(f.refID, "A1B2"))
	require.NoError(t, sp.SetString(f.localID, "S-1"))

	name := New(f.name)
	require.NoError(t, name.SetString(f.nameType, "01"))
	require.NoError(t, name.SetString(f.lastName, "Smith"))
	require.NoError(t, name.SetString(f.firstName, "Ann"))
	require.NoError(t, sp.AddChild(name))

	for _, id := range []struct{ typ, value string }{{"ZZ", "111"}, {"06", "222"}} {
		require.NoError(t, sp.SetPath("OtherIdList/OtherId[@Type='"+id.typ+"']", simpletype.String(id.value)))
	}
	require.NoError(t, sp.SetPath("MostRecent/GradeLevel/Code", simpletype.String("10")))
	_, err := sp.SetField(f.homeless, simpletype.Bool(false))
	require.NoError(t, err)
	return sp
}
