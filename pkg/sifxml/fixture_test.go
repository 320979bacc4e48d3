package sifxml

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/jacoelho/sif/pkg/element"
	"github.com/jacoelho/sif/pkg/sifversion"
	"github.com/jacoelho/sif/pkg/simpletype"
)

type testSchema struct {
	reg          *element.Registry
	ping         *element.Def
	event        *element.Def
	eventObject  *element.Def
	action       *element.Def
	name         *element.Def
	nameType     *element.Def
	lastName     *element.Def
	firstName    *element.Def
	person       *element.Def
	refID        *element.Def
	localID      *element.Def
	homeless     *element.Def
	personName   *element.Def
	otherIDList  *element.Def
	otherID      *element.Def
	demographics *element.Def
	mostRecent   *element.Def
	lastVisit    *element.Def
	note         *element.Def
}

func newTestSchema(t *testing.T) *testSchema {
	t.Helper()
	var s testSchema
	b := element.NewBuilder()

	s.ping = b.Payload("SIF_Ping")
	s.event = b.Payload("SIF_Event")
	objectData := b.Element(s.event, "SIF_ObjectData")
	s.eventObject = b.AcceptObjects(b.Element(objectData, "SIF_EventObject"))
	s.action = b.Field(s.eventObject, "Action", simpletype.KindString, element.Always("Action", 1, element.KindAttribute))

	s.name = b.Common("Name")
	s.nameType = b.Field(s.name, "Type", simpletype.KindString, element.Always("Type", 1, element.KindAttribute))
	s.lastName = b.Field(s.name, "LastName", simpletype.KindString, element.Always("LastName", 2, element.KindElement))
	s.firstName = b.Field(s.name, "FirstName", simpletype.KindString, element.Always("FirstName", 3, element.KindElement))

	s.person = b.Object("StudentPersonal")
	s.refID = b.Field(s.person, "RefId", simpletype.KindString, element.Always("RefId", 1, element.KindAttribute))
	s.localID = b.Field(s.person, "LocalId", simpletype.KindString, element.Since(sifversion.SIF20, "LocalId", 2, element.KindElement))
	s.homeless = b.Field(s.person, "Homeless", simpletype.KindBoolean,
		element.Until(sifversion.SIF15r1, "Homeless", 2, element.KindElement),
		element.Since(sifversion.SIF20, "Homeless", 20, element.KindElement))
	s.personName = b.Contextual(s.person, s.name, element.Always("Name", 3, element.KindElement))
	s.otherIDList = b.Element(s.person, "OtherIdList",
		element.Until(sifversion.SIF15r1, "OtherIdList", 4, element.KindCollapsed),
		element.Since(sifversion.SIF20, "OtherIdList", 4, element.KindElement))
	s.otherID = b.Element(s.otherIDList, "OtherId")
	b.Text(s.otherID, simpletype.KindString)
	b.Field(s.otherID, "Type", simpletype.KindString, element.Always("Type", 1, element.KindAttribute))
	b.Repeatable(s.otherID, "Type")
	s.demographics = b.Element(s.person, "Demographics", element.Always("Demographics", 5, element.KindElement))
	b.Field(s.demographics, "Sex", simpletype.KindString,
		element.Until(sifversion.SIF15r1, "Gender", 1, element.KindElement),
		element.Since(sifversion.SIF20, "Sex", 1, element.KindElement))
	b.Field(s.demographics, "BirthDate", simpletype.KindDate, element.Always("BirthDate", 2, element.KindElement))
	s.mostRecent = b.Element(s.person, "MostRecent",
		element.Until(sifversion.SIF15r1, "MostRecent", 6, element.KindUnsupported).WithSurrogate(element.NewXPathSurrogate(
			element.PathMapping{Modern: "MostRecent/GradeLevel/Code", Legacy: "GradeLevel/@Code"},
		)),
		element.Since(sifversion.SIF20, "MostRecent", 6, element.KindElement))
	gradeLevel := b.Element(s.mostRecent, "GradeLevel")
	b.Field(gradeLevel, "Code", simpletype.KindString)

	stats := b.Element(s.person, "Stats", element.Always("Stats", 7, element.KindElement))
	b.Field(stats, "GraduationYear", simpletype.KindInt)
	b.Field(stats, "Sequence", simpletype.KindLong)
	b.Field(stats, "Weight", simpletype.KindFloat)
	b.Field(stats, "GPA", simpletype.KindDecimal)
	b.Field(stats, "ArrivalTime", simpletype.KindTime)
	b.Field(stats, "LastUpdated", simpletype.KindDateTime)
	b.Field(stats, "Absence", simpletype.KindDuration)

	s.lastVisit = b.Text(b.Element(s.person, "LastVisit", element.Always("LastVisit", 8, element.KindElement)), simpletype.KindDate)
	s.note = b.Text(b.Element(s.person, "Note", element.Always("Note", 9, element.KindElement)), simpletype.KindString)

	reg, err := b.Build()
	require.NoError(t, err)
	s.reg = reg
	return &s
}

func (s *testSchema) codec(t *testing.T, opts Options) *Codec {
	t.Helper()
	c, err := NewCodec(s.reg, opts)
	require.NoError(t, err)
	return c
}

// student builds a StudentPersonal using only definitions supported in v.
func (s *testSchema) student(t *testing.T, v sifversion.Version) *element.Element {
	t.Helper()
	sp := element.New(s.person)
	require.NoError(t, sp.SetString(s.refID, "R1"))
	if s.localID.IsSupported(v) {
		require.NoError(t, sp.SetString(s.localID, "L1"))
	}
	_, err := sp.SetField(s.homeless, simpletype.Bool(true))
	require.NoError(t, err)

	name := element.New(s.name)
	require.NoError(t, name.SetString(s.nameType, "01"))
	require.NoError(t, name.SetString(s.lastName, "Smith"))
	require.NoError(t, name.SetString(s.firstName, "Ann"))
	require.NoError(t, sp.AddChild(name))

	values := []struct {
		path  string
		value simpletype.Value
	}{
		{"OtherIdList/OtherId[@Type='ZZ']", simpletype.String("111")},
		{"OtherIdList/OtherId[@Type='06']", simpletype.String("222")},
		{"Demographics/Sex", simpletype.String("F")},
		{"Demographics/BirthDate", simpletype.Date(time.Date(2001, 5, 6, 0, 0, 0, 0, time.UTC))},
		{"MostRecent/GradeLevel/Code", simpletype.String("10")},
		{"Stats/GraduationYear", simpletype.Int(2019)},
		{"Stats/Sequence", simpletype.Long(1 << 40)},
		{"Stats/Weight", simpletype.Float(61.5)},
		{"Stats/GPA", simpletype.Decimal(decimal.RequireFromString("3.75"))},
		{"Stats/ArrivalTime", simpletype.Time(time.Date(0, 1, 1, 8, 15, 30, 0, time.UTC))},
		{"Stats/LastUpdated", simpletype.DateTime(time.Date(2024, 3, 1, 10, 20, 30, 0, time.UTC))},
		{"Stats/Absence", simpletype.DurationValue(simpletype.Duration{Days: 2, Hours: 3})},
	}
	for _, kv := range values {
		require.NoError(t, sp.SetPath(kv.path, kv.value), kv.path)
	}
	return sp
}

// requireSameGraph asserts that a and b have no differences.
func requireSameGraph(t *testing.T, a, b *element.Element) {
	t.Helper()
	src, dst, err := a.CompareGraphTo(b)
	require.NoError(t, err)
	for i := range src {
		t.Errorf("difference %d: %s vs %s", i, describe(src[i]), describe(dst[i]))
	}
}

func describe(it element.Item) string {
	switch n := it.(type) {
	case nil:
		return "<absent>"
	case *element.Field:
		return n.Path() + "=" + n.Value().String()
	case *element.Element:
		return n.Path()
	default:
		return "?"
	}
}
