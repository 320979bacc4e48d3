package element

import (
	"regexp"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	siferrors "github.com/jacoelho/sif/errors"
	"github.com/jacoelho/sif/pkg/sifversion"
	"github.com/jacoelho/sif/pkg/simpletype"
)

func requireCode(t *testing.T, err error, want siferrors.Code) {
	t.Helper()
	require.Error(t, err)
	code, ok := siferrors.CodeOf(err)
	require.True(t, ok, "not a sif error: %v", err)
	require.Equal(t, want, code)
}

func TestAddChildContextualizes(t *testing.T) {
	f := newFixture(t)

	sp := New(f.person)
	name := New(f.name)
	require.NoError(t, sp.AddChild(name))
	require.Same(t, f.personName, name.Def())
	require.Same(t, sp, name.Parent())

	staff := New(f.staff)
	requireCode(t, staff.AddChild(name), siferrors.CodeAlreadyParented)

	require.True(t, sp.RemoveChild(name))
	require.Nil(t, name.Parent())
	require.NoError(t, staff.AddChild(name))
	require.Same(t, f.staffName, name.Def())
	require.False(t, sp.RemoveChild(name))
}

func TestAddChildRejectsForeignDefinitions(t *testing.T) {
	f := newFixture(t)
	sp := New(f.person)

	requireCode(t, sp.AddChild(New(f.otherID)), siferrors.CodeInvalidChild)
	requireCode(t, sp.AddChild(New(f.staff)), siferrors.CodeInvalidChild)
	requireCode(t, sp.AddChild(New(f.lastName)), siferrors.CodeInvalidChild)
	requireCode(t, sp.AddChild(sp), siferrors.CodeInvalidChild)
	requireCode(t, sp.AddChild(nil), siferrors.CodeInvalidChild)

	require.NoError(t, sp.AddChild(New(f.reg.ExtendedElements())))
	requireCode(t, New(f.demographics).AddChild(New(f.reg.ExtendedElements())), siferrors.CodeInvalidChild)

	obj := New(f.eventObject)
	require.NoError(t, obj.AddChild(New(f.staff)))
}

func TestSetFieldValidation(t *testing.T) {
	f := newFixture(t)
	sp := New(f.person)

	_, err := sp.SetField(f.homeless, simpletype.String("no"))
	requireCode(t, err, siferrors.CodeTypeMismatch)

	_, err = sp.SetField(f.lastName, simpletype.String("Smith"))
	requireCode(t, err, siferrors.CodeInvalidChild)

	_, err = sp.SetField(f.demographics, simpletype.String("x"))
	requireCode(t, err, siferrors.CodeInvalidChild)

	name := New(f.personName)
	require.NoError(t, name.SetString(f.lastName, "Smith"))
	require.Equal(t, "Smith", name.StringField(f.lastName))

	field, err := sp.SetField(f.homeless, simpletype.Nil(simpletype.KindBoolean))
	require.NoError(t, err)
	require.True(t, field.Value().IsNil())
	require.Same(t, sp, field.Owner())

	require.True(t, sp.RemoveField(f.homeless))
	require.False(t, sp.RemoveField(f.homeless))
	require.Nil(t, sp.Field(f.homeless))
}

func TestFieldsInDeclarationOrder(t *testing.T) {
	f := newFixture(t)
	sp := New(f.person)
	_, err := sp.SetField(f.homeless, simpletype.Bool(true))
	require.NoError(t, err)
	require.NoError(t, sp.SetString(f.localID, "L"))
	require.NoError(t, sp.SetString(f.refID, "R"))

	var got []*Def
	for _, fld := range sp.Fields() {
		got = append(got, fld.Def())
	}
	require.Equal(t, []*Def{f.refID, f.localID, f.homeless}, got)
}

func TestTextContent(t *testing.T) {
	f := newFixture(t)
	id := New(f.otherID)
	require.NoError(t, id.SetText(simpletype.String("123")))
	v, ok := id.Text()
	require.True(t, ok)
	require.Equal(t, "123", v.String())

	requireCode(t, id.SetText(simpletype.Int(1)), siferrors.CodeTypeMismatch)
	requireCode(t, New(f.person).SetText(simpletype.String("x")), siferrors.CodeUnexpectedText)
}

func TestChangedPropagation(t *testing.T) {
	f := newFixture(t)
	sp := f.student(t)
	require.True(t, sp.IsChanged())

	sp.SetChanged(false)
	for _, c := range sp.Children() {
		require.False(t, c.IsChanged())
	}
	name := sp.Child(f.name)
	require.False(t, name.Field(f.lastName).IsChanged())

	require.NoError(t, name.SetString(f.firstName, "Anne"))
	require.True(t, name.IsChanged())
	require.True(t, sp.IsChanged())
	require.True(t, name.Field(f.firstName).IsChanged())
	require.False(t, name.Field(f.lastName).IsChanged())
	require.False(t, sp.Find("MostRecent").IsChanged())

	sp.SetChanged(false)
	sp.Find("MostRecent/GradeLevel").Field(f.gradeCode).SetChanged(true)
	require.True(t, sp.Find("MostRecent").IsChanged())
	require.True(t, sp.IsChanged())
	require.False(t, name.IsChanged())
}

func TestSetEmptyIsRecursive(t *testing.T) {
	f := newFixture(t)
	sp := f.student(t)
	sp.SetEmpty(true)
	require.True(t, sp.IsEmpty())
	require.True(t, sp.Find("MostRecent/GradeLevel").IsEmpty())
	sp.Child(f.name).SetEmpty(false)
	require.True(t, sp.IsEmpty())
	require.False(t, sp.Child(f.name).IsEmpty())
}

func TestKeysAndLookup(t *testing.T) {
	f := newFixture(t)
	sp := f.student(t)

	list := sp.Child(f.otherIDList)
	require.NotNil(t, list)
	require.Len(t, list.ChildrenOf(f.otherID), 2)
	zz := list.ChildByKey(f.otherID, "ZZ")
	require.NotNil(t, zz)
	v, _ := zz.Text()
	require.Equal(t, "111", v.String())
	require.Nil(t, list.ChildByKey(f.otherID, "99"))

	email := New(f.reg.ExtendedElement())
	require.NoError(t, email.SetString(f.reg.ExtendedElement().Child("Name"), "Locker"))
	require.Equal(t, "Locker", email.Key())
}

func TestPaths(t *testing.T) {
	f := newFixture(t)
	sp := f.student(t)

	v, ok := sp.FindValue("MostRecent/GradeLevel/Code")
	require.True(t, ok)
	require.Equal(t, "10", v.String())

	v, ok = sp.FindValue("OtherIdList/OtherId[@Type='06']")
	require.True(t, ok)
	require.Equal(t, "222", v.String())

	v, ok = sp.FindValue("@RefId")
	require.True(t, ok)
	require.Equal(t, "A1B2", v.String())

	require.NotNil(t, sp.FindField("Name/@Type"))
	require.Nil(t, sp.Find("Name/Bogus"))
	require.Nil(t, sp.Find("OtherIdList/OtherId[@Type='none']"))
	require.Nil(t, sp.Find("OtherIdList/OtherId[Type]"))

	require.Equal(t, "/StudentPersonal/MostRecent/GradeLevel", sp.Find("MostRecent/GradeLevel").Path())
	require.Equal(t, "/StudentPersonal/Name/LastName", sp.Child(f.name).Field(f.lastName).Path())

	def, err := sp.ResolvePath("Demographics/BirthDate")
	require.NoError(t, err)
	require.Same(t, f.birthDate, def)
	_, err = sp.ResolvePath("Demographics/Height")
	requireCode(t, err, siferrors.CodeUnknownElement)

	birth := simpletype.Date(time.Date(2001, 5, 6, 0, 0, 0, 0, time.UTC))
	require.NoError(t, sp.SetPath("Demographics/BirthDate", birth))
	got, ok := sp.FindValue("Demographics/BirthDate")
	require.True(t, ok)
	require.True(t, birth.Equal(got))

	requireCode(t, sp.SetPath("Demographics/Bogus", birth), siferrors.CodeUnknownElement)
}

func TestVersionInheritance(t *testing.T) {
	f := newFixture(t)
	sp := f.student(t)
	name := sp.Child(f.name)
	require.Equal(t, sifversion.Default, name.EffectiveVersion())

	sp.SetVersion(sifversion.SIF15r1)
	require.Equal(t, sifversion.SIF15r1, name.EffectiveVersion())
	require.True(t, name.Version().IsZero())
	require.Same(t, sp, name.Root())

	ns, ok := sp.Namespace()
	require.False(t, ok)
	require.Empty(t, ns)
	sp.SetNamespace("http://www.sifinfo.org/infrastructure/1.x")
	ns, ok = sp.Namespace()
	require.True(t, ok)
	require.Equal(t, "http://www.sifinfo.org/infrastructure/1.x", ns)
}

func TestCloneIsDeep(t *testing.T) {
	f := newFixture(t)
	sp := f.student(t)
	sp.SetVersion(sifversion.SIF21)
	sp.SetRaw([]byte("<x/>"))

	c := sp.Clone()
	require.Nil(t, c.Parent())
	require.Equal(t, sifversion.SIF21, c.Version())
	require.Equal(t, []byte("<x/>"), c.Raw())

	src, dst, err := sp.CompareGraphTo(c)
	require.NoError(t, err)
	require.Empty(t, src)
	require.Empty(t, dst)

	require.NoError(t, c.Child(f.name).SetString(f.lastName, "Jones"))
	require.Equal(t, "Smith", sp.Child(f.name).StringField(f.lastName))
	require.Same(t, c, c.Child(f.name).Parent())
}

func TestCompareGraphTo(t *testing.T) {
	f := newFixture(t)

	t.Run("field value", func(t *testing.T) {
		a, b := f.student(t), f.student(t)
		require.NoError(t, b.Child(f.name).SetString(f.lastName, "Jones"))
		src, dst, err := a.CompareGraphTo(b)
		require.NoError(t, err)
		require.Len(t, src, 1)
		require.Same(t, a.Child(f.name).Field(f.lastName), src[0])
		require.Same(t, b.Child(f.name).Field(f.lastName), dst[0])
	})

	t.Run("missing field", func(t *testing.T) {
		a, b := f.student(t), f.student(t)
		require.True(t, b.RemoveField(f.localID))
		src, dst, err := a.CompareGraphTo(b)
		require.NoError(t, err)
		require.Len(t, src, 1)
		require.Same(t, a.Field(f.localID), src[0])
		require.Nil(t, dst[0])

		src, dst, err = b.CompareGraphTo(a)
		require.NoError(t, err)
		require.Nil(t, src[0])
		require.Same(t, a.Field(f.localID), dst[0])
	})

	t.Run("keyed children", func(t *testing.T) {
		a, b := f.student(t), f.student(t)
		list := b.Child(f.otherIDList)
		zz := list.ChildByKey(f.otherID, "ZZ")
		require.True(t, list.RemoveChild(zz))
		require.NoError(t, list.AddChild(zz))
		src, _, err := a.CompareGraphTo(b)
		require.NoError(t, err)
		require.Empty(t, src, "reordering keyed siblings is not a difference")

		require.NoError(t, zz.SetText(simpletype.String("999")))
		src, dst, err := a.CompareGraphTo(b)
		require.NoError(t, err)
		require.Len(t, src, 1)
		require.Same(t, a.Find("OtherIdList/OtherId[@Type='ZZ']"), src[0])
		require.Same(t, zz, dst[0])
	})

	t.Run("keyed and unkeyed siblings reordered", func(t *testing.T) {
		build := func(keyedFirst bool) *Element {
			sp := New(f.person)
			list := New(f.otherIDList)
			require.NoError(t, sp.AddChild(list))
			plain := New(f.otherID)
			require.NoError(t, plain.SetText(simpletype.String("plain")))
			keyed := New(f.otherID)
			require.NoError(t, keyed.SetString(f.otherIDType, "X"))
			require.NoError(t, keyed.SetText(simpletype.String("keyed")))
			order := []*Element{plain, keyed}
			if keyedFirst {
				order = []*Element{keyed, plain}
			}
			for _, c := range order {
				require.NoError(t, list.AddChild(c))
			}
			return sp
		}
		a, b := build(false), build(true)
		src, _, err := a.CompareGraphTo(b)
		require.NoError(t, err)
		require.Empty(t, src)
		src, _, err = b.CompareGraphTo(a)
		require.NoError(t, err)
		require.Empty(t, src)

		require.NoError(t, b.Find("OtherIdList/OtherId[@Type='X']").SetText(simpletype.String("changed")))
		s1, d1, err := a.CompareGraphTo(b)
		require.NoError(t, err)
		s2, d2, err := b.CompareGraphTo(a)
		require.NoError(t, err)
		require.Len(t, s1, 1)
		require.ElementsMatch(t, s1, d2)
		require.ElementsMatch(t, d1, s2)
	})

	t.Run("missing child", func(t *testing.T) {
		a, b := f.student(t), f.student(t)
		mr := b.Find("MostRecent")
		require.True(t, b.RemoveChild(mr))
		src, dst, err := a.CompareGraphTo(b)
		require.NoError(t, err)
		require.Len(t, src, 1)
		require.Same(t, a.Find("MostRecent"), src[0])
		require.Nil(t, dst[0])
	})

	t.Run("symmetric", func(t *testing.T) {
		a, b := f.student(t), f.student(t)
		require.NoError(t, b.Child(f.name).SetString(f.firstName, "Bo"))
		require.True(t, a.RemoveField(f.homeless))
		s1, d1, err := a.CompareGraphTo(b)
		require.NoError(t, err)
		s2, d2, err := b.CompareGraphTo(a)
		require.NoError(t, err)
		require.ElementsMatch(t, s1, d2)
		require.ElementsMatch(t, d1, s2)
	})

	t.Run("mismatched roots", func(t *testing.T) {
		_, _, err := New(f.person).CompareGraphTo(New(f.staff))
		requireCode(t, err, siferrors.CodeGraphMismatch)
		_, _, err = New(f.person).CompareGraphTo(nil)
		requireCode(t, err, siferrors.CodeGraphMismatch)
	})

	t.Run("contextual names compare", func(t *testing.T) {
		a := New(f.personName)
		b := New(f.staffName)
		require.NoError(t, a.SetString(f.lastName, "X"))
		require.NoError(t, b.SetString(f.lastName, "X"))
		src, _, err := a.CompareGraphTo(b)
		require.NoError(t, err)
		require.Empty(t, src)
	})
}

func TestNewRefID(t *testing.T) {
	pattern := regexp.MustCompile(`^[0-9A-F]{32}$`)
	seen := make(map[string]bool)
	for range 100 {
		id := NewRefID()
		require.Regexp(t, pattern, id)
		require.False(t, seen[id])
		seen[id] = true
	}
}
