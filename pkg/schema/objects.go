package schema

import (
	"github.com/jacoelho/sif/pkg/element"
	"github.com/jacoelho/sif/pkg/sifversion"
	"github.com/jacoelho/sif/pkg/simpletype"
)

// StudentDefs is StudentPersonal.
type StudentDefs struct {
	Def                  *element.Def
	RefID                *element.Def
	LocalID              *element.Def
	StateProvinceID      *element.Def
	Homeless             *element.Def
	OtherIDList          *element.Def
	OtherID              *element.Def
	OtherIDType          *element.Def
	Name                 *element.Def
	Demographics         *element.Def
	Sex                  *element.Def
	BirthDate            *element.Def
	CountryOfBirth       *element.Def
	EmailList            *element.Def
	Email                *element.Def
	MostRecent           *element.Def
	SchoolLocalID        *element.Def
	GradeLevel           *element.Def
	GradeLevelCode       *element.Def
	OnTimeGraduationYear *element.Def
}

// StaffDefs is StaffPersonal.
type StaffDefs struct {
	Def       *element.Def
	RefID     *element.Def
	LocalID   *element.Def
	Name      *element.Def
	Title     *element.Def
	EmailList *element.Def
	Email     *element.Def
}

// SchoolDefs is SchoolInfo.
type SchoolDefs struct {
	Def               *element.Def
	RefID             *element.Def
	LocalID           *element.Def
	SchoolName        *element.Def
	SchoolURL         *element.Def
	OperationalStatus *element.Def
	GridLocation      *element.Def
	Latitude          *element.Def
	Longitude         *element.Def
	PhoneNumberList   *element.Def
	PhoneNumber       *element.Def
}

// EnrollmentDefs is StudentSchoolEnrollment.
type EnrollmentDefs struct {
	Def                  *element.Def
	RefID                *element.Def
	StudentPersonalRefID *element.Def
	SchoolInfoRefID      *element.Def
	MembershipType       *element.Def
	TimeFrame            *element.Def
	SchoolYear           *element.Def
	EntryDate            *element.Def
	ExitDate             *element.Def
	FTE                  *element.Def
}

// GradeLevelMapping places MostRecent/GradeLevel/Code, which SIF 1.x
// carries as the Code attribute of a top-level GradeLevel element.
var GradeLevelMapping = element.PathMapping{
	Modern: "MostRecent/GradeLevel/Code",
	Legacy: "GradeLevel/@Code",
}

func since20(tag string, seq int) element.VersionInfo {
	return element.Since(sifversion.SIF20, tag, seq, element.KindElement)
}

// listInfos makes a list container that SIF 1.x omits, inlining its
// entries into the parent from first on.
func listInfos(first sifversion.Version, tag string, seq int) []element.VersionInfo {
	return []element.VersionInfo{
		element.During(first, sifversion.SIF15r1, tag, seq, element.KindCollapsed),
		since20(tag, seq),
	}
}

func (s *Schema) declareObjects(b *element.Builder) {
	st := &s.Student
	st.Def = b.Object("StudentPersonal")
	st.RefID = b.Field(st.Def, "RefId", simpletype.KindString, attr("RefId", 1))
	st.LocalID = b.Field(st.Def, "LocalId", simpletype.KindString, elem("LocalId", 2))
	st.StateProvinceID = b.Field(st.Def, "StateProvinceId", simpletype.KindString, since20("StateProvinceId", 3))
	st.Homeless = b.Field(st.Def, "Homeless", simpletype.KindBoolean,
		element.Until(sifversion.SIF15r1, "Homeless", 3, element.KindElement),
		since20("Homeless", 10))
	st.OtherIDList = b.Element(st.Def, "OtherIdList", listInfos(sifversion.SIF10r1, "OtherIdList", 4)...)
	st.OtherID = b.Repeatable(b.Text(b.Element(st.OtherIDList, "OtherId"), simpletype.KindString), "Type")
	st.OtherIDType = b.Field(st.OtherID, "Type", simpletype.KindString, attr("Type", 1))
	st.Name = b.Contextual(st.Def, s.Name.Def, elem("Name", 5))
	st.Demographics = b.Element(st.Def, "Demographics", elem("Demographics", 6))
	st.Sex = b.Field(st.Demographics, "Sex", simpletype.KindString,
		element.Until(sifversion.SIF15r1, "Gender", 1, element.KindElement),
		since20("Sex", 1))
	st.BirthDate = b.Field(st.Demographics, "BirthDate", simpletype.KindDate, elem("BirthDate", 2))
	st.CountryOfBirth = b.Field(st.Demographics, "CountryOfBirth", simpletype.KindString, since20("CountryOfBirth", 3))
	st.EmailList = b.Element(st.Def, "EmailList", listInfos(sifversion.SIF12, "EmailList", 7)...)
	st.Email = b.Contextual(st.EmailList, s.Email.Def)
	st.MostRecent = b.Element(st.Def, "MostRecent",
		element.Until(sifversion.SIF15r1, "MostRecent", 8, element.KindUnsupported).
			WithSurrogate(element.NewXPathSurrogate(GradeLevelMapping)),
		since20("MostRecent", 8))
	st.SchoolLocalID = b.Field(st.MostRecent, "SchoolLocalId", simpletype.KindString)
	st.GradeLevel = b.Element(st.MostRecent, "GradeLevel")
	st.GradeLevelCode = b.Field(st.GradeLevel, "Code", simpletype.KindString)
	st.OnTimeGraduationYear = b.Field(st.Def, "OnTimeGraduationYear", simpletype.KindInt,
		element.Since(sifversion.SIF11, "OnTimeGraduationYear", 9, element.KindElement))

	sf := &s.Staff
	sf.Def = b.Object("StaffPersonal")
	sf.RefID = b.Field(sf.Def, "RefId", simpletype.KindString, attr("RefId", 1))
	sf.LocalID = b.Field(sf.Def, "LocalId", simpletype.KindString, elem("LocalId", 2))
	sf.Name = b.Contextual(sf.Def, s.Name.Def, elem("Name", 3))
	sf.Title = b.Field(sf.Def, "Title", simpletype.KindString, element.Since(sifversion.SIF11, "Title", 4, element.KindElement))
	sf.EmailList = b.Element(sf.Def, "EmailList", listInfos(sifversion.SIF12, "EmailList", 5)...)
	sf.Email = b.Contextual(sf.EmailList, s.Email.Def)

	sc := &s.School
	sc.Def = b.Object("SchoolInfo")
	sc.RefID = b.Field(sc.Def, "RefId", simpletype.KindString, attr("RefId", 1))
	sc.LocalID = b.Field(sc.Def, "LocalId", simpletype.KindString, elem("LocalId", 2))
	sc.SchoolName = b.Field(sc.Def, "SchoolName", simpletype.KindString, elem("SchoolName", 3))
	sc.SchoolURL = b.Field(sc.Def, "SchoolURL", simpletype.KindString, elem("SchoolURL", 4))
	sc.OperationalStatus = b.Field(sc.Def, "OperationalStatus", simpletype.KindString, since20("OperationalStatus", 5))
	sc.GridLocation = b.Element(sc.Def, "GridLocation", since20("GridLocation", 6))
	sc.Latitude = b.Field(sc.GridLocation, "Latitude", simpletype.KindDecimal)
	sc.Longitude = b.Field(sc.GridLocation, "Longitude", simpletype.KindDecimal)
	sc.PhoneNumberList = b.Element(sc.Def, "PhoneNumberList", listInfos(sifversion.SIF10r1, "PhoneNumberList", 7)...)
	sc.PhoneNumber = b.Contextual(sc.PhoneNumberList, s.Phone.Def)

	en := &s.Enrollment
	en.Def = b.Object("StudentSchoolEnrollment", element.Since(sifversion.SIF11, "StudentSchoolEnrollment", 0, element.KindElement))
	en.RefID = b.Field(en.Def, "RefId", simpletype.KindString, attr("RefId", 1))
	en.StudentPersonalRefID = b.Field(en.Def, "StudentPersonalRefId", simpletype.KindString, attr("StudentPersonalRefId", 2))
	en.SchoolInfoRefID = b.Field(en.Def, "SchoolInfoRefId", simpletype.KindString, attr("SchoolInfoRefId", 3))
	// SIF 2.0 moved MembershipType and TimeFrame from attributes to elements.
	en.MembershipType = b.Field(en.Def, "MembershipType", simpletype.KindString,
		element.Until(sifversion.SIF15r1, "MembershipType", 4, element.KindAttribute),
		since20("MembershipType", 6))
	en.TimeFrame = b.Field(en.Def, "TimeFrame", simpletype.KindString,
		element.Until(sifversion.SIF15r1, "TimeFrame", 5, element.KindAttribute),
		since20("TimeFrame", 7))
	en.SchoolYear = b.Field(en.Def, "SchoolYear", simpletype.KindInt, elem("SchoolYear", 8))
	en.EntryDate = b.Field(en.Def, "EntryDate", simpletype.KindDate, elem("EntryDate", 9))
	en.ExitDate = b.Field(en.Def, "ExitDate", simpletype.KindDate, elem("ExitDate", 10))
	en.FTE = b.Field(en.Def, "FTE", simpletype.KindDecimal, since20("FTE", 11))
}
