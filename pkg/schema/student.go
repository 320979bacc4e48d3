package schema

import (
	"strings"
	"time"

	"github.com/jacoelho/sif/pkg/element"
	"github.com/jacoelho/sif/pkg/simpletype"
)

// StudentPersonal is a typed view of a StudentPersonal element.
type StudentPersonal struct {
	*element.Element
	d *StudentDefs
}

// NewStudentPersonal returns a student identified by refID, or by a new
// RefId when refID is empty.
func (s *Schema) NewStudentPersonal(refID string) (StudentPersonal, error) {
	if refID == "" {
		refID = element.NewRefID()
	}
	e := s.Registry.New(s.Student.Def)
	if err := e.SetString(s.Student.RefID, refID); err != nil {
		return StudentPersonal{}, err
	}
	return StudentPersonal{Element: e, d: &s.Student}, nil
}

// AsStudentPersonal views e as a student.
func (s *Schema) AsStudentPersonal(e *element.Element) (StudentPersonal, bool) {
	if e == nil || !e.Def().Is(s.Student.Def) {
		return StudentPersonal{}, false
	}
	return StudentPersonal{Element: e, d: &s.Student}, true
}

// RefID returns the student's RefId.
func (p StudentPersonal) RefID() string { return p.StringField(p.d.RefID) }

// LocalID returns the student's LocalId.
func (p StudentPersonal) LocalID() string { return p.StringField(p.d.LocalID) }

// SetLocalID sets LocalId.
func (p StudentPersonal) SetLocalID(id string) error { return p.SetString(p.d.LocalID, id) }

// Name returns the last and first names.
func (p StudentPersonal) Name() (last, first string) {
	if v, ok := p.FindValue("Name/LastName"); ok {
		last = v.String()
	}
	if v, ok := p.FindValue("Name/FirstName"); ok {
		first = v.String()
	}
	return last, first
}

// SetName sets the last and first names.
func (p StudentPersonal) SetName(last, first string) error {
	if err := p.SetPath("Name/LastName", simpletype.String(last)); err != nil {
		return err
	}
	return p.SetPath("Name/FirstName", simpletype.String(first))
}

// OtherID returns the identifier of the given type.
func (p StudentPersonal) OtherID(typ string) (string, bool) {
	v, ok := p.FindValue(predicate("OtherIdList/OtherId", "Type", typ))
	if !ok {
		return "", false
	}
	return v.String(), true
}

// SetOtherID sets the identifier of the given type.
func (p StudentPersonal) SetOtherID(typ, id string) error {
	return p.SetPath(predicate("OtherIdList/OtherId", "Type", typ), simpletype.String(id))
}

// AddEmail sets the address of the given type.
func (p StudentPersonal) AddEmail(typ, addr string) error {
	return p.SetPath(predicate("EmailList/Email", "Type", typ), simpletype.String(addr))
}

// Sex returns Demographics/Sex.
func (p StudentPersonal) Sex() string {
	if v, ok := p.FindValue("Demographics/Sex"); ok {
		return v.String()
	}
	return ""
}

// SetSex sets Demographics/Sex.
func (p StudentPersonal) SetSex(code string) error {
	return p.SetPath("Demographics/Sex", simpletype.String(code))
}

// BirthDate returns Demographics/BirthDate.
func (p StudentPersonal) BirthDate() (time.Time, bool) {
	v, ok := p.FindValue("Demographics/BirthDate")
	if !ok {
		return time.Time{}, false
	}
	return v.AsTime()
}

// SetBirthDate sets Demographics/BirthDate.
func (p StudentPersonal) SetBirthDate(t time.Time) error {
	return p.SetPath("Demographics/BirthDate", simpletype.Date(t))
}

// GradeLevel returns MostRecent/GradeLevel/Code.
func (p StudentPersonal) GradeLevel() string {
	if v, ok := p.FindValue(GradeLevelMapping.Modern); ok {
		return v.String()
	}
	return ""
}

// SetGradeLevel sets MostRecent/GradeLevel/Code.
func (p StudentPersonal) SetGradeLevel(code string) error {
	return p.SetPath(GradeLevelMapping.Modern, simpletype.String(code))
}

// Homeless reports the Homeless flag and whether it is set.
func (p StudentPersonal) Homeless() (bool, bool) {
	v, ok := p.FieldValue(p.d.Homeless)
	if !ok {
		return false, false
	}
	return v.AsBool()
}

// SetHomeless sets the Homeless flag.
func (p StudentPersonal) SetHomeless(b bool) error {
	_, err := p.SetField(p.d.Homeless, simpletype.Bool(b))
	return err
}

func predicate(path, field, value string) string {
	quote := "'"
	if strings.Contains(value, "'") {
		quote = `"`
	}
	return path + "[@" + field + "=" + quote + value + quote + "]"
}
