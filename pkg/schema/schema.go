package schema

import (
	"fmt"
	"sync"

	"github.com/jacoelho/sif/pkg/element"
)

// Schema is a built registry together with typed handles on its definitions.
type Schema struct {
	Registry *element.Registry

	Name  NameDefs
	Email EmailDefs
	Phone PhoneDefs

	Header   HeaderDefs
	Ping     PingDefs
	Ack      AckDefs
	Event    EventDefs
	Request  RequestDefs
	Response ResponseDefs
	Register RegisterDefs

	Student    StudentDefs
	Staff      StaffDefs
	School     SchoolDefs
	Enrollment EnrollmentDefs
}

var (
	defaultOnce   sync.Once
	defaultSchema *Schema
	defaultErr    error
)

// Default returns the shared schema. It panics if the built-in
// declarations are inconsistent, which is a programming error.
func Default() *Schema {
	defaultOnce.Do(func() {
		defaultSchema, defaultErr = New()
	})
	if defaultErr != nil {
		panic(fmt.Sprintf("schema: %v", defaultErr))
	}
	return defaultSchema
}

// New builds a fresh schema. Most callers want Default.
func New() (*Schema, error) {
	b := element.NewBuilder()
	s := &Schema{}
	s.declareCommon(b)
	s.declareInfrastructure(b)
	s.declareObjects(b)
	reg, err := b.Build()
	if err != nil {
		return nil, fmt.Errorf("build schema: %w", err)
	}
	s.Registry = reg
	return s, nil
}
