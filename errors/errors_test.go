package errors

import (
	"errors"
	"fmt"
	"testing"
)

func TestErrorFormatting(t *testing.T) {
	tests := []struct {
		name string
		want string
		e    Error
	}{
		{
			name: "message only",
			e:    Error{Code: CodeUnknownElement, Message: "unknown element"},
			want: "[sif-schema-unknown-element] unknown element",
		},
		{
			name: "with tag and version",
			e:    Error{Code: CodeUnknownElement, Message: "unknown element", Tag: "Foo", Version: "1.5r1"},
			want: "[sif-schema-unknown-element] unknown element (tag: Foo) (version: 1.5r1)",
		},
		{
			name: "with path",
			e:    Error{Code: CodeTypeParse, Message: "bad int", Path: "/StudentPersonal/Age"},
			want: "[sif-type-parse] bad int at /StudentPersonal/Age",
		},
		{
			name: "with position only",
			e:    Error{Code: CodeXMLSyntax, Message: "eof", Line: 3, Column: 7},
			want: "[xml-syntax] eof at line 3, column 7",
		},
		{
			name: "line without column",
			e:    Error{Code: CodeXMLSyntax, Message: "unexpected EOF", Line: 4},
			want: "[xml-syntax] unexpected EOF at line 4",
		},
		{
			name: "with path and position",
			e:    Error{Code: CodeXMLSyntax, Message: "eof", Path: "/a", Line: 3, Column: 7},
			want: "[xml-syntax] eof at /a (line 3, column 7)",
		},
		{
			name: "with cause",
			e:    Error{Code: CodeEncoding, Message: "invalid input", Err: fmt.Errorf("boom")},
			want: "[xml-encoding] invalid input: boom",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.e.Error(); got != tt.want {
				t.Fatalf("Error() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestCodeClass(t *testing.T) {
	tests := []struct {
		code Code
		want Class
	}{
		{CodeUnknownElement, ClassSchema},
		{CodeUnknownAttribute, ClassSchema},
		{CodeTypeParse, ClassType},
		{CodeVersionMismatch, ClassVersion},
		{CodeAlreadyParented, ClassStructural},
		{CodeGraphMismatch, ClassStructural},
		{CodeXMLSyntax, ClassSyntax},
		{Code("other"), ClassUnknown},
	}
	for _, tt := range tests {
		if got := tt.code.Class(); got != tt.want {
			t.Fatalf("%s.Class() = %s, want %s", tt.code, got, tt.want)
		}
	}
}

func TestAsThroughWrapping(t *testing.T) {
	base := Newf(CodeTypeParse, "invalid int %q", "x").WithTag("Age", "2.0")
	wrapped := fmt.Errorf("parse message: %w", base)

	got, ok := As(wrapped)
	if !ok {
		t.Fatal("As() = false, want true")
	}
	if got.Tag != "Age" || got.Version != "2.0" {
		t.Fatalf("As() = %+v, want tag Age version 2.0", got)
	}
	if !IsTypeParse(wrapped) {
		t.Fatal("IsTypeParse() = false, want true")
	}
	if IsSchema(wrapped) {
		t.Fatal("IsSchema() = true, want false")
	}
	if !errors.Is(wrapped, Sentinel(CodeTypeParse)) {
		t.Fatal("errors.Is(sentinel) = false, want true")
	}
	if errors.Is(wrapped, Sentinel(CodeTypeMismatch)) {
		t.Fatal("errors.Is(other sentinel) = true, want false")
	}
}

func TestAsNil(t *testing.T) {
	if _, ok := As(nil); ok {
		t.Fatal("As(nil) = true, want false")
	}
	if _, ok := As(fmt.Errorf("plain")); ok {
		t.Fatal("As(plain) = true, want false")
	}
	if IsVersion(nil) {
		t.Fatal("IsVersion(nil) = true, want false")
	}
}

func TestWithHelpersCopy(t *testing.T) {
	base := New(CodeUnknownElement, "unknown")
	tagged := base.WithTag("X", "1.1").WithPosition(2, 4).WithPath("/Root")
	if base.Tag != "" || base.Line != 0 || base.Path != "" {
		t.Fatalf("base mutated: %+v", base)
	}
	if tagged.Tag != "X" || tagged.Line != 2 || tagged.Column != 4 || tagged.Path != "/Root" {
		t.Fatalf("tagged = %+v", tagged)
	}
}

func TestListError(t *testing.T) {
	var empty List
	if empty.Err() != nil {
		t.Fatal("empty.Err() != nil")
	}
	l := List{New(CodeTypeParse, "a"), New(CodeTypeParse, "b")}
	if got, want := l.Error(), "[sif-type-parse] a (and 1 more)"; got != want {
		t.Fatalf("Error() = %q, want %q", got, want)
	}
	if l.Err() == nil {
		t.Fatal("Err() = nil, want list")
	}
}
