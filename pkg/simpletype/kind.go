// Package simpletype converts between native Go values and the lexical
// forms SIF uses for leaf content.
//
// The lexical forms differ by SIF generation: SIF 1.x uses compact dates
// ("20060102") and Yes/No booleans, SIF 2.x uses XML Schema datatypes. A
// Formatter captures one family; FormatterFor selects it by version.
package simpletype

// Kind identifies the primitive type of a leaf value.
type Kind uint8

const (
	KindInvalid Kind = iota
	KindString
	KindInt
	KindLong
	KindFloat
	KindDecimal
	KindBoolean
	KindDate
	KindTime
	KindDateTime
	KindDuration
)

var kindNames = [...]string{
	KindInvalid:  "invalid",
	KindString:   "string",
	KindInt:      "int",
	KindLong:     "long",
	KindFloat:    "float",
	KindDecimal:  "decimal",
	KindBoolean:  "boolean",
	KindDate:     "date",
	KindTime:     "time",
	KindDateTime: "dateTime",
	KindDuration: "duration",
}

// String returns the XML Schema name of the kind.
func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "invalid"
}

// Kinds returns every valid kind.
func Kinds() []Kind {
	return []Kind{
		KindString, KindInt, KindLong, KindFloat, KindDecimal, KindBoolean,
		KindDate, KindTime, KindDateTime, KindDuration,
	}
}
