package simpletype

import (
	"math"
	"time"

	"github.com/shopspring/decimal"
)

// Value is a typed leaf value. An explicit null keeps its kind and reports
// IsNil; it is distinct from an absent field, which has no Value at all.
// The zero Value is invalid.
type Value struct {
	t    time.Time
	dec  decimal.Decimal
	dur  Duration
	str  string
	num  int64
	flt  float64
	kind Kind
	set  bool
	b    bool
}

// String returns a string value.
func String(s string) Value { return Value{kind: KindString, set: true, str: s} }

// Int returns a 32-bit integer value.
func Int(n int32) Value { return Value{kind: KindInt, set: true, num: int64(n)} }

// Long returns a 64-bit integer value.
func Long(n int64) Value { return Value{kind: KindLong, set: true, num: n} }

// Float returns a floating point value.
func Float(f float64) Value { return Value{kind: KindFloat, set: true, flt: f} }

// Decimal returns an exact decimal value.
func Decimal(d decimal.Decimal) Value { return Value{kind: KindDecimal, set: true, dec: d} }

// Bool returns a boolean value.
func Bool(b bool) Value { return Value{kind: KindBoolean, set: true, b: b} }

// Date returns a calendar date value; the clock and zone of t are dropped.
func Date(t time.Time) Value {
	y, m, d := t.Date()
	return Value{kind: KindDate, set: true, t: time.Date(y, m, d, 0, 0, 0, 0, time.UTC)}
}

// Time returns a time-of-day value; the date of t is dropped, the zone kept.
func Time(t time.Time) Value {
	h, m, s := t.Clock()
	return Value{kind: KindTime, set: true, t: time.Date(0, 1, 1, h, m, s, t.Nanosecond(), t.Location())}
}

// DateTime returns an instant value.
func DateTime(t time.Time) Value { return Value{kind: KindDateTime, set: true, t: t} }

// DurationValue returns a duration value.
func DurationValue(d Duration) Value { return Value{kind: KindDuration, set: true, dur: d} }

// Nil returns the explicit null of kind k.
func Nil(k Kind) Value { return Value{kind: k} }

// Kind returns the value kind.
func (v Value) Kind() Kind { return v.kind }

// IsValid reports whether v carries a kind.
func (v Value) IsValid() bool { return v.kind != KindInvalid }

// IsNil reports whether v is an explicit null.
func (v Value) IsNil() bool { return v.kind != KindInvalid && !v.set }

// Native returns the Go value, or nil for an explicit null.
func (v Value) Native() any {
	if !v.set {
		return nil
	}
	switch v.kind {
	case KindString:
		return v.str
	case KindInt:
		return int32(v.num)
	case KindLong:
		return v.num
	case KindFloat:
		return v.flt
	case KindDecimal:
		return v.dec
	case KindBoolean:
		return v.b
	case KindDate, KindTime, KindDateTime:
		return v.t
	case KindDuration:
		return v.dur
	default:
		return nil
	}
}

// AsString returns the string of a KindString value.
func (v Value) AsString() (string, bool) { return v.str, v.set && v.kind == KindString }

// AsInt returns the integer of a KindInt value.
func (v Value) AsInt() (int32, bool) { return int32(v.num), v.set && v.kind == KindInt }

// AsLong returns the integer of a KindInt or KindLong value.
func (v Value) AsLong() (int64, bool) {
	return v.num, v.set && (v.kind == KindLong || v.kind == KindInt)
}

// AsFloat returns the float of a KindFloat value.
func (v Value) AsFloat() (float64, bool) { return v.flt, v.set && v.kind == KindFloat }

// AsDecimal returns the decimal of a KindDecimal value.
func (v Value) AsDecimal() (decimal.Decimal, bool) { return v.dec, v.set && v.kind == KindDecimal }

// AsBool returns the boolean of a KindBoolean value.
func (v Value) AsBool() (bool, bool) { return v.b, v.set && v.kind == KindBoolean }

// AsTime returns the time of a date, time or dateTime value.
func (v Value) AsTime() (time.Time, bool) {
	return v.t, v.set && (v.kind == KindDate || v.kind == KindTime || v.kind == KindDateTime)
}

// AsDuration returns the duration of a KindDuration value.
func (v Value) AsDuration() (Duration, bool) { return v.dur, v.set && v.kind == KindDuration }

// Equal reports whether v and o hold the same kind and value.
// Two explicit nulls of the same kind are equal.
func (v Value) Equal(o Value) bool {
	if v.kind != o.kind || v.set != o.set {
		return false
	}
	if !v.set {
		return true
	}
	switch v.kind {
	case KindString:
		return v.str == o.str
	case KindInt, KindLong:
		return v.num == o.num
	case KindFloat:
		if math.IsNaN(v.flt) && math.IsNaN(o.flt) {
			return true
		}
		return v.flt == o.flt
	case KindDecimal:
		return v.dec.Equal(o.dec)
	case KindBoolean:
		return v.b == o.b
	case KindDate:
		return sameDate(v.t, o.t)
	case KindTime:
		return sameClock(v.t, o.t)
	case KindDateTime:
		return v.t.Equal(o.t)
	case KindDuration:
		return v.dur.Equal(o.dur)
	default:
		return true
	}
}

// String renders v in the SIF 2.x lexical form, "<nil>" for explicit nulls.
func (v Value) String() string {
	if !v.IsValid() {
		return "<invalid>"
	}
	s, ok := Format(Current, v)
	if !ok {
		return "<nil>"
	}
	return s
}

func sameDate(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}

func sameClock(a, b time.Time) bool {
	ah, am, as := a.Clock()
	bh, bm, bs := b.Clock()
	_, aoff := a.Zone()
	_, boff := b.Zone()
	return ah == bh && am == bm && as == bs && a.Nanosecond() == b.Nanosecond() && aoff == boff
}
