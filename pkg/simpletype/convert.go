package simpletype

import (
	"math"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	siferrors "github.com/jacoelho/sif/errors"
)

// Parse converts lexical text to a value of kind k using f.
// Malformed input returns a CodeTypeParse error.
func Parse(f Formatter, k Kind, text string) (Value, error) {
	if k == KindString {
		return String(text), nil
	}
	s := TrimXMLWhitespace(text)
	v, err := parseTrimmed(f, k, s)
	if err != nil {
		return Value{}, siferrors.Wrap(siferrors.CodeTypeParse, err, "invalid "+k.String()+" value "+strconv.Quote(s))
	}
	return v, nil
}

func parseTrimmed(f Formatter, k Kind, s string) (Value, error) {
	switch k {
	case KindInt:
		n, err := strconv.ParseInt(s, 10, 32)
		if err != nil {
			return Value{}, err
		}
		return Int(int32(n)), nil
	case KindLong:
		n, err := strconv.ParseInt(s, 10, 64)
		if err != nil {
			return Value{}, err
		}
		return Long(n), nil
	case KindFloat:
		fl, err := parseFloat(s)
		if err != nil {
			return Value{}, err
		}
		return Float(fl), nil
	case KindDecimal:
		if strings.ContainsAny(s, "eE") {
			return Value{}, strconv.ErrSyntax
		}
		d, err := decimal.NewFromString(s)
		if err != nil {
			return Value{}, err
		}
		return Decimal(d), nil
	case KindBoolean:
		b, err := f.ParseBool(s)
		if err != nil {
			return Value{}, err
		}
		return Bool(b), nil
	case KindDate:
		t, err := f.ParseDate(s)
		if err != nil {
			return Value{}, err
		}
		return Date(t), nil
	case KindTime:
		t, err := f.ParseTime(s)
		if err != nil {
			return Value{}, err
		}
		return Time(t), nil
	case KindDateTime:
		t, err := f.ParseDateTime(s)
		if err != nil {
			return Value{}, err
		}
		return DateTime(t), nil
	case KindDuration:
		d, err := ParseDuration(s)
		if err != nil {
			return Value{}, err
		}
		return DurationValue(d), nil
	default:
		return Value{}, siferrors.Newf(siferrors.CodeTypeMismatch, "unsupported kind %d", k)
	}
}

func parseFloat(s string) (float64, error) {
	switch s {
	case "INF", "+INF":
		return math.Inf(1), nil
	case "-INF":
		return math.Inf(-1), nil
	case "NaN":
		return math.NaN(), nil
	}
	if strings.ContainsAny(s, "iInN") {
		return 0, strconv.ErrSyntax
	}
	return strconv.ParseFloat(s, 64)
}

// Format renders v using f. It reports false for explicit nulls and
// invalid values, which have no lexical form.
func Format(f Formatter, v Value) (string, bool) {
	if !v.set {
		return "", false
	}
	switch v.kind {
	case KindString:
		return v.str, true
	case KindInt, KindLong:
		return strconv.FormatInt(v.num, 10), true
	case KindFloat:
		return formatFloat(v.flt), true
	case KindDecimal:
		return v.dec.String(), true
	case KindBoolean:
		return f.FormatBool(v.b), true
	case KindDate:
		return f.FormatDate(v.t), true
	case KindTime:
		return f.FormatTime(v.t), true
	case KindDateTime:
		return f.FormatDateTime(v.t), true
	case KindDuration:
		return v.dur.String(), true
	default:
		return "", false
	}
}

func formatFloat(f float64) string {
	switch {
	case math.IsInf(f, 1):
		return "INF"
	case math.IsInf(f, -1):
		return "-INF"
	case math.IsNaN(f):
		return "NaN"
	default:
		return strconv.FormatFloat(f, 'G', -1, 64)
	}
}
