package simpletype

import (
	"fmt"
	"strings"
	"time"
)

// legacyFormatter implements the SIF 1.x forms: "20060102" dates,
// "15:04:05[-07:00]" times, "20060102T15:04:05[-07:00]" instants and
// Yes/No booleans. The forms have no fraction, so times and instants are
// truncated to the second.
type legacyFormatter struct{}

func (legacyFormatter) Name() string { return "SIF1x" }

func (legacyFormatter) FormatDate(t time.Time) string { return t.Format("20060102") }

func (legacyFormatter) ParseDate(s string) (time.Time, error) {
	s = TrimXMLWhitespace(s)
	y, m, d, ok := parseCalendar(s, 0)
	if !ok {
		return time.Time{}, fmt.Errorf("invalid date: %s", s)
	}
	return time.Date(y, time.Month(m), d, 0, 0, 0, 0, time.UTC), nil
}

func (legacyFormatter) FormatTime(t time.Time) string {
	t = t.Add(-time.Duration(t.Nanosecond()))
	return t.Format("15:04:05") + formatZone(t, true)
}

func (legacyFormatter) ParseTime(s string) (time.Time, error) {
	s = TrimXMLWhitespace(s)
	main, tz := splitTimezone(s)
	if len(main) != 8 {
		return time.Time{}, fmt.Errorf("invalid time: %s", s)
	}
	h, m, sec, _, ok := parseClock(main)
	if !ok {
		return time.Time{}, fmt.Errorf("invalid time: %s", s)
	}
	loc, err := zoneFor(tz)
	if err != nil {
		return time.Time{}, err
	}
	return time.Date(0, 1, 1, h, m, sec, 0, loc), nil
}

func (f legacyFormatter) FormatDateTime(t time.Time) string {
	return t.Format("20060102") + "T" + f.FormatTime(t)
}

func (legacyFormatter) ParseDateTime(s string) (time.Time, error) {
	s = TrimXMLWhitespace(s)
	datePart, clockPart, ok := strings.Cut(s, "T")
	if !ok {
		return time.Time{}, fmt.Errorf("invalid dateTime: %s", s)
	}
	y, mo, d, ok := parseCalendar(datePart, 0)
	if !ok {
		return time.Time{}, fmt.Errorf("invalid dateTime: %s", s)
	}
	main, tz := splitTimezone(clockPart)
	if len(main) != 8 {
		return time.Time{}, fmt.Errorf("invalid dateTime: %s", s)
	}
	h, mi, sec, _, ok := parseClock(main)
	if !ok {
		return time.Time{}, fmt.Errorf("invalid dateTime: %s", s)
	}
	loc, err := zoneFor(tz)
	if err != nil {
		return time.Time{}, err
	}
	return time.Date(y, time.Month(mo), d, h, mi, sec, 0, loc), nil
}

func (legacyFormatter) FormatBool(b bool) string {
	if b {
		return "Yes"
	}
	return "No"
}

func (legacyFormatter) ParseBool(s string) (bool, error) {
	switch strings.ToLower(TrimXMLWhitespace(s)) {
	case "yes", "true":
		return true, nil
	case "no", "false":
		return false, nil
	default:
		return false, fmt.Errorf("invalid boolean: %s", s)
	}
}
