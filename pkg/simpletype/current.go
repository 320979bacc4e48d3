package simpletype

import (
	"fmt"
	"strings"
	"time"
)

// currentFormatter implements the SIF 2.x forms, which are the XML Schema
// xs:date, xs:time, xs:dateTime and xs:boolean lexical spaces.
type currentFormatter struct{}

func (currentFormatter) Name() string { return "SIF2x" }

func (currentFormatter) FormatDate(t time.Time) string { return t.Format("2006-01-02") }

func (currentFormatter) ParseDate(s string) (time.Time, error) {
	s = TrimXMLWhitespace(s)
	main, tz := splitTimezone(s)
	if _, err := zoneFor(tz); err != nil {
		return time.Time{}, err
	}
	y, m, d, ok := parseCalendar(main, '-')
	if !ok {
		return time.Time{}, fmt.Errorf("invalid date: %s", s)
	}
	return time.Date(y, time.Month(m), d, 0, 0, 0, 0, time.UTC), nil
}

func (currentFormatter) FormatTime(t time.Time) string {
	return t.Format("15:04:05") + formatFraction(t.Nanosecond()) + formatZone(t, false)
}

func (currentFormatter) ParseTime(s string) (time.Time, error) {
	s = TrimXMLWhitespace(s)
	main, tz := splitTimezone(s)
	h, m, sec, ns, ok := parseClock(main)
	if !ok {
		return time.Time{}, fmt.Errorf("invalid time: %s", s)
	}
	loc, err := zoneFor(tz)
	if err != nil {
		return time.Time{}, err
	}
	return time.Date(0, 1, 1, h, m, sec, ns, loc), nil
}

func (f currentFormatter) FormatDateTime(t time.Time) string {
	return t.Format("2006-01-02") + "T" + f.FormatTime(t)
}

func (currentFormatter) ParseDateTime(s string) (time.Time, error) {
	s = TrimXMLWhitespace(s)
	datePart, clockPart, ok := strings.Cut(s, "T")
	if !ok {
		return time.Time{}, fmt.Errorf("invalid dateTime: %s", s)
	}
	y, mo, d, ok := parseCalendar(datePart, '-')
	if !ok {
		return time.Time{}, fmt.Errorf("invalid dateTime: %s", s)
	}
	main, tz := splitTimezone(clockPart)
	h, mi, sec, ns, ok := parseClock(main)
	if !ok {
		return time.Time{}, fmt.Errorf("invalid dateTime: %s", s)
	}
	loc, err := zoneFor(tz)
	if err != nil {
		return time.Time{}, err
	}
	return time.Date(y, time.Month(mo), d, h, mi, sec, ns, loc), nil
}

func (currentFormatter) FormatBool(b bool) string {
	if b {
		return "true"
	}
	return "false"
}

func (currentFormatter) ParseBool(s string) (bool, error) {
	switch TrimXMLWhitespace(s) {
	case "true", "1":
		return true, nil
	case "false", "0":
		return false, nil
	default:
		return false, fmt.Errorf("invalid boolean: %s", s)
	}
}
