package simpletype

import (
	"fmt"
	"strings"
	"time"
)

// TrimXMLWhitespace removes leading and trailing XML whitespace.
// It returns the original string when no trimming is needed.
func TrimXMLWhitespace(in string) string {
	start := 0
	end := len(in)
	for start < end && isXMLWhitespace(in[start]) {
		start++
	}
	for end > start && isXMLWhitespace(in[end-1]) {
		end--
	}
	if start == 0 && end == len(in) {
		return in
	}
	return in[start:end]
}

func isXMLWhitespace(b byte) bool {
	return b == ' ' || b == '\t' || b == '\n' || b == '\r'
}

// splitTimezone separates a trailing "Z" or "+hh:mm"/"-hh:mm" suffix.
func splitTimezone(value string) (string, string) {
	if value == "" {
		return value, ""
	}
	if value[len(value)-1] == 'Z' {
		return value[:len(value)-1], "Z"
	}
	if len(value) >= 6 {
		tz := value[len(value)-6:]
		if (tz[0] == '+' || tz[0] == '-') && tz[3] == ':' {
			return value[:len(value)-6], tz
		}
	}
	return value, ""
}

// zoneFor resolves a timezone suffix to a location. An empty suffix is UTC.
func zoneFor(tz string) (*time.Location, error) {
	if tz == "" || tz == "Z" {
		return time.UTC, nil
	}
	if len(tz) != 6 || (tz[0] != '+' && tz[0] != '-') || tz[3] != ':' {
		return nil, fmt.Errorf("invalid timezone format: %s", tz)
	}
	hour, ok := parseFixedDigits(tz, 1, 2)
	if !ok {
		return nil, fmt.Errorf("invalid timezone format: %s", tz)
	}
	minute, ok := parseFixedDigits(tz, 4, 2)
	if !ok {
		return nil, fmt.Errorf("invalid timezone format: %s", tz)
	}
	if hour > 14 || minute > 59 || (hour == 14 && minute != 0) {
		return nil, fmt.Errorf("invalid timezone offset: %s", tz)
	}
	offset := hour*3600 + minute*60
	if tz[0] == '-' {
		offset = -offset
	}
	if offset == 0 {
		return time.UTC, nil
	}
	return time.FixedZone("", offset), nil
}

// formatZone renders the offset of t as "Z", "+hh:mm" or "" when omitUTC is set and t is UTC.
func formatZone(t time.Time, omitUTC bool) string {
	_, offset := t.Zone()
	if offset == 0 {
		if omitUTC {
			return ""
		}
		return "Z"
	}
	sign := byte('+')
	if offset < 0 {
		sign = '-'
		offset = -offset
	}
	return fmt.Sprintf("%c%02d:%02d", sign, offset/3600, (offset%3600)/60)
}

// parseClock parses "hh:mm:ss[.fff]" into its components.
func parseClock(value string) (hour, minute, second, nanos int, ok bool) {
	if len(value) < 8 || value[2] != ':' || value[5] != ':' {
		return 0, 0, 0, 0, false
	}
	if hour, ok = parseFixedDigits(value, 0, 2); !ok {
		return 0, 0, 0, 0, false
	}
	if minute, ok = parseFixedDigits(value, 3, 2); !ok {
		return 0, 0, 0, 0, false
	}
	if second, ok = parseFixedDigits(value, 6, 2); !ok {
		return 0, 0, 0, 0, false
	}
	if hour > 23 || minute > 59 || second > 59 {
		return 0, 0, 0, 0, false
	}
	if len(value) == 8 {
		return hour, minute, second, 0, true
	}
	frac := value[8:]
	if frac[0] != '.' || len(frac) == 1 || len(frac) > 10 {
		return 0, 0, 0, 0, false
	}
	digits, ok := parseFixedDigits(frac, 1, len(frac)-1)
	if !ok {
		return 0, 0, 0, 0, false
	}
	for i := len(frac) - 1; i < 9; i++ {
		digits *= 10
	}
	return hour, minute, second, digits, true
}

// parseCalendar parses a date laid out as "yyyy?mm?dd" with sep between
// fields (sep 0 means no separator).
func parseCalendar(value string, sep byte) (year, month, day int, ok bool) {
	monthAt, dayAt, size := 4, 6, 8
	if sep != 0 {
		monthAt, dayAt, size = 5, 8, 10
		if len(value) != size || value[4] != sep || value[7] != sep {
			return 0, 0, 0, false
		}
	}
	if len(value) != size {
		return 0, 0, 0, false
	}
	if year, ok = parseFixedDigits(value, 0, 4); !ok {
		return 0, 0, 0, false
	}
	if month, ok = parseFixedDigits(value, monthAt, 2); !ok {
		return 0, 0, 0, false
	}
	if day, ok = parseFixedDigits(value, dayAt, 2); !ok {
		return 0, 0, 0, false
	}
	if year < 1 || !isValidDate(year, month, day) {
		return 0, 0, 0, false
	}
	return year, month, day, true
}

func parseFixedDigits(value string, start, length int) (int, bool) {
	if start < 0 || length <= 0 || start+length > len(value) {
		return 0, false
	}
	n := 0
	for i := range length {
		ch := value[start+i]
		if ch < '0' || ch > '9' {
			return 0, false
		}
		n = n*10 + int(ch-'0')
	}
	return n, true
}

func isValidDate(year, month, day int) bool {
	if month < 1 || month > 12 || day < 1 || day > 31 {
		return false
	}
	t := time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
	return t.Year() == year && int(t.Month()) == month && t.Day() == day
}

func formatFraction(nanos int) string {
	if nanos == 0 {
		return ""
	}
	s := fmt.Sprintf(".%09d", nanos)
	return strings.TrimRight(s, "0")
}
