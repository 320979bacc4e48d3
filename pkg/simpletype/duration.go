package simpletype

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

var (
	// durationPattern validates the full xs:duration lexical form.
	durationPattern = regexp.MustCompile(`^-?P(\d+Y)?(\d+M)?(\d+D)?(T(\d+H)?(\d+M)?(\d+(\.\d+)?S)?)?$`)
	datePattern     = regexp.MustCompile(`(\d+)Y|(\d+)M|(\d+)D`)
	timePattern     = regexp.MustCompile(`(\d+)H|(\d+)M|(\d+(\.\d+)?)S`)
)

// Duration is an xs:duration value. Components are kept separately because
// months and years have no fixed length.
type Duration struct {
	Seconds  decimal.Decimal
	Years    int
	Months   int
	Days     int
	Hours    int
	Minutes  int
	Negative bool
}

// FromTimeDuration converts a fixed-length duration, using days, hours,
// minutes and seconds.
func FromTimeDuration(d time.Duration) Duration {
	out := Duration{Negative: d < 0}
	if d < 0 {
		d = -d
	}
	out.Days = int(d / (24 * time.Hour))
	d -= time.Duration(out.Days) * 24 * time.Hour
	out.Hours = int(d / time.Hour)
	d -= time.Duration(out.Hours) * time.Hour
	out.Minutes = int(d / time.Minute)
	d -= time.Duration(out.Minutes) * time.Minute
	out.Seconds = decimal.New(int64(d), -9)
	if out.IsZero() {
		out.Negative = false
	}
	return out
}

// TimeDuration converts d to a time.Duration. It fails when d has year or
// month components.
func (d Duration) TimeDuration() (time.Duration, error) {
	if d.Years != 0 || d.Months != 0 {
		return 0, errors.New("duration with years or months has no fixed length")
	}
	total := time.Duration(d.Days)*24*time.Hour +
		time.Duration(d.Hours)*time.Hour +
		time.Duration(d.Minutes)*time.Minute +
		time.Duration(d.Seconds.Shift(9).IntPart())
	if d.Negative {
		total = -total
	}
	return total, nil
}

// IsZero reports whether every component is zero.
func (d Duration) IsZero() bool {
	return d.Years == 0 && d.Months == 0 && d.Days == 0 && d.Hours == 0 && d.Minutes == 0 && d.Seconds.IsZero()
}

// Equal reports component-wise equality.
func (d Duration) Equal(o Duration) bool {
	return d.Negative == o.Negative && d.Years == o.Years && d.Months == o.Months &&
		d.Days == o.Days && d.Hours == o.Hours && d.Minutes == o.Minutes && d.Seconds.Equal(o.Seconds)
}

// String renders the xs:duration lexical form.
func (d Duration) String() string {
	if d.IsZero() {
		return "PT0S"
	}
	var b strings.Builder
	if d.Negative {
		b.WriteByte('-')
	}
	b.WriteByte('P')
	writeComponent(&b, d.Years, 'Y')
	writeComponent(&b, d.Months, 'M')
	writeComponent(&b, d.Days, 'D')
	if d.Hours != 0 || d.Minutes != 0 || !d.Seconds.IsZero() {
		b.WriteByte('T')
		writeComponent(&b, d.Hours, 'H')
		writeComponent(&b, d.Minutes, 'M')
		if !d.Seconds.IsZero() {
			b.WriteString(d.Seconds.String())
			b.WriteByte('S')
		}
	}
	return b.String()
}

func writeComponent(b *strings.Builder, n int, designator byte) {
	if n == 0 {
		return
	}
	b.WriteString(strconv.Itoa(n))
	b.WriteByte(designator)
}

// ParseDuration parses an xs:duration lexical value.
func ParseDuration(s string) (Duration, error) {
	s = TrimXMLWhitespace(s)
	if s == "" {
		return Duration{}, errors.New("empty duration")
	}
	if !durationPattern.MatchString(s) {
		return Duration{}, fmt.Errorf("invalid duration format: %s", s)
	}
	negative := s[0] == '-'
	body := strings.TrimPrefix(s, "-")[1:]

	datePart, timePart, sawT := strings.Cut(body, "T")
	var out Duration
	hasComponent := false
	maxComponent := uint64(^uint(0) >> 1)
	parseComponent := func(value, label string) (int, error) {
		u, err := strconv.ParseUint(value, 10, 64)
		if err != nil {
			if errors.Is(err, strconv.ErrRange) {
				return 0, fmt.Errorf("%s value too large", label)
			}
			return 0, fmt.Errorf("invalid %s value: %w", label, err)
		}
		if u > maxComponent {
			return 0, fmt.Errorf("%s value too large", label)
		}
		return int(u), nil
	}

	for _, m := range datePattern.FindAllStringSubmatch(datePart, -1) {
		var err error
		switch {
		case m[1] != "":
			out.Years, err = parseComponent(m[1], "year")
		case m[2] != "":
			out.Months, err = parseComponent(m[2], "month")
		case m[3] != "":
			out.Days, err = parseComponent(m[3], "day")
		}
		if err != nil {
			return Duration{}, err
		}
		hasComponent = true
	}

	hasTime := false
	for _, m := range timePattern.FindAllStringSubmatch(timePart, -1) {
		var err error
		switch {
		case m[1] != "":
			out.Hours, err = parseComponent(m[1], "hour")
		case m[2] != "":
			out.Minutes, err = parseComponent(m[2], "minute")
		case m[3] != "":
			out.Seconds, err = decimal.NewFromString(m[3])
			if err != nil {
				err = fmt.Errorf("invalid second value: %w", err)
			}
		}
		if err != nil {
			return Duration{}, err
		}
		hasComponent = true
		hasTime = true
	}

	if !hasComponent {
		return Duration{}, errors.New("duration must have at least one component")
	}
	if sawT && !hasTime {
		return Duration{}, errors.New("time designator present but no time components specified")
	}
	out.Negative = negative && !out.IsZero()
	return out, nil
}
