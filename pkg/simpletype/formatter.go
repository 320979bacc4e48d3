package simpletype

import (
	"time"

	"github.com/jacoelho/sif/pkg/sifversion"
)

// Formatter renders and parses the version-dependent lexical forms:
// dates, times, instants and booleans. Numbers, decimals, strings and
// durations share one form across generations.
//
// Legacy has no fractional seconds: its FormatTime and FormatDateTime
// truncate to the second, so sub-second values do not survive a SIF 1.x
// round trip.
type Formatter interface {
	Name() string
	FormatDate(t time.Time) string
	ParseDate(s string) (time.Time, error)
	FormatTime(t time.Time) string
	ParseTime(s string) (time.Time, error)
	FormatDateTime(t time.Time) string
	ParseDateTime(s string) (time.Time, error)
	FormatBool(b bool) string
	ParseBool(s string) (bool, error)
}

var (
	// Legacy is the SIF 1.x lexical family.
	Legacy Formatter = legacyFormatter{}
	// Current is the SIF 2.x lexical family (XML Schema datatypes).
	Current Formatter = currentFormatter{}
)

// FormatterFor returns the lexical family for v.
func FormatterFor(v sifversion.Version) Formatter {
	if v.Major() < 2 {
		return Legacy
	}
	return Current
}
