package schema

import (
	"strconv"
	"strings"
	"time"

	siferrors "github.com/jacoelho/sif/errors"
	"github.com/jacoelho/sif/pkg/element"
	"github.com/jacoelho/sif/pkg/sifversion"
	"github.com/jacoelho/sif/pkg/simpletype"
)

// Legacy header tags replacing SIF_Timestamp.
const (
	DateTag  = "SIF_Date"
	TimeTag  = "SIF_Time"
	ZoneAttr = "Zone"
)

// TimestampSurrogate renders a dateTime field as the SIF 1.x pair
//
//	<SIF_Date>20240301</SIF_Date>
//	<SIF_Time Zone="UTC-05:00">10:20:30</SIF_Time>
//
// and merges the pair back into the field when reading.
type TimestampSurrogate struct {
	field string
}

// NewTimestampSurrogate returns a surrogate for the dateTime field at path.
func NewTimestampSurrogate(path string) *TimestampSurrogate {
	return &TimestampSurrogate{field: path}
}

// Render writes SIF_Date and SIF_Time when the field holds a value.
func (s *TimestampSurrogate) Render(w element.TokenWriter, parent *element.Element, _ *element.Def, v sifversion.Version) error {
	val, ok := parent.FindValue(s.field)
	if !ok {
		return nil
	}
	t, ok := val.AsTime()
	if !ok {
		return nil
	}
	f := simpletype.FormatterFor(v)
	clock, zone := splitClock(f.FormatTime(t))
	nodes := []*element.Node{
		{Name: DateTag, Text: f.FormatDate(t)},
		{Name: TimeTag, Text: clock, Attrs: []element.Attr{{Name: ZoneAttr, Value: "UTC" + zone}}},
	}
	for _, n := range nodes {
		if err := element.WriteNode(w, n); err != nil {
			return err
		}
	}
	return nil
}

// Read claims SIF_Date and SIF_Time, combining each with whatever half of
// the instant has already been read.
func (s *TimestampSurrogate) Read(parent *element.Element, n *element.Node, v sifversion.Version) (bool, error) {
	if n.Name != DateTag && n.Name != TimeTag {
		return false, nil
	}
	def, err := parent.ResolvePath(s.field)
	if err != nil {
		return true, err
	}
	var cur time.Time
	if val, ok := parent.FindValue(s.field); ok {
		cur, _ = val.AsTime()
	}
	f := simpletype.FormatterFor(v)
	switch n.Name {
	case DateTag:
		d, err := f.ParseDate(n.Text)
		if err != nil {
			return true, malformed(n, v, err)
		}
		cur = time.Date(d.Year(), d.Month(), d.Day(), cur.Hour(), cur.Minute(), cur.Second(), 0, cur.Location())
	case TimeTag:
		text := simpletype.TrimXMLWhitespace(n.Text)
		if zone, ok := n.Attr(ZoneAttr); ok {
			text += zoneOffset(zone)
		}
		c, err := f.ParseTime(text)
		if err != nil {
			return true, malformed(n, v, err)
		}
		cur = time.Date(cur.Year(), cur.Month(), cur.Day(), c.Hour(), c.Minute(), c.Second(), 0, c.Location())
	}
	if _, err := parent.SetField(def, simpletype.DateTime(cur)); err != nil {
		return true, err
	}
	return true, nil
}

// splitClock separates "15:04:05-05:00" into clock and offset.
func splitClock(s string) (clock, zone string) {
	if len(s) <= 8 {
		return s, ""
	}
	return s[:8], s[8:]
}

// zoneOffset turns a Zone attribute ("UTC-05:00", "GMT+10:00", "UTC")
// into the offset suffix the legacy time form accepts.
func zoneOffset(zone string) string {
	zone = strings.TrimSpace(zone)
	for _, p := range []string{"UTC", "GMT"} {
		if rest, ok := strings.CutPrefix(zone, p); ok {
			return rest
		}
	}
	return zone
}

func malformed(n *element.Node, v sifversion.Version, err error) error {
	return siferrors.Wrap(siferrors.CodeTypeParse, err, "invalid "+n.Name+" value "+strconv.Quote(n.Text)).WithTag(n.Name, v.String())
}
