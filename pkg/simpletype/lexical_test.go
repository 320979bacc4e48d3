package simpletype

import "testing"

func TestTrimXMLWhitespace(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"", ""},
		{"abc", "abc"},
		{" \t\r\nabc\n", "abc"},
		{"a b", "a b"},
		{"   ", ""},
	}
	for _, tt := range tests {
		if got := TrimXMLWhitespace(tt.in); got != tt.want {
			t.Fatalf("TrimXMLWhitespace(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestSplitTimezone(t *testing.T) {
	tests := []struct {
		in       string
		wantMain string
		wantTZ   string
	}{
		{"10:00:00Z", "10:00:00", "Z"},
		{"10:00:00-05:00", "10:00:00", "-05:00"},
		{"10:00:00", "10:00:00", ""},
		{"", "", ""},
	}
	for _, tt := range tests {
		main, tz := splitTimezone(tt.in)
		if main != tt.wantMain || tz != tt.wantTZ {
			t.Fatalf("splitTimezone(%q) = (%q, %q), want (%q, %q)", tt.in, main, tz, tt.wantMain, tt.wantTZ)
		}
	}
}

func TestParseClockFraction(t *testing.T) {
	_, _, _, ns, ok := parseClock("01:02:03.123")
	if !ok || ns != 123000000 {
		t.Fatalf("parseClock() ns = %d ok = %v, want 123000000 true", ns, ok)
	}
	if _, _, _, _, ok := parseClock("01:02:03."); ok {
		t.Fatal("parseClock() accepted empty fraction")
	}
	if _, _, _, _, ok := parseClock("01:60:03"); ok {
		t.Fatal("parseClock() accepted minute 60")
	}
}
