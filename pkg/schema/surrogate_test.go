package schema

import "testing"

func TestZoneOffset(t *testing.T) {
	tests := []struct {
		zone string
		want string
	}{
		{"UTC", ""},
		{"UTC-05:00", "-05:00"},
		{"GMT+10:00", "+10:00"},
		{" UTC+01:00 ", "+01:00"},
		{"+02:00", "+02:00"},
	}
	for _, tt := range tests {
		if got := zoneOffset(tt.zone); got != tt.want {
			t.Errorf("zoneOffset(%q) = %q, want %q", tt.zone, got, tt.want)
		}
	}
}

func TestSplitClock(t *testing.T) {
	tests := []struct {
		in, clock, zone string
	}{
		{"10:20:30", "10:20:30", ""},
		{"10:20:30-05:00", "10:20:30", "-05:00"},
	}
	for _, tt := range tests {
		clock, zone := splitClock(tt.in)
		if clock != tt.clock || zone != tt.zone {
			t.Errorf("splitClock(%q) = %q, %q", tt.in, clock, zone)
		}
	}
}
