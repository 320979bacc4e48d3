package simpletype

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

func TestParseDuration(t *testing.T) {
	tests := []struct {
		in   string
		want Duration
	}{
		{"P1Y", Duration{Years: 1}},
		{"P1Y2M3DT4H5M6S", Duration{Years: 1, Months: 2, Days: 3, Hours: 4, Minutes: 5, Seconds: decimal.NewFromInt(6)}},
		{"-P10D", Duration{Negative: true, Days: 10}},
		{"PT0.25S", Duration{Seconds: decimal.RequireFromString("0.25")}},
		{"-PT0S", Duration{}},
		{"PT2M", Duration{Minutes: 2}},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseDuration(tt.in)
			require.NoError(t, err)
			require.True(t, got.Equal(tt.want), "got %+v", got)
		})
	}
}

func TestParseDurationErrors(t *testing.T) {
	for _, in := range []string{"", "P", "1Y", "PT", "P1S", "P-1D", "PT1.S"} {
		t.Run(in, func(t *testing.T) {
			_, err := ParseDuration(in)
			require.Error(t, err)
		})
	}
}

func TestDurationString(t *testing.T) {
	require.Equal(t, "PT0S", Duration{}.String())
	require.Equal(t, "-P1DT2H", Duration{Negative: true, Days: 1, Hours: 2}.String())
	require.Equal(t, "PT1.5S", Duration{Seconds: decimal.RequireFromString("1.50")}.String())
}

func TestTimeDurationConversion(t *testing.T) {
	for _, d := range []time.Duration{0, time.Second, 90 * time.Minute, -36 * time.Hour, 1500 * time.Millisecond} {
		got, err := FromTimeDuration(d).TimeDuration()
		require.NoError(t, err)
		require.Equal(t, d, got)
	}
	_, err := Duration{Months: 1}.TimeDuration()
	require.Error(t, err)
}
