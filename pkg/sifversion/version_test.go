package sifversion

import (
	"sort"
	"testing"

	"github.com/stretchr/testify/require"

	siferrors "github.com/jacoelho/sif/errors"
)

func TestParse(t *testing.T) {
	tests := []struct {
		in   string
		want Version
	}{
		{"1.0r1", SIF10r1},
		{"1.0r2", SIF10r2},
		{"1.1", SIF11},
		{"1.5r1", SIF15r1},
		{"2.0", SIF20},
		{" 2.0r1 ", SIF20r1},
		{"2.5", SIF25},
		{"1.*", SIF15r1},
		{"2.*", SIF25},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := Parse(tt.in)
			require.NoError(t, err)
			require.Equal(t, tt.want, got)
		})
	}
}

func TestParseRejects(t *testing.T) {
	for _, in := range []string{"", "2", "2.0r0", "3.0", "1.3", "x.y", "2.0rX", "3.*"} {
		t.Run(in, func(t *testing.T) {
			_, err := Parse(in)
			require.Error(t, err)
			require.True(t, siferrors.IsVersion(err), "err = %v", err)
		})
	}
}

func TestStringRoundTrip(t *testing.T) {
	for _, v := range Known() {
		got, err := Parse(v.String())
		require.NoError(t, err)
		require.Equal(t, v, got)
	}
}

func TestKnownIsOrdered(t *testing.T) {
	vs := Known()
	require.True(t, sort.SliceIsSorted(vs, func(i, j int) bool { return vs[i].Less(vs[j]) }))
	require.Equal(t, Earliest, vs[0])
	require.Equal(t, Latest, vs[len(vs)-1])
}

func TestCompare(t *testing.T) {
	require.Equal(t, -1, SIF10r1.Compare(SIF10r2))
	require.Equal(t, -1, SIF15r1.Compare(SIF20))
	require.Equal(t, 1, SIF20r1.Compare(SIF20))
	require.Equal(t, 0, SIF21.Compare(New(2, 1, 0)))
	require.True(t, SIF20.AtLeast(SIF20))
	require.True(t, SIF21.Between(SIF20, Version{}))
	require.False(t, SIF15r1.Between(SIF20, SIF25))
	require.True(t, SIF15r1.Between(Version{}, SIF15r1))
}

func TestKey(t *testing.T) {
	require.Equal(t, "SIF20r1", SIF20r1.Key())
	require.Equal(t, "SIF11", SIF11.Key())
	require.Equal(t, "", Version{}.Key())
}

func TestVersionCapabilities(t *testing.T) {
	require.False(t, SIF10r2.HasVersionAttribute())
	require.True(t, SIF11.HasVersionAttribute())
	require.False(t, SIF15r1.SupportsNil())
	require.True(t, SIF20.SupportsNil())
}

func TestNamespace(t *testing.T) {
	require.Equal(t, "http://www.sifinfo.org/v1.0r1/messages", SIF10r1.Namespace())
	require.Equal(t, "http://www.sifinfo.org/infrastructure/1.x", SIF15r1.Namespace())
	require.Equal(t, "http://www.sifinfo.org/infrastructure/2.x", SIF23.Namespace())
}

func TestParseNamespace(t *testing.T) {
	v, ok := ParseNamespace("http://www.sifinfo.org/v1.0r2/messages")
	require.True(t, ok)
	require.Equal(t, SIF10r2, v)

	_, ok = ParseNamespace("http://www.sifinfo.org/infrastructure/2.x")
	require.False(t, ok)
	_, ok = ParseNamespace("http://www.sifinfo.org/v9.9/messages")
	require.False(t, ok)
}

func TestNamespaceMajor(t *testing.T) {
	tests := []struct {
		uri  string
		want int
		ok   bool
	}{
		{"http://www.sifinfo.org/infrastructure/2.x", 2, true},
		{"http://www.sifinfo.org/infrastructure/1.x", 1, true},
		{"http://www.sifinfo.org/v1.0r1/messages", 1, true},
		{"http://www.sifinfo.org/infrastructure/7.x", 0, false},
		{"urn:other", 0, false},
		{"", 0, false},
	}
	for _, tt := range tests {
		got, ok := NamespaceMajor(tt.uri)
		require.Equal(t, tt.ok, ok, tt.uri)
		require.Equal(t, tt.want, got, tt.uri)
	}
}

func TestMustParsePanics(t *testing.T) {
	require.Panics(t, func() { MustParse("9.9") })
	require.Equal(t, SIF22, MustParse("2.2"))
}
