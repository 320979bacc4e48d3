package sifversion

import (
	"strconv"
	"strings"
)

const (
	legacyNamespacePrefix = "http://www.sifinfo.org/v"
	legacyNamespaceSuffix = "/messages"
	infraNamespacePrefix  = "http://www.sifinfo.org/infrastructure/"
)

// Namespace returns the SIF_Message namespace URI for v.
func (v Version) Namespace() string {
	if !v.HasVersionAttribute() {
		return legacyNamespacePrefix + v.String() + legacyNamespaceSuffix
	}
	return infraNamespacePrefix + strconv.Itoa(int(v.major)) + ".x"
}

// ParseNamespace extracts the exact version encoded in a legacy SIF 1.0rN
// namespace URI. Generational namespaces ("infrastructure/1.x") do not
// identify a single version and report false.
func ParseNamespace(uri string) (Version, bool) {
	uri = strings.TrimSpace(uri)
	if !strings.HasPrefix(uri, legacyNamespacePrefix) || !strings.HasSuffix(uri, legacyNamespaceSuffix) {
		return Version{}, false
	}
	raw := strings.TrimSuffix(strings.TrimPrefix(uri, legacyNamespacePrefix), legacyNamespaceSuffix)
	v, err := Parse(raw)
	if err != nil {
		return Version{}, false
	}
	return v, true
}

// NamespaceMajor returns the major version of a generational namespace URI
// ("http://www.sifinfo.org/infrastructure/2.x" is 2). Legacy URIs report
// their own major.
func NamespaceMajor(uri string) (int, bool) {
	if v, ok := ParseNamespace(uri); ok {
		return v.Major(), true
	}
	uri = strings.TrimSpace(uri)
	if !strings.HasPrefix(uri, infraNamespacePrefix) {
		return 0, false
	}
	gen := strings.TrimPrefix(uri, infraNamespacePrefix)
	major, ok := strings.CutSuffix(gen, ".x")
	if !ok || major == "" {
		return 0, false
	}
	n, err := strconv.Atoi(major)
	if err != nil {
		return 0, false
	}
	if _, known := LatestOfMajor(n); !known {
		return 0, false
	}
	return n, true
}
