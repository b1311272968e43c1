// FILE: lixenwraith/roconfig/keypath.go
package roconfig

import (
	"math"
	"strings"
)

const (
	// KeyDelimiter separates path segments and takes precedence over EnvKeyDelimiter.
	KeyDelimiter = ":"
	// EnvKeyDelimiter separates path segments in keys that contain no KeyDelimiter.
	// Environment variable names cannot portably contain a colon.
	EnvKeyDelimiter = "__"

	boundaryChars = "_:"
)

// ParseKey splits a raw override key into path segments, root to leaf.
// Leading and trailing '_' and ':' are trimmed first. A key containing ':' is split
// on ':' only; otherwise a key containing "__" is split on "__"; otherwise the key is
// a single top-level segment.
func ParseKey(raw string) ([]string, error) {
	key := strings.Trim(raw, boundaryChars)
	if key == "" {
		return nil, overrideErr(raw, "", ErrInvalidPathSegment, "empty key")
	}

	var segments []string
	switch {
	case strings.Contains(key, KeyDelimiter):
		segments = strings.Split(key, KeyDelimiter)
	case strings.Contains(key, EnvKeyDelimiter):
		segments = strings.Split(key, EnvKeyDelimiter)
	default:
		return []string{key}, nil
	}

	for _, segment := range segments {
		if segment == "" {
			return nil, overrideErr(raw, segment, ErrInvalidPathSegment, "empty segment")
		}
	}
	return segments, nil
}

// parseIndex accepts only literal non-negative base-10 integers. Leading zeros
// are ignored; values too large for an int saturate to math.MaxInt so they fail
// any bounds check instead of the syntax check.
func parseIndex(segment string) (int, bool) {
	if segment == "" {
		return 0, false
	}
	for i := 0; i < len(segment); i++ {
		if c := segment[i]; c < '0' || c > '9' {
			return 0, false
		}
	}

	digits := strings.TrimLeft(segment, "0")
	if len(digits) > 18 {
		return math.MaxInt, true
	}
	n := 0
	for i := 0; i < len(digits); i++ {
		n = n*10 + int(digits[i]-'0')
	}
	return n, true
}
