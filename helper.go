// File: lixenwraith/roconfig/helper.go
package roconfig

import (
	"fmt"
	"strconv"
	"strings"
)

// Flatten returns every leaf of this node keyed by its colon-joined path.
// Sequence elements use their index as the segment, so each key is a valid
// override key for AddValue. Empty containers are kept as leaves.
func (c *Config) Flatten() map[string]any {
	flat := make(map[string]any)
	flattenInto(flat, c.data, "")
	return flat
}

func flattenInto(flat map[string]any, node any, prefix string) {
	join := func(segment string) string {
		if prefix == "" {
			return segment
		}
		return prefix + KeyDelimiter + segment
	}

	switch kindOf(node) {
	case KindMapping:
		m := asMapping(node)
		if len(m) == 0 && prefix != "" {
			flat[prefix] = node
			return
		}
		for key, value := range m {
			flattenInto(flat, value, join(key))
		}
	case KindSequence:
		s := asSequence(node)
		if len(s) == 0 {
			flat[prefix] = node
			return
		}
		for i, value := range s {
			flattenInto(flat, value, join(strconv.Itoa(i)))
		}
	default:
		flat[prefix] = node
	}
}

// ExportEnv renders every scalar leaf as an environment variable: prefix plus
// the path upper-cased with segments joined by "__". AddEnv with the same prefix
// and stripPrefix reads a variable back to its path only when the path's segments
// are lower-case and have no '_' or ':' at their edges. Empty containers are skipped.
func (c *Config) ExportEnv(prefix string) map[string]string {
	transform := envTransform(prefix)

	exports := make(map[string]string)
	for path, value := range c.Flatten() {
		if kindOf(value) != KindScalar {
			continue
		}
		if value == nil {
			exports[transform(path)] = ""
			continue
		}
		exports[transform(path)] = fmt.Sprintf("%v", value)
	}
	return exports
}

// envTransform maps a colon-joined path to an environment variable name
func envTransform(prefix string) func(path string) string {
	return func(path string) string {
		env := strings.ReplaceAll(path, KeyDelimiter, EnvKeyDelimiter)
		env = strings.ToUpper(env)
		if prefix != "" {
			env = strings.ToUpper(prefix) + env
		}
		return env
	}
}
