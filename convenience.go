// File: lixenwraith/roconfig/convenience.go
package roconfig

import (
	"fmt"
	"sort"
	"strings"
)

// Quick builds a Config from an initial mapping, optional files in order, and
// environment variables filtered by envPrefix with the prefix stripped.
// An empty envPrefix skips the environment.
func Quick(initial map[string]any, envPrefix string, files ...string) (*Config, error) {
	b := NewBuilder().WithMap(initial)
	for _, file := range files {
		b.WithFile(file, true)
	}
	if envPrefix != "" {
		b.WithEnv(envPrefix, true)
	}
	return b.Build()
}

// MustQuick is like Quick but panics on error
func MustQuick(initial map[string]any, envPrefix string, files ...string) *Config {
	cfg, err := Quick(initial, envPrefix, files...)
	if err != nil {
		panic(fmt.Sprintf("config initialization failed: %v", err))
	}
	return cfg
}

// Debug returns every leaf path with its value and Go type, sorted by path.
func (c *Config) Debug() string {
	flat := c.Flatten()
	paths := make([]string, 0, len(flat))
	for path := range flat {
		paths = append(paths, path)
	}
	sort.Strings(paths)

	var b strings.Builder
	b.WriteString("Configuration Debug Info:\n")
	for _, path := range paths {
		fmt.Fprintf(&b, "  %s = %v (%T)\n", path, flat[path], flat[path])
	}
	return b.String()
}
