// FILE: lixenwraith/roconfig/discovery.go
package roconfig

import (
	"os"
	"path/filepath"
	"strings"
)

// FileDiscoveryOptions configures automatic config file discovery
type FileDiscoveryOptions struct {
	// Base name of config file (without extension)
	Name string

	// Extensions to try (in order)
	Extensions []string

	// Custom search paths (searched before the defaults)
	Paths []string

	// Environment variable holding an explicit path
	EnvVar string

	// Whether to search in XDG config directories
	UseXDG bool

	// Whether to search in current directory
	UseCurrentDir bool
}

// DefaultDiscoveryOptions returns sensible defaults
func DefaultDiscoveryOptions(appName string) FileDiscoveryOptions {
	return FileDiscoveryOptions{
		Name:          appName,
		Extensions:    []string{".yaml", ".yml", ".json", ".toml", ".ini"},
		EnvVar:        strings.ToUpper(appName) + "_CONFIG",
		UseXDG:        true,
		UseCurrentDir: true,
	}
}

// DiscoverFile returns the first existing candidate file, or "" when none exists.
// An explicit path from EnvVar is returned as is, without checking existence.
func DiscoverFile(opts FileDiscoveryOptions) string {
	if opts.EnvVar != "" {
		if path := os.Getenv(opts.EnvVar); path != "" {
			return path
		}
	}

	var searchPaths []string
	searchPaths = append(searchPaths, opts.Paths...)

	if opts.UseCurrentDir {
		if cwd, err := os.Getwd(); err == nil {
			searchPaths = append(searchPaths, cwd)
		}
	}

	if opts.UseXDG {
		searchPaths = append(searchPaths, xdgConfigDirs(opts.Name)...)
	}

	for _, dir := range searchPaths {
		for _, ext := range opts.Extensions {
			path := filepath.Join(dir, opts.Name+ext)
			if info, err := os.Stat(path); err == nil && !info.IsDir() {
				return path
			}
		}
	}
	return ""
}

// WithFileDiscovery adds the discovered file as a source at this position.
// An explicit path from EnvVar is required to exist; a searched file is found or skipped.
func (b *Builder) WithFileDiscovery(opts FileDiscoveryOptions) *Builder {
	explicit := opts.EnvVar != "" && os.Getenv(opts.EnvVar) != ""
	path := DiscoverFile(opts)
	if path == "" {
		return b
	}
	return b.WithFile(path, !explicit)
}

// xdgConfigDirs lists the per-user directory ($XDG_CONFIG_HOME or ~/.config)
// followed by each $XDG_CONFIG_DIRS entry, or /etc/xdg and /etc when unset.
func xdgConfigDirs(appName string) []string {
	var dirs []string

	userDir := os.Getenv("XDG_CONFIG_HOME")
	if userDir == "" {
		if home, err := os.UserHomeDir(); err == nil {
			userDir = filepath.Join(home, ".config")
		}
	}
	if userDir != "" {
		dirs = append(dirs, filepath.Join(userDir, appName))
	}

	systemDirs := filepath.SplitList(os.Getenv("XDG_CONFIG_DIRS"))
	if len(systemDirs) == 0 {
		systemDirs = []string{"/etc/xdg", "/etc"}
	}
	for _, dir := range systemDirs {
		dirs = append(dirs, filepath.Join(dir, appName))
	}
	return dirs
}
