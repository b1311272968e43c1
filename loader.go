// FILE: lixenwraith/roconfig/loader.go
package roconfig

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/ini.v1"
	"gopkg.in/yaml.v3"
)

// Format identifies a configuration file format
type Format string

const (
	// FormatINI is INI text with a DEFAULT section inherited by every other section
	FormatINI Format = "ini"
	// FormatJSON is a JSON object
	FormatJSON Format = "json"
	// FormatYAML is a YAML mapping document
	FormatYAML Format = "yaml"
	// FormatTOML is a TOML document
	FormatTOML Format = "toml"
)

// DetectFormat determines the format from the file extension.
func DetectFormat(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".ini", ".cfg", ".conf":
		return FormatINI, nil
	case ".json":
		return FormatJSON, nil
	case ".yaml", ".yml":
		return FormatYAML, nil
	case ".toml", ".tml":
		return FormatTOML, nil
	default:
		return "", fmt.Errorf("%w: %s", ErrUnknownFormat, path)
	}
}

// AddEnv reads the process environment into this node.
//
// Variable names are lower-cased. When prefix is non-empty only variables whose
// lower-cased name starts with the lower-cased prefix are read, and with
// stripPrefix the prefix is removed. Each surviving name is applied as an
// override key (see Apply), so APP_DB__HOST targets db.host after stripping "app_".
// Names that reduce to an empty key are skipped.
func (c *Config) AddEnv(prefix string, stripPrefix bool) error {
	return c.addEnviron(os.Environ(), prefix, stripPrefix)
}

// addEnviron ingests "NAME=value" entries.
func (c *Config) addEnviron(environ []string, prefix string, stripPrefix bool) error {
	prefix = strings.ToLower(prefix)

	applied := 0
	for _, entry := range environ {
		name, value, ok := strings.Cut(entry, "=")
		if !ok {
			continue
		}

		key := strings.ToLower(name)
		if prefix != "" {
			if !strings.HasPrefix(key, prefix) {
				continue
			}
			if stripPrefix {
				key = strings.TrimPrefix(key, prefix)
			}
		}

		if strings.Trim(key, boundaryChars) == "" {
			c.logger.Debug("skipping environment variable with empty key", "name", name)
			continue
		}

		if err := c.AddValue(key, value); err != nil {
			return fmt.Errorf("failed to apply environment variable %s: %w", name, err)
		}
		applied++
	}

	c.logger.Debug("merged configuration source", "source", "env", "prefix", prefix, "keys", applied)
	return nil
}

// AddINI parses INI text and merges its sections as top-level keys.
func (c *Config) AddINI(text string) error {
	values, err := parseINI([]byte(text))
	if err != nil {
		return fmt.Errorf("failed to parse INI settings: %w", err)
	}
	c.merge(FormatINI, "", values)
	return nil
}

// AddJSON parses a JSON object and merges its top-level keys.
func (c *Config) AddJSON(text string) error {
	values, err := decodeJSON(strings.NewReader(text))
	if err != nil {
		return fmt.Errorf("failed to parse JSON settings: %w", err)
	}
	c.merge(FormatJSON, "", values)
	return nil
}

// AddYAML parses a YAML mapping and merges its top-level keys. An empty document is a no-op.
func (c *Config) AddYAML(text string) error {
	values, err := decodeYAML(strings.NewReader(text))
	if err != nil {
		return fmt.Errorf("failed to parse YAML settings: %w", err)
	}
	c.merge(FormatYAML, "", values)
	return nil
}

// AddTOML parses a TOML document and merges its top-level keys.
func (c *Config) AddTOML(text string) error {
	values, err := decodeTOML(strings.NewReader(text))
	if err != nil {
		return fmt.Errorf("failed to parse TOML settings: %w", err)
	}
	c.merge(FormatTOML, "", values)
	return nil
}

// AddINIFile reads an INI file. A missing file fails with ErrConfigNotFound unless optional.
func (c *Config) AddINIFile(path string, optional bool) error {
	return c.addFile(path, FormatINI, optional)
}

// AddJSONFile reads a JSON file. A missing file fails with ErrConfigNotFound unless optional.
func (c *Config) AddJSONFile(path string, optional bool) error {
	return c.addFile(path, FormatJSON, optional)
}

// AddYAMLFile reads a YAML file. A missing file fails with ErrConfigNotFound unless optional.
func (c *Config) AddYAMLFile(path string, optional bool) error {
	return c.addFile(path, FormatYAML, optional)
}

// AddTOMLFile reads a TOML file. A missing file fails with ErrConfigNotFound unless optional.
func (c *Config) AddTOMLFile(path string, optional bool) error {
	return c.addFile(path, FormatTOML, optional)
}

// AddFile reads a file whose format is derived from its extension.
func (c *Config) AddFile(path string, optional bool) error {
	format, err := DetectFormat(path)
	if err != nil {
		return err
	}
	return c.addFile(path, format, optional)
}

// addFile opens, parses and merges one file. The file is closed on every path.
func (c *Config) addFile(path string, format Format, optional bool) error {
	file, err := os.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			if optional {
				c.logger.Info("optional configuration file not found", "path", path, "format", string(format))
				return nil
			}
			return fmt.Errorf("%w: %s", ErrConfigNotFound, path)
		}
		return fmt.Errorf("failed to open config file '%s': %w", path, err)
	}
	defer file.Close()

	var values map[string]any
	switch format {
	case FormatINI:
		var data []byte
		if data, err = io.ReadAll(file); err == nil {
			values, err = parseINI(data)
		}
	case FormatJSON:
		values, err = decodeJSON(file)
	case FormatYAML:
		values, err = decodeYAML(file)
	case FormatTOML:
		values, err = decodeTOML(file)
	default:
		return fmt.Errorf("%w: %q for file '%s'", ErrUnknownFormat, format, path)
	}
	if err != nil {
		return fmt.Errorf("failed to parse %s config file '%s': %w", strings.ToUpper(string(format)), path, err)
	}

	c.merge(format, path, values)
	return nil
}

func (c *Config) merge(format Format, path string, values map[string]any) {
	c.AddMap(values)
	c.logger.Debug("merged configuration source", "source", string(format), "path", path, "keys", len(values))
}

// parseINI builds section -> key -> string value. Keys of the DEFAULT section are
// copied into every other section unless the section sets them itself; DEFAULT is
// not emitted as a section. Values then go through basic interpolation, see
// interpolateINI.
func parseINI(data []byte) (map[string]any, error) {
	file, err := ini.LoadSources(ini.LoadOptions{
		InsensitiveKeys:            true,
		IgnoreInlineComment:        true,
		AllowPythonMultilineValues: true,
		PreserveSurroundedQuote:    true,
	}, data)
	if err != nil {
		return nil, err
	}

	defaults := file.Section(ini.DefaultSection)
	values := make(map[string]any)
	for _, section := range file.Sections() {
		if section.Name() == ini.DefaultSection {
			continue
		}

		raw := make(map[string]string, len(defaults.Keys())+len(section.Keys()))
		for _, key := range defaults.Keys() {
			raw[key.Name()] = key.Value()
		}
		for _, key := range section.Keys() {
			raw[key.Name()] = key.Value()
		}

		sectionValues := make(map[string]any, len(raw))
		for name, value := range raw {
			resolved, err := interpolateINI(raw, name, value)
			if err != nil {
				return nil, fmt.Errorf("section [%s]: %w", section.Name(), err)
			}
			sectionValues[name] = resolved
		}
		values[section.Name()] = sectionValues
	}
	return values, nil
}

const maxINIInterpolationDepth = 10

var iniReference = regexp.MustCompile(`^%\(([^)]+)\)s`)

// interpolateINI expands %(name)s references against the section's own keys
// (DEFAULT included) and turns %% into %. Any other % is an error.
func interpolateINI(section map[string]string, name, value string) (string, error) {
	var b strings.Builder
	if err := interpolateInto(&b, section, name, value, 1); err != nil {
		return "", err
	}
	return b.String(), nil
}

func interpolateInto(b *strings.Builder, section map[string]string, name, rest string, depth int) error {
	if depth > maxINIInterpolationDepth {
		return fmt.Errorf("%w: %q nests references deeper than %d", ErrInterpolation, name, maxINIInterpolationDepth)
	}

	for rest != "" {
		p := strings.IndexByte(rest, '%')
		if p < 0 {
			b.WriteString(rest)
			return nil
		}
		b.WriteString(rest[:p])
		rest = rest[p:]

		switch {
		case strings.HasPrefix(rest, "%%"):
			b.WriteByte('%')
			rest = rest[2:]
		case strings.HasPrefix(rest, "%("):
			m := iniReference.FindStringSubmatch(rest)
			if m == nil {
				return fmt.Errorf("%w: bad reference in %q: %q", ErrInterpolation, name, rest)
			}
			rest = rest[len(m[0]):]

			ref := strings.ToLower(m[1])
			v, ok := section[ref]
			if !ok {
				return fmt.Errorf("%w: %q references missing key %q", ErrInterpolation, name, ref)
			}
			if !strings.Contains(v, "%") {
				b.WriteString(v)
				continue
			}
			if err := interpolateInto(b, section, name, v, depth+1); err != nil {
				return err
			}
		default:
			return fmt.Errorf("%w: '%%' in %q must be followed by '%%' or '('", ErrInterpolation, name)
		}
	}
	return nil
}

func decodeJSON(r io.Reader) (map[string]any, error) {
	decoder := json.NewDecoder(r)
	decoder.UseNumber() // preserve number precision

	var doc any
	if err := decoder.Decode(&doc); err != nil {
		return nil, err
	}
	values, ok := doc.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("%w: top level is %T, not an object", ErrInvalidDocument, doc)
	}
	return values, nil
}

func decodeYAML(r io.Reader) (map[string]any, error) {
	var doc any
	if err := yaml.NewDecoder(r).Decode(&doc); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, nil // empty document
		}
		return nil, err
	}
	if doc == nil {
		return nil, nil
	}

	values, ok := normalizeYAML(doc).(map[string]any)
	if !ok {
		return nil, fmt.Errorf("%w: top level is %T, not a mapping", ErrInvalidDocument, doc)
	}
	return values, nil
}

// normalizeYAML converts map[any]any nodes, produced for non-string keys, to map[string]any.
func normalizeYAML(node any) any {
	switch n := node.(type) {
	case map[string]any:
		for k, v := range n {
			n[k] = normalizeYAML(v)
		}
		return n
	case map[any]any:
		out := make(map[string]any, len(n))
		for k, v := range n {
			out[fmt.Sprint(k)] = normalizeYAML(v)
		}
		return out
	case []any:
		for i, v := range n {
			n[i] = normalizeYAML(v)
		}
		return n
	default:
		return node
	}
}

func decodeTOML(r io.Reader) (map[string]any, error) {
	values := make(map[string]any)
	if _, err := toml.NewDecoder(r).Decode(&values); err != nil {
		return nil, err
	}
	return values, nil
}
