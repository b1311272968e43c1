// File: lixenwraith/roconfig/builder.go
package roconfig

import (
	"fmt"
	"log/slog"
)

// ValidatorFunc validates a fully built Config.
type ValidatorFunc func(c *Config) error

// step is one ingestion operation, applied in the order it was added
type step struct {
	name  string
	apply func(c *Config) error
}

// Builder provides a fluent interface for assembling a Config from several sources.
// Sources are applied in the order they are added, so later sources win.
type Builder struct {
	steps      []step
	logger     *slog.Logger
	tagName    string
	validators []ValidatorFunc
}

// NewBuilder creates a new configuration builder
func NewBuilder() *Builder {
	return &Builder{
		validators: make([]ValidatorFunc, 0),
	}
}

func (b *Builder) add(name string, fn func(c *Config) error) *Builder {
	b.steps = append(b.steps, step{name: name, apply: fn})
	return b
}

// WithLogger sets the logger of the built Config
func (b *Builder) WithLogger(logger *slog.Logger) *Builder {
	b.logger = logger
	return b
}

// WithTagName sets the struct tag used by WithStruct, Scan and BuildAndScan
func (b *Builder) WithTagName(tagName string) *Builder {
	b.tagName = tagName
	return b
}

// WithMap merges a mapping (shallow)
func (b *Builder) WithMap(m map[string]any) *Builder {
	return b.add("map", func(c *Config) error {
		c.AddMap(m)
		return nil
	})
}

// WithStruct merges a struct of defaults (shallow)
func (b *Builder) WithStruct(v any) *Builder {
	return b.add("struct", func(c *Config) error {
		return c.AddStruct(v)
	})
}

// WithValue applies a single override key
func (b *Builder) WithValue(key string, value any) *Builder {
	return b.add("value "+key, func(c *Config) error {
		return c.AddValue(key, value)
	})
}

// WithEnv reads environment variables, see Config.AddEnv
func (b *Builder) WithEnv(prefix string, stripPrefix bool) *Builder {
	return b.add("env", func(c *Config) error {
		return c.AddEnv(prefix, stripPrefix)
	})
}

// WithINI merges INI text
func (b *Builder) WithINI(text string) *Builder {
	return b.add("ini", func(c *Config) error {
		return c.AddINI(text)
	})
}

// WithFile reads a file whose format is derived from its extension
func (b *Builder) WithFile(path string, optional bool) *Builder {
	return b.add("file "+path, func(c *Config) error {
		return c.AddFile(path, optional)
	})
}

// WithINIFile reads an INI file
func (b *Builder) WithINIFile(path string, optional bool) *Builder {
	return b.add("ini file "+path, func(c *Config) error {
		return c.AddINIFile(path, optional)
	})
}

// WithJSONFile reads a JSON file
func (b *Builder) WithJSONFile(path string, optional bool) *Builder {
	return b.add("json file "+path, func(c *Config) error {
		return c.AddJSONFile(path, optional)
	})
}

// WithYAMLFile reads a YAML file
func (b *Builder) WithYAMLFile(path string, optional bool) *Builder {
	return b.add("yaml file "+path, func(c *Config) error {
		return c.AddYAMLFile(path, optional)
	})
}

// WithTOMLFile reads a TOML file
func (b *Builder) WithTOMLFile(path string, optional bool) *Builder {
	return b.add("toml file "+path, func(c *Config) error {
		return c.AddTOMLFile(path, optional)
	})
}

// WithValidator adds a validation function that runs at the end of the build process.
// Validators run in the order they are added.
func (b *Builder) WithValidator(fn ValidatorFunc) *Builder {
	if fn != nil {
		b.validators = append(b.validators, fn)
	}
	return b
}

// Build creates the Config, applying every source in order.
// The first failing source aborts the build.
func (b *Builder) Build() (*Config, error) {
	cfg := New(nil)
	cfg.SetLogger(b.logger)
	cfg.SetTagName(b.tagName)

	for _, s := range b.steps {
		if err := s.apply(cfg); err != nil {
			return nil, fmt.Errorf("failed to apply %s: %w", s.name, err)
		}
	}

	for _, validator := range b.validators {
		if err := validator(cfg); err != nil {
			return nil, fmt.Errorf("configuration validation failed: %w", err)
		}
	}

	return cfg, nil
}

// MustBuild is like Build but panics on error
func (b *Builder) MustBuild() *Config {
	cfg, err := b.Build()
	if err != nil {
		panic(fmt.Sprintf("config build failed: %v", err))
	}
	return cfg
}

// BuildAndScan builds the Config and decodes the mapping at key into target.
func (b *Builder) BuildAndScan(key string, target any) (*Config, error) {
	cfg, err := b.Build()
	if err != nil {
		return nil, err
	}
	if err := cfg.Scan(key, target); err != nil {
		return cfg, fmt.Errorf("failed to scan final config into target: %w", err)
	}
	return cfg, nil
}
