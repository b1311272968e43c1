// FILE: lixenwraith/roconfig/config.go
package roconfig

import (
	"fmt"
	"log/slog"
	"maps"
	"slices"
)

const defaultTagName = "config"

// Config is a read facade over a nested configuration mapping.
//
// Reading a mapping or sequence yields a new view over the same stored container,
// so several views may share one subtree: an override applied through any of them
// is visible through all. Mappings and sequences of non-canonical types (anything
// other than map[string]any and []any) are viewed through a shallow copy.
//
// Config performs no locking. Concurrent mutation must be serialized by the caller.
type Config struct {
	data    map[string]any
	logger  *slog.Logger
	tagName string
}

// New creates a Config and shallow-merges initial into it. initial may be nil.
func New(initial map[string]any) *Config {
	c := &Config{
		data:    make(map[string]any, len(initial)),
		logger:  slog.New(slog.DiscardHandler),
		tagName: defaultTagName,
	}
	c.AddMap(initial)
	return c
}

func (c *Config) child(data map[string]any) *Config {
	if c == nil {
		return &Config{data: data, logger: slog.New(slog.DiscardHandler), tagName: defaultTagName}
	}
	return &Config{data: data, logger: c.logger, tagName: c.tagName}
}

// SetLogger sets the logger used for ingestion records. Views created afterwards inherit it.
func (c *Config) SetLogger(logger *slog.Logger) {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	c.logger = logger
}

// Logger returns the logger used for ingestion records.
func (c *Config) Logger() *slog.Logger {
	return c.logger
}

// SetTagName sets the struct tag used by Scan and AddStruct (default "config").
func (c *Config) SetTagName(tagName string) {
	if tagName == "" {
		tagName = defaultTagName
	}
	c.tagName = tagName
}

// Get returns the top-level value stored under name.
// An absent key yields a Value of KindMissing.
func (c *Config) Get(name string) Value {
	raw, exists := c.data[name]
	if !exists {
		return missingValue(name)
	}
	return newValue(name, raw, c)
}

// Index is the strict form of Get: an absent key fails with ErrKeyNotFound.
func (c *Config) Index(name string) (Value, error) {
	v := c.Get(name)
	if v.IsMissing() {
		return v, fmt.Errorf("%w: %q", ErrKeyNotFound, name)
	}
	return v, nil
}

// Contains reports whether name is a top-level key, whatever its value.
func (c *Config) Contains(name string) bool {
	_, exists := c.data[name]
	return exists
}

// Values returns a shallow copy of the top-level mapping. Nested containers are
// returned as stored, not wrapped.
func (c *Config) Values() map[string]any {
	return maps.Clone(c.data)
}

// ToMap is an alias of Values.
func (c *Config) ToMap() map[string]any {
	return c.Values()
}

// Keys returns the top-level keys in sorted order.
func (c *Config) Keys() []string {
	return slices.Sorted(maps.Keys(c.data))
}

// Len returns the number of top-level keys.
func (c *Config) Len() int {
	return len(c.data)
}

// AddMap overwrites each top-level key of this node with the entry from m.
// Nested values are stored as given, not merged. On a view over a nil mapping
// the entries land in a new mapping that the parent does not see.
func (c *Config) AddMap(m map[string]any) {
	if c.data == nil {
		c.data = make(map[string]any, len(m))
	}
	for key, value := range m {
		c.data[key] = value
	}
}

// AddValue sets value at the path addressed by key, creating intermediate mappings.
// See Apply for the key syntax and failure modes. A view over a nil mapping
// cannot be written through and fails with ErrInvalidAssignment.
func (c *Config) AddValue(key string, value any) error {
	if c.data == nil {
		return overrideErr(key, "", ErrInvalidAssignment, "nil mapping")
	}
	data, err := Apply(c.data, key, value)
	c.data = data
	return err
}

// Lookup walks key (same syntax as AddValue) without modifying the tree.
// The result is KindMissing when any segment is absent, out of range,
// or addresses into a scalar.
func (c *Config) Lookup(key string) Value {
	segments, err := ParseKey(key)
	if err != nil {
		return missingValue(key)
	}

	var cursor any = c.data
	for _, segment := range segments {
		next, ok := childOf(cursor, segment)
		if !ok {
			return missingValue(key)
		}
		cursor = next
	}
	return newValue(key, cursor, c)
}

// childOf reads segment from a mapping or sequence without side effects.
func childOf(container any, segment string) (any, bool) {
	switch kindOf(container) {
	case KindMapping:
		value, exists := asMapping(container)[segment]
		return value, exists
	case KindSequence:
		index, ok := parseIndex(segment)
		if !ok {
			return nil, false
		}
		items := asSequence(container)
		if index >= len(items) {
			return nil, false
		}
		return items[index], true
	}
	return nil, false
}
