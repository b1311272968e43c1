// FILE: lixenwraith/roconfig/value.go
package roconfig

import (
	"fmt"
	"iter"
	"reflect"
)

// Kind classifies a configuration value.
type Kind int

const (
	// KindMissing marks the result of reading an absent key
	KindMissing Kind = iota
	// KindScalar is any value that is neither a mapping nor a sequence, nil included
	KindScalar
	// KindMapping is a string-keyed map
	KindMapping
	// KindSequence is a slice
	KindSequence
)

func (k Kind) String() string {
	switch k {
	case KindMissing:
		return "missing"
	case KindScalar:
		return "scalar"
	case KindMapping:
		return "mapping"
	case KindSequence:
		return "sequence"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// kindOf classifies v. map[string]any and []any are the canonical containers;
// any other map or slice type is classified by its reflect kind. []byte is a scalar.
func kindOf(v any) Kind {
	switch v.(type) {
	case map[string]any:
		return KindMapping
	case []any:
		return KindSequence
	case nil, []byte, string:
		return KindScalar
	}

	switch reflect.ValueOf(v).Kind() {
	case reflect.Map:
		return KindMapping
	case reflect.Slice:
		return KindSequence
	}
	return KindScalar
}

// Value is the result of reading a key from a Config or a Sequence.
// Mappings and sequences are exposed as views over the stored container,
// scalars as the stored value.
type Value struct {
	kind  Kind
	raw   any
	name  string
	owner *Config // source of logger and tag name for derived views
}

func newValue(name string, raw any, owner *Config) Value {
	return Value{kind: kindOf(raw), raw: raw, name: name, owner: owner}
}

func missingValue(name string) Value {
	return Value{kind: KindMissing, name: name}
}

// Kind reports what the value holds.
func (v Value) Kind() Kind {
	return v.kind
}

// IsMissing reports whether the key was absent.
func (v Value) IsMissing() bool {
	return v.kind == KindMissing
}

// Raw returns the stored value without wrapping; nil for a missing value.
func (v Value) Raw() any {
	return v.raw
}

// Or returns the raw value, or def when the value is missing.
func (v Value) Or(def any) any {
	if v.kind == KindMissing {
		return def
	}
	return v.raw
}

// Scalar returns the stored scalar.
func (v Value) Scalar() (any, error) {
	if v.kind != KindScalar {
		return nil, v.mismatch(KindScalar)
	}
	return v.raw, nil
}

// Mapping returns a new Config view over the stored mapping.
func (v Value) Mapping() (*Config, error) {
	if v.kind != KindMapping {
		return nil, v.mismatch(KindMapping)
	}
	return v.owner.child(asMapping(v.raw)), nil
}

// Sequence returns a new Sequence view over the stored slice.
func (v Value) Sequence() (*Sequence, error) {
	if v.kind != KindSequence {
		return nil, v.mismatch(KindSequence)
	}
	return &Sequence{items: asSequence(v.raw), owner: v.owner}, nil
}

func (v Value) mismatch(want Kind) error {
	if v.kind == KindMissing {
		return fmt.Errorf("%w: %q", ErrKeyNotFound, v.name)
	}
	return fmt.Errorf("%w: %q is a %s, not a %s", ErrTypeMismatch, v.name, v.kind, want)
}

// String renders the raw value.
func (v Value) String() string {
	if v.kind == KindMissing {
		return "<missing>"
	}
	return fmt.Sprintf("%v", v.raw)
}

// Sequence is a read view over an ordered list of configuration values.
type Sequence struct {
	items []any
	owner *Config
}

// Len returns the number of elements.
func (s *Sequence) Len() int {
	return len(s.items)
}

// Index returns the element at i, wrapped as a Value.
func (s *Sequence) Index(i int) (Value, error) {
	if i < 0 || i >= len(s.items) {
		return Value{}, fmt.Errorf("%w: %d (length %d)", ErrIndexOutOfRange, i, len(s.items))
	}
	return newValue(fmt.Sprint(i), s.items[i], s.owner), nil
}

// All iterates the elements in order.
func (s *Sequence) All() iter.Seq2[int, Value] {
	return func(yield func(int, Value) bool) {
		for i, item := range s.items {
			if !yield(i, newValue(fmt.Sprint(i), item, s.owner)) {
				return
			}
		}
	}
}

// Values returns a shallow copy of the elements.
func (s *Sequence) Values() []any {
	out := make([]any, len(s.items))
	copy(out, s.items)
	return out
}

// asMapping returns m itself when canonical, otherwise a shallow canonical copy.
func asMapping(m any) map[string]any {
	if canonical, ok := m.(map[string]any); ok {
		return canonical
	}
	rv := reflect.ValueOf(m)
	out := make(map[string]any, rv.Len())
	it := rv.MapRange()
	for it.Next() {
		out[fmt.Sprint(it.Key().Interface())] = it.Value().Interface()
	}
	return out
}

// asSequence returns s itself when canonical, otherwise a shallow canonical copy.
func asSequence(s any) []any {
	if canonical, ok := s.([]any); ok {
		return canonical
	}
	rv := reflect.ValueOf(s)
	out := make([]any, rv.Len())
	for i := range out {
		out[i] = rv.Index(i).Interface()
	}
	return out
}
