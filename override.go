// FILE: lixenwraith/roconfig/override.go
package roconfig

import (
	"fmt"
	"reflect"
)

// Apply sets value at the location addressed by key inside root and returns root.
//
// Missing intermediate mapping nodes are created as map[string]any. Sequence
// elements can be replaced but a sequence is never grown, and descending through
// an existing scalar is a structural conflict. Errors are *OverrideError values
// wrapping one of ErrInvalidPathSegment, ErrIndexOutOfRange, ErrStructuralConflict
// or ErrInvalidAssignment. On error root may hold mapping nodes created before the
// failing segment.
func Apply(root map[string]any, key string, value any) (map[string]any, error) {
	segments, err := ParseKey(key)
	if err != nil {
		return root, err
	}
	if root == nil {
		root = make(map[string]any)
	}

	if len(segments) == 1 {
		root[segments[0]] = value
		return root, nil
	}

	var cursor any = root
	for _, segment := range segments[:len(segments)-1] {
		var next any
		switch kindOf(cursor) {
		case KindSequence:
			next, err = sequenceChild(cursor, key, segment)
		case KindMapping:
			next, err = mappingChild(cursor, key, segment)
		}
		if err != nil {
			return root, err
		}

		if kind := kindOf(next); kind != KindMapping && kind != KindSequence {
			return root, overrideErr(key, segment, ErrStructuralConflict,
				fmt.Sprintf("existing value of type %T is not a container", next))
		}
		cursor = next
	}

	last := segments[len(segments)-1]
	if kindOf(cursor) == KindSequence {
		err = setSequenceElement(cursor, key, last, value)
	} else {
		err = setMappingEntry(cursor, key, last, value)
	}
	return root, err
}

// sequenceIndex validates segment as an in-bounds index of seq.
func sequenceIndex(seq any, key, segment string) (int, error) {
	index, ok := parseIndex(segment)
	if !ok {
		return 0, overrideErr(key, segment, ErrInvalidPathSegment, "sequence index must be a non-negative integer")
	}
	length := reflect.ValueOf(seq).Len()
	if index >= length {
		return 0, overrideErr(key, segment, ErrIndexOutOfRange, fmt.Sprintf("sequence length is %d", length))
	}
	return index, nil
}

func sequenceChild(seq any, key, segment string) (any, error) {
	index, err := sequenceIndex(seq, key, segment)
	if err != nil {
		return nil, err
	}
	if s, ok := seq.([]any); ok {
		return s[index], nil
	}
	return reflect.ValueOf(seq).Index(index).Interface(), nil
}

func setSequenceElement(seq any, key, segment string, value any) error {
	index, err := sequenceIndex(seq, key, segment)
	if err != nil {
		return err
	}
	if s, ok := seq.([]any); ok {
		s[index] = value
		return nil
	}

	elem := reflect.ValueOf(seq).Index(index)
	v, ok := assignableValue(value, elem.Type())
	if !ok {
		return overrideErr(key, segment, ErrInvalidAssignment,
			fmt.Sprintf("cannot store %T in %T", value, seq))
	}
	elem.Set(v)
	return nil
}

// mappingChild returns the value under segment, creating an empty mapping when absent.
func mappingChild(mapping any, key, segment string) (any, error) {
	if m, ok := mapping.(map[string]any); ok {
		if m == nil {
			return nil, overrideErr(key, segment, ErrInvalidAssignment, "nil mapping")
		}
		next, exists := m[segment]
		if !exists {
			child := make(map[string]any)
			m[segment] = child
			return child, nil
		}
		return next, nil
	}

	rv := reflect.ValueOf(mapping)
	k, err := mapKey(rv, key, segment)
	if err != nil {
		return nil, err
	}
	if existing := rv.MapIndex(k); existing.IsValid() {
		return existing.Interface(), nil
	}

	child := make(map[string]any)
	if err := setMapIndex(rv, k, child, key, segment); err != nil {
		return nil, err
	}
	return child, nil
}

func setMappingEntry(mapping any, key, segment string, value any) error {
	if m, ok := mapping.(map[string]any); ok {
		if m == nil {
			return overrideErr(key, segment, ErrInvalidAssignment, "nil mapping")
		}
		m[segment] = value
		return nil
	}

	rv := reflect.ValueOf(mapping)
	k, err := mapKey(rv, key, segment)
	if err != nil {
		return err
	}
	return setMapIndex(rv, k, value, key, segment)
}

// mapKey converts segment to the key type of the map held by rv.
func mapKey(rv reflect.Value, key, segment string) (reflect.Value, error) {
	keyType := rv.Type().Key()
	switch {
	case keyType.Kind() == reflect.String:
		return reflect.ValueOf(segment).Convert(keyType), nil
	case keyType.Kind() == reflect.Interface && reflect.TypeOf(segment).Implements(keyType):
		return reflect.ValueOf(segment), nil
	}
	return reflect.Value{}, overrideErr(key, segment, ErrInvalidAssignment,
		fmt.Sprintf("mapping key type %s cannot hold a string", keyType))
}

func setMapIndex(rv reflect.Value, k reflect.Value, value any, key, segment string) error {
	if rv.IsNil() {
		return overrideErr(key, segment, ErrInvalidAssignment, "nil mapping")
	}
	v, ok := assignableValue(value, rv.Type().Elem())
	if !ok {
		return overrideErr(key, segment, ErrInvalidAssignment,
			fmt.Sprintf("cannot store %T in %s", value, rv.Type()))
	}
	rv.SetMapIndex(k, v)
	return nil
}

// assignableValue returns value as a reflect.Value of type t, without conversion.
func assignableValue(value any, t reflect.Type) (reflect.Value, bool) {
	if value == nil {
		switch t.Kind() {
		case reflect.Interface, reflect.Map, reflect.Slice, reflect.Pointer, reflect.Func, reflect.Chan:
			return reflect.Zero(t), true
		}
		return reflect.Value{}, false
	}
	v := reflect.ValueOf(value)
	if !v.Type().AssignableTo(t) {
		return reflect.Value{}, false
	}
	return v, true
}
