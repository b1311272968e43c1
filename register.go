// FILE: lixenwraith/roconfig/register.go
package roconfig

import (
	"fmt"
	"reflect"

	"github.com/mitchellh/mapstructure"
)

// AddStruct converts a struct (or pointer to one) into a mapping using the
// configured tag name and shallow-merges it like AddMap. Nested structs become
// nested mappings. Fields tagged "-" are skipped.
func (c *Config) AddStruct(v any) error {
	values, err := structToMap(v, c.tagName)
	if err != nil {
		return err
	}
	c.AddMap(values)
	c.logger.Debug("merged configuration source", "source", "struct", "type", fmt.Sprintf("%T", v), "keys", len(values))
	return nil
}

func structToMap(v any, tagName string) (map[string]any, error) {
	rv := reflect.ValueOf(v)
	if rv.Kind() == reflect.Pointer {
		if rv.IsNil() {
			return nil, fmt.Errorf("AddStruct requires a non-nil struct pointer or value")
		}
		rv = rv.Elem()
	}
	if rv.Kind() != reflect.Struct {
		return nil, fmt.Errorf("AddStruct requires a struct or struct pointer, got %T", v)
	}

	values := make(map[string]any)
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:  &values,
		TagName: tagName,
	})
	if err != nil {
		return nil, fmt.Errorf("decoder creation failed: %w", err)
	}
	if err := decoder.Decode(rv.Interface()); err != nil {
		return nil, fmt.Errorf("failed to convert %T to a mapping: %w", v, err)
	}
	return values, nil
}
