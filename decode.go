// FILE: lixenwraith/roconfig/decode.go
package roconfig

import (
	"fmt"
	"net"
	"net/url"
	"reflect"
	"time"

	"github.com/mitchellh/mapstructure"
)

// Scan decodes the mapping at key into target, which must be a non-nil pointer.
// An empty key decodes this whole node. A key that does not exist decodes an
// empty mapping, leaving target zeroed.
func (c *Config) Scan(key string, target any) error {
	rv := reflect.ValueOf(target)
	if rv.Kind() != reflect.Pointer || rv.IsNil() {
		return fmt.Errorf("scan target must be non-nil pointer, got %T", target)
	}

	var section any = c.data
	if key != "" {
		v := c.Lookup(key)
		switch v.Kind() {
		case KindMissing:
			section = map[string]any{}
		case KindMapping:
			section = asMapping(v.Raw())
		default:
			return fmt.Errorf("%w: key %q refers to a %s, not a mapping", ErrTypeMismatch, key, v.Kind())
		}
	}

	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           target,
		TagName:          c.tagName,
		WeaklyTypedInput: true,
		DecodeHook:       decodeHook(),
		ZeroFields:       true,
	})
	if err != nil {
		return fmt.Errorf("decoder creation failed: %w", err)
	}

	if err := decoder.Decode(section); err != nil {
		return fmt.Errorf("decode failed for key %q: %w", key, err)
	}
	return nil
}

// decodeHook lets string values, as produced by environment variables and INI
// files, fill typed fields.
func decodeHook() mapstructure.DecodeHookFunc {
	return mapstructure.ComposeDecodeHookFunc(
		parsedStringHook(func(s string) (*net.IP, error) {
			ip := net.ParseIP(s)
			if ip == nil {
				return nil, fmt.Errorf("invalid IP address: %q", s)
			}
			return &ip, nil
		}),
		parsedStringHook(func(s string) (*net.IPNet, error) {
			_, ipnet, err := net.ParseCIDR(s)
			return ipnet, err
		}),
		parsedStringHook(url.Parse),

		mapstructure.StringToTimeDurationHookFunc(),
		mapstructure.StringToTimeHookFunc(time.RFC3339),
		mapstructure.StringToSliceHookFunc(","),
	)
}

// parsedStringHook decodes a string into a T or *T field using parse.
func parsedStringHook[T any](parse func(string) (*T, error)) mapstructure.DecodeHookFuncType {
	want := reflect.TypeFor[T]()
	return func(from reflect.Type, to reflect.Type, data any) (any, error) {
		if from.Kind() != reflect.String {
			return data, nil
		}
		pointer := to.Kind() == reflect.Pointer && to.Elem() == want
		if to != want && !pointer {
			return data, nil
		}

		v, err := parse(reflect.ValueOf(data).String())
		if err != nil {
			return nil, fmt.Errorf("cannot decode %q as %s: %w", data, want, err)
		}
		if pointer {
			return v, nil
		}
		return *v, nil
	}
}
