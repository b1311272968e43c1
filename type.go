// File: lixenwraith/roconfig/type.go
package roconfig

import (
	"fmt"
	"reflect"
	"strconv"
)

// lookupScalar resolves key and requires a scalar at the end of the path.
func (c *Config) lookupScalar(key string) (any, error) {
	v := c.Lookup(key)
	if v.IsMissing() {
		return nil, fmt.Errorf("%w: %q", ErrKeyNotFound, key)
	}
	return v.Scalar()
}

// String retrieves a string value at key.
// Common scalar types are formatted; the stored value is not changed.
func (c *Config) String(key string) (string, error) {
	val, err := c.lookupScalar(key)
	if err != nil {
		return "", err
	}
	if val == nil {
		return "", nil // nil reads as empty string
	}

	switch v := val.(type) {
	case string:
		return v, nil
	case fmt.Stringer:
		return v.String(), nil
	case []byte:
		return string(v), nil
	case int, int8, int16, int32, int64:
		return strconv.FormatInt(reflect.ValueOf(val).Int(), 10), nil
	case uint, uint8, uint16, uint32, uint64:
		return strconv.FormatUint(reflect.ValueOf(val).Uint(), 10), nil
	case float32, float64:
		return strconv.FormatFloat(reflect.ValueOf(val).Float(), 'f', -1, 64), nil
	case bool:
		return strconv.FormatBool(v), nil
	default:
		return "", fmt.Errorf("%w: cannot convert type %T to string for key %s", ErrTypeMismatch, val, key)
	}
}

// Int64 retrieves an int64 value at key.
// Accepts numeric types, parsable strings (json.Number included) and booleans.
func (c *Config) Int64(key string) (int64, error) {
	val, err := c.lookupScalar(key)
	if err != nil {
		return 0, err
	}
	if val == nil {
		return 0, fmt.Errorf("%w: value for key %s is nil, cannot convert to int64", ErrTypeMismatch, key)
	}

	v := reflect.ValueOf(val)
	switch v.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return v.Int(), nil
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		u := v.Uint()
		maxInt64 := int64(^uint64(0) >> 1)
		if u > uint64(maxInt64) {
			return 0, fmt.Errorf("%w: unsigned integer %d overflows int64 for key %s", ErrTypeMismatch, u, key)
		}
		return int64(u), nil
	case reflect.Float32, reflect.Float64:
		return int64(v.Float()), nil // truncates
	case reflect.String:
		s := v.String()
		i, perr := strconv.ParseInt(s, 0, 64)
		if perr == nil {
			return i, nil
		}
		if f, ferr := strconv.ParseFloat(s, 64); ferr == nil {
			return int64(f), nil
		}
		return 0, fmt.Errorf("%w: cannot convert string %q to int64 for key %s: %v", ErrTypeMismatch, s, key, perr)
	case reflect.Bool:
		if v.Bool() {
			return 1, nil
		}
		return 0, nil
	}

	return 0, fmt.Errorf("%w: cannot convert type %T to int64 for key %s", ErrTypeMismatch, val, key)
}

// Bool retrieves a boolean value at key.
// Numbers read as non-zero; strings accept strconv.ParseBool forms and the
// INI words yes/no and on/off.
func (c *Config) Bool(key string) (bool, error) {
	val, err := c.lookupScalar(key)
	if err != nil {
		return false, err
	}
	if val == nil {
		return false, fmt.Errorf("%w: value for key %s is nil, cannot convert to bool", ErrTypeMismatch, key)
	}

	v := reflect.ValueOf(val)
	switch v.Kind() {
	case reflect.Bool:
		return v.Bool(), nil
	case reflect.String:
		s := v.String()
		switch s {
		case "yes", "on", "YES", "ON", "Yes", "On":
			return true, nil
		case "no", "off", "NO", "OFF", "No", "Off":
			return false, nil
		}
		b, perr := strconv.ParseBool(s)
		if perr != nil {
			return false, fmt.Errorf("%w: cannot convert string %q to bool for key %s: %v", ErrTypeMismatch, s, key, perr)
		}
		return b, nil
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return v.Int() != 0, nil
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return v.Uint() != 0, nil
	case reflect.Float32, reflect.Float64:
		return v.Float() != 0, nil
	}

	return false, fmt.Errorf("%w: cannot convert type %T to bool for key %s", ErrTypeMismatch, val, key)
}

// Float64 retrieves a float64 value at key.
func (c *Config) Float64(key string) (float64, error) {
	val, err := c.lookupScalar(key)
	if err != nil {
		return 0, err
	}
	if val == nil {
		return 0, fmt.Errorf("%w: value for key %s is nil, cannot convert to float64", ErrTypeMismatch, key)
	}

	v := reflect.ValueOf(val)
	switch v.Kind() {
	case reflect.Float32, reflect.Float64:
		return v.Float(), nil
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return float64(v.Int()), nil
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return float64(v.Uint()), nil
	case reflect.String:
		s := v.String()
		f, perr := strconv.ParseFloat(s, 64)
		if perr != nil {
			return 0, fmt.Errorf("%w: cannot convert string %q to float64 for key %s: %v", ErrTypeMismatch, s, key, perr)
		}
		return f, nil
	case reflect.Bool:
		if v.Bool() {
			return 1, nil
		}
		return 0, nil
	}

	return 0, fmt.Errorf("%w: cannot convert type %T to float64 for key %s", ErrTypeMismatch, val, key)
}
