// FILE: lixenwraith/roconfig/config_test.go
package roconfig

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestConfigCreation tests construction and map merging
func TestConfigCreation(t *testing.T) {
	t.Run("Empty", func(t *testing.T) {
		cfg := New(nil)
		require.NotNil(t, cfg)
		assert.Equal(t, 0, cfg.Len())
		assert.Empty(t, cfg.Values())
	})

	t.Run("InitialMapping", func(t *testing.T) {
		cfg := New(map[string]any{"foo": true})
		v := cfg.Get("foo")
		assert.Equal(t, KindScalar, v.Kind())
		assert.Equal(t, true, v.Raw())
	})

	t.Run("AddMapAdds", func(t *testing.T) {
		cfg := New(map[string]any{"foo": true})
		cfg.AddMap(map[string]any{"hello": "world"})
		assert.Equal(t, true, cfg.Get("foo").Raw())
		assert.Equal(t, "world", cfg.Get("hello").Raw())
	})

	t.Run("AddMapOverwritesShallow", func(t *testing.T) {
		cfg := New(map[string]any{"a": map[string]any{"b": 1, "c": 2}})
		cfg.AddMap(map[string]any{"a": map[string]any{"b": 3}})
		assert.Equal(t, map[string]any{"b": 3}, cfg.Values()["a"])
	})

	t.Run("DottedKeysAreFlat", func(t *testing.T) {
		cfg := New(map[string]any{"foo.power": true, "foo": map[string]any{"power": false}})
		v, err := cfg.Index("foo.power")
		require.NoError(t, err)
		assert.Equal(t, true, v.Raw())

		foo, err := cfg.Get("foo").Mapping()
		require.NoError(t, err)
		assert.Equal(t, false, foo.Get("power").Raw())
	})
}

// TestConfigAccess tests lenient, strict and containment reads
func TestConfigAccess(t *testing.T) {
	cfg := New(map[string]any{
		"name":  "svc",
		"empty": nil,
		"db":    map[string]any{"host": "localhost", "port": 5432},
		"items": []any{map[string]any{"id": "1"}, map[string]any{"id": "2"}},
	})

	t.Run("MissingIsLenient", func(t *testing.T) {
		v := cfg.Get("nope")
		assert.True(t, v.IsMissing())
		assert.Equal(t, KindMissing, v.Kind())
		assert.Nil(t, v.Raw())
		assert.Equal(t, "fallback", v.Or("fallback"))
	})

	t.Run("MissingIsStrictError", func(t *testing.T) {
		_, err := cfg.Index("nope")
		assert.ErrorIs(t, err, ErrKeyNotFound)
	})

	t.Run("NilValueIsPresent", func(t *testing.T) {
		v, err := cfg.Index("empty")
		require.NoError(t, err)
		assert.Equal(t, KindScalar, v.Kind())
		assert.True(t, cfg.Contains("empty"))
	})

	t.Run("Contains", func(t *testing.T) {
		assert.True(t, cfg.Contains("db"))
		assert.True(t, cfg.Contains("items"))
		assert.False(t, cfg.Contains("host"))
	})

	t.Run("MappingView", func(t *testing.T) {
		db, err := cfg.Get("db").Mapping()
		require.NoError(t, err)
		assert.Equal(t, "localhost", db.Get("host").Raw())
		assert.Equal(t, []string{"host", "port"}, db.Keys())
	})

	t.Run("SequenceView", func(t *testing.T) {
		items, err := cfg.Get("items").Sequence()
		require.NoError(t, err)
		require.Equal(t, 2, items.Len())

		first, err := items.Index(0)
		require.NoError(t, err)
		item, err := first.Mapping()
		require.NoError(t, err)
		assert.Equal(t, "1", item.Get("id").Raw())

		_, err = items.Index(2)
		assert.ErrorIs(t, err, ErrIndexOutOfRange)

		var ids []any
		for i, v := range items.All() {
			m, err := v.Mapping()
			require.NoError(t, err, "item %d", i)
			ids = append(ids, m.Get("id").Raw())
		}
		assert.Equal(t, []any{"1", "2"}, ids)
	})

	t.Run("NewViewPerRead", func(t *testing.T) {
		first, _ := cfg.Get("db").Mapping()
		second, _ := cfg.Get("db").Mapping()
		assert.NotSame(t, first, second)
	})

	t.Run("TypeMismatch", func(t *testing.T) {
		_, err := cfg.Get("name").Mapping()
		assert.ErrorIs(t, err, ErrTypeMismatch)

		_, err = cfg.Get("db").Sequence()
		assert.ErrorIs(t, err, ErrTypeMismatch)

		_, err = cfg.Get("items").Scalar()
		assert.ErrorIs(t, err, ErrTypeMismatch)

		_, err = cfg.Get("nope").Scalar()
		assert.ErrorIs(t, err, ErrKeyNotFound)
	})

	t.Run("ValuesIsShallowCopy", func(t *testing.T) {
		values := cfg.Values()
		values["added"] = 1
		assert.False(t, cfg.Contains("added"))

		// nested containers come straight from storage
		values["db"].(map[string]any)["host"] = "changed"
		assert.Equal(t, "changed", cfg.Lookup("db:host").Raw())
		values["db"].(map[string]any)["host"] = "localhost"
	})

	t.Run("ToMap", func(t *testing.T) {
		assert.Equal(t, cfg.Values(), cfg.ToMap())
	})
}

// TestSharedViews tests that views over one subtree see each other's overrides
func TestSharedViews(t *testing.T) {
	cfg := New(map[string]any{
		"a": map[string]any{"b": 1, "c": 2, "d": map[string]any{"e": 3, "f": 4}},
	})

	a1, err := cfg.Get("a").Mapping()
	require.NoError(t, err)
	a2, err := cfg.Get("a").Mapping()
	require.NoError(t, err)

	require.NoError(t, a1.AddValue("d:e", 5))
	require.NoError(t, cfg.AddValue("a:b", 10))

	d, err := a2.Get("d").Mapping()
	require.NoError(t, err)
	assert.Equal(t, 5, d.Get("e").Raw())
	assert.Equal(t, 10, a2.Get("b").Raw())
	assert.Equal(t, 4, d.Get("f").Raw())

	t.Run("NonCanonicalMappingIsACopy", func(t *testing.T) {
		typed := map[string]string{"k": "v"}
		c := New(map[string]any{"m": typed})
		view, err := c.Get("m").Mapping()
		require.NoError(t, err)
		assert.Equal(t, "v", view.Get("k").Raw())

		require.NoError(t, view.AddValue("k", "w"))
		assert.Equal(t, "v", typed["k"])

		require.NoError(t, c.AddValue("m:k", "x"))
		assert.Equal(t, "x", typed["k"])
	})
}

// TestAddValue tests overrides through the facade
func TestAddValue(t *testing.T) {
	cfg := New(nil)
	require.NoError(t, cfg.AddValue("a:b:c", "v"))
	assert.Equal(t, map[string]any{"a": map[string]any{"b": map[string]any{"c": "v"}}}, cfg.Values())

	cfg = New(map[string]any{"a": "scalar"})
	err := cfg.AddValue("a:b:c", "v")
	assert.ErrorIs(t, err, ErrStructuralConflict)
	assert.Equal(t, "scalar", cfg.Get("a").Raw())

	cfg = New(map[string]any{"list": []any{}})
	err = cfg.AddValue("list:0", "v")
	assert.ErrorIs(t, err, ErrIndexOutOfRange)

	t.Run("NilMappingView", func(t *testing.T) {
		parent := New(map[string]any{"m": map[string]any(nil)})
		view, err := parent.Get("m").Mapping()
		require.NoError(t, err)

		err = view.AddValue("x", 1)
		assert.ErrorIs(t, err, ErrInvalidAssignment)
		assert.Equal(t, 0, view.Len())
		assert.Nil(t, parent.Values()["m"])

		err = parent.AddValue("m:x", 1)
		assert.ErrorIs(t, err, ErrInvalidAssignment)
	})
}

// TestLookup tests read-only path navigation
func TestLookup(t *testing.T) {
	cfg := New(map[string]any{
		"db":    map[string]any{"replicas": []any{map[string]any{"host": "r0"}, map[string]any{"host": "r1"}}},
		"flat":  "x",
		"typed": map[string]int{"n": 7},
	})

	assert.Equal(t, "r1", cfg.Lookup("db:replicas:1:host").Raw())
	assert.Equal(t, "r0", cfg.Lookup("db__replicas__0__host").Raw())
	assert.Equal(t, "x", cfg.Lookup("flat").Raw())
	assert.Equal(t, 7, cfg.Lookup("typed:n").Raw())
	assert.Equal(t, KindSequence, cfg.Lookup("db:replicas").Kind())

	for _, key := range []string{"db:replicas:2:host", "db:replicas:x", "flat:deeper", "nope:a", "", "db:replicas:-1"} {
		assert.True(t, cfg.Lookup(key).IsMissing(), "key %q", key)
	}

	// lookups never vivify
	assert.False(t, cfg.Contains("nope"))
}

// TestTypedGetters tests conversions of stored scalars
func TestTypedGetters(t *testing.T) {
	cfg := New(map[string]any{
		"server": map[string]any{
			"host":    "example.com",
			"port":    "8080",
			"ratio":   json.Number("0.75"),
			"count":   json.Number("12"),
			"enabled": "yes",
			"debug":   int64(0),
			"nothing": nil,
		},
		"list": []any{1},
	})

	t.Run("String", func(t *testing.T) {
		s, err := cfg.String("server:host")
		require.NoError(t, err)
		assert.Equal(t, "example.com", s)

		s, err = cfg.String("server:ratio")
		require.NoError(t, err)
		assert.Equal(t, "0.75", s)

		s, err = cfg.String("server:nothing")
		require.NoError(t, err)
		assert.Equal(t, "", s)
	})

	t.Run("Int64", func(t *testing.T) {
		n, err := cfg.Int64("server:port")
		require.NoError(t, err)
		assert.Equal(t, int64(8080), n)

		n, err = cfg.Int64("server:count")
		require.NoError(t, err)
		assert.Equal(t, int64(12), n)

		_, err = cfg.Int64("server:host")
		assert.ErrorIs(t, err, ErrTypeMismatch)
	})

	t.Run("Bool", func(t *testing.T) {
		b, err := cfg.Bool("server:enabled")
		require.NoError(t, err)
		assert.True(t, b)

		b, err = cfg.Bool("server:debug")
		require.NoError(t, err)
		assert.False(t, b)
	})

	t.Run("Float64", func(t *testing.T) {
		f, err := cfg.Float64("server:ratio")
		require.NoError(t, err)
		assert.Equal(t, 0.75, f)
	})

	t.Run("Errors", func(t *testing.T) {
		_, err := cfg.String("server:missing")
		assert.ErrorIs(t, err, ErrKeyNotFound)

		_, err = cfg.String("list")
		assert.ErrorIs(t, err, ErrTypeMismatch)

		_, err = cfg.Float64("server:nothing")
		assert.ErrorIs(t, err, ErrTypeMismatch)
	})

	t.Run("StoredValuesUnchanged", func(t *testing.T) {
		assert.Equal(t, "8080", cfg.Lookup("server:port").Raw())
	})
}
