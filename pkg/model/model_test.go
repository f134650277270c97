package model

import (
	"encoding/json"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/getmockd/apputil/pkg/property"
)

func TestModel_GetSet(t *testing.T) {
	m := New(map[string]any{"a": 1})

	v, ok := m.Get("a")
	require.True(t, ok)
	assert.Equal(t, 1, v)

	_, ok = m.Get("b")
	assert.False(t, ok)

	m.Set("b", nil)
	v, ok = m.Get("b")
	assert.True(t, ok)
	assert.Nil(t, v)
	assert.False(t, m.Has("b"))
	assert.True(t, m.Has("a"))

	m.Unset("a")
	_, ok = m.Get("a")
	assert.False(t, ok)
	assert.Equal(t, []string{"b"}, m.Keys())
}

func TestModel_CopiesInitialAttributes(t *testing.T) {
	attrs := map[string]any{"a": 1}
	m := New(attrs)
	attrs["a"] = 2

	v, _ := m.Get("a")
	assert.Equal(t, 1, v)
}

func TestModel_OnChange(t *testing.T) {
	m := New(map[string]any{"a": 1})

	var events []ChangeEvent
	unsubscribe := m.OnChange(func(e ChangeEvent) {
		events = append(events, e)
	})

	m.Set("a", 1) // unchanged, no event
	m.Set("a", 2)
	m.Set("b", "x")
	m.Unset("b")
	m.Unset("missing") // no event

	require.Len(t, events, 3)
	assert.Equal(t, ChangeEvent{Key: "a", Old: 1, New: 2}, events[0])
	assert.Equal(t, ChangeEvent{Key: "b", Old: nil, New: "x"}, events[1])
	assert.Equal(t, ChangeEvent{Key: "b", Old: "x", Unset: true}, events[2])

	unsubscribe()
	m.Set("a", 3)
	assert.Len(t, events, 3)
}

func TestModel_SetNilOnMissingKeyNotifies(t *testing.T) {
	m := New(nil)
	count := 0
	m.OnChange(func(ChangeEvent) { count++ })

	m.Set("d", nil)
	assert.Equal(t, 1, count)
}

func TestModel_IDAndFields(t *testing.T) {
	m := New(map[string]any{"id": 42})
	assert.Equal(t, "42", m.ID())
	assert.NotEmpty(t, m.CID())
	assert.NotEqual(t, m.CID(), New(nil).CID())

	v, ok := m.Field("id")
	require.True(t, ok)
	assert.Equal(t, "42", v)

	v, ok = m.Field("cid")
	require.True(t, ok)
	assert.Equal(t, m.CID(), v)

	v, ok = m.Field("attributes")
	require.True(t, ok)
	assert.Equal(t, map[string]any{"id": 42}, v)

	_, ok = New(nil).Field("id")
	assert.False(t, ok)
}

func TestModel_JSON(t *testing.T) {
	m := New(map[string]any{
		"name":  "Ann",
		"inner": New(map[string]any{"x": 1}),
		"list":  NewCollection(map[string]any{"id": "a"}),
	})

	data, err := json.Marshal(m)
	require.NoError(t, err)
	assert.JSONEq(t, `{"name":"Ann","inner":{"x":1},"list":[{"id":"a"}]}`, string(data))
	assert.JSONEq(t, string(data), m.String())
}

func TestModel_ConcurrentAccess(t *testing.T) {
	m := New(nil)
	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			m.Set("k", i)
			m.Get("k")
			m.Keys()
		}(i)
	}
	wg.Wait()
	assert.True(t, m.Has("k"))
}

func TestCollection(t *testing.T) {
	first := New(map[string]any{"id": 1})
	c := NewCollection(first, map[string]any{"id": 2}, map[string]any{"id": 3}, "ignored")

	assert.Equal(t, 3, c.Len())

	v, ok := c.At(0)
	require.True(t, ok)
	assert.Same(t, first, v)

	v, ok = c.At(-1)
	require.True(t, ok)
	assert.Equal(t, "3", v.(*Model).ID())

	_, ok = c.At(3)
	assert.False(t, ok)

	v, ok = c.Get("2")
	require.True(t, ok)
	assert.Equal(t, "2", v.(*Model).ID())

	v, ok = c.Get(first.CID())
	require.True(t, ok)
	assert.Same(t, first, v)

	_, ok = c.Get("length")
	assert.False(t, ok)

	length, ok := c.Field("length")
	require.True(t, ok)
	assert.Equal(t, 3, length)

	assert.True(t, c.Remove("2"))
	assert.False(t, c.Remove("2"))
	assert.Equal(t, 2, c.Len())
	assert.Equal(t, []any{map[string]any{"id": 1}, map[string]any{"id": 3}}, c.ToSlice())
}

func TestModel_AsPropertyContext(t *testing.T) {
	m := New(map[string]any{
		"foo": map[string]any{"bar": 1},
	})
	v, ok := property.Get(m, "foo")
	require.True(t, ok)
	assert.Equal(t, map[string]any{"bar": 1}, v)

	v, ok = property.Get(m, "foo.bar")
	require.True(t, ok)
	assert.Equal(t, 1, v)

	m = New(map[string]any{"foo": New(map[string]any{"bar": 1})})
	v, ok = property.Get(m, "foo.bar")
	require.True(t, ok)
	assert.Equal(t, 1, v)

	m = New(map[string]any{
		"foo": NewCollection(
			map[string]any{"id": 1},
			map[string]any{"id": 2},
			map[string]any{"id": 3},
		),
	})
	v, ok = property.Get(m, "foo.length")
	require.True(t, ok)
	assert.Equal(t, 3, v)

	v, ok = property.Get(m, "foo.1.id")
	require.True(t, ok)
	assert.Equal(t, 2, v)

	v, ok = property.Get(m, "foo.3.id")
	assert.False(t, ok)
	assert.Nil(t, v)

	v, ok = property.Get(m, "cid")
	require.True(t, ok)
	assert.Equal(t, m.CID(), v)
}

func TestModel_PropertySetVivifies(t *testing.T) {
	m := New(nil)
	var keys []string
	m.OnChange(func(e ChangeEvent) { keys = append(keys, e.Key) })

	require.NoError(t, property.Set(m, "a.b", 1))
	require.NoError(t, property.Set(m, "c", true))

	v, ok := property.Get(m, "a.b")
	require.True(t, ok)
	assert.Equal(t, 1, v)
	assert.Equal(t, []string{"a", "c"}, keys)
}
