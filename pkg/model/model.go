package model

import (
	"encoding/json"
	"fmt"
	"reflect"
	"sort"
	"strconv"
	"sync"
	"sync/atomic"

	"github.com/getmockd/apputil/pkg/property"
)

// IDAttribute is the attribute holding a model's id.
const IDAttribute = "id"

var cidCounter atomic.Uint64

// ChangeEvent describes a single attribute change.
type ChangeEvent struct {
	Key string
	Old any
	New any
	// Unset is true when the attribute was removed.
	Unset bool
}

// ChangeListener is called after an attribute changes.
type ChangeListener func(ChangeEvent)

// Model is an observable set of attributes.
type Model struct {
	cid   string
	mu    sync.RWMutex
	attrs map[string]any

	listenersMu sync.RWMutex
	listeners   []listenerEntry
	nextID      int
}

type listenerEntry struct {
	id int
	fn ChangeListener
}

// New creates a model holding a copy of attrs.
func New(attrs map[string]any) *Model {
	m := &Model{
		cid:   "c" + strconv.FormatUint(cidCounter.Add(1), 10),
		attrs: make(map[string]any, len(attrs)),
	}
	for k, v := range attrs {
		m.attrs[k] = v
	}
	return m
}

// Get returns the attribute stored under key.
func (m *Model) Get(key string) (any, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	v, ok := m.attrs[key]
	return v, ok
}

// Set stores value under key and notifies listeners if it changed.
func (m *Model) Set(key string, value any) {
	m.mu.Lock()
	old, existed := m.attrs[key]
	m.attrs[key] = value
	m.mu.Unlock()

	if existed && reflect.DeepEqual(old, value) {
		return
	}
	m.notify(ChangeEvent{Key: key, Old: old, New: value})
}

// Unset removes key and notifies listeners if it was present.
func (m *Model) Unset(key string) {
	m.mu.Lock()
	old, existed := m.attrs[key]
	delete(m.attrs, key)
	m.mu.Unlock()

	if existed {
		m.notify(ChangeEvent{Key: key, Old: old, Unset: true})
	}
}

// Has reports whether key holds a non-nil value.
func (m *Model) Has(key string) bool {
	v, ok := m.Get(key)
	return ok && v != nil
}

// Keys returns the attribute names in sorted order.
func (m *Model) Keys() []string {
	m.mu.RLock()
	keys := make([]string, 0, len(m.attrs))
	for k := range m.attrs {
		keys = append(keys, k)
	}
	m.mu.RUnlock()
	sort.Strings(keys)
	return keys
}

// ID returns the id attribute as a string, or "" when unset.
func (m *Model) ID() string {
	v, ok := m.Get(IDAttribute)
	if !ok || v == nil {
		return ""
	}
	if s, isString := v.(string); isString {
		return s
	}
	return fmt.Sprint(v)
}

// CID returns the client id assigned at construction.
func (m *Model) CID() string {
	return m.cid
}

// Field exposes the model's own fields: "id", "cid" and "attributes".
func (m *Model) Field(name string) (any, bool) {
	switch name {
	case "id":
		if id := m.ID(); id != "" {
			return id, true
		}
	case "cid":
		return m.cid, true
	case "attributes":
		return m.ToMap(), true
	}
	return nil, false
}

// ToMap returns a shallow copy of the attributes. Nested models and
// collections are converted recursively.
func (m *Model) ToMap() map[string]any {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make(map[string]any, len(m.attrs))
	for k, v := range m.attrs {
		out[k] = plain(v)
	}
	return out
}

// MarshalJSON encodes the attributes.
func (m *Model) MarshalJSON() ([]byte, error) {
	return json.Marshal(m.ToMap())
}

// String returns the attributes as JSON.
func (m *Model) String() string {
	data, err := m.MarshalJSON()
	if err != nil {
		return "{}"
	}
	return string(data)
}

// OnChange registers listener and returns a function removing it.
func (m *Model) OnChange(listener ChangeListener) func() {
	m.listenersMu.Lock()
	m.nextID++
	id := m.nextID
	m.listeners = append(m.listeners, listenerEntry{id: id, fn: listener})
	m.listenersMu.Unlock()

	return func() {
		m.listenersMu.Lock()
		defer m.listenersMu.Unlock()
		for i, l := range m.listeners {
			if l.id == id {
				m.listeners = append(m.listeners[:i], m.listeners[i+1:]...)
				return
			}
		}
	}
}

// notify runs listeners synchronously, outside of the attribute lock.
func (m *Model) notify(event ChangeEvent) {
	m.listenersMu.RLock()
	listeners := make([]listenerEntry, len(m.listeners))
	copy(listeners, m.listeners)
	m.listenersMu.RUnlock()

	for _, l := range listeners {
		l.fn(event)
	}
}

func plain(v any) any {
	switch t := v.(type) {
	case *Model:
		return t.ToMap()
	case *Collection:
		return t.ToSlice()
	}
	return v
}

var (
	_ property.Getter      = (*Model)(nil)
	_ property.Setter      = (*Model)(nil)
	_ property.FieldReader = (*Model)(nil)
)
