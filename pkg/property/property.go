package property

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// ErrNotAssignable is returned by Set when a path segment lands on a value
// that cannot hold properties.
var ErrNotAssignable = errors.New("value is not assignable")

// Getter is implemented by observable models that expose attributes
// through Get. The boolean reports whether the attribute has a value.
type Getter interface {
	Get(key string) (any, bool)
}

// Setter is implemented by observable models that accept attribute writes.
type Setter interface {
	Set(key string, value any)
}

// Indexer is implemented by observable collections addressable by position.
type Indexer interface {
	At(index int) (any, bool)
}

// FieldReader exposes raw fields of an observable value that are not
// modeled as attributes (ids, lengths, internal state).
type FieldReader interface {
	Field(name string) (any, bool)
}

// Get resolves path against target. It never fails: an unresolved segment
// yields (nil, false) and a null value met on the way yields (nil, true).
func Get(target any, path string) (any, bool) {
	if path == "" {
		return nil, false
	}

	value, ok := target, true
	for _, part := range strings.Split(path, ".") {
		if !ok || isNull(value) {
			break
		}
		value, ok = step(value, part)
	}
	return value, ok
}

// step resolves a single path segment against value.
func step(value any, part string) (any, bool) {
	if c, isColl := value.(Indexer); isColl {
		if index, err := strconv.Atoi(part); err == nil {
			return c.At(index)
		}
		return attribute(value, part)
	}
	if _, isModel := value.(Getter); isModel {
		return attribute(value, part)
	}
	return rawGet(value, part)
}

// attribute reads key from an observable value: Get first, then the raw
// field when Get has nothing.
func attribute(value any, key string) (any, bool) {
	var (
		v  any
		ok bool
	)
	if g, isGetter := value.(Getter); isGetter {
		v, ok = g.Get(key)
	}
	if !ok {
		if f, isFields := value.(FieldReader); isFields {
			if raw, has := f.Field(key); has {
				return raw, true
			}
		}
	}
	return v, ok
}

// Set assigns value at path inside target, creating empty maps for missing
// intermediate segments.
func Set(target any, path string, value any) error {
	if path == "" {
		return fmt.Errorf("%w: empty path", ErrNotAssignable)
	}
	parts := strings.Split(path, ".")
	last := parts[len(parts)-1]

	current := target
	for i, part := range parts[:len(parts)-1] {
		next, err := descend(current, part)
		if err != nil {
			return fmt.Errorf("set %q at %q: %w", path, strings.Join(parts[:i+1], "."), err)
		}
		current = next
	}

	if s, ok := current.(Setter); ok {
		s.Set(last, value)
		return nil
	}
	if err := rawSet(current, last, value); err != nil {
		return fmt.Errorf("set %q: %w", path, err)
	}
	return nil
}

// descend returns the child of current at part, vivifying it when missing.
func descend(current any, part string) (any, error) {
	if m, ok := current.(Getter); ok {
		if s, canSet := current.(Setter); canSet {
			if _, has := m.Get(part); !has {
				s.Set(part, map[string]any{})
			}
		}
		v, _ := m.Get(part)
		return v, nil
	}
	return rawChild(current, part)
}

// isNull reports whether v is a nil interface or a nil pointer.
func isNull(v any) bool {
	if v == nil {
		return true
	}
	return isNilPointer(v)
}
