package property

import (
	"fmt"
	"reflect"
	"strconv"
	"strings"
	"unicode/utf8"
)

// lengthKey is the pseudo-property exposing the length of sequences.
const lengthKey = "length"

var anyMapType = reflect.TypeOf(map[string]any{})

// rawGet reads part from a plain value: map key, sequence index or
// length, struct field.
func rawGet(value any, part string) (any, bool) {
	switch v := value.(type) {
	case map[string]any:
		r, ok := v[part]
		return r, ok
	case []any:
		if part == lengthKey {
			return len(v), true
		}
		if i, ok := index(part, len(v)); ok {
			return v[i], true
		}
		return nil, false
	case string:
		return stringGet(v, part)
	}

	rv, ok := deref(reflect.ValueOf(value))
	if !ok {
		return nil, false
	}

	switch rv.Kind() {
	case reflect.Map:
		key, ok := mapKey(rv, part)
		if !ok {
			return nil, false
		}
		mv := rv.MapIndex(key)
		if !mv.IsValid() {
			return nil, false
		}
		return mv.Interface(), true
	case reflect.Slice, reflect.Array:
		if part == lengthKey {
			return rv.Len(), true
		}
		if i, ok := index(part, rv.Len()); ok {
			return rv.Index(i).Interface(), true
		}
	case reflect.String:
		return stringGet(rv.String(), part)
	case reflect.Struct:
		if f, ok := field(rv, part); ok {
			return f.Interface(), true
		}
	}
	return nil, false
}

func stringGet(s, part string) (any, bool) {
	if part == lengthKey {
		return utf8.RuneCountInString(s), true
	}
	runes := []rune(s)
	if i, ok := index(part, len(runes)); ok {
		return string(runes[i]), true
	}
	return nil, false
}

// rawChild returns the child of a plain value at part for Set traversal,
// creating an empty container when the child is missing.
func rawChild(current any, part string) (any, error) {
	switch v := current.(type) {
	case map[string]any:
		child, ok := v[part]
		if !ok {
			child = map[string]any{}
			v[part] = child
		}
		return child, nil
	case []any:
		i, ok := index(part, len(v))
		if !ok {
			return nil, fmt.Errorf("%w: index %q out of range", ErrNotAssignable, part)
		}
		if v[i] == nil {
			v[i] = map[string]any{}
		}
		return v[i], nil
	}

	rv, ok := deref(reflect.ValueOf(current))
	if !ok {
		return nil, fmt.Errorf("%w: cannot descend into %T", ErrNotAssignable, current)
	}

	switch rv.Kind() {
	case reflect.Map:
		key, ok := mapKey(rv, part)
		if !ok {
			return nil, fmt.Errorf("%w: %s keys are not strings", ErrNotAssignable, rv.Type())
		}
		mv := rv.MapIndex(key)
		if !mv.IsValid() {
			nv, ok := newContainer(rv.Type().Elem())
			if !ok {
				return nil, fmt.Errorf("%w: cannot create %s", ErrNotAssignable, rv.Type().Elem())
			}
			rv.SetMapIndex(key, nv)
			mv = nv
		}
		return childOf(mv), nil
	case reflect.Slice, reflect.Array:
		i, ok := index(part, rv.Len())
		if !ok {
			return nil, fmt.Errorf("%w: index %q out of range", ErrNotAssignable, part)
		}
		return childOf(vivify(rv.Index(i))), nil
	case reflect.Struct:
		f, ok := field(rv, part)
		if !ok {
			return nil, fmt.Errorf("%w: %s has no field %q", ErrNotAssignable, rv.Type(), part)
		}
		return childOf(vivify(f)), nil
	}
	return nil, fmt.Errorf("%w: cannot descend into %T", ErrNotAssignable, current)
}

// rawSet assigns value to part of a plain value.
func rawSet(current any, part string, value any) error {
	switch v := current.(type) {
	case map[string]any:
		v[part] = value
		return nil
	case []any:
		i, ok := index(part, len(v))
		if !ok {
			return fmt.Errorf("%w: index %q out of range", ErrNotAssignable, part)
		}
		v[i] = value
		return nil
	}

	rv, ok := deref(reflect.ValueOf(current))
	if !ok {
		return fmt.Errorf("%w: cannot set %q on %T", ErrNotAssignable, part, current)
	}

	switch rv.Kind() {
	case reflect.Map:
		key, ok := mapKey(rv, part)
		if !ok {
			return fmt.Errorf("%w: %s keys are not strings", ErrNotAssignable, rv.Type())
		}
		nv, err := convert(value, rv.Type().Elem())
		if err != nil {
			return err
		}
		rv.SetMapIndex(key, nv)
		return nil
	case reflect.Slice, reflect.Array:
		i, ok := index(part, rv.Len())
		if !ok {
			return fmt.Errorf("%w: index %q out of range", ErrNotAssignable, part)
		}
		return assign(rv.Index(i), value)
	case reflect.Struct:
		f, ok := field(rv, part)
		if !ok {
			return fmt.Errorf("%w: %s has no field %q", ErrNotAssignable, rv.Type(), part)
		}
		return assign(f, value)
	}
	return fmt.Errorf("%w: cannot set %q on %T", ErrNotAssignable, part, current)
}

func assign(dst reflect.Value, value any) error {
	if !dst.CanSet() {
		return fmt.Errorf("%w: %s is not addressable", ErrNotAssignable, dst.Type())
	}
	nv, err := convert(value, dst.Type())
	if err != nil {
		return err
	}
	dst.Set(nv)
	return nil
}

// convert turns value into a reflect.Value assignable to t. Numeric kinds
// convert between each other; nil is accepted for nilable types only.
func convert(value any, t reflect.Type) (reflect.Value, error) {
	if value == nil {
		if nilable(t.Kind()) {
			return reflect.Zero(t), nil
		}
		return reflect.Value{}, fmt.Errorf("%w: nil is not a valid %s", ErrNotAssignable, t)
	}
	vv := reflect.ValueOf(value)
	if vv.Type().AssignableTo(t) {
		return vv, nil
	}
	if numeric(vv.Kind()) && numeric(t.Kind()) || vv.Kind() == reflect.String && t.Kind() == reflect.String {
		return vv.Convert(t), nil
	}
	return reflect.Value{}, fmt.Errorf("%w: %T is not a valid %s", ErrNotAssignable, value, t)
}

// vivify fills a settable nil map, pointer or interface with an empty
// container.
func vivify(v reflect.Value) reflect.Value {
	if !v.CanSet() || !nilable(v.Kind()) || !v.IsNil() {
		return v
	}
	if nv, ok := newContainer(v.Type()); ok {
		v.Set(nv)
	}
	return v
}

func newContainer(t reflect.Type) (reflect.Value, bool) {
	switch t.Kind() {
	case reflect.Interface:
		if anyMapType.AssignableTo(t) {
			return reflect.ValueOf(map[string]any{}), true
		}
	case reflect.Map:
		return reflect.MakeMap(t), true
	case reflect.Pointer:
		return reflect.New(t.Elem()), true
	}
	return reflect.Value{}, false
}

// childOf hands out a value for further traversal. Addressable structs and
// arrays are returned by pointer so writes reach the caller's value.
func childOf(v reflect.Value) any {
	if (v.Kind() == reflect.Struct || v.Kind() == reflect.Array) && v.CanAddr() {
		return v.Addr().Interface()
	}
	return v.Interface()
}

// field finds an exported struct field by Go name or json tag name.
func field(rv reflect.Value, name string) (reflect.Value, bool) {
	for _, sf := range reflect.VisibleFields(rv.Type()) {
		if !sf.IsExported() || sf.Anonymous {
			continue
		}
		if sf.Name != name && jsonName(sf) != name {
			continue
		}
		f, err := rv.FieldByIndexErr(sf.Index)
		if err != nil {
			return reflect.Value{}, false
		}
		return f, true
	}
	return reflect.Value{}, false
}

func jsonName(sf reflect.StructField) string {
	tag := sf.Tag.Get("json")
	if tag == "" || tag == "-" {
		return ""
	}
	name, _, _ := strings.Cut(tag, ",")
	return name
}

func mapKey(rv reflect.Value, part string) (reflect.Value, bool) {
	kt := rv.Type().Key()
	if kt.Kind() != reflect.String {
		return reflect.Value{}, false
	}
	return reflect.ValueOf(part).Convert(kt), true
}

// deref follows pointers and interfaces. It reports false on nil.
func deref(rv reflect.Value) (reflect.Value, bool) {
	for rv.Kind() == reflect.Pointer || rv.Kind() == reflect.Interface {
		if rv.IsNil() {
			return rv, false
		}
		rv = rv.Elem()
	}
	return rv, rv.IsValid()
}

// index parses part as an in-range sequence index. Only the canonical
// decimal form counts: "+1" and "01" are not indexes.
func index(part string, n int) (int, bool) {
	i, err := strconv.Atoi(part)
	if err != nil || i < 0 || i >= n || strconv.Itoa(i) != part {
		return 0, false
	}
	return i, true
}

func isNilPointer(v any) bool {
	rv := reflect.ValueOf(v)
	return rv.Kind() == reflect.Pointer && rv.IsNil()
}

func nilable(k reflect.Kind) bool {
	switch k {
	case reflect.Interface, reflect.Map, reflect.Pointer, reflect.Slice, reflect.Func, reflect.Chan:
		return true
	}
	return false
}

func numeric(k reflect.Kind) bool {
	switch k {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.Float32, reflect.Float64:
		return true
	}
	return false
}
