package template

import (
	"encoding/json"
	"fmt"
	"reflect"
	"strconv"
	"strings"
)

// Stringify converts a resolved value to the text substituted for its
// token. nil becomes "", slices are joined with commas, maps and structs
// are encoded as JSON.
func Stringify(val any) string {
	rv := reflect.ValueOf(val)
	if rv.Kind() == reflect.Pointer && rv.IsNil() {
		return ""
	}

	switch v := val.(type) {
	case nil:
		return ""
	case string:
		return v
	case bool:
		return strconv.FormatBool(v)
	case int:
		return strconv.Itoa(v)
	case int64:
		return strconv.FormatInt(v, 10)
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case float32:
		return strconv.FormatFloat(float64(v), 'f', -1, 32)
	case []any:
		parts := make([]string, len(v))
		for i, item := range v {
			parts[i] = Stringify(item)
		}
		return strings.Join(parts, ",")
	case fmt.Stringer:
		return v.String()
	case error:
		return v.Error()
	case json.Marshaler:
		if data, err := v.MarshalJSON(); err == nil {
			return string(data)
		}
	}

	switch rv.Kind() {
	case reflect.Pointer:
		return Stringify(rv.Elem().Interface())
	case reflect.Slice, reflect.Array:
		if rv.Type().Elem().Kind() == reflect.Uint8 {
			break
		}
		parts := make([]string, rv.Len())
		for i := range parts {
			parts[i] = Stringify(rv.Index(i).Interface())
		}
		return strings.Join(parts, ",")
	case reflect.Map, reflect.Struct:
		if data, err := json.Marshal(val); err == nil {
			return string(data)
		}
	}
	return fmt.Sprintf("%v", val)
}
