package template

import (
	"regexp"
	"sort"

	"github.com/getmockd/apputil/pkg/property"
)

// variableRegex matches {{name}} tokens with optional whitespace around a
// whitespace-free name.
var variableRegex = regexp.MustCompile(`\{\{\s*(\S+?)\s*\}\}`)

// Variables returns the distinct variable names referenced in s, sorted.
func Variables(s string) []string {
	vars := []string{}
	if s == "" {
		return vars
	}

	seen := make(map[string]struct{})
	for _, match := range variableRegex.FindAllStringSubmatch(s, -1) {
		name := match[1]
		if _, dup := seen[name]; dup {
			continue
		}
		seen[name] = struct{}{}
		vars = append(vars, name)
	}
	sort.Strings(vars)
	return vars
}

// Interpolate substitutes the variables of value with their values in ctx.
//
// A nil value has no value and yields (nil, false). Other non-string
// values and strings without variables are returned unchanged. A string
// made of a single token is replaced by the raw resolved value and its
// resolution flag; in every other case the result is a string and the
// flag is true.
func Interpolate(ctx any, value any) (any, bool) {
	if value == nil {
		return nil, false
	}
	s, ok := value.(string)
	if !ok {
		return value, true
	}

	vars := Variables(s)
	switch len(vars) {
	case 0:
		return s, true
	case 1:
		return interpolateSingle(ctx, s, vars[0])
	}

	resolved := make(map[string]string, len(vars))
	for _, name := range vars {
		resolved[name] = text(property.Get(ctx, name))
	}
	return replaceTokens(s, func(name string) (string, bool) {
		r, ok := resolved[name]
		return r, ok
	}), true
}

// interpolateSingle handles a string referencing exactly one variable.
// Tokens are first canonicalized to "{{name}}"; if nothing else is left the
// string is a whole-template reference and the raw value is returned.
func interpolateSingle(ctx any, s, name string) (any, bool) {
	v, ok := property.Get(ctx, name)

	canonical := "{{" + name + "}}"
	s = replaceName(s, name, canonical)
	if s == canonical {
		return v, ok
	}
	return replaceName(s, name, text(v, ok)), true
}

// InterpolateString is Interpolate for callers that always need text.
// Whole-template values are converted with Stringify.
func InterpolateString(ctx any, s string) string {
	v, ok := Interpolate(ctx, s)
	return text(v, ok)
}

// InterpolateAll interpolates every string inside nested map[string]any and
// []any values. New containers are returned; the input is not modified.
// Unresolved whole-template values become nil.
func InterpolateAll(ctx any, data any) any {
	switch v := data.(type) {
	case string:
		result, _ := Interpolate(ctx, v)
		return result
	case map[string]any:
		result := make(map[string]any, len(v))
		for key, val := range v {
			result[key] = InterpolateAll(ctx, val)
		}
		return result
	case []any:
		result := make([]any, len(v))
		for i, val := range v {
			result[i] = InterpolateAll(ctx, val)
		}
		return result
	default:
		return data
	}
}

// replaceTokens replaces every token whose name repl accepts with the
// returned text, literally. Other tokens are left as they are.
func replaceTokens(s string, repl func(name string) (string, bool)) string {
	return variableRegex.ReplaceAllStringFunc(s, func(token string) string {
		m := variableRegex.FindStringSubmatch(token)
		if m == nil {
			return token
		}
		if r, ok := repl(m[1]); ok {
			return r
		}
		return token
	})
}

// replaceName replaces every token referencing name with r.
func replaceName(s, name, r string) string {
	return replaceTokens(s, func(n string) (string, bool) {
		return r, n == name
	})
}

func text(v any, ok bool) string {
	if !ok {
		return ""
	}
	return Stringify(v)
}
