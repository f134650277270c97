// Package template interpolates {{variable}} tokens against a context.
//
// A token is "{{", optional whitespace, a name made of non-whitespace
// characters, optional whitespace and "}}". Names are dotted property
// paths resolved with the property package, so the context can be a plain
// map, a struct, a slice or an observable model:
//
//	ctx := map[string]any{"user": map[string]any{"name": "Ann"}}
//	s := template.InterpolateString(ctx, "Hello, {{ user.name }}!") // "Hello, Ann!"
//
// # Variables
//
// Variables returns the distinct names referenced by a string, sorted.
// Token bodies containing whitespace are not variables: "{{ a b }}" has
// none, and "{{ a {{ b }} }}" only has "b".
//
// # Substitution rules
//
// Unresolved and nil values are substituted with the empty string. Other
// values are converted to text (see Stringify).
//
// When a string consists of exactly one token, possibly with whitespace
// inside the braces, Interpolate returns the resolved value itself instead
// of its text, so a boolean stays a boolean and an unresolved variable
// stays unresolved:
//
//	template.Interpolate(ctx, "{{ enabled }}") // true, true
//	template.Interpolate(ctx, "{{ missing }}") // nil, false
//	template.Interpolate(ctx, "{{ enabled }}!") // "true!", true
//
// Interpolation is a pure function of its inputs; nothing is cached.
package template
