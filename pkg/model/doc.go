// Package model provides observable attribute containers.
//
// A Model holds attributes behind Get/Set and notifies listeners when an
// attribute actually changes. A Collection is an ordered list of models
// addressable by position (At) or by id (Get). Both implement the
// capability interfaces of the property package, so they can be used as
// interpolation contexts:
//
//	m := model.New(map[string]any{"user": model.New(map[string]any{"name": "Ann"})})
//	v, _ := property.Get(m, "user.name") // "Ann"
//
// Both types are safe for concurrent use.
package model
