// Package property resolves and assigns dotted paths ("a.b.0") against
// heterogeneous Go values.
//
// A path is resolved one segment at a time. At every step the current value
// is probed for a capability rather than matched against a concrete type:
//
//   - Indexer: observable collections addressable by position (At).
//     Integer segments go through At, anything else is treated like a
//     model attribute (this is how "length" resolves on a collection).
//   - Getter: observable models exposing attributes through Get. When Get
//     has no value, a raw field exposed through FieldReader is used instead.
//   - Everything else is accessed raw: string-keyed maps, slices, arrays,
//     strings ("length" and character index) and struct fields (by Go name
//     or json tag).
//
// Absence is reported through the boolean of the (value, ok) pair and is
// distinct from a present nil value:
//
//	v, ok := property.Get(ctx, "user.name")
//	// ok == false: some segment could not be resolved
//	// ok == true, v == nil: the value is explicitly null
//
// Set walks the same way and auto-vivifies missing intermediate segments
// with map[string]any{}. This mutates caller-owned structures.
package property
