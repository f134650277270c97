// Package id provides unique identifier generation utilities.
//
// This is the canonical source for ID generation across apputil:
//
//   - UUID: Standard UUID v4 (random) for general-purpose unique identifiers
//   - ULID: Universally Unique Lexicographically Sortable Identifiers for
//     time-ordered IDs that are collision-free and sortable
//   - Short: 16-character hex IDs for user-facing contexts where brevity matters
//
// ULIDs generated within the same millisecond are monotonically increasing.
package id
