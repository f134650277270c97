// Package storage provides a small key/value store abstraction for string
// items, with two backends:
//
//   - Memory: synchronous local storage. Init is a no-op and every call
//     completes immediately.
//   - File: persistent storage backed by a JSON object on disk. Init must
//     be called first; it loads every item into a cache. Writes update the
//     cache before they reach the disk, reads refresh the cached value from
//     the file so changes made by other processes are picked up.
//
// Open selects a backend from a Config. Values are opaque strings; callers
// that store structured data serialize it as JSON themselves (see the
// credentials package).
package storage
