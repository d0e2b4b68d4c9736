// Package todo holds the task list, the store that mutates it, and the
// adapter that persists it.
//
// The persisted value lives under a single key (StorageKey) and is a JSON
// array of tasks, newest first:
//
//	[
//	  {"id": "1729080000001", "text": "Read book", "completed": false},
//	  {"id": "1729080000000", "text": "Walk dog", "completed": true}
//	]
//
// # Store
//
// Store is the only mutation surface. Each mutation updates memory
// synchronously and then hands a snapshot to a background writer. Writes are
// fire-and-forget: they are not awaited, may complete in any order, and a
// failed write is logged without rolling back memory.
//
// # Decoding
//
// Stored values are validated against an embedded JSON Schema before they
// are accepted. Any mismatch (wrong field types, missing fields, duplicate
// ids, blank text) yields a CorruptDataError listing every problem.
//
// # Ids
//
// Ids are opaque strings. ClockIDs issues millisecond timestamps that are
// bumped past the previous id when the clock has not advanced, so ids stay
// unique under rapid successive calls. UUIDIDs issues random UUIDs.
package todo
