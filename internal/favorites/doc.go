// Package favorites owns the persisted set of favorite catalog ids.
//
// Store is the only writer. Toggle serializes read-modify-write cycles through
// a context-aware slot, persists the whole set through a Repository and only
// then publishes it, so observers never see a set that is not on disk.
//
// Two repositories are provided: FileRepository (a TOML file replaced by
// rename) and SQLiteRepository (a JSON value in a key-value table). Watch keeps
// a file-backed store in sync with edits made by other processes.
package favorites
