// Package kv provides the local key-value storage primitive tasks are persisted to.
//
// A Store maps string keys to string values. Every backend is safe for
// concurrent use: writers may call Set from several goroutines at once and
// the last Set to complete wins.
package kv

import (
	"context"
	"fmt"
	"strings"
)

// Backend names accepted by Open.
const (
	BackendFile   = "file"
	BackendSQLite = "sqlite"
	BackendMemory = "memory"
)

// Store is a string key-value store.
type Store interface {
	// Get returns the value stored under key.
	// found is false (and err nil) when the key has never been written.
	Get(ctx context.Context, key string) (value string, found bool, err error)

	// Set stores value under key, replacing any previous value.
	Set(ctx context.Context, key, value string) error

	// Close releases resources held by the store.
	Close() error
}

// Backends returns the supported backend names.
func Backends() []string {
	return []string{BackendFile, BackendSQLite, BackendMemory}
}

// IsBackend reports whether name is a supported backend.
func IsBackend(name string) bool {
	switch normalize(name) {
	case BackendFile, BackendSQLite, BackendMemory:
		return true
	}
	return false
}

// Open opens the named backend rooted at dir.
// The file backend stores one file per key in dir; the sqlite backend keeps
// a single database file in dir. The memory backend ignores dir.
func Open(backend, dir string) (Store, error) {
	switch normalize(backend) {
	case BackendFile, "":
		return NewFileStore(dir)
	case BackendSQLite:
		return OpenSQLite(dir)
	case BackendMemory:
		return NewMemoryStore(), nil
	default:
		return nil, fmt.Errorf("unknown kv backend %q (expected %s)", backend, strings.Join(Backends(), "|"))
	}
}

func normalize(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}
