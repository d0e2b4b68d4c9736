package todo

import (
	"context"
	"errors"

	"github.com/charmbracelet/log"

	"github.com/nibzard/pocketdo/internal/kv"
)

// StorageKey is the fixed key the task list is stored under.
const StorageKey = "@todos"

// Loader reads the persisted task list.
type Loader interface {
	Load(ctx context.Context) (List, error)
}

// Saver replaces the persisted task list.
type Saver interface {
	Save(ctx context.Context, l List) error
}

// Storage persists a List under StorageKey in a kv.Store.
type Storage struct {
	kv  kv.Store
	key string
}

// NewStorage returns a Storage backed by store.
func NewStorage(store kv.Store) *Storage {
	return &Storage{kv: store, key: StorageKey}
}

// Key returns the key the list is stored under.
func (s *Storage) Key() string {
	return s.key
}

// Load reads and decodes the stored list.
// A missing value is an empty list, not an error.
func (s *Storage) Load(ctx context.Context) (List, error) {
	value, found, err := s.kv.Get(ctx, s.key)
	if err != nil {
		return nil, &ReadError{Key: s.key, Err: err}
	}
	if !found {
		return List{}, nil
	}

	l, err := Decode([]byte(value))
	if err != nil {
		var ce *CorruptDataError
		if errors.As(err, &ce) {
			ce.Key = s.key
		}
		return nil, err
	}
	return l, nil
}

// Save encodes l and replaces the stored value.
func (s *Storage) Save(ctx context.Context, l List) error {
	data, err := Encode(l)
	if err != nil {
		return &WriteError{Key: s.key, Err: err}
	}
	if err := s.kv.Set(ctx, s.key, string(data)); err != nil {
		return &WriteError{Key: s.key, Err: err}
	}
	return nil
}

// LoadOrEmpty loads the list and falls back to an empty one on any error.
// The error is logged; startup never fails because of stored data.
func LoadOrEmpty(ctx context.Context, loader Loader, logger *log.Logger) List {
	l, err := loader.Load(ctx)
	if err != nil {
		if logger != nil {
			logger.Warn("starting with an empty task list", "err", err)
		}
		return List{}
	}
	return l
}
