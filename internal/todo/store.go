package todo

import (
	"context"
	"io"
	"strings"
	"sync"

	"github.com/charmbracelet/log"
)

// StoreOption configures a Store.
type StoreOption func(*Store)

// WithIDGenerator sets the id generator. The default is NewClockIDs().
func WithIDGenerator(g IDGenerator) StoreOption {
	return func(s *Store) {
		s.ids = g
	}
}

// WithLogger sets the logger write failures are reported to.
func WithLogger(l *log.Logger) StoreOption {
	return func(s *Store) {
		s.logger = l
	}
}

// Store owns the in-memory task list and is its only mutation surface.
//
// Mutations are expected to be issued from one goroutine (the UI event loop
// or a single CLI invocation). Every mutation that changes the list hands a
// snapshot to a background write; writes are not awaited and carry no
// ordering guarantee relative to each other.
type Store struct {
	mu     sync.Mutex
	tasks  List
	saver  Saver
	ids    IDGenerator
	logger *log.Logger

	pending sync.WaitGroup
}

// NewStore returns an empty Store persisting through saver.
// A nil saver keeps the list in memory only.
func NewStore(saver Saver, opts ...StoreOption) *Store {
	s := &Store{
		tasks: List{},
		saver: saver,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.ids == nil {
		s.ids = NewClockIDs()
	}
	if s.logger == nil {
		s.logger = log.New(io.Discard)
	}
	return s
}

// Tasks returns a snapshot of the current list.
func (s *Store) Tasks() List {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.tasks.Clone()
}

// Hydrate replaces the whole list without writing it back.
func (s *Store) Hydrate(l List) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tasks = l.Clone()
}

// Add trims rawText and prepends a new open task.
// Invalid UTF-8 is replaced with U+FFFD so memory matches what is stored.
// Blank input returns a *ValidationError and leaves the list untouched.
func (s *Store) Add(rawText string) (List, error) {
	text := strings.TrimSpace(strings.ToValidUTF8(rawText, "\uFFFD"))
	if text == "" {
		return s.Tasks(), &ValidationError{Field: "text", Err: ErrEmptyText}
	}

	s.mu.Lock()
	id := s.ids.NewID()
	for s.tasks.Index(id) >= 0 {
		// Hydrated ids may be ahead of a fresh generator.
		id = s.ids.NewID()
	}
	next := make(List, 0, len(s.tasks)+1)
	next = append(next, Task{ID: id, Text: text})
	next = append(next, s.tasks...)
	s.tasks = next
	snapshot := s.tasks.Clone()
	s.mu.Unlock()

	s.logger.Debug("task added", "id", id)
	s.persist(snapshot)
	return snapshot.Clone(), nil
}

// Toggle flips the completed flag of the task with id.
// An unknown id is a no-op.
func (s *Store) Toggle(id string) List {
	return s.mutate(func(l List) (List, bool) {
		i := l.Index(id)
		if i < 0 {
			return l, false
		}
		next := l.Clone()
		next[i].Completed = !next[i].Completed
		return next, true
	})
}

// Delete removes the task with id. An unknown id is a no-op.
func (s *Store) Delete(id string) List {
	return s.mutate(func(l List) (List, bool) {
		if l.Index(id) < 0 {
			return l, false
		}
		return l.Filter(func(t Task) bool { return t.ID != id }), true
	})
}

// ClearCompleted removes every completed task, keeping the rest in order.
func (s *Store) ClearCompleted() List {
	return s.mutate(func(l List) (List, bool) {
		if l.CompletedCount() == 0 {
			return l, false
		}
		return l.Filter(func(t Task) bool { return !t.Completed }), true
	})
}

// Wait blocks until every write issued so far has returned.
// Call it before the process exits; it is never needed between mutations.
func (s *Store) Wait() {
	s.pending.Wait()
}

// mutate applies fn under the lock and persists the result when it changed.
func (s *Store) mutate(fn func(List) (List, bool)) List {
	s.mu.Lock()
	next, changed := fn(s.tasks)
	if changed {
		s.tasks = next
	}
	snapshot := s.tasks.Clone()
	s.mu.Unlock()

	if changed {
		s.persist(snapshot)
	}
	return snapshot.Clone()
}

// persist writes snapshot in the background. Failures are logged only.
func (s *Store) persist(snapshot List) {
	if s.saver == nil {
		return
	}
	s.pending.Add(1)
	go func() {
		defer s.pending.Done()
		if err := s.saver.Save(context.Background(), snapshot); err != nil {
			s.logger.Error("persist task list", "err", err, "tasks", len(snapshot))
			return
		}
		s.logger.Debug("task list persisted", "tasks", len(snapshot))
	}()
}
