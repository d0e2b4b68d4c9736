package todo

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/charmbracelet/log"

	"github.com/nibzard/pocketdo/internal/kv"
)

// newTestStore returns a Store over a fresh MemoryStore.
func newTestStore(t *testing.T, opts ...StoreOption) (*Store, *kv.MemoryStore) {
	t.Helper()
	mem := kv.NewMemoryStore()
	return NewStore(NewStorage(mem), opts...), mem
}

// persisted waits for pending writes and loads what landed in mem.
func persisted(t *testing.T, s *Store, mem *kv.MemoryStore) List {
	t.Helper()
	s.Wait()
	l, err := NewStorage(mem).Load(context.Background())
	if err != nil {
		t.Fatalf("load persisted list: %v", err)
	}
	return l
}

func TestAddRejectsBlankText(t *testing.T) {
	for _, input := range []string{"", "   ", "\t\n"} {
		t.Run(strings.ReplaceAll(input, "\n", `\n`), func(t *testing.T) {
			s, mem := newTestStore(t)
			s.Hydrate(List{{ID: "1", Text: "keep"}})

			l, err := s.Add(input)
			if err == nil {
				t.Fatal("expected error for blank text")
			}
			var ve *ValidationError
			if !errors.As(err, &ve) {
				t.Fatalf("expected *ValidationError, got %T", err)
			}
			if !errors.Is(err, ErrEmptyText) {
				t.Errorf("expected ErrEmptyText, got %v", err)
			}
			if !l.Equal(List{{ID: "1", Text: "keep"}}) {
				t.Errorf("list changed: %+v", l)
			}
			s.Wait()
			if mem.SetCount() != 0 {
				t.Errorf("expected no writes, got %d", mem.SetCount())
			}
		})
	}
}

func TestAddTrimsAndPrepends(t *testing.T) {
	s, mem := newTestStore(t)

	l, err := s.Add(" Buy milk ")
	if err != nil {
		t.Fatalf("Add failed: %v", err)
	}
	if len(l) != 1 {
		t.Fatalf("expected 1 task, got %d", len(l))
	}
	milk := l[0]
	if milk.Text != "Buy milk" {
		t.Errorf("Text: got %q, want %q", milk.Text, "Buy milk")
	}
	if milk.Completed {
		t.Error("new task should not be completed")
	}
	if milk.ID == "" {
		t.Error("new task should have an id")
	}

	l, err = s.Add("X")
	if err != nil {
		t.Fatalf("Add failed: %v", err)
	}
	if len(l) != 2 || l[0].Text != "X" || l[1] != milk {
		t.Errorf("expected [X, milk], got %+v", l)
	}
	if l[0].ID == milk.ID {
		t.Error("ids must be unique")
	}

	if got := persisted(t, s, mem); !got.Equal(l) {
		t.Errorf("persisted %+v, want %+v", got, l)
	}
}

func TestAddReplacesInvalidUTF8(t *testing.T) {
	s, mem := newTestStore(t)

	l, err := s.Add("caf\xe9 ")
	if err != nil {
		t.Fatalf("Add failed: %v", err)
	}
	if want := "caf\uFFFD"; l[0].Text != want {
		t.Errorf("Text: got %q, want %q", l[0].Text, want)
	}
	if got := persisted(t, s, mem); !got.Equal(s.Tasks()) {
		t.Errorf("persisted %+v differs from memory %+v", got, s.Tasks())
	}
}

func TestToggleIsInvolution(t *testing.T) {
	s, _ := newTestStore(t)
	l, _ := s.Add("task")
	id := l[0].ID

	l = s.Toggle(id)
	if !l[0].Completed {
		t.Fatal("expected task to be completed after first toggle")
	}
	l = s.Toggle(id)
	if l[0].Completed {
		t.Fatal("expected task to be open after second toggle")
	}
}

func TestToggleOnlyTouchesTarget(t *testing.T) {
	s, _ := newTestStore(t)
	s.Hydrate(List{
		{ID: "c", Text: "C"},
		{ID: "b", Text: "B", Completed: true},
		{ID: "a", Text: "A"},
	})

	l := s.Toggle("b")
	want := List{
		{ID: "c", Text: "C"},
		{ID: "b", Text: "B"},
		{ID: "a", Text: "A"},
	}
	if !l.Equal(want) {
		t.Errorf("got %+v, want %+v", l, want)
	}
}

func TestToggleUnknownIsNoop(t *testing.T) {
	s, mem := newTestStore(t)
	before := List{{ID: "1", Text: "one"}}
	s.Hydrate(before)

	l := s.Toggle("missing")
	if !l.Equal(before) {
		t.Errorf("list changed: %+v", l)
	}
	s.Wait()
	if mem.SetCount() != 0 {
		t.Errorf("expected no writes, got %d", mem.SetCount())
	}
}

func TestDeleteTwice(t *testing.T) {
	s, mem := newTestStore(t)
	s.Hydrate(List{
		{ID: "3", Text: "three"},
		{ID: "2", Text: "two"},
		{ID: "1", Text: "one"},
	})

	after := s.Delete("2")
	want := List{{ID: "3", Text: "three"}, {ID: "1", Text: "one"}}
	if !after.Equal(want) {
		t.Fatalf("got %+v, want %+v", after, want)
	}

	again := s.Delete("2")
	if !again.Equal(after) {
		t.Errorf("second delete changed the list: %+v", again)
	}

	s.Wait()
	if mem.SetCount() != 1 {
		t.Errorf("expected exactly one write, got %d", mem.SetCount())
	}
}

func TestClearCompleted(t *testing.T) {
	s, mem := newTestStore(t)
	s.Hydrate(List{
		{ID: "a", Text: "A", Completed: true},
		{ID: "b", Text: "B"},
		{ID: "c", Text: "C", Completed: true},
	})

	l := s.ClearCompleted()
	if !l.Equal(List{{ID: "b", Text: "B"}}) {
		t.Fatalf("got %+v, want [B]", l)
	}

	again := s.ClearCompleted()
	if !again.Equal(l) {
		t.Errorf("second clear changed the list: %+v", again)
	}
	if got := persisted(t, s, mem); !got.Equal(l) {
		t.Errorf("persisted %+v, want %+v", got, l)
	}
	if mem.SetCount() != 1 {
		t.Errorf("expected exactly one write, got %d", mem.SetCount())
	}
}

func TestHydrateDoesNotWrite(t *testing.T) {
	s, mem := newTestStore(t)
	s.Hydrate(List{{ID: "1", Text: "one"}})
	s.Wait()

	if mem.SetCount() != 0 {
		t.Errorf("expected no writes, got %d", mem.SetCount())
	}
	if len(s.Tasks()) != 1 {
		t.Errorf("expected hydrated task, got %+v", s.Tasks())
	}
}

func TestHydrateCopiesInput(t *testing.T) {
	s, _ := newTestStore(t)
	in := List{{ID: "1", Text: "one"}}
	s.Hydrate(in)
	in[0].Text = "changed"

	if s.Tasks()[0].Text != "one" {
		t.Error("store must not alias the hydrated slice")
	}

	out := s.Tasks()
	out[0].Text = "changed"
	if s.Tasks()[0].Text != "one" {
		t.Error("store must not alias returned snapshots")
	}
}

func TestWriteFailureKeepsMemory(t *testing.T) {
	var buf bytes.Buffer
	logger := log.NewWithOptions(&buf, log.Options{Level: log.DebugLevel})
	s, mem := newTestStore(t, WithLogger(logger))
	mem.FailSets(errors.New("storage full"))

	l, err := s.Add("survives")
	if err != nil {
		t.Fatalf("Add must not report write failures: %v", err)
	}
	s.Wait()

	if len(s.Tasks()) != 1 || s.Tasks()[0].Text != "survives" {
		t.Errorf("memory was rolled back: %+v", s.Tasks())
	}
	if !l.Equal(s.Tasks()) {
		t.Errorf("returned %+v, store holds %+v", l, s.Tasks())
	}
	if !strings.Contains(buf.String(), "storage full") {
		t.Errorf("expected write failure to be logged, got %q", buf.String())
	}

	// A later successful write brings storage back in line.
	mem.FailSets(nil)
	l, _ = s.Add("second")
	if got := persisted(t, s, mem); !got.Equal(l) {
		t.Errorf("persisted %+v, want %+v", got, l)
	}
}

func TestAddSkipsIDsAlreadyInList(t *testing.T) {
	clock := fixedClock(1000)
	s, _ := newTestStore(t, WithIDGenerator(clock))
	s.Hydrate(List{{ID: "1000", Text: "old"}, {ID: "1001", Text: "older"}})

	l, err := s.Add("new")
	if err != nil {
		t.Fatal(err)
	}
	if l[0].ID != "1002" {
		t.Errorf("expected id to skip hydrated ids, got %q", l[0].ID)
	}
}

func TestNilSaverKeepsMemoryOnly(t *testing.T) {
	s := NewStore(nil)
	l, err := s.Add("memory only")
	if err != nil {
		t.Fatal(err)
	}
	s.Wait()
	if len(l) != 1 {
		t.Errorf("expected 1 task, got %d", len(l))
	}
}

func TestEndToEndScenario(t *testing.T) {
	s, mem := newTestStore(t)
	s.Hydrate(LoadOrEmpty(context.Background(), NewStorage(mem), nil))
	if len(s.Tasks()) != 0 {
		t.Fatalf("expected empty start, got %+v", s.Tasks())
	}

	l, _ := s.Add("Walk dog")
	walk := l[0].ID
	if _, err := s.Add("Read book"); err != nil {
		t.Fatal(err)
	}
	l = s.Toggle(walk)

	want := []struct {
		text      string
		completed bool
	}{{"Read book", false}, {"Walk dog", true}}
	if len(l) != len(want) {
		t.Fatalf("got %+v", l)
	}
	for i, w := range want {
		if l[i].Text != w.text || l[i].Completed != w.completed {
			t.Errorf("[%d]: got {%q %v}, want {%q %v}", i, l[i].Text, l[i].Completed, w.text, w.completed)
		}
	}

	l = s.ClearCompleted()
	if len(l) != 1 || l[0].Text != "Read book" || l[0].Completed {
		t.Fatalf("after clear: got %+v", l)
	}

	// A fresh store hydrated from storage sees the same list.
	restarted := NewStore(NewStorage(mem))
	s.Wait()
	restarted.Hydrate(LoadOrEmpty(context.Background(), NewStorage(mem), nil))
	if !restarted.Tasks().Equal(l) {
		t.Errorf("after restart: got %+v, want %+v", restarted.Tasks(), l)
	}
}
