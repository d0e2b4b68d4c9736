package todo

// Task represents a single to-do item.
type Task struct {
	ID        string `json:"id"`
	Text      string `json:"text"`
	Completed bool   `json:"completed"`
}

// List is an ordered task list, newest first.
type List []Task

// Clone returns a copy that shares no backing array with l.
// A nil or empty list clones to an empty, non-nil list.
func (l List) Clone() List {
	out := make(List, len(l))
	copy(out, l)
	return out
}

// Index returns the position of the task with id, or -1.
func (l List) Index(id string) int {
	for i := range l {
		if l[i].ID == id {
			return i
		}
	}
	return -1
}

// Get returns the task with id and whether it was found.
func (l List) Get(id string) (Task, bool) {
	if i := l.Index(id); i >= 0 {
		return l[i], true
	}
	return Task{}, false
}

// CompletedCount returns the number of completed tasks.
func (l List) CompletedCount() int {
	n := 0
	for _, t := range l {
		if t.Completed {
			n++
		}
	}
	return n
}

// Filter returns the tasks for which keep returns true, in order.
func (l List) Filter(keep func(Task) bool) List {
	out := make(List, 0, len(l))
	for _, t := range l {
		if keep(t) {
			out = append(out, t)
		}
	}
	return out
}

// Equal reports whether both lists hold the same tasks in the same order.
func (l List) Equal(other List) bool {
	if len(l) != len(other) {
		return false
	}
	for i := range l {
		if l[i] != other[i] {
			return false
		}
	}
	return true
}
