// Package ui provides the full-screen terminal interface.
package ui

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/nibzard/pocketdo/internal/todo"
)

const (
	title            = "pocketdo"
	placeholder      = "Type a task..."
	emptyListText    = "No tasks yet. Add one!"
	emptyTaskMessage = "Empty Task: Please enter a task."
)

var (
	titleStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#7D56F4"))
	cursorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#7D56F4")).Bold(true)
	doneStyle     = lipgloss.NewStyle().Strikethrough(true).Foreground(lipgloss.Color("#666"))
	warnStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("#E5C07B"))
	emptyStyle    = lipgloss.NewStyle().Italic(true).Foreground(lipgloss.Color("#888"))
	footerStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#666"))
	inputBoxStyle = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1)
)

type focus int

const (
	focusInput focus = iota
	focusList
)

// Run starts the TUI over store and blocks until the user quits or ctx ends.
func Run(ctx context.Context, store *todo.Store) error {
	if !IsTTY(os.Stdout) {
		return fmt.Errorf("tui requires a TTY")
	}
	program := tea.NewProgram(newModel(store), tea.WithAltScreen(), tea.WithContext(ctx))
	if _, err := program.Run(); err != nil {
		return err
	}
	return nil
}

type model struct {
	store  *todo.Store
	tasks  todo.List
	input  textinput.Model
	focus  focus
	cursor int
	status string
	width  int
}

func newModel(store *todo.Store) *model {
	input := textinput.New()
	input.Placeholder = placeholder
	input.Prompt = "+ "
	input.CharLimit = 0 // unlimited
	input.Focus()
	return &model{
		store: store,
		tasks: store.Tasks(),
		input: input,
	}
}

func (m *model) Init() tea.Cmd {
	return textinput.Blink
}

func (m *model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		return m, nil
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			return m, tea.Quit
		case "tab", "shift+tab":
			m.switchFocus()
			return m, nil
		}
		if m.focus == focusList {
			return m.updateList(msg)
		}
		return m.updateInput(msg)
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m *model) updateInput(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "enter" {
		m.submit()
		return m, nil
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m *model) updateList(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q":
		return m, tea.Quit
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		if m.cursor < len(m.tasks)-1 {
			m.cursor++
		}
	case " ", "space", "enter":
		if t, ok := m.selected(); ok {
			m.setTasks(m.store.Toggle(t.ID))
		}
	case "d", "x", "delete":
		if t, ok := m.selected(); ok {
			m.setTasks(m.store.Delete(t.ID))
		}
	case "c":
		m.setTasks(m.store.ClearCompleted())
	}
	return m, nil
}

func (m *model) submit() {
	tasks, err := m.store.Add(m.input.Value())
	if err != nil {
		if todo.IsValidation(err) {
			m.status = emptyTaskMessage
			return
		}
		m.status = err.Error()
		return
	}
	m.status = ""
	m.input.Reset()
	m.cursor = 0
	m.setTasks(tasks)
}

func (m *model) switchFocus() {
	if m.focus == focusInput {
		m.focus = focusList
		m.input.Blur()
		return
	}
	m.focus = focusInput
	m.input.Focus()
}

func (m *model) selected() (todo.Task, bool) {
	if m.cursor < 0 || m.cursor >= len(m.tasks) {
		return todo.Task{}, false
	}
	return m.tasks[m.cursor], true
}

// setTasks replaces the rendered list and keeps the cursor in range.
func (m *model) setTasks(l todo.List) {
	m.tasks = l
	if m.cursor >= len(l) {
		m.cursor = len(l) - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
}

func (m *model) View() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render(title) + "\n\n")
	b.WriteString(inputBoxStyle.Render(m.input.View()) + "\n")
	if m.status != "" {
		b.WriteString(warnStyle.Render(m.status) + "\n")
	}
	b.WriteString("\n")
	writeTasks(&b, m.tasks, m.cursor, m.focus == focusList)
	b.WriteString("\n")
	writeFooter(&b, m.tasks, m.focus)
	return b.String()
}

func writeTasks(b *strings.Builder, tasks todo.List, cursor int, active bool) {
	if len(tasks) == 0 {
		b.WriteString("  " + emptyStyle.Render(emptyListText) + "\n")
		return
	}
	for i, t := range tasks {
		pointer := "  "
		if active && i == cursor {
			pointer = cursorStyle.Render("> ")
		}
		box := "[ ]"
		text := t.Text
		if t.Completed {
			box = "[x]"
			text = doneStyle.Render(text)
		}
		b.WriteString(pointer + box + " " + text + "\n")
	}
}

func writeFooter(b *strings.Builder, tasks todo.List, f focus) {
	done := tasks.CompletedCount()
	counts := fmt.Sprintf("%d open, %d done", len(tasks)-done, done)
	hints := "enter add | tab list | ctrl+c quit"
	if f == focusList {
		hints = "space toggle | d delete | c clear completed | tab input | q quit"
	}
	b.WriteString(footerStyle.Render(counts+"  "+hints) + "\n")
}

// IsTTY returns true if w is a terminal.
func IsTTY(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	info, err := f.Stat()
	if err != nil {
		return false
	}
	return (info.Mode() & os.ModeCharDevice) != 0
}
