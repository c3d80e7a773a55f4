package tui

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/idilsaglam/todo/internal/todos"
)

// afterRenderMsg is returned by an immediate Cmd, so it is delivered only after
// View for the queueing Update has been handed to the renderer. It does not
// wait for the terminal flush; hooks may rely on the widgets being synced.
type afterRenderMsg struct{}

func afterRender() tea.Msg { return afterRenderMsg{} }

// surface records what the manager asked for; the model applies it to the
// widgets in sync.
type surface struct {
	view  todos.View
	dirty bool

	resetInput bool
	focusID    string
	hooks      []func()

	// answer is what the confirmation modal decided.
	answer bool
}

func (s *surface) Render(v todos.View) {
	s.view = v
	s.dirty = true
}

func (s *surface) ResetInput()           { s.resetInput = true }
func (s *surface) FocusEdit(id string)   { s.focusID = id }
func (s *surface) AfterRender(fn func()) { s.hooks = append(s.hooks, fn) }
func (s *surface) Confirm(string) bool   { return s.answer }

func (s *surface) takeHooks() []func() {
	h := s.hooks
	s.hooks = nil
	return h
}
