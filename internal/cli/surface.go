package cli

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/idilsaglam/todo/internal/todos"
	"github.com/peterh/liner"
)

// textSurface is the non-interactive surface: renders are kept for `ls`,
// focus requests have nowhere to go, and confirmation is asked on the tty.
type textSurface struct {
	view      todos.View
	assumeYes bool
	ask       func(prompt string) (string, error)
}

func (s *textSurface) Render(v todos.View)   { s.view = v }
func (s *textSurface) ResetInput()           {}
func (s *textSurface) FocusEdit(string)      {}
func (s *textSurface) AfterRender(fn func()) { fn() }

func (s *textSurface) Confirm(prompt string) bool {
	if s.assumeYes {
		return true
	}
	ask := s.ask
	if ask == nil {
		ask = linerPrompt
	}
	ans, err := ask(prompt + " [y/N] ")
	if err != nil {
		return false
	}
	switch strings.ToLower(strings.TrimSpace(ans)) {
	case "y", "yes":
		return true
	}
	return false
}

func linerPrompt(prompt string) (string, error) {
	ln := liner.NewLiner()
	defer ln.Close()
	ln.SetCtrlCAborts(true)
	ans, err := ln.Prompt(prompt)
	if errors.Is(err, liner.ErrPromptAborted) || errors.Is(err, io.EOF) {
		return "", fmt.Errorf("aborted")
	}
	return ans, err
}
