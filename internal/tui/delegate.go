package tui

import (
	"fmt"
	"io"

	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/idilsaglam/todo/internal/todos"
)

// rowItem adapts a rendered row to bubbles/list.Item.
type rowItem struct{ todos.Row }

func (i rowItem) FilterValue() string { return i.Text }

// editField is shared by pointer between the model and the delegate so the
// row being edited can draw the live input.
type editField struct {
	id        string
	input     textinput.Model
	selectAll bool
}

func newEditField() *editField {
	ti := textinput.New()
	ti.Prompt = ""
	ti.CharLimit = 200
	return &editField{input: ti}
}

func (e *editField) setSelectAll(on bool) {
	e.selectAll = on
	if on {
		e.input.TextStyle = selectedStyle
	} else {
		e.input.TextStyle = plainStyle
	}
}

// Custom delegate to control how items render (single line)
type rowDelegate struct {
	edit *editField
}

func (d rowDelegate) Height() int                               { return 1 }
func (d rowDelegate) Spacing() int                              { return 0 }
func (d rowDelegate) Update(msg tea.Msg, m *list.Model) tea.Cmd { return nil }
func (d rowDelegate) Render(w io.Writer, m list.Model, index int, item list.Item) {
	it, ok := item.(rowItem)
	if !ok {
		return
	}

	box := mutedStyle.Render(boxUnchecked)
	text := it.Text
	if it.Completed {
		box = successStyle.Render(boxChecked)
		text = doneStyle.Render(text)
	}

	control := "edit"
	if it.Editing {
		text = d.edit.input.View()
		control = "cancel"
	}
	controls := helpStyle.Render(fmt.Sprintf("[%s] [del]", control))

	prefix := "  "
	if index == m.Index() {
		prefix = selectedStyle.Render("> ")
	}
	fmt.Fprintf(w, "%s%s %s  %s", prefix, box, text, controls)
}
