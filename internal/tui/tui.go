// Package tui is the interactive view of the list, built on Bubble Tea.
package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/idilsaglam/todo/internal/todos"
)

type keyMap struct {
	Add, Toggle, Edit, Delete, Clear, Quit key.Binding
	Submit, Cancel, Blur                   key.Binding
	Yes                                    key.Binding
}

func defaultKeys() keyMap {
	return keyMap{
		Add:    key.NewBinding(key.WithKeys("a", "i"), key.WithHelp("a", "add")),
		Toggle: key.NewBinding(key.WithKeys(" ", "x"), key.WithHelp("space", "toggle")),
		Edit:   key.NewBinding(key.WithKeys("e", "enter"), key.WithHelp("e", "edit")),
		Delete: key.NewBinding(key.WithKeys("d", "delete"), key.WithHelp("d", "delete")),
		Clear:  key.NewBinding(key.WithKeys("C"), key.WithHelp("C", "clear all")),
		Quit:   key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),

		Submit: key.NewBinding(key.WithKeys("enter")),
		Cancel: key.NewBinding(key.WithKeys("esc")),
		Blur:   key.NewBinding(key.WithKeys("up", "down", "tab", "shift+tab")),
		Yes:    key.NewBinding(key.WithKeys("y", "Y")),
	}
}

type modelTUI struct {
	mgr  *todos.Manager
	surf *surface
	keys keyMap

	list list.Model
	add  textinput.Model // add field
	edit *editField      // edit field of the row in edit mode

	adding     bool // add field has focus
	confirming bool // clear-all modal is open

	width, height int
}

// New wires a model to mgr and loads the stored list.
func New(ctx context.Context, mgr *todos.Manager, theme string) modelTUI {
	applyTheme(theme)

	m := modelTUI{
		mgr:    mgr,
		surf:   &surface{},
		keys:   defaultKeys(),
		edit:   newEditField(),
		width:  80,
		height: 24,
	}

	l := list.New(nil, rowDelegate{edit: m.edit}, 0, 0)
	l.SetShowTitle(false)
	l.SetShowHelp(true)
	l.SetShowPagination(true)
	l.SetShowStatusBar(true)
	l.SetFilteringEnabled(false)
	l.Styles.HelpStyle = helpStyle
	l.Styles.PaginationStyle = helpStyle
	l.SetStatusBarItemName("item", "items")
	// q is ours; the list must not quit behind our back while editing.
	l.KeyMap.Quit.SetEnabled(false)

	extra := []key.Binding{m.keys.Add, m.keys.Toggle, m.keys.Edit, m.keys.Delete, m.keys.Clear, m.keys.Quit}
	l.AdditionalShortHelpKeys = func() []key.Binding { return extra }
	l.AdditionalFullHelpKeys = func() []key.Binding { return extra }
	m.list = l

	// set up text input for the add field
	m.add = textinput.New()
	m.add.Prompt = "> "
	m.add.Placeholder = "What needs to be done?"
	m.add.CharLimit = 200

	m.resize()
	mgr.SetSurface(m.surf)
	mgr.Initialize(ctx)
	m, _ = m.sync()
	return m
}

// Run starts the full-screen program. The list is saved on every change, so
// there is nothing to write back on exit.
func Run(ctx context.Context, mgr *todos.Manager, theme string) error {
	p := tea.NewProgram(New(ctx, mgr, theme), tea.WithAltScreen(), tea.WithContext(ctx))
	_, err := p.Run()
	return err
}

func (m modelTUI) Init() tea.Cmd { return nil }

func (m modelTUI) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.resize()
		return m, nil

	case afterRenderMsg:
		for _, fn := range m.surf.takeHooks() {
			fn()
		}
		return m.sync()

	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC {
			return m, tea.Quit
		}
		if m.confirming {
			return m.updateConfirm(msg)
		}
		if _, ok := m.mgr.Editing(); ok {
			return m.updateEdit(msg)
		}
		if m.adding {
			return m.updateAdd(msg)
		}
		return m.updateBrowse(msg)
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m modelTUI) updateBrowse(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.Add):
		m.adding = true
		return m, m.add.Focus()
	case key.Matches(msg, m.keys.Clear):
		m.confirming = true
		return m, nil
	}

	if id, ok := m.selectedID(); ok {
		switch {
		case key.Matches(msg, m.keys.Toggle):
			m.mgr.ToggleItem(id)
			return m.sync()
		case key.Matches(msg, m.keys.Edit):
			m.mgr.BeginEdit(id)
			return m.sync()
		case key.Matches(msg, m.keys.Delete):
			m.mgr.DeleteItem(id)
			return m.sync()
		}
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m modelTUI) updateAdd(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Submit):
		_, added := m.mgr.AddItem(m.add.Value())
		var cmd tea.Cmd
		m, cmd = m.sync()
		if added {
			m.list.Select(len(m.list.Items()) - 1)
		}
		return m, cmd
	case key.Matches(msg, m.keys.Cancel):
		m.adding = false
		m.add.Blur()
		return m, nil
	}
	var cmd tea.Cmd
	m.add, cmd = m.add.Update(msg)
	return m, cmd
}

func (m modelTUI) updateEdit(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	id, _ := m.mgr.Editing()
	switch {
	case key.Matches(msg, m.keys.Submit):
		m.mgr.CommitEdit(id, m.edit.input.Value())
		return m.sync()
	case key.Matches(msg, m.keys.Cancel):
		m.mgr.CancelEdit()
		return m.sync()
	case key.Matches(msg, m.keys.Blur):
		// Leaving the field saves it, then the cursor moves as asked.
		m.mgr.CommitEdit(id, m.edit.input.Value())
		var cmd, lcmd tea.Cmd
		m, cmd = m.sync()
		m.list, lcmd = m.list.Update(msg)
		return m, tea.Batch(cmd, lcmd)
	}

	if m.edit.selectAll {
		switch msg.Type {
		case tea.KeyRunes, tea.KeySpace:
			m.edit.input.SetValue("")
		case tea.KeyBackspace, tea.KeyDelete:
			m.edit.input.SetValue("")
			m.edit.setSelectAll(false)
			return m, nil
		}
		m.edit.setSelectAll(false)
	}
	var cmd tea.Cmd
	m.edit.input, cmd = m.edit.input.Update(msg)
	return m, cmd
}

func (m modelTUI) updateConfirm(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, m.keys.Yes) {
		m.surf.answer = true
	} else if !key.Matches(msg, m.keys.Cancel) && msg.String() != "n" && msg.String() != "N" {
		return m, nil
	}
	m.mgr.ClearAll()
	m.surf.answer = false
	m.confirming = false
	return m.sync()
}

// sync applies whatever the manager asked of the surface to the widgets.
func (m modelTUI) sync() (modelTUI, tea.Cmd) {
	var cmds []tea.Cmd

	if m.surf.dirty {
		m.surf.dirty = false
		rows := m.surf.view.Rows
		items := make([]list.Item, 0, len(rows))
		editing := ""
		for _, r := range rows {
			items = append(items, rowItem{r})
			if r.Editing {
				editing = r.ID
				if m.edit.id != r.ID {
					m.edit.input.SetValue(r.Text)
					m.edit.input.Blur()
					m.edit.setSelectAll(false)
				}
			}
		}
		m.edit.id = editing
		if editing == "" {
			m.edit.input.Blur()
			m.edit.setSelectAll(false)
		}
		cmds = append(cmds, m.list.SetItems(items))
		if n := len(items); n > 0 && m.list.Index() >= n {
			m.list.Select(n - 1)
		}
	}

	if m.surf.resetInput {
		m.surf.resetInput = false
		m.add.SetValue("")
		m.adding = true
		cmds = append(cmds, m.add.Focus())
	}

	if id := m.surf.focusID; id != "" {
		m.surf.focusID = ""
		if id == m.edit.id {
			m.add.Blur()
			m.adding = false
			m.edit.input.CursorEnd()
			m.edit.setSelectAll(true)
			cmds = append(cmds, m.edit.input.Focus())
		}
	}

	if len(m.surf.hooks) > 0 {
		cmds = append(cmds, afterRender)
	}
	return m, tea.Batch(cmds...)
}

func (m modelTUI) selectedID() (string, bool) {
	it, ok := m.list.SelectedItem().(rowItem)
	if !ok {
		return "", false
	}
	return it.ID, true
}

// chrome lines around the list: header, add bar (3), panel border (2)
const chromeHeight = 6

func (m *modelTUI) resize() {
	h := m.height - chromeHeight
	if h < 3 {
		h = 3
	}
	m.list.SetSize(m.width-4, h)
	m.add.Width = m.width - 10
	m.edit.input.Width = m.width - 20
}

func (m modelTUI) View() string {
	v := m.surf.view
	header := fmt.Sprintf("%s   %s %d  %s %d  %s %d",
		titleStyle.Render("Todos"),
		successStyle.Render("✔"), v.Done,
		pendingStyle.Render("•"), v.Pending,
		accentStyle.Render("Total"), v.Total(),
	)

	addTitle := "Add item"
	if m.adding {
		addTitle = accentStyle.Render(addTitle)
	}
	bar := lipgloss.NewStyle().Border(lipgloss.NormalBorder(), false, false, true, false).
		BorderForeground(lipgloss.Color("8"))
	addBar := bar.Render(addTitle + "  " + m.add.View())

	var body string
	if v.Empty {
		body = "\n" + titleStyle.Render(todos.EmptyTitle) + "\n" + mutedStyle.Render(todos.EmptyHint)
	} else {
		body = m.list.View()
	}

	parts := []string{header, addBar, body}
	if m.confirming {
		parts = append(parts, confirmView(todos.ClearPrompt))
	}
	return panelStyle().Render(strings.Join(parts, "\n"))
}

func confirmView(prompt string) string {
	box := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("9")).
		Padding(0, 1)
	return box.Render(errorStyle.Render(prompt) + "\n" + helpStyle.Render("y: yes   n/esc: no"))
}
