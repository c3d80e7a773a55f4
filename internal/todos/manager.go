// Package todos holds the to-do list state and every operation on it.
//
// A Manager owns an ordered slice of items and an optional editing id. Every
// mutation is written through to the store before the surface is re-rendered,
// so the stored blob always matches memory once an operation returns.
package todos

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/idilsaglam/todo/internal/codec"
	"github.com/idilsaglam/todo/internal/model"
	"github.com/idilsaglam/todo/internal/store"
)

// ClearPrompt is the question asked before ClearAll empties the list.
const ClearPrompt = "Clear all items?"

var (
	// ErrNotFound is returned by Resolve when no item matches.
	ErrNotFound = errors.New("no such item")
	// ErrAmbiguous is returned by Resolve when an id prefix matches several items.
	ErrAmbiguous = errors.New("ambiguous item reference")
)

// Manager owns the item list, the editing id and the store mirror.
type Manager struct {
	st      store.Store
	key     string
	surface Surface
	now     func() time.Time
	newID   func() string
	log     *log.Logger
	seed    bool

	items     []model.Item
	editingID string
}

// Option configures a Manager.
type Option func(*Manager)

// WithKey sets the storage key (default store.DefaultKey).
func WithKey(key string) Option { return func(m *Manager) { m.key = key } }

// WithSurface sets the surface renders and prompts go to.
func WithSurface(s Surface) Option { return func(m *Manager) { m.surface = s } }

// WithClock sets the time source for new items.
func WithClock(now func() time.Time) Option { return func(m *Manager) { m.now = now } }

// WithIDFunc sets the id generator for new items.
func WithIDFunc(f func() string) Option { return func(m *Manager) { m.newID = f } }

// WithLogger sets the logger used for load and save failures.
func WithLogger(l *log.Logger) Option { return func(m *Manager) { m.log = l } }

// WithSamples controls seeding of the sample items when the stored list is empty.
func WithSamples(on bool) Option { return func(m *Manager) { m.seed = on } }

// New returns a Manager over st. Call Initialize before use.
func New(st store.Store, opts ...Option) *Manager {
	m := &Manager{
		st:      st,
		key:     store.DefaultKey,
		surface: nopSurface{},
		now:     time.Now,
		newID:   model.NewID,
		log:     log.New(io.Discard),
		seed:    true,
	}
	for _, o := range opts {
		o(m)
	}
	return m
}

// SetSurface swaps the surface; used when the UI is built after the manager.
func (m *Manager) SetSurface(s Surface) {
	if s == nil {
		s = nopSurface{}
	}
	m.surface = s
}

// Initialize loads the stored list. Unreadable or corrupt data counts as no
// saved items. An empty list is seeded with the sample items when enabled.
func (m *Manager) Initialize(ctx context.Context) {
	m.items = m.load(ctx)
	m.editingID = ""
	if len(m.items) == 0 && m.seed {
		m.items = model.Samples(m.newID, m.now())
		m.log.Debug("seeded sample items", "count", len(m.items))
		m.persist(ctx)
	}
	m.refresh()
}

func (m *Manager) load(ctx context.Context) []model.Item {
	b, ok, err := m.st.Get(ctx, m.key)
	if err != nil {
		m.log.Warn("read stored items", "key", m.key, "err", err)
		return []model.Item{}
	}
	if !ok {
		return []model.Item{}
	}
	items, err := codec.Decode(b)
	if err != nil {
		m.log.Warn("stored items unreadable, starting empty", "key", m.key, "err", err)
		return []model.Item{}
	}
	m.log.Debug("loaded items", "count", len(items))
	return items
}

// AddItem appends a new pending item with the trimmed text. Blank text is ignored.
func (m *Manager) AddItem(raw string) (model.Item, bool) {
	text := model.CleanText(raw)
	if text == "" {
		return model.Item{}, false
	}
	it := model.New(m.newID(), text, m.now())
	m.items = append(m.items, it)
	m.save()
	m.refresh()
	m.surface.ResetInput()
	return it, true
}

// ToggleItem flips the completed flag of id.
func (m *Manager) ToggleItem(id string) bool {
	i := m.index(id)
	if i < 0 {
		return false
	}
	m.items[i].Completed = !m.items[i].Completed
	m.save()
	m.refresh()
	return true
}

// BeginEdit puts id into edit mode, abandoning any edit in progress unsaved.
// Focus moves into the edit field once the new rendering has been applied.
func (m *Manager) BeginEdit(id string) bool {
	if m.index(id) < 0 {
		return false
	}
	m.editingID = id
	m.refresh()
	m.surface.AfterRender(func() {
		if m.editingID == id {
			m.surface.FocusEdit(id)
		}
	})
	return true
}

// CommitEdit saves value as the text of id. It only applies while id is the
// item being edited. Blank text deletes the item instead.
func (m *Manager) CommitEdit(id, value string) bool {
	if id == "" || m.editingID != id {
		return false
	}
	text := model.CleanText(value)
	if text == "" {
		return m.DeleteItem(id)
	}
	i := m.index(id)
	if i < 0 {
		m.editingID = ""
		m.refresh()
		return false
	}
	m.items[i].Text = text
	m.editingID = ""
	m.save()
	m.refresh()
	return true
}

// CancelEdit leaves edit mode without saving.
func (m *Manager) CancelEdit() {
	m.editingID = ""
	m.refresh()
}

// DeleteItem removes id. Deleting the item being edited also ends the edit.
func (m *Manager) DeleteItem(id string) bool {
	i := m.index(id)
	if i < 0 {
		return false
	}
	m.items = append(m.items[:i:i], m.items[i+1:]...)
	if m.editingID == id {
		m.editingID = ""
	}
	m.save()
	m.refresh()
	return true
}

// ClearAll empties the list after the surface confirms.
func (m *Manager) ClearAll() bool {
	if !m.surface.Confirm(ClearPrompt) {
		return false
	}
	m.items = []model.Item{}
	m.editingID = ""
	m.save()
	m.refresh()
	return true
}

// Render derives the view from the current state. It has no side effects.
func (m *Manager) Render() View {
	v := View{Empty: len(m.items) == 0}
	if v.Empty {
		return v
	}
	v.Rows = make([]Row, 0, len(m.items))
	for _, it := range m.items {
		v.Rows = append(v.Rows, Row{
			ID:        it.ID,
			Text:      it.Text,
			Completed: it.Completed,
			Editing:   it.ID == m.editingID,
		})
		if it.Completed {
			v.Done++
		} else {
			v.Pending++
		}
	}
	return v
}

// Persist writes the whole list to the store.
func (m *Manager) Persist(ctx context.Context) error {
	b, err := codec.Encode(m.items)
	if err != nil {
		return err
	}
	if err := m.st.Set(ctx, m.key, b); err != nil {
		return fmt.Errorf("persist %s: %w", m.key, err)
	}
	return nil
}

// persist is the write-through path: failures are logged and otherwise dropped.
func (m *Manager) persist(ctx context.Context) {
	if err := m.Persist(ctx); err != nil {
		m.log.Warn("save failed", "err", err)
	}
}

func (m *Manager) save() { m.persist(context.Background()) }

func (m *Manager) refresh() { m.surface.Render(m.Render()) }

// Items returns a copy of the list in order.
func (m *Manager) Items() []model.Item {
	out := make([]model.Item, len(m.items))
	copy(out, m.items)
	return out
}

// Editing returns the id in edit mode, if any.
func (m *Manager) Editing() (string, bool) {
	return m.editingID, m.editingID != ""
}

// Find returns the item with id.
func (m *Manager) Find(id string) (model.Item, bool) {
	i := m.index(id)
	if i < 0 {
		return model.Item{}, false
	}
	return m.items[i], true
}

// Resolve maps a user reference to an id: an exact id, a 1-based position,
// or a unique id prefix, tried in that order.
func (m *Manager) Resolve(ref string) (string, error) {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return "", fmt.Errorf("%w: empty reference", ErrNotFound)
	}
	if m.index(ref) >= 0 {
		return ref, nil
	}
	if n, err := strconv.Atoi(ref); err == nil {
		if n < 1 || n > len(m.items) {
			return "", fmt.Errorf("%w: index out of range: have %d, got %d", ErrNotFound, len(m.items), n)
		}
		return m.items[n-1].ID, nil
	}
	var match string
	for _, it := range m.items {
		if strings.HasPrefix(it.ID, ref) {
			if match != "" {
				return "", fmt.Errorf("%w: %q", ErrAmbiguous, ref)
			}
			match = it.ID
		}
	}
	if match == "" {
		return "", fmt.Errorf("%w: %q", ErrNotFound, ref)
	}
	return match, nil
}

func (m *Manager) index(id string) int {
	for i, it := range m.items {
		if it.ID == id {
			return i
		}
	}
	return -1
}
