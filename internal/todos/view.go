package todos

// Empty-state copy shown when the list has no items.
const (
	EmptyTitle = "No items"
	EmptyHint  = "Add an item above"
)

// Row is one rendered item.
type Row struct {
	ID        string
	Text      string
	Completed bool
	// Editing marks the row that shows an edit field instead of static text.
	Editing bool
}

// View is everything a surface needs to draw the list.
type View struct {
	Empty bool
	Rows  []Row

	Done, Pending int
}

func (v View) Total() int { return v.Done + v.Pending }

// Surface is the user-facing side of the list: the add field, the rendered
// rows and the confirmation prompt. Implementations decide how to draw.
type Surface interface {
	// Render shows v. It is called after every change.
	Render(v View)
	// ResetInput clears the add field and gives it focus.
	ResetInput()
	// FocusEdit moves focus to the edit field of id and selects its text.
	FocusEdit(id string)
	// AfterRender runs fn once the most recent Render has been applied.
	AfterRender(fn func())
	// Confirm asks a blocking yes/no question.
	Confirm(prompt string) bool
}

type nopSurface struct{}

func (nopSurface) Render(View)           {}
func (nopSurface) ResetInput()           {}
func (nopSurface) FocusEdit(string)      {}
func (nopSurface) AfterRender(fn func()) { fn() }
func (nopSurface) Confirm(string) bool   { return false }
