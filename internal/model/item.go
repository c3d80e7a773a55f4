package model

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// Item is the domain model for a todo entry.
// Order in the list is insertion order; CreatedAt is kept for the record only.
type Item struct {
	ID        string    `json:"id"`
	Text      string    `json:"text"`
	Completed bool      `json:"completed"`
	CreatedAt time.Time `json:"createdAt"`
}

// NewID returns a fresh opaque item id.
func NewID() string {
	return uuid.NewString()
}

// CleanText trims text and replaces invalid UTF-8, so what is stored as JSON
// reads back byte for byte.
func CleanText(text string) string {
	return strings.ToValidUTF8(strings.TrimSpace(text), "\uFFFD")
}

// New builds a pending item. Text is cleaned; callers reject empty text.
func New(id, text string, at time.Time) Item {
	return Item{
		ID:        id,
		Text:      CleanText(text),
		CreatedAt: at.UTC(),
	}
}

// sampleTexts seed an empty list on first run.
var sampleTexts = []string{
	"Welcome!",
	"Press space to mark an item as done",
	"Use e to edit and d to delete",
}

// Samples returns the first-run items, each with its own id.
func Samples(newID func() string, at time.Time) []Item {
	out := make([]Item, 0, len(sampleTexts))
	for _, t := range sampleTexts {
		out = append(out, New(newID(), t, at))
	}
	return out
}
