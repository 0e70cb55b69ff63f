// Package library stores reusable block templates and the one-slot
// pending-insert handoff used to move a template into the document.
package library

import (
	"strings"
	"time"

	"folio-cli/internal/blocks"
	"folio-cli/internal/ids"
	"folio-cli/internal/model"
)

const dateLayout = "2006-01-02"

type Library struct {
	gen        ids.Generator
	now        func() time.Time
	components []model.LibraryComponent // newest first
	pending    *model.LibraryComponent
}

// New returns an empty library. Nil gen/now use ids.Default() and time.Now.
func New(gen ids.Generator, now func() time.Time) *Library {
	if gen == nil {
		gen = ids.Default()
	}
	if now == nil {
		now = time.Now
	}
	return &Library{gen: gen, now: now, components: []model.LibraryComponent{}}
}

// NewFrom returns a library seeded with copies of components (kept in order).
func NewFrom(gen ids.Generator, now func() time.Time, components []model.LibraryComponent) *Library {
	l := New(gen, now)
	for _, c := range components {
		l.components = append(l.components, c.Copy())
	}
	return l
}

// Components returns copies, most recently saved first.
func (l *Library) Components() []model.LibraryComponent {
	out := make([]model.LibraryComponent, 0, len(l.components))
	for _, c := range l.components {
		out = append(out, c.Copy())
	}
	return out
}

func (l *Library) Component(id string) (model.LibraryComponent, bool) {
	for _, c := range l.components {
		if c.ID == id {
			return c.Copy(), true
		}
	}
	return model.LibraryComponent{}, false
}

// Save stores a copy of b under a new component. The stored block gets its own
// identity so it never collides with the source block. name defaults to the
// block label.
func (l *Library) Save(b model.Block, name string) model.LibraryComponent {
	name = strings.TrimSpace(name)
	if name == "" {
		name = b.Label
	}
	c := model.LibraryComponent{
		ID:      l.gen.New(ids.PrefixComponent),
		Name:    name,
		Type:    b.Type,
		Preview: blocks.Preview(b.Content),
		Block:   blocks.Clone(l.gen, b),
		SavedAt: l.now().UTC().Format(dateLayout),
	}
	l.components = append([]model.LibraryComponent{c}, l.components...)
	return c.Copy()
}

// Remove deletes a component. A pending insert holding its own copy is left alone.
func (l *Library) Remove(id string) bool {
	for i := range l.components {
		if l.components[i].ID == id {
			l.components = append(l.components[:i], l.components[i+1:]...)
			return true
		}
	}
	return false
}

// Search matches query case-insensitively against name, type and preview.
// An empty query matches everything.
func (l *Library) Search(query string) []model.LibraryComponent {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return l.Components()
	}
	out := []model.LibraryComponent{}
	for _, c := range l.components {
		if strings.Contains(strings.ToLower(c.Name), q) ||
			strings.Contains(strings.ToLower(string(c.Type)), q) ||
			strings.Contains(strings.ToLower(c.Preview), q) {
			out = append(out, c.Copy())
		}
	}
	return out
}

// SetPendingInsert fills the handoff slot with a copy of c, or clears it when c is nil.
func (l *Library) SetPendingInsert(c *model.LibraryComponent) {
	if c == nil {
		l.pending = nil
		return
	}
	cp := c.Copy()
	l.pending = &cp
}

func (l *Library) PendingInsert() (model.LibraryComponent, bool) {
	if l.pending == nil {
		return model.LibraryComponent{}, false
	}
	return l.pending.Copy(), true
}

// TakePendingInsert returns the pending component and clears the slot in the
// same step, so a request can be consumed at most once.
func (l *Library) TakePendingInsert() (model.LibraryComponent, bool) {
	if l.pending == nil {
		return model.LibraryComponent{}, false
	}
	c := *l.pending
	l.pending = nil
	return c, true
}
