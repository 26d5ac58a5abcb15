package note

import (
	"strings"

	"github.com/kavia-common/quill/internal/store"
)

// Repository owns the live note collection for the session. The store
// is a passive mirror: read once at load, written after each mutation,
// and never consulted again except on an explicit Reload. Write
// failures are swallowed because memory stays authoritative.
type Repository struct {
	store    *store.Store
	notes    []Note
	selected string
}

// NewRepository creates a repository backed by s and loads the mirror.
func NewRepository(s *store.Store) *Repository {
	r := &Repository{store: s}
	r.Load()
	return r
}

// Load reads the collection from the store, defaulting to empty when
// the mirror is missing or malformed.
func (r *Repository) Load() {
	notes := []Note{}
	r.store.Get(store.NotesKey, &notes)
	r.notes = notes
}

// Reload re-reads the mirror, keeping the current collection when the
// read fails and dropping the selection if its note vanished.
func (r *Repository) Reload() {
	notes := []Note{}
	if ok := r.store.Get(store.NotesKey, &notes); !ok {
		return
	}
	r.notes = notes
	if r.selected != "" {
		if _, ok := r.Get(r.selected); !ok {
			r.selected = ""
		}
	}
}

// All returns a copy of the collection in storage order.
func (r *Repository) All() []Note {
	out := make([]Note, len(r.notes))
	copy(out, r.notes)
	return out
}

// Len returns the collection size.
func (r *Repository) Len() int {
	return len(r.notes)
}

// Get returns a copy of the note with the given id.
func (r *Repository) Get(id string) (Note, bool) {
	for _, n := range r.notes {
		if n.ID == id {
			return n, true
		}
	}
	return Note{}, false
}

// Selected returns the id of the selected note, "" for none.
func (r *Repository) Selected() string {
	return r.selected
}

// Select marks a note as selected. Unknown ids clear the selection.
func (r *Repository) Select(id string) {
	if _, ok := r.Get(id); ok {
		r.selected = id
	} else {
		r.selected = ""
	}
}

// Create mints a note from the drafts, prepends it so the collection
// stays newest-first, selects it, and mirrors to the store. Draft tags
// are normalized on the way in.
func (r *Repository) Create(title, content string, tags []string) Note {
	now := nowMillis()
	n := Note{
		ID:        NewID(),
		Title:     strings.TrimSpace(title),
		Content:   content,
		Tags:      CleanTags(tags),
		CreatedAt: now,
		UpdatedAt: now,
	}
	r.notes = append([]Note{n}, r.notes...)
	r.selected = n.ID
	r.persist()
	return n
}

// Update replaces title, content, and tags (normalized) of an existing
// note and refreshes updatedAt. createdAt is preserved. No-op for
// absent ids.
func (r *Repository) Update(id, title, content string, tags []string) {
	for i := range r.notes {
		if r.notes[i].ID != id {
			continue
		}
		r.notes[i].Title = strings.TrimSpace(title)
		r.notes[i].Content = content
		r.notes[i].Tags = CleanTags(tags)
		r.notes[i].UpdatedAt = nowMillis()
		r.persist()
		return
	}
}

// Delete removes a note if present. Deleting an absent id is a no-op;
// deleting the selected note clears the selection.
func (r *Repository) Delete(id string) {
	for i := range r.notes {
		if r.notes[i].ID != id {
			continue
		}
		r.notes = append(r.notes[:i], r.notes[i+1:]...)
		if r.selected == id {
			r.selected = ""
		}
		r.persist()
		return
	}
}

// TogglePin sets the pinned flag and refreshes updatedAt. No-op for
// absent ids.
func (r *Repository) TogglePin(id string, next bool) {
	for i := range r.notes {
		if r.notes[i].ID != id {
			continue
		}
		r.notes[i].Pinned = next
		r.notes[i].UpdatedAt = nowMillis()
		r.persist()
		return
	}
}

// persist mirrors the collection to the store. Failures are swallowed;
// the in-memory collection remains correct for the session.
func (r *Repository) persist() {
	_ = r.store.Put(store.NotesKey, r.notes)
}
