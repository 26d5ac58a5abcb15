// Package app wires user actions to repository mutations and owns the
// process-wide settings.
package app

import (
	"fmt"

	"github.com/kavia-common/quill/internal/editor"
	"github.com/kavia-common/quill/internal/note"
	"github.com/kavia-common/quill/internal/snapshot"
	"github.com/kavia-common/quill/internal/store"
)

// Theme values persisted in settings.
const (
	ThemeLight = "light"
	ThemeDark  = "dark"
)

// Settings is the single process-wide settings record, loaded once at
// startup and persisted on every change.
type Settings struct {
	Theme string `json:"theme"`
}

// Controller exclusively owns the live note collection and settings.
// The store is a mirror, never consulted mid-session.
type Controller struct {
	repo     *note.Repository
	store    *store.Store
	snaps    *snapshot.Recorder
	settings Settings
}

// NewController loads the repository and settings from the store.
// Missing or malformed settings fall back to the light theme.
func NewController(s *store.Store, snaps *snapshot.Recorder) *Controller {
	if snaps == nil {
		snaps = snapshot.New("", false)
	}
	c := &Controller{
		repo:     note.NewRepository(s),
		store:    s,
		snaps:    snaps,
		settings: Settings{Theme: ThemeLight},
	}
	settings := Settings{Theme: ThemeLight}
	if s.Get(store.SettingsKey, &settings) && (settings.Theme == ThemeLight || settings.Theme == ThemeDark) {
		c.settings = settings
	}
	return c
}

// Repo exposes the repository for queries and reloads.
func (c *Controller) Repo() *note.Repository {
	return c.repo
}

// Notes returns the collection in storage order.
func (c *Controller) Notes() []note.Note {
	return c.repo.All()
}

// Theme returns the active theme name.
func (c *Controller) Theme() string {
	return c.settings.Theme
}

// Apply commits an editor payload to the repository and returns the id
// of the affected note.
func (c *Controller) Apply(p editor.Payload) string {
	switch v := p.(type) {
	case editor.Create:
		n := c.repo.Create(v.Title, v.Content, v.Tags)
		c.record(fmt.Sprintf("new note: %s", n.Title))
		return n.ID
	case editor.Update:
		c.repo.Update(v.ID, v.Title, v.Content, v.Tags)
		c.record(fmt.Sprintf("update note: %s", v.Title))
		return v.ID
	}
	return ""
}

// Create adds a note directly from drafts, bypassing the editor.
func (c *Controller) Create(title, content string, tags []string) note.Note {
	n := c.repo.Create(title, content, tags)
	c.record(fmt.Sprintf("new note: %s", n.Title))
	return n
}

// Delete removes a note; absent ids are a no-op.
func (c *Controller) Delete(id string) {
	if n, ok := c.repo.Get(id); ok {
		c.repo.Delete(id)
		c.record(fmt.Sprintf("delete note: %s", n.Title))
	}
}

// TogglePin sets the pinned flag; absent ids are a no-op.
func (c *Controller) TogglePin(id string, next bool) {
	if _, ok := c.repo.Get(id); !ok {
		return
	}
	c.repo.TogglePin(id, next)
	if next {
		c.record("pin note")
	} else {
		c.record("unpin note")
	}
}

// ToggleTheme flips light <-> dark, persists the settings, and returns
// the new theme so the presentation layer can re-derive its palette.
// Persistence failures are swallowed; the in-memory setting holds.
func (c *Controller) ToggleTheme() string {
	if c.settings.Theme == ThemeDark {
		c.settings.Theme = ThemeLight
	} else {
		c.settings.Theme = ThemeDark
	}
	_ = c.store.Put(store.SettingsKey, c.settings)
	return c.settings.Theme
}

func (c *Controller) record(message string) {
	_ = c.snaps.Record(message, c.store.Path(store.NotesKey))
}
