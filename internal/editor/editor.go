// Package editor is the modal note editor's state machine. It owns the
// transient edit buffer between open and save/cancel and knows nothing
// about the UI toolkit: the presentation layer supplies a
// FocusController and maps focus stops onto its own widgets.
package editor

import (
	"strings"

	"github.com/kavia-common/quill/internal/note"
)

// Mode says whether a save produces a new note or rewrites one.
type Mode int

const (
	ModeCreate Mode = iota
	ModeEdit
)

// Stop is a keyboard focus position inside the open editor. Tab order
// is the declaration order; cycling wraps at both ends.
type Stop int

const (
	StopTitle Stop = iota
	StopContent
	StopTags
	StopSave
	StopCancel
	numStops
)

// FocusController receives focus side effects at state transitions.
// OnOpen fires after the editor opens (move input focus to the title
// field); OnClose fires after save or cancel (restore whatever held
// focus before).
type FocusController interface {
	OnOpen()
	OnClose()
}

type noopFocus struct{}

func (noopFocus) OnOpen()  {}
func (noopFocus) OnClose() {}

// Buffer is the uncommitted edit state.
type Buffer struct {
	Title    string
	Content  string
	Tags     []string
	TagInput string
	Err      string
}

// Payload is the tagged save result: Create or Update.
type Payload interface {
	isPayload()
}

// Create is the payload for a save in create mode.
type Create struct {
	Title   string
	Content string
	Tags    []string
}

// Update is the payload for a save in edit mode. ID and the original
// createdAt stay with the repository; the payload only names the id.
type Update struct {
	ID      string
	Title   string
	Content string
	Tags    []string
}

func (Create) isPayload() {}
func (Update) isPayload() {}

// Editor is closed or open with a buffer. The zero value is closed.
type Editor struct {
	open  bool
	mode  Mode
	id    string
	buf   Buffer
	focus FocusController
	stop  Stop
}

// New creates a closed editor. A nil focus controller is replaced with
// a no-op so tests can drive the machine headless.
func New(focus FocusController) *Editor {
	if focus == nil {
		focus = noopFocus{}
	}
	return &Editor{focus: focus}
}

// IsOpen reports whether the editor holds a buffer.
func (e *Editor) IsOpen() bool { return e.open }

// Mode returns the open mode. Only meaningful while open.
func (e *Editor) Mode() Mode { return e.mode }

// Buffer returns a copy of the current buffer.
func (e *Editor) Buffer() Buffer {
	b := e.buf
	b.Tags = append([]string(nil), e.buf.Tags...)
	return b
}

// Focus returns the focused stop.
func (e *Editor) Focus() Stop { return e.stop }

// OpenCreate transitions closed -> open(create, emptyBuffer).
func (e *Editor) OpenCreate() {
	e.openWith(ModeCreate, "", Buffer{})
}

// OpenEdit transitions closed -> open(edit, bufferFrom(note)). When the
// referenced note no longer exists (found = false) the editor degrades
// to an empty create-style buffer instead of failing.
func (e *Editor) OpenEdit(n note.Note, found bool) {
	if !found {
		e.openWith(ModeCreate, "", Buffer{})
		return
	}
	e.openWith(ModeEdit, n.ID, Buffer{
		Title:   n.Title,
		Content: n.Content,
		Tags:    append([]string(nil), n.Tags...),
	})
}

func (e *Editor) openWith(mode Mode, id string, buf Buffer) {
	if e.open {
		return
	}
	e.open = true
	e.mode = mode
	e.id = id
	e.buf = buf
	e.stop = StopTitle
	e.focus.OnOpen()
}

// SetTitle replaces the buffer title and clears any validation error.
func (e *Editor) SetTitle(title string) {
	if !e.open {
		return
	}
	e.buf.Title = title
	e.buf.Err = ""
}

// SetContent replaces the buffer content.
func (e *Editor) SetContent(content string) {
	if !e.open {
		return
	}
	e.buf.Content = content
}

// SetTagInput tracks the raw, not yet committed tag field text.
func (e *Editor) SetTagInput(s string) {
	if !e.open {
		return
	}
	e.buf.TagInput = s
}

// CommitTagInput tokenizes the pending tag input into the buffer's tag
// set and clears the field. Call on Enter, on a typed comma, and when
// the tag input loses focus.
func (e *Editor) CommitTagInput() {
	if !e.open || e.buf.TagInput == "" {
		return
	}
	e.buf.Tags = note.MergeTags(e.buf.Tags, note.ParseTags(e.buf.TagInput))
	e.buf.TagInput = ""
}

// PopTag removes the most recently added tag. Wired to backspace on an
// empty tag input.
func (e *Editor) PopTag() (string, bool) {
	if !e.open || len(e.buf.Tags) == 0 {
		return "", false
	}
	last := e.buf.Tags[len(e.buf.Tags)-1]
	e.buf.Tags = e.buf.Tags[:len(e.buf.Tags)-1]
	return last, true
}

// RemoveTag drops a specific tag from the buffer.
func (e *Editor) RemoveTag(tag string) {
	if !e.open {
		return
	}
	for i, t := range e.buf.Tags {
		if t == tag {
			e.buf.Tags = append(e.buf.Tags[:i], e.buf.Tags[i+1:]...)
			return
		}
	}
}

// CycleFocus moves the focused stop by delta, wrapping around.
func (e *Editor) CycleFocus(delta int) Stop {
	if !e.open {
		return e.stop
	}
	n := int(numStops)
	e.stop = Stop(((int(e.stop)+delta)%n + n) % n)
	return e.stop
}

// SetFocus jumps straight to a stop.
func (e *Editor) SetFocus(s Stop) {
	if !e.open || s < 0 || s >= numStops {
		return
	}
	e.stop = s
}

// Save validates and commits the buffer. A whitespace-only title is
// rejected: the editor stays open with the error set and no payload is
// produced. On success the pending tag input is committed first, the
// editor closes, and the tagged payload is returned.
func (e *Editor) Save() (Payload, bool) {
	if !e.open {
		return nil, false
	}

	title := strings.TrimSpace(e.buf.Title)
	if title == "" {
		e.buf.Err = "title cannot be empty"
		return nil, false
	}

	e.CommitTagInput()
	tags := append([]string(nil), e.buf.Tags...)
	content := e.buf.Content

	var p Payload
	if e.mode == ModeEdit {
		p = Update{ID: e.id, Title: title, Content: content, Tags: tags}
	} else {
		p = Create{Title: title, Content: content, Tags: tags}
	}

	e.close()
	return p, true
}

// Cancel discards the buffer and closes.
func (e *Editor) Cancel() {
	if !e.open {
		return
	}
	e.close()
}

func (e *Editor) close() {
	e.open = false
	e.id = ""
	e.buf = Buffer{}
	e.stop = StopTitle
	e.focus.OnClose()
}
