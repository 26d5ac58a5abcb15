package main

import (
	"strings"

	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/kavia-common/quill/internal/editor"
	"github.com/kavia-common/quill/internal/note"
)

// editorModel maps the editor state machine's buffer and focus stops
// onto bubbles widgets. The state machine decides; this type renders
// and routes keys.
type editorModel struct {
	sm      *editor.Editor
	title   textinput.Model
	content textarea.Model
	tags    textinput.Model
	width   int
}

// The editorModel is its own FocusController: widget focus follows the
// machine's stop on open and all widgets blur on close.
func (m *editorModel) OnOpen()  {}
func (m *editorModel) OnClose() {
	m.title.Blur()
	m.content.Blur()
	m.tags.Blur()
}

func newEditorModel() *editorModel {
	title := textinput.New()
	title.Placeholder = "Title"
	title.CharLimit = 200

	content := textarea.New()
	content.Placeholder = "Write the note here..."
	content.ShowLineNumbers = false

	tags := textinput.New()
	tags.Placeholder = "tags, separated, by, commas"

	m := &editorModel{
		title:   title,
		content: content,
		tags:    tags,
	}
	m.sm = editor.New(m)
	return m
}

// openCreate opens an empty buffer. The returned command lands input
// focus on the title field once the modal exists.
func (m *editorModel) openCreate() tea.Cmd {
	m.sm.OpenCreate()
	return m.syncFromBuffer()
}

// openEdit opens a buffer copied from n; found=false degrades to an
// empty create buffer.
func (m *editorModel) openEdit(n note.Note, found bool) tea.Cmd {
	m.sm.OpenEdit(n, found)
	return m.syncFromBuffer()
}

func (m *editorModel) isOpen() bool {
	return m.sm.IsOpen()
}

// syncFromBuffer pushes the machine's buffer into the widgets and
// applies widget focus for the current stop.
func (m *editorModel) syncFromBuffer() tea.Cmd {
	b := m.sm.Buffer()
	m.title.SetValue(b.Title)
	m.content.SetValue(b.Content)
	m.tags.SetValue(b.TagInput)
	return m.applyFocus()
}

func (m *editorModel) applyFocus() tea.Cmd {
	m.title.Blur()
	m.content.Blur()
	m.tags.Blur()
	switch m.sm.Focus() {
	case editor.StopTitle:
		return m.title.Focus()
	case editor.StopContent:
		return m.content.Focus()
	case editor.StopTags:
		return m.tags.Focus()
	}
	return nil
}

func (m *editorModel) setSize(width, height int) {
	m.width = width
	inner := width - 8
	if inner < 20 {
		inner = 20
	}
	m.title.Width = inner
	m.tags.Width = inner
	m.content.SetWidth(inner)
	h := height - 14
	if h < 3 {
		h = 3
	}
	if h > 16 {
		h = 16
	}
	m.content.SetHeight(h)
}

// editorResult reports what a key did with the modal.
type editorResult int

const (
	editorHandled editorResult = iota
	editorSaved
	editorCancelled
)

// handleKey routes one key press. When the save succeeds the payload is
// returned for the controller to apply.
func (m *editorModel) handleKey(msg tea.KeyMsg) (editorResult, editor.Payload, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.sm.Cancel()
		return editorCancelled, nil, nil

	case "tab", "shift+tab":
		// Leaving the tag field counts as blur: commit pending input.
		if m.sm.Focus() == editor.StopTags {
			m.commitTags()
		}
		delta := 1
		if msg.String() == "shift+tab" {
			delta = -1
		}
		m.sm.CycleFocus(delta)
		return editorHandled, nil, m.applyFocus()

	case "ctrl+s":
		return m.trySave()

	case "enter":
		switch m.sm.Focus() {
		case editor.StopTitle:
			m.sm.CycleFocus(1)
			return editorHandled, nil, m.applyFocus()
		case editor.StopTags:
			m.commitTags()
			return editorHandled, nil, nil
		case editor.StopSave:
			return m.trySave()
		case editor.StopCancel:
			m.sm.Cancel()
			return editorCancelled, nil, nil
		}
	}

	switch m.sm.Focus() {
	case editor.StopTitle:
		var cmd tea.Cmd
		m.title, cmd = m.title.Update(msg)
		m.sm.SetTitle(m.title.Value())
		return editorHandled, nil, cmd

	case editor.StopContent:
		var cmd tea.Cmd
		m.content, cmd = m.content.Update(msg)
		m.sm.SetContent(m.content.Value())
		return editorHandled, nil, cmd

	case editor.StopTags:
		switch msg.String() {
		case ",":
			m.commitTags()
			return editorHandled, nil, nil
		case "backspace":
			if m.tags.Value() == "" {
				m.sm.PopTag()
				return editorHandled, nil, nil
			}
		}
		var cmd tea.Cmd
		m.tags, cmd = m.tags.Update(msg)
		m.sm.SetTagInput(m.tags.Value())
		return editorHandled, nil, cmd
	}

	return editorHandled, nil, nil
}

func (m *editorModel) commitTags() {
	m.sm.SetTagInput(m.tags.Value())
	m.sm.CommitTagInput()
	m.tags.SetValue("")
}

func (m *editorModel) trySave() (editorResult, editor.Payload, tea.Cmd) {
	m.sm.SetTitle(m.title.Value())
	m.sm.SetContent(m.content.Value())
	m.sm.SetTagInput(m.tags.Value())
	p, ok := m.sm.Save()
	if !ok {
		return editorHandled, nil, nil
	}
	m.tags.SetValue("")
	return editorSaved, p, nil
}

// update forwards non-key messages so cursors keep blinking.
func (m *editorModel) update(msg tea.Msg) tea.Cmd {
	var cmds []tea.Cmd
	var cmd tea.Cmd
	m.title, cmd = m.title.Update(msg)
	cmds = append(cmds, cmd)
	m.content, cmd = m.content.Update(msg)
	cmds = append(cmds, cmd)
	m.tags, cmd = m.tags.Update(msg)
	cmds = append(cmds, cmd)
	return tea.Batch(cmds...)
}

func (m *editorModel) view() string {
	b := m.sm.Buffer()

	header := "New note"
	if m.sm.Mode() == editor.ModeEdit {
		header = "Edit note"
	}

	var chips []string
	for _, t := range b.Tags {
		chips = append(chips, colors.tagStyle.Render(t))
	}
	tagLine := strings.Join(chips, " ")
	if tagLine != "" {
		tagLine += "\n"
	}

	label := func(s string, focused bool) string {
		if focused {
			return colors.selectorStyle.Render("█ " + s)
		}
		return colors.mutedStyle.Render("  " + s)
	}

	button := func(s string, focused bool) string {
		if focused {
			return colors.selectorStyle.Render("[ " + s + " ]")
		}
		return colors.mutedStyle.Render("[ " + s + " ]")
	}

	var errLine string
	if b.Err != "" {
		errLine = colors.errorStyle.Render(b.Err) + "\n"
	}

	focus := m.sm.Focus()
	body := strings.Join([]string{
		colors.titleStyle.Bold(true).Render(header),
		"",
		label("Title", focus == editor.StopTitle),
		m.title.View(),
		errLine + label("Content", focus == editor.StopContent),
		m.content.View(),
		label("Tags", focus == editor.StopTags),
		tagLine + m.tags.View(),
		"",
		button("Save", focus == editor.StopSave) + "  " + button("Cancel", focus == editor.StopCancel),
		"",
		colors.mutedStyle.Render("tab: next field • ctrl+s: save • esc: cancel"),
	}, "\n")

	frame := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(colors.borderStyle.GetForeground()).
		Padding(1, 2)
	return frame.Render(body)
}
