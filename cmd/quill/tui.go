package main

import (
	"fmt"
	"io"
	"log"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"
	"github.com/fsnotify/fsnotify"

	"github.com/kavia-common/quill/internal/app"
	"github.com/kavia-common/quill/internal/config"
	"github.com/kavia-common/quill/internal/note"
)

type noteItem struct {
	note note.Note
}

func (i noteItem) FilterValue() string {
	return i.note.Title + " " + strings.Join(i.note.Tags, " ")
}

func (i noteItem) Title() string       { return i.note.Title }
func (i noteItem) Description() string { return relativeTime(i.note.UpdatedAt) }

func (i noteItem) renderWithSelection(isSelected bool) string {
	var head string
	if isSelected {
		head = colors.selectorStyle.Render("█ ")
	} else {
		head = "  "
	}
	if i.note.Pinned {
		head += colors.pinnedStyle.Render("● ")
	}
	head += colors.titleStyle.Render(i.note.Title)

	meta := "  " + colors.dateStyle.Render(relativeTime(i.note.UpdatedAt))
	for _, t := range i.note.Tags {
		meta += " " + colors.tagStyle.Render(t)
	}

	return head + "\n" + meta
}

type noteDelegate struct {
	list.DefaultDelegate
}

func (d noteDelegate) Render(w io.Writer, m list.Model, index int, item list.Item) {
	ni, ok := item.(noteItem)
	if !ok {
		return
	}
	fmt.Fprint(w, ni.renderWithSelection(index == m.Index()))
}

// relativeTime renders an epoch-milliseconds timestamp for the list.
func relativeTime(ms int64) string {
	if ms == 0 {
		return "never"
	}
	d := time.Since(time.UnixMilli(ms))
	switch {
	case d < time.Minute:
		return "just now"
	case d < time.Hour:
		return fmt.Sprintf("%dm ago", int(d.Minutes()))
	case d < 24*time.Hour:
		return fmt.Sprintf("%dh ago", int(d.Hours()))
	case d < 7*24*time.Hour:
		return fmt.Sprintf("%dd ago", int(d.Hours()/24))
	default:
		return time.UnixMilli(ms).Format("2006-01-02")
	}
}

type tuiModel struct {
	list    list.Model
	ctrl    *app.Controller
	cfg     *config.Config
	watcher *fsnotify.Watcher
	editor  *editorModel

	quitting bool

	filtering bool
	query     string

	tagFilter string

	showTags  bool
	tagCursor int
	tagCounts []note.TagCount

	showDeleteConfirm      bool
	deleteTarget           *note.Note
	deleteConfirmSelection int

	previewing  bool
	previewText string

	width  int
	height int
}

func newTUIModel(ctrl *app.Controller, cfg *config.Config, watcher *fsnotify.Watcher) tuiModel {
	l := list.New(nil, noteDelegate{list.NewDefaultDelegate()}, 0, 0)
	l.SetShowTitle(false)
	l.SetShowStatusBar(false)
	l.SetShowHelp(false)
	l.SetFilteringEnabled(false)

	m := tuiModel{
		list:    l,
		ctrl:    ctrl,
		cfg:     cfg,
		watcher: watcher,
		editor:  newEditorModel(),
	}
	m.refresh()
	return m
}

// refresh recomputes the visible items from the live collection.
func (m *tuiModel) refresh() {
	visible := note.Display(m.ctrl.Notes(), m.query, m.tagFilter)
	items := make([]list.Item, len(visible))
	for i, n := range visible {
		items[i] = noteItem{note: n}
	}
	m.list.SetItems(items)
}

func (m tuiModel) selectedNote() (note.Note, bool) {
	if i, ok := m.list.SelectedItem().(noteItem); ok {
		return i.note, true
	}
	return note.Note{}, false
}

type fileChangedMsg struct{}

func waitForFileChange(watcher *fsnotify.Watcher) tea.Cmd {
	return func() tea.Msg {
		if watcher == nil {
			return nil
		}
		for {
			select {
			case event, ok := <-watcher.Events:
				if !ok {
					return nil
				}
				if event.Op&fsnotify.Write == fsnotify.Write ||
					event.Op&fsnotify.Create == fsnotify.Create ||
					event.Op&fsnotify.Remove == fsnotify.Remove {
					return fileChangedMsg{}
				}
			case err, ok := <-watcher.Errors:
				if !ok {
					return nil
				}
				log.Printf("Watcher error: %v", err)
			}
		}
	}
}

func (m tuiModel) Init() tea.Cmd {
	return waitForFileChange(m.watcher)
}

func (m tuiModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			m.quitting = true
			return m, tea.Quit
		}

		if m.editor.isOpen() {
			return m.updateEditor(msg)
		}

		if m.previewing {
			switch msg.String() {
			case "esc", "q", "v":
				m.previewing = false
				m.previewText = ""
			}
			return m, nil
		}

		if m.showDeleteConfirm {
			return m.updateDeleteConfirm(msg)
		}

		if m.showTags {
			return m.updateTagBrowser(msg)
		}

		if m.filtering {
			switch msg.String() {
			case "esc":
				m.filtering = false
				m.query = ""
				m.refresh()
				return m, nil
			case "enter":
				m.filtering = false
				return m, nil
			case "backspace":
				if len(m.query) > 0 {
					m.query = m.query[:len(m.query)-1]
					m.refresh()
				} else {
					m.filtering = false
				}
				return m, nil
			default:
				if len(msg.Runes) > 0 && msg.Runes[0] >= 32 && msg.Runes[0] <= 126 {
					m.query += string(msg.Runes[0])
					m.refresh()
					return m, nil
				}
				return m, nil
			}
		}

		switch msg.String() {
		case "q":
			m.quitting = true
			return m, tea.Quit

		case "esc":
			if m.query != "" || m.tagFilter != "" {
				m.query = ""
				m.tagFilter = ""
				m.refresh()
			}
			return m, nil

		case "/":
			m.filtering = true
			m.query = ""
			m.refresh()
			return m, nil

		case "t":
			m.tagCounts = note.TagCounts(m.ctrl.Notes())
			m.tagCursor = 0
			m.showTags = true
			return m, nil

		case "n":
			return m, m.editor.openCreate()

		case "enter", "e":
			if n, ok := m.selectedNote(); ok {
				m.ctrl.Repo().Select(n.ID)
				// The note may have vanished via an external edit.
				fresh, found := m.ctrl.Repo().Get(n.ID)
				return m, m.editor.openEdit(fresh, found)
			}
			return m, nil

		case "d":
			if n, ok := m.selectedNote(); ok {
				m.showDeleteConfirm = true
				m.deleteTarget = &n
				m.deleteConfirmSelection = 0
			}
			return m, nil

		case "p":
			if n, ok := m.selectedNote(); ok {
				m.ctrl.TogglePin(n.ID, !n.Pinned)
				m.refresh()
			}
			return m, nil

		case "T":
			theme := m.ctrl.ToggleTheme()
			InitializeColors(m.cfg.Palette(theme))
			return m, nil

		case "v":
			if n, ok := m.selectedNote(); ok {
				m.previewText = renderPreview(n, m.width)
				m.previewing = true
			}
			return m, nil
		}

	case fileChangedMsg:
		m.ctrl.Repo().Reload()
		m.refresh()
		return m, waitForFileChange(m.watcher)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.list.SetWidth(msg.Width)
		m.list.SetHeight(msg.Height - 4)
		m.editor.setSize(msg.Width, msg.Height)
	}

	var cmds []tea.Cmd
	if m.editor.isOpen() {
		cmds = append(cmds, m.editor.update(msg))
	}
	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	cmds = append(cmds, cmd)
	return m, tea.Batch(cmds...)
}

func (m tuiModel) updateEditor(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	result, payload, cmd := m.editor.handleKey(msg)
	switch result {
	case editorSaved:
		id := m.ctrl.Apply(payload)
		m.ctrl.Repo().Select(id)
		m.refresh()
	case editorCancelled:
		m.refresh()
	}
	return m, cmd
}

func (m tuiModel) updateDeleteConfirm(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.showDeleteConfirm = false
		m.deleteTarget = nil
		m.deleteConfirmSelection = 0
	case "left", "h":
		m.deleteConfirmSelection = 0
	case "right", "l":
		m.deleteConfirmSelection = 1
	case "enter":
		if m.deleteConfirmSelection == 1 && m.deleteTarget != nil {
			m.ctrl.Delete(m.deleteTarget.ID)
			m.refresh()
			m.list.ResetSelected()
		}
		m.showDeleteConfirm = false
		m.deleteTarget = nil
		m.deleteConfirmSelection = 0
	}
	return m, nil
}

func (m tuiModel) updateTagBrowser(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc", "t", "q":
		m.showTags = false
	case "up", "k":
		if m.tagCursor > 0 {
			m.tagCursor--
		}
	case "down", "j":
		if m.tagCursor < len(m.tagCounts) {
			m.tagCursor++
		}
	case "enter":
		if m.tagCursor == 0 {
			m.tagFilter = ""
		} else {
			chosen := m.tagCounts[m.tagCursor-1].Tag
			if m.tagFilter == chosen {
				m.tagFilter = ""
			} else {
				m.tagFilter = chosen
			}
		}
		m.showTags = false
		m.refresh()
	}
	return m, nil
}

func (m tuiModel) View() string {
	if m.quitting {
		return ""
	}

	if m.editor.isOpen() {
		return m.overlay(m.editor.view())
	}
	if m.previewing {
		return m.previewText + "\n" + colors.mutedStyle.Render("esc: back")
	}
	if m.showDeleteConfirm {
		return m.overlay(m.deleteConfirmView())
	}
	if m.showTags {
		return m.overlay(m.tagBrowserView())
	}

	st := note.Summarize(m.ctrl.Notes())
	header := colors.titleStyle.Bold(true).Render("quill") + "  " +
		colors.mutedStyle.Render(fmt.Sprintf("%d notes • %d pinned", st.Total, st.Pinned))

	var filterLine string
	if m.filtering {
		filterLine = colors.filterStyle.Padding(0, 1).Render(fmt.Sprintf("Search: %s▓", m.query))
	} else if m.query != "" || m.tagFilter != "" {
		parts := []string{}
		if m.query != "" {
			parts = append(parts, fmt.Sprintf("search %q", m.query))
		}
		if m.tagFilter != "" {
			parts = append(parts, "tag #"+m.tagFilter)
		}
		filterLine = colors.filterStyle.Padding(0, 1).Render(strings.Join(parts, " • ") + " (esc clears)")
	}

	help := colors.mutedStyle.Render("n: new • enter: edit • d: delete • p: pin • t: tags • /: search • v: preview • T: theme • q: quit")

	return header + "\n" + filterLine + "\n" + m.list.View() + "\n" + help
}

func (m tuiModel) overlay(content string) string {
	if m.width == 0 || m.height == 0 {
		return content
	}
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, content)
}

func (m tuiModel) deleteConfirmView() string {
	title := ""
	if m.deleteTarget != nil {
		title = m.deleteTarget.Title
	}
	no := "[ No ]"
	yes := "[ Yes ]"
	if m.deleteConfirmSelection == 0 {
		no = colors.selectorStyle.Render(no)
		yes = colors.mutedStyle.Render(yes)
	} else {
		no = colors.mutedStyle.Render(no)
		yes = colors.errorStyle.Render(yes)
	}
	body := fmt.Sprintf("Delete %q?\n\n%s  %s", title, no, yes)
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(colors.borderStyle.GetForeground()).
		Padding(1, 2).
		Render(body)
}

func (m tuiModel) tagBrowserView() string {
	var b strings.Builder
	b.WriteString(colors.titleStyle.Bold(true).Render("Tags"))
	b.WriteString("\n\n")

	line := func(idx int, label string, count int) {
		cursor := "  "
		if m.tagCursor == idx {
			cursor = colors.selectorStyle.Render("█ ")
		}
		if count >= 0 {
			b.WriteString(fmt.Sprintf("%s%s %s\n", cursor, label, colors.mutedStyle.Render(fmt.Sprintf("(%d)", count))))
		} else {
			b.WriteString(fmt.Sprintf("%s%s\n", cursor, label))
		}
	}

	line(0, "All notes", -1)
	for i, tc := range m.tagCounts {
		label := tc.Tag
		if m.tagFilter == tc.Tag {
			label = colors.pinnedStyle.Render(tc.Tag + " ✓")
		}
		line(i+1, label, tc.Count)
	}

	b.WriteString("\n" + colors.mutedStyle.Render("enter: filter • esc: close"))
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(colors.borderStyle.GetForeground()).
		Padding(1, 2).
		Render(b.String())
}

// renderPreview turns a note into glamour-rendered markdown.
func renderPreview(n note.Note, width int) string {
	var md strings.Builder
	md.WriteString("# " + n.Title + "\n\n")
	if len(n.Tags) > 0 {
		md.WriteString("`" + strings.Join(n.Tags, "` `") + "`\n\n")
	}
	md.WriteString(n.Content)

	wrap := width - 4
	if wrap < 40 {
		wrap = 80
	}
	r, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(wrap),
	)
	if err != nil {
		return md.String()
	}
	out, err := r.Render(md.String())
	if err != nil {
		return md.String()
	}
	return out
}
