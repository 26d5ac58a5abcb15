package main

import (
	"fmt"
	"log"
	"os"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/fsnotify/fsnotify"

	"github.com/kavia-common/quill/internal/app"
	"github.com/kavia-common/quill/internal/config"
	"github.com/kavia-common/quill/internal/note"
	"github.com/kavia-common/quill/internal/snapshot"
	"github.com/kavia-common/quill/internal/store"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	st, err := store.Open(cfg.DataDir)
	if err != nil {
		log.Fatal(err)
	}

	snaps := snapshot.New(cfg.DataDir, cfg.Snapshot)
	ctrl := app.NewController(st, snaps)
	InitializeColors(cfg.Palette(ctrl.Theme()))

	args := os.Args[1:]
	if len(args) == 0 {
		runTUI(ctrl, cfg, st)
		return
	}

	switch args[0] {
	case "-h", "--help", "help":
		printHelp()

	case "ls", "list":
		for _, n := range note.Display(ctrl.Notes(), "", "") {
			printNoteLine(n)
		}

	case "a", "add", "n", "new":
		title, content, tags := parseAddArgs(args[1:])
		if strings.TrimSpace(title) == "" {
			fmt.Println("ERROR: Title required")
			os.Exit(1)
		}
		n := ctrl.Create(title, content, tags)
		fmt.Printf("%s %s\n", colors.dateStyle.Render(n.ID), n.Title)

	case "show":
		if len(args) < 2 {
			fmt.Println("ERROR: Note ID required")
			os.Exit(1)
		}
		n, ok := findNote(ctrl, args[1])
		if !ok {
			log.Fatalf("Note not found: %s", args[1])
		}
		fmt.Print(renderPreview(n, 80))

	case "rm", "delete":
		if len(args) < 2 {
			fmt.Println("ERROR: Note ID required")
			os.Exit(1)
		}
		if n, ok := findNote(ctrl, args[1]); ok {
			ctrl.Delete(n.ID)
			fmt.Printf("deleted %s\n", n.Title)
		}

	case "pin":
		if len(args) < 2 {
			fmt.Println("ERROR: Note ID required")
			os.Exit(1)
		}
		n, ok := findNote(ctrl, args[1])
		if !ok {
			log.Fatalf("Note not found: %s", args[1])
		}
		next := !n.Pinned
		if len(args) > 2 {
			next = args[2] == "on" || args[2] == "true"
		}
		ctrl.TogglePin(n.ID, next)

	case "tags":
		for _, tc := range note.TagCounts(ctrl.Notes()) {
			fmt.Printf("%s %s\n", colors.tagStyle.Render(tc.Tag), colors.mutedStyle.Render(fmt.Sprintf("%d", tc.Count)))
		}
		sum := note.Summarize(ctrl.Notes())
		fmt.Printf("\n%d notes, %d pinned\n", sum.Total, sum.Pinned)

	case "theme":
		fmt.Println(ctrl.ToggleTheme())

	case "export":
		out := os.Stdout
		if len(args) > 1 {
			f, err := os.Create(args[1])
			if err != nil {
				log.Fatal(err)
			}
			defer f.Close()
			out = f
		}
		if err := note.Export(out, ctrl.Notes()); err != nil {
			log.Fatal(err)
		}

	case "init-snapshots":
		if snapshot.IsRepo(cfg.DataDir) {
			fmt.Println("Data directory is already inside a git repository")
			return
		}
		if err := snapshot.Init(cfg.DataDir); err != nil {
			log.Fatal(err)
		}
		fmt.Printf("Initialized snapshot repository in %s\n", cfg.DataDir)

	default:
		fmt.Printf("Unknown subcommand: %s\n", args[0])
		printHelp()
		os.Exit(1)
	}
}

func runTUI(ctrl *app.Controller, cfg *config.Config, st *store.Store) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		log.Printf("File watching disabled: %v", err)
		watcher = nil
	} else {
		if err := watcher.Add(st.Dir()); err != nil {
			log.Printf("File watching disabled: %v", err)
			watcher.Close()
			watcher = nil
		} else {
			defer watcher.Close()
		}
	}

	p := tea.NewProgram(newTUIModel(ctrl, cfg, watcher), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		log.Fatal(err)
	}
}

// findNote resolves an id or unique id prefix to a note.
func findNote(ctrl *app.Controller, id string) (note.Note, bool) {
	if n, ok := ctrl.Repo().Get(id); ok {
		return n, true
	}
	var match note.Note
	found := 0
	for _, n := range ctrl.Notes() {
		if strings.HasPrefix(n.ID, strings.ToUpper(id)) {
			match = n
			found++
		}
	}
	if found == 1 {
		return match, true
	}
	return note.Note{}, false
}

// parseAddArgs splits `add` arguments: every word is part of the title
// except -t/--tags and -c/--content values.
func parseAddArgs(args []string) (title, content string, tags []string) {
	var words []string
	for i := 0; i < len(args); i++ {
		switch args[i] {
		case "-t", "--tags":
			if i+1 < len(args) {
				tags = note.ParseTags(args[i+1])
				i++
			}
		case "-c", "--content":
			if i+1 < len(args) {
				content = args[i+1]
				i++
			}
		default:
			words = append(words, args[i])
		}
	}
	return strings.Join(words, " "), content, tags
}

func printNoteLine(n note.Note) {
	pin := "  "
	if n.Pinned {
		pin = colors.pinnedStyle.Render("● ")
	}
	line := fmt.Sprintf("%s%s %s %s", pin,
		colors.dateStyle.Render(n.ID),
		colors.titleStyle.Render(n.Title),
		colors.mutedStyle.Render(relativeTime(n.UpdatedAt)))
	for _, t := range n.Tags {
		line += " " + colors.tagStyle.Render(t)
	}
	fmt.Println(line)
}

func printHelp() {
	fmt.Println(`quill - terminal notes

Usage:
  quill                      interactive TUI
  quill ls                   list notes
  quill add <title> [-t tags] [-c content]
  quill show <id>            render a note
  quill rm <id>              delete a note
  quill pin <id> [on|off]    toggle or set the pin
  quill tags                 tag counts
  quill theme                toggle light/dark
  quill export [file]        export notes as YAML
  quill init-snapshots       start a git snapshot history
  quill help                 this help

Config: ~/.config/quill/config.toml (QUILL_DIR, QUILL_SNAPSHOT override)`)
}
