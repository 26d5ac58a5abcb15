package editor

import (
	"reflect"
	"testing"

	"github.com/kavia-common/quill/internal/note"
)

type recordingFocus struct {
	events []string
}

func (f *recordingFocus) OnOpen()  { f.events = append(f.events, "open") }
func (f *recordingFocus) OnClose() { f.events = append(f.events, "close") }

func TestOpenCreateStartsEmptyAtTitle(t *testing.T) {
	e := New(nil)
	e.OpenCreate()

	if !e.IsOpen() || e.Mode() != ModeCreate {
		t.Fatalf("open=%v mode=%v", e.IsOpen(), e.Mode())
	}
	if b := e.Buffer(); b.Title != "" || b.Content != "" || len(b.Tags) != 0 || b.Err != "" {
		t.Errorf("buffer not empty: %+v", b)
	}
	if e.Focus() != StopTitle {
		t.Errorf("focus = %v, want StopTitle", e.Focus())
	}
}

func TestOpenEditCopiesNote(t *testing.T) {
	e := New(nil)
	n := note.Note{ID: "x", Title: "t", Content: "c", Tags: []string{"work"}}
	e.OpenEdit(n, true)

	if e.Mode() != ModeEdit {
		t.Fatalf("mode = %v", e.Mode())
	}
	b := e.Buffer()
	if b.Title != "t" || b.Content != "c" || !reflect.DeepEqual(b.Tags, []string{"work"}) {
		t.Errorf("buffer = %+v", b)
	}

	// Buffer mutations must not leak into the source note.
	e.SetTitle("changed")
	if n.Title != "t" {
		t.Error("editing the buffer mutated the note")
	}
}

func TestOpenEditMissingNoteFallsBackToCreate(t *testing.T) {
	e := New(nil)
	e.OpenEdit(note.Note{}, false)

	if !e.IsOpen() || e.Mode() != ModeCreate {
		t.Fatalf("open=%v mode=%v, want open create", e.IsOpen(), e.Mode())
	}
	if b := e.Buffer(); b.Title != "" || len(b.Tags) != 0 {
		t.Errorf("buffer not empty: %+v", b)
	}

	// Saving from the fallback buffer creates, never updates.
	e.SetTitle("recovered")
	p, ok := e.Save()
	if !ok {
		t.Fatal("save rejected")
	}
	if _, isCreate := p.(Create); !isCreate {
		t.Errorf("payload = %T, want Create", p)
	}
}

func TestOpenWhileOpenIsIgnored(t *testing.T) {
	e := New(nil)
	e.OpenCreate()
	e.SetTitle("keep me")
	e.OpenEdit(note.Note{ID: "x", Title: "other"}, true)

	if e.Mode() != ModeCreate || e.Buffer().Title != "keep me" {
		t.Errorf("second open replaced live buffer: mode=%v buf=%+v", e.Mode(), e.Buffer())
	}
}

func TestSaveRejectsWhitespaceTitle(t *testing.T) {
	e := New(nil)
	e.OpenCreate()
	e.SetTitle("   \t ")

	p, ok := e.Save()
	if ok || p != nil {
		t.Fatalf("save accepted whitespace title: %v %v", p, ok)
	}
	if !e.IsOpen() {
		t.Error("editor closed on rejected save")
	}
	if e.Buffer().Err == "" {
		t.Error("error flag not set")
	}

	// The next title edit clears the error.
	e.SetTitle("real title")
	if e.Buffer().Err != "" {
		t.Errorf("error not cleared on title edit: %q", e.Buffer().Err)
	}
}

func TestSaveCreatePayload(t *testing.T) {
	e := New(nil)
	e.OpenCreate()
	e.SetTitle("  Test Note  ")
	e.SetContent("hello")
	e.SetTagInput("work,urgent")

	p, ok := e.Save()
	if !ok {
		t.Fatal("save rejected")
	}
	c, isCreate := p.(Create)
	if !isCreate {
		t.Fatalf("payload = %T, want Create", p)
	}
	if c.Title != "Test Note" {
		t.Errorf("title = %q, want trimmed", c.Title)
	}
	if c.Content != "hello" {
		t.Errorf("content = %q", c.Content)
	}
	if want := []string{"work", "urgent"}; !reflect.DeepEqual(c.Tags, want) {
		t.Errorf("tags = %v, want %v (pending input committed on save)", c.Tags, want)
	}
	if e.IsOpen() {
		t.Error("editor still open after save")
	}
}

func TestSaveUpdatePayloadKeepsID(t *testing.T) {
	e := New(nil)
	e.OpenEdit(note.Note{ID: "note-1", Title: "old"}, true)
	e.SetTitle("new")

	p, ok := e.Save()
	if !ok {
		t.Fatal("save rejected")
	}
	u, isUpdate := p.(Update)
	if !isUpdate {
		t.Fatalf("payload = %T, want Update", p)
	}
	if u.ID != "note-1" || u.Title != "new" {
		t.Errorf("payload = %+v", u)
	}
}

func TestTagTokenization(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []string
	}{
		{"dedupe keeps first-seen order", "Work, Urgent ,work", []string{"work", "urgent"}},
		{"internal whitespace hyphenated", "follow up, Follow  Up", []string{"follow-up"}},
		{"empties discarded", " , ,", nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := New(nil)
			e.OpenCreate()
			e.SetTagInput(tt.input)
			e.CommitTagInput()
			if got := e.Buffer().Tags; !reflect.DeepEqual(got, tt.want) {
				t.Errorf("tags = %v, want %v", got, tt.want)
			}
			if e.Buffer().TagInput != "" {
				t.Error("tag input not cleared after commit")
			}
		})
	}
}

func TestCommitUnionsIntoExistingTags(t *testing.T) {
	e := New(nil)
	e.OpenEdit(note.Note{ID: "x", Title: "t", Tags: []string{"work"}}, true)
	e.SetTagInput("urgent, WORK")
	e.CommitTagInput()

	if got, want := e.Buffer().Tags, []string{"work", "urgent"}; !reflect.DeepEqual(got, want) {
		t.Errorf("tags = %v, want %v", got, want)
	}
}

func TestPopTagRemovesLastAdded(t *testing.T) {
	e := New(nil)
	e.OpenCreate()
	e.SetTagInput("alpha, zebra, beta")
	e.CommitTagInput()

	tag, ok := e.PopTag()
	if !ok || tag != "beta" {
		t.Errorf("PopTag() = %q, %v; want last-in \"beta\"", tag, ok)
	}
	if got, want := e.Buffer().Tags, []string{"alpha", "zebra"}; !reflect.DeepEqual(got, want) {
		t.Errorf("tags = %v, want %v", got, want)
	}

	e.PopTag()
	e.PopTag()
	if _, ok := e.PopTag(); ok {
		t.Error("PopTag on empty set reported a removal")
	}
}

func TestRemoveTag(t *testing.T) {
	e := New(nil)
	e.OpenCreate()
	e.SetTagInput("a,b,c")
	e.CommitTagInput()
	e.RemoveTag("b")

	if got, want := e.Buffer().Tags, []string{"a", "c"}; !reflect.DeepEqual(got, want) {
		t.Errorf("tags = %v, want %v", got, want)
	}
}

func TestCycleFocusWrapsBothWays(t *testing.T) {
	e := New(nil)
	e.OpenCreate()

	order := []Stop{StopContent, StopTags, StopSave, StopCancel, StopTitle}
	for _, want := range order {
		if got := e.CycleFocus(1); got != want {
			t.Fatalf("CycleFocus(1) = %v, want %v", got, want)
		}
	}
	if got := e.CycleFocus(-1); got != StopCancel {
		t.Errorf("CycleFocus(-1) from title = %v, want StopCancel", got)
	}
}

func TestFocusControllerFiresOnTransitions(t *testing.T) {
	f := &recordingFocus{}
	e := New(f)

	e.OpenCreate()
	e.Cancel()
	e.OpenCreate()
	e.SetTitle("t")
	if _, ok := e.Save(); !ok {
		t.Fatal("save rejected")
	}

	want := []string{"open", "close", "open", "close"}
	if !reflect.DeepEqual(f.events, want) {
		t.Errorf("focus events = %v, want %v", f.events, want)
	}
}

func TestCancelDiscardsBuffer(t *testing.T) {
	e := New(nil)
	e.OpenCreate()
	e.SetTitle("junk")
	e.Cancel()

	if e.IsOpen() {
		t.Fatal("still open after cancel")
	}
	e.OpenCreate()
	if e.Buffer().Title != "" {
		t.Error("buffer survived cancel")
	}
}

func TestMutationsWhileClosedAreNoops(t *testing.T) {
	e := New(nil)
	e.SetTitle("x")
	e.SetContent("y")
	e.SetTagInput("z")
	e.CommitTagInput()
	if _, ok := e.PopTag(); ok {
		t.Error("PopTag succeeded while closed")
	}
	if _, ok := e.Save(); ok {
		t.Error("Save succeeded while closed")
	}
	e.Cancel() // must not panic
}
